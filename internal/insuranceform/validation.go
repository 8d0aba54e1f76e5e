package insuranceform

import (
	"context"
	"regexp"
	"time"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/pkg/apperror"
)

var (
	ErrInvalidForm = apperror.Validation("insurance data is invalid")

	policyPattern = regexp.MustCompile(`^[A-Za-z0-9-]{5,30}$`)
)

// InsurerLookup resolves insurer ids. Missing ids are absent from the map.
type InsurerLookup interface {
	FindInsurers(ctx context.Context, ids []int) (map[int]entity.Insurer, error)
}

// ValidationEngine checks a normalized form against the insurance rules.
type ValidationEngine struct {
	insurers InsurerLookup
}

func NewValidationEngine(insurers InsurerLookup) *ValidationEngine {
	return &ValidationEngine{insurers: insurers}
}

// Validate returns ErrInvalidForm with per-field messages, or a lookup error.
func (v *ValidationEngine) Validate(ctx context.Context, f Form, today time.Time) error {
	fields := map[string]string{}

	if f.PrimaryInsurerID == nil {
		fields["primary_insurer_id"] = "primary insurer is required"
	}
	if f.PolicyNumber == "" {
		fields["policy_number"] = "policy number is required"
	} else if !policyPattern.MatchString(f.PolicyNumber) {
		fields["policy_number"] = "must be 5 to 30 letters, digits or dashes"
	}

	hasSupplementary := f.SupplementaryInsurerID != nil
	switch {
	case hasSupplementary && f.SupplementaryPolicyNumber == "":
		fields["supplementary_policy_number"] = "supplementary policy number is required"
	case !hasSupplementary && f.SupplementaryPolicyNumber != "":
		fields["supplementary_policy_number"] = "supplementary insurer is not selected"
	case hasSupplementary && !policyPattern.MatchString(f.SupplementaryPolicyNumber):
		fields["supplementary_policy_number"] = "must be 5 to 30 letters, digits or dashes"
	}
	if hasSupplementary && f.PrimaryInsurerID != nil && *f.SupplementaryInsurerID == *f.PrimaryInsurerID {
		fields["supplementary_insurer_id"] = "must differ from the primary insurer"
	}

	day := dayOf(today)
	if f.PrimaryExpiryDate != nil && dayOf(*f.PrimaryExpiryDate).Before(day) {
		fields["primary_expiry_date"] = "policy has already expired"
	}
	if f.SupplementaryExpiryDate != nil && dayOf(*f.SupplementaryExpiryDate).Before(day) {
		fields["supplementary_expiry_date"] = "policy has already expired"
	}

	if err := v.checkInsurers(ctx, f, fields); err != nil {
		return err
	}
	if len(fields) > 0 {
		return ErrInvalidForm.WithFields(fields)
	}
	return nil
}

func (v *ValidationEngine) checkInsurers(ctx context.Context, f Form, fields map[string]string) error {
	var ids []int
	if f.PrimaryInsurerID != nil {
		ids = append(ids, *f.PrimaryInsurerID)
	}
	if f.SupplementaryInsurerID != nil {
		ids = append(ids, *f.SupplementaryInsurerID)
	}
	if len(ids) == 0 || v.insurers == nil {
		return nil
	}

	found, err := v.insurers.FindInsurers(ctx, ids)
	if err != nil {
		return err
	}
	checkSlot(found, f.PrimaryInsurerID, entity.InsurerTypeBasic, "primary_insurer_id", fields)
	checkSlot(found, f.SupplementaryInsurerID, entity.InsurerTypeSupplementary, "supplementary_insurer_id", fields)
	return nil
}

func checkSlot(found map[int]entity.Insurer, id *int, wantType, field string, fields map[string]string) {
	if id == nil {
		return
	}
	if _, already := fields[field]; already {
		return
	}
	insurer, ok := found[*id]
	switch {
	case !ok:
		fields[field] = "insurer does not exist"
	case !insurer.IsActive:
		fields[field] = "insurer is not active"
	case insurer.Type != wantType:
		fields[field] = "insurer must be of type " + wantType
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
