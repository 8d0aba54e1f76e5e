package insuranceform

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInsurers map[int]entity.Insurer

func (f fakeInsurers) FindInsurers(_ context.Context, ids []int) (map[int]entity.Insurer, error) {
	out := map[int]entity.Insurer{}
	for _, id := range ids {
		if ins, ok := f[id]; ok {
			out[id] = ins
		}
	}
	return out, nil
}

var testInsurers = fakeInsurers{
	1: {ID: 1, Type: entity.InsurerTypeBasic, IsActive: true},
	2: {ID: 2, Type: entity.InsurerTypeSupplementary, IsActive: true},
	3: {ID: 3, Type: entity.InsurerTypeBasic, IsActive: false},
}

var today = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func validForm() Form {
	return Form{
		PatientID:                 5,
		PrimaryInsurerID:          intPtr(1),
		PolicyNumber:              "POL-10001",
		PrimaryExpiryDate:         datePtr(2026, 6, 1),
		SupplementaryInsurerID:    intPtr(2),
		SupplementaryPolicyNumber: "SUP20002",
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	engine := NewValidationEngine(testInsurers)
	assert.NoError(t, engine.Validate(context.Background(), validForm(), today))
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"primary insurer required", func(f *Form) { f.PrimaryInsurerID = nil }, "primary_insurer_id"},
		{"policy number required", func(f *Form) { f.PolicyNumber = "" }, "policy_number"},
		{"policy number too short", func(f *Form) { f.PolicyNumber = "A1" }, "policy_number"},
		{"policy number charset", func(f *Form) { f.PolicyNumber = "POL 10001" }, "policy_number"},
		{"supplementary policy required", func(f *Form) { f.SupplementaryPolicyNumber = "" }, "supplementary_policy_number"},
		{"supplementary policy without insurer", func(f *Form) { f.SupplementaryInsurerID = nil }, "supplementary_policy_number"},
		{"same insurer twice", func(f *Form) { f.SupplementaryInsurerID = intPtr(1) }, "supplementary_insurer_id"},
		{"expired primary", func(f *Form) { f.PrimaryExpiryDate = datePtr(2026, 5, 31) }, "primary_expiry_date"},
		{"expired supplementary", func(f *Form) { f.SupplementaryExpiryDate = datePtr(2025, 1, 1) }, "supplementary_expiry_date"},
		{"unknown insurer", func(f *Form) { f.PrimaryInsurerID = intPtr(99) }, "primary_insurer_id"},
		{"inactive insurer", func(f *Form) { f.PrimaryInsurerID = intPtr(3) }, "primary_insurer_id"},
		{"supplementary insurer in primary slot", func(f *Form) {
			f.PrimaryInsurerID = intPtr(2)
			f.SupplementaryInsurerID = nil
			f.SupplementaryPolicyNumber = ""
		}, "primary_insurer_id"},
	}

	engine := NewValidationEngine(testInsurers)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			err := engine.Validate(context.Background(), f, today)
			require.True(t, errors.Is(err, ErrInvalidForm), "got %v", err)

			var appErr *apperror.Error
			require.True(t, errors.As(err, &appErr))
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}
