package insuranceform

import (
	"strings"
	"time"

	"clinic-admin/internal/domain/entity"
)

// Form is the editable insurance data of one patient.
type Form struct {
	PatientID                 int
	PrimaryInsurerID          *int
	PolicyNumber              string
	PrimaryExpiryDate         *time.Time
	SupplementaryInsurerID    *int
	SupplementaryPolicyNumber string
	SupplementaryExpiryDate   *time.Time
	Notes                     string
}

// FormFromEntity snapshots a stored record. A nil record yields an empty form.
func FormFromEntity(patientID int, pi *entity.PatientInsurance) Form {
	if pi == nil {
		return Form{PatientID: patientID}
	}
	return Form{
		PatientID:                 patientID,
		PrimaryInsurerID:          pi.PrimaryInsurerID,
		PolicyNumber:              pi.PolicyNumber,
		PrimaryExpiryDate:         pi.PrimaryExpiryDate,
		SupplementaryInsurerID:    pi.SupplementaryInsurerID,
		SupplementaryPolicyNumber: pi.SupplementaryPolicyNumber,
		SupplementaryExpiryDate:   pi.SupplementaryExpiryDate,
		Notes:                     pi.Notes,
	}
}

// Normalize trims text fields and clears zero insurer ids.
func (f Form) Normalize() Form {
	f.PolicyNumber = strings.TrimSpace(f.PolicyNumber)
	f.SupplementaryPolicyNumber = strings.TrimSpace(f.SupplementaryPolicyNumber)
	f.Notes = strings.TrimSpace(f.Notes)
	if f.PrimaryInsurerID != nil && *f.PrimaryInsurerID == 0 {
		f.PrimaryInsurerID = nil
	}
	if f.SupplementaryInsurerID != nil && *f.SupplementaryInsurerID == 0 {
		f.SupplementaryInsurerID = nil
	}
	return f
}

// ApplyTo copies the form onto a stored record.
func (f Form) ApplyTo(pi *entity.PatientInsurance) {
	pi.PatientID = f.PatientID
	pi.PrimaryInsurerID = f.PrimaryInsurerID
	pi.PolicyNumber = f.PolicyNumber
	pi.PrimaryExpiryDate = f.PrimaryExpiryDate
	pi.SupplementaryInsurerID = f.SupplementaryInsurerID
	pi.SupplementaryPolicyNumber = f.SupplementaryPolicyNumber
	pi.SupplementaryExpiryDate = f.SupplementaryExpiryDate
	pi.Notes = f.Notes
	pi.PrimaryInsurer = nil
	pi.SupplementaryInsurer = nil
}
