package converter

import (
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/insuranceform"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(p *entity.Patient) *dto.PatientResponse {
	if p == nil {
		return nil
	}
	response := &dto.PatientResponse{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FullName:     p.FirstName + " " + p.LastName,
		NationalCode: p.NationalCode,
		PhoneNumber:  p.PhoneNumber,
		Gender:       p.Gender,
		Address:      p.Address,
	}
	if p.BirthDate != nil {
		response.BirthDate = p.BirthDate.Format(dateLayout)
	}
	return response
}

// PatientsToResponses converts patients to DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

// InsurerToResponse converts an Insurer entity to InsurerResponse DTO
func InsurerToResponse(i *entity.Insurer) *dto.InsurerResponse {
	if i == nil {
		return nil
	}
	return &dto.InsurerResponse{
		ID:              i.ID,
		Name:            i.Name,
		Code:            i.Code,
		Type:            i.Type,
		CoveragePercent: i.CoveragePercent,
		IsActive:        i.IsActive,
	}
}

// InsurersToResponses converts insurers to DTOs
func InsurersToResponses(insurers []entity.Insurer) []dto.InsurerResponse {
	responses := make([]dto.InsurerResponse, len(insurers))
	for i := range insurers {
		responses[i] = *InsurerToResponse(&insurers[i])
	}
	return responses
}

// InsuranceFormToResponse converts a form to its wire shape
func InsuranceFormToResponse(f insuranceform.Form) dto.InsuranceFormResponse {
	response := dto.InsuranceFormResponse{
		PatientID:                 f.PatientID,
		PrimaryInsurerID:          f.PrimaryInsurerID,
		PolicyNumber:              f.PolicyNumber,
		SupplementaryInsurerID:    f.SupplementaryInsurerID,
		SupplementaryPolicyNumber: f.SupplementaryPolicyNumber,
		Notes:                     f.Notes,
	}
	if s := formatDate(f.PrimaryExpiryDate); s != nil {
		response.PrimaryExpiryDate = *s
	}
	if s := formatDate(f.SupplementaryExpiryDate); s != nil {
		response.SupplementaryExpiryDate = *s
	}
	return response
}
