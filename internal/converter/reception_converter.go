package converter

import (
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
)

// ReceptionToResponse converts a Reception entity to ReceptionResponse DTO
func ReceptionToResponse(r *entity.Reception) *dto.ReceptionResponse {
	if r == nil {
		return nil
	}

	response := &dto.ReceptionResponse{
		ID:                 r.ID,
		PatientID:          r.PatientID,
		DepartmentID:       r.DepartmentID,
		DoctorID:           r.DoctorID,
		AppointmentAt:      r.AppointmentAt,
		Status:             string(r.Status),
		TotalAmount:        r.TotalAmount,
		InsuranceShare:     r.InsuranceShare,
		SupplementaryShare: r.SupplementaryShare,
		PatientShare:       r.PatientShare,
		PaidAmount:         r.PaidAmount,
		Balance:            r.PatientShare.Sub(r.PaidAmount),
		PaymentMethod:      r.PaymentMethod,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
	}

	if r.Patient != nil {
		response.Patient = PatientToResponse(r.Patient)
	}
	if r.Department != nil {
		response.Department = r.Department.Name
	}
	if r.Doctor != nil {
		response.Doctor = r.Doctor.FullName()
	}
	if len(r.Items) > 0 {
		response.Items = make([]dto.ReceptionItemResponse, len(r.Items))
		for i, item := range r.Items {
			response.Items[i] = dto.ReceptionItemResponse{
				ServiceID:  item.MedicalServiceID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.TotalPrice,
			}
			if item.MedicalService != nil {
				response.Items[i].Title = item.MedicalService.Title
			}
		}
	}

	return response
}

// ReceptionsToResponses converts a slice of Reception entities to DTOs
func ReceptionsToResponses(receptions []entity.Reception) []dto.ReceptionResponse {
	responses := make([]dto.ReceptionResponse, len(receptions))
	for i := range receptions {
		responses[i] = *ReceptionToResponse(&receptions[i])
	}
	return responses
}
