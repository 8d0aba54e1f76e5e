package converter

import (
	"time"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func auditInfo(a entity.AuditFields) dto.AuditInfo {
	return dto.AuditInfo{
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
		UpdatedAt: a.UpdatedAt,
		UpdatedBy: a.UpdatedBy,
		IsDeleted: a.IsDeleted,
		DeletedAt: a.DeletedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// SpecializationToResponse converts a Specialization entity to SpecializationResponse DTO
func SpecializationToResponse(s *entity.Specialization) *dto.SpecializationResponse {
	if s == nil {
		return nil
	}
	return &dto.SpecializationResponse{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
		AuditInfo:    auditInfo(s.AuditFields),
	}
}

// SpecializationsToResponses converts a slice of Specialization entities to slice of SpecializationResponse DTOs
func SpecializationsToResponses(specs []entity.Specialization) []dto.SpecializationResponse {
	responses := make([]dto.SpecializationResponse, len(specs))
	for i := range specs {
		responses[i] = *SpecializationToResponse(&specs[i])
	}
	return responses
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO.
// Loaded department links and service grants are included.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:                   doctor.ID,
		UserID:               doctor.UserID,
		FirstName:            doctor.FirstName,
		LastName:             doctor.LastName,
		FullName:             doctor.FullName(),
		NationalCode:         doctor.NationalCode,
		MedicalCouncilNumber: doctor.MedicalCouncilNumber,
		Gender:               doctor.Gender,
		PhoneNumber:          doctor.PhoneNumber,
		Email:                doctor.Email,
		Degree:               doctor.Degree,
		Biography:            doctor.Biography,
		IsActive:             doctor.IsActive,
		Specializations:      SpecializationsToResponses(doctor.Specializations),
		AuditInfo:            auditInfo(doctor.AuditFields),
	}

	if len(doctor.Departments) > 0 {
		response.Departments = DoctorDepartmentsToResponses(doctor.Departments)
	}
	if len(doctor.ServiceCategories) > 0 {
		response.ServiceCategories = ServiceGrantsToResponses(doctor.ServiceCategories, time.Now())
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorToSummary converts a Doctor entity to the short DoctorSummary DTO
func DoctorToSummary(doctor *entity.Doctor) *dto.DoctorSummary {
	if doctor == nil {
		return nil
	}
	return &dto.DoctorSummary{ID: doctor.ID, FullName: doctor.FullName()}
}

// DoctorsToSummaries converts doctors to summaries
func DoctorsToSummaries(doctors []entity.Doctor) []dto.DoctorSummary {
	summaries := make([]dto.DoctorSummary, len(doctors))
	for i := range doctors {
		summaries[i] = *DoctorToSummary(&doctors[i])
	}
	return summaries
}

// DoctorsToOptions converts doctors to dropdown options
func DoctorsToOptions(doctors []entity.Doctor) []dto.Option {
	options := make([]dto.Option, len(doctors))
	for i := range doctors {
		options[i] = dto.Option{ID: doctors[i].ID, Label: doctors[i].FullName()}
	}
	return options
}

// DoctorDepartmentToResponse converts a DoctorDepartment link to its DTO
func DoctorDepartmentToResponse(link *entity.DoctorDepartment) *dto.DoctorDepartmentResponse {
	if link == nil {
		return nil
	}
	response := &dto.DoctorDepartmentResponse{
		ID:           link.ID,
		DoctorID:     link.DoctorID,
		DepartmentID: link.DepartmentID,
		Position:     link.Position,
		StartDate:    link.StartDate.Format(dateLayout),
		EndDate:      formatDate(link.EndDate),
		IsActive:     link.IsActive,
		CreatedAt:    link.CreatedAt,
		DeletedAt:    link.DeletedAt,
	}
	if link.Department != nil {
		response.Department = link.Department.Name
	}
	if link.Doctor != nil {
		response.Doctor = link.Doctor.FullName()
	}
	return response
}

// DoctorDepartmentsToResponses converts department links to DTOs
func DoctorDepartmentsToResponses(links []entity.DoctorDepartment) []dto.DoctorDepartmentResponse {
	responses := make([]dto.DoctorDepartmentResponse, len(links))
	for i := range links {
		responses[i] = *DoctorDepartmentToResponse(&links[i])
	}
	return responses
}

// ServiceGrantToResponse converts a DoctorServiceCategory grant to its DTO,
// evaluating validity on day at.
func ServiceGrantToResponse(grant *entity.DoctorServiceCategory, at time.Time) *dto.DoctorServiceGrantResponse {
	if grant == nil {
		return nil
	}
	response := &dto.DoctorServiceGrantResponse{
		ID:                 grant.ID,
		DoctorID:           grant.DoctorID,
		ServiceCategoryID:  grant.ServiceCategoryID,
		AuthorizationLevel: grant.AuthorizationLevel,
		GrantedDate:        grant.GrantedDate.Format(dateLayout),
		ExpiryDate:         formatDate(grant.ExpiryDate),
		Notes:              grant.Notes,
		IsActive:           grant.IsActive,
		IsValid:            grant.IsValidAt(at),
	}
	if grant.ServiceCategory != nil {
		response.ServiceCategory = grant.ServiceCategory.Title
	}
	return response
}

// ServiceGrantsToResponses converts grants to DTOs
func ServiceGrantsToResponses(grants []entity.DoctorServiceCategory, at time.Time) []dto.DoctorServiceGrantResponse {
	responses := make([]dto.DoctorServiceGrantResponse, len(grants))
	for i := range grants {
		responses[i] = *ServiceGrantToResponse(&grants[i], at)
	}
	return responses
}

// HistoryToResponse converts an assignment history row to its DTO
func HistoryToResponse(h *entity.DoctorAssignmentHistory) *dto.AssignmentHistoryResponse {
	if h == nil {
		return nil
	}
	response := &dto.AssignmentHistoryResponse{
		ID:                h.ID,
		DoctorID:          h.DoctorID,
		DepartmentID:      h.DepartmentID,
		ServiceCategoryID: h.ServiceCategoryID,
		ActionType:        h.ActionType,
		ActionDescription: h.ActionDescription,
		PreviousValues:    h.PreviousValues,
		NewValues:         h.NewValues,
		Notes:             h.Notes,
		PerformedAt:       h.PerformedAt,
	}
	if h.PerformedBy != nil {
		response.PerformedBy = h.PerformedBy.String()
	}
	if h.Doctor != nil {
		response.Doctor = h.Doctor.FullName()
	}
	if h.Department != nil {
		response.Department = h.Department.Name
	}
	if h.ServiceCategory != nil {
		response.ServiceCategory = h.ServiceCategory.Title
	}
	return response
}

// HistoriesToResponses converts history rows to DTOs
func HistoriesToResponses(rows []entity.DoctorAssignmentHistory) []dto.AssignmentHistoryResponse {
	responses := make([]dto.AssignmentHistoryResponse, len(rows))
	for i := range rows {
		responses[i] = *HistoryToResponse(&rows[i])
	}
	return responses
}
