package converter

import (
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
)

// DepartmentToResponse converts a Department entity to DepartmentResponse DTO
func DepartmentToResponse(d *entity.Department) *dto.DepartmentResponse {
	if d == nil {
		return nil
	}
	response := &dto.DepartmentResponse{
		ID:             d.ID,
		Name:           d.Name,
		Code:           d.Code,
		Description:    d.Description,
		Location:       d.Location,
		PhoneExtension: d.PhoneExtension,
		IsActive:       d.IsActive,
		AuditInfo:      auditInfo(d.AuditFields),
	}
	if len(d.ServiceCategories) > 0 {
		response.ServiceCategories = ServiceCategoriesToResponses(d.ServiceCategories)
	}
	return response
}

// DepartmentsToResponses converts a slice of Department entities to DTOs
func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = *DepartmentToResponse(&departments[i])
	}
	return responses
}

// ServiceCategoryToResponse converts a ServiceCategory entity to its DTO
func ServiceCategoryToResponse(c *entity.ServiceCategory) *dto.ServiceCategoryResponse {
	if c == nil {
		return nil
	}
	response := &dto.ServiceCategoryResponse{
		ID:           c.ID,
		DepartmentID: c.DepartmentID,
		Title:        c.Title,
		Code:         c.Code,
		Description:  c.Description,
		IsActive:     c.IsActive,
		AuditInfo:    auditInfo(c.AuditFields),
	}
	if c.Department != nil {
		response.Department = c.Department.Name
	}
	if len(c.Services) > 0 {
		response.Services = MedicalServicesToResponses(c.Services)
	}
	return response
}

// ServiceCategoriesToResponses converts categories to DTOs
func ServiceCategoriesToResponses(categories []entity.ServiceCategory) []dto.ServiceCategoryResponse {
	responses := make([]dto.ServiceCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ServiceCategoryToResponse(&categories[i])
	}
	return responses
}

// MedicalServiceToResponse converts a MedicalService entity to its DTO
func MedicalServiceToResponse(s *entity.MedicalService) *dto.MedicalServiceResponse {
	if s == nil {
		return nil
	}
	response := &dto.MedicalServiceResponse{
		ID:                s.ID,
		ServiceCategoryID: s.ServiceCategoryID,
		Title:             s.Title,
		Code:              s.Code,
		Price:             s.Price,
		IsActive:          s.IsActive,
		AuditInfo:         auditInfo(s.AuditFields),
	}
	if s.ServiceCategory != nil {
		response.ServiceCategory = s.ServiceCategory.Title
	}
	return response
}

// MedicalServicesToResponses converts services to DTOs
func MedicalServicesToResponses(services []entity.MedicalService) []dto.MedicalServiceResponse {
	responses := make([]dto.MedicalServiceResponse, len(services))
	for i := range services {
		responses[i] = *MedicalServiceToResponse(&services[i])
	}
	return responses
}
