package handler

import (
	"net/http"
	"strings"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/usecase"
	"clinic-admin/pkg/pagination"
	"clinic-admin/pkg/response"
	"clinic-admin/pkg/validator"
)

// ServiceCatalogHandler serves service categories and the medical services
// inside them.
type ServiceCatalogHandler struct {
	catalogUsecase usecase.ServiceCatalogUsecase
	validator      *validator.CustomValidator
}

func NewServiceCatalogHandler(catalogUsecase usecase.ServiceCatalogUsecase, validator *validator.CustomValidator) *ServiceCatalogHandler {
	return &ServiceCatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func catalogQuery(r *http.Request) (*dto.CatalogQuery, pagination.Params) {
	page := pagination.FromRequest(r)
	return &dto.CatalogQuery{
		Search:       strings.TrimSpace(r.URL.Query().Get("search")),
		DepartmentID: queryInt(r, "department_id"),
		IsActive:     queryBool(r, "is_active"),
		Page:         page.Page,
		Limit:        page.Limit,
	}, page
}

func (h *ServiceCatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateServiceCategoryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	category, err := h.catalogUsecase.CreateCategory(r.Context(), currentUser(r), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create service category")
		return
	}

	response.Success(w, http.StatusCreated, "Service category created successfully", category)
}

func (h *ServiceCatalogHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	query, page := catalogQuery(r)

	categories, total, err := h.catalogUsecase.GetAllCategories(r.Context(), query)
	if err != nil {
		response.FromError(w, err, "Failed to get service categories")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Service categories retrieved successfully", categories, response.NewMeta(page.Page, page.Limit, total))
}

func (h *ServiceCatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "service category")
	if !ok {
		return
	}

	category, err := h.catalogUsecase.GetCategory(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get service category")
		return
	}

	response.Success(w, http.StatusOK, "Service category retrieved successfully", category)
}

func (h *ServiceCatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "service category")
	if !ok {
		return
	}

	var req dto.UpdateServiceCategoryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	category, err := h.catalogUsecase.UpdateCategory(r.Context(), currentUser(r), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update service category")
		return
	}

	response.Success(w, http.StatusOK, "Service category updated successfully", category)
}

func (h *ServiceCatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "service category")
	if !ok {
		return
	}

	if err := h.catalogUsecase.DeleteCategory(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to delete service category")
		return
	}

	response.Success(w, http.StatusOK, "Service category deleted successfully", nil)
}

func (h *ServiceCatalogHandler) RestoreCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "service category")
	if !ok {
		return
	}

	if err := h.catalogUsecase.RestoreCategory(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to restore service category")
		return
	}

	response.Success(w, http.StatusOK, "Service category restored successfully", nil)
}

func (h *ServiceCatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicalServiceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	service, err := h.catalogUsecase.CreateService(r.Context(), currentUser(r), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create medical service")
		return
	}

	response.Success(w, http.StatusCreated, "Medical service created successfully", service)
}

func (h *ServiceCatalogHandler) GetAllServices(w http.ResponseWriter, r *http.Request) {
	query, page := catalogQuery(r)

	services, total, err := h.catalogUsecase.GetAllServices(r.Context(), query)
	if err != nil {
		response.FromError(w, err, "Failed to get medical services")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Medical services retrieved successfully", services, response.NewMeta(page.Page, page.Limit, total))
}

func (h *ServiceCatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "medical service")
	if !ok {
		return
	}

	service, err := h.catalogUsecase.GetService(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get medical service")
		return
	}

	response.Success(w, http.StatusOK, "Medical service retrieved successfully", service)
}

func (h *ServiceCatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "medical service")
	if !ok {
		return
	}

	var req dto.UpdateMedicalServiceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	service, err := h.catalogUsecase.UpdateService(r.Context(), currentUser(r), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update medical service")
		return
	}

	response.Success(w, http.StatusOK, "Medical service updated successfully", service)
}

func (h *ServiceCatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "medical service")
	if !ok {
		return
	}

	if err := h.catalogUsecase.DeleteService(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to delete medical service")
		return
	}

	response.Success(w, http.StatusOK, "Medical service deleted successfully", nil)
}

func (h *ServiceCatalogHandler) RestoreService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "medical service")
	if !ok {
		return
	}

	if err := h.catalogUsecase.RestoreService(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to restore medical service")
		return
	}

	response.Success(w, http.StatusOK, "Medical service restored successfully", nil)
}
