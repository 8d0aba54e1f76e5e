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

type DepartmentHandler struct {
	departmentUsecase usecase.DepartmentUsecase
	validator         *validator.CustomValidator
}

func NewDepartmentHandler(departmentUsecase usecase.DepartmentUsecase, validator *validator.CustomValidator) *DepartmentHandler {
	return &DepartmentHandler{
		departmentUsecase: departmentUsecase,
		validator:         validator,
	}
}

func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	department, err := h.departmentUsecase.Create(r.Context(), currentUser(r), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create department")
		return
	}

	response.Success(w, http.StatusCreated, "Department created successfully", department)
}

func (h *DepartmentHandler) GetAllDepartments(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	query := &dto.ListQuery{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		IsActive: queryBool(r, "is_active"),
		Page:     page.Page,
		Limit:    page.Limit,
	}

	departments, total, err := h.departmentUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.FromError(w, err, "Failed to get departments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Departments retrieved successfully", departments, response.NewMeta(page.Page, page.Limit, total))
}

func (h *DepartmentHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	department, err := h.departmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get department")
		return
	}

	response.Success(w, http.StatusOK, "Department retrieved successfully", department)
}

func (h *DepartmentHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	department, err := h.departmentUsecase.Update(r.Context(), currentUser(r), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update department")
		return
	}

	response.Success(w, http.StatusOK, "Department updated successfully", department)
}

func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	if err := h.departmentUsecase.Delete(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to delete department")
		return
	}

	response.Success(w, http.StatusOK, "Department deleted successfully", nil)
}

func (h *DepartmentHandler) RestoreDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	if err := h.departmentUsecase.Restore(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to restore department")
		return
	}

	response.Success(w, http.StatusOK, "Department restored successfully", nil)
}
