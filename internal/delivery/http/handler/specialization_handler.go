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

type SpecializationHandler struct {
	specializationUsecase usecase.SpecializationUsecase
	validator             *validator.CustomValidator
}

func NewSpecializationHandler(specializationUsecase usecase.SpecializationUsecase, validator *validator.CustomValidator) *SpecializationHandler {
	return &SpecializationHandler{
		specializationUsecase: specializationUsecase,
		validator:             validator,
	}
}

func (h *SpecializationHandler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecializationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	specialization, err := h.specializationUsecase.Create(r.Context(), currentUser(r), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create specialization")
		return
	}

	response.Success(w, http.StatusCreated, "Specialization created successfully", specialization)
}

func (h *SpecializationHandler) GetAllSpecializations(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	query := &dto.ListQuery{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		IsActive: queryBool(r, "is_active"),
		Page:     page.Page,
		Limit:    page.Limit,
	}

	specializations, total, err := h.specializationUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.FromError(w, err, "Failed to get specializations")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Specializations retrieved successfully", specializations, response.NewMeta(page.Page, page.Limit, total))
}

func (h *SpecializationHandler) GetSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "specialization")
	if !ok {
		return
	}

	specialization, err := h.specializationUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get specialization")
		return
	}

	response.Success(w, http.StatusOK, "Specialization retrieved successfully", specialization)
}

func (h *SpecializationHandler) UpdateSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "specialization")
	if !ok {
		return
	}

	var req dto.UpdateSpecializationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	specialization, err := h.specializationUsecase.Update(r.Context(), currentUser(r), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update specialization")
		return
	}

	response.Success(w, http.StatusOK, "Specialization updated successfully", specialization)
}

func (h *SpecializationHandler) DeleteSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "specialization")
	if !ok {
		return
	}

	if err := h.specializationUsecase.Delete(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to delete specialization")
		return
	}

	response.Success(w, http.StatusOK, "Specialization deleted successfully", nil)
}

func (h *SpecializationHandler) RestoreSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "specialization")
	if !ok {
		return
	}

	if err := h.specializationUsecase.Restore(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to restore specialization")
		return
	}

	response.Success(w, http.StatusOK, "Specialization restored successfully", nil)
}
