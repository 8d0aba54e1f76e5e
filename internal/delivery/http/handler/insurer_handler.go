package handler

import (
	"net/http"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/usecase"
	"clinic-admin/pkg/response"
	"clinic-admin/pkg/validator"
)

type InsurerHandler struct {
	insurerUsecase usecase.InsurerUsecase
	validator      *validator.CustomValidator
}

func NewInsurerHandler(insurerUsecase usecase.InsurerUsecase, validator *validator.CustomValidator) *InsurerHandler {
	return &InsurerHandler{
		insurerUsecase: insurerUsecase,
		validator:      validator,
	}
}

func (h *InsurerHandler) GetInsurers(w http.ResponseWriter, r *http.Request) {
	insurers, err := h.insurerUsecase.GetActiveInsurers(r.Context())
	if err != nil {
		response.FromError(w, err, "Failed to get insurers")
		return
	}

	response.Success(w, http.StatusOK, "Insurers retrieved successfully", insurers)
}

func (h *InsurerHandler) CreateInsurer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInsurerRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	insurer, err := h.insurerUsecase.CreateInsurer(r.Context(), currentUser(r), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create insurer")
		return
	}

	response.Success(w, http.StatusCreated, "Insurer created successfully", insurer)
}
