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

// ReceptionHandler serves the front desk: patients, department load,
// service calculation and reception registration.
type ReceptionHandler struct {
	patientUsecase   usecase.PatientUsecase
	receptionUsecase usecase.ReceptionUsecase
	validator        *validator.CustomValidator
}

func NewReceptionHandler(patientUsecase usecase.PatientUsecase, receptionUsecase usecase.ReceptionUsecase, validator *validator.CustomValidator) *ReceptionHandler {
	return &ReceptionHandler{
		patientUsecase:   patientUsecase,
		receptionUsecase: receptionUsecase,
		validator:        validator,
	}
}

func (h *ReceptionHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.SearchPatients(r.Context(), r.URL.Query().Get("q"), queryInt(r, "limit"))
	if err != nil {
		response.FromError(w, err, "Failed to search patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *ReceptionHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), currentUser(r), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *ReceptionHandler) LoadDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID := queryInt(r, "departmentId")
	if departmentID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	data, err := h.receptionUsecase.LoadDepartment(r.Context(), departmentID)
	if err != nil {
		response.FromError(w, err, "Failed to load department")
		return
	}

	response.Success(w, http.StatusOK, "Department loaded successfully", data)
}

func (h *ReceptionHandler) CalculateServices(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateServicesRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	calculation, err := h.receptionUsecase.CalculateServices(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to calculate services")
		return
	}

	response.Success(w, http.StatusOK, "Services calculated successfully", calculation)
}

func (h *ReceptionHandler) CreateReception(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReceptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	reception, err := h.receptionUsecase.CreateReception(r.Context(), currentUser(r), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create reception")
		return
	}

	response.Success(w, http.StatusCreated, "Reception created successfully", reception)
}

func (h *ReceptionHandler) GetAllReceptions(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	query := &dto.ReceptionQuery{
		Date:         r.URL.Query().Get("date"),
		DoctorID:     queryInt(r, "doctor_id"),
		DepartmentID: queryInt(r, "department_id"),
		PatientID:    queryInt(r, "patient_id"),
		Status:       strings.TrimSpace(r.URL.Query().Get("status")),
		Page:         page.Page,
		Limit:        page.Limit,
	}

	receptions, total, err := h.receptionUsecase.GetAllReceptions(r.Context(), query)
	if err != nil {
		response.FromError(w, err, "Failed to get receptions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Receptions retrieved successfully", receptions, response.NewMeta(page.Page, page.Limit, total))
}

func (h *ReceptionHandler) GetReception(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "reception")
	if !ok {
		return
	}

	reception, err := h.receptionUsecase.GetReception(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get reception")
		return
	}

	response.Success(w, http.StatusOK, "Reception retrieved successfully", reception)
}

func (h *ReceptionHandler) CancelReception(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "reception")
	if !ok {
		return
	}

	if err := h.receptionUsecase.CancelReception(r.Context(), currentUser(r), id); err != nil {
		response.FromError(w, err, "Failed to cancel reception")
		return
	}

	response.Success(w, http.StatusOK, "Reception cancelled successfully", nil)
}
