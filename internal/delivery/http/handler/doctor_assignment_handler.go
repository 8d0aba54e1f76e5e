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

// DoctorAssignmentHandler serves department membership, service category
// grants and the staffing history they produce.
type DoctorAssignmentHandler struct {
	assignmentUsecase usecase.DoctorAssignmentUsecase
	historyUsecase    usecase.AssignmentHistoryUsecase
	validator         *validator.CustomValidator
}

func NewDoctorAssignmentHandler(assignmentUsecase usecase.DoctorAssignmentUsecase, historyUsecase usecase.AssignmentHistoryUsecase, validator *validator.CustomValidator) *DoctorAssignmentHandler {
	return &DoctorAssignmentHandler{
		assignmentUsecase: assignmentUsecase,
		historyUsecase:    historyUsecase,
		validator:         validator,
	}
}

func (h *DoctorAssignmentHandler) AssignDepartment(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.AssignDepartmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	link, err := h.assignmentUsecase.AssignDepartment(r.Context(), currentUser(r), doctorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to assign department")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor assigned to department successfully", link)
}

func (h *DoctorAssignmentHandler) RemoveDepartment(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}
	departmentID, ok := pathID(w, r, "departmentId", "department")
	if !ok {
		return
	}

	// Notes are optional, so an empty body is accepted.
	var req dto.RemoveDepartmentRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.assignmentUsecase.RemoveDepartment(r.Context(), currentUser(r), doctorID, departmentID, &req); err != nil {
		response.FromError(w, err, "Failed to remove department")
		return
	}

	response.Success(w, http.StatusOK, "Doctor removed from department successfully", nil)
}

func (h *DoctorAssignmentHandler) TransferDepartment(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.TransferDepartmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	link, err := h.assignmentUsecase.TransferDepartment(r.Context(), currentUser(r), doctorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to transfer doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor transferred successfully", link)
}

func (h *DoctorAssignmentHandler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	links, err := h.assignmentUsecase.GetDepartments(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err, "Failed to get doctor departments")
		return
	}

	response.Success(w, http.StatusOK, "Doctor departments retrieved successfully", links)
}

func (h *DoctorAssignmentHandler) GrantServiceCategory(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.GrantServiceCategoryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	grant, err := h.assignmentUsecase.GrantServiceCategory(r.Context(), currentUser(r), doctorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to grant service category")
		return
	}

	response.Success(w, http.StatusCreated, "Service category granted successfully", grant)
}

func (h *DoctorAssignmentHandler) RevokeServiceCategory(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryId", "service category")
	if !ok {
		return
	}

	if err := h.assignmentUsecase.RevokeServiceCategory(r.Context(), currentUser(r), doctorID, categoryID); err != nil {
		response.FromError(w, err, "Failed to revoke service category")
		return
	}

	response.Success(w, http.StatusOK, "Service category revoked successfully", nil)
}

func (h *DoctorAssignmentHandler) GetServiceCategories(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	grants, err := h.assignmentUsecase.GetServiceCategories(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err, "Failed to get doctor service categories")
		return
	}

	response.Success(w, http.StatusOK, "Doctor service categories retrieved successfully", grants)
}

func (h *DoctorAssignmentHandler) GetAllHistory(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	q := r.URL.Query()
	query := &dto.HistoryQuery{
		DoctorID:     queryInt(r, "doctor_id"),
		DepartmentID: queryInt(r, "department_id"),
		ActionType:   strings.TrimSpace(q.Get("action_type")),
		From:         q.Get("from"),
		To:           q.Get("to"),
		Page:         page.Page,
		Limit:        page.Limit,
	}

	history, total, err := h.historyUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.FromError(w, err, "Failed to get assignment history")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Assignment history retrieved successfully", history, response.NewMeta(page.Page, page.Limit, total))
}

func (h *DoctorAssignmentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "history")
	if !ok {
		return
	}

	history, err := h.historyUsecase.GetByID(r.Context(), int64(id))
	if err != nil {
		response.FromError(w, err, "Failed to get assignment history")
		return
	}

	response.Success(w, http.StatusOK, "Assignment history retrieved successfully", history)
}

func (h *DoctorAssignmentHandler) GetHistoryStats(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	stats, err := h.historyUsecase.GetStats(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err, "Failed to get assignment history stats")
		return
	}

	response.Success(w, http.StatusOK, "Assignment history stats retrieved successfully", stats)
}
