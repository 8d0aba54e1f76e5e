package handler

import (
	"context"
	"errors"
	"net/http"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/delivery/http/middleware"
	"clinic-admin/internal/usecase"
	"clinic-admin/pkg/response"
	"clinic-admin/pkg/validator"
)

// TokenIssuer hands out request verification tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, subject string) (string, error)
}

type InsuranceHandler struct {
	insuranceUsecase usecase.InsuranceUsecase
	tokens           TokenIssuer
	validator        *validator.CustomValidator
}

func NewInsuranceHandler(insuranceUsecase usecase.InsuranceUsecase, tokens TokenIssuer, validator *validator.CustomValidator) *InsuranceHandler {
	return &InsuranceHandler{
		insuranceUsecase: insuranceUsecase,
		tokens:           tokens,
		validator:        validator,
	}
}

// GetAntiForgeryToken issues the token that the save endpoint expects.
func (h *InsuranceHandler) GetAntiForgeryToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	token, err := h.tokens.Issue(r.Context(), userID.String())
	if err != nil {
		response.FromError(w, err, "Failed to issue request token")
		return
	}

	response.Success(w, http.StatusOK, "Request token issued successfully", dto.AntiForgeryResponse{
		Token:     token,
		HeaderKey: middleware.AntiForgeryHeader,
		FormKey:   middleware.AntiForgeryFormField,
	})
}

func (h *InsuranceHandler) LoadInsurance(w http.ResponseWriter, r *http.Request) {
	patientID := queryInt(r, "patientId")
	if patientID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	data, err := h.insuranceUsecase.LoadInsurance(r.Context(), patientID)
	if err != nil {
		response.FromError(w, err, "Failed to load insurance")
		return
	}

	response.Success(w, http.StatusOK, "Insurance loaded successfully", data)
}

// SaveInsurance accepts the form as JSON or form-encoded fields. On failure the
// envelope still carries the workflow outcome so the desk can show its state.
func (h *InsuranceHandler) SaveInsurance(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveInsuranceRequest
	if isFormRequest(r) {
		if !h.decodeSaveForm(w, r, &req) {
			return
		}
	} else if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.insuranceUsecase.SaveInsurance(r.Context(), currentUser(r), &req)
	if err != nil {
		if result != nil {
			response.FromErrorWithData(w, err, "Failed to save insurance", result)
			return
		}
		response.FromError(w, err, "Failed to save insurance")
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *InsuranceHandler) decodeSaveForm(w http.ResponseWriter, r *http.Request, req *dto.SaveInsuranceRequest) bool {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	patientID, errPatient := formInt(r, "patient_id")
	primaryID, errPrimary := formInt(r, "primary_insurer_id")
	supplementaryID, errSupplementary := formInt(r, "supplementary_insurer_id")
	if err := errors.Join(errPatient, errPrimary, errSupplementary); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if patientID != nil {
		req.PatientID = *patientID
	}
	req.PrimaryInsurerID = primaryID
	req.PolicyNumber = r.PostFormValue("policy_number")
	req.PrimaryExpiryDate = r.PostFormValue("primary_expiry_date")
	req.SupplementaryInsurerID = supplementaryID
	req.SupplementaryPolicyNumber = r.PostFormValue("supplementary_policy_number")
	req.SupplementaryExpiryDate = r.PostFormValue("supplementary_expiry_date")
	req.Notes = r.PostFormValue("notes")

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}
	return true
}
