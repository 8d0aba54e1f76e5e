package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-admin/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFromErrorMapsKinds(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{apperror.NotFound("doctor not found"), http.StatusNotFound, "Doctor not found"},
		{fmt.Errorf("wrap: %w", apperror.Conflict("schedule already active")), http.StatusConflict, "Schedule already active"},
		{apperror.Validation("bad range"), http.StatusBadRequest, "Bad range"},
		{apperror.Forbidden("nope"), http.StatusForbidden, "Nope"},
		{apperror.Unauthorized("token expired"), http.StatusUnauthorized, "Token expired"},
		{errors.New("db down"), http.StatusInternalServerError, "Failed to load"},
		{apperror.Internal("load", errors.New("db down")), http.StatusInternalServerError, "Failed to load"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		FromError(rec, tt.err, "Failed to load")

		assert.Equal(t, tt.status, rec.Code)
		body := decode(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, tt.message, body.Message)
	}
}

func TestFromErrorIncludesFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, apperror.Validation("validation failed").WithFields(map[string]string{"policy_number": "required"}), "x")

	body := decode(t, rec)
	assert.Equal(t, map[string]interface{}{"policy_number": "required"}, body.Error)
}

func TestFromErrorWithDataKeepsPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperror.Validation("invalid insurance form").WithFields(map[string]string{"policy_number": "required"})
	FromErrorWithData(rec, err, "Failed to save", map[string]string{"state": "editing"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, map[string]interface{}{"state": "editing"}, body.Data)
	assert.Equal(t, map[string]interface{}{"policy_number": "required"}, body.Error)
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, &Meta{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, NewMeta(2, 10, 21))
	assert.Equal(t, 0, NewMeta(1, 0, 5).TotalPages)
}

func TestFromErrorClassifiesDatabaseErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_departments_code"}), "Failed to create department")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Record already exists (uq_departments_code)", decode(t, rec).Message)
}
