package dto

import (
	"time"

	"clinic-admin/internal/domain/entity"
)

// Request DTOs

type AssignDepartmentRequest struct {
	DepartmentID int    `json:"department_id" validate:"required,gt=0"`
	Position     string `json:"position" validate:"omitempty,max=100"`
	StartDate    string `json:"start_date" validate:"omitempty,date"` // Format: YYYY-MM-DD
	Notes        string `json:"notes"`
}

type RemoveDepartmentRequest struct {
	Notes string `json:"notes"`
}

type TransferDepartmentRequest struct {
	FromDepartmentID int    `json:"from_department_id" validate:"required,gt=0"`
	ToDepartmentID   int    `json:"to_department_id" validate:"required,gt=0,nefield=FromDepartmentID"`
	Position         string `json:"position" validate:"omitempty,max=100"`
	EffectiveDate    string `json:"effective_date" validate:"omitempty,date"`
	Notes            string `json:"notes"`
}

type GrantServiceCategoryRequest struct {
	ServiceCategoryID  int    `json:"service_category_id" validate:"required,gt=0"`
	AuthorizationLevel string `json:"authorization_level" validate:"omitempty,oneof=full supervised limited"`
	GrantedDate        string `json:"granted_date" validate:"omitempty,date"`
	ExpiryDate         string `json:"expiry_date" validate:"omitempty,date"`
	Notes              string `json:"notes"`
}

// Response DTOs

type DoctorDepartmentResponse struct {
	ID           int        `json:"id"`
	DoctorID     int        `json:"doctor_id"`
	DepartmentID int        `json:"department_id"`
	Department   string     `json:"department,omitempty"`
	Doctor       string     `json:"doctor,omitempty"`
	Position     string     `json:"position,omitempty"`
	StartDate    string     `json:"start_date"`
	EndDate      *string    `json:"end_date,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

type DoctorServiceGrantResponse struct {
	ID                 int     `json:"id"`
	DoctorID           int     `json:"doctor_id"`
	ServiceCategoryID  int     `json:"service_category_id"`
	ServiceCategory    string  `json:"service_category,omitempty"`
	AuthorizationLevel string  `json:"authorization_level"`
	GrantedDate        string  `json:"granted_date"`
	ExpiryDate         *string `json:"expiry_date,omitempty"`
	Notes              string  `json:"notes,omitempty"`
	IsActive           bool    `json:"is_active"`
	IsValid            bool    `json:"is_valid"`
}

type HistoryQuery struct {
	DoctorID     int
	DepartmentID int
	ActionType   string
	From         string
	To           string
	Page         int
	Limit        int
}

type AssignmentHistoryResponse struct {
	ID                int64       `json:"id"`
	DoctorID          int         `json:"doctor_id"`
	Doctor            string      `json:"doctor,omitempty"`
	DepartmentID      *int        `json:"department_id,omitempty"`
	Department        string      `json:"department,omitempty"`
	ServiceCategoryID *int        `json:"service_category_id,omitempty"`
	ServiceCategory   string      `json:"service_category,omitempty"`
	ActionType        string      `json:"action_type"`
	ActionDescription string      `json:"action_description,omitempty"`
	PreviousValues    entity.JSON `json:"previous_values,omitempty"`
	NewValues         entity.JSON `json:"new_values,omitempty"`
	Notes             string      `json:"notes,omitempty"`
	PerformedBy       string      `json:"performed_by,omitempty"`
	PerformedAt       time.Time   `json:"performed_at"`
}

type HistoryStatsResponse struct {
	DoctorID int                  `json:"doctor_id"`
	Total    int64                `json:"total"`
	ByAction []entity.ActionCount `json:"by_action"`
}
