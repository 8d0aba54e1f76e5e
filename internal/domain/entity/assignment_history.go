package entity

import (
	"time"

	"github.com/google/uuid"
)

// Assignment history action types.
const (
	HistoryActionAssign   = "assign"
	HistoryActionRemove   = "remove"
	HistoryActionTransfer = "transfer"
	HistoryActionUpdate   = "update"
	HistoryActionGrant    = "grant"
	HistoryActionRevoke   = "revoke"
	HistoryActionRestore  = "restore"
)

// DoctorAssignmentHistory is an append-only record of staffing changes.
type DoctorAssignmentHistory struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID          int        `gorm:"not null;index" json:"doctor_id"`
	DepartmentID      *int       `gorm:"index" json:"department_id,omitempty"`
	ServiceCategoryID *int       `gorm:"index" json:"service_category_id,omitempty"`
	ActionType        string     `gorm:"type:varchar(20);not null;index" json:"action_type"`
	ActionDescription string     `gorm:"type:varchar(500)" json:"action_description,omitempty"`
	PreviousValues    JSON       `gorm:"type:jsonb" json:"previous_values,omitempty"`
	NewValues         JSON       `gorm:"type:jsonb" json:"new_values,omitempty"`
	Notes             string     `gorm:"type:text" json:"notes,omitempty"`
	PerformedBy       *uuid.UUID `gorm:"type:uuid" json:"performed_by,omitempty"`
	PerformedAt       time.Time  `gorm:"not null;index" json:"performed_at"`

	Doctor          *Doctor          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Department      *Department      `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	ServiceCategory *ServiceCategory `gorm:"foreignKey:ServiceCategoryID" json:"service_category,omitempty"`
}

func (DoctorAssignmentHistory) TableName() string {
	return "doctor_assignment_histories"
}

// HistoryFilter narrows history listings.
type HistoryFilter struct {
	DoctorID     int
	DepartmentID int
	ActionType   string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// ActionCount is one row of per-action statistics.
type ActionCount struct {
	ActionType string `json:"action_type"`
	Count      int64  `json:"count"`
}
