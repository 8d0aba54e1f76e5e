package dto

import (
	"time"

	"github.com/google/uuid"
)

// AuditInfo exposes the audit columns of a record.
type AuditInfo struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ListQuery is the search + page query shared by catalog listings.
type ListQuery struct {
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}

// Option is a compact id/label pair for dropdowns.
type Option struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}
