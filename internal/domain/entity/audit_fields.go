package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditFields is embedded by every clinic record. Rows are never physically
// removed: IsDeleted hides them from normal reads.
type AuditFields struct {
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	IsDeleted bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *uuid.UUID `gorm:"type:uuid" json:"deleted_by,omitempty"`
}

// StampCreate records the creating user.
func (a *AuditFields) StampCreate(by *uuid.UUID) {
	a.CreatedBy = by
	a.UpdatedBy = by
}

// StampUpdate records the updating user.
func (a *AuditFields) StampUpdate(by *uuid.UUID) {
	a.UpdatedBy = by
}

// MarkDeleted hides the record.
func (a *AuditFields) MarkDeleted(by *uuid.UUID, at time.Time) {
	a.IsDeleted = true
	a.DeletedAt = &at
	a.DeletedBy = by
	a.UpdatedBy = by
}

// Restore un-hides a soft deleted record.
func (a *AuditFields) Restore(by *uuid.UUID) {
	a.IsDeleted = false
	a.DeletedAt = nil
	a.DeletedBy = nil
	a.UpdatedBy = by
}
