package dto

import (
	"time"

	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type AuditLogQuery struct {
	Action string
	UserID *uuid.UUID
	Page   int
	Limit  int
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}
