package dto

// Request DTOs

type CreateSpecializationRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=150"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateSpecializationRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=150"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active"`
}

// Response DTOs

type SpecializationResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	AuditInfo
}
