package dto

import "github.com/shopspring/decimal"

// Request DTOs

type CreateDepartmentRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=150"`
	Code           string `json:"code" validate:"required,max=30"`
	Description    string `json:"description"`
	Location       string `json:"location" validate:"omitempty,max=255"`
	PhoneExtension string `json:"phone_extension" validate:"omitempty,max=10"`
	IsActive       *bool  `json:"is_active"`
}

type UpdateDepartmentRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=150"`
	Code           *string `json:"code" validate:"omitempty,max=30"`
	Description    *string `json:"description"`
	Location       *string `json:"location" validate:"omitempty,max=255"`
	PhoneExtension *string `json:"phone_extension" validate:"omitempty,max=10"`
	IsActive       *bool   `json:"is_active"`
}

type CreateServiceCategoryRequest struct {
	DepartmentID int    `json:"department_id" validate:"required,gt=0"`
	Title        string `json:"title" validate:"required,min=2,max=150"`
	Code         string `json:"code" validate:"required,max=30"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateServiceCategoryRequest struct {
	DepartmentID *int    `json:"department_id" validate:"omitempty,gt=0"`
	Title        *string `json:"title" validate:"omitempty,min=2,max=150"`
	Code         *string `json:"code" validate:"omitempty,max=30"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

type CreateMedicalServiceRequest struct {
	ServiceCategoryID int             `json:"service_category_id" validate:"required,gt=0"`
	Title             string          `json:"title" validate:"required,min=2,max=200"`
	Code              string          `json:"code" validate:"required,max=30"`
	Price             decimal.Decimal `json:"price"`
	IsActive          *bool           `json:"is_active"`
}

type UpdateMedicalServiceRequest struct {
	ServiceCategoryID *int             `json:"service_category_id" validate:"omitempty,gt=0"`
	Title             *string          `json:"title" validate:"omitempty,min=2,max=200"`
	Code              *string          `json:"code" validate:"omitempty,max=30"`
	Price             *decimal.Decimal `json:"price"`
	IsActive          *bool            `json:"is_active"`
}

type CatalogQuery struct {
	Search       string
	DepartmentID int
	IsActive     *bool
	Page         int
	Limit        int
}

// Response DTOs

type DepartmentResponse struct {
	ID                int                       `json:"id"`
	Name              string                    `json:"name"`
	Code              string                    `json:"code"`
	Description       string                    `json:"description,omitempty"`
	Location          string                    `json:"location,omitempty"`
	PhoneExtension    string                    `json:"phone_extension,omitempty"`
	IsActive          bool                      `json:"is_active"`
	ServiceCategories []ServiceCategoryResponse `json:"service_categories,omitempty"`
	AuditInfo
}

type ServiceCategoryResponse struct {
	ID           int                      `json:"id"`
	DepartmentID int                      `json:"department_id"`
	Department   string                   `json:"department,omitempty"`
	Title        string                   `json:"title"`
	Code         string                   `json:"code"`
	Description  string                   `json:"description,omitempty"`
	IsActive     bool                     `json:"is_active"`
	Services     []MedicalServiceResponse `json:"services,omitempty"`
	AuditInfo
}

type MedicalServiceResponse struct {
	ID                int             `json:"id"`
	ServiceCategoryID int             `json:"service_category_id"`
	ServiceCategory   string          `json:"service_category,omitempty"`
	Title             string          `json:"title"`
	Code              string          `json:"code"`
	Price             decimal.Decimal `json:"price"`
	IsActive          bool            `json:"is_active"`
	AuditInfo
}
