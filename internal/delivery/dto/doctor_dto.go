package dto

import "github.com/google/uuid"

// Request DTOs

type CreateDoctorRequest struct {
	UserID               *uuid.UUID `json:"user_id"`
	FirstName            string     `json:"first_name" validate:"required,min=2,max=100"`
	LastName             string     `json:"last_name" validate:"required,min=2,max=100"`
	NationalCode         string     `json:"national_code" validate:"required,national_code"`
	MedicalCouncilNumber string     `json:"medical_council_number" validate:"required,max=30"`
	Gender               string     `json:"gender" validate:"omitempty,oneof=M F"`
	PhoneNumber          string     `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Email                string     `json:"email" validate:"omitempty,email"`
	Degree               string     `json:"degree" validate:"omitempty,max=100"`
	Biography            string     `json:"biography" validate:"omitempty"`
	IsActive             *bool      `json:"is_active"`
	SpecializationIDs    []int      `json:"specialization_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateDoctorRequest struct {
	FirstName            *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName             *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	NationalCode         *string `json:"national_code" validate:"omitempty,national_code"`
	MedicalCouncilNumber *string `json:"medical_council_number" validate:"omitempty,max=30"`
	Gender               *string `json:"gender" validate:"omitempty,oneof=M F"`
	PhoneNumber          *string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Degree               *string `json:"degree" validate:"omitempty,max=100"`
	Biography            *string `json:"biography"`
	IsActive             *bool   `json:"is_active"`
	SpecializationIDs    *[]int  `json:"specialization_ids" validate:"omitempty,dive,gt=0"`
}

type DoctorListQuery struct {
	Search           string
	DepartmentID     int
	SpecializationID int
	IsActive         *bool
	Page             int
	Limit            int
}

// Response DTOs

type DoctorResponse struct {
	ID                   int                          `json:"id"`
	UserID               *uuid.UUID                   `json:"user_id,omitempty"`
	FirstName            string                       `json:"first_name"`
	LastName             string                       `json:"last_name"`
	FullName             string                       `json:"full_name"`
	NationalCode         string                       `json:"national_code"`
	MedicalCouncilNumber string                       `json:"medical_council_number"`
	Gender               string                       `json:"gender,omitempty"`
	PhoneNumber          string                       `json:"phone_number,omitempty"`
	Email                string                       `json:"email,omitempty"`
	Degree               string                       `json:"degree,omitempty"`
	Biography            string                       `json:"biography,omitempty"`
	IsActive             bool                         `json:"is_active"`
	Specializations      []SpecializationResponse     `json:"specializations"`
	Departments          []DoctorDepartmentResponse   `json:"departments,omitempty"`
	ServiceCategories    []DoctorServiceGrantResponse `json:"service_categories,omitempty"`
	AuditInfo
}

// DoctorSummary is the short doctor shape embedded in other responses.
type DoctorSummary struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}
