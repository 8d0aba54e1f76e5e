package dto

import (
	"time"

	"clinic-admin/internal/billing"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePatientRequest struct {
	FirstName    string `json:"first_name" validate:"required,min=2,max=100"`
	LastName     string `json:"last_name" validate:"required,min=2,max=100"`
	NationalCode string `json:"national_code" validate:"required,national_code"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	BirthDate    string `json:"birth_date" validate:"omitempty,date"`
	Gender       string `json:"gender" validate:"omitempty,oneof=M F"`
	Address      string `json:"address"`
}

type ServiceLineRequest struct {
	ServiceID int `json:"service_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gte=1,lte=100"`
}

type CalculateServicesRequest struct {
	PatientID    int                  `json:"patient_id" validate:"required,gt=0"`
	DepartmentID int                  `json:"department_id" validate:"omitempty,gt=0"`
	DoctorID     int                  `json:"doctor_id" validate:"omitempty,gt=0"`
	ServiceDate  string               `json:"service_date" validate:"omitempty,date"`
	Services     []ServiceLineRequest `json:"services" validate:"required,min=1,dive"`
}

type CreateReceptionRequest struct {
	PatientID     int                  `json:"patient_id" validate:"required,gt=0"`
	DepartmentID  int                  `json:"department_id" validate:"required,gt=0"`
	DoctorID      int                  `json:"doctor_id" validate:"required,gt=0"`
	AppointmentAt time.Time            `json:"appointment_at" validate:"required"`
	Services      []ServiceLineRequest `json:"services" validate:"required,min=1,dive"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	PaymentMethod string               `json:"payment_method" validate:"omitempty,oneof=cash card none"`
	Notes         string               `json:"notes"`
}

type ReceptionQuery struct {
	Date         string
	DoctorID     int
	DepartmentID int
	PatientID    int
	Status       string
	Page         int
	Limit        int
}

type SaveInsuranceRequest struct {
	PatientID                 int    `json:"patient_id" validate:"required,gt=0"`
	PrimaryInsurerID          *int   `json:"primary_insurer_id"`
	PolicyNumber              string `json:"policy_number" validate:"max=30"`
	PrimaryExpiryDate         string `json:"primary_expiry_date" validate:"omitempty,date"`
	SupplementaryInsurerID    *int   `json:"supplementary_insurer_id"`
	SupplementaryPolicyNumber string `json:"supplementary_policy_number" validate:"max=30"`
	SupplementaryExpiryDate   string `json:"supplementary_expiry_date" validate:"omitempty,date"`
	Notes                     string `json:"notes"`
}

type CreateInsurerRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=150"`
	Code            string          `json:"code" validate:"required,max=30"`
	Type            string          `json:"type" validate:"required,oneof=basic supplementary"`
	CoveragePercent decimal.Decimal `json:"coverage_percent"`
	IsActive        *bool           `json:"is_active"`
}

// Response DTOs

type PatientResponse struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	NationalCode string `json:"national_code"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	BirthDate    string `json:"birth_date,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Address      string `json:"address,omitempty"`
}

// DepartmentLoadResponse lists only doctors that are linked to the department
// and hold a live grant for at least one of its categories.
type DepartmentLoadResponse struct {
	Department        DepartmentResponse        `json:"department"`
	Doctors           []DoctorSummary           `json:"doctors"`
	ServiceCategories []ServiceCategoryResponse `json:"service_categories"`
	Services          []MedicalServiceResponse  `json:"services"`
	AuthorizedDoctors []CategoryDoctors         `json:"authorized_doctors"`
}

// CategoryDoctors maps a service category to the department doctors allowed to perform it.
type CategoryDoctors struct {
	ServiceCategoryID int   `json:"service_category_id"`
	DoctorIDs         []int `json:"doctor_ids"`
}

type CalculationResponse struct {
	PatientID int `json:"patient_id"`
	billing.Breakdown
}

type ReceptionItemResponse struct {
	ServiceID  int             `json:"service_id"`
	Title      string          `json:"title,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type ReceptionResponse struct {
	ID                 int                     `json:"id"`
	Patient            *PatientResponse        `json:"patient,omitempty"`
	PatientID          int                     `json:"patient_id"`
	DepartmentID       int                     `json:"department_id"`
	Department         string                  `json:"department,omitempty"`
	DoctorID           int                     `json:"doctor_id"`
	Doctor             string                  `json:"doctor,omitempty"`
	AppointmentAt      time.Time               `json:"appointment_at"`
	Status             string                  `json:"status"`
	Items              []ReceptionItemResponse `json:"items,omitempty"`
	TotalAmount        decimal.Decimal         `json:"total_amount"`
	InsuranceShare     decimal.Decimal         `json:"insurance_share"`
	SupplementaryShare decimal.Decimal         `json:"supplementary_share"`
	PatientShare       decimal.Decimal         `json:"patient_share"`
	PaidAmount         decimal.Decimal         `json:"paid_amount"`
	Balance            decimal.Decimal         `json:"balance"`
	PaymentMethod      string                  `json:"payment_method"`
	Notes              string                  `json:"notes,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
}

type InsurerResponse struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Type            string          `json:"type"`
	CoveragePercent decimal.Decimal `json:"coverage_percent"`
	IsActive        bool            `json:"is_active"`
}

type InsuranceFormResponse struct {
	PatientID                 int    `json:"patient_id"`
	PrimaryInsurerID          *int   `json:"primary_insurer_id"`
	PolicyNumber              string `json:"policy_number"`
	PrimaryExpiryDate         string `json:"primary_expiry_date"`
	SupplementaryInsurerID    *int   `json:"supplementary_insurer_id"`
	SupplementaryPolicyNumber string `json:"supplementary_policy_number"`
	SupplementaryExpiryDate   string `json:"supplementary_expiry_date"`
	Notes                     string `json:"notes"`
}

type InsuranceLoadResponse struct {
	Patient               PatientResponse       `json:"patient"`
	Insurance             InsuranceFormResponse `json:"insurance"`
	PrimaryInsurers       []InsurerResponse     `json:"primary_insurers"`
	SupplementaryInsurers []InsurerResponse     `json:"supplementary_insurers"`
}

type AntiForgeryResponse struct {
	Token     string `json:"token"`
	HeaderKey string `json:"header_name"`
	FormKey   string `json:"form_field"`
}
