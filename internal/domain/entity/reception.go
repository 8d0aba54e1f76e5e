package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceptionStatus is the lifecycle state of a reception.
type ReceptionStatus string

const (
	ReceptionStatusRegistered ReceptionStatus = "registered"
	ReceptionStatusCancelled  ReceptionStatus = "cancelled"
)

// Payment methods.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentNone = "none"
)

// Reception is a patient visit registered at the front desk, with its
// services and payment split.
type Reception struct {
	ID                 int             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID          int             `gorm:"not null;index" json:"patient_id"`
	DepartmentID       int             `gorm:"not null;index" json:"department_id"`
	DoctorID           int             `gorm:"not null;index" json:"doctor_id"`
	AppointmentAt      time.Time       `gorm:"not null;index" json:"appointment_at"`
	Status             ReceptionStatus `gorm:"type:varchar(20);not null;default:'registered'" json:"status"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	InsuranceShare     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"insurance_share"`
	SupplementaryShare decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"supplementary_share"`
	PatientShare       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"patient_share"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"paid_amount"`
	PaymentMethod      string          `gorm:"type:varchar(10);not null;default:'none'" json:"payment_method"`
	Notes              string          `gorm:"type:text" json:"notes,omitempty"`
	AuditFields

	Patient    *Patient        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Department *Department     `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Doctor     *Doctor         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Items      []ReceptionItem `gorm:"foreignKey:ReceptionID" json:"items,omitempty"`
}

func (Reception) TableName() string {
	return "receptions"
}

// IsCancelled checks if reception is cancelled
func (r *Reception) IsCancelled() bool {
	return r.Status == ReceptionStatusCancelled
}

// ReceptionItem is one service line of a reception.
type ReceptionItem struct {
	ID               int             `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceptionID      int             `gorm:"not null;index" json:"reception_id"`
	MedicalServiceID int             `gorm:"not null" json:"medical_service_id"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"`

	MedicalService *MedicalService `gorm:"foreignKey:MedicalServiceID" json:"medical_service,omitempty"`
}

func (ReceptionItem) TableName() string {
	return "reception_items"
}

// ReceptionFilter narrows reception listings.
type ReceptionFilter struct {
	Date         *time.Time
	DoctorID     int
	DepartmentID int
	PatientID    int
	Status       ReceptionStatus
	Limit        int
	Offset       int
}
