package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insurer types.
const (
	InsurerTypeBasic         = "basic"
	InsurerTypeSupplementary = "supplementary"
)

// Insurer is an insurance company and the share of service cost it covers.
type Insurer struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"type:varchar(150);not null" json:"name"`
	Code            string          `gorm:"type:varchar(30);not null" json:"code"`
	Type            string          `gorm:"type:varchar(20);not null" json:"type"`
	CoveragePercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"coverage_percent"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`
	AuditFields
}

func (Insurer) TableName() string {
	return "insurers"
}

// PatientInsurance is the single live insurance record of a patient: a basic
// (primary) policy and an optional supplementary one.
type PatientInsurance struct {
	ID                        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID                 int        `gorm:"not null;index" json:"patient_id"`
	PrimaryInsurerID          *int       `json:"primary_insurer_id,omitempty"`
	PolicyNumber              string     `gorm:"type:varchar(30)" json:"policy_number,omitempty"`
	PrimaryExpiryDate         *time.Time `gorm:"type:date" json:"primary_expiry_date,omitempty"`
	SupplementaryInsurerID    *int       `json:"supplementary_insurer_id,omitempty"`
	SupplementaryPolicyNumber string     `gorm:"type:varchar(30)" json:"supplementary_policy_number,omitempty"`
	SupplementaryExpiryDate   *time.Time `gorm:"type:date" json:"supplementary_expiry_date,omitempty"`
	Notes                     string     `gorm:"type:text" json:"notes,omitempty"`
	AuditFields

	PrimaryInsurer       *Insurer `gorm:"foreignKey:PrimaryInsurerID" json:"primary_insurer,omitempty"`
	SupplementaryInsurer *Insurer `gorm:"foreignKey:SupplementaryInsurerID" json:"supplementary_insurer,omitempty"`
}

func (PatientInsurance) TableName() string {
	return "patient_insurances"
}
