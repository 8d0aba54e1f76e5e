package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Doctor is a member of the medical staff.
type Doctor struct {
	ID                   int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID               *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	FirstName            string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName             string     `gorm:"type:varchar(100);not null;index" json:"last_name"`
	NationalCode         string     `gorm:"type:char(10);not null" json:"national_code"`
	MedicalCouncilNumber string     `gorm:"type:varchar(30);not null" json:"medical_council_number"`
	Gender               string     `gorm:"type:char(1)" json:"gender,omitempty"`
	PhoneNumber          string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Email                string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Degree               string     `gorm:"type:varchar(100)" json:"degree,omitempty"`
	Biography            string     `gorm:"type:text" json:"biography,omitempty"`
	IsActive             bool       `gorm:"not null;default:true;index" json:"is_active"`
	AuditFields

	// Relationships
	Specializations   []Specialization        `gorm:"many2many:doctor_specializations;" json:"specializations,omitempty"`
	Departments       []DoctorDepartment      `gorm:"foreignKey:DoctorID" json:"departments,omitempty"`
	ServiceCategories []DoctorServiceCategory `gorm:"foreignKey:DoctorID" json:"service_categories,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// FullName joins first and last name.
func (d *Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// DoctorFilter narrows doctor listings. Zero values mean "no filter".
type DoctorFilter struct {
	Search           string // name, national code or council number (ILIKE)
	DepartmentID     int
	SpecializationID int
	IsActive         *bool
	Limit            int
	Offset           int
}
