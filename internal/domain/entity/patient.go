package entity

import "time"

// Patient is a person registered at reception.
type Patient struct {
	ID           int        `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null;index" json:"last_name"`
	NationalCode string     `gorm:"type:char(10);not null" json:"national_code"`
	PhoneNumber  string     `gorm:"type:varchar(20);index" json:"phone_number,omitempty"`
	BirthDate    *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Gender       string     `gorm:"type:char(1)" json:"gender,omitempty"`
	Address      string     `gorm:"type:text" json:"address,omitempty"`
	AuditFields

	Insurance *PatientInsurance `gorm:"foreignKey:PatientID" json:"insurance,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)
