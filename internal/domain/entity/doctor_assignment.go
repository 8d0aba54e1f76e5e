package entity

import "time"

// DoctorDepartment links a doctor to a department. Removing the link hides it;
// assigning the same pair again restores the hidden row.
type DoctorDepartment struct {
	ID           int        `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID     int        `gorm:"not null;index" json:"doctor_id"`
	DepartmentID int        `gorm:"not null;index" json:"department_id"`
	Position     string     `gorm:"type:varchar(100)" json:"position,omitempty"`
	StartDate    time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	AuditFields

	Doctor     *Doctor     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (DoctorDepartment) TableName() string {
	return "doctor_departments"
}

// Authorization levels for service categories.
const (
	AuthorizationFull       = "full"
	AuthorizationSupervised = "supervised"
	AuthorizationLimited    = "limited"
)

// DoctorServiceCategory grants a doctor the right to perform the services of a category.
type DoctorServiceCategory struct {
	ID                 int        `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID           int        `gorm:"not null;index" json:"doctor_id"`
	ServiceCategoryID  int        `gorm:"not null;index" json:"service_category_id"`
	AuthorizationLevel string     `gorm:"type:varchar(20);not null;default:'full'" json:"authorization_level"`
	GrantedDate        time.Time  `gorm:"type:date;not null" json:"granted_date"`
	ExpiryDate         *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`
	IsActive           bool       `gorm:"not null;default:true" json:"is_active"`
	AuditFields

	Doctor          *Doctor          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	ServiceCategory *ServiceCategory `gorm:"foreignKey:ServiceCategoryID" json:"service_category,omitempty"`
}

func (DoctorServiceCategory) TableName() string {
	return "doctor_service_categories"
}

// IsValidAt reports whether the grant authorizes the doctor on day at.
func (d *DoctorServiceCategory) IsValidAt(at time.Time) bool {
	if d.IsDeleted || !d.IsActive {
		return false
	}
	if d.ExpiryDate == nil {
		return true
	}
	y, m, day := at.Date()
	ey, em, eday := d.ExpiryDate.Date()
	return !time.Date(y, m, day, 0, 0, 0, 0, time.UTC).After(time.Date(ey, em, eday, 0, 0, 0, 0, time.UTC))
}
