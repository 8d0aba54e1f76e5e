package entity

import "github.com/shopspring/decimal"

// ServiceCategory is a billable grouping of medical services. Doctors are
// authorized per category.
type ServiceCategory struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	DepartmentID int    `gorm:"not null;index" json:"department_id"`
	Title        string `gorm:"type:varchar(150);not null" json:"title"`
	Code         string `gorm:"type:varchar(30);not null" json:"code"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
	AuditFields

	Department *Department      `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Services   []MedicalService `gorm:"foreignKey:ServiceCategoryID" json:"services,omitempty"`
}

func (ServiceCategory) TableName() string {
	return "service_categories"
}

// ServiceCategoryFilter narrows category listings.
type ServiceCategoryFilter struct {
	Search       string
	DepartmentID int
	IsActive     *bool
	Limit        int
	Offset       int
}

// MedicalService is a single priced service inside a category.
type MedicalService struct {
	ID                int             `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceCategoryID int             `gorm:"not null;index" json:"service_category_id"`
	Title             string          `gorm:"type:varchar(200);not null" json:"title"`
	Code              string          `gorm:"type:varchar(30);not null" json:"code"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	IsActive          bool            `gorm:"not null;default:true" json:"is_active"`
	AuditFields

	ServiceCategory *ServiceCategory `gorm:"foreignKey:ServiceCategoryID" json:"service_category,omitempty"`
}

func (MedicalService) TableName() string {
	return "medical_services"
}
