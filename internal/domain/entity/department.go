package entity

// Department is a clinical unit doctors are assigned to.
type Department struct {
	ID             int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string `gorm:"type:varchar(150);not null" json:"name"`
	Code           string `gorm:"type:varchar(30);not null" json:"code"`
	Description    string `gorm:"type:text" json:"description,omitempty"`
	Location       string `gorm:"type:varchar(255)" json:"location,omitempty"`
	PhoneExtension string `gorm:"type:varchar(10)" json:"phone_extension,omitempty"`
	IsActive       bool   `gorm:"not null;default:true" json:"is_active"`
	AuditFields

	ServiceCategories []ServiceCategory `gorm:"foreignKey:DepartmentID" json:"service_categories,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}

// ListFilter is the generic search + page filter for simple catalogs.
type ListFilter struct {
	Search   string
	IsActive *bool
	Limit    int
	Offset   int
}
