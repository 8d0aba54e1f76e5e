package entity

// Specialization is a medical specialty a doctor can hold.
type Specialization struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(150);not null" json:"name"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	DisplayOrder int    `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
	AuditFields
}

func (Specialization) TableName() string {
	return "specializations"
}
