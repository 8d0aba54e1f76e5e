package repository

import (
	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(db *gorm.DB, department *entity.Department) error
	FindByID(db *gorm.DB, id int) (*entity.Department, error)
	FindAll(db *gorm.DB, filter *entity.ListFilter) ([]entity.Department, int64, error)
	Update(db *gorm.DB, department *entity.Department) error
	SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	ExistsByCode(db *gorm.DB, code string, excludeID int) (bool, error)
	CountActiveDoctors(db *gorm.DB, id int) (int64, error)
}
