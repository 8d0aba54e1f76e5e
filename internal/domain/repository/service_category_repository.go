package repository

import (
	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceCategoryRepository interface {
	Create(db *gorm.DB, category *entity.ServiceCategory) error
	FindByID(db *gorm.DB, id int) (*entity.ServiceCategory, error)
	FindAll(db *gorm.DB, filter *entity.ServiceCategoryFilter) ([]entity.ServiceCategory, int64, error)
	FindByDepartment(db *gorm.DB, departmentID int) ([]entity.ServiceCategory, error)
	Update(db *gorm.DB, category *entity.ServiceCategory) error
	SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	ExistsByCode(db *gorm.DB, code string, excludeID int) (bool, error)
}

type MedicalServiceRepository interface {
	Create(db *gorm.DB, service *entity.MedicalService) error
	FindByID(db *gorm.DB, id int) (*entity.MedicalService, error)
	FindByIDs(db *gorm.DB, ids []int) ([]entity.MedicalService, error)
	FindAll(db *gorm.DB, filter *entity.ServiceCategoryFilter) ([]entity.MedicalService, int64, error)
	FindByDepartment(db *gorm.DB, departmentID int) ([]entity.MedicalService, error)
	Update(db *gorm.DB, service *entity.MedicalService) error
	SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	ExistsByCode(db *gorm.DB, code string, excludeID int) (bool, error)
}
