package repository

import (
	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id int) (*entity.Doctor, error)
	FindByIDIncludingDeleted(db *gorm.DB, id int) (*entity.Doctor, error)
	FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, int64, error)
	FindByDepartment(db *gorm.DB, departmentID int) ([]entity.Doctor, error)
	FindActiveForDropdown(db *gorm.DB) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	ReplaceSpecializations(db *gorm.DB, doctor *entity.Doctor, specializations []entity.Specialization) error
	SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	ExistsByNationalCode(db *gorm.DB, code string, excludeID int) (bool, error)
	ExistsByCouncilNumber(db *gorm.DB, number string, excludeID int) (bool, error)
}
