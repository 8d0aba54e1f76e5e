package repository

import (
	"time"

	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorDepartmentRepository interface {
	Create(db *gorm.DB, link *entity.DoctorDepartment) error
	FindByDoctor(db *gorm.DB, doctorID int) ([]entity.DoctorDepartment, error)
	FindByDepartment(db *gorm.DB, departmentID int) ([]entity.DoctorDepartment, error)
	FindLink(db *gorm.DB, doctorID, departmentID int, includeDeleted bool) (*entity.DoctorDepartment, error)
	Update(db *gorm.DB, link *entity.DoctorDepartment) error
	SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	SoftDeleteByDoctor(db *gorm.DB, doctorID int, by *uuid.UUID) (int64, error)
}

type DoctorServiceCategoryRepository interface {
	Create(db *gorm.DB, grant *entity.DoctorServiceCategory) error
	FindByDoctor(db *gorm.DB, doctorID int) ([]entity.DoctorServiceCategory, error)
	FindLink(db *gorm.DB, doctorID, categoryID int, includeDeleted bool) (*entity.DoctorServiceCategory, error)
	FindAuthorizedDoctors(db *gorm.DB, categoryID int, at time.Time) ([]entity.Doctor, error)
	IsAuthorized(db *gorm.DB, doctorID, categoryID int, at time.Time) (bool, error)
	Update(db *gorm.DB, grant *entity.DoctorServiceCategory) error
	SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	SoftDeleteByDoctor(db *gorm.DB, doctorID int, by *uuid.UUID) (int64, error)
}
