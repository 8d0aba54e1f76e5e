package repository

import (
	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpecializationRepository interface {
	Create(db *gorm.DB, specialization *entity.Specialization) error
	FindByID(db *gorm.DB, id int) (*entity.Specialization, error)
	FindByIDs(db *gorm.DB, ids []int) ([]entity.Specialization, error)
	FindAll(db *gorm.DB, filter *entity.ListFilter) ([]entity.Specialization, int64, error)
	Update(db *gorm.DB, specialization *entity.Specialization) error
	SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
	ExistsByName(db *gorm.DB, name string, excludeID int) (bool, error)
	CountDoctors(db *gorm.DB, id int) (int64, error)
}
