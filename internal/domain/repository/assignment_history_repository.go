package repository

import (
	"clinic-admin/internal/domain/entity"

	"gorm.io/gorm"
)

type AssignmentHistoryRepository interface {
	Create(db *gorm.DB, history *entity.DoctorAssignmentHistory) error
	FindByID(db *gorm.DB, id int64) (*entity.DoctorAssignmentHistory, error)
	FindAll(db *gorm.DB, filter *entity.HistoryFilter) ([]entity.DoctorAssignmentHistory, int64, error)
	CountByAction(db *gorm.DB, doctorID int) ([]entity.ActionCount, error)
}
