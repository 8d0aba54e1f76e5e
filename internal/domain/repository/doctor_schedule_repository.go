package repository

import (
	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.DoctorSchedule) error
	FindByID(db *gorm.DB, id int) (*entity.DoctorSchedule, error)
	FindActiveByDoctor(db *gorm.DB, doctorID int) (*entity.DoctorSchedule, error)
	FindAll(db *gorm.DB, doctorID int, limit, offset int) ([]entity.DoctorSchedule, int64, error)
	Update(db *gorm.DB, schedule *entity.DoctorSchedule) error
	ReplaceWorkDays(db *gorm.DB, scheduleID int, workDays []entity.DoctorWorkDay) error
	SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
}
