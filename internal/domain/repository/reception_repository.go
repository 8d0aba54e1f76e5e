package repository

import (
	"time"

	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceptionRepository interface {
	Create(db *gorm.DB, reception *entity.Reception) error
	FindByID(db *gorm.DB, id int) (*entity.Reception, error)
	FindAll(db *gorm.DB, filter *entity.ReceptionFilter) ([]entity.Reception, int64, error)
	FindBookedTimes(db *gorm.DB, doctorID int, from, to time.Time) ([]time.Time, error)
	Cancel(db *gorm.DB, id int, by *uuid.UUID) (int64, error)
}
