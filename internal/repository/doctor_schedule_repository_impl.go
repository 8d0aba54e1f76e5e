package repository

import (
	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorScheduleRepository struct{}

func NewDoctorScheduleRepository() domainRepo.DoctorScheduleRepository {
	return &doctorScheduleRepository{}
}

// Create inserts the schedule together with its work days and time ranges.
func (r *doctorScheduleRepository) Create(db *gorm.DB, schedule *entity.DoctorSchedule) error {
	return db.Omit("Doctor").Create(schedule).Error
}

func preloadWorkDays(db *gorm.DB) *gorm.DB {
	return db.
		Preload("WorkDays", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week ASC")
		}).
		Preload("WorkDays.TimeRanges", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		})
}

func (r *doctorScheduleRepository) FindByID(db *gorm.DB, id int) (*entity.DoctorSchedule, error) {
	var schedule entity.DoctorSchedule
	query := db.Scopes(notDeleted("doctor_schedules"), preloadWorkDays).
		Preload("Doctor").
		Where("id = ?", id)
	found, err := first(query, &schedule)
	if err != nil || !found {
		return nil, err
	}
	return &schedule, nil
}

func (r *doctorScheduleRepository) FindActiveByDoctor(db *gorm.DB, doctorID int) (*entity.DoctorSchedule, error) {
	var schedule entity.DoctorSchedule
	query := db.Scopes(notDeleted("doctor_schedules"), preloadWorkDays).
		Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Order("id DESC")
	found, err := first(query, &schedule)
	if err != nil || !found {
		return nil, err
	}
	return &schedule, nil
}

func (r *doctorScheduleRepository) FindAll(db *gorm.DB, doctorID int, limit, offset int) ([]entity.DoctorSchedule, int64, error) {
	var schedules []entity.DoctorSchedule
	var total int64

	query := db.Model(&entity.DoctorSchedule{}).Scopes(notDeleted("doctor_schedules"))
	if doctorID > 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Scopes(preloadWorkDays, paginate(limit, offset)).
		Preload("Doctor").
		Order("doctor_id ASC, id DESC").
		Find(&schedules).Error
	if err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

func (r *doctorScheduleRepository) Update(db *gorm.DB, schedule *entity.DoctorSchedule) error {
	return db.Omit("Doctor", "WorkDays").Save(schedule).Error
}

// ReplaceWorkDays drops the current work days of the schedule and inserts workDays.
func (r *doctorScheduleRepository) ReplaceWorkDays(db *gorm.DB, scheduleID int, workDays []entity.DoctorWorkDay) error {
	dayIDs := db.Model(&entity.DoctorWorkDay{}).Select("id").Where("schedule_id = ?", scheduleID)
	if err := db.Where("work_day_id IN (?)", dayIDs).Delete(&entity.DoctorTimeRange{}).Error; err != nil {
		return err
	}
	if err := db.Where("schedule_id = ?", scheduleID).Delete(&entity.DoctorWorkDay{}).Error; err != nil {
		return err
	}
	if len(workDays) == 0 {
		return nil
	}
	for i := range workDays {
		workDays[i].ID = 0
		workDays[i].ScheduleID = scheduleID
		for j := range workDays[i].TimeRanges {
			workDays[i].TimeRanges[j].ID = 0
		}
	}
	return db.Create(&workDays).Error
}

func (r *doctorScheduleRepository) SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return softDelete(db, &entity.DoctorSchedule{}, id, by)
}
