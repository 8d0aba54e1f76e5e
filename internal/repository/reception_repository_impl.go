package repository

import (
	"time"

	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type receptionRepository struct{}

func NewReceptionRepository() domainRepo.ReceptionRepository {
	return &receptionRepository{}
}

// Create inserts the reception and its items.
func (r *receptionRepository) Create(db *gorm.DB, reception *entity.Reception) error {
	return db.Omit("Patient", "Department", "Doctor").Create(reception).Error
}

func (r *receptionRepository) FindByID(db *gorm.DB, id int) (*entity.Reception, error) {
	var reception entity.Reception
	query := db.Scopes(notDeleted("receptions")).
		Preload("Patient").
		Preload("Department").
		Preload("Doctor").
		Preload("Items.MedicalService").
		Where("id = ?", id)
	found, err := first(query, &reception)
	if err != nil || !found {
		return nil, err
	}
	return &reception, nil
}

func (r *receptionRepository) FindAll(db *gorm.DB, filter *entity.ReceptionFilter) ([]entity.Reception, int64, error) {
	var receptions []entity.Reception
	var total int64

	query := db.Model(&entity.Reception{}).Scopes(notDeleted("receptions"))
	if filter.Date != nil {
		start := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		query = query.Where("appointment_at >= ? AND appointment_at < ?", start, start.AddDate(0, 0, 1))
	}
	if filter.DoctorID > 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.DepartmentID > 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.PatientID > 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Patient").Preload("Doctor").Preload("Department").
		Scopes(paginate(filter.Limit, filter.Offset)).
		Order("appointment_at DESC").
		Find(&receptions).Error
	if err != nil {
		return nil, 0, err
	}
	return receptions, total, nil
}

// FindBookedTimes returns the appointment instants of the doctor's live
// registered receptions in [from, to).
func (r *receptionRepository) FindBookedTimes(db *gorm.DB, doctorID int, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := db.Model(&entity.Reception{}).
		Scopes(notDeleted("receptions")).
		Where("doctor_id = ? AND status = ?", doctorID, entity.ReceptionStatusRegistered).
		Where("appointment_at >= ? AND appointment_at < ?", from, to).
		Order("appointment_at ASC").
		Pluck("appointment_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *receptionRepository) Cancel(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	result := db.Model(&entity.Reception{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, entity.ReceptionStatusRegistered, false).
		Updates(map[string]interface{}{
			"status":     entity.ReceptionStatusCancelled,
			"updated_by": by,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
