package repository

import (
	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"gorm.io/gorm"
)

type assignmentHistoryRepository struct{}

func NewAssignmentHistoryRepository() domainRepo.AssignmentHistoryRepository {
	return &assignmentHistoryRepository{}
}

func (r *assignmentHistoryRepository) Create(db *gorm.DB, history *entity.DoctorAssignmentHistory) error {
	return db.Omit("Doctor", "Department", "ServiceCategory").Create(history).Error
}

func (r *assignmentHistoryRepository) FindByID(db *gorm.DB, id int64) (*entity.DoctorAssignmentHistory, error) {
	var history entity.DoctorAssignmentHistory
	query := db.Preload("Doctor").Preload("Department").Preload("ServiceCategory").Where("id = ?", id)
	found, err := first(query, &history)
	if err != nil || !found {
		return nil, err
	}
	return &history, nil
}

func (r *assignmentHistoryRepository) FindAll(db *gorm.DB, filter *entity.HistoryFilter) ([]entity.DoctorAssignmentHistory, int64, error) {
	var histories []entity.DoctorAssignmentHistory
	var total int64

	query := db.Model(&entity.DoctorAssignmentHistory{})
	if filter.DoctorID > 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.DepartmentID > 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}
	if filter.From != nil {
		query = query.Where("performed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("performed_at < ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Doctor").Preload("Department").Preload("ServiceCategory").
		Scopes(paginate(filter.Limit, filter.Offset)).
		Order("performed_at DESC, id DESC").
		Find(&histories).Error
	if err != nil {
		return nil, 0, err
	}
	return histories, total, nil
}

func (r *assignmentHistoryRepository) CountByAction(db *gorm.DB, doctorID int) ([]entity.ActionCount, error) {
	var counts []entity.ActionCount
	err := db.Model(&entity.DoctorAssignmentHistory{}).
		Select("action_type, COUNT(*) AS count").
		Where("doctor_id = ?", doctorID).
		Group("action_type").
		Order("action_type ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
