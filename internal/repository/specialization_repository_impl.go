package repository

import (
	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type specializationRepository struct{}

func NewSpecializationRepository() domainRepo.SpecializationRepository {
	return &specializationRepository{}
}

func (r *specializationRepository) Create(db *gorm.DB, specialization *entity.Specialization) error {
	return db.Create(specialization).Error
}

func (r *specializationRepository) FindByID(db *gorm.DB, id int) (*entity.Specialization, error) {
	var specialization entity.Specialization
	found, err := first(db.Scopes(notDeleted("specializations")).Where("id = ?", id), &specialization)
	if err != nil || !found {
		return nil, err
	}
	return &specialization, nil
}

func (r *specializationRepository) FindByIDs(db *gorm.DB, ids []int) ([]entity.Specialization, error) {
	var specializations []entity.Specialization
	if len(ids) == 0 {
		return specializations, nil
	}
	err := db.Scopes(notDeleted("specializations")).Where("id IN ?", ids).Find(&specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}

func (r *specializationRepository) FindAll(db *gorm.DB, filter *entity.ListFilter) ([]entity.Specialization, int64, error) {
	var specializations []entity.Specialization
	var total int64

	query := db.Model(&entity.Specialization{}).Scopes(notDeleted("specializations"))
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", like(filter.Search))
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Scopes(paginate(filter.Limit, filter.Offset)).
		Order("display_order ASC, name ASC").
		Find(&specializations).Error
	if err != nil {
		return nil, 0, err
	}
	return specializations, total, nil
}

func (r *specializationRepository) Update(db *gorm.DB, specialization *entity.Specialization) error {
	return db.Save(specialization).Error
}

func (r *specializationRepository) SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return softDelete(db, &entity.Specialization{}, id, by)
}

func (r *specializationRepository) Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return restore(db, &entity.Specialization{}, id, by)
}

func (r *specializationRepository) ExistsByName(db *gorm.DB, name string, excludeID int) (bool, error) {
	return exists(db, &entity.Specialization{}, "name", name, excludeID)
}

// CountDoctors counts live doctors holding the specialization.
func (r *specializationRepository) CountDoctors(db *gorm.DB, id int) (int64, error) {
	var count int64
	err := db.Table("doctor_specializations").
		Joins("JOIN doctors ON doctors.id = doctor_specializations.doctor_id").
		Where("doctor_specializations.specialization_id = ? AND doctors.is_deleted = ?", id, false).
		Count(&count).Error
	return count, err
}
