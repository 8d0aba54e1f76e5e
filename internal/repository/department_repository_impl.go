package repository

import (
	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type departmentRepository struct{}

func NewDepartmentRepository() domainRepo.DepartmentRepository {
	return &departmentRepository{}
}

func (r *departmentRepository) Create(db *gorm.DB, department *entity.Department) error {
	return db.Create(department).Error
}

func (r *departmentRepository) FindByID(db *gorm.DB, id int) (*entity.Department, error) {
	var department entity.Department
	query := db.Scopes(notDeleted("departments")).
		Preload("ServiceCategories", "service_categories.is_deleted = ?", false).
		Where("id = ?", id)
	found, err := first(query, &department)
	if err != nil || !found {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindAll(db *gorm.DB, filter *entity.ListFilter) ([]entity.Department, int64, error) {
	var departments []entity.Department
	var total int64

	query := db.Model(&entity.Department{}).Scopes(notDeleted("departments"))
	if filter.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", like(filter.Search), like(filter.Search))
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Scopes(paginate(filter.Limit, filter.Offset)).Order("name ASC").Find(&departments).Error
	if err != nil {
		return nil, 0, err
	}
	return departments, total, nil
}

func (r *departmentRepository) Update(db *gorm.DB, department *entity.Department) error {
	return db.Omit("ServiceCategories").Save(department).Error
}

func (r *departmentRepository) SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return softDelete(db, &entity.Department{}, id, by)
}

func (r *departmentRepository) Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return restore(db, &entity.Department{}, id, by)
}

func (r *departmentRepository) ExistsByCode(db *gorm.DB, code string, excludeID int) (bool, error) {
	return exists(db, &entity.Department{}, "code", code, excludeID)
}

func (r *departmentRepository) CountActiveDoctors(db *gorm.DB, id int) (int64, error) {
	var count int64
	err := db.Model(&entity.DoctorDepartment{}).
		Where("department_id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count, err
}
