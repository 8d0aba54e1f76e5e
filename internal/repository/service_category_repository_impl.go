package repository

import (
	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceCategoryRepository struct{}

func NewServiceCategoryRepository() domainRepo.ServiceCategoryRepository {
	return &serviceCategoryRepository{}
}

func (r *serviceCategoryRepository) Create(db *gorm.DB, category *entity.ServiceCategory) error {
	return db.Omit("Department", "Services").Create(category).Error
}

func (r *serviceCategoryRepository) FindByID(db *gorm.DB, id int) (*entity.ServiceCategory, error) {
	var category entity.ServiceCategory
	query := db.Scopes(notDeleted("service_categories")).
		Preload("Department").
		Preload("Services", "medical_services.is_deleted = ?", false).
		Where("id = ?", id)
	found, err := first(query, &category)
	if err != nil || !found {
		return nil, err
	}
	return &category, nil
}

func (r *serviceCategoryRepository) FindAll(db *gorm.DB, filter *entity.ServiceCategoryFilter) ([]entity.ServiceCategory, int64, error) {
	var categories []entity.ServiceCategory
	var total int64

	query := db.Model(&entity.ServiceCategory{}).Scopes(notDeleted("service_categories"))
	if filter.Search != "" {
		query = query.Where("title ILIKE ? OR code ILIKE ?", like(filter.Search), like(filter.Search))
	}
	if filter.DepartmentID > 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Department").
		Scopes(paginate(filter.Limit, filter.Offset)).
		Order("title ASC").
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *serviceCategoryRepository) FindByDepartment(db *gorm.DB, departmentID int) ([]entity.ServiceCategory, error) {
	var categories []entity.ServiceCategory
	err := db.Scopes(notDeleted("service_categories")).
		Where("department_id = ? AND is_active = ?", departmentID, true).
		Order("title ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *serviceCategoryRepository) Update(db *gorm.DB, category *entity.ServiceCategory) error {
	return db.Omit("Department", "Services").Save(category).Error
}

func (r *serviceCategoryRepository) SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return softDelete(db, &entity.ServiceCategory{}, id, by)
}

func (r *serviceCategoryRepository) Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return restore(db, &entity.ServiceCategory{}, id, by)
}

func (r *serviceCategoryRepository) ExistsByCode(db *gorm.DB, code string, excludeID int) (bool, error) {
	return exists(db, &entity.ServiceCategory{}, "code", code, excludeID)
}

type medicalServiceRepository struct{}

func NewMedicalServiceRepository() domainRepo.MedicalServiceRepository {
	return &medicalServiceRepository{}
}

func (r *medicalServiceRepository) Create(db *gorm.DB, service *entity.MedicalService) error {
	return db.Omit("ServiceCategory").Create(service).Error
}

func (r *medicalServiceRepository) FindByID(db *gorm.DB, id int) (*entity.MedicalService, error) {
	var service entity.MedicalService
	found, err := first(db.Scopes(notDeleted("medical_services")).Preload("ServiceCategory").Where("id = ?", id), &service)
	if err != nil || !found {
		return nil, err
	}
	return &service, nil
}

func (r *medicalServiceRepository) FindByIDs(db *gorm.DB, ids []int) ([]entity.MedicalService, error) {
	var services []entity.MedicalService
	if len(ids) == 0 {
		return services, nil
	}
	err := db.Scopes(notDeleted("medical_services")).
		Preload("ServiceCategory").
		Where("id IN ?", ids).
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *medicalServiceRepository) FindAll(db *gorm.DB, filter *entity.ServiceCategoryFilter) ([]entity.MedicalService, int64, error) {
	var services []entity.MedicalService
	var total int64

	query := db.Model(&entity.MedicalService{}).Scopes(notDeleted("medical_services"))
	if filter.Search != "" {
		query = query.Where("medical_services.title ILIKE ? OR medical_services.code ILIKE ?", like(filter.Search), like(filter.Search))
	}
	if filter.DepartmentID > 0 {
		query = query.Joins("JOIN service_categories ON service_categories.id = medical_services.service_category_id").
			Where("service_categories.department_id = ?", filter.DepartmentID)
	}
	if filter.IsActive != nil {
		query = query.Where("medical_services.is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("ServiceCategory").
		Scopes(paginate(filter.Limit, filter.Offset)).
		Order("medical_services.title ASC").
		Find(&services).Error
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

// FindByDepartment returns the live, active services of the department's live categories.
func (r *medicalServiceRepository) FindByDepartment(db *gorm.DB, departmentID int) ([]entity.MedicalService, error) {
	var services []entity.MedicalService
	err := db.
		Joins("JOIN service_categories ON service_categories.id = medical_services.service_category_id").
		Where("service_categories.department_id = ? AND service_categories.is_deleted = ?", departmentID, false).
		Where("medical_services.is_active = ?", true).
		Scopes(notDeleted("medical_services")).
		Order("medical_services.title ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *medicalServiceRepository) Update(db *gorm.DB, service *entity.MedicalService) error {
	return db.Omit("ServiceCategory").Save(service).Error
}

func (r *medicalServiceRepository) SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return softDelete(db, &entity.MedicalService{}, id, by)
}

func (r *medicalServiceRepository) Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return restore(db, &entity.MedicalService{}, id, by)
}

func (r *medicalServiceRepository) ExistsByCode(db *gorm.DB, code string, excludeID int) (bool, error) {
	return exists(db, &entity.MedicalService{}, "code", code, excludeID)
}
