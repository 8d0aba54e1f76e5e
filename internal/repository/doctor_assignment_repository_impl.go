package repository

import (
	"time"

	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorDepartmentRepository struct{}

func NewDoctorDepartmentRepository() domainRepo.DoctorDepartmentRepository {
	return &doctorDepartmentRepository{}
}

func (r *doctorDepartmentRepository) Create(db *gorm.DB, link *entity.DoctorDepartment) error {
	return db.Omit("Doctor", "Department").Create(link).Error
}

func (r *doctorDepartmentRepository) FindByDoctor(db *gorm.DB, doctorID int) ([]entity.DoctorDepartment, error) {
	var links []entity.DoctorDepartment
	err := db.Scopes(notDeleted("doctor_departments")).
		Preload("Department").
		Where("doctor_id = ?", doctorID).
		Order("start_date DESC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *doctorDepartmentRepository) FindByDepartment(db *gorm.DB, departmentID int) ([]entity.DoctorDepartment, error) {
	var links []entity.DoctorDepartment
	err := db.Scopes(notDeleted("doctor_departments")).
		Preload("Doctor").
		Where("department_id = ?", departmentID).
		Order("start_date DESC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *doctorDepartmentRepository) FindLink(db *gorm.DB, doctorID, departmentID int, includeDeleted bool) (*entity.DoctorDepartment, error) {
	var link entity.DoctorDepartment
	query := db.Where("doctor_id = ? AND department_id = ?", doctorID, departmentID)
	if !includeDeleted {
		query = query.Scopes(notDeleted("doctor_departments"))
	}
	found, err := first(query.Order("is_deleted ASC, id DESC"), &link)
	if err != nil || !found {
		return nil, err
	}
	return &link, nil
}

func (r *doctorDepartmentRepository) Update(db *gorm.DB, link *entity.DoctorDepartment) error {
	return db.Omit("Doctor", "Department").Save(link).Error
}

func (r *doctorDepartmentRepository) SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return softDelete(db, &entity.DoctorDepartment{}, id, by)
}

func (r *doctorDepartmentRepository) SoftDeleteByDoctor(db *gorm.DB, doctorID int, by *uuid.UUID) (int64, error) {
	return softDeleteWhere(db, &entity.DoctorDepartment{}, "doctor_id = ?", doctorID, by)
}

type doctorServiceCategoryRepository struct{}

func NewDoctorServiceCategoryRepository() domainRepo.DoctorServiceCategoryRepository {
	return &doctorServiceCategoryRepository{}
}

func (r *doctorServiceCategoryRepository) Create(db *gorm.DB, grant *entity.DoctorServiceCategory) error {
	return db.Omit("Doctor", "ServiceCategory").Create(grant).Error
}

func (r *doctorServiceCategoryRepository) FindByDoctor(db *gorm.DB, doctorID int) ([]entity.DoctorServiceCategory, error) {
	var grants []entity.DoctorServiceCategory
	err := db.Scopes(notDeleted("doctor_service_categories")).
		Preload("ServiceCategory").
		Where("doctor_id = ?", doctorID).
		Order("granted_date DESC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *doctorServiceCategoryRepository) FindLink(db *gorm.DB, doctorID, categoryID int, includeDeleted bool) (*entity.DoctorServiceCategory, error) {
	var grant entity.DoctorServiceCategory
	query := db.Where("doctor_id = ? AND service_category_id = ?", doctorID, categoryID)
	if !includeDeleted {
		query = query.Scopes(notDeleted("doctor_service_categories"))
	}
	found, err := first(query.Order("is_deleted ASC, id DESC"), &grant)
	if err != nil || !found {
		return nil, err
	}
	return &grant, nil
}

// validGrant restricts doctor_service_categories to grants valid on day at.
func validGrant(at time.Time) func(*gorm.DB) *gorm.DB {
	day := at.Format("2006-01-02")
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("doctor_service_categories.is_deleted = ? AND doctor_service_categories.is_active = ?", false, true).
			Where("doctor_service_categories.expiry_date IS NULL OR doctor_service_categories.expiry_date >= ?", day)
	}
}

func (r *doctorServiceCategoryRepository) FindAuthorizedDoctors(db *gorm.DB, categoryID int, at time.Time) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.
		Joins("JOIN doctor_service_categories ON doctor_service_categories.doctor_id = doctors.id").
		Where("doctor_service_categories.service_category_id = ?", categoryID).
		Scopes(validGrant(at), notDeleted("doctors")).
		Where("doctors.is_active = ?", true).
		Distinct("doctors.*").
		Order("doctors.last_name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorServiceCategoryRepository) IsAuthorized(db *gorm.DB, doctorID, categoryID int, at time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorServiceCategory{}).
		Where("doctor_id = ? AND service_category_id = ?", doctorID, categoryID).
		Scopes(validGrant(at)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *doctorServiceCategoryRepository) Update(db *gorm.DB, grant *entity.DoctorServiceCategory) error {
	return db.Omit("Doctor", "ServiceCategory").Save(grant).Error
}

func (r *doctorServiceCategoryRepository) SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return softDelete(db, &entity.DoctorServiceCategory{}, id, by)
}

func (r *doctorServiceCategoryRepository) SoftDeleteByDoctor(db *gorm.DB, doctorID int, by *uuid.UUID) (int64, error) {
	return softDeleteWhere(db, &entity.DoctorServiceCategory{}, "doctor_id = ?", doctorID, by)
}
