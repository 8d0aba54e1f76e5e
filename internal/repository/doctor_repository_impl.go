package repository

import (
	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Specializations.*").Create(doctor).Error
}

// preloadLinks eager loads the live relations of a doctor.
func preloadLinks(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Specializations", "specializations.is_deleted = ?", false).
		Preload("Departments", "doctor_departments.is_deleted = ?", false).
		Preload("Departments.Department").
		Preload("ServiceCategories", "doctor_service_categories.is_deleted = ?", false).
		Preload("ServiceCategories.ServiceCategory")
}

func (r *doctorRepository) FindByID(db *gorm.DB, id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	found, err := first(db.Scopes(notDeleted("doctors"), preloadLinks).Where("doctors.id = ?", id), &doctor)
	if err != nil || !found {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByIDIncludingDeleted(db *gorm.DB, id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	found, err := first(db.Where("id = ?", id), &doctor)
	if err != nil || !found {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, int64, error) {
	var doctors []entity.Doctor
	var total int64

	query := db.Model(&entity.Doctor{}).Scopes(notDeleted("doctors"))
	if filter.Search != "" {
		term := like(filter.Search)
		query = query.Where(
			"doctors.first_name ILIKE ? OR doctors.last_name ILIKE ? OR doctors.national_code ILIKE ? OR doctors.medical_council_number ILIKE ?",
			term, term, term, term,
		)
	}
	if filter.DepartmentID > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM doctor_departments dd WHERE dd.doctor_id = doctors.id AND dd.department_id = ? AND dd.is_deleted = false)",
			filter.DepartmentID,
		)
	}
	if filter.SpecializationID > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM doctor_specializations ds WHERE ds.doctor_id = doctors.id AND ds.specialization_id = ?)",
			filter.SpecializationID,
		)
	}
	if filter.IsActive != nil {
		query = query.Where("doctors.is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Preload("Specializations", "specializations.is_deleted = ?", false).
		Scopes(paginate(filter.Limit, filter.Offset)).
		Order("doctors.last_name ASC, doctors.first_name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// FindByDepartment returns live, active doctors with a live link to the department.
func (r *doctorRepository) FindByDepartment(db *gorm.DB, departmentID int) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.
		Joins("JOIN doctor_departments ON doctor_departments.doctor_id = doctors.id").
		Where("doctor_departments.department_id = ? AND doctor_departments.is_deleted = ? AND doctor_departments.is_active = ?", departmentID, false, true).
		Where("doctors.is_active = ?", true).
		Scopes(notDeleted("doctors")).
		Order("doctors.last_name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindActiveForDropdown(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Select("id", "first_name", "last_name").
		Scopes(notDeleted("doctors")).
		Where("is_active = ?", true).
		Order("last_name ASC, first_name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Specializations", "Departments", "ServiceCategories").Save(doctor).Error
}

func (r *doctorRepository) ReplaceSpecializations(db *gorm.DB, doctor *entity.Doctor, specializations []entity.Specialization) error {
	return db.Model(doctor).Association("Specializations").Replace(specializations)
}

func (r *doctorRepository) SoftDelete(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return softDelete(db, &entity.Doctor{}, id, by)
}

func (r *doctorRepository) Restore(db *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	return restore(db, &entity.Doctor{}, id, by)
}

func (r *doctorRepository) ExistsByNationalCode(db *gorm.DB, code string, excludeID int) (bool, error) {
	return exists(db, &entity.Doctor{}, "national_code", code, excludeID)
}

func (r *doctorRepository) ExistsByCouncilNumber(db *gorm.DB, number string, excludeID int) (bool, error) {
	return exists(db, &entity.Doctor{}, "medical_council_number", number, excludeID)
}
