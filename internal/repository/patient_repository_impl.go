package repository

import (
	"clinic-admin/internal/domain/entity"
	domainRepo "clinic-admin/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit("Insurance").Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id int) (*entity.Patient, error) {
	var patient entity.Patient
	found, err := first(db.Scopes(notDeleted("patients")).Where("id = ?", id), &patient)
	if err != nil || !found {
		return nil, err
	}
	return &patient, nil
}

// Search matches name, national code or phone number.
func (r *patientRepository) Search(db *gorm.DB, query string, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	term := like(query)
	err := db.Scopes(notDeleted("patients"), paginate(limit, 0)).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR national_code LIKE ? OR phone_number LIKE ?", term, term, term, term).
		Order("last_name ASC, first_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) ExistsByNationalCode(db *gorm.DB, code string, excludeID int) (bool, error) {
	return exists(db, &entity.Patient{}, "national_code", code, excludeID)
}

type insurerRepository struct{}

func NewInsurerRepository() domainRepo.InsurerRepository {
	return &insurerRepository{}
}

func (r *insurerRepository) Create(db *gorm.DB, insurer *entity.Insurer) error {
	return db.Create(insurer).Error
}

func (r *insurerRepository) FindByID(db *gorm.DB, id int) (*entity.Insurer, error) {
	var insurer entity.Insurer
	found, err := first(db.Scopes(notDeleted("insurers")).Where("id = ?", id), &insurer)
	if err != nil || !found {
		return nil, err
	}
	return &insurer, nil
}

func (r *insurerRepository) FindByIDs(db *gorm.DB, ids []int) ([]entity.Insurer, error) {
	var insurers []entity.Insurer
	if len(ids) == 0 {
		return insurers, nil
	}
	if err := db.Scopes(notDeleted("insurers")).Where("id IN ?", ids).Find(&insurers).Error; err != nil {
		return nil, err
	}
	return insurers, nil
}

func (r *insurerRepository) FindActive(db *gorm.DB) ([]entity.Insurer, error) {
	var insurers []entity.Insurer
	err := db.Scopes(notDeleted("insurers")).
		Where("is_active = ?", true).
		Order("type ASC, name ASC").
		Find(&insurers).Error
	if err != nil {
		return nil, err
	}
	return insurers, nil
}

func (r *insurerRepository) ExistsByCode(db *gorm.DB, code string) (bool, error) {
	return exists(db, &entity.Insurer{}, "code", code, 0)
}

type patientInsuranceRepository struct{}

func NewPatientInsuranceRepository() domainRepo.PatientInsuranceRepository {
	return &patientInsuranceRepository{}
}

func (r *patientInsuranceRepository) FindByPatient(db *gorm.DB, patientID int) (*entity.PatientInsurance, error) {
	var insurance entity.PatientInsurance
	query := db.Scopes(notDeleted("patient_insurances")).
		Preload("PrimaryInsurer").
		Preload("SupplementaryInsurer").
		Where("patient_id = ?", patientID)
	found, err := first(query, &insurance)
	if err != nil || !found {
		return nil, err
	}
	return &insurance, nil
}

// Save inserts the patient's insurance row or updates the live one.
func (r *patientInsuranceRepository) Save(db *gorm.DB, insurance *entity.PatientInsurance) error {
	if insurance.ID == 0 {
		return db.Omit("PrimaryInsurer", "SupplementaryInsurer").Create(insurance).Error
	}
	return db.Omit("PrimaryInsurer", "SupplementaryInsurer").Save(insurance).Error
}
