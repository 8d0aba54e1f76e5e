package repository

import (
	"clinic-admin/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id int) (*entity.Patient, error)
	Search(db *gorm.DB, query string, limit int) ([]entity.Patient, error)
	ExistsByNationalCode(db *gorm.DB, code string, excludeID int) (bool, error)
}

type InsurerRepository interface {
	Create(db *gorm.DB, insurer *entity.Insurer) error
	FindByID(db *gorm.DB, id int) (*entity.Insurer, error)
	FindByIDs(db *gorm.DB, ids []int) ([]entity.Insurer, error)
	FindActive(db *gorm.DB) ([]entity.Insurer, error)
	ExistsByCode(db *gorm.DB, code string) (bool, error)
}

type PatientInsuranceRepository interface {
	FindByPatient(db *gorm.DB, patientID int) (*entity.PatientInsurance, error)
	Save(db *gorm.DB, insurance *entity.PatientInsurance) error
}
