package usecase

import (
	"context"
	"strconv"
	"strings"

	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultPatientSearchLimit = 20
	maxPatientSearchLimit     = 50
)

var (
	ErrPatientNotFound            = apperror.NotFound("patient not found")
	ErrPatientNationalCodeExists  = apperror.Conflict("a patient with this national code already exists")
	ErrPatientSearchQueryTooShort = apperror.Validation("search query must be at least 2 characters")
)

type PatientUsecase interface {
	SearchPatients(ctx context.Context, query string, limit int) ([]dto.PatientResponse, error)
	CreatePatient(ctx context.Context, by uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository, auditService service.AuditService) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) SearchPatients(ctx context.Context, query string, limit int) ([]dto.PatientResponse, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, ErrPatientSearchQueryTooShort
	}
	if limit <= 0 {
		limit = defaultPatientSearchLimit
	}
	if limit > maxPatientSearchLimit {
		limit = maxPatientSearchLimit
	}

	patients, err := u.patientRepo.Search(u.db.WithContext(ctx), query, limit)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, by uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.patientRepo.ExistsByNationalCode(tx, req.NationalCode, 0)
	if err != nil {
		u.log.Warnf("Failed to check national code: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrPatientNationalCodeExists
	}

	patient := &entity.Patient{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		NationalCode: req.NationalCode,
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		BirthDate:    birthDate,
		Gender:       req.Gender,
		Address:      strings.TrimSpace(req.Address),
	}
	patient.StampCreate(actor(by))

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, actor(by), entity.AuditActionPatientCreate, "patient", strconv.Itoa(patient.ID), patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}
