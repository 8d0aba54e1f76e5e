package usecase

import (
	"context"
	"strconv"
	"time"

	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/internal/insuranceform"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Insurance save outcomes reported to metrics.
const (
	InsuranceSaveSaved     = "saved"
	InsuranceSaveUnchanged = "unchanged"
	InsuranceSaveInvalid   = "invalid"
	InsuranceSaveConflict  = "conflict"
	InsuranceSaveFailed    = "error"
)

// InsuranceSaveRecorder counts insurance save outcomes.
type InsuranceSaveRecorder interface {
	RecordInsuranceSave(outcome string)
}

type InsuranceUsecase interface {
	LoadInsurance(ctx context.Context, patientID int) (*dto.InsuranceLoadResponse, error)
	SaveInsurance(ctx context.Context, by uuid.UUID, req *dto.SaveInsuranceRequest) (*insuranceform.Result, error)
}

type insuranceUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	patientRepo   repository.PatientRepository
	insurerRepo   repository.InsurerRepository
	insuranceRepo repository.PatientInsuranceRepository
	auditService  service.AuditService
	validator     *insuranceform.ValidationEngine
	locker        insuranceform.Locker
	lockTTL       time.Duration
	metrics       InsuranceSaveRecorder
}

func NewInsuranceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	insurerRepo repository.InsurerRepository,
	insuranceRepo repository.PatientInsuranceRepository,
	auditService service.AuditService,
	locker insuranceform.Locker,
	lockTTL time.Duration,
	metrics InsuranceSaveRecorder,
) InsuranceUsecase {
	return &insuranceUsecase{
		db:            db,
		log:           log,
		patientRepo:   patientRepo,
		insurerRepo:   insurerRepo,
		insuranceRepo: insuranceRepo,
		auditService:  auditService,
		validator:     insuranceform.NewValidationEngine(&insurerLookup{db: db, insurerRepo: insurerRepo}),
		locker:        locker,
		lockTTL:       lockTTL,
		metrics:       metrics,
	}
}

func (u *insuranceUsecase) LoadInsurance(ctx context.Context, patientID int) (*dto.InsuranceLoadResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	insurance, err := u.insuranceRepo.FindByPatient(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient insurance: %+v", err)
		return nil, err
	}

	insurers, err := u.insurerRepo.FindActive(db)
	if err != nil {
		u.log.Warnf("Failed to find insurers: %+v", err)
		return nil, err
	}

	response := &dto.InsuranceLoadResponse{
		Patient:               *converter.PatientToResponse(patient),
		Insurance:             converter.InsuranceFormToResponse(insuranceform.FormFromEntity(patientID, insurance)),
		PrimaryInsurers:       []dto.InsurerResponse{},
		SupplementaryInsurers: []dto.InsurerResponse{},
	}
	for i := range insurers {
		switch insurers[i].Type {
		case entity.InsurerTypeBasic:
			response.PrimaryInsurers = append(response.PrimaryInsurers, *converter.InsurerToResponse(&insurers[i]))
		case entity.InsurerTypeSupplementary:
			response.SupplementaryInsurers = append(response.SupplementaryInsurers, *converter.InsurerToResponse(&insurers[i]))
		}
	}

	return response, nil
}

func (u *insuranceUsecase) SaveInsurance(ctx context.Context, by uuid.UUID, req *dto.SaveInsuranceRequest) (*insuranceform.Result, error) {
	form, err := formFromRequest(req)
	if err != nil {
		u.record(InsuranceSaveInvalid)
		return nil, err
	}

	store := &insuranceStore{
		db:            u.db,
		log:           u.log,
		patientRepo:   u.patientRepo,
		insuranceRepo: u.insuranceRepo,
		auditService:  u.auditService,
		by:            actor(by),
	}
	processor := insuranceform.NewSaveProcessor(store, u.validator, u.locker, u.lockTTL)

	result, err := processor.Save(ctx, form)
	if err != nil {
		u.record(saveOutcome(err))
		u.log.WithField("patient_id", form.PatientID).Debugf("Insurance save stopped in state %s: %v", result.State, err)
		return result, err
	}

	if result.Saved {
		u.record(InsuranceSaveSaved)
	} else {
		u.record(InsuranceSaveUnchanged)
	}
	return result, nil
}

func (u *insuranceUsecase) record(outcome string) {
	if u.metrics != nil {
		u.metrics.RecordInsuranceSave(outcome)
	}
}

func saveOutcome(err error) string {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return InsuranceSaveInvalid
	case apperror.KindConflict:
		return InsuranceSaveConflict
	default:
		return InsuranceSaveFailed
	}
}

func formFromRequest(req *dto.SaveInsuranceRequest) (insuranceform.Form, error) {
	primaryExpiry, err := parseDate(req.PrimaryExpiryDate)
	if err != nil {
		return insuranceform.Form{}, err
	}
	supplementaryExpiry, err := parseDate(req.SupplementaryExpiryDate)
	if err != nil {
		return insuranceform.Form{}, err
	}

	return insuranceform.Form{
		PatientID:                 req.PatientID,
		PrimaryInsurerID:          req.PrimaryInsurerID,
		PolicyNumber:              req.PolicyNumber,
		PrimaryExpiryDate:         primaryExpiry,
		SupplementaryInsurerID:    req.SupplementaryInsurerID,
		SupplementaryPolicyNumber: req.SupplementaryPolicyNumber,
		SupplementaryExpiryDate:   supplementaryExpiry,
		Notes:                     req.Notes,
	}, nil
}

// insuranceStore persists forms for one acting user.
type insuranceStore struct {
	db            *gorm.DB
	log           *logrus.Logger
	patientRepo   repository.PatientRepository
	insuranceRepo repository.PatientInsuranceRepository
	auditService  service.AuditService
	by            *uuid.UUID
}

func (s *insuranceStore) Load(ctx context.Context, patientID int) (insuranceform.Form, error) {
	db := s.db.WithContext(ctx)

	patient, err := s.patientRepo.FindByID(db, patientID)
	if err != nil {
		s.log.Warnf("Failed to find patient: %+v", err)
		return insuranceform.Form{}, err
	}
	if patient == nil {
		return insuranceform.Form{}, ErrPatientNotFound
	}

	insurance, err := s.insuranceRepo.FindByPatient(db, patientID)
	if err != nil {
		s.log.Warnf("Failed to find patient insurance: %+v", err)
		return insuranceform.Form{}, err
	}

	return insuranceform.FormFromEntity(patientID, insurance), nil
}

func (s *insuranceStore) Save(ctx context.Context, form insuranceform.Form, changes []insuranceform.Change) error {
	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	insurance, err := s.insuranceRepo.FindByPatient(tx, form.PatientID)
	if err != nil {
		s.log.Warnf("Failed to find patient insurance: %+v", err)
		return err
	}
	if insurance == nil {
		insurance = &entity.PatientInsurance{}
		insurance.StampCreate(s.by)
	} else {
		insurance.StampUpdate(s.by)
	}
	before := converter.InsuranceFormToResponse(insuranceform.FormFromEntity(form.PatientID, insurance))

	form.ApplyTo(insurance)
	if err := s.insuranceRepo.Save(tx, insurance); err != nil {
		s.log.Warnf("Failed to save patient insurance: %+v", err)
		return err
	}

	after := map[string]interface{}{
		"insurance": converter.InsuranceFormToResponse(form),
		"changes":   changes,
	}
	if err := s.auditService.LogUpdate(tx, s.by, entity.AuditActionInsuranceSave, "patient_insurance", strconv.Itoa(insurance.ID), before, after); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		s.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// insurerLookup adapts the insurer repository to the form validator.
type insurerLookup struct {
	db          *gorm.DB
	insurerRepo repository.InsurerRepository
}

func (l *insurerLookup) FindInsurers(ctx context.Context, ids []int) (map[int]entity.Insurer, error) {
	insurers, err := l.insurerRepo.FindByIDs(l.db.WithContext(ctx), ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int]entity.Insurer, len(insurers))
	for _, insurer := range insurers {
		found[insurer.ID] = insurer
	}
	return found, nil
}
