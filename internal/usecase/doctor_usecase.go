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
	"clinic-admin/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound           = apperror.NotFound("doctor not found")
	ErrNationalCodeExists       = apperror.Conflict("national code already exists")
	ErrCouncilNumberExists      = apperror.Conflict("medical council number already exists")
	ErrInvalidSpecializations   = apperror.Validation("one or more specializations do not exist")
	ErrDoctorNotDeleted         = apperror.Conflict("doctor is not deleted")
	ErrDuplicateSpecializations = apperror.Validation("specialization ids must be unique")
)

type DoctorUsecase interface {
	Create(ctx context.Context, by uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetAll(ctx context.Context, query *dto.DoctorListQuery) ([]dto.DoctorResponse, int64, error)
	GetByID(ctx context.Context, id int) (*dto.DoctorResponse, error)
	Dropdown(ctx context.Context) ([]dto.Option, error)
	Update(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, by uuid.UUID, id int) error
	Restore(ctx context.Context, by uuid.UUID, id int) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	doctorRepo         repository.DoctorRepository
	specializationRepo repository.SpecializationRepository
	departmentLinkRepo repository.DoctorDepartmentRepository
	serviceGrantRepo   repository.DoctorServiceCategoryRepository
	scheduleRepo       repository.DoctorScheduleRepository
	auditService       service.AuditService
	slotCache          *service.SlotCache
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specializationRepo repository.SpecializationRepository,
	departmentLinkRepo repository.DoctorDepartmentRepository,
	serviceGrantRepo repository.DoctorServiceCategoryRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	auditService service.AuditService,
	slotCache *service.SlotCache,
) DoctorUsecase {
	return &doctorUsecase{
		db:                 db,
		log:                log,
		doctorRepo:         doctorRepo,
		specializationRepo: specializationRepo,
		departmentLinkRepo: departmentLinkRepo,
		serviceGrantRepo:   serviceGrantRepo,
		scheduleRepo:       scheduleRepo,
		auditService:       auditService,
		slotCache:          slotCache,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, by uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.checkUnique(tx, req.NationalCode, req.MedicalCouncilNumber, 0); err != nil {
		return nil, err
	}

	specializations, err := u.loadSpecializations(tx, req.SpecializationIDs)
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		UserID:               req.UserID,
		FirstName:            strings.TrimSpace(req.FirstName),
		LastName:             strings.TrimSpace(req.LastName),
		NationalCode:         req.NationalCode,
		MedicalCouncilNumber: strings.TrimSpace(req.MedicalCouncilNumber),
		Gender:               req.Gender,
		PhoneNumber:          strings.TrimSpace(req.PhoneNumber),
		Email:                strings.TrimSpace(req.Email),
		Degree:               strings.TrimSpace(req.Degree),
		Biography:            req.Biography,
		IsActive:             boolOr(req.IsActive, true),
		Specializations:      specializations,
	}
	doctor.StampCreate(actor(by))

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, actor(by), entity.AuditActionDoctorCreate, "doctor", strconv.Itoa(doctor.ID), doctor); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAll(ctx context.Context, query *dto.DoctorListQuery) ([]dto.DoctorResponse, int64, error) {
	page := pagination.New(query.Page, query.Limit)
	doctors, total, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), &entity.DoctorFilter{
		Search:           strings.TrimSpace(query.Search),
		DepartmentID:     query.DepartmentID,
		SpecializationID: query.SpecializationID,
		IsActive:         query.IsActive,
		Limit:            page.Limit,
		Offset:           page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, 0, err
	}

	return converter.DoctorsToResponses(doctors), total, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Dropdown(ctx context.Context) ([]dto.Option, error) {
	doctors, err := u.doctorRepo.FindActiveForDropdown(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors for dropdown: %+v", err)
		return nil, err
	}
	return converter.DoctorsToOptions(doctors), nil
}

func (u *doctorUsecase) Update(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	before := *doctor

	nationalCode, councilNumber := "", ""
	if req.NationalCode != nil && *req.NationalCode != doctor.NationalCode {
		nationalCode = *req.NationalCode
	}
	if req.MedicalCouncilNumber != nil && strings.TrimSpace(*req.MedicalCouncilNumber) != doctor.MedicalCouncilNumber {
		councilNumber = strings.TrimSpace(*req.MedicalCouncilNumber)
	}
	if err := u.checkUnique(tx, nationalCode, councilNumber, id); err != nil {
		return nil, err
	}

	setString(&doctor.FirstName, req.FirstName)
	setString(&doctor.LastName, req.LastName)
	setString(&doctor.NationalCode, req.NationalCode)
	setString(&doctor.MedicalCouncilNumber, req.MedicalCouncilNumber)
	setString(&doctor.Gender, req.Gender)
	setString(&doctor.PhoneNumber, req.PhoneNumber)
	setString(&doctor.Email, req.Email)
	setString(&doctor.Degree, req.Degree)
	if req.Biography != nil {
		doctor.Biography = *req.Biography
	}
	if req.IsActive != nil {
		doctor.IsActive = *req.IsActive
	}
	doctor.StampUpdate(actor(by))

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	if req.SpecializationIDs != nil {
		specializations, err := u.loadSpecializations(tx, *req.SpecializationIDs)
		if err != nil {
			return nil, err
		}
		if err := u.doctorRepo.ReplaceSpecializations(tx, doctor, specializations); err != nil {
			u.log.Warnf("Failed to replace doctor specializations: %+v", err)
			return nil, err
		}
		doctor.Specializations = specializations
	}

	if err := u.auditService.LogUpdate(tx, actor(by), entity.AuditActionDoctorUpdate, "doctor", strconv.Itoa(id), before, doctor); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if before.IsActive != doctor.IsActive {
		u.invalidateSlots(ctx, id)
	}

	return converter.DoctorToResponse(doctor), nil
}

// Delete hides the doctor with its department links, service grants and
// active schedule.
func (u *doctorUsecase) Delete(ctx context.Context, by uuid.UUID, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if _, err := u.doctorRepo.SoftDelete(tx, id, actor(by)); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}
	if _, err := u.departmentLinkRepo.SoftDeleteByDoctor(tx, id, actor(by)); err != nil {
		u.log.Warnf("Failed to delete doctor department links: %+v", err)
		return err
	}
	if _, err := u.serviceGrantRepo.SoftDeleteByDoctor(tx, id, actor(by)); err != nil {
		u.log.Warnf("Failed to delete doctor service grants: %+v", err)
		return err
	}

	schedule, err := u.scheduleRepo.FindActiveByDoctor(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor schedule: %+v", err)
		return err
	}
	if schedule != nil {
		if _, err := u.scheduleRepo.SoftDelete(tx, schedule.ID, actor(by)); err != nil {
			u.log.Warnf("Failed to delete doctor schedule: %+v", err)
			return err
		}
	}

	if err := u.auditService.LogDelete(tx, actor(by), entity.AuditActionDoctorDelete, "doctor", strconv.Itoa(id), doctor); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.invalidateSlots(ctx, id)
	return nil
}

// Restore un-hides the doctor only. Links and schedules stay removed.
func (u *doctorUsecase) Restore(ctx context.Context, by uuid.UUID, id int) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByIDIncludingDeleted(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsDeleted {
		return nil, ErrDoctorNotDeleted
	}

	// Restoring must not create a second live doctor with the same codes.
	if err := u.checkUnique(tx, doctor.NationalCode, doctor.MedicalCouncilNumber, id); err != nil {
		return nil, err
	}

	if _, err := u.doctorRepo.Restore(tx, id, actor(by)); err != nil {
		u.log.Warnf("Failed to restore doctor: %+v", err)
		return nil, err
	}
	doctor.Restore(actor(by))

	if err := u.auditService.LogUpdate(tx, actor(by), entity.AuditActionDoctorRestore, "doctor", strconv.Itoa(id), nil, doctor); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// checkUnique looks up the live doctors for the given codes. Empty codes are skipped.
func (u *doctorUsecase) checkUnique(tx *gorm.DB, nationalCode, councilNumber string, excludeID int) error {
	if nationalCode != "" {
		exists, err := u.doctorRepo.ExistsByNationalCode(tx, nationalCode, excludeID)
		if err != nil {
			u.log.Warnf("Failed to check national code: %+v", err)
			return err
		}
		if exists {
			return ErrNationalCodeExists
		}
	}
	if councilNumber != "" {
		exists, err := u.doctorRepo.ExistsByCouncilNumber(tx, councilNumber, excludeID)
		if err != nil {
			u.log.Warnf("Failed to check council number: %+v", err)
			return err
		}
		if exists {
			return ErrCouncilNumberExists
		}
	}
	return nil
}

func (u *doctorUsecase) loadSpecializations(tx *gorm.DB, ids []int) ([]entity.Specialization, error) {
	if len(ids) == 0 {
		return []entity.Specialization{}, nil
	}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateSpecializations
		}
		seen[id] = struct{}{}
	}

	specializations, err := u.specializationRepo.FindByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to find specializations: %+v", err)
		return nil, err
	}
	if len(specializations) != len(ids) {
		return nil, ErrInvalidSpecializations
	}
	return specializations, nil
}

func (u *doctorUsecase) invalidateSlots(ctx context.Context, doctorID int) {
	if err := u.slotCache.Invalidate(ctx, doctorID); err != nil {
		u.log.Warnf("Failed to invalidate slots of doctor %d: %+v", doctorID, err)
	}
}
