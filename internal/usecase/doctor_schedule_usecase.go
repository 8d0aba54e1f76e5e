package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/internal/schedule"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/apperror"
	"clinic-admin/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound     = apperror.NotFound("schedule not found")
	ErrNoActiveSchedule     = apperror.NotFound("doctor has no active schedule")
	ErrActiveScheduleExists = apperror.Conflict("doctor already has an active schedule")
)

type DoctorScheduleUsecase interface {
	CreateSchedule(ctx context.Context, by uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, scheduleID int) (*dto.ScheduleResponse, error)
	GetActiveSchedule(ctx context.Context, doctorID int) (*dto.ScheduleResponse, error)
	GetAllSchedules(ctx context.Context, doctorID, page, limit int) ([]dto.ScheduleResponse, int64, error)
	UpdateSchedule(ctx context.Context, by uuid.UUID, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, by uuid.UUID, scheduleID int) error
	GetSlots(ctx context.Context, doctorID int, from, to string) (*dto.SlotsResponse, error)
}

type doctorScheduleUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	scheduleRepo  repository.DoctorScheduleRepository
	doctorRepo    repository.DoctorRepository
	receptionRepo repository.ReceptionRepository
	auditService  service.AuditService
	slotCache     *service.SlotCache
	maxRangeDays  int
	now           func() time.Time
}

func NewDoctorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.DoctorScheduleRepository,
	doctorRepo repository.DoctorRepository,
	receptionRepo repository.ReceptionRepository,
	auditService service.AuditService,
	slotCache *service.SlotCache,
	maxRangeDays int,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		db:            db,
		log:           log,
		scheduleRepo:  scheduleRepo,
		doctorRepo:    doctorRepo,
		receptionRepo: receptionRepo,
		auditService:  auditService,
		slotCache:     slotCache,
		maxRangeDays:  maxRangeDays,
		now:           time.Now,
	}
}

func (u *doctorScheduleUsecase) CreateSchedule(ctx context.Context, by uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	sched := &entity.DoctorSchedule{
		DoctorID:            req.DoctorID,
		Name:                strings.TrimSpace(req.Name),
		AppointmentDuration: req.AppointmentDuration,
		IsActive:            boolOr(req.IsActive, true),
		WorkDays:            converter.WorkDaysFromRequest(req.WorkDays),
	}
	if err := schedule.Validate(sched); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Validate doctor exists
	doctor, err := u.doctorRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if sched.IsActive {
		if err := u.ensureNoOtherActive(tx, req.DoctorID, 0); err != nil {
			return nil, err
		}
	}

	sched.StampCreate(actor(by))
	if err := u.scheduleRepo.Create(tx, sched); err != nil {
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, actor(by), entity.AuditActionScheduleCreate, "doctor_schedule", strconv.Itoa(sched.ID), sched); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.invalidateSlots(ctx, req.DoctorID)
	sched.Doctor = doctor
	return converter.ScheduleToResponse(sched), nil
}

func (u *doctorScheduleUsecase) GetSchedule(ctx context.Context, scheduleID int) (*dto.ScheduleResponse, error) {
	sched, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if sched == nil {
		return nil, ErrScheduleNotFound
	}

	return converter.ScheduleToResponse(sched), nil
}

func (u *doctorScheduleUsecase) GetActiveSchedule(ctx context.Context, doctorID int) (*dto.ScheduleResponse, error) {
	sched, err := u.scheduleRepo.FindActiveByDoctor(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find active schedule: %+v", err)
		return nil, err
	}
	if sched == nil {
		return nil, ErrNoActiveSchedule
	}

	return converter.ScheduleToResponse(sched), nil
}

func (u *doctorScheduleUsecase) GetAllSchedules(ctx context.Context, doctorID, page, limit int) ([]dto.ScheduleResponse, int64, error) {
	params := pagination.New(page, limit)
	schedules, total, err := u.scheduleRepo.FindAll(u.db.WithContext(ctx), doctorID, params.Limit, params.Offset())
	if err != nil {
		u.log.Warnf("Failed to find schedules: %+v", err)
		return nil, 0, err
	}

	return converter.SchedulesToResponses(schedules), total, nil
}

func (u *doctorScheduleUsecase) UpdateSchedule(ctx context.Context, by uuid.UUID, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	sched, err := u.scheduleRepo.FindByID(tx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if sched == nil {
		return nil, ErrScheduleNotFound
	}
	before := converter.ScheduleToResponse(sched)

	setString(&sched.Name, req.Name)
	if req.AppointmentDuration != nil {
		sched.AppointmentDuration = *req.AppointmentDuration
	}
	if req.IsActive != nil {
		sched.IsActive = *req.IsActive
	}
	if req.WorkDays != nil {
		sched.WorkDays = converter.WorkDaysFromRequest(*req.WorkDays)
	}
	if err := schedule.Validate(sched); err != nil {
		return nil, err
	}

	if sched.IsActive {
		if err := u.ensureNoOtherActive(tx, sched.DoctorID, sched.ID); err != nil {
			return nil, err
		}
	}

	sched.StampUpdate(actor(by))
	if err := u.scheduleRepo.Update(tx, sched); err != nil {
		u.log.Warnf("Failed to update schedule: %+v", err)
		return nil, err
	}
	if req.WorkDays != nil {
		if err := u.scheduleRepo.ReplaceWorkDays(tx, sched.ID, sched.WorkDays); err != nil {
			u.log.Warnf("Failed to replace work days: %+v", err)
			return nil, err
		}
	}

	after := converter.ScheduleToResponse(sched)
	if err := u.auditService.LogUpdate(tx, actor(by), entity.AuditActionScheduleUpdate, "doctor_schedule", strconv.Itoa(sched.ID), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.invalidateSlots(ctx, sched.DoctorID)
	return after, nil
}

func (u *doctorScheduleUsecase) DeleteSchedule(ctx context.Context, by uuid.UUID, scheduleID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	sched, err := u.scheduleRepo.FindByID(tx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return err
	}
	if sched == nil {
		return ErrScheduleNotFound
	}

	if _, err := u.scheduleRepo.SoftDelete(tx, scheduleID, actor(by)); err != nil {
		u.log.Warnf("Failed to delete schedule: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(tx, actor(by), entity.AuditActionScheduleDelete, "doctor_schedule", strconv.Itoa(scheduleID), converter.ScheduleToResponse(sched)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.invalidateSlots(ctx, sched.DoctorID)
	return nil
}

// GetSlots lists the appointment slots of the doctor's active schedule
// between the inclusive dates from and to (YYYY-MM-DD, local time).
func (u *doctorScheduleUsecase) GetSlots(ctx context.Context, doctorID int, from, to string) (*dto.SlotsResponse, error) {
	fromDate, err := time.ParseInLocation(schedule.DateLayout, from, time.Local)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	toDate, err := time.ParseInLocation(schedule.DateLayout, to, time.Local)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if err := schedule.CheckRange(fromDate, toDate, u.maxRangeDays); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	sched, err := u.scheduleRepo.FindActiveByDoctor(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find active schedule: %+v", err)
		return nil, err
	}

	response := &dto.SlotsResponse{
		DoctorID: doctorID,
		From:     fromDate.Format(schedule.DateLayout),
		To:       toDate.Format(schedule.DateLayout),
		Days:     []entity.DaySlots{},
	}
	if sched == nil {
		return response, nil
	}
	response.Duration = sched.AppointmentDuration

	days, err := u.slotCache.Slots(ctx, doctorID, fromDate, toDate, func(ctx context.Context, from, to time.Time) ([]entity.DaySlots, error) {
		booked, err := u.receptionRepo.FindBookedTimes(u.db.WithContext(ctx), doctorID, from, to.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		return schedule.GenerateSlots(sched, from, to, booked, u.now()), nil
	})
	if err != nil {
		u.log.Warnf("Failed to load slots: %+v", err)
		return nil, err
	}
	response.Days = days
	return response, nil
}

func (u *doctorScheduleUsecase) ensureNoOtherActive(tx *gorm.DB, doctorID, scheduleID int) error {
	active, err := u.scheduleRepo.FindActiveByDoctor(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find active schedule: %+v", err)
		return err
	}
	if active != nil && active.ID != scheduleID {
		return ErrActiveScheduleExists
	}
	return nil
}

func (u *doctorScheduleUsecase) invalidateSlots(ctx context.Context, doctorID int) {
	if err := u.slotCache.Invalidate(ctx, doctorID); err != nil {
		u.log.Warnf("Failed to invalidate slots of doctor %d: %+v", doctorID, err)
	}
}
