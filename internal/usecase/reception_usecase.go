package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"clinic-admin/internal/billing"
	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/internal/schedule"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/apperror"
	"clinic-admin/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrReceptionNotFound         = apperror.NotFound("reception not found")
	ErrReceptionAlreadyCancelled = apperror.Conflict("reception is already cancelled")
	ErrSlotNotAvailable          = apperror.Conflict("the selected appointment time is not an available slot")
	ErrSlotInPast                = apperror.Validation("the selected appointment time has already passed")
	ErrDoctorInactive            = apperror.Validation("doctor is not active")
	ErrDoctorNotInDepartment     = apperror.Validation("doctor is not assigned to this department")
	ErrDoctorNotAuthorized       = apperror.Validation("doctor is not authorized for one or more selected services")
	ErrServiceUnavailable        = apperror.Validation("one or more selected services do not exist or are inactive")
	ErrServiceNotInDepartment    = apperror.Validation("one or more selected services do not belong to this department")
	ErrInvalidPaidAmount         = apperror.Validation("paid amount must be between zero and the patient share")
	ErrPaymentMethodRequired     = apperror.Validation("payment method is required when an amount is paid")
)

const authorizedLoadConcurrency = 4

type ReceptionUsecase interface {
	LoadDepartment(ctx context.Context, departmentID int) (*dto.DepartmentLoadResponse, error)
	CalculateServices(ctx context.Context, req *dto.CalculateServicesRequest) (*dto.CalculationResponse, error)
	CreateReception(ctx context.Context, by uuid.UUID, req *dto.CreateReceptionRequest) (*dto.ReceptionResponse, error)
	GetAllReceptions(ctx context.Context, query *dto.ReceptionQuery) ([]dto.ReceptionResponse, int64, error)
	GetReception(ctx context.Context, id int) (*dto.ReceptionResponse, error)
	CancelReception(ctx context.Context, by uuid.UUID, id int) error
}

// ReceptionRepositories groups the stores the reception desk reads.
type ReceptionRepositories struct {
	Reception  repository.ReceptionRepository
	Patient    repository.PatientRepository
	Insurance  repository.PatientInsuranceRepository
	Department repository.DepartmentRepository
	Doctor     repository.DoctorRepository
	Link       repository.DoctorDepartmentRepository
	Grant      repository.DoctorServiceCategoryRepository
	Category   repository.ServiceCategoryRepository
	Service    repository.MedicalServiceRepository
	Schedule   repository.DoctorScheduleRepository
}

type receptionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	repos        ReceptionRepositories
	auditService service.AuditService
	slotCache    *service.SlotCache
	now          func() time.Time
}

func NewReceptionUsecase(db *gorm.DB, log *logrus.Logger, repos ReceptionRepositories, auditService service.AuditService, slotCache *service.SlotCache) ReceptionUsecase {
	return &receptionUsecase{
		db:           db,
		log:          log,
		repos:        repos,
		auditService: auditService,
		slotCache:    slotCache,
		now:          time.Now,
	}
}

// LoadDepartment returns a department with its categories, services and the
// doctors authorized today for each category. The lists are read concurrently.
func (u *receptionUsecase) LoadDepartment(ctx context.Context, departmentID int) (*dto.DepartmentLoadResponse, error) {
	department, err := u.repos.Department.FindByID(u.db.WithContext(ctx), departmentID)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, err
	}
	if department == nil || !department.IsActive {
		return nil, ErrDepartmentNotFound
	}

	var (
		doctors    []entity.Doctor
		categories []entity.ServiceCategory
		services   []entity.MedicalService
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doctors, err = u.repos.Doctor.FindByDepartment(u.db.WithContext(gctx), departmentID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = u.repos.Category.FindByDepartment(u.db.WithContext(gctx), departmentID)
		return err
	})
	g.Go(func() error {
		var err error
		services, err = u.repos.Service.FindByDepartment(u.db.WithContext(gctx), departmentID)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load department %d: %+v", departmentID, err)
		return nil, err
	}

	linked := make(map[int]bool, len(doctors))
	for _, d := range doctors {
		if d.IsActive {
			linked[d.ID] = true
		}
	}
	activeCategories := make([]entity.ServiceCategory, 0, len(categories))
	for _, c := range categories {
		if c.IsActive {
			activeCategories = append(activeCategories, c)
		}
	}
	activeServices := make([]entity.MedicalService, 0, len(services))
	for _, s := range services {
		if s.IsActive {
			activeServices = append(activeServices, s)
		}
	}

	authorized, err := u.authorizedDoctors(ctx, activeCategories, linked)
	if err != nil {
		u.log.Warnf("Failed to load authorized doctors for department %d: %+v", departmentID, err)
		return nil, err
	}

	granted := make(map[int]bool)
	for _, cd := range authorized {
		for _, id := range cd.DoctorIDs {
			granted[id] = true
		}
	}
	deskDoctors := make([]entity.Doctor, 0, len(granted))
	for _, d := range doctors {
		if linked[d.ID] && granted[d.ID] {
			deskDoctors = append(deskDoctors, d)
		}
	}

	return &dto.DepartmentLoadResponse{
		Department:        *converter.DepartmentToResponse(department),
		Doctors:           converter.DoctorsToSummaries(deskDoctors),
		ServiceCategories: converter.ServiceCategoriesToResponses(activeCategories),
		Services:          converter.MedicalServicesToResponses(activeServices),
		AuthorizedDoctors: authorized,
	}, nil
}

// authorizedDoctors reads, per category, the doctors with a grant valid today
// and keeps those linked to the department.
func (u *receptionUsecase) authorizedDoctors(ctx context.Context, categories []entity.ServiceCategory, linked map[int]bool) ([]dto.CategoryDoctors, error) {
	today := schedule.DateOf(u.now())
	result := make([]dto.CategoryDoctors, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(authorizedLoadConcurrency)
	for i := range categories {
		i := i
		g.Go(func() error {
			found, err := u.repos.Grant.FindAuthorizedDoctors(u.db.WithContext(gctx), categories[i].ID, today)
			if err != nil {
				return err
			}
			ids := make([]int, 0, len(found))
			for _, d := range found {
				if linked[d.ID] {
					ids = append(ids, d.ID)
				}
			}
			result[i] = dto.CategoryDoctors{ServiceCategoryID: categories[i].ID, DoctorIDs: ids}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (u *receptionUsecase) CalculateServices(ctx context.Context, req *dto.CalculateServicesRequest) (*dto.CalculationResponse, error) {
	serviceDate, err := dateOr(req.ServiceDate, u.now())
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	if err := u.requirePatient(db, req.PatientID); err != nil {
		return nil, err
	}

	lines, _, err := u.priceLines(db, req.Services, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	primary, supplementary, err := u.coverages(db, req.PatientID)
	if err != nil {
		return nil, err
	}

	return &dto.CalculationResponse{
		PatientID: req.PatientID,
		Breakdown: billing.Calculate(lines, primary, supplementary, serviceDate),
	}, nil
}

func (u *receptionUsecase) CreateReception(ctx context.Context, by uuid.UUID, req *dto.CreateReceptionRequest) (*dto.ReceptionResponse, error) {
	at := req.AppointmentAt.In(time.Local)
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = entity.PaymentNone
	}
	if req.PaidAmount.IsPositive() && method == entity.PaymentNone {
		return nil, ErrPaymentMethodRequired
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.requirePatient(tx, req.PatientID); err != nil {
		return nil, err
	}
	if err := u.requireStaffing(tx, req.DoctorID, req.DepartmentID); err != nil {
		return nil, err
	}

	// An appointment must land on a free slot only when the doctor works
	// to a schedule.
	sched, err := u.repos.Schedule.FindActiveByDoctor(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find active schedule: %+v", err)
		return nil, err
	}
	if sched != nil {
		now := u.now()
		if at.Before(now) {
			return nil, ErrSlotInPast
		}
		day := schedule.DateOf(at)
		booked, err := u.repos.Reception.FindBookedTimes(tx, req.DoctorID, day, day.AddDate(0, 0, 1))
		if err != nil {
			u.log.Warnf("Failed to find booked times: %+v", err)
			return nil, err
		}
		if !schedule.IsFreeSlot(sched, at, booked, now) {
			return nil, ErrSlotNotAvailable
		}
	}

	lines, services, err := u.priceLines(tx, req.Services, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if err := u.requireAuthorization(tx, req.DoctorID, services, at); err != nil {
		return nil, err
	}

	primary, supplementary, err := u.coverages(tx, req.PatientID)
	if err != nil {
		return nil, err
	}
	breakdown := billing.Calculate(lines, primary, supplementary, at)

	paid := req.PaidAmount.Round(2)
	if paid.IsNegative() || paid.GreaterThan(breakdown.PatientShare) {
		return nil, ErrInvalidPaidAmount
	}

	reception := &entity.Reception{
		PatientID:          req.PatientID,
		DepartmentID:       req.DepartmentID,
		DoctorID:           req.DoctorID,
		AppointmentAt:      at,
		Status:             entity.ReceptionStatusRegistered,
		TotalAmount:        breakdown.Total,
		InsuranceShare:     breakdown.InsuranceShare,
		SupplementaryShare: breakdown.SupplementaryShare,
		PatientShare:       breakdown.PatientShare,
		PaidAmount:         paid,
		PaymentMethod:      method,
		Notes:              strings.TrimSpace(req.Notes),
		Items:              make([]entity.ReceptionItem, len(breakdown.Lines)),
	}
	for i, line := range breakdown.Lines {
		reception.Items[i] = entity.ReceptionItem{
			MedicalServiceID: line.ServiceID,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			TotalPrice:       line.Total,
		}
	}
	reception.StampCreate(actor(by))

	if err := u.repos.Reception.Create(tx, reception); err != nil {
		u.log.Warnf("Failed to create reception: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, actor(by), entity.AuditActionReceptionCreate, "reception", strconv.Itoa(reception.ID), reception); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.invalidateSlot(ctx, reception.DoctorID, at)

	created, err := u.repos.Reception.FindByID(u.db.WithContext(ctx), reception.ID)
	if err != nil || created == nil {
		return converter.ReceptionToResponse(reception), nil
	}
	return converter.ReceptionToResponse(created), nil
}

func (u *receptionUsecase) GetAllReceptions(ctx context.Context, query *dto.ReceptionQuery) ([]dto.ReceptionResponse, int64, error) {
	date, err := parseDate(query.Date)
	if err != nil {
		return nil, 0, err
	}

	params := pagination.New(query.Page, query.Limit)
	filter := &entity.ReceptionFilter{
		Date:         date,
		DoctorID:     query.DoctorID,
		DepartmentID: query.DepartmentID,
		PatientID:    query.PatientID,
		Status:       entity.ReceptionStatus(query.Status),
		Limit:        params.Limit,
		Offset:       params.Offset(),
	}

	receptions, total, err := u.repos.Reception.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find receptions: %+v", err)
		return nil, 0, err
	}

	return converter.ReceptionsToResponses(receptions), total, nil
}

func (u *receptionUsecase) GetReception(ctx context.Context, id int) (*dto.ReceptionResponse, error) {
	reception, err := u.repos.Reception.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find reception: %+v", err)
		return nil, err
	}
	if reception == nil {
		return nil, ErrReceptionNotFound
	}

	return converter.ReceptionToResponse(reception), nil
}

func (u *receptionUsecase) CancelReception(ctx context.Context, by uuid.UUID, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	reception, err := u.repos.Reception.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find reception: %+v", err)
		return err
	}
	if reception == nil {
		return ErrReceptionNotFound
	}
	if reception.IsCancelled() {
		return ErrReceptionAlreadyCancelled
	}

	affected, err := u.repos.Reception.Cancel(tx, id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to cancel reception: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrReceptionAlreadyCancelled
	}

	before := converter.ReceptionToResponse(reception)
	reception.Status = entity.ReceptionStatusCancelled
	if err := u.auditService.LogUpdate(tx, actor(by), entity.AuditActionReceptionCancel, "reception", strconv.Itoa(id), before, converter.ReceptionToResponse(reception)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.invalidateSlot(ctx, reception.DoctorID, reception.AppointmentAt.In(time.Local))
	return nil
}

func (u *receptionUsecase) requirePatient(db *gorm.DB, patientID int) error {
	patient, err := u.repos.Patient.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}

// requireStaffing checks that an active doctor works in the department.
func (u *receptionUsecase) requireStaffing(db *gorm.DB, doctorID, departmentID int) error {
	department, err := u.repos.Department.FindByID(db, departmentID)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return err
	}
	if department == nil {
		return ErrDepartmentNotFound
	}

	doctor, err := u.repos.Doctor.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	if !doctor.IsActive {
		return ErrDoctorInactive
	}

	link, err := u.repos.Link.FindLink(db, doctorID, departmentID, false)
	if err != nil {
		u.log.Warnf("Failed to find doctor department: %+v", err)
		return err
	}
	if link == nil || !link.IsActive {
		return ErrDoctorNotInDepartment
	}
	return nil
}

// priceLines resolves requested services into billing lines. When
// departmentID is set every service must belong to that department.
func (u *receptionUsecase) priceLines(db *gorm.DB, requested []dto.ServiceLineRequest, departmentID int) ([]billing.Line, map[int]entity.MedicalService, error) {
	ids := make([]int, 0, len(requested))
	for _, r := range requested {
		ids = append(ids, r.ServiceID)
	}

	found, err := u.repos.Service.FindByIDs(db, ids)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, nil, err
	}
	services := make(map[int]entity.MedicalService, len(found))
	for _, s := range found {
		services[s.ID] = s
	}

	lines := make([]billing.Line, 0, len(requested))
	for _, r := range requested {
		svc, ok := services[r.ServiceID]
		if !ok || !svc.IsActive {
			return nil, nil, ErrServiceUnavailable
		}
		if departmentID > 0 && (svc.ServiceCategory == nil || svc.ServiceCategory.DepartmentID != departmentID) {
			return nil, nil, ErrServiceNotInDepartment
		}
		lines = append(lines, billing.Line{
			ServiceID: svc.ID,
			Title:     svc.Title,
			UnitPrice: svc.Price,
			Quantity:  r.Quantity,
		})
	}
	return lines, services, nil
}

func (u *receptionUsecase) requireAuthorization(db *gorm.DB, doctorID int, services map[int]entity.MedicalService, at time.Time) error {
	checked := make(map[int]bool, len(services))
	for _, svc := range services {
		if checked[svc.ServiceCategoryID] {
			continue
		}
		checked[svc.ServiceCategoryID] = true

		ok, err := u.repos.Grant.IsAuthorized(db, doctorID, svc.ServiceCategoryID, at)
		if err != nil {
			u.log.Warnf("Failed to check doctor authorization: %+v", err)
			return err
		}
		if !ok {
			return ErrDoctorNotAuthorized
		}
	}
	return nil
}

// coverages reads the patient's policies. Missing insurers yield nil.
func (u *receptionUsecase) coverages(db *gorm.DB, patientID int) (*billing.Coverage, *billing.Coverage, error) {
	insurance, err := u.repos.Insurance.FindByPatient(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient insurance: %+v", err)
		return nil, nil, err
	}
	if insurance == nil {
		return nil, nil, nil
	}
	return coverageOf(insurance.PrimaryInsurer, insurance.PrimaryExpiryDate),
		coverageOf(insurance.SupplementaryInsurer, insurance.SupplementaryExpiryDate), nil
}

func coverageOf(insurer *entity.Insurer, expiresAt *time.Time) *billing.Coverage {
	if insurer == nil {
		return nil
	}
	return &billing.Coverage{
		InsurerID: insurer.ID,
		Percent:   decimal.Min(insurer.CoveragePercent, hundredPercent),
		Active:    insurer.IsActive && !insurer.IsDeleted,
		ExpiresAt: expiresAt,
	}
}

func (u *receptionUsecase) invalidateSlot(ctx context.Context, doctorID int, at time.Time) {
	if err := u.slotCache.Invalidate(ctx, doctorID, schedule.DateOf(at)); err != nil {
		u.log.Warnf("Failed to invalidate slots of doctor %d: %+v", doctorID, err)
	}
}
