package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

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

var (
	ErrAlreadyAssigned     = apperror.Conflict("doctor is already assigned to this department")
	ErrNotAssigned         = apperror.NotFound("doctor is not assigned to this department")
	ErrAlreadyGranted      = apperror.Conflict("doctor is already authorized for this service category")
	ErrNotGranted          = apperror.NotFound("doctor is not authorized for this service category")
	ErrExpiryBeforeGranted = apperror.Validation("expiry_date must not be before granted_date")
)

// DoctorAssignmentUsecase manages department links and service category
// grants of doctors. Every change is appended to the assignment history.
type DoctorAssignmentUsecase interface {
	AssignDepartment(ctx context.Context, by uuid.UUID, doctorID int, req *dto.AssignDepartmentRequest) (*dto.DoctorDepartmentResponse, error)
	RemoveDepartment(ctx context.Context, by uuid.UUID, doctorID, departmentID int, req *dto.RemoveDepartmentRequest) error
	TransferDepartment(ctx context.Context, by uuid.UUID, doctorID int, req *dto.TransferDepartmentRequest) (*dto.DoctorDepartmentResponse, error)
	GetDepartments(ctx context.Context, doctorID int) ([]dto.DoctorDepartmentResponse, error)

	GrantServiceCategory(ctx context.Context, by uuid.UUID, doctorID int, req *dto.GrantServiceCategoryRequest) (*dto.DoctorServiceGrantResponse, error)
	RevokeServiceCategory(ctx context.Context, by uuid.UUID, doctorID, categoryID int) error
	GetServiceCategories(ctx context.Context, doctorID int) ([]dto.DoctorServiceGrantResponse, error)
}

type doctorAssignmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	doctorRepo         repository.DoctorRepository
	departmentRepo     repository.DepartmentRepository
	categoryRepo       repository.ServiceCategoryRepository
	departmentLinkRepo repository.DoctorDepartmentRepository
	serviceGrantRepo   repository.DoctorServiceCategoryRepository
	historyService     service.HistoryService
	now                func() time.Time
}

func NewDoctorAssignmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	departmentRepo repository.DepartmentRepository,
	categoryRepo repository.ServiceCategoryRepository,
	departmentLinkRepo repository.DoctorDepartmentRepository,
	serviceGrantRepo repository.DoctorServiceCategoryRepository,
	historyService service.HistoryService,
) DoctorAssignmentUsecase {
	return &doctorAssignmentUsecase{
		db:                 db,
		log:                log,
		doctorRepo:         doctorRepo,
		departmentRepo:     departmentRepo,
		categoryRepo:       categoryRepo,
		departmentLinkRepo: departmentLinkRepo,
		serviceGrantRepo:   serviceGrantRepo,
		historyService:     historyService,
		now:                time.Now,
	}
}

func (u *doctorAssignmentUsecase) AssignDepartment(ctx context.Context, by uuid.UUID, doctorID int, req *dto.AssignDepartmentRequest) (*dto.DoctorDepartmentResponse, error) {
	startDate, err := dateOr(req.StartDate, u.now())
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.requireDoctor(tx, doctorID)
	if err != nil {
		return nil, err
	}
	department, err := u.requireDepartment(tx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	link, restored, err := u.assign(tx, by, doctorID, req.DepartmentID, strings.TrimSpace(req.Position), startDate)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("%s assigned to %s", doctor.FullName(), department.Name)
	if restored {
		description = fmt.Sprintf("%s re-assigned to %s", doctor.FullName(), department.Name)
	}
	if err := u.historyService.Record(tx, service.HistoryEntry{
		DoctorID:     doctorID,
		DepartmentID: &department.ID,
		Action:       entity.HistoryActionAssign,
		Description:  description,
		New:          entity.JSON{"department_id": department.ID, "position": link.Position, "start_date": startDate.Format(dateLayout)},
		Notes:        req.Notes,
		By:           actor(by),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	link.Department = department
	return converter.DoctorDepartmentToResponse(link), nil
}

// assign creates the link, or restores the hidden link of the same pair.
func (u *doctorAssignmentUsecase) assign(tx *gorm.DB, by uuid.UUID, doctorID, departmentID int, position string, startDate time.Time) (*entity.DoctorDepartment, bool, error) {
	link, err := u.departmentLinkRepo.FindLink(tx, doctorID, departmentID, true)
	if err != nil {
		u.log.Warnf("Failed to find doctor department link: %+v", err)
		return nil, false, err
	}
	if link != nil && !link.IsDeleted {
		return nil, false, ErrAlreadyAssigned
	}

	if link != nil {
		link.Restore(actor(by))
		link.Position = position
		link.StartDate = startDate
		link.EndDate = nil
		link.IsActive = true
		if err := u.departmentLinkRepo.Update(tx, link); err != nil {
			u.log.Warnf("Failed to restore doctor department link: %+v", err)
			return nil, false, err
		}
		return link, true, nil
	}

	link = &entity.DoctorDepartment{
		DoctorID:     doctorID,
		DepartmentID: departmentID,
		Position:     position,
		StartDate:    startDate,
		IsActive:     true,
	}
	link.StampCreate(actor(by))
	if err := u.departmentLinkRepo.Create(tx, link); err != nil {
		u.log.Warnf("Failed to create doctor department link: %+v", err)
		return nil, false, err
	}
	return link, false, nil
}

// unassign closes and hides the live link of the pair.
func (u *doctorAssignmentUsecase) unassign(tx *gorm.DB, by uuid.UUID, doctorID, departmentID int, endDate time.Time) (*entity.DoctorDepartment, error) {
	link, err := u.departmentLinkRepo.FindLink(tx, doctorID, departmentID, false)
	if err != nil {
		u.log.Warnf("Failed to find doctor department link: %+v", err)
		return nil, err
	}
	if link == nil {
		return nil, ErrNotAssigned
	}

	link.EndDate = &endDate
	link.IsActive = false
	link.StampUpdate(actor(by))
	if err := u.departmentLinkRepo.Update(tx, link); err != nil {
		u.log.Warnf("Failed to close doctor department link: %+v", err)
		return nil, err
	}
	if _, err := u.departmentLinkRepo.SoftDelete(tx, link.ID, actor(by)); err != nil {
		u.log.Warnf("Failed to delete doctor department link: %+v", err)
		return nil, err
	}
	return link, nil
}

func (u *doctorAssignmentUsecase) RemoveDepartment(ctx context.Context, by uuid.UUID, doctorID, departmentID int, req *dto.RemoveDepartmentRequest) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.requireDoctor(tx, doctorID)
	if err != nil {
		return err
	}

	link, err := u.unassign(tx, by, doctorID, departmentID, u.today())
	if err != nil {
		return err
	}

	if err := u.historyService.Record(tx, service.HistoryEntry{
		DoctorID:     doctorID,
		DepartmentID: &departmentID,
		Action:       entity.HistoryActionRemove,
		Description:  fmt.Sprintf("%s removed from department %d", doctor.FullName(), departmentID),
		Previous:     entity.JSON{"department_id": departmentID, "position": link.Position, "start_date": link.StartDate.Format(dateLayout)},
		Notes:        req.Notes,
		By:           actor(by),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *doctorAssignmentUsecase) TransferDepartment(ctx context.Context, by uuid.UUID, doctorID int, req *dto.TransferDepartmentRequest) (*dto.DoctorDepartmentResponse, error) {
	effective, err := dateOr(req.EffectiveDate, u.now())
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.requireDoctor(tx, doctorID)
	if err != nil {
		return nil, err
	}
	target, err := u.requireDepartment(tx, req.ToDepartmentID)
	if err != nil {
		return nil, err
	}

	previous, err := u.unassign(tx, by, doctorID, req.FromDepartmentID, effective)
	if err != nil {
		return nil, err
	}

	position := strings.TrimSpace(req.Position)
	if position == "" {
		position = previous.Position
	}
	link, _, err := u.assign(tx, by, doctorID, req.ToDepartmentID, position, effective)
	if err != nil {
		return nil, err
	}

	if err := u.historyService.Record(tx, service.HistoryEntry{
		DoctorID:     doctorID,
		DepartmentID: &target.ID,
		Action:       entity.HistoryActionTransfer,
		Description:  fmt.Sprintf("%s transferred to %s", doctor.FullName(), target.Name),
		Previous:     entity.JSON{"department_id": req.FromDepartmentID, "position": previous.Position},
		New:          entity.JSON{"department_id": target.ID, "position": position, "effective_date": effective.Format(dateLayout)},
		Notes:        req.Notes,
		By:           actor(by),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	link.Department = target
	return converter.DoctorDepartmentToResponse(link), nil
}

func (u *doctorAssignmentUsecase) GetDepartments(ctx context.Context, doctorID int) ([]dto.DoctorDepartmentResponse, error) {
	db := u.db.WithContext(ctx)
	if _, err := u.requireDoctor(db, doctorID); err != nil {
		return nil, err
	}
	links, err := u.departmentLinkRepo.FindByDoctor(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor departments: %+v", err)
		return nil, err
	}
	return converter.DoctorDepartmentsToResponses(links), nil
}

func (u *doctorAssignmentUsecase) GrantServiceCategory(ctx context.Context, by uuid.UUID, doctorID int, req *dto.GrantServiceCategoryRequest) (*dto.DoctorServiceGrantResponse, error) {
	grantedDate, err := dateOr(req.GrantedDate, u.now())
	if err != nil {
		return nil, err
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if expiryDate != nil && expiryDate.Before(grantedDate) {
		return nil, ErrExpiryBeforeGranted
	}
	level := req.AuthorizationLevel
	if level == "" {
		level = entity.AuthorizationFull
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.requireDoctor(tx, doctorID)
	if err != nil {
		return nil, err
	}
	category, err := u.categoryRepo.FindByID(tx, req.ServiceCategoryID)
	if err != nil {
		u.log.Warnf("Failed to find service category: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrServiceCategoryNotFound
	}

	grant, err := u.serviceGrantRepo.FindLink(tx, doctorID, category.ID, true)
	if err != nil {
		u.log.Warnf("Failed to find service grant: %+v", err)
		return nil, err
	}
	if grant != nil && !grant.IsDeleted {
		return nil, ErrAlreadyGranted
	}

	if grant != nil {
		grant.Restore(actor(by))
		grant.AuthorizationLevel = level
		grant.GrantedDate = grantedDate
		grant.ExpiryDate = expiryDate
		grant.Notes = req.Notes
		grant.IsActive = true
		err = u.serviceGrantRepo.Update(tx, grant)
	} else {
		grant = &entity.DoctorServiceCategory{
			DoctorID:           doctorID,
			ServiceCategoryID:  category.ID,
			AuthorizationLevel: level,
			GrantedDate:        grantedDate,
			ExpiryDate:         expiryDate,
			Notes:              req.Notes,
			IsActive:           true,
		}
		grant.StampCreate(actor(by))
		err = u.serviceGrantRepo.Create(tx, grant)
	}
	if err != nil {
		u.log.Warnf("Failed to save service grant: %+v", err)
		return nil, err
	}

	newValues := entity.JSON{"service_category_id": category.ID, "authorization_level": level, "granted_date": grantedDate.Format(dateLayout)}
	if expiryDate != nil {
		newValues["expiry_date"] = expiryDate.Format(dateLayout)
	}
	if err := u.historyService.Record(tx, service.HistoryEntry{
		DoctorID:          doctorID,
		DepartmentID:      &category.DepartmentID,
		ServiceCategoryID: &category.ID,
		Action:            entity.HistoryActionGrant,
		Description:       fmt.Sprintf("%s authorized for %s", doctor.FullName(), category.Title),
		New:               newValues,
		Notes:             req.Notes,
		By:                actor(by),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	grant.ServiceCategory = category
	return converter.ServiceGrantToResponse(grant, u.now()), nil
}

func (u *doctorAssignmentUsecase) RevokeServiceCategory(ctx context.Context, by uuid.UUID, doctorID, categoryID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	grant, err := u.serviceGrantRepo.FindLink(tx, doctorID, categoryID, false)
	if err != nil {
		u.log.Warnf("Failed to find service grant: %+v", err)
		return err
	}
	if grant == nil {
		return ErrNotGranted
	}

	if _, err := u.serviceGrantRepo.SoftDelete(tx, grant.ID, actor(by)); err != nil {
		u.log.Warnf("Failed to revoke service grant: %+v", err)
		return err
	}

	if err := u.historyService.Record(tx, service.HistoryEntry{
		DoctorID:          doctorID,
		ServiceCategoryID: &categoryID,
		Action:            entity.HistoryActionRevoke,
		Description:       fmt.Sprintf("authorization for service category %d revoked", categoryID),
		Previous:          entity.JSON{"service_category_id": categoryID, "authorization_level": grant.AuthorizationLevel},
		By:                actor(by),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *doctorAssignmentUsecase) GetServiceCategories(ctx context.Context, doctorID int) ([]dto.DoctorServiceGrantResponse, error) {
	db := u.db.WithContext(ctx)
	if _, err := u.requireDoctor(db, doctorID); err != nil {
		return nil, err
	}
	grants, err := u.serviceGrantRepo.FindByDoctor(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find service grants: %+v", err)
		return nil, err
	}
	return converter.ServiceGrantsToResponses(grants, u.now()), nil
}

func (u *doctorAssignmentUsecase) requireDoctor(db *gorm.DB, id int) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (u *doctorAssignmentUsecase) requireDepartment(db *gorm.DB, id int) (*entity.Department, error) {
	department, err := u.departmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}
	return department, nil
}

func (u *doctorAssignmentUsecase) today() time.Time {
	t, _ := dateOr("", u.now())
	return t
}
