package usecase

import (
	"context"
	"strings"

	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/pkg/apperror"
	"clinic-admin/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDepartmentNotFound   = apperror.NotFound("department not found")
	ErrDepartmentCodeExists = apperror.Conflict("department code already exists")
	ErrDepartmentHasDoctors = apperror.Conflict("department still has assigned doctors")
)

type DepartmentUsecase interface {
	Create(ctx context.Context, by uuid.UUID, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetAll(ctx context.Context, query *dto.ListQuery) ([]dto.DepartmentResponse, int64, error)
	GetByID(ctx context.Context, id int) (*dto.DepartmentResponse, error)
	Update(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, by uuid.UUID, id int) error
	Restore(ctx context.Context, by uuid.UUID, id int) error
}

type departmentUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	departmentRepo repository.DepartmentRepository
}

func NewDepartmentUsecase(db *gorm.DB, log *logrus.Logger, departmentRepo repository.DepartmentRepository) DepartmentUsecase {
	return &departmentUsecase{
		db:             db,
		log:            log,
		departmentRepo: departmentRepo,
	}
}

func (u *departmentUsecase) Create(ctx context.Context, by uuid.UUID, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := u.departmentRepo.ExistsByCode(tx, code, 0)
	if err != nil {
		u.log.Warnf("Failed to check department code: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrDepartmentCodeExists
	}

	department := &entity.Department{
		Name:           strings.TrimSpace(req.Name),
		Code:           code,
		Description:    req.Description,
		Location:       strings.TrimSpace(req.Location),
		PhoneExtension: strings.TrimSpace(req.PhoneExtension),
		IsActive:       boolOr(req.IsActive, true),
	}
	department.StampCreate(actor(by))

	if err := u.departmentRepo.Create(tx, department); err != nil {
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) GetAll(ctx context.Context, query *dto.ListQuery) ([]dto.DepartmentResponse, int64, error) {
	page := pagination.New(query.Page, query.Limit)
	departments, total, err := u.departmentRepo.FindAll(u.db.WithContext(ctx), &entity.ListFilter{
		Search:   strings.TrimSpace(query.Search),
		IsActive: query.IsActive,
		Limit:    page.Limit,
		Offset:   page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to find departments: %+v", err)
		return nil, 0, err
	}

	return converter.DepartmentsToResponses(departments), total, nil
}

func (u *departmentUsecase) GetByID(ctx context.Context, id int) (*dto.DepartmentResponse, error) {
	department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) Update(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	department, err := u.departmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		exists, err := u.departmentRepo.ExistsByCode(tx, code, id)
		if err != nil {
			u.log.Warnf("Failed to check department code: %+v", err)
			return nil, err
		}
		if exists {
			return nil, ErrDepartmentCodeExists
		}
		department.Code = code
	}
	setString(&department.Name, req.Name)
	setString(&department.Description, req.Description)
	setString(&department.Location, req.Location)
	setString(&department.PhoneExtension, req.PhoneExtension)
	if req.IsActive != nil {
		department.IsActive = *req.IsActive
	}
	department.StampUpdate(actor(by))

	if err := u.departmentRepo.Update(tx, department); err != nil {
		u.log.Warnf("Failed to update department: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) Delete(ctx context.Context, by uuid.UUID, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctors, err := u.departmentRepo.CountActiveDoctors(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count department doctors: %+v", err)
		return err
	}
	if doctors > 0 {
		return ErrDepartmentHasDoctors
	}

	affected, err := u.departmentRepo.SoftDelete(tx, id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to delete department: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrDepartmentNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *departmentUsecase) Restore(ctx context.Context, by uuid.UUID, id int) error {
	affected, err := u.departmentRepo.Restore(u.db.WithContext(ctx), id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to restore department: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrNothingToRestore
	}
	return nil
}
