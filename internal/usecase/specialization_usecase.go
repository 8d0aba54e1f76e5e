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
	ErrSpecializationNotFound = apperror.NotFound("specialization not found")
	ErrSpecializationExists   = apperror.Conflict("specialization name already exists")
	ErrSpecializationInUse    = apperror.Conflict("specialization is assigned to doctors")
	ErrNothingToRestore       = apperror.NotFound("no deleted record to restore")
)

type SpecializationUsecase interface {
	Create(ctx context.Context, by uuid.UUID, req *dto.CreateSpecializationRequest) (*dto.SpecializationResponse, error)
	GetAll(ctx context.Context, query *dto.ListQuery) ([]dto.SpecializationResponse, int64, error)
	GetByID(ctx context.Context, id int) (*dto.SpecializationResponse, error)
	Update(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateSpecializationRequest) (*dto.SpecializationResponse, error)
	Delete(ctx context.Context, by uuid.UUID, id int) error
	Restore(ctx context.Context, by uuid.UUID, id int) error
}

type specializationUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	specializationRepo repository.SpecializationRepository
}

func NewSpecializationUsecase(db *gorm.DB, log *logrus.Logger, specializationRepo repository.SpecializationRepository) SpecializationUsecase {
	return &specializationUsecase{
		db:                 db,
		log:                log,
		specializationRepo: specializationRepo,
	}
}

func (u *specializationUsecase) Create(ctx context.Context, by uuid.UUID, req *dto.CreateSpecializationRequest) (*dto.SpecializationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	name := strings.TrimSpace(req.Name)
	exists, err := u.specializationRepo.ExistsByName(tx, name, 0)
	if err != nil {
		u.log.Warnf("Failed to check specialization name: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrSpecializationExists
	}

	specialization := &entity.Specialization{
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		DisplayOrder: req.DisplayOrder,
		IsActive:     boolOr(req.IsActive, true),
	}
	specialization.StampCreate(actor(by))

	if err := u.specializationRepo.Create(tx, specialization); err != nil {
		u.log.Warnf("Failed to create specialization: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SpecializationToResponse(specialization), nil
}

func (u *specializationUsecase) GetAll(ctx context.Context, query *dto.ListQuery) ([]dto.SpecializationResponse, int64, error) {
	page := pagination.New(query.Page, query.Limit)
	specializations, total, err := u.specializationRepo.FindAll(u.db.WithContext(ctx), &entity.ListFilter{
		Search:   strings.TrimSpace(query.Search),
		IsActive: query.IsActive,
		Limit:    page.Limit,
		Offset:   page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to find specializations: %+v", err)
		return nil, 0, err
	}

	return converter.SpecializationsToResponses(specializations), total, nil
}

func (u *specializationUsecase) GetByID(ctx context.Context, id int) (*dto.SpecializationResponse, error) {
	specialization, err := u.specializationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialization: %+v", err)
		return nil, err
	}
	if specialization == nil {
		return nil, ErrSpecializationNotFound
	}

	return converter.SpecializationToResponse(specialization), nil
}

func (u *specializationUsecase) Update(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateSpecializationRequest) (*dto.SpecializationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialization, err := u.specializationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find specialization: %+v", err)
		return nil, err
	}
	if specialization == nil {
		return nil, ErrSpecializationNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		exists, err := u.specializationRepo.ExistsByName(tx, name, id)
		if err != nil {
			u.log.Warnf("Failed to check specialization name: %+v", err)
			return nil, err
		}
		if exists {
			return nil, ErrSpecializationExists
		}
		specialization.Name = name
	}
	setString(&specialization.Description, req.Description)
	if req.DisplayOrder != nil {
		specialization.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		specialization.IsActive = *req.IsActive
	}
	specialization.StampUpdate(actor(by))

	if err := u.specializationRepo.Update(tx, specialization); err != nil {
		u.log.Warnf("Failed to update specialization: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SpecializationToResponse(specialization), nil
}

func (u *specializationUsecase) Delete(ctx context.Context, by uuid.UUID, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctors, err := u.specializationRepo.CountDoctors(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count specialization doctors: %+v", err)
		return err
	}
	if doctors > 0 {
		return ErrSpecializationInUse
	}

	affected, err := u.specializationRepo.SoftDelete(tx, id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to delete specialization: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrSpecializationNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *specializationUsecase) Restore(ctx context.Context, by uuid.UUID, id int) error {
	affected, err := u.specializationRepo.Restore(u.db.WithContext(ctx), id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to restore specialization: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrNothingToRestore
	}
	return nil
}
