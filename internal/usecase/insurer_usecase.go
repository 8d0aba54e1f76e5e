package usecase

import (
	"context"
	"strings"

	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInsurerCodeExists      = apperror.Conflict("insurer code already exists")
	ErrInvalidCoveragePercent = apperror.Validation("coverage percent must be between 0 and 100")
	hundredPercent            = decimal.NewFromInt(100)
)

type InsurerUsecase interface {
	GetActiveInsurers(ctx context.Context) ([]dto.InsurerResponse, error)
	CreateInsurer(ctx context.Context, by uuid.UUID, req *dto.CreateInsurerRequest) (*dto.InsurerResponse, error)
}

type insurerUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	insurerRepo repository.InsurerRepository
}

func NewInsurerUsecase(db *gorm.DB, log *logrus.Logger, insurerRepo repository.InsurerRepository) InsurerUsecase {
	return &insurerUsecase{
		db:          db,
		log:         log,
		insurerRepo: insurerRepo,
	}
}

func (u *insurerUsecase) GetActiveInsurers(ctx context.Context) ([]dto.InsurerResponse, error) {
	insurers, err := u.insurerRepo.FindActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find insurers: %+v", err)
		return nil, err
	}

	return converter.InsurersToResponses(insurers), nil
}

func (u *insurerUsecase) CreateInsurer(ctx context.Context, by uuid.UUID, req *dto.CreateInsurerRequest) (*dto.InsurerResponse, error) {
	if req.CoveragePercent.IsNegative() || req.CoveragePercent.GreaterThan(hundredPercent) {
		return nil, ErrInvalidCoveragePercent
	}

	db := u.db.WithContext(ctx)
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := u.insurerRepo.ExistsByCode(db, code)
	if err != nil {
		u.log.Warnf("Failed to check insurer code: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrInsurerCodeExists
	}

	insurer := &entity.Insurer{
		Name:            strings.TrimSpace(req.Name),
		Code:            code,
		Type:            req.Type,
		CoveragePercent: req.CoveragePercent.Round(2),
		IsActive:        boolOr(req.IsActive, true),
	}
	insurer.StampCreate(actor(by))

	if err := u.insurerRepo.Create(db, insurer); err != nil {
		u.log.Warnf("Failed to create insurer: %+v", err)
		return nil, err
	}

	return converter.InsurerToResponse(insurer), nil
}
