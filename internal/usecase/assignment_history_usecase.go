package usecase

import (
	"context"

	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/pkg/apperror"
	"clinic-admin/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHistoryNotFound  = apperror.NotFound("assignment history not found")
	ErrInvalidDateRange = apperror.Validation("from must not be after to")
)

type AssignmentHistoryUsecase interface {
	GetAll(ctx context.Context, query *dto.HistoryQuery) ([]dto.AssignmentHistoryResponse, int64, error)
	GetByID(ctx context.Context, id int64) (*dto.AssignmentHistoryResponse, error)
	GetStats(ctx context.Context, doctorID int) (*dto.HistoryStatsResponse, error)
}

type assignmentHistoryUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	historyRepo repository.AssignmentHistoryRepository
}

func NewAssignmentHistoryUsecase(db *gorm.DB, log *logrus.Logger, historyRepo repository.AssignmentHistoryRepository) AssignmentHistoryUsecase {
	return &assignmentHistoryUsecase{
		db:          db,
		log:         log,
		historyRepo: historyRepo,
	}
}

func (u *assignmentHistoryUsecase) GetAll(ctx context.Context, query *dto.HistoryQuery) ([]dto.AssignmentHistoryResponse, int64, error) {
	from, err := parseDate(query.From)
	if err != nil {
		return nil, 0, err
	}
	to, err := parseDate(query.To)
	if err != nil {
		return nil, 0, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, 0, ErrInvalidDateRange
	}
	if to != nil {
		// Inclusive upper bound: the whole "to" day.
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	page := pagination.New(query.Page, query.Limit)
	rows, total, err := u.historyRepo.FindAll(u.db.WithContext(ctx), &entity.HistoryFilter{
		DoctorID:     query.DoctorID,
		DepartmentID: query.DepartmentID,
		ActionType:   query.ActionType,
		From:         from,
		To:           to,
		Limit:        page.Limit,
		Offset:       page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to find assignment history: %+v", err)
		return nil, 0, err
	}

	return converter.HistoriesToResponses(rows), total, nil
}

func (u *assignmentHistoryUsecase) GetByID(ctx context.Context, id int64) (*dto.AssignmentHistoryResponse, error) {
	row, err := u.historyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find assignment history: %+v", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrHistoryNotFound
	}
	return converter.HistoryToResponse(row), nil
}

func (u *assignmentHistoryUsecase) GetStats(ctx context.Context, doctorID int) (*dto.HistoryStatsResponse, error) {
	counts, err := u.historyRepo.CountByAction(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to count assignment history: %+v", err)
		return nil, err
	}

	stats := &dto.HistoryStatsResponse{DoctorID: doctorID, ByAction: counts}
	for _, c := range counts {
		stats.Total += c.Count
	}
	if stats.ByAction == nil {
		stats.ByAction = []entity.ActionCount{}
	}
	return stats, nil
}
