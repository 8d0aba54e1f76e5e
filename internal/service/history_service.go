package service

import (
	"time"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HistoryEntry describes one staffing change of a doctor.
type HistoryEntry struct {
	DoctorID          int
	DepartmentID      *int
	ServiceCategoryID *int
	Action            string
	Description       string
	Previous          entity.JSON
	New               entity.JSON
	Notes             string
	By                *uuid.UUID
}

// HistoryService appends doctor assignment history inside the caller's transaction.
type HistoryService interface {
	Record(tx *gorm.DB, e HistoryEntry) error
}

type historyService struct {
	log         *logrus.Logger
	historyRepo repository.AssignmentHistoryRepository
	now         func() time.Time
}

func NewHistoryService(log *logrus.Logger, historyRepo repository.AssignmentHistoryRepository) HistoryService {
	return &historyService{log: log, historyRepo: historyRepo, now: time.Now}
}

func (s *historyService) Record(tx *gorm.DB, e HistoryEntry) error {
	history := &entity.DoctorAssignmentHistory{
		DoctorID:          e.DoctorID,
		DepartmentID:      e.DepartmentID,
		ServiceCategoryID: e.ServiceCategoryID,
		ActionType:        e.Action,
		ActionDescription: e.Description,
		PreviousValues:    e.Previous,
		NewValues:         e.New,
		Notes:             e.Notes,
		PerformedBy:       e.By,
		PerformedAt:       s.now(),
	}
	if err := s.historyRepo.Create(tx, history); err != nil {
		s.log.Warnf("Failed to record assignment history: %+v", err)
		return err
	}
	return nil
}
