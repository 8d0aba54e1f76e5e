package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mondaySchedule works 08:00-09:00 on Mondays in 30 minute slots.
func mondaySchedule(doctorID int) *entity.DoctorSchedule {
	return &entity.DoctorSchedule{
		ID:                  11,
		DoctorID:            doctorID,
		AppointmentDuration: 30,
		IsActive:            true,
		WorkDays: []entity.DoctorWorkDay{{
			DayOfWeek:  int(time.Monday),
			IsActive:   true,
			TimeRanges: []entity.DoctorTimeRange{{StartTime: "08:00", EndTime: "09:00"}},
		}},
	}
}

func TestCreateScheduleRejectsSecondActiveSchedule(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	doctors := new(doctorRepoMock)
	doctors.On("FindByID", 4).Return(&entity.Doctor{ID: 4, IsActive: true}, nil)

	schedules := new(scheduleRepoMock)
	schedules.On("FindActiveByDoctor", 4).Return(&entity.DoctorSchedule{ID: 2, DoctorID: 4, IsActive: true}, nil)

	uc := NewDoctorScheduleUsecase(db, quietLogger(), schedules, doctors, nil, new(auditServiceMock), disabledSlotCache(), 31)

	_, err := uc.CreateSchedule(context.Background(), uuid.New(), &dto.CreateScheduleRequest{
		DoctorID:            4,
		AppointmentDuration: 20,
		WorkDays: []dto.WorkDayRequest{{
			DayOfWeek:  int(time.Tuesday),
			TimeRanges: []dto.TimeRangeRequest{{StartTime: "09:00", EndTime: "12:00"}},
		}},
	})

	assert.ErrorIs(t, err, ErrActiveScheduleExists)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestGetSlotsWithoutActiveScheduleIsEmpty(t *testing.T) {
	db, _ := newMockDB(t)

	doctors := new(doctorRepoMock)
	doctors.On("FindByID", 4).Return(&entity.Doctor{ID: 4, IsActive: true}, nil)

	schedules := new(scheduleRepoMock)
	schedules.On("FindActiveByDoctor", 4).Return(nil, nil)

	uc := NewDoctorScheduleUsecase(db, quietLogger(), schedules, doctors, new(receptionRepoMock), nil, disabledSlotCache(), 31)

	slots, err := uc.GetSlots(context.Background(), 4, "2026-01-05", "2026-01-11")
	require.NoError(t, err)
	assert.Empty(t, slots.Days)
	assert.Equal(t, "2026-01-05", slots.From)
	assert.Equal(t, "2026-01-11", slots.To)
}

func TestGetSlotsMarksBookedTimes(t *testing.T) {
	db, _ := newMockDB(t)

	doctors := new(doctorRepoMock)
	doctors.On("FindByID", 4).Return(&entity.Doctor{ID: 4, IsActive: true}, nil)

	schedules := new(scheduleRepoMock)
	schedules.On("FindActiveByDoctor", 4).Return(mondaySchedule(4), nil)

	booked := time.Date(2026, 1, 5, 8, 30, 0, 0, time.Local)
	receptions := new(receptionRepoMock)
	receptions.On("FindBookedTimes", 4, mock.Anything, mock.Anything).Return([]time.Time{booked}, nil)

	uc := NewDoctorScheduleUsecase(db, quietLogger(), schedules, doctors, receptions, nil, disabledSlotCache(), 31)

	slots, err := uc.GetSlots(context.Background(), 4, "2026-01-05", "2026-01-06")
	require.NoError(t, err)
	require.Len(t, slots.Days, 1)
	assert.Equal(t, 30, slots.Duration)

	day := slots.Days[0]
	assert.Equal(t, "2026-01-05", day.Date)
	require.Len(t, day.Slots, 2)
	assert.False(t, day.Slots[0].Booked)
	assert.True(t, day.Slots[1].Booked)
	assert.True(t, day.Slots[1].Start.Equal(booked))
}

func TestGetSlotsRejectsLongRanges(t *testing.T) {
	uc := NewDoctorScheduleUsecase(nil, quietLogger(), nil, nil, nil, nil, disabledSlotCache(), 7)

	_, err := uc.GetSlots(context.Background(), 4, "2026-01-01", "2026-01-31")
	assert.ErrorIs(t, err, schedule.ErrRangeTooLong)

	_, err = uc.GetSlots(context.Background(), 4, "2026/01/01", "2026-01-02")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
