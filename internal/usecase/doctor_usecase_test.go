package usecase

import (
	"context"
	"testing"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDoctorRejectsDuplicateNationalCode(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	doctors := new(doctorRepoMock)
	doctors.On("ExistsByNationalCode", "0012345678", 0).Return(true, nil)

	uc := NewDoctorUsecase(db, quietLogger(), doctors, nil, nil, nil, nil, new(auditServiceMock), disabledSlotCache())

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateDoctorRequest{
		FirstName:            "Sara",
		LastName:             "Karimi",
		NationalCode:         "0012345678",
		MedicalCouncilNumber: "M-1001",
	})

	require.ErrorIs(t, err, ErrNationalCodeExists)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	doctors.AssertNotCalled(t, "ExistsByCouncilNumber", mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDeleteDoctorCascadesToLinksGrantsAndSchedule(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	doctors := new(doctorRepoMock)
	doctors.On("FindByID", 7).Return(&entity.Doctor{ID: 7, FirstName: "Ali", IsActive: true}, nil)
	doctors.On("SoftDelete", 7).Return(int64(1), nil)

	links := new(linkRepoMock)
	links.On("SoftDeleteByDoctor", 7).Return(int64(2), nil)

	grants := new(grantRepoMock)
	grants.On("SoftDeleteByDoctor", 7).Return(int64(1), nil)

	schedules := new(scheduleRepoMock)
	schedules.On("FindActiveByDoctor", 7).Return(&entity.DoctorSchedule{ID: 31, DoctorID: 7, IsActive: true}, nil)
	schedules.On("SoftDelete", 31).Return(int64(1), nil)

	audit := new(auditServiceMock)
	audit.On("LogDelete", entity.AuditActionDoctorDelete, "doctor", "7").Return(nil)

	uc := NewDoctorUsecase(db, quietLogger(), doctors, nil, links, grants, schedules, audit, disabledSlotCache())

	require.NoError(t, uc.Delete(context.Background(), uuid.New(), 7))

	doctors.AssertExpectations(t)
	links.AssertExpectations(t)
	grants.AssertExpectations(t)
	schedules.AssertExpectations(t)
	audit.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDeleteDoctorNotFound(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	doctors := new(doctorRepoMock)
	doctors.On("FindByID", 99).Return(nil, nil)

	uc := NewDoctorUsecase(db, quietLogger(), doctors, nil, nil, nil, nil, new(auditServiceMock), disabledSlotCache())

	err := uc.Delete(context.Background(), uuid.New(), 99)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	doctors.AssertNotCalled(t, "SoftDelete", mock.Anything)
}

func TestRestoreDoctor(t *testing.T) {
	hidden := func() *entity.Doctor {
		d := &entity.Doctor{ID: 7, FirstName: "Ali", LastName: "Rezaei", NationalCode: "0012345678", MedicalCouncilNumber: "M-1001", IsActive: true}
		d.IsDeleted = true
		return d
	}

	t.Run("brings back hidden doctor", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		doctors := new(doctorRepoMock)
		doctors.On("FindByIDIncludingDeleted", 7).Return(hidden(), nil)
		doctors.On("ExistsByNationalCode", "0012345678", 7).Return(false, nil)
		doctors.On("ExistsByCouncilNumber", "M-1001", 7).Return(false, nil)
		doctors.On("Restore", 7).Return(int64(1), nil)

		audit := new(auditServiceMock)
		audit.On("LogUpdate", entity.AuditActionDoctorRestore, "doctor", "7").Return(nil)

		uc := NewDoctorUsecase(db, quietLogger(), doctors, nil, nil, nil, nil, audit, disabledSlotCache())

		resp, err := uc.Restore(context.Background(), uuid.New(), 7)
		require.NoError(t, err)
		assert.Equal(t, 7, resp.ID)

		doctors.AssertExpectations(t)
		audit.AssertExpectations(t)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("live doctor", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		doctors := new(doctorRepoMock)
		doctors.On("FindByIDIncludingDeleted", 7).Return(&entity.Doctor{ID: 7, IsActive: true}, nil)

		uc := NewDoctorUsecase(db, quietLogger(), doctors, nil, nil, nil, nil, new(auditServiceMock), disabledSlotCache())

		_, err := uc.Restore(context.Background(), uuid.New(), 7)
		assert.ErrorIs(t, err, ErrDoctorNotDeleted)
		doctors.AssertNotCalled(t, "Restore", mock.Anything)
	})

	t.Run("codes taken by a live doctor", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		doctors := new(doctorRepoMock)
		doctors.On("FindByIDIncludingDeleted", 7).Return(hidden(), nil)
		doctors.On("ExistsByNationalCode", "0012345678", 7).Return(true, nil)

		uc := NewDoctorUsecase(db, quietLogger(), doctors, nil, nil, nil, nil, new(auditServiceMock), disabledSlotCache())

		_, err := uc.Restore(context.Background(), uuid.New(), 7)
		assert.ErrorIs(t, err, ErrNationalCodeExists)
		doctors.AssertNotCalled(t, "Restore", mock.Anything)
	})
}
