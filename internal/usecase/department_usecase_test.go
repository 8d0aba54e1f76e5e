package usecase

import (
	"context"
	"testing"

	"clinic-admin/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteDepartmentWithDoctorsIsRefused(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	departments := new(departmentRepoMock)
	departments.On("CountActiveDoctors", 2).Return(int64(3), nil)

	uc := NewDepartmentUsecase(db, quietLogger(), departments)

	err := uc.Delete(context.Background(), uuid.New(), 2)
	require.ErrorIs(t, err, ErrDepartmentHasDoctors)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	departments.AssertNotCalled(t, "SoftDelete", mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDeleteEmptyDepartment(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	departments := new(departmentRepoMock)
	departments.On("CountActiveDoctors", 2).Return(int64(0), nil)
	departments.On("SoftDelete", 2).Return(int64(1), nil)

	uc := NewDepartmentUsecase(db, quietLogger(), departments)

	require.NoError(t, uc.Delete(context.Background(), uuid.New(), 2))
	departments.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDeleteMissingDepartment(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	departments := new(departmentRepoMock)
	departments.On("CountActiveDoctors", 2).Return(int64(0), nil)
	departments.On("SoftDelete", 2).Return(int64(0), nil)

	uc := NewDepartmentUsecase(db, quietLogger(), departments)

	assert.ErrorIs(t, uc.Delete(context.Background(), uuid.New(), 2), ErrDepartmentNotFound)
}

func TestRestoreDepartment(t *testing.T) {
	db, _ := newMockDB(t)

	departments := new(departmentRepoMock)
	departments.On("Restore", 2).Return(int64(1), nil)
	departments.On("Restore", 3).Return(int64(0), nil)

	uc := NewDepartmentUsecase(db, quietLogger(), departments)

	assert.NoError(t, uc.Restore(context.Background(), uuid.New(), 2))
	assert.ErrorIs(t, uc.Restore(context.Background(), uuid.New(), 3), ErrNothingToRestore, "only hidden rows come back")
}
