package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteSpecialization(t *testing.T) {
	t.Run("in use by doctors", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		specializations := new(specializationRepoMock)
		specializations.On("CountDoctors", 6).Return(int64(2), nil)

		uc := NewSpecializationUsecase(db, quietLogger(), specializations)

		assert.ErrorIs(t, uc.Delete(context.Background(), uuid.New(), 6), ErrSpecializationInUse)
		specializations.AssertNotCalled(t, "SoftDelete", mock.Anything)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unused", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		specializations := new(specializationRepoMock)
		specializations.On("CountDoctors", 6).Return(int64(0), nil)
		specializations.On("SoftDelete", 6).Return(int64(1), nil)

		uc := NewSpecializationUsecase(db, quietLogger(), specializations)

		require.NoError(t, uc.Delete(context.Background(), uuid.New(), 6))
		specializations.AssertExpectations(t)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
