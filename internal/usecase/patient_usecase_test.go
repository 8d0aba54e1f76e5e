package usecase

import (
	"context"
	"testing"

	"clinic-admin/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchPatientsRequiresTwoCharacters(t *testing.T) {
	patients := new(patientRepoMock)
	uc := NewPatientUsecase(nil, quietLogger(), patients, nil)

	_, err := uc.SearchPatients(context.Background(), " a ", 10)
	assert.ErrorIs(t, err, ErrPatientSearchQueryTooShort)
	patients.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchPatientsClampsLimit(t *testing.T) {
	db, _ := newMockDB(t)

	patients := new(patientRepoMock)
	patients.On("Search", "kar", maxPatientSearchLimit).Return([]entity.Patient{{ID: 1, LastName: "Karimi"}}, nil)
	patients.On("Search", "kar", defaultPatientSearchLimit).Return([]entity.Patient{}, nil)

	uc := NewPatientUsecase(db, quietLogger(), patients, nil)

	found, err := uc.SearchPatients(context.Background(), "kar", 500)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = uc.SearchPatients(context.Background(), "kar", 0)
	require.NoError(t, err)
	patients.AssertExpectations(t)
}
