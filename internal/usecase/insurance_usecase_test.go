package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/insuranceform"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func basicInsurer(id int) entity.Insurer {
	return entity.Insurer{ID: id, Name: "Social Security", Code: "SSO", Type: entity.InsurerTypeBasic, CoveragePercent: decimal.NewFromInt(70), IsActive: true}
}

func TestSaveInsurancePersistsNewRecord(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	patients := new(patientRepoMock)
	patients.On("FindByID", 5).Return(&entity.Patient{ID: 5}, nil)

	insurers := new(insurerRepoMock)
	insurers.On("FindByIDs", []int{4}).Return([]entity.Insurer{basicInsurer(4)}, nil)

	insurances := new(insuranceRepoMock)
	insurances.On("FindByPatient", 5).Return(nil, nil)
	insurances.On("Save", mock.MatchedBy(func(in *entity.PatientInsurance) bool {
		return in.PatientID == 5 && in.PrimaryInsurerID != nil && *in.PrimaryInsurerID == 4
	})).Return(nil)

	audit := new(auditServiceMock)
	audit.On("LogUpdate", entity.AuditActionInsuranceSave, "patient_insurance", mock.Anything).Return(nil)

	locker := &grantingLocker{}
	recorder := &outcomeRecorder{}
	uc := NewInsuranceUsecase(db, quietLogger(), patients, insurers, insurances, audit, locker, time.Minute, recorder)

	result, err := uc.SaveInsurance(context.Background(), uuid.New(), &dto.SaveInsuranceRequest{
		PatientID:        5,
		PrimaryInsurerID: intPtr(4),
		PolicyNumber:     "AB-12345",
	})
	require.NoError(t, err)
	assert.True(t, result.Saved)
	assert.NotEmpty(t, result.Changes)
	assert.Equal(t, []string{InsuranceSaveSaved}, recorder.outcomes)
	assert.Equal(t, 1, locker.released)
	insurances.AssertExpectations(t)
	audit.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestSaveInsuranceWithoutChangesWritesNothing(t *testing.T) {
	db, sqlMock := newMockDB(t)

	patients := new(patientRepoMock)
	patients.On("FindByID", 5).Return(&entity.Patient{ID: 5}, nil)

	insurances := new(insuranceRepoMock)
	insurances.On("FindByPatient", 5).Return(&entity.PatientInsurance{ID: 8, PatientID: 5, PrimaryInsurerID: intPtr(4), PolicyNumber: "AB-12345"}, nil)

	recorder := &outcomeRecorder{}
	uc := NewInsuranceUsecase(db, quietLogger(), patients, new(insurerRepoMock), insurances, new(auditServiceMock), &grantingLocker{}, time.Minute, recorder)

	result, err := uc.SaveInsurance(context.Background(), uuid.New(), &dto.SaveInsuranceRequest{
		PatientID:        5,
		PrimaryInsurerID: intPtr(4),
		PolicyNumber:     "AB-12345",
	})
	require.NoError(t, err)
	assert.False(t, result.Saved)
	assert.Empty(t, result.Changes)
	assert.Equal(t, []string{InsuranceSaveUnchanged}, recorder.outcomes)
	insurances.AssertNotCalled(t, "Save", mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestSaveInsuranceRejectsWrongInsurerType(t *testing.T) {
	db, _ := newMockDB(t)

	patients := new(patientRepoMock)
	patients.On("FindByID", 5).Return(&entity.Patient{ID: 5}, nil)

	supplementary := basicInsurer(6)
	supplementary.Type = entity.InsurerTypeSupplementary
	insurers := new(insurerRepoMock)
	insurers.On("FindByIDs", []int{6}).Return([]entity.Insurer{supplementary}, nil)

	insurances := new(insuranceRepoMock)
	insurances.On("FindByPatient", 5).Return(nil, nil)

	recorder := &outcomeRecorder{}
	uc := NewInsuranceUsecase(db, quietLogger(), patients, insurers, insurances, new(auditServiceMock), &grantingLocker{}, time.Minute, recorder)

	_, err := uc.SaveInsurance(context.Background(), uuid.New(), &dto.SaveInsuranceRequest{
		PatientID:        5,
		PrimaryInsurerID: intPtr(6),
		PolicyNumber:     "AB-12345",
	})
	assert.ErrorIs(t, err, insuranceform.ErrInvalidForm)
	assert.Equal(t, []string{InsuranceSaveInvalid}, recorder.outcomes)
}

func TestLoadInsuranceSplitsInsurersByType(t *testing.T) {
	db, _ := newMockDB(t)

	patients := new(patientRepoMock)
	patients.On("FindByID", 5).Return(&entity.Patient{ID: 5, FirstName: "Mina"}, nil)

	supplementary := basicInsurer(6)
	supplementary.Type = entity.InsurerTypeSupplementary
	insurers := new(insurerRepoMock)
	insurers.On("FindActive").Return([]entity.Insurer{basicInsurer(4), supplementary}, nil)

	insurances := new(insuranceRepoMock)
	insurances.On("FindByPatient", 5).Return(nil, nil)

	uc := NewInsuranceUsecase(db, quietLogger(), patients, insurers, insurances, nil, &grantingLocker{}, time.Minute, nil)

	loaded, err := uc.LoadInsurance(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, loaded.PrimaryInsurers, 1)
	require.Len(t, loaded.SupplementaryInsurers, 1)
	assert.Equal(t, 4, loaded.PrimaryInsurers[0].ID)
	assert.Equal(t, 6, loaded.SupplementaryInsurers[0].ID)
}
