package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// disabledSlotCache has no Redis behind it, so every call goes to the loader.
func disabledSlotCache() *service.SlotCache {
	return service.NewSlotCache(nil, quietLogger(), time.Minute, nil)
}

// Repository mocks embed the interface so only the methods a test drives
// need an implementation.

type doctorRepoMock struct {
	mock.Mock
	repository.DoctorRepository
}

func (m *doctorRepoMock) FindByID(_ *gorm.DB, id int) (*entity.Doctor, error) {
	args := m.Called(id)
	doctor, _ := args.Get(0).(*entity.Doctor)
	return doctor, args.Error(1)
}

func (m *doctorRepoMock) SoftDelete(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *doctorRepoMock) ExistsByNationalCode(_ *gorm.DB, code string, excludeID int) (bool, error) {
	args := m.Called(code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *doctorRepoMock) ExistsByCouncilNumber(_ *gorm.DB, number string, excludeID int) (bool, error) {
	args := m.Called(number, excludeID)
	return args.Bool(0), args.Error(1)
}

type departmentRepoMock struct {
	mock.Mock
	repository.DepartmentRepository
}

func (m *departmentRepoMock) FindByID(_ *gorm.DB, id int) (*entity.Department, error) {
	args := m.Called(id)
	department, _ := args.Get(0).(*entity.Department)
	return department, args.Error(1)
}

type linkRepoMock struct {
	mock.Mock
	repository.DoctorDepartmentRepository
}

func (m *linkRepoMock) FindLink(_ *gorm.DB, doctorID, departmentID int, includeDeleted bool) (*entity.DoctorDepartment, error) {
	args := m.Called(doctorID, departmentID, includeDeleted)
	link, _ := args.Get(0).(*entity.DoctorDepartment)
	return link, args.Error(1)
}

func (m *linkRepoMock) SoftDeleteByDoctor(_ *gorm.DB, doctorID int, by *uuid.UUID) (int64, error) {
	args := m.Called(doctorID)
	return args.Get(0).(int64), args.Error(1)
}

type grantRepoMock struct {
	mock.Mock
	repository.DoctorServiceCategoryRepository
}

func (m *grantRepoMock) SoftDeleteByDoctor(_ *gorm.DB, doctorID int, by *uuid.UUID) (int64, error) {
	args := m.Called(doctorID)
	return args.Get(0).(int64), args.Error(1)
}

type scheduleRepoMock struct {
	mock.Mock
	repository.DoctorScheduleRepository
}

func (m *scheduleRepoMock) FindActiveByDoctor(_ *gorm.DB, doctorID int) (*entity.DoctorSchedule, error) {
	args := m.Called(doctorID)
	schedule, _ := args.Get(0).(*entity.DoctorSchedule)
	return schedule, args.Error(1)
}

func (m *scheduleRepoMock) SoftDelete(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

type receptionRepoMock struct {
	mock.Mock
	repository.ReceptionRepository
}

func (m *receptionRepoMock) FindBookedTimes(_ *gorm.DB, doctorID int, from, to time.Time) ([]time.Time, error) {
	args := m.Called(doctorID, from, to)
	booked, _ := args.Get(0).([]time.Time)
	return booked, args.Error(1)
}

type patientRepoMock struct {
	mock.Mock
	repository.PatientRepository
}

func (m *patientRepoMock) FindByID(_ *gorm.DB, id int) (*entity.Patient, error) {
	args := m.Called(id)
	patient, _ := args.Get(0).(*entity.Patient)
	return patient, args.Error(1)
}

func (m *patientRepoMock) Search(_ *gorm.DB, query string, limit int) ([]entity.Patient, error) {
	args := m.Called(query, limit)
	patients, _ := args.Get(0).([]entity.Patient)
	return patients, args.Error(1)
}

type insurerRepoMock struct {
	mock.Mock
	repository.InsurerRepository
}

func (m *insurerRepoMock) FindByIDs(_ *gorm.DB, ids []int) ([]entity.Insurer, error) {
	args := m.Called(ids)
	insurers, _ := args.Get(0).([]entity.Insurer)
	return insurers, args.Error(1)
}

func (m *insurerRepoMock) FindActive(_ *gorm.DB) ([]entity.Insurer, error) {
	args := m.Called()
	insurers, _ := args.Get(0).([]entity.Insurer)
	return insurers, args.Error(1)
}

type insuranceRepoMock struct {
	mock.Mock
	repository.PatientInsuranceRepository
}

func (m *insuranceRepoMock) FindByPatient(_ *gorm.DB, patientID int) (*entity.PatientInsurance, error) {
	args := m.Called(patientID)
	insurance, _ := args.Get(0).(*entity.PatientInsurance)
	return insurance, args.Error(1)
}

func (m *insuranceRepoMock) Save(_ *gorm.DB, insurance *entity.PatientInsurance) error {
	return m.Called(insurance).Error(0)
}

type auditServiceMock struct {
	mock.Mock
}

func (m *auditServiceMock) LogCreate(_ *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	return m.Called(action, entityName, entityID).Error(0)
}

func (m *auditServiceMock) LogUpdate(_ *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return m.Called(action, entityName, entityID).Error(0)
}

func (m *auditServiceMock) LogDelete(_ *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	return m.Called(action, entityName, entityID).Error(0)
}

// grantingLocker always hands out the lock and counts releases.
type grantingLocker struct {
	released int
}

func (l *grantingLocker) Acquire(context.Context, string, time.Duration) (func(), bool, error) {
	return func() { l.released++ }, true, nil
}

type outcomeRecorder struct {
	outcomes []string
}

func (r *outcomeRecorder) RecordInsuranceSave(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func (m *linkRepoMock) Create(_ *gorm.DB, link *entity.DoctorDepartment) error {
	return m.Called(link).Error(0)
}

func (m *linkRepoMock) Update(_ *gorm.DB, link *entity.DoctorDepartment) error {
	return m.Called(link).Error(0)
}

type historyServiceMock struct {
	mock.Mock
}

func (m *historyServiceMock) Record(_ *gorm.DB, e service.HistoryEntry) error {
	return m.Called(e.Action, e.Description).Error(0)
}

func (m *doctorRepoMock) FindByIDIncludingDeleted(_ *gorm.DB, id int) (*entity.Doctor, error) {
	args := m.Called(id)
	doctor, _ := args.Get(0).(*entity.Doctor)
	return doctor, args.Error(1)
}

func (m *doctorRepoMock) FindByDepartment(_ *gorm.DB, departmentID int) ([]entity.Doctor, error) {
	args := m.Called(departmentID)
	doctors, _ := args.Get(0).([]entity.Doctor)
	return doctors, args.Error(1)
}

func (m *doctorRepoMock) Restore(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *departmentRepoMock) CountActiveDoctors(_ *gorm.DB, id int) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *departmentRepoMock) SoftDelete(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *departmentRepoMock) Restore(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *linkRepoMock) SoftDelete(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *grantRepoMock) FindLink(_ *gorm.DB, doctorID, categoryID int, includeDeleted bool) (*entity.DoctorServiceCategory, error) {
	args := m.Called(doctorID, categoryID, includeDeleted)
	grant, _ := args.Get(0).(*entity.DoctorServiceCategory)
	return grant, args.Error(1)
}

func (m *grantRepoMock) Create(_ *gorm.DB, grant *entity.DoctorServiceCategory) error {
	return m.Called(grant).Error(0)
}

func (m *grantRepoMock) Update(_ *gorm.DB, grant *entity.DoctorServiceCategory) error {
	return m.Called(grant).Error(0)
}

func (m *grantRepoMock) SoftDelete(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *grantRepoMock) FindAuthorizedDoctors(_ *gorm.DB, categoryID int, at time.Time) ([]entity.Doctor, error) {
	args := m.Called(categoryID, at)
	doctors, _ := args.Get(0).([]entity.Doctor)
	return doctors, args.Error(1)
}

func (m *grantRepoMock) IsAuthorized(_ *gorm.DB, doctorID, categoryID int, at time.Time) (bool, error) {
	args := m.Called(doctorID, categoryID)
	return args.Bool(0), args.Error(1)
}

type categoryRepoMock struct {
	mock.Mock
	repository.ServiceCategoryRepository
}

func (m *categoryRepoMock) FindByID(_ *gorm.DB, id int) (*entity.ServiceCategory, error) {
	args := m.Called(id)
	category, _ := args.Get(0).(*entity.ServiceCategory)
	return category, args.Error(1)
}

func (m *categoryRepoMock) FindByDepartment(_ *gorm.DB, departmentID int) ([]entity.ServiceCategory, error) {
	args := m.Called(departmentID)
	categories, _ := args.Get(0).([]entity.ServiceCategory)
	return categories, args.Error(1)
}

type medicalServiceRepoMock struct {
	mock.Mock
	repository.MedicalServiceRepository
}

func (m *medicalServiceRepoMock) FindByIDs(_ *gorm.DB, ids []int) ([]entity.MedicalService, error) {
	args := m.Called(ids)
	services, _ := args.Get(0).([]entity.MedicalService)
	return services, args.Error(1)
}

func (m *medicalServiceRepoMock) FindByDepartment(_ *gorm.DB, departmentID int) ([]entity.MedicalService, error) {
	args := m.Called(departmentID)
	services, _ := args.Get(0).([]entity.MedicalService)
	return services, args.Error(1)
}

func (m *receptionRepoMock) FindByID(_ *gorm.DB, id int) (*entity.Reception, error) {
	args := m.Called(id)
	reception, _ := args.Get(0).(*entity.Reception)
	return reception, args.Error(1)
}

func (m *receptionRepoMock) Cancel(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

type specializationRepoMock struct {
	mock.Mock
	repository.SpecializationRepository
}

func (m *specializationRepoMock) CountDoctors(_ *gorm.DB, id int) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *specializationRepoMock) SoftDelete(_ *gorm.DB, id int, by *uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}
