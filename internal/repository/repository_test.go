package repository

import (
	"testing"
	"time"

	"clinic-admin/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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

func TestSoftDeleteStampsAuditColumns(t *testing.T) {
	db, mock := newMockDB(t)
	by := uuid.New()

	mock.ExpectExec(`UPDATE "doctors" SET .*"deleted_at"=.*"deleted_by"=.*"is_deleted"=.*WHERE id = .* AND is_deleted = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := NewDoctorRepository().SoftDelete(db, 7, &by)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreOnlyTouchesDeletedRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE "departments" SET .*WHERE id = .* AND is_deleted = `).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := NewDepartmentRepository().Restore(db, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDReturnsNilWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "specializations" WHERE id = .* AND specializations.is_deleted = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	specialization, err := NewSpecializationRepository().FindByID(db, 42)
	require.NoError(t, err)
	assert.Nil(t, specialization)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByCodeExcludesSelf(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "departments" WHERE \(code = .* AND is_deleted = .*\) AND id <> `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	found, err := NewDepartmentRepository().ExistsByCode(db, "CARD", 5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpecializationFindAllCountsThenPages(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "specializations" WHERE name ILIKE .* AND specializations.is_deleted = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "specializations" WHERE .* ORDER BY display_order ASC, name ASC LIMIT `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_order", "is_active", "is_deleted"}).
			AddRow(1, "Cardiology", 1, true, false).
			AddRow(2, "Neurology", 2, true, false))

	rows, total, err := NewSpecializationRepository().FindAll(db, &entity.ListFilter{Search: "ology", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Neurology", rows[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBookedTimesPlucksAppointments(t *testing.T) {
	db, mock := newMockDB(t)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	booked := from.Add(9 * time.Hour)

	mock.ExpectQuery(`SELECT "appointment_at" FROM "receptions" WHERE \(doctor_id = .* AND status = .*\) AND .*receptions.is_deleted = `).
		WillReturnRows(sqlmock.NewRows([]string{"appointment_at"}).AddRow(booked))

	times, err := NewReceptionRepository().FindBookedTimes(db, 1, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, times, 1)
	assert.True(t, times[0].Equal(booked))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelOnlyRegisteredReceptions(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE "receptions" SET .*"status"=.*WHERE id = .* AND status = .* AND is_deleted = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := NewReceptionRepository().Cancel(db, 9, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByActionGroupsRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT action_type, COUNT\(\*\) AS count FROM "doctor_assignment_histories" WHERE doctor_id = .* GROUP BY "action_type"`).
		WillReturnRows(sqlmock.NewRows([]string{"action_type", "count"}).
			AddRow(entity.HistoryActionAssign, 3).
			AddRow(entity.HistoryActionRemove, 1))

	counts, err := NewAssignmentHistoryRepository().CountByAction(db, 4)
	require.NoError(t, err)
	assert.Equal(t, []entity.ActionCount{
		{ActionType: entity.HistoryActionAssign, Count: 3},
		{ActionType: entity.HistoryActionRemove, Count: 1},
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsAuthorizedUsesGrantValidity(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "doctor_service_categories" WHERE .*expiry_date IS NULL OR .*expiry_date >= `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := NewDoctorServiceCategoryRepository().IsAuthorized(db, 1, 2, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
