package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assignmentFixture() (*doctorRepoMock, *departmentRepoMock) {
	doctors := new(doctorRepoMock)
	doctors.On("FindByID", 4).Return(&entity.Doctor{ID: 4, FirstName: "Ali", LastName: "Rezaei", IsActive: true}, nil)

	departments := new(departmentRepoMock)
	departments.On("FindByID", 2).Return(&entity.Department{ID: 2, Name: "Cardiology", IsActive: true}, nil)
	return doctors, departments
}

func TestAssignDepartmentRestoresSoftDeletedLink(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	doctors, departments := assignmentFixture()

	ended := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	removed := &entity.DoctorDepartment{ID: 17, DoctorID: 4, DepartmentID: 2, IsActive: false, EndDate: &ended}
	removed.IsDeleted = true

	links := new(linkRepoMock)
	links.On("FindLink", 4, 2, true).Return(removed, nil)
	links.On("Update", mock.MatchedBy(func(l *entity.DoctorDepartment) bool {
		return l.ID == 17 && !l.IsDeleted && l.IsActive && l.EndDate == nil && l.Position == "Consultant"
	})).Return(nil)

	history := new(historyServiceMock)
	history.On("Record", entity.HistoryActionAssign, "Ali Rezaei re-assigned to Cardiology").Return(nil)

	uc := NewDoctorAssignmentUsecase(db, quietLogger(), doctors, departments, nil, links, nil, history)

	resp, err := uc.AssignDepartment(context.Background(), uuid.New(), 4, &dto.AssignDepartmentRequest{
		DepartmentID: 2,
		Position:     " Consultant ",
		StartDate:    "2026-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 17, resp.ID)

	links.AssertNotCalled(t, "Create", mock.Anything)
	links.AssertExpectations(t)
	history.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAssignDepartmentRejectsLiveLink(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	doctors, departments := assignmentFixture()

	links := new(linkRepoMock)
	links.On("FindLink", 4, 2, true).Return(&entity.DoctorDepartment{ID: 17, DoctorID: 4, DepartmentID: 2, IsActive: true}, nil)

	uc := NewDoctorAssignmentUsecase(db, quietLogger(), doctors, departments, nil, links, nil, new(historyServiceMock))

	_, err := uc.AssignDepartment(context.Background(), uuid.New(), 4, &dto.AssignDepartmentRequest{DepartmentID: 2})
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestTransferDepartmentClosesOldLinkAndOpensNew(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	doctors, departments := assignmentFixture()
	departments.On("FindByID", 3).Return(&entity.Department{ID: 3, Name: "Neurology", IsActive: true}, nil)

	current := &entity.DoctorDepartment{ID: 17, DoctorID: 4, DepartmentID: 2, Position: "Consultant", IsActive: true}

	links := new(linkRepoMock)
	links.On("FindLink", 4, 2, false).Return(current, nil)
	links.On("Update", mock.MatchedBy(func(l *entity.DoctorDepartment) bool {
		return l.ID == 17 && !l.IsActive && l.EndDate != nil && l.EndDate.Format(dateLayout) == "2026-03-01"
	})).Return(nil)
	links.On("SoftDelete", 17).Return(int64(1), nil)
	links.On("FindLink", 4, 3, true).Return(nil, nil)
	links.On("Create", mock.MatchedBy(func(l *entity.DoctorDepartment) bool {
		return l.DepartmentID == 3 && l.Position == "Consultant" && l.IsActive && l.StartDate.Format(dateLayout) == "2026-03-01"
	})).Return(nil)

	history := new(historyServiceMock)
	history.On("Record", entity.HistoryActionTransfer, "Ali Rezaei transferred to Neurology").Return(nil)

	uc := NewDoctorAssignmentUsecase(db, quietLogger(), doctors, departments, nil, links, nil, history)

	resp, err := uc.TransferDepartment(context.Background(), uuid.New(), 4, &dto.TransferDepartmentRequest{
		FromDepartmentID: 2,
		ToDepartmentID:   3,
		EffectiveDate:    "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.DepartmentID)
	assert.Equal(t, "Consultant", resp.Position, "position carries over when not given")

	links.AssertExpectations(t)
	history.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestTransferDepartmentRequiresCurrentLink(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	doctors, departments := assignmentFixture()
	departments.On("FindByID", 3).Return(&entity.Department{ID: 3, Name: "Neurology", IsActive: true}, nil)

	links := new(linkRepoMock)
	links.On("FindLink", 4, 2, false).Return(nil, nil)

	history := new(historyServiceMock)
	uc := NewDoctorAssignmentUsecase(db, quietLogger(), doctors, departments, nil, links, nil, history)

	_, err := uc.TransferDepartment(context.Background(), uuid.New(), 4, &dto.TransferDepartmentRequest{FromDepartmentID: 2, ToDepartmentID: 3})
	assert.ErrorIs(t, err, ErrNotAssigned)
	links.AssertNotCalled(t, "Create", mock.Anything)
	history.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestRemoveDepartmentHidesLinkAndRecordsHistory(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	doctors, _ := assignmentFixture()
	today := time.Date(2026, 4, 10, 15, 0, 0, 0, time.Local)

	links := new(linkRepoMock)
	links.On("FindLink", 4, 2, false).Return(&entity.DoctorDepartment{ID: 17, DoctorID: 4, DepartmentID: 2, IsActive: true}, nil)
	links.On("Update", mock.MatchedBy(func(l *entity.DoctorDepartment) bool {
		return l.ID == 17 && !l.IsActive && l.EndDate != nil && l.EndDate.Format(dateLayout) == "2026-04-10"
	})).Return(nil)
	links.On("SoftDelete", 17).Return(int64(1), nil)

	history := new(historyServiceMock)
	history.On("Record", entity.HistoryActionRemove, "Ali Rezaei removed from department 2").Return(nil)

	uc := NewDoctorAssignmentUsecase(db, quietLogger(), doctors, nil, nil, links, nil, history)
	uc.(*doctorAssignmentUsecase).now = func() time.Time { return today }

	require.NoError(t, uc.RemoveDepartment(context.Background(), uuid.New(), 4, 2, &dto.RemoveDepartmentRequest{Notes: "left"}))

	links.AssertExpectations(t)
	history.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRemoveDepartmentWithoutLink(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	doctors, _ := assignmentFixture()
	links := new(linkRepoMock)
	links.On("FindLink", 4, 2, false).Return(nil, nil)

	uc := NewDoctorAssignmentUsecase(db, quietLogger(), doctors, nil, nil, links, nil, new(historyServiceMock))

	err := uc.RemoveDepartment(context.Background(), uuid.New(), 4, 2, &dto.RemoveDepartmentRequest{})
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func echoCategory() *categoryRepoMock {
	categories := new(categoryRepoMock)
	categories.On("FindByID", 8).Return(&entity.ServiceCategory{ID: 8, DepartmentID: 2, Title: "Echocardiography", IsActive: true}, nil)
	return categories
}

func TestGrantServiceCategoryRestoresRevokedGrant(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	doctors, _ := assignmentFixture()

	revoked := &entity.DoctorServiceCategory{ID: 30, DoctorID: 4, ServiceCategoryID: 8, AuthorizationLevel: entity.AuthorizationLimited}
	revoked.IsDeleted = true

	grants := new(grantRepoMock)
	grants.On("FindLink", 4, 8, true).Return(revoked, nil)
	grants.On("Update", mock.MatchedBy(func(g *entity.DoctorServiceCategory) bool {
		return g.ID == 30 && !g.IsDeleted && g.IsActive &&
			g.AuthorizationLevel == entity.AuthorizationFull &&
			g.GrantedDate.Format(dateLayout) == "2026-02-01"
	})).Return(nil)

	history := new(historyServiceMock)
	history.On("Record", entity.HistoryActionGrant, "Ali Rezaei authorized for Echocardiography").Return(nil)

	uc := NewDoctorAssignmentUsecase(db, quietLogger(), doctors, nil, echoCategory(), nil, grants, history)

	resp, err := uc.GrantServiceCategory(context.Background(), uuid.New(), 4, &dto.GrantServiceCategoryRequest{
		ServiceCategoryID: 8,
		GrantedDate:       "2026-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.ID)
	assert.Equal(t, entity.AuthorizationFull, resp.AuthorizationLevel)
	assert.True(t, resp.IsActive)

	grants.AssertNotCalled(t, "Create", mock.Anything)
	grants.AssertExpectations(t)
	history.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestGrantServiceCategoryRejectsLiveGrant(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	doctors, _ := assignmentFixture()
	grants := new(grantRepoMock)
	grants.On("FindLink", 4, 8, true).Return(&entity.DoctorServiceCategory{ID: 30, DoctorID: 4, ServiceCategoryID: 8, IsActive: true}, nil)

	uc := NewDoctorAssignmentUsecase(db, quietLogger(), doctors, nil, echoCategory(), nil, grants, new(historyServiceMock))

	_, err := uc.GrantServiceCategory(context.Background(), uuid.New(), 4, &dto.GrantServiceCategoryRequest{ServiceCategoryID: 8})
	assert.ErrorIs(t, err, ErrAlreadyGranted)
}

func TestGrantServiceCategoryRejectsExpiryBeforeGrant(t *testing.T) {
	uc := NewDoctorAssignmentUsecase(nil, quietLogger(), nil, nil, nil, nil, nil, nil)

	_, err := uc.GrantServiceCategory(context.Background(), uuid.New(), 4, &dto.GrantServiceCategoryRequest{
		ServiceCategoryID: 8,
		GrantedDate:       "2026-02-01",
		ExpiryDate:        "2026-01-31",
	})
	assert.ErrorIs(t, err, ErrExpiryBeforeGranted)
}

func TestRevokeServiceCategory(t *testing.T) {
	t.Run("revokes live grant", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		grants := new(grantRepoMock)
		grants.On("FindLink", 4, 8, false).Return(&entity.DoctorServiceCategory{ID: 30, DoctorID: 4, ServiceCategoryID: 8, AuthorizationLevel: entity.AuthorizationFull, IsActive: true}, nil)
		grants.On("SoftDelete", 30).Return(int64(1), nil)

		history := new(historyServiceMock)
		history.On("Record", entity.HistoryActionRevoke, "authorization for service category 8 revoked").Return(nil)

		uc := NewDoctorAssignmentUsecase(db, quietLogger(), nil, nil, nil, nil, grants, history)

		require.NoError(t, uc.RevokeServiceCategory(context.Background(), uuid.New(), 4, 8))
		grants.AssertExpectations(t)
		history.AssertExpectations(t)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("nothing to revoke", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		grants := new(grantRepoMock)
		grants.On("FindLink", 4, 8, false).Return(nil, nil)

		uc := NewDoctorAssignmentUsecase(db, quietLogger(), nil, nil, nil, nil, grants, new(historyServiceMock))

		assert.ErrorIs(t, uc.RevokeServiceCategory(context.Background(), uuid.New(), 4, 8), ErrNotGranted)
		grants.AssertNotCalled(t, "SoftDelete", mock.Anything)
	})
}
