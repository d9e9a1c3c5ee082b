package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/hauptbau/fieldops-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createTimeTrackingService(db *gorm.DB) *service.TimeTrackingService {
	return service.NewTimeTrackingService(
		repository.NewTimeEntryRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewProjectRepository(db),
		zap.NewNop(),
	)
}

func TestTimeTrackingService_ClockInAndOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTimeTrackingService(db)

	project := testutil.CreateTestProject(t, db)
	emp := testutil.CreateTestEmployee(t, db, nil)

	entry, err := svc.ClockIn(context.Background(), project.ID, &domain.ClockInRequest{
		EmployeeID: emp.ID,
		Note:       "Rohinstallation EG",
	})
	require.NoError(t, err)
	assert.Equal(t, emp.ID, entry.EmployeeID)
	assert.NotEmpty(t, entry.StartedAt)
	assert.Empty(t, entry.EndedAt)
	assert.Equal(t, 0.0, entry.DurationMinutes)

	closed, err := svc.ClockOut(context.Background(), project.ID, emp.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, closed.EndedAt)
	assert.GreaterOrEqual(t, closed.DurationMinutes, 0.0)
}

func TestTimeTrackingService_ClockIn_AlreadyClockedIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTimeTrackingService(db)

	project := testutil.CreateTestProject(t, db)
	emp := testutil.CreateTestEmployee(t, db, nil)

	_, err := svc.ClockIn(context.Background(), project.ID, &domain.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), project.ID, &domain.ClockInRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, service.ErrAlreadyClockedIn)
}

func TestTimeTrackingService_ClockIn_OtherProjectUnaffected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTimeTrackingService(db)

	projectA := testutil.CreateTestProject(t, db)
	projectB := testutil.CreateTestProject(t, db)
	emp := testutil.CreateTestEmployee(t, db, nil)

	_, err := svc.ClockIn(context.Background(), projectA.ID, &domain.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	// The open entry is scoped to the project
	_, err = svc.ClockIn(context.Background(), projectB.ID, &domain.ClockInRequest{EmployeeID: emp.ID})
	assert.NoError(t, err)
}

func TestTimeTrackingService_ClockOut_NotClockedIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTimeTrackingService(db)

	project := testutil.CreateTestProject(t, db)
	emp := testutil.CreateTestEmployee(t, db, nil)

	_, err := svc.ClockOut(context.Background(), project.ID, emp.ID)
	assert.ErrorIs(t, err, service.ErrNotClockedIn)
}

func TestTimeTrackingService_ClockIn_UnknownEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTimeTrackingService(db)

	project := testutil.CreateTestProject(t, db)

	_, err := svc.ClockIn(context.Background(), project.ID, &domain.ClockInRequest{EmployeeID: uuid.New()})
	assert.ErrorIs(t, err, service.ErrEmployeeNotFound)
}

func TestTimeTrackingService_ListByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTimeTrackingService(db)

	project := testutil.CreateTestProject(t, db)
	emp := testutil.CreateTestEmployee(t, db, nil)
	testutil.CreateCompletedTimeEntry(t, db, project.ID, emp.ID, 60)
	testutil.CreateCompletedTimeEntry(t, db, project.ID, emp.ID, 30)

	entries, err := svc.ListByProject(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Max Bauer", entries[0].EmployeeName)
}
