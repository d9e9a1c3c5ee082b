package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/lv"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/hauptbau/fieldops-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createSubcontractorService(db *gorm.DB) *service.SubcontractorService {
	return service.NewSubcontractorService(
		repository.NewSubcontractorRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewProjectRepository(db),
		zap.NewNop(),
	)
}

func TestSubcontractorService_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSubcontractorService(db)

	created, err := svc.Create(context.Background(), &domain.CreateSubcontractorRequest{
		CompanyName:   "Elektro Schmidt GmbH",
		ContactPerson: "Jonas Schmidt",
		Email:         "info@elektro-schmidt.de",
		TradeFocus:    "Elektro",
	})
	require.NoError(t, err)
	assert.Equal(t, "Elektro Schmidt GmbH", created.CompanyName)

	fetched, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jonas Schmidt", fetched.ContactPerson)
}

func TestSubcontractorService_List_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSubcontractorService(db)

	testutil.CreateTestSubcontractor(t, db, "Elektro Schmidt GmbH")
	testutil.CreateTestSubcontractor(t, db, "Sanitär Krause")

	result, err := svc.List(context.Background(), 1, 20, "schmidt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	dtos := result.Data.([]domain.SubcontractorDTO)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Elektro Schmidt GmbH", dtos[0].CompanyName)
}

func TestSubcontractorService_CreateAssignment_StartsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSubcontractorService(db)
	project := testutil.CreateTestProject(t, db)
	sub := testutil.CreateTestSubcontractor(t, db, "Elektro Schmidt GmbH")

	dto, err := svc.CreateAssignment(context.Background(), project.ID, &domain.CreateAssignmentRequest{
		SubcontractorID: sub.ID,
		Trades:          []lv.AssignedTrade{{Name: "Elektro"}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(lv.AssignmentStatusPending), dto.Status)
	assert.Equal(t, "Elektro Schmidt GmbH", dto.CompanyName)
}

func TestSubcontractorService_CreateAssignment_UnknownSubcontractor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSubcontractorService(db)
	project := testutil.CreateTestProject(t, db)

	_, err := svc.CreateAssignment(context.Background(), project.ID, &domain.CreateAssignmentRequest{
		SubcontractorID: uuid.New(),
		Trades:          []lv.AssignedTrade{{Name: "Elektro"}},
	})
	assert.ErrorIs(t, err, service.ErrSubcontractorNotFound)
}

func TestSubcontractorService_UpdateAssignmentStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSubcontractorService(db)
	project := testutil.CreateTestProject(t, db)
	sub := testutil.CreateTestSubcontractor(t, db, "Elektro Schmidt GmbH")

	created, err := svc.CreateAssignment(context.Background(), project.ID, &domain.CreateAssignmentRequest{
		SubcontractorID: sub.ID,
		Trades:          []lv.AssignedTrade{{Name: "Elektro"}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAssignmentStatus(context.Background(), created.ID, string(lv.AssignmentStatusAccepted))
	require.NoError(t, err)
	assert.Equal(t, string(lv.AssignmentStatusAccepted), updated.Status)

	_, err = svc.UpdateAssignmentStatus(context.Background(), created.ID, "approved")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestSubcontractorService_DeleteAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSubcontractorService(db)
	project := testutil.CreateTestProject(t, db)
	sub := testutil.CreateTestSubcontractor(t, db, "Elektro Schmidt GmbH")

	created, err := svc.CreateAssignment(context.Background(), project.ID, &domain.CreateAssignmentRequest{
		SubcontractorID: sub.ID,
		Trades:          []lv.AssignedTrade{{Name: "Elektro"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAssignment(context.Background(), created.ID))

	assignments, err := svc.ListAssignments(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	err = svc.DeleteAssignment(context.Background(), created.ID)
	assert.ErrorIs(t, err, service.ErrAssignmentNotFound)
}
