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

func createProjectService(db *gorm.DB) *service.ProjectService {
	projectRepo := repository.NewProjectRepository(db)
	addendumRepo := repository.NewAddendumRepository(db)
	return service.NewProjectService(projectRepo, addendumRepo, zap.NewNop())
}

func TestProjectService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)

	req := &domain.CreateProjectRequest{
		Name:          "Neubau Grundschule Ost",
		ProjectNumber: "P-2025-017",
		ClientName:    "Stadt Musterstadt",
		City:          "Musterstadt",
		NetAmount:     250000,
		Positions: []lv.Position{
			{ID: "06.08.01.0140", Description: "Kabeltrasse verlegen", Quantity: 120, Unit: "m", UnitPrice: 14.5},
			{ID: "07.01.02.0010", Description: "Waschtisch montieren", Quantity: 8, Unit: "St", UnitPrice: 230},
		},
	}

	dto, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.Equal(t, req.Name, dto.Name)
	assert.Equal(t, req.ProjectNumber, dto.ProjectNumber)
	assert.Equal(t, domain.ProjectStatusPlanning, dto.Status)
	assert.Equal(t, 2, dto.PositionCount)
	assert.Equal(t, 250000.0, dto.NetAmount)
	assert.Equal(t, 250000.0, dto.TotalValue)
}

func TestProjectService_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestProjectService_List_FiltersByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)

	testutil.CreateTestProject(t, db, func(p *domain.Project) {
		p.Name = "Aktives Projekt"
		p.Status = domain.ProjectStatusActive
	})
	testutil.CreateTestProject(t, db, func(p *domain.Project) {
		p.Name = "Abgeschlossenes Projekt"
		p.Status = domain.ProjectStatusCompleted
	})

	active := domain.ProjectStatusActive
	result, err := svc.List(context.Background(), 1, 20, &active, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	projects, ok := result.Data.([]domain.ProjectDTO)
	require.True(t, ok)
	require.Len(t, projects, 1)
	assert.Equal(t, "Aktives Projekt", projects[0].Name)
}

func TestProjectService_List_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)

	testutil.CreateTestProject(t, db, func(p *domain.Project) {
		p.Name = "Sporthalle Nord"
		p.ProjectNumber = "SPN-001"
	})
	testutil.CreateTestProject(t, db, func(p *domain.Project) {
		p.Name = "Kita Westend"
		p.ProjectNumber = "KW-002"
	})

	result, err := svc.List(context.Background(), 1, 20, nil, "sporthalle")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestProjectService_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)
	project := testutil.CreateTestProject(t, db)

	dto, err := svc.UpdateStatus(context.Background(), project.ID, domain.ProjectStatusPaused)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusPaused, dto.Status)
}

func TestProjectService_UpdateStatus_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)
	project := testutil.CreateTestProject(t, db)

	_, err := svc.UpdateStatus(context.Background(), project.ID, domain.ProjectStatus("archived"))
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestProjectService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)
	project := testutil.CreateTestProject(t, db)

	require.NoError(t, svc.Delete(context.Background(), project.ID))

	_, err := svc.GetByID(context.Background(), project.ID)
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestProjectService_CreateAddendum_StartsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)
	project := testutil.CreateTestProject(t, db)

	dto, err := svc.CreateAddendum(context.Background(), project.ID, "Nachtrag 1: Zusätzliche Steckdosen", 5000, domain.PositionList{
		{ID: "06.08.02.0010", Description: "Steckdose setzen", Quantity: 20, Unit: "St", UnitPrice: 250},
	})
	require.NoError(t, err)
	assert.Equal(t, "ausstehend", dto.Status)
	assert.Equal(t, 5000.0, dto.TotalValue)
	assert.Equal(t, 1, dto.PositionCount)
}

func TestProjectService_AddendumOnlyCountsWhenAccepted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)
	project := testutil.CreateTestProject(t, db, func(p *domain.Project) {
		p.NetAmount = 100000
	})

	addendum, err := svc.CreateAddendum(context.Background(), project.ID, "Nachtrag 1", 8000, nil)
	require.NoError(t, err)

	// Pending addendum does not change project value
	dto, err := svc.GetByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, dto.TotalValue)

	// Accepting it does
	_, err = svc.UpdateAddendumStatus(context.Background(), addendum.ID, "angenommen")
	require.NoError(t, err)

	dto, err = svc.GetByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, 108000.0, dto.TotalValue)

	// Rejecting removes it again
	_, err = svc.UpdateAddendumStatus(context.Background(), addendum.ID, "abgelehnt")
	require.NoError(t, err)

	dto, err = svc.GetByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, dto.TotalValue)
}

func TestProjectService_UpdateAddendumStatus_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProjectService(db)
	project := testutil.CreateTestProject(t, db)

	addendum, err := svc.CreateAddendum(context.Background(), project.ID, "Nachtrag 1", 1000, nil)
	require.NoError(t, err)

	_, err = svc.UpdateAddendumStatus(context.Background(), addendum.ID, "approved")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}
