package service

import (
	"context"
	"testing"

	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// A refresh that started first but finishes last must not overwrite the
// snapshot of a refresh that started after it.
func TestProjectDetailService_StaleRefreshDoesNotOverwriteNewerSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewProjectDetailService(
		repository.NewProjectRepository(db),
		repository.NewAssignmentRepository(db),
		&config.CompanyConfig{ContractorName: "Haupt Bau GmbH"},
		&config.ResolverConfig{},
		zap.NewNop(),
	)

	project := testutil.CreateTestProject(t, db, func(p *domain.Project) {
		p.Positions = domain.PositionList{
			{ID: "06.08.01.0140", Description: "Kabeltrasse verlegen", Quantity: 1, Unit: "m", UnitPrice: 10},
		}
	})

	// The slow refresh takes its sequence and reads the old positions.
	staleSeq := svc.nextSequence(project.ID)
	staleDetail, err := svc.compute(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, staleDetail.TradeGroups[0].Positions, 1)

	// A later refresh sees the updated positions and lands first.
	require.NoError(t, db.Model(&domain.Project{}).
		Where("id = ?", project.ID).
		Update("positions", domain.PositionList{
			{ID: "06.08.01.0140", Description: "Kabeltrasse verlegen", Quantity: 1, Unit: "m", UnitPrice: 10},
			{ID: "06.08.01.0150", Description: "Leerrohr verlegen", Quantity: 1, Unit: "m", UnitPrice: 5},
		}).Error)
	newer, err := svc.Refresh(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, newer.TradeGroups[0].Positions, 2)

	// The slow refresh finishes now. Its caller still gets its own result,
	// but the newer snapshot stays.
	got := svc.store(project.ID, staleSeq, staleDetail)
	assert.Len(t, got.TradeGroups[0].Positions, 1)

	snap, err := svc.GetDetail(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Len(t, snap.TradeGroups[0].Positions, 2)
}
