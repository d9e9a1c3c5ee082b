package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/hauptbau/fieldops-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createOrderService(db *gorm.DB) *service.OrderService {
	return service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProjectRepository(db),
		zap.NewNop(),
	)
}

func TestOrderService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	project := testutil.CreateTestProject(t, db)

	dto, err := svc.Create(context.Background(), project.ID, uuid.New(), &domain.CreateOrderRequest{
		SupplierName: "Baustoffhandel Meyer",
		Products: []finance.OrderProduct{
			{Name: "Zement 25kg", Price: testutil.Float64Ptr(8.9), Quantity: testutil.Float64Ptr(40)},
			{Name: "Lieferung", Price: testutil.Float64Ptr(45)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusOpen, dto.Status)
	assert.InDelta(t, 8.9*40+45, dto.NetAmount, 0.01)
}

func TestOrderService_Create_ProjectNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &domain.CreateOrderRequest{
		Products: []finance.OrderProduct{{Name: "Zement"}},
	})
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestOrderService_UpdateStatus_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	project := testutil.CreateTestProject(t, db)

	order, err := svc.Create(context.Background(), project.ID, uuid.New(), &domain.CreateOrderRequest{
		Products: []finance.OrderProduct{{Name: "Zement", Price: testutil.Float64Ptr(8.9)}},
	})
	require.NoError(t, err)

	dto, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusOrdered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusOrdered, dto.Status)

	dto, err = svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, dto.Status)
}

func TestOrderService_UpdateStatus_CancelledIsTerminal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	project := testutil.CreateTestProject(t, db)

	order, err := svc.Create(context.Background(), project.ID, uuid.New(), &domain.CreateOrderRequest{
		Products: []finance.OrderProduct{{Name: "Zement"}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusOrdered)
	assert.ErrorIs(t, err, service.ErrOrderCancelled)
}

func TestOrderService_ListByProject_StatusFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	project := testutil.CreateTestProject(t, db)

	open, err := svc.Create(context.Background(), project.ID, uuid.New(), &domain.CreateOrderRequest{
		Products: []finance.OrderProduct{{Name: "Zement"}},
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), project.ID, uuid.New(), &domain.CreateOrderRequest{
		Products: []finance.OrderProduct{{Name: "Kies"}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), second.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)

	delivered := domain.OrderStatusDelivered
	orders, err := svc.ListByProject(context.Background(), project.ID, &delivered)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)

	all, err := svc.ListByProject(context.Background(), project.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_ = open
}
