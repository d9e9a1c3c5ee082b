package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/mapper"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderCancelled = errors.New("order is cancelled")
)

type OrderService struct {
	orderRepo   *repository.OrderRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (s *OrderService) Create(ctx context.Context, projectID, orderedByID uuid.UUID, req *domain.CreateOrderRequest) (*domain.OrderDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	order := &domain.Order{
		ProjectID:    projectID,
		OrderedByID:  orderedByID,
		SupplierName: req.SupplierName,
		Status:       domain.OrderStatusOpen,
		Products:     req.Products,
		DeliveryDate: req.DeliveryDate,
		Note:         req.Note,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("project_id", projectID.String()),
		zap.String("order_id", order.ID.String()),
		zap.Int("products", len(order.Products)),
	)

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

func (s *OrderService) ListByProject(ctx context.Context, projectID uuid.UUID, status *domain.OrderStatus) ([]domain.OrderDTO, error) {
	orders, err := s.orderRepo.ListByProject(ctx, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	dtos := make([]domain.OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, mapper.ToOrderDTO(&orders[i]))
	}
	return dtos, nil
}

// UpdateStatus advances an order. Cancelled is terminal.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.OrderDTO, error) {
	switch status {
	case domain.OrderStatusOpen, domain.OrderStatusOrdered, domain.OrderStatusDelivered, domain.OrderStatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.Status == domain.OrderStatusCancelled {
		return nil, ErrOrderCancelled
	}

	order.Status = status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}
