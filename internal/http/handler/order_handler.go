package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hauptbau/fieldops-api/internal/auth"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/service"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// List godoc
// @Summary List orders
// @Description Get the material orders of a project, optionally filtered by status
// @Tags Orders
// @Produce json
// @Param id path string true "Project ID"
// @Param status query string false "Filter by status" Enums(open, ordered, delivered, cancelled)
// @Success 200 {array} domain.OrderDTO
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var status *domain.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.OrderStatus(s)
		status = &st
	}

	dtos, err := h.orderService.ListByProject(r.Context(), projectID, status)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	respondJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create order
// @Description Place a material order from the field; the order starts open
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param order body domain.CreateOrderRequest true "Order data"
// @Success 201 {object} domain.OrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user := auth.MustFromContext(r.Context())

	dto, err := h.orderService.Create(r.Context(), projectID, user.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to create order", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

// Get godoc
// @Summary Get order
// @Tags Orders
// @Produce json
// @Param id path string true "Project ID"
// @Param orderId path string true "Order ID"
// @Success 200 {object} domain.OrderDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/orders/{orderId} [get]
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUUIDParam(r, "orderId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	dto, err := h.orderService.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.Error("failed to get order", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get order")
		return
	}

	respondJSON(w, http.StatusOK, dto)
}

// UpdateStatus godoc
// @Summary Update order status
// @Description Advance an order through open, ordered, delivered, or cancel it. Cancelled is terminal.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param orderId path string true "Order ID"
// @Param status body domain.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/orders/{orderId}/status [put]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUUIDParam(r, "orderId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req domain.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.orderService.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderCancelled):
			respondWithError(w, http.StatusConflict, "Order is cancelled")
		default:
			h.logger.Error("failed to update order status", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	respondJSON(w, http.StatusOK, dto)
}
