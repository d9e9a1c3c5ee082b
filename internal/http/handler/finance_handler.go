package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/service"
	"go.uber.org/zap"
)

type FinanceHandler struct {
	financeService *service.FinanceService
	logger         *zap.Logger
}

func NewFinanceHandler(financeService *service.FinanceService, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		logger:         logger,
	}
}

// Breakdown godoc
// @Summary Get finance breakdown
// @Description Get the five cost buckets (material, subcontractor, external, labor, rest) against the project budget
// @Tags Finance
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} finance.Breakdown
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/finance [get]
func (h *FinanceHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	breakdown, err := h.financeService.Breakdown(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to compute finance breakdown", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute finance breakdown")
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

// LaborDetail godoc
// @Summary Get labor cost detail
// @Description Get the completed time entries of a project with both labor cost formulas
// @Tags Finance
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.LaborDetailDTO
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/finance/labor [get]
func (h *FinanceHandler) LaborDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	detail, err := h.financeService.LaborDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to compute labor detail", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute labor detail")
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// ListExternalInvoices godoc
// @Summary List external invoices
// @Description Get the third-party vendor invoices booked on a project
// @Tags Finance
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.ExternalInvoiceDTO
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/external-invoices [get]
func (h *FinanceHandler) ListExternalInvoices(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	dtos, err := h.financeService.ListExternalInvoices(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to list external invoices", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list external invoices")
		return
	}

	respondJSON(w, http.StatusOK, dtos)
}

// CreateExternalInvoice godoc
// @Summary Book external invoice
// @Description Book a third-party vendor invoice on a project
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param invoice body domain.CreateExternalInvoiceRequest true "Invoice data"
// @Success 201 {object} domain.ExternalInvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/external-invoices [post]
func (h *FinanceHandler) CreateExternalInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.CreateExternalInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.financeService.CreateExternalInvoice(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to create external invoice", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create external invoice")
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}
