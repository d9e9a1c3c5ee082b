package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TimeTrackingHandler struct {
	timeService *service.TimeTrackingService
	logger      *zap.Logger
}

func NewTimeTrackingHandler(timeService *service.TimeTrackingService, logger *zap.Logger) *TimeTrackingHandler {
	return &TimeTrackingHandler{
		timeService: timeService,
		logger:      logger,
	}
}

// List godoc
// @Summary List time entries
// @Tags TimeTracking
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.TimeEntryDTO
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/time-entries [get]
func (h *TimeTrackingHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	dtos, err := h.timeService.ListByProject(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list time entries", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list time entries")
		return
	}

	respondJSON(w, http.StatusOK, dtos)
}

// ClockIn godoc
// @Summary Clock in
// @Description Start a time entry for an employee; fails if the employee already has an open entry on the project
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param entry body domain.ClockInRequest true "Clock-in data"
// @Success 201 {object} domain.TimeEntryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/time-entries/clock-in [post]
func (h *TimeTrackingHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.timeService.ClockIn(r.Context(), projectID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondWithError(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, service.ErrEmployeeNotFound):
			respondWithError(w, http.StatusNotFound, "Employee not found")
		case errors.Is(err, service.ErrAlreadyClockedIn):
			respondWithError(w, http.StatusConflict, "Employee is already clocked in on this project")
		default:
			h.logger.Error("failed to clock in", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to clock in")
		}
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

type clockOutRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" validate:"required"`
}

// ClockOut godoc
// @Summary Clock out
// @Description Close the open time entry of an employee on a project
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param entry body handler.clockOutRequest true "Clock-out data"
// @Success 200 {object} domain.TimeEntryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/time-entries/clock-out [post]
func (h *TimeTrackingHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req clockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.timeService.ClockOut(r.Context(), projectID, req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotClockedIn):
			respondWithError(w, http.StatusConflict, "Employee has no open time entry on this project")
		default:
			h.logger.Error("failed to clock out", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to clock out")
		}
		return
	}

	respondJSON(w, http.StatusOK, dto)
}
