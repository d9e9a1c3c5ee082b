package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/service"
	"go.uber.org/zap"
)

type SubcontractorHandler struct {
	subcontractorService *service.SubcontractorService
	detailService        *service.ProjectDetailService
	logger               *zap.Logger
}

func NewSubcontractorHandler(subcontractorService *service.SubcontractorService, detailService *service.ProjectDetailService, logger *zap.Logger) *SubcontractorHandler {
	return &SubcontractorHandler{
		subcontractorService: subcontractorService,
		detailService:        detailService,
		logger:               logger,
	}
}

// List godoc
// @Summary List subcontractors
// @Tags Subcontractors
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by company name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.SubcontractorDTO}
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /subcontractors [get]
func (h *SubcontractorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)

	result, err := h.subcontractorService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list subcontractors", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list subcontractors")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create subcontractor
// @Tags Subcontractors
// @Accept json
// @Produce json
// @Param subcontractor body domain.CreateSubcontractorRequest true "Subcontractor data"
// @Success 201 {object} domain.SubcontractorDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /subcontractors [post]
func (h *SubcontractorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSubcontractorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.subcontractorService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create subcontractor", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create subcontractor")
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

// Get godoc
// @Summary Get subcontractor
// @Tags Subcontractors
// @Produce json
// @Param id path string true "Subcontractor ID"
// @Success 200 {object} domain.SubcontractorDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /subcontractors/{id} [get]
func (h *SubcontractorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subcontractor ID")
		return
	}

	dto, err := h.subcontractorService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubcontractorNotFound) {
			respondWithError(w, http.StatusNotFound, "Subcontractor not found")
			return
		}
		h.logger.Error("failed to get subcontractor", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get subcontractor")
		return
	}

	respondJSON(w, http.StatusOK, dto)
}

// ListAssignments godoc
// @Summary List project assignments
// @Description Get the subcontractor assignments of a project in resolution order
// @Tags Subcontractors
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.AssignmentDTO
// @Security BearerAuth
// @Router /projects/{id}/assignments [get]
func (h *SubcontractorHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	dtos, err := h.subcontractorService.ListAssignments(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list assignments", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list assignments")
		return
	}

	respondJSON(w, http.StatusOK, dtos)
}

// CreateAssignment godoc
// @Summary Create assignment
// @Description Assign a subcontractor to trades or individual positions of a project
// @Tags Subcontractors
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param assignment body domain.CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/assignments [post]
func (h *SubcontractorHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.subcontractorService.CreateAssignment(r.Context(), projectID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondWithError(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, service.ErrSubcontractorNotFound):
			respondWithError(w, http.StatusNotFound, "Subcontractor not found")
		default:
			h.logger.Error("failed to create assignment", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to create assignment")
		}
		return
	}

	h.detailService.Invalidate(projectID)
	respondJSON(w, http.StatusCreated, dto)
}

// UpdateAssignmentStatus godoc
// @Summary Update assignment status
// @Tags Subcontractors
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param assignmentId path string true "Assignment ID"
// @Param status body domain.UpdateAssignmentStatusRequest true "New status"
// @Success 200 {object} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/assignments/{assignmentId}/status [put]
func (h *SubcontractorHandler) UpdateAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	assignmentID, err := parseUUIDParam(r, "assignmentId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	var req domain.UpdateAssignmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.subcontractorService.UpdateAssignmentStatus(r.Context(), assignmentID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			respondWithError(w, http.StatusNotFound, "Assignment not found")
		case errors.Is(err, service.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, "Invalid status")
		default:
			h.logger.Error("failed to update assignment status", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update assignment")
		}
		return
	}

	h.detailService.Invalidate(projectID)
	respondJSON(w, http.StatusOK, dto)
}

// DeleteAssignment godoc
// @Summary Delete assignment
// @Tags Subcontractors
// @Param id path string true "Project ID"
// @Param assignmentId path string true "Assignment ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/assignments/{assignmentId} [delete]
func (h *SubcontractorHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	assignmentID, err := parseUUIDParam(r, "assignmentId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	if err := h.subcontractorService.DeleteAssignment(r.Context(), assignmentID); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			respondWithError(w, http.StatusNotFound, "Assignment not found")
			return
		}
		h.logger.Error("failed to delete assignment", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete assignment")
		return
	}

	h.detailService.Invalidate(projectID)
	w.WriteHeader(http.StatusNoContent)
}
