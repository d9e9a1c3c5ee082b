package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/service"
	"go.uber.org/zap"
)

// PositionTextProvider serves the long-form position descriptions held in
// the estimating ERP. Imported LV files only carry the truncated short text.
type PositionTextProvider interface {
	IsEnabled() bool
	GetPositionLongText(ctx context.Context, projectNumber, positionID string) (string, error)
}

type ProjectHandler struct {
	projectService *service.ProjectService
	detailService  *service.ProjectDetailService
	positionTexts  PositionTextProvider
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, detailService *service.ProjectDetailService, positionTexts PositionTextProvider, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		detailService:  detailService,
		positionTexts:  positionTexts,
		logger:         logger,
	}
}

// List godoc
// @Summary List projects
// @Description Get paginated list of construction projects with optional filters
// @Tags Projects
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(planning, active, paused, completed)
// @Param search query string false "Search by name or project number"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProjectDTO}
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)

	var status *domain.ProjectStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.ProjectStatus(s)
		status = &st
	}

	result, err := h.projectService.List(r.Context(), page, pageSize, status, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create project
// @Description Create a construction project, optionally with an imported bill of quantities
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body domain.CreateProjectRequest true "Project data"
// @Success 201 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

// Get godoc
// @Summary Get project
// @Description Get a single project summary
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	dto, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to get project", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get project")
		return
	}

	respondJSON(w, http.StatusOK, dto)
}

// Detail godoc
// @Summary Get project detail
// @Description Get the full project view: the bill of quantities enriched with trades, locations and responsible companies, grouped per trade
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectDetailDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/detail [get]
func (h *ProjectHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	detail, err := h.detailService.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to build project detail", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build project detail")
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// Refresh godoc
// @Summary Refresh project detail
// @Description Force a recompute of the project detail snapshot
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectDetailDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/detail/refresh [post]
func (h *ProjectHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	detail, err := h.detailService.Refresh(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to refresh project detail", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to refresh project detail")
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// UpdateStatus godoc
// @Summary Update project status
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param status body handler.statusUpdateRequest true "New status"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/status [put]
func (h *ProjectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dto, err := h.projectService.UpdateStatus(r.Context(), id, domain.ProjectStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondWithError(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, service.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, "Invalid status")
		default:
			h.logger.Error("failed to update project status", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update project")
		}
		return
	}

	respondJSON(w, http.StatusOK, dto)
}

// Delete godoc
// @Summary Delete project
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to delete project", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	h.detailService.Invalidate(id)
	w.WriteHeader(http.StatusNoContent)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type createAddendumRequest struct {
	Title      string              `json:"title" validate:"required,max=200"`
	TotalValue float64             `json:"totalValue" validate:"gte=0"`
	Positions  domain.PositionList `json:"positions"`
}

// CreateAddendum godoc
// @Summary Create addendum
// @Description Record a Nachtrag on a project; it starts pending and does not change project value until accepted
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param addendum body handler.createAddendumRequest true "Addendum data"
// @Success 201 {object} domain.AddendumDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/addenda [post]
func (h *ProjectHandler) CreateAddendum(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req createAddendumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.projectService.CreateAddendum(r.Context(), id, req.Title, req.TotalValue, req.Positions)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to create addendum", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create addendum")
		return
	}

	h.detailService.Invalidate(id)
	respondJSON(w, http.StatusCreated, dto)
}

// ListAddenda godoc
// @Summary List addenda
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.AddendumDTO
// @Security BearerAuth
// @Router /projects/{id}/addenda [get]
func (h *ProjectHandler) ListAddenda(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	dtos, err := h.projectService.ListAddenda(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list addenda", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list addenda")
		return
	}

	respondJSON(w, http.StatusOK, dtos)
}

// UpdateAddendumStatus godoc
// @Summary Update addendum status
// @Description Move a Nachtrag through review (ausstehend, angenommen, abgelehnt)
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param addendumId path string true "Addendum ID"
// @Param status body handler.statusUpdateRequest true "New status"
// @Success 200 {object} domain.AddendumDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/addenda/{addendumId}/status [put]
func (h *ProjectHandler) UpdateAddendumStatus(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	addendumID, err := parseUUIDParam(r, "addendumId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid addendum ID")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dto, err := h.projectService.UpdateAddendumStatus(r.Context(), addendumID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddendumNotFound):
			respondWithError(w, http.StatusNotFound, "Addendum not found")
		case errors.Is(err, service.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, "Invalid status")
		default:
			h.logger.Error("failed to update addendum status", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update addendum")
		}
		return
	}

	h.detailService.Invalidate(projectID)
	respondJSON(w, http.StatusOK, dto)
}

type positionLongTextResponse struct {
	PositionID string `json:"positionId"`
	LongText   string `json:"longText"`
}

// PositionLongText godoc
// @Summary Get position long text
// @Description Get the full description of an LV position from the estimating ERP. Returns 404 when the ERP link is disabled or holds no text for the position.
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Param positionId path string true "Position ID"
// @Success 200 {object} handler.positionLongTextResponse
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/positions/{positionId}/longtext [get]
func (h *ProjectHandler) PositionLongText(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	positionID := chi.URLParam(r, "positionId")
	if positionID == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid position ID")
		return
	}

	if h.positionTexts == nil || !h.positionTexts.IsEnabled() {
		respondWithError(w, http.StatusNotFound, "Long texts are not available")
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to get project", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get project")
		return
	}

	text, err := h.positionTexts.GetPositionLongText(r.Context(), project.ProjectNumber, positionID)
	if err != nil {
		h.logger.Error("failed to fetch position long text", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch position long text")
		return
	}
	if text == "" {
		respondWithError(w, http.StatusNotFound, "No long text for this position")
		return
	}

	respondJSON(w, http.StatusOK, positionLongTextResponse{
		PositionID: positionID,
		LongText:   text,
	})
}
