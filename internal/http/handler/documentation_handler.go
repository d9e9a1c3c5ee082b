package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hauptbau/fieldops-api/internal/auth"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadSize caps photo uploads at 25 MB.
const maxUploadSize = 25 << 20

type DocumentationHandler struct {
	docService *service.DocumentationService
	logger     *zap.Logger
}

func NewDocumentationHandler(docService *service.DocumentationService, logger *zap.Logger) *DocumentationHandler {
	return &DocumentationHandler{
		docService: docService,
		logger:     logger,
	}
}

// List godoc
// @Summary List photos
// @Tags Documentation
// @Produce json
// @Param id path string true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.PhotoDocumentDTO}
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/photos [get]
func (h *DocumentationHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	page, pageSize := parsePaging(r)

	result, err := h.docService.ListPhotos(r.Context(), projectID, page, pageSize)
	if err != nil {
		h.logger.Error("failed to list photos", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list photos")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Upload godoc
// @Summary Upload photo
// @Description Upload a site photo as multipart form data. The file travels in the "file" part, metadata as a JSON string in the "metadata" part.
// @Tags Documentation
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param file formData file true "Photo file"
// @Param employeeId formData string true "Uploading employee ID"
// @Param metadata formData string false "Photo metadata as JSON"
// @Success 201 {object} domain.PhotoDocumentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/photos [post]
func (h *DocumentationHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, "Upload too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file part")
		return
	}
	defer file.Close()

	employeeID, err := uuid.Parse(r.FormValue("employeeId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var req domain.CreatePhotoDocumentRequest
	if meta := r.FormValue("metadata"); meta != "" {
		if err := json.Unmarshal([]byte(meta), &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid metadata")
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondValidationError(w, err)
			return
		}
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	user, ok := auth.FromContext(r.Context())
	if ok && user != nil {
		h.logger.Debug("photo upload",
			zap.String("project_id", projectID.String()),
			zap.String("user_id", user.UserID.String()),
			zap.String("filename", header.Filename))
	}

	dto, err := h.docService.UploadPhoto(r.Context(), projectID, employeeID, header.Filename, contentType, file, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondWithError(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, service.ErrEmployeeNotFound):
			respondWithError(w, http.StatusNotFound, "Employee not found")
		default:
			h.logger.Error("failed to upload photo", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to upload photo")
		}
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

// Download godoc
// @Summary Download photo
// @Tags Documentation
// @Produce octet-stream
// @Param id path string true "Project ID"
// @Param photoId path string true "Photo ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/photos/{photoId}/download [get]
func (h *DocumentationHandler) Download(w http.ResponseWriter, r *http.Request) {
	photoID, err := parseUUIDParam(r, "photoId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid photo ID")
		return
	}

	reader, contentType, err := h.docService.DownloadPhoto(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			respondWithError(w, http.StatusNotFound, "Photo not found")
			return
		}
		h.logger.Error("failed to download photo", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to download photo")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("photo stream interrupted", zap.Error(err))
	}
}

// Delete godoc
// @Summary Delete photo
// @Tags Documentation
// @Param id path string true "Project ID"
// @Param photoId path string true "Photo ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/photos/{photoId} [delete]
func (h *DocumentationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := parseUUIDParam(r, "photoId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid photo ID")
		return
	}

	if err := h.docService.DeletePhoto(r.Context(), photoID); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			respondWithError(w, http.StatusNotFound, "Photo not found")
			return
		}
		h.logger.Error("failed to delete photo", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete photo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
