package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/mapper"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrPhotoNotFound = errors.New("photo document not found")

// DocumentationService manages on-site photo documentation: the image bytes
// go to blob storage, the metadata record to the database.
type DocumentationService struct {
	photoRepo   *repository.PhotoDocumentRepository
	projectRepo *repository.ProjectRepository
	storage     storage.Storage
	logger      *zap.Logger
}

func NewDocumentationService(
	photoRepo *repository.PhotoDocumentRepository,
	projectRepo *repository.ProjectRepository,
	store storage.Storage,
	logger *zap.Logger,
) *DocumentationService {
	return &DocumentationService{
		photoRepo:   photoRepo,
		projectRepo: projectRepo,
		storage:     store,
		logger:      logger,
	}
}

func (s *DocumentationService) UploadPhoto(ctx context.Context, projectID, employeeID uuid.UUID, filename, contentType string, data io.Reader, req *domain.CreatePhotoDocumentRequest) (*domain.PhotoDocumentDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	storagePath, size, err := s.storage.Upload(ctx, projectID.String(), filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	photo := &domain.PhotoDocument{
		ProjectID:   projectID,
		EmployeeID:  employeeID,
		StoragePath: storagePath,
		ContentType: contentType,
		Caption:     req.Caption,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		TakenAt:     req.TakenAt,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// Orphaned blob cleanup; the record is the source of truth.
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up orphaned photo blob",
				zap.String("storage_path", storagePath), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	s.logger.Info("photo uploaded",
		zap.String("project_id", projectID.String()),
		zap.String("photo_id", photo.ID.String()),
		zap.Int64("size", size),
	)

	dto := mapper.ToPhotoDocumentDTO(photo)
	return &dto, nil
}

func (s *DocumentationService) ListPhotos(ctx context.Context, projectID uuid.UUID, page, pageSize int) (*domain.PaginatedResponse, error) {
	photos, total, err := s.photoRepo.ListByProject(ctx, projectID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	dtos := make([]domain.PhotoDocumentDTO, 0, len(photos))
	for i := range photos {
		dtos = append(dtos, mapper.ToPhotoDocumentDTO(&photos[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// DownloadPhoto streams the image bytes. The caller must close the reader.
func (s *DocumentationService) DownloadPhoto(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", fmt.Errorf("failed to get photo: %w", err)
	}

	reader, err := s.storage.Download(ctx, photo.StoragePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download photo: %w", err)
	}
	return reader, photo.ContentType, nil
}

func (s *DocumentationService) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("failed to get photo: %w", err)
	}

	if err := s.storage.Delete(ctx, photo.StoragePath); err != nil {
		return fmt.Errorf("failed to delete photo blob: %w", err)
	}
	return s.photoRepo.Delete(ctx, id)
}
