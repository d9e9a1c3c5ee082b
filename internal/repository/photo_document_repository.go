package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"gorm.io/gorm"
)

type PhotoDocumentRepository struct {
	db *gorm.DB
}

func NewPhotoDocumentRepository(db *gorm.DB) *PhotoDocumentRepository {
	return &PhotoDocumentRepository{db: db}
}

func (r *PhotoDocumentRepository) Create(ctx context.Context, photo *domain.PhotoDocument) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *PhotoDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PhotoDocument, error) {
	var photo domain.PhotoDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.PhotoDocument{}, "id = ?", id).Error
}

func (r *PhotoDocumentRepository) ListByProject(ctx context.Context, projectID uuid.UUID, page, pageSize int) ([]domain.PhotoDocument, int64, error) {
	var photos []domain.PhotoDocument
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.PhotoDocument{}).Where("project_id = ?", projectID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&photos).Error

	return photos, total, err
}
