package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"gorm.io/gorm"
)

type AddendumRepository struct {
	db *gorm.DB
}

func NewAddendumRepository(db *gorm.DB) *AddendumRepository {
	return &AddendumRepository{db: db}
}

func (r *AddendumRepository) Create(ctx context.Context, addendum *domain.ProjectAddendum) error {
	return r.db.WithContext(ctx).Create(addendum).Error
}

func (r *AddendumRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectAddendum, error) {
	var addendum domain.ProjectAddendum
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&addendum).Error
	if err != nil {
		return nil, err
	}
	return &addendum, nil
}

func (r *AddendumRepository) Update(ctx context.Context, addendum *domain.ProjectAddendum) error {
	return r.db.WithContext(ctx).Save(addendum).Error
}

func (r *AddendumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectAddendum{}, "id = ?", id).Error
}

func (r *AddendumRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectAddendum, error) {
	var addenda []domain.ProjectAddendum
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&addenda).Error
	return addenda, err
}

func (r *AddendumRepository) ListByProjectAndStatus(ctx context.Context, projectID uuid.UUID, status string) ([]domain.ProjectAddendum, error) {
	var addenda []domain.ProjectAddendum
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, status).
		Order("created_at ASC").
		Find(&addenda).Error
	return addenda, err
}
