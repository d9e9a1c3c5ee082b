package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"gorm.io/gorm"
)

type BillingDraftRepository struct {
	db *gorm.DB
}

func NewBillingDraftRepository(db *gorm.DB) *BillingDraftRepository {
	return &BillingDraftRepository{db: db}
}

func (r *BillingDraftRepository) Create(ctx context.Context, draft *domain.BillingDraft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *BillingDraftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BillingDraft, error) {
	var draft domain.BillingDraft
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *BillingDraftRepository) Update(ctx context.Context, draft *domain.BillingDraft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *BillingDraftRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BillingDraft, error) {
	var drafts []domain.BillingDraft
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&drafts).Error
	return drafts, err
}

func (r *BillingDraftRepository) ListBySubcontractor(ctx context.Context, subcontractorID uuid.UUID) ([]domain.BillingDraft, error) {
	var drafts []domain.BillingDraft
	err := r.db.WithContext(ctx).
		Where("subcontractor_id = ?", subcontractorID).
		Order("created_at DESC").
		Find(&drafts).Error
	return drafts, err
}
