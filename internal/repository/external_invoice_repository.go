package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"gorm.io/gorm"
)

type ExternalInvoiceRepository struct {
	db *gorm.DB
}

func NewExternalInvoiceRepository(db *gorm.DB) *ExternalInvoiceRepository {
	return &ExternalInvoiceRepository{db: db}
}

func (r *ExternalInvoiceRepository) Create(ctx context.Context, invoice *domain.ExternalInvoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *ExternalInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExternalInvoice, error) {
	var invoice domain.ExternalInvoice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *ExternalInvoiceRepository) Update(ctx context.Context, invoice *domain.ExternalInvoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *ExternalInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ExternalInvoice{}, "id = ?", id).Error
}

func (r *ExternalInvoiceRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ExternalInvoice, error) {
	var invoices []domain.ExternalInvoice
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}
