package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"gorm.io/gorm"
)

type SubcontractorRepository struct {
	db *gorm.DB
}

func NewSubcontractorRepository(db *gorm.DB) *SubcontractorRepository {
	return &SubcontractorRepository{db: db}
}

func (r *SubcontractorRepository) Create(ctx context.Context, subcontractor *domain.Subcontractor) error {
	return r.db.WithContext(ctx).Create(subcontractor).Error
}

func (r *SubcontractorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subcontractor, error) {
	var subcontractor domain.Subcontractor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&subcontractor).Error
	if err != nil {
		return nil, err
	}
	return &subcontractor, nil
}

func (r *SubcontractorRepository) Update(ctx context.Context, subcontractor *domain.Subcontractor) error {
	return r.db.WithContext(ctx).Save(subcontractor).Error
}

func (r *SubcontractorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Subcontractor{}, "id = ?", id).Error
}

func (r *SubcontractorRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Subcontractor, int64, error) {
	var subcontractors []domain.Subcontractor
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Subcontractor{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(trade_focus) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("company_name ASC").Find(&subcontractors).Error

	return subcontractors, total, err
}

// NamesByID returns a lookup of subcontractor ID to company name for the
// given IDs, used by the responsibility resolver.
func (r *SubcontractorRepository) NamesByID(ctx context.Context, ids []uuid.UUID) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	var subcontractors []domain.Subcontractor
	err := r.db.WithContext(ctx).
		Select("id", "company_name").
		Where("id IN ?", ids).
		Find(&subcontractors).Error
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(subcontractors))
	for _, s := range subcontractors {
		names[s.ID.String()] = s.CompanyName
	}
	return names, nil
}
