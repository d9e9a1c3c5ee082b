package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.SubcontractorProjectAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubcontractorProjectAssignment, error) {
	var assignment domain.SubcontractorProjectAssignment
	err := r.db.WithContext(ctx).
		Preload("Subcontractor").
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *domain.SubcontractorProjectAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.SubcontractorProjectAssignment{}, "id = ?", id).Error
}

// ListByProject returns assignments ordered by creation time. The resolver
// depends on this ordering: the first matching assignment wins.
func (r *AssignmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.SubcontractorProjectAssignment, error) {
	var assignments []domain.SubcontractorProjectAssignment
	err := r.db.WithContext(ctx).
		Preload("Subcontractor").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListBySubcontractor(ctx context.Context, subcontractorID uuid.UUID) ([]domain.SubcontractorProjectAssignment, error) {
	var assignments []domain.SubcontractorProjectAssignment
	err := r.db.WithContext(ctx).
		Where("subcontractor_id = ?", subcontractorID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}
