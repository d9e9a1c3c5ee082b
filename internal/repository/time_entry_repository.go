package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"gorm.io/gorm"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) Create(ctx context.Context, entry *domain.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *TimeEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	var entry domain.TimeEntry
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *TimeEntryRepository) Update(ctx context.Context, entry *domain.TimeEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *TimeEntryRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.TimeEntry, error) {
	var entries []domain.TimeEntry
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("project_id = ?", projectID).
		Order("started_at DESC").
		Find(&entries).Error
	return entries, err
}

// GetOpenEntry returns the running entry for an employee on a project, if
// one exists. An entry is running while ended_at is null.
func (r *TimeEntryRepository) GetOpenEntry(ctx context.Context, projectID, employeeID uuid.UUID) (*domain.TimeEntry, error) {
	var entry domain.TimeEntry
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND employee_id = ? AND ended_at IS NULL", projectID, employeeID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *TimeEntryRepository) ListCompletedByProject(ctx context.Context, projectID uuid.UUID) ([]domain.TimeEntry, error) {
	var entries []domain.TimeEntry
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("project_id = ? AND ended_at IS NOT NULL", projectID).
		Order("started_at ASC").
		Find(&entries).Error
	return entries, err
}
