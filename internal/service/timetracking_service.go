package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/mapper"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrAlreadyClockedIn  = errors.New("employee is already clocked in on this project")
	ErrNotClockedIn      = errors.New("employee is not clocked in on this project")
	ErrTimeEntryNotFound = errors.New("time entry not found")
)

type TimeTrackingService struct {
	timeEntryRepo *repository.TimeEntryRepository
	employeeRepo  *repository.EmployeeRepository
	projectRepo   *repository.ProjectRepository
	logger        *zap.Logger
}

func NewTimeTrackingService(
	timeEntryRepo *repository.TimeEntryRepository,
	employeeRepo *repository.EmployeeRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *TimeTrackingService {
	return &TimeTrackingService{
		timeEntryRepo: timeEntryRepo,
		employeeRepo:  employeeRepo,
		projectRepo:   projectRepo,
		logger:        logger,
	}
}

// ClockIn starts a time entry. An employee can only have one running entry
// per project.
func (s *TimeTrackingService) ClockIn(ctx context.Context, projectID uuid.UUID, req *domain.ClockInRequest) (*domain.TimeEntryDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if _, err := s.timeEntryRepo.GetOpenEntry(ctx, projectID, req.EmployeeID); err == nil {
		return nil, ErrAlreadyClockedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check open entry: %w", err)
	}

	entry := &domain.TimeEntry{
		ProjectID:  projectID,
		EmployeeID: req.EmployeeID,
		StartedAt:  time.Now(),
		Note:       req.Note,
	}
	if err := s.timeEntryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	s.logger.Info("employee clocked in",
		zap.String("project_id", projectID.String()),
		zap.String("employee_id", req.EmployeeID.String()),
	)

	dto := mapper.ToTimeEntryDTO(entry)
	return &dto, nil
}

// ClockOut closes the running entry and fixes its duration.
func (s *TimeTrackingService) ClockOut(ctx context.Context, projectID, employeeID uuid.UUID) (*domain.TimeEntryDTO, error) {
	entry, err := s.timeEntryRepo.GetOpenEntry(ctx, projectID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to get open entry: %w", err)
	}

	now := time.Now()
	entry.EndedAt = &now
	entry.DurationMinutes = now.Sub(entry.StartedAt).Minutes()
	if err := s.timeEntryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	s.logger.Info("employee clocked out",
		zap.String("project_id", projectID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.Float64("duration_minutes", entry.DurationMinutes),
	)

	dto := mapper.ToTimeEntryDTO(entry)
	return &dto, nil
}

func (s *TimeTrackingService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.TimeEntryDTO, error) {
	entries, err := s.timeEntryRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	dtos := make([]domain.TimeEntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, mapper.ToTimeEntryDTO(&entries[i]))
	}
	return dtos, nil
}
