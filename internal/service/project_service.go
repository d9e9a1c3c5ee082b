package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/hauptbau/fieldops-api/internal/mapper"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrAddendumNotFound = errors.New("addendum not found")
	ErrInvalidStatus    = errors.New("invalid status")
)

type ProjectService struct {
	projectRepo  *repository.ProjectRepository
	addendumRepo *repository.AddendumRepository
	logger       *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	addendumRepo *repository.AddendumRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		addendumRepo: addendumRepo,
		logger:       logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	project := &domain.Project{
		Name:          req.Name,
		ProjectNumber: req.ProjectNumber,
		ClientName:    req.ClientName,
		Address:       req.Address,
		City:          req.City,
		Status:        domain.ProjectStatusPlanning,
		NetAmount:     req.NetAmount,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Positions:     req.Positions,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("name", project.Name),
		zap.Int("positions", len(project.Positions)),
	)

	dto := mapper.ToProjectDTO(project, project.NetAmount)
	return &dto, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	totalValue, err := s.totalValue(ctx, project)
	if err != nil {
		return nil, err
	}

	dto := mapper.ToProjectDTO(project, totalValue)
	return &dto, nil
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, status *domain.ProjectStatus, search string) (*domain.PaginatedResponse, error) {
	projects, total, err := s.projectRepo.List(ctx, page, pageSize, status, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, 0, len(projects))
	for i := range projects {
		totalValue, err := s.totalValue(ctx, &projects[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, mapper.ToProjectDTO(&projects[i], totalValue))
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

func (s *ProjectService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) (*domain.ProjectDTO, error) {
	switch status {
	case domain.ProjectStatusPlanning, domain.ProjectStatusActive, domain.ProjectStatusPaused, domain.ProjectStatusCompleted:
	default:
		return nil, ErrInvalidStatus
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.Status = status
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	totalValue, err := s.totalValue(ctx, project)
	if err != nil {
		return nil, err
	}

	dto := mapper.ToProjectDTO(project, totalValue)
	return &dto, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	return s.projectRepo.Delete(ctx, id)
}

// CreateAddendum records a Nachtrag on a project. New addenda start out
// pending and do not change project value until accepted.
func (s *ProjectService) CreateAddendum(ctx context.Context, projectID uuid.UUID, title string, totalValue float64, positions domain.PositionList) (*domain.AddendumDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	addendum := &domain.ProjectAddendum{
		ProjectID:  projectID,
		Title:      title,
		Status:     finance.AddendumStatusPending,
		TotalValue: totalValue,
		Positions:  positions,
	}
	if err := s.addendumRepo.Create(ctx, addendum); err != nil {
		return nil, fmt.Errorf("failed to create addendum: %w", err)
	}

	s.logger.Info("addendum created",
		zap.String("project_id", projectID.String()),
		zap.String("addendum_id", addendum.ID.String()),
		zap.Float64("total_value", totalValue),
	)

	dto := mapper.ToAddendumDTO(addendum)
	return &dto, nil
}

func (s *ProjectService) UpdateAddendumStatus(ctx context.Context, id uuid.UUID, status string) (*domain.AddendumDTO, error) {
	switch status {
	case finance.AddendumStatusPending, finance.AddendumStatusAccepted, finance.AddendumStatusRejected:
	default:
		return nil, ErrInvalidStatus
	}

	addendum, err := s.addendumRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddendumNotFound
		}
		return nil, fmt.Errorf("failed to get addendum: %w", err)
	}

	addendum.Status = status
	if err := s.addendumRepo.Update(ctx, addendum); err != nil {
		return nil, fmt.Errorf("failed to update addendum: %w", err)
	}

	dto := mapper.ToAddendumDTO(addendum)
	return &dto, nil
}

func (s *ProjectService) ListAddenda(ctx context.Context, projectID uuid.UUID) ([]domain.AddendumDTO, error) {
	addenda, err := s.addendumRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addenda: %w", err)
	}

	dtos := make([]domain.AddendumDTO, 0, len(addenda))
	for i := range addenda {
		dtos = append(dtos, mapper.ToAddendumDTO(&addenda[i]))
	}
	return dtos, nil
}

// totalValue is the project's base net amount plus accepted Nachträge.
func (s *ProjectService) totalValue(ctx context.Context, project *domain.Project) (float64, error) {
	addenda, err := s.addendumRepo.ListByProjectAndStatus(ctx, project.ID, finance.AddendumStatusAccepted)
	if err != nil {
		return 0, fmt.Errorf("failed to load addenda: %w", err)
	}

	total := project.NetAmount
	for _, addendum := range addenda {
		total += addendum.TotalValue
	}
	return total, nil
}
