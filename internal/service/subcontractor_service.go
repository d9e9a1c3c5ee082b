package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/lv"
	"github.com/hauptbau/fieldops-api/internal/mapper"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSubcontractorNotFound = errors.New("subcontractor not found")
	ErrAssignmentNotFound    = errors.New("assignment not found")
)

type SubcontractorService struct {
	subcontractorRepo *repository.SubcontractorRepository
	assignmentRepo    *repository.AssignmentRepository
	projectRepo       *repository.ProjectRepository
	logger            *zap.Logger
}

func NewSubcontractorService(
	subcontractorRepo *repository.SubcontractorRepository,
	assignmentRepo *repository.AssignmentRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *SubcontractorService {
	return &SubcontractorService{
		subcontractorRepo: subcontractorRepo,
		assignmentRepo:    assignmentRepo,
		projectRepo:       projectRepo,
		logger:            logger,
	}
}

func (s *SubcontractorService) Create(ctx context.Context, req *domain.CreateSubcontractorRequest) (*domain.SubcontractorDTO, error) {
	subcontractor := &domain.Subcontractor{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		TradeFocus:    req.TradeFocus,
	}

	if err := s.subcontractorRepo.Create(ctx, subcontractor); err != nil {
		return nil, fmt.Errorf("failed to create subcontractor: %w", err)
	}

	s.logger.Info("subcontractor created",
		zap.String("subcontractor_id", subcontractor.ID.String()),
		zap.String("company_name", subcontractor.CompanyName),
	)

	dto := mapper.ToSubcontractorDTO(subcontractor)
	return &dto, nil
}

func (s *SubcontractorService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubcontractorDTO, error) {
	subcontractor, err := s.subcontractorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubcontractorNotFound
		}
		return nil, fmt.Errorf("failed to get subcontractor: %w", err)
	}

	dto := mapper.ToSubcontractorDTO(subcontractor)
	return &dto, nil
}

func (s *SubcontractorService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	subcontractors, total, err := s.subcontractorRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcontractors: %w", err)
	}

	dtos := make([]domain.SubcontractorDTO, 0, len(subcontractors))
	for i := range subcontractors {
		dtos = append(dtos, mapper.ToSubcontractorDTO(&subcontractors[i]))
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

// CreateAssignment links a subcontractor to a project with the trades it
// takes over. The assignment starts pending unless the request says
// otherwise.
func (s *SubcontractorService) CreateAssignment(ctx context.Context, projectID uuid.UUID, req *domain.CreateAssignmentRequest) (*domain.AssignmentDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if _, err := s.subcontractorRepo.GetByID(ctx, req.SubcontractorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubcontractorNotFound
		}
		return nil, fmt.Errorf("failed to get subcontractor: %w", err)
	}

	status := req.Status
	if status == "" {
		status = string(lv.AssignmentStatusPending)
	}

	assignment := &domain.SubcontractorProjectAssignment{
		ProjectID:       projectID,
		SubcontractorID: req.SubcontractorID,
		Status:          status,
		Trades:          req.Trades,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	created, err := s.assignmentRepo.GetByID(ctx, assignment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload assignment: %w", err)
	}

	s.logger.Info("assignment created",
		zap.String("project_id", projectID.String()),
		zap.String("subcontractor_id", req.SubcontractorID.String()),
		zap.Int("trades", len(req.Trades)),
	)

	dto := mapper.ToAssignmentDTO(created)
	return &dto, nil
}

func (s *SubcontractorService) UpdateAssignmentStatus(ctx context.Context, id uuid.UUID, status string) (*domain.AssignmentDTO, error) {
	switch lv.AssignmentStatus(status) {
	case lv.AssignmentStatusPending, lv.AssignmentStatusAccepted, lv.AssignmentStatusRejected:
	default:
		return nil, ErrInvalidStatus
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	assignment.Status = status
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	dto := mapper.ToAssignmentDTO(assignment)
	return &dto, nil
}

func (s *SubcontractorService) ListAssignments(ctx context.Context, projectID uuid.UUID) ([]domain.AssignmentDTO, error) {
	assignments, err := s.assignmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	dtos := make([]domain.AssignmentDTO, 0, len(assignments))
	for i := range assignments {
		dtos = append(dtos, mapper.ToAssignmentDTO(&assignments[i]))
	}
	return dtos, nil
}

func (s *SubcontractorService) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.assignmentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	return s.assignmentRepo.Delete(ctx, id)
}
