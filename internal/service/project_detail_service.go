package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/hauptbau/fieldops-api/internal/lv"
	"github.com/hauptbau/fieldops-api/internal/mapper"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectDetailService builds the full project view: the bill of quantities
// enriched with trades, locations and responsible companies, grouped per
// trade. Recomputes run concurrently; each carries a per-project refresh
// sequence so a slow, stale recompute can never overwrite a newer snapshot.
type ProjectDetailService struct {
	projectRepo    *repository.ProjectRepository
	assignmentRepo *repository.AssignmentRepository
	contractorName string
	resolveOpts    lv.ResolveOptions
	logger         *zap.Logger

	mu        sync.Mutex
	sequences map[uuid.UUID]uint64
	snapshots map[uuid.UUID]detailSnapshot
}

type detailSnapshot struct {
	seq    uint64
	detail *domain.ProjectDetailDTO
}

func NewProjectDetailService(
	projectRepo *repository.ProjectRepository,
	assignmentRepo *repository.AssignmentRepository,
	companyCfg *config.CompanyConfig,
	resolverCfg *config.ResolverConfig,
	logger *zap.Logger,
) *ProjectDetailService {
	return &ProjectDetailService{
		projectRepo:    projectRepo,
		assignmentRepo: assignmentRepo,
		contractorName: companyCfg.ContractorName,
		resolveOpts:    lv.ResolveOptions{AcceptedOnly: resolverCfg.AcceptedAssignmentsOnly},
		logger:         logger,
		sequences:      make(map[uuid.UUID]uint64),
		snapshots:      make(map[uuid.UUID]detailSnapshot),
	}
}

// GetDetail returns the cached snapshot when one exists, otherwise it
// computes a fresh one.
func (s *ProjectDetailService) GetDetail(ctx context.Context, projectID uuid.UUID) (*domain.ProjectDetailDTO, error) {
	s.mu.Lock()
	if snap, ok := s.snapshots[projectID]; ok {
		s.mu.Unlock()
		return snap.detail, nil
	}
	s.mu.Unlock()

	return s.Refresh(ctx, projectID)
}

// Refresh recomputes the project detail and stores it as the new snapshot,
// unless a newer refresh finished in the meantime.
func (s *ProjectDetailService) Refresh(ctx context.Context, projectID uuid.UUID) (*domain.ProjectDetailDTO, error) {
	seq := s.nextSequence(projectID)

	detail, err := s.compute(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.store(projectID, seq, detail), nil
}

// store installs the computed detail as the snapshot, unless a newer refresh
// already landed. The caller's result is returned either way.
func (s *ProjectDetailService) store(projectID uuid.UUID, seq uint64, detail *domain.ProjectDetailDTO) *domain.ProjectDetailDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.snapshots[projectID]; ok && existing.seq > seq {
		s.logger.Debug("discarding stale project detail refresh",
			zap.String("project_id", projectID.String()),
			zap.Uint64("seq", seq),
			zap.Uint64("newer_seq", existing.seq),
		)
		return detail
	}
	s.snapshots[projectID] = detailSnapshot{seq: seq, detail: detail}
	return detail
}

// Invalidate drops the cached snapshot, forcing the next read to recompute.
// Called after any mutation that feeds the detail view (positions,
// assignments, addenda).
func (s *ProjectDetailService) Invalidate(projectID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, projectID)
}

func (s *ProjectDetailService) nextSequence(projectID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[projectID]++
	return s.sequences[projectID]
}

func (s *ProjectDetailService) compute(ctx context.Context, projectID uuid.UUID) (*domain.ProjectDetailDTO, error) {
	project, err := s.projectRepo.GetWithRelations(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	// Assignments and the subcontractor name map must both be in hand
	// before any position is resolved, otherwise early positions resolve
	// against partial data. Loaded through the repository for its
	// created_at ordering; the first matching assignment wins.
	assignmentRecords, err := s.assignmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	assignments, names := toResolverInputs(assignmentRecords)

	positions := collectPositions(project)
	resolved := lv.EnrichAll(positions, assignments, names, s.contractorName, s.resolveOpts)

	var totalValue float64 = project.NetAmount
	addendaDTOs := make([]domain.AddendumDTO, 0, len(project.Addenda))
	for i := range project.Addenda {
		if project.Addenda[i].Status == finance.AddendumStatusAccepted {
			totalValue += project.Addenda[i].TotalValue
		}
		addendaDTOs = append(addendaDTOs, mapper.ToAddendumDTO(&project.Addenda[i]))
	}

	return &domain.ProjectDetailDTO{
		Project:     mapper.ToProjectDTO(project, totalValue),
		TradeGroups: mapper.ToTradeGroups(resolved),
		Addenda:     addendaDTOs,
	}, nil
}

// collectPositions merges the base LV with the positions of accepted
// Nachträge, tagging the latter with their addendum id so the client can
// tell them apart.
func collectPositions(project *domain.Project) []lv.Position {
	positions := make([]lv.Position, 0, len(project.Positions))
	positions = append(positions, project.Positions...)

	for i := range project.Addenda {
		addendum := &project.Addenda[i]
		if addendum.Status != finance.AddendumStatusAccepted {
			continue
		}
		addendumID := addendum.ID.String()
		for _, pos := range addendum.Positions {
			if pos.NachtragID == nil {
				pos.NachtragID = &addendumID
			}
			positions = append(positions, pos)
		}
	}
	return positions
}

// toResolverInputs converts stored assignments into resolver inputs,
// preserving creation order, plus the id-to-name lookup.
func toResolverInputs(stored []domain.SubcontractorProjectAssignment) ([]lv.Assignment, map[string]string) {
	assignments := make([]lv.Assignment, 0, len(stored))
	names := make(map[string]string, len(stored))

	for i := range stored {
		a := &stored[i]
		assignments = append(assignments, lv.Assignment{
			SubcontractorID: a.SubcontractorID.String(),
			Status:          lv.AssignmentStatus(a.Status),
			Trades:          a.Trades,
		})
		if a.Subcontractor != nil {
			names[a.SubcontractorID.String()] = a.Subcontractor.CompanyName
		}
	}
	return assignments, names
}
