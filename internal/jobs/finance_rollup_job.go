package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/finance"
	"go.uber.org/zap"
)

// FinanceRollupJobName is the name of the nightly finance rollup job
const FinanceRollupJobName = "finance_rollup"

// BreakdownService computes the budget breakdown for a project. Declared
// here so the job does not depend on the service package directly.
type BreakdownService interface {
	Breakdown(ctx context.Context, projectID uuid.UUID) (*finance.Breakdown, error)
}

// ProjectLister lists projects page by page.
type ProjectLister interface {
	List(ctx context.Context, page, pageSize int, status *domain.ProjectStatus, search string) ([]domain.Project, int64, error)
}

// FinanceRollupJob recomputes the budget breakdown of every active project
// nightly and logs the result, giving site management a cost trail without
// anyone opening the finance view.
type FinanceRollupJob struct {
	projects ProjectLister
	breaker  BreakdownService
	logger   *zap.Logger
	timeout  time.Duration
}

// NewFinanceRollupJob creates the rollup job. The timeout bounds one full run.
func NewFinanceRollupJob(projects ProjectLister, breaker BreakdownService, logger *zap.Logger, timeout time.Duration) *FinanceRollupJob {
	return &FinanceRollupJob{
		projects: projects,
		breaker:  breaker,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes one rollup pass over all active projects.
func (j *FinanceRollupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	status := domain.ProjectStatusActive

	var processed, failed int
	page := 1
	const pageSize = 50

	for {
		projects, total, err := j.projects.List(ctx, page, pageSize, &status, "")
		if err != nil {
			j.logger.Error("finance rollup failed to list projects",
				zap.Error(err), zap.Int("page", page))
			return
		}

		for i := range projects {
			breakdown, err := j.breaker.Breakdown(ctx, projects[i].ID)
			if err != nil {
				failed++
				j.logger.Warn("finance rollup failed for project",
					zap.String("project_id", projects[i].ID.String()),
					zap.Error(err))
				continue
			}
			processed++
			j.logger.Info("finance rollup",
				zap.String("project_id", projects[i].ID.String()),
				zap.String("project_number", projects[i].ProjectNumber),
				zap.Float64("total_budget", breakdown.TotalBudget),
				zap.Float64("material", breakdown.Material.Amount),
				zap.Float64("subcontractor", breakdown.Subcontractor.Amount),
				zap.Float64("external", breakdown.External.Amount),
				zap.Float64("labor", breakdown.Labor.Amount),
				zap.Float64("rest", breakdown.Rest.Amount),
			)
		}

		if int64(page*pageSize) >= total {
			break
		}
		page++
	}

	j.logger.Info("finance rollup complete",
		zap.Int("processed", processed),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
}
