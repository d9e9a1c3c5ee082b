// Package jobs runs the scheduled background work of the API, currently the
// nightly finance rollup.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps a cron runner. Expressions use the six-field format with
// seconds; a job that is still running when its next tick fires is skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	mu     sync.Mutex
	names  map[string]struct{}
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			cron.Recover(cron.DefaultLogger),
		)),
		logger: logger,
		names:  make(map[string]struct{}),
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler")
	s.cron.Start()
}

// Stop stops scheduling new runs. The returned context is done once every
// running job has finished.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.cron.Stop()
}

// AddJob registers a named job. Names must be unique; registering the same
// name twice is a wiring mistake and fails loudly.
func (s *Scheduler) AddJob(name, cronExpr string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.names[name]; dup {
		return fmt.Errorf("job %s is already registered", name)
	}

	_, err := s.cron.AddFunc(cronExpr, func() {
		start := time.Now()
		s.logger.Info("job started", zap.String("job", name))
		job()
		s.logger.Info("job finished",
			zap.String("job", name),
			zap.Duration("took", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.names[name] = struct{}{}
	s.logger.Info("job scheduled",
		zap.String("job", name),
		zap.String("cron", cronExpr))
	return nil
}
