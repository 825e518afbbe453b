package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/config"
	"github.com/mamadbah2/itstats/internal/domain/models"
	"github.com/mamadbah2/itstats/internal/service/importer"
)

const (
	refreshTimeout = 2 * time.Minute
	importTimeout  = 10 * time.Minute
)

// Refresher reloads cohorts into the cache.
type Refresher interface {
	Refresh(ctx context.Context) ([]models.YearCohort, error)
}

// ImportRunner loads the remote dataset into the database.
type ImportRunner interface {
	Run(ctx context.Context) (models.ImportSummary, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	importer  ImportRunner
	cfg       config.RefreshConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler running in the configured timezone.
// runner may be nil.
func NewScheduler(cfg config.RefreshConfig, refresher Refresher, runner ImportRunner, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location := time.Local
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
		}
		location = loc
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		refresher: refresher,
		importer:  runner,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("refresh", s.cfg.CronSchedule), zap.String("import", s.cfg.ImportCronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.refreshCohorts); err != nil {
		return fmt.Errorf("schedule cohort refresh: %w", err)
	}

	if s.importer != nil && s.cfg.ImportCronSchedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.ImportCronSchedule, s.importDataset); err != nil {
			return fmt.Errorf("schedule dataset import: %w", err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping scheduler")
	return s.cron.Stop()
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) refreshCohorts() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	cohorts, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.logger.Error("scheduled refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled refresh completed", zap.Int("years", len(cohorts)))
}

func (s *Scheduler) importDataset() {
	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	summary, err := s.importer.Run(ctx)
	if err != nil {
		if errors.Is(err, importer.ErrNotConfigured) {
			s.logger.Debug("dataset import skipped, not configured")
			return
		}
		s.logger.Error("scheduled import failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled import completed", zap.String("run_id", summary.RunID), zap.Int("imported", summary.Imported))

	s.refreshCohorts()
}
