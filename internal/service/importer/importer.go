package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// ErrNotConfigured is returned when no dataset URL or database is available.
var ErrNotConfigured = errors.New("dataset import is not configured")

// Fetcher downloads the yearly dataset.
type Fetcher interface {
	FetchCohorts(ctx context.Context) ([]models.YearCohort, error)
}

// Store replaces stored companies year by year.
type Store interface {
	ImportCohorts(ctx context.Context, cohorts []models.YearCohort) ([]models.YearImportCount, error)
}

// Service loads the remote dataset into the companies database.
type Service struct {
	fetcher Fetcher
	store   Store
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires an importer. A nil fetcher or store leaves it disabled.
func NewService(fetcher Fetcher, store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, store: store, logger: logger, now: time.Now}
}

// Enabled reports whether Run can do any work.
func (s *Service) Enabled() bool {
	return s != nil && s.fetcher != nil && s.store != nil
}

// Run fetches the dataset and stores it. Cohorts without a numeric year and
// companies without a name are skipped.
func (s *Service) Run(ctx context.Context) (models.ImportSummary, error) {
	if !s.Enabled() {
		return models.ImportSummary{}, ErrNotConfigured
	}

	summary := models.ImportSummary{RunID: uuid.NewString(), StartedAt: s.now().UTC()}
	log := s.logger.With(zap.String("run_id", summary.RunID))

	cohorts, err := s.fetcher.FetchCohorts(ctx)
	if err != nil {
		return summary, fmt.Errorf("fetch dataset: %w", err)
	}

	valid := make([]models.YearCohort, 0, len(cohorts))
	for _, cohort := range cohorts {
		if _, err := strconv.Atoi(strings.TrimSpace(cohort.Year)); err != nil {
			log.Warn("skip cohort with invalid year", zap.String("year", cohort.Year), zap.Int("companies", len(cohort.Companies)))
			summary.Skipped += len(cohort.Companies)
			continue
		}

		companies := make([]models.CompanyRecord, 0, len(cohort.Companies))
		for _, c := range cohort.Companies {
			if strings.TrimSpace(c.Name) == "" {
				log.Debug("skip company without name", zap.String("year", cohort.Year), zap.String("pib", c.PIB))
				summary.Skipped++
				continue
			}
			companies = append(companies, c)
		}
		valid = append(valid, models.YearCohort{Year: strings.TrimSpace(cohort.Year), Companies: companies})
	}

	counts, err := s.store.ImportCohorts(ctx, valid)
	if err != nil {
		return summary, fmt.Errorf("store dataset: %w", err)
	}

	summary.PerYear = counts
	for _, count := range counts {
		summary.Imported += count.Companies
		log.Info("year imported", zap.Int("year", count.Year), zap.Int("companies", count.Companies))
	}
	summary.Duration = s.now().UTC().Sub(summary.StartedAt)

	log.Info("dataset import finished",
		zap.Int("years", len(counts)),
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}
