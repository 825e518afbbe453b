package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/analytics"
	"github.com/mamadbah2/itstats/internal/domain/models"
)

var (
	// ErrNoData is returned when the source holds no usable cohort.
	ErrNoData = errors.New("no company data found")
	// ErrCompanyNotFound is returned when a PIB or name matches nothing.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrPublishingDisabled is returned when no export sheet is configured.
	ErrPublishingDisabled = errors.New("sheet export is not configured")
)

// Source provides raw company-year rows.
type Source interface {
	ListCompanyYears(ctx context.Context) ([]models.YearRecord, error)
	CompanyRecordsByPIB(ctx context.Context, pib string) ([]models.YearRecord, error)
}

// SnapshotStore persists grouped cohorts for use when the source is down.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.CohortSnapshot) error
	LatestSnapshot(ctx context.Context) (*models.CohortSnapshot, error)
}

// Publisher writes rows into a spreadsheet range.
type Publisher interface {
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// Settings tunes the service.
type Settings struct {
	SourceName  string
	TopN        int
	ExportRange string
}

// ExportResult carries a ready-to-serialize export.
type ExportResult struct {
	Year     string
	FileName string
	Rows     []models.ExportRow
}

// Service orchestrates the source, the analytics engine and the cohort cache.
type Service struct {
	source    Source
	snapshots SnapshotStore
	publisher Publisher
	engine    *analytics.Engine
	cache     *CohortCache
	settings  Settings
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a stats service. snapshots and publisher are optional.
func NewService(source Source, snapshots SnapshotStore, publisher Publisher, settings Settings, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.TopN <= 0 {
		settings.TopN = analytics.DefaultTopN
	}

	return &Service{
		source:    source,
		snapshots: snapshots,
		publisher: publisher,
		engine:    analytics.NewEngine(logger.Named("engine")),
		cache:     NewCohortCache(),
		settings:  settings,
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh reloads every record from the source and regroups it. When the
// source fails the latest stored snapshot is served instead.
func (s *Service) Refresh(ctx context.Context) ([]models.YearCohort, error) {
	records, err := s.source.ListCompanyYears(ctx)
	if err != nil {
		cohorts, fallbackErr := s.restoreSnapshot(ctx)
		if fallbackErr != nil {
			return nil, fmt.Errorf("load company records: %w", err)
		}
		s.logger.Warn("source unavailable, serving stored snapshot", zap.Error(err), zap.Int("years", len(cohorts)))
		return cohorts, nil
	}

	cohorts := s.engine.GroupByYear(records)
	s.cache.Set(cohorts, s.now())
	s.logger.Info("cohorts refreshed", zap.Int("records", len(records)), zap.Int("years", len(cohorts)))

	s.saveSnapshot(ctx, cohorts)
	return cohorts, nil
}

// Cohorts returns the cached cohorts, loading them on first use.
func (s *Service) Cohorts(ctx context.Context) ([]models.YearCohort, error) {
	if cohorts, ok := s.cache.Get(); ok {
		return cohorts, nil
	}
	return s.Refresh(ctx)
}

// Companies returns every cohort, or ErrNoData when there is none.
func (s *Service) Companies(ctx context.Context) ([]models.YearCohort, error) {
	cohorts, err := s.Cohorts(ctx)
	if err != nil {
		return nil, err
	}
	if len(cohorts) == 0 {
		return nil, ErrNoData
	}
	return cohorts, nil
}

// Years lists the cohort years, newest first.
func (s *Service) Years(ctx context.Context) ([]string, error) {
	cohorts, err := s.Cohorts(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Years(cohorts), nil
}

// CompanyByPIB returns one company's records ordered by year.
func (s *Service) CompanyByPIB(ctx context.Context, pib string) ([]models.YearRecord, error) {
	records, err := s.source.CompanyRecordsByPIB(ctx, pib)
	if err != nil {
		return nil, fmt.Errorf("load company %s: %w", pib, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: pib %s", ErrCompanyNotFound, pib)
	}
	return records, nil
}

// History returns the year-by-year history of the named company.
func (s *Service) History(ctx context.Context, name string) (models.CompanyHistory, error) {
	cohorts, err := s.Cohorts(ctx)
	if err != nil {
		return models.CompanyHistory{}, err
	}

	history := analytics.CompanyHistory(cohorts, name)
	if len(history.Entries) == 0 {
		return models.CompanyHistory{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, name)
	}
	return history, nil
}

// Dashboard builds the overview for year. An empty year means the newest.
func (s *Service) Dashboard(ctx context.Context, year string, filters models.RangeFilters) (models.DashboardView, error) {
	cohorts, err := s.Companies(ctx)
	if err != nil {
		return models.DashboardView{}, err
	}
	return analytics.Dashboard(cohorts, year, filters, s.settings.TopN)
}

// Export builds the filtered export rows for year.
func (s *Service) Export(ctx context.Context, year string, filters models.RangeFilters) (ExportResult, error) {
	cohorts, err := s.Companies(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	if year == "" {
		year = cohorts[0].Year
	}

	rows, err := analytics.Export(cohorts, year, filters)
	if err != nil {
		return ExportResult{}, err
	}

	return ExportResult{Year: year, FileName: analytics.ExportFileName(year), Rows: rows}, nil
}

// PublishExport writes the export, header first, into the export sheet.
func (s *Service) PublishExport(ctx context.Context, year string, filters models.RangeFilters) (ExportResult, error) {
	if s.publisher == nil || s.settings.ExportRange == "" {
		return ExportResult{}, ErrPublishingDisabled
	}

	result, err := s.Export(ctx, year, filters)
	if err != nil {
		return ExportResult{}, err
	}

	values := make([][]interface{}, 0, len(result.Rows)+1)
	values = append(values, toCells(models.ExportHeader))
	for _, row := range result.Rows {
		values = append(values, toCells(row.Values()))
	}

	if err := s.publisher.WriteRows(ctx, s.settings.ExportRange, values); err != nil {
		return ExportResult{}, fmt.Errorf("publish export for %s: %w", result.Year, err)
	}

	s.logger.Info("export published", zap.String("year", result.Year), zap.Int("rows", len(result.Rows)))
	return result, nil
}

// Trend builds the multi-year chart for metric.
func (s *Service) Trend(ctx context.Context, year string, metric models.TrendMetric, companies []string) (models.TrendChart, error) {
	cohorts, err := s.Cohorts(ctx)
	if err != nil {
		return models.TrendChart{}, err
	}
	return analytics.TrendSeries(cohorts, year, metric, companies), nil
}

func (s *Service) restoreSnapshot(ctx context.Context) ([]models.YearCohort, error) {
	if s.snapshots == nil {
		return nil, errors.New("no snapshot store configured")
	}

	snapshot, err := s.snapshots.LatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(snapshot.Cohorts, snapshot.CreatedAt)
	return snapshot.Cohorts, nil
}

func (s *Service) saveSnapshot(ctx context.Context, cohorts []models.YearCohort) {
	if s.snapshots == nil {
		return
	}

	snapshot := models.CohortSnapshot{
		ID:        uuid.NewString(),
		Source:    s.settings.SourceName,
		CreatedAt: s.now().UTC(),
		Cohorts:   cohorts,
	}
	if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn("failed to store cohort snapshot", zap.Error(err))
	}
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
