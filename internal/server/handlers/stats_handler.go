package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/analytics"
	"github.com/mamadbah2/itstats/internal/domain/models"
	"github.com/mamadbah2/itstats/internal/service/importer"
	"github.com/mamadbah2/itstats/internal/service/stats"
)

// StatsService is the read side consumed by the HTTP layer.
type StatsService interface {
	Refresh(ctx context.Context) ([]models.YearCohort, error)
	Companies(ctx context.Context) ([]models.YearCohort, error)
	Years(ctx context.Context) ([]string, error)
	CompanyByPIB(ctx context.Context, pib string) ([]models.YearRecord, error)
	History(ctx context.Context, name string) (models.CompanyHistory, error)
	Dashboard(ctx context.Context, year string, filters models.RangeFilters) (models.DashboardView, error)
	Export(ctx context.Context, year string, filters models.RangeFilters) (stats.ExportResult, error)
	PublishExport(ctx context.Context, year string, filters models.RangeFilters) (stats.ExportResult, error)
	Trend(ctx context.Context, year string, metric models.TrendMetric, companies []string) (models.TrendChart, error)
}

// ImportRunner loads the remote dataset.
type ImportRunner interface {
	Run(ctx context.Context) (models.ImportSummary, error)
}

// StatsHandler serves company statistics over HTTP.
type StatsHandler struct {
	svc      StatsService
	importer ImportRunner
	logger   *zap.Logger
}

// NewStatsHandler constructs the HTTP handler adapter. runner may be nil.
func NewStatsHandler(svc StatsService, runner ImportRunner, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, importer: runner, logger: logger}
}

// ListCompanies returns every cohort, newest year first.
func (h *StatsHandler) ListCompanies(c *gin.Context) {
	cohorts, err := h.svc.Companies(c.Request.Context())
	if err != nil {
		h.respondError(c, "list companies", err)
		return
	}
	c.JSON(http.StatusOK, cohorts)
}

// CompanyByPIB returns one company's records across years.
func (h *StatsHandler) CompanyByPIB(c *gin.Context) {
	records, err := h.svc.CompanyByPIB(c.Request.Context(), c.Param("pib"))
	if err != nil {
		h.respondError(c, "company by pib", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListYears returns the available years.
func (h *StatsHandler) ListYears(c *gin.Context) {
	years, err := h.svc.Years(c.Request.Context())
	if err != nil {
		h.respondError(c, "list years", err)
		return
	}
	c.JSON(http.StatusOK, years)
}

// History returns the named company's history.
func (h *StatsHandler) History(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, "company history", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Dashboard returns the overview for the requested year and filters.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	view, err := h.svc.Dashboard(c.Request.Context(), c.Query("year"), filters)
	if err != nil {
		h.respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Export streams the filtered cohort as a CSV attachment.
func (h *StatsHandler) Export(c *gin.Context) {
	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	result, err := h.svc.Export(c.Request.Context(), c.Query("year"), filters)
	if err != nil {
		h.respondError(c, "export", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := analytics.WriteCSV(c.Writer, result.Rows); err != nil {
		h.logger.Error("failed writing csv export", zap.String("year", result.Year), zap.Error(err))
	}
}

// PublishExport writes the filtered cohort into the export sheet.
func (h *StatsHandler) PublishExport(c *gin.Context) {
	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	result, err := h.svc.PublishExport(c.Request.Context(), c.Query("year"), filters)
	if err != nil {
		h.respondError(c, "publish export", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": result.Year, "rows": len(result.Rows)})
}

// Trend returns the multi-year series for the requested metric.
func (h *StatsHandler) Trend(c *gin.Context) {
	metric := models.ParseTrendMetric(c.Query("metric"))

	chart, err := h.svc.Trend(c.Request.Context(), c.Query("year"), metric, c.QueryArray("company"))
	if err != nil {
		h.respondError(c, "trend", err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// Refresh reloads the cohorts from the source.
func (h *StatsHandler) Refresh(c *gin.Context) {
	cohorts, err := h.svc.Refresh(c.Request.Context())
	if err != nil {
		h.respondError(c, "refresh", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": len(cohorts)})
}

// Import runs the dataset importer and refreshes the cache afterwards.
func (h *StatsHandler) Import(c *gin.Context) {
	if h.importer == nil {
		h.respondError(c, "import", importer.ErrNotConfigured)
		return
	}

	summary, err := h.importer.Run(c.Request.Context())
	if err != nil {
		h.respondError(c, "import", err)
		return
	}

	if _, err := h.svc.Refresh(c.Request.Context()); err != nil {
		h.logger.Warn("refresh after import failed", zap.String("run_id", summary.RunID), zap.Error(err))
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StatsHandler) bindFilters(c *gin.Context) (models.RangeFilters, bool) {
	var filters models.RangeFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.logger.Warn("invalid filter query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
		return models.RangeFilters{}, false
	}
	return filters, true
}

func (h *StatsHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, stats.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"message": "No company data found"})
	case errors.Is(err, stats.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Company not found"})
	case errors.Is(err, analytics.ErrYearNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, importer.ErrNotConfigured), errors.Is(err, stats.ErrPublishingDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
