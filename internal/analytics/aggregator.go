// Package analytics derives market statistics, rankings and filtered views
// from per-company yearly records. Every function is pure: inputs are never
// mutated and missing figures degrade to documented defaults instead of
// errors.
package analytics

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// Engine carries the logger used for the one condition worth reporting:
// records that cannot be placed in a year.
type Engine struct {
	logger *zap.Logger
}

// NewEngine wires a new engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// GroupByYear partitions flat records into cohorts ordered newest first.
// Records without a year are dropped with a warning. Company order inside a
// cohort follows input order.
func (e *Engine) GroupByYear(records []models.YearRecord) []models.YearCohort {
	grouped := make(map[int]*models.YearCohort)
	years := make([]int, 0)
	dropped := 0

	for _, record := range records {
		if record.Year == nil {
			e.logger.Warn("company record missing year, skipping",
				zap.Int64("company_id", record.Company.ID),
				zap.String("company", record.Company.Name))
			dropped++
			continue
		}

		year := *record.Year
		cohort, ok := grouped[year]
		if !ok {
			cohort = &models.YearCohort{Year: strconv.Itoa(year), Companies: []models.CompanyRecord{}}
			grouped[year] = cohort
			years = append(years, year)
		}
		cohort.Companies = append(cohort.Companies, record.Company)
	}

	sort.Slice(years, func(i, j int) bool { return years[i] > years[j] })

	cohorts := make([]models.YearCohort, 0, len(years))
	for _, year := range years {
		cohorts = append(cohorts, *grouped[year])
	}

	e.logger.Debug("grouped company records",
		zap.Int("records", len(records)),
		zap.Int("cohorts", len(cohorts)),
		zap.Int("dropped", dropped))

	return cohorts
}

// MarketStats totals revenue and head count for current and computes growth
// against previous. With no previous cohort both growth figures are 0.
func MarketStats(current models.YearCohort, previous *models.YearCohort) models.MarketStats {
	revenue, employees := totals(current.Companies)
	stats := models.MarketStats{
		TotalRevenue:   revenue,
		TotalEmployees: employees,
	}
	if previous == nil {
		return stats
	}

	prevRevenue, prevEmployees := totals(previous.Companies)
	stats.RevenueGrowthPct = Growth(revenue, prevRevenue)
	stats.EmployeeGrowthPct = Growth(float64(employees), float64(prevEmployees))
	return stats
}

// Growth returns the percentage change from previous to current.
// A zero previous value yields 0 when current is also zero and +Inf
// otherwise.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return posInf
	}
	return (current - previous) / previous * 100
}

// FindCohort returns the index of the cohort for year, or -1.
func FindCohort(cohorts []models.YearCohort, year string) int {
	for i := range cohorts {
		if cohorts[i].Year == year {
			return i
		}
	}
	return -1
}

// PreviousCohort returns the cohort preceding year in a newest-first list,
// or nil when year is the oldest or unknown.
func PreviousCohort(cohorts []models.YearCohort, year string) *models.YearCohort {
	idx := FindCohort(cohorts, year)
	if idx < 0 || idx+1 >= len(cohorts) {
		return nil
	}
	return &cohorts[idx+1]
}

// Years lists the cohort years in the order given.
func Years(cohorts []models.YearCohort) []string {
	years := make([]string, 0, len(cohorts))
	for _, cohort := range cohorts {
		years = append(years, cohort.Year)
	}
	return years
}

func totals(companies []models.CompanyRecord) (float64, int64) {
	var revenue float64
	var employees int64
	for _, company := range companies {
		revenue += company.Revenue()
		employees += company.Employees()
	}
	return revenue, employees
}

func parseYear(value string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return year, true
}
