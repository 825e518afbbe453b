package analytics

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// DefaultTopN is the number of leading companies on the dashboard.
const DefaultTopN = 6

// ErrYearNotFound indicates the requested year has no cohort.
var ErrYearNotFound = errors.New("year not found")

// Dashboard assembles the overview for year from newest-first cohorts.
// An empty year selects the newest cohort. Stats compare the filtered
// cohort with the full preceding one; rankings cover the filtered list.
func Dashboard(cohorts []models.YearCohort, year string, filters models.RangeFilters, topN int) (models.DashboardView, error) {
	if year == "" && len(cohorts) > 0 {
		year = cohorts[0].Year
	}

	idx := FindCohort(cohorts, year)
	if idx < 0 {
		return models.DashboardView{}, fmt.Errorf("%w: %q", ErrYearNotFound, year)
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	current := cohorts[idx]
	filtered := ApplyRangeFilters(current.Companies, filters)
	filteredCohort := models.YearCohort{Year: current.Year, Companies: filtered}

	return models.DashboardView{
		Year:          current.Year,
		Years:         Years(cohorts),
		Filters:       filters,
		FiltersActive: filters.Active(),
		MarketStats:   MarketStats(filteredCohort, PreviousCohort(cohorts, current.Year)),
		Companies:     filtered,
		TopCompanies:  TopN(filtered, topN, SortByTotalIncome),
		Percentiles:   RevenuePerEmployeePercentile(filtered),
		ProfitMargins: ProfitMargins(filtered),
		MarketShare:   MarketShare(filtered),
	}, nil
}

// Export returns the export rows for year after filtering, with rankings
// computed over the filtered list.
func Export(cohorts []models.YearCohort, year string, filters models.RangeFilters) ([]models.ExportRow, error) {
	view, err := Dashboard(cohorts, year, filters, DefaultTopN)
	if err != nil {
		return nil, err
	}
	return ExportRows(view.Companies, view.Percentiles, view.ProfitMargins), nil
}
