package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

func dashboardCohorts() []models.YearCohort {
	return []models.YearCohort{
		{Year: "2023", Companies: []models.CompanyRecord{
			{Name: "A", TotalIncome: models.Float(1000), Profit: models.Float(100), EmployeeCount: models.Int(10), IncomePerEmployee: models.Float(100)},
			{Name: "B", TotalIncome: models.Float(500), Profit: models.Float(50), EmployeeCount: models.Int(2), IncomePerEmployee: models.Float(250)},
			{Name: "C", TotalIncome: models.Float(50), EmployeeCount: models.Int(1), IncomePerEmployee: models.Float(50)},
		}},
		{Year: "2022", Companies: []models.CompanyRecord{
			{Name: "A", TotalIncome: models.Float(1000), EmployeeCount: models.Int(10)},
		}},
		{Year: "2021", Companies: []models.CompanyRecord{
			{Name: "A"},
		}},
	}
}

func TestDashboard_DefaultsToNewestYear(t *testing.T) {
	view, err := Dashboard(dashboardCohorts(), "", models.RangeFilters{}, 0)
	require.NoError(t, err)

	assert.Equal(t, "2023", view.Year)
	assert.Equal(t, []string{"2023", "2022", "2021"}, view.Years)
	assert.False(t, view.FiltersActive)
	assert.Equal(t, 1550.0, view.MarketStats.TotalRevenue)
	assert.InDelta(t, 55.0, view.MarketStats.RevenueGrowthPct, 1e-9)
	assert.Equal(t, []string{"A", "B", "C"}, names(view.TopCompanies))
	assert.Equal(t, map[string]int{"C": 33, "A": 67, "B": 100}, view.Percentiles)
	assert.InDelta(t, 0.1, view.ProfitMargins["A"], 1e-9)
	assert.Len(t, view.MarketShare, 3)
}

func TestDashboard_FiltersApplyToCurrentCohortOnly(t *testing.T) {
	view, err := Dashboard(dashboardCohorts(), "2023", models.RangeFilters{MinRevenue: "100"}, 1)
	require.NoError(t, err)

	assert.True(t, view.FiltersActive)
	assert.Equal(t, []string{"A", "B"}, names(view.Companies))
	assert.Equal(t, []string{"A"}, names(view.TopCompanies))
	assert.InDelta(t, 50.0, view.MarketStats.RevenueGrowthPct, 1e-9)
	assert.Equal(t, map[string]int{"A": 50, "B": 100}, view.Percentiles)
}

func TestDashboard_InfiniteGrowthAndOldestYear(t *testing.T) {
	view, err := Dashboard(dashboardCohorts(), "2022", models.RangeFilters{}, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(view.MarketStats.RevenueGrowthPct, 1))

	view, err = Dashboard(dashboardCohorts(), "2021", models.RangeFilters{}, 0)
	require.NoError(t, err)
	assert.Zero(t, view.MarketStats.RevenueGrowthPct)
	assert.Zero(t, view.MarketStats.EmployeeGrowthPct)
}

func TestDashboard_UnknownYear(t *testing.T) {
	_, err := Dashboard(dashboardCohorts(), "1999", models.RangeFilters{}, 0)
	assert.ErrorIs(t, err, ErrYearNotFound)

	_, err = Dashboard(nil, "", models.RangeFilters{}, 0)
	assert.ErrorIs(t, err, ErrYearNotFound)
}
