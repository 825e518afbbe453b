package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

func trendCohorts() []models.YearCohort {
	return []models.YearCohort{
		{Year: "2023", Companies: []models.CompanyRecord{
			company("A", 900, 9), company("B", 800, 8), company("C", 700, 70),
			company("D", 600, 6), company("E", 500, 5), company("F", 400, 4),
		}},
		{Year: "2022", Companies: []models.CompanyRecord{
			company("A", 300, 3), company("F", 1000, 10),
		}},
		{Year: "2021", Companies: []models.CompanyRecord{
			company("B", 100, 1),
		}},
	}
}

func TestTrendSeries_DefaultsToTopCompanies(t *testing.T) {
	chart := TrendSeries(trendCohorts(), "2023", models.TrendRevenue, nil)

	assert.Equal(t, models.TrendRevenue, chart.Metric)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, chart.Companies)
	require.Len(t, chart.Points, 3)
	assert.Equal(t, 2021, chart.Points[0].Year)
	assert.Equal(t, 2023, chart.Points[2].Year)
	assert.Equal(t, 100.0, chart.Points[0].Values["B"])
	assert.Equal(t, 0.0, chart.Points[0].Values["A"])
	assert.Equal(t, 300.0, chart.Points[1].Values["A"])
}

func TestTrendSeries_UpToSelectedYear(t *testing.T) {
	chart := TrendSeries(trendCohorts(), "2022", models.TrendRevenue, nil)

	assert.Equal(t, []string{"F", "A"}, chart.Companies)
	require.Len(t, chart.Points, 2)
	assert.Equal(t, 2021, chart.Points[0].Year)
	assert.Equal(t, 2022, chart.Points[1].Year)
}

func TestTrendSeries_MetricAndSelection(t *testing.T) {
	chart := TrendSeries(trendCohorts(), "2023", models.TrendEmployees, nil)
	assert.Equal(t, "C", chart.Companies[0])

	chart = TrendSeries(trendCohorts(), "2023", models.TrendMetric("unknown"), []string{"F", "Ghost"})
	assert.Equal(t, models.TrendRevenue, chart.Metric)
	assert.Equal(t, []string{"F", "Ghost"}, chart.Companies)
	require.Len(t, chart.Points, 3)
	assert.Equal(t, 1000.0, chart.Points[1].Values["F"])
	assert.Equal(t, 0.0, chart.Points[2].Values["Ghost"])
}

func TestTrendSeries_NoCohortsInWindow(t *testing.T) {
	chart := TrendSeries(trendCohorts(), "1990", models.TrendProfit, nil)

	assert.Empty(t, chart.Companies)
	assert.Empty(t, chart.Points)
}

func TestMarketShare(t *testing.T) {
	shares := MarketShare([]models.CompanyRecord{company("A", 750, 1), company("B", 250, 1), {Name: "C"}})

	require.Len(t, shares, 3)
	assert.InDelta(t, 75.0, shares[0].Percentage, 1e-9)
	assert.InDelta(t, 25.0, shares[1].Percentage, 1e-9)
	assert.Zero(t, shares[2].Percentage)

	empty := MarketShare([]models.CompanyRecord{{Name: "Z"}})
	assert.Zero(t, empty[0].Percentage)
}
