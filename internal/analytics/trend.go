package analytics

import (
	"sort"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// TrendCompanyLimit is how many companies a trend chart shows when the
// caller picks none.
const TrendCompanyLimit = 5

func metricKey(metric models.TrendMetric) SortKey {
	switch metric {
	case models.TrendEmployees:
		return SortByEmployeeCount
	case models.TrendProfit:
		return SortByProfit
	default:
		return SortByTotalIncome
	}
}

// TrendSeries builds per-year metric values for a set of companies over
// every cohort up to and including selectedYear. An unparsable
// selectedYear keeps all cohorts. Without an explicit selection the top
// companies of the latest included year are charted. A company absent
// from a year, or without the figure, plots as 0.
func TrendSeries(cohorts []models.YearCohort, selectedYear string, metric models.TrendMetric, selected []string) models.TrendChart {
	metric = models.ParseTrendMetric(string(metric))
	key := metricKey(metric)
	chart := models.TrendChart{Metric: metric, Companies: []string{}, Points: []models.TrendPoint{}}

	type dated struct {
		year   int
		cohort models.YearCohort
	}
	limit, bounded := parseYear(selectedYear)
	window := make([]dated, 0, len(cohorts))
	for _, cohort := range cohorts {
		year, ok := parseYear(cohort.Year)
		if !ok || (bounded && year > limit) {
			continue
		}
		window = append(window, dated{year: year, cohort: cohort})
	}
	if len(window) == 0 {
		return chart
	}
	sort.SliceStable(window, func(i, j int) bool { return window[i].year < window[j].year })

	if len(selected) > 0 {
		chart.Companies = append(chart.Companies, selected...)
	} else {
		latest := window[len(window)-1].cohort
		for _, c := range TopN(latest.Companies, TrendCompanyLimit, key) {
			chart.Companies = append(chart.Companies, c.Name)
		}
	}

	for _, d := range window {
		byName := make(map[string]models.CompanyRecord, len(d.cohort.Companies))
		for _, c := range d.cohort.Companies {
			if _, dup := byName[c.Name]; !dup {
				byName[c.Name] = c
			}
		}

		point := models.TrendPoint{Year: d.year, Values: make(map[string]float64, len(chart.Companies))}
		for _, name := range chart.Companies {
			var value float64
			if c, ok := byName[name]; ok {
				value, _ = key.lookup(c)
			}
			point.Values[name] = value
		}
		chart.Points = append(chart.Points, point)
	}

	return chart
}
