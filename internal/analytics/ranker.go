package analytics

import (
	"math"
	"sort"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// SortKey names the figure used to order companies.
type SortKey string

const (
	SortByTotalIncome       SortKey = "totalIncome"
	SortByProfit            SortKey = "profit"
	SortByEmployeeCount     SortKey = "employeeCount"
	SortByAveragePay        SortKey = "averagePay"
	SortByIncomePerEmployee SortKey = "incomePerEmployee"
)

// ParseSortKey maps a query value to a key, defaulting to total income.
func ParseSortKey(value string) SortKey {
	switch SortKey(value) {
	case SortByProfit, SortByEmployeeCount, SortByAveragePay, SortByIncomePerEmployee:
		return SortKey(value)
	default:
		return SortByTotalIncome
	}
}

// lookup returns the keyed figure, or false when it was not reported.
func (k SortKey) lookup(c models.CompanyRecord) (float64, bool) {
	switch k {
	case SortByProfit:
		return deref(c.Profit)
	case SortByEmployeeCount:
		if c.EmployeeCount == nil {
			return 0, false
		}
		return float64(*c.EmployeeCount), true
	case SortByAveragePay:
		return deref(c.AveragePay)
	case SortByIncomePerEmployee:
		return deref(c.IncomePerEmployee)
	default:
		return deref(c.TotalIncome)
	}
}

// rankValue sinks unreported figures below every reported one.
func (k SortKey) rankValue(c models.CompanyRecord) float64 {
	v, ok := k.lookup(c)
	if !ok {
		return negInf
	}
	return v
}

// RevenuePerEmployeePercentile ranks companies by income per employee.
// The company at sorted position idx of n gets round((idx+1)/n*100).
// Equal values keep input order and so receive distinct ranks; this is a
// positional rank rather than a statistical percentile. A missing figure
// counts as 0.
func RevenuePerEmployeePercentile(companies []models.CompanyRecord) map[string]int {
	n := len(companies)
	percentiles := make(map[string]int, n)
	if n == 0 {
		return percentiles
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return revenuePerEmployee(companies[order[a]]) < revenuePerEmployee(companies[order[b]])
	})

	for idx, i := range order {
		percentiles[companies[i].Name] = int(math.Round(float64(idx+1) / float64(n) * 100))
	}
	return percentiles
}

// ProfitMargin returns profit / total income, or 0 when income is missing
// or zero. A missing profit counts as 0.
func ProfitMargin(c models.CompanyRecord) float64 {
	if c.TotalIncome == nil || *c.TotalIncome == 0 {
		return 0
	}
	profit, _ := deref(c.Profit)
	return profit / *c.TotalIncome
}

// ProfitMargins maps each company name to its ProfitMargin.
func ProfitMargins(companies []models.CompanyRecord) map[string]float64 {
	margins := make(map[string]float64, len(companies))
	for _, company := range companies {
		margins[company.Name] = ProfitMargin(company)
	}
	return margins
}

// TopN returns the n companies with the greatest key, highest first.
// Ties keep input order; unreported values sort last.
func TopN(companies []models.CompanyRecord, n int, key SortKey) []models.CompanyRecord {
	if n <= 0 || len(companies) == 0 {
		return []models.CompanyRecord{}
	}

	sorted := make([]models.CompanyRecord, len(companies))
	copy(sorted, companies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key.rankValue(sorted[i]) > key.rankValue(sorted[j])
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func revenuePerEmployee(c models.CompanyRecord) float64 {
	v, ok := deref(c.IncomePerEmployee)
	if !ok || math.IsNaN(v) {
		return 0
	}
	return v
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
