package models

// HistoryEntry is one year of a single company's history.
type HistoryEntry struct {
	Year              string   `json:"year"`
	Name              string   `json:"name"`
	TotalIncome       *float64 `json:"totalIncome"`
	Profit            *float64 `json:"profit"`
	EmployeeCount     *int64   `json:"employeeCount"`
	AveragePay        *float64 `json:"averagePay"`
	IncomePerEmployee *float64 `json:"incomePerEmployee"`
}

// CompanyHistory is a company's records across years, oldest first, plus
// growth of the latest year against the one before it. Ratios are
// fractions (0.5 means +50%) and nil when they cannot be computed.
type CompanyHistory struct {
	Name           string         `json:"name"`
	Entries        []HistoryEntry `json:"entries"`
	RevenueGrowth  *float64       `json:"revenueGrowth"`
	ProfitGrowth   *float64       `json:"profitGrowth"`
	EmployeeGrowth *float64       `json:"employeeGrowth"`
	ProfitMargin   *float64       `json:"profitMargin"`
}

// TrendMetric selects the figure plotted by a trend chart.
type TrendMetric string

const (
	TrendRevenue   TrendMetric = "revenue"
	TrendEmployees TrendMetric = "employees"
	TrendProfit    TrendMetric = "profit"
)

// ParseTrendMetric maps a query value to a metric, defaulting to revenue.
func ParseTrendMetric(value string) TrendMetric {
	switch TrendMetric(value) {
	case TrendEmployees:
		return TrendEmployees
	case TrendProfit:
		return TrendProfit
	default:
		return TrendRevenue
	}
}

// TrendPoint holds one year's values keyed by company name.
type TrendPoint struct {
	Year   int                `json:"year"`
	Values map[string]float64 `json:"values"`
}

// TrendChart is the series data behind the multi-year line chart.
type TrendChart struct {
	Metric    TrendMetric  `json:"metric"`
	Companies []string     `json:"companies"`
	Points    []TrendPoint `json:"points"`
}

// MarketShareEntry is one company's slice of the cohort's total income.
type MarketShareEntry struct {
	Name        string  `json:"name"`
	TotalIncome float64 `json:"totalIncome"`
	Percentage  float64 `json:"percentage"`
}

// DashboardView is everything the overview page renders for one year.
type DashboardView struct {
	Year          string             `json:"year"`
	Years         []string           `json:"years"`
	Filters       RangeFilters       `json:"filters"`
	FiltersActive bool               `json:"filtersActive"`
	MarketStats   MarketStats        `json:"marketStats"`
	Companies     []CompanyRecord    `json:"companies"`
	TopCompanies  []CompanyRecord    `json:"topCompanies"`
	Percentiles   map[string]int     `json:"rpePercentile"`
	ProfitMargins map[string]float64 `json:"profitMargin"`
	MarketShare   []MarketShareEntry `json:"marketShare"`
}
