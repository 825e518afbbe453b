package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// GrowthNotAvailable is the label rendered for the infinite growth sentinel.
const GrowthNotAvailable = "N/A"

// MarketStats summarises one cohort against its preceding year.
// Growth fields hold math.Inf(1) when the previous total was zero and the
// current one is not.
type MarketStats struct {
	TotalRevenue      float64
	RevenueGrowthPct  float64
	TotalEmployees    int64
	EmployeeGrowthPct float64
}

type marketStatsJSON struct {
	TotalRevenue        float64  `json:"totalRevenue"`
	RevenueGrowthPct    *float64 `json:"revenueGrowthPct"`
	RevenueGrowthLabel  string   `json:"revenueGrowthLabel"`
	TotalEmployees      int64    `json:"totalEmployees"`
	EmployeeGrowthPct   *float64 `json:"employeeGrowthPct"`
	EmployeeGrowthLabel string   `json:"employeeGrowthLabel"`
}

// MarshalJSON renders infinite growth as null with an "N/A" label since
// JSON has no representation for infinity.
func (m MarketStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(marketStatsJSON{
		TotalRevenue:        m.TotalRevenue,
		RevenueGrowthPct:    finiteOrNil(m.RevenueGrowthPct),
		RevenueGrowthLabel:  FormatGrowth(m.RevenueGrowthPct),
		TotalEmployees:      m.TotalEmployees,
		EmployeeGrowthPct:   finiteOrNil(m.EmployeeGrowthPct),
		EmployeeGrowthLabel: FormatGrowth(m.EmployeeGrowthPct),
	})
}

// FormatGrowth renders a growth percentage for display.
func FormatGrowth(pct float64) string {
	if math.IsInf(pct, 0) || math.IsNaN(pct) {
		return GrowthNotAvailable
	}
	return fmt.Sprintf("%.2f%%", pct)
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
