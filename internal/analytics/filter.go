package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

type bound struct {
	value float64
	set   bool
}

type rangeBounds struct {
	minRevenue, maxRevenue     bound
	minEmployees, maxEmployees bound
}

// ParseBound converts a bound's text form to a number. Empty or
// non-numeric text means the bound is not applied.
func ParseBound(raw string) (float64, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parseBounds(filters models.RangeFilters) rangeBounds {
	parse := func(raw string) bound {
		v, ok := ParseBound(raw)
		return bound{value: v, set: ok}
	}
	return rangeBounds{
		minRevenue:   parse(filters.MinRevenue),
		maxRevenue:   parse(filters.MaxRevenue),
		minEmployees: parse(filters.MinEmployees),
		maxEmployees: parse(filters.MaxEmployees),
	}
}

func (b rangeBounds) admits(c models.CompanyRecord) bool {
	revenue := c.Revenue()
	employees := float64(c.Employees())

	if b.minRevenue.set && revenue < b.minRevenue.value {
		return false
	}
	if b.maxRevenue.set && revenue > b.maxRevenue.value {
		return false
	}
	if b.minEmployees.set && employees < b.minEmployees.value {
		return false
	}
	if b.maxEmployees.set && employees > b.maxEmployees.value {
		return false
	}
	return true
}

// ApplyRangeFilters keeps the companies within every supplied bound,
// comparing unreported revenue and head count as 0. Source order is kept.
func ApplyRangeFilters(companies []models.CompanyRecord, filters models.RangeFilters) []models.CompanyRecord {
	bounds := parseBounds(filters)
	filtered := make([]models.CompanyRecord, 0, len(companies))
	for _, company := range companies {
		if bounds.admits(company) {
			filtered = append(filtered, company)
		}
	}
	return filtered
}
