package analytics

import (
	"sort"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// DerivedIncomePerEmployee returns the reported income per employee, or
// total income divided by head count when it was not reported. It is nil
// whenever head count is missing or zero.
func DerivedIncomePerEmployee(c models.CompanyRecord) *float64 {
	employees := c.Employees()
	if employees == 0 {
		return nil
	}
	if c.IncomePerEmployee != nil {
		v := *c.IncomePerEmployee
		return &v
	}
	if c.TotalIncome == nil {
		return nil
	}
	v := *c.TotalIncome / float64(employees)
	return &v
}

// CompanyHistory collects the named company's records across cohorts,
// oldest year first, and compares the latest year with the one before.
func CompanyHistory(cohorts []models.YearCohort, name string) models.CompanyHistory {
	history := models.CompanyHistory{Name: name, Entries: []models.HistoryEntry{}}

	type dated struct {
		year  int
		entry models.HistoryEntry
	}
	found := make([]dated, 0, len(cohorts))

	for _, cohort := range cohorts {
		year, ok := parseYear(cohort.Year)
		if !ok {
			continue
		}
		for _, c := range cohort.Companies {
			if c.Name != name {
				continue
			}
			found = append(found, dated{year: year, entry: models.HistoryEntry{
				Year:              cohort.Year,
				Name:              c.Name,
				TotalIncome:       c.TotalIncome,
				Profit:            c.Profit,
				EmployeeCount:     c.EmployeeCount,
				AveragePay:        c.AveragePay,
				IncomePerEmployee: DerivedIncomePerEmployee(c),
			}})
			break
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].year < found[j].year })
	for _, d := range found {
		history.Entries = append(history.Entries, d.entry)
	}

	n := len(history.Entries)
	if n == 0 {
		return history
	}

	latest := history.Entries[n-1]
	if latest.TotalIncome != nil && *latest.TotalIncome != 0 {
		margin := ProfitMargin(models.CompanyRecord{TotalIncome: latest.TotalIncome, Profit: latest.Profit})
		history.ProfitMargin = &margin
	}

	if n < 2 {
		return history
	}

	previous := history.Entries[n-2]
	history.RevenueGrowth = growthRatio(latest.TotalIncome, previous.TotalIncome)
	history.ProfitGrowth = growthRatio(latest.Profit, previous.Profit)
	history.EmployeeGrowth = growthRatio(intAsFloat(latest.EmployeeCount), intAsFloat(previous.EmployeeCount))
	return history
}

// growthRatio is nil unless both values are reported and non-zero.
func growthRatio(current, previous *float64) *float64 {
	if current == nil || previous == nil || *current == 0 || *previous == 0 {
		return nil
	}
	r := (*current - *previous) / *previous
	return &r
}

func intAsFloat(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
