package analytics

import "github.com/mamadbah2/itstats/internal/domain/models"

// MarketShare gives each company's percentage of the combined income.
// Every share is 0 when the total is not positive.
func MarketShare(companies []models.CompanyRecord) []models.MarketShareEntry {
	total, _ := totals(companies)
	shares := make([]models.MarketShareEntry, 0, len(companies))
	for _, c := range companies {
		entry := models.MarketShareEntry{Name: c.Name, TotalIncome: c.Revenue()}
		if total > 0 {
			entry.Percentage = c.Revenue() / total * 100
		}
		shares = append(shares, entry)
	}
	return shares
}
