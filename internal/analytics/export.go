package analytics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// ExportRows flattens companies into export rows in the given order.
// Unreported figures are written as 0 and the margin with four decimals.
func ExportRows(companies []models.CompanyRecord, percentiles map[string]int, margins map[string]float64) []models.ExportRow {
	rows := make([]models.ExportRow, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, models.ExportRow{
			Company:           c.Name,
			TotalIncome:       formatAmount(c.TotalIncome),
			Profit:            formatAmount(c.Profit),
			Employees:         strconv.FormatInt(c.Employees(), 10),
			AveragePay:        formatAmount(c.AveragePay),
			IncomePerEmployee: formatAmount(c.IncomePerEmployee),
			RPEPercentile:     strconv.Itoa(percentiles[c.Name]),
			ProfitMargin:      strconv.FormatFloat(margins[c.Name], 'f', 4, 64),
		})
	}
	return rows
}

// WriteCSV writes the header line followed by one line per row.
func WriteCSV(w io.Writer, rows []models.ExportRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("marshal export rows: %w", err)
	}
	return nil
}

// ExportFileName is the download name for a year's export.
func ExportFileName(year string) string {
	return fmt.Sprintf("companies_%s.csv", year)
}

func formatAmount(v *float64) string {
	if v == nil {
		return "0"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
