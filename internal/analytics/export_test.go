package analytics

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

func TestExportRows(t *testing.T) {
	companies := []models.CompanyRecord{
		{
			Name:              "Alpha",
			TotalIncome:       models.Float(1000),
			Profit:            models.Float(123.5),
			EmployeeCount:     models.Int(4),
			AveragePay:        models.Float(900),
			IncomePerEmployee: models.Float(250),
		},
		{Name: "Sparse"},
	}
	percentiles := map[string]int{"Alpha": 100, "Sparse": 50}
	margins := ProfitMargins(companies)

	rows := ExportRows(companies, percentiles, margins)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Alpha", "1000", "123.5", "4", "900", "250", "100", "0.1235"}, rows[0].Values())
	assert.Equal(t, []string{"Sparse", "0", "0", "0", "0", "0", "50", "0.0000"}, rows[1].Values())
}

func TestFilterThenExport_RoundTrip(t *testing.T) {
	cohorts := []models.YearCohort{{Year: "2023", Companies: []models.CompanyRecord{
		company("Small", 100, 1),
		company("Mid", 5000, 20),
		company("Big", 90000, 300),
		company("Tiny", 10, 1),
	}}}

	rows, err := Export(cohorts, "2023", models.RangeFilters{MinRevenue: "100"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, models.ExportHeader, records[0])
	for _, record := range records {
		assert.Len(t, record, 8)
	}
	assert.Equal(t, "Small", records[1][0])
	assert.Equal(t, "Mid", records[2][0])
	assert.Equal(t, "Big", records[3][0])
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "companies_2023.csv", ExportFileName("2023"))
}
