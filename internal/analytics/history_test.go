package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

func TestDerivedIncomePerEmployee(t *testing.T) {
	tests := []struct {
		name    string
		company models.CompanyRecord
		want    *float64
	}{
		{name: "recomputed", company: company("A", 1000, 4), want: models.Float(250)},
		{name: "reported kept", company: models.CompanyRecord{TotalIncome: models.Float(1000), EmployeeCount: models.Int(4), IncomePerEmployee: models.Float(240)}, want: models.Float(240)},
		{name: "zero employees", company: models.CompanyRecord{TotalIncome: models.Float(1000), EmployeeCount: models.Int(0), IncomePerEmployee: models.Float(1000)}, want: nil},
		{name: "missing employees", company: models.CompanyRecord{TotalIncome: models.Float(1000)}, want: nil},
		{name: "missing income", company: models.CompanyRecord{EmployeeCount: models.Int(3)}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivedIncomePerEmployee(tt.company))
		})
	}
}

func TestCompanyHistory(t *testing.T) {
	cohorts := []models.YearCohort{
		{Year: "2023", Companies: []models.CompanyRecord{
			{Name: "Acme", TotalIncome: models.Float(1500), Profit: models.Float(300), EmployeeCount: models.Int(15)},
			company("Other", 1, 1),
		}},
		{Year: "2021", Companies: []models.CompanyRecord{company("Acme", 800, 8)}},
		{Year: "2022", Companies: []models.CompanyRecord{
			{Name: "Acme", TotalIncome: models.Float(1000), Profit: models.Float(200), EmployeeCount: models.Int(10)},
		}},
		{Year: "2020", Companies: []models.CompanyRecord{company("Other", 1, 1)}},
	}

	history := CompanyHistory(cohorts, "Acme")

	require.Len(t, history.Entries, 3)
	assert.Equal(t, "2021", history.Entries[0].Year)
	assert.Equal(t, "2022", history.Entries[1].Year)
	assert.Equal(t, "2023", history.Entries[2].Year)
	assert.Equal(t, 100.0, *history.Entries[2].IncomePerEmployee)

	require.NotNil(t, history.RevenueGrowth)
	assert.InDelta(t, 0.5, *history.RevenueGrowth, 1e-9)
	require.NotNil(t, history.ProfitGrowth)
	assert.InDelta(t, 0.5, *history.ProfitGrowth, 1e-9)
	require.NotNil(t, history.EmployeeGrowth)
	assert.InDelta(t, 0.5, *history.EmployeeGrowth, 1e-9)
	require.NotNil(t, history.ProfitMargin)
	assert.InDelta(t, 0.2, *history.ProfitMargin, 1e-9)
}

func TestCompanyHistory_MissingFigures(t *testing.T) {
	cohorts := []models.YearCohort{
		{Year: "2023", Companies: []models.CompanyRecord{{Name: "Acme", TotalIncome: models.Float(0)}}},
		{Year: "2022", Companies: []models.CompanyRecord{{Name: "Acme", TotalIncome: models.Float(100)}}},
	}

	history := CompanyHistory(cohorts, "Acme")

	require.Len(t, history.Entries, 2)
	assert.Nil(t, history.RevenueGrowth)
	assert.Nil(t, history.ProfitGrowth)
	assert.Nil(t, history.EmployeeGrowth)
	assert.Nil(t, history.ProfitMargin)
}

func TestCompanyHistory_Unknown(t *testing.T) {
	history := CompanyHistory([]models.YearCohort{{Year: "2023"}}, "Nobody")

	assert.Equal(t, "Nobody", history.Name)
	assert.Empty(t, history.Entries)
	assert.Nil(t, history.RevenueGrowth)
}
