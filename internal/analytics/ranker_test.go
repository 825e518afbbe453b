package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

func withRPE(name string, rpe *float64) models.CompanyRecord {
	return models.CompanyRecord{Name: name, IncomePerEmployee: rpe}
}

func TestRevenuePerEmployeePercentile(t *testing.T) {
	tests := []struct {
		name      string
		companies []models.CompanyRecord
		want      map[string]int
	}{
		{
			name: "strictly increasing",
			companies: []models.CompanyRecord{
				withRPE("A", models.Float(10)),
				withRPE("B", models.Float(20)),
				withRPE("C", models.Float(30)),
				withRPE("D", models.Float(40)),
			},
			want: map[string]int{"A": 25, "B": 50, "C": 75, "D": 100},
		},
		{
			name: "input order does not matter",
			companies: []models.CompanyRecord{
				withRPE("D", models.Float(40)),
				withRPE("B", models.Float(20)),
				withRPE("A", models.Float(10)),
				withRPE("C", models.Float(30)),
			},
			want: map[string]int{"A": 25, "B": 50, "C": 75, "D": 100},
		},
		{
			name: "ties ranked by first seen",
			companies: []models.CompanyRecord{
				withRPE("First", models.Float(10)),
				withRPE("Second", models.Float(10)),
				withRPE("Third", models.Float(10)),
			},
			want: map[string]int{"First": 33, "Second": 67, "Third": 100},
		},
		{
			name: "missing value counts as zero",
			companies: []models.CompanyRecord{
				withRPE("Reported", models.Float(5)),
				withRPE("Missing", nil),
			},
			want: map[string]int{"Missing": 50, "Reported": 100},
		},
		{
			name:      "single company",
			companies: []models.CompanyRecord{withRPE("Solo", models.Float(1))},
			want:      map[string]int{"Solo": 100},
		},
		{
			name:      "empty",
			companies: nil,
			want:      map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RevenuePerEmployeePercentile(tt.companies))
		})
	}
}

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name    string
		company models.CompanyRecord
		want    float64
	}{
		{name: "zero income", company: models.CompanyRecord{TotalIncome: models.Float(0), Profit: models.Float(500)}, want: 0},
		{name: "missing income", company: models.CompanyRecord{Profit: models.Float(500)}, want: 0},
		{name: "missing profit", company: models.CompanyRecord{TotalIncome: models.Float(1000)}, want: 0},
		{name: "positive", company: models.CompanyRecord{TotalIncome: models.Float(1000), Profit: models.Float(250)}, want: 0.25},
		{name: "loss", company: models.CompanyRecord{TotalIncome: models.Float(1000), Profit: models.Float(-100)}, want: -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProfitMargin(tt.company), 1e-9)
		})
	}
}

func TestTopN(t *testing.T) {
	cohort := []models.CompanyRecord{
		company("Hundred", 100, 1),
		company("Fifty", 50, 1),
		company("TwoHundred", 200, 1),
	}

	assert.Equal(t, []string{"TwoHundred", "Hundred"}, names(TopN(cohort, 2, SortByTotalIncome)))
	assert.Equal(t, []string{"Hundred", "Fifty", "TwoHundred"}, names(cohort), "input must not be reordered")
}

func TestTopN_Edges(t *testing.T) {
	cohort := []models.CompanyRecord{
		{Name: "Unreported"},
		company("TieA", 10, 1),
		company("Negative", -5, 1),
		company("TieB", 10, 1),
	}

	assert.Equal(t, []string{"TieA", "TieB", "Negative", "Unreported"}, names(TopN(cohort, 10, SortByTotalIncome)))
	assert.Empty(t, TopN(cohort, 0, SortByTotalIncome))
	assert.Empty(t, TopN(cohort, -1, SortByTotalIncome))
	assert.Empty(t, TopN(nil, 3, SortByTotalIncome))
}

func TestTopN_OtherKeys(t *testing.T) {
	cohort := []models.CompanyRecord{
		{Name: "A", EmployeeCount: models.Int(3), Profit: models.Float(10)},
		{Name: "B", EmployeeCount: models.Int(9)},
		{Name: "C", EmployeeCount: models.Int(1), Profit: models.Float(30)},
	}

	assert.Equal(t, []string{"B", "A"}, names(TopN(cohort, 2, SortByEmployeeCount)))
	assert.Equal(t, []string{"C", "A", "B"}, names(TopN(cohort, 3, SortByProfit)))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByProfit, ParseSortKey("profit"))
	assert.Equal(t, SortByAveragePay, ParseSortKey("averagePay"))
	assert.Equal(t, SortByTotalIncome, ParseSortKey(""))
	assert.Equal(t, SortByTotalIncome, ParseSortKey("bogus"))
}
