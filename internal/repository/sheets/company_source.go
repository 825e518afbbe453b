package sheets

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// Column order of the companies sheet.
const (
	colYear = iota
	colPIB
	colName
	colTotalIncome
	colProfit
	colEmployeeCount
	colNetPayCosts
	colAveragePay
	colIncomePerEmployee
)

// CompanySource reads company rows from a spreadsheet range. The first row
// is treated as a header when its year cell is not numeric.
type CompanySource struct {
	repo       Repository
	sheetRange string
	logger     *zap.Logger
}

// NewCompanySource wires a sheet-backed company source.
func NewCompanySource(repository Repository, sheetRange string, logger *zap.Logger) *CompanySource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanySource{repo: repository, sheetRange: sheetRange, logger: logger}
}

// ListCompanyYears returns every parseable company row in sheet order.
func (s *CompanySource) ListCompanyYears(ctx context.Context) ([]models.YearRecord, error) {
	rows, err := s.repo.ReadRange(ctx, s.sheetRange)
	if err != nil {
		return nil, fmt.Errorf("load companies range: %w", err)
	}

	records := make([]models.YearRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}

		record, ok := parseCompanyRow(int64(i+1), row)
		if !ok {
			s.logger.Debug("skip company row without name", zap.Int("row", i+1))
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// CompanyRecordsByPIB filters the sheet rows down to one company, ordered by
// year ascending.
func (s *CompanySource) CompanyRecordsByPIB(ctx context.Context, pib string) ([]models.YearRecord, error) {
	all, err := s.ListCompanyYears(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]models.YearRecord, 0)
	for _, record := range all {
		if record.Company.PIB == pib {
			matches = append(matches, record)
		}
	}

	sortByYearAscending(matches)
	return matches, nil
}

func isHeader(row []interface{}) bool {
	if len(row) == 0 {
		return false
	}
	_, err := parseInt(row[colYear])
	return err != nil
}

func parseCompanyRow(id int64, row []interface{}) (models.YearRecord, bool) {
	name := strings.TrimSpace(cell(row, colName))
	if name == "" {
		return models.YearRecord{}, false
	}

	record := models.YearRecord{
		Company: models.CompanyRecord{
			ID:                id,
			PIB:               strings.TrimSpace(cell(row, colPIB)),
			Name:              name,
			TotalIncome:       optionalFloat(cell(row, colTotalIncome)),
			Profit:            optionalFloat(cell(row, colProfit)),
			NetPayCosts:       optionalFloat(cell(row, colNetPayCosts)),
			AveragePay:        optionalFloat(cell(row, colAveragePay)),
			IncomePerEmployee: optionalFloat(cell(row, colIncomePerEmployee)),
		},
	}

	if employees, err := parseInt(cell(row, colEmployeeCount)); err == nil {
		record.Company.EmployeeCount = models.Int(employees)
	}
	if year, err := parseInt(cell(row, colYear)); err == nil {
		record.Year = models.Year(int(year))
	}

	return record, true
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}

func optionalFloat(value string) *float64 {
	f, err := parseFloat(value)
	if err != nil {
		return nil
	}
	return models.Float(f)
}

func parseInt(value interface{}) (int64, error) {
	f, err := parseFloat(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", value)
	}
	return int64(f), nil
}

func parseFloat(value interface{}) (float64, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite numeric value: %s", str)
	}
	return f, nil
}

func sortByYearAscending(records []models.YearRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return yearOf(records[i]) < yearOf(records[j])
	})
}

func yearOf(r models.YearRecord) int {
	if r.Year == nil {
		return math.MinInt
	}
	return *r.Year
}
