package postgres

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

const selectCompanyYears = `
	SELECT c.id, c.name, c.pib, c.total_income, c.profit, c.employee_count,
	       c.net_pay_costs, c.average_pay, c.income_per_employee, y.year_value
	FROM companies c
	LEFT JOIN years y ON c.year_id = y.id`

var companyColumns = []string{
	"name", "pib", "total_income", "profit", "employee_count",
	"net_pay_costs", "average_pay", "income_per_employee", "year_id",
}

// Repository defines the company storage operations backed by Postgres.
type Repository interface {
	ListCompanyYears(ctx context.Context) ([]models.YearRecord, error)
	CompanyRecordsByPIB(ctx context.Context, pib string) ([]models.YearRecord, error)
	ImportCohorts(ctx context.Context, cohorts []models.YearCohort) ([]models.YearImportCount, error)
}

// PostgresRepository implements the Repository interface with a pgx pool.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresRepository connects to databaseURL and verifies the connection.
func NewPostgresRepository(ctx context.Context, databaseURL string, logger *zap.Logger) (*PostgresRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool, logger: logger}, nil
}

// ListCompanyYears returns every company row joined with its year, newest
// year first and by name within a year.
func (r *PostgresRepository) ListCompanyYears(ctx context.Context) ([]models.YearRecord, error) {
	rows, err := r.pool.Query(ctx, selectCompanyYears+` ORDER BY y.year_value DESC, c.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query company years: %w", err)
	}

	records, err := pgx.CollectRows(rows, scanYearRecord)
	if err != nil {
		return nil, fmt.Errorf("scan company years: %w", err)
	}
	return records, nil
}

// CompanyRecordsByPIB returns one company's rows ordered by year ascending.
func (r *PostgresRepository) CompanyRecordsByPIB(ctx context.Context, pib string) ([]models.YearRecord, error) {
	rows, err := r.pool.Query(ctx, selectCompanyYears+` WHERE c.pib = $1 ORDER BY y.year_value ASC`, pib)
	if err != nil {
		return nil, fmt.Errorf("query company %s: %w", pib, err)
	}

	records, err := pgx.CollectRows(rows, scanYearRecord)
	if err != nil {
		return nil, fmt.Errorf("scan company %s: %w", pib, err)
	}
	return records, nil
}

// ImportCohorts replaces the stored companies of every given year inside a
// single transaction. Years are created when missing.
func (r *PostgresRepository) ImportCohorts(ctx context.Context, cohorts []models.YearCohort) ([]models.YearImportCount, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	counts := make([]models.YearImportCount, 0, len(cohorts))
	for _, cohort := range cohorts {
		year, err := strconv.Atoi(strings.TrimSpace(cohort.Year))
		if err != nil {
			return nil, fmt.Errorf("invalid cohort year %q: %w", cohort.Year, err)
		}

		yearID, err := upsertYear(ctx, tx, year)
		if err != nil {
			return nil, err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM companies WHERE year_id = $1`, yearID)
		if err != nil {
			return nil, fmt.Errorf("clear companies for %d: %w", year, err)
		}
		r.logger.Debug("cleared companies", zap.Int("year", year), zap.Int64("rows", tag.RowsAffected()))

		rows := make([][]any, 0, len(cohort.Companies))
		for _, c := range cohort.Companies {
			rows = append(rows, []any{
				c.Name, c.PIB,
				toInteger(c.TotalIncome), toInteger(c.Profit), c.EmployeeCount,
				toInteger(c.NetPayCosts), toInteger(c.AveragePay), toInteger(c.IncomePerEmployee),
				yearID,
			})
		}

		copied, err := tx.CopyFrom(ctx, pgx.Identifier{"companies"}, companyColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return nil, fmt.Errorf("insert companies for %d: %w", year, err)
		}

		counts = append(counts, models.YearImportCount{Year: year, Companies: int(copied)})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return counts, nil
}

// Close releases the pool.
func (r *PostgresRepository) Close() {
	r.pool.Close()
}

func upsertYear(ctx context.Context, tx pgx.Tx, year int) (int64, error) {
	if _, err := tx.Exec(ctx, `INSERT INTO years (year_value) VALUES ($1) ON CONFLICT (year_value) DO NOTHING`, year); err != nil {
		return 0, fmt.Errorf("insert year %d: %w", year, err)
	}

	var id int64
	if err := tx.QueryRow(ctx, `SELECT id FROM years WHERE year_value = $1`, year).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup year %d: %w", year, err)
	}
	return id, nil
}

func scanYearRecord(row pgx.CollectableRow) (models.YearRecord, error) {
	var (
		record                                      models.YearRecord
		totalIncome, profit, netPay, avgPay, perEmp *int64
		year                                        *int64
	)

	err := row.Scan(
		&record.Company.ID,
		&record.Company.Name,
		&record.Company.PIB,
		&totalIncome,
		&profit,
		&record.Company.EmployeeCount,
		&netPay,
		&avgPay,
		&perEmp,
		&year,
	)
	if err != nil {
		return models.YearRecord{}, err
	}

	record.Company.TotalIncome = toFloat(totalIncome)
	record.Company.Profit = toFloat(profit)
	record.Company.NetPayCosts = toFloat(netPay)
	record.Company.AveragePay = toFloat(avgPay)
	record.Company.IncomePerEmployee = toFloat(perEmp)
	if year != nil {
		y := int(*year)
		record.Year = &y
	}

	return record, nil
}

func toFloat(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// toInteger rounds to the integer columns the schema uses.
func toInteger(v *float64) *int64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	i := int64(math.Round(*v))
	return &i
}
