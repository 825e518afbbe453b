package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Source kinds accepted by DATA_SOURCE.
const (
	SourcePostgres = "postgres"
	SourceSheets   = "sheets"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Source    SourceConfig
	Postgres  PostgresConfig
	Sheets    SheetsConfig
	MongoDB   MongoDBConfig
	Dataset   DatasetConfig
	Refresh   RefreshConfig
	Dashboard DashboardConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// SourceConfig selects where company records are read from.
type SourceConfig struct {
	Kind string
}

// PostgresConfig holds the connection string for the companies database.
type PostgresConfig struct {
	URL string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	CompaniesRange  string
	ExportRange     string
}

// Enabled reports whether a spreadsheet has been configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// MongoDBConfig holds settings for the snapshot store. An empty URI
// disables snapshots.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// DatasetConfig points at the remote JSON dataset used by the importer.
type DatasetConfig struct {
	URL     string
	Timeout time.Duration
}

// RefreshConfig holds scheduler-related settings.
type RefreshConfig struct {
	CronSchedule       string
	ImportCronSchedule string
	Timezone           string
}

// DashboardConfig tunes the overview page.
type DashboardConfig struct {
	TopN int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("DATASET_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATASET_TIMEOUT: %w", err)
	}

	topN, err := strconv.Atoi(getenvWithDefault("DASHBOARD_TOP_N", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TOP_N: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Source: SourceConfig{
			Kind: getenvWithDefault("DATA_SOURCE", SourcePostgres),
		},
		Postgres: PostgresConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			CompaniesRange:  getenvWithDefault("SHEETS_COMPANIES_RANGE", "Companies!A:I"),
			ExportRange:     getenvWithDefault("SHEETS_EXPORT_RANGE", "Export!A:H"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "itstats"),
		},
		Dataset: DatasetConfig{
			URL:     os.Getenv("DATASET_URL"),
			Timeout: timeout,
		},
		Refresh: RefreshConfig{
			CronSchedule:       getenvWithDefault("REFRESH_CRON_SCHEDULE", "*/30 * * * *"),
			ImportCronSchedule: os.Getenv("IMPORT_CRON_SCHEDULE"),
			Timezone:           getenvWithDefault("TIMEZONE", "Europe/Podgorica"),
		},
		Dashboard: DashboardConfig{
			TopN: topN,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Source.Kind {
	case SourcePostgres:
		if c.Postgres.URL == "" {
			return errors.New("DATABASE_URL must be provided for the postgres source")
		}
	case SourceSheets:
		if !c.Sheets.Enabled() {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided for the sheets source")
		}
		if c.Sheets.CompaniesRange == "" {
			return errors.New("SHEETS_COMPANIES_RANGE must not be empty")
		}
	default:
		return fmt.Errorf("unsupported DATA_SOURCE %q", c.Source.Kind)
	}

	if c.Dataset.URL != "" && c.Postgres.URL == "" {
		return errors.New("DATABASE_URL must be provided when DATASET_URL is set")
	}

	if c.Dataset.Timeout <= 0 {
		return errors.New("DATASET_TIMEOUT must be positive")
	}

	if c.Refresh.CronSchedule == "" {
		return errors.New("REFRESH_CRON_SCHEDULE must be provided")
	}

	if c.Refresh.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Dashboard.TopN <= 0 {
		return errors.New("DASHBOARD_TOP_N must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
