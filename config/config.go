package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DateLayout is the ISO layout accepted for START_DATE and END_DATE.
const DateLayout = "2006-01-02"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"dashboard"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"dashboard123"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"retail_db"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxRetries       int    `env:"MAX_RETRIES" envDefault:"3"`

	// DataSource is "file" (CSV or XLSX picked by extension) or "postgres".
	DataSource   string `env:"DATA_SOURCE" envDefault:"file"`
	DatasetPath  string `env:"DATASET_PATH" envDefault:"./Data/train.csv"`
	SeedPostgres bool   `env:"SEED_POSTGRES" envDefault:"false"`

	LogLevel  string   `env:"LOG_LEVEL" envDefault:"info"`
	Pages     []string `env:"PAGES" envDefault:"sales,customers,map,shipping,timeline"`
	ExportDir string   `env:"EXPORT_DIR"`
	Locale    string   `env:"LOCALE" envDefault:"en-US"`

	Segments   []string `env:"SEGMENTS"`
	Regions    []string `env:"REGIONS"`
	ShipModes  []string `env:"SHIP_MODES"`
	Categories []string `env:"CATEGORIES"`
	StartDate  string   `env:"START_DATE"`
	EndDate    string   `env:"END_DATE"`

	RankMin           int    `env:"RANK_MIN" envDefault:"1"`
	RankMax           int    `env:"RANK_MAX" envDefault:"10"`
	LateThresholdDays int    `env:"LATE_THRESHOLD_DAYS" envDefault:"3"`
	Granularity       string `env:"GRANULARITY" envDefault:"Monthly"`
	ByCategory        bool   `env:"BY_CATEGORY" envDefault:"false"`
	ContinuousPeriods bool   `env:"CONTINUOUS_PERIODS" envDefault:"false"`
}

// Load reads the .env file and returns a populated Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.normalise()
	return cfg, nil
}

// normalise trims list entries and clamps values that would otherwise be degenerate.
func (c *Config) normalise() {
	c.Pages = cleanList(c.Pages)
	c.Segments = cleanList(c.Segments)
	c.Regions = cleanList(c.Regions)
	c.ShipModes = cleanList(c.ShipModes)
	c.Categories = cleanList(c.Categories)

	c.DataSource = strings.ToLower(strings.TrimSpace(c.DataSource))
	if c.MaxRetries < 1 {
		c.MaxRetries = 1
	}
	if c.LateThresholdDays < 0 {
		c.LateThresholdDays = 0
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// DateRange parses START_DATE and END_DATE. An unset bound is returned as the zero time.
func (c *Config) DateRange() (start, end time.Time, err error) {
	if start, err = parseDate(c.StartDate); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("config: START_DATE: %w", err)
	}
	if end, err = parseDate(c.EndDate); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("config: END_DATE: %w", err)
	}
	return start, end, nil
}

// PageEnabled reports whether the named dashboard page was requested in PAGES.
func (c *Config) PageEnabled(name string) bool {
	for _, p := range c.Pages {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
