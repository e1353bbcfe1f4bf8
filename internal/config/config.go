package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the books root.
const FileName = "tally.yaml"

// Storage drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvDSN      = "TALLY_DSN"
	EnvAddr     = "TALLY_ADDR"
	EnvLogLevel = "TALLY_LOG_LEVEL"
	EnvStorage  = "TALLY_STORAGE"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Fiscal    FiscalConfig    `yaml:"fiscal"`
	Reporting ReportingConfig `yaml:"reporting"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// ReportingConfig controls statement output and the balanced-books check.
type ReportingConfig struct {
	Currency  string        `yaml:"currency"`
	Tolerance string        `yaml:"tolerance"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// StorageConfig selects where accounts and transactions are read from.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn,omitempty"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// LogConfig sets the zap log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Path returns the config location under a books root.
func Path(booksRoot string) string {
	return filepath.Join(booksRoot, FileName)
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName, entityType string) *Config {
	cfg := &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
	}
	cfg.fill()
	return cfg
}

// fill sets defaults for anything a config file left out.
func (c *Config) fill() {
	if c.Fiscal.YearStart == "" {
		c.Fiscal.YearStart = "01-01"
	}
	if c.Reporting.Currency == "" {
		c.Reporting.Currency = "USD"
	}
	if c.Reporting.Tolerance == "" {
		c.Reporting.Tolerance = "0.01"
	}
	if c.Reporting.CacheTTL == 0 {
		c.Reporting.CacheTTL = 5 * time.Minute
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverFile
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := c.Tolerance(); err != nil {
		return err
	}
	switch c.Storage.Driver {
	case DriverFile:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage driver %q requires a dsn (or %s)", DriverPostgres, EnvDSN)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// Tolerance returns the balanced-books tolerance as a decimal.
func (c *Config) Tolerance() (decimal.Decimal, error) {
	tol, err := decimal.NewFromString(c.Reporting.Tolerance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing reporting.tolerance %q: %w", c.Reporting.Tolerance, err)
	}
	if tol.IsNegative() {
		return decimal.Zero, fmt.Errorf("reporting.tolerance must not be negative, got %s", tol)
	}
	return tol, nil
}

// ApplyEnv loads an optional .env file from dir and overlays TALLY_*
// variables onto the config. Variables already set in the environment win
// over the .env file.
func (c *Config) ApplyEnv(dir string) error {
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvStorage); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(EnvDSN); v != "" {
		c.Storage.DSN = v
		if os.Getenv(EnvStorage) == "" {
			c.Storage.Driver = DriverPostgres
		}
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return c.Validate()
}
