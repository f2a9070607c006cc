package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/purplebook-dev/purplebook/internal/inventory"
	"github.com/purplebook-dev/purplebook/internal/report"
)

// FileName is the default config file name.
const FileName = "purplebook.yaml"

// Environment variables that override the file.
const (
	EnvDB       = "PURPLEBOOK_DB"
	EnvOwner    = "PURPLEBOOK_OWNER"
	EnvLogLevel = "PURPLEBOOK_LOG_LEVEL"
	EnvAddr     = "PURPLEBOOK_ADDR"
)

// Config represents the top-level purplebook.yaml configuration.
type Config struct {
	Owner     OwnerConfig         `yaml:"owner"`
	Currency  CurrencyConfig      `yaml:"currency"`
	Database  DatabaseConfig      `yaml:"database"`
	Dates     DatesConfig         `yaml:"dates"`
	Accounts  AccountsConfig      `yaml:"accounts"`
	Equity    report.EquityPolicy `yaml:"equity"`
	Inventory inventory.Accounts  `yaml:"inventory"`
	Server    ServerConfig        `yaml:"server"`
	Log       LogConfig           `yaml:"log"`
}

// OwnerConfig identifies whose books these are.
type OwnerConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// CurrencyConfig controls how amounts are displayed.
type CurrencyConfig struct {
	Code string `yaml:"code"` // ISO 4217, e.g. "IDR"
}

// DatabaseConfig selects the entry store.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "memory"
	Path   string `yaml:"path"`
}

// DatesConfig controls entry date validation.
type DatesConfig struct {
	StrictCalendar bool `yaml:"strict_calendar"`
}

// AccountsConfig controls the chart of accounts.
type AccountsConfig struct {
	ChartFile         string `yaml:"chart_file"`
	CategoryConflicts string `yaml:"category_conflicts"` // "reject" or "warn"
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load reads a purplebook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
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

// Default returns a Config with sensible defaults and a fresh owner id.
func Default(ownerName string) *Config {
	return &Config{
		Owner: OwnerConfig{
			ID:   uuid.NewString(),
			Name: ownerName,
		},
		Currency: CurrencyConfig{Code: "IDR"},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "data/purplebook.db",
		},
		Accounts: AccountsConfig{
			ChartFile:         "chart-of-accounts.csv",
			CategoryConflicts: "reject",
		},
		Equity:    report.DefaultEquityPolicy(),
		Inventory: inventory.DefaultAccounts(),
		Server:    ServerConfig{Addr: ":8080"},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// LoadEnvFile loads variables from a .env file into the process environment.
// A missing file is not an error; variables already set win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with the PURPLEBOOK_* environment variables.
func (c *Config) ApplyEnv() {
	c.Database.Path = getEnv(EnvDB, c.Database.Path)
	c.Owner.ID = getEnv(EnvOwner, c.Owner.ID)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Server.Addr = getEnv(EnvAddr, c.Server.Addr)
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Owner.ID) == "" {
		problems = append(problems, "owner.id is required")
	}
	if len(c.Currency.Code) != 3 {
		problems = append(problems, fmt.Sprintf("invalid currency code %q: must be a 3-letter ISO 4217 code", c.Currency.Code))
	}

	switch c.Database.Driver {
	case "memory":
	case "sqlite":
		if c.Database.Path == "" {
			problems = append(problems, "database.path cannot be empty when using the sqlite driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid database driver %q: must be one of [sqlite memory]", c.Database.Driver))
	}

	switch c.Accounts.CategoryConflicts {
	case "reject", "warn":
	default:
		problems = append(problems, fmt.Sprintf("invalid accounts.category_conflicts %q: must be reject or warn", c.Accounts.CategoryConflicts))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be text or json", c.Log.Format))
	}

	inv := c.Inventory
	if inv.Stock == "" || inv.Cash == "" || inv.CostOfStock == "" {
		problems = append(problems, "inventory accounts must all be named")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
