package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	DataDir   string `envconfig:"DATA_DIR" default:"data"`
	BackupDir string `envconfig:"BACKUP_DIR" default:"backup"`

	MaxProducts     int `envconfig:"MAX_PRODUCTS" default:"1000"`
	MaxSuppliers    int `envconfig:"MAX_SUPPLIERS" default:"500"`
	MaxTransactions int `envconfig:"MAX_TRANSACTIONS" default:"5000"`
	MaxUsers        int `envconfig:"MAX_USERS" default:"100"`

	SeedDefaultUsers bool `envconfig:"SEED_DEFAULT_USERS" default:"true"`
	BcryptCost       int  `envconfig:"BCRYPT_COST" default:"10"`

	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`

	User     string `envconfig:"STOCKROOM_USER"`
	Password string `envconfig:"STOCKROOM_PASSWORD"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects negative capacities and empty directories.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data dir must be provided")
	}
	if strings.TrimSpace(c.BackupDir) == "" {
		return errors.New("backup dir must be provided")
	}
	for name, v := range map[string]int{
		"MAX_PRODUCTS":     c.MaxProducts,
		"MAX_SUPPLIERS":    c.MaxSuppliers,
		"MAX_TRANSACTIONS": c.MaxTransactions,
		"MAX_USERS":        c.MaxUsers,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, v)
		}
	}
	return nil
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	if c == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
