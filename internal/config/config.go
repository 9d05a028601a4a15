package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. HOLISTA_FTP_PASSWORD.
const EnvPrefix = "HOLISTA"

// Logical dataset keys looked up under ftp.paths.
const (
	KeyOverdue         = "overdue"
	KeyOverdueCreditor = "overdue_cr"
	KeyOpenSalesOrders = "open_so"
	KeyOpenPurchases   = "open_po"
	KeyStockStatus     = "stock_status"
	KeyInventory       = "inventory"
	KeyStockAgeing     = "stock_ageing"
	KeyInventoryAgeing = "inventory_ageing"
)

// DefaultTimeout bounds a single FTP session when none is configured.
const DefaultTimeout = 30 * time.Second

// Config represents the top-level holista.yaml configuration.
type Config struct {
	FTP     FTPConfig     `yaml:"ftp" envconfig:"FTP"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// FTPConfig holds the credentials and remote paths of the extract server.
// Leaf fields carry no envconfig tag so only HOLISTA_FTP_<FIELD> is read,
// never a bare HOST or USER.
type FTPConfig struct {
	Host     string            `yaml:"host" validate:"required"`
	User     string            `yaml:"user" validate:"required"`
	Password string            `yaml:"password" validate:"required"`
	Timeout  time.Duration     `yaml:"timeout,omitempty"`
	Paths    map[string]string `yaml:"paths" ignored:"true"`
}

// LoggingConfig controls the default log output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	JSON  bool   `yaml:"json,omitempty"`
}

// Load reads a holista.yaml file from disk.
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

// Resolve builds the process configuration: the yaml file when it exists,
// then a .env file in the working directory, then HOLISTA_* variables.
// Credentials are not validated here; the fetcher does that per call so
// commands that never touch the server still run.
func Resolve(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a starter Config pointing at the usual report locations.
func Default(host, user string) *Config {
	return &Config{
		FTP: FTPConfig{
			Host:    host,
			User:    user,
			Timeout: DefaultTimeout,
			Paths: map[string]string{
				KeyOverdue:         "/reports/Overdue_Payment.xlsx",
				KeyOverdueCreditor: "/reports/Overdue_Creditor.xlsx",
				KeyOpenSalesOrders: "/reports/Open_Sales_Order.xlsx",
				KeyOpenPurchases:   "/reports/Open_Purchase_Order.xlsx",
				KeyStockStatus:     "/reports/Stock_Status.xlsx",
				KeyInventory:       "/reports/Inventory_Ageing_Report.xlsx",
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// ResolvePath returns the configured remote path for a logical dataset
// key, or fallback when the key is unset. It never performs I/O.
func (c FTPConfig) ResolvePath(key, fallback string) string {
	if p, ok := c.Paths[key]; ok && p != "" {
		return p
	}
	return fallback
}

// SessionTimeout returns the configured timeout or DefaultTimeout.
func (c FTPConfig) SessionTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
