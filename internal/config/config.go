package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file written next to the database.
const FileName = "pocketfin.yaml"

// Config represents the top-level pocketfin.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Currency CurrencyConfig `yaml:"currency"`
	Rules    RulesConfig    `yaml:"rules"`
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CurrencyConfig holds presentation-only currency settings.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol"`
}

// RulesConfig holds configurable validation policy.
type RulesConfig struct {
	DisallowedPairs []DisallowedPair `yaml:"disallowed_pairs,omitempty"`
}

// DisallowedPair names an (account, category) combination that expense
// validation rejects.
type DisallowedPair struct {
	Name     string `yaml:"name"`
	Account  string `yaml:"account"`
	Category string `yaml:"category"`
}

// Load reads a pocketfin.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ApplyEnv()
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

// Default returns a Config with sensible defaults for a new ledger.
func Default(dbPath, currencySymbol string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: dbPath},
		Logging:  LoggingConfig{Level: "info"},
		Currency: CurrencyConfig{Symbol: currencySymbol},
	}
}

// ApplyEnv overlays environment variables (typically loaded from .env)
// onto the config. Only set variables override file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("POCKETFIN_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("POCKETFIN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("POCKETFIN_CURRENCY_SYMBOL"); v != "" {
		c.Currency.Symbol = v
	}
}
