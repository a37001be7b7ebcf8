// Package config loads and validates the engine construction
// configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/papertrader/journal"
)

// Config is the complete engine configuration.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// AccountConfig holds account initialization parameters. The starting
// balance is credited as the opening transaction and captured once as
// the P&L basis.
type AccountConfig struct {
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance"`
	Currency        string  `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// JournalConfig selects the persistence backend: "none", "csv",
// "json" or "sqlite". Dir is the storage location for every format
// but "none".
type JournalConfig struct {
	Format string `json:"format" yaml:"format"`
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration, choosing YAML or JSON by
// file extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Account.StartingBalance < 0 {
		return fmt.Errorf("account.starting_balance must not be negative")
	}
	if !journal.ValidFormat(c.Journal.Format) {
		return fmt.Errorf("journal.format must be one of none, csv, json, sqlite")
	}
	if c.Journal.Format != journal.FormatNone && c.Journal.Dir == "" {
		return fmt.Errorf("journal.dir required when journal.format is %q", c.Journal.Format)
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			StartingBalance: 10000,
			Currency:        "USD",
		},
		Journal: JournalConfig{
			Format: journal.FormatNone,
		},
	}
}
