package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/sneakerbook/internal/ledger"
)

// FileName is the default config file name.
const FileName = "sneakerbook.yaml"

// Config represents the top-level sneakerbook.yaml configuration.
type Config struct {
	Ledger   LedgerConfig   `yaml:"ledger"`
	Brands   []string       `yaml:"brands"`
	Activity ActivityConfig `yaml:"activity"`
	Session  SessionConfig  `yaml:"session"`
}

// LedgerConfig controls what a new session starts with.
type LedgerConfig struct {
	Seed       bool   `yaml:"seed"`                  // load the built-in sample records
	ImportFile string `yaml:"import_file,omitempty"` // CSV to start from instead of the sample
}

// ActivityConfig controls where operation outcomes are appended on exit.
type ActivityConfig struct {
	Path string `yaml:"path,omitempty"` // empty disables the file
}

// SessionConfig tunes the interactive session.
type SessionConfig struct {
	ConfirmDelete bool `yaml:"confirm_delete"`
}

// Load reads a sneakerbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path if it exists and falls back to Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
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

// Default returns a Config with sensible defaults for a new book.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Seed: true,
		},
		Brands: ledger.DefaultBrands(),
		Session: SessionConfig{
			ConfirmDelete: true,
		},
	}
}
