// Package config loads application settings from, in order of
// precedence: environment variables, a .env file in the working
// directory, and ~/.atelier/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath  string `yaml:"db_path"`
	LogPath string `yaml:"log_path"`

	// HourlyCost is the blended EUR/hour rate used for profitability
	// estimates. Zero falls back to the built-in default.
	HourlyCost float64 `yaml:"hourly_cost"`

	Holded HoldedConfig `yaml:"holded"`
}

type HoldedConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Load reads configuration. A missing config file or .env is not an
// error; defaults cover everything.
func Load() (*Config, error) {
	// .env is developer convenience, ignored when absent.
	_ = godotenv.Load()

	cfg := defaults()

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DBPath:  filepath.Join(home, ".atelier", "atelier.db"),
		LogPath: filepath.Join(home, ".atelier", "atelier.log"),
		Holded: HoldedConfig{
			BaseURL: "https://api.holded.com/api/invoicing/v1",
		},
	}
}

func configFilePath() string {
	if p := os.Getenv("ATELIER_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".atelier", "config.yaml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ATELIER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ATELIER_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("ATELIER_HOURLY_COST"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HourlyCost = f
		}
	}
	if v := os.Getenv("HOLDED_API_KEY"); v != "" {
		cfg.Holded.APIKey = v
		cfg.Holded.Enabled = true
	}
	if v := os.Getenv("HOLDED_BASE_URL"); v != "" {
		cfg.Holded.BaseURL = v
	}
}
