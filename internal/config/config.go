// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type LeagueConfig struct {
	BaseURL               string `yaml:"base_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	Token                 string `yaml:"-"` // Loaded from environment
}

func (c LeagueConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

type MatchConfig struct {
	MinutesPerHalf         int `yaml:"minutes_per_half"`
	MinutesHalftime        int `yaml:"minutes_halftime"`
	SnapshotMaxAgeMinutes  int `yaml:"snapshot_max_age_minutes"`
	PersistIntervalSeconds int `yaml:"persist_interval_seconds"`
}

func (c MatchConfig) SnapshotMaxAge() time.Duration {
	return time.Duration(c.SnapshotMaxAgeMinutes) * time.Minute
}

func (c MatchConfig) PersistInterval() time.Duration {
	return time.Duration(c.PersistIntervalSeconds) * time.Second
}

type JobsConfig struct {
	EvictionIntervalMinutes int `yaml:"eviction_interval_minutes"`
	RefreshIntervalSeconds  int `yaml:"refresh_interval_seconds"`
}

func (c JobsConfig) EvictionInterval() time.Duration {
	return time.Duration(c.EvictionIntervalMinutes) * time.Minute
}

func (c JobsConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	League   LeagueConfig   `yaml:"league"`
	Match    MatchConfig    `yaml:"match"`
	Jobs     JobsConfig     `yaml:"jobs"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Read and parse YAML config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.League.Token = os.Getenv("LEAGUE_API_TOKEN")

	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.League.RequestTimeoutSeconds == 0 {
		c.League.RequestTimeoutSeconds = 15
	}
	if c.Match.MinutesPerHalf == 0 {
		c.Match.MinutesPerHalf = 25
	}
	if c.Match.MinutesHalftime == 0 {
		c.Match.MinutesHalftime = 5
	}
	if c.Match.SnapshotMaxAgeMinutes == 0 {
		c.Match.SnapshotMaxAgeMinutes = 240
	}
	if c.Match.PersistIntervalSeconds == 0 {
		c.Match.PersistIntervalSeconds = 15
	}
	if c.Jobs.EvictionIntervalMinutes == 0 {
		c.Jobs.EvictionIntervalMinutes = 60
	}
	if c.Jobs.RefreshIntervalSeconds == 0 {
		c.Jobs.RefreshIntervalSeconds = 60
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.League.BaseURL == "" {
		return fmt.Errorf("league base URL is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	return nil
}
