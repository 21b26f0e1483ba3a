package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/ryanm101/giantbomb/internal/logging"
	"github.com/ryanm101/giantbomb/internal/tracing"
)

const (
	defaultBaseURL   = "https://www.giantbomb.com/api/"
	defaultUserAgent = "giantbomb-go/1.0"
	defaultTimeout   = 30 * time.Second
	defaultDBPath    = "giantbomb.db"
)

// Config holds application configuration.
type Config struct {
	APIKey    string         `yaml:"api_key" env:"GIANTBOMB_API_KEY"`
	BaseURL   string         `yaml:"base_url" env:"GIANTBOMB_BASE_URL"`
	UserAgent string         `yaml:"user_agent" env:"GIANTBOMB_USER_AGENT"`
	Timeout   time.Duration  `yaml:"timeout" env:"GIANTBOMB_TIMEOUT"`
	DBPath    string         `yaml:"db_path" env:"GIANTBOMB_DB"`
	Breaker   BreakerConfig  `yaml:"breaker"`
	Logging   logging.Config `yaml:"logging"`
	Tracing   tracing.Config `yaml:"tracing"`
}

// BreakerConfig controls the optional circuit breaker around the transport.
type BreakerConfig struct {
	Enabled      bool          `yaml:"enabled" env:"GIANTBOMB_BREAKER"`
	Timeout      time.Duration `yaml:"timeout" env:"GIANTBOMB_BREAKER_TIMEOUT"`
	FailureRatio float64       `yaml:"failure_ratio" env:"GIANTBOMB_BREAKER_FAILURE_RATIO"`
	MinRequests  uint32        `yaml:"min_requests" env:"GIANTBOMB_BREAKER_MIN_REQUESTS"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   defaultBaseURL,
		UserAgent: defaultUserAgent,
		Timeout:   defaultTimeout,
		DBPath:    defaultDBPath,
		Breaker: BreakerConfig{
			Timeout:      30 * time.Second,
			FailureRatio: 0.5,
			MinRequests:  5,
		},
		Logging: logging.DefaultConfig(),
		Tracing: tracing.DefaultConfig(),
	}
}

// configPaths returns the list of paths to search for config file.
func configPaths() []string {
	paths := []string{
		".giantbomb.yaml",
		".giantbomb.yml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "giantbomb", "config.yaml"),
			filepath.Join(home, ".config", "giantbomb", "config.yml"),
			filepath.Join(home, ".giantbomb.yaml"),
		)
	}

	return paths
}

// Load loads configuration from file or returns defaults.
// Priority: environment variables > GIANTBOMB_CONFIG file > search paths > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if envPath := os.Getenv("GIANTBOMB_CONFIG"); envPath != "" {
		if err := cfg.loadFromFile(envPath); err != nil {
			return nil, err
		}
	} else {
		for _, path := range configPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := cfg.loadFromFile(path); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides sets every field whose environment variable is present.
func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// RequireAPIKey fails when no API key has been configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return errors.New("no API key: set GIANTBOMB_API_KEY or api_key in the config file")
	}
	return nil
}

// GetBaseURL returns the API root, applying defaults.
func (c *Config) GetBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

// GetUserAgent returns the User-Agent header value.
func (c *Config) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return defaultUserAgent
}

// GetTimeout returns the per-request timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

// GetDBPath returns the catalog database path.
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return defaultDBPath
}

// Masked returns a copy safe to print: the API key keeps only its last
// four characters.
func (c *Config) Masked() *Config {
	cp := *c
	if n := len(cp.APIKey); n > 4 {
		cp.APIKey = strings.Repeat("*", n-4) + cp.APIKey[n-4:]
	} else if n > 0 {
		cp.APIKey = "****"
	}
	return &cp
}
