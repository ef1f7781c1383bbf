// Package config loads pawshop configuration from a YAML file with
// environment-variable overrides. Missing file means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all pawshop configuration.
type Config struct {
	// API is the remote storefront backend.
	API APIConfig `yaml:"api"`

	// Storage locates the durable snapshot database.
	Storage StorageConfig `yaml:"storage"`

	// E2E configures the browser verification harness.
	E2E E2EConfig `yaml:"e2e"`
}

// APIConfig configures the gateway client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// RequestTimeout parses the configured timeout, falling back to 30s.
func (c APIConfig) RequestTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// StorageConfig locates local durable state.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// E2EConfig configures the browser harness: where the deployed app lives,
// how the browser runs, and the seeded accounts scenarios sign in with.
type E2EConfig struct {
	AppURL              string `yaml:"app_url"`
	Headless            bool   `yaml:"headless"`
	ViewportWidth       int    `yaml:"viewport_width"`
	ViewportHeight      int    `yaml:"viewport_height"`
	NavigationTimeoutMs int    `yaml:"navigation_timeout_ms"`
	AssertTimeoutMs     int    `yaml:"assert_timeout_ms"`

	UserEmail     string `yaml:"user_email"`
	UserPassword  string `yaml:"user_password"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

// NavigationTimeout bounds page loads.
func (c E2EConfig) NavigationTimeout() time.Duration {
	if c.NavigationTimeoutMs > 0 {
		return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
	}
	return 30 * time.Second
}

// AssertTimeout bounds how long a check waits for eventual UI consistency
// after a server round trip.
func (c E2EConfig) AssertTimeout() time.Duration {
	if c.AssertTimeoutMs > 0 {
		return time.Duration(c.AssertTimeoutMs) * time.Millisecond
	}
	return 10 * time.Second
}

// DefaultConfig returns the default configuration for a locally deployed
// storefront.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: "30s",
		},
		Storage: StorageConfig{
			Path: filepath.Join(home, ".pawshop", "state.db"),
		},
		E2E: E2EConfig{
			AppURL:              "http://localhost:3000",
			Headless:            true,
			ViewportWidth:       1920,
			ViewportHeight:      1080,
			NavigationTimeoutMs: 30000,
			AssertTimeoutMs:     10000,
			UserEmail:           "user@example.com",
			UserPassword:        "123456",
			AdminEmail:          "admin@admin.com",
			AdminPassword:       "123456",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("PAWSHOP_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if url := os.Getenv("PAWSHOP_APP_URL"); url != "" {
		c.E2E.AppURL = url
	}
	if path := os.Getenv("PAWSHOP_DB"); path != "" {
		c.Storage.Path = path
	}
	if v := os.Getenv("PAWSHOP_HEADLESS"); v != "" {
		c.E2E.Headless = v != "0" && v != "false"
	}
}
