// Package config provides the server configuration: YAML file loading with
// environment variable overrides and sensible defaults for local use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ft-manu/forethought-test-api/internal/fixture"
)

// Environment variables honored after file loading.
const (
	EnvToken    = "FT_API_TOKEN"
	EnvPort     = "FT_API_PORT"
	EnvLogLevel = "FT_API_LOG_LEVEL"
)

// DefaultToken is the static bearer token accepted when none is configured.
const DefaultToken = "ft_test_api_2024"

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrEmptyFile    = errors.New("configuration file is empty")
)

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Fixture   FixtureConfig   `yaml:"fixture"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// Host is the interface to bind ("" binds all).
	Host string `yaml:"host"`
	// Port is the TCP port to listen on.
	Port int `yaml:"port"`
}

// AuthConfig holds the bearer token settings.
type AuthConfig struct {
	// Token is the static bearer token required on protected routes.
	Token string `yaml:"token"`
}

// FixtureConfig sizes the generated dataset.
type FixtureConfig struct {
	Organizations int `yaml:"organizations"`
	UsersPerOrg   int `yaml:"usersPerOrg"`
	ProfileDepth  int `yaml:"profileDepth"`
}

// RateLimitConfig holds the per-client request budgets, in requests per
// minute per route class. A zero value disables the class's limit.
type RateLimitConfig struct {
	// Enabled turns per-IP rate limiting on.
	Enabled bool `yaml:"enabled"`
	// CRUD covers the entity collection and item routes.
	CRUD int `yaml:"crud"`
	// Search covers the advanced search route.
	Search int `yaml:"search"`
	// Batch covers the batch mutation routes.
	Batch int `yaml:"batch"`
	// Meta covers health, version and stats.
	Meta int `yaml:"meta"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 5000},
		Auth:   AuthConfig{Token: DefaultToken},
		Fixture: FixtureConfig{
			Organizations: 10,
			UsersPerOrg:   10,
			ProfileDepth:  10,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			CRUD:    100,
			Search:  50,
			Batch:   20,
			Meta:    30,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the configuration file at path, fills unset fields with
// defaults, and applies environment overrides. An empty path loads the
// defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvToken); v != "" {
		c.Auth.Token = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Auth.Token == "" {
		return errors.New("auth token cannot be empty")
	}
	if c.Fixture.Organizations < 1 || c.Fixture.UsersPerOrg < 1 {
		return errors.New("fixture sizes must be at least 1")
	}
	if c.Fixture.ProfileDepth < 1 {
		return errors.New("fixture profile depth must be at least 1")
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// FixtureOptions converts the fixture settings for the dataset generator.
func (c *Config) FixtureOptions() fixture.Options {
	return fixture.Options{
		Organizations: c.Fixture.Organizations,
		UsersPerOrg:   c.Fixture.UsersPerOrg,
		ProfileDepth:  c.Fixture.ProfileDepth,
	}
}
