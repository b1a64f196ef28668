package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "ft_test_api_2024", cfg.Auth.Token)
	assert.Equal(t, 10, cfg.Fixture.Organizations)
	assert.Equal(t, 10, cfg.Fixture.UsersPerOrg)
	assert.Equal(t, 10, cfg.Fixture.ProfileDepth)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.CRUD)
	assert.Equal(t, 50, cfg.RateLimit.Search)
	assert.Equal(t, 20, cfg.RateLimit.Batch)
	assert.Equal(t, 30, cfg.RateLimit.Meta)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  host: 127.0.0.1
  port: 8080
auth:
  token: secret-token
fixture:
  organizations: 3
  usersPerOrg: 2
  profileDepth: 4
rateLimit:
  enabled: false
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "secret-token", cfg.Auth.Token)
	assert.Equal(t, 3, cfg.Fixture.Organizations)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)

	opts := cfg.FixtureOptions()
	assert.Equal(t, 3, opts.Organizations)
	assert.Equal(t, 2, opts.UsersPerOrg)
	assert.Equal(t, 4, opts.ProfileDepth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvPort, "9191")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Auth.Token)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid port: 0"},
		{"empty token", func(c *Config) { c.Auth.Token = "" }, "auth token cannot be empty"},
		{"zero orgs", func(c *Config) { c.Fixture.Organizations = 0 }, "fixture sizes must be at least 1"},
		{"zero depth", func(c *Config) { c.Fixture.ProfileDepth = 0 }, "fixture profile depth must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
