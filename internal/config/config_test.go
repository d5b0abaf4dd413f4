package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashquiz/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:          ":5000",
		DBPath:        "test.db",
		LogLevel:      "INFO",
		LogFormat:     "console",
		DefaultUserID: 1,
		CORSOrigins:   []string{"http://localhost:3000"},
		APIURL:        "http://localhost:5000/api",
		ClientTimeout: 15 * time.Second,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

// Entry points print the error as is, so the prefix appears exactly once.
func TestValidate_MessageIsSelfDescribing(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid configuration: "))
	assert.Equal(t, 1, strings.Count(err.Error(), "invalid configuration"))
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.LogLevel = "LOUD" },
			want:   "LOG_LEVEL",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.LogFormat = "xml" },
			want:   "LOG_FORMAT",
		},
		{
			name:   "zero default user",
			mutate: func(c *config.Config) { c.DefaultUserID = 0 },
			want:   "DEFAULT_USER_ID must be greater than 0",
		},
		{
			name:   "bad api url",
			mutate: func(c *config.Config) { c.APIURL = "not a url" },
			want:   "API_URL must be a valid URL",
		},
		{
			name:   "zero client timeout",
			mutate: func(c *config.Config) { c.ClientTimeout = 0 },
			want:   "CLIENT_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "DEFAULT_USER_ID", "CORS_ORIGINS", "API_URL", "CLIENT_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "file:flashquiz.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, int64(1), cfg.DefaultUserID)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 15*time.Second, cfg.ClientTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEFAULT_USER_ID", "42")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("CLIENT_TIMEOUT", "3s")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.DefaultUserID)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.ClientTimeout)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DEFAULT_USER_ID", "abc")
	t.Setenv("CLIENT_TIMEOUT", "soon")

	cfg := config.Load()
	assert.Equal(t, int64(1), cfg.DefaultUserID)
	assert.Equal(t, 15*time.Second, cfg.ClientTimeout)
}
