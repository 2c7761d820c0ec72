package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:         "8080",
		DataBackend:  BackendSQLite,
		SQLiteDBPath: "./data/budget.db",
		RateLimit:    "300-M",
		Location:     time.UTC,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid sqlite", mutate: func(c *Config) {}},
		{name: "valid memory", mutate: func(c *Config) { c.DataBackend = BackendMemory; c.SQLiteDBPath = "" }},
		{name: "non numeric port", mutate: func(c *Config) { c.Port = "http" }, wantErr: "must be a number"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, wantErr: "between 1 and 65535"},
		{name: "unknown backend", mutate: func(c *Config) { c.DataBackend = "sheets" }, wantErr: "invalid data backend"},
		{name: "postgres without url", mutate: func(c *Config) { c.DataBackend = BackendPostgres }, wantErr: "PGSQL_URL"},
		{name: "sqlite without path", mutate: func(c *Config) { c.SQLiteDBPath = "" }, wantErr: "SQLITE_DB_PATH"},
		{name: "bad rate", mutate: func(c *Config) { c.RateLimit = "lots" }, wantErr: "invalid RATE_LIMIT"},
		{name: "short secret in production", mutate: func(c *Config) { c.IsProduction = true; c.JWTSecret = "short" }, wantErr: "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "0"
	cfg.DataBackend = "csv"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 65535")
	assert.Contains(t, err.Error(), "invalid data backend")
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DATA_BACKEND", "MEMORY")
	t.Setenv("PORT", "9090")
	t.Setenv("LEDGER_TIMEZONE", "Europe/Madrid")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.DataBackend)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Europe/Madrid", cfg.Location.String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnforceSignOnUpdate)
}

func TestLoadConfig_InvalidTimezone(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LEDGER_TIMEZONE", "Mars/Olympus")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEDGER_TIMEZONE")
}
