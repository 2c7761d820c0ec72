package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // LEDGER_TIMEZONE must resolve in minimal containers

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Supported values for DATA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	DataBackend   string
	DatabaseURL   string
	SQLiteDBPath  string
	EnableDBCheck bool
	SeedOnEmpty   bool

	// Location bounds calendar months in reports.
	Location            *time.Location
	EnforceSignOnUpdate bool

	// JWTSecret enables bearer authentication on /api/v1 when non-empty.
	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	RateLimit          string // ulule formatted, e.g. "300-M"; empty disables
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATA_BACKEND", BackendSQLite)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_DB_PATH", "./data/budget.db")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("SEED_ON_EMPTY", true)
	viper.SetDefault("LEDGER_TIMEZONE", "UTC")
	viper.SetDefault("ENFORCE_SIGN_ON_UPDATE", true)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "budget-tracker")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                viper.GetString("PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		DataBackend:         strings.ToLower(viper.GetString("DATA_BACKEND")),
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		SQLiteDBPath:        viper.GetString("SQLITE_DB_PATH"),
		EnableDBCheck:       viper.GetBool("ENABLE_DB_CHECK"),
		SeedOnEmpty:         viper.GetBool("SEED_ON_EMPTY"),
		EnforceSignOnUpdate: viper.GetBool("ENFORCE_SIGN_ON_UPDATE"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		JWTIssuer:           viper.GetString("JWT_ISSUER"),
		RateLimit:           viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
	}

	var problems []string

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL %q", viper.GetString("LOG_LEVEL")))
	}

	loc, err := time.LoadLocation(viper.GetString("LEDGER_TIMEZONE"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid LEDGER_TIMEZONE %q: %v", viper.GetString("LEDGER_TIMEZONE"), err))
		loc = time.UTC
	}
	cfg.Location = loc

	expiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid JWT_EXPIRY_DURATION %q", viper.GetString("JWT_EXPIRY_DURATION")))
	}
	cfg.JWTExpiryDuration = expiry

	if err := cfg.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// Validate checks the loaded values and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "PGSQL_URL cannot be empty when using the postgres backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLITE_DB_PATH cannot be empty when using the sqlite backend")
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s %s]",
			c.DataBackend, BackendPostgres, BackendSQLite, BackendMemory))
	}

	if c.RateLimit != "" {
		if _, err := limiter.NewRateFromFormatted(c.RateLimit); err != nil {
			errs = append(errs, fmt.Sprintf("invalid RATE_LIMIT '%s': %v", c.RateLimit, err))
		}
	}

	if c.IsProduction && c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
