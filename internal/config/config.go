// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DriverPostgres selects the PostgreSQL gorm driver.
	DriverPostgres = "postgres"
	// DriverSQLite selects the SQLite gorm driver; DB_NAME is the file path.
	DriverSQLite = "sqlite"
)

const defaultDBPassword = "password"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env string `mapstructure:"APP_ENV"`

	DBDriver                 string `mapstructure:"DB_DRIVER"`
	DBHost                   string `mapstructure:"DB_HOST"`
	DBPort                   string `mapstructure:"DB_PORT"`
	DBUser                   string `mapstructure:"DB_USER"`
	DBPassword               string `mapstructure:"DB_PASSWORD"`
	DBName                   string `mapstructure:"DB_NAME"`
	DBSSLMode                string `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns           int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBAutoMigrate            bool   `mapstructure:"DB_AUTO_MIGRATE"`

	RedisURL string `mapstructure:"REDIS_URL"`

	SeedRandomSeed      int64 `mapstructure:"SEED_RANDOM_SEED"`
	SeedTransactional   bool  `mapstructure:"SEED_TRANSACTIONAL"`
	SeedSkipBcrypt      bool  `mapstructure:"SEED_SKIP_BCRYPT"`
	SeedLockTTLSeconds  int   `mapstructure:"SEED_LOCK_TTL_SECONDS"`
	SeedAllowProduction bool  `mapstructure:"SEED_ALLOW_PRODUCTION"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	TracingEnabled     bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter    string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint       string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampleRatio float64 `mapstructure:"TRACING_SAMPLE_RATIO"`

	MetricsTextfile string `mapstructure:"METRICS_TEXTFILE"`
}

var defaults = map[string]any{
	"APP_ENV":                      "development",
	"DB_DRIVER":                    DriverPostgres,
	"DB_HOST":                      "localhost",
	"DB_PORT":                      "5432",
	"DB_USER":                      "user",
	"DB_PASSWORD":                  defaultDBPassword,
	"DB_NAME":                      "alx_travel",
	"DB_SSLMODE":                   "disable",
	"DB_MAX_OPEN_CONNS":            10,
	"DB_MAX_IDLE_CONNS":            5,
	"DB_CONN_MAX_LIFETIME_MINUTES": 5,
	"DB_AUTO_MIGRATE":              true,
	"REDIS_URL":                    "",
	"SEED_RANDOM_SEED":             0,
	"SEED_TRANSACTIONAL":           true,
	"SEED_SKIP_BCRYPT":             false,
	"SEED_LOCK_TTL_SECONDS":        300,
	"SEED_ALLOW_PRODUCTION":        false,
	"LOG_LEVEL":                    "info",
	"LOG_FORMAT":                   "text",
	"TRACING_ENABLED":              false,
	"TRACING_EXPORTER":             "stdout",
	"OTLP_ENDPOINT":                "localhost:4318",
	"TRACING_SAMPLE_RATIO":         1.0,
	"METRICS_TEXTFILE":             "",
}

// LoadConfig loads configuration from `.env`, `config.yml`, an optional
// `config.<APP_ENV>.yml` profile and environment variables, searching the
// given directories (the working directory and its parents when none).
func LoadConfig(dirs ...string) (*Config, error) {
	if len(dirs) == 0 {
		dirs = []string{".", "..", "../.."}
	}

	for _, dir := range dirs {
		envFile := filepath.Join(dir, ".env")
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
			break
		}
	}

	v := viper.New()
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	env := strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV")))
	if env != "" && env != "development" {
		v.SetConfigName("config." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config.%s.yml: %w", env, err)
			}
		} else {
			slog.Info("Loaded profile-specific configuration", slog.String("file", "config."+env+".yml"))
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))

	switch strings.ToLower(strings.TrimSpace(c.DBDriver)) {
	case "postgres", "postgresql", "pg", "pgx":
		c.DBDriver = DriverPostgres
	case "sqlite", "sqlite3":
		c.DBDriver = DriverSQLite
	default:
		c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	}
}

// IsProduction reports whether the configuration targets a production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and safe to seed with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if strings.TrimSpace(c.DBName) == "" {
		return errors.New("DB_NAME is required")
	}
	if c.DBMaxOpenConns <= 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be positive")
	}
	if c.DBMaxIdleConns < 0 {
		return errors.New("DB_MAX_IDLE_CONNS must not be negative")
	}
	if c.DBConnMaxLifetimeMinutes <= 0 {
		return errors.New("DB_CONN_MAX_LIFETIME_MINUTES must be positive")
	}
	if c.SeedLockTTLSeconds <= 0 {
		return errors.New("SEED_LOCK_TTL_SECONDS must be positive")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	if c.TracingEnabled {
		switch c.TracingExporter {
		case "stdout", "otlp":
		default:
			return fmt.Errorf("unsupported TRACING_EXPORTER %q", c.TracingExporter)
		}
	}

	if c.IsProduction() {
		if !c.SeedAllowProduction {
			return errors.New("refusing to seed a production database without SEED_ALLOW_PRODUCTION=true")
		}
		if c.DBDriver == DriverPostgres {
			if c.DBPassword == defaultDBPassword || c.DBPassword == "" {
				return errors.New("a strong DB_PASSWORD is required in production")
			}
			if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
				slog.Warn("DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
			}
		}
	}

	return nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		sslMode,
	)
}

// ConnMaxLifetime converts DB_CONN_MAX_LIFETIME_MINUTES to a duration.
func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeMinutes) * time.Minute
}

// SeedLockTTL converts SEED_LOCK_TTL_SECONDS to a duration.
func (c *Config) SeedLockTTL() time.Duration {
	return time.Duration(c.SeedLockTTLSeconds) * time.Second
}

// ParseLogLevel maps LOG_LEVEL values onto slog levels.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported LOG_LEVEL %q", level)
	}
}
