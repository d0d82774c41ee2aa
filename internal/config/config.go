package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated once from
// environment variables at process start and passed by reference into
// every component that needs it. Nothing reads the environment after Load.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Token    TokenConfig
	Email    EmailConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	ExpiryMin int // access token TTL, minutes
}

// TokenConfig drives confirmation-code derivation. Codes are an HMAC of
// account state over a rotating time window, so WindowMin bounds how long
// an emailed code stays usable (between one and two windows).
type TokenConfig struct {
	Secret    string
	WindowMin int
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort string
	From     string
}

type WorkerConfig struct {
	// Inactive accounts older than this many hours are purged by the
	// cleanup job. Signup for the same (username, email) simply starts over.
	InactivePurgeAfterHours int
	CleanupSchedule         string // cron spec
}

const defaultSecret = "change-me-in-production"

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ReviewHub API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "reviewhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", defaultSecret),
			ExpiryMin: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		Token: TokenConfig{
			Secret:    getEnv("CONFIRMATION_SECRET", defaultSecret),
			WindowMin: getEnvInt("CONFIRMATION_WINDOW_MIN", 60*24),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "1025"),
			From:     getEnv("EMAIL_FROM", "noreply@reviewhub.dev"),
		},
		Worker: WorkerConfig{
			InactivePurgeAfterHours: getEnvInt("INACTIVE_PURGE_AFTER_HOURS", 72),
			CleanupSchedule:         getEnv("CLEANUP_SCHEDULE", "@every 6h"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configuration that must never reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Token.Secret == defaultSecret {
			return fmt.Errorf("CONFIRMATION_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}
	if c.Token.WindowMin <= 0 {
		return fmt.Errorf("CONFIRMATION_WINDOW_MIN must be positive")
	}
	return nil
}

// JWTExpiry returns the access token TTL as a duration.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWT.ExpiryMin) * time.Minute
}

// TokenWindow returns the confirmation-code rotation window.
func (c *Config) TokenWindow() time.Duration {
	return time.Duration(c.Token.WindowMin) * time.Minute
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
