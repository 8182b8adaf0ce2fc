package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openfleet/drivers-api/pkg/token"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds SurrealDB connection settings.
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// JWTConfig holds token issuance settings. Secret is key material and
// must never be logged.
type JWTConfig struct {
	Secret              token.Key
	Issuer              string
	Audience            string
	AccessValidityMins  int
	RefreshValidityDays int
}

// RedisConfig holds the optional login-throttle backend. An empty Addr
// disables throttling.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AccessValidity returns the access-token lifetime as a duration.
func (j JWTConfig) AccessValidity() time.Duration {
	return time.Duration(j.AccessValidityMins) * time.Minute
}

// RefreshValidity returns the refresh-token lifetime as a duration.
func (j JWTConfig) RefreshValidity() time.Duration {
	return time.Duration(j.RefreshValidityDays) * 24 * time.Hour
}

// Load reads configuration from environment variables. Numeric token
// lifetimes that are present but unparsable are a load error, never a
// silent zero.
func Load() (*Config, error) {
	accessMins, err := getIntEnv("JWT_ACCESS_VALIDITY_MINS", 15)
	if err != nil {
		return nil, err
	}
	refreshDays, err := getIntEnv("JWT_REFRESH_VALIDITY_DAYS", 7)
	if err != nil {
		return nil, err
	}
	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	secret, err := token.KeyFromEnv("JWT_SECRET")
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "drivers"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		JWT: JWTConfig{
			Secret:              secret,
			Issuer:              getEnv("JWT_ISSUER", "drivers-api"),
			Audience:            getEnv("JWT_AUDIENCE", "drivers-app"),
			AccessValidityMins:  accessMins,
			RefreshValidityDays: refreshDays,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and
// valid. It returns an error describing all validation failures, or nil.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	if len(c.JWT.Secret) < token.MinKeyLen {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", token.MinKeyLen))
	}
	if c.JWT.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER is required"))
	}
	if c.JWT.Audience == "" {
		errs = append(errs, errors.New("JWT_AUDIENCE is required"))
	}
	if c.JWT.AccessValidityMins <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_VALIDITY_MINS must be positive"))
	}
	if c.JWT.RefreshValidityDays <= 0 {
		errs = append(errs, errors.New("JWT_REFRESH_VALIDITY_DAYS must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables.

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return i, nil
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
