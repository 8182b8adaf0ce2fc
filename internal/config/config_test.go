package config

import (
	"strings"
	"testing"

	"github.com/openfleet/drivers-api/pkg/token"
)

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "drivers",
			Database:  "main",
		},
		JWT: JWTConfig{
			Secret:              token.Key("0123456789abcdef0123456789abcdef"),
			Issuer:              "drivers-api",
			Audience:            "drivers-app",
			AccessValidityMins:  15,
			RefreshValidityDays: 7,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_ShortSecret(t *testing.T) {
	cfg := validBaseConfig()
	cfg.JWT.Secret = token.Key("short")

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for short JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("expected error to mention JWT_SECRET, got: %v", err)
	}
}

func TestConfig_Validate_ZeroAccessValidity(t *testing.T) {
	cfg := validBaseConfig()
	cfg.JWT.AccessValidityMins = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for zero JWT_ACCESS_VALIDITY_MINS")
	}
	if !strings.Contains(err.Error(), "JWT_ACCESS_VALIDITY_MINS") {
		t.Errorf("expected error to mention JWT_ACCESS_VALIDITY_MINS, got: %v", err)
	}
}

func TestConfig_Validate_NegativeRefreshValidity(t *testing.T) {
	cfg := validBaseConfig()
	cfg.JWT.RefreshValidityDays = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative JWT_REFRESH_VALIDITY_DAYS")
	}
	if !strings.Contains(err.Error(), "JWT_REFRESH_VALIDITY_DAYS") {
		t.Errorf("expected error to mention JWT_REFRESH_VALIDITY_DAYS, got: %v", err)
	}
}

func TestConfig_Validate_CollectsAllFailures(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.JWT.AccessValidityMins = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") || !strings.Contains(err.Error(), "JWT_ACCESS_VALIDITY_MINS") {
		t.Errorf("expected joined error with both failures, got: %v", err)
	}
}

func TestLoad_RejectsUnparsableValidity(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("JWT_ACCESS_VALIDITY_MINS", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("expected load error for unparsable JWT_ACCESS_VALIDITY_MINS")
	}
}

func TestLoad_RejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected load error when JWT_SECRET is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("JWT_ACCESS_VALIDITY_MINS", "")
	t.Setenv("JWT_REFRESH_VALIDITY_DAYS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.JWT.AccessValidityMins != 15 {
		t.Errorf("expected default access validity 15, got %d", cfg.JWT.AccessValidityMins)
	}
	if cfg.JWT.RefreshValidityDays != 7 {
		t.Errorf("expected default refresh validity 7, got %d", cfg.JWT.RefreshValidityDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got: %v", err)
	}
}
