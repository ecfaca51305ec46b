package config

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.Blob.Backend = BlobBackendMemory
	cfg.API.JWT.Secret = testSecret
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format text, got %q", cfg.Logging.Format)
	}
	if cfg.Blob.Backend != BlobBackendS3 {
		t.Errorf("Expected default blob backend s3, got %q", cfg.Blob.Backend)
	}
	if cfg.Metrics.Port != 9090 {
		t.Errorf("Expected default metrics port 9090, got %d", cfg.Metrics.Port)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if !cfg.API.IsEnabled() {
		t.Error("Expected API enabled by default")
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %q", cfg.Database.Type)
	}
}

func TestApplyDefaults_NormalizesLogLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "debug"
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level normalized to DEBUG, got %q", cfg.Logging.Level)
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validTestConfig()); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validTestConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := validTestConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidAPIPort(t *testing.T) {
	cfg := validTestConfig()
	cfg.API.Port = 70000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_InvalidBlobBackend(t *testing.T) {
	cfg := validTestConfig()
	cfg.Blob.Backend = "filesystem"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for unknown blob backend")
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	cfg := validTestConfig()
	cfg.API.JWT.Secret = "too-short"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for short JWT secret")
	}
	if !strings.Contains(err.Error(), "32") {
		t.Errorf("Expected secret length error, got: %v", err)
	}
}

func TestValidate_JWTSecretFromEnv(t *testing.T) {
	t.Setenv("CUBBY_API_JWT_SECRET", testSecret)

	cfg := validTestConfig()
	cfg.API.JWT.Secret = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected env secret to satisfy validation, got: %v", err)
	}
}

func TestValidate_APIDisabledSkipsJWTCheck(t *testing.T) {
	cfg := validTestConfig()
	disabled := false
	cfg.API.Enabled = &disabled
	cfg.API.JWT.Secret = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected disabled API to skip JWT check, got: %v", err)
	}
}
