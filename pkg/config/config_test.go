package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-for-testing-minimum-32-chars"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_MinimalConfig(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "INFO"

blob:
  backend: memory

api:
  port: 8080
  jwt:
    secret: "`+testSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected API port 8080, got %d", cfg.API.Port)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %q", cfg.Database.Type)
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// A missing config file is not a read error. Defaults alone are not a
	// complete configuration though: the S3 bucket is unset, so validation
	// reports what is missing instead.
	path := filepath.Join(t.TempDir(), "nonexistent.yaml")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected validation error when loading without config file")
	}
	if strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected validation error, not a read error: %v", err)
	}
	if !strings.Contains(err.Error(), "bucket") {
		t.Errorf("Expected missing bucket error, got: %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("CUBBY_LOGGING_LEVEL", "DEBUG")

	path := writeConfig(t, `
logging:
  level: "INFO"

blob:
  backend: memory

api:
  jwt:
    secret: "`+testSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected env to override file, got level %q", cfg.Logging.Level)
	}
}

func TestLoad_DurationFromNumber(t *testing.T) {
	// Bare numbers in duration fields are interpreted as seconds.
	path := writeConfig(t, `
shutdown_timeout: 10

blob:
  backend: memory

api:
  read_timeout: "45s"
  jwt:
    secret: "`+testSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.ReadTimeout != 45*time.Second {
		t.Errorf("Expected 45s read timeout, got %v", cfg.API.ReadTimeout)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	path := writeConfig(t, `
blob:
  backend: memory
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for missing JWT secret")
	}
	if !strings.Contains(err.Error(), "jwt secret") {
		t.Errorf("Expected jwt secret error, got: %v", err)
	}
}

func TestLoad_MissingS3Bucket(t *testing.T) {
	path := writeConfig(t, `
blob:
  backend: s3

api:
  jwt:
    secret: "`+testSecret+`"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for missing S3 bucket")
	}
	if !strings.Contains(err.Error(), "bucket") {
		t.Errorf("Expected bucket error, got: %v", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "logging: [unclosed")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Blob.Backend = BlobBackendMemory
	cfg.API.JWT.Secret = testSecret
	cfg.API.Port = 9999

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.API.Port != 9999 {
		t.Errorf("Expected port 9999 after round trip, got %d", loaded.API.Port)
	}
	if loaded.Blob.Backend != BlobBackendMemory {
		t.Errorf("Expected memory backend after round trip, got %q", loaded.Blob.Backend)
	}
	if loaded.ShutdownTimeout != cfg.ShutdownTimeout {
		t.Errorf("Expected shutdown timeout %v after round trip, got %v",
			cfg.ShutdownTimeout, loaded.ShutdownTimeout)
	}
}
