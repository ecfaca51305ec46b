// Package config handles loading, validating and persisting the Cubby
// configuration.
//
// Configuration is resolved in layers: defaults, then a YAML config file,
// then CUBBY_-prefixed environment variables. Nested keys map to
// environment variables by joining path segments with underscores, so
// api.jwt.secret becomes CUBBY_API_JWT_SECRET.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cubbyhole/cubby/internal/logger"
	"github.com/cubbyhole/cubby/pkg/api"
	s3blob "github.com/cubbyhole/cubby/pkg/blob/s3"
	"github.com/cubbyhole/cubby/pkg/store"
)

// BlobBackend selects the blob store implementation.
type BlobBackend string

const (
	// BlobBackendS3 stores file bytes in an S3-compatible object store.
	BlobBackendS3 BlobBackend = "s3"

	// BlobBackendMemory keeps file bytes in process memory. Contents are
	// lost on restart; intended for development and tests only.
	BlobBackendMemory BlobBackend = "memory"
)

// BlobConfig selects and configures the blob storage backend.
type BlobConfig struct {
	// Backend is the blob store implementation: "s3" or "memory".
	// Default: s3
	Backend BlobBackend `mapstructure:"backend" validate:"omitempty,oneof=s3 memory" yaml:"backend"`

	// S3 configures the S3 backend. Ignored when Backend is "memory".
	S3 s3blob.Config `mapstructure:"s3" yaml:"s3"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the HTTP port for the /metrics endpoint.
	// Default: 9090
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// LoggingConfig configures the process-wide logger.
type LoggingConfig struct {
	// Level is the minimum level to emit: DEBUG, INFO, WARN or ERROR.
	// Default: INFO
	Level string `mapstructure:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR" yaml:"level"`

	// Format is the output format: text or json.
	// Default: text
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json" yaml:"format"`

	// Output is where log lines go: stdout, stderr, or a file path.
	// Default: stdout
	Output string `mapstructure:"output" yaml:"output"`
}

// LoggerConfig converts to the logger package's config type.
func (c *LoggingConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.Level,
		Format: c.Format,
		Output: c.Output,
	}
}

// Config is the root configuration for the Cubby server.
type Config struct {
	// Logging configures the process-wide logger.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	// Default: 30s
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Database configures the metadata store.
	Database store.Config `mapstructure:"database" yaml:"database"`

	// Blob configures the blob storage backend.
	Blob BlobConfig `mapstructure:"blob" yaml:"blob"`

	// API configures the HTTP API server.
	API api.APIConfig `mapstructure:"api" yaml:"api"`

	// Metrics configures the Prometheus metrics endpoint.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// Load reads configuration from the given path (or the default location
// when path is empty), applies environment overrides and defaults, and
// validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load with command-friendly error messages: a missing
// config file becomes instructions for creating one. Intended for
// command entry points.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  cubby init\n\n"+
				"Or specify a custom config file:\n"+
				"  cubby <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s\n\n"+
			"Please create the configuration file:\n"+
			"  cubby init --config %s",
			configPath, configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration to the given path as YAML,
// creating parent directories as needed. The file is written with 0600
// permissions since it may contain credentials.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("CUBBY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.AddConfigPath(getConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	// A missing config file is fine: defaults plus environment variables
	// are a complete configuration.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || os.IsNotExist(err) {
		return nil
	}

	return fmt.Errorf("failed to read config file: %w", err)
}

func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		durationDecodeHook(),
	)
}

// durationDecodeHook accepts bare numbers for time.Duration fields.
// Small numbers are interpreted as seconds, so "shutdown_timeout: 30"
// means 30s rather than 30ns. Values of a second or more in nanoseconds
// are taken as nanoseconds, which is what yaml.Marshal emits for
// time.Duration, so files written by SaveConfig read back correctly.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch value := data.(type) {
		case int:
			return intToDuration(int64(value)), nil
		case int64:
			return intToDuration(value), nil
		case float64:
			return time.Duration(value * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}

func intToDuration(v int64) time.Duration {
	if v >= int64(time.Second) {
		return time.Duration(v)
	}
	return time.Duration(v) * time.Second
}

// getConfigDir returns the directory where the config file lives:
// $XDG_CONFIG_HOME/cubby, falling back to ~/.config/cubby, falling back
// to the current directory.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cubby")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "cubby")
}

// GetConfigDir returns the directory where Cubby stores its config file.
func GetConfigDir() string {
	return getConfigDir()
}

// GetDefaultConfigPath returns the default config file location.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the
// default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}
