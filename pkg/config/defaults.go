package config

import (
	"strings"
	"time"
)

// ApplyDefaults fills in zero values across all config sections.
// Called after unmarshalling so that an empty or partial config file
// still yields a runnable configuration.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyBlobDefaults(&cfg.Blob)
	applyMetricsDefaults(&cfg.Metrics)

	cfg.Database.ApplyDefaults()
	cfg.API.ApplyDefaults()

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}

	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyBlobDefaults(cfg *BlobConfig) {
	if cfg.Backend == "" {
		cfg.Backend = BlobBackendS3
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port <= 0 {
		cfg.Port = 9090
	}
}

// GetDefaultConfig returns a fully populated configuration suitable for
// writing as a starter config file.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
