package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cubbyhole/cubby/internal/logger"
	"github.com/cubbyhole/cubby/pkg/api"
	"github.com/cubbyhole/cubby/pkg/api/auth"
	"github.com/cubbyhole/cubby/pkg/blob"
	"github.com/cubbyhole/cubby/pkg/blob/memory"
	s3blob "github.com/cubbyhole/cubby/pkg/blob/s3"
	"github.com/cubbyhole/cubby/pkg/config"
	"github.com/cubbyhole/cubby/pkg/drive"
	"github.com/cubbyhole/cubby/pkg/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Cubby server",
	Long: `Start the Cubby server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/cubby/config.yaml.

Examples:
  # Start with default config
  cubby start

  # Start with custom config file
  cubby start --config /etc/cubby/config.yaml

  # Start with environment variable overrides
  CUBBY_LOGGING_LEVEL=DEBUG cubby start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if !cfg.API.IsEnabled() {
		return fmt.Errorf("api.enabled is false: the server has nothing to serve")
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Cubby starting", "version", Version)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)

	// Metrics must come up before any metric-emitting component.
	metricsResult := config.InitializeMetrics(cfg)

	metaStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize metadata store: %w", err)
	}
	defer func() {
		if err := metaStore.Close(); err != nil {
			logger.Error("Metadata store close error", "error", err)
		}
	}()
	logger.Info("Metadata store ready", "type", cfg.Database.Type)

	blobs, err := newBlobStore(ctx, cfg, metricsResult)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	logger.Info("Blob store ready", "backend", cfg.Blob.Backend)

	folders := drive.NewFolderService(metaStore)
	files := drive.NewFileService(metaStore, blobs)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:               cfg.API.GetJWTSecret(),
		Issuer:               cfg.API.JWT.Issuer,
		AccessTokenDuration:  cfg.API.JWT.AccessTokenDuration,
		RefreshTokenDuration: cfg.API.JWT.RefreshTokenDuration,
	})
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	apiServer := api.NewServer(cfg.API, api.RouterDeps{
		Store:       metaStore,
		Blobs:       blobs,
		Folders:     folders,
		Files:       files,
		JWTService:  jwtService,
		HTTPMetrics: metricsResult.HTTPMetrics,
	})

	if metricsResult.Server != nil {
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
		go func() {
			if err := metricsResult.Server.Start(); err != nil {
				logger.Error("Metrics server error", "error", err)
			}
		}()
	} else {
		logger.Info("Metrics collection disabled")
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := apiServer.Stop(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		if metricsResult.Server != nil {
			if err := metricsResult.Server.Stop(shutdownCtx); err != nil {
				logger.Error("Metrics server shutdown error", "error", err)
			}
		}
		cancel()
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// newBlobStore builds the configured blob backend.
func newBlobStore(ctx context.Context, cfg *config.Config, m config.MetricsResult) (blob.Store, error) {
	switch cfg.Blob.Backend {
	case config.BlobBackendMemory:
		logger.Warn("Using in-memory blob store, file contents are lost on restart")
		return memory.New(), nil
	case config.BlobBackendS3:
		return s3blob.NewFromConfig(ctx, cfg.Blob.S3, m.BlobMetrics)
	default:
		return nil, fmt.Errorf("unsupported blob backend: %s", cfg.Blob.Backend)
	}
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
