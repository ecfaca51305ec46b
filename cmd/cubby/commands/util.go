package commands

import (
	"fmt"

	"github.com/cubbyhole/cubby/internal/logger"
	"github.com/cubbyhole/cubby/pkg/config"
)

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	if err := logger.Init(cfg.Logging.LoggerConfig()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}
