package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the configuration for invalid values. Struct tags
// cover range and enum checks; cross-field rules are checked here.
func Validate(cfg *Config) error {
	if err := getValidator().Struct(cfg); err != nil {
		return err
	}

	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if cfg.Blob.Backend == BlobBackendS3 && cfg.Blob.S3.Bucket == "" {
		return fmt.Errorf("blob: s3 bucket is required")
	}

	if cfg.API.IsEnabled() {
		secret := cfg.API.GetJWTSecret()
		if secret == "" {
			return fmt.Errorf("api: jwt secret is required (set api.jwt.secret or CUBBY_API_JWT_SECRET)")
		}
		if len(secret) < 32 {
			return fmt.Errorf("api: jwt secret must be at least 32 characters")
		}
	}

	return nil
}
