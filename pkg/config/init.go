package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const sampleConfigHeader = `# Cubby Configuration File
#
# Values can be overridden with CUBBY_-prefixed environment variables,
# joining nested keys with underscores (api.jwt.secret becomes
# CUBBY_API_JWT_SECRET).
#
# The JWT secret is deliberately left out of this file. Set it via the
# CUBBY_API_JWT_SECRET environment variable, or add it under api.jwt.secret
# if you prefer to keep it here.

`

// InitConfig writes a sample config file at the default location and
// returns its path. Fails if the file already exists unless force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath writes a sample config file at the given path.
// Fails if the file already exists unless force is set.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(GetDefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal sample config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(sampleConfigHeader), data...), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
