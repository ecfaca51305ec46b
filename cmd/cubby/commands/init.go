package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubbyhole/cubby/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample Cubby configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/cubby/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  cubby init

  # Initialize with custom path
  cubby init --config /etc/cubby/config.yaml

  # Force overwrite existing config
  cubby init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()

	var err error
	if configPath != "" {
		err = config.InitConfigToPath(configPath, initForce)
	} else {
		configPath, err = config.InitConfig(initForce)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to point at your S3 bucket")
	fmt.Println("  2. Set the JWT secret: export CUBBY_API_JWT_SECRET=<random 32+ chars>")
	fmt.Println("  3. Start the server with: cubby start")
	return nil
}
