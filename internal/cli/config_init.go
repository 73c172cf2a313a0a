package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mannit-co/albayan/internal/config"
)

// NewConfigInitCmd creates the config init command, which writes a config
// file holding the default values.
func NewConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
~/.albayan/config.yaml ($ALBAYAN_HOME/config.yaml when set), or at --path.`,
		Example: `  # Create the default configuration
  albayan config init

  # Create configuration, overwriting existing
  albayan config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := config.ResolveConfigPath(path)
			if err != nil {
				return err
			}

			cfg := config.NewDefault()
			if saveErr := cfg.Save(target, force); saveErr != nil {
				if errors.Is(saveErr, config.ErrConfigExists) {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				return fmt.Errorf("failed to save configuration: %w", saveErr)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", cfg.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&path, "path", "", "write the file here instead of the default location")

	return cmd
}
