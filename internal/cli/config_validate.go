package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mannit-co/albayan/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads the configuration (file, .albayan.yaml overlay, .env and ALBAYAN_*
variables) and checks every field: API URL, timeouts, page sizes, output
format, cache TTL and logging settings.`,
		Example: `  # Validate current configuration
  albayan config validate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The root command lets config commands through an invalid file.
			cfg := config.GetGlobalConfig()
			if err := cfg.Validate(); err != nil {
				var verr *config.ValidationError
				if errors.As(err, &verr) {
					for _, field := range slices.Sorted(maps.Keys(verr.Fields)) {
						cmd.PrintErrf("  %s: %s\n", field, verr.Fields[field])
					}
				}
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			cmd.Printf("Configuration is valid\n")
			if cfg.Path() != "" {
				cmd.Printf("Configuration file: %s\n", cfg.Path())
			}
			return nil
		},
	}
}
