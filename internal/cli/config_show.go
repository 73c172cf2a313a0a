package cli

import (
	"github.com/spf13/cobra"

	"github.com/mannit-co/albayan/internal/config"
)

const maskedToken = "********"

// NewConfigShowCmd creates the config show command. The API token is masked.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  # Show the merged configuration
  albayan config show

  # As JSON
  albayan config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cfg.API.Token != "" {
				cfg.API.Token = maskedToken
			}
			if output == OutputJSON {
				return renderJSON(cmd.OutOrStdout(), cfg)
			}
			return renderYAML(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&output, "output", OutputYAML, "Output format: yaml or json")
	return cmd
}
