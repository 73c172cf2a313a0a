package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mannit-co/albayan/internal/client"
	"github.com/mannit-co/albayan/internal/config"
	"github.com/mannit-co/albayan/internal/engine"
	"github.com/mannit-co/albayan/internal/logging"
	"github.com/mannit-co/albayan/internal/tui"
)

// NewDashboardCmd creates the "dashboard" command: counts for all three
// collections, fetched concurrently.
func NewDashboardCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize candidates, tests and questions",
		Example: `  # Overview from the API
  albayan dashboard

  # Overview of an export as JSON
  albayan dashboard --source ./export --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			if !slices.Contains([]string{OutputTable, OutputJSON, OutputYAML}, output) {
				return fmt.Errorf("invalid --output %q: use table, json, or yaml", output)
			}

			src, err := openSource(ctx, config.GetGlobalConfig())
			if err != nil {
				return err
			}

			all, err := client.FetchAll(ctx, src)
			if err != nil {
				return err
			}
			summary := engine.Summarize(all.Candidates, all.Tests, all.Questions)

			log.Debug().Ctx(ctx).
				Int("candidates", summary.Candidates).
				Int("tests", summary.Tests).
				Int("questions", summary.Questions).
				Msg("dashboard summarized")

			switch output {
			case OutputJSON:
				return renderJSON(cmd.OutOrStdout(), summary)
			case OutputYAML:
				return renderYAML(cmd.OutOrStdout(), summary)
			default:
				_, err = fmt.Fprint(cmd.OutOrStdout(), tui.RenderDashboard(summary, tui.TerminalWidth()))
				return err
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", OutputTable, "Output format: table, json, or yaml")
	return cmd
}
