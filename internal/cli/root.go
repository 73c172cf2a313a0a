package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mannit-co/albayan/internal/config"
	"github.com/mannit-co/albayan/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	debug      bool
	configPath string
	source     string
	cacheTTL   string
	noCache    bool
}

// NewRootCmd creates the root Cobra command for the albayan CLI.
// It loads configuration, wires logging and tracing, and registers the
// list, dashboard, config and cache commands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     rootFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:           "albayan",
		Short:         "Browse assessment candidates, tests and questions",
		Long:          "albayan: paginated views of an assessment platform's candidates, tests and question bank",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if cfg == nil {
				return err
			}
			// config subcommands run against an invalid file so they can report or replace it.
			if err != nil && !isConfigCmd(cmd) {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, flags.debug)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"path to the config file (default $ALBAYAN_CONFIG or ~/.albayan/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.source, "source", "",
		"read exported JSON files from this directory instead of the API")
	cmd.PersistentFlags().StringVar(&flags.cacheTTL, "cache-ttl", "",
		"cache TTL as seconds or a duration such as 10m (0 disables the cache)")
	cmd.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, "bypass the response cache")

	cmd.AddCommand(
		NewCandidatesCmd(),
		NewTestsCmd(),
		NewQuestionsCmd(),
		NewDashboardCmd(),
		newConfigCmd(),
		newCacheCmd(),
	)

	return cmd
}

// loadConfig reads the config file chain and applies flag overrides.
// Flags win over environment variables, which win over files. A config that
// loads but fails validation is returned together with the validation error.
func loadConfig(flags rootFlags) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{Path: flags.configPath})
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if flags.source != "" {
		cfg.Source = flags.source
	}
	if flags.cacheTTL != "" {
		if ttlErr := cfg.SetCacheTTL(flags.cacheTTL); ttlErr != nil {
			return nil, fmt.Errorf("--cache-ttl: %w", ttlErr)
		}
	}
	if flags.noCache {
		cfg.Cache.Enabled = false
	}
	if flags.debug {
		cfg.Logging.Level = "debug"
	}

	return cfg, cfg.Validate()
}

// isConfigCmd reports whether cmd is in the config command group.
func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" && c.HasParent() {
			return true
		}
	}
	return false
}

const rootCmdExample = `  # Browse candidates interactively
  albayan candidates

  # Second page of published tests as JSON
  albayan tests --filter status=published --page 2 --output json

  # Search the question bank, hardest first
  albayan questions --search graph --sort difficulty:desc

  # Read exported JSON files instead of the API
  albayan dashboard --source ./export

  # Initialize configuration
  albayan config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
