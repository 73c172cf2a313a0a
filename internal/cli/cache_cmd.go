package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mannit-co/albayan/internal/config"
	"github.com/mannit-co/albayan/internal/engine/cache"
	"github.com/mannit-co/albayan/internal/logging"
)

const bytesPerKB = 1024

// newCacheCmd creates the cache command group for the API response cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(newCacheStatusCmd(), newCacheClearCmd(), newCachePruneCmd())
	return cmd
}

// enabledCache opens the configured store, or explains why it is off.
func enabledCache(cmd *cobra.Command) (*cache.FileStore, bool, error) {
	store, err := openCache(config.GetGlobalConfig())
	if err != nil {
		return nil, false, err
	}
	if !store.IsEnabled() {
		cmd.Printf("Cache is disabled (cache.enabled=false or TTL 0)\n")
		return store, false, nil
	}
	return store, true, nil
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cache location, TTL, entry count and size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, ok, err := enabledCache(cmd)
			if err != nil || !ok {
				return err
			}
			count, err := store.Count()
			if err != nil {
				return err
			}
			size, err := store.Size()
			if err != nil {
				return err
			}
			cmd.Printf("Directory: %s\n", store.Directory())
			cmd.Printf("TTL:       %s\n", cache.FormatDuration(store.TTL()))
			cmd.Printf("Entries:   %d\n", count)
			cmd.Printf("Size:      %s\n", formatBytes(size))
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, ok, err := enabledCache(cmd)
			if err != nil || !ok {
				return err
			}
			if clearErr := store.Clear(); clearErr != nil {
				return fmt.Errorf("clearing cache: %w", clearErr)
			}
			logging.FromContext(cmd.Context()).Info().Ctx(cmd.Context()).
				Str("directory", store.Directory()).Msg("cache cleared")
			cmd.Printf("Cache cleared\n")
			return nil
		},
	}
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cached responses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, ok, err := enabledCache(cmd)
			if err != nil || !ok {
				return err
			}
			start := time.Now()
			removed, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			logging.FromContext(cmd.Context()).Debug().Ctx(cmd.Context()).
				Int("removed", removed).Dur("elapsed", time.Since(start)).Msg("cache pruned")
			cmd.Printf("Removed %d expired entries\n", removed)
			return nil
		},
	}
}

// formatBytes renders n as B, KB or MB.
func formatBytes(n int64) string {
	switch {
	case n < bytesPerKB:
		return fmt.Sprintf("%d B", n)
	case n < bytesPerKB*bytesPerKB:
		return fmt.Sprintf("%.1f KB", float64(n)/bytesPerKB)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(bytesPerKB*bytesPerKB))
	}
}
