package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mannit-co/albayan/internal/config"
)

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "single field in section",
			overlay: "output:\n  default_format: json\n",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "json", cfg.Output.DefaultFormat)
				assert.Equal(t, 5, cfg.Pagination.TestsPageSize)
			},
		},
		{
			name:    "partial section keeps siblings",
			overlay: "cache:\n  ttl_seconds: 60\n",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 60, cfg.Cache.TTLSeconds)
				assert.True(t, cfg.Cache.Enabled)
				assert.Equal(t, config.DefaultCacheMaxSizeMB, cfg.Cache.MaxSizeMB)
			},
		},
		{
			name:    "unknown keys ignored",
			overlay: "plugins:\n  foo: bar\nsource: /data\n",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "/data", cfg.Source)
			},
		},
		{
			name:    "comment only",
			overlay: "# nothing here\n",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.NewDefault().Pagination, cfg.Pagination)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefault()
			require.NoError(t, config.ShallowMergeYAML(cfg, writeOverlay(t, tt.overlay)))
			tt.check(t, cfg)
		})
	}
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "x.yaml"))
	require.Error(t, config.ShallowMergeYAML(config.NewDefault(), filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, config.ShallowMergeYAML(config.NewDefault(), writeOverlay(t, "pagination: [1, 2")))
	require.Error(t, config.ShallowMergeYAML(config.NewDefault(), writeOverlay(t, "pagination:\n  tests_page_size: many\n")))
}
