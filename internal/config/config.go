package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mannit-co/albayan/internal/engine/cache"
)

// Defaults applied before the config file is read.
const (
	DefaultCandidatesPageSize = 10
	DefaultTestsPageSize      = 5
	DefaultQuestionsPageSize  = 10
	DefaultTimeoutSeconds     = 30
	DefaultOutputFormat       = "table"
	DefaultCacheMaxSizeMB     = 50
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "console"

	configFileName  = "config.yaml"
	overlayFileName = ".albayan.yaml"
	dirPerm         = 0o700
	filePerm        = 0o600
	bytesPerMB      = 1024 * 1024
)

// ErrConfigExists is returned by Save when the file exists and overwrite is false.
var ErrConfigExists = errors.New("configuration file already exists")

// Config is the albayan configuration file.
type Config struct {
	API        APIConfig        `yaml:"api"              json:"api"`
	Pagination PaginationConfig `yaml:"pagination"       json:"pagination"`
	Output     OutputConfig     `yaml:"output"           json:"output"`
	Cache      CacheConfig      `yaml:"cache"            json:"cache"`
	Logging    LoggingConfig    `yaml:"logging"          json:"logging"`

	// Source is a directory of exported JSON files used instead of the API.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`

	path string
}

// APIConfig locates the assessment API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url,omitempty" json:"base_url,omitempty" validate:"omitempty,url"`
	Token          string `yaml:"token,omitempty"    json:"-"`
	TimeoutSeconds int    `yaml:"timeout_seconds"    json:"timeout_seconds"    validate:"gt=0,lte=600"`
}

// PaginationConfig holds the fixed page size of each screen.
type PaginationConfig struct {
	CandidatesPageSize int `yaml:"candidates_page_size" json:"candidates_page_size" validate:"gt=0,lte=1000"`
	TestsPageSize      int `yaml:"tests_page_size"      json:"tests_page_size"      validate:"gt=0,lte=1000"`
	QuestionsPageSize  int `yaml:"questions_page_size"  json:"questions_page_size"  validate:"gt=0,lte=1000"`
}

// OutputConfig controls list rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format" validate:"oneof=table json yaml ndjson"`
}

// CacheConfig defines caching behavior for API responses.
type CacheConfig struct {
	// Enabled controls whether caching is enabled (default: true).
	Enabled bool `yaml:"enabled" json:"enabled"`

	// TTLSeconds is the time-to-live for cached entries (default: 3600). 0 disables caching.
	TTLSeconds int `yaml:"ttl_seconds" json:"ttl_seconds" validate:"gte=0,lte=604800"`

	// Directory is the cache directory path (default: ~/.albayan/cache).
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"`

	// MaxSizeMB caps the cache size (0 = unlimited).
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb" validate:"gte=0"`
}

// NewDefault returns a Config holding only defaults.
func NewDefault() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Pagination: PaginationConfig{
			CandidatesPageSize: DefaultCandidatesPageSize,
			TestsPageSize:      DefaultTestsPageSize,
			QuestionsPageSize:  DefaultQuestionsPageSize,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
			MaxSizeMB:  DefaultCacheMaxSizeMB,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// LoadOptions selects the files Load reads. Empty fields use the defaults:
// the resolved config path, ./.albayan.yaml and ./.env.
type LoadOptions struct {
	Path        string
	OverlayPath string
	DotEnvPath  string
}

// Load builds a Config from defaults, the config file, the project overlay,
// .env and ALBAYAN_* environment variables, in that order. Missing files are
// skipped; malformed ones are errors.
func Load(opts LoadOptions) (*Config, error) {
	path, err := ResolveConfigPath(opts.Path)
	if err != nil {
		return nil, err
	}

	cfg := NewDefault()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, unmarshalErr)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	overlay := opts.OverlayPath
	if overlay == "" {
		overlay = overlayFileName
	}
	if _, statErr := os.Stat(overlay); statErr == nil {
		if mergeErr := ShallowMergeYAML(cfg, overlay); mergeErr != nil {
			return nil, mergeErr
		}
	}

	if dotEnvErr := LoadDotEnv(opts.DotEnvPath); dotEnvErr != nil {
		return nil, dotEnvErr
	}
	if envErr := cfg.ApplyEnv(); envErr != nil {
		return nil, envErr
	}
	return cfg, nil
}

// New loads the configuration from the default locations, falling back to
// defaults when anything fails.
func New() *Config {
	cfg, err := Load(LoadOptions{})
	if err != nil {
		return NewDefault()
	}
	return cfg
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config as YAML to path, or to the load path when empty.
func (c *Config) Save(path string, overwrite bool) error {
	if path == "" {
		path = c.path
	}
	if path == "" {
		return errors.New("no configuration path to save to")
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if writeErr := os.WriteFile(path, data, filePerm); writeErr != nil {
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	c.path = path
	return nil
}

// PageSizeFor returns the configured page size for a screen name
// ("candidates", "tests", "questions"), or 0 for unknown screens.
func (c *Config) PageSizeFor(screen string) int {
	switch screen {
	case "candidates":
		return c.Pagination.CandidatesPageSize
	case "tests":
		return c.Pagination.TestsPageSize
	case "questions":
		return c.Pagination.QuestionsPageSize
	default:
		return 0
	}
}

// CacheOptions converts the cache section into store options. TTL 0
// disables the store.
func (c *Config) CacheOptions() (cache.Options, error) {
	dir := c.Cache.Directory
	if dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return cache.Options{}, err
		}
		dir = filepath.Join(configDir, "cache")
	}
	return cache.Options{
		Directory:    dir,
		Enabled:      c.Cache.Enabled && c.Cache.TTLSeconds > 0,
		TTL:          c.CacheTTL(),
		MaxSizeBytes: int64(c.Cache.MaxSizeMB) * bytesPerMB,
	}, nil
}
