package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mannit-co/albayan/internal/logging"
)

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `yaml:"level" json:"level"`

	// Format is console, text or json.
	Format string `yaml:"format" json:"format"`

	// File, when set, receives log output instead of stderr.
	File string `yaml:"file,omitempty" json:"file,omitempty"`

	// Caller adds file:line to each event.
	Caller bool `yaml:"caller,omitempty" json:"caller,omitempty"`
}

//nolint:gochecknoglobals // accepted values
var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{logging.FormatConsole, logging.FormatText, logging.FormatJSON}
)

// Validate checks Level and Format.
func (lc LoggingConfig) Validate() error {
	var errs []error
	if !slices.Contains(validLogLevels, strings.ToLower(lc.Level)) {
		errs = append(errs, fmt.Errorf("level %q must be one of %s", lc.Level, strings.Join(validLogLevels, ", ")))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(lc.Format)) {
		errs = append(errs, fmt.Errorf("format %q must be one of %s", lc.Format, strings.Join(validLogFormats, ", ")))
	}
	return errors.Join(errs...)
}

// ToLoggingConfig converts config.LoggingConfig to logging.Config.
// A non-empty File selects file output; otherwise stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: strings.ToLower(lc.Format),
		Output: output,
		File:   lc.File,
		Caller: lc.Caller,
	}
}

// GetLoggingConfig returns a copy of the global Logging settings. Flag
// overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	cfg := GetGlobalConfig()
	return cfg.Logging
}

// EnsureLogDir ensures the directory of the configured log file exists.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(cfg.Logging.File)
	if err := os.MkdirAll(logDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
