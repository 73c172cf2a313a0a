package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mannit-co/albayan/internal/engine/cache"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome      = "ALBAYAN_HOME"
	EnvConfig    = "ALBAYAN_CONFIG"
	EnvAPIURL    = "ALBAYAN_API_URL"
	EnvAPIToken  = "ALBAYAN_API_TOKEN"
	EnvSource    = "ALBAYAN_SOURCE"
	EnvOutput    = "ALBAYAN_OUTPUT"
	EnvLogLevel  = "ALBAYAN_LOG_LEVEL"
	EnvLogFormat = "ALBAYAN_LOG_FORMAT"
	EnvLogFile   = "ALBAYAN_LOG_FILE"
	EnvCacheTTL  = "ALBAYAN_CACHE_TTL"
	EnvNoCache   = "ALBAYAN_NO_CACHE"

	defaultDotEnvFile = ".env"
)

// LoadDotEnv loads KEY=value pairs from path (default ./.env) into the
// process environment. Variables already set win. A missing file is fine.
func LoadDotEnv(path string) error {
	if path == "" {
		path = defaultDotEnvFile
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from ALBAYAN_* environment variables.
func (c *Config) ApplyEnv() error {
	setString := func(env string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	setString(EnvAPIURL, &c.API.BaseURL)
	setString(EnvAPIToken, &c.API.Token)
	setString(EnvSource, &c.Source)
	setString(EnvOutput, &c.Output.DefaultFormat)
	setString(EnvLogLevel, &c.Logging.Level)
	setString(EnvLogFormat, &c.Logging.Format)
	setString(EnvLogFile, &c.Logging.File)

	if v := os.Getenv(EnvCacheTTL); v != "" {
		if err := c.SetCacheTTL(v); err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
	}
	if v := os.Getenv(EnvNoCache); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvNoCache, v)
		}
		if disabled {
			c.Cache.Enabled = false
		}
	}
	return nil
}

// SetCacheTTL parses s as seconds or a duration and stores it.
func (c *Config) SetCacheTTL(s string) error {
	ttl, err := cache.ParseTTL(s)
	if err != nil {
		return err
	}
	c.Cache.TTLSeconds = int(ttl / time.Second)
	return nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
