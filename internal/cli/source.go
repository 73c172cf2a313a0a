package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mannit-co/albayan/internal/client"
	"github.com/mannit-co/albayan/internal/config"
	"github.com/mannit-co/albayan/internal/engine/cache"
	"github.com/mannit-co/albayan/internal/logging"
)

// ErrNoSource is returned when neither --source nor api.base_url is set.
var ErrNoSource = errors.New("no data source: pass --source DIR or set api.base_url (ALBAYAN_API_URL)")

// openSource returns the data source selected by cfg: an export directory
// when Source is set, the API otherwise.
func openSource(ctx context.Context, cfg *config.Config) (client.Source, error) {
	log := logging.FromContext(ctx)

	if cfg.Source != "" {
		log.Debug().Ctx(ctx).Str("source", cfg.Source).Msg("reading exported files")
		return client.NewFileSource(cfg.Source)
	}
	if cfg.API.BaseURL == "" {
		return nil, ErrNoSource
	}

	opts := client.Options{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}

	store, err := openCache(cfg)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("response cache unavailable, continuing without it")
	} else if store.IsEnabled() {
		opts.Cache = store
	}

	c, err := client.New(opts)
	if err != nil {
		return nil, err
	}

	if v, versionErr := c.CheckServerVersion(ctx); versionErr != nil {
		if errors.Is(versionErr, client.ErrIncompatibleServer) {
			return nil, versionErr
		}
		log.Debug().Ctx(ctx).Err(versionErr).Msg("server version check skipped")
	} else if v != nil {
		log.Debug().Ctx(ctx).Str("server_version", v.String()).Msg("server version ok")
	}

	return c, nil
}

// openCache creates the response cache described by cfg.
func openCache(cfg *config.Config) (*cache.FileStore, error) {
	opts, err := cfg.CacheOptions()
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	return cache.NewFileStore(opts)
}
