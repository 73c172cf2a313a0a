package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI        = "api"
	keyPagination = "pagination"
	keyOutput     = "output"
	keyCache      = "cache"
	keyLogging    = "logging"
	keySource     = "source"
)

// ShallowMergeYAML loads a project overlay (normally ./.albayan.yaml) and
// merges it onto target. Each top-level section present in the overlay is
// decoded onto the target's current section, so fields the overlay omits
// keep their values. Unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = mergeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

func mergeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyAPI:
		return node.Decode(&target.API)
	case keyPagination:
		return node.Decode(&target.Pagination)
	case keyOutput:
		return node.Decode(&target.Output)
	case keyCache:
		return node.Decode(&target.Cache)
	case keyLogging:
		return node.Decode(&target.Logging)
	case keySource:
		return node.Decode(&target.Source)
	default:
		return nil
	}
}
