package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/mannit-co/albayan/internal/logging"
)

// MinServerVersion is the oldest API release whose list endpoints this
// client understands.
const MinServerVersion = "1.2.0"

// Version errors.
var (
	ErrIncompatibleServer = errors.New("server API version is not supported")
	ErrNoServerVersion    = errors.New("server did not report a version")
)

type versionResponse struct {
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion"`
	Data       *struct {
		Version string `json:"version"`
	} `json:"data"`
}

func (v versionResponse) value() string {
	switch {
	case v.Version != "":
		return v.Version
	case v.APIVersion != "":
		return v.APIVersion
	case v.Data != nil:
		return v.Data.Version
	default:
		return ""
	}
}

// CheckServerVersion fetches /version and returns the server version.
// It returns ErrIncompatibleServer when the server is older than
// MinServerVersion. Servers without a /version endpoint (404) are assumed
// compatible and yield a nil version.
func (c *Client) CheckServerVersion(ctx context.Context) (*semver.Version, error) {
	log := logging.FromContext(ctx)

	body, err := c.get(ctx, PathVersion)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			log.Debug().
				Ctx(ctx).
				Str("component", "client").
				Msg("server has no version endpoint, skipping compatibility check")
			return nil, nil //nolint:nilnil // no version to report is not an error
		}
		return nil, err
	}

	var resp versionResponse
	if unmarshalErr := json.Unmarshal(body, &resp); unmarshalErr != nil {
		return nil, fmt.Errorf("decoding version response: %w", unmarshalErr)
	}
	raw := strings.TrimSpace(resp.value())
	if raw == "" {
		return nil, ErrNoServerVersion
	}

	return CompareServerVersion(raw)
}

// CompareServerVersion parses raw and checks it against MinServerVersion.
func CompareServerVersion(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("server version %q has invalid semver format: %w", raw, err)
	}
	minVersion := semver.MustParse(MinServerVersion)
	if v.LessThan(minVersion) {
		return v, fmt.Errorf("%w: server is %s, need >= %s", ErrIncompatibleServer, v, minVersion)
	}
	return v, nil
}
