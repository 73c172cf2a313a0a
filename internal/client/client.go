package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mannit-co/albayan/internal/engine/cache"
	"github.com/mannit-co/albayan/internal/logging"
)

// Defaults for Options.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "albayan-cli"

	// DefaultMaxResponseBytes caps a successful response body.
	DefaultMaxResponseBytes = 64 << 20

	maxErrorBodyBytes = 4096
)

var (
	// ErrNoBaseURL is returned by New when Options.BaseURL is empty.
	ErrNoBaseURL = errors.New("API base URL is not configured (set api.base_url or ALBAYAN_API_URL)")

	// ErrResponseTooLarge is returned when a response body exceeds the configured limit.
	ErrResponseTooLarge = errors.New("response body too large")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// IsUnauthorized reports whether the API rejected the credentials.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ResponseCache stores raw response bodies. *cache.FileStore implements it.
type ResponseCache interface {
	Get(key string) (*cache.Entry, error)
	Set(key, source string, data json.RawMessage) error
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client

	// MaxResponseBytes caps successful response bodies. 0 means
	// DefaultMaxResponseBytes.
	MaxResponseBytes int64

	// Cache, when non-nil, serves repeated GETs until their TTL expires.
	Cache ResponseCache
}

// Client is the assessment API client. Safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	token     string
	userAgent string
	http      *http.Client
	cache     ResponseCache
	maxBody   int64
}

// New validates opts and creates a Client.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, ErrNoBaseURL
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	maxBody := opts.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}

	return &Client{
		baseURL:   base,
		token:     opts.Token,
		userAgent: userAgent,
		http:      httpClient,
		cache:     opts.Cache,
		maxBody:   maxBody,
	}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")}).String()
}

// get fetches path and returns the body of a 2xx response, consulting the
// cache first when one is configured.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	log := logging.FromContext(ctx)
	target := c.endpoint(path)
	key := cache.RequestKey(http.MethodGet, target)

	if c.cache != nil {
		entry, err := c.cache.Get(key)
		switch {
		case err == nil:
			log.Debug().
				Ctx(ctx).
				Str("component", "client").
				Str("url", target).
				Msg("cache hit")
			return entry.Data, nil
		case errors.Is(err, cache.ErrCacheNotFound), errors.Is(err, cache.ErrCacheExpired),
			errors.Is(err, cache.ErrCacheDisabled):
		default:
			log.Warn().
				Ctx(ctx).
				Str("component", "client").
				Err(err).
				Msg("cache read failed, fetching from API")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Ctx(ctx).
		Str("component", "client").
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &APIError{
			Method:     http.MethodGet,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	// One byte past the limit tells a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", target, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrResponseTooLarge, target, c.maxBody)
	}

	if c.cache != nil && json.Valid(body) {
		if setErr := c.cache.Set(key, http.MethodGet+" "+target, body); setErr != nil &&
			!errors.Is(setErr, cache.ErrCacheDisabled) {
			log.Warn().
				Ctx(ctx).
				Str("component", "client").
				Err(setErr).
				Msg("failed to cache API response")
		}
	}
	return body, nil
}
