package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// RequestKey derives a cache key from an HTTP method and URL.
// Query parameters are sorted so equivalent URLs share a key.
func RequestKey(method, rawURL string) string {
	normalized := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		u.RawQuery = u.Query().Encode()
		u.Fragment = ""
		u.Host = strings.ToLower(u.Host)
		u.Scheme = strings.ToLower(u.Scheme)
		normalized = u.String()
	}
	return Key(strings.ToUpper(strings.TrimSpace(method)), normalized)
}

// Key hashes parts into a hex SHA256 key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
