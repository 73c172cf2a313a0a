// Package cache provides a file-based TTL cache for list payloads fetched from
// the assessment API.
//
// Each entry is a JSON file in the cache directory (default
// ~/.albayan/cache/) holding the raw response body plus creation and expiry
// timestamps. Key features:
//   - SHA256 keys derived from the request method and URL
//   - Atomic writes (temp file + rename)
//   - Expired entries are removed on read and by CleanupExpired
//   - Optional size cap enforced by evicting the oldest entries
//
// A disabled store is a valid value; every operation returns ErrCacheDisabled
// so callers can treat it as a permanent miss.
package cache
