package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// cacheFileExtension is the file extension used for cache entries.
const cacheFileExtension = ".json"

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// Options configures a FileStore.
type Options struct {
	// Directory holds the entry files. Created if missing.
	Directory string

	// Enabled turns the store on. A disabled store ignores Directory.
	Enabled bool

	// TTL is the lifetime of new entries. Defaults to DefaultTTL.
	TTL time.Duration

	// MaxSizeBytes caps the total size of entry files (0 = unlimited).
	MaxSizeBytes int64

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// FileStore is a file-based payload cache. Safe for concurrent use.
type FileStore struct {
	directory    string
	enabled      bool
	ttl          time.Duration
	maxSizeBytes int64
	now          func() time.Time

	mu sync.RWMutex
}

// NewFileStore creates a store from opts.
func NewFileStore(opts Options) (*FileStore, error) {
	if !opts.Enabled {
		return &FileStore{enabled: false, now: time.Now}, nil
	}

	if opts.Directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(opts.Directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &FileStore{
		directory:    opts.Directory,
		enabled:      true,
		ttl:          ttl,
		maxSizeBytes: opts.MaxSizeBytes,
		now:          now,
	}, nil
}

// Get returns the live entry for key.
// Returns ErrCacheNotFound when absent and ErrCacheExpired (after removing
// the file) when stale.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.keyToFilePath(key)
	entry, err := readEntry(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheNotFound
		}
		return nil, err
	}

	if entry.ExpiredAt(s.now()) {
		_ = os.Remove(path)
		return nil, ErrCacheExpired
	}

	return entry, nil
}

// Set stores data under key, overwriting any existing entry.
func (s *FileStore) Set(key, source string, data json.RawMessage) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := NewEntry(key, source, data, s.now(), s.ttl)
	encoded, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	path := s.keyToFilePath(key)
	tempPath := path + ".tmp"
	if writeErr := os.WriteFile(tempPath, encoded, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, path); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}

	return s.enforceMaxSizeLocked()
}

// Delete removes the entry for key. Missing entries are not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.keyToFilePath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	if !s.enabled {
		return ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.entryFilesLocked()
	if err != nil {
		return err
	}
	for _, f := range files {
		if removeErr := os.Remove(f.path); removeErr != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(f.path), removeErr)
		}
	}
	return nil
}

// CleanupExpired removes expired entries and returns how many were removed.
// Unreadable files are skipped.
func (s *FileStore) CleanupExpired() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.entryFilesLocked()
	if err != nil {
		return 0, err
	}

	now := s.now()
	removed := 0
	for _, f := range files {
		entry, readErr := readEntry(f.path)
		if readErr != nil {
			continue
		}
		if entry.ExpiredAt(now) && os.Remove(f.path) == nil {
			removed++
		}
	}
	return removed, nil
}

// Size returns the total size of entry files in bytes.
func (s *FileStore) Size() (int64, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.entryFilesLocked()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, f := range files {
		total += f.size
	}
	return total, nil
}

// Count returns the number of entries, expired ones included.
func (s *FileStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.entryFilesLocked()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// IsEnabled reports whether the store caches anything.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the lifetime given to new entries.
func (s *FileStore) TTL() time.Duration {
	return s.ttl
}

type entryFile struct {
	path    string
	size    int64
	modTime time.Time
}

// entryFilesLocked lists entry files. Caller must hold mu.
func (s *FileStore) entryFilesLocked() ([]entryFile, error) {
	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	files := make([]entryFile, 0, len(dirEntries))
	for _, d := range dirEntries {
		if d.IsDir() || filepath.Ext(d.Name()) != cacheFileExtension {
			continue
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			continue
		}
		files = append(files, entryFile{
			path:    filepath.Join(s.directory, d.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}
	return files, nil
}

// enforceMaxSizeLocked evicts the oldest entries until the store fits
// maxSizeBytes. Caller must hold mu.
func (s *FileStore) enforceMaxSizeLocked() error {
	if s.maxSizeBytes <= 0 {
		return nil
	}

	files, err := s.entryFilesLocked()
	if err != nil {
		return err
	}

	var total int64
	for _, f := range files {
		total += f.size
	}
	if total <= s.maxSizeBytes {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})
	for _, f := range files {
		if total <= s.maxSizeBytes {
			break
		}
		if removeErr := os.Remove(f.path); removeErr == nil {
			total -= f.size
		}
	}
	return nil
}

// keyToFilePath maps a key to its entry file. Keys are hex digests, so no
// sanitizing is needed beyond rejecting path separators.
func (s *FileStore) keyToFilePath(key string) string {
	return filepath.Join(s.directory, filepath.Base(key)+cacheFileExtension)
}

func readEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}
	return &entry, nil
}
