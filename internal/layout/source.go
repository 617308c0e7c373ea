package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/logger"
)

// CompressedExt marks zstd-compressed blobs.
const CompressedExt = ".zst"

// Source resolves blob names against a list of directories and caches the
// decoded contents.
type Source struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewSource creates a source searching the given directories.
func NewSource(dirs ...string) *Source {
	return &Source{
		dirs:  slices.Clone(dirs),
		cache: NewCache(),
	}
}

// AddDir adds a search directory.
// Directories are searched in reverse order (last added = highest priority).
func (s *Source) AddDir(dir string) {
	s.mu.Lock()
	s.dirs = append(s.dirs, dir)
	s.mu.Unlock()
}

// Load reads a blob. Relative names are looked up next to the descriptor in
// base first, then in the search directories. The returned slice is a fresh
// copy the caller may modify.
func (s *Source) Load(name, base string) ([]byte, error) {
	path, err := s.resolve(name, base)
	if err != nil {
		return nil, err
	}

	if data, ok := s.cache.Get(path); ok {
		return slices.Clone(data), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", path, err)
	}
	data := raw
	if strings.HasSuffix(path, CompressedExt) {
		if data, err = decompress(raw); err != nil {
			return nil, fmt.Errorf("decompressing blob %s: %w", path, err)
		}
	}
	logger.Debug("blob loaded",
		zap.String("path", path),
		zap.Int("stored", len(raw)),
		zap.Int("size", len(data)))

	s.cache.Set(path, data)
	return slices.Clone(data), nil
}

func (s *Source) resolve(name, base string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrBlobNotFound)
	}
	if filepath.IsAbs(name) {
		return name, nil
	}

	s.mu.RLock()
	candidates := make([]string, 0, len(s.dirs)+1)
	if base != "" {
		candidates = append(candidates, base)
	}
	for i := len(s.dirs) - 1; i >= 0; i-- {
		candidates = append(candidates, s.dirs[i])
	}
	s.mu.RUnlock()

	for _, dir := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrBlobNotFound, name)
}

// Cache returns the blob cache.
func (s *Source) Cache() *Cache {
	return s.cache
}

// Cache is an in-memory cache of decoded blobs.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves a blob.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores a blob.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear drops all blobs and resets the statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

// Compress zstd-compresses data. Level follows zstd.EncoderLevel, 1 being
// the fastest and 4 the best compression; 0 picks the default.
func Compress(data []byte, level int) ([]byte, error) {
	l := zstd.SpeedDefault
	if level != 0 {
		l = zstd.EncoderLevel(level)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(l))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}
