package lint

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bjaus/stdfmt/internal/version"
)

// cacheSchema must be bumped whenever FileResult changes shape.
const cacheSchema uint16 = 1

// Digest identifies a cached file result.
type Digest [sha256.Size]byte

// Cache stores per-file results on disk, keyed by the file content, the tool
// version and the configuration fingerprint. A nil *Cache is a valid cache
// that never hits. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema uint16     `json:"schema"`
	Result FileResult `json:"result"`
}

// OpenCache opens the cache for app under $XDG_CACHE_HOME or ~/.cache.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app))
}

// NewCache opens a cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key derives the cache key of src under cfg.
func Key(src []byte, cfg Config) Digest {
	h := sha256.New()
	h.Write([]byte(version.Version))
	h.Write([]byte{0})
	h.Write([]byte(cfg.fingerprint()))
	h.Write([]byte{0})
	h.Write(src)
	var d Digest
	h.Sum(d[:0])
	return d
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes res under key, replacing the entry atomically.
func (c *Cache) Put(key Digest, res FileResult) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Debug("failed to remove cache temp file", "path", f.Name(), "error", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(cacheEntry{Schema: cacheSchema, Result: res}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. Entries written by another schema count as
// misses.
func (c *Cache) Get(key Digest) (FileResult, bool, error) {
	if c == nil {
		return FileResult{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileResult{}, false, nil
		}
		return FileResult{}, false, err
	}
	defer f.Close()

	var entry cacheEntry
	dec := msgpack.NewDecoder(f)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&entry); err != nil {
		return FileResult{}, false, err
	}
	if entry.Schema != cacheSchema {
		return FileResult{}, false, nil
	}
	return entry.Result, true, nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}
