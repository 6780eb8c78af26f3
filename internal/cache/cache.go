// Package cache stores raw content-store query results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"

	"github.com/ppiankov/libris/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives a cache key from a query and its parameters.
// Parameter order does not affect the key.
func CacheKey(query string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(query))
	for _, name := range names {
		h.Write([]byte{0})
		h.Write([]byte(name))
		h.Write([]byte{'='})
		h.Write([]byte(params[name]))
	}
	return "libris:v1:" + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg: a memory+disk layered cache when
// enabled, otherwise a cache that stores nothing
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return Nop{}
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.DiskDir, cfg.DiskTTL)
}

// Nop is a cache that never stores anything
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)               { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                     { return nil }
func (Nop) Clear() error                            { return nil }
