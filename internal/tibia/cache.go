package tibia

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores encoded lookup results with a per-entry TTL. Implementations
// must be safe for concurrent use. A miss is reported as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type memEntry struct {
	val []byte
	exp time.Time
}

// MemoryCache is an in-process TTL map guarded by a RWMutex. Expired entries
// are dropped lazily on read and by Sweep.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memEntry), now: time.Now}
}

// Get returns a copy of the value under key; expired entries are evicted and
// reported as missing.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.exp) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && !m.now().Before(cur.exp) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, true, nil
}

// Set stores a copy of val under key until ttl elapses.
func (m *MemoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	cp := make([]byte, len(val))
	copy(cp, val)
	m.mu.Lock()
	m.entries[key] = memEntry{val: cp, exp: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (m *MemoryCache) Sweep() int {
	now := m.now()
	n := 0
	m.mu.Lock()
	for k, e := range m.entries {
		if !now.Before(e.exp) {
			delete(m.entries, k)
			n++
		}
	}
	m.mu.Unlock()
	return n
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// RedisCache shares lookups across instances through Redis. Keys are
// namespaced with Prefix.
type RedisCache struct {
	RDB    redis.UniversalClient
	Prefix string
}

// NewRedisCache wraps rdb; prefix defaults to "huntschedule:".
func NewRedisCache(rdb redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "huntschedule:"
	}
	return &RedisCache{RDB: rdb, Prefix: prefix}
}

// Get reads the prefixed key; a missing key is not an error.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	bs, err := r.RDB.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return bs, true, nil
}

// Set writes the prefixed key with ttl as its expiry.
func (r *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.RDB.SetEx(ctx, r.Prefix+key, val, ttl).Err()
}
