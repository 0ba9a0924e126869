// Package cache memoizes simulation results against the identity of their
// inputs. The engine itself never caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/loans"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache stores serialized simulation results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Key derives the cache key of one simulation input. Loan identifiers and
// labels do not change a projection and are left out.
func Key(params simulation.Params, totals expenses.Totals) (string, error) {
	params.Loans = append([]loans.Loan(nil), params.Loans...)
	for i := range params.Loans {
		params.Loans[i].ID = ""
		params.Loans[i].Name = ""
	}

	payload, err := json.Marshal(struct {
		Params simulation.Params `json:"params"`
		Totals expenses.Totals   `json:"totals"`
	}{params, totals})
	if err != nil {
		return "", fmt.Errorf("failed to encode simulation input: %w", err)
	}
	return constants.CacheKeyPrefix + strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}

type memoryEntry struct {
	value   []byte
	stored  time.Time
	expires time.Time
}

// MemoryCache keeps entries in process memory. Expired entries are swept on
// every Set and the oldest entry is evicted once maxEntries is reached.
type MemoryCache struct {
	mu         sync.RWMutex
	data       map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryCache creates an empty MemoryCache holding at most
// constants.DefaultCacheMaxEntries entries. A zero ttl never expires.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return NewBoundedMemoryCache(ttl, constants.DefaultCacheMaxEntries)
}

// NewBoundedMemoryCache creates an empty MemoryCache holding at most
// maxEntries entries. A non-positive maxEntries uses the default bound.
func NewBoundedMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheMaxEntries
	}
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached value or ErrMiss.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if entry.expired(m.now()) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return nil, ErrMiss
	}
	return entry.value, nil
}

// Set stores the value.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	now := m.now()
	entry := memoryEntry{value: value, stored: now}
	if m.ttl > 0 {
		entry.expires = now.Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)
	if _, exists := m.data[key]; !exists {
		for len(m.data) >= m.maxEntries {
			m.evictOldest()
		}
	}
	m.data[key] = entry
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// sweep drops expired entries. Callers hold the write lock.
func (m *MemoryCache) sweep(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
		}
	}
}

// evictOldest drops the entry stored first. Callers hold the write lock.
func (m *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, entry := range m.data {
		if !found || entry.stored.Before(oldest) {
			oldestKey, oldest, found = key, entry.stored, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}
