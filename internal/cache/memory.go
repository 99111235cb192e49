package cache

import (
	"context"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

const janitorInterval = time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is the in-process backend. The xsync map it owns doubles as the
// tracked key set, so RemoveByPattern stays correct even for entries that
// have expired but not yet been swept.
type Memory struct {
	entries    *xsync.MapOf[string, memoryEntry]
	defaultTTL time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemory creates an in-memory cache. A non-positive defaultTTL falls back
// to DefaultTTL. A background janitor sweeps expired entries until Close.
func NewMemory(defaultTTL time.Duration) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	m := &Memory{
		entries:    xsync.NewMapOf[string, memoryEntry](),
		defaultTTL: defaultTTL,
		stop:       make(chan struct{}),
	}
	go m.janitor()
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := m.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		m.entries.Delete(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	m.entries.Store(key, memoryEntry{value: value, expiresAt: time.Now().Add(ttl)})
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.entries.Delete(key)
	return nil
}

func (m *Memory) RemoveByPattern(_ context.Context, pattern string) error {
	m.entries.Range(func(key string, _ memoryEntry) bool {
		if matchesPattern(key, pattern) {
			m.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Close stops the janitor. The cache remains usable afterwards; expired
// entries are then only dropped lazily on access.
func (m *Memory) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.entries.Range(func(key string, entry memoryEntry) bool {
				if now.After(entry.expiresAt) {
					m.entries.Delete(key)
				}
				return true
			})
		}
	}
}
