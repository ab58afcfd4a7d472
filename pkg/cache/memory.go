package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	expiresAt time.Time // zero value = never expires
	value     V
	key       string
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory is an in-memory cache with TTL-based expiration and optional
// LRU eviction when a maximum entry count is configured.
//
// Lookups go through a map; recency is tracked by a doubly-linked list with
// the most recently touched entry at the front.
type Memory[V any] struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     *memoryOptions
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates a new in-memory cache.
//
//	c := cache.NewMemory[int](
//	    cache.WithDefaultTTL(5*time.Minute),
//	    cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
		done:     make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Update runs fn under the cache lock so read-modify-write sequences on a
// single key never interleave.
func (m *Memory[V]) Update(_ context.Context, key string, fn UpdateFunc[V]) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		var zero V
		return zero, ErrClosed
	}

	var current V
	e, found := m.lookup(key)
	if found {
		current = e.value
	}

	next, ttl, keep := fn(current, found)
	if !keep {
		if elem, ok := m.items[key]; ok {
			m.removeElement(elem)
		}
		return next, nil
	}

	m.store(key, next, ttl)
	return next, nil
}

// Close stops the janitor and marks the cache as closed.
// Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)
	return nil
}

// lookup returns the live entry for key, dropping it if expired.
// Caller must hold the mutex.
func (m *Memory[V]) lookup(key string) (*entry[V], bool) {
	elem, ok := m.items[key]
	if !ok {
		return nil, false
	}

	e := elem.Value.(*entry[V])
	if e.expired(m.opts.now()) {
		m.removeElement(elem)
		return nil, false
	}

	m.eviction.MoveToFront(elem)
	return e, true
}

// store inserts or replaces key. Caller must hold the mutex.
func (m *Memory[V]) store(key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.opts.now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry[V])
		e.value = value
		e.expiresAt = expiresAt
		m.eviction.MoveToFront(elem)
		return
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	m.items[key] = m.eviction.PushFront(e)
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory[V]) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.now()
	for elem := m.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry[V]).expired(now) {
			m.removeElement(elem)
		}
		elem = prev
	}
}

// removeElement drops elem from both indexes. Caller must hold the mutex.
func (m *Memory[V]) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*entry[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
