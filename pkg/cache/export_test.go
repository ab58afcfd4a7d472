package cache

// Peek returns the live value for key without touching recency or TTL.
func Peek[V any](m *Memory[V], key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	elem, ok := m.items[key]
	if !ok {
		return zero, false
	}
	e := elem.Value.(*entry[V])
	if e.expired(m.opts.now()) {
		return zero, false
	}
	return e.value, true
}

// Len returns the number of stored entries, expired ones included.
func Len[V any](m *Memory[V]) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
