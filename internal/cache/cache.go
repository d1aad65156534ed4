// Package cache stores encoded frames so unchanged compositions are not
// rendered twice.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FrameCache is safe for concurrent use.
type FrameCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Key builds the cache key of one encoded frame.
func Key(fingerprint string, frame int, format string) string {
	return fmt.Sprintf("%s:%04d.%s", fingerprint, frame, strings.ToLower(format))
}

type Memory struct {
	mu         sync.RWMutex
	entries    map[string][]byte
	order      []string
	maxEntries int
}

type MemoryOption func(*Memory)

// WithMaxEntries bounds the cache; the oldest entries are evicted first.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) { m.maxEntries = n }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{entries: make(map[string][]byte)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *Memory) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = stored
	for m.maxEntries > 0 && len(m.order) > m.maxEntries {
		delete(m.entries, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
