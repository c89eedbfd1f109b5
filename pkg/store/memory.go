package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithQuota caps the total size in bytes of keys plus values. Zero disables
// the limit.
func WithQuota(bytes int) MemoryOption {
	return func(m *Memory) {
		if bytes > 0 {
			m.quota = bytes
		}
	}
}

// WithSeed pre-populates the store.
func WithSeed(values map[string]string) MemoryOption {
	return func(m *Memory) {
		for key, value := range values {
			m.values[key] = value
		}
	}
}

// Memory is a process-local Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	quota  int
}

var _ Store = (*Memory)(nil)

// NewMemory constructs an empty in-memory store.
func NewMemory(options ...MemoryOption) *Memory {
	m := &Memory{values: make(map[string]string)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Get returns the value stored under key or ErrNotFound.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		size := len(key) + len(value)
		for k, v := range m.values {
			if k == key {
				continue
			}
			size += len(k) + len(v)
		}
		if size > m.quota {
			return fmt.Errorf("store: set %q needs %d bytes, quota is %d: %w", key, size, m.quota, ErrQuotaExceeded)
		}
	}
	m.values[key] = value
	return nil
}

// Len reports how many keys are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
