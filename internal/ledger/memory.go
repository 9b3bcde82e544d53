package ledger

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process ledger. It is not persisted.
type Memory struct {
	mu    sync.Mutex
	usage Usage
}

// NewMemory returns an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{usage: Usage{ByCategory: make(map[string]int)}}
}

// Usage implements Ledger.
func (m *Memory) Usage(ctx context.Context) (Usage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usage.Clone(), nil
}

// Record implements Ledger.
func (m *Memory) Record(ctx context.Context, keyword, category string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	apply(&m.usage, keyword, category, at)
	return nil
}

// ResetCategory implements Ledger.
func (m *Memory) ResetCategory(ctx context.Context, category string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return removeCategory(&m.usage, category), nil
}
