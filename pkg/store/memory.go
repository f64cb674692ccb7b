package store

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend keeps blobs in process memory. Used by tests and the
// "memory" driver.
type MemoryBackend struct {
	mu    sync.RWMutex
	blobs map[Kind]map[string][]byte
}

// NewMemoryBackend creates an empty MemoryBackend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[Kind]map[string][]byte)}
}

func (m *MemoryBackend) Load(_ context.Context, kind Kind, guildID string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.blobs[kind][guildID]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (m *MemoryBackend) Save(_ context.Context, kind Kind, guildID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blobs[kind] == nil {
		m.blobs[kind] = make(map[string][]byte)
	}
	m.blobs[kind][guildID] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Ping(context.Context) (time.Duration, error) {
	return 0, nil
}

func (m *MemoryBackend) Name() string {
	return "memory"
}

func (m *MemoryBackend) Close(context.Context) error {
	return nil
}
