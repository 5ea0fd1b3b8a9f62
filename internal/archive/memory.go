package archive

import (
	"context"
	"fmt"
	"sync"
)

// Memory keeps snapshots in-process, for development and tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty Memory archive.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// SaveText stores the snapshot and returns a pseudo URI.
func (m *Memory) SaveText(_ context.Context, pageURL string, text string) (string, error) {
	key := objectKey(pageURL)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = text
	return fmt.Sprintf("memory://%s", key), nil
}

// Text returns the stored snapshot for pageURL.
func (m *Memory) Text(pageURL string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.data[objectKey(pageURL)]
	return text, ok
}
