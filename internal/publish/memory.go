package publish

import (
	"context"
	"fmt"
	"sync"
)

// MemoryPublisher records events in-process for inspection in tests.
type MemoryPublisher struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemory returns an empty MemoryPublisher.
func NewMemory() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish records the event and returns a pseudo message ID.
func (p *MemoryPublisher) Publish(_ context.Context, event Event) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return fmt.Sprintf("memory-%d", len(p.events)), nil
}

// Events returns the recorded events.
func (p *MemoryPublisher) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}
