package store

import (
	"context"
	"sync"

	"github.com/engagekit/question-engine/internal/question"
)

// MemoryStore keeps question rows in memory for local runs and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string][]question.Question
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{rows: make(map[string][]question.Question)}
}

// StoreQuestions appends the questions under url.
func (s *MemoryStore) StoreQuestions(_ context.Context, url string, questions question.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[url] = append(s.rows[url], questions...)
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Questions returns the stored rows for url.
func (s *MemoryStore) Questions(url string) []question.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]question.Question(nil), s.rows[url]...)
}
