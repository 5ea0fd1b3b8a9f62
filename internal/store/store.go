// Package store persists generated questions for audit and history.
package store

import (
	"context"

	"github.com/engagekit/question-engine/internal/question"
)

// Store is the durable question sink. Writes are best effort from the
// caller's perspective: failures are logged by the caller and never abort a
// request.
type Store interface {
	// StoreQuestions flattens each question into one denormalized row
	// (url, text, up to four option columns, timestamp).
	StoreQuestions(ctx context.Context, url string, questions question.Set) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
