// Package publish emits an event after each successful question generation
// so downstream consumers can react without polling the database.
package publish

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event describes one completed generation run.
type Event struct {
	EventID       string    `json:"eventId"`
	URL           string    `json:"url"`
	QuestionCount int       `json:"questionCount"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// NewEvent builds an Event with a fresh ID and the current time.
func NewEvent(url string, questionCount int) Event {
	return Event{
		EventID:       uuid.NewString(),
		URL:           url,
		QuestionCount: questionCount,
		GeneratedAt:   time.Now().UTC(),
	}
}

// Publisher delivers generation events to a message bus.
type Publisher interface {
	// Publish sends the event and returns the broker-assigned message ID.
	Publish(ctx context.Context, event Event) (string, error)
}
