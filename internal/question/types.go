// Package question implements the content-to-question generation pipeline:
// topic extraction, template-based synthesis, validation and fallback
// handling.
package question

// Question is one multiple-choice engagement question. IDs are drawn from a
// bounded range and are not globally unique.
type Question struct {
	ID      int      `json:"questionId"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// Set is the ordered output of one generation run for a single source text.
type Set []Question

// Topic is a candidate subject string used to parameterize one question,
// either a recognized entity or a trimmed sentence.
type Topic = string

// Entity is a named entity recognized in the source text.
type Entity struct {
	Text  string
	Label string
}

// Tagger segments text into sentences and recognizes named entities. The
// production implementation wraps an NLP model; tests supply fakes.
type Tagger interface {
	Tag(text string) (sentences []string, entities []Entity, err error)
}

// ID bounds for generated questions, half-open.
const (
	idLow  = 1000
	idHigh = 9999
)
