package question

import (
	"fmt"
	"strings"
)

const (
	minTopicLen     = 5
	maxSentences    = 10
	minTopicsBefore = 3
)

// entityLabels are the semantic categories kept as topics. The tagger's
// model decides which of these it can actually emit.
var entityLabels = map[string]bool{
	"PERSON":  true,
	"ORG":     true,
	"GPE":     true,
	"PRODUCT": true,
	"EVENT":   true,
}

// Extractor turns raw text into a shuffled, deduplicated list of candidate
// topics, backstopped by a keyword classifier when the text yields too
// little signal.
type Extractor struct {
	tagger Tagger
	rng    Rand
}

// NewExtractor builds an Extractor around the given tagger and randomness
// source.
func NewExtractor(tagger Tagger, rng Rand) *Extractor {
	return &Extractor{tagger: tagger, rng: rng}
}

// Extract returns the topic pool for one generation run. Order is a uniform
// random permutation, so callers must not rely on it.
func (e *Extractor) Extract(text string) ([]Topic, error) {
	sentences, entities, err := e.tagger.Tag(text)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}

	seen := make(map[string]bool)
	var topics []Topic
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		topics = append(topics, s)
	}

	// Every label-matching entity is a topic; the length filter applies to
	// sentences only, so short names like "Apple" or "EU" survive.
	for _, ent := range entities {
		if entityLabels[ent.Label] {
			add(ent.Text)
		}
	}
	kept := 0
	for _, sent := range sentences {
		if kept >= maxSentences {
			break
		}
		if len(strings.TrimSpace(sent)) > minTopicLen {
			add(sent)
			kept++
		}
	}

	// Fallback topics are appended as-is, not merged into the set; textual
	// overlap with existing topics is tolerated.
	if len(topics) < minTopicsBefore {
		topics = append(topics, classifyFallback(text)...)
	}

	e.rng.Shuffle(len(topics), func(i, j int) {
		topics[i], topics[j] = topics[j], topics[i]
	})
	return topics, nil
}

// classifyFallback maps the overall text to two generic topic phrases via
// case-insensitive keyword containment. Intentionally a heuristic, not NLP.
func classifyFallback(text string) []Topic {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "event"):
		return []Topic{"key facts about this event", "impacts of this event on the industry"}
	case strings.Contains(lower, "product"):
		return []Topic{"product benefits", "product challenges"}
	case strings.Contains(lower, "technology"):
		return []Topic{"future trends in technology", "challenges in adopting new technologies"}
	default:
		return []Topic{"general knowledge", "specific details"}
	}
}
