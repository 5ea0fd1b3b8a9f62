package question

import "fmt"

// Generator sequences extraction, synthesis, validation and fallback
// insertion. It holds no per-request state; concurrent calls only share the
// injected Rand, which must be safe for concurrent use (NewRand is).
type Generator struct {
	extractor *Extractor
	rng       Rand
}

// NewGenerator builds the pipeline orchestrator.
func NewGenerator(tagger Tagger, rng Rand) *Generator {
	return &Generator{
		extractor: NewExtractor(tagger, rng),
		rng:       rng,
	}
}

// Generate runs the full single-pass pipeline over text. The returned set is
// never empty: if every synthesized question fails validation, a single
// generic fallback question is substituted. Topics whose questions fail
// validation contribute nothing; there are no retries.
func (g *Generator) Generate(text string) (Set, error) {
	topics, err := g.extractor.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("extract topics: %w", err)
	}

	questions := make(Set, 0, len(topics))
	for _, topic := range topics {
		q := Synthesize(topic, g.rng)
		if IsValid(q) {
			questions = append(questions, q)
		}
	}

	if len(questions) == 0 {
		questions = append(questions, g.fallbackQuestion())
	}
	return questions, nil
}

func (g *Generator) fallbackQuestion() Question {
	return Question{
		ID:      idLow + g.rng.Intn(idHigh-idLow),
		Text:    "What is your overall impression of this content?",
		Options: []string{"Interesting", "Boring", "Confusing"},
	}
}
