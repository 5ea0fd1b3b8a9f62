package question

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseTagger implements Tagger using the prose NLP library. The bundled
// model covers a narrower entity label set than full NER suites; the
// extractor filters labels, so anything the model does not emit simply never
// becomes a topic.
type ProseTagger struct{}

// NewProseTagger returns a Tagger backed by prose.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag runs sentence segmentation and named-entity recognition over text.
func (t *ProseTagger) Tag(text string) ([]string, []Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, nil
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, nil, fmt.Errorf("build prose document: %w", err)
	}

	var sentences []string
	for _, sent := range doc.Sentences() {
		sentences = append(sentences, sent.Text)
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return sentences, entities, nil
}
