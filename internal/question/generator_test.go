package question

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestGenerateReturnsValidatedQuestions(t *testing.T) {
	t.Parallel()

	tagger := &stubTagger{
		sentences: []string{
			"Acme shipped its new widget this morning.",
			"Analysts expect strong demand through the quarter.",
		},
		entities: []Entity{
			{Text: "Acme Corp", Label: "ORG"},
			{Text: "Jane Smith", Label: "PERSON"},
		},
	}
	gen := NewGenerator(tagger, NewSeededRand(9))

	set, err := gen.Generate("canned")
	require.NoError(t, err)
	require.NotEmpty(t, set)
	require.LessOrEqual(t, len(set), 4, "one question per topic at most")
	for _, q := range set {
		require.True(t, IsValid(q))
	}
}

func TestGenerateSubstitutesFallbackWhenAllRejected(t *testing.T) {
	t.Parallel()

	// Every topic is boilerplate, so every synthesized question contains a
	// rejected marker and the set collapses to the generic fallback.
	tagger := &stubTagger{
		sentences: []string{
			"Privacy Policy and cookie preferences.",
			"Terms and Conditions of this website.",
			"CA Notice at Collection details.",
		},
	}
	gen := NewGenerator(tagger, NewSeededRand(13))

	set, err := gen.Generate("canned")
	require.NoError(t, err)
	require.Len(t, set, 1)
	require.Equal(t, "What is your overall impression of this content?", set[0].Text)
	require.Equal(t, []string{"Interesting", "Boring", "Confusing"}, set[0].Options)
	require.GreaterOrEqual(t, set[0].ID, 1000)
	require.Less(t, set[0].ID, 9999)
}

func TestGenerateEmptyInputUsesFallbackTopics(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(&stubTagger{}, NewSeededRand(21))

	set, err := gen.Generate("")
	require.NoError(t, err)
	require.NotEmpty(t, set)
	require.LessOrEqual(t, len(set), 2, "two generic fallback topics at most")
	for _, q := range set {
		require.True(t, IsValid(q))
	}
}

func TestGenerateLengthBoundsAreStableAcrossRuns(t *testing.T) {
	t.Parallel()

	tagger := &stubTagger{
		sentences: []string{
			"The conference opened with a keynote on robotics.",
			"Attendance doubled compared to last year.",
			"Vendors demonstrated new assembly hardware.",
		},
	}

	first, err := NewGenerator(tagger, NewSeededRand(1)).Generate("canned")
	require.NoError(t, err)
	second, err := NewGenerator(tagger, NewSeededRand(2)).Generate("canned")
	require.NoError(t, err)

	// Content may differ between runs; the topic pool, and therefore the
	// upper bound, may not.
	require.LessOrEqual(t, len(first), 3)
	require.LessOrEqual(t, len(second), 3)
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
}

func TestGeneratePropagatesTaggerErrors(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(&stubTagger{err: errBoom}, NewSeededRand(1))
	_, err := gen.Generate("text")
	require.ErrorIs(t, err, errBoom)
}
