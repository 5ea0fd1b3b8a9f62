package question

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsForCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		topic    string
		category Category
		want     []string
	}{
		{"opinion", "anything", CategoryOpinion, []string{"Positive", "Negative", "Neutral"}},
		{"yes/no", "anything", CategoryYesNo, []string{"Yes", "No"}},
		{"importance", "anything", CategoryImportance, []string{"Not at all", "Somewhat", "Very important"}},
		{"fit", "anything", CategoryFit, []string{"Technology", "Science", "Business", "Other"}},
		{"interest", "anything", CategoryInterest, []string{"1", "2", "3", "4", "5"}},
		{"agreement", "anything", CategoryAgreement, []string{"Agree", "Disagree", "Not Sure"}},
		{
			"challenges technology case-insensitive",
			"New Technology Trends",
			CategoryChallenges,
			[]string{"High cost", "Implementation difficulties", "Resistance to change"},
		},
		{
			"challenges event",
			"the big event",
			CategoryChallenges,
			[]string{"Unexpected consequences", "Lack of preparation", "Public backlash"},
		},
		{
			"challenges product",
			"Product Launch",
			CategoryChallenges,
			[]string{"Supply chain issues", "Quality control", "Market competition"},
		},
		{
			"challenges default",
			"quarterly earnings",
			CategoryChallenges,
			[]string{"Time constraints", "Resource limitations", "Knowledge gaps"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, OptionsFor(tt.topic, tt.category))
		})
	}
}

func TestCatalogIsInterrogative(t *testing.T) {
	t.Parallel()

	for _, tmpl := range Catalog {
		q := tmpl.Render("sample topic", NewSeededRand(5))
		require.True(t, strings.HasSuffix(q.Text, "?"), "template %q must render a question", tmpl.Pattern)
		require.Contains(t, q.Text, "'sample topic'")
		require.GreaterOrEqual(t, len(q.Options), 2)
		require.LessOrEqual(t, len(q.Options), 4)
	}
}

func TestSynthesizeDrawsIDInRange(t *testing.T) {
	t.Parallel()

	rng := NewSeededRand(42)
	for i := 0; i < 200; i++ {
		q := Synthesize("some topic", rng)
		require.GreaterOrEqual(t, q.ID, 1000)
		require.Less(t, q.ID, 9999)
	}
}
