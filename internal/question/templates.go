package question

import (
	"fmt"
	"strings"
)

// Category tags a template with the option rule it renders with.
type Category string

// The closed set of template categories.
const (
	CategoryOpinion    Category = "opinion"
	CategoryYesNo      Category = "yes/no"
	CategoryImportance Category = "importance"
	CategoryFit        Category = "fit"
	CategoryInterest   Category = "interest"
	CategoryAgreement  Category = "agreement"
	CategoryChallenges Category = "challenges"
)

// Template pairs a question pattern with an option category. The catalog is
// fixed and every pattern must render to text ending in "?": the validator
// drops anything declarative.
type Template struct {
	Category Category
	Pattern  string
}

// Catalog is the fixed template catalog, iterated by index.
var Catalog = []Template{
	{CategoryOpinion, "What is your opinion on '%s'?"},
	{CategoryYesNo, "Would you like to learn more about '%s'?"},
	{CategoryImportance, "How important is '%s' to you?"},
	{CategoryFit, "Where do you think '%s' fits best?"},
	{CategoryInterest, "On a scale of 1-5, how would you rate your interest in '%s'?"},
	{CategoryAgreement, "Do you agree with the statement: '%s' is revolutionary?"},
	{CategoryChallenges, "What challenges might you foresee with '%s'?"},
}

// Render produces one Question for the topic, drawing the ID from rng.
func (t Template) Render(topic Topic, rng Rand) Question {
	return Question{
		ID:      idLow + rng.Intn(idHigh-idLow),
		Text:    fmt.Sprintf(t.Pattern, topic),
		Options: OptionsFor(topic, t.Category),
	}
}

// OptionsFor returns the ordered option set for a template category. The
// challenges category conditions its options on keywords in the topic text.
func OptionsFor(topic Topic, category Category) []string {
	switch category {
	case CategoryOpinion:
		return []string{"Positive", "Negative", "Neutral"}
	case CategoryYesNo:
		return []string{"Yes", "No"}
	case CategoryImportance:
		return []string{"Not at all", "Somewhat", "Very important"}
	case CategoryFit:
		return []string{"Technology", "Science", "Business", "Other"}
	case CategoryInterest:
		return []string{"1", "2", "3", "4", "5"}
	case CategoryAgreement:
		return []string{"Agree", "Disagree", "Not Sure"}
	case CategoryChallenges:
		return challengeOptions(topic)
	default:
		return []string{"Agree", "Disagree", "Not Sure"}
	}
}

func challengeOptions(topic Topic) []string {
	lower := strings.ToLower(topic)
	switch {
	case strings.Contains(lower, "technology"):
		return []string{"High cost", "Implementation difficulties", "Resistance to change"}
	case strings.Contains(lower, "event"):
		return []string{"Unexpected consequences", "Lack of preparation", "Public backlash"}
	case strings.Contains(lower, "product"):
		return []string{"Supply chain issues", "Quality control", "Market competition"}
	default:
		return []string{"Time constraints", "Resource limitations", "Knowledge gaps"}
	}
}

// Synthesize maps one topic to one question using a uniformly random
// template choice. Repeats across topics are expected.
func Synthesize(topic Topic, rng Rand) Question {
	tmpl := Catalog[rng.Intn(len(Catalog))]
	return tmpl.Render(topic, rng)
}
