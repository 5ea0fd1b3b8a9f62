package question

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	yesNo := []string{"Yes", "No"}

	tests := []struct {
		name string
		q    Question
		want bool
	}{
		{"well formed", Question{ID: 1234, Text: "Do you like this?", Options: yesNo}, true},
		{"empty text", Question{Options: yesNo}, false},
		{"no options", Question{Text: "Do you like this?"}, false},
		{"single option", Question{Text: "Do you like this?", Options: []string{"Yes"}}, false},
		{"ends with period", Question{Text: "Do you like this.", Options: yesNo}, false},
		{"no question mark", Question{Text: "Tell me more", Options: yesNo}, false},
		{"terms and conditions", Question{Text: "What is your opinion on 'Terms and Conditions apply'?", Options: yesNo}, false},
		{"privacy policy", Question{Text: "See our Privacy Policy?", Options: yesNo}, false},
		{"ca notice", Question{Text: "How important is 'CA Notice at Collection' to you?", Options: yesNo}, false},
		{"see our fragment", Question{Text: "Would you like to learn more about 'see our pricing page'?", Options: yesNo}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, IsValid(tt.q))
		})
	}
}
