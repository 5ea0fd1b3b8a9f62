package question

import "strings"

// boilerplateMarkers flag sentence topics that were scraped from legal
// boilerplate rather than article content.
var boilerplateMarkers = []string{
	"Terms and Conditions",
	"Privacy Policy",
	"CA Notice",
	"see our",
}

// IsValid reports whether a synthesized question is well formed. It is a
// pure predicate: no side effects, no retries.
//
// Rejections: empty text or options, fewer than 2 options, text ending in
// "." or not ending in "?", and text containing boilerplate markers. Only
// interrogative templates can pass; keep any future templates interrogative
// or they will be silently dropped here.
func IsValid(q Question) bool {
	if q.Text == "" || len(q.Options) == 0 {
		return false
	}
	if len(q.Options) < 2 {
		return false
	}
	if strings.HasSuffix(q.Text, ".") || !strings.HasSuffix(q.Text, "?") {
		return false
	}
	for _, marker := range boilerplateMarkers {
		if strings.Contains(q.Text, marker) {
			return false
		}
	}
	return true
}
