package fetch

import (
	"bytes"
	"strings"
)

// Detector decides when a probe fetch should be retried with the headless
// browser.
type Detector struct {
	MinTextLength int
}

// NewDetector creates a detector; threshold is the paragraph-text length
// below which a page is suspected of being script-rendered.
func NewDetector(threshold int) *Detector {
	if threshold == 0 {
		threshold = 200
	}
	return &Detector{MinTextLength: threshold}
}

var spaMarkers = [][]byte{
	[]byte("__next"),
	[]byte("id=\"root\""),
	[]byte("id=\"app\""),
	[]byte("data-reactroot"),
}

// ShouldPromote reports whether the probe result looks like an app shell
// whose real content only appears after script execution.
func (d *Detector) ShouldPromote(res Result) bool {
	if res.StatusCode != 200 {
		return false
	}
	if len(res.Text) >= d.MinTextLength {
		return false
	}
	if len(res.Body) == 0 {
		return true
	}
	for _, marker := range spaMarkers {
		if bytes.Contains(res.Body, marker) {
			return true
		}
	}
	return scriptDensityHigh(res.Body)
}

func scriptDensityHigh(body []byte) bool {
	lower := strings.ToLower(string(body))
	total := len(lower)
	if total == 0 {
		return false
	}

	const (
		openTag  = "<script"
		closeTag = "</script>"
	)
	scriptCoverage := 0
	searchPos := 0

	for {
		relativeStart := strings.Index(lower[searchPos:], openTag)
		if relativeStart == -1 {
			break
		}
		start := searchPos + relativeStart

		tagClose := strings.IndexByte(lower[start:], '>')
		if tagClose == -1 {
			// Treat the rest of the document as part of the malformed script.
			scriptCoverage += total - start
			break
		}
		contentStart := start + tagClose + 1

		relativeEnd := strings.Index(lower[contentStart:], closeTag)
		var nextSearch int
		if relativeEnd == -1 {
			// Script tag never closes; count the rest.
			nextSearch = total
		} else {
			nextSearch = contentStart + relativeEnd + len(closeTag)
		}

		scriptCoverage += nextSearch - start
		searchPos = nextSearch
	}

	if scriptCoverage == 0 {
		return false
	}
	return scriptCoverage*100/total >= 25
}
