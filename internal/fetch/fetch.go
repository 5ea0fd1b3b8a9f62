// Package fetch retrieves the visible paragraph text of web pages.
package fetch

import (
	"context"
	"time"
)

// Result carries the outcome of one page fetch. Text is the concatenated
// visible paragraph content; Body is the raw document, kept so the promotion
// detector can inspect markup the text extraction discarded.
type Result struct {
	URL          string
	StatusCode   int
	Text         string
	Body         []byte
	Duration     time.Duration
	UsedHeadless bool
}

// Fetcher retrieves a page. Implementations own their timeouts; callers see
// timeouts, non-200 statuses and network failures as errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Result, error)
}
