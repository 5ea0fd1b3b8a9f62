// Package archive keeps best-effort copies of fetched page text for audit
// and debugging. Writes never block a request; callers log failures and
// continue.
package archive

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

const contentType = "text/plain; charset=utf-8"

// Archive stores one text snapshot per fetched URL.
type Archive interface {
	// SaveText persists text under a key derived from pageURL and returns
	// the backend URI of the stored object.
	SaveText(ctx context.Context, pageURL string, text string) (string, error)
}

// objectKey derives a stable, filesystem-safe object name from a page URL.
func objectKey(pageURL string) string {
	sum := sha1.Sum([]byte(pageURL))
	host := "unknown"
	if u, err := url.Parse(pageURL); err == nil && u.Hostname() != "" {
		host = strings.ToLower(u.Hostname())
	}
	return fmt.Sprintf("%s_%s.txt", host, hex.EncodeToString(sum[:])[:16])
}
