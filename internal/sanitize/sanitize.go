// Package sanitize strips markup from user supplied text before it is
// stored. Reviews, captions and booking notes are plain text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML and trims surrounding whitespace. Entities the
// policy escapes are decoded again so the result stays plain text.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
