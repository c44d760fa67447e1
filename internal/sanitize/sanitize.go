// Package sanitize reduces feed-provided HTML to text safe for the snapshot.
// Two strategies exist: a plain tag strip, and an allowlist-based clean for
// sources that opt in via sanitize_summary.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer turns raw feed HTML into snapshot-safe text.
type Sanitizer interface {
	Clean(raw string) string
}

// ForSource picks the sanitizer a source's configuration asks for.
func ForSource(sanitizeSummary bool) Sanitizer {
	if sanitizeSummary {
		return Allowlist()
	}
	return Strip()
}

type stripSanitizer struct{}

// Strip returns the plain sanitizer: every tag is removed and whitespace
// collapsed, leaving only text.
func Strip() Sanitizer {
	return stripSanitizer{}
}

func (stripSanitizer) Clean(raw string) string {
	return StripTags(raw)
}

type allowlistSanitizer struct {
	policy *bluemonday.Policy
}

// Allowlist returns the strict sanitizer: bluemonday with an empty allowlist,
// so markup is removed but entities are handled properly. The output is still
// plain text, just derived more carefully than the scanner strip.
func Allowlist() Sanitizer {
	return allowlistSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s allowlistSanitizer) Clean(raw string) string {
	return strings.Join(strings.Fields(s.policy.Sanitize(raw)), " ")
}

var contentPolicy = bluemonday.UGCPolicy()

// Content cleans full-article HTML with the UGC allowlist: structural and
// formatting tags survive, scripts and event handlers do not.
func Content(raw string) string {
	return contentPolicy.Sanitize(raw)
}

// StripTags drops everything between angle brackets and collapses runs of
// whitespace. Good enough for summaries; not a security boundary.
func StripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
