// Package dates normalizes the timestamp formats seen across feed sources.
package dates

import (
	"fmt"
	"time"
)

// Epoch is the sentinel returned for unparseable dates. It sorts last under
// the descending-by-timestamp ordering, so broken dates sink to the bottom
// instead of breaking the run.
var Epoch = time.Unix(0, 0).UTC()

// layouts is the ordered list of formats we accept: RFC-1123 style with a
// numeric or named offset, then ISO-8601 with and without fractional seconds.
// The ISO layouts use Z0700 so a literal Z offset (the default Atom form)
// parses as UTC.
var layouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
}

// Parse attempts each known layout in order and returns the first match.
// Offsets written with a colon separator (+08:00) are rewritten to the
// colon-less form the layouts expect before matching.
func Parse(raw string) (time.Time, error) {
	s := stripOffsetColon(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return Epoch, fmt.Errorf("unrecognized date %q", raw)
}

// ParseOrEpoch is Parse with the sentinel fallback baked in.
func ParseOrEpoch(raw string) time.Time {
	t, err := Parse(raw)
	if err != nil {
		return Epoch
	}
	return t
}

// Timestamp converts a parsed time to the epoch-seconds sort key.
func Timestamp(t time.Time) int64 {
	return t.Unix()
}

func stripOffsetColon(s string) string {
	if len(s) >= 3 && s[len(s)-3] == ':' {
		return s[:len(s)-3] + s[len(s)-2:]
	}
	return s
}
