// Package merge combines the historical entry set with a run's fetched
// entries under the global capacity.
package merge

import (
	"sort"

	"github.com/feedworks/friendfeed/internal/store"
)

// Merge deduplicates by link with last-write-wins semantics: every
// historical entry is seeded first, then fetched entries overlay them whole
// (no field-level merging). The result is sorted by timestamp descending —
// epoch-sentinel entries sink to the bottom — and truncated to capacity.
// A link appears at most once in the output.
func Merge(historical, fetched []store.Entry, capacity int) []store.Entry {
	byLink := make(map[string]store.Entry, len(historical)+len(fetched))
	order := make([]string, 0, len(historical)+len(fetched))

	for _, e := range historical {
		if _, seen := byLink[e.Link]; !seen {
			order = append(order, e.Link)
		}
		byLink[e.Link] = e
	}
	for _, e := range fetched {
		if _, seen := byLink[e.Link]; !seen {
			order = append(order, e.Link)
		}
		byLink[e.Link] = e
	}

	merged := make([]store.Entry, 0, len(order))
	for _, link := range order {
		merged = append(merged, byLink[link])
	}

	// Stable so ties keep first-seen order and the merge stays deterministic.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp > merged[j].Timestamp
	})

	if capacity >= 0 && len(merged) > capacity {
		merged = merged[:capacity]
	}
	return merged
}
