// Package meta derives the snapshot metadata block from the final entry set:
// totals, freshness, and the nested category → source → count rollup.
package meta

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/feedworks/friendfeed/internal/config"
	"github.com/feedworks/friendfeed/internal/store"
)

// Aggregator computes snapshot metadata. The clock is injectable so tests
// can pin the freshness timestamp.
type Aggregator struct {
	EntriesPerPage int
	Now            func() time.Time
}

func New(entriesPerPage int) *Aggregator {
	return &Aggregator{EntriesPerPage: entriesPerPage, Now: time.Now}
}

// Aggregate builds the metadata block. Every configured category appears in
// the output, zero-count or not. Counts are attributed through each entry's
// source: the source's configured category receives the increment. A source
// whose category is unknown keeps its entries in the flat list but is left
// out of the rollup.
func (a *Aggregator) Aggregate(entries []store.Entry, categories []config.Category, sources []config.Source) store.Meta {
	stats := make(map[string]store.CategoryStat, len(categories))
	for _, cat := range categories {
		stats[cat.Name] = store.CategoryStat{
			Icon:    cat.Icon,
			Color:   cat.Color,
			Sources: map[string]int{},
		}
	}

	categoryOf := make(map[string]string, len(sources))
	for _, src := range sources {
		categoryOf[src.Name] = src.Category
	}

	warned := make(map[string]bool)
	for _, e := range entries {
		catName, known := categoryOf[e.SourceName]
		stat, ok := stats[catName]
		if !known || !ok {
			if !warned[e.SourceName] {
				log.Warn("source excluded from category rollup", "source", e.SourceName, "category", catName)
				warned[e.SourceName] = true
			}
			continue
		}
		stat.Count++
		stat.Sources[e.SourceName]++
		stats[catName] = stat
	}

	return store.Meta{
		TotalArticles:  len(entries),
		LastUpdated:    a.Now().UTC().Format(time.RFC3339),
		EntriesPerPage: a.EntriesPerPage,
		Categories:     stats,
	}
}
