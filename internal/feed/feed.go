// Package feed retrieves and normalizes entries from configured sources.
package feed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mmcdole/gofeed"

	"github.com/feedworks/friendfeed/internal/config"
	"github.com/feedworks/friendfeed/internal/dates"
	"github.com/feedworks/friendfeed/internal/extract"
	"github.com/feedworks/friendfeed/internal/sanitize"
	"github.com/feedworks/friendfeed/internal/store"
)

// maxSummaryRunes bounds the stored summary length after tag stripping.
const maxSummaryRunes = 200

// Fetcher retrieves up to quota normalized entries for one source,
// newest-first.
type Fetcher interface {
	Fetch(ctx context.Context, source config.Source, quota int) ([]store.Entry, error)
}

// RSSFetcher backs Fetcher with gofeed plus an optional full-page extractor.
type RSSFetcher struct {
	parser    *gofeed.Parser
	extractor *extract.Extractor
}

func NewRSSFetcher(fetchTimeout time.Duration) *RSSFetcher {
	return &RSSFetcher{
		parser:    gofeed.NewParser(),
		extractor: extract.New(fetchTimeout),
	}
}

func (f *RSSFetcher) Fetch(ctx context.Context, source config.Source, quota int) ([]store.Entry, error) {
	parsed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	cleaner := sanitize.ForSource(source.SanitizeSummary)
	entries := make([]store.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}

		published := item.Published
		if published == "" {
			published = item.Updated
		}
		if published == "" {
			// No usable timestamp at all: not sortable, drop it.
			continue
		}

		t, err := dates.Parse(published)
		if err != nil {
			log.Warn("unparseable date, using epoch sentinel", "source", source.Name, "date", published)
		}

		entries = append(entries, f.normalize(ctx, source, cleaner, item, t))
	}

	// Newest first, then cap at the allocated quota.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	if quota >= 0 && len(entries) > quota {
		entries = entries[:quota]
	}
	return entries, nil
}

// normalize reduces one parsed item to the canonical Entry shape, copying the
// source's decorative fields at fetch time.
func (f *RSSFetcher) normalize(ctx context.Context, source config.Source, cleaner sanitize.Sanitizer, item *gofeed.Item, published time.Time) store.Entry {
	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	summary = truncate(cleaner.Clean(summary), maxSummaryRunes)

	entry := store.Entry{
		ID:          entryID(item.Link),
		SourceName:  source.Name,
		Title:       item.Title,
		Link:        item.Link,
		Published:   published.Format(time.RFC3339),
		Timestamp:   dates.Timestamp(published),
		Summary:     summary,
		Tags:        item.Categories,
		Category:    source.Category,
		SourceIcon:  source.Icon,
		SourceColor: source.Color,
	}
	if item.Author != nil {
		entry.Author = item.Author.Name
	}

	if source.FetchFullContent {
		content, err := f.extractor.Content(ctx, item.Link, source.ContentSelector)
		if err != nil {
			log.Warn("full content unavailable, keeping feed summary", "source", source.Name, "link", item.Link, "err", err)
		} else {
			entry.Content = sanitize.Content(content)
		}
	}
	return entry
}

// entryID fingerprints a link into a short stable identifier.
func entryID(link string) string {
	h := sha256.Sum256([]byte(link))
	return fmt.Sprintf("%x", h[:16])
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
