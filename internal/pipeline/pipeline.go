// Package pipeline orchestrates one aggregation run: load the previous
// snapshot, allocate per-source quotas, fetch concurrently, merge under
// capacity, aggregate metadata, and write the replacement snapshot.
package pipeline

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/feedworks/friendfeed/internal/allocate"
	"github.com/feedworks/friendfeed/internal/config"
	"github.com/feedworks/friendfeed/internal/feed"
	"github.com/feedworks/friendfeed/internal/merge"
	"github.com/feedworks/friendfeed/internal/meta"
	"github.com/feedworks/friendfeed/internal/store"
)

// Options are the per-run knobs layered over the config file.
type Options struct {
	Strategy   allocate.Strategy
	Capacity   int // 0 means use config
	OutputPath string
	Fetcher    feed.Fetcher // nil means the gofeed-backed fetcher
}

// Summary reports what a run did, for CLI output.
type Summary struct {
	Strategy   allocate.Strategy
	Historical int
	Fetched    int
	Failed     []string
	Final      int
	OutputPath string
}

// Run executes one full aggregation pass. Everything short of the final
// snapshot write degrades with a warning; only the write can fail the run.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Summary, error) {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = cfg.GetCapacity()
	}
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = cfg.OutputPath
	}
	if outputPath == "" {
		outputPath = config.DefaultOutputPath()
	}

	for _, name := range config.UnknownCategorySources(cfg) {
		log.Warn("source references unknown category", "source", name)
	}

	snap := store.Load(outputPath)
	log.Info("loaded history", "entries", len(snap.Articles), "path", outputPath)

	alloc := allocate.Allocate(snap.Articles, cfg.Sources, capacity, opts.Strategy)
	log.Info("allocated quotas", "strategy", opts.Strategy, "total", alloc.Total())

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = feed.NewRSSFetcher(cfg.FetchTimeoutDuration())
	}
	pool := feed.NewPool(fetcher, cfg.GetWorkers(), cfg.FetchTimeoutDuration(), cfg.GetRequestsPerSec())
	results := pool.FetchAll(ctx, cfg.Sources, alloc)

	summary := &Summary{
		Strategy:   opts.Strategy,
		Historical: len(snap.Articles),
		OutputPath: outputPath,
	}

	var fetched []store.Entry
	for _, r := range results {
		if r.Err != nil {
			log.Warn("source fetch failed, contributing nothing", "source", r.Source, "err", r.Err)
			summary.Failed = append(summary.Failed, r.Source)
			continue
		}
		fetched = append(fetched, r.Entries...)
	}
	sort.Strings(summary.Failed)
	summary.Fetched = len(fetched)
	log.Info("fetched entries", "count", len(fetched), "failed_sources", len(summary.Failed))

	final := merge.Merge(snap.Articles, fetched, capacity)
	summary.Final = len(final)

	aggregator := meta.New(cfg.GetEntriesPerPage())
	snap = &store.Snapshot{
		Meta:     aggregator.Aggregate(final, cfg.Categories, cfg.Sources),
		Articles: final,
	}

	if err := store.Save(outputPath, snap); err != nil {
		return nil, err
	}
	log.Info("snapshot written", "entries", len(final), "path", outputPath)
	return summary, nil
}
