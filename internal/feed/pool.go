package feed

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/feedworks/friendfeed/internal/allocate"
	"github.com/feedworks/friendfeed/internal/config"
	"github.com/feedworks/friendfeed/internal/store"
)

// SourceResult is one source's contribution to a run: its entries on success,
// or the error that made it contribute nothing.
type SourceResult struct {
	Source  string
	Entries []store.Entry
	Err     error
}

// Pool fans fetches out over a fixed set of workers and collects every
// result before returning; the merge step never sees in-flight work.
type Pool struct {
	fetcher Fetcher
	workers int
	timeout time.Duration
	limiter *rate.Limiter
}

// NewPool builds a fetch pool. requestsPerSec paces outbound fetches across
// all workers so a run doesn't hammer anyone's server.
func NewPool(fetcher Fetcher, workers int, timeout time.Duration, requestsPerSec float64) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if requestsPerSec <= 0 {
		requestsPerSec = 2
	}
	return &Pool{
		fetcher: fetcher,
		workers: workers,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
	}
}

// FetchAll runs every allocated fetch to completion and returns one result
// per source with a positive quota. Failures are carried in the result, not
// propagated; the caller folds them into empty contributions.
func (p *Pool) FetchAll(ctx context.Context, sources []config.Source, alloc allocate.Allocation) []SourceResult {
	type job struct {
		source config.Source
		quota  int
	}

	jobs := make(chan job)
	results := make(chan SourceResult)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- p.fetchOne(ctx, j.source, j.quota)
			}
		}()
	}

	go func() {
		for _, src := range sources {
			quota := alloc[src.Name]
			if quota <= 0 {
				continue
			}
			jobs <- job{source: src, quota: quota}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []SourceResult
	for r := range results {
		out = append(out, r)
	}
	return out
}

func (p *Pool) fetchOne(ctx context.Context, source config.Source, quota int) SourceResult {
	if err := p.limiter.Wait(ctx); err != nil {
		return SourceResult{Source: source.Name, Err: err}
	}

	fctx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.fetcher.Fetch(fctx, source, quota)
	return SourceResult{Source: source.Name, Entries: entries, Err: err}
}
