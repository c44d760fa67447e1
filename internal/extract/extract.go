// Package extract retrieves full-page article content for sources whose feed
// only carries a teaser. The page is fetched with a bounded-time GET and the
// configured CSS selector picks the content block.
package extract

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "friendfeed/1.0 (+https://github.com/feedworks/friendfeed)"

// Extractor pulls article bodies from their canonical pages.
type Extractor struct {
	client *http.Client
}

// New creates an extractor whose requests are capped at timeout.
func New(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Extractor{client: &http.Client{Timeout: timeout}}
}

// Content fetches pageURL and returns the text of the first node matching
// selector. An empty selection is an error so callers can fall back to the
// feed-provided summary.
func (e *Extractor) Content(ctx context.Context, pageURL, selector string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	return Select(doc, selector, pageURL)
}

// Select applies the selector to an already-parsed document. Split out so
// selector behavior is testable without a network round trip.
func Select(doc *goquery.Document, selector, pageURL string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("selector %q matched nothing on %s", selector, pageURL)
	}
	html, err := sel.Html()
	if err != nil {
		return "", fmt.Errorf("rendering selection from %s: %w", pageURL, err)
	}
	return html, nil
}
