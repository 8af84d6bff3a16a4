package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const (
	httpTimeout    = 30 * time.Second
	maxConcurrent  = 5
	rateLimitDelay = 1 * time.Second
	maxWords       = 5000
)

// FailedSource records a feed or page URL that could not be fetched.
type FailedSource struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// HarvestResult contains the item titles collected across all feeds and
// any per-feed failures.
type HarvestResult struct {
	Titles []string
	Failed []FailedSource
}

// Fetcher retrieves RSS feeds and web pages with per-domain rate limiting
// and bounded concurrency.
type Fetcher struct {
	client      *http.Client
	rateLimiter map[string]time.Time // per-domain last request time
	mu          sync.Mutex           // protects rateLimiter
}

// NewFetcher creates a Fetcher with a 30-second timeout HTTP client and a
// browser-like User-Agent.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: httpTimeout,
			Transport: &userAgentTransport{
				base: http.DefaultTransport,
			},
		},
		rateLimiter: make(map[string]time.Time),
	}
}

// userAgentTransport wraps an http.RoundTripper to inject browser-like
// headers on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	// Use a browser-like User-Agent to avoid bot detection on some sites.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return t.base.RoundTrip(req)
}

// FetchTitles parses each feed URL concurrently with at most 5 goroutines
// and collects up to maxPerFeed item titles per feed (unlimited when
// maxPerFeed is 0). Every feed failure is recorded in HarvestResult.Failed
// rather than failing the whole harvest, so FetchTitles always returns a
// result. Collected titles follow the order of feedURLs regardless of
// fetch completion order.
func (f *Fetcher) FetchTitles(ctx context.Context, feedURLs []string, maxPerFeed int) *HarvestResult {
	perFeed := make([][]string, len(feedURLs))
	var (
		failed []FailedSource
		mu     sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, feedURL := range feedURLs {
		i, feedURL := i, feedURL // per-iteration copies: go.mod targets go 1.21
		g.Go(func() error {
			titles, err := f.fetchFeedTitles(ctx, feedURL, maxPerFeed)
			if err != nil {
				slog.Warn("failed to fetch feed", "url", feedURL, "error", err)

				mu.Lock()
				failed = append(failed, FailedSource{URL: feedURL, Error: err.Error()})
				mu.Unlock()

				return nil // skip failures, don't fail the harvest
			}

			perFeed[i] = titles

			slog.Info("fetched feed", "url", feedURL, "titles", len(titles))
			return nil
		})
	}

	// Per-feed failures are collected above; Wait only synchronizes.
	_ = g.Wait()

	result := &HarvestResult{Failed: failed}
	for _, titles := range perFeed {
		result.Titles = append(result.Titles, titles...)
	}
	return result
}

// fetchFeedTitles retrieves and parses one feed, returning its item titles
// in feed order. Items with blank titles are skipped.
func (f *Fetcher) fetchFeedTitles(ctx context.Context, feedURL string, maxPerFeed int) ([]string, error) {
	f.waitForRateLimit(extractDomain(feedURL))

	fp := gofeed.NewParser()
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", feedURL, err)
	}

	var titles []string
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if maxPerFeed > 0 && len(titles) >= maxPerFeed {
			break
		}
	}
	return titles, nil
}

// waitForRateLimit enforces a minimum delay of 1 second between requests to
// the same domain. It blocks until the delay has elapsed.
func (f *Fetcher) waitForRateLimit(domain string) {
	f.mu.Lock()
	lastReq, ok := f.rateLimiter[domain]
	if ok {
		elapsed := time.Since(lastReq)
		if elapsed < rateLimitDelay {
			f.mu.Unlock()
			time.Sleep(rateLimitDelay - elapsed)
			f.mu.Lock()
		}
	}
	f.rateLimiter[domain] = time.Now()
	f.mu.Unlock()
}

// extractDomain parses a URL and returns its hostname. If parsing fails, it
// returns the raw URL as a fallback key.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
