package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// Article holds the readable content extracted from a web page.
type Article struct {
	Title string
	Text  string
}

// ExtractArticle fetches the page at articleURL and returns its title and
// main readable text using go-readability. The fetch honors ctx
// cancellation, and the text is truncated to 5000 words maximum.
func (f *Fetcher) ExtractArticle(ctx context.Context, articleURL string) (*Article, error) {
	f.waitForRateLimit(extractDomain(articleURL))

	pageURL, err := url.Parse(articleURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url %q: %w", articleURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", articleURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %q: unexpected status %s", articleURL, resp.Status)
	}

	page, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extracting article from %q: %w", articleURL, err)
	}

	return &Article{
		Title: strings.TrimSpace(page.Title),
		Text:  truncateWords(page.TextContent, maxWords),
	}, nil
}

// truncateWords returns the first maxWords whitespace-delimited words from
// s. If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
