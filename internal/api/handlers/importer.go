package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hoanghai1803/draftpress/internal/ai"
	"github.com/hoanghai1803/draftpress/internal/config"
	"github.com/hoanghai1803/draftpress/internal/feeds"
	"github.com/hoanghai1803/draftpress/internal/models"
	"github.com/hoanghai1803/draftpress/internal/storage"
)

// ImportFeeds handles POST /import/feed. It harvests item titles from the
// submitted feed URLs and runs them through the same generation path as a
// manual title submission, so dedup and skip-on-failure behave
// identically. Requires a configured API key.
func ImportFeeds(store *storage.Store, writer *ai.Writer, fetcher *feeds.Fetcher, cfg *config.Config, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}

		if writer == nil {
			renderPage(w, tmpl, "index.html", indexData{Error: missingKeyMessage})
			return
		}

		feedURLs := validURLs(splitLines(r.PostFormValue("feeds")))
		if len(feedURLs) == 0 {
			renderPage(w, tmpl, "index.html", indexData{Error: "No valid feed URLs submitted."})
			return
		}

		result := fetcher.FetchTitles(r.Context(), feedURLs, cfg.Import.MaxTitlesPerFeed)
		if len(result.Failed) == len(feedURLs) {
			renderPage(w, tmpl, "index.html", indexData{Error: "None of the submitted feeds could be fetched."})
			return
		}

		entries := writer.GenerateBatch(r.Context(), result.Titles, store.TitleSet())

		added, err := store.Append(entries)
		if err != nil {
			slog.Error("failed to persist generated articles", "error", err)
			http.Error(w, "Failed to save generated articles", http.StatusInternalServerError)
			return
		}
		slog.Info("feed import finished",
			"feeds", len(feedURLs),
			"failed_feeds", len(result.Failed),
			"titles", len(result.Titles),
			"added", added,
		)

		http.Redirect(w, r, "/blog", http.StatusSeeOther)
	}
}

// ImportURLs handles POST /import/url. Each page's readable text is stored
// directly as an article under the page title; no generation is involved,
// so this works without an API key. Pages that cannot be extracted are
// skipped.
func ImportURLs(store *storage.Store, fetcher *feeds.Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}

		existing := store.TitleSet()
		var entries []models.BlogEntry
		for _, pageURL := range validURLs(splitLines(r.PostFormValue("urls"))) {
			article, err := fetcher.ExtractArticle(r.Context(), pageURL)
			if err != nil {
				slog.Warn("skipping url, extraction failed", "url", pageURL, "error", err)
				continue
			}

			title := article.Title
			if title == "" {
				title = pageURL
			}
			key := strings.ToLower(strings.TrimSpace(title))
			if _, ok := existing[key]; ok {
				continue
			}

			entries = append(entries, models.BlogEntry{Title: title, Content: article.Text})
			existing[key] = struct{}{}
			slog.Info("imported article", "url", pageURL, "title", title)
		}

		if _, err := store.Append(entries); err != nil {
			slog.Error("failed to persist imported articles", "error", err)
			http.Error(w, "Failed to save imported articles", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/blog", http.StatusSeeOther)
	}
}

// validURLs filters the given strings down to parseable http(s) URLs.
func validURLs(raw []string) []string {
	var urls []string
	for _, candidate := range raw {
		u, err := url.Parse(candidate)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			slog.Warn("skipping invalid url", "url", candidate)
			continue
		}
		urls = append(urls, candidate)
	}
	return urls
}
