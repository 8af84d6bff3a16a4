package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/draftpress/internal/ai"
	"github.com/hoanghai1803/draftpress/internal/storage"
)

// missingKeyMessage is shown on the submission form when no API key is
// configured. Generation is never attempted in that case.
const missingKeyMessage = "GEMINI_API_KEY is not configured. Set it in config.toml or the environment and restart."

// Generate handles POST /generate. It parses the newline-separated titles
// field, generates an article for each title not already stored, appends
// the results to the store in one write, and redirects to the article
// listing. A missing API key re-renders the form with a configuration
// error and leaves the store untouched.
func Generate(store *storage.Store, writer *ai.Writer, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}

		if writer == nil {
			renderPage(w, tmpl, "index.html", indexData{Error: missingKeyMessage})
			return
		}

		titles := splitLines(r.PostFormValue("titles"))
		entries := writer.GenerateBatch(r.Context(), titles, store.TitleSet())

		added, err := store.Append(entries)
		if err != nil {
			slog.Error("failed to persist generated articles", "error", err)
			http.Error(w, "Failed to save generated articles", http.StatusInternalServerError)
			return
		}
		slog.Info("generation batch finished", "requested", len(titles), "added", added)

		http.Redirect(w, r, "/blog", http.StatusSeeOther)
	}
}

// ClearEntries handles POST /clear. It removes all stored articles and
// redirects to the (now empty) listing.
func ClearEntries(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Clear(); err != nil {
			slog.Error("failed to clear articles", "error", err)
			http.Error(w, "Failed to clear articles", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/blog", http.StatusSeeOther)
	}
}
