package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/draftpress/internal/ai"
	"github.com/hoanghai1803/draftpress/internal/api/handlers"
	"github.com/hoanghai1803/draftpress/internal/config"
	"github.com/hoanghai1803/draftpress/internal/feeds"
	"github.com/hoanghai1803/draftpress/internal/storage"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// NewRouter creates and configures the HTTP router with all page routes and
// static file serving. writer may be nil when no API key is configured;
// routes that generate content surface a configuration error in that case.
func NewRouter(store *storage.Store, writer *ai.Writer, fetcher *feeds.Fetcher, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))

	r.Get("/", handlers.Home(tmpl))
	r.Post("/generate", handlers.Generate(store, writer, tmpl))
	r.Get("/blog", handlers.ListEntries(store, tmpl))
	r.Post("/clear", handlers.ClearEntries(store))
	r.Post("/import/feed", handlers.ImportFeeds(store, writer, fetcher, cfg, tmpl))
	r.Post("/import/url", handlers.ImportURLs(store, fetcher))

	// Embedded stylesheet; the embed path already carries the static/ prefix.
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	return r
}
