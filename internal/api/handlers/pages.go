package handlers

import (
	"html/template"
	"net/http"

	"github.com/hoanghai1803/draftpress/internal/models"
	"github.com/hoanghai1803/draftpress/internal/storage"
)

// indexData is the template payload for the submission form page.
type indexData struct {
	Error string
}

// blogData is the template payload for the article listing page.
type blogData struct {
	Entries []models.BlogEntry
}

// Home handles GET /. It renders the title submission form.
func Home(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, tmpl, "index.html", indexData{})
	}
}

// ListEntries handles GET /blog. It renders all stored articles in
// insertion order.
func ListEntries(store *storage.Store, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, tmpl, "blog.html", blogData{Entries: store.Entries()})
	}
}
