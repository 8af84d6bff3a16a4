package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
)

// renderPage executes the named template with the given data. Rendering
// failures log and fall back to a plain 500; at that point part of the page
// body may already have been written.
func renderPage(w http.ResponseWriter, tmpl *template.Template, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// splitLines splits a textarea value into its non-empty trimmed lines,
// preserving order.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
