package ai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/hoanghai1803/draftpress/internal/models"
)

// fallbackModels is tried in order after the resolved model when a
// generation call fails.
var fallbackModels = []string{
	"gemini-2.0-flash",
	"gemini-2.5-flash",
	"gemini-pro-latest",
	"gemini-flash-latest",
}

const articlePromptTmpl = `Write a comprehensive, engaging blog post about: %s

Requirements:
- Write at least 500 words
- Use clear headings and subheadings
- Include an introduction and conclusion
- Make it informative and well-structured
- Use a professional but engaging tone`

// GenerationError reports that every candidate model failed for one title.
type GenerationError struct {
	Tried []string // candidate identifiers, in the order attempted
	Last  error    // failure from the last candidate tried
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating article failed: %v (tried models: %s)",
		e.Last, strings.Join(e.Tried, ", "))
}

func (e *GenerationError) Unwrap() error {
	return e.Last
}

// Writer generates article drafts through a Backend, falling back across
// candidate models on failure.
type Writer struct {
	backend  Backend
	resolver *Resolver
}

// NewWriter creates a Writer that resolves models through resolver.
func NewWriter(backend Backend, resolver *Resolver) *Writer {
	return &Writer{backend: backend, resolver: resolver}
}

// ArticlePrompt builds the generation prompt for the given title.
func ArticlePrompt(title string) string {
	return fmt.Sprintf(articlePromptTmpl, title)
}

// WriteArticle generates the article text for one title. Candidates are the
// resolved model followed by the fixed fallback list, de-duplicated while
// preserving first occurrence. They are tried in order; the first success
// is remembered as the resolved model and returned immediately. When every
// candidate fails the resolver slot is invalidated and a *GenerationError
// carrying the last failure and the attempted candidates is returned.
func (w *Writer) WriteArticle(ctx context.Context, title string) (string, error) {
	prompt := ArticlePrompt(title)
	candidates := candidateModels(w.resolver.Resolve(ctx))

	var lastErr error
	for _, model := range candidates {
		text, err := w.backend.GenerateText(ctx, model, prompt)
		if err != nil {
			slog.Warn("generation attempt failed", "title", title, "model", model, "error", err)
			lastErr = err
			continue
		}

		w.resolver.Remember(model)
		return text, nil
	}

	w.resolver.Invalidate()
	return "", &GenerationError{Tried: candidates, Last: lastErr}
}

// GenerateBatch generates an entry for each requested title not yet present
// in existing. Titles are processed in order: blanks are skipped, titles
// already in existing (case-insensitive, accumulated across the batch) are
// skipped silently, and a title whose generation fails is skipped without
// aborting the batch or being marked existing. existing is mutated as
// entries are produced. Persisting the results is left to the caller.
func (w *Writer) GenerateBatch(ctx context.Context, titles []string, existing map[string]struct{}) []models.BlogEntry {
	var entries []models.BlogEntry

	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		key := strings.ToLower(title)
		if _, ok := existing[key]; ok {
			continue
		}

		content, err := w.WriteArticle(ctx, title)
		if err != nil {
			slog.Warn("skipping title, generation failed", "title", title, "error", err)
			continue
		}

		entries = append(entries, models.BlogEntry{Title: title, Content: content})
		existing[key] = struct{}{}
		slog.Info("generated article", "title", title, "words", len(strings.Fields(content)))
	}

	return entries
}

// candidateModels returns resolved followed by the fallback list, keeping
// only the first occurrence of each identifier.
func candidateModels(resolved string) []string {
	candidates := []string{resolved}
	for _, fallback := range fallbackModels {
		if !slices.Contains(candidates, fallback) {
			candidates = append(candidates, fallback)
		}
	}
	return candidates
}
