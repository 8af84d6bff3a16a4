package ai

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// DefaultModel is used when the catalog cannot be queried at all.
const DefaultModel = "gemini-2.0-flash"

// preferredModels is the ranked preference list scanned against the
// catalog: stable, fast, cheap models first.
var preferredModels = []string{
	"gemini-2.0-flash",
	"gemini-2.5-flash-lite",
}

// Resolver picks the model identifier to generate with. It memoizes the
// last confirmed-working identifier in a single slot; the slot is cleared
// when a generation attempt exhausts every candidate, forcing the next
// resolution to re-query the catalog.
type Resolver struct {
	backend Backend

	mu    sync.Mutex
	model string // empty means unresolved
}

// NewResolver creates a Resolver with an empty slot.
func NewResolver(backend Backend) *Resolver {
	return &Resolver{backend: backend}
}

// Resolve returns the model identifier to try first. A cached identifier
// wins immediately with no re-validation. Otherwise the catalog is queried
// and scanned in three passes: the ranked preference list, then any stable
// flash or pro model (previews and experiments excluded), then the first
// model capable of generation at all. The winner is cached. Resolve never
// fails: when the catalog query errors or yields nothing usable it returns
// DefaultModel, uncached because it was never confirmed to exist.
func (r *Resolver) Resolve(ctx context.Context) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.model != "" {
		return r.model
	}

	models, err := r.backend.ListModels(ctx)
	if err != nil {
		slog.Warn("listing models failed, using default", "model", DefaultModel, "error", err)
		return DefaultModel
	}

	if name, ok := pickModel(models); ok {
		r.model = name
		slog.Info("resolved model", "model", name)
		return name
	}

	slog.Warn("no capable model in catalog, using default", "model", DefaultModel)
	return DefaultModel
}

// Remember caches a confirmed-working identifier.
func (r *Resolver) Remember(model string) {
	r.mu.Lock()
	r.model = model
	r.mu.Unlock()
}

// Invalidate clears the cached identifier so the next Resolve re-queries
// the catalog.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.model = ""
	r.mu.Unlock()
}

// pickModel scans the catalog for the best generation-capable model.
func pickModel(models []ModelInfo) (string, bool) {
	for _, preferred := range preferredModels {
		for _, m := range models {
			if m.SupportsGeneration() && m.Name == preferred {
				return m.Name, true
			}
		}
	}

	// Any stable flash or pro model, skipping previews and experiments.
	for _, m := range models {
		if !m.SupportsGeneration() {
			continue
		}
		name := strings.ToLower(m.Name)
		if strings.Contains(name, "preview") || strings.Contains(name, "exp") {
			continue
		}
		if strings.Contains(name, "flash") || strings.Contains(name, "pro") {
			return m.Name, true
		}
	}

	// Last resort: any model capable of generation.
	for _, m := range models {
		if m.SupportsGeneration() {
			return m.Name, true
		}
	}

	return "", false
}
