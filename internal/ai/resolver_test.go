package ai

import (
	"context"
	"errors"
	"testing"
)

func TestResolve_PrefersRankedModel(t *testing.T) {
	backend := &fakeBackend{
		models: []ModelInfo{
			// Preferred name but not generation-capable; must be skipped.
			{Name: "gemini-2.0-flash", Methods: []string{"embedContent"}},
			capableModel("gemini-1.5-pro"),
			capableModel("gemini-2.5-flash-lite"),
		},
	}
	r := NewResolver(backend)

	got := r.Resolve(context.Background())
	if got != "gemini-2.5-flash-lite" {
		t.Errorf("Resolve() = %q, want %q", got, "gemini-2.5-flash-lite")
	}
}

func TestResolve_RankOrderBeatsCatalogOrder(t *testing.T) {
	backend := &fakeBackend{
		models: []ModelInfo{
			capableModel("gemini-2.5-flash-lite"),
			capableModel("gemini-2.0-flash"),
		},
	}
	r := NewResolver(backend)

	// gemini-2.0-flash ranks higher even though it appears later.
	got := r.Resolve(context.Background())
	if got != "gemini-2.0-flash" {
		t.Errorf("Resolve() = %q, want %q", got, "gemini-2.0-flash")
	}
}

func TestResolve_FamilyScanSkipsPreviews(t *testing.T) {
	backend := &fakeBackend{
		models: []ModelInfo{
			capableModel("gemini-3.0-flash-preview"),
			capableModel("gemini-flash-exp-0827"),
			capableModel("gemini-1.5-flash-002"),
		},
	}
	r := NewResolver(backend)

	got := r.Resolve(context.Background())
	if got != "gemini-1.5-flash-002" {
		t.Errorf("Resolve() = %q, want %q", got, "gemini-1.5-flash-002")
	}
}

func TestResolve_AnyCapableAsLastResort(t *testing.T) {
	backend := &fakeBackend{
		models: []ModelInfo{
			{Name: "imagen-3.0", Methods: []string{"generateImage"}},
			capableModel("chat-bison-001"),
		},
	}
	r := NewResolver(backend)

	got := r.Resolve(context.Background())
	if got != "chat-bison-001" {
		t.Errorf("Resolve() = %q, want %q", got, "chat-bison-001")
	}
}

func TestResolve_CatalogErrorUsesDefaultUncached(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("401 unauthorized")}
	r := NewResolver(backend)

	ctx := context.Background()
	if got := r.Resolve(ctx); got != DefaultModel {
		t.Errorf("Resolve() = %q, want default %q", got, DefaultModel)
	}

	// The default was never confirmed, so it must not be cached: a second
	// call re-queries the catalog.
	r.Resolve(ctx)
	if backend.listCalls != 2 {
		t.Errorf("listCalls = %d, want 2 (default must not be cached)", backend.listCalls)
	}
}

func TestResolve_EmptyCatalogUsesDefault(t *testing.T) {
	backend := &fakeBackend{}
	r := NewResolver(backend)

	if got := r.Resolve(context.Background()); got != DefaultModel {
		t.Errorf("Resolve() = %q, want default %q", got, DefaultModel)
	}
}

func TestResolve_CachedIsIdempotent(t *testing.T) {
	backend := &fakeBackend{
		models: []ModelInfo{capableModel("gemini-2.0-flash")},
	}
	r := NewResolver(backend)

	ctx := context.Background()
	first := r.Resolve(ctx)
	second := r.Resolve(ctx)

	if first != second {
		t.Errorf("Resolve() returned %q then %q, want identical results", first, second)
	}
	if backend.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1 (cached identifier must not re-query)", backend.listCalls)
	}
}

func TestRememberAndInvalidate(t *testing.T) {
	backend := &fakeBackend{
		models: []ModelInfo{capableModel("gemini-2.0-flash")},
	}
	r := NewResolver(backend)
	ctx := context.Background()

	r.Remember("gemini-pro-latest")
	if got := r.Resolve(ctx); got != "gemini-pro-latest" {
		t.Errorf("Resolve() after Remember = %q, want %q", got, "gemini-pro-latest")
	}
	if backend.listCalls != 0 {
		t.Errorf("listCalls = %d, want 0 (remembered identifier must not query)", backend.listCalls)
	}

	r.Invalidate()
	if got := r.Resolve(ctx); got != "gemini-2.0-flash" {
		t.Errorf("Resolve() after Invalidate = %q, want %q", got, "gemini-2.0-flash")
	}
	if backend.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1 (invalidated slot must re-resolve)", backend.listCalls)
	}
}
