package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/hoanghai1803/draftpress/internal/ai"
	"github.com/hoanghai1803/draftpress/internal/storage"
)

// newTestStore creates a store backed by a file in a fresh temp directory
// and returns it together with the file path.
func newTestStore(t *testing.T) (*storage.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "blogs.json")
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	return store, path
}

// fakeBackend is an ai.Backend whose catalog holds one capable model and
// whose generation either always succeeds or always fails.
type fakeBackend struct {
	fail bool

	mu       sync.Mutex
	genCalls int
}

func (f *fakeBackend) ListModels(ctx context.Context) ([]ai.ModelInfo, error) {
	return []ai.ModelInfo{{Name: "gemini-2.0-flash", Methods: []string{"generateContent"}}}, nil
}

func (f *fakeBackend) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	f.genCalls++
	f.mu.Unlock()

	if f.fail {
		return "", errors.New("503 backend unavailable")
	}
	return "A generated article body.", nil
}

// calls returns the number of generation calls the backend has received.
func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.genCalls
}

// newTestWriter wires a Writer around the fake backend.
func newTestWriter(backend ai.Backend) *ai.Writer {
	return ai.NewWriter(backend, ai.NewResolver(backend))
}

// testTemplates parses minimal stand-ins for the embedded page templates.
func testTemplates(t *testing.T) *template.Template {
	t.Helper()

	const pages = `
{{define "index.html"}}<form>{{if .Error}}<div class="alert">{{.Error}}</div>{{end}}</form>{{end}}
{{define "blog.html"}}{{range .Entries}}<h2>{{.Title}}</h2>{{end}}{{end}}`

	tmpl, err := template.New("pages").Parse(pages)
	if err != nil {
		t.Fatalf("parsing test templates: %v", err)
	}
	return tmpl
}

// postForm builds a form POST request against the given handler and returns
// the recorded response.
func postForm(t *testing.T, handler http.HandlerFunc, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	return w
}
