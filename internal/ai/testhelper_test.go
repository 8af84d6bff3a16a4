package ai

import "context"

// fakeBackend scripts catalog and generation behavior for tests and records
// every call it receives.
type fakeBackend struct {
	models    []ModelInfo
	listErr   error
	listCalls int

	failing map[string]error // per-model generation failures
	failAll error            // when set, every generation call fails with this
	text    string           // returned on success; defaults to "article text"

	genCalls []string // models passed to GenerateText, in call order
}

func (f *fakeBackend) ListModels(ctx context.Context) ([]ModelInfo, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.models, nil
}

func (f *fakeBackend) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	f.genCalls = append(f.genCalls, model)

	if f.failAll != nil {
		return "", f.failAll
	}
	if err, ok := f.failing[model]; ok {
		return "", err
	}

	if f.text != "" {
		return f.text, nil
	}
	return "article text", nil
}

// capableModel builds a ModelInfo that supports content generation.
func capableModel(name string) ModelInfo {
	return ModelInfo{Name: name, Methods: []string{"generateContent"}}
}
