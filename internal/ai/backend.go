package ai

import (
	"context"
	"slices"
)

// ModelInfo describes one entry from the backend model catalog.
type ModelInfo struct {
	// Name is the model identifier with the "models/" prefix stripped.
	Name string
	// Methods lists the generation methods the model supports.
	Methods []string
}

// SupportsGeneration reports whether the model can serve content
// generation requests.
func (m ModelInfo) SupportsGeneration() bool {
	return slices.Contains(m.Methods, "generateContent")
}

// Backend is the narrow surface of the generation service the rest of the
// application depends on.
type Backend interface {
	// ListModels returns the backend's model catalog.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// GenerateText asks the named model to complete the prompt and
	// returns the generated text.
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}
