package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Compile-time interface check.
var _ Backend = (*GeminiBackend)(nil)

// GeminiBackend implements Backend using the official Gemini SDK.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend creates a Gemini client authenticated with the given
// API key.
func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key must not be empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiBackend{client: client}, nil
}

// ListModels returns the Gemini model catalog. Identifiers are normalized
// by stripping the "models/" prefix the API prepends.
func (b *GeminiBackend) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var infos []ModelInfo

	it := b.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing models: %w", err)
		}

		infos = append(infos, ModelInfo{
			Name:    strings.TrimPrefix(m.Name, "models/"),
			Methods: m.SupportedGenerationMethods,
		})
	}

	return infos, nil
}

// GenerateText generates a completion of prompt with the given model and
// returns the text of the first candidate.
func (b *GeminiBackend) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating with %q: %w", model, err)
	}

	return extractText(resp)
}

// extractText pulls the text content out of the first response candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	// Safety-blocked finishes come back as a candidate with nil Content.
	if resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content in response")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}

	return "", fmt.Errorf("no text part in response")
}

// Close releases the underlying client connection.
func (b *GeminiBackend) Close() error {
	return b.client.Close()
}
