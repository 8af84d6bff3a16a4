package ai

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestExtractText(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		if _, err := extractText(nil); err == nil {
			t.Error("extractText(nil) expected error")
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{}
		if _, err := extractText(resp); err == nil {
			t.Error("extractText() expected error for empty candidates")
		}
	})

	t.Run("blocked candidate with nil content", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: nil, FinishReason: genai.FinishReasonSafety},
			},
		}

		text, err := extractText(resp)
		if err == nil {
			t.Fatalf("extractText() = %q, expected error for nil content", text)
		}
	})

	t.Run("no text part", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
			},
		}

		if _, err := extractText(resp); err == nil {
			t.Error("extractText() expected error when no part is text")
		}
	})

	t.Run("returns first text part", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("An article.")}}},
			},
		}

		text, err := extractText(resp)
		if err != nil {
			t.Fatalf("extractText() error: %v", err)
		}
		if text != "An article." {
			t.Errorf("extractText() = %q, want %q", text, "An article.")
		}
	})
}
