package context

import (
	"context"

	"google.golang.org/genai"

	"versekit/core/errors"
)

// Generator produces a raw YAML reply for one verse prompt. The model
// call is behind this interface so processing can be tested without
// network access.
type Generator interface {
	GenerateYAML(ctx context.Context, prompt string) (string, error)
}

// GenAIGenerator calls Google's Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini-backed generator.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.NewValidation("api key", "GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create GenAI client")
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) GenerateYAML(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	})
	if err != nil {
		return "", errors.Wrap(err, "GenAI generate failed")
	}
	return resp.Text(), nil
}
