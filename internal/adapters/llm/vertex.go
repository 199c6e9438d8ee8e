package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

// VertexGenerator implements domain.TextGenerator on Vertex AI (Gemini).
type VertexGenerator struct {
	client    *genai.Client
	modelName string
}

func NewVertexGenerator(ctx context.Context, projectID, location, modelName string) (*VertexGenerator, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("project id and location are required for Vertex AI")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexGenerator{
		client:    client,
		modelName: modelName,
	}, nil
}

// Generate implements domain.TextGenerator using Vertex AI.
func (v *VertexGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(256)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return "", fmt.Errorf("vertex: %w", domain.ErrRateLimited)
		}
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("vertex returned empty text")
	}

	return text, nil
}
