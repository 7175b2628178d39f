package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (*GeminiPlannerClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlannerClient{client: client, model: model}, nil
}

func (c *GeminiPlannerClient) CompletePlanJSON(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so no brace matching is needed on the way back.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini: response is not valid json")
	}
	return content, nil
}
