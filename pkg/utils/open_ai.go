package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIPlannerClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIPlannerClient(apiKey, model string) *OpenAIPlannerClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIPlannerClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIPlannerClient) CompletePlanJSON(ctx context.Context, prompt string) (string, error) {
	// Single attempt with a hard timeout; the caller falls back on any error.
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a travel day planner. Respond with JSON only, no markdown, no prose.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}

	content := resp.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("openai: response is not valid json")
	}
	return content, nil
}
