package utils

import (
	"context"
	"fmt"
	"strings"
)

// PlannerClientInterface is the text-completion optimizer port. Implementations
// must return JSON only; any error, timeout or non-JSON payload is treated by
// callers as an unconditional trigger for the deterministic fallback, never
// retried and never surfaced.
type PlannerClientInterface interface {
	CompletePlanJSON(ctx context.Context, prompt string) (string, error)
}

// NewPlannerClient selects a planner backend by provider name.
func NewPlannerClient(provider, apiKey, model string) (PlannerClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIPlannerClient(apiKey, model), nil
	case "gemini":
		client, err := NewGeminiPlannerClient(apiKey, model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported planner provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
