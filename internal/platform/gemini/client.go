package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/vedasmart/deck-api/internal/config"
	"github.com/vedasmart/deck-api/internal/generation"
)

// newClient creates the shared Gemini API client from LLM configuration.
func newClient(ctx context.Context, cfg config.LLMConfig) (*genai.Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}
	return client, nil
}

// isRateLimited reports whether err is a rate-limit signal from the API:
// HTTP 429, its RESOURCE_EXHAUSTED status, or a "429" marker in the message.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(strings.ToUpper(msg), "RESOURCE_EXHAUSTED")
}

// classifyProviderError wraps rate-limit signals with generation.ErrRateLimited
// so callers can decide retryability with errors.Is; everything else passes
// through unchanged.
func classifyProviderError(err error) error {
	if isRateLimited(err) {
		return fmt.Errorf("%w: %v", generation.ErrRateLimited, err)
	}
	return err
}
