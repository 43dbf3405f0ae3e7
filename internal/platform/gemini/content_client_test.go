package gemini

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/vedasmart/deck-api/internal/config"
	"github.com/vedasmart/deck-api/internal/generation"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:         "test-api-key",
		ContentModel:         "gemini-3-pro-preview",
		ImageModel:           "gemini-2.5-flash-image",
		MaxRetries:           3,
		RetryBaseDelayMillis: 1000,
	}
}

func TestNewContentClientValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewContentClient(ctx, nil, testLLMConfig())
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("missing API key", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.GeminiAPIKey = ""
		_, err := NewContentClient(ctx, slog.Default(), cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.ContentModel = ""
		_, err := NewContentClient(ctx, slog.Default(), cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("bad template path", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.PromptTemplatePath = "/nonexistent/prompt.tmpl"
		_, err := NewContentClient(ctx, slog.Default(), cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("valid", func(t *testing.T) {
		client, err := NewContentClient(ctx, slog.Default(), testLLMConfig())
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestBuildPrompt(t *testing.T) {
	client, err := NewContentClient(context.Background(), slog.Default(), testLLMConfig())
	require.NoError(t, err)

	t.Run("without style sample", func(t *testing.T) {
		prompt, err := client.buildPrompt(false)
		require.NoError(t, err)
		assert.Contains(t, prompt, "TITLE")
		assert.Contains(t, prompt, "imagePrompt")
		assert.Contains(t, prompt, "quizData")
		assert.NotContains(t, prompt, "Style Sample")
	})

	t.Run("with style sample", func(t *testing.T) {
		prompt, err := client.buildPrompt(true)
		require.NoError(t, err)
		assert.Contains(t, prompt, "Style Sample")
		assert.Contains(t, prompt, "theme")
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := client.buildPrompt(false)
		require.NoError(t, err)
		b, err := client.buildPrompt(false)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestResponseText(t *testing.T) {
	t.Parallel()

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		_, err := responseText(nil)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		_, err := responseText(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("safety blocked", func(t *testing.T) {
		t.Parallel()
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}
		_, err := responseText(resp)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("concatenates text parts", func(t *testing.T) {
		t.Parallel()
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: `{"chapterTitle":`},
					{Text: `"X"}`},
				}},
			}},
		}
		text, err := responseText(resp)
		require.NoError(t, err)
		assert.Equal(t, `{"chapterTitle":"X"}`, text)
	})
}
