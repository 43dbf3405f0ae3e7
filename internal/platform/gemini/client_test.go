package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/vedasmart/deck-api/internal/generation"
)

func TestIsRateLimited(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"api error 429", genai.APIError{Code: 429, Message: "quota exceeded"}, true},
		{"api error 500", genai.APIError{Code: 500, Message: "internal"}, false},
		{"message marker", errors.New("googleapi: Error 429: rate limit"), true},
		{"resource exhausted", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{"plain failure", errors.New("connection refused"), false},
		{"wrapped api error", fmt.Errorf("call failed: %w", genai.APIError{Code: 429}), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, isRateLimited(tc.err))
		})
	}
}

func TestClassifyProviderError(t *testing.T) {
	t.Parallel()

	t.Run("rate limit gets wrapped", func(t *testing.T) {
		t.Parallel()
		err := classifyProviderError(genai.APIError{Code: 429})
		assert.ErrorIs(t, err, generation.ErrRateLimited)
	})

	t.Run("other errors unchanged", func(t *testing.T) {
		t.Parallel()
		original := errors.New("connection refused")
		assert.Same(t, original, classifyProviderError(original))
	})
}
