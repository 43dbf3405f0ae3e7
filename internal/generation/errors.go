package generation

import "errors"

// Common errors returned across the provider boundary.
var (
	// ErrInvalidResponse is returned when the content provider's response
	// cannot be parsed into the deck structure. Parse failures are not
	// transient and are never retried.
	ErrInvalidResponse = errors.New("invalid response format from AI")

	// ErrNoImageGenerated is returned when the image provider completes a
	// request without producing an image payload (safety filtering, empty
	// generation). Distinct from transport or rate-limit failures.
	ErrNoImageGenerated = errors.New("no image generated")

	// ErrRateLimited is returned when a provider signals the caller should
	// back off and retry later.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrRetryExhausted is returned when a rate-limited call still fails
	// after the configured retry budget.
	ErrRetryExhausted = errors.New("retry budget exhausted")

	// ErrInvalidConfig is returned when a provider client is constructed
	// with invalid configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
