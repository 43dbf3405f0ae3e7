package service

import "errors"

// Common errors returned by the service layer.
var (
	// ErrMissingChapter is returned when a generation request has no chapter
	// document. Surfaced to the caller before any state transition.
	ErrMissingChapter = errors.New("chapter document is required")

	// ErrSessionNotFound is returned when no session exists for an ID.
	ErrSessionNotFound = errors.New("deck session not found")

	// ErrDeckNotReady is returned when an operation needs a completed deck
	// but generation has not reached the ready state.
	ErrDeckNotReady = errors.New("deck is not ready")
)

// fallbackErrorMessage is shown when a fatal failure carries no message.
const fallbackErrorMessage = "An error occurred. Please try again later."

// imageWarningMessage is the single collective warning emitted when some
// diagrams fail; per-slide detail is not surfaced.
const imageWarningMessage = "Some educational diagrams could not be generated due to rate limits."
