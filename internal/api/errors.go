package api

import (
	"errors"
	"net/http"

	"github.com/vedasmart/deck-api/internal/export"
	"github.com/vedasmart/deck-api/internal/service"
	"github.com/vedasmart/deck-api/internal/viewer"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, viewer.ErrUnknownSlide):
		return http.StatusNotFound

	case errors.Is(err, service.ErrDeckNotReady),
		errors.Is(err, export.ErrEmptyDeck):
		return http.StatusConflict

	case errors.Is(err, service.ErrMissingChapter),
		errors.Is(err, viewer.ErrNotQuizSlide),
		errors.Is(err, viewer.ErrInvalidOption):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// given error.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Deck session not found"

	case errors.Is(err, service.ErrDeckNotReady):
		return "Deck generation has not finished yet"

	case errors.Is(err, export.ErrEmptyDeck):
		return "Deck has no slides to export"

	case errors.Is(err, service.ErrMissingChapter):
		return "A chapter document is required"

	case errors.Is(err, viewer.ErrUnknownSlide):
		return "Slide not found"

	case errors.Is(err, viewer.ErrNotQuizSlide):
		return "Slide is not a quiz slide"

	case errors.Is(err, viewer.ErrInvalidOption):
		return "Answer option is out of range"

	default:
		return "An unexpected error occurred"
	}
}
