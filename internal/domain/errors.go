// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common validation errors for deck entities.
var (
	// ErrEmptyDeck is returned when a deck has no slides.
	ErrEmptyDeck = errors.New("deck must contain at least one slide")

	// ErrEmptyChapterTitle is returned when a deck has no chapter title.
	ErrEmptyChapterTitle = errors.New("chapter title cannot be empty")

	// ErrEmptySubject is returned when a deck has no subject.
	ErrEmptySubject = errors.New("subject cannot be empty")

	// ErrMissingThemeColor is returned when one of the five required theme
	// colors is absent. A missing color is a provider contract violation,
	// never defaulted.
	ErrMissingThemeColor = errors.New("theme color missing")

	// ErrEmptySlideID is returned when a slide has no identifier.
	ErrEmptySlideID = errors.New("slide ID cannot be empty")

	// ErrDuplicateSlideID is returned when two slides in a deck share an
	// identifier. Slide IDs key viewer state, so they must be unique.
	ErrDuplicateSlideID = errors.New("duplicate slide ID")

	// ErrEmptySlideTitle is returned when a slide has no display title.
	ErrEmptySlideTitle = errors.New("slide title cannot be empty")

	// ErrEmptyQuizQuestion is returned when a quiz slide has no question.
	ErrEmptyQuizQuestion = errors.New("quiz question cannot be empty")

	// ErrInvalidQuizOptions is returned when a quiz slide does not carry
	// exactly four answer options.
	ErrInvalidQuizOptions = errors.New("quiz must have exactly four options")

	// ErrInvalidCorrectAnswer is returned when the correct-answer index does
	// not point at one of the options.
	ErrInvalidCorrectAnswer = errors.New("correct answer index out of range")

	// ErrEmptyQuizExplanation is returned when a quiz slide has no explanation.
	ErrEmptyQuizExplanation = errors.New("quiz explanation cannot be empty")
)
