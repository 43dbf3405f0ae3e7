// Package viewer implements the interactive deck viewer state: one slide
// visible at a time with bounded navigation, and at most one locked quiz
// answer per slide. Viewer state is ephemeral and per session; it is never
// written back into the deck.
package viewer

import (
	"errors"
	"sync"

	"github.com/vedasmart/deck-api/internal/domain"
)

// Errors returned by viewer operations.
var (
	ErrUnknownSlide = errors.New("unknown slide ID")
	ErrNotQuizSlide = errors.New("slide is not a quiz slide")
	ErrInvalidOption = errors.New("option index out of range")
)

// Reveal describes the answer state of a quiz slide after it is answered.
// The correct option is always highlighted; the selected option is
// highlighted separately only when it is wrong.
type Reveal struct {
	Selected    int
	Correct     int
	WasCorrect  bool
	Explanation string
}

// Viewer tracks a single viewing session over a completed deck. The deck
// itself is treated as read-only.
type Viewer struct {
	deck *domain.ChapterContent

	mu      sync.Mutex
	index   int
	answers map[string]int
}

// New creates a viewer positioned at the first slide.
func New(deck *domain.ChapterContent) *Viewer {
	return &Viewer{
		deck:    deck,
		answers: make(map[string]int),
	}
}

// Index returns the current slide position.
func (v *Viewer) Index() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.index
}

// Current returns the slide at the current position.
func (v *Viewer) Current() domain.Slide {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.deck.Slides[v.index]
}

// Next advances one slide. At the last slide it is a no-op and reports false.
func (v *Viewer) Next() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.index >= len(v.deck.Slides)-1 {
		return false
	}
	v.index++
	return true
}

// Prev steps back one slide. At slide zero it is a no-op and reports false.
func (v *Viewer) Prev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.index <= 0 {
		return false
	}
	v.index--
	return true
}

// SelectOption records an answer for the quiz slide with the given ID.
// The first recorded answer locks the slide: later selections leave the
// recorded answer unchanged and return the original reveal.
func (v *Viewer) SelectOption(slideID string, option int) (Reveal, error) {
	slide := v.deck.SlideByID(slideID)
	if slide == nil {
		return Reveal{}, ErrUnknownSlide
	}
	quiz, ok := slide.(*domain.QuizSlide)
	if !ok {
		return Reveal{}, ErrNotQuizSlide
	}
	if option < 0 || option >= len(quiz.Quiz.Options) {
		return Reveal{}, ErrInvalidOption
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	recorded, answered := v.answers[slideID]
	if !answered {
		v.answers[slideID] = option
		recorded = option
	}

	return Reveal{
		Selected:    recorded,
		Correct:     quiz.Quiz.CorrectAnswer,
		WasCorrect:  recorded == quiz.Quiz.CorrectAnswer,
		Explanation: quiz.Quiz.Explanation,
	}, nil
}

// Answer returns the recorded answer for a slide, if any.
func (v *Viewer) Answer(slideID string) (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	option, ok := v.answers[slideID]
	return option, ok
}
