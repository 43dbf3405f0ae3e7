package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vedasmart/deck-api/internal/domain"
	"github.com/vedasmart/deck-api/internal/viewer"
)

// State is the user-facing generation state surfaced to any front end.
type State string

// The five user-facing states. Idle is only observable as the implicit
// state after a fatal failure; a live session starts at Uploading.
const (
	StateIdle              State = "IDLE"
	StateUploading         State = "UPLOADING"
	StateGeneratingContent State = "GENERATING_CONTENT"
	StateGeneratingImages  State = "GENERATING_IMAGES"
	StateViewingDeck       State = "VIEWING_DECK"
)

// Status is an immutable snapshot of a session.
type Status struct {
	State    State
	Progress float64
	Error    string
	Warning  string
	Deck     *domain.ChapterContent
}

// Session is one deck generation request and its observable lifecycle. The
// pipeline owns the working deck exclusively until it reaches the viewing
// state; afterwards the deck is read-mostly and the viewer's answer map is
// the only further mutation, disjoint from the deck itself.
type Session struct {
	id        uuid.UUID
	createdAt time.Time

	mu       sync.RWMutex
	state    State
	progress float64
	errMsg   string
	warning  string
	deck     *domain.ChapterContent
	view     *viewer.Viewer
}

func newSession() *Session {
	return &Session{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		state:     StateUploading,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Snapshot returns the current status.
func (s *Session) Snapshot() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		State:    s.state,
		Progress: s.progress,
		Error:    s.errMsg,
		Warning:  s.warning,
		Deck:     s.deck,
	}
}

// Deck returns the working deck, which may be nil before the structure
// fetch completes.
func (s *Session) Deck() *domain.ChapterContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck
}

// Viewer returns the viewing session for a completed deck, creating it on
// first use. It returns nil until the deck is ready.
func (s *Session) Viewer() *viewer.Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateViewingDeck || s.deck == nil {
		return nil
	}
	if s.view == nil {
		s.view = viewer.New(s.deck)
	}
	return s.view
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// setProgress raises the progress value; progress is monotonic and clamped
// to [0,100].
func (s *Session) setProgress(p float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p > 100 {
		p = 100
	}
	if p > s.progress {
		s.progress = p
	}
}

func (s *Session) installDeck(deck *domain.ChapterContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
}

func (s *Session) setWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warning = msg
}

// fail records a fatal failure: the session returns to the idle state, the
// message is surfaced, and any partial deck is discarded.
func (s *Session) fail(msg string) {
	if msg == "" {
		msg = fallbackErrorMessage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.errMsg = msg
	s.deck = nil
	s.view = nil
}
