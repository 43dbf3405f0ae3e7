package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vedasmart/deck-api/internal/generation"
	"github.com/vedasmart/deck-api/internal/task"
)

// TaskSubmitter abstracts the background runner so the service can be
// tested with a synchronous implementation.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// DeckService owns the session registry and fronts the generation pipeline,
// the exporter, and viewer access.
type DeckService struct {
	logger   *slog.Logger
	pipeline *Pipeline
	runner   TaskSubmitter

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewDeckService creates a DeckService from the provided dependencies.
func NewDeckService(pipeline *Pipeline, runner TaskSubmitter, logger *slog.Logger) (*DeckService, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline cannot be nil")
	}
	if runner == nil {
		return nil, errors.New("task runner cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &DeckService{
		logger:   logger,
		pipeline: pipeline,
		runner:   runner,
		sessions: make(map[uuid.UUID]*Session),
	}, nil
}

// StartGeneration validates the request, registers a session, and enqueues
// the generation task. A missing chapter document fails before any session
// state exists.
func (s *DeckService) StartGeneration(
	ctx context.Context,
	chapter generation.Document,
	style *generation.Document,
) (*Session, error) {
	if len(chapter.Data) == 0 {
		return nil, ErrMissingChapter
	}

	session := newSession()
	genTask := newDeckGenerationTask(session, s.pipeline, chapter, style)

	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	if err := s.runner.Submit(ctx, genTask); err != nil {
		s.mu.Lock()
		delete(s.sessions, session.ID())
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to enqueue deck generation: %w", err)
	}

	s.logger.InfoContext(ctx, "deck generation started",
		"session_id", session.ID(),
		"chapter_bytes", len(chapter.Data),
		"style_provided", style != nil)

	return session, nil
}

// GetSession returns the session with the given ID.
func (s *DeckService) GetSession(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Discard drops a session outright. In-flight generation is not cancelled;
// it runs to completion against a session nothing references any more.
func (s *DeckService) Discard(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.logger.Info("deck session discarded", "session_id", id)
	return nil
}

// ReadyDeck returns the completed deck for a session, or ErrDeckNotReady.
func (s *DeckService) ReadyDeck(id uuid.UUID) (*Session, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	if session.Snapshot().State != StateViewingDeck {
		return nil, ErrDeckNotReady
	}
	return session, nil
}
