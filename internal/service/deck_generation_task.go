package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vedasmart/deck-api/internal/generation"
	"github.com/vedasmart/deck-api/internal/task"
)

// deckGenerationTask runs one session's pipeline on the task runner.
type deckGenerationTask struct {
	id       uuid.UUID
	session  *Session
	pipeline *Pipeline
	chapter  generation.Document
	style    *generation.Document

	mu     sync.Mutex
	status task.TaskStatus
}

var _ task.Task = (*deckGenerationTask)(nil)

func newDeckGenerationTask(
	session *Session,
	pipeline *Pipeline,
	chapter generation.Document,
	style *generation.Document,
) *deckGenerationTask {
	return &deckGenerationTask{
		id:       uuid.New(),
		session:  session,
		pipeline: pipeline,
		chapter:  chapter,
		style:    style,
		status:   task.TaskStatusPending,
	}
}

// ID returns the task's unique identifier.
func (t *deckGenerationTask) ID() uuid.UUID { return t.id }

// Type returns the task type identifier.
func (t *deckGenerationTask) Type() string { return task.TaskTypeDeckGeneration }

// Status returns the current task status.
func (t *deckGenerationTask) Status() task.TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *deckGenerationTask) setStatus(s task.TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = s
}

// Execute runs the generation pipeline for the session.
func (t *deckGenerationTask) Execute(ctx context.Context) error {
	t.setStatus(task.TaskStatusProcessing)

	if err := t.pipeline.Run(ctx, t.session, t.chapter, t.style); err != nil {
		t.setStatus(task.TaskStatusFailed)
		return err
	}

	t.setStatus(task.TaskStatusCompleted)
	return nil
}
