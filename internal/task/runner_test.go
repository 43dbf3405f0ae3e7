package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTask is a controllable Task implementation for runner tests.
type fakeTask struct {
	id       uuid.UUID
	taskType string
	status   TaskStatus
	execute  func(ctx context.Context) error
}

func newFakeTask(execute func(ctx context.Context) error) *fakeTask {
	return &fakeTask{
		id:       uuid.New(),
		taskType: TaskTypeDeckGeneration,
		status:   TaskStatusPending,
		execute:  execute,
	}
}

func (t *fakeTask) ID() uuid.UUID      { return t.id }
func (t *fakeTask) Type() string       { return t.taskType }
func (t *fakeTask) Status() TaskStatus { return t.status }
func (t *fakeTask) Execute(ctx context.Context) error {
	if t.execute != nil {
		return t.execute(ctx)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func TestRunnerExecutesSubmittedTasks(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 4}, testLogger())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	done := make(chan struct{})
	task := newFakeTask(func(_ context.Context) error {
		close(done)
		return nil
	})

	require.NoError(t, runner.Submit(context.Background(), task))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not executed")
	}
}

func TestRunnerSingleWorkerIsSequential(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 8}, testLogger())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	var mu sync.Mutex
	var order []int
	var active int
	var maxActive int

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		i := i
		wg.Add(1)
		task := newFakeTask(func(_ context.Context) error {
			defer wg.Done()
			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			order = append(order, i)
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			return nil
		})
		require.NoError(t, runner.Submit(context.Background(), task))
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3}, order, "tasks run in submission order")
	assert.Equal(t, 1, maxActive, "only one task runs at a time")
}

func TestRunnerCallsErrorHandlerOnFailure(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 4}, testLogger())

	handled := make(chan error, 1)
	runner.SetErrorHandler(func(_ Task, err error) {
		handled <- err
	})
	require.NoError(t, runner.Start())
	defer runner.Stop()

	boom := errors.New("generation blew up")
	require.NoError(t, runner.Submit(context.Background(), newFakeTask(func(_ context.Context) error {
		return boom
	})))

	select {
	case err := <-handled:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("error handler was not called")
	}
}

func TestRunnerRecoversFromPanic(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 4}, testLogger())

	handled := make(chan error, 1)
	runner.SetErrorHandler(func(_ Task, err error) {
		handled <- err
	})
	require.NoError(t, runner.Start())
	defer runner.Stop()

	require.NoError(t, runner.Submit(context.Background(), newFakeTask(func(_ context.Context) error {
		panic("exporter bug")
	})))

	select {
	case err := <-handled:
		assert.Contains(t, err.Error(), "panicked")
	case <-time.After(2 * time.Second):
		t.Fatal("panic was not converted to an error")
	}

	// The worker must survive the panic and process subsequent tasks.
	done := make(chan struct{})
	require.NoError(t, runner.Submit(context.Background(), newFakeTask(func(_ context.Context) error {
		close(done)
		return nil
	})))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

func TestQueueFullRejectsSubmission(t *testing.T) {
	t.Parallel()

	// Runner not started: nothing drains the queue.
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, testLogger())

	require.NoError(t, runner.Submit(context.Background(), newFakeTask(nil)))
	err := runner.Submit(context.Background(), newFakeTask(nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestQueueClosedRejectsSubmission(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(1, testLogger())
	queue.Close()
	assert.ErrorIs(t, queue.Enqueue(newFakeTask(nil)), ErrQueueClosed)

	// Closing twice is safe.
	queue.Close()
}
