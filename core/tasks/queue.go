package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"valortracker/core/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressFunc publishes intermediate progress of a running task.
type ProgressFunc func(progress map[string]int)

// Handler executes one task and returns a JSON serialisable result.
type Handler func(ctx context.Context, task *Task, report ProgressFunc) (any, error)

// RetryHinter is implemented by errors that carry the earliest useful retry delay.
type RetryHinter interface {
	RetryAfterHint() time.Duration
}

// retryDelay waits at least base, longer when err hints at a later retry.
func retryDelay(base time.Duration, err error) time.Duration {
	var h RetryHinter
	if errors.As(err, &h) {
		if hint := h.RetryAfterHint(); hint > base {
			return hint
		}
	}
	return base
}

// Config holds worker pool settings.
type Config struct {
	Workers     int
	QueueSize   int
	MaxAttempts int
	RetryDelay  time.Duration
	TTL         time.Duration
}

// Queue is a fixed worker pool whose task state lives in a cache.Cache,
// so any process sharing the cache can poll a handle.
type Queue struct {
	store     cache.Cache
	cfg       Config
	logger    *zap.Logger
	retryable func(error) bool

	mu       sync.RWMutex
	handlers map[string]Handler

	jobs chan *Task
	wg   sync.WaitGroup
}

// NewQueue creates a queue. retryable decides which handler errors are retried;
// nil retries nothing.
func NewQueue(store cache.Cache, cfg Config, logger *zap.Logger, retryable func(error) bool) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if retryable == nil {
		retryable = func(error) bool { return false }
	}
	return &Queue{
		store:     store,
		cfg:       cfg,
		logger:    logger,
		retryable: retryable,
		handlers:  make(map[string]Handler),
		jobs:      make(chan *Task, cfg.QueueSize),
	}
}

// Register binds a handler to a task kind.
func (q *Queue) Register(kind string, h Handler) {
	q.mu.Lock()
	q.handlers[kind] = h
	q.mu.Unlock()
}

// Start launches the workers. They stop when ctx is cancelled; use Wait to join them.
func (q *Queue) Start(ctx context.Context) {
	q.wg.Add(q.cfg.Workers)
	for i := 0; i < q.cfg.Workers; i++ {
		go func() {
			defer q.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-q.jobs:
					q.run(ctx, task)
				}
			}
		}()
	}
}

// Wait blocks until every worker has exited.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// Submit persists a queued task and hands it to the pool.
func (q *Queue) Submit(ctx context.Context, kind string, payload any) (string, error) {
	q.mu.RLock()
	_, ok := q.handlers[kind]
	q.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode task payload: %w", err)
	}

	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.NewString(),
		Kind:      kind,
		State:     StateQueued,
		Payload:   raw,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := q.save(ctx, task); err != nil {
		return "", err
	}

	select {
	case q.jobs <- task:
		return task.ID, nil
	default:
		task.State = StateFailed
		task.Error = ErrQueueFull.Error()
		task.Retryable = true
		_ = q.save(ctx, task)
		return "", ErrQueueFull
	}
}

// Poll returns the current state of a task.
func (q *Queue) Poll(ctx context.Context, id string) (*Task, error) {
	raw, ok, err := q.store.Get(ctx, key(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load task %s: %w", id, err)
	}
	if !ok {
		return nil, ErrTaskNotFound
	}
	var task Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task %s: %w", id, err)
	}
	return &task, nil
}

func (q *Queue) run(ctx context.Context, task *Task) {
	q.mu.RLock()
	handler := q.handlers[task.Kind]
	q.mu.RUnlock()

	l := q.logger.With(zap.String("task_id", task.ID), zap.String("kind", task.Kind))

	var progressMu sync.Mutex
	report := func(progress map[string]int) {
		progressMu.Lock()
		defer progressMu.Unlock()
		task.Progress = progress
		if err := q.save(ctx, task); err != nil {
			l.Warn("Failed to publish task progress", zap.Error(err))
		}
	}

	for {
		task.Attempts++
		task.State = StateRunning
		if err := q.save(ctx, task); err != nil {
			l.Warn("Failed to mark task running", zap.Error(err))
		}

		result, err := handler(ctx, task, report)
		if err == nil {
			task.State = StateSucceeded
			task.Error = ""
			task.Retryable = false
			if raw, mErr := json.Marshal(result); mErr == nil {
				task.Result = raw
			} else {
				l.Warn("Failed to encode task result", zap.Error(mErr))
			}
			break
		}

		retry := q.retryable(err)
		task.Error = err.Error()
		task.Retryable = retry

		if retry && task.Attempts < q.cfg.MaxAttempts {
			delay := retryDelay(q.cfg.RetryDelay, err)
			l.Warn("Task failed, retrying", zap.Int("attempt", task.Attempts), zap.Duration("delay", delay), zap.Error(err))
			select {
			case <-ctx.Done():
				task.State = StateFailed
				q.finish(l, task)
				return
			case <-time.After(delay):
			}
			continue
		}

		l.Error("Task failed", zap.Int("attempts", task.Attempts), zap.Error(err))
		task.State = StateFailed
		break
	}

	q.finish(l, task)
}

func (q *Queue) finish(l *zap.Logger, task *Task) {
	// The worker context may already be cancelled; terminal state must still be written.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := q.save(ctx, task); err != nil {
		l.Error("Failed to persist task state", zap.Error(err))
	}
}

func (q *Queue) save(ctx context.Context, task *Task) error {
	task.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
	}
	if err := q.store.Set(ctx, key(task.ID), raw, q.cfg.TTL); err != nil {
		return fmt.Errorf("failed to store task %s: %w", task.ID, err)
	}
	return nil
}

func key(id string) string {
	return "task_" + id
}
