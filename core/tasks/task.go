package tasks

import (
	"encoding/json"
	"errors"
	"time"
)

// State is the lifecycle state of a background task.
type State string

const (
	StateQueued    State = "queued"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

var (
	// ErrTaskNotFound is returned by Poll for unknown or expired handles.
	ErrTaskNotFound = errors.New("task not found")
	// ErrQueueFull is returned by Submit when the queue cannot accept more work.
	ErrQueueFull = errors.New("task queue is full")
	// ErrUnknownKind is returned by Submit when no handler is registered for the kind.
	ErrUnknownKind = errors.New("unknown task kind")
)

// Task is the persisted view of one background job.
type Task struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	State     State           `json:"state"`
	Payload   json.RawMessage `json:"payload"`
	Attempts  int             `json:"attempts"`
	Progress  map[string]int  `json:"progress,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	Retryable bool            `json:"retryable,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Done reports whether the task reached a terminal state.
func (t *Task) Done() bool {
	return t.State == StateSucceeded || t.State == StateFailed
}

// Decode unmarshals the task payload into v.
func (t *Task) Decode(v any) error {
	return json.Unmarshal(t.Payload, v)
}
