// Package task models the console's long-running operations: the client-side
// upload simulation and the analysis progress poller. The work itself is fake,
// a ticker advancing a percentage, but cancellation and exactly-once
// completion are real contracts and are enforced here.
package task

import (
	"sync"

	"github.com/google/uuid"
)

// Snapshot is a point-in-time view of a simulated task.
type Snapshot struct {
	ID              string         `json:"id"`
	Progress        int            `json:"progress"`
	Status          string         `json:"status"`
	Complete        bool           `json:"complete"`
	Result          map[string]any `json:"result,omitempty"`
	ProcessedImage  string         `json:"processed_image,omitempty"`
	ProcessedImages []string       `json:"processed_images,omitempty"`
}

// Task is the shared state of one in-flight simulated operation. Progress is
// an integer percent 0-100; Result is only set once Complete is true.
type Task struct {
	id string

	mu              sync.Mutex
	progress        int
	status          string
	complete        bool
	cancelled       bool
	result          map[string]any
	processedImage  string
	processedImages []string

	done     chan struct{}
	doneOnce sync.Once
}

func newTask(status string) *Task {
	return &Task{
		id:     uuid.NewString(),
		status: status,
		done:   make(chan struct{}),
	}
}

// ID returns the task's identifier.
func (t *Task) ID() string { return t.id }

// Done is closed when the task completes or is cancelled.
func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) closeDone() {
	t.doneOnce.Do(func() { close(t.done) })
}

// Snapshot returns a consistent copy of the task state.
func (t *Task) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		ID:              t.id,
		Progress:        t.progress,
		Status:          t.status,
		Complete:        t.complete,
		Result:          t.result,
		ProcessedImage:  t.processedImage,
		ProcessedImages: t.processedImages,
	}
}

// Cancelled reports whether the task was cancelled.
func (t *Task) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// markCancelled flips the cancelled flag. Ticks that still fire afterwards
// check the flag and become no-ops, which closes the race with a timer
// callback already in flight.
func (t *Task) markCancelled() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
}

// reset returns the task to its initial values. Used by explicit cancel on
// the polling flows, which retain no partial result.
func (t *Task) reset(status string) {
	t.mu.Lock()
	t.progress = 0
	t.status = status
	t.complete = false
	t.result = nil
	t.processedImage = ""
	t.processedImages = nil
	t.mu.Unlock()
}

func (t *Task) setStatus(status string) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}
