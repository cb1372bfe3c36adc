// Package notify queues short user-facing messages ("toasts"). A queue shows
// one notification at a time, in arrival order; the next one becomes visible
// only after the client reports that the current one has finished exiting.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity enum
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// DefaultAutoHide is used when Show is given a non-positive duration.
const DefaultAutoHide = 6000 * time.Millisecond

// MaxPending bounds the backlog behind the visible notification; the oldest
// waiting entries are dropped first.
const MaxPending = 20

// Notification is a single toast
type Notification struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	// AutoHideMs is the display time in milliseconds.
	AutoHideMs int64     `json:"autoHideDuration"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AutoHide returns the display time as a Duration.
func (n Notification) AutoHide() time.Duration {
	return time.Duration(n.AutoHideMs) * time.Millisecond
}

// Queue is a FIFO with a single visible slot.
type Queue struct {
	mu      sync.Mutex
	current *Notification
	pending []Notification
}

func NewQueue() *Queue {
	return &Queue{}
}

// Show enqueues a notification and makes it visible if nothing else is.
func (q *Queue) Show(message string, severity Severity, autoHide time.Duration) Notification {
	if autoHide <= 0 {
		autoHide = DefaultAutoHide
	}
	n := Notification{
		ID:         uuid.NewString(),
		Message:    message,
		Severity:   severity,
		AutoHideMs: autoHide.Milliseconds(),
		CreatedAt:  time.Now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		q.current = &n
	} else {
		q.pending = append(q.pending, n)
		if over := len(q.pending) - MaxPending; over > 0 {
			q.pending = append(q.pending[:0:0], q.pending[over:]...)
		}
	}
	return n
}

func (q *Queue) ShowSuccess(message string) Notification {
	return q.Show(message, Success, DefaultAutoHide)
}

func (q *Queue) ShowError(message string) Notification {
	return q.Show(message, Error, DefaultAutoHide)
}

func (q *Queue) ShowWarning(message string) Notification {
	return q.Show(message, Warning, DefaultAutoHide)
}

func (q *Queue) ShowInfo(message string) Notification {
	return q.Show(message, Info, DefaultAutoHide)
}

// Current returns the visible notification, if any.
func (q *Queue) Current() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return Notification{}, false
	}
	return *q.current, true
}

// Exited removes the visible notification and promotes the next queued one.
// It returns the removed notification; ok is false when nothing was visible.
func (q *Queue) Exited() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return Notification{}, false
	}
	done := *q.current
	q.current = nil
	if len(q.pending) > 0 {
		next := q.pending[0]
		q.pending = q.pending[1:]
		q.current = &next
	}
	return done, true
}

// Snapshot returns the visible notification together with the backlog size,
// read under one lock.
func (q *Queue) Snapshot() (Notification, bool, int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return Notification{}, false, len(q.pending)
	}
	return *q.current, true, len(q.pending)
}

// Pending returns how many notifications wait behind the visible one.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Center holds one Queue per user.
type Center struct {
	mu     sync.Mutex
	queues map[string]*Queue
}

func NewCenter() *Center {
	return &Center{queues: make(map[string]*Queue)}
}

// For returns the queue of userID, creating it on first use.
func (c *Center) For(userID string) *Queue {
	c.mu.Lock()
	defer c.mu.Unlock()
	q, ok := c.queues[userID]
	if !ok {
		q = NewQueue()
		c.queues[userID] = q
	}
	return q
}
