// Package notify delivers transient user-visible notifications ("toasts").
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier is what controllers and forms report outcomes to.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Toast struct {
	ID        string
	Level     Level
	Message   string
	ExpiresAt time.Time
}

// Toaster prints each toast once to its writer and keeps it listed as active
// until its TTL elapses.
type Toaster struct {
	mu     sync.Mutex
	w      io.Writer
	ttl    time.Duration
	now    func() time.Time
	toasts []Toast
}

func NewToaster(w io.Writer, ttl time.Duration) *Toaster {
	return &Toaster{w: w, ttl: ttl, now: time.Now}
}

func (t *Toaster) Success(msg string) { t.push(LevelSuccess, msg) }
func (t *Toaster) Error(msg string)   { t.push(LevelError, msg) }
func (t *Toaster) Info(msg string)    { t.push(LevelInfo, msg) }

func (t *Toaster) push(level Level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.prune(now)
	t.toasts = append(t.toasts, Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   msg,
		ExpiresAt: now.Add(t.ttl),
	})

	if t.w != nil {
		fmt.Fprintf(t.w, "%s %s\n", marker(level), msg)
	}
}

// Active returns the toasts that have not expired yet, oldest first.
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.prune(t.now())
	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}

// Dismiss removes a toast before it expires.
func (t *Toaster) Dismiss(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return
		}
	}
}

func (t *Toaster) prune(now time.Time) {
	kept := t.toasts[:0]
	for _, toast := range t.toasts {
		if now.Before(toast.ExpiresAt) {
			kept = append(kept, toast)
		}
	}
	t.toasts = kept
}

func marker(level Level) string {
	switch level {
	case LevelSuccess:
		return "[ok]"
	case LevelError:
		return "[!!]"
	default:
		return "[--]"
	}
}
