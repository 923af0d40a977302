package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timeddoor/timeddoor-go/pkg/log"
)

// Timer errors.
var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrNilClient       = errors.New("nil timer client")
)

// Registration describes a pending timeout.
type Registration struct {
	// ID identifies the registration in events.
	ID string

	// RegisteredAt is when Register was called.
	RegisteredAt time.Time

	// Duration is the requested duration.
	Duration time.Duration

	client Client
}

// ExpiresAt returns the earliest time the registration fires.
func (r *Registration) ExpiresAt() time.Time {
	return r.RegisteredAt.Add(r.Duration)
}

// RemainingTime returns time until expiry, or 0 if already due.
func (r *Registration) RemainingTime() time.Duration {
	remaining := r.Duration - time.Since(r.RegisteredAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Config holds timer configuration.
type Config struct {
	// Logger receives timer events (optional).
	Logger log.Logger

	// Slog is the optional logger for debug output.
	// If nil, logging is disabled.
	Slog *slog.Logger
}

// Timer schedules one-shot timeout notifications.
type Timer struct {
	mu sync.Mutex

	// Pending registrations by ID
	pending map[string]*Registration

	// Closed whenever no registration is pending
	idle chan struct{}

	eventLog log.Logger
	logger   *slog.Logger
}

// New creates a timer with no logging.
func New() *Timer {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a timer with custom configuration.
func NewWithConfig(cfg Config) *Timer {
	idle := make(chan struct{})
	close(idle)

	t := &Timer{
		pending:  make(map[string]*Registration),
		idle:     idle,
		eventLog: cfg.Logger,
		logger:   cfg.Slog,
	}
	if t.eventLog == nil {
		t.eventLog = log.NoopLogger{}
	}
	return t
}

// Register schedules client.Timeout to run once after d has elapsed and
// returns the registration ID. It does not block.
func (t *Timer) Register(d time.Duration, client Client) (string, error) {
	if d < 0 {
		return "", fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}
	if client == nil {
		return "", ErrNilClient
	}

	reg := &Registration{
		ID:           uuid.NewString(),
		RegisteredAt: time.Now(),
		Duration:     d,
		client:       client,
	}

	t.debugLog("timer registered", "id", reg.ID, "duration", d)
	t.eventLog.Log(log.Event{
		Timestamp:      reg.RegisteredAt,
		Category:       log.CategoryTimer,
		RegistrationID: reg.ID,
		Timer: &log.TimerEvent{
			Action:   log.TimerActionRegistered,
			Duration: d,
		},
	})

	t.mu.Lock()
	if len(t.pending) == 0 {
		t.idle = make(chan struct{})
	}
	t.pending[reg.ID] = reg
	// Scheduled under the lock so fire always finds the entry
	time.AfterFunc(d, func() {
		t.fire(reg.ID)
	})
	t.mu.Unlock()

	return reg.ID, nil
}

// Pending returns the number of registrations that have not fired yet.
func (t *Timer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Registrations returns copies of all pending registrations.
func (t *Timer) Registrations() []Registration {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]Registration, 0, len(t.pending))
	for _, reg := range t.pending {
		result = append(result, Registration{
			ID:           reg.ID,
			RegisteredAt: reg.RegisteredAt,
			Duration:     reg.Duration,
		})
	}
	return result
}

// Wait blocks until no registration is pending or ctx is done.
// It does not cancel anything.
func (t *Timer) Wait(ctx context.Context) error {
	t.mu.Lock()
	idle := t.idle
	t.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fire delivers the timeout for a registration. The registration stays
// pending until the client has returned and the event is logged.
func (t *Timer) fire(id string) {
	t.mu.Lock()
	reg, exists := t.pending[id]
	t.mu.Unlock()
	if !exists {
		return
	}

	// Call client outside lock
	t.notify(reg)

	elapsed := time.Since(reg.RegisteredAt)
	t.debugLog("timer fired", "id", id, "duration", reg.Duration, "elapsed", elapsed)
	t.eventLog.Log(log.Event{
		Timestamp:      time.Now(),
		Category:       log.CategoryTimer,
		RegistrationID: id,
		Timer: &log.TimerEvent{
			Action:   log.TimerActionFired,
			Duration: reg.Duration,
			Elapsed:  elapsed,
		},
	})

	t.mu.Lock()
	delete(t.pending, id)
	if len(t.pending) == 0 {
		close(t.idle)
	}
	t.mu.Unlock()
}

// notify calls the client, containing any panic it raises.
func (t *Timer) notify(reg *Registration) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("client panicked: %v", r)
			if t.logger != nil {
				t.logger.Error("timer client failed", "id", reg.ID, "panic", r)
			}
			t.eventLog.Log(log.Event{
				Timestamp:      time.Now(),
				Category:       log.CategoryError,
				RegistrationID: reg.ID,
				Error:          &log.ErrorEventData{Op: "timeout", Message: msg},
			})
		}
	}()

	reg.client.Timeout()
}

func (t *Timer) debugLog(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, args...)
	}
}
