package door

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timeddoor/timeddoor-go/pkg/log"
)

const (
	opLock   = "lock"
	opUnlock = "unlock"
)

// State represents the door state.
type State uint8

const (
	// StateClosed is the initial state.
	StateClosed State = iota

	// StateOpen indicates the door has been unlocked.
	StateOpen
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config holds door configuration.
type Config struct {
	// ID identifies the door in events. Generated if empty.
	ID string

	// Timeout is the duration after which the door is expected to lock.
	// Negative values are treated as zero.
	Timeout time.Duration

	// Logger receives state and error events (optional).
	Logger log.Logger

	// Slog is the optional logger for debug output.
	// If nil, logging is disabled.
	Slog *slog.Logger
}

// Door is a timed door. The zero value is not usable; use New.
type Door struct {
	mu sync.RWMutex

	id      string
	open    bool
	timeout time.Duration

	eventLog log.Logger
	logger   *slog.Logger

	onStateChange func(oldState, newState State)
}

// New creates a closed door with the given timeout.
func New(timeout time.Duration) *Door {
	return NewWithConfig(Config{Timeout: timeout})
}

// NewWithConfig creates a closed door with custom configuration.
func NewWithConfig(cfg Config) *Door {
	d := &Door{
		id:       cfg.ID,
		timeout:  cfg.Timeout,
		eventLog: cfg.Logger,
		logger:   cfg.Slog,
	}
	if d.id == "" {
		d.id = uuid.NewString()
	}
	if d.timeout < 0 {
		d.timeout = 0
	}
	if d.eventLog == nil {
		d.eventLog = log.NoopLogger{}
	}
	return d
}

// ID returns the door identifier.
func (d *Door) ID() string {
	return d.id
}

// TimeoutDuration returns the timeout configured at construction.
func (d *Door) TimeoutDuration() time.Duration {
	return d.timeout
}

// IsOpen returns true if the door is open.
func (d *Door) IsOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.open
}

// State returns the current door state.
func (d *Door) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state()
}

func (d *Door) state() State {
	if d.open {
		return StateOpen
	}
	return StateClosed
}

// Unlock opens a closed door.
// Returns a *TransitionError wrapping ErrIllegalState if the door is open.
func (d *Door) Unlock() error {
	return d.transition(opUnlock, StateClosed, StateOpen)
}

// Lock closes an open door.
// Returns a *TransitionError wrapping ErrIllegalState if the door is closed.
func (d *Door) Lock() error {
	return d.transition(opLock, StateOpen, StateClosed)
}

// OnStateChange sets a callback for successful transitions. The callback
// runs on the caller's goroutine after the door's lock is released, so it
// may call back into the door. Callbacks of racing transitions may run out
// of order; use the event Logger for an ordered history.
func (d *Door) OnStateChange(fn func(oldState, newState State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onStateChange = fn
}

// transition moves the door from one state to another atomically. Events
// are emitted before the lock is released so that the event stream follows
// the order in which transitions took effect.
func (d *Door) transition(op string, from, to State) error {
	d.mu.Lock()

	current := d.state()
	if current != from {
		err := &TransitionError{Op: op, State: current}
		d.debugLog("transition rejected", "door", d.id, "op", op, "state", current)
		d.eventLog.Log(log.Event{
			Timestamp: time.Now(),
			Category:  log.CategoryError,
			DoorID:    d.id,
			Error:     &log.ErrorEventData{Op: op, Message: err.Error()},
		})
		d.mu.Unlock()
		return err
	}

	d.open = to == StateOpen
	d.debugLog("transition", "door", d.id, "op", op, "from", from, "to", to)
	d.eventLog.Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryState,
		DoorID:    d.id,
		StateChange: &log.StateChangeEvent{
			OldState: from.String(),
			NewState: to.String(),
			Reason:   op,
		},
	})
	callback := d.onStateChange

	d.mu.Unlock()

	if callback != nil {
		callback(from, to)
	}
	return nil
}

func (d *Door) debugLog(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
