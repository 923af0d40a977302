package autolock

import (
	"log/slog"
	"sync/atomic"

	"github.com/timeddoor/timeddoor-go/pkg/door"
	"github.com/timeddoor/timeddoor-go/pkg/timer"
)

// DoorTimeoutAdapter locks its door when a timeout is delivered.
// A door that is already closed is left alone.
type DoorTimeoutAdapter struct {
	door   *door.Door
	logger *slog.Logger

	locks   atomic.Int64
	ignored atomic.Int64
}

// NewDoorTimeoutAdapter creates an adapter for d. logger may be nil.
func NewDoorTimeoutAdapter(d *door.Door, logger *slog.Logger) *DoorTimeoutAdapter {
	return &DoorTimeoutAdapter{door: d, logger: logger}
}

// Timeout locks the door if it is still open.
func (a *DoorTimeoutAdapter) Timeout() {
	if err := a.door.Lock(); err != nil {
		// Lock only fails with ErrIllegalState: closed by hand before the timeout.
		a.ignored.Add(1)
		if a.logger != nil {
			a.logger.Debug("timeout ignored, door already closed", "door", a.door.ID(), "error", err)
		}
		return
	}
	a.locks.Add(1)
	if a.logger != nil {
		a.logger.Info("door auto-locked", "door", a.door.ID())
	}
}

// Locks returns how many timeouts locked the door.
func (a *DoorTimeoutAdapter) Locks() int {
	return int(a.locks.Load())
}

// Ignored returns how many timeouts found the door already closed.
func (a *DoorTimeoutAdapter) Ignored() int {
	return int(a.ignored.Load())
}

// Compile-time interface satisfaction check.
var _ timer.Client = (*DoorTimeoutAdapter)(nil)
