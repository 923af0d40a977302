package autolock

import (
	"fmt"
	"log/slog"

	"github.com/timeddoor/timeddoor-go/pkg/door"
	"github.com/timeddoor/timeddoor-go/pkg/timer"
)

// Opener unlocks a door and schedules it to lock again after the door's
// timeout.
type Opener struct {
	door    *door.Door
	timer   *timer.Timer
	adapter *DoorTimeoutAdapter
}

// NewOpener creates an Opener. logger may be nil.
func NewOpener(d *door.Door, t *timer.Timer, logger *slog.Logger) *Opener {
	return &Opener{
		door:    d,
		timer:   t,
		adapter: NewDoorTimeoutAdapter(d, logger),
	}
}

// Open unlocks the door and registers the auto-lock. It returns the
// registration ID. If the door is already open nothing is registered and
// the door's error is returned.
func (o *Opener) Open() (string, error) {
	if err := o.door.Unlock(); err != nil {
		return "", err
	}

	id, err := o.timer.Register(o.door.TimeoutDuration(), o.adapter)
	if err != nil {
		return "", fmt.Errorf("register auto-lock: %w", err)
	}
	return id, nil
}

// Adapter returns the client registered by Open.
func (o *Opener) Adapter() *DoorTimeoutAdapter {
	return o.adapter
}
