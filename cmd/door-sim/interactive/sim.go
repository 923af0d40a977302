package interactive

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/timeddoor/timeddoor-go/pkg/autolock"
	"github.com/timeddoor/timeddoor-go/pkg/door"
	"github.com/timeddoor/timeddoor-go/pkg/timer"
)

// Sim bundles the simulated door with its timer.
type Sim struct {
	Door     *door.Door
	Timer    *timer.Timer
	AutoLock bool

	opener *autolock.Opener
	logger *slog.Logger
}

// NewSim creates a simulation. With autoLock the door locks itself when
// its timer fires; otherwise the timer only reports the timeout.
func NewSim(d *door.Door, t *timer.Timer, autoLock bool, logger *slog.Logger) *Sim {
	return &Sim{
		Door:     d,
		Timer:    t,
		AutoLock: autoLock,
		opener:   autolock.NewOpener(d, t, logger),
		logger:   logger,
	}
}

// Open unlocks the door and registers a timer for its timeout.
func (s *Sim) Open() (string, error) {
	if s.AutoLock {
		return s.opener.Open()
	}

	if err := s.Door.Unlock(); err != nil {
		return "", err
	}
	return s.Register(s.Door.TimeoutDuration())
}

// Register schedules a notification-only timer for d. When auto-lock is
// enabled the door adapter is registered instead.
func (s *Sim) Register(d time.Duration) (string, error) {
	var client timer.Client = s.opener.Adapter()
	if !s.AutoLock {
		client = timer.ClientFunc(func() {
			if s.logger != nil {
				s.logger.Info("timeout elapsed", "door", s.Door.ID(), "open", s.Door.IsOpen())
			}
		})
	}

	id, err := s.Timer.Register(d, client)
	if err != nil {
		return "", fmt.Errorf("register timer: %w", err)
	}
	return id, nil
}
