package autolock

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeddoor/timeddoor-go/pkg/door"
	"github.com/timeddoor/timeddoor-go/pkg/timer"
)

const unit = 20 * time.Millisecond

func waitIdle(t *testing.T, tm *timer.Timer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tm.Wait(ctx))
}

func TestAdapterLocksOpenDoor(t *testing.T) {
	d := door.New(4 * unit)
	require.NoError(t, d.Unlock())

	a := NewDoorTimeoutAdapter(d, nil)
	a.Timeout()

	assert.False(t, d.IsOpen())
	assert.Equal(t, 1, a.Locks())
	assert.Equal(t, 0, a.Ignored())
}

func TestAdapterIgnoresClosedDoor(t *testing.T) {
	d := door.New(4 * unit)

	a := NewDoorTimeoutAdapter(d, nil)
	a.Timeout()

	assert.False(t, d.IsOpen())
	assert.Equal(t, 0, a.Locks())
	assert.Equal(t, 1, a.Ignored())
}

func TestAdapterLogsEachOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d := door.New(4 * unit)
	require.NoError(t, d.Unlock())
	a := NewDoorTimeoutAdapter(d, logger)

	a.Timeout()
	a.Timeout()

	out := buf.String()
	assert.Contains(t, out, "door auto-locked")
	assert.Contains(t, out, "timeout ignored, door already closed")
	assert.Contains(t, out, "double lock")
	assert.Equal(t, 1, a.Locks())
	assert.Equal(t, 1, a.Ignored())
}

// Without wiring the door stays open past its timeout and can be locked by hand.
func TestUnwiredDoorStaysOpen(t *testing.T) {
	d := door.New(4 * unit)
	tm := timer.New()

	require.NoError(t, d.Unlock())
	_, err := tm.Register(d.TimeoutDuration(), timer.ClientFunc(func() {}))
	require.NoError(t, err)

	time.Sleep(5 * unit)
	waitIdle(t, tm)

	assert.True(t, d.IsOpen())
	assert.NoError(t, d.Lock())
}

func TestOpenerLocksAfterTimeout(t *testing.T) {
	d := door.New(4 * unit)
	tm := timer.New()
	o := NewOpener(d, tm, nil)

	id, err := o.Open()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.True(t, d.IsOpen())

	// Before the timeout a manual lock still works
	time.Sleep(3 * unit)
	assert.True(t, d.IsOpen())

	time.Sleep(2 * unit)
	waitIdle(t, tm)

	assert.False(t, d.IsOpen())
	assert.ErrorIs(t, d.Lock(), door.ErrIllegalState)
	assert.Equal(t, 1, o.Adapter().Locks())
}

func TestOpenerManualLockBeatsTimeout(t *testing.T) {
	d := door.New(2 * unit)
	tm := timer.New()
	o := NewOpener(d, tm, nil)

	_, err := o.Open()
	require.NoError(t, err)
	require.NoError(t, d.Lock())

	waitIdle(t, tm)

	assert.False(t, d.IsOpen())
	assert.Equal(t, 0, o.Adapter().Locks())
	assert.Equal(t, 1, o.Adapter().Ignored())
}

func TestOpenerDoubleOpenRegistersNothing(t *testing.T) {
	d := door.New(time.Hour)
	tm := timer.New()
	o := NewOpener(d, tm, nil)

	_, err := o.Open()
	require.NoError(t, err)

	_, err = o.Open()
	assert.ErrorIs(t, err, door.ErrIllegalState)
	assert.Equal(t, 1, tm.Pending())
}
