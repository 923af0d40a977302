package log

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// recordingLogger records events for testing
type recordingLogger struct {
	events []Event
}

func (m *recordingLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	rec1 := &recordingLogger{}
	rec2 := &recordingLogger{}
	rec3 := &recordingLogger{}

	multi := NewMultiLogger(rec1, rec2, rec3)

	multi.Log(stateEvent("door-123"))

	for i, rec := range []*recordingLogger{rec1, rec2, rec3} {
		if len(rec.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(rec.events))
			continue
		}
		if rec.events[0].DoorID != "door-123" {
			t.Errorf("logger %d: DoorID = %q, want %q", i, rec.events[0].DoorID, "door-123")
		}
	}
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	rec := &recordingLogger{}
	multi := NewMultiLogger(nil, rec, nil)

	multi.Log(timerEvent("door-1"))

	if len(rec.events) != 1 {
		t.Errorf("got %d events, want 1", len(rec.events))
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()

	// Should not panic with empty logger list
	multi.Log(errorEvent("door-1"))
	if err := multi.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestMultiLoggerErrJoinsFileLoggerFailures(t *testing.T) {
	dir := t.TempDir()
	good, err := NewFileLogger(filepath.Join(dir, "good.dlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer good.Close()
	broken, err := NewFileLogger(filepath.Join(dir, "broken.dlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	broken.Close()

	rec := &recordingLogger{}
	multi := NewMultiLogger(rec, good, broken)

	multi.Log(stateEvent("door-1"))
	if len(rec.events) != 1 {
		t.Errorf("recording logger got %d events, want 1", len(rec.events))
	}
	if good.Written() != 1 {
		t.Errorf("good logger wrote %d events, want 1", good.Written())
	}

	err = multi.Err()
	if !errors.Is(err, ErrLoggerClosed) {
		t.Errorf("Err() = %v, want ErrLoggerClosed from the closed member", err)
	}
}

func TestNoopLoggerDiscards(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{Timestamp: time.Now()})
}
