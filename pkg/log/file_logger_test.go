package log

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		Category:  CategoryState,
		DoorID:    "door-1",
		StateChange: &StateChangeEvent{
			OldState: "CLOSED",
			NewState: "OPEN",
		},
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if decoded.DoorID != "door-1" {
		t.Errorf("DoorID = %q, want %q", decoded.DoorID, "door-1")
	}
	if decoded.StateChange == nil || decoded.StateChange.NewState != "OPEN" {
		t.Errorf("StateChange = %+v, want NewState OPEN", decoded.StateChange)
	}
}

func TestFileLoggerRecordsLogAfterClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v, want nil", err)
	}

	logger.Log(stateEvent("door-1"))

	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Errorf("file has %d bytes after closed Log, want 0", len(data))
	}
	if err := logger.Err(); !errors.Is(err, ErrLoggerClosed) {
		t.Errorf("Err() = %v, want ErrLoggerClosed", err)
	}
}

func TestFileLoggerConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Log(Event{
					Timestamp:      time.Now(),
					Category:       CategoryTimer,
					RegistrationID: "reg-1",
					Timer:          &TimerEvent{Action: TimerActionFired, Duration: time.Second},
				})
			}
		}()
	}
	wg.Wait()
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if n := logger.Written(); n != 100 {
		t.Errorf("Written() = %d, want 100", n)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err != nil {
			break
		}
		count++
	}
	if count != 100 {
		t.Errorf("read %d events, want 100", count)
	}
}

func TestFileLoggerErrNilAfterCleanRun(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.dlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(stateEvent("door-1"))
	logger.Log(timerEvent("door-1"))

	if err := logger.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestFileLoggerKeepsFirstWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.dlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	// Pull the file out from under the encoder.
	logger.file.Close()
	logger.Log(stateEvent("door-1"))

	first := logger.Err()
	if !errors.Is(first, os.ErrClosed) {
		t.Fatalf("Err() = %v, want os.ErrClosed", first)
	}

	logger.Log(Event{Timestamp: time.Now(), Category: CategoryState})
	if got := logger.Err(); got != first {
		t.Errorf("Err() changed to %v, want first error %v", got, first)
	}
	if logger.Written() != 0 {
		t.Errorf("Written() = %d, want 0", logger.Written())
	}
	if err := logger.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Close() = %v, want to report os.ErrClosed", err)
	}
}

func TestFileLoggerRejectsMismatchedEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.dlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(stateEvent("door-1"))
	logger.Log(Event{Timestamp: time.Now(), Category: CategoryError, DoorID: "door-1"})
	logger.Log(stateEvent("door-1"))

	if err := logger.Close(); !errors.Is(err, ErrPayloadMismatch) {
		t.Fatalf("Close() = %v, want ErrPayloadMismatch", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	if got := len(readAll(t, reader)); got != 1 {
		t.Errorf("file holds %d events, want the 1 written before the failure", got)
	}
}
