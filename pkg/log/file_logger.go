package log

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// ErrLoggerClosed is recorded when an event arrives after Close.
var ErrLoggerClosed = errors.New("event log closed")

// FileLogger appends events to a .dlog file as a CBOR stream.
//
// Log never returns an error so that a full disk cannot stall a door
// transition or a timer delivery. The first failure is kept instead and
// reported by Err and Close; events after a failure are dropped so the file
// stays a readable prefix of the trace.
type FileLogger struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *cbor.Encoder
	written int
	closed  bool
	err     error
}

// NewFileLogger opens path for appending, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return &FileLogger{
		path:    path,
		file:    f,
		encoder: newEventEncoder(f),
	}, nil
}

// Log validates and appends the event.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return
	}
	if l.closed {
		l.err = fmt.Errorf("%s %s event: %w", l.path, event.Category, ErrLoggerClosed)
		return
	}
	if err := event.Validate(); err != nil {
		l.err = fmt.Errorf("%s event %d: %w", l.path, l.written+1, err)
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		l.err = fmt.Errorf("%s event %d: %w", l.path, l.written+1, err)
		return
	}
	l.written++
}

// Written returns the number of events appended so far.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the first error met while logging, or nil.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the file and returns the first logging error joined with any
// close error. Calling Close again returns nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return errors.Join(l.err, l.file.Close())
}

var _ Logger = (*FileLogger)(nil)
