package log

import "errors"

// Logger receives door and timer events. Implementations must be safe for
// concurrent use: timer deliveries log from the runtime's timer goroutines.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards events.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

// errReporter is implemented by loggers that swallow write failures and
// report them later, such as FileLogger.
type errReporter interface {
	Err() error
}

// MultiLogger fans each event out to a fixed set of loggers, in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger returns a MultiLogger over the non-nil loggers.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{loggers: make([]Logger, 0, len(loggers))}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Err joins the errors reported by every member that keeps one.
func (m *MultiLogger) Err() error {
	var errs []error
	for _, l := range m.loggers {
		if r, ok := l.(errReporter); ok {
			errs = append(errs, r.Err())
		}
	}
	return errors.Join(errs...)
}

var (
	_ Logger = NoopLogger{}
	_ Logger = (*MultiLogger)(nil)
)
