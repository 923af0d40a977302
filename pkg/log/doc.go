// Package log provides structured event capture for timed doors.
//
// This package defines the Logger interface and Event types for recording
// door state transitions, timer registrations and timer deliveries. It is
// separate from operational logging (slog): event capture provides a
// machine-readable trace that can be replayed with the door-log CLI.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	cfg.Logger, _ = log.NewFileLogger("/var/log/door/door.dlog")
//
//	// Both: use MultiLogger
//	cfg.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - State: a door transition (StateChangeEvent)
//   - Timer: a registration was scheduled or delivered (TimerEvent)
//   - Error: a rejected transition or a failing client (ErrorEventData)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys,
// conventionally using the .dlog extension. Each event carries exactly the
// payload of its category; FileLogger refuses to write and Reader refuses
// to return an event that does not (ErrPayloadMismatch).
//
// FileLogger.Log never fails the caller. Check Err or the result of Close
// to learn whether the file is a complete trace.
package log
