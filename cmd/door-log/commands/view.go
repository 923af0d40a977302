// Package commands implements the door-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/timeddoor/timeddoor-go/pkg/log"
)

// RunView reads events matching filter and writes them to w in
// human-readable form.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	var typeLabel string
	switch {
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Timer != nil:
		typeLabel = event.Timer.Action.String()
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s %-5s %s", ts, event.Category.String(), typeLabel)
	if event.DoorID != "" {
		fmt.Fprintf(w, " [door:%s]", shortenID(event.DoorID))
	}
	if event.RegistrationID != "" {
		fmt.Fprintf(w, " [reg:%s]", shortenID(event.RegistrationID))
	}
	fmt.Fprintln(w)

	switch {
	case event.StateChange != nil:
		sc := event.StateChange
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
		if sc.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
		}
	case event.Timer != nil:
		fmt.Fprintf(w, "  Duration: %v\n", event.Timer.Duration)
		if event.Timer.Action == log.TimerActionFired {
			fmt.Fprintf(w, "  Elapsed: %v\n", event.Timer.Elapsed)
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  Op: %s\n", event.Error.Op)
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of an identifier.
func shortenID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "timer":
		return log.CategoryTimer, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, timer, or error)", s)
	}
}
