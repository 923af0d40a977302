package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/timeddoor/timeddoor-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Doors            map[string]*DoorStats
	Registered       int
	Fired            int
	Errors           int

	// Slowest delivery relative to the requested duration
	MaxLateness time.Duration

	TimeRange struct {
		Start time.Time
		End   time.Time
	}
}

// DoorStats holds statistics for a single door.
type DoorStats struct {
	FirstSeen time.Time
	Unlocks   int
	Locks     int
	Rejected  int
}

// CollectStats reads the whole log file into a Stats value.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Doors:            make(map[string]*DoorStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.DoorID != "" {
			ds, ok := stats.Doors[event.DoorID]
			if !ok {
				ds = &DoorStats{FirstSeen: event.Timestamp}
				stats.Doors[event.DoorID] = ds
			}
			switch {
			case event.StateChange != nil && event.StateChange.NewState == "OPEN":
				ds.Unlocks++
			case event.StateChange != nil && event.StateChange.NewState == "CLOSED":
				ds.Locks++
			case event.Error != nil:
				ds.Rejected++
			}
		}

		if event.Timer != nil {
			switch event.Timer.Action {
			case log.TimerActionRegistered:
				stats.Registered++
			case log.TimerActionFired:
				stats.Fired++
				if late := event.Timer.Elapsed - event.Timer.Duration; late > stats.MaxLateness {
					stats.MaxLateness = late
				}
			}
		}

		if event.Error != nil {
			stats.Errors++
		}
	}

	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Door Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryTimer, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Timers: %d registered, %d fired", stats.Registered, stats.Fired)
	if pending := stats.Registered - stats.Fired; pending > 0 {
		fmt.Fprintf(w, ", %d never fired", pending)
	}
	fmt.Fprintln(w)
	if stats.Fired > 0 {
		fmt.Fprintf(w, "Max lateness: %v\n", stats.MaxLateness)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Doors: %d\n", len(stats.Doors))
	if len(stats.Doors) > 0 {
		type doorInfo struct {
			id    string
			stats *DoorStats
		}
		doors := make([]doorInfo, 0, len(stats.Doors))
		for id, ds := range stats.Doors {
			doors = append(doors, doorInfo{id, ds})
		}
		sort.Slice(doors, func(i, j int) bool {
			return doors[i].stats.FirstSeen.Before(doors[j].stats.FirstSeen)
		})

		for _, d := range doors {
			fmt.Fprintf(w, "  [%s] %d unlocks, %d locks, %d rejected\n",
				shortenID(d.id), d.stats.Unlocks, d.stats.Locks, d.stats.Rejected)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
