// Command door-log is a tool for viewing and analyzing door event logs.
//
// Event logs are written by door-sim with the -event-log flag.
//
// Usage:
//
//	door-log <command> [flags] <file.dlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	door-log view door.dlog
//
//	# View only timer events for one door
//	door-log view --category timer --door front door.dlog
//
//	# Show statistics
//	door-log stats door.dlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/timeddoor/timeddoor-go/cmd/door-log/commands"
	"github.com/timeddoor/timeddoor-go/pkg/log"
)

const usage = `door-log - Door Event Log Analyzer

Usage:
  door-log <command> [flags] <file.dlog>

Commands:
  view     View log file in human-readable format
  stats    Show statistics about the log file

Use "door-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `door-log view - View log file in human-readable format

Usage:
  door-log view [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	category := fs.String("category", "", "Filter by category (state, timer, error)")
	doorID := fs.String("door", "", "Filter by door ID")
	regID := fs.String("reg", "", "Filter by registration ID")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter := log.Filter{
		DoorID:         *doorID,
		RegistrationID: *regID,
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Category = &c
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `door-log stats - Show statistics about the log file

Usage:
  door-log stats <file.dlog>
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
