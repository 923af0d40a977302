// Command door-sim runs a simulated timed door.
//
// In scripted mode it unlocks the door, registers a timer for the door's
// timeout, waits, and reports whether the door locked itself. With
// -interactive it opens a shell for driving the door by hand.
//
// Usage:
//
//	door-sim [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-timeout duration   Door timeout (default 4s)
//	-auto-lock          Lock the door when its timer fires
//	-wait duration      Scripted mode: how long to wait after unlocking (default timeout+1s)
//	-event-log string   Write CBOR events to this file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-interactive        Start the interactive shell
//
// Examples:
//
//	# Door stays open: nothing is wired to the timer
//	door-sim -timeout 2s
//
//	# Door locks itself after 2s
//	door-sim -timeout 2s -auto-lock -event-log door.dlog
//
//	# Drive the door by hand
//	door-sim -interactive -auto-lock
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timeddoor/timeddoor-go/cmd/door-sim/interactive"
	"github.com/timeddoor/timeddoor-go/pkg/config"
	"github.com/timeddoor/timeddoor-go/pkg/door"
	"github.com/timeddoor/timeddoor-go/pkg/log"
	"github.com/timeddoor/timeddoor-go/pkg/timer"
)

// flags holds raw command line values.
type flags struct {
	configFile  string
	timeout     time.Duration
	autoLock    bool
	wait        time.Duration
	eventLog    string
	logLevel    string
	interactive bool
}

func parseFlags(args []string) (flags, *flag.FlagSet, error) {
	var f flags
	fs := flag.NewFlagSet("door-sim", flag.ContinueOnError)
	fs.StringVar(&f.configFile, "config", "", "Configuration file path (YAML)")
	fs.DurationVar(&f.timeout, "timeout", config.DefaultTimeout, "Door timeout")
	fs.BoolVar(&f.autoLock, "auto-lock", false, "Lock the door when its timer fires")
	fs.DurationVar(&f.wait, "wait", 0, "Scripted mode: how long to wait after unlocking (default timeout+1s)")
	fs.StringVar(&f.eventLog, "event-log", "", "Write CBOR events to this file")
	fs.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&f.interactive, "interactive", false, "Start the interactive shell")
	err := fs.Parse(args)
	return f, fs, err
}

// resolveConfig loads the config file (if any) and applies flags that were
// set explicitly on top of it.
func resolveConfig(f flags, fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "timeout":
			cfg.Door.Timeout = f.timeout
		case "auto-lock":
			cfg.AutoLock = f.autoLock
		case "event-log":
			cfg.EventLog = f.eventLog
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})

	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	f, fs, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := resolveConfig(f, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	var eventLog log.Logger = log.NewSlogAdapter(logger)
	if cfg.EventLog != "" {
		fileLogger, err := log.NewFileLogger(cfg.EventLog)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open event log: %v\n", err)
			return 1
		}
		defer func() {
			if closeEventLog(fileLogger, stderr) && code == 0 {
				code = 1
			}
		}()
		eventLog = log.NewMultiLogger(eventLog, fileLogger)
	}

	d := door.NewWithConfig(door.Config{
		ID:      cfg.Door.ID,
		Timeout: cfg.Door.Timeout,
		Logger:  eventLog,
		Slog:    logger,
	})
	tm := timer.NewWithConfig(timer.Config{Logger: eventLog, Slog: logger})

	sim := interactive.NewSim(d, tm, cfg.AutoLock, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if f.interactive {
		shell, err := interactive.New(sim)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start shell: %v\n", err)
			return 1
		}
		shell.Run(ctx)
		return 0
	}

	wait := f.wait
	if wait == 0 {
		wait = cfg.Door.Timeout + time.Second
	}
	if err := runScenario(ctx, sim, wait, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// closeEventLog closes the event log and reports whether it lost events.
func closeEventLog(fl *log.FileLogger, stderr io.Writer) bool {
	if err := fl.Close(); err != nil {
		fmt.Fprintf(stderr, "Event log error: %v\n", err)
		return true
	}
	return false
}

// runScenario unlocks the door, waits, and tries to lock it by hand.
func runScenario(ctx context.Context, sim *interactive.Sim, wait time.Duration, w io.Writer) error {
	fmt.Fprintf(w, "Door %s (timeout %v, auto-lock %v)\n", sim.Door.ID(), sim.Door.TimeoutDuration(), sim.AutoLock)

	id, err := sim.Open()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Unlocked, timer %s registered\n", id)

	select {
	case <-time.After(wait):
	case <-ctx.Done():
		return ctx.Err()
	}

	fmt.Fprintf(w, "After %v the door is %s\n", wait, sim.Door.State())

	if err := sim.Door.Lock(); err != nil {
		if errors.Is(err, door.ErrIllegalState) {
			fmt.Fprintf(w, "Manual lock rejected: %v\n", err)
			return nil
		}
		return err
	}
	fmt.Fprintln(w, "Locked by hand")
	return nil
}
