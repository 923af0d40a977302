// Package interactive provides the interactive command-line interface
// for door-sim.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
)

// defaultWaitLimit bounds the wait command when no limit is given.
const defaultWaitLimit = time.Minute

// lineReader is the part of *readline.Instance the shell drives.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// Shell handles interactive mode for door-sim.
type Shell struct {
	sim *Sim
	rl  lineReader
	out io.Writer

	closeOnce sync.Once
}

// New creates a new interactive shell.
func New(sim *Sim) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "door> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return newShell(sim, rl, rl.Stdout()), nil
}

func newShell(sim *Sim, rl lineReader, out io.Writer) *Shell {
	return &Shell{sim: sim, rl: rl, out: out}
}

// Run starts the interactive command loop. It returns on quit, EOF or when
// ctx is done, even while waiting for input.
func (sh *Shell) Run(ctx context.Context) {
	done := make(chan struct{})
	defer sh.close()
	defer close(done)

	// Closing the reader unblocks a pending Readline.
	go func() {
		select {
		case <-ctx.Done():
			sh.close()
		case <-done:
		}
	}()

	printHelp(sh.out)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(sh.out, "Exiting...")
			return
		}

		line, err := sh.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) && ctx.Err() == nil {
				continue
			}
			fmt.Fprintln(sh.out, "Exiting...")
			return
		}

		if quit := Dispatch(ctx, sh.sim, sh.out, line); quit {
			return
		}
	}
}

func (sh *Shell) close() {
	sh.closeOnce.Do(func() { _ = sh.rl.Close() })
}

// Dispatch executes one command line against sim and reports whether the
// shell should exit.
func Dispatch(ctx context.Context, sim *Sim, w io.Writer, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printHelp(w)

	case "status", "s":
		cmdStatus(sim, w)

	case "unlock", "u":
		if err := sim.Door.Unlock(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(w, "Door unlocked")

	case "lock", "l":
		if err := sim.Door.Lock(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(w, "Door locked")

	case "open", "o":
		id, err := sim.Open()
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return false
		}
		fmt.Fprintf(w, "Door unlocked, timer %s registered for %v\n", id, sim.Door.TimeoutDuration())

	case "register", "r":
		cmdRegister(sim, w, args)

	case "pending", "p":
		cmdPending(sim, w)

	case "wait", "w":
		cmdWait(ctx, sim, w, args)

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return false
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  status, s              Show door state and pending timers
  unlock, u              Unlock the door
  lock, l                Lock the door
  open, o                Unlock and register a timer for the door timeout
  register, r [dur]      Register a timer (default: door timeout)
  pending, p             List pending timers
  wait, w [limit]        Wait until no timer is pending (default limit 1m)
  help, ?                Show this help
  quit, q                Exit
`)
}

func cmdStatus(sim *Sim, w io.Writer) {
	fmt.Fprintf(w, "Door:      %s\n", sim.Door.ID())
	fmt.Fprintf(w, "State:     %s\n", sim.Door.State())
	fmt.Fprintf(w, "Timeout:   %v\n", sim.Door.TimeoutDuration())
	fmt.Fprintf(w, "Auto-lock: %v\n", sim.AutoLock)
	fmt.Fprintf(w, "Pending:   %d\n", sim.Timer.Pending())
}

func cmdRegister(sim *Sim, w io.Writer, args []string) {
	d := sim.Door.TimeoutDuration()
	if len(args) > 0 {
		parsed, err := time.ParseDuration(args[0])
		if err != nil {
			fmt.Fprintf(w, "Error: invalid duration %q: %v\n", args[0], err)
			return
		}
		d = parsed
	}

	id, err := sim.Register(d)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Timer %s registered for %v\n", id, d)
}

func cmdPending(sim *Sim, w io.Writer) {
	regs := sim.Timer.Registrations()
	if len(regs) == 0 {
		fmt.Fprintln(w, "No pending timers")
		return
	}

	sort.Slice(regs, func(i, j int) bool {
		return regs[i].ExpiresAt().Before(regs[j].ExpiresAt())
	})
	for _, reg := range regs {
		fmt.Fprintf(w, "  %s  %v  remaining %v\n", reg.ID, reg.Duration, reg.RemainingTime().Round(time.Millisecond))
	}
}

func cmdWait(ctx context.Context, sim *Sim, w io.Writer, args []string) {
	limit := defaultWaitLimit
	if len(args) > 0 {
		parsed, err := time.ParseDuration(args[0])
		if err != nil {
			fmt.Fprintf(w, "Error: invalid duration %q: %v\n", args[0], err)
			return
		}
		limit = parsed
	}

	waitCtx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	if err := sim.Timer.Wait(waitCtx); err != nil {
		fmt.Fprintf(w, "Still %d timer(s) pending: %v\n", sim.Timer.Pending(), err)
		return
	}
	fmt.Fprintf(w, "No timers pending, door is %s\n", sim.Door.State())
}
