// Package door implements the timed door state machine.
//
// A Door is either CLOSED or OPEN. It starts CLOSED and only changes state
// through Unlock and Lock; there is no terminal state.
//
// # Transitions
//
//	CLOSED --Unlock--> OPEN
//	OPEN   --Lock----> CLOSED
//
// Any other call (unlocking an open door, locking a closed one) is a
// protocol violation. It returns an error satisfying
// errors.Is(err, ErrIllegalState) and leaves the state unchanged.
//
// # Timeout
//
// Each door carries a fixed timeout duration set at construction. The door
// never acts on it: locking the door when the timeout elapses is the job of
// whoever registers a timer for it (see the autolock package).
//
// # Concurrency
//
// Lock and Unlock may be called from a timer goroutine while the owner is
// also operating the door. Each transition checks and writes the state
// under a single mutex, so concurrent callers observe a linear history.
//
// STATE and ERROR events are handed to the configured log.Logger while that
// mutex is held. The event stream therefore lists transitions in the order
// they took effect, and timestamps never go backwards for one door. A
// Logger must not call Lock or Unlock on the door that emitted the event.
// OnStateChange callbacks run after the mutex is released and carry no
// ordering guarantee between racing callers.
package door
