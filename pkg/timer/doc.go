// Package timer implements one-shot timeout registrations.
//
// A Timer accepts a duration and a Client. After at least that duration
// has elapsed, the client's Timeout method is invoked exactly once on a
// goroutine owned by the Go runtime timer, never on the registering
// goroutine. Register returns immediately.
//
// # Registrations
//
// Each call to Register creates an independent registration. Registrations
// do not replace each other, may fire concurrently, and carry no ordering
// guarantee beyond "not before the requested duration". A registration is
// tracked by its Timer until it fires and is then discarded.
//
// There is no cancellation. Clients must stay valid until they fire.
//
// # Failing Clients
//
// A client that panics in Timeout does not take the process down: the
// panic is recovered and reported through the configured loggers.
package timer
