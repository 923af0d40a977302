package timer

// Client receives timeout notifications.
type Client interface {
	// Timeout is called once when a registered duration has elapsed.
	Timeout()
}

// ClientFunc adapts an ordinary function to the Client interface.
type ClientFunc func()

// Timeout calls f().
func (f ClientFunc) Timeout() {
	f()
}

// Compile-time interface satisfaction check.
var _ Client = ClientFunc(nil)
