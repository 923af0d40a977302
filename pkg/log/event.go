package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// ErrPayloadMismatch is returned for an event whose payload does not belong
// to its category.
var ErrPayloadMismatch = errors.New("event payload does not match category")

// Event represents a captured door or timer event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"2,keyasint"`

	// DoorID identifies the door (empty for timer-only events).
	DoorID string `cbor:"3,keyasint,omitempty"`

	// RegistrationID identifies the timer registration.
	RegistrationID string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Timer       *TimerEvent       `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a door state change.
	CategoryState Category = 0
	// CategoryTimer indicates a timer registration or delivery.
	CategoryTimer Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryTimer:
		return "TIMER"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a door transition.
type StateChangeEvent struct {
	// OldState is the state before the transition.
	OldState string `cbor:"1,keyasint"`

	// NewState is the state after the transition.
	NewState string `cbor:"2,keyasint"`

	// Reason is an optional explanation (e.g. "timeout").
	Reason string `cbor:"3,keyasint,omitempty"`
}

// TimerAction distinguishes the phases of a registration.
type TimerAction uint8

const (
	// TimerActionRegistered indicates the registration was scheduled.
	TimerActionRegistered TimerAction = 0
	// TimerActionFired indicates the client was notified.
	TimerActionFired TimerAction = 1
)

// String returns the action name.
func (a TimerAction) String() string {
	switch a {
	case TimerActionRegistered:
		return "REGISTERED"
	case TimerActionFired:
		return "FIRED"
	default:
		return "UNKNOWN"
	}
}

// TimerEvent captures a timer registration or delivery.
type TimerEvent struct {
	// Action is the registration phase.
	Action TimerAction `cbor:"1,keyasint"`

	// Duration is the requested duration. Stored as nanoseconds.
	Duration time.Duration `cbor:"2,keyasint"`

	// Elapsed is the time between registration and delivery (fired only).
	Elapsed time.Duration `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures a rejected operation.
type ErrorEventData struct {
	// Op is the operation that failed (e.g. "lock", "unlock", "timeout").
	Op string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`
}

// Validate reports whether the event carries exactly the payload its
// category calls for: StateChange for STATE, Timer for TIMER and Error for
// ERROR. A TIMER event must also name its registration.
func (e Event) Validate() error {
	var set int
	for _, present := range []bool{e.StateChange != nil, e.Timer != nil, e.Error != nil} {
		if present {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("%w: %s event carries %d payloads", ErrPayloadMismatch, e.Category, set)
	}

	switch e.Category {
	case CategoryState:
		if e.StateChange == nil {
			return fmt.Errorf("%w: STATE event without state change", ErrPayloadMismatch)
		}
	case CategoryTimer:
		if e.Timer == nil {
			return fmt.Errorf("%w: TIMER event without timer payload", ErrPayloadMismatch)
		}
		if e.RegistrationID == "" {
			return fmt.Errorf("%w: TIMER event without registration id", ErrPayloadMismatch)
		}
	case CategoryError:
		if e.Error == nil {
			return fmt.Errorf("%w: ERROR event without error payload", ErrPayloadMismatch)
		}
	default:
		return fmt.Errorf("%w: unknown category %d", ErrPayloadMismatch, uint8(e.Category))
	}
	return nil
}

// Event streams use canonical CBOR with RFC 3339 timestamps so that the
// nanosecond part of a timestamp survives a round trip.
var (
	eventEncMode cbor.EncMode
	eventDecMode cbor.DecMode
)

func init() {
	var err error

	eventEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: event encoder mode: %v", err))
	}

	eventDecMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: event decoder mode: %v", err))
	}
}

// EncodeEvent validates an event and encodes it to CBOR.
func EncodeEvent(event Event) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes a single CBOR event and rejects it if its payload
// does not match its category.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if err := event.Validate(); err != nil {
		return Event{}, err
	}
	return event, nil
}

func newEventEncoder(w io.Writer) *cbor.Encoder {
	return eventEncMode.NewEncoder(w)
}

func newEventDecoder(r io.Reader) *cbor.Decoder {
	return eventDecMode.NewDecoder(r)
}
