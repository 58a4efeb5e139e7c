// Package input defines pointer samples and widget events, plus the
// interrupt-safe slot drivers use to hand samples to the engine.
package input

import "github.com/go-ember/ember/pkg/graphics"

// PointerSample is one raw sample from a touch or pointer driver.
type PointerSample struct {
	Position graphics.Point
	Pressed  bool
}

// EventKind identifies the kind of a widget event.
type EventKind int

const (
	// EventPress is delivered when a pointer press lands on a widget.
	EventPress EventKind = iota
	// EventMove is delivered to the capturing widget while the pointer moves.
	EventMove
	// EventRelease ends a gesture on the capturing widget.
	EventRelease
	// EventFocusGained is delivered when a widget receives keyboard focus.
	EventFocusGained
	// EventFocusLost is delivered when a widget loses keyboard focus.
	EventFocusLost
	// EventKey is delivered to the focused widget for keyboard-class input.
	EventKey
)

func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	case EventFocusGained:
		return "focus-gained"
	case EventFocusLost:
		return "focus-lost"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Event is a synthesized input event dispatched to a widget behavior.
type Event struct {
	Kind EventKind
	// Position is the pointer position in screen coordinates.
	Position graphics.Point
	// Delta is the movement since the previous sample (move events only).
	Delta graphics.Point
	// Key carries the key code for EventKey events.
	Key rune
	// Time is the engine time in milliseconds when the event was synthesized.
	Time uint32
}
