// Package widget implements the widget tree as an arena of records
// addressed by generation-checked handles.
//
// Parent, child and sibling relations are stored as indices into the
// arena, so a destroyed widget never leaves a dangling pointer behind:
// a stale handle simply fails its generation check. Removal is deferred;
// RemoveRequest marks a subtree and the engine reclaims it with Sweep at
// a safe point in the processing pass, never while a traversal is holding
// a reference into the tree.
package widget

import (
	"github.com/go-ember/ember/pkg/display"
	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/input"
)

// Handle identifies a widget in a Tree. The zero Handle is nil.
type Handle struct {
	idx int32
	gen uint32
}

// Nil is the zero handle, identifying no widget.
var Nil = Handle{}

// IsNil reports whether the handle identifies no widget.
func (h Handle) IsNil() bool {
	return h.gen == 0
}

// Flags is the per-widget status flag set.
type Flags uint8

const (
	// FlagVisible marks a widget as drawn and hit-testable.
	FlagVisible Flags = 1 << iota
	// FlagInvalidated marks a widget as needing redraw.
	FlagInvalidated
	// FlagActive marks the widget currently capturing pointer input.
	FlagActive
	// FlagFocused marks the widget holding keyboard focus.
	FlagFocused
	// FlagRemoved marks a widget awaiting deferred destruction.
	FlagRemoved
	// FlagWindow marks a top-level widget.
	FlagWindow
)

// DrawContext carries everything a behavior needs to draw itself.
type DrawContext struct {
	// Canvas is clipped to the widget's effective clip region.
	Canvas *display.Canvas
	// Bounds is the widget's absolute on-screen rectangle.
	Bounds graphics.Rect
	// Focused and Active mirror the widget's flags at draw time.
	Focused bool
	Active  bool
}

// Behavior supplies the per-type drawing and event logic of a widget.
// Implementations must not block and must not call back into the engine's
// processing pass.
type Behavior interface {
	// TypeName identifies the widget type in diagnostics.
	TypeName() string
	// Draw paints the widget within ctx.Canvas's clip.
	Draw(ctx *DrawContext)
	// HandleEvent processes a synthesized input event. Returning true
	// consumes the event.
	HandleEvent(ev input.Event) bool
}

// Focuser is the optional capability a Behavior implements to accept
// keyboard focus.
type Focuser interface {
	AcceptsFocus() bool
}

// record is one arena slot. Links are arena indices, -1 for none.
type record struct {
	gen   uint32
	inUse bool

	behavior Behavior
	flags    Flags

	// Geometry relative to the parent (screen-relative for windows).
	x, y, w, h int

	// damage is the widget-relative region awaiting redraw, valid only
	// while FlagInvalidated is set.
	damage graphics.Rect

	parent     int32
	firstChild int32
	lastChild  int32
	nextSib    int32
	prevSib    int32
}
