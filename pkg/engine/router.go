package engine

import (
	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/input"
	"github.com/go-ember/ember/pkg/widget"
)

// processPointer drains at most one pointer sample, diffs it against the
// previous sample and dispatches the synthesized press/move/release
// events. Returns the number of events dispatched.
//
// Capture semantics: the widget hit on the press edge receives every
// move and release of the gesture, even after the pointer leaves its
// bounds. If the capturing widget is removed mid-gesture the capture is
// released and the remaining events of the gesture are dropped.
func (e *Engine) processPointer(now uint32) int {
	sample, fresh := e.samples.Take(&e.lastSampleSeq)

	// A removed widget must never receive events; its handle fails
	// validation as soon as the sweep runs.
	if !e.tree.Valid(e.captured) || e.tree.HasFlag(e.captured, widget.FlagRemoved) {
		e.captured = widget.Nil
	}
	if !fresh {
		return 0
	}

	prev := e.prevSample
	e.prevSample = sample
	work := 0

	switch {
	case sample.Pressed && !prev.Pressed:
		// Press edge: topmost widget under the point captures the gesture.
		hit := e.HitTest(sample.Position)
		if hit.IsNil() {
			break
		}
		e.capturedPrev = e.captured
		e.captured = hit
		e.tree.SetFlag(hit, widget.FlagActive, true)
		e.invalidate(hit, graphics.Rect{})
		work += e.dispatch(hit, input.Event{
			Kind:     input.EventPress,
			Position: sample.Position,
			Time:     now,
		})
		// Pressing a focusable widget also moves keyboard focus to it.
		if f, ok := e.tree.Behavior(hit).(widget.Focuser); ok && f.AcceptsFocus() {
			work += e.focusTo(hit, now)
		}

	case sample.Pressed && prev.Pressed:
		if e.captured.IsNil() || sample.Position == prev.Position {
			break
		}
		work += e.dispatch(e.captured, input.Event{
			Kind:     input.EventMove,
			Position: sample.Position,
			Delta: graphics.Point{
				X: sample.Position.X - prev.Position.X,
				Y: sample.Position.Y - prev.Position.Y,
			},
			Time: now,
		})

	case !sample.Pressed && prev.Pressed:
		// Release edge: the gesture ends and the capture is promoted to
		// "previously active".
		if e.captured.IsNil() {
			break
		}
		work += e.dispatch(e.captured, input.Event{
			Kind:     input.EventRelease,
			Position: sample.Position,
			Time:     now,
		})
		e.tree.SetFlag(e.captured, widget.FlagActive, false)
		e.invalidate(e.captured, graphics.Rect{})
		e.capturedPrev = e.captured
		e.captured = widget.Nil
	}
	return work
}

// Captured returns the widget currently capturing pointer input.
func (e *Engine) Captured() widget.Handle {
	return e.captured
}

// Focused returns the widget holding keyboard focus.
func (e *Engine) Focused() widget.Handle {
	return e.focused
}

// SetFocus moves keyboard focus to h. Fails with KindNotFocusable when
// the widget's behavior does not declare the focus capability, and
// KindStaleHandle when h is dead.
func (e *Engine) SetFocus(h widget.Handle) error {
	const op = "engine.SetFocus"
	b := e.tree.Behavior(h)
	if b == nil {
		return errors.New(op, errors.KindStaleHandle)
	}
	f, ok := b.(widget.Focuser)
	if !ok || !f.AcceptsFocus() {
		return errors.Newf(op, errors.KindNotFocusable, "%s", b.TypeName())
	}
	e.focusTo(h, e.timeMS.Load())
	return nil
}

// ClearFocus demotes the current focus, leaving no widget focused.
func (e *Engine) ClearFocus() {
	e.focusTo(widget.Nil, e.timeMS.Load())
}

// focusTo demotes the current focus to "previous focus" and promotes h.
// Returns the number of focus events dispatched.
func (e *Engine) focusTo(h widget.Handle, now uint32) int {
	if h == e.focused {
		return 0
	}
	work := 0
	if e.tree.Valid(e.focused) {
		e.tree.SetFlag(e.focused, widget.FlagFocused, false)
		e.invalidate(e.focused, graphics.Rect{})
		work += e.dispatch(e.focused, input.Event{Kind: input.EventFocusLost, Time: now})
	}
	e.focusedPrev = e.focused
	e.focused = h
	if !h.IsNil() {
		e.tree.SetFlag(h, widget.FlagFocused, true)
		e.invalidate(h, graphics.Rect{})
		work += e.dispatch(h, input.Event{Kind: input.EventFocusGained, Time: now})
	}
	return work
}

// SendKey delivers a keyboard-class event to the focused widget. Must be
// called from the cooperative context. Returns true if a focused widget
// consumed the key.
func (e *Engine) SendKey(key rune) bool {
	if !e.tree.Valid(e.focused) {
		return false
	}
	b := e.tree.Behavior(e.focused)
	if b == nil {
		return false
	}
	defer errors.Recover("engine.SendKey")
	return b.HandleEvent(input.Event{Kind: input.EventKey, Key: key, Time: e.timeMS.Load()})
}

// dispatch delivers one event to a widget behavior with panic
// containment. Returns 1 for work accounting.
func (e *Engine) dispatch(h widget.Handle, ev input.Event) int {
	b := e.tree.Behavior(h)
	if b == nil {
		return 0
	}
	func() {
		defer errors.Recover("engine.dispatch")
		b.HandleEvent(ev)
	}()
	return 1
}
