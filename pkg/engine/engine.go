package engine

import (
	"sync/atomic"

	"github.com/go-ember/ember/pkg/display"
	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/input"
	"github.com/go-ember/ember/pkg/timer"
	"github.com/go-ember/ember/pkg/widget"
)

// Options configures a new Engine.
type Options struct {
	// Display is the low-level display adapter. Required.
	Display display.Adapter
	// WidgetCapacity bounds the widget arena. Defaults to 64.
	WidgetCapacity int
	// TimerCapacity bounds the timer set. Defaults to 16.
	TimerCapacity int
}

// Engine is the process-wide runtime state. All methods except
// ReportTimeAdvance and ReportPointerSample must be called from the
// single cooperative execution context.
type Engine struct {
	display display.Adapter
	tree    *widget.Tree
	timers  *timer.Scheduler

	// timeMS is the monotonic millisecond counter, the only field an
	// interrupt-context tick handler writes.
	timeMS atomic.Uint32
	// lastPassMS is the engine time consumed by the previous pass.
	lastPassMS uint32

	// samples is the driver-to-engine pointer mailbox.
	samples       input.SampleSlot
	lastSampleSeq uint32
	prevSample    input.PointerSample

	clip clipState

	activeWindow widget.Handle
	focused      widget.Handle
	focusedPrev  widget.Handle
	captured     widget.Handle
	capturedPrev widget.Handle

	inPass bool
}

// New initializes an engine against the given display adapter.
func New(opts Options) (*Engine, error) {
	if opts.Display == nil {
		return nil, errors.New("engine.New", errors.KindDisplayInit)
	}
	size := opts.Display.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return nil, errors.Newf("engine.New", errors.KindDisplayInit,
			"display reports size %dx%d", size.Width, size.Height)
	}
	e := &Engine{
		display: opts.Display,
		tree:    widget.NewTree(opts.WidgetCapacity),
		timers:  timer.NewScheduler(opts.TimerCapacity),
	}
	return e, nil
}

// Tree exposes the widget tree for structural queries.
func (e *Engine) Tree() *widget.Tree {
	return e.tree
}

// Timers exposes the timer scheduler for creating timers.
func (e *Engine) Timers() *timer.Scheduler {
	return e.timers
}

// Display returns the display adapter the engine draws through.
func (e *Engine) Display() display.Adapter {
	return e.display
}

// Time returns the current engine time in milliseconds.
func (e *Engine) Time() uint32 {
	return e.timeMS.Load()
}

// ReportTimeAdvance advances the engine clock by deltaMS. Safe to call
// from any execution context, including an ISR tick handler: it only
// advances the monotonic counter and never mutates tree or clip state.
func (e *Engine) ReportTimeAdvance(deltaMS uint32) {
	e.timeMS.Add(deltaMS)
}

// ReportPointerSample publishes the latest raw pointer sample. Safe to
// call from any execution context; the sample is drained by the next
// RunPass.
func (e *Engine) ReportPointerSample(x, y int, pressed bool) {
	e.samples.Store(input.PointerSample{
		Position: graphics.Point{X: x, Y: y},
		Pressed:  pressed,
	})
}

// ConfirmActiveLayer notifies the engine that the display panel switched
// to the given framebuffer layer.
func (e *Engine) ConfirmActiveLayer(layer uint8) {
	e.display.ConfirmLayer(layer)
}

// CreateWindow allocates a new top-level widget, makes it the active
// window context and schedules its initial draw.
func (e *Engine) CreateWindow(b widget.Behavior, bounds graphics.Rect) (widget.Handle, error) {
	h, err := e.tree.Create(widget.Nil, b, bounds)
	if err != nil {
		return widget.Nil, err
	}
	e.activeWindow = h
	e.invalidate(h, graphics.Rect{})
	return h, nil
}

// CreateWidget allocates a widget under parent, or under the active
// window when parent is Nil. Fails with KindNoActiveWindow when no
// window context exists.
func (e *Engine) CreateWidget(parent widget.Handle, b widget.Behavior, bounds graphics.Rect) (widget.Handle, error) {
	if parent.IsNil() {
		if !e.tree.Valid(e.activeWindow) {
			return widget.Nil, errors.New("engine.CreateWidget", errors.KindNoActiveWindow)
		}
		parent = e.activeWindow
	}
	h, err := e.tree.Create(parent, b, bounds)
	if err != nil {
		return widget.Nil, err
	}
	e.invalidate(h, graphics.Rect{})
	return h, nil
}

// SetActiveWindow establishes the window context used by CreateWidget.
func (e *Engine) SetActiveWindow(h widget.Handle) error {
	if !e.tree.IsWindow(h) {
		return errors.New("engine.SetActiveWindow", errors.KindNotAWindow)
	}
	e.activeWindow = h
	return nil
}

// ActiveWindow returns the current window context.
func (e *Engine) ActiveWindow() widget.Handle {
	return e.activeWindow
}

// RemoveWidget marks h and its subtree for deferred destruction and
// schedules a redraw of the vacated region. Destruction happens at a
// safe point inside RunPass, so removing a widget from its own event
// callback is well-defined.
func (e *Engine) RemoveWidget(h widget.Handle) error {
	abs := e.tree.AbsBounds(h)
	if err := e.tree.RemoveRequest(h); err != nil {
		return err
	}
	e.clip.addDamage(abs)
	return nil
}

// Invalidate marks a widget as needing redraw.
func (e *Engine) Invalidate(h widget.Handle) error {
	return e.invalidate(h, graphics.Rect{})
}

// InvalidateRegion marks a widget-relative sub-rectangle as needing
// redraw.
func (e *Engine) InvalidateRegion(h widget.Handle, region graphics.Rect) error {
	return e.invalidate(h, region)
}

func (e *Engine) invalidate(h widget.Handle, region graphics.Rect) error {
	abs, err := e.tree.Invalidate(h, region)
	if err != nil {
		return err
	}
	e.clip.addDamage(abs)
	return nil
}

// RunPass executes one non-blocking processing pass: it advances timers,
// drains one pointer sample, redraws invalidated regions and reclaims
// removed widgets. It returns the number of discrete work units
// performed; 0 means the caller may idle.
//
// RunPass never blocks and never recurses into itself; a reentrant call
// is reported as a programming error and performs no work.
func (e *Engine) RunPass() int {
	if e.inPass {
		errors.Report(errors.Newf("engine.RunPass", errors.KindUnknown,
			"reentrant RunPass from a widget or timer callback"))
		return 0
	}
	e.inPass = true
	defer func() { e.inPass = false }()

	now := e.timeMS.Load()
	elapsed := now - e.lastPassMS
	e.lastPassMS = now

	work := e.timers.Advance(elapsed)
	work += e.processPointer(now)

	// Reclaim widgets removed by timer or input callbacks before drawing,
	// so the redraw never visits a half-dead subtree.
	work += e.sweep()

	work += e.redraw()
	work += e.sweep()
	return work
}

// sweep reclaims removed widgets and drops engine references to them.
func (e *Engine) sweep() int {
	freed := e.tree.Sweep()
	if freed == 0 {
		return 0
	}
	if !e.tree.Valid(e.activeWindow) {
		e.activeWindow = widget.Nil
	}
	if !e.tree.Valid(e.focused) {
		e.focused = widget.Nil
	}
	if !e.tree.Valid(e.focusedPrev) {
		e.focusedPrev = widget.Nil
	}
	if !e.tree.Valid(e.captured) {
		e.captured = widget.Nil
	}
	if !e.tree.Valid(e.capturedPrev) {
		e.capturedPrev = widget.Nil
	}
	return freed
}
