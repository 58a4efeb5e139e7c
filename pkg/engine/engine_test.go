package engine_test

import (
	"math/rand"
	"testing"

	"github.com/go-ember/ember/pkg/engine"
	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/input"
	"github.com/go-ember/ember/pkg/timer"
	"github.com/go-ember/ember/pkg/uitest"
	"github.com/go-ember/ember/pkg/widget"
)

// recorder is a test behavior that fills its bounds with a color and
// records every event it receives.
type recorder struct {
	name      string
	color     graphics.Color
	focusable bool
	events    []input.Event
	onEvent   func(ev input.Event)
	onDraw    func(ctx *widget.DrawContext)
}

func (r *recorder) TypeName() string { return r.name }

func (r *recorder) AcceptsFocus() bool { return r.focusable }

func (r *recorder) Draw(ctx *widget.DrawContext) {
	ctx.Canvas.FillRect(ctx.Bounds, r.color)
	if r.onDraw != nil {
		r.onDraw(ctx)
	}
}

func (r *recorder) HandleEvent(ev input.Event) bool {
	r.events = append(r.events, ev)
	if r.onEvent != nil {
		r.onEvent(ev)
	}
	return true
}

func (r *recorder) kinds() []input.EventKind {
	out := make([]input.EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func contained(inner, outer graphics.Rect) bool {
	return inner.Left >= outer.Left && inner.Top >= outer.Top &&
		inner.Right <= outer.Right && inner.Bottom <= outer.Bottom
}

func TestNewRequiresDisplay(t *testing.T) {
	if _, err := engine.New(engine.Options{}); errors.KindOf(err) != errors.KindDisplayInit {
		t.Fatalf("expected display init failure, got %v", err)
	}
}

func TestCreateWidgetRequiresActiveWindow(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	_, err := h.Engine.CreateWidget(widget.Nil, &recorder{name: "a"}, graphics.RectFromLTWH(0, 0, 10, 10))
	if errors.KindOf(err) != errors.KindNoActiveWindow {
		t.Fatalf("expected NoActiveWindow, got %v", err)
	}

	win, err := h.Engine.CreateWindow(&recorder{name: "win"}, graphics.RectFromLTWH(0, 0, 100, 100))
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if h.Engine.ActiveWindow() != win {
		t.Fatalf("CreateWindow did not establish the active window context")
	}
	if _, err := h.Engine.CreateWidget(widget.Nil, &recorder{name: "a"}, graphics.RectFromLTWH(0, 0, 10, 10)); err != nil {
		t.Fatalf("CreateWidget under active window: %v", err)
	}
}

func TestSetActiveWindowRejectsNonWindow(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	win, _ := h.Engine.CreateWindow(&recorder{name: "win"}, graphics.RectFromLTWH(0, 0, 100, 100))
	child, _ := h.Engine.CreateWidget(win, &recorder{name: "c"}, graphics.RectFromLTWH(0, 0, 10, 10))

	if err := h.Engine.SetActiveWindow(child); errors.KindOf(err) != errors.KindNotAWindow {
		t.Fatalf("expected NotAWindow, got %v", err)
	}
	if err := h.Engine.SetActiveWindow(win); err != nil {
		t.Fatalf("SetActiveWindow: %v", err)
	}
}

// TestRedrawScenario is the reference scenario: window R(0,0,100,100),
// child C(10,10,50,50), invalidating C redraws exactly (10,10,60,60).
func TestRedrawScenario(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	winColor := graphics.RGB(1, 1, 1)
	childColor := graphics.RGB(2, 2, 2)
	win, _ := h.Engine.CreateWindow(&recorder{name: "win", color: winColor}, graphics.RectFromLTWH(0, 0, 100, 100))
	child, _ := h.Engine.CreateWidget(win, &recorder{name: "child", color: childColor}, graphics.RectFromLTWH(10, 10, 50, 50))
	h.Settle()
	h.Display.Reset()

	if err := h.Engine.Invalidate(child); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if work := h.Engine.RunPass(); work == 0 {
		t.Fatalf("invalidation produced no work")
	}

	want := graphics.Rect{Left: 10, Top: 10, Right: 60, Bottom: 60}
	if len(h.Display.Calls) == 0 {
		t.Fatalf("no draw calls recorded")
	}
	var covered graphics.Rect
	for _, call := range h.Display.Calls {
		if !contained(call.Rect, want) {
			t.Fatalf("draw call %+v escapes damage region %+v", call.Rect, want)
		}
		covered = covered.Union(call.Rect)
	}
	if covered != want {
		t.Fatalf("drawn region %+v, want exactly %+v", covered, want)
	}
	if len(h.Display.Flushed) != 1 || h.Display.Flushed[0] != want {
		t.Fatalf("flushed %+v, want [%+v]", h.Display.Flushed, want)
	}
}

func TestInvalidateTwiceRedrawsOnce(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	childColor := graphics.RGB(2, 2, 2)
	win, _ := h.Engine.CreateWindow(&recorder{name: "win", color: graphics.RGB(1, 1, 1)}, graphics.RectFromLTWH(0, 0, 100, 100))
	child, _ := h.Engine.CreateWidget(win, &recorder{name: "child", color: childColor}, graphics.RectFromLTWH(10, 10, 50, 50))
	h.Settle()
	h.Display.Reset()

	h.Engine.Invalidate(child)
	h.Engine.Invalidate(child)
	h.Engine.RunPass()

	childDraws := 0
	for _, call := range h.Display.Calls {
		if call.Color == childColor {
			childDraws++
		}
	}
	if childDraws != 1 {
		t.Fatalf("child drawn %d times after double invalidate, want 1", childDraws)
	}
}

// TestEffectiveClipProperty builds a random tree and asserts no draw
// call escapes the intersection of the widget's bounds with every
// ancestor's bounds.
func TestEffectiveClipProperty(t *testing.T) {
	h := uitest.NewHarness(t, 200, 200)
	rng := rand.New(rand.NewSource(7))

	win, err := h.Engine.CreateWindow(&recorder{name: "win", color: graphics.ColorBlack},
		graphics.RectFromLTWH(10, 10, 180, 180))
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	tree := h.Engine.Tree()
	handles := []widget.Handle{win}
	for i := 0; i < 40; i++ {
		parent := handles[rng.Intn(len(handles))]
		bounds := graphics.RectFromLTWH(
			rng.Intn(160)-20, rng.Intn(160)-20,
			1+rng.Intn(120), 1+rng.Intn(120))

		rec := &recorder{name: "node", color: graphics.RGB(uint8(i), 0, 0)}
		var self widget.Handle
		rec.onDraw = func(ctx *widget.DrawContext) {
			limit := tree.AbsBounds(self)
			for a := tree.Parent(self); !a.IsNil(); a = tree.Parent(a) {
				limit = limit.Intersect(tree.AbsBounds(a))
			}
			if clip := ctx.Canvas.Clip(); !contained(clip, limit) {
				t.Errorf("clip %+v escapes ancestor intersection %+v", clip, limit)
			}
		}
		child, err := h.Engine.CreateWidget(parent, rec, bounds)
		if err != nil {
			t.Fatalf("CreateWidget %d: %v", i, err)
		}
		self = child
		handles = append(handles, child)
	}

	h.Settle()
	for i := 0; i < 10; i++ {
		h.Engine.Invalidate(handles[rng.Intn(len(handles))])
		h.Engine.RunPass()
	}
}

func TestRemoveWidgetRepaintsVacatedRegion(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	winColor := graphics.RGB(1, 1, 1)
	win, _ := h.Engine.CreateWindow(&recorder{name: "win", color: winColor}, graphics.RectFromLTWH(0, 0, 100, 100))
	child, _ := h.Engine.CreateWidget(win, &recorder{name: "child", color: graphics.RGB(2, 2, 2)}, graphics.RectFromLTWH(10, 10, 50, 50))
	h.Settle()
	h.Display.Reset()

	if err := h.Engine.RemoveWidget(child); err != nil {
		t.Fatalf("RemoveWidget: %v", err)
	}
	h.Engine.RunPass()

	if h.Engine.Tree().Valid(child) {
		t.Fatalf("removed widget still valid after pass")
	}
	want := graphics.Rect{Left: 10, Top: 10, Right: 60, Bottom: 60}
	found := false
	for _, call := range h.Display.Calls {
		if call.Color == winColor && call.Rect == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("window did not repaint vacated region %+v: calls %+v", want, h.Display.Calls)
	}
}

func TestCreateWidgetUnderRemovedWindowRejected(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	win, _ := h.Engine.CreateWindow(&recorder{name: "win", color: graphics.ColorBlack}, graphics.RectFromLTWH(0, 0, 100, 100))
	h.Settle()

	if err := h.Engine.RemoveWidget(win); err != nil {
		t.Fatalf("RemoveWidget: %v", err)
	}
	_, err := h.Engine.CreateWidget(win, &recorder{name: "late"}, graphics.RectFromLTWH(10, 10, 20, 20))
	if errors.KindOf(err) != errors.KindStaleHandle {
		t.Fatalf("create under removal-pending window: got %v", err)
	}

	h.Engine.RunPass()
	if h.Engine.Tree().Count() != 0 {
		t.Fatalf("tree count = %d after pass, want 0", h.Engine.Tree().Count())
	}
}

func TestHiddenWidgetNotDrawn(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	childColor := graphics.RGB(2, 2, 2)
	win, _ := h.Engine.CreateWindow(&recorder{name: "win", color: graphics.RGB(1, 1, 1)}, graphics.RectFromLTWH(0, 0, 100, 100))
	child, _ := h.Engine.CreateWidget(win, &recorder{name: "child", color: childColor}, graphics.RectFromLTWH(10, 10, 50, 50))

	h.Engine.Tree().SetFlag(child, widget.FlagVisible, false)
	h.Settle()

	for _, call := range h.Display.Calls {
		if call.Color == childColor {
			t.Fatalf("hidden widget was drawn")
		}
	}
}

func TestHitTestDuringDrawKeepsDamageIntact(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	rec := &recorder{name: "win", color: graphics.ColorBlack}
	rec.onDraw = func(*widget.DrawContext) {
		h.Engine.HitTest(graphics.Point{X: 50, Y: 50})
	}
	win, _ := h.Engine.CreateWindow(rec, graphics.RectFromLTWH(0, 0, 100, 100))
	h.Settle()
	h.Display.Reset()

	h.Engine.Invalidate(win)
	h.Engine.RunPass()

	want := graphics.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}
	if len(h.Display.Flushed) != 1 || h.Display.Flushed[0] != want {
		t.Fatalf("flushed %+v, want [%+v]", h.Display.Flushed, want)
	}
	if work := h.Engine.RunPass(); work != 0 {
		t.Fatalf("nested hit test leaked %d work units into the next pass", work)
	}
}

func TestTimerFiresThroughRunPass(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	fired := 0
	if _, err := h.Engine.Timers().New(100, true, func(*timer.Timer) { fired++ }); err != nil {
		t.Fatalf("Timers.New: %v", err)
	}

	for i := 0; i < 10; i++ {
		h.Advance(50)
	}
	if fired != 5 {
		t.Fatalf("timer fired %d times over 500ms at period 100, want 5", fired)
	}
}

func TestIdlePassReturnsZero(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	h.Engine.CreateWindow(&recorder{name: "win", color: graphics.ColorBlack}, graphics.RectFromLTWH(0, 0, 100, 100))
	h.Settle()

	if work := h.Engine.RunPass(); work != 0 {
		t.Fatalf("idle pass returned %d work units", work)
	}
}

func TestRunPassReentrancyRejected(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	inner := -1
	rec := &recorder{name: "win", color: graphics.ColorBlack}
	rec.onEvent = func(ev input.Event) {
		if ev.Kind == input.EventPress {
			inner = h.Engine.RunPass()
		}
	}
	h.Engine.CreateWindow(rec, graphics.RectFromLTWH(0, 0, 100, 100))
	h.Settle()

	h.Press(50, 50)
	if inner != 0 {
		t.Fatalf("reentrant RunPass returned %d, want 0", inner)
	}
	h.Release(50, 50)
}

func TestConfirmActiveLayerForwarded(t *testing.T) {
	h := uitest.NewHarness(t, 100, 100)
	h.Engine.ConfirmActiveLayer(0)
	if h.Display.ActiveLayer() != 1 {
		t.Fatalf("layer confirm not forwarded to adapter")
	}
}
