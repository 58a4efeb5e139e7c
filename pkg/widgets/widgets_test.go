package widgets_test

import (
	"testing"

	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/input"
	"github.com/go-ember/ember/pkg/theme"
	"github.com/go-ember/ember/pkg/uitest"
	"github.com/go-ember/ember/pkg/widgets"
)

func buttonFixture(t *testing.T) (*uitest.Harness, *widgets.Button) {
	t.Helper()
	h := uitest.NewHarness(t, 100, 100)
	th := theme.Default()
	win, err := h.Engine.CreateWindow(&widgets.Panel{Color: th.Background},
		graphics.RectFromLTWH(0, 0, 100, 100))
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	btn := &widgets.Button{Theme: th}
	if _, err := h.Engine.CreateWidget(win, btn, graphics.RectFromLTWH(20, 20, 40, 20)); err != nil {
		t.Fatalf("CreateWidget: %v", err)
	}
	h.Settle()
	return h, btn
}

func TestButtonTap(t *testing.T) {
	h, btn := buttonFixture(t)
	taps := 0
	btn.OnTap = func() { taps++ }

	h.Tap(30, 30)
	if taps != 1 {
		t.Fatalf("taps = %d, want 1", taps)
	}
	if btn.Pressed() {
		t.Fatalf("button still pressed after release")
	}
}

func TestButtonPressDragOutRelease(t *testing.T) {
	h, btn := buttonFixture(t)
	taps := 0
	btn.OnTap = func() { taps++ }

	h.Press(30, 30)
	if !btn.Pressed() {
		t.Fatalf("button not pressed after press inside")
	}
	h.Move(80, 80)
	h.Release(80, 80)
	if taps != 0 {
		t.Fatalf("release outside bounds still tapped")
	}
	if btn.Pressed() {
		t.Fatalf("button stuck pressed after release outside")
	}
}

func TestButtonTapMovesFocus(t *testing.T) {
	h, _ := buttonFixture(t)
	h.Tap(30, 30)
	if h.Engine.Focused().IsNil() {
		t.Fatalf("tap did not focus the button")
	}
}

func TestButtonKeyActivation(t *testing.T) {
	h, btn := buttonFixture(t)
	taps := 0
	btn.OnTap = func() { taps++ }

	h.Tap(30, 30) // focus it
	taps = 0
	if !h.Engine.SendKey('\n') {
		t.Fatalf("enter key not consumed")
	}
	h.Engine.SendKey(' ')
	h.Engine.SendKey('x')
	if taps != 2 {
		t.Fatalf("taps = %d after enter+space+other, want 2", taps)
	}
}

func TestPanelIgnoresEvents(t *testing.T) {
	p := &widgets.Panel{}
	if p.HandleEvent(input.Event{Kind: input.EventPress}) {
		t.Fatalf("panel consumed a press")
	}
}

func TestLabelIgnoresEvents(t *testing.T) {
	l := &widgets.Label{Theme: theme.Default()}
	if l.HandleEvent(input.Event{Kind: input.EventPress}) {
		t.Fatalf("label consumed a press")
	}
}
