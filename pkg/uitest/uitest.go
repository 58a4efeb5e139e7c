// Package uitest provides a deterministic harness for exercising the
// engine in tests: a recording display adapter, explicit time advance
// and pointer gesture helpers.
package uitest

import (
	"github.com/go-ember/ember/pkg/display"
	"github.com/go-ember/ember/pkg/engine"
	"github.com/go-ember/ember/pkg/graphics"
)

// DrawCall records one FillRect issued to the display.
type DrawCall struct {
	Rect  graphics.Rect
	Color graphics.Color
}

// RecordingDisplay is a display.Adapter that records every draw call
// instead of writing pixels.
type RecordingDisplay struct {
	size    graphics.Size
	active  uint8
	Calls   []DrawCall
	Flushed []graphics.Rect
}

var _ display.Adapter = (*RecordingDisplay)(nil)

// NewRecordingDisplay returns a recording adapter of the given size.
func NewRecordingDisplay(width, height int) *RecordingDisplay {
	return &RecordingDisplay{size: graphics.Size{Width: width, Height: height}}
}

func (d *RecordingDisplay) Size() graphics.Size { return d.size }

func (d *RecordingDisplay) FillRect(r graphics.Rect, c graphics.Color) {
	d.Calls = append(d.Calls, DrawCall{Rect: r, Color: c})
}

func (d *RecordingDisplay) ActiveLayer() uint8 { return d.active }

func (d *RecordingDisplay) ConfirmLayer(layer uint8) {
	if layer <= 1 {
		d.active = 1 - layer
	}
}

func (d *RecordingDisplay) Flush(damage graphics.Rect) error {
	d.Flushed = append(d.Flushed, damage)
	return nil
}

// Reset clears the recorded calls and flushes.
func (d *RecordingDisplay) Reset() {
	d.Calls = nil
	d.Flushed = nil
}

// Harness couples an engine with a recording display and drives it the
// way a bare-metal main loop would.
type Harness struct {
	Engine  *engine.Engine
	Display *RecordingDisplay
}

// NewHarness builds an engine over a recording display. Fatal on error
// since a harness failing to construct is a test bug, not a condition
// under test.
func NewHarness(t interface{ Fatalf(string, ...any) }, width, height int) *Harness {
	d := NewRecordingDisplay(width, height)
	eng, err := engine.New(engine.Options{Display: d})
	if err != nil {
		t.Fatalf("uitest: engine.New: %v", err)
	}
	return &Harness{Engine: eng, Display: d}
}

// Advance moves engine time forward and runs one pass.
func (h *Harness) Advance(ms uint32) int {
	h.Engine.ReportTimeAdvance(ms)
	return h.Engine.RunPass()
}

// Press reports a pressed sample at (x, y) and runs one pass.
func (h *Harness) Press(x, y int) int {
	h.Engine.ReportPointerSample(x, y, true)
	return h.Engine.RunPass()
}

// Move reports a pressed sample at a new position and runs one pass.
func (h *Harness) Move(x, y int) int {
	h.Engine.ReportPointerSample(x, y, true)
	return h.Engine.RunPass()
}

// Release reports a released sample at (x, y) and runs one pass.
func (h *Harness) Release(x, y int) int {
	h.Engine.ReportPointerSample(x, y, false)
	return h.Engine.RunPass()
}

// Tap presses and releases at (x, y) across two passes.
func (h *Harness) Tap(x, y int) {
	h.Press(x, y)
	h.Release(x, y)
}

// Settle runs passes until the engine reports idle, bounded to avoid
// hanging a test on a runaway invalidation loop.
func (h *Harness) Settle() {
	for i := 0; i < 100; i++ {
		if h.Engine.RunPass() == 0 {
			return
		}
	}
}
