// Package display defines the low-level display contract the engine draws
// through, and a software framebuffer implementation for hosts and tests.
package display

import "github.com/go-ember/ember/pkg/graphics"

// Adapter is the low-level display the engine renders into.
//
// The engine clamps every draw region to the active clip before calling the
// adapter, so implementations may write the given rect verbatim. Adapters on
// double-buffered hardware report the layer currently being composed via
// ActiveLayer and are told through ConfirmLayer when the panel has switched
// to a layer and its backing memory may be reused.
type Adapter interface {
	// Size returns the pixel dimensions of the display.
	Size() graphics.Size
	// FillRect writes a solid color into the given region of the active layer.
	FillRect(r graphics.Rect, c graphics.Color)
	// ActiveLayer returns the index of the layer currently being drawn to.
	ActiveLayer() uint8
	// ConfirmLayer notifies the adapter that the given layer is now on screen.
	ConfirmLayer(layer uint8)
	// Flush presents the damaged region. Called once at the end of a pass
	// that performed drawing.
	Flush(damage graphics.Rect) error
}

// Canvas is the drawing surface handed to widget draw callbacks. Every
// primitive is intersected with the canvas clip, so a widget cannot draw
// outside the effective clip computed for it.
type Canvas struct {
	adapter Adapter
	clip    graphics.Rect
}

// NewCanvas returns a canvas bound to the given adapter and clip rect.
func NewCanvas(adapter Adapter, clip graphics.Rect) *Canvas {
	return &Canvas{adapter: adapter, clip: clip}
}

// Clip returns the clip rect the canvas is bound to.
func (c *Canvas) Clip() graphics.Rect {
	return c.clip
}

// FillRect fills the part of r inside the clip with the given color.
func (c *Canvas) FillRect(r graphics.Rect, col graphics.Color) {
	clipped := r.Intersect(c.clip)
	if clipped.IsEmpty() {
		return
	}
	c.adapter.FillRect(clipped, col)
}

// StrokeRect draws a one-pixel border along the edges of r, clipped.
func (c *Canvas) StrokeRect(r graphics.Rect, col graphics.Color) {
	c.FillRect(graphics.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Top + 1}, col)
	c.FillRect(graphics.Rect{Left: r.Left, Top: r.Bottom - 1, Right: r.Right, Bottom: r.Bottom}, col)
	c.FillRect(graphics.Rect{Left: r.Left, Top: r.Top, Right: r.Left + 1, Bottom: r.Bottom}, col)
	c.FillRect(graphics.Rect{Left: r.Right - 1, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, col)
}
