package display

import (
	"image"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/graphics"
)

// Framebuffer is a software Adapter backed by in-memory RGBA layers.
// It stands in for an LCD controller on hosts and in tests: drawing goes
// to the active layer, Flush copies the damaged region to the front layer,
// and Present exposes the front layer for inspection or blitting to a
// window at an arbitrary scale.
type Framebuffer struct {
	size   graphics.Size
	layers [2]*image.RGBA
	active uint8

	// flushes counts Flush calls, useful for idle detection in tests.
	flushes int
}

// NewFramebuffer allocates a double-layer software framebuffer.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Newf("display.NewFramebuffer", errors.KindDisplayInit,
			"invalid dimensions %dx%d", width, height)
	}
	fb := &Framebuffer{size: graphics.Size{Width: width, Height: height}}
	bounds := image.Rect(0, 0, width, height)
	fb.layers[0] = image.NewRGBA(bounds)
	fb.layers[1] = image.NewRGBA(bounds)
	return fb, nil
}

// Size returns the pixel dimensions of the framebuffer.
func (f *Framebuffer) Size() graphics.Size {
	return f.size
}

// ActiveLayer returns the index of the back layer drawing goes to.
func (f *Framebuffer) ActiveLayer() uint8 {
	return f.active
}

// ConfirmLayer records that the given layer is now front; drawing moves
// to the other layer.
func (f *Framebuffer) ConfirmLayer(layer uint8) {
	if layer > 1 {
		return
	}
	f.active = 1 - layer
}

// FillRect writes a solid color into the active layer.
func (f *Framebuffer) FillRect(r graphics.Rect, c graphics.Color) {
	dst := f.layers[f.active]
	region := image.Rect(r.Left, r.Top, r.Right, r.Bottom).Intersect(dst.Bounds())
	if region.Empty() {
		return
	}
	stddraw.Draw(dst, region, image.NewUniform(c.NRGBA()), image.Point{}, stddraw.Src)
}

// Flush copies the damaged region from the active layer to the front layer.
func (f *Framebuffer) Flush(damage graphics.Rect) error {
	src := f.layers[f.active]
	front := f.layers[1-f.active]
	region := image.Rect(damage.Left, damage.Top, damage.Right, damage.Bottom).Intersect(src.Bounds())
	if !region.Empty() {
		stddraw.Draw(front, region, src, region.Min, stddraw.Src)
	}
	f.flushes++
	return nil
}

// Flushes returns the number of Flush calls so far.
func (f *Framebuffer) Flushes() int {
	return f.flushes
}

// Present scales the front layer into dst, typically a host window surface.
// Nearest-neighbor keeps pixel edges crisp at integer scales.
func (f *Framebuffer) Present(dst stddraw.Image) {
	front := f.layers[1-f.active]
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), front, front.Bounds(), xdraw.Src, nil)
}

// Front returns the front layer for direct inspection.
func (f *Framebuffer) Front() *image.RGBA {
	return f.layers[1-f.active]
}
