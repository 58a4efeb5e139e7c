package engine

import "github.com/go-ember/ember/pkg/graphics"

// clipState holds the live clip region accumulating damage committed for
// the next redraw. Hit-test queries compute their effective clips in
// per-query locals, so a query during an in-progress pass can never
// corrupt the live clip.
type clipState struct {
	live graphics.Rect
}

// addDamage unions an absolute screen rectangle into the live region.
func (c *clipState) addDamage(r graphics.Rect) {
	if r.IsEmpty() {
		return
	}
	c.live = c.live.Union(r)
}

// takeDamage returns and clears the accumulated live region.
func (c *clipState) takeDamage() graphics.Rect {
	d := c.live
	c.live = graphics.Rect{}
	return d
}

// hasDamage reports whether any region awaits redraw.
func (c *clipState) hasDamage() bool {
	return !c.live.IsEmpty()
}
