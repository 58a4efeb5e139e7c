package engine

import (
	"github.com/go-ember/ember/pkg/display"
	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/widget"
)

// redraw performs one damage-bounded traversal over the widget tree and
// returns the number of draw callbacks invoked.
//
// The traversal is depth-first in z-order (bottom window first, first
// sibling first). Entering a node intersects the accumulated ancestor
// clip with the node's absolute bounds; an empty intersection prunes the
// node and its entire subtree, so dirty regions far from a subtree cost
// O(1) per skipped node. Because the root clip is the damage region, a
// non-empty effective clip both permits and requires drawing, which
// also makes repeated invalidations of one region coalesce into a
// single redraw.
func (e *Engine) redraw() int {
	if !e.clip.hasDamage() {
		return 0
	}
	size := e.display.Size()
	screen := graphics.RectFromLTWH(0, 0, size.Width, size.Height)
	damage := e.clip.takeDamage().Intersect(screen)
	if damage.IsEmpty() {
		return 0
	}

	work := 0
	for w := e.tree.FirstWindow(); !w.IsNil(); w = e.tree.NextSibling(w) {
		work += e.drawNode(w, damage, 0, 0)
	}
	if work > 0 {
		if err := e.display.Flush(damage); err != nil {
			errors.Report(errors.Newf("engine.redraw", errors.KindUnknown, "flush: %v", err))
		}
	}
	return work
}

// drawNode draws one widget and recurses into its children. parentClip
// is the effective clip of the ancestor chain already intersected with
// the pass damage; (ox, oy) is the absolute origin of the parent.
func (e *Engine) drawNode(h widget.Handle, parentClip graphics.Rect, ox, oy int) int {
	if e.tree.HasFlag(h, widget.FlagRemoved) || !e.tree.HasFlag(h, widget.FlagVisible) {
		return 0
	}
	rel := e.tree.Bounds(h)
	abs := rel.Translate(ox, oy)
	eff := parentClip.Intersect(abs)
	if eff.IsEmpty() {
		return 0
	}

	work := 1
	canvas := display.NewCanvas(e.display, eff)
	ctx := &widget.DrawContext{
		Canvas:  canvas,
		Bounds:  abs,
		Focused: e.tree.HasFlag(h, widget.FlagFocused),
		Active:  e.tree.HasFlag(h, widget.FlagActive),
	}
	e.draw(h, ctx)
	e.tree.ClearInvalidated(h)

	for c := e.tree.FirstChild(h); !c.IsNil(); c = e.tree.NextSibling(c) {
		work += e.drawNode(c, eff, abs.Left, abs.Top)
	}
	return work
}

// draw invokes the behavior's draw callback with panic containment.
func (e *Engine) draw(h widget.Handle, ctx *widget.DrawContext) {
	defer errors.Recover("engine.draw")
	if b := e.tree.Behavior(h); b != nil {
		b.Draw(ctx)
	}
}
