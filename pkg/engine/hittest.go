package engine

import (
	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/widget"
)

// HitTest returns the topmost visible widget whose effective clip
// contains p, or a nil handle. Windows are probed topmost-first, then
// descendants last-sibling-first and deepest-first, so the later-added
// of two overlapping siblings wins.
//
// The query computes its clips in locals and never touches the live
// damage state, so it is safe to call from a draw or event callback
// during an in-progress pass.
func (e *Engine) HitTest(p graphics.Point) widget.Handle {
	size := e.display.Size()
	screen := graphics.RectFromLTWH(0, 0, size.Width, size.Height)
	for w := e.tree.LastWindow(); !w.IsNil(); w = e.tree.PrevSibling(w) {
		if hit := e.hitNode(w, screen, 0, 0, p); !hit.IsNil() {
			return hit
		}
	}
	return widget.Nil
}

// hitNode probes one widget and its subtree. The effective clip is the
// running intersection of ancestor bounds, held in a local so nested
// queries cannot interfere; a point outside it can hit neither the
// widget nor any descendant.
func (e *Engine) hitNode(h widget.Handle, parentClip graphics.Rect, ox, oy int, p graphics.Point) widget.Handle {
	if e.tree.HasFlag(h, widget.FlagRemoved) || !e.tree.HasFlag(h, widget.FlagVisible) {
		return widget.Nil
	}
	rel := e.tree.Bounds(h)
	abs := rel.Translate(ox, oy)
	eff := parentClip.Intersect(abs)
	if eff.IsEmpty() || !eff.Contains(p) {
		return widget.Nil
	}
	for c := e.tree.LastChild(h); !c.IsNil(); c = e.tree.PrevSibling(c) {
		if hit := e.hitNode(c, eff, abs.Left, abs.Top, p); !hit.IsNil() {
			return hit
		}
	}
	return h
}
