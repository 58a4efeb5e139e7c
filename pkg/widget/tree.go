package widget

import (
	"github.com/go-ember/ember/pkg/errors"
	"github.com/go-ember/ember/pkg/graphics"
)

const none int32 = -1

// Tree is a fixed-capacity arena of widget records. Top-level widgets
// (windows) form a root list; every other widget hangs off exactly one
// parent. Sibling order is z-order: later siblings draw on top.
//
// Tree is owned by the engine's cooperative context and is not safe for
// concurrent use.
type Tree struct {
	records   []record
	freeHead  int32
	liveCount int

	rootFirst int32
	rootLast  int32
}

// NewTree returns a tree holding at most capacity widgets.
func NewTree(capacity int) *Tree {
	if capacity <= 0 {
		capacity = 64
	}
	t := &Tree{
		records:   make([]record, capacity),
		rootFirst: none,
		rootLast:  none,
	}
	// Chain all slots into the free list.
	for i := range t.records {
		t.records[i].nextSib = int32(i) + 1
		t.records[i].gen = 1
	}
	t.records[capacity-1].nextSib = none
	t.freeHead = 0
	return t
}

// Count returns the number of live widgets, including those marked
// for removal but not yet swept.
func (t *Tree) Count() int {
	return t.liveCount
}

// Valid reports whether the handle still identifies a live widget.
func (t *Tree) Valid(h Handle) bool {
	return t.get(h) != nil
}

// get resolves a handle, returning nil for stale or nil handles.
func (t *Tree) get(h Handle) *record {
	if h.gen == 0 || int(h.idx) >= len(t.records) {
		return nil
	}
	r := &t.records[h.idx]
	if !r.inUse || r.gen != h.gen {
		return nil
	}
	return r
}

// handleAt builds a Handle for an arena index.
func (t *Tree) handleAt(idx int32) Handle {
	if idx == none {
		return Nil
	}
	return Handle{idx: idx, gen: t.records[idx].gen}
}

// Create allocates a widget as the last child of parent, or as the
// topmost window when parent is Nil. Fails with KindInvalidParameter on
// degenerate geometry or nil behavior, KindStaleHandle on a dead or
// removal-pending parent, and KindAllocation when the arena is exhausted.
func (t *Tree) Create(parent Handle, b Behavior, bounds graphics.Rect) (Handle, error) {
	const op = "widget.Create"
	if b == nil {
		return Nil, errors.New(op, errors.KindInvalidParameter)
	}
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return Nil, errors.Newf(op, errors.KindInvalidParameter,
			"degenerate geometry %dx%d", bounds.Width(), bounds.Height())
	}
	var p *record
	if !parent.IsNil() {
		if p = t.get(parent); p == nil {
			return Nil, errors.New(op, errors.KindStaleHandle)
		}
		// A parent marked for removal is already doomed; linking a child
		// under it would let the child escape the subtree sweep.
		if p.flags&FlagRemoved != 0 {
			return Nil, errors.Newf(op, errors.KindStaleHandle, "parent pending removal")
		}
	}
	if t.freeHead == none {
		return Nil, errors.Newf(op, errors.KindAllocation,
			"widget capacity %d exhausted", len(t.records))
	}

	idx := t.freeHead
	r := &t.records[idx]
	t.freeHead = r.nextSib

	gen := r.gen
	*r = record{
		gen:        gen,
		inUse:      true,
		behavior:   b,
		flags:      FlagVisible,
		x:          bounds.Left,
		y:          bounds.Top,
		w:          bounds.Width(),
		h:          bounds.Height(),
		parent:     none,
		firstChild: none,
		lastChild:  none,
		nextSib:    none,
		prevSib:    none,
	}

	if p == nil {
		r.flags |= FlagWindow
		t.linkRoot(idx)
	} else {
		r.parent = parent.idx
		t.linkChild(parent.idx, idx)
	}
	t.liveCount++
	return t.handleAt(idx), nil
}

// linkRoot appends a window to the end of the root list (topmost).
func (t *Tree) linkRoot(idx int32) {
	r := &t.records[idx]
	r.prevSib = t.rootLast
	if t.rootLast != none {
		t.records[t.rootLast].nextSib = idx
	} else {
		t.rootFirst = idx
	}
	t.rootLast = idx
}

// linkChild appends a child to the end of the parent's child list.
func (t *Tree) linkChild(parent, child int32) {
	p := &t.records[parent]
	c := &t.records[child]
	c.prevSib = p.lastChild
	if p.lastChild != none {
		t.records[p.lastChild].nextSib = child
	} else {
		p.firstChild = child
	}
	p.lastChild = child
}

// unlink detaches a widget from its sibling list without freeing it.
func (t *Tree) unlink(idx int32) {
	r := &t.records[idx]
	first, last := &t.rootFirst, &t.rootLast
	if r.parent != none {
		p := &t.records[r.parent]
		first, last = &p.firstChild, &p.lastChild
	}
	if r.prevSib != none {
		t.records[r.prevSib].nextSib = r.nextSib
	} else {
		*first = r.nextSib
	}
	if r.nextSib != none {
		t.records[r.nextSib].prevSib = r.prevSib
	} else {
		*last = r.prevSib
	}
	r.prevSib, r.nextSib = none, none
}

// BringToFront moves a widget to the end of its sibling list, making it
// the topmost among its siblings for both drawing and hit testing.
func (t *Tree) BringToFront(h Handle) error {
	r := t.get(h)
	if r == nil {
		return errors.New("widget.BringToFront", errors.KindStaleHandle)
	}
	parent := r.parent
	t.unlink(h.idx)
	if parent == none {
		t.linkRoot(h.idx)
	} else {
		t.linkChild(parent, h.idx)
	}
	return nil
}

// Parent returns the parent handle, or Nil for windows.
func (t *Tree) Parent(h Handle) Handle {
	if r := t.get(h); r != nil {
		return t.handleAt(r.parent)
	}
	return Nil
}

// FirstChild returns the bottom-most child of h.
func (t *Tree) FirstChild(h Handle) Handle {
	if r := t.get(h); r != nil {
		return t.handleAt(r.firstChild)
	}
	return Nil
}

// LastChild returns the topmost child of h.
func (t *Tree) LastChild(h Handle) Handle {
	if r := t.get(h); r != nil {
		return t.handleAt(r.lastChild)
	}
	return Nil
}

// NextSibling returns the sibling drawn above h.
func (t *Tree) NextSibling(h Handle) Handle {
	if r := t.get(h); r != nil {
		return t.handleAt(r.nextSib)
	}
	return Nil
}

// PrevSibling returns the sibling drawn below h.
func (t *Tree) PrevSibling(h Handle) Handle {
	if r := t.get(h); r != nil {
		return t.handleAt(r.prevSib)
	}
	return Nil
}

// FirstWindow returns the bottom-most top-level widget.
func (t *Tree) FirstWindow() Handle {
	return t.handleAt(t.rootFirst)
}

// LastWindow returns the topmost top-level widget.
func (t *Tree) LastWindow() Handle {
	return t.handleAt(t.rootLast)
}

// IsWindow reports whether h is a live top-level widget.
func (t *Tree) IsWindow(h Handle) bool {
	r := t.get(h)
	return r != nil && r.flags&FlagWindow != 0
}

// Behavior returns the behavior of h, or nil for stale handles.
func (t *Tree) Behavior(h Handle) Behavior {
	if r := t.get(h); r != nil {
		return r.behavior
	}
	return nil
}

// Bounds returns the widget's rectangle relative to its parent.
func (t *Tree) Bounds(h Handle) graphics.Rect {
	if r := t.get(h); r != nil {
		return graphics.RectFromLTWH(r.x, r.y, r.w, r.h)
	}
	return graphics.Rect{}
}

// AbsBounds returns the widget's absolute screen rectangle, accumulated
// through its ancestor chain.
func (t *Tree) AbsBounds(h Handle) graphics.Rect {
	r := t.get(h)
	if r == nil {
		return graphics.Rect{}
	}
	x, y := r.x, r.y
	for p := r.parent; p != none; p = t.records[p].parent {
		x += t.records[p].x
		y += t.records[p].y
	}
	return graphics.RectFromLTWH(x, y, r.w, r.h)
}

// SetBounds moves or resizes a widget relative to its parent.
func (t *Tree) SetBounds(h Handle, bounds graphics.Rect) error {
	const op = "widget.SetBounds"
	r := t.get(h)
	if r == nil {
		return errors.New(op, errors.KindStaleHandle)
	}
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return errors.Newf(op, errors.KindInvalidParameter,
			"degenerate geometry %dx%d", bounds.Width(), bounds.Height())
	}
	r.x, r.y = bounds.Left, bounds.Top
	r.w, r.h = bounds.Width(), bounds.Height()
	return nil
}

// HasFlag reports whether h is live and carries the given flag.
func (t *Tree) HasFlag(h Handle, f Flags) bool {
	r := t.get(h)
	return r != nil && r.flags&f != 0
}

// SetFlag sets or clears a status flag on h.
func (t *Tree) SetFlag(h Handle, f Flags, on bool) {
	r := t.get(h)
	if r == nil {
		return
	}
	if on {
		r.flags |= f
	} else {
		r.flags &^= f
	}
}

// Invalidate marks h dirty, optionally for just a widget-relative
// sub-rectangle (pass an empty rect for the full bounds), and returns
// the absolute damage rectangle. Repeated invalidations of the same
// region coalesce into one.
func (t *Tree) Invalidate(h Handle, region graphics.Rect) (graphics.Rect, error) {
	r := t.get(h)
	if r == nil {
		return graphics.Rect{}, errors.New("widget.Invalidate", errors.KindStaleHandle)
	}
	full := graphics.RectFromLTWH(0, 0, r.w, r.h)
	if region.IsEmpty() {
		region = full
	} else {
		region = region.Intersect(full)
		if region.IsEmpty() {
			return graphics.Rect{}, nil
		}
	}
	if r.flags&FlagInvalidated != 0 {
		r.damage = r.damage.Union(region)
	} else {
		r.flags |= FlagInvalidated
		r.damage = region
	}
	abs := t.AbsBounds(h)
	return region.Translate(abs.Left, abs.Top), nil
}

// ClearInvalidated clears the dirty mark after a redraw.
func (t *Tree) ClearInvalidated(h Handle) {
	if r := t.get(h); r != nil {
		r.flags &^= FlagInvalidated
		r.damage = graphics.Rect{}
	}
}

// RemoveRequest marks h and its whole subtree for deferred destruction.
// The records stay resolvable until the next Sweep, so callbacks running
// in the same pass never observe a freed widget.
func (t *Tree) RemoveRequest(h Handle) error {
	r := t.get(h)
	if r == nil {
		return errors.New("widget.RemoveRequest", errors.KindStaleHandle)
	}
	t.markRemoved(h.idx)
	return nil
}

func (t *Tree) markRemoved(idx int32) {
	t.records[idx].flags |= FlagRemoved
	for c := t.records[idx].firstChild; c != none; c = t.records[c].nextSib {
		t.markRemoved(c)
	}
}

// Sweep frees every record marked removed and returns the number freed.
// Must only be called from a safe point where no traversal holds
// references into the tree.
func (t *Tree) Sweep() int {
	// Detach subtree roots from their still-live sibling lists first;
	// interior links die wholesale with the subtree below.
	for i := range t.records {
		r := &t.records[i]
		if !r.inUse || r.flags&FlagRemoved == 0 {
			continue
		}
		if r.parent == none || t.records[r.parent].flags&FlagRemoved == 0 {
			t.unlink(int32(i))
		}
	}
	freed := 0
	for i := range t.records {
		r := &t.records[i]
		if !r.inUse || r.flags&FlagRemoved == 0 {
			continue
		}
		r.inUse = false
		r.behavior = nil
		r.flags = 0
		r.firstChild, r.lastChild, r.parent, r.prevSib = none, none, none, none
		r.gen++
		if r.gen == 0 {
			r.gen = 1
		}
		r.nextSib = t.freeHead
		t.freeHead = int32(i)
		t.liveCount--
		freed++
	}
	return freed
}

// Damage returns the widget-relative dirty region of h, empty when the
// widget is clean.
func (t *Tree) Damage(h Handle) graphics.Rect {
	if r := t.get(h); r != nil && r.flags&FlagInvalidated != 0 {
		return r.damage
	}
	return graphics.Rect{}
}
