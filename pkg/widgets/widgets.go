// Package widgets provides basic widget behaviors built on the core
// Behavior capability interface: a plain panel, a label placeholder and
// a pressable button.
package widgets

import (
	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/input"
	"github.com/go-ember/ember/pkg/theme"
	"github.com/go-ember/ember/pkg/widget"
)

// Panel fills its bounds with a solid color. Windows typically use a
// Panel behavior with the theme background color.
type Panel struct {
	Color graphics.Color
}

func (p *Panel) TypeName() string { return "panel" }

func (p *Panel) Draw(ctx *widget.DrawContext) {
	ctx.Canvas.FillRect(ctx.Bounds, p.Color)
}

func (p *Panel) HandleEvent(input.Event) bool { return false }

// Label draws a surface-colored box standing in for text. Text shaping
// belongs to per-widget drawing logic outside the runtime core.
type Label struct {
	Theme theme.Theme
}

func (l *Label) TypeName() string { return "label" }

func (l *Label) Draw(ctx *widget.DrawContext) {
	ctx.Canvas.FillRect(ctx.Bounds, l.Theme.Surface)
	ctx.Canvas.StrokeRect(ctx.Bounds, l.Theme.Border)
}

func (l *Label) HandleEvent(input.Event) bool { return false }

// Button is a focusable, pressable behavior. It tracks pressed state
// through press/release events and invokes OnTap when a gesture releases
// inside its bounds.
type Button struct {
	Theme theme.Theme
	// OnTap is invoked on release. May be nil.
	OnTap func()

	pressed bool
	bounds  graphics.Rect
}

func (b *Button) TypeName() string { return "button" }

// AcceptsFocus declares the keyboard focus capability.
func (b *Button) AcceptsFocus() bool { return true }

func (b *Button) Draw(ctx *widget.DrawContext) {
	fill := b.Theme.Surface
	if ctx.Active || b.pressed {
		fill = b.Theme.Accent
	}
	ctx.Canvas.FillRect(ctx.Bounds, fill)
	border := b.Theme.Border
	if ctx.Focused {
		border = b.Theme.Accent
	}
	ctx.Canvas.StrokeRect(ctx.Bounds, border)
	b.bounds = ctx.Bounds
}

func (b *Button) HandleEvent(ev input.Event) bool {
	switch ev.Kind {
	case input.EventPress:
		b.pressed = true
		return true
	case input.EventRelease:
		wasPressed := b.pressed
		b.pressed = false
		// Before the first draw no bounds are known; treat the release
		// as inside.
		if wasPressed && b.OnTap != nil && (b.bounds.IsEmpty() || b.bounds.Contains(ev.Position)) {
			b.OnTap()
		}
		return true
	case input.EventKey:
		if ev.Key == '\n' || ev.Key == ' ' {
			if b.OnTap != nil {
				b.OnTap()
			}
			return true
		}
	}
	return false
}

// Pressed reports whether the button is currently held down.
func (b *Button) Pressed() bool { return b.pressed }
