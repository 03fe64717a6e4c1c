package inspect

import (
	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// Window is the minimal surface the core needs from a host-provided
// topmost window (the highlight rectangle).
type Window interface {
	SetBounds(r bridge.Rect)
}

// TooltipWindow additionally carries text and reports its rendered size
// so the core can place it relative to the cursor.
type TooltipWindow interface {
	Window
	SetText(s string)
	Size() (width, height int)
}

// HiddenRect is the bounds of a hidden window: off-screen and zero-area.
// Some widget toolkits re-show a window when it is resized, so hiding is
// a move+shrink, never a visibility flag; any window at HiddenRect is
// both invisible and zero-area.
func HiddenRect() bridge.Rect {
	return bridge.Rect{X: -10, Y: -10, Width: 0, Height: 0}
}

// ClampRect clamps r to non-negative screen coordinates: an origin left
// of or above the screen is shifted to 0 and the overhang is removed from
// the size, never below zero.
func ClampRect(r bridge.Rect) bridge.Rect {
	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// clampPoint clamps a point to non-negative coordinates.
func clampPoint(p bridge.Point) bridge.Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// nopWindow is used when the host shell provides no overlay surface.
type nopWindow struct{}

func (nopWindow) SetBounds(bridge.Rect) {}
func (nopWindow) SetText(string)        {}
func (nopWindow) Size() (int, int)      { return 0, 0 }

// overlayController owns the optional overlay rectangle and the tooltip.
// Executor-affine, like everything else that mutates shared state.
type overlayController struct {
	overlay Window
	tooltip TooltipWindow
	enabled bool
	rect    *bridge.Rect // current target; nil when no node is selected
}

func newOverlayController(overlay Window, tooltip TooltipWindow) *overlayController {
	if overlay == nil {
		overlay = nopWindow{}
	}
	if tooltip == nil {
		tooltip = nopWindow{}
	}
	o := &overlayController{overlay: overlay, tooltip: tooltip, enabled: true}
	o.Hide()
	o.HideTooltip()
	return o
}

// SetEnabled administratively enables or disables the overlay. While
// disabled the overlay is forced hidden regardless of the known
// rectangle; re-enabling restores it.
func (o *overlayController) SetEnabled(enabled bool) {
	o.enabled = enabled
	o.apply()
}

// Show records the target rectangle and displays it if enabled.
func (o *overlayController) Show(r bridge.Rect) {
	rect := r
	o.rect = &rect
	o.apply()
}

// Clear forgets the target rectangle and hides the overlay.
func (o *overlayController) Clear() {
	o.rect = nil
	o.Hide()
}

// Hide moves the overlay off-screen with zero size. The recorded target
// rectangle is kept so a later Show/apply can restore it. Idempotent.
func (o *overlayController) Hide() {
	o.overlay.SetBounds(HiddenRect())
}

// apply repositions the overlay from current state.
func (o *overlayController) apply() {
	if !o.enabled || o.rect == nil {
		o.Hide()
		return
	}
	o.overlay.SetBounds(ClampRect(*o.rect))
}

// ShowTooltip renders props as "name: value" lines and places the window
// above-left of the cursor, clamped to non-negative coordinates.
func (o *overlayController) ShowTooltip(cursor bridge.Point, props bridge.PropertyList) {
	o.tooltip.SetText(props.Text())
	w, h := o.tooltip.Size()
	pos := clampPoint(bridge.Point{X: cursor.X - w, Y: cursor.Y - h})
	o.tooltip.SetBounds(bridge.Rect{X: pos.X, Y: pos.Y, Width: w, Height: h})
}

// HideTooltip hides the tooltip window the same way Hide hides the
// overlay. Idempotent.
func (o *overlayController) HideTooltip() {
	o.tooltip.SetBounds(HiddenRect())
}
