// Package viewport converts between screen pixels and logical canvas
// coordinates for a given pan offset and zoom factor.
//
// All functions are pure. Callers own the Viewport value and store the
// result of each operation themselves.
package viewport

import "github.com/aretw0/flowdesk/pkg/domain"

// Viewport is the transient pan/zoom state of an editor session.
type Viewport struct {
	Offset domain.Position `json:"offset" yaml:"offset"`
	Zoom   float64         `json:"zoom" yaml:"zoom"`
}

// Limits bounds the zoom factor and sets the zoom step.
type Limits struct {
	MinZoom float64 `json:"min" yaml:"min" toml:"min"`
	MaxZoom float64 `json:"max" yaml:"max" toml:"max"`
	Step    float64 `json:"step" yaml:"step" toml:"step"`
}

// DefaultLimits clamps zoom to [0.3, 3.0] and zooms in steps of 1.2.
var DefaultLimits = Limits{MinZoom: 0.3, MaxZoom: 3.0, Step: 1.2}

// Default returns the identity viewport.
func Default() Viewport {
	return Viewport{Zoom: 1}
}

// ToScreen maps a logical point to screen pixels: p*zoom + offset.
func ToScreen(p domain.Position, v Viewport) domain.Position {
	return p.Scale(v.Zoom).Add(v.Offset)
}

// ToLogical is the inverse of ToScreen: (s - offset) / zoom.
func ToLogical(s domain.Position, v Viewport) domain.Position {
	return s.Sub(v.Offset).Scale(1 / v.Zoom)
}

// Clamp bounds z to [MinZoom, MaxZoom].
func (l Limits) Clamp(z float64) float64 {
	if z < l.MinZoom {
		return l.MinZoom
	}
	if z > l.MaxZoom {
		return l.MaxZoom
	}
	return z
}

// ZoomIn multiplies the zoom by the step.
func (l Limits) ZoomIn(v Viewport) Viewport {
	v.Zoom = l.Clamp(v.Zoom * l.Step)
	return v
}

// ZoomOut divides the zoom by the step.
func (l Limits) ZoomOut(v Viewport) Viewport {
	v.Zoom = l.Clamp(v.Zoom / l.Step)
	return v
}

// ZoomAt scales the zoom by factor while keeping the logical point under
// the screen anchor in place (mouse-wheel zoom).
func (l Limits) ZoomAt(v Viewport, factor float64, anchor domain.Position) Viewport {
	logical := ToLogical(anchor, v)
	zoom := l.Clamp(v.Zoom * factor)
	return Viewport{
		Offset: anchor.Sub(logical.Scale(zoom)),
		Zoom:   zoom,
	}
}

// Valid reports whether the limits can be used to clamp a zoom factor.
func (l Limits) Valid() bool {
	return l.MinZoom > 0 && l.MaxZoom >= l.MinZoom && l.Step > 1
}

// ZoomIn applies DefaultLimits.ZoomIn.
func ZoomIn(v Viewport) Viewport { return DefaultLimits.ZoomIn(v) }

// ZoomOut applies DefaultLimits.ZoomOut.
func ZoomOut(v Viewport) Viewport { return DefaultLimits.ZoomOut(v) }

// FitView resets the offset to the origin and the zoom to 1.
func FitView(Viewport) Viewport { return Default() }

// Pan translates the viewport by a screen-space delta.
func Pan(v Viewport, delta domain.Position) Viewport {
	v.Offset = v.Offset.Add(delta)
	return v
}
