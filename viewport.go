package bough

import "math"

// Viewport maps surface coordinates (what an input source reports) to scene
// coordinates. The zero value is not usable; NewViewport returns the identity
// mapping.
type Viewport struct {
	// X and Y are the scene-space point shown at the surface origin.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the view rotation in radians (clockwise).
	Rotation float64
	// Surface is the surface-space rectangle the scene is shown in. Only its
	// origin takes part in the mapping.
	Surface Rect
}

// NewViewport returns a viewport that maps surface coordinates one to one.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// viewMatrix maps scene to surface:
//
//	Translate(Surface.X, Surface.Y) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
func (v Viewport) viewMatrix() [6]float64 {
	z := v.Zoom
	if z == 0 {
		z = 1
	}
	sin, cos := math.Sincos(-v.Rotation)
	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := v.Surface.X + z*(-cos*v.X+sin*v.Y)
	ty := v.Surface.Y + z*(-sin*v.X-cos*v.Y)
	return [6]float64{a, cc, b, d, tx, ty}
}

// SceneToSurface converts scene coordinates to surface coordinates.
func (v Viewport) SceneToSurface(p Vec2) Vec2 {
	return transformPoint(v.viewMatrix(), p)
}

// SurfaceToScene converts surface coordinates to scene coordinates.
func (v Viewport) SurfaceToScene(p Vec2) Vec2 {
	inv, ok := invertAffine(v.viewMatrix())
	if !ok {
		return p
	}
	return transformPoint(inv, p)
}

// VisibleBounds returns the axis-aligned scene-space rectangle covered by the
// surface rectangle.
func (v Viewport) VisibleBounds() Rect {
	inv, ok := invertAffine(v.viewMatrix())
	if !ok {
		return v.Surface
	}
	s := v.Surface
	corners := [4]Vec2{
		transformPoint(inv, Vec2{s.X, s.Y}),
		transformPoint(inv, Vec2{s.X + s.Width, s.Y}),
		transformPoint(inv, Vec2{s.X + s.Width, s.Y + s.Height}),
		transformPoint(inv, Vec2{s.X, s.Y + s.Height}),
	}
	minX := math.Min(math.Min(corners[0].X, corners[1].X), math.Min(corners[2].X, corners[3].X))
	minY := math.Min(math.Min(corners[0].Y, corners[1].Y), math.Min(corners[2].Y, corners[3].Y))
	maxX := math.Max(math.Max(corners[0].X, corners[1].X), math.Max(corners[2].X, corners[3].X))
	maxY := math.Max(math.Max(corners[0].Y, corners[1].Y), math.Max(corners[2].Y, corners[3].Y))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
