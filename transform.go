package bough

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the item's affine matrix relative to its
// parent. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(it *Item) [6]float64 {
	if it.Rotation == 0 {
		return [6]float64{it.ScaleX, 0, 0, it.ScaleY, it.X, it.Y}
	}
	sin, cos := math.Sincos(it.Rotation)
	return [6]float64{
		cos * it.ScaleX,
		sin * it.ScaleX,
		-sin * it.ScaleY,
		cos * it.ScaleY,
		it.X,
		it.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix. The second result
// is false when the matrix is singular (a zero scale), in which case no point
// maps into the item.
func invertAffine(m [6]float64) ([6]float64, bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// SceneTransform returns the matrix mapping the item's local coordinates to
// scene (root) coordinates.
func (it *Item) SceneTransform() [6]float64 {
	if it.parent == nil {
		return computeLocalTransform(it)
	}
	return multiplyAffine(it.parent.SceneTransform(), computeLocalTransform(it))
}

// MapFromScene converts a scene-space point to this item's local space.
// The second result is false when the item's transform is singular.
func (it *Item) MapFromScene(p Vec2) (Vec2, bool) {
	inv, ok := invertAffine(it.SceneTransform())
	if !ok {
		return Vec2{}, false
	}
	return transformPoint(inv, p), true
}

// MapToScene converts a local-space point to scene space.
func (it *Item) MapToScene(p Vec2) Vec2 {
	return transformPoint(it.SceneTransform(), p)
}

// SceneBoundingRect returns the axis-aligned scene-space rectangle enclosing
// the item's bounds.
func (it *Item) SceneBoundingRect() Rect {
	m := it.SceneTransform()
	corners := [4]Vec2{
		transformPoint(m, Vec2{0, 0}),
		transformPoint(m, Vec2{it.Width, 0}),
		transformPoint(m, Vec2{0, it.Height}),
		transformPoint(m, Vec2{it.Width, it.Height}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
