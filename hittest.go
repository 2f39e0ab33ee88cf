package bough

// HitShape is used for custom hit testing regions, in the item's local space.
type HitShape interface {
	Contains(x, y float64) bool
}

// --- Built-in HitShape types ---
//
// Assign one to Item.HitShape to replace the bounding rectangle in hit
// tests and hover; Item.Contains consults it.

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Contains reports whether the local point falls inside the item's hit
// region: HitShape if set, otherwise the bounding rectangle.
func (it *Item) Contains(local Vec2) bool {
	if it.HitShape != nil {
		return it.HitShape.Contains(local.X, local.Y)
	}
	return it.Bounds().Contains(local.X, local.Y)
}

// --- Hit testing ---

// defaultMaxHitDepth bounds hit-test recursion for callers without settings.
const defaultMaxHitDepth = 256

// hitCriteria selects eligible items. button narrows ClassMouse to one
// button; zero means any accepted button.
type hitCriteria struct {
	class  EventClass
	button MouseButton
}

func (c hitCriteria) eligible(it *Item) bool {
	switch c.class {
	case ClassAny:
		return true
	case ClassMouse:
		if c.button == MouseButtonNone {
			return it.AcceptedButtons != 0
		}
		return it.AcceptedButtons&c.button != 0
	case ClassTouch:
		return it.AcceptsTouch || it.AcceptedButtons&MouseButtonLeft != 0
	case ClassWheel:
		return it.AcceptsWheel
	case ClassHover:
		return it.AcceptsHover
	case ClassDrop:
		return it.AcceptsDrops
	}
	return false
}

type hitWalker struct {
	crit     hitCriteria
	point    Vec2
	maxDepth int
	firstHit bool
	out      []*Item
	overflow bool
}

// visit walks it's subtree; returns true when the walk must stop.
func (w *hitWalker) visit(it *Item, parentM [6]float64, depth int) bool {
	if depth > w.maxDepth {
		w.overflow = true
		return true
	}
	if it.Opacity <= 0 || !it.effectiveVisible {
		return false
	}
	if !it.effectiveEnabled && w.crit.class != ClassAny {
		return false
	}
	m := multiplyAffine(parentM, computeLocalTransform(it))
	inv, invertible := invertAffine(m)
	var local Vec2
	if invertible {
		local = transformPoint(inv, w.point)
	}
	if it.Clip && (!invertible || !it.Bounds().Contains(local.X, local.Y)) {
		return false
	}

	children := it.PaintOrderChildren()
	for i := len(children) - 1; i >= 0; i-- {
		if w.visit(children[i], m, depth+1) {
			return true
		}
	}

	if invertible && w.crit.eligible(it) && it.Contains(local) {
		w.out = append(w.out, it)
		if w.firstHit {
			return true
		}
	}
	return false
}

func hitTest(root *Item, p Vec2, crit hitCriteria, maxDepth int, all bool) []*Item {
	if root == nil || root.disposed {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxHitDepth
	}
	parentM := identityTransform
	if root.parent != nil {
		parentM = root.parent.SceneTransform()
	}
	w := &hitWalker{crit: crit, point: p, maxDepth: maxDepth, firstHit: !all}
	w.visit(root, parentM, 0)
	if w.overflow {
		warnf("hit test below %s exceeded depth %d, aborted", root, maxDepth)
		return nil
	}
	return w.out
}

// HitTest returns the topmost eligible item under the scene point p, or nil.
// Children are tested in reverse paint order before their parent; invisible,
// disabled and fully transparent subtrees are skipped, and a clipping item
// excludes its whole subtree when p is outside its bounds.
func HitTest(root *Item, p Vec2, class EventClass) *Item {
	out := hitTest(root, p, hitCriteria{class: class}, defaultMaxHitDepth, false)
	if len(out) == 0 {
		return nil
	}
	return out[0]
}

// HitTestAll returns every eligible item under p, topmost first. This is the
// order in which a press is offered to successively lower items.
func HitTestAll(root *Item, p Vec2, class EventClass) []*Item {
	return hitTest(root, p, hitCriteria{class: class}, defaultMaxHitDepth, true)
}
