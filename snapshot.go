package bough

// ItemSnapshot is the frozen render state of one item.
type ItemSnapshot struct {
	ID        uint32
	Name      string
	Depth     int
	SceneRect Rect
	Transform [6]float64
	Width     float64
	Height    float64
	Opacity   float64 // multiplied down the tree
	Clip      bool
	Z         float64

	Hovered     bool
	Grabbed     bool
	ActiveFocus bool
}

// Snapshot is an immutable copy of the visible tree in paint order, safe to
// read from any goroutine.
type Snapshot struct {
	Version uint64
	Items   []ItemSnapshot
}

// PublishSnapshot freezes the visible tree and makes it the current
// snapshot. Must be called from the delivery goroutine.
func (a *Agent) PublishSnapshot() *Snapshot {
	a.version++
	s := &Snapshot{Version: a.version}
	grabbed := make(map[*Item]bool, a.grabs.Len())
	for _, key := range a.grabs.keys {
		grabbed[a.grabs.owners[key]] = true
	}
	var visit func(it *Item, parentM [6]float64, alpha float64, depth int)
	visit = func(it *Item, parentM [6]float64, alpha float64, depth int) {
		if !it.effectiveVisible || depth > a.settings.MaxTreeDepth {
			return
		}
		m := multiplyAffine(parentM, computeLocalTransform(it))
		alpha *= it.Opacity
		s.Items = append(s.Items, ItemSnapshot{
			ID:          it.ID,
			Name:        it.Name,
			Depth:       depth,
			SceneRect:   it.SceneBoundingRect(),
			Transform:   m,
			Width:       it.Width,
			Height:      it.Height,
			Opacity:     alpha,
			Clip:        it.Clip,
			Z:           it.z,
			Hovered:     a.hover.Contains(it),
			Grabbed:     grabbed[it],
			ActiveFocus: it.activeFocus,
		})
		for _, c := range it.PaintOrderChildren() {
			visit(c, m, alpha, depth+1)
		}
	}
	visit(a.root, identityTransform, 1, 0)
	a.snapshot.Store(s)
	return s
}

// Snapshot returns the last published snapshot, or nil. Safe to call from
// any goroutine.
func (a *Agent) Snapshot() *Snapshot {
	return a.snapshot.Load()
}

// Find returns the first item snapshot with the given name.
func (s *Snapshot) Find(name string) (ItemSnapshot, bool) {
	for _, it := range s.Items {
		if it.Name == name {
			return it, true
		}
	}
	return ItemSnapshot{}, false
}
