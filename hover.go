package bough

// HoverEvent is passed to OnHoverEnter, OnHoverMove and OnHoverLeave.
type HoverEvent struct {
	Item          *Item
	Scene         Vec2
	Local         Vec2
	PreviousLocal Vec2
	Modifiers     KeyModifiers
}

// HoverTracker keeps the chain of items under a hovering pointer, innermost
// first, and turns pointer motion into enter/leave/move notifications.
type HoverTracker struct {
	root     *Item
	chain    []*Item
	maxDepth int

	// Modifiers is copied into every HoverEvent.
	Modifiers KeyModifiers

	// emit is told about every hook that ran; set by the owning agent.
	emit func(t EventType, it *Item, scene, local Vec2)
}

// NewHoverTracker creates a tracker for the tree under root.
func NewHoverTracker(root *Item) *HoverTracker {
	return &HoverTracker{root: root, maxDepth: defaultMaxHitDepth}
}

// Chain returns the current hover chain, innermost first.
func (h *HoverTracker) Chain() []*Item {
	out := make([]*Item, len(h.chain))
	copy(out, h.chain)
	return out
}

// Contains reports whether it is in the hover chain.
func (h *HoverTracker) Contains(it *Item) bool {
	return containsItem(h.chain, it)
}

// Update recomputes the chain for scenePoint. Items that left the chain get
// a leave notification innermost first, then items that joined get an enter
// notification outermost first. The innermost item, when it was already
// hovered and the point moved, gets a move notification. Calling Update
// twice with the same point produces no enter or leave the second time.
func (h *HoverTracker) Update(scenePoint, previousScenePoint Vec2) {
	next := h.chainAt(scenePoint)
	prev := h.chain
	h.chain = next

	for _, it := range prev {
		if !containsItem(next, it) {
			h.deliver(EventHoverLeave, it, scenePoint, previousScenePoint)
		}
	}
	for i := len(next) - 1; i >= 0; i-- {
		if it := next[i]; !containsItem(prev, it) {
			h.deliver(EventHoverEnter, it, scenePoint, previousScenePoint)
		}
	}
	if len(next) > 0 && containsItem(prev, next[0]) && scenePoint != previousScenePoint {
		h.deliver(EventHoverMove, next[0], scenePoint, previousScenePoint)
	}
}

// Clear empties the chain, sending leave to every member innermost first.
// Used when the pointer leaves the surface.
func (h *HoverTracker) Clear(scenePoint Vec2) {
	prev := h.chain
	h.chain = nil
	for _, it := range prev {
		h.deliver(EventHoverLeave, it, scenePoint, scenePoint)
	}
}

// Prune silently removes items in the subtree rooted at sub. Used when the
// subtree leaves the tree, so its items receive nothing further.
func (h *HoverTracker) Prune(sub *Item) {
	kept := h.chain[:0]
	for _, it := range h.chain {
		if !isAncestor(sub, it) {
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(h.chain); i++ {
		h.chain[i] = nil
	}
	h.chain = kept
}

// reset empties the chain without notification; used when the device is
// cancelled.
func (h *HoverTracker) reset() {
	h.chain = nil
}

// dropIneligible removes members that can no longer be hovered (hidden,
// disabled or no longer accepting hover), sending them leave.
func (h *HoverTracker) dropIneligible(scenePoint Vec2) {
	var left []*Item
	kept := make([]*Item, 0, len(h.chain))
	for _, it := range h.chain {
		if it.effectiveVisible && it.effectiveEnabled && it.AcceptsHover {
			kept = append(kept, it)
		} else {
			left = append(left, it)
		}
	}
	h.chain = kept
	for _, it := range left {
		h.deliver(EventHoverLeave, it, scenePoint, scenePoint)
	}
}

// chainAt returns the innermost hover-accepting item under p and its
// contiguous run of hover-accepting ancestors, stopping at a clipping
// ancestor whose bounds exclude p.
func (h *HoverTracker) chainAt(p Vec2) []*Item {
	hits := hitTest(h.root, p, hitCriteria{class: ClassHover}, h.maxDepth, false)
	if len(hits) == 0 {
		return nil
	}
	var chain []*Item
	for it := hits[0]; it != nil && it.AcceptsHover; it = it.parent {
		if it.Clip && len(chain) > 0 {
			if local, ok := it.MapFromScene(p); !ok || !it.Bounds().Contains(local.X, local.Y) {
				break
			}
		}
		chain = append(chain, it)
		if it == h.root {
			break
		}
	}
	return chain
}

func (h *HoverTracker) deliver(t EventType, it *Item, scene, prevScene Vec2) {
	if it.disposed {
		return
	}
	var hook func(*HoverEvent)
	switch t {
	case EventHoverEnter:
		hook = it.OnHoverEnter
	case EventHoverMove:
		hook = it.OnHoverMove
	case EventHoverLeave:
		hook = it.OnHoverLeave
	}
	local, _ := it.MapFromScene(scene)
	prevLocal, _ := it.MapFromScene(prevScene)
	if hook != nil {
		hook(&HoverEvent{
			Item:          it,
			Scene:         scene,
			Local:         local,
			PreviousLocal: prevLocal,
			Modifiers:     h.Modifiers,
		})
	}
	if h.emit != nil {
		h.emit(t, it, scene, local)
	}
}
