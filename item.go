package bough

import "strconv"

// itemIDCounter is a plain counter (no atomic: the item tree is only touched
// from the delivery goroutine).
var itemIDCounter uint32

func nextItemID() uint32 {
	itemIDCounter++
	return itemIDCounter
}

// Item is one node of the scene tree. A single flat struct is used for every
// kind of item; behaviour is attached through capability flags and hook
// fields, and a nil hook means the item does not handle that event.
type Item struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Item
	children []*Item

	// Geometry, in the parent's coordinate space. Scale and rotation apply
	// about the item origin.
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64
	Rotation      float64

	// Opacity in [0, 1]. An item whose effective opacity is zero is skipped,
	// with its subtree, by hit testing.
	Opacity float64

	// Clip makes the item's bounds a hard boundary for hit testing its subtree.
	Clip bool

	// HitShape, when set, replaces the bounding rectangle for containment.
	HitShape HitShape

	z float64

	explicitVisible  bool
	effectiveVisible bool
	explicitEnabled  bool
	effectiveEnabled bool

	// Capabilities
	FiltersChildEvents bool
	AcceptedButtons    MouseButtons
	AcceptsHover       bool
	AcceptsTouch       bool
	AcceptsWheel       bool
	AcceptsDrops       bool

	// Metadata
	UserData any
	EntityID uint32

	// Focus state. subFocusItem is set on scopes (their focused item) and on
	// the non-scope items between a scope and that item.
	focusScope          bool
	focus               bool
	activeFocus         bool
	notifiedFocus       bool
	notifiedActiveFocus bool
	subFocusItem        *Item

	// agent is set on the root item of an agent only.
	agent *Agent

	// Hooks (nil by default; zero cost when unused)
	OnPress              func(*PointerEvent)
	OnMove               func(*PointerEvent)
	OnRelease            func(*PointerEvent)
	OnDoubleClick        func(*PointerEvent)
	OnCancel             func(*PointerEvent)
	OnUngrab             func(UngrabEvent)
	OnWheel              func(*WheelEvent)
	OnKeyPress           func(*KeyEvent)
	OnKeyRelease         func(*KeyEvent)
	OnHoverEnter         func(*HoverEvent)
	OnHoverMove          func(*HoverEvent)
	OnHoverLeave         func(*HoverEvent)
	OnFocusIn            func(FocusEvent)
	OnFocusOut           func(FocusEvent)
	OnFocusChanged       func(focused bool)
	OnActiveFocusChanged func(active bool)
	OnDragEnter          func(*DragEvent)
	OnDragMove           func(*DragEvent)
	OnDragLeave          func(*DragEvent)
	OnDrop               func(*DragEvent)

	// FilterChildEvent is offered events bound for descendants when
	// FiltersChildEvents is set. Returning true claims the event.
	FilterChildEvent func(target *Item, ev Event) bool

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Item // reused buffer for Z-sorted paint order
}

// NewItem creates a visible, enabled item with the given name and size.
func NewItem(name string, width, height float64) *Item {
	it := &Item{Name: name, Width: width, Height: height}
	itemDefaults(it)
	return it
}

func itemDefaults(it *Item) {
	it.ID = nextItemID()
	it.ScaleX = 1
	it.ScaleY = 1
	it.Opacity = 1
	it.explicitVisible = true
	it.effectiveVisible = true
	it.explicitEnabled = true
	it.effectiveEnabled = true
	it.childrenSorted = true
}

// Parent returns the item's parent, or nil for a root or detached item.
func (it *Item) Parent() *Item {
	return it.parent
}

// Children returns the child list in insertion order. The returned slice MUST
// NOT be mutated by the caller.
func (it *Item) Children() []*Item {
	return it.children
}

// NumChildren returns the number of children.
func (it *Item) NumChildren() int {
	return len(it.children)
}

// ChildAt returns the child at the given insertion index, or nil when the
// index is out of range.
func (it *Item) ChildAt(index int) *Item {
	if index < 0 || index >= len(it.children) {
		return nil
	}
	return it.children[index]
}

// Bounds returns the item's rectangle in its own coordinate space.
func (it *Item) Bounds() Rect {
	return Rect{Width: it.Width, Height: it.Height}
}

// SetPosition sets the item's position in its parent.
func (it *Item) SetPosition(x, y float64) {
	it.X, it.Y = x, y
}

// SetSize sets the item's width and height.
func (it *Item) SetSize(w, h float64) {
	it.Width, it.Height = w, h
}

// --- Z ordering ---

// Z returns the stacking value among siblings.
func (it *Item) Z() float64 {
	return it.z
}

// SetZ sets the stacking value among siblings and invalidates the parent's
// paint order. Equal values keep insertion order.
func (it *Item) SetZ(z float64) {
	if it.z == z {
		return
	}
	it.z = z
	if it.parent != nil {
		it.parent.childrenSorted = false
	}
}

// PaintOrderChildren returns the children in paint order (bottom first).
// The returned slice MUST NOT be mutated by the caller.
func (it *Item) PaintOrderChildren() []*Item {
	if !it.childrenSorted {
		it.rebuildSortedChildren()
	}
	if it.sortedChildren != nil {
		return it.sortedChildren
	}
	return it.children
}

// rebuildSortedChildren rebuilds the Z-sorted paint order. Stable insertion
// sort: ties keep insertion order and the common nearly-sorted case is O(n).
// When no child has a non-zero Z the insertion order is used directly.
func (it *Item) rebuildSortedChildren() {
	it.childrenSorted = true
	needSort := false
	for _, c := range it.children {
		if c.z != 0 {
			needSort = true
			break
		}
	}
	if !needSort {
		it.sortedChildren = nil
		return
	}
	nc := len(it.children)
	if cap(it.sortedChildren) < nc {
		it.sortedChildren = make([]*Item, nc)
	}
	it.sortedChildren = it.sortedChildren[:nc]
	copy(it.sortedChildren, it.children)
	for i := 1; i < nc; i++ {
		key := it.sortedChildren[i]
		j := i - 1
		for j >= 0 && it.sortedChildren[j].z > key.z {
			it.sortedChildren[j+1] = it.sortedChildren[j]
			j--
		}
		it.sortedChildren[j+1] = key
	}
}

// --- Visibility & enablement ---

// IsVisible reports the effective visibility: the item's own flag and every
// ancestor's.
func (it *Item) IsVisible() bool { return it.effectiveVisible }

// IsEnabled reports the effective enablement: the item's own flag and every
// ancestor's.
func (it *Item) IsEnabled() bool { return it.effectiveEnabled }

// ExplicitVisible returns the flag last passed to SetVisible.
func (it *Item) ExplicitVisible() bool { return it.explicitVisible }

// ExplicitEnabled returns the flag last passed to SetEnabled.
func (it *Item) ExplicitEnabled() bool { return it.explicitEnabled }

// SetVisible sets the item's own visibility and propagates the effective
// value to its subtree. Items that become hidden lose their grabs and hover.
func (it *Item) SetVisible(v bool) {
	if it.explicitVisible == v {
		return
	}
	it.explicitVisible = v
	it.refreshEffective()
}

// SetEnabled sets the item's own enablement and propagates the effective
// value to its subtree. Items that become disabled lose their grabs and
// hover, and active focus retreats out of the disabled subtree while the
// sub focus chain is kept for when it is re-enabled.
func (it *Item) SetEnabled(e bool) {
	if it.explicitEnabled == e {
		return
	}
	it.explicitEnabled = e
	it.refreshEffective()
}

// refreshEffective recomputes effective flags for the subtree rooted at it
// and lets the owning agent react to items that lost eligibility.
func (it *Item) refreshEffective() {
	pv, pe := true, true
	if it.parent != nil {
		pv, pe = it.parent.effectiveVisible, it.parent.effectiveEnabled
	}
	changed := propagateEffective(it, pv, pe)
	if !changed {
		return
	}
	a := it.Agent()
	if a == nil {
		return
	}
	a.dropPointerState(it, false)
	commitFocusChange(newFocusChange(), a)
}

// propagateEffective applies effective = explicit && parent top-down and
// reports whether any item changed.
func propagateEffective(it *Item, parentVisible, parentEnabled bool) bool {
	v := it.explicitVisible && parentVisible
	e := it.explicitEnabled && parentEnabled
	changed := v != it.effectiveVisible || e != it.effectiveEnabled
	it.effectiveVisible = v
	it.effectiveEnabled = e
	for _, c := range it.children {
		if propagateEffective(c, v, e) {
			changed = true
		}
	}
	return changed
}

// --- Focus properties ---

// IsFocusScope reports whether the item is a focus scope.
func (it *Item) IsFocusScope() bool { return it.focusScope }

// SetFocusScope marks the item as a focus scope. It must be decided before the
// item has children; changing it afterwards logs a warning and is ignored.
func (it *Item) SetFocusScope(scope bool) {
	if it.focusScope == scope {
		return
	}
	if len(it.children) > 0 {
		warnf("SetFocusScope on %s after children were added is ignored", it)
		return
	}
	it.focusScope = scope
}

// HasFocus reports whether the item is the focused item of its scope.
func (it *Item) HasFocus() bool { return it.focus }

// HasActiveFocus reports whether the item is on the active focus chain.
func (it *Item) HasActiveFocus() bool { return it.activeFocus }

// SetFocus gives the item focus within its nearest enclosing scope, or clears
// it. Active focus follows only if every enclosing scope is focused.
func (it *Item) SetFocus(focus bool) {
	tx := newFocusChange()
	scope := nearestScope(it.parent)
	if scope == nil {
		// Parentless: the flag is remembered and transferred on attach.
		if it.focus != focus {
			it.focus = focus
			tx.add(it)
		}
		commitFocusChange(tx, it.Agent())
		return
	}
	if focus {
		setFocusInScope(tx, scope, it)
	} else {
		clearFocusInScope(tx, scope, it)
	}
	commitFocusChange(tx, it.Agent())
}

// ForceActiveFocus focuses the item and every enclosing scope up to the root.
func (it *Item) ForceActiveFocus() {
	tx := newFocusChange()
	for cur := it; cur.parent != nil; {
		scope := nearestScope(cur.parent)
		setFocusInScope(tx, scope, cur)
		cur = scope
	}
	commitFocusChange(tx, it.Agent())
}

// ScopedFocusItem returns the focused item of this scope, or nil.
func (it *Item) ScopedFocusItem() *Item {
	if !it.focusScope {
		return nil
	}
	return it.subFocusItem
}

// --- Tree manipulation ---

// AddChild appends child to this item's children. If child already has a
// parent it is removed from that parent first. A nil child or a child that
// is an ancestor of this item (cycle) logs a warning and is ignored.
func (it *Item) AddChild(child *Item) {
	it.insertChild(child, -1)
}

// AddChildAt inserts child at the given insertion index. Same reparenting and
// cycle-check behavior as AddChild.
func (it *Item) AddChildAt(child *Item, index int) {
	it.insertChild(child, index)
}

// SetParent moves the item under parent, or detaches it when parent is nil.
func (it *Item) SetParent(parent *Item) {
	if parent == nil {
		it.RemoveFromParent()
		return
	}
	parent.AddChild(it)
}

func (it *Item) insertChild(child *Item, index int) {
	if child == nil {
		warnf("AddChild on %s with nil child is ignored", it)
		return
	}
	if checkDisposed(it, "AddChild (parent)") || checkDisposed(child, "AddChild (child)") {
		return
	}
	if isAncestor(child, it) {
		warnf("adding %s under %s would create a cycle", child, it)
		return
	}
	if index < 0 || index > len(it.children) {
		index = len(it.children)
	}
	if child.parent == it {
		// Restack only.
		it.removeChildByPtr(child)
		if index > len(it.children) {
			index = len(it.children)
		}
		it.spliceChild(child, index)
		return
	}

	a := it.Agent()
	tx := newFocusChange()
	var oldAgent *Agent
	var scopeFocused *Item
	if child.parent != nil {
		oldAgent = child.Agent()
		scopeFocused = child.parent.detachChild(child, a)
	} else {
		scopeFocused = child.scopeFocusedItem()
	}

	child.parent = it
	it.spliceChild(child, index)
	propagateEffective(child, it.effectiveVisible, it.effectiveEnabled)
	if scopeFocused != nil {
		transferFocusOnAttach(tx, child, scopeFocused)
	}
	if a != nil {
		a.dropPointerState(child, false)
	}
	if oldAgent != a {
		commitFocusChange(tx, oldAgent, a)
	} else {
		commitFocusChange(tx, a)
	}

	if debugMode {
		debugCheckTreeDepth(child)
		debugCheckChildCount(it)
	}
}

func (it *Item) spliceChild(child *Item, index int) {
	it.children = append(it.children, nil)
	copy(it.children[index+1:], it.children[index:])
	it.children[index] = child
	it.childrenSorted = false
}

// RemoveChild detaches child from this item. The child keeps its subtree and
// its scope-local focus, and can be re-added elsewhere. Removing an item that
// is not a child of this item logs a warning and is ignored.
func (it *Item) RemoveChild(child *Item) {
	if child == nil || child.parent != it {
		warnf("RemoveChild on %s: %s is not a child", it, child)
		return
	}
	a := it.Agent()
	it.detachChild(child, nil)
	commitFocusChange(newFocusChange(), a)
}

// RemoveFromParent detaches this item from its parent.
// No-op if this item has no parent.
func (it *Item) RemoveFromParent() {
	if it.parent == nil {
		return
	}
	it.parent.RemoveChild(it)
}

// detachChild unlinks child and moves the scope-local focus it carries out of
// the old scope. Unless the child is headed to another parent under the same
// agent (dest), the agent drops grabs and hover pointing into the subtree.
// Returns the item inside the subtree that holds scope-local focus, if any.
func (it *Item) detachChild(child *Item, dest *Agent) *Item {
	a := it.Agent()
	scopeFocused := child.scopeFocusedItem()
	if scopeFocused != nil {
		transferFocusOnDetach(it, child, scopeFocused)
	}
	it.removeChildByPtr(child)
	child.parent = nil
	propagateEffective(child, true, true)
	if a != nil && a != dest {
		a.dropPointerState(child, true)
	}
	return scopeFocused
}

// StackBefore moves the item directly before sibling in insertion order,
// which places it below sibling when their Z values are equal.
func (it *Item) StackBefore(sibling *Item) {
	if it.parent == nil || sibling == nil || sibling.parent != it.parent || sibling == it {
		warnf("StackBefore on %s: %s is not a sibling", it, sibling)
		return
	}
	p := it.parent
	p.removeChildByPtr(it)
	p.spliceChild(it, p.indexOf(sibling))
}

// StackAfter moves the item directly after sibling in insertion order,
// which places it above sibling when their Z values are equal.
func (it *Item) StackAfter(sibling *Item) {
	if it.parent == nil || sibling == nil || sibling.parent != it.parent || sibling == it {
		warnf("StackAfter on %s: %s is not a sibling", it, sibling)
		return
	}
	p := it.parent
	p.removeChildByPtr(it)
	p.spliceChild(it, p.indexOf(sibling)+1)
}

func (it *Item) indexOf(child *Item) int {
	for i, c := range it.children {
		if c == child {
			return i
		}
	}
	return -1
}

// --- Disposal ---

// Dispose removes this item from its parent, marks it as disposed and
// recursively disposes all descendants. References held by grab, hover and
// focus state are released as part of the removal.
func (it *Item) Dispose() {
	if it.disposed {
		return
	}
	if it.agent != nil {
		it.agent.Close()
	}
	it.RemoveFromParent()
	it.dispose()
}

func (it *Item) dispose() {
	it.disposed = true
	it.ID = 0
	for _, child := range it.children {
		child.parent = nil
		child.dispose()
	}
	it.children = nil
	it.sortedChildren = nil
	it.parent = nil
	it.subFocusItem = nil
	it.HitShape = nil
	it.UserData = nil
	it.OnPress = nil
	it.OnMove = nil
	it.OnRelease = nil
	it.OnDoubleClick = nil
	it.OnCancel = nil
	it.OnUngrab = nil
	it.OnWheel = nil
	it.OnKeyPress = nil
	it.OnKeyRelease = nil
	it.OnHoverEnter = nil
	it.OnHoverMove = nil
	it.OnHoverLeave = nil
	it.OnFocusIn = nil
	it.OnFocusOut = nil
	it.OnFocusChanged = nil
	it.OnActiveFocusChanged = nil
	it.OnDragEnter = nil
	it.OnDragMove = nil
	it.OnDragLeave = nil
	it.OnDrop = nil
	it.FilterChildEvent = nil
}

// IsDisposed returns true if this item has been disposed.
func (it *Item) IsDisposed() bool {
	return it.disposed
}

// Agent returns the delivery agent whose root this item is under, or nil for
// a tree that is not attached to an agent.
func (it *Item) Agent() *Agent {
	return it.Root().agent
}

// Root returns the topmost ancestor of the item (the item itself if it has
// no parent).
func (it *Item) Root() *Item {
	r := it
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of ancestors of the item.
func (it *Item) Depth() int {
	d := 0
	for p := it.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// IsAncestorOf reports whether it is a strict ancestor of other.
func (it *Item) IsAncestorOf(other *Item) bool {
	if other == nil {
		return false
	}
	return isAncestor(it, other.parent)
}

func (it *Item) String() string {
	if it == nil {
		return "<nil>"
	}
	if it.Name != "" {
		return it.Name
	}
	return "item#" + strconv.Itoa(int(it.ID))
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Item) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from it.children without clearing
// child.parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (it *Item) removeChildByPtr(child *Item) {
	for i, c := range it.children {
		if c == child {
			copy(it.children[i:], it.children[i+1:])
			it.children[len(it.children)-1] = nil
			it.children = it.children[:len(it.children)-1]
			it.childrenSorted = false
			return
		}
	}
}

// walk calls fn for it and every descendant, parents before children.
func walk(it *Item, fn func(*Item)) {
	fn(it)
	for _, c := range it.children {
		walk(c, fn)
	}
}
