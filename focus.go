package bough

import "sort"

// FocusReason describes why focus moved, reported with FocusIn/FocusOut.
type FocusReason uint8

const (
	FocusOther      FocusReason = iota // programmatic change
	FocusTree                          // tree mutation or enablement change
	FocusSurface                       // the surface was activated or deactivated
)

// FocusEvent is passed to OnFocusIn and OnFocusOut.
type FocusEvent struct {
	Item   *Item
	Reason FocusReason
}

// FocusManager owns the active focus chain of one agent. Scope-local focus
// (which item a scope would give focus to) lives on the items themselves;
// the manager derives the single active focus item from it.
type FocusManager struct {
	agent  *Agent
	root   *Item
	active bool // surface has keyboard focus

	activeFocusItem *Item
	activeChain     []*Item // items whose activeFocus flag is set
	lastFocusIn     *Item   // item that last received OnFocusIn
	pendingReason   FocusReason
	notifying       bool
}

func newFocusManager(a *Agent, root *Item) *FocusManager {
	root.focusScope = true
	root.focus = true
	root.notifiedFocus = true
	return &FocusManager{agent: a, root: root, active: true}
}

// ActiveFocusItem returns the single item that currently receives key events,
// or nil when the surface is inactive.
func (m *FocusManager) ActiveFocusItem() *Item {
	return m.activeFocusItem
}

// ScopedFocusItem returns the item that holds focus within scope, or nil.
func (m *FocusManager) ScopedFocusItem(scope *Item) *Item {
	return scope.ScopedFocusItem()
}

// SetFocus gives item focus within scope. scope must be the nearest focus
// scope enclosing item; anything else logs a warning and is ignored.
func (m *FocusManager) SetFocus(item, scope *Item) {
	if !m.validScope(item, scope, "SetFocus") {
		return
	}
	tx := newFocusChange()
	m.pendingReason = FocusOther
	setFocusInScope(tx, scope, item)
	commitFocusChange(tx, m.agent)
}

// ClearFocus removes focus from item within scope. If item held active focus,
// active focus retreats to scope. Clearing an unfocused item is a no-op.
func (m *FocusManager) ClearFocus(item, scope *Item) {
	if !m.validScope(item, scope, "ClearFocus") {
		return
	}
	tx := newFocusChange()
	m.pendingReason = FocusOther
	clearFocusInScope(tx, scope, item)
	commitFocusChange(tx, m.agent)
}

// ForceActiveFocus focuses item and every enclosing scope up to the root.
func (m *FocusManager) ForceActiveFocus(item *Item) {
	if item == nil || item.Agent() != m.agent {
		warnf("ForceActiveFocus on %s outside this agent is ignored", item)
		return
	}
	m.pendingReason = FocusOther
	item.ForceActiveFocus()
}

// SetSurfaceActive records whether the surface has keyboard focus. An
// inactive surface has no active focus item; scope-local focus is kept so the
// same chain is restored on reactivation.
func (m *FocusManager) SetSurfaceActive(active bool) {
	if m.active == active {
		return
	}
	m.active = active
	m.pendingReason = FocusSurface
	commitFocusChange(newFocusChange(), m.agent)
}

// SurfaceActive reports whether the surface has keyboard focus.
func (m *FocusManager) SurfaceActive() bool {
	return m.active
}

func (m *FocusManager) validScope(item, scope *Item, op string) bool {
	if item == nil || scope == nil {
		warnf("%s with nil item or scope is ignored", op)
		return false
	}
	if item.Agent() != m.agent {
		warnf("%s on %s outside this agent is ignored", op, item)
		return false
	}
	if nearestScope(item.parent) != scope {
		warnf("%s: %s is not the nearest focus scope of %s", op, scope, item)
		return false
	}
	return true
}

// recompute derives the active focus chain from scope-local focus: starting
// at the root, descend into each scope's focused item while it is enabled.
// Changed items are added to tx.
func (m *FocusManager) recompute(tx *focusChange) {
	var leaf *Item
	if m.active && !m.root.disposed {
		leaf = m.root
		for leaf.focusScope {
			next := leaf.subFocusItem
			if next == nil || !next.effectiveEnabled || !leaf.IsAncestorOf(next) {
				break
			}
			leaf = next
		}
	}

	var chain []*Item
	if leaf != nil {
		chain = append(chain, leaf)
		for p := leaf.parent; p != nil; p = p.parent {
			if p.focusScope {
				chain = append(chain, p)
			}
		}
	}

	inNew := make(map[*Item]struct{}, len(chain))
	for _, c := range chain {
		inNew[c] = struct{}{}
	}
	for _, old := range m.activeChain {
		if _, ok := inNew[old]; !ok && old.activeFocus {
			old.activeFocus = false
			tx.add(old)
		}
	}
	for _, c := range chain {
		if !c.activeFocus {
			c.activeFocus = true
			tx.add(c)
		}
	}
	m.activeChain = chain
	m.activeFocusItem = leaf
}

// notifyActiveItem fires FocusOut/FocusIn when the active focus item differs
// from the one last told about, then the accessibility callback. Hooks may
// move focus again; the loop settles on the final item.
func (m *FocusManager) notifyActiveItem() {
	if m.notifying {
		return
	}
	m.notifying = true
	defer func() { m.notifying = false }()

	for rounds := 0; m.activeFocusItem != m.lastFocusIn; rounds++ {
		if rounds >= m.agent.settings.MaxDeliveryDepth {
			warnf("focus moved %d times while notifying, giving up", rounds)
			return
		}
		prev, cur := m.lastFocusIn, m.activeFocusItem
		reason := m.pendingReason
		m.pendingReason = FocusTree
		m.lastFocusIn = cur

		if prev != nil && !prev.disposed && prev.OnFocusOut != nil {
			prev.OnFocusOut(FocusEvent{Item: prev, Reason: reason})
			m.agent.emit(EventFocusOut, prev, Vec2{}, Vec2{})
		}
		if m.activeFocusItem != cur {
			// cur never saw FocusIn, so it must not see FocusOut either.
			m.lastFocusIn = nil
			continue
		}
		if cur != nil && cur.OnFocusIn != nil {
			cur.OnFocusIn(FocusEvent{Item: cur, Reason: reason})
			m.agent.emit(EventFocusIn, cur, Vec2{}, Vec2{})
		}
		if m.agent.OnActiveFocusItemChanged != nil {
			m.agent.OnActiveFocusItemChanged(cur)
		}
	}
}

// clear drops all focus state, used when the agent is torn down.
func (m *FocusManager) clear() {
	tx := newFocusChange()
	if sf := m.root.subFocusItem; sf != nil {
		clearFocusInScope(tx, m.root, sf)
	}
	m.active = false
	m.recompute(tx)
	notifyFocusChanges(tx)
	m.lastFocusIn = nil
}

// --- Scope-local focus ---

// focusChange collects items whose focus or activeFocus flag may have changed
// during one structural update. Notifications are sent once per item after
// the update, comparing the current flag with the last notified value.
type focusChange struct {
	items []*Item
	seen  map[*Item]struct{}
}

func newFocusChange() *focusChange {
	return &focusChange{seen: make(map[*Item]struct{})}
}

func (c *focusChange) add(it *Item) {
	if _, ok := c.seen[it]; ok {
		return
	}
	c.seen[it] = struct{}{}
	c.items = append(c.items, it)
}

// commitFocusChange recomputes the active chain of every agent involved and
// fires the deferred notifications.
func commitFocusChange(tx *focusChange, agents ...*Agent) {
	var done []*Agent
	for _, a := range agents {
		if a == nil || containsAgent(done, a) {
			continue
		}
		done = append(done, a)
		a.focus.recompute(tx)
	}
	notifyFocusChanges(tx)
	for _, a := range done {
		a.focus.notifyActiveItem()
	}
}

func containsAgent(list []*Agent, a *Agent) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

// notifyFocusChanges fires OnFocusChanged/OnActiveFocusChanged, innermost
// items first. Items whose flags ended where they started are skipped, so an
// item never sees a transient value.
func notifyFocusChanges(tx *focusChange) {
	items := tx.items
	depth := make(map[*Item]int, len(items))
	for _, it := range items {
		depth[it] = it.Depth()
	}
	sort.SliceStable(items, func(i, j int) bool {
		return depth[items[i]] > depth[items[j]]
	})
	for _, it := range items {
		if it.disposed {
			continue
		}
		if it.notifiedFocus != it.focus {
			it.notifiedFocus = it.focus
			if it.OnFocusChanged != nil {
				it.OnFocusChanged(it.focus)
			}
		}
		if it.notifiedActiveFocus != it.activeFocus {
			it.notifiedActiveFocus = it.activeFocus
			if it.OnActiveFocusChanged != nil {
				it.OnActiveFocusChanged(it.activeFocus)
			}
		}
	}
}

// nearestScope returns the closest focus scope at or above it, or the topmost
// ancestor when none of them is a scope. Returns nil for a nil item.
func nearestScope(it *Item) *Item {
	if it == nil {
		return nil
	}
	p := it
	for !p.focusScope && p.parent != nil {
		p = p.parent
	}
	return p
}

// scopeFocusedItem returns the item in it's subtree that holds focus in the
// scope enclosing it: it itself, or the item recorded on a non-scope it.
func (it *Item) scopeFocusedItem() *Item {
	if it.focus {
		return it
	}
	if !it.focusScope && it.subFocusItem != nil {
		return it.subFocusItem
	}
	return nil
}

// setSubFocusChain makes item the focused item of scope, rewriting the
// pointers on the items in between. A nil item clears the chain.
func setSubFocusChain(scope, item *Item) {
	if old := scope.subFocusItem; old != nil {
		for p := old.parent; p != nil && p != scope; p = p.parent {
			if p.subFocusItem == old {
				p.subFocusItem = nil
			}
		}
		scope.subFocusItem = nil
	}
	if item == nil {
		return
	}
	for p := item.parent; p != nil && p != scope; p = p.parent {
		p.subFocusItem = item
	}
	scope.subFocusItem = item
}

func setFocusInScope(tx *focusChange, scope, item *Item) {
	if scope == nil || item == nil {
		return
	}
	if scope.subFocusItem == item && item.focus {
		return
	}
	if old := scope.subFocusItem; old != nil && old != item {
		old.focus = false
		tx.add(old)
	}
	setSubFocusChain(scope, item)
	if !item.focus {
		item.focus = true
		tx.add(item)
	}
}

func clearFocusInScope(tx *focusChange, scope, item *Item) {
	if scope == nil || item == nil || !item.focus {
		return
	}
	item.focus = false
	tx.add(item)
	if scope.subFocusItem == item {
		setSubFocusChain(scope, nil)
	}
}

// transferFocusOnDetach removes scopeFocused (inside child) from the old
// scope and records it on the items of the detached subtree, keeping its
// focus flag so the subtree can carry it to a new scope.
func transferFocusOnDetach(oldParent, child, scopeFocused *Item) {
	oldScope := nearestScope(oldParent)
	if oldScope.subFocusItem == scopeFocused {
		setSubFocusChain(oldScope, nil)
	}
	for p := scopeFocused.parent; p != nil && p != oldParent; p = p.parent {
		p.subFocusItem = scopeFocused
	}
}

// transferFocusOnAttach installs scopeFocused in the scope that now encloses
// child. If that scope already has a focused item the existing one wins and
// scopeFocused loses its focus flag.
func transferFocusOnAttach(tx *focusChange, child, scopeFocused *Item) {
	newScope := nearestScope(child.parent)
	if cur := newScope.subFocusItem; cur != nil && cur != scopeFocused {
		scopeFocused.focus = false
		tx.add(scopeFocused)
		for p := scopeFocused.parent; p != nil && p != child.parent; p = p.parent {
			if p.subFocusItem == scopeFocused {
				p.subFocusItem = nil
			}
		}
		return
	}
	setSubFocusChain(newScope, scopeFocused)
}
