package bough

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
)

// focusLog records focus notifications as "name focus|active true|false".
func focusLog(log *[]string, items ...*Item) {
	for _, it := range items {
		name := it.Name
		it.OnFocusChanged = func(f bool) { *log = append(*log, fmt.Sprintf("%s focus %v", name, f)) }
		it.OnActiveFocusChanged = func(f bool) { *log = append(*log, fmt.Sprintf("%s active %v", name, f)) }
	}
}

// scopeTree builds root > scope(S) > {x, y} and root > plain.
func scopeTree() (root, s, x, y, plain *Item) {
	root = NewItem("root", 100, 100)
	s = NewItem("S", 100, 100)
	s.SetFocusScope(true)
	x = NewItem("x", 10, 10)
	y = NewItem("y", 10, 10)
	plain = NewItem("plain", 10, 10)
	root.AddChild(s)
	s.AddChild(x)
	s.AddChild(y)
	root.AddChild(plain)
	return root, s, x, y, plain
}

func TestFocusRootHoldsActiveFocusInitially(t *testing.T) {
	root, _, _, _, _ := scopeTree()
	a := NewAgent(root, DefaultSettings())
	if a.ActiveFocusItem() != root {
		t.Errorf("ActiveFocusItem = %v, want root", a.ActiveFocusItem())
	}
	if !root.IsFocusScope() || !root.HasActiveFocus() {
		t.Error("root should be an active focus scope")
	}
}

func TestFocusSimpleItem(t *testing.T) {
	root, _, _, _, plain := scopeTree()
	a := NewAgent(root, DefaultSettings())
	var got []string
	focusLog(&got, plain)

	plain.SetFocus(true)
	if a.ActiveFocusItem() != plain {
		t.Errorf("ActiveFocusItem = %v, want plain", a.ActiveFocusItem())
	}
	if !equalStrings(got, []string{"plain focus true", "plain active true"}) {
		t.Errorf("log = %v", got)
	}
	if !root.HasActiveFocus() {
		t.Error("root left the active chain")
	}
}

func TestFocusInInactiveScopeIsDeferred(t *testing.T) {
	root, s, x, _, _ := scopeTree()
	a := NewAgent(root, DefaultSettings())
	var got []string
	focusLog(&got, s, x)

	x.SetFocus(true)
	if a.ActiveFocusItem() != root {
		t.Errorf("ActiveFocusItem = %v, want root while S is unfocused", a.ActiveFocusItem())
	}
	if !x.HasFocus() || x.HasActiveFocus() {
		t.Error("x should have scope focus only")
	}
	if s.ScopedFocusItem() != x {
		t.Errorf("ScopedFocusItem = %v, want x", s.ScopedFocusItem())
	}

	got = nil
	s.SetFocus(true)
	if a.ActiveFocusItem() != x {
		t.Errorf("ActiveFocusItem = %v, want x", a.ActiveFocusItem())
	}
	want := []string{"x active true", "S focus true", "S active true"}
	if !equalStrings(got, want) {
		t.Errorf("log = %v, want %v", got, want)
	}
}

func TestFocusMoveWithinActiveScope(t *testing.T) {
	root, s, x, y, _ := scopeTree()
	a := NewAgent(root, DefaultSettings())
	x.ForceActiveFocus()
	var got []string
	focusLog(&got, s, x, y)

	a.SetFocus(y, s)
	if a.ActiveFocusItem() != y {
		t.Errorf("ActiveFocusItem = %v, want y", a.ActiveFocusItem())
	}
	want := []string{"x focus false", "x active false", "y focus true", "y active true"}
	if !equalStrings(got, want) {
		t.Errorf("log = %v, want %v", got, want)
	}

	got = nil
	a.SetFocus(y, s)
	if len(got) != 0 {
		t.Errorf("refocusing the focused item sent %v", got)
	}
}

func TestFocusClearRetreatsToScope(t *testing.T) {
	root, s, x, _, _ := scopeTree()
	a := NewAgent(root, DefaultSettings())
	x.ForceActiveFocus()

	a.ClearFocus(x, s)
	if a.ActiveFocusItem() != s {
		t.Errorf("ActiveFocusItem = %v, want S", a.ActiveFocusItem())
	}
	if x.HasFocus() || s.ScopedFocusItem() != nil {
		t.Error("x kept its scope focus")
	}

	a.ClearFocus(x, s)
	if a.ActiveFocusItem() != s {
		t.Error("clearing an unfocused item changed focus")
	}
}

func TestFocusWrongScopeWarns(t *testing.T) {
	buf := captureLog(t)
	root, _, x, _, plain := scopeTree()
	a := NewAgent(root, DefaultSettings())

	a.SetFocus(x, root)
	if x.HasFocus() {
		t.Error("focus set through a scope that is not the nearest")
	}
	a.SetFocus(nil, root)
	a.SetFocus(NewItem("stray", 1, 1), root)
	a.ClearFocus(plain, nil)
	a.Focus().ForceActiveFocus(NewItem("stray", 1, 1))

	for _, want := range []string{"not the nearest focus scope", "nil item or scope", "outside this agent"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q: %q", want, buf.String())
		}
	}
}

func TestFocusDisableKeepsChain(t *testing.T) {
	root, s, x, _, _ := scopeTree()
	a := NewAgent(root, DefaultSettings())
	x.ForceActiveFocus()

	x.SetEnabled(false)
	if a.ActiveFocusItem() != s {
		t.Errorf("after disabling x: active = %v, want S", a.ActiveFocusItem())
	}
	if s.ScopedFocusItem() != x || !x.HasFocus() {
		t.Error("disabling x dropped its scope focus")
	}
	x.SetEnabled(true)
	if a.ActiveFocusItem() != x {
		t.Errorf("after re-enabling x: active = %v, want x", a.ActiveFocusItem())
	}

	s.SetEnabled(false)
	if a.ActiveFocusItem() != root {
		t.Errorf("after disabling S: active = %v, want root", a.ActiveFocusItem())
	}
	s.SetEnabled(true)
	if a.ActiveFocusItem() != x {
		t.Errorf("after re-enabling S: active = %v, want x", a.ActiveFocusItem())
	}
}

func TestFocusReparentIntoEmptyScopeKeepsFocus(t *testing.T) {
	root, s, x, _, _ := scopeTree()
	other := NewItem("other", 100, 100)
	other.SetFocusScope(true)
	root.AddChild(other)
	a := NewAgent(root, DefaultSettings())
	x.SetFocus(true)

	other.AddChild(x)
	if s.ScopedFocusItem() != nil {
		t.Errorf("old scope still points at %v", s.ScopedFocusItem())
	}
	if other.ScopedFocusItem() != x || !x.HasFocus() {
		t.Error("x lost focus moving into an empty scope")
	}
	other.SetFocus(true)
	if a.ActiveFocusItem() != x {
		t.Errorf("active = %v, want x", a.ActiveFocusItem())
	}
}

func TestFocusReparentIntoOccupiedScopeLoses(t *testing.T) {
	root, s, x, _, _ := scopeTree()
	other := NewItem("other", 100, 100)
	other.SetFocusScope(true)
	z := NewItem("z", 10, 10)
	root.AddChild(other)
	other.AddChild(z)
	NewAgent(root, DefaultSettings())
	x.SetFocus(true)
	z.SetFocus(true)
	var got []string
	focusLog(&got, x, z)

	other.AddChild(x)
	if other.ScopedFocusItem() != z {
		t.Errorf("ScopedFocusItem = %v, want z (first occupant wins)", other.ScopedFocusItem())
	}
	if x.HasFocus() {
		t.Error("arriving item kept its focus")
	}
	if s.ScopedFocusItem() != nil {
		t.Error("old scope still points at x")
	}
	if !equalStrings(got, []string{"x focus false"}) {
		t.Errorf("log = %v, want [x focus false]", got)
	}
}

func TestFocusCarriedInsideDetachedSubtree(t *testing.T) {
	root, s, _, _, _ := scopeTree()
	a := NewAgent(root, DefaultSettings())
	group := NewItem("group", 50, 50)
	leaf := NewItem("leaf", 10, 10)
	group.AddChild(leaf)
	s.AddChild(group)
	leaf.ForceActiveFocus()
	if a.ActiveFocusItem() != leaf {
		t.Fatalf("active = %v, want leaf", a.ActiveFocusItem())
	}

	group.RemoveFromParent()
	if a.ActiveFocusItem() != s {
		t.Errorf("active after detach = %v, want S", a.ActiveFocusItem())
	}
	if !leaf.HasFocus() || leaf.HasActiveFocus() {
		t.Error("detached leaf should keep scope focus only")
	}

	s.AddChild(group)
	if a.ActiveFocusItem() != leaf {
		t.Errorf("active after reattach = %v, want leaf", a.ActiveFocusItem())
	}
}

func TestFocusNotificationsInnermostFirst(t *testing.T) {
	root, s, x, _, _ := scopeTree()
	NewAgent(root, DefaultSettings())
	var got []string
	focusLog(&got, s, x)

	x.ForceActiveFocus()
	want := []string{"x focus true", "x active true", "S focus true", "S active true"}
	if !equalStrings(got, want) {
		t.Errorf("log = %v, want %v", got, want)
	}
}

func TestFocusInOutAndCollaborator(t *testing.T) {
	root, s, x, y, _ := scopeTree()
	a := NewAgent(root, DefaultSettings())
	var got []string
	for _, it := range []*Item{root, s, x, y} {
		name := it.Name
		it.OnFocusIn = func(FocusEvent) { got = append(got, name+" in") }
		it.OnFocusOut = func(FocusEvent) { got = append(got, name+" out") }
	}
	var announced []*Item
	a.OnActiveFocusItemChanged = func(it *Item) { announced = append(announced, it) }

	x.ForceActiveFocus()
	y.SetFocus(true)

	want := []string{"root out", "x in", "x out", "y in"}
	if !equalStrings(got, want) {
		t.Errorf("log = %v, want %v", got, want)
	}
	if len(announced) != 2 || announced[0] != x || announced[1] != y {
		t.Errorf("announced = %v, want [x y]", announced)
	}
}

func TestFocusHookMovingFocusSettles(t *testing.T) {
	root, _, _, y, plain := scopeTree()
	a := NewAgent(root, DefaultSettings())
	// Focus arriving on plain is redirected to y.
	plain.OnFocusIn = func(FocusEvent) { y.ForceActiveFocus() }
	var got []string
	y.OnFocusIn = func(FocusEvent) { got = append(got, "y in") }
	plain.OnFocusOut = func(FocusEvent) { got = append(got, "plain out") }

	plain.SetFocus(true)
	if a.ActiveFocusItem() != y {
		t.Errorf("active = %v, want y", a.ActiveFocusItem())
	}
	if !equalStrings(got, []string{"plain out", "y in"}) {
		t.Errorf("log = %v", got)
	}
}

func TestFocusSurfaceActivation(t *testing.T) {
	root, _, _, _, plain := scopeTree()
	a := NewAgent(root, DefaultSettings())
	plain.SetFocus(true)
	var reasons []FocusReason
	plain.OnFocusOut = func(ev FocusEvent) { reasons = append(reasons, ev.Reason) }
	plain.OnFocusIn = func(ev FocusEvent) { reasons = append(reasons, ev.Reason) }

	a.SetSurfaceActive(false)
	if a.ActiveFocusItem() != nil || plain.HasActiveFocus() {
		t.Error("inactive surface kept active focus")
	}
	if !plain.HasFocus() {
		t.Error("deactivation dropped scope focus")
	}
	if a.Focus().SurfaceActive() {
		t.Error("SurfaceActive = true")
	}

	a.SetSurfaceActive(true)
	if a.ActiveFocusItem() != plain {
		t.Errorf("active after reactivation = %v, want plain", a.ActiveFocusItem())
	}
	if len(reasons) != 2 || reasons[0] != FocusSurface || reasons[1] != FocusSurface {
		t.Errorf("reasons = %v, want two FocusSurface", reasons)
	}
}

func TestSetFocusScopeAfterChildrenWarns(t *testing.T) {
	buf := captureLog(t)
	it := NewItem("it", 1, 1)
	it.AddChild(NewItem("c", 1, 1))
	it.SetFocusScope(true)
	if it.IsFocusScope() {
		t.Error("scope flag changed after children were added")
	}
	if !strings.Contains(buf.String(), "SetFocusScope") {
		t.Errorf("missing warning, log: %q", buf.String())
	}
}

func TestFocusParentlessItemRemembersFlag(t *testing.T) {
	root, s, _, _, _ := scopeTree()
	NewAgent(root, DefaultSettings())
	loose := NewItem("loose", 1, 1)
	loose.SetFocus(true)
	if !loose.HasFocus() {
		t.Fatal("flag not remembered")
	}
	s.AddChild(loose)
	if s.ScopedFocusItem() != loose {
		t.Errorf("ScopedFocusItem = %v, want loose", s.ScopedFocusItem())
	}
}

// checkFocusInvariants verifies that every scope's focused item lies inside
// it and that the active focus item is reached from the root through
// focused scopes.
func checkFocusInvariants(t *testing.T, a *Agent, scopes []*Item) {
	t.Helper()
	for _, sc := range scopes {
		sf := sc.ScopedFocusItem()
		if sf == nil {
			continue
		}
		if !sc.IsAncestorOf(sf) || nearestScope(sf.parent) != sc || !sf.HasFocus() {
			t.Fatalf("scope %s: focused item %s is not a focused direct scope member", sc, sf)
		}
		n := 0
		walk(sc, func(it *Item) {
			if it != sc && it.HasFocus() && nearestScope(it.parent) == sc {
				n++
			}
		})
		if n != 1 {
			t.Fatalf("scope %s has %d focused members", sc, n)
		}
	}
	want := a.Root()
	for want.IsFocusScope() {
		next := want.ScopedFocusItem()
		if next == nil || !next.IsEnabled() {
			break
		}
		want = next
	}
	if got := a.ActiveFocusItem(); got != want {
		t.Fatalf("active = %v, want %v", got, want)
	}
}

func TestFocusInvariantsUnderRandomOps(t *testing.T) {
	root := NewItem("root", 10, 10)
	var scopes []*Item
	var all []*Item
	for i := 0; i < 3; i++ {
		sc := NewItem(fmt.Sprintf("s%d", i), 10, 10)
		sc.SetFocusScope(true)
		root.AddChild(sc)
		scopes = append(scopes, sc)
		all = append(all, sc)
		for j := 0; j < 3; j++ {
			it := NewItem(fmt.Sprintf("s%d.%d", i, j), 10, 10)
			sc.AddChild(it)
			all = append(all, it)
		}
	}
	a := NewAgent(root, DefaultSettings())
	scopes = append(scopes, root)
	rng := rand.New(rand.NewPCG(3, 4))

	for step := 0; step < 300; step++ {
		it := all[rng.IntN(len(all))]
		switch rng.IntN(5) {
		case 0, 1:
			it.SetFocus(true)
		case 2:
			it.SetFocus(false)
		case 3:
			it.ForceActiveFocus()
		case 4:
			it.SetEnabled(!it.ExplicitEnabled())
		}
		checkFocusInvariants(t, a, scopes)
	}
}
