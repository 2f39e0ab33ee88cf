package bough

import (
	"fmt"
	"testing"
)

// hoverTree builds root > outer(0,0,100x100) > inner(10,10,20x20), both
// hoverable, logging "name enter|move|leave".
func hoverTree(log *[]string) (root, outer, inner *Item) {
	root = NewItem("root", 200, 200)
	outer = NewItem("outer", 100, 100)
	inner = NewItem("inner", 20, 20)
	inner.SetPosition(10, 10)
	for _, it := range []*Item{outer, inner} {
		it.AcceptsHover = true
		name := it.Name
		it.OnHoverEnter = func(*HoverEvent) { *log = append(*log, name+" enter") }
		it.OnHoverMove = func(*HoverEvent) { *log = append(*log, name+" move") }
		it.OnHoverLeave = func(*HoverEvent) { *log = append(*log, name+" leave") }
	}
	root.AddChild(outer)
	outer.AddChild(inner)
	return root, outer, inner
}

func TestHoverTrackerEnterLeaveOrder(t *testing.T) {
	var got []string
	root, _, _ := hoverTree(&got)
	h := NewHoverTracker(root)

	steps := []struct {
		name     string
		to, from Vec2
		want     []string
	}{
		{"enter both", Vec2{15, 15}, Vec2{15, 15}, []string{"outer enter", "inner enter"}},
		{"same point", Vec2{15, 15}, Vec2{15, 15}, nil},
		{"move inside inner", Vec2{16, 16}, Vec2{15, 15}, []string{"inner move"}},
		{"leave inner", Vec2{50, 50}, Vec2{16, 16}, []string{"inner leave", "outer move"}},
		{"back into inner", Vec2{12, 12}, Vec2{50, 50}, []string{"inner enter"}},
		{"leave everything", Vec2{150, 150}, Vec2{12, 12}, []string{"inner leave", "outer leave"}},
	}
	for _, st := range steps {
		got = nil
		h.Update(st.to, st.from)
		if !equalStrings(got, st.want) {
			t.Errorf("%s: log = %v, want %v", st.name, got, st.want)
		}
	}
}

func TestHoverTrackerIdempotent(t *testing.T) {
	var got []string
	root, _, _ := hoverTree(&got)
	h := NewHoverTracker(root)

	for _, p := range []Vec2{{15, 15}, {50, 50}, {150, 150}, {20, 12}} {
		h.Update(p, p)
		got = nil
		h.Update(p, p)
		if len(got) != 0 {
			t.Errorf("second update at %v sent %v", p, got)
		}
	}
}

func TestHoverTrackerChainInnermostFirst(t *testing.T) {
	var got []string
	root, outer, inner := hoverTree(&got)
	h := NewHoverTracker(root)
	h.Update(Vec2{15, 15}, Vec2{15, 15})

	chain := h.Chain()
	if len(chain) != 2 || chain[0] != inner || chain[1] != outer {
		t.Errorf("Chain = %v, want [inner outer]", chain)
	}
	if !h.Contains(outer) || h.Contains(root) {
		t.Error("Contains disagrees with Chain")
	}
}

func TestHoverTrackerChainStopsAtNonHoverable(t *testing.T) {
	var got []string
	root, outer, inner := hoverTree(&got)
	mid := NewItem("mid", 100, 100)
	outer.AddChild(mid)
	mid.AddChild(inner)
	h := NewHoverTracker(root)

	h.Update(Vec2{15, 15}, Vec2{15, 15})
	if chain := h.Chain(); len(chain) != 1 || chain[0] != inner {
		t.Errorf("Chain = %v, want [inner]", chain)
	}
}

func TestHoverTrackerClear(t *testing.T) {
	var got []string
	root, _, _ := hoverTree(&got)
	h := NewHoverTracker(root)
	h.Update(Vec2{15, 15}, Vec2{15, 15})

	got = nil
	h.Clear(Vec2{15, 15})
	if !equalStrings(got, []string{"inner leave", "outer leave"}) {
		t.Errorf("log = %v", got)
	}
	if len(h.Chain()) != 0 {
		t.Error("chain not empty")
	}
}

func TestHoverTrackerPruneIsSilent(t *testing.T) {
	var got []string
	root, outer, inner := hoverTree(&got)
	h := NewHoverTracker(root)
	h.Update(Vec2{15, 15}, Vec2{15, 15})

	got = nil
	h.Prune(inner)
	if len(got) != 0 {
		t.Errorf("prune sent %v", got)
	}
	if chain := h.Chain(); len(chain) != 1 || chain[0] != outer {
		t.Errorf("Chain = %v, want [outer]", chain)
	}
}

func TestHoverTrackerClipLimitsChain(t *testing.T) {
	var got []string
	root, outer, inner := hoverTree(&got)
	outer.SetSize(12, 12)
	outer.Clip = true
	h := NewHoverTracker(root)

	h.Update(Vec2{20, 20}, Vec2{20, 20})
	if len(h.Chain()) != 0 {
		t.Errorf("Chain through clip = %v, want empty", h.Chain())
	}
	h.Update(Vec2{11, 11}, Vec2{11, 11})
	if chain := h.Chain(); len(chain) != 2 || chain[0] != inner {
		t.Errorf("Chain = %v, want [inner outer]", chain)
	}
}

func TestHoverEventCoordinates(t *testing.T) {
	root := NewItem("root", 200, 200)
	box := NewItem("box", 50, 50)
	box.SetPosition(100, 100)
	box.AcceptsHover = true
	var ev HoverEvent
	box.OnHoverMove = func(e *HoverEvent) { ev = *e }
	root.AddChild(box)
	h := NewHoverTracker(root)
	h.Modifiers = ModShift

	h.Update(Vec2{110, 110}, Vec2{110, 110})
	h.Update(Vec2{120, 130}, Vec2{110, 110})
	if ev.Local != (Vec2{20, 30}) || ev.PreviousLocal != (Vec2{10, 10}) {
		t.Errorf("local = %v previous = %v", ev.Local, ev.PreviousLocal)
	}
	if ev.Scene != (Vec2{120, 130}) || ev.Item != box || ev.Modifiers != ModShift {
		t.Errorf("event = %+v", ev)
	}
}

// --- Agent integration ---

func TestAgentHoverPausedWhileGrabbed(t *testing.T) {
	var got []string
	root, outer, _ := hoverTree(&got)
	outer.AcceptedButtons = MouseButtonLeft
	outer.OnPress = func(*PointerEvent) {}
	outer.OnMove = func(*PointerEvent) {}
	outer.OnRelease = func(*PointerEvent) {}
	a := NewAgent(root, DefaultSettings())

	mouseHover(a, 50, 50)
	mousePress(a, 50, 50)
	got = nil
	mouseMove(a, 15, 15)
	mouseMove(a, 150, 150)
	if len(got) != 0 {
		t.Errorf("hover changed during a grab: %v", got)
	}
	mouseRelease(a, 150, 150)
	if !equalStrings(got, []string{"outer leave"}) {
		t.Errorf("after release log = %v, want [outer leave]", got)
	}
}

func TestAgentHoverIgnoresTouch(t *testing.T) {
	var got []string
	root, _, _ := hoverTree(&got)
	a := NewAgent(root, DefaultSettings())

	a.Deliver(RawEvent{Device: 1, Kind: DeviceTouch, Phase: PhasePress, Position: Vec2{15, 15}})
	a.Deliver(RawEvent{Device: 1, Kind: DeviceTouch, Phase: PhaseMove, Position: Vec2{16, 16}})
	if len(got) != 0 {
		t.Errorf("touch changed hover: %v", got)
	}

	a.Deliver(RawEvent{Device: 2, Kind: DeviceTablet, Phase: PhaseMove, Position: Vec2{15, 15}})
	if !equalStrings(got, []string{"outer enter", "inner enter"}) {
		t.Errorf("tablet hover log = %v", got)
	}
}

func TestAgentHoverDropsDisabledItem(t *testing.T) {
	var got []string
	root, outer, inner := hoverTree(&got)
	a := NewAgent(root, DefaultSettings())
	mouseHover(a, 15, 15)

	got = nil
	inner.SetEnabled(false)
	if !equalStrings(got, []string{"inner leave"}) {
		t.Errorf("log = %v, want [inner leave]", got)
	}
	if chain := a.Hover().Chain(); len(chain) != 1 || chain[0] != outer {
		t.Errorf("chain = %v, want [outer]", chain)
	}

	got = nil
	inner.SetEnabled(true)
	a.RefreshHover()
	if !equalStrings(got, []string{"inner enter"}) {
		t.Errorf("after re-enable log = %v, want [inner enter]", got)
	}
}

func TestAgentHoverPrunesDetachedItem(t *testing.T) {
	var got []string
	root, _, inner := hoverTree(&got)
	a := NewAgent(root, DefaultSettings())
	mouseHover(a, 15, 15)

	got = nil
	inner.RemoveFromParent()
	mouseHover(a, 16, 16)
	if !equalStrings(got, []string{"outer move"}) {
		t.Errorf("log = %v, want [outer move]", got)
	}
	if a.Hover().Contains(inner) {
		t.Error("detached item still hovered")
	}
}

func ExampleHoverTracker_Update() {
	root := NewItem("root", 100, 100)
	card := NewItem("card", 40, 40)
	card.AcceptsHover = true
	card.OnHoverEnter = func(ev *HoverEvent) { fmt.Println("enter", ev.Local) }
	card.OnHoverLeave = func(ev *HoverEvent) { fmt.Println("leave") }
	root.AddChild(card)

	h := NewHoverTracker(root)
	h.Update(Vec2{10, 10}, Vec2{10, 10})
	h.Update(Vec2{90, 90}, Vec2{10, 10})
	// Output:
	// enter {10 10}
	// leave
}
