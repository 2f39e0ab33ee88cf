package bough

import (
	"math"
	"strings"
	"testing"
)

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonContains(t *testing.T) {
	// Right triangle (0,0), (100,0), (0,100).
	p := HitPolygon{Points: []Vec2{{0, 0}, {100, 0}, {0, 100}}}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 20, 20, true},
		{"on hypotenuse", 50, 50, true},
		{"corner", 0, 0, true},
		{"beyond hypotenuse", 60, 60, false},
		{"outside", -1, 50, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitPolygon.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if (HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}).Contains(0, 0) {
		t.Error("degenerate polygon should contain nothing")
	}
}

// --- Hit testing ---

// abTree builds A(0,0,100x100) with child B(10,10,50x50).
func abTree() (a, b *Item) {
	a = NewItem("A", 100, 100)
	b = NewItem("B", 50, 50)
	b.SetPosition(10, 10)
	a.AddChild(b)
	return a, b
}

func TestHitTestNested(t *testing.T) {
	a, b := abTree()

	tests := []struct {
		name string
		p    Vec2
		want *Item
	}{
		{"child", Vec2{20, 20}, b},
		{"parent only", Vec2{5, 5}, a},
		{"child edge", Vec2{60, 60}, b},
		{"outside", Vec2{200, 200}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(a, tt.p, ClassAny); got != tt.want {
				t.Errorf("HitTest(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestHitTestClipIsHardBoundary(t *testing.T) {
	a, _ := abTree()
	a.Clip = true
	a.SetSize(15, 15)

	if got := HitTest(a, Vec2{20, 20}, ClassAny); got != nil {
		t.Errorf("HitTest through clip = %v, want none", got)
	}
	if got := HitTest(a, Vec2{12, 12}, ClassAny); got == nil || got.Name != "B" {
		t.Errorf("HitTest inside clip = %v, want B", got)
	}
}

func TestHitTestClipOnChild(t *testing.T) {
	root := NewItem("root", 200, 200)
	clip := NewItem("clip", 50, 50)
	clip.Clip = true
	overflow := NewItem("overflow", 150, 150)
	root.AddChild(clip)
	clip.AddChild(overflow)

	if got := HitTest(root, Vec2{100, 100}, ClassAny); got != root {
		t.Errorf("HitTest = %v, want root", got)
	}
}

func TestHitTestSkipsIneligible(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Item)
		class  EventClass
		want   string
	}{
		{"opacity zero", func(b *Item) { b.Opacity = 0 }, ClassAny, "A"},
		{"hidden", func(b *Item) { b.SetVisible(false) }, ClassAny, "A"},
		{"disabled", func(b *Item) { b.SetEnabled(false) }, ClassMouse, "A"},
		{"disabled geometric", func(b *Item) { b.SetEnabled(false) }, ClassAny, "B"},
		{"no buttons", func(b *Item) { b.AcceptedButtons = 0 }, ClassMouse, "A"},
		{"hover only", func(b *Item) { b.AcceptedButtons = 0; b.AcceptsHover = true }, ClassHover, "B"},
		{"not hoverable", func(b *Item) {}, ClassHover, ""},
		{"wheel", func(b *Item) { b.AcceptsWheel = true }, ClassWheel, "B"},
		{"touch via left button", func(b *Item) {}, ClassTouch, "B"},
		{"drop", func(b *Item) { b.AcceptsDrops = true }, ClassDrop, "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := abTree()
			a.AcceptedButtons = MouseButtonLeft
			b.AcceptedButtons = MouseButtonLeft
			tt.mutate(b)
			got := HitTest(a, Vec2{20, 20}, tt.class)
			name := ""
			if got != nil {
				name = got.Name
			}
			if name != tt.want {
				t.Errorf("HitTest = %q, want %q", name, tt.want)
			}
		})
	}
}

func TestHitTestButtonCriteria(t *testing.T) {
	a, b := abTree()
	a.AcceptedButtons = MouseButtonLeft
	b.AcceptedButtons = MouseButtonRight

	tests := []struct {
		button MouseButton
		want   *Item
	}{
		{MouseButtonLeft, a},
		{MouseButtonRight, b},
		{MouseButtonMiddle, nil},
		{MouseButtonNone, b},
	}
	for _, tt := range tests {
		out := hitTest(a, Vec2{20, 20}, hitCriteria{class: ClassMouse, button: tt.button}, 0, false)
		var got *Item
		if len(out) > 0 {
			got = out[0]
		}
		if got != tt.want {
			t.Errorf("button %d: got %v, want %v", tt.button, got, tt.want)
		}
	}
}

func TestHitTestOpacityZeroSkipsSubtree(t *testing.T) {
	a, b := abTree()
	c := NewItem("C", 10, 10)
	b.AddChild(c)
	b.Opacity = 0

	if got := HitTest(a, Vec2{12, 12}, ClassAny); got != a {
		t.Errorf("HitTest = %v, want A", got)
	}
}

func TestHitTestPaintOrder(t *testing.T) {
	root := NewItem("root", 100, 100)
	first := NewItem("first", 100, 100)
	second := NewItem("second", 100, 100)
	root.AddChild(first)
	root.AddChild(second)

	if got := HitTest(root, Vec2{50, 50}, ClassAny); got != second {
		t.Errorf("equal z: got %v, want second (inserted last)", got)
	}
	first.SetZ(1)
	if got := HitTest(root, Vec2{50, 50}, ClassAny); got != first {
		t.Errorf("higher z: got %v, want first", got)
	}
	first.SetZ(-1)
	if got := HitTest(root, Vec2{50, 50}, ClassAny); got != second {
		t.Errorf("negative z: got %v, want second", got)
	}
	first.SetZ(0)
	first.StackAfter(second)
	if got := HitTest(root, Vec2{50, 50}, ClassAny); got != first {
		t.Errorf("StackAfter: got %v, want first", got)
	}
}

func TestHitTestAllOrder(t *testing.T) {
	a, b := abTree()
	c := NewItem("C", 100, 100)
	a.AddChild(c)

	got := HitTestAll(a, Vec2{20, 20}, ClassAny)
	want := []*Item{c, b, a}
	if len(got) != len(want) {
		t.Fatalf("HitTestAll = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("HitTestAll[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHitTestTransformed(t *testing.T) {
	root := NewItem("root", 500, 500)
	bar := NewItem("bar", 50, 10)
	bar.SetPosition(100, 100)
	bar.Rotation = math.Pi / 2
	root.AddChild(bar)

	// Local (25, 5) lands at scene (95, 125) after a quarter turn.
	if got := HitTest(root, Vec2{95, 125}, ClassAny); got != bar {
		t.Errorf("rotated: got %v, want bar", got)
	}
	if got := HitTest(root, Vec2{125, 105}, ClassAny); got != root {
		t.Errorf("rotated away: got %v, want root", got)
	}

	scaled := NewItem("scaled", 10, 10)
	scaled.SetPosition(300, 300)
	scaled.ScaleX, scaled.ScaleY = 3, 3
	root.AddChild(scaled)
	if got := HitTest(root, Vec2{325, 325}, ClassAny); got != scaled {
		t.Errorf("scaled: got %v, want scaled", got)
	}

	flat := NewItem("flat", 10, 10)
	flat.SetPosition(400, 400)
	flat.ScaleX = 0
	root.AddChild(flat)
	if got := HitTest(root, Vec2{400, 405}, ClassAny); got != root {
		t.Errorf("zero scale: got %v, want root", got)
	}
}

func TestHitTestCustomShape(t *testing.T) {
	root := NewItem("root", 100, 100)
	disc := NewItem("disc", 100, 100)
	disc.HitShape = HitCircle{CenterX: 50, CenterY: 50, Radius: 10}
	root.AddChild(disc)

	if got := HitTest(root, Vec2{50, 55}, ClassAny); got != disc {
		t.Errorf("inside shape: got %v, want disc", got)
	}
	if got := HitTest(root, Vec2{5, 5}, ClassAny); got != root {
		t.Errorf("outside shape: got %v, want root", got)
	}
}

func TestHitTestDepthBound(t *testing.T) {
	buf := captureLog(t)
	root := NewItem("root", 10, 10)
	cur := root
	for i := 0; i < defaultMaxHitDepth+10; i++ {
		c := NewItem("n", 10, 10)
		cur.AddChild(c)
		cur = c
	}

	if got := HitTest(root, Vec2{5, 5}, ClassAny); got != nil {
		t.Errorf("HitTest on over-deep tree = %v, want none", got)
	}
	if !strings.Contains(buf.String(), "exceeded depth") {
		t.Errorf("missing warning, log: %q", buf.String())
	}
}

func TestHitTestNilAndDisposed(t *testing.T) {
	if HitTest(nil, Vec2{}, ClassAny) != nil {
		t.Error("nil root should hit nothing")
	}
	it := NewItem("gone", 10, 10)
	it.Dispose()
	if HitTest(it, Vec2{1, 1}, ClassAny) != nil {
		t.Error("disposed root should hit nothing")
	}
}
