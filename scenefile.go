package bough

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// itemDesc is one [[item]] table of a scene file.
type itemDesc struct {
	Name     string   `toml:"name"`
	Parent   string   `toml:"parent"`
	X        float64  `toml:"x"`
	Y        float64  `toml:"y"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	ScaleX   float64  `toml:"scale_x"`
	ScaleY   float64  `toml:"scale_y"`
	Rotation float64  `toml:"rotation"`
	Z        float64  `toml:"z"`
	Opacity  *float64 `toml:"opacity"`
	Clip     bool     `toml:"clip"`
	Hidden   bool     `toml:"hidden"`
	Disabled bool     `toml:"disabled"`

	FocusScope bool `toml:"focus_scope"`
	Focus      bool `toml:"focus"`

	Buttons []string `toml:"buttons"`
	Hover   bool     `toml:"hover"`
	Touch   bool     `toml:"touch"`
	Wheel   bool     `toml:"wheel"`
	Drops   bool     `toml:"drops"`
	Keys    bool     `toml:"keys"`

	// Filter lists the event types this item claims from its descendants.
	// A claimed press or move is also grabbed.
	Filter []string `toml:"filter"`

	// Ignore lists the event types this item's hooks refuse.
	Ignore []string `toml:"ignore"`
}

type sceneDesc struct {
	Items []itemDesc `toml:"item"`
}

// Scene is an item tree built from a scene file. The first item is the root;
// items without a parent are attached to it.
//
//	[[item]]
//	name = "root"
//	width = 400
//	height = 300
//
//	[[item]]
//	name = "button"
//	x = 10
//	y = 10
//	width = 80
//	height = 30
//	buttons = ["left"]
//	hover = true
type Scene struct {
	Root   *Item
	byName map[string]*Item
	order  []string
}

// Item returns the item with the given name, or nil.
func (s *Scene) Item(name string) *Item {
	return s.byName[name]
}

// Names returns the item names in file order.
func (s *Scene) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// DecodeScene builds an item tree from TOML.
func DecodeScene(data []byte) (*Scene, error) {
	var desc sceneDesc
	if _, err := toml.Decode(string(data), &desc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return buildScene(desc)
}

// LoadScene reads a TOML scene file from path.
func LoadScene(path string) (*Scene, error) {
	var desc sceneDesc
	if _, err := toml.DecodeFile(path, &desc); err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	return buildScene(desc)
}

func buildScene(desc sceneDesc) (*Scene, error) {
	if len(desc.Items) == 0 {
		return nil, fmt.Errorf("decode scene: no items")
	}
	s := &Scene{byName: make(map[string]*Item, len(desc.Items))}
	for i, d := range desc.Items {
		if d.Name == "" {
			return nil, fmt.Errorf("decode scene: item %d has no name", i)
		}
		if _, dup := s.byName[d.Name]; dup {
			return nil, fmt.Errorf("decode scene: duplicate item %q", d.Name)
		}
		it, err := d.build()
		if err != nil {
			return nil, fmt.Errorf("decode scene: item %q: %w", d.Name, err)
		}
		s.byName[d.Name] = it
		s.order = append(s.order, d.Name)
		if i == 0 {
			if d.Parent != "" {
				return nil, fmt.Errorf("decode scene: root %q cannot have a parent", d.Name)
			}
			s.Root = it
			continue
		}
		parent := s.Root
		if d.Parent != "" {
			parent = s.byName[d.Parent]
			if parent == nil {
				return nil, fmt.Errorf("decode scene: item %q: parent %q must be declared before it", d.Name, d.Parent)
			}
		}
		parent.AddChild(it)
	}
	for _, d := range desc.Items {
		it := s.byName[d.Name]
		if d.Hidden {
			it.SetVisible(false)
		}
		if d.Disabled {
			it.SetEnabled(false)
		}
	}
	for _, d := range desc.Items {
		if d.Focus {
			s.byName[d.Name].SetFocus(true)
		}
	}
	return s, nil
}

func (d itemDesc) build() (*Item, error) {
	it := NewItem(d.Name, d.Width, d.Height)
	it.EntityID = it.ID
	it.X, it.Y = d.X, d.Y
	if d.ScaleX != 0 {
		it.ScaleX = d.ScaleX
	}
	if d.ScaleY != 0 {
		it.ScaleY = d.ScaleY
	}
	it.Rotation = d.Rotation
	it.SetZ(d.Z)
	if d.Opacity != nil {
		it.Opacity = *d.Opacity
	}
	it.Clip = d.Clip
	it.SetFocusScope(d.FocusScope)

	for _, b := range d.Buttons {
		btn, err := parseButton(b)
		if err != nil {
			return nil, err
		}
		it.AcceptedButtons |= btn
	}
	it.AcceptsHover = d.Hover
	it.AcceptsTouch = d.Touch
	it.AcceptsWheel = d.Wheel
	it.AcceptsDrops = d.Drops

	ignore, err := parseEventTypes(d.Ignore)
	if err != nil {
		return nil, fmt.Errorf("ignore: %w", err)
	}
	claim, err := parseEventTypes(d.Filter)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	installHooks(it, d, ignore)
	if len(claim) > 0 {
		it.FiltersChildEvents = true
		it.FilterChildEvent = func(_ *Item, ev Event) bool {
			if !claim[ev.Type()] {
				return false
			}
			if pe, ok := ev.(*PointerEvent); ok && (pe.typ == EventPress || pe.typ == EventMove) {
				pe.Grab()
			}
			return true
		}
	}
	return it, nil
}

// installHooks gives the item accepting hooks for every capability it
// declares, refusing the event types in ignore.
func installHooks(it *Item, d itemDesc, ignore map[EventType]bool) {
	pointer := func(ev *PointerEvent) {
		if ignore[ev.typ] {
			ev.Ignore()
		}
	}
	if it.AcceptedButtons != 0 || d.Touch {
		it.OnPress = pointer
		it.OnMove = pointer
		it.OnRelease = pointer
		it.OnDoubleClick = pointer
		it.OnCancel = pointer
		it.OnUngrab = func(UngrabEvent) {}
	}
	if d.Wheel {
		it.OnWheel = func(ev *WheelEvent) {
			if ignore[EventWheel] {
				ev.Ignore()
			}
		}
	}
	if d.Keys {
		key := func(ev *KeyEvent) {
			if ignore[ev.typ] {
				ev.Ignore()
			}
		}
		it.OnKeyPress = key
		it.OnKeyRelease = key
	}
	if d.Hover {
		hover := func(*HoverEvent) {}
		it.OnHoverEnter = hover
		it.OnHoverMove = hover
		it.OnHoverLeave = hover
	}
	if d.Drops {
		drag := func(ev *DragEvent) {
			if ignore[ev.typ] {
				ev.Ignore()
			}
		}
		it.OnDragEnter = drag
		it.OnDragMove = drag
		it.OnDragLeave = drag
		it.OnDrop = drag
	}
}

func parseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	case "all":
		return AllButtons, nil
	}
	return MouseButtonNone, fmt.Errorf("unknown button %q", s)
}

// ParseEventType returns the event type with the given name, as printed by
// EventType.String.
func ParseEventType(s string) (EventType, error) {
	for t := EventPress; t <= EventDrop; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

func parseEventTypes(names []string) (map[EventType]bool, error) {
	out := make(map[EventType]bool, len(names))
	for _, n := range names {
		t, err := ParseEventType(n)
		if err != nil {
			return nil, err
		}
		out[t] = true
	}
	return out, nil
}
