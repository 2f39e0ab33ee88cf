package bough

import (
	"sort"
	"time"
)

// RawEvent is what an input source hands to Agent.Deliver. Positions are in
// surface coordinates; the agent maps them to the scene through its Viewport.
type RawEvent struct {
	Device DeviceID
	Kind   DeviceKind
	Point  PointID
	Phase  Phase

	Position Vec2
	Delta    Vec2 // wheel delta for PhaseWheel

	// Button is the button that changed for press/release; Buttons is the
	// set held after the event.
	Button  MouseButton
	Buttons MouseButtons

	Modifiers KeyModifiers
	Key       Key
	Text      string
	Repeat    bool

	// Timestamp is a monotonic time since an arbitrary epoch, used for
	// double-click detection.
	Timestamp time.Duration

	// Mime carries drag data for the drag phases, keyed by format.
	Mime map[string][]byte
}

// Key names a keyboard key, e.g. "A", "Enter", "Tab", "ArrowLeft".
type Key string

// Common key names.
const (
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeyTab       Key = "Tab"
	KeyBackspace Key = "Backspace"
	KeySpace     Key = "Space"
	KeyUp        Key = "ArrowUp"
	KeyDown      Key = "ArrowDown"
	KeyLeft      Key = "ArrowLeft"
	KeyRight     Key = "ArrowRight"
)

// Event is implemented by every event delivered to an item hook. Filtering
// ancestors receive events through this interface.
type Event interface {
	Type() EventType
	Receiver() *Item
	Accept()
	Ignore()
	Accepted() bool
}

type eventBase struct {
	typ      EventType
	receiver *Item
	accepted bool
	agent    *Agent
}

// Type returns the kind of event.
func (e *eventBase) Type() EventType { return e.typ }

// Receiver returns the item the event is being delivered to.
func (e *eventBase) Receiver() *Item { return e.receiver }

// Accept marks the event handled; delivery stops.
func (e *eventBase) Accept() { e.accepted = true }

// Ignore marks the event unhandled; delivery continues with the next
// candidate.
func (e *eventBase) Ignore() { e.accepted = false }

// Accepted reports whether the event was accepted.
func (e *eventBase) Accepted() bool { return e.accepted }

// PointerEvent is passed to OnPress, OnMove, OnRelease, OnDoubleClick and
// OnCancel. Positions are given both in scene and receiver-local space.
type PointerEvent struct {
	eventBase

	Device    DeviceID
	Kind      DeviceKind
	Point     PointID
	Scene     Vec2
	Local     Vec2
	Button    MouseButton
	Buttons   MouseButtons
	Modifiers KeyModifiers
	Timestamp time.Duration

	// Synthesized is set on mouse events made from a touch point.
	Synthesized bool

	// Target is the item delivery was aimed at. It differs from Receiver for
	// events offered to a filtering ancestor.
	Target *Item
}

// Key returns the grab key of the point.
func (e *PointerEvent) Key() GrabKey {
	return GrabKey{Device: e.Device, Point: e.Point}
}

// Grab makes the receiver the exclusive owner of this point. Called from a
// filter, it steals the point from the current owner.
func (e *PointerEvent) Grab() {
	if e.agent == nil {
		return
	}
	e.agent.grabs.Grab(e.Key(), e.receiver)
}

// Ungrab releases the receiver's grab of this point.
func (e *PointerEvent) Ungrab() {
	if e.agent == nil {
		return
	}
	e.agent.grabs.UngrabBy(e.Key(), e.receiver)
}

// IsGrabbed reports whether the receiver owns this point.
func (e *PointerEvent) IsGrabbed() bool {
	return e.agent != nil && e.agent.grabs.OwnerOf(e.Key()) == e.receiver
}

// localized returns a copy addressed to it, with Local in it's space.
func (e *PointerEvent) localized(it *Item) *PointerEvent {
	c := *e
	c.receiver = it
	c.Local, _ = it.MapFromScene(e.Scene)
	return &c
}

// WheelEvent is passed to OnWheel.
type WheelEvent struct {
	eventBase

	Device    DeviceID
	Scene     Vec2
	Local     Vec2
	Delta     Vec2
	Buttons   MouseButtons
	Modifiers KeyModifiers
	Timestamp time.Duration
	Target    *Item
}

func (e *WheelEvent) localized(it *Item) *WheelEvent {
	c := *e
	c.receiver = it
	c.Local, _ = it.MapFromScene(e.Scene)
	return &c
}

// KeyEvent is passed to OnKeyPress and OnKeyRelease. An ignored key event
// travels on to the receiver's parent.
type KeyEvent struct {
	eventBase

	Device    DeviceID
	Key       Key
	Text      string
	Modifiers KeyModifiers
	Repeat    bool
	Timestamp time.Duration
}

// DragEvent is passed to the drag-and-drop hooks of items with AcceptsDrops.
type DragEvent struct {
	eventBase

	Device    DeviceID
	Scene     Vec2
	Local     Vec2
	Mime      map[string][]byte
	Modifiers KeyModifiers
}

// Formats lists the offered data formats, sorted.
func (e *DragEvent) Formats() []string {
	out := make([]string, 0, len(e.Mime))
	for f := range e.Mime {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
