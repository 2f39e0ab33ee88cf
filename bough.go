package bough

import "math"

// Vec2 is a 2D vector used for positions, offsets and deltas throughout the API.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// DeviceKind classifies the physical source of a raw event.
type DeviceKind uint8

const (
	DeviceMouse    DeviceKind = iota // mouse or trackpad
	DeviceTouch                      // touchscreen
	DeviceKeyboard                   // keyboard
	DeviceTablet                     // stylus
)

func (k DeviceKind) String() string {
	switch k {
	case DeviceMouse:
		return "mouse"
	case DeviceTouch:
		return "touch"
	case DeviceKeyboard:
		return "keyboard"
	case DeviceTablet:
		return "tablet"
	}
	return "unknown"
}

// DeviceID identifies one input device instance.
type DeviceID int

// PointID identifies a contact point within a device. Mice use point 0.
type PointID int

// Phase is the lifecycle phase carried by a raw event.
type Phase uint8

const (
	PhasePress     Phase = iota // button or contact went down
	PhaseMove                   // pointer moved (hover when no button is held)
	PhaseRelease                // button or contact went up
	PhaseWheel                  // scroll wheel delta
	PhaseKeyPress               // key down (or auto-repeat)
	PhaseKeyRelease             // key up
	PhaseCancel                 // device-level cancel
	PhaseDragEnter              // external drag entered the surface
	PhaseDragMove               // external drag moved
	PhaseDragLeave              // external drag left the surface
	PhaseDrop                   // external drag dropped
	PhaseLeave                  // pointer left the surface
)

var phaseNames = [...]string{
	"press", "move", "release", "wheel", "keypress", "keyrelease",
	"cancel", "dragenter", "dragmove", "dragleave", "drop", "leave",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonNone   MouseButton = 0
	MouseButtonLeft   MouseButton = 1 << (iota - 1) // primary (left) mouse button
	MouseButtonRight                                // secondary (right) mouse button
	MouseButtonMiddle                               // middle mouse button (scroll wheel click)
)

// MouseButtons is a bitmask of MouseButton values. Used for the set of
// buttons an item accepts and for the buttons held during an event.
type MouseButtons = MouseButton

// AllButtons accepts every mouse button.
const AllButtons = MouseButtonLeft | MouseButtonRight | MouseButtonMiddle

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// EventClass selects which items are eligible targets during hit testing.
type EventClass uint8

const (
	ClassAny   EventClass = iota // purely geometric
	ClassMouse                   // needs the button in AcceptedButtons
	ClassTouch                   // needs AcceptsTouch or the left button
	ClassWheel                   // needs AcceptsWheel
	ClassHover                   // needs AcceptsHover
	ClassDrop                    // needs AcceptsDrops
)

// EventType identifies a kind of dispatched hook, reported to the EntityStore.
type EventType uint8

const (
	EventPress         EventType = iota // OnPress
	EventMove                           // OnMove
	EventRelease                        // OnRelease
	EventDoubleClick                    // OnDoubleClick
	EventCancel                         // OnCancel
	EventUngrab                         // OnUngrab
	EventWheel                          // OnWheel
	EventKeyPress                       // OnKeyPress
	EventKeyRelease                     // OnKeyRelease
	EventHoverEnter                     // OnHoverEnter
	EventHoverMove                      // OnHoverMove
	EventHoverLeave                     // OnHoverLeave
	EventFocusIn                        // OnFocusIn
	EventFocusOut                       // OnFocusOut
	EventDragEnter                      // OnDragEnter
	EventDragMove                       // OnDragMove
	EventDragLeave                      // OnDragLeave
	EventDrop                           // OnDrop
)

var eventTypeNames = [...]string{
	"press", "move", "release", "doubleclick", "cancel", "ungrab", "wheel",
	"keypress", "keyrelease", "hoverenter", "hovermove", "hoverleave",
	"focusin", "focusout", "dragenter", "dragmove", "dragleave", "drop",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}
