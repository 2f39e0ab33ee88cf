// Package ebitensource feeds Ebitengine input into a bough delivery agent
// and hosts a minimal window that draws the agent's published snapshot.
package ebitensource

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/bough"
)

// Device ids assigned to the polled devices.
const (
	MouseDevice    bough.DeviceID = 0
	TouchDevice    bough.DeviceID = 1
	KeyboardDevice bough.DeviceID = 2
)

var polledButtons = [...]struct {
	eb ebiten.MouseButton
	b  bough.MouseButton
}{
	{ebiten.MouseButtonLeft, bough.MouseButtonLeft},
	{ebiten.MouseButtonRight, bough.MouseButtonRight},
	{ebiten.MouseButtonMiddle, bough.MouseButtonMiddle},
}

// Source polls Ebitengine once per tick and delivers the changes as raw
// events. Call Poll from ebiten.Game.Update.
type Source struct {
	agent *bough.Agent
	start time.Time

	// Width and Height are the surface size; a cursor outside it counts as
	// having left the surface. Zero disables leave detection.
	Width, Height int

	cursor      bough.Vec2
	cursorValid bool
	inside      bool
	buttons     bough.MouseButtons
	focused     bool

	touches map[ebiten.TouchID]bough.Vec2
	ids     []ebiten.TouchID
	keys    []ebiten.Key
	chars   []rune
}

// New creates a source delivering into agent.
func New(agent *bough.Agent) *Source {
	return &Source{
		agent:   agent,
		start:   time.Now(),
		focused: true,
		touches: make(map[ebiten.TouchID]bough.Vec2),
	}
}

func (s *Source) now() time.Duration {
	return time.Since(s.start)
}

// Poll reads the current input state and delivers every change since the
// previous call.
func (s *Source) Poll() {
	mods := readModifiers()
	if f := ebiten.IsFocused(); f != s.focused {
		s.focused = f
		s.agent.SetSurfaceActive(f)
	}
	s.pollMouse(mods)
	s.pollTouches(mods)
	s.pollKeys(mods)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() bough.KeyModifiers {
	var mods bough.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= bough.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= bough.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= bough.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= bough.ModMeta
	}
	return mods
}

func (s *Source) pollMouse(mods bough.KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	pos := bough.Vec2{X: float64(mx), Y: float64(my)}
	base := bough.RawEvent{Device: MouseDevice, Kind: bough.DeviceMouse, Position: pos, Modifiers: mods, Timestamp: s.now()}

	inside := s.Width == 0 || (mx >= 0 && my >= 0 && mx < s.Width && my < s.Height)
	if !inside && s.inside && s.buttons == bough.MouseButtonNone {
		ev := base
		ev.Phase = bough.PhaseLeave
		s.agent.Deliver(ev)
	}
	s.inside = inside

	if (!s.cursorValid || pos != s.cursor) && (inside || s.buttons != bough.MouseButtonNone) {
		ev := base
		ev.Phase = bough.PhaseMove
		ev.Buttons = s.buttons
		s.agent.Deliver(ev)
	}
	s.cursor, s.cursorValid = pos, true

	for _, pb := range polledButtons {
		switch {
		case inpututil.IsMouseButtonJustPressed(pb.eb):
			s.buttons |= pb.b
			ev := base
			ev.Phase = bough.PhasePress
			ev.Button = pb.b
			ev.Buttons = s.buttons
			s.agent.Deliver(ev)
		case inpututil.IsMouseButtonJustReleased(pb.eb):
			s.buttons &^= pb.b
			ev := base
			ev.Phase = bough.PhaseRelease
			ev.Button = pb.b
			ev.Buttons = s.buttons
			s.agent.Deliver(ev)
		}
	}

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		ev := base
		ev.Phase = bough.PhaseWheel
		ev.Delta = bough.Vec2{X: dx, Y: dy}
		ev.Buttons = s.buttons
		s.agent.Deliver(ev)
	}
}

func (s *Source) pollTouches(mods bough.KeyModifiers) {
	touch := func(tid ebiten.TouchID, phase bough.Phase, pos bough.Vec2) {
		s.agent.Deliver(bough.RawEvent{
			Device:    TouchDevice,
			Kind:      bough.DeviceTouch,
			Point:     bough.PointID(tid),
			Phase:     phase,
			Position:  pos,
			Modifiers: mods,
			Timestamp: s.now(),
		})
	}

	s.ids = inpututil.AppendJustReleasedTouchIDs(s.ids[:0])
	for _, tid := range s.ids {
		x, y := inpututil.TouchPositionInPreviousTick(tid)
		delete(s.touches, tid)
		touch(tid, bough.PhaseRelease, bough.Vec2{X: float64(x), Y: float64(y)})
	}

	s.ids = ebiten.AppendTouchIDs(s.ids[:0])
	for _, tid := range s.ids {
		x, y := ebiten.TouchPosition(tid)
		pos := bough.Vec2{X: float64(x), Y: float64(y)}
		prev, known := s.touches[tid]
		s.touches[tid] = pos
		switch {
		case !known:
			touch(tid, bough.PhasePress, pos)
		case prev != pos:
			touch(tid, bough.PhaseMove, pos)
		}
	}
}

func (s *Source) pollKeys(mods bough.KeyModifiers) {
	s.chars = ebiten.AppendInputChars(s.chars[:0])
	text := string(s.chars)

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for i, k := range s.keys {
		ev := bough.RawEvent{
			Device:    KeyboardDevice,
			Kind:      bough.DeviceKeyboard,
			Phase:     bough.PhaseKeyPress,
			Key:       KeyName(k),
			Modifiers: mods,
			Timestamp: s.now(),
		}
		if i == len(s.keys)-1 {
			ev.Text = text
			text = ""
		}
		s.agent.Deliver(ev)
	}
	if text != "" {
		// Composed input without a key of its own.
		s.agent.Deliver(bough.RawEvent{
			Device:    KeyboardDevice,
			Kind:      bough.DeviceKeyboard,
			Phase:     bough.PhaseKeyPress,
			Text:      text,
			Modifiers: mods,
			Timestamp: s.now(),
		})
	}

	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.agent.Deliver(bough.RawEvent{
			Device:    KeyboardDevice,
			Kind:      bough.DeviceKeyboard,
			Phase:     bough.PhaseKeyRelease,
			Key:       KeyName(k),
			Modifiers: mods,
			Timestamp: s.now(),
		})
	}
}

// KeyName returns the bough key name for an Ebitengine key, e.g. "A",
// "Enter" or "ArrowLeft".
func KeyName(k ebiten.Key) bough.Key {
	return bough.Key(k.String())
}
