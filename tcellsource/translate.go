// Package tcellsource turns tcell terminal events into bough raw events.
//
// Terminals report mouse state as a button mask per event; the Translator
// remembers the previous mask and emits press and release transitions.
// Terminals do not report key releases, so every key press is followed by
// its release.
package tcellsource

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/bough"
)

// Translator converts tcell events for one terminal surface.
type Translator struct {
	MouseDevice    bough.DeviceID
	KeyboardDevice bough.DeviceID

	// CellWidth and CellHeight scale cell coordinates to surface units.
	// Zero means 1.
	CellWidth, CellHeight float64

	buttons tcell.ButtonMask
	pos     bough.Vec2
	moved   bool
	epoch   time.Time
}

// NewTranslator returns a translator with one surface unit per cell.
func NewTranslator() *Translator {
	return &Translator{MouseDevice: 0, KeyboardDevice: 1, CellWidth: 1, CellHeight: 1}
}

const buttonBits = tcell.Button1 | tcell.Button2 | tcell.Button3

var buttonMap = [...]struct {
	tc tcell.ButtonMask
	b  bough.MouseButton
}{
	{tcell.Button1, bough.MouseButtonLeft},
	{tcell.Button2, bough.MouseButtonRight},
	{tcell.Button3, bough.MouseButtonMiddle},
}

// Feed translates ev and delivers the result to agent. Focus events toggle
// the agent's surface activity. Returns whether any delivered event was
// accepted.
func (t *Translator) Feed(agent *bough.Agent, ev tcell.Event) bool {
	if f, ok := ev.(*tcell.EventFocus); ok {
		agent.SetSurfaceActive(f.Focused)
		return true
	}
	var accepted bool
	for _, raw := range t.Translate(ev) {
		if agent.Deliver(raw) {
			accepted = true
		}
	}
	return accepted
}

// Translate converts one tcell event. Unsupported events yield nothing.
func (t *Translator) Translate(ev tcell.Event) []bough.RawEvent {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return t.mouse(e)
	case *tcell.EventKey:
		return t.key(e)
	}
	return nil
}

func (t *Translator) timestamp(when time.Time) time.Duration {
	if t.epoch.IsZero() {
		t.epoch = when
	}
	return when.Sub(t.epoch)
}

func (t *Translator) scale() (float64, float64) {
	cw, ch := t.CellWidth, t.CellHeight
	if cw == 0 {
		cw = 1
	}
	if ch == 0 {
		ch = 1
	}
	return cw, ch
}

func (t *Translator) mouse(ev *tcell.EventMouse) []bough.RawEvent {
	x, y := ev.Position()
	cw, ch := t.scale()
	pos := bough.Vec2{X: float64(x) * cw, Y: float64(y) * ch}
	mask := ev.Buttons()
	base := bough.RawEvent{
		Device:    t.MouseDevice,
		Kind:      bough.DeviceMouse,
		Position:  pos,
		Modifiers: modifiers(ev.Modifiers()),
		Timestamp: t.timestamp(ev.When()),
	}

	var out []bough.RawEvent
	if dx, dy := wheelDelta(mask); dx != 0 || dy != 0 {
		// Wheel reports often omit held buttons; keep the previous mask.
		w := base
		w.Phase = bough.PhaseWheel
		w.Delta = bough.Vec2{X: dx, Y: dy}
		w.Buttons = toButtons(t.buttons)
		t.pos, t.moved = pos, true
		return append(out, w)
	}

	held := mask & buttonBits
	prev := t.buttons
	if !t.moved || pos != t.pos {
		m := base
		m.Phase = bough.PhaseMove
		m.Buttons = toButtons(prev)
		out = append(out, m)
	}
	t.pos, t.moved = pos, true

	cur := prev
	for _, bm := range buttonMap {
		if prev&bm.tc != 0 && held&bm.tc == 0 {
			cur &^= bm.tc
			r := base
			r.Phase = bough.PhaseRelease
			r.Button = bm.b
			r.Buttons = toButtons(cur)
			out = append(out, r)
		}
	}
	for _, bm := range buttonMap {
		if prev&bm.tc == 0 && held&bm.tc != 0 {
			cur |= bm.tc
			p := base
			p.Phase = bough.PhasePress
			p.Button = bm.b
			p.Buttons = toButtons(cur)
			out = append(out, p)
		}
	}
	t.buttons = held
	return out
}

func wheelDelta(mask tcell.ButtonMask) (float64, float64) {
	var dx, dy float64
	if mask&tcell.WheelUp != 0 {
		dy--
	}
	if mask&tcell.WheelDown != 0 {
		dy++
	}
	if mask&tcell.WheelLeft != 0 {
		dx--
	}
	if mask&tcell.WheelRight != 0 {
		dx++
	}
	return dx, dy
}

func toButtons(mask tcell.ButtonMask) bough.MouseButtons {
	var b bough.MouseButtons
	for _, bm := range buttonMap {
		if mask&bm.tc != 0 {
			b |= bm.b
		}
	}
	return b
}

func modifiers(m tcell.ModMask) bough.KeyModifiers {
	var mods bough.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= bough.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= bough.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= bough.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= bough.ModMeta
	}
	return mods
}

var keyNames = map[tcell.Key]bough.Key{
	tcell.KeyEnter:      bough.KeyEnter,
	tcell.KeyTab:        bough.KeyTab,
	tcell.KeyEsc:        bough.KeyEscape,
	tcell.KeyBackspace:  bough.KeyBackspace,
	tcell.KeyBackspace2: bough.KeyBackspace,
	tcell.KeyUp:         bough.KeyUp,
	tcell.KeyDown:       bough.KeyDown,
	tcell.KeyLeft:       bough.KeyLeft,
	tcell.KeyRight:      bough.KeyRight,
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
}

func (t *Translator) key(ev *tcell.EventKey) []bough.RawEvent {
	mods := modifiers(ev.Modifiers())
	var name bough.Key
	var text string
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		text = string(r)
		if r == ' ' {
			name = bough.KeySpace
		} else {
			name = bough.Key(strings.ToUpper(text))
		}
	case k == tcell.KeyBacktab:
		name = bough.KeyTab
		mods |= bough.ModShift
	default:
		var ok bool
		if name, ok = keyNames[k]; !ok {
			name = bough.Key(ev.Name())
		}
	}
	ts := t.timestamp(ev.When())
	press := bough.RawEvent{
		Device:    t.KeyboardDevice,
		Kind:      bough.DeviceKeyboard,
		Phase:     bough.PhaseKeyPress,
		Key:       name,
		Text:      text,
		Modifiers: mods,
		Timestamp: ts,
	}
	release := press
	release.Phase = bough.PhaseKeyRelease
	release.Text = ""
	return []bough.RawEvent{press, release}
}
