package bough

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// injectFrame is the timestamp advance per injected event.
const injectFrame = 16 * time.Millisecond

// InjectDevice is the device id used by injected pointer and key events.
const InjectDevice DeviceID = 0

// InjectPress queues a left-button press at the given surface coordinates.
// Injected events are consumed one per Step call.
func (a *Agent) InjectPress(x, y float64) {
	a.Inject(RawEvent{
		Kind:     DeviceMouse,
		Phase:    PhasePress,
		Position: Vec2{x, y},
		Button:   MouseButtonLeft,
		Buttons:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the left button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (a *Agent) InjectMove(x, y float64) {
	a.Inject(RawEvent{
		Kind:     DeviceMouse,
		Phase:    PhaseMove,
		Position: Vec2{x, y},
		Buttons:  MouseButtonLeft,
	})
}

// InjectHover queues a pointer move with no button held.
func (a *Agent) InjectHover(x, y float64) {
	a.Inject(RawEvent{Kind: DeviceMouse, Phase: PhaseMove, Position: Vec2{x, y}})
}

// InjectRelease queues a left-button release at the given surface coordinates.
func (a *Agent) InjectRelease(x, y float64) {
	a.Inject(RawEvent{
		Kind:     DeviceMouse,
		Phase:    PhaseRelease,
		Position: Vec2{x, y},
		Button:   MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two steps.
func (a *Agent) InjectClick(x, y float64) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// intermediate moves along the path shaped by easeFn, and release at
// (toX, toY). A nil easeFn moves linearly. Minimum frames is 2.
func (a *Agent) InjectDrag(fromX, fromY, toX, toY float64, frames int, easeFn ease.TweenFunc) {
	if frames < 2 {
		frames = 2
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	a.InjectPress(fromX, fromY)
	steps := frames - 2
	tx := gween.New(float32(fromX), float32(toX), float32(steps+1), easeFn)
	ty := gween.New(float32(fromY), float32(toY), float32(steps+1), easeFn)
	for i := 0; i < steps; i++ {
		x, _ := tx.Update(1)
		y, _ := ty.Update(1)
		a.InjectMove(float64(x), float64(y))
	}
	a.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at the given surface coordinates.
func (a *Agent) InjectWheel(x, y, dx, dy float64) {
	a.Inject(RawEvent{Kind: DeviceMouse, Phase: PhaseWheel, Position: Vec2{x, y}, Delta: Vec2{dx, dy}})
}

// InjectKey queues a key press followed by its release.
func (a *Agent) InjectKey(key Key, text string, mods KeyModifiers) {
	a.Inject(RawEvent{Kind: DeviceKeyboard, Phase: PhaseKeyPress, Key: key, Text: text, Modifiers: mods})
	a.Inject(RawEvent{Kind: DeviceKeyboard, Phase: PhaseKeyRelease, Key: key, Modifiers: mods})
}

// Inject queues an arbitrary raw event. Its Timestamp is assigned when it is
// consumed.
func (a *Agent) Inject(ev RawEvent) {
	a.injectQueue = append(a.injectQueue, ev)
}

// Pending returns the number of queued injected events.
func (a *Agent) Pending() int {
	return len(a.injectQueue)
}

// Step pops one injected event, stamps it with the injection clock and
// delivers it. Returns false when the queue was empty.
func (a *Agent) Step() bool {
	if len(a.injectQueue) == 0 {
		return false
	}
	ev := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	a.injectClock += injectFrame
	ev.Timestamp = a.injectClock
	a.Deliver(ev)
	return true
}

// Wait advances the injection clock without delivering anything, so that a
// following press no longer completes a double click.
func (a *Agent) Wait(d time.Duration) {
	a.injectClock += d
}
