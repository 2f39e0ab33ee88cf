package bough

import "time"

// clickTracker recognises the second press of a double click or double tap.
type clickTracker struct {
	valid  bool
	device DeviceID
	button MouseButton
	pos    Vec2
	at     time.Duration
}

// press records a press and reports whether it completes a double click:
// same device and button, within interval and within distance of the
// previous press. A completed double click is consumed, so a third press
// starts over.
func (c *clickTracker) press(dev DeviceID, btn MouseButton, pos Vec2, at, interval time.Duration, distance float64) bool {
	double := c.valid && c.device == dev && c.button == btn &&
		at >= c.at && at-c.at <= interval &&
		pos.Sub(c.pos).Len() <= distance
	if double {
		*c = clickTracker{}
		return true
	}
	*c = clickTracker{valid: true, device: dev, button: btn, pos: pos, at: at}
	return false
}

// moved forgets the pending press when the device strays too far from it.
func (c *clickTracker) moved(dev DeviceID, pos Vec2, distance float64) {
	if c.valid && c.device == dev && pos.Sub(c.pos).Len() > distance {
		c.valid = false
	}
}

func (c *clickTracker) reset(dev DeviceID) {
	if c.device == dev {
		*c = clickTracker{}
	}
}

// touchMouseState tracks the touch point currently standing in for a mouse.
// Only one point at a time is synthesized.
type touchMouseState struct {
	active bool
	key    GrabKey
	taps   clickTracker
}

func (s *touchMouseState) owns(key GrabKey) bool {
	return s.active && s.key == key
}

// deliverTouch routes one touch point. Touch-aware items receive it as-is;
// for other items the first touch point is delivered as a left-button mouse.
func (a *Agent) deliverTouch(d *delivery) bool {
	raw := d.raw
	key := GrabKey{Device: raw.Device, Point: raw.Point}
	switch raw.Phase {
	case PhasePress:
		if owner := a.grabs.OwnerOf(key); owner != nil {
			d.synthesized = a.touch.owns(key) && !owner.AcceptsTouch
			ok, _ := a.deliverTo(d, owner, EventPress)
			return ok
		}
		canSynth := a.settings.SynthesizeMouseFromTouch && !a.touch.active
		for _, t := range a.pointerTargets(d.scene, hitCriteria{class: ClassTouch}) {
			if !a.alive(t) {
				continue
			}
			synth := !t.AcceptsTouch
			if synth && !canSynth {
				continue
			}
			d.synthesized = synth
			ok, recv := a.deliverTo(d, t, EventPress)
			if !ok {
				continue
			}
			a.implicitGrab(key, recv)
			if synth {
				a.touch.active = true
				a.touch.key = key
				a.synthesizeDoubleTap(d, key, recv)
			}
			return true
		}
		d.synthesized = false
		return false

	case PhaseMove:
		if a.touch.owns(key) {
			a.touch.taps.moved(raw.Device, d.scene, a.settings.TouchDoubleTapDistance)
		}
		owner := a.grabs.OwnerOf(key)
		if owner == nil {
			return false
		}
		d.synthesized = a.touch.owns(key) && !owner.AcceptsTouch
		ok, _ := a.deliverTo(d, owner, EventMove)
		return ok

	case PhaseRelease:
		var ok bool
		if owner := a.grabs.OwnerOf(key); owner != nil {
			d.synthesized = a.touch.owns(key) && !owner.AcceptsTouch
			ok, _ = a.deliverTo(d, owner, EventRelease)
		}
		a.grabs.release(key)
		if a.touch.owns(key) {
			a.touch.active = false
		}
		return ok
	}
	return false
}

// synthesizeDoubleTap records an accepted synthesized tap and, when it
// completes a double tap, sends recv a double click. A double click its hook
// ignores ends synthesis for the point, and recv loses the point silently.
func (a *Agent) synthesizeDoubleTap(d *delivery, key GrabKey, recv *Item) {
	raw := d.raw
	double := a.touch.taps.press(raw.Device, MouseButtonLeft, d.scene, raw.Timestamp,
		a.settings.DoubleClickInterval(), a.settings.TouchDoubleTapDistance)
	if !double || !a.alive(recv) || pointerHook(recv, EventDoubleClick) == nil {
		return
	}
	if a.dispatchPointer(a.pointerEvent(d, recv, EventDoubleClick).localized(recv)) {
		return
	}
	tracef("double tap refused by %s, synthesis cancelled", recv)
	a.touch.active = false
	if a.grabs.OwnerOf(key) == recv {
		a.grabs.release(key)
	}
}
