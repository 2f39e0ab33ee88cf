package bough

// pointerEvent builds the event for target from the delivery. Synthesized
// deliveries look like a left-button mouse to the receiver.
func (a *Agent) pointerEvent(d *delivery, target *Item, typ EventType) *PointerEvent {
	raw := d.raw
	ev := &PointerEvent{
		eventBase: eventBase{typ: typ, receiver: target, agent: a},
		Device:    raw.Device,
		Kind:      raw.Kind,
		Point:     raw.Point,
		Scene:     d.scene,
		Button:    raw.Button,
		Buttons:   raw.Buttons,
		Modifiers: raw.Modifiers,
		Timestamp: raw.Timestamp,
		Target:    target,
	}
	if d.synthesized {
		ev.Kind = DeviceMouse
		ev.Synthesized = true
		ev.Button = MouseButtonLeft
		ev.Buttons = MouseButtonLeft
		if raw.Phase == PhaseRelease {
			ev.Buttons = MouseButtonNone
		}
	}
	return ev
}

func pointerHook(it *Item, typ EventType) func(*PointerEvent) {
	switch typ {
	case EventPress:
		return it.OnPress
	case EventMove:
		return it.OnMove
	case EventRelease:
		return it.OnRelease
	case EventDoubleClick:
		return it.OnDoubleClick
	case EventCancel:
		return it.OnCancel
	}
	return nil
}

// dispatchPointer runs the receiver's hook. An event is accepted unless the
// hook ignores it; an item without the hook ignores it.
func (a *Agent) dispatchPointer(ev *PointerEvent) bool {
	it := ev.receiver
	hook := pointerHook(it, ev.typ)
	if hook == nil {
		return false
	}
	ev.accepted = true
	tracef("%s -> %s", ev.typ, it)
	hook(ev)
	a.emit(ev.typ, it, ev.Scene, ev.Local)
	return ev.accepted
}

// deliverTo offers an event aimed at target to target's filtering ancestors
// and then to target itself. Returns whether it was accepted and by whom.
func (a *Agent) deliverTo(d *delivery, target *Item, typ EventType) (bool, *Item) {
	ev := a.pointerEvent(d, target, typ)
	if claimer := a.filterChain(d, target, func(p *Item) Event { return ev.localized(p) }); claimer != nil {
		return true, claimer
	}
	if !a.alive(target) {
		return false, nil
	}
	d.setState(stateDelivering)
	return a.dispatchPointer(ev.localized(target)), target
}

// deliverPress offers a press to each candidate in turn until one accepts.
// The acceptor gets the implicit grab unless something already grabbed the
// point during delivery.
func (a *Agent) deliverPress(d *delivery, targets []*Item) (bool, *Item) {
	key := GrabKey{Device: d.raw.Device, Point: d.raw.Point}
	for _, t := range targets {
		if !a.alive(t) {
			continue
		}
		ok, recv := a.deliverTo(d, t, EventPress)
		if !ok {
			continue
		}
		a.implicitGrab(key, recv)
		return true, recv
	}
	return false, nil
}

func (a *Agent) implicitGrab(key GrabKey, recv *Item) {
	if a.grabs.OwnerOf(key) != nil || !a.alive(recv) {
		return
	}
	if !recv.effectiveEnabled || !recv.effectiveVisible {
		return
	}
	a.grabs.Grab(key, recv)
}

func (a *Agent) deliverMouse(d *delivery) bool {
	raw := d.raw
	key := GrabKey{Device: raw.Device, Point: raw.Point}
	switch raw.Phase {
	case PhasePress:
		double := a.mouseClicks.press(raw.Device, raw.Button, d.scene, raw.Timestamp,
			a.settings.DoubleClickInterval(), a.settings.DoubleClickDistance)
		a.updateHover(d)
		if owner := a.grabs.OwnerOf(key); owner != nil {
			ok, _ := a.deliverTo(d, owner, EventPress)
			return ok
		}
		targets := a.pointerTargets(d.scene, hitCriteria{class: ClassMouse, button: raw.Button})
		ok, recv := a.deliverPress(d, targets)
		if ok && double && a.alive(recv) {
			a.dispatchPointer(a.pointerEvent(d, recv, EventDoubleClick).localized(recv))
		}
		return ok

	case PhaseMove:
		a.mouseClicks.moved(raw.Device, d.scene, a.settings.DoubleClickDistance)
		if owner := a.grabs.OwnerOf(key); owner != nil {
			ok, _ := a.deliverTo(d, owner, EventMove)
			return ok
		}
		a.updateHover(d)
		return len(a.hover.chain) > 0

	case PhaseRelease:
		var ok bool
		if owner := a.grabs.OwnerOf(key); owner != nil {
			ok, _ = a.deliverTo(d, owner, EventRelease)
		}
		if raw.Buttons == MouseButtonNone {
			a.grabs.release(key)
		}
		a.updateHover(d)
		return ok
	}
	return false
}

// updateHover moves the hover chain to the delivery's point. Hover follows
// mouse and tablet pointers only while none of the device's points is
// grabbed.
func (a *Agent) updateHover(d *delivery) {
	if d.raw.Kind != DeviceMouse && d.raw.Kind != DeviceTablet {
		return
	}
	if a.grabs.HoldsDevice(d.raw.Device) {
		return
	}
	prev := d.scene
	if a.hoverValid && a.hoverDevice == d.raw.Device {
		prev = a.hoverPoint
	}
	a.hoverDevice = d.raw.Device
	a.hoverPoint = d.scene
	a.hoverValid = true
	a.hover.Modifiers = d.raw.Modifiers
	a.hover.Update(d.scene, prev)
}

// deliverWheel offers a wheel event to each wheel-accepting item under the
// point until one accepts.
func (a *Agent) deliverWheel(d *delivery) bool {
	raw := d.raw
	targets := a.pointerTargets(d.scene, hitCriteria{class: ClassWheel})
	for _, t := range targets {
		if !a.alive(t) {
			continue
		}
		ev := &WheelEvent{
			eventBase: eventBase{typ: EventWheel, receiver: t, agent: a},
			Device:    raw.Device,
			Scene:     d.scene,
			Delta:     raw.Delta,
			Buttons:   raw.Buttons,
			Modifiers: raw.Modifiers,
			Timestamp: raw.Timestamp,
			Target:    t,
		}
		if a.filterChain(d, t, func(p *Item) Event { return ev.localized(p) }) != nil {
			return true
		}
		if !a.alive(t) || t.OnWheel == nil {
			continue
		}
		d.setState(stateDelivering)
		lev := ev.localized(t)
		lev.accepted = true
		t.OnWheel(lev)
		a.emit(EventWheel, t, lev.Scene, lev.Local)
		if lev.accepted {
			return true
		}
	}
	return false
}
