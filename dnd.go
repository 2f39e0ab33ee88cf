package bough

// dropState is the item currently under an external drag.
type dropState struct {
	target *Item
	device DeviceID
}

func (a *Agent) dragEvent(d *delivery, it *Item, typ EventType) *DragEvent {
	local, _ := it.MapFromScene(d.scene)
	return &DragEvent{
		eventBase: eventBase{typ: typ, receiver: it, accepted: true, agent: a},
		Device:    d.raw.Device,
		Scene:     d.scene,
		Local:     local,
		Mime:      d.raw.Mime,
		Modifiers: d.raw.Modifiers,
	}
}

func dragHook(it *Item, typ EventType) func(*DragEvent) {
	switch typ {
	case EventDragEnter:
		return it.OnDragEnter
	case EventDragMove:
		return it.OnDragMove
	case EventDragLeave:
		return it.OnDragLeave
	case EventDrop:
		return it.OnDrop
	}
	return nil
}

// dispatchDrag runs the drag hook. A missing hook refuses the drag.
func (a *Agent) dispatchDrag(ev *DragEvent) bool {
	it := ev.receiver
	hook := dragHook(it, ev.typ)
	if hook == nil {
		return false
	}
	tracef("%s -> %s", ev.typ, it)
	hook(ev)
	a.emit(ev.typ, it, ev.Scene, ev.Local)
	return ev.accepted
}

func (a *Agent) deliverDrag(d *delivery) bool {
	switch d.raw.Phase {
	case PhaseDragEnter, PhaseDragMove:
		return a.dragOver(d)
	case PhaseDragLeave:
		a.dragLeave(d)
		return true
	case PhaseDrop:
		return a.dragDrop(d)
	}
	return false
}

// dragOver finds the drop target under the point. A new target gets enter
// first and the previous one leave afterwards; the current target gets move.
// A target that refuses enter is skipped in favour of the next candidate.
func (a *Agent) dragOver(d *delivery) bool {
	d.setState(stateDelivering)
	prev := a.drop.target
	for _, t := range a.pointerTargets(d.scene, hitCriteria{class: ClassDrop}) {
		if !a.alive(t) {
			continue
		}
		if t == prev {
			if a.dispatchDrag(a.dragEvent(d, t, EventDragMove)) {
				return true
			}
			continue
		}
		if !a.dispatchDrag(a.dragEvent(d, t, EventDragEnter)) {
			continue
		}
		a.drop = dropState{target: t, device: d.raw.Device}
		if prev != nil && a.alive(prev) {
			a.dispatchDrag(a.dragEvent(d, prev, EventDragLeave))
		}
		return true
	}
	a.drop = dropState{}
	if prev != nil && a.alive(prev) {
		a.dispatchDrag(a.dragEvent(d, prev, EventDragLeave))
	}
	return false
}

// dragLeave sends leave to the current drop target. d is nil when the agent
// itself withdraws the drag.
func (a *Agent) dragLeave(d *delivery) {
	prev := a.drop
	a.drop = dropState{}
	if prev.target == nil || !a.alive(prev.target) {
		return
	}
	if d == nil {
		d = &delivery{raw: RawEvent{Device: prev.device, Phase: PhaseDragLeave}}
	}
	a.dispatchDrag(a.dragEvent(d, prev.target, EventDragLeave))
}

// dragDrop delivers the drop to the current target, re-resolving the target
// first when the pointer moved without a drag move.
func (a *Agent) dragDrop(d *delivery) bool {
	if t := a.drop.target; t == nil || !a.alive(t) || !a.containsScene(t, d.scene) {
		if !a.dragOver(d) {
			return false
		}
	}
	t := a.drop.target
	a.drop = dropState{}
	d.setState(stateDelivering)
	return a.dispatchDrag(a.dragEvent(d, t, EventDrop))
}

func (a *Agent) containsScene(it *Item, p Vec2) bool {
	local, ok := it.MapFromScene(p)
	return ok && it.Contains(local)
}
