package bough

// deliverKey sends a key event to the active focus item. While the event is
// ignored it travels on to each ancestor in turn.
func (a *Agent) deliverKey(d *delivery) bool {
	raw := d.raw
	typ := EventKeyPress
	if raw.Phase == PhaseKeyRelease {
		typ = EventKeyRelease
	}
	for it := a.focus.ActiveFocusItem(); it != nil; it = it.parent {
		if !a.alive(it) || !it.effectiveEnabled {
			return false
		}
		hook := it.OnKeyPress
		if typ == EventKeyRelease {
			hook = it.OnKeyRelease
		}
		if hook == nil {
			continue
		}
		d.setState(stateDelivering)
		ev := &KeyEvent{
			eventBase: eventBase{typ: typ, receiver: it, accepted: true, agent: a},
			Device:    raw.Device,
			Key:       raw.Key,
			Text:      raw.Text,
			Modifiers: raw.Modifiers,
			Repeat:    raw.Repeat,
			Timestamp: raw.Timestamp,
		}
		tracef("%s %q -> %s", typ, raw.Key, it)
		hook(ev)
		a.emit(typ, it, Vec2{}, Vec2{})
		if ev.accepted {
			return true
		}
	}
	return false
}
