package bough

// EntityStore is the interface for optional ECS integration.
// When set on an Agent, every dispatched hook is forwarded as an
// InteractionEvent.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries delivery data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	ItemID   uint32
	EntityID uint32
	Name     string

	SceneX float64
	SceneY float64
	LocalX float64
	LocalY float64

	Device      DeviceID
	Point       PointID
	Button      MouseButton
	Modifiers   KeyModifiers
	Synthesized bool

	// Key fields (valid for EventKeyPress, EventKeyRelease)
	Key  Key
	Text string

	// Wheel fields (valid for EventWheel)
	DeltaX float64
	DeltaY float64
}

// SetEntityStore sets the optional ECS store that receives interaction events.
func (a *Agent) SetEntityStore(store EntityStore) {
	a.store = store
}

// emit forwards a dispatched hook to the store. Items with no EntityID are
// not reported.
func (a *Agent) emit(t EventType, it *Item, scene, local Vec2) {
	if a.store == nil || it == nil || it.EntityID == 0 {
		return
	}
	ev := InteractionEvent{
		Type:     t,
		ItemID:   it.ID,
		EntityID: it.EntityID,
		Name:     it.Name,
		SceneX:   scene.X,
		SceneY:   scene.Y,
		LocalX:   local.X,
		LocalY:   local.Y,
	}
	if d := a.current; d != nil {
		ev.Device = d.raw.Device
		ev.Point = d.raw.Point
		ev.Button = d.raw.Button
		ev.Modifiers = d.raw.Modifiers
		ev.Synthesized = d.synthesized
		ev.Key = d.raw.Key
		ev.Text = d.raw.Text
		ev.DeltaX = d.raw.Delta.X
		ev.DeltaY = d.raw.Delta.Y
	}
	a.store.EmitEvent(ev)
}
