package ecs

import (
	"github.com/phanxgames/bough"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for bough interaction events.
var InteractionEventType = events.NewEventType[bough.InteractionEvent]()

type donburiStore struct {
	world donburi.World
	only  map[bough.EventType]bool
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents. When types are given,
// only those event types are published.
func NewDonburiStore(world donburi.World, types ...bough.EventType) bough.EntityStore {
	s := &donburiStore{world: world}
	if len(types) > 0 {
		s.only = make(map[bough.EventType]bool, len(types))
		for _, t := range types {
			s.only[t] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(event bough.InteractionEvent) {
	if s.only != nil && !s.only[event.Type] {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
