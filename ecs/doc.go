// Package ecs provides ECS adapters for bough's delivery agent.
//
// The primary adapter is [NewDonburiStore], which bridges every hook the agent
// dispatches (press, release, hover, focus, drop and the rest) into a
// [Donburi] world as typed events. Subscribe to [InteractionEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	agent.SetEntityStore(store)
//
// Only items with a non-zero EntityID are reported.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
