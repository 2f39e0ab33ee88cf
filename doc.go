// Package bough is the input-delivery core of a retained 2D scene.
//
// Bough keeps a tree of [Item]s and routes raw pointer, touch, wheel, key and
// drag-and-drop events to them: hit testing in paint order, exclusive grabs
// per contact point, hover enter/leave tracking, hierarchical keyboard focus
// with focus scopes, and ancestor filtering so a scrolling container can take
// over a gesture from a button inside it.
//
// # Quick start
//
// Build a tree, create an [Agent] for its root and feed it events from an
// input source (see the ebitensource and tcellsource packages):
//
//	root := bough.NewItem("root", 640, 480)
//	button := bough.NewItem("ok", 80, 30)
//	button.AcceptedButtons = bough.MouseButtonLeft
//	button.OnPress = func(ev *bough.PointerEvent) { log.Println("pressed", ev.Local) }
//	root.AddChild(button)
//
//	agent := bough.NewAgent(root, bough.DefaultSettings())
//	agent.Deliver(bough.RawEvent{
//		Kind:     bough.DeviceMouse,
//		Phase:    bough.PhasePress,
//		Position: bough.Vec2{X: 10, Y: 10},
//		Button:   bough.MouseButtonLeft,
//		Buttons:  bough.MouseButtonLeft,
//	})
//
// # Items
//
// Every element is an [Item]. Children are positioned in their parent's
// space and painted in ascending z order, ties in insertion order. Behaviour
// is attached through capability flags ([Item.AcceptedButtons],
// [Item.AcceptsHover], [Item.AcceptsTouch], [Item.AcceptsWheel],
// [Item.AcceptsDrops], [Item.FiltersChildEvents]) and hook fields. A nil hook
// means the item does not handle that event; a hook accepts unless it calls
// Ignore.
//
// # Delivery
//
// A press goes to the topmost eligible item under the point; if it is
// ignored the next lower item is tried. The item that accepts a press grabs
// the point and receives every move and the release, wherever the pointer
// goes, until release, an explicit ungrab, a steal or a cancel.
//
// Items with FiltersChildEvents see pointer and wheel events bound for their
// descendants first. Returning true from [Item.FilterChildEvent] claims the
// event; calling [PointerEvent.Grab] from the filter steals the point, and
// the previous owner gets [Item.OnUngrab].
//
// Touch points go to items with AcceptsTouch. For other items the first
// touch point is delivered as a synthesized left-button mouse.
//
// # Focus
//
// Focus is hierarchical: each focus scope remembers one focused item, and the
// active focus item (the one that receives keys) is found by descending from
// the root through focused scopes. Key events bubble to parents while
// ignored.
//
// # Tooling
//
// [LoadSettings] and [LoadScene] read TOML, [LoadScript] reads JSON input
// scripts that drive an agent through its inject queue (drag paths eased via
// [gween]), and [Agent.SetEntityStore] forwards every dispatched hook to an
// ECS (see the ecs package, built on [Donburi]). The boughreplay command
// replays a script against a scene file and prints what each item received.
//
// Misuse, such as adding an item under its own descendant or ungrabbing a
// point the item does not own, is logged as a warning through the package
// logger ([SetLogger]) and otherwise ignored. [SetDebugMode] traces every
// delivery step.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bough
