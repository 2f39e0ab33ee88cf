package bough

import (
	"math"
	"sync/atomic"
	"time"
)

// deliveryState is the lifecycle of one raw event inside Deliver.
type deliveryState uint8

const (
	stateIdle deliveryState = iota
	stateAwaitingFilter
	stateDelivering
	stateResolved
)

func (s deliveryState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAwaitingFilter:
		return "filter"
	case stateDelivering:
		return "delivering"
	case stateResolved:
		return "resolved"
	}
	return "unknown"
}

// delivery is the in-flight state of one raw event.
type delivery struct {
	raw         RawEvent
	scene       Vec2
	state       deliveryState
	synthesized bool
	// filtered holds ancestors already offered this event; each filtering
	// ancestor sees an event at most once.
	filtered map[*Item]struct{}
}

func (d *delivery) setState(s deliveryState) {
	if d.state == s {
		return
	}
	tracef("%s %s: %s -> %s", d.raw.Kind, d.raw.Phase, d.state, s)
	d.state = s
}

// Agent routes raw input events into the item tree under its root. It owns
// the grab table, the hover tracker and the focus manager of one surface.
// All methods must be called from the delivery goroutine except Snapshot.
type Agent struct {
	root     *Item
	settings Settings
	grabs    *GrabTable
	hover    *HoverTracker
	focus    *FocusManager

	// Viewport maps raw event positions to scene coordinates.
	Viewport Viewport

	// OnActiveFocusItemChanged is told about every new active focus item,
	// for accessibility and input-method collaborators.
	OnActiveFocusItemChanged func(*Item)

	store EntityStore

	hoverDevice DeviceID
	hoverPoint  Vec2
	hoverValid  bool

	mouseClicks clickTracker
	touch       touchMouseState
	drop        dropState

	current *delivery
	depth   int
	closed  bool

	injectQueue []RawEvent
	injectClock time.Duration

	snapshot atomic.Pointer[Snapshot]
	version  uint64
}

// NewAgent creates the delivery agent for the tree under root. root becomes a
// focus scope and initially holds active focus. Zero settings fields take
// their defaults.
func NewAgent(root *Item, settings Settings) *Agent {
	if root.parent != nil {
		warnf("agent root %s has a parent; it is detached", root)
		root.RemoveFromParent()
	}
	if root.agent != nil {
		warnf("%s already has an agent; closing it", root)
		root.agent.Close()
	}
	a := &Agent{
		root:     root,
		settings: settings.withDefaults(),
		Viewport: NewViewport(),
	}
	a.grabs = NewGrabTable(a.deliverUngrab)
	a.hover = NewHoverTracker(root)
	a.hover.maxDepth = a.settings.MaxTreeDepth
	a.hover.emit = a.emit
	a.focus = newFocusManager(a, root)
	root.agent = a
	commitFocusChange(newFocusChange(), a)
	return a
}

// Root returns the agent's root item.
func (a *Agent) Root() *Item { return a.root }

// Settings returns the effective settings.
func (a *Agent) Settings() Settings { return a.settings }

// Grabs returns the agent's grab table.
func (a *Agent) Grabs() *GrabTable { return a.grabs }

// Hover returns the agent's hover tracker.
func (a *Agent) Hover() *HoverTracker { return a.hover }

// Focus returns the agent's focus manager.
func (a *Agent) Focus() *FocusManager { return a.focus }

// ActiveFocusItem returns the item that receives key events, or nil.
func (a *Agent) ActiveFocusItem() *Item { return a.focus.ActiveFocusItem() }

// SetFocus gives item focus within scope; see FocusManager.SetFocus.
func (a *Agent) SetFocus(item, scope *Item) { a.focus.SetFocus(item, scope) }

// ClearFocus removes focus from item within scope; see FocusManager.ClearFocus.
func (a *Agent) ClearFocus(item, scope *Item) { a.focus.ClearFocus(item, scope) }

// SetSurfaceActive tells the agent whether its surface has keyboard focus.
func (a *Agent) SetSurfaceActive(active bool) { a.focus.SetSurfaceActive(active) }

// Closed reports whether Close has been called.
func (a *Agent) Closed() bool { return a.closed }

// Grab makes item the exclusive owner of the point.
func (a *Agent) Grab(dev DeviceID, pt PointID, item *Item) {
	if !a.alive(item) {
		warnf("grab by %s which is not under this agent is ignored", item)
		return
	}
	a.grabs.Grab(GrabKey{Device: dev, Point: pt}, item)
}

// Ungrab releases the point, notifying its owner.
func (a *Agent) Ungrab(dev DeviceID, pt PointID) {
	a.grabs.Ungrab(GrabKey{Device: dev, Point: pt})
}

// OwnerOf returns the item grabbing the point, or nil.
func (a *Agent) OwnerOf(dev DeviceID, pt PointID) *Item {
	return a.grabs.OwnerOf(GrabKey{Device: dev, Point: pt})
}

// DragOverThreshold reports whether a movement of delta counts as a drag.
// Filtering ancestors use it to decide when to take over a gesture.
func (a *Agent) DragOverThreshold(delta Vec2) bool {
	d := a.settings.StartDragDistance
	return math.Abs(delta.X) > d || math.Abs(delta.Y) > d
}

// Deliver routes one raw event and reports whether an item accepted it.
// Hooks may call Deliver again; nesting is bounded by MaxDeliveryDepth.
func (a *Agent) Deliver(ev RawEvent) bool {
	if a.closed {
		return false
	}
	if a.depth >= a.settings.MaxDeliveryDepth {
		warnf("re-entrant delivery deeper than %d, %s %s dropped",
			a.settings.MaxDeliveryDepth, ev.Kind, ev.Phase)
		return false
	}
	d := &delivery{
		raw:      ev,
		scene:    a.Viewport.SurfaceToScene(ev.Position),
		filtered: make(map[*Item]struct{}),
	}
	prev := a.current
	a.current = d
	a.depth++
	defer func() {
		a.depth--
		a.current = prev
	}()

	var accepted bool
	switch ev.Phase {
	case PhasePress, PhaseMove, PhaseRelease:
		if ev.Kind == DeviceTouch {
			accepted = a.deliverTouch(d)
		} else {
			accepted = a.deliverMouse(d)
		}
	case PhaseWheel:
		accepted = a.deliverWheel(d)
	case PhaseKeyPress, PhaseKeyRelease:
		accepted = a.deliverKey(d)
	case PhaseCancel:
		a.cancelDevice(d)
		accepted = true
	case PhaseDragEnter, PhaseDragMove, PhaseDragLeave, PhaseDrop:
		accepted = a.deliverDrag(d)
	case PhaseLeave:
		a.pointerLeft()
		accepted = true
	default:
		warnf("raw event with unknown phase %d dropped", ev.Phase)
	}
	d.setState(stateResolved)
	return accepted
}

// RefreshHover re-evaluates hover at the last pointer position, so items
// that moved under a stationary pointer get enter and leave. Hover stays put
// while a point of the hovering device is grabbed.
func (a *Agent) RefreshHover() {
	if !a.hoverValid || a.closed || a.grabs.HoldsDevice(a.hoverDevice) {
		return
	}
	a.hover.Update(a.hoverPoint, a.hoverPoint)
}

// Close tears the surface down: every grab is released with notification,
// every hovered item gets leave and focus is cleared. The agent delivers
// nothing afterwards.
func (a *Agent) Close() {
	if a.closed {
		return
	}
	a.grabs.Clear(UngrabForced)
	a.hover.Clear(a.hoverPoint)
	a.hoverValid = false
	a.dragLeave(nil)
	a.touch = touchMouseState{}
	a.focus.clear()
	a.injectQueue = nil
	a.closed = true
	a.root.agent = nil
}

// alive reports whether it can still receive events from this agent.
func (a *Agent) alive(it *Item) bool {
	return it != nil && !it.disposed && it.Root() == a.root
}

// pointerTargets returns the hit-test candidates for p, topmost first.
func (a *Agent) pointerTargets(p Vec2, crit hitCriteria) []*Item {
	return hitTest(a.root, p, crit, a.settings.MaxTreeDepth, true)
}

// filterChain offers an event aimed at target to its filtering ancestors,
// nearest first. Returns the ancestor that claimed it, or nil.
func (a *Agent) filterChain(d *delivery, target *Item, copyFor func(*Item) Event) *Item {
	d.setState(stateAwaitingFilter)
	for p := target.parent; p != nil; p = p.parent {
		if !p.FiltersChildEvents || p.FilterChildEvent == nil || !p.effectiveEnabled {
			continue
		}
		if _, seen := d.filtered[p]; seen {
			continue
		}
		d.filtered[p] = struct{}{}
		if p.FilterChildEvent(target, copyFor(p)) {
			tracef("%s claimed %s %s bound for %s", p, d.raw.Kind, d.raw.Phase, target)
			return p
		}
	}
	return nil
}

// deliverUngrab notifies an item that lost a grab.
func (a *Agent) deliverUngrab(ev UngrabEvent) {
	if a.touch.active && ev.Key == a.touch.key && ev.NewOwner == nil {
		a.touch.active = false
	}
	it := ev.Item
	if it == nil || it.disposed {
		return
	}
	tracef("%s lost %v (%s)", it, ev.Key, ev.Reason)
	if it.OnUngrab != nil {
		it.OnUngrab(ev)
	}
	a.emit(EventUngrab, it, Vec2{}, Vec2{})
}

// dropPointerState releases grabs and hover pointing into sub. When the
// subtree left the tree everything in it is dropped; otherwise only items
// that became hidden or disabled are.
func (a *Agent) dropPointerState(sub *Item, detached bool) {
	if detached {
		a.grabs.ReleaseMatching(func(o *Item) bool { return isAncestor(sub, o) }, UngrabForced)
		a.hover.Prune(sub)
		if a.drop.target != nil && isAncestor(sub, a.drop.target) {
			a.drop = dropState{}
		}
		return
	}
	a.grabs.ReleaseMatching(func(o *Item) bool {
		return isAncestor(sub, o) && (!o.effectiveEnabled || !o.effectiveVisible)
	}, UngrabForced)
	a.hover.dropIneligible(a.hoverPoint)
	if t := a.drop.target; t != nil && isAncestor(sub, t) && (!t.effectiveEnabled || !t.effectiveVisible) {
		a.dragLeave(nil)
	}
}

// cancelDevice sends OnCancel to every item grabbing a point of the device
// or hovered by it, then clears the device's grabs and hover without further
// notification.
func (a *Agent) cancelDevice(d *delivery) {
	dev := d.raw.Device
	var targets []*Item
	for _, key := range a.grabs.Keys() {
		if key.Device != dev {
			continue
		}
		if owner := a.grabs.OwnerOf(key); !containsItem(targets, owner) {
			targets = append(targets, owner)
		}
	}
	hovered := a.hoverValid && a.hoverDevice == dev
	if hovered {
		for _, it := range a.hover.chain {
			if !containsItem(targets, it) {
				targets = append(targets, it)
			}
		}
	}

	d.setState(stateDelivering)
	for _, it := range targets {
		if !a.alive(it) || it.OnCancel == nil {
			continue
		}
		ev := a.pointerEvent(d, it, EventCancel)
		it.OnCancel(ev.localized(it))
		a.emit(EventCancel, it, d.scene, ev.Local)
	}

	a.grabs.ReleaseDevice(dev)
	if hovered {
		a.hover.reset()
		a.hoverValid = false
	}
	if a.touch.active && a.touch.key.Device == dev {
		a.touch.active = false
	}
	a.mouseClicks.reset(dev)
	a.touch.taps.reset(dev)
	if a.drop.target != nil && a.drop.device == dev {
		a.drop = dropState{}
	}
}

// pointerLeft handles the pointer leaving the surface.
func (a *Agent) pointerLeft() {
	a.hover.Clear(a.hoverPoint)
	a.hoverValid = false
}
