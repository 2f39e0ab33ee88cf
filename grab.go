package bough

// GrabKey identifies one contact point of one device.
type GrabKey struct {
	Device DeviceID
	Point  PointID
}

// UngrabReason says why an item lost a grab.
type UngrabReason uint8

const (
	UngrabStolen    UngrabReason = iota // another item grabbed the point
	UngrabReleased                      // the owner or the agent ungrabbed explicitly
	UngrabForced                        // the owner was detached, disabled or hidden
	UngrabCancelled                     // the device was cancelled
)

func (r UngrabReason) String() string {
	switch r {
	case UngrabStolen:
		return "stolen"
	case UngrabReleased:
		return "released"
	case UngrabForced:
		return "forced"
	case UngrabCancelled:
		return "cancelled"
	}
	return "unknown"
}

// UngrabEvent is passed to OnUngrab on the item that lost a grab.
type UngrabEvent struct {
	Item     *Item
	Key      GrabKey
	NewOwner *Item // set when stolen
	Reason   UngrabReason
}

// GrabTable maps each contact point to the one item that receives all its
// events until release. It holds weak references: the owning agent releases
// entries when their item leaves the tree.
type GrabTable struct {
	owners map[GrabKey]*Item
	keys   []GrabKey // insertion order, for deterministic iteration

	// notify is called when an owner loses its grab other than by release.
	notify func(UngrabEvent)
}

// NewGrabTable creates an empty table. notify may be nil.
func NewGrabTable(notify func(UngrabEvent)) *GrabTable {
	return &GrabTable{owners: make(map[GrabKey]*Item), notify: notify}
}

// OwnerOf returns the item grabbing key, or nil.
func (g *GrabTable) OwnerOf(key GrabKey) *Item {
	return g.owners[key]
}

// Len returns the number of grabbed points.
func (g *GrabTable) Len() int {
	return len(g.owners)
}

// Keys returns the grabbed points in the order they were first grabbed.
func (g *GrabTable) Keys() []GrabKey {
	out := make([]GrabKey, len(g.keys))
	copy(out, g.keys)
	return out
}

// Grab makes item the exclusive owner of key. A different previous owner is
// sent exactly one ungrab notification before the new owner is installed.
// Grabbing a point already owned by item is a no-op.
//
// OnUngrab hooks may grab the point while being notified. Such an owner is
// evicted in turn with its own notification. An item already notified by
// this call is evicted with a warning instead, so the loop ends.
func (g *GrabTable) Grab(key GrabKey, item *Item) {
	if item == nil {
		warnf("grab of %v with nil item is ignored", key)
		return
	}
	var notified []*Item
	for prev := g.owners[key]; prev != nil && prev != item; prev = g.owners[key] {
		g.remove(key)
		if containsItem(notified, prev) {
			warnf("%s regrabbed %v while losing it to %s; %s keeps it", prev, key, item, item)
			continue
		}
		notified = append(notified, prev)
		g.fire(UngrabEvent{Item: prev, Key: key, NewOwner: item, Reason: UngrabStolen})
	}
	g.install(key, item)
}

// install sets the owner of key, keeping keys free of duplicates.
func (g *GrabTable) install(key GrabKey, item *Item) {
	if _, ok := g.owners[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.owners[key] = item
}

// HoldsDevice reports whether any point of dev is grabbed.
func (g *GrabTable) HoldsDevice(dev DeviceID) bool {
	for key := range g.owners {
		if key.Device == dev {
			return true
		}
	}
	return false
}

// Ungrab releases key and notifies its owner. Returns the previous owner.
func (g *GrabTable) Ungrab(key GrabKey) *Item {
	prev := g.owners[key]
	if prev == nil {
		return nil
	}
	g.remove(key)
	g.fire(UngrabEvent{Item: prev, Key: key, Reason: UngrabReleased})
	return prev
}

// UngrabBy releases key on behalf of item. Ungrabbing a point item does not
// own logs a warning and is ignored.
func (g *GrabTable) UngrabBy(key GrabKey, item *Item) {
	if owner := g.owners[key]; owner == nil || owner != item {
		warnf("%s ungrabbed %v which it does not own", item, key)
		return
	}
	g.Ungrab(key)
}

// release drops key without notification; used when the point is released.
func (g *GrabTable) release(key GrabKey) *Item {
	prev := g.owners[key]
	if prev != nil {
		g.remove(key)
	}
	return prev
}

// ReleaseMatching force-releases every point whose owner satisfies match,
// notifying each owner once per point with reason.
func (g *GrabTable) ReleaseMatching(match func(*Item) bool, reason UngrabReason) {
	var lost []UngrabEvent
	for _, key := range g.keys {
		if owner := g.owners[key]; match(owner) {
			lost = append(lost, UngrabEvent{Item: owner, Key: key, Reason: reason})
		}
	}
	for _, ev := range lost {
		g.remove(ev.Key)
	}
	for _, ev := range lost {
		g.fire(ev)
	}
}

// ReleaseDevice drops every point of dev without notification and returns
// the distinct previous owners in grab order.
func (g *GrabTable) ReleaseDevice(dev DeviceID) []*Item {
	var owners []*Item
	var keys []GrabKey
	for _, key := range g.keys {
		if key.Device != dev {
			continue
		}
		keys = append(keys, key)
		owner := g.owners[key]
		if !containsItem(owners, owner) {
			owners = append(owners, owner)
		}
	}
	for _, key := range keys {
		g.remove(key)
	}
	return owners
}

// Clear releases everything, notifying owners with reason.
func (g *GrabTable) Clear(reason UngrabReason) {
	g.ReleaseMatching(func(*Item) bool { return true }, reason)
}

// PointsOf returns the points currently owned by item.
func (g *GrabTable) PointsOf(item *Item) []GrabKey {
	var out []GrabKey
	for _, key := range g.keys {
		if g.owners[key] == item {
			out = append(out, key)
		}
	}
	return out
}

func (g *GrabTable) remove(key GrabKey) {
	delete(g.owners, key)
	for i, k := range g.keys {
		if k == key {
			copy(g.keys[i:], g.keys[i+1:])
			g.keys = g.keys[:len(g.keys)-1]
			return
		}
	}
}

func (g *GrabTable) fire(ev UngrabEvent) {
	if g.notify != nil {
		g.notify(ev)
	}
}

func containsItem(list []*Item, it *Item) bool {
	for _, x := range list {
		if x == it {
			return true
		}
	}
	return false
}
