package bough

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on an Item simultaneously.
// Create one with TweenPosition, TweenScale, TweenOpacity or TweenRotation
// and call Update(dt) each frame. Moving an item under a stationary pointer
// changes what is hovered, so after each step the item's agent re-evaluates
// hover. If the item is disposed, the group stops.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Item
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// item.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if a := g.target.Agent(); a != nil {
		a.RefreshHover()
	}
}

// TweenPosition animates it.X and it.Y to the target over duration seconds.
func TweenPosition(it *Item, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: it}
	g.tweens[0] = gween.New(float32(it.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(it.Y), float32(toY), duration, fn)
	g.fields[0] = &it.X
	g.fields[1] = &it.Y
	return g
}

// TweenScale animates it.ScaleX and it.ScaleY.
func TweenScale(it *Item, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: it}
	g.tweens[0] = gween.New(float32(it.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(it.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &it.ScaleX
	g.fields[1] = &it.ScaleY
	return g
}

// TweenOpacity animates it.Opacity. An item faded to zero stops being hit.
func TweenOpacity(it *Item, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: it}
	g.tweens[0] = gween.New(float32(it.Opacity), float32(to), duration, fn)
	g.fields[0] = &it.Opacity
	return g
}

// TweenRotation animates it.Rotation.
func TweenRotation(it *Item, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: it}
	g.tweens[0] = gween.New(float32(it.Rotation), float32(to), duration, fn)
	g.fields[0] = &it.Rotation
	return g
}
