package bough

import (
	"math"
	"testing"
)

func TestViewportIdentity(t *testing.T) {
	v := NewViewport()
	assertVec(t, "SurfaceToScene", v.SurfaceToScene(Vec2{12, 34}), Vec2{12, 34})
	assertVec(t, "SceneToSurface", v.SceneToSurface(Vec2{12, 34}), Vec2{12, 34})
}

func TestViewportRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Viewport
	}{
		{"pan", Viewport{X: 100, Y: -20, Zoom: 1}},
		{"zoom", Viewport{X: 10, Y: 10, Zoom: 2.5}},
		{"rotate", Viewport{Zoom: 1, Rotation: 0.3}},
		{"offset surface", Viewport{X: 5, Y: 5, Zoom: 0.5, Rotation: -1.1, Surface: Rect{X: 30, Y: 40, Width: 200, Height: 100}}},
		{"zero zoom means one", Viewport{X: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range []Vec2{{0, 0}, {17, -3}, {400, 250}} {
				back := tt.v.SceneToSurface(tt.v.SurfaceToScene(p))
				assertVec(t, "round trip", back, p)
			}
		})
	}
}

func TestViewportMapping(t *testing.T) {
	v := Viewport{X: 200, Y: 100, Zoom: 2}
	assertVec(t, "origin", v.SurfaceToScene(Vec2{0, 0}), Vec2{200, 100})
	assertVec(t, "zoomed", v.SurfaceToScene(Vec2{20, 10}), Vec2{210, 105})

	r := Viewport{Zoom: 1, Rotation: math.Pi / 2}
	assertVec(t, "rotated", r.SurfaceToScene(Vec2{0, 10}), Vec2{-10, 0})
}

func TestViewportVisibleBounds(t *testing.T) {
	v := Viewport{X: 100, Y: 50, Zoom: 2, Surface: Rect{Width: 640, Height: 480}}
	b := v.VisibleBounds()
	assertNear(t, "X", b.X, 100)
	assertNear(t, "Y", b.Y, 50)
	assertNear(t, "Width", b.Width, 320)
	assertNear(t, "Height", b.Height, 240)
}
