package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCanvasCoords(t *testing.T) {
	t.Parallel()

	vp := Viewport{X: 10, Y: 20, Zoom: 2}
	container := Rect{X: 10, Y: 16, Width: 800, Height: 600}

	p := ToCanvasCoords(110, 66, vp, container)
	assert.InDelta(t, 45, p.X, 1e-9)
	assert.InDelta(t, 15, p.Y, 1e-9)
}

func TestCoordinateRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		vp        Viewport
		container Rect
	}{
		{name: "identity", vp: DefaultViewport()},
		{name: "panned", vp: Viewport{X: -250, Y: 75, Zoom: 1}},
		{name: "zoomed out", vp: Viewport{X: 30, Y: -20, Zoom: 0.2}},
		{name: "zoomed in with offset container", vp: Viewport{X: 12.5, Y: 8, Zoom: 3}, container: Rect{X: 40, Y: 16}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, screen := range []Point{{X: 0, Y: 0}, {X: 123, Y: 456}, {X: -40, Y: 9.5}} {
				canvas := ToCanvasCoords(screen.X, screen.Y, tt.vp, tt.container)
				back := ToScreenCoords(canvas, tt.vp, tt.container)
				assert.InDelta(t, screen.X, back.X, 1e-9)
				assert.InDelta(t, screen.Y, back.Y, 1e-9)
			}
		})
	}
}

func TestClampZoom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "below minimum", in: 0.05, want: MinZoom},
		{name: "above maximum", in: 12, want: MaxZoom},
		{name: "inside", in: 1.44, want: 1.44},
		{name: "NaN", in: math.NaN(), want: 1},
		{name: "infinity", in: math.Inf(1), want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClampZoom(tt.in))
		})
	}
}

func TestRectBetweenNormalizes(t *testing.T) {
	t.Parallel()

	r := RectBetween(Point{X: 300, Y: 300}, Point{X: 200, Y: 250})
	assert.Equal(t, Rect{X: 200, Y: 250, Width: 100, Height: 50}, r)
}

func TestScreenRect(t *testing.T) {
	t.Parallel()

	r := ScreenRect(Rect{X: 10, Y: 10, Width: 100, Height: 50}, Viewport{X: 5, Y: 0, Zoom: 2}, Rect{Y: 16})
	assert.Equal(t, Rect{X: 25, Y: 36, Width: 200, Height: 100}, r)
}
