package main

import "math"

// Point is a position in canvas space unless stated otherwise.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Rect struct {
	X, Y          float64
	Width, Height float64
}

func RectFrom(pos Point, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// RectBetween returns the normalized rectangle spanned by two corners.
func RectBetween(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) Pos() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Viewport is the pan offset in screen pixels and a zoom scalar.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

func DefaultViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: 1}
}

// ClampZoom keeps zoom inside [MinZoom, MaxZoom]. Non-finite input resets to 1.
func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, zoom))
}

// ToCanvasCoords maps a client pointer position into canvas space.
func ToCanvasCoords(clientX, clientY float64, vp Viewport, container Rect) Point {
	return Point{
		X: ((clientX - container.X) - vp.X) / vp.Zoom,
		Y: ((clientY - container.Y) - vp.Y) / vp.Zoom,
	}
}

// ToScreenCoords is the inverse of ToCanvasCoords.
func ToScreenCoords(p Point, vp Viewport, container Rect) Point {
	return Point{
		X: p.X*vp.Zoom + vp.X + container.X,
		Y: p.Y*vp.Zoom + vp.Y + container.Y,
	}
}

// ScreenRect places a canvas-space rectangle on screen.
func ScreenRect(r Rect, vp Viewport, container Rect) Rect {
	tl := ToScreenCoords(r.Pos(), vp, container)
	return Rect{X: tl.X, Y: tl.Y, Width: r.Width * vp.Zoom, Height: r.Height * vp.Zoom}
}

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
