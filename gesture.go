package main

import "math"

// gesture is the single in-flight pointer interaction. Only one is ever
// held; a new pointer-down replaces whatever was there.
type gesture interface {
	gesture()
}

// dragGesture moves a placeable entity. start is in screen pixels.
type dragGesture struct {
	kind  EntityKind
	id    string
	start Point
	orig  Point
	moves int
}

// resizeGesture reshapes a context or domain from one of its handles.
type resizeGesture struct {
	kind  EntityKind
	id    string
	edge  Edge
	start Point
	orig  Rect
	moves int
}

// drawGesture is the rubber band for a new context or domain, in canvas space.
type drawGesture struct {
	kind    EntityKind
	start   Point
	current Point
}

// reorderGesture drags a note to another position in its slot.
type reorderGesture struct {
	flowID string
	slot   SlotType
	noteID string
}

func (*dragGesture) gesture()    {}
func (*resizeGesture) gesture()  {}
func (*drawGesture) gesture()    {}
func (*reorderGesture) gesture() {}

func (g *drawGesture) Rect() Rect {
	return RectBetween(g.start, g.current)
}

// resizeRect derives new geometry from a handle drag. East and south grow
// from delta directly; west and north move the origin so the opposite edge
// stays anchored. The minimum size is enforced on every call.
func resizeRect(orig Rect, edge Edge, delta Point) Rect {
	r := orig
	if edge.Has(EdgeEast) {
		r.Width = math.Max(MinRegionWidth, orig.Width+delta.X)
	}
	if edge.Has(EdgeWest) {
		r.Width = math.Max(MinRegionWidth, orig.Width-delta.X)
		r.X = orig.Right() - r.Width
	}
	if edge.Has(EdgeSouth) {
		r.Height = math.Max(MinRegionHeight, orig.Height+delta.Y)
	}
	if edge.Has(EdgeNorth) {
		r.Height = math.Max(MinRegionHeight, orig.Height-delta.Y)
		r.Y = orig.Bottom() - r.Height
	}
	// regions drawn smaller than the floor snap up on the first frame
	r.Width = math.Max(MinRegionWidth, r.Width)
	r.Height = math.Max(MinRegionHeight, r.Height)
	return r
}
