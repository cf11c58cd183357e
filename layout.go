package main

import "math"

// NoteBox is the canvas-space placement of one note inside a flow.
type NoteBox struct {
	ID   string
	Slot SlotType
	Rect Rect
}

type SlotColumn struct {
	Slot  SlotType
	X     float64
	Notes []NoteBox
}

// FlowGeometry is the derived layout of a flow. Empty slots take no width;
// renderers and connection routing both read it from here.
type FlowGeometry struct {
	Rect    Rect
	Columns []SlotColumn
}

func FlowLayout(f Flow) FlowGeometry {
	geo := FlowGeometry{}
	x := f.Position.X + FlowPadding
	top := f.Position.Y + FlowPadding
	rows := 0
	for _, slot := range SlotOrder {
		notes := f.Slots.Get(slot)
		if len(notes) == 0 {
			continue
		}
		col := SlotColumn{Slot: slot, X: x}
		for i, n := range notes {
			col.Notes = append(col.Notes, NoteBox{
				ID:   n.ID,
				Slot: slot,
				Rect: Rect{
					X:      x,
					Y:      top + float64(i)*(NoteHeight+NoteGap),
					Width:  SlotWidth,
					Height: NoteHeight,
				},
			})
		}
		geo.Columns = append(geo.Columns, col)
		rows = max(rows, len(notes))
		x += SlotWidth + SlotGap
	}

	cols := len(geo.Columns)
	width := 2*FlowPadding + SlotWidth
	if cols > 0 {
		width = 2*FlowPadding + float64(cols)*SlotWidth + float64(cols-1)*SlotGap
	}
	rows = max(rows, 1)
	height := 2*FlowPadding + float64(rows)*NoteHeight + float64(rows-1)*NoteGap
	geo.Rect = Rect{X: f.Position.X, Y: f.Position.Y, Width: width, Height: height}
	return geo
}

// NoteRect returns the canvas rectangle of a note in a flow.
func (g FlowGeometry) NoteRect(noteID string) (Rect, bool) {
	for _, col := range g.Columns {
		for _, n := range col.Notes {
			if n.ID == noteID {
				return n.Rect, true
			}
		}
	}
	return Rect{}, false
}

func HotspotRect(h Hotspot) Rect {
	return Rect{X: h.Position.X, Y: h.Position.Y, Width: HotspotWidth, Height: HotspotHeight}
}

// LabelRect is the band at the top of a region that holds its name.
func LabelRect(r Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: math.Min(LabelHeight, r.Height)}
}

type HitPart int

const (
	PartNone HitPart = iota
	PartBody
	PartLabel
	PartNote
	PartHandle
)

// Hit describes what lies under a canvas point.
type Hit struct {
	Kind   EntityKind
	ID     string
	Part   HitPart
	Edge   Edge
	Slot   SlotType
	NoteID string
}

func (h Hit) Empty() bool { return h.Kind == KindNone }

// HitTest returns the topmost entity under p, walking the paint order
// backwards: hotspots, flows, connections, contexts, domains.
func HitTest(b Board, p Point, zoom float64) Hit {
	if zoom <= 0 {
		zoom = 1
	}
	for i := len(b.Hotspots) - 1; i >= 0; i-- {
		h := b.Hotspots[i]
		if HotspotRect(h).Contains(p) {
			return Hit{Kind: KindHotspot, ID: h.ID, Part: PartBody}
		}
	}
	for i := len(b.Flows) - 1; i >= 0; i-- {
		f := b.Flows[i]
		geo := FlowLayout(f)
		if !geo.Rect.Contains(p) {
			continue
		}
		for _, col := range geo.Columns {
			for _, n := range col.Notes {
				if n.Rect.Contains(p) {
					return Hit{Kind: KindFlow, ID: f.ID, Part: PartNote, Slot: n.Slot, NoteID: n.ID}
				}
			}
		}
		return Hit{Kind: KindFlow, ID: f.ID, Part: PartBody}
	}
	tol := ConnectionHitTolerance / zoom
	for i := len(b.Connections) - 1; i >= 0; i-- {
		c := b.Connections[i]
		path, ok := RouteConnection(b, c)
		if !ok {
			continue
		}
		if path.DistanceTo(p) <= tol {
			return Hit{Kind: KindConnection, ID: c.ID, Part: PartBody}
		}
	}
	handleTol := HandleTolerance / zoom
	for i := len(b.Contexts) - 1; i >= 0; i-- {
		c := b.Contexts[i]
		if hit, ok := hitRegion(KindContext, c.ID, RectFrom(c.Position, c.Size), p, handleTol); ok {
			return hit
		}
	}
	for i := len(b.Domains) - 1; i >= 0; i-- {
		d := b.Domains[i]
		if hit, ok := hitRegion(KindDomain, d.ID, RectFrom(d.Position, d.Size), p, handleTol); ok {
			return hit
		}
	}
	return Hit{}
}

func hitRegion(kind EntityKind, id string, r Rect, p Point, tol float64) (Hit, bool) {
	if !r.Inset(-tol).Contains(p) {
		return Hit{}, false
	}
	if edge := edgeAt(r, p, tol); edge != EdgeNone {
		return Hit{Kind: kind, ID: id, Part: PartHandle, Edge: edge}, true
	}
	if LabelRect(r).Contains(p) {
		return Hit{Kind: kind, ID: id, Part: PartLabel}, true
	}
	return Hit{Kind: kind, ID: id, Part: PartBody}, true
}

// edgeAt picks the resize handle near p: one of the four corners or the
// midpoint of one of the four sides.
func edgeAt(r Rect, p Point, tol float64) Edge {
	var e Edge
	switch {
	case math.Abs(p.Y-r.Y) <= tol:
		e |= EdgeNorth
	case math.Abs(p.Y-r.Bottom()) <= tol:
		e |= EdgeSouth
	}
	switch {
	case math.Abs(p.X-r.X) <= tol:
		e |= EdgeWest
	case math.Abs(p.X-r.Right()) <= tol:
		e |= EdgeEast
	}
	if e == EdgeNorth || e == EdgeSouth {
		if math.Abs(p.X-r.Center().X) > tol {
			return EdgeNone
		}
	}
	if e == EdgeWest || e == EdgeEast {
		if math.Abs(p.Y-r.Center().Y) > tol {
			return EdgeNone
		}
	}
	return e
}
