package main

import (
	"fmt"
	"time"
)

type Note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Slots holds the ordered notes of each flow slot.
type Slots struct {
	Views           []Note `json:"views"`
	Actors          []Note `json:"actors"`
	Commands        []Note `json:"commands"`
	Aggregates      []Note `json:"aggregates"`
	Events          []Note `json:"events"`
	ExternalSystems []Note `json:"externalSystems"`
	Policies        []Note `json:"policies"`
}

// Get returns the notes of a slot. Unknown slots return nil.
func (s Slots) Get(slot SlotType) []Note {
	switch slot {
	case SlotViews:
		return s.Views
	case SlotActors:
		return s.Actors
	case SlotCommands:
		return s.Commands
	case SlotAggregates:
		return s.Aggregates
	case SlotEvents:
		return s.Events
	case SlotExternalSystems:
		return s.ExternalSystems
	case SlotPolicies:
		return s.Policies
	}
	return nil
}

// With returns a copy of s with one slot replaced.
func (s Slots) With(slot SlotType, notes []Note) Slots {
	switch slot {
	case SlotViews:
		s.Views = notes
	case SlotActors:
		s.Actors = notes
	case SlotCommands:
		s.Commands = notes
	case SlotAggregates:
		s.Aggregates = notes
	case SlotEvents:
		s.Events = notes
	case SlotExternalSystems:
		s.ExternalSystems = notes
	case SlotPolicies:
		s.Policies = notes
	}
	return s
}

func validSlot(slot SlotType) bool {
	for _, s := range SlotOrder {
		if s == slot {
			return true
		}
	}
	return false
}

// Flow is an event-storming swimlane made of note slots.
type Flow struct {
	ID       string `json:"id"`
	Position Point  `json:"position"`
	Slots    Slots  `json:"slots"`
}

// FindNote locates a note by id across all slots.
func (f Flow) FindNote(noteID string) (SlotType, int, bool) {
	for _, slot := range SlotOrder {
		for i, n := range f.Slots.Get(slot) {
			if n.ID == noteID {
				return slot, i, true
			}
		}
	}
	return "", -1, false
}

type BoundedContext struct {
	ID       string `json:"id"`
	Position Point  `json:"position"`
	Size     Size   `json:"size"`
	Name     string `json:"name"`
}

type Domain struct {
	ID       string     `json:"id"`
	Position Point      `json:"position"`
	Size     Size       `json:"size"`
	Name     string     `json:"name"`
	Type     DomainType `json:"type"`
}

type Connection struct {
	ID         string `json:"id"`
	FromFlowID string `json:"fromFlowId"`
	ToFlowID   string `json:"toFlowId"`
	Label      string `json:"label,omitempty"`
}

type Hotspot struct {
	ID       string `json:"id"`
	Position Point  `json:"position"`
	Text     string `json:"text"`
}

// Board is the aggregate document. It is owned by the host; every change
// produces a new Board whose modified collections are freshly allocated.
type Board struct {
	Flows       []Flow           `json:"flows"`
	Contexts    []BoundedContext `json:"contexts"`
	Domains     []Domain         `json:"domains"`
	Connections []Connection     `json:"connections"`
	Hotspots    []Hotspot        `json:"hotspots"`
	Viewport    Viewport         `json:"viewport"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func NewBoard() Board {
	return Board{
		Flows:       []Flow{},
		Contexts:    []BoundedContext{},
		Domains:     []Domain{},
		Connections: []Connection{},
		Hotspots:    []Hotspot{},
		Viewport:    DefaultViewport(),
	}
}

func (b Board) FlowIndex(id string) int {
	for i := range b.Flows {
		if b.Flows[i].ID == id {
			return i
		}
	}
	return -1
}

func (b Board) ContextIndex(id string) int {
	for i := range b.Contexts {
		if b.Contexts[i].ID == id {
			return i
		}
	}
	return -1
}

func (b Board) DomainIndex(id string) int {
	for i := range b.Domains {
		if b.Domains[i].ID == id {
			return i
		}
	}
	return -1
}

func (b Board) ConnectionIndex(id string) int {
	for i := range b.Connections {
		if b.Connections[i].ID == id {
			return i
		}
	}
	return -1
}

func (b Board) HotspotIndex(id string) int {
	for i := range b.Hotspots {
		if b.Hotspots[i].ID == id {
			return i
		}
	}
	return -1
}

func (b Board) Flow(id string) (Flow, bool) {
	if i := b.FlowIndex(id); i >= 0 {
		return b.Flows[i], true
	}
	return Flow{}, false
}

// KindOf reports which collection holds id, checked in deletion priority
// order: flow, context, domain, connection, hotspot.
func (b Board) KindOf(id string) EntityKind {
	switch {
	case id == "":
		return KindNone
	case b.FlowIndex(id) >= 0:
		return KindFlow
	case b.ContextIndex(id) >= 0:
		return KindContext
	case b.DomainIndex(id) >= 0:
		return KindDomain
	case b.ConnectionIndex(id) >= 0:
		return KindConnection
	case b.HotspotIndex(id) >= 0:
		return KindHotspot
	}
	return KindNone
}

// Position returns the stored position of a placeable entity.
func (b Board) Position(kind EntityKind, id string) (Point, bool) {
	switch kind {
	case KindFlow:
		if i := b.FlowIndex(id); i >= 0 {
			return b.Flows[i].Position, true
		}
	case KindContext:
		if i := b.ContextIndex(id); i >= 0 {
			return b.Contexts[i].Position, true
		}
	case KindDomain:
		if i := b.DomainIndex(id); i >= 0 {
			return b.Domains[i].Position, true
		}
	case KindHotspot:
		if i := b.HotspotIndex(id); i >= 0 {
			return b.Hotspots[i].Position, true
		}
	}
	return Point{}, false
}

// Region returns the rectangle of a context or domain.
func (b Board) Region(kind EntityKind, id string) (Rect, bool) {
	switch kind {
	case KindContext:
		if i := b.ContextIndex(id); i >= 0 {
			c := b.Contexts[i]
			return RectFrom(c.Position, c.Size), true
		}
	case KindDomain:
		if i := b.DomainIndex(id); i >= 0 {
			d := b.Domains[i]
			return RectFrom(d.Position, d.Size), true
		}
	}
	return Rect{}, false
}

// WithPosition returns a board where the entity sits at pos. The second
// result is false when the entity no longer exists.
func (b Board) WithPosition(kind EntityKind, id string, pos Point) (Board, bool) {
	switch kind {
	case KindFlow:
		i := b.FlowIndex(id)
		if i < 0 {
			return b, false
		}
		b.Flows = cloneSlice(b.Flows)
		b.Flows[i].Position = pos
	case KindContext:
		i := b.ContextIndex(id)
		if i < 0 {
			return b, false
		}
		b.Contexts = cloneSlice(b.Contexts)
		b.Contexts[i].Position = pos
	case KindDomain:
		i := b.DomainIndex(id)
		if i < 0 {
			return b, false
		}
		b.Domains = cloneSlice(b.Domains)
		b.Domains[i].Position = pos
	case KindHotspot:
		i := b.HotspotIndex(id)
		if i < 0 {
			return b, false
		}
		b.Hotspots = cloneSlice(b.Hotspots)
		b.Hotspots[i].Position = pos
	default:
		return b, false
	}
	return b, true
}

// WithRegion returns a board where the context or domain occupies r.
func (b Board) WithRegion(kind EntityKind, id string, r Rect) (Board, bool) {
	switch kind {
	case KindContext:
		i := b.ContextIndex(id)
		if i < 0 {
			return b, false
		}
		b.Contexts = cloneSlice(b.Contexts)
		b.Contexts[i].Position = r.Pos()
		b.Contexts[i].Size = r.Size()
	case KindDomain:
		i := b.DomainIndex(id)
		if i < 0 {
			return b, false
		}
		b.Domains = cloneSlice(b.Domains)
		b.Domains[i].Position = r.Pos()
		b.Domains[i].Size = r.Size()
	default:
		return b, false
	}
	return b, true
}

// Without removes the entity with id from the first collection holding it.
// Removing a flow also removes every connection touching it.
func (b Board) Without(id string) (Board, EntityKind) {
	kind := b.KindOf(id)
	switch kind {
	case KindFlow:
		b.Flows = filter(b.Flows, func(f Flow) bool { return f.ID != id })
		b.Connections = filter(b.Connections, func(c Connection) bool {
			return c.FromFlowID != id && c.ToFlowID != id
		})
	case KindContext:
		b.Contexts = filter(b.Contexts, func(c BoundedContext) bool { return c.ID != id })
	case KindDomain:
		b.Domains = filter(b.Domains, func(d Domain) bool { return d.ID != id })
	case KindConnection:
		b.Connections = filter(b.Connections, func(c Connection) bool { return c.ID != id })
	case KindHotspot:
		b.Hotspots = filter(b.Hotspots, func(h Hotspot) bool { return h.ID != id })
	}
	return b, kind
}

// WithFlow returns a board where the flow with id is replaced by fn's result.
func (b Board) WithFlow(id string, fn func(Flow) Flow) (Board, bool) {
	i := b.FlowIndex(id)
	if i < 0 {
		return b, false
	}
	b.Flows = cloneSlice(b.Flows)
	b.Flows[i] = fn(b.Flows[i])
	return b, true
}

// Validate reports the first structural problem in a loaded board.
func (b Board) Validate() error {
	for _, f := range b.Flows {
		if len(f.Slots.Events) == 0 {
			return fmt.Errorf("flow %s has no event note", f.ID)
		}
	}
	for _, c := range b.Connections {
		if b.FlowIndex(c.FromFlowID) < 0 || b.FlowIndex(c.ToFlowID) < 0 {
			return fmt.Errorf("connection %s references a missing flow", c.ID)
		}
	}
	return nil
}

// Normalize repairs what Validate complains about: dangling connections are
// dropped and flows with an empty events slot get a fresh note.
func (b Board) Normalize(ids IDSource) Board {
	b.Connections = filter(b.Connections, func(c Connection) bool {
		return b.FlowIndex(c.FromFlowID) >= 0 && b.FlowIndex(c.ToFlowID) >= 0 && c.FromFlowID != c.ToFlowID
	})
	b.Flows = cloneSlice(b.Flows)
	for i := range b.Flows {
		if len(b.Flows[i].Slots.Events) == 0 {
			b.Flows[i].Slots.Events = []Note{NewNote(ids, "")}
		}
	}
	if b.Contexts == nil {
		b.Contexts = []BoundedContext{}
	}
	if b.Domains == nil {
		b.Domains = []Domain{}
	}
	if b.Hotspots == nil {
		b.Hotspots = []Hotspot{}
	}
	if b.Viewport.Zoom == 0 {
		b.Viewport.Zoom = 1
	}
	b.Viewport.Zoom = ClampZoom(b.Viewport.Zoom)
	return b
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
