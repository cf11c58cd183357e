package main

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource hands out entity identifiers that are never reused.
type IDSource interface {
	NewID() string
}

type uuidSource struct{}

func (uuidSource) NewID() string {
	return uuid.NewString()
}

// sequenceSource produces readable ids; handy for deterministic boards.
type sequenceSource struct {
	prefix string
	next   int
}

func (s *sequenceSource) NewID() string {
	s.next++
	return fmt.Sprintf("%s%d", s.prefix, s.next)
}

func NewNote(ids IDSource, text string) Note {
	return Note{ID: ids.NewID(), Text: text}
}

// NewFlow creates a flow at pos. Every slot starts empty except events,
// which always holds at least one note.
func NewFlow(ids IDSource, pos Point) Flow {
	return Flow{
		ID:       ids.NewID(),
		Position: pos,
		Slots: Slots{
			Views:           []Note{},
			Actors:          []Note{},
			Commands:        []Note{},
			Aggregates:      []Note{},
			Events:          []Note{NewNote(ids, "")},
			ExternalSystems: []Note{},
			Policies:        []Note{},
		},
	}
}

func NewBoundedContext(ids IDSource, r Rect, name string) BoundedContext {
	return BoundedContext{
		ID:       ids.NewID(),
		Position: r.Pos(),
		Size:     r.Size(),
		Name:     name,
	}
}

func NewDomain(ids IDSource, r Rect, name string, t DomainType) Domain {
	if t == "" {
		t = DomainCore
	}
	return Domain{
		ID:       ids.NewID(),
		Position: r.Pos(),
		Size:     r.Size(),
		Name:     name,
		Type:     t,
	}
}

func NewHotspot(ids IDSource, pos Point, text string) Hotspot {
	return Hotspot{ID: ids.NewID(), Position: pos, Text: text}
}

func NewConnection(ids IDSource, fromFlowID, toFlowID string) Connection {
	return Connection{ID: ids.NewID(), FromFlowID: fromFlowID, ToFlowID: toFlowID}
}
