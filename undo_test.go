package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuffer(b Board) *Buffer {
	buf := &Buffer{history: NewHistory(b), log: zerolog.Nop()}
	buf.engine = NewEngine(buf, b, WithIDSource(&sequenceSource{prefix: "u"}))
	return buf
}

func TestDragIsOneUndoStep(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	b.Hotspots = []Hotspot{NewHotspot(&sequenceSource{}, Point{}, "?")}
	buf := newTestBuffer(b)
	e := buf.engine

	e.PointerDown(PointerEvent{X: 10, Y: 10, Button: ButtonLeft})
	for x := 20.0; x <= 100; x += 10 {
		e.PointerMove(PointerEvent{X: x, Y: 10})
		assert.False(t, buf.history.CanUndo())
	}
	e.PointerUp(PointerEvent{X: 100, Y: 10, Button: ButtonLeft})

	require.True(t, buf.history.CanUndo())
	assert.Equal(t, Point{X: 90}, buf.history.Current().Hotspots[0].Position)

	prev, ok := buf.history.Undo()
	require.True(t, ok)
	assert.Equal(t, Point{}, prev.Hotspots[0].Position)
	assert.False(t, buf.history.CanUndo())
}

func TestClickWithoutMoveAddsNoStep(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	b.Hotspots = []Hotspot{NewHotspot(&sequenceSource{}, Point{}, "?")}
	buf := newTestBuffer(b)

	click(buf.engine, 10, 10)
	assert.False(t, buf.history.CanUndo())
	assert.False(t, buf.history.Dirty())
}

func TestViewportChangesAreNotUndoSteps(t *testing.T) {
	t.Parallel()

	buf := newTestBuffer(NewBoard())
	buf.engine.ZoomIn()
	buf.engine.PanBy(30, 0)

	assert.False(t, buf.history.CanUndo())
	assert.False(t, buf.history.Dirty())
	assert.Equal(t, 30.0, buf.history.Current().Viewport.X)
}

func TestUndoRedo(t *testing.T) {
	t.Parallel()

	buf := newTestBuffer(NewBoard())
	e := buf.engine
	h := buf.history

	e.SetToolMode(ToolAddFlow)
	e.PointerDown(PointerEvent{X: 0, Y: 0, Button: ButtonLeft})
	e.PointerUp(PointerEvent{X: 0, Y: 0, Button: ButtonLeft})
	e.SetToolMode(ToolAddHotspot)
	e.PointerDown(PointerEvent{X: 500, Y: 0, Button: ButtonLeft})
	require.Len(t, h.Current().Flows, 1)
	require.Len(t, h.Current().Hotspots, 1)

	e.ZoomIn()
	b, ok := h.Undo()
	require.True(t, ok)
	assert.Empty(t, b.Hotspots)
	assert.Len(t, b.Flows, 1)
	assert.InDelta(t, 1.2, b.Viewport.Zoom, 1e-9)

	b, ok = h.Redo()
	require.True(t, ok)
	assert.Len(t, b.Hotspots, 1)
	assert.False(t, h.CanRedo())

	h.Undo()
	h.Undo()
	assert.False(t, h.CanUndo())
	_, ok = h.Undo()
	assert.False(t, ok)

	assert.True(t, h.CanRedo())
	e.SetBoard(h.Current())
	e.SetToolMode(ToolAddHotspot)
	e.PointerDown(PointerEvent{X: 0, Y: 0, Button: ButtonLeft})
	assert.False(t, h.CanRedo())
}

func TestDirtyTracking(t *testing.T) {
	t.Parallel()

	buf := newTestBuffer(NewBoard())
	h := buf.history
	assert.False(t, h.Dirty())

	buf.engine.AddHotspotText(Point{}, "note")
	assert.True(t, h.Dirty())

	h.MarkSaved()
	assert.False(t, h.Dirty())

	h.Undo()
	assert.True(t, h.Dirty())
}

func TestHistoryLimit(t *testing.T) {
	t.Parallel()

	h := NewHistory(NewBoard())
	h.limit = 3
	ids := &sequenceSource{}
	b := NewBoard()
	for i := 0; i < 5; i++ {
		b.Hotspots = append(cloneSlice(b.Hotspots), NewHotspot(ids, Point{}, ""))
		h.Commit(b)
	}

	steps := 0
	for h.CanUndo() {
		h.Undo()
		steps++
	}
	assert.Equal(t, 3, steps)
	assert.Len(t, h.Current().Hotspots, 2)
}

func TestZoomDuringDragIsOneUndoStep(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	b.Hotspots = []Hotspot{NewHotspot(&sequenceSource{}, Point{}, "?")}
	buf := newTestBuffer(b)
	e := buf.engine

	e.PointerDown(PointerEvent{X: 10, Y: 10, Button: ButtonLeft})
	e.PointerMove(PointerEvent{X: 30, Y: 10})
	e.Wheel(WheelEvent{X: 30, Y: 10, DeltaY: -1})
	e.PointerMove(PointerEvent{X: 50, Y: 10})
	assert.False(t, buf.history.CanUndo())
	e.PointerUp(PointerEvent{X: 50, Y: 10, Button: ButtonLeft})

	_, ok := buf.history.Undo()
	require.True(t, ok)
	assert.False(t, buf.history.CanUndo())
	assert.Equal(t, Point{}, buf.history.Current().Hotspots[0].Position)
}
