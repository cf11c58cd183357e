package main

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainScene(b Board) scene {
	return scene{
		board:      b,
		vp:         DefaultViewport(),
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
		labels:     defaultLabels,
	}
}

func TestRenderSceneRegions(t *testing.T) {
	t.Parallel()

	ids := &sequenceSource{}
	b := NewBoard()
	b.Contexts = []BoundedContext{NewBoundedContext(ids, Rect{Width: 200, Height: 128}, "Billing")}

	lines := renderScene(plainScene(b), 40, 10, true)
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "┌┄ Billing ┄"))
	assert.Equal(t, '┐', []rune(lines[0])[25])
	assert.Equal(t, '┆', []rune(lines[3])[0])
	assert.Equal(t, '└', []rune(lines[8])[0])
	for _, line := range lines {
		assert.Len(t, []rune(line), 40)
	}
}

func TestRenderSceneSelectionAndPreview(t *testing.T) {
	t.Parallel()

	ids := &sequenceSource{}
	b := NewBoard()
	b.Domains = []Domain{NewDomain(ids, Rect{Width: 200, Height: 128}, "Sales", "")}

	s := plainScene(b)
	s.selected = b.Domains[0].ID
	lines := renderScene(s, 40, 10, true)
	assert.True(t, strings.HasPrefix(lines[0], "┏━ Sales ━"))

	preview := Rect{X: 240, Y: 16, Width: 40, Height: 32}
	s.preview = &preview
	lines = renderScene(s, 40, 10, true)
	assert.Equal(t, '·', []rune(lines[1])[30])
}

func TestRenderSceneFlowPlaceholder(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	b.Flows = []Flow{NewFlow(&sequenceSource{}, Point{})}

	labels := mergeLabels(map[string]string{"slot.events": "Domain Event"})
	s := plainScene(b)
	s.labels = labels
	text := strings.Join(renderScene(s, 40, 10, true), "\n")
	assert.Contains(t, text, "Domain Event")
}

func TestRenderSceneStyled(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	b.Hotspots = []Hotspot{NewHotspot(&sequenceSource{}, Point{X: 8, Y: 16}, "why")}

	lines := renderScene(plainScene(b), 30, 8, false)
	require.Len(t, lines, 8)
	assert.Contains(t, lines[2], "why")
}

func TestCursorPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		cursor    int
		line, col int
	}{
		{text: "", cursor: 0},
		{text: "abc", cursor: 2, col: 2},
		{text: "ab\ncd", cursor: 3, line: 1},
		{text: "ab\ncd", cursor: 5, line: 1, col: 2},
		{text: "a\n\nb", cursor: 3, line: 2},
	}

	for _, tt := range tests {
		line, col := cursorPosition(tt.text, tt.cursor)
		assert.Equal(t, tt.line, line, tt.text)
		assert.Equal(t, tt.col, col, tt.text)
	}
}

func TestCurveSamples(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8, curveSamples(1, 80, 24))
	assert.Equal(t, 60, curveSamples(30, 80, 24))
	assert.Equal(t, 416, curveSamples(1e8, 80, 24))
	assert.Equal(t, 416, curveSamples(math.Inf(1), 80, 24))
	assert.Equal(t, 8, curveSamples(math.NaN(), 80, 24))
}

func TestRenderSceneFarApartFlows(t *testing.T) {
	t.Parallel()

	ids := &sequenceSource{}
	b := NewBoard()
	b.Flows = []Flow{NewFlow(ids, Point{}), NewFlow(ids, Point{X: 1e8, Y: 1e8})}
	b.Connections = []Connection{NewConnection(ids, b.Flows[0].ID, b.Flows[1].ID)}

	lines := renderScene(plainScene(b), 40, 10, true)
	require.Len(t, lines, 10)
	assert.Equal(t, '╭', []rune(lines[0])[0])
}
