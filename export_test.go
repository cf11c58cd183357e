package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardBounds(t *testing.T) {
	t.Parallel()

	_, ok := boardBounds(NewBoard())
	assert.False(t, ok)

	r, ok := boardBounds(sampleBoard())
	require.True(t, ok)
	assert.Equal(t, Rect{X: -20, Y: -20, Width: 800, Height: 400}, r)
}

func TestExportPNG(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		scale         float64
		width, height int
	}{
		{name: "natural size", scale: 1, width: 848, height: 448},
		{name: "doubled", scale: 2, width: 1696, height: 896},
		{name: "invalid scale falls back", scale: 0, width: 848, height: 448},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "board.png")
			require.NoError(t, ExportPNG(sampleBoard(), path, tt.scale, defaultLabels))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			img, err := png.Decode(f)
			require.NoError(t, err)
			assert.Equal(t, tt.width, img.Bounds().Dx())
			assert.Equal(t, tt.height, img.Bounds().Dy())
		})
	}
}

func TestExportPNGEmptyBoard(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.png")
	assert.ErrorContains(t, ExportPNG(NewBoard(), path, 1, defaultLabels), "nothing to export")
	assert.NoFileExists(t, path)
}

func TestExportVisualTXT(t *testing.T) {
	t.Parallel()

	b := sampleBoard()
	b.Viewport = DefaultViewport()
	ed := newTextEditor(EditTarget{Kind: KindHotspot, ID: b.Hotspots[0].ID}, Rect{X: 0, Y: 0, Width: 80, Height: 32}, "EDITING")
	s := scene{
		board:      b,
		vp:         b.Viewport,
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
		selected:   b.Contexts[0].ID,
		editor:     ed,
		labels:     defaultLabels,
	}

	path := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, exportVisualTXT(path, s, 120, 30))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Ordering")
	assert.Contains(t, text, "Place order")
	assert.NotContains(t, text, "EDITING")
	assert.NotContains(t, text, "\x1b[")
	assert.NotContains(t, text, "┏")

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Len(t, lines, 30)
	for _, line := range lines {
		assert.False(t, strings.HasSuffix(line, " "))
	}
}
