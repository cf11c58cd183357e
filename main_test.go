package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	cfg := defaultConfig()
	cfg.SaveDirectory = t.TempDir()
	m := initialModel(cfg, zerolog.Nop(), NewBoard(), "")
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func updateCmd(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, keyPress(string(r)))
	}
	return m
}

func mouse(kind tea.MouseEventType, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Type: kind}
}

func TestModelDrawsContextAndUndoes(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = update(t, m, keyPress("3"))
	assert.Equal(t, ToolAddContext, m.currentBuffer().engine.ToolMode())

	m = update(t, m, mouse(tea.MouseLeft, 10, 5))
	m = update(t, m, mouse(tea.MouseMotion, 25, 10))
	m = update(t, m, mouse(tea.MouseRelease, 40, 15))

	board := m.currentBuffer().history.Current()
	require.Len(t, board.Contexts, 1)
	assert.Equal(t, Point{X: 84, Y: 88}, board.Contexts[0].Position)
	assert.Equal(t, Size{Width: 240, Height: 160}, board.Contexts[0].Size)
	assert.Equal(t, ToolSelect, m.currentBuffer().engine.ToolMode())
	assert.Contains(t, m.View(), "Bounded Context")

	m = update(t, m, keyPress("u"))
	assert.Empty(t, m.currentBuffer().engine.Board().Contexts)
	m = update(t, m, keyPress("U"))
	assert.Len(t, m.currentBuffer().engine.Board().Contexts, 1)
}

func TestModelEditsNoteAfterDoubleClick(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = update(t, m, keyPress("2"))
	m = update(t, m, mouse(tea.MouseLeft, 2, 1))
	m = update(t, m, mouse(tea.MouseRelease, 2, 1))

	engine := m.currentBuffer().engine
	require.Len(t, engine.Board().Flows, 1)
	flowID := engine.Board().Flows[0].ID

	m = update(t, m, mouse(tea.MouseLeft, 6, 3))
	m = update(t, m, mouse(tea.MouseRelease, 6, 3))
	assert.Nil(t, m.currentBuffer().engine.Editor())

	m = update(t, m, mouse(tea.MouseLeft, 6, 3))
	m, cmd := updateCmd(t, m, mouse(tea.MouseRelease, 6, 3))
	require.NotNil(t, m.currentBuffer().engine.Editor())
	assert.Equal(t, ModeEditing, m.mode)
	require.NotNil(t, cmd)

	// keys before focus are dropped
	m = typeText(t, m, "x")
	m = update(t, m, cmd())
	m = typeText(t, m, "OK")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlJ})
	m = typeText(t, m, "!")
	m = update(t, m, keyPress("enter"))

	assert.Nil(t, m.currentBuffer().engine.Editor())
	assert.Equal(t, ModeNormal, m.mode)
	f, ok := m.currentBuffer().history.Current().Flow(flowID)
	require.True(t, ok)
	assert.Equal(t, "OK\n!", f.Slots.Events[0].Text)
}

func TestModelAddsNoteFromPicker(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = update(t, m, keyPress("n"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.NotEmpty(t, m.errorMessage)

	m = update(t, m, keyPress("2"))
	m = update(t, m, mouse(tea.MouseLeft, 2, 1))
	m = update(t, m, mouse(tea.MouseRelease, 2, 1))
	m = update(t, m, keyPress("n"))
	assert.Equal(t, ModeNotePick, m.mode)

	m, cmd := updateCmd(t, m, keyPress("3"))
	assert.Equal(t, ModeEditing, m.mode)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	m = typeText(t, m, "Pay")
	m = update(t, m, keyPress("enter"))

	f := m.currentBuffer().engine.Board().Flows[0]
	require.Len(t, f.Slots.Commands, 1)
	assert.Equal(t, "Pay", f.Slots.Commands[0].Text)
}

func TestModelBufferBarShiftsCanvas(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	assert.Equal(t, 0.0, m.currentBuffer().engine.Container().Y)

	m = update(t, m, keyPress("N"))
	require.Len(t, m.buffers, 2)
	assert.Equal(t, 1, m.current)
	for _, buf := range m.buffers {
		assert.Equal(t, float64(DefaultCellHeight), buf.engine.Container().Y)
	}

	// row 0 is the buffer bar
	m = update(t, m, keyPress("6"))
	m = update(t, m, mouse(tea.MouseLeft, 5, 0))
	assert.Empty(t, m.currentBuffer().engine.Board().Hotspots)

	m = update(t, m, mouse(tea.MouseLeft, 5, 1))
	hotspots := m.currentBuffer().engine.Board().Hotspots
	require.Len(t, hotspots, 1)
	assert.Equal(t, Point{X: 44, Y: 8}, hotspots[0].Position)

	m = update(t, m, keyPress("{"))
	assert.Equal(t, 0, m.current)
	assert.Contains(t, m.View(), "Board 2*")

	m = update(t, m, keyPress("x"))
	require.Len(t, m.buffers, 1)
	assert.Equal(t, 0.0, m.currentBuffer().engine.Container().Y)
}

func TestModelQuit(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	_, cmd := updateCmd(t, m, keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m.currentBuffer().engine.AddHotspotText(Point{}, "unsaved")
	m, cmd = updateCmd(t, m, keyPress("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, m.mode)

	m = update(t, m, keyPress("n"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModelSaveAndOpen(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.currentBuffer().engine.AddHotspotText(Point{X: 10, Y: 10}, "saved")

	m = update(t, m, keyPress("w"))
	assert.Equal(t, ModeFileInput, m.mode)
	m = typeText(t, m, "demo")
	m = update(t, m, keyPress("enter"))

	path := filepath.Join(m.config.SaveDirectory, "demo.json")
	require.FileExists(t, path)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, path, m.currentBuffer().filename)
	assert.False(t, m.currentBuffer().history.Dirty())

	m = update(t, m, keyPress("O"))
	assert.Equal(t, []string{"demo.json"}, m.fileList)
	assert.Equal(t, "demo", m.filename)
	m = update(t, m, keyPress("enter"))

	require.Len(t, m.buffers, 2)
	hotspots := m.currentBuffer().engine.Board().Hotspots
	require.Len(t, hotspots, 1)
	assert.Equal(t, "saved", hotspots[0].Text)

	m = update(t, m, keyPress("w"))
	m = update(t, m, keyPress("enter"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModelExports(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.currentBuffer().engine.AddHotspotText(Point{X: 16, Y: 16}, "export me")

	m = update(t, m, keyPress("W"))
	m = typeText(t, m, "board")
	m = update(t, m, keyPress("enter"))
	assert.FileExists(t, filepath.Join(m.config.SaveDirectory, "board.png"))
	assert.Empty(t, m.errorMessage)

	m = update(t, m, keyPress("T"))
	m = typeText(t, m, "board")
	m = update(t, m, keyPress("enter"))
	data, err := os.ReadFile(filepath.Join(m.config.SaveDirectory, "board.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "export me")
}

func TestModelHelpEndsGesture(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.currentBuffer().engine.AddHotspotText(Point{}, "h")
	m = update(t, m, mouse(tea.MouseLeft, 1, 1))
	m = update(t, m, mouse(tea.MouseMotion, 5, 1))
	require.True(t, m.currentBuffer().engine.Gesturing())

	m = update(t, m, keyPress("?"))
	assert.True(t, m.help)
	assert.False(t, m.currentBuffer().engine.Gesturing())
	assert.Contains(t, m.View(), "Stormboard Help")

	m = update(t, m, keyPress("esc"))
	assert.False(t, m.help)
}

func TestWithExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.json", withExtension("a", ".json"))
	assert.Equal(t, "a.JSON", withExtension("a.JSON", ".json"))
	assert.Equal(t, "a.json.png", withExtension("a.json", ".png"))
}
