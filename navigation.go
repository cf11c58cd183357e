package main

// panStepCells is how far one arrow press moves the view, in cells.
const panStepCells = 4

// handlePan moves the viewport of the current buffer. Arrow keys move the
// view over the canvas, so the board itself shifts the other way.
func (m *model) handlePan(key string) {
	buf := m.currentBuffer()
	if buf == nil {
		return
	}
	speed := float64(m.getMoveSpeed(key) * panStepCells)
	dx := speed * float64(m.config.CellWidth)
	dy := speed * float64(m.config.CellHeight)
	switch key {
	case "left", "shift+left", "h", "H":
		buf.engine.PanBy(dx, 0)
	case "right", "shift+right", "l", "L":
		buf.engine.PanBy(-dx, 0)
	case "up", "shift+up", "k", "K":
		buf.engine.PanBy(0, dy)
	case "down", "shift+down", "j", "J":
		buf.engine.PanBy(0, -dy)
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func isPanKey(key string) bool {
	switch key {
	case "left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down",
		"h", "j", "k", "l", "H", "J", "K", "L":
		return true
	}
	return false
}
