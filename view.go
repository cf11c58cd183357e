package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// scene is everything the renderers need for one frame. Renderers are
// stateless; they only translate entity data into cells.
type scene struct {
	board          Board
	vp             Viewport
	container      Rect
	cellWidth      float64
	cellHeight     float64
	selected       string
	connectionFrom string
	dragOver       string
	preview        *Rect
	previewKind    EntityKind
	editor         *TextEditor
	labels         Labels
}

func sceneFromEngine(e *Engine, cellWidth, cellHeight int) scene {
	s := scene{
		board:          e.Board(),
		vp:             e.Viewport(),
		container:      e.Container(),
		cellWidth:      float64(cellWidth),
		cellHeight:     float64(cellHeight),
		selected:       e.Selected(),
		connectionFrom: e.ConnectionFrom(),
		dragOver:       e.DragOver(),
		editor:         e.Editor(),
		labels:         e.Labels(),
	}
	if r, kind, ok := e.DrawPreview(); ok {
		s.preview = &r
		s.previewKind = kind
	}
	return s
}

type boxChars struct {
	h, v, tl, tr, bl, br rune
}

var (
	dashedBox  = boxChars{'┄', '┆', '┌', '┐', '└', '┘'}
	doubleBox  = boxChars{'═', '║', '╔', '╗', '╚', '╝'}
	roundedBox = boxChars{'─', '│', '╭', '╮', '╰', '╯'}
	heavyBox   = boxChars{'━', '┃', '┏', '┓', '┗', '┛'}
	dottedBox  = boxChars{'·', '·', '·', '·', '·', '·'}
)

// cellGrid is a terminal frame: one rune and one style per cell.
type cellGrid struct {
	width, height int
	runes         [][]rune
	styles        [][]int
	palette       []lipgloss.Style
	index         map[string]int
	plain         bool
}

func newCellGrid(width, height int, plain bool) *cellGrid {
	g := &cellGrid{
		width:   width,
		height:  height,
		runes:   make([][]rune, height),
		styles:  make([][]int, height),
		palette: []lipgloss.Style{lipgloss.NewStyle()},
		index:   map[string]int{"": 0},
		plain:   plain,
	}
	for y := 0; y < height; y++ {
		g.runes[y] = []rune(strings.Repeat(" ", width))
		g.styles[y] = make([]int, width)
	}
	return g
}

// style registers a foreground/background pair and returns its index.
func (g *cellGrid) style(fg, bg string, bold bool) int {
	key := fg + "|" + bg
	if bold {
		key += "|b"
	}
	if i, ok := g.index[key]; ok {
		return i
	}
	st := lipgloss.NewStyle().Bold(bold)
	if fg != "" {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	g.palette = append(g.palette, st)
	g.index[key] = len(g.palette) - 1
	return len(g.palette) - 1
}

func (g *cellGrid) set(x, y int, r rune, style int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.runes[y][x] = r
	g.styles[y][x] = style
}

func (g *cellGrid) text(x, y int, s string, maxLen int, style int) {
	i := 0
	for _, r := range s {
		if maxLen >= 0 && i >= maxLen {
			break
		}
		g.set(x+i, y, r, style)
		i++
	}
}

func (g *cellGrid) fill(x0, y0, x1, y1 int, r rune, style int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.set(x, y, r, style)
		}
	}
}

func (g *cellGrid) box(c cellRect, chars boxChars, style int) {
	for x := c.x0 + 1; x < c.x1; x++ {
		g.set(x, c.y0, chars.h, style)
		g.set(x, c.y1, chars.h, style)
	}
	for y := c.y0 + 1; y < c.y1; y++ {
		g.set(c.x0, y, chars.v, style)
		g.set(c.x1, y, chars.v, style)
	}
	g.set(c.x0, c.y0, chars.tl, style)
	g.set(c.x1, c.y0, chars.tr, style)
	g.set(c.x0, c.y1, chars.bl, style)
	g.set(c.x1, c.y1, chars.br, style)
}

func (g *cellGrid) lines() []string {
	out := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		if g.plain {
			out[y] = string(g.runes[y])
			continue
		}
		var line strings.Builder
		start := 0
		for x := 1; x <= g.width; x++ {
			if x < g.width && g.styles[y][x] == g.styles[y][start] {
				continue
			}
			run := string(g.runes[y][start:x])
			if st := g.styles[y][start]; st == 0 {
				line.WriteString(run)
			} else {
				line.WriteString(g.palette[st].Render(run))
			}
			start = x
		}
		out[y] = line.String()
	}
	return out
}

type cellRect struct {
	x0, y0, x1, y1 int
}

func (c cellRect) innerWidth() int { return c.x1 - c.x0 - 1 }

// toCell maps a screen pixel to a grid cell.
func (s scene) toCell(p Point) (int, int) {
	return int(math.Floor((p.X - s.container.X) / s.cellWidth)),
		int(math.Floor((p.Y - s.container.Y) / s.cellHeight))
}

// cellsOf places a canvas-space rectangle on the grid. Tiny rectangles still
// get at least a 2x2 box.
func (s scene) cellsOf(r Rect) cellRect {
	sr := ScreenRect(r, s.vp, s.container)
	return s.cellsOfScreen(sr)
}

func (s scene) cellsOfScreen(sr Rect) cellRect {
	x0, y0 := s.toCell(sr.Pos())
	x1, y1 := s.toCell(Point{X: sr.Right(), Y: sr.Bottom()})
	return cellRect{x0: x0, y0: y0, x1: max(x1, x0+1), y1: max(y1, y0+1)}
}

// renderScene paints one frame of width x height cells.
func renderScene(s scene, width, height int, plain bool) []string {
	g := newCellGrid(max(width, 1), max(height, 1), plain)
	b := s.board

	for _, d := range b.Domains {
		s.drawRegion(g, RectFrom(d.Position, d.Size), d.ID, d.Name, doubleBox, domainColors[d.Type])
	}
	for _, c := range b.Contexts {
		s.drawRegion(g, RectFrom(c.Position, c.Size), c.ID, c.Name, dashedBox, contextColor)
	}
	for _, c := range b.Connections {
		s.drawConnection(g, c)
	}
	for _, f := range b.Flows {
		s.drawFlow(g, f)
	}
	for _, h := range b.Hotspots {
		s.drawHotspot(g, h)
	}
	if s.preview != nil {
		color := previewColor
		if s.previewKind == KindDomain {
			color = domainColors[DomainCore]
		}
		g.box(s.cellsOf(*s.preview), dottedBox, g.style(color, "", false))
	}
	if s.editor != nil {
		s.drawEditor(g, s.editor)
	}
	return g.lines()
}

func (s scene) borderStyle(g *cellGrid, id, color string) int {
	switch id {
	case s.selected:
		return g.style(selectedColor, "", true)
	case s.connectionFrom:
		return g.style(pendingColor, "", true)
	}
	return g.style(color, "", false)
}

func (s scene) drawRegion(g *cellGrid, r Rect, id, name string, chars boxChars, color string) {
	c := s.cellsOf(r)
	style := s.borderStyle(g, id, color)
	if id == s.selected {
		chars = heavyBox
	}
	g.box(c, chars, style)
	if name != "" && c.innerWidth() > 2 {
		g.text(c.x0+2, c.y0, " "+name+" ", c.innerWidth()-2, style)
	}
}

func (s scene) drawFlow(g *cellGrid, f Flow) {
	geo := FlowLayout(f)
	outer := s.cellsOf(geo.Rect)
	chars := roundedBox
	if f.ID == s.selected {
		chars = heavyBox
	}
	g.box(outer, chars, s.borderStyle(g, f.ID, flowColor))

	for _, col := range geo.Columns {
		bg := slotColors[col.Slot]
		for _, n := range col.Notes {
			c := s.cellsOf(n.Rect)
			style := g.style("#000000", bg, false)
			if n.ID == s.dragOver {
				style = g.style(bg, "#000000", true)
			}
			g.fill(c.x0, c.y0, c.x1, c.y1, ' ', style)
			text := noteText(f, n.ID)
			if text == "" {
				text = s.labels.Get("slot." + string(col.Slot))
				style = g.style("#555555", bg, false)
			}
			for i, line := range strings.Split(text, "\n") {
				if c.y0+i > c.y1 {
					break
				}
				g.text(c.x0, c.y0+i, line, c.x1-c.x0+1, style)
			}
		}
	}
}

func noteText(f Flow, noteID string) string {
	slot, i, ok := f.FindNote(noteID)
	if !ok {
		return ""
	}
	return f.Slots.Get(slot)[i].Text
}

func (s scene) drawConnection(g *cellGrid, c Connection) {
	path, ok := RouteConnection(s.board, c)
	if !ok {
		return
	}
	color := connectionColor
	if c.ID == s.selected {
		color = selectedColor
	}
	style := g.style(color, "", c.ID == s.selected)

	from := ToScreenCoords(path.From, s.vp, s.container)
	to := ToScreenCoords(path.To, s.vp, s.container)
	cells := math.Hypot(to.X-from.X, to.Y-from.Y) / math.Min(s.cellWidth, s.cellHeight)
	samples := curveSamples(cells, g.width, g.height)

	lastX, lastY := math.MinInt, math.MinInt
	for _, p := range path.Sample(samples) {
		x, y := s.toCell(ToScreenCoords(p, s.vp, s.container))
		if x == lastX && y == lastY {
			continue
		}
		g.set(x, y, '·', style)
		lastX, lastY = x, y
	}
	if lastX != math.MinInt {
		g.set(lastX, lastY, '▶', style)
	}
	if c.Label != "" {
		x, y := s.toCell(ToScreenCoords(path.Midpoint(), s.vp, s.container))
		label := []rune(c.Label)
		g.text(x-len(label)/2, y, c.Label, -1, style)
	}
}

// curveSamples picks how many segments a curve spanning the given number of
// cells is drawn with. Far off-grid curves are capped by the grid size.
func curveSamples(cells float64, width, height int) int {
	limit := float64(4 * (width + height))
	if math.IsNaN(cells) {
		return 8
	}
	return max(8, int(math.Min(cells*2, limit)))
}

func (s scene) drawHotspot(g *cellGrid, h Hotspot) {
	c := s.cellsOf(HotspotRect(h))
	style := s.borderStyle(g, h.ID, hotspotColor)
	g.fill(c.x0+1, c.y0+1, c.x1-1, c.y1-1, ' ', 0)
	g.box(c, roundedBox, style)
	g.set(c.x0, c.y0, '!', style)
	for i, line := range strings.Split(h.Text, "\n") {
		if c.y0+1+i >= c.y1 {
			break
		}
		g.text(c.x0+1, c.y0+1+i, line, c.innerWidth(), g.style(hotspotColor, "", false))
	}
}

// drawEditor paints the floating editor over its anchor with a block cursor.
func (s scene) drawEditor(g *cellGrid, ed *TextEditor) {
	c := s.cellsOfScreen(ed.Anchor)
	lines := strings.Split(ed.Text(), "\n")
	c.y1 = max(c.y1, c.y0+len(lines)+1)
	c.x0--
	c.x1++
	style := g.style(selectedColor, "", true)
	g.fill(c.x0+1, c.y0+1, c.x1-1, c.y1-1, ' ', 0)
	g.box(c, doubleBox, style)

	textStyle := g.style("#FFFFFF", "", false)
	cursorLine, cursorCol := cursorPosition(ed.Text(), ed.Cursor())
	for i, line := range lines {
		runes := []rune(line)
		if i == cursorLine && ed.Focused() {
			if cursorCol >= len(runes) {
				runes = append(runes, '█')
			} else {
				runes[cursorCol] = '█'
			}
		}
		g.text(c.x0+1, c.y0+1+i, string(runes), c.innerWidth(), textStyle)
	}
}

// cursorPosition converts a rune offset into line/column.
func cursorPosition(text string, cursor int) (int, int) {
	line, col := 0, 0
	for i, r := range []rune(text) {
		if i >= cursor {
			break
		}
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}
