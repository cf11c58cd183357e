package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// boardBounds is the canvas-space rectangle covering every entity.
func boardBounds(b Board) (Rect, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(r Rect) {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}
	for _, d := range b.Domains {
		grow(RectFrom(d.Position, d.Size))
	}
	for _, c := range b.Contexts {
		grow(RectFrom(c.Position, c.Size))
	}
	for _, f := range b.Flows {
		grow(FlowLayout(f).Rect)
	}
	for _, h := range b.Hotspots {
		grow(HotspotRect(h))
	}
	for _, c := range b.Connections {
		if path, ok := RouteConnection(b, c); ok {
			for _, p := range []Point{path.From, path.C1, path.C2, path.To} {
				grow(Rect{X: p.X, Y: p.Y})
			}
		}
	}
	if math.IsInf(minX, 1) {
		return Rect{}, false
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// ExportPNG rasterizes the whole board, independent of the viewport.
func ExportPNG(b Board, filename string, scale float64, labels Labels) error {
	bounds, ok := boardBounds(b)
	if !ok {
		return fmt.Errorf("nothing to export")
	}
	if scale <= 0 {
		scale = 1
	}

	padding := 24.0
	origin := Point{X: bounds.X - padding, Y: bounds.Y - padding}
	imageWidth := int(math.Ceil((bounds.Width + 2*padding) * scale))
	imageHeight := int(math.Ceil((bounds.Height + 2*padding) * scale))

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()
	dc.Scale(scale, scale)
	dc.Translate(-origin.X, -origin.Y)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, d := range b.Domains {
		drawRegionPNG(dc, RectFrom(d.Position, d.Size), d.Name, domainColors[d.Type], 3)
	}
	for _, c := range b.Contexts {
		dc.SetDash(6, 4)
		drawRegionPNG(dc, RectFrom(c.Position, c.Size), c.Name, contextColor, 2)
		dc.SetDash()
	}
	for _, c := range b.Connections {
		drawConnectionPNG(dc, b, c)
	}
	for _, f := range b.Flows {
		drawFlowPNG(dc, f, labels)
	}
	for _, h := range b.Hotspots {
		drawHotspotPNG(dc, h)
	}

	return dc.SavePNG(filename)
}

func drawRegionPNG(dc *gg.Context, r Rect, name, color string, width float64) {
	dc.SetLineWidth(width)
	dc.SetHexColor(color)
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	dc.Stroke()
	if name != "" {
		dc.DrawStringAnchored(name, r.X+8, r.Y+LabelHeight/2, 0, 0.5)
	}
}

func drawFlowPNG(dc *gg.Context, f Flow, labels Labels) {
	geo := FlowLayout(f)
	dc.SetLineWidth(1)
	dc.SetHexColor(flowColor)
	dc.DrawRoundedRectangle(geo.Rect.X, geo.Rect.Y, geo.Rect.Width, geo.Rect.Height, 6)
	dc.Stroke()

	for _, col := range geo.Columns {
		for _, n := range col.Notes {
			r := n.Rect
			dc.SetHexColor(slotColors[col.Slot])
			dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
			dc.Fill()

			text := noteText(f, n.ID)
			dc.SetHexColor("#000000")
			if text == "" {
				text = labels.Get("slot." + string(col.Slot))
				dc.SetHexColor("#666666")
			}
			dc.DrawStringWrapped(text, r.X+6, r.Y+6, 0, 0, r.Width-12, 1.2, gg.AlignLeft)
		}
	}
}

func drawConnectionPNG(dc *gg.Context, b Board, c Connection) {
	path, ok := RouteConnection(b, c)
	if !ok {
		return
	}
	dc.SetLineWidth(1.5)
	dc.SetHexColor("#2C3E50")
	dc.MoveTo(path.From.X, path.From.Y)
	dc.CubicTo(path.C1.X, path.C1.Y, path.C2.X, path.C2.Y, path.To.X, path.To.Y)
	dc.Stroke()
	drawArrowPNG(dc, path.C2, path.To)

	if c.Label != "" {
		mid := path.Midpoint()
		dc.DrawStringAnchored(c.Label, mid.X, mid.Y-8, 0.5, 0.5)
	}
}

// drawArrowPNG draws a filled head at tip pointing away from tail.
func drawArrowPNG(dc *gg.Context, tail, tip Point) {
	dx := tip.X - tail.X
	dy := tip.Y - tail.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	arrowSize := 8.0
	arrowAngle := 0.5
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(tip.X-arrowSize*dx+arrowSize*dy*arrowAngle, tip.Y-arrowSize*dy-arrowSize*dx*arrowAngle)
	dc.LineTo(tip.X-arrowSize*dx-arrowSize*dy*arrowAngle, tip.Y-arrowSize*dy+arrowSize*dx*arrowAngle)
	dc.ClosePath()
	dc.Fill()
}

func drawHotspotPNG(dc *gg.Context, h Hotspot) {
	r := HotspotRect(h)
	dc.SetHexColor("#FDEDEC")
	dc.DrawRoundedRectangle(r.X, r.Y, r.Width, r.Height, 12)
	dc.FillPreserve()
	dc.SetHexColor(hotspotColor)
	dc.SetLineWidth(2)
	dc.Stroke()
	dc.DrawStringWrapped(h.Text, r.X+8, r.Y+8, 0, 0, r.Width-16, 1.2, gg.AlignLeft)
}

// exportVisualTXT writes the frame exactly as it appears, without cursor,
// selection or editor.
func exportVisualTXT(filename string, s scene, width, height int) error {
	s.selected = ""
	s.connectionFrom = ""
	s.dragOver = ""
	s.preview = nil
	s.editor = nil
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}
	lines := renderScene(s, width, height, true)
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	if err := os.WriteFile(filename, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
