package main

// ViewportController owns the live pan/zoom and recognizes pan gestures.
type ViewportController struct {
	vp        Viewport
	panning   bool
	panKey    bool
	anchor    Point
	anchorVp  Viewport
	container Rect
	onChange  func(Viewport)
}

func NewViewportController(vp Viewport, onChange func(Viewport)) *ViewportController {
	vc := &ViewportController{onChange: onChange}
	vc.Set(vp)
	return vc
}

func (vc *ViewportController) Viewport() Viewport { return vc.vp }

func (vc *ViewportController) IsPanning() bool { return vc.panning }

func (vc *ViewportController) PanKeyHeld() bool { return vc.panKey }

// Set replaces the viewport without reporting it, used when the owner hands
// a new board down.
func (vc *ViewportController) Set(vp Viewport) {
	if !isFinite(vp.X, vp.Y) {
		vp.X, vp.Y = 0, 0
	}
	if vp.Zoom == 0 {
		vp.Zoom = 1
	}
	vp.Zoom = ClampZoom(vp.Zoom)
	vc.vp = vp
}

// SetContainer records the screen rectangle the canvas occupies.
func (vc *ViewportController) SetContainer(r Rect) {
	vc.container = r
}

func (vc *ViewportController) Container() Rect { return vc.container }

// ShouldPan reports whether a pointer-down with this button starts a pan.
func (vc *ViewportController) ShouldPan(button MouseButton) bool {
	return vc.panKey || button == ButtonMiddle
}

// PointerDown begins a pan when triggered and reports whether it consumed the event.
func (vc *ViewportController) PointerDown(ev PointerEvent) bool {
	if !vc.ShouldPan(ev.Button) || !isFinite(ev.X, ev.Y) {
		return false
	}
	vc.panning = true
	vc.anchor = Point{X: ev.X, Y: ev.Y}
	vc.anchorVp = vc.vp
	return true
}

func (vc *ViewportController) PointerMove(ev PointerEvent) bool {
	if !vc.panning {
		return false
	}
	if !isFinite(ev.X, ev.Y) {
		return true
	}
	vc.emit(Viewport{
		X:    vc.anchorVp.X + (ev.X - vc.anchor.X),
		Y:    vc.anchorVp.Y + (ev.Y - vc.anchor.Y),
		Zoom: vc.vp.Zoom,
	})
	return true
}

func (vc *ViewportController) PointerUp(ev PointerEvent) bool {
	if !vc.panning {
		return false
	}
	vc.panning = false
	return true
}

// Cancel drops an in-flight pan without emitting.
func (vc *ViewportController) Cancel() {
	vc.panning = false
}

// Wheel zooms around the pointer so the canvas point under it stays fixed.
func (vc *ViewportController) Wheel(ev WheelEvent) {
	if ev.DeltaY == 0 || !isFinite(ev.X, ev.Y, ev.DeltaY) {
		return
	}
	next := vc.vp.Zoom * ZoomStep
	if ev.DeltaY > 0 {
		next = vc.vp.Zoom / ZoomStep
	}
	vc.zoomAt(Point{X: ev.X - vc.container.X, Y: ev.Y - vc.container.Y}, next)
}

func (vc *ViewportController) ZoomIn() {
	vc.zoomAt(vc.center(), vc.vp.Zoom*ZoomStep)
}

func (vc *ViewportController) ZoomOut() {
	vc.zoomAt(vc.center(), vc.vp.Zoom/ZoomStep)
}

func (vc *ViewportController) ResetView() {
	vc.emit(DefaultViewport())
}

func (vc *ViewportController) PanBy(dx, dy float64) {
	if !isFinite(dx, dy) {
		return
	}
	vc.emit(Viewport{X: vc.vp.X + dx, Y: vc.vp.Y + dy, Zoom: vc.vp.Zoom})
}

func (vc *ViewportController) KeyDown(key string) bool {
	if key != KeySpace {
		return false
	}
	vc.panKey = true
	return true
}

func (vc *ViewportController) KeyUp(key string) bool {
	if key != KeySpace {
		return false
	}
	vc.panKey = false
	return true
}

// zoomAt zooms keeping the container-relative point p fixed on screen.
func (vc *ViewportController) zoomAt(p Point, zoom float64) {
	old := vc.vp.Zoom
	zoom = ClampZoom(zoom)
	if zoom == old {
		return
	}
	ratio := zoom / old
	vc.emit(Viewport{
		X:    p.X - (p.X-vc.vp.X)*ratio,
		Y:    p.Y - (p.Y-vc.vp.Y)*ratio,
		Zoom: zoom,
	})
}

// center is the middle of the container, relative to it. Toolbar zooms
// anchor here; with no container known the origin is used.
func (vc *ViewportController) center() Point {
	return Point{X: vc.container.Width / 2, Y: vc.container.Height / 2}
}

func (vc *ViewportController) emit(vp Viewport) {
	if !isFinite(vp.X, vp.Y, vp.Zoom) {
		return
	}
	vp.Zoom = ClampZoom(vp.Zoom)
	if vp == vc.vp {
		return
	}
	vc.vp = vp
	if vc.onChange != nil {
		vc.onChange(vp)
	}
}
