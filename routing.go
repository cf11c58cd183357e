package main

import "math"

// Path is a cubic Bézier curve in canvas space.
type Path struct {
	From, C1, C2, To Point
}

// Route draws a curve from the right edge of the source flow to the left
// edge of the target flow, both at vertical center. The control points bow
// outward in proportion to the horizontal gap, never less than
// ConnectionMinOffset.
func Route(from, to Flow) Path {
	src := FlowLayout(from).Rect
	dst := FlowLayout(to).Rect
	start := Point{X: src.Right(), Y: src.Center().Y}
	end := Point{X: dst.X, Y: dst.Center().Y}
	offset := ControlOffset(start.X, end.X)
	return Path{
		From: start,
		C1:   Point{X: start.X + offset, Y: start.Y},
		C2:   Point{X: end.X - offset, Y: end.Y},
		To:   end,
	}
}

func ControlOffset(sourceRight, targetX float64) float64 {
	return math.Max(ConnectionMinOffset, ConnectionOffsetRatio*math.Abs(targetX-sourceRight))
}

// RouteConnection resolves both endpoints on the board. It reports false
// when either flow is gone.
func RouteConnection(b Board, c Connection) (Path, bool) {
	from, ok := b.Flow(c.FromFlowID)
	if !ok {
		return Path{}, false
	}
	to, ok := b.Flow(c.ToFlowID)
	if !ok {
		return Path{}, false
	}
	return Route(from, to), true
}

func (p Path) At(t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p.From.X + b*p.C1.X + c*p.C2.X + d*p.To.X,
		Y: a*p.From.Y + b*p.C1.Y + c*p.C2.Y + d*p.To.Y,
	}
}

// Sample returns n+1 evenly spaced points along the curve.
func (p Path) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, p.At(float64(i)/float64(n)))
	}
	return pts
}

// Midpoint is where a connection label sits.
func (p Path) Midpoint() Point {
	return p.At(0.5)
}

// DistanceTo approximates the distance from q to the curve using a
// polyline of the sampled points.
func (p Path) DistanceTo(q Point) float64 {
	pts := p.Sample(32)
	best := math.Inf(1)
	for i := 0; i < len(pts)-1; i++ {
		best = math.Min(best, segmentDistance(pts[i], pts[i+1], q))
	}
	return best
}

func segmentDistance(a, b, q Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return math.Hypot(q.X-a.X, q.Y-a.Y)
	}
	t := ((q.X-a.X)*ab.X + (q.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	proj := a.Add(ab.Scale(t))
	return math.Hypot(q.X-proj.X, q.Y-proj.Y)
}
