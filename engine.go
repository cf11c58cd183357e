package main

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Engine is the canvas orchestrator. It interprets pointer and keyboard
// events against the current tool mode and emits new boards to its Host.
// It never mutates a board it has handed out.
type Engine struct {
	host   Host
	ids    IDSource
	labels Labels
	log    zerolog.Logger
	now    func() time.Time

	board          Board
	tool           ToolMode
	selected       string
	connectionFrom string
	gesture        gesture
	dragOver       string
	editor         *TextEditor
	viewport       *ViewportController
}

type EngineOption func(*Engine)

func WithIDSource(ids IDSource) EngineOption {
	return func(e *Engine) { e.ids = ids }
}

func WithLogger(log zerolog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func WithLabels(labels Labels) EngineOption {
	return func(e *Engine) { e.labels = labels }
}

func NewEngine(host Host, board Board, opts ...EngineOption) *Engine {
	e := &Engine{
		host:   host,
		ids:    uuidSource{},
		labels: defaultLabels,
		log:    zerolog.Nop(),
		now:    time.Now,
		board:  board,
		tool:   ToolSelect,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.viewport = NewViewportController(board.Viewport, e.onViewportChange)
	return e
}

func (e *Engine) Board() Board             { return e.board }
func (e *Engine) ToolMode() ToolMode       { return e.tool }
func (e *Engine) Selected() string         { return e.selected }
func (e *Engine) ConnectionFrom() string   { return e.connectionFrom }
func (e *Engine) DragOver() string         { return e.dragOver }
func (e *Engine) Editor() *TextEditor      { return e.editor }
func (e *Engine) Viewport() Viewport       { return e.viewport.Viewport() }
func (e *Engine) PanKeyHeld() bool         { return e.viewport.PanKeyHeld() }
func (e *Engine) Labels() Labels           { return e.labels }
func (e *Engine) SetContainer(r Rect)      { e.viewport.SetContainer(r) }
func (e *Engine) Container() Rect          { return e.viewport.Container() }
func (e *Engine) Gesturing() bool          { return e.gesture != nil || e.viewport.IsPanning() }
func (e *Engine) SelectedKind() EntityKind { return e.board.KindOf(e.selected) }

// SetBoard takes a board the host produced on its own (load, undo, redo).
// Selection and a pending connection source that no longer resolve are
// dropped; an in-flight gesture degrades to a no-op on its next event.
func (e *Engine) SetBoard(b Board) {
	e.board = b
	e.viewport.Set(b.Viewport)
	if e.board.KindOf(e.selected) == KindNone {
		e.selected = ""
	}
	if e.board.FlowIndex(e.connectionFrom) < 0 {
		e.connectionFrom = ""
	}
}

// SetToolMode switches the active tool. A pending connection source and an
// unfinished rubber band belong to the old tool and are dropped.
func (e *Engine) SetToolMode(t ToolMode) {
	if t == e.tool {
		return
	}
	e.tool = t
	e.connectionFrom = ""
	if _, ok := e.gesture.(*drawGesture); ok {
		e.gesture = nil
	}
}

// DrawPreview returns the rubber-band rectangle while a draw is in progress.
func (e *Engine) DrawPreview() (Rect, EntityKind, bool) {
	g, ok := e.gesture.(*drawGesture)
	if !ok {
		return Rect{}, KindNone, false
	}
	return g.Rect(), g.kind, true
}

func (e *Engine) ZoomIn()    { e.viewport.ZoomIn() }
func (e *Engine) ZoomOut()   { e.viewport.ZoomOut() }
func (e *Engine) ResetView() { e.viewport.ResetView() }

func (e *Engine) PanBy(dx, dy float64) { e.viewport.PanBy(dx, dy) }

// onViewportChange persists pan and zoom. During a drag or resize the
// board holds uncommitted geometry, so the change rides along as an
// intermediate and lands with the gesture's final commit.
func (e *Engine) onViewportChange(vp Viewport) {
	b := e.board
	b.Viewport = vp
	switch e.gesture.(type) {
	case *dragGesture, *resizeGesture:
		e.intermediate(b)
	default:
		e.commit(b)
	}
}

func (e *Engine) commit(b Board) {
	b.UpdatedAt = e.now()
	e.board = b
	e.log.Trace().Time("updated_at", b.UpdatedAt).Msg("board committed")
	if e.host != nil {
		e.host.Commit(b)
	}
}

func (e *Engine) intermediate(b Board) {
	e.board = b
	if e.host != nil {
		e.host.ApplyIntermediate(b)
	}
}

func (e *Engine) resetTool() {
	e.tool = ToolSelect
	if e.host != nil {
		e.host.ResetToolMode()
	}
}

func (e *Engine) toCanvas(x, y float64) Point {
	return ToCanvasCoords(x, y, e.viewport.Viewport(), e.viewport.Container())
}

func (e *Engine) PointerDown(ev PointerEvent) {
	if e.editor != nil {
		if e.editor.Anchor.Contains(Point{X: ev.X, Y: ev.Y}) {
			return
		}
		e.CommitEdit()
	}
	if e.viewport.PointerDown(ev) {
		e.gesture = nil
		return
	}
	if ev.Button != ButtonLeft || !isFinite(ev.X, ev.Y) {
		return
	}

	// last gesture wins
	e.gesture = nil
	e.dragOver = ""

	p := e.toCanvas(ev.X, ev.Y)
	hit := HitTest(e.board, p, e.viewport.Viewport().Zoom)

	switch e.tool {
	case ToolAddFlow:
		if hit.Kind == KindFlow || hit.Kind == KindHotspot {
			return
		}
		f := NewFlow(e.ids, p)
		b := e.board
		b.Flows = append(cloneSlice(b.Flows), f)
		e.selected = f.ID
		e.commit(b)
		e.resetTool()
	case ToolAddHotspot:
		if hit.Kind == KindFlow || hit.Kind == KindHotspot {
			return
		}
		h := NewHotspot(e.ids, p, e.labels.Get("hotspot.defaultText"))
		b := e.board
		b.Hotspots = append(cloneSlice(b.Hotspots), h)
		e.selected = h.ID
		e.commit(b)
		e.resetTool()
	case ToolAddContext:
		e.gesture = &drawGesture{kind: KindContext, start: p, current: p}
	case ToolAddDomain:
		e.gesture = &drawGesture{kind: KindDomain, start: p, current: p}
	case ToolAddConnection:
		e.clickConnection(hit)
	case ToolSelect:
		e.clickSelect(hit, ev)
	}
}

func (e *Engine) clickConnection(hit Hit) {
	if hit.Kind != KindFlow {
		e.connectionFrom = ""
		return
	}
	if e.connectionFrom == "" {
		e.connectionFrom = hit.ID
		return
	}
	if e.connectionFrom == hit.ID {
		return
	}
	if e.board.FlowIndex(e.connectionFrom) < 0 || e.board.FlowIndex(hit.ID) < 0 {
		e.log.Debug().Str("from", e.connectionFrom).Str("to", hit.ID).Msg("connection endpoint missing")
		e.connectionFrom = ""
		return
	}
	c := NewConnection(e.ids, e.connectionFrom, hit.ID)
	b := e.board
	b.Connections = append(cloneSlice(b.Connections), c)
	e.connectionFrom = ""
	e.selected = c.ID
	e.commit(b)
	e.resetTool()
}

func (e *Engine) clickSelect(hit Hit, ev PointerEvent) {
	if hit.Empty() {
		e.selected = ""
		e.connectionFrom = ""
		return
	}
	e.selected = hit.ID
	start := Point{X: ev.X, Y: ev.Y}

	if hit.Part == PartHandle && (hit.Kind == KindContext || hit.Kind == KindDomain) {
		r, ok := e.board.Region(hit.Kind, hit.ID)
		if !ok {
			return
		}
		e.gesture = &resizeGesture{kind: hit.Kind, id: hit.ID, edge: hit.Edge, start: start, orig: r}
		return
	}
	if hit.Part == PartNote && ev.Shift {
		e.gesture = &reorderGesture{flowID: hit.ID, slot: hit.Slot, noteID: hit.NoteID}
		return
	}
	switch hit.Kind {
	case KindFlow, KindContext, KindDomain, KindHotspot:
		pos, ok := e.board.Position(hit.Kind, hit.ID)
		if !ok {
			return
		}
		e.gesture = &dragGesture{kind: hit.Kind, id: hit.ID, start: start, orig: pos}
	}
}

func (e *Engine) PointerMove(ev PointerEvent) {
	if e.viewport.PointerMove(ev) {
		return
	}
	if !isFinite(ev.X, ev.Y) {
		return
	}
	zoom := e.viewport.Viewport().Zoom
	switch g := e.gesture.(type) {
	case nil:
	case *dragGesture:
		delta := Point{X: ev.X, Y: ev.Y}.Sub(g.start).Scale(1 / zoom)
		b, ok := e.board.WithPosition(g.kind, g.id, g.orig.Add(delta))
		if !ok {
			e.log.Debug().Stringer("kind", g.kind).Str("id", g.id).Msg("drag target vanished")
			e.gesture = nil
			return
		}
		g.moves++
		e.intermediate(b)
	case *resizeGesture:
		delta := Point{X: ev.X, Y: ev.Y}.Sub(g.start).Scale(1 / zoom)
		b, ok := e.board.WithRegion(g.kind, g.id, resizeRect(g.orig, g.edge, delta))
		if !ok {
			e.log.Debug().Stringer("kind", g.kind).Str("id", g.id).Msg("resize target vanished")
			e.gesture = nil
			return
		}
		g.moves++
		e.intermediate(b)
	case *drawGesture:
		g.current = e.toCanvas(ev.X, ev.Y)
	case *reorderGesture:
		hit := HitTest(e.board, e.toCanvas(ev.X, ev.Y), zoom)
		if hit.Part == PartNote && hit.ID == g.flowID && hit.Slot == g.slot {
			e.dragOver = hit.NoteID
		} else {
			e.dragOver = ""
		}
	}
}

func (e *Engine) PointerUp(ev PointerEvent) {
	if e.viewport.PointerUp(ev) {
		return
	}
	g := e.gesture
	e.gesture = nil
	switch g := g.(type) {
	case nil:
	case *dragGesture:
		if _, ok := e.board.Position(g.kind, g.id); !ok {
			return
		}
		e.log.Trace().Stringer("kind", g.kind).Int("moves", g.moves).Msg("drag finished")
		e.commit(e.board)
	case *resizeGesture:
		if _, ok := e.board.Region(g.kind, g.id); !ok {
			return
		}
		e.log.Trace().Stringer("kind", g.kind).Int("moves", g.moves).Msg("resize finished")
		e.commit(e.board)
	case *drawGesture:
		if isFinite(ev.X, ev.Y) {
			g.current = e.toCanvas(ev.X, ev.Y)
		}
		e.finishDraw(g)
	case *reorderGesture:
		target := e.dragOver
		e.dragOver = ""
		if target == "" || target == g.noteID {
			return
		}
		e.moveNote(g.flowID, g.slot, g.noteID, target)
	}
}

func (e *Engine) finishDraw(g *drawGesture) {
	r := g.Rect()
	if r.Width < MinDrawSize || r.Height < MinDrawSize {
		e.log.Debug().Float64("width", r.Width).Float64("height", r.Height).Msg("draw discarded below minimum size")
		return
	}
	b := e.board
	switch g.kind {
	case KindContext:
		c := NewBoundedContext(e.ids, r, e.labels.Get("context.defaultName"))
		b.Contexts = append(cloneSlice(b.Contexts), c)
		e.selected = c.ID
	case KindDomain:
		d := NewDomain(e.ids, r, e.labels.Get("domain.defaultName"), DomainCore)
		b.Domains = append(cloneSlice(b.Domains), d)
		e.selected = d.ID
	default:
		return
	}
	e.commit(b)
	e.resetTool()
}

// moveNote places noteID at the index currently held by targetID.
func (e *Engine) moveNote(flowID string, slot SlotType, noteID, targetID string) {
	b, ok := e.board.WithFlow(flowID, func(f Flow) Flow {
		notes := f.Slots.Get(slot)
		from, to := -1, -1
		for i, n := range notes {
			switch n.ID {
			case noteID:
				from = i
			case targetID:
				to = i
			}
		}
		if from < 0 || to < 0 {
			return f
		}
		moved := notes[from]
		out := make([]Note, 0, len(notes))
		for i, n := range notes {
			if i != from {
				out = append(out, n)
			}
		}
		out = append(out[:to], append([]Note{moved}, out[to:]...)...)
		f.Slots = f.Slots.With(slot, out)
		return f
	})
	if !ok {
		return
	}
	e.commit(b)
}

// GestureEnded is the safety hook for gestures that finish outside the
// canvas. Every transient ref is cleared without emitting a board.
func (e *Engine) GestureEnded() {
	e.gesture = nil
	e.dragOver = ""
	e.viewport.Cancel()
}

func (e *Engine) Wheel(ev WheelEvent) {
	if e.editor != nil {
		return
	}
	e.viewport.Wheel(ev)
}

func (e *Engine) KeyDown(ev KeyEvent) {
	if e.editor != nil {
		if !e.editor.Focused() {
			return
		}
		switch e.editor.HandleKey(ev) {
		case editorCommit:
			e.CommitEdit()
		case editorCancel:
			e.CancelEdit()
		}
		return
	}
	if e.viewport.KeyDown(ev.Key) {
		return
	}
	switch ev.Key {
	case KeyDelete, KeyBackspace:
		e.DeleteSelection()
	case KeyEscape:
		e.connectionFrom = ""
		if _, ok := e.gesture.(*drawGesture); ok {
			e.gesture = nil
		}
	}
}

func (e *Engine) KeyUp(ev KeyEvent) {
	e.viewport.KeyUp(ev.Key)
}

// DeleteSelection removes the selected entity. Flows take their connections
// with them.
func (e *Engine) DeleteSelection() {
	if e.selected == "" || e.editor != nil {
		return
	}
	b, kind := e.board.Without(e.selected)
	e.selected = ""
	if kind == KindNone {
		return
	}
	if e.connectionFrom != "" && b.FlowIndex(e.connectionFrom) < 0 {
		e.connectionFrom = ""
	}
	e.commit(b)
}

// AddNote appends a note to a flow slot and opens it for editing.
func (e *Engine) AddNote(flowID string, slot SlotType) {
	if !validSlot(slot) {
		return
	}
	n := NewNote(e.ids, "")
	b, ok := e.board.WithFlow(flowID, func(f Flow) Flow {
		notes := append(cloneSlice(f.Slots.Get(slot)), n)
		f.Slots = f.Slots.With(slot, notes)
		return f
	})
	if !ok {
		return
	}
	e.selected = flowID
	e.commit(b)
	e.openEditor(EditTarget{Kind: KindFlow, ID: flowID, Slot: slot, NoteID: n.ID})
}

// DeleteNote removes a note. The last note of the events slot stays.
func (e *Engine) DeleteNote(flowID string, slot SlotType, noteID string) {
	f, ok := e.board.Flow(flowID)
	if !ok {
		return
	}
	notes := f.Slots.Get(slot)
	if slot == SlotEvents && len(notes) <= 1 {
		e.log.Debug().Str("flow", flowID).Msg("refusing to delete last event note")
		return
	}
	kept := filter(notes, func(n Note) bool { return n.ID != noteID })
	if len(kept) == len(notes) {
		return
	}
	b, _ := e.board.WithFlow(flowID, func(f Flow) Flow {
		f.Slots = f.Slots.With(slot, kept)
		return f
	})
	if e.editor != nil && e.editor.Target.NoteID == noteID {
		e.editor = nil
	}
	e.commit(b)
}

// ContextMenu handles a secondary click; on a note it deletes the note.
func (e *Engine) ContextMenu(ev PointerEvent) {
	if e.editor != nil || !isFinite(ev.X, ev.Y) {
		return
	}
	hit := HitTest(e.board, e.toCanvas(ev.X, ev.Y), e.viewport.Viewport().Zoom)
	if hit.Part == PartNote {
		e.DeleteNote(hit.ID, hit.Slot, hit.NoteID)
	}
}

func (e *Engine) SetDomainType(id string, t DomainType) {
	i := e.board.DomainIndex(id)
	if i < 0 || e.board.Domains[i].Type == t {
		return
	}
	b := e.board
	b.Domains = cloneSlice(b.Domains)
	b.Domains[i].Type = t
	e.commit(b)
}

func (e *Engine) CycleDomainType(id string) {
	i := e.board.DomainIndex(id)
	if i < 0 {
		return
	}
	e.SetDomainType(id, e.board.Domains[i].Type.Next())
}

// DoubleClick opens the inline editor on the element under the pointer.
func (e *Engine) DoubleClick(ev PointerEvent) {
	if e.editor != nil || !isFinite(ev.X, ev.Y) {
		return
	}
	hit := HitTest(e.board, e.toCanvas(ev.X, ev.Y), e.viewport.Viewport().Zoom)
	e.gesture = nil
	switch {
	case hit.Kind == KindFlow && hit.Part == PartNote:
		e.openEditor(EditTarget{Kind: KindFlow, ID: hit.ID, Slot: hit.Slot, NoteID: hit.NoteID})
	case hit.Kind == KindContext || hit.Kind == KindDomain:
		if hit.Part == PartHandle {
			return
		}
		e.openEditor(EditTarget{Kind: hit.Kind, ID: hit.ID})
	case hit.Kind == KindHotspot, hit.Kind == KindConnection:
		e.openEditor(EditTarget{Kind: hit.Kind, ID: hit.ID})
	}
}

// EditSelected opens the editor on the selected entity's text.
func (e *Engine) EditSelected() {
	if e.editor != nil || e.selected == "" {
		return
	}
	switch kind := e.board.KindOf(e.selected); kind {
	case KindContext, KindDomain, KindHotspot, KindConnection:
		e.openEditor(EditTarget{Kind: kind, ID: e.selected})
	case KindFlow:
		f, _ := e.board.Flow(e.selected)
		if n := f.Slots.Events; len(n) > 0 {
			e.openEditor(EditTarget{Kind: KindFlow, ID: f.ID, Slot: SlotEvents, NoteID: n[0].ID})
		}
	}
}

func (e *Engine) openEditor(t EditTarget) {
	text, anchor, ok := e.textOf(t)
	if !ok {
		return
	}
	e.selected = t.ID
	e.editor = newTextEditor(t, ScreenRect(anchor, e.viewport.Viewport(), e.viewport.Container()), text)
}

// FocusEditor is called by the host once the editor has been rendered.
// Keys reaching an unfocused editor are dropped.
func (e *Engine) FocusEditor() {
	if e.editor != nil {
		e.editor.focused = true
	}
}

// EditorInsert types text into the editor, e.g. from a paste.
func (e *Engine) EditorInsert(s string) {
	if e.editor != nil && e.editor.Focused() {
		e.editor.Insert(s)
	}
}

func (e *Engine) CancelEdit() {
	e.editor = nil
}

// CommitEdit writes the editor text back as one committed mutation.
func (e *Engine) CommitEdit() {
	ed := e.editor
	if ed == nil {
		return
	}
	e.editor = nil
	b, ok := e.withText(ed.Target, ed.Text())
	if !ok {
		e.log.Debug().Stringer("kind", ed.Target.Kind).Str("id", ed.Target.ID).Msg("edit target vanished")
		return
	}
	e.commit(b)
}

// textOf resolves the current text and canvas rectangle of an edit target.
func (e *Engine) textOf(t EditTarget) (string, Rect, bool) {
	switch t.Kind {
	case KindFlow:
		f, ok := e.board.Flow(t.ID)
		if !ok {
			return "", Rect{}, false
		}
		for _, n := range f.Slots.Get(t.Slot) {
			if n.ID == t.NoteID {
				r, _ := FlowLayout(f).NoteRect(n.ID)
				return n.Text, r, true
			}
		}
	case KindContext:
		if i := e.board.ContextIndex(t.ID); i >= 0 {
			c := e.board.Contexts[i]
			return c.Name, LabelRect(RectFrom(c.Position, c.Size)), true
		}
	case KindDomain:
		if i := e.board.DomainIndex(t.ID); i >= 0 {
			d := e.board.Domains[i]
			return d.Name, LabelRect(RectFrom(d.Position, d.Size)), true
		}
	case KindHotspot:
		if i := e.board.HotspotIndex(t.ID); i >= 0 {
			h := e.board.Hotspots[i]
			return h.Text, HotspotRect(h), true
		}
	case KindConnection:
		if i := e.board.ConnectionIndex(t.ID); i >= 0 {
			c := e.board.Connections[i]
			path, ok := RouteConnection(e.board, c)
			if !ok {
				return "", Rect{}, false
			}
			mid := path.Midpoint()
			return c.Label, Rect{X: mid.X - SlotWidth/2, Y: mid.Y - LabelHeight/2, Width: SlotWidth, Height: LabelHeight}, true
		}
	}
	return "", Rect{}, false
}

func (e *Engine) withText(t EditTarget, text string) (Board, bool) {
	b := e.board
	switch t.Kind {
	case KindFlow:
		found := false
		nb, ok := b.WithFlow(t.ID, func(f Flow) Flow {
			notes := cloneSlice(f.Slots.Get(t.Slot))
			for i := range notes {
				if notes[i].ID == t.NoteID {
					notes[i].Text = text
					found = true
				}
			}
			f.Slots = f.Slots.With(t.Slot, notes)
			return f
		})
		return nb, ok && found
	case KindContext:
		i := b.ContextIndex(t.ID)
		if i < 0 {
			return b, false
		}
		b.Contexts = cloneSlice(b.Contexts)
		b.Contexts[i].Name = text
	case KindDomain:
		i := b.DomainIndex(t.ID)
		if i < 0 {
			return b, false
		}
		b.Domains = cloneSlice(b.Domains)
		b.Domains[i].Name = text
	case KindHotspot:
		i := b.HotspotIndex(t.ID)
		if i < 0 {
			return b, false
		}
		b.Hotspots = cloneSlice(b.Hotspots)
		b.Hotspots[i].Text = text
	case KindConnection:
		i := b.ConnectionIndex(t.ID)
		if i < 0 {
			return b, false
		}
		b.Connections = cloneSlice(b.Connections)
		b.Connections[i].Label = text
	default:
		return b, false
	}
	return b, true
}

// AddHotspotText creates a hotspot with text at a canvas point, used for
// pasting from the clipboard.
func (e *Engine) AddHotspotText(p Point, text string) {
	h := NewHotspot(e.ids, p, text)
	b := e.board
	b.Hotspots = append(cloneSlice(b.Hotspots), h)
	e.selected = h.ID
	e.commit(b)
}

// SelectedText returns the display text of the selected entity.
func (e *Engine) SelectedText() (string, bool) {
	switch kind := e.board.KindOf(e.selected); kind {
	case KindFlow:
		f, _ := e.board.Flow(e.selected)
		var parts []string
		for _, slot := range SlotOrder {
			for _, n := range f.Slots.Get(slot) {
				if n.Text != "" {
					parts = append(parts, n.Text)
				}
			}
		}
		return strings.Join(parts, "\n"), true
	case KindNone:
		return "", false
	default:
		text, _, ok := e.textOf(EditTarget{Kind: kind, ID: e.selected})
		return text, ok
	}
}
