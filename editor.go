package main

// EditTarget names the text field an editor session writes back to.
type EditTarget struct {
	Kind   EntityKind
	ID     string
	Slot   SlotType
	NoteID string
}

// TextEditor is the floating inline editor. It edits a rune buffer and
// knows nothing about the board; the engine applies the result.
type TextEditor struct {
	Target   EditTarget
	Anchor   Rect // screen pixels
	text     []rune
	cursor   int
	original string
	focused  bool
}

func newTextEditor(target EditTarget, anchor Rect, text string) *TextEditor {
	r := []rune(text)
	return &TextEditor{
		Target:   target,
		Anchor:   anchor,
		text:     r,
		cursor:   len(r),
		original: text,
	}
}

func (e *TextEditor) Text() string     { return string(e.text) }
func (e *TextEditor) Cursor() int      { return e.cursor }
func (e *TextEditor) Focused() bool    { return e.focused }
func (e *TextEditor) Original() string { return e.original }

func (e *TextEditor) Insert(s string) {
	r := []rune(s)
	out := make([]rune, 0, len(e.text)+len(r))
	out = append(out, e.text[:e.cursor]...)
	out = append(out, r...)
	out = append(out, e.text[e.cursor:]...)
	e.text = out
	e.cursor += len(r)
}

func (e *TextEditor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
}

func (e *TextEditor) Delete() {
	if e.cursor >= len(e.text) {
		return
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
}

func (e *TextEditor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *TextEditor) Right() {
	if e.cursor < len(e.text) {
		e.cursor++
	}
}

func (e *TextEditor) Home() {
	e.cursor = runeIndexAfterNewline(e.text, e.cursor)
}

func (e *TextEditor) End() {
	for e.cursor < len(e.text) && e.text[e.cursor] != '\n' {
		e.cursor++
	}
}

// runeIndexAfterNewline walks back from the cursor to the start of its line.
func runeIndexAfterNewline(text []rune, cursor int) int {
	i := min(cursor, len(text))
	for i > 0 && text[i-1] != '\n' {
		i--
	}
	return i
}

type editorResult int

const (
	editorContinue editorResult = iota
	editorCommit
	editorCancel
)

// HandleKey applies a key to the buffer and reports whether the session
// should commit or cancel. Enter commits unless Shift is held (newline) or
// an input method is composing.
func (e *TextEditor) HandleKey(ev KeyEvent) editorResult {
	switch ev.Key {
	case KeyEscape:
		if ev.Composing {
			return editorContinue
		}
		return editorCancel
	case KeyEnter:
		if ev.Composing {
			return editorContinue
		}
		if ev.Shift {
			e.Insert("\n")
			return editorContinue
		}
		return editorCommit
	case KeyBackspace:
		e.Backspace()
	case KeyDelete:
		e.Delete()
	case KeyLeft:
		e.Left()
	case KeyRight:
		e.Right()
	case KeyHome:
		e.Home()
	case KeyEnd:
		e.End()
	default:
		if ev.Composing {
			return editorContinue
		}
		if len([]rune(ev.Key)) == 1 {
			e.Insert(ev.Key)
		}
	}
	return editorContinue
}
