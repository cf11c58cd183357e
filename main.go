package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

const doubleClickInterval = 400 * time.Millisecond

// Buffer is one open board. It is the engine's Host: both mutation
// channels feed its history.
type Buffer struct {
	engine   *Engine
	history  *History
	filename string
	log      zerolog.Logger
}

func (b *Buffer) ApplyIntermediate(board Board) {
	b.history.ApplyIntermediate(board)
}

func (b *Buffer) Commit(board Board) {
	b.history.Commit(board)
}

func (b *Buffer) ResetToolMode() {
	b.log.Debug().Str("file", b.filename).Msg("tool reset to select")
}

func (b *Buffer) displayName(index int) string {
	if b.filename == "" {
		return fmt.Sprintf("Board %d", index+1)
	}
	return strings.TrimSuffix(filepath.Base(b.filename), ".json")
}

type editorFocusMsg struct{}

type model struct {
	width             int
	height            int
	buffers           []*Buffer
	current           int
	mode              Mode
	help              bool
	helpScroll        int
	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	openInNewBuffer   bool
	confirmAction     ConfirmAction
	errorMessage      string
	successMessage    string

	config *Config
	labels Labels
	log    zerolog.Logger
	now    func() time.Time

	pressed     bool
	pressButton MouseButton
	lastPointer Point
	lastClickX  int
	lastClickY  int
	lastClickAt time.Time
	pendingDbl  bool
}

func initialModel(cfg *Config, log zerolog.Logger, board Board, filename string) model {
	m := model{
		config: cfg,
		labels: mergeLabels(cfg.Labels),
		log:    log,
		now:    time.Now,
		mode:   ModeNormal,
	}
	m.addNewBuffer(board, filename)
	return m
}

func (m *model) currentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return m.buffers[m.current]
}

func (m *model) addNewBuffer(board Board, filename string) {
	buf := &Buffer{history: NewHistory(board), filename: filename, log: m.log}
	buf.engine = NewEngine(buf, board, WithLogger(m.log), WithLabels(m.labels))
	m.buffers = append(m.buffers, buf)
	m.current = len(m.buffers) - 1
	m.syncContainers()
}

func (m *model) replaceCurrentBuffer(board Board, filename string) {
	buf := m.currentBuffer()
	buf.history = NewHistory(board)
	buf.filename = filename
	buf.engine.GestureEnded()
	buf.engine.CancelEdit()
	buf.engine.SetBoard(board)
}

func (m *model) closeCurrentBuffer() {
	if len(m.buffers) <= 1 {
		m.buffers = nil
		m.current = 0
		m.addNewBuffer(NewBoard(), "")
		return
	}
	m.buffers = append(m.buffers[:m.current], m.buffers[m.current+1:]...)
	if m.current > 0 {
		m.current--
	}
	m.syncContainers()
}

func (m *model) switchBuffer(delta int) {
	if len(m.buffers) < 2 {
		return
	}
	m.currentBuffer().engine.GestureEnded()
	m.pressed = false
	m.current = (m.current + delta + len(m.buffers)) % len(m.buffers)
}

func (m *model) showBufferBar() bool {
	return len(m.buffers) > 1
}

func (m *model) canvasTop() int {
	if m.showBufferBar() {
		return 1
	}
	return 0
}

func (m *model) canvasRows() int {
	return max(m.height-m.canvasTop()-1, 1)
}

// canvasRect is the canvas area in screen pixels.
func (m *model) canvasRect() Rect {
	cw, ch := float64(m.config.CellWidth), float64(m.config.CellHeight)
	return Rect{
		X:      0,
		Y:      float64(m.canvasTop()) * ch,
		Width:  float64(max(m.width, 1)) * cw,
		Height: float64(m.canvasRows()) * ch,
	}
}

func (m *model) syncContainers() {
	r := m.canvasRect()
	for _, buf := range m.buffers {
		buf.engine.SetContainer(r)
	}
}

// screenPoint maps a terminal cell to the screen pixel at its center.
func (m *model) screenPoint(x, y int) Point {
	cw, ch := float64(m.config.CellWidth), float64(m.config.CellHeight)
	return Point{X: float64(x)*cw + cw/2, Y: float64(y)*ch + ch/2}
}

func (m *model) inCanvas(y int) bool {
	return y >= m.canvasTop() && y < m.canvasTop()+m.canvasRows()
}

func (m *model) anyDirty() bool {
	for _, buf := range m.buffers {
		if buf.history.Dirty() {
			return true
		}
	}
	return false
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) scanBoardFiles() {
	m.fileList = []string{}
	dir := m.config.SaveDirectory
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			m.selectedFileIndex = -1
			return
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)
	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = strings.TrimSuffix(m.fileList[0], ".json")
	} else {
		m.selectedFileIndex = -1
	}
}

// focusEditor lets one frame render before the editor accepts keys.
func (m *model) focusEditor() tea.Cmd {
	buf := m.currentBuffer()
	if ed := buf.engine.Editor(); ed == nil || ed.Focused() {
		return nil
	}
	return func() tea.Msg { return editorFocusMsg{} }
}

func (m *model) syncMode() {
	editing := m.currentBuffer().engine.Editor() != nil
	switch {
	case editing && (m.mode == ModeNormal || m.mode == ModeNotePick):
		m.mode = ModeEditing
	case !editing && m.mode == ModeEditing:
		m.mode = ModeNormal
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, buf := range m.buffers {
			buf.engine.GestureEnded()
		}
		m.pressed = false
		m.syncContainers()
		return m, nil

	case editorFocusMsg:
		m.currentBuffer().engine.FocusEditor()
		return m, nil

	case tea.MouseMsg:
		if m.help || m.mode == ModeFileInput || m.mode == ModeConfirm {
			return m, nil
		}
		cmd = m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			m.handleHelpKey(msg)
			return m, nil
		}
		var quit bool
		switch m.mode {
		case ModeEditing:
			cmd = m.handleEditorKey(msg)
		case ModeNotePick:
			cmd = m.handleNotePick(msg)
		case ModeFileInput:
			m.handleFileInput(msg)
		case ModeConfirm:
			quit = m.handleConfirm(msg)
		default:
			cmd, quit = m.handleNormalKey(msg)
		}
		if quit {
			return m, tea.Quit
		}
	}
	m.syncMode()
	return m, cmd
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	buf := m.currentBuffer()
	p := m.screenPoint(msg.X, msg.Y)
	ev := PointerEvent{X: p.X, Y: p.Y, Shift: msg.Shift}

	switch msg.Type {
	case tea.MouseWheelUp, tea.MouseWheelDown:
		delta := -1.0
		if msg.Type == tea.MouseWheelDown {
			delta = 1
		}
		buf.engine.Wheel(WheelEvent{X: p.X, Y: p.Y, DeltaY: delta})

	case tea.MouseLeft, tea.MouseMiddle:
		// Some terminals repeat the press while dragging.
		if m.pressed {
			m.lastPointer = p
			ev.Button = m.pressButton
			buf.engine.PointerMove(ev)
			return nil
		}
		if !m.inCanvas(msg.Y) {
			return nil
		}
		ev.Button = ButtonLeft
		if msg.Type == tea.MouseMiddle {
			ev.Button = ButtonMiddle
		}
		now := m.now()
		m.pendingDbl = ev.Button == ButtonLeft &&
			msg.X == m.lastClickX && msg.Y == m.lastClickY &&
			now.Sub(m.lastClickAt) <= doubleClickInterval
		if ev.Button == ButtonLeft {
			m.lastClickX, m.lastClickY, m.lastClickAt = msg.X, msg.Y, now
		}
		if m.pendingDbl {
			m.lastClickAt = time.Time{}
		}
		m.pressed = true
		m.pressButton = ev.Button
		m.lastPointer = p
		m.clearMessages()
		buf.engine.PointerDown(ev)

	case tea.MouseRight:
		if m.inCanvas(msg.Y) {
			ev.Button = ButtonRight
			buf.engine.ContextMenu(ev)
		}

	case tea.MouseMotion:
		m.lastPointer = p
		ev.Button = m.pressButton
		buf.engine.PointerMove(ev)

	case tea.MouseRelease:
		if !m.pressed {
			return nil
		}
		m.pressed = false
		m.lastPointer = p
		ev.Button = m.pressButton
		buf.engine.PointerUp(ev)
		if m.pendingDbl {
			m.pendingDbl = false
			buf.engine.DoubleClick(ev)
		}
	}
	return m.focusEditor()
}

func (m *model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

// editorKeyEvent translates a terminal key into an editor key. Terminals
// cannot report Shift+Enter, so Alt+Enter and Ctrl+J stand in for it.
func editorKeyEvent(msg tea.KeyMsg) (KeyEvent, bool) {
	switch msg.String() {
	case "esc":
		return KeyEvent{Key: KeyEscape}, true
	case "enter":
		return KeyEvent{Key: KeyEnter}, true
	case "alt+enter", "ctrl+j":
		return KeyEvent{Key: KeyEnter, Shift: true}, true
	case "backspace":
		return KeyEvent{Key: KeyBackspace}, true
	case "delete":
		return KeyEvent{Key: KeyDelete}, true
	case "left":
		return KeyEvent{Key: KeyLeft}, true
	case "right":
		return KeyEvent{Key: KeyRight}, true
	case "home", "ctrl+a":
		return KeyEvent{Key: KeyHome}, true
	case "end", "ctrl+e":
		return KeyEvent{Key: KeyEnd}, true
	}
	switch msg.Type {
	case tea.KeySpace:
		return KeyEvent{Key: KeySpace}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return KeyEvent{Key: string(msg.Runes)}, true
		}
	}
	return KeyEvent{}, false
}

func (m *model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	engine := m.currentBuffer().engine
	if msg.String() == "ctrl+v" {
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %s", err.Error())
			return nil
		}
		engine.EditorInsert(text)
		return nil
	}
	if ev, ok := editorKeyEvent(msg); ok {
		engine.KeyDown(ev)
		return nil
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		engine.EditorInsert(string(msg.Runes))
	}
	return nil
}

func (m *model) handleNotePick(msg tea.KeyMsg) tea.Cmd {
	m.mode = ModeNormal
	key := msg.String()
	if len(key) != 1 || key[0] < '1' || key[0] > '7' {
		return nil
	}
	engine := m.currentBuffer().engine
	if engine.SelectedKind() != KindFlow {
		return nil
	}
	engine.AddNote(engine.Selected(), SlotOrder[key[0]-'1'])
	return m.focusEditor()
}

func (m *model) handleNormalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	buf := m.currentBuffer()
	engine := buf.engine
	key := msg.String()

	if isPanKey(key) {
		m.handlePan(key)
		return nil, false
	}

	switch key {
	case "ctrl+c":
		return nil, true
	case "q":
		if m.config.Confirmations && m.anyDirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return nil, false
		}
		return nil, true
	case "?":
		m.help = true
		m.helpScroll = 0
		engine.GestureEnded()
		m.pressed = false
	case "1", "2", "3", "4", "5", "6":
		engine.SetToolMode(ToolMode(key[0] - '1'))
		m.clearMessages()
	case " ":
		if engine.PanKeyHeld() {
			engine.KeyUp(KeyEvent{Key: KeySpace})
		} else {
			engine.KeyDown(KeyEvent{Key: KeySpace})
		}
	case "+", "=":
		engine.ZoomIn()
	case "-", "_":
		engine.ZoomOut()
	case "0":
		engine.ResetView()
	case "esc":
		engine.KeyDown(KeyEvent{Key: KeyEscape})
		m.clearMessages()
	case "delete", "backspace":
		engine.KeyDown(KeyEvent{Key: KeyDelete})
	case "n":
		if engine.SelectedKind() != KindFlow {
			m.errorMessage = "Select a flow first"
			return nil, false
		}
		m.mode = ModeNotePick
	case "e":
		engine.EditSelected()
		return m.focusEditor(), false
	case "t":
		if engine.SelectedKind() == KindDomain {
			engine.CycleDomainType(engine.Selected())
		}
	case "u":
		if board, ok := buf.history.Undo(); ok {
			engine.SetBoard(board)
		}
	case "U":
		if board, ok := buf.history.Redo(); ok {
			engine.SetBoard(board)
		}
	case "y":
		text, ok := engine.SelectedText()
		if !ok {
			m.errorMessage = "Nothing selected"
			return nil, false
		}
		if err := writeClipboardText(text); err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %s", err.Error())
			return nil, false
		}
		m.successMessage = "Copied"
	case "p":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %s", err.Error())
			return nil, false
		}
		if text == "" {
			m.errorMessage = "Clipboard is empty"
			return nil, false
		}
		at := m.lastPointer
		if at == (Point{}) {
			at = engine.Container().Center()
		}
		engine.AddHotspotText(ToCanvasCoords(at.X, at.Y, engine.Viewport(), engine.Container()), text)
	case "w":
		m.startFileInput(FileOpSave)
		if buf.filename != "" {
			m.filename = strings.TrimSuffix(filepath.Base(buf.filename), ".json")
		}
	case "o":
		m.openInNewBuffer = false
		m.startFileInput(FileOpOpen)
	case "O":
		m.openInNewBuffer = true
		m.startFileInput(FileOpOpen)
	case "W":
		m.startFileInput(FileOpSavePNG)
	case "T":
		m.startFileInput(FileOpSaveVisualTXT)
	case "N":
		m.addNewBuffer(NewBoard(), "")
		m.clearMessages()
	case "x":
		if m.config.Confirmations && buf.history.Dirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmCloseBuffer
			return nil, false
		}
		m.closeCurrentBuffer()
	case "{":
		m.switchBuffer(-1)
	case "}":
		m.switchBuffer(1)
	}
	return nil, false
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	m.clearMessages()
	if op == FileOpOpen {
		m.scanBoardFiles()
	}
}

func (m *model) handleFileInput(msg tea.KeyMsg) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
	case msg.String() == "up" || msg.String() == "down":
		if m.fileOp != FileOpOpen || len(m.fileList) == 0 {
			return
		}
		step := 1
		if msg.String() == "up" {
			step = -1
		}
		m.selectedFileIndex = (max(m.selectedFileIndex, 0) + step + len(m.fileList)) % len(m.fileList)
		m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], ".json")
	case msg.Type == tea.KeyEnter:
		m.runFileOperation()
	case msg.Type == tea.KeyBackspace:
		if runes := []rune(m.filename); len(runes) > 0 {
			m.filename = string(runes[:len(runes)-1])
			m.selectedFileIndex = -1
		}
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		m.filename += msg.String()
		m.selectedFileIndex = -1
	}
}

func withExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

func (m *model) runFileOperation() {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "Please enter a filename"
		return
	}
	buf := m.currentBuffer()

	switch m.fileOp {
	case FileOpSave:
		path := m.config.GetSavePath(withExtension(name, ".json"))
		if _, err := os.Stat(path); err == nil && path != buf.filename && m.config.Confirmations {
			m.filename = path
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		}
		if !m.saveCurrent(path) {
			return
		}
	case FileOpOpen:
		path := m.config.GetSavePath(withExtension(name, ".json"))
		board, err := LoadBoard(path, uuidSource{})
		if err != nil {
			m.errorMessage = fmt.Sprintf("Error opening file: %s", err.Error())
			return
		}
		if m.openInNewBuffer {
			m.addNewBuffer(board, path)
		} else {
			m.replaceCurrentBuffer(board, path)
		}
		m.log.Info().Str("file", path).Msg("board opened")
		m.successMessage = fmt.Sprintf("Opened %s", filepath.Base(path))
	case FileOpSavePNG:
		path := m.config.GetSavePath(withExtension(name, ".png"))
		if err := ExportPNG(buf.engine.Board(), path, m.config.ExportScale, m.labels); err != nil {
			m.errorMessage = fmt.Sprintf("Error exporting PNG: %s", err.Error())
			return
		}
		absPath, _ := filepath.Abs(path)
		m.successMessage = fmt.Sprintf("Exported to %s", absPath)
	case FileOpSaveVisualTXT:
		path := m.config.GetSavePath(withExtension(name, ".txt"))
		s := sceneFromEngine(buf.engine, m.config.CellWidth, m.config.CellHeight)
		if err := exportVisualTXT(path, s, m.width, m.canvasRows()); err != nil {
			m.errorMessage = fmt.Sprintf("Error exporting text: %s", err.Error())
			return
		}
		absPath, _ := filepath.Abs(path)
		m.successMessage = fmt.Sprintf("Exported to %s", absPath)
	}
	m.mode = ModeNormal
	m.filename = ""
}

func (m *model) saveCurrent(path string) bool {
	buf := m.currentBuffer()
	if err := SaveBoard(path, buf.engine.Board()); err != nil {
		m.errorMessage = fmt.Sprintf("Error saving file: %s", err.Error())
		return false
	}
	buf.filename = path
	buf.history.MarkSaved()
	m.log.Info().Str("file", path).Msg("board saved")
	absPath, _ := filepath.Abs(path)
	m.successMessage = fmt.Sprintf("Saved to %s", absPath)
	m.errorMessage = ""
	return true
}

// handleConfirm reports whether the program should quit.
func (m *model) handleConfirm(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return true
		case ConfirmCloseBuffer:
			m.closeCurrentBuffer()
			m.clearMessages()
		case ConfirmOverwriteFile:
			if !m.saveCurrent(m.filename) {
				m.mode = ModeFileInput
				return false
			}
		}
		m.mode = ModeNormal
		m.filename = ""
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.fileOp = FileOpSave
			m.filename = strings.TrimSuffix(filepath.Base(m.filename), ".json")
		} else {
			m.mode = ModeNormal
		}
	}
	return false
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	buf := m.currentBuffer()
	if buf == nil {
		return ""
	}

	var result strings.Builder
	width := max(m.width, 1)
	if m.showBufferBar() {
		result.WriteString(m.renderBufferBar(width))
		result.WriteString("\n")
	}
	s := sceneFromEngine(buf.engine, m.config.CellWidth, m.config.CellHeight)
	result.WriteString(strings.Join(renderScene(s, width, m.canvasRows(), false), "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine(width))
	return result.String()
}

func (m *model) renderBufferBar(width int) string {
	var bar strings.Builder
	bar.WriteString(bufferBarStyle.Render("Open Boards: "))
	for i, buf := range m.buffers {
		if i > 0 {
			bar.WriteString(bufferBarStyle.Render(" | "))
		}
		name := buf.displayName(i)
		if buf.history.Dirty() {
			name += "*"
		}
		if i == m.current {
			bar.WriteString(activeBufStyle.Render("[" + name + "]"))
		} else {
			bar.WriteString(bufferBarStyle.Render(name))
		}
	}
	return bufferBarStyle.MaxWidth(width).Render(bar.String())
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeNotePick:
		return "NOTE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) statusLine(width int) string {
	buf := m.currentBuffer()
	engine := buf.engine
	var status string

	switch m.mode {
	case ModeEditing:
		status = "Mode: EDIT | Enter=save, Alt+Enter=newline, Ctrl+V=paste, Esc=cancel"
	case ModeNotePick:
		var slots []string
		for i, slot := range SlotOrder {
			slots = append(slots, fmt.Sprintf("%d=%s", i+1, m.labels.Get("slot."+string(slot))))
		}
		status = "Mode: NOTE | " + strings.Join(slots, " ") + " | Esc=cancel"
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpSave:
			opStr = "Save"
		case FileOpOpen:
			opStr = "Open"
		case FileOpSavePNG:
			opStr = "Export PNG"
		case FileOpSaveVisualTXT:
			opStr = "Export TXT"
		}
		status = fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", opStr, m.filename)
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			status += " | ↑/↓=browse"
		}
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit with unsaved changes? (y/n)"
		case ConfirmCloseBuffer:
			message = "Close board? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
		status = "Mode: CONFIRM | " + message
	default:
		tool := m.labels.Get("tool." + engine.ToolMode().String())
		if engine.PanKeyHeld() {
			tool = "PAN"
		}
		status = fmt.Sprintf("Mode: %s | Tool: %s | Zoom: %.0f%%", m.modeString(), tool, engine.Viewport().Zoom*100)
		if kind := engine.SelectedKind(); kind != KindNone {
			status += fmt.Sprintf(" | Selected: %s", kind)
		}
		if hint := m.toolHint(engine); hint != "" {
			status += " | " + hint
		}
		if m.successMessage != "" {
			status += " | " + m.successMessage
		}
		if m.errorMessage == "" && m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
	}

	if m.errorMessage != "" {
		return errorStyle.Width(width).MaxWidth(width).Render(status + " | ERROR: " + m.errorMessage)
	}
	return statusStyle.Width(width).MaxWidth(width).Render(status)
}

func (m model) toolHint(engine *Engine) string {
	switch engine.ToolMode() {
	case ToolAddConnection:
		if engine.ConnectionFrom() != "" {
			return m.labels.Get("hint.pendingSource")
		}
		return m.labels.Get("hint.addConnection")
	case ToolAddContext, ToolAddDomain:
		return m.labels.Get("hint.draw")
	}
	return ""
}

var helpLines = []string{
	"Stormboard Help",
	"===============",
	"",
	"Tools:",
	"------",
	"  1                Select / move / resize",
	"  2                Add flow (click)",
	"  3                Add bounded context (drag)",
	"  4                Add domain (drag)",
	"  5                Connect flows (click source, then target)",
	"  6                Add hotspot (click)",
	"",
	"Mouse:",
	"------",
	"  Left drag        Move the entity under the pointer",
	"  Shift+drag       Reorder a note inside its slot",
	"  Corner/edge drag Resize a context or domain",
	"  Double click     Edit note, name, hotspot or connection label",
	"  Right click      Delete a note",
	"  Middle drag      Pan",
	"  Wheel            Zoom at the pointer",
	"",
	"View:",
	"-----",
	"  h/←/j/↓/k/↑/l/→  Pan the view",
	"  Shift+h/j/k/l    Pan 2x faster",
	"  Space            Toggle pan mode (left drag pans)",
	"  + / - / 0        Zoom in / zoom out / reset view",
	"",
	"Editing:",
	"--------",
	"  n then 1-7       Add a note to a slot of the selected flow",
	"  e                Edit the selected entity",
	"  t                Cycle domain type (core, supporting, generic)",
	"  Delete           Delete the selected entity",
	"  Esc              Cancel a pending connection",
	"  y                Copy selected text",
	"  p                Paste clipboard as a hotspot",
	"  u / U            Undo / redo",
	"",
	"In the editor:",
	"--------------",
	"  Enter            Save",
	"  Alt+Enter/Ctrl+J New line",
	"  Esc              Cancel",
	"",
	"Files:",
	"------",
	"  w                Save board",
	"  o / O            Open board here / in a new buffer",
	"  W                Export PNG",
	"  T                Export visual TXT",
	"",
	"Buffers:",
	"--------",
	"  { / }            Previous / next board",
	"  N                New board in a new buffer",
	"  x                Close current board",
	"",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	startLine := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
