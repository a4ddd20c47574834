package backend

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/kedit/internal/input/key"
	"github.com/dshills/kedit/internal/renderer/core"
	"github.com/dshills/kedit/internal/renderer/paint"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal screen: %w", err)
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing tcell screen, such as a
// simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init terminal screen: %w", err)
	}
	// The caret is painted in reverse video.
	t.screen.HideCursor()
	t.screen.EnablePaste()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Execute(ops paint.Ops) {
	t.mu.Lock()
	defer t.mu.Unlock()

	newPainter(t.set).run(ops)
}

func (t *Terminal) set(x, y int, cell Cell) {
	if cell.IsContinuation() {
		return
	}
	runes := []rune(cell.Text)
	if len(runes) == 0 {
		return
	}
	t.screen.SetContent(x, y, runes[0], runes[1:], convertStyle(cell.Style))
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

func (t *Terminal) PostEvent(ev Event) {
	switch ev.Type {
	case EventKey:
		k, r, mod := convertToTcellKey(ev.Key)
		_ = t.screen.PostEvent(tcell.NewEventKey(k, r, mod)) // best-effort; event queue may be full
	case EventInterrupt:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// GetCell returns the cell at the given position.
func (t *Terminal) GetCell(x, y int) Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, combc, style, width := t.screen.GetContent(x, y)
	return Cell{
		Text:  string(append([]rune{mainc}, combc...)),
		Width: width,
		Style: convertTcellStyle(style),
	}
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrBlink) {
		style = style.Blink(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	if s.Attributes.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}

	return style
}

func convertColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()

	s := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
	}

	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= core.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= core.AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attributes |= core.AttrItalic
	}
	if attrs&tcell.AttrUnderline != 0 {
		s.Attributes |= core.AttrUnderline
	}
	if attrs&tcell.AttrBlink != 0 {
		s.Attributes |= core.AttrBlink
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= core.AttrReverse
	}
	if attrs&tcell.AttrStrikeThrough != 0 {
		s.Attributes |= core.AttrStrikethrough
	}

	return s
}

// convertTcellColor converts tcell.Color to our Color.
func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}

	if tc >= tcell.ColorValid && tc < tcell.ColorIsRGB {
		return core.ColorFromIndex(uint8(tc - tcell.ColorValid))
	}

	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		kev, ok := convertKey(e)
		if !ok {
			return Event{Type: EventNone}
		}
		return Event{Type: EventKey, Key: kev}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventPaste:
		return Event{Type: EventPaste, Focused: e.Start()}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

// specialKeys maps tcell keys to the editor's special keys.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertKey converts a tcell key event. Ctrl+letter keys become the
// lower-case rune with the Ctrl modifier.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	switch {
	case k == tcell.KeyRune:
		return key.Event{Key: key.KeyRune, Rune: e.Rune(), Modifiers: mods, Timestamp: e.When()}, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return key.Event{Key: key.KeyRune, Rune: r, Modifiers: mods | key.ModCtrl, Timestamp: e.When()}, true
	}

	if special, ok := specialKeys[k]; ok {
		return key.Event{Key: special, Modifiers: mods, Timestamp: e.When()}, true
	}
	return key.Event{}, false
}

// convertToTcellKey converts a key event to tcell's key, rune and
// modifiers.
func convertToTcellKey(ev key.Event) (tcell.Key, rune, tcell.ModMask) {
	mod := convertToTcellMod(ev.Modifiers)
	if ev.Key == key.KeyRune {
		return tcell.KeyRune, ev.Rune, mod
	}
	for tk, k := range specialKeys {
		if k == ev.Key && tk != tcell.KeyBackspace2 {
			return tk, 0, mod
		}
	}
	return tcell.KeyRune, ev.Rune, mod
}

// convertMod converts tcell modifier mask to our Modifier.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// convertToTcellMod converts our Modifier to tcell.ModMask.
func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m&key.ModShift != 0 {
		result |= tcell.ModShift
	}
	if m&key.ModCtrl != 0 {
		result |= tcell.ModCtrl
	}
	if m&key.ModAlt != 0 {
		result |= tcell.ModAlt
	}
	if m&key.ModMeta != 0 {
		result |= tcell.ModMeta
	}
	return result
}
