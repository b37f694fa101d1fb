package backend

import (
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkwell/internal/input/key"
)

var (
	textStyle     = tcell.StyleDefault
	selectedStyle = tcell.StyleDefault.Reverse(true)
	statusStyle   = tcell.StyleDefault.Reverse(true).Bold(true)
)

// Terminal implements Backend using tcell. The last row is the status
// line; the rest shows the text.
type Terminal struct {
	screen tcell.Screen

	mu      sync.Mutex
	pending []func()
}

// NewTerminal creates a terminal backend on the real terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(textStyle)
	t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	return nil
}

// Shutdown restores the terminal. A blocked PollEvent returns EventClosed.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// PollEvent blocks for the next key, resize or interrupt.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventClosed}
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			k := ConvertKey(e)
			if k.Key == key.KeyNone {
				continue
			}
			return Event{Type: EventKey, Key: k}
		case *tcell.EventResize:
			t.screen.Sync()
			w, h := e.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventInterrupt:
			fn, _ := e.Data().(func())
			return Event{Type: EventInterrupt, Func: fn}
		}
	}
}

// Draw renders v and shows it, then posts the functions queued by
// AfterRender as one interrupt event.
func (t *Terminal) Draw(v View) {
	width, height := t.screen.Size()
	t.screen.Clear()

	frame := Layout(v.Text, v.Selection, width, height-1)
	for _, c := range frame.Cells {
		style := textStyle
		if c.Selected {
			style = selectedStyle
		}
		t.screen.SetContent(c.X, c.Y, c.Rune, nil, style)
		if c.Rune == ' ' {
			for i := 1; i < c.Width; i++ {
				t.screen.SetContent(c.X+i, c.Y, ' ', nil, style)
			}
		}
	}

	if height > 0 {
		t.drawStatus(v.Status, width, height-1)
	}
	if height > 1 {
		t.screen.ShowCursor(frame.CaretX, frame.CaretY)
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
	t.flushAfterRender()
}

func (t *Terminal) drawStatus(status string, width, y int) {
	x := 0
	for _, r := range status {
		w := cellWidth(r, x)
		if x+w > width {
			break
		}
		if !unicode.IsPrint(r) {
			r = ' '
		}
		t.screen.SetContent(x, y, r, nil, statusStyle)
		x += w
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
}

// AfterRender queues fn until the next Draw has shown its frame.
func (t *Terminal) AfterRender(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, fn)
}

func (t *Terminal) flushAfterRender() {
	t.mu.Lock()
	fns := t.pending
	t.pending = nil
	t.mu.Unlock()

	if len(fns) == 0 {
		return
	}
	batch := func() {
		for _, fn := range fns {
			fn()
		}
	}
	if err := t.screen.PostEvent(tcell.NewEventInterrupt(batch)); err != nil {
		// The queue is full; run now rather than lose the commits.
		batch()
	}
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	_ = t.screen.Beep()
}

// ConvertKey converts a tcell key event. Keys with no key.Event
// equivalent yield key.KeyNone.
func ConvertKey(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	switch k {
	case tcell.KeyRune:
		r := e.Rune()
		if mods.HasCtrl() || mods.HasMeta() || mods.HasAlt() {
			r = unicode.ToLower(r)
		}
		if !mods.HasCtrl() && !mods.HasMeta() && !mods.HasAlt() {
			mods = mods.Without(key.ModShift)
			if unicode.IsUpper(r) {
				mods = mods.With(key.ModShift)
			}
		}
		return key.NewRuneEvent(r, mods)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	}

	// Tab and Enter share codes with Ctrl-I and Ctrl-M. Without the Ctrl
	// modifier they are the named keys. Ctrl-H arrives as a rune with
	// ModCtrl; bare 0x08 is Backspace.
	if !mods.HasCtrl() {
		switch k {
		case tcell.KeyTab:
			return key.NewSpecialEvent(key.KeyTab, mods)
		case tcell.KeyEnter:
			return key.NewSpecialEvent(key.KeyEnter, mods)
		}
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))
	}

	if special, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(special, mods)
	}
	return key.Event{Key: key.KeyNone, Modifiers: mods}
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyDelete: key.KeyDelete,
	tcell.KeyInsert: key.KeyInsert,
	tcell.KeyHome:   key.KeyHome,
	tcell.KeyEnd:    key.KeyEnd,
	tcell.KeyPgUp:   key.KeyPageUp,
	tcell.KeyPgDn:   key.KeyPageDown,
	tcell.KeyUp:     key.KeyUp,
	tcell.KeyDown:   key.KeyDown,
	tcell.KeyLeft:   key.KeyLeft,
	tcell.KeyRight:  key.KeyRight,
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
