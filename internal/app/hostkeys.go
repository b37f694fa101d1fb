package app

import (
	"strings"

	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/cursor"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input/key"
)

// hostDefault is the terminal's own reaction to a key the engine
// declined: plain insertion, deletion and movement. It reports false for
// keys the terminal ignores. Edits are refused when readOnly is set.
func hostDefault(ev key.Event, st buffer.State, readOnly bool) (buffer.State, bool) {
	if ev.IsTyped() {
		if readOnly {
			return st, false
		}
		return insert(st, string(ev.Rune)), true
	}
	if ev.Modifiers.HasCtrl() || ev.Modifiers.HasAlt() || ev.Modifiers.HasMeta() {
		return st, false
	}

	switch ev.Key {
	case key.KeyEnter:
		if readOnly {
			return st, false
		}
		return insert(st, "\n"), true
	case key.KeyTab:
		if readOnly {
			return st, false
		}
		return insert(st, "\t"), true
	case key.KeyBackspace:
		if readOnly {
			return st, false
		}
		return deleteRange(st, -1), true
	case key.KeyDelete:
		if readOnly {
			return st, false
		}
		return deleteRange(st, 1), true
	case key.KeyLeft:
		if !st.Selection.IsEmpty() {
			return st.With(st.Text, buffer.Caret(st.Selection.Start)), true
		}
		return moved(cursor.Move(st, -1), st), true
	case key.KeyRight:
		if !st.Selection.IsEmpty() {
			return st.With(st.Text, buffer.Caret(st.Selection.End)), true
		}
		return moved(cursor.Move(st, 1), st), true
	case key.KeyHome:
		return moved(cursor.LineStart(st), st), true
	case key.KeyEnd:
		return moved(cursor.LineEnd(st), st), true
	case key.KeyUp:
		return verticalMove(st, -1), true
	case key.KeyDown:
		return verticalMove(st, 1), true
	}
	return st, false
}

func moved(r handler.Result, st buffer.State) buffer.State {
	if !r.IsOK() {
		return st
	}
	return r.State()
}

func insert(st buffer.State, s string) buffer.State {
	sel := st.Selection
	text := buffer.SpliceString(st.Runes(), sel.Start, sel.End, s)
	return st.With(text, buffer.Caret(sel.Start+buffer.RuneLen(s)))
}

// deleteRange removes the selection, or one rune in direction dir.
func deleteRange(st buffer.State, dir int) buffer.State {
	sel := st.Selection
	if sel.IsEmpty() {
		if dir < 0 {
			if sel.Start == 0 {
				return st
			}
			sel = buffer.NewSelection(sel.Start-1, sel.Start)
		} else {
			if sel.End >= st.RuneLen() {
				return st
			}
			sel = buffer.NewSelection(sel.End, sel.End+1)
		}
	}
	text := buffer.SpliceString(st.Runes(), sel.Start, sel.End, "")
	return st.With(text, buffer.Caret(sel.Start))
}

// verticalMove moves the caret dy lines, keeping its rune column where
// the target line is long enough.
func verticalMove(st buffer.State, dy int) buffer.State {
	lines := strings.Split(st.Text, "\n")
	pos := st.Selection.End

	line, col := 0, pos
	for i, l := range lines {
		n := len([]rune(l))
		if col <= n {
			line = i
			break
		}
		col -= n + 1
	}

	target := line + dy
	if target < 0 || target >= len(lines) {
		return st.With(st.Text, buffer.Caret(pos))
	}

	offset := 0
	for i := 0; i < target; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	col = min(col, len([]rune(lines[target])))
	return st.With(st.Text, buffer.Caret(offset+col))
}
