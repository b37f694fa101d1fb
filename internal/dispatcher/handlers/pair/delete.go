package pair

import (
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine/brackets"
	"github.com/dshills/inkwell/internal/engine/buffer"
)

// Delete removes text in dir, treating matched delimiter pairs as one unit.
// A non-empty selection is removed as a whole. The result is declined only
// when there is nothing to delete in dir.
func Delete(st buffer.State, dir brackets.Direction, m brackets.Matcher) handler.Result {
	if err := st.Validate(); err != nil {
		return handler.Error(err)
	}
	runes := st.Runes()
	sel := st.Selection
	if !sel.IsEmpty() {
		return deleteRange(runes, sel.Start, sel.End)
	}
	pos := sel.Start

	if m.WikiLinks && buffer.HasAt(runes, pos-2, brackets.WikiOpen) && buffer.HasAt(runes, pos, brackets.WikiClose) {
		return deleteRange(runes, pos-2, pos+2)
	}

	if prev, ok := buffer.RuneAt(runes, pos-1); ok {
		if closeRune, ok := brackets.Close(prev); ok {
			if next, ok := buffer.RuneAt(runes, pos); ok && next == closeRune {
				return deleteRange(runes, pos-1, pos+1)
			}
		}
	}

	offset := pos
	if dir == brackets.Backward {
		offset = pos - 1
	}
	if span, ok := m.Pair(runes, offset, dir); ok {
		out, caret := span.Remove(runes)
		return handler.Edit(string(out), buffer.Caret(caret)).
			WithData("pair", span)
	}

	return deleteRune(runes, pos, dir)
}

// DeleteRune removes one rune in dir, or the selection when there is one.
// It ignores brackets entirely.
func DeleteRune(st buffer.State, dir brackets.Direction) handler.Result {
	if err := st.Validate(); err != nil {
		return handler.Error(err)
	}
	runes := st.Runes()
	sel := st.Selection
	if !sel.IsEmpty() {
		return deleteRange(runes, sel.Start, sel.End)
	}
	return deleteRune(runes, sel.Start, dir)
}

func deleteRune(runes []rune, pos int, dir brackets.Direction) handler.Result {
	if dir == brackets.Backward {
		if pos == 0 {
			return handler.Decline()
		}
		return deleteRange(runes, pos-1, pos)
	}
	if pos >= len(runes) {
		return handler.Decline()
	}
	return deleteRange(runes, pos, pos+1)
}

func deleteRange(runes []rune, start, end int) handler.Result {
	return handler.Edit(buffer.SpliceString(runes, start, end, ""), buffer.Caret(start))
}
