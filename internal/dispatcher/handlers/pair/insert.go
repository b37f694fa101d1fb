package pair

import (
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine/brackets"
	"github.com/dshills/inkwell/internal/engine/buffer"
)

// InsertPair replaces the selection of st with token, the selected text and
// the partner of token. token is a single open rune from the bracket table
// or brackets.WikiOpen.
//
// For the wiki token the first "[" is already in the buffer just before the
// selection, so only "[" + selected + "]]" is written, and one "]" directly
// after the selection is consumed.
//
// The new selection covers the wrapped text, or is a caret between the
// pair when nothing was selected.
func InsertPair(st buffer.State, token string) handler.Result {
	if err := st.Validate(); err != nil {
		return handler.Error(err)
	}
	runes := st.Runes()
	sel := st.Selection
	selected := runes[sel.Start:sel.End]

	if token == brackets.WikiOpen {
		after := sel.End
		if r, ok := buffer.RuneAt(runes, after); ok && r == ']' {
			after++
		}
		insert := make([]rune, 0, len(selected)+3)
		insert = append(insert, '[')
		insert = append(insert, selected...)
		insert = append(insert, []rune(brackets.WikiClose)...)

		out := buffer.Splice(runes, sel.Start, after, insert)
		start := sel.Start + 1
		return handler.Edit(string(out), buffer.NewSelection(start, start+len(selected)))
	}

	tr := []rune(token)
	if len(tr) != 1 {
		return handler.Errorf("pair: not an open token: %q", token)
	}
	closeRune, ok := brackets.Close(tr[0])
	if !ok {
		return handler.Errorf("pair: not an open token: %q", token)
	}

	insert := make([]rune, 0, len(selected)+2)
	insert = append(insert, tr[0])
	insert = append(insert, selected...)
	insert = append(insert, closeRune)

	out := buffer.Splice(runes, sel.Start, sel.End, insert)
	start := sel.Start + 1
	return handler.Edit(string(out), buffer.NewSelection(start, start+len(selected)))
}

// SkipOver moves the caret over key when key is the rune right after it.
// It declines when there is a selection or the next rune differs, leaving
// the host to insert key as plain text.
func SkipOver(st buffer.State, key rune) handler.Result {
	if err := st.Validate(); err != nil {
		return handler.Error(err)
	}
	if !st.Selection.IsEmpty() {
		return handler.Decline()
	}
	pos := st.Selection.Start
	next, ok := buffer.RuneAt(st.Runes(), pos)
	if !ok || next != key {
		return handler.Decline()
	}
	return handler.Edit(st.Text, buffer.Caret(pos+1))
}
