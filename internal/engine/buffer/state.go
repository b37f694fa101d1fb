package buffer

import "unicode/utf8"

// State is a snapshot of the text and selection at the moment of an event.
type State struct {
	Text      string
	Selection Selection
}

// NewState creates a state with a selection from start to end.
func NewState(text string, start, end int) State {
	return State{Text: text, Selection: NewSelection(start, end)}
}

// CaretState creates a state with a caret at pos.
func CaretState(text string, pos int) State {
	return State{Text: text, Selection: Caret(pos)}
}

// Runes returns the text as a rune slice.
// The slice is freshly allocated and may be modified by the caller.
func (s State) Runes() []rune {
	return []rune(s.Text)
}

// RuneLen returns the length of the text in runes.
func (s State) RuneLen() int {
	return utf8.RuneCountInString(s.Text)
}

// Validate checks the selection against the text.
func (s State) Validate() error {
	return s.Selection.Validate(s.RuneLen())
}

// Selected returns the selected text.
// It returns "" when the selection is invalid.
func (s State) Selected() string {
	runes := s.Runes()
	if s.Selection.Validate(len(runes)) != nil {
		return ""
	}
	return string(runes[s.Selection.Start:s.Selection.End])
}

// With returns a state holding text and sel.
func (s State) With(text string, sel Selection) State {
	return State{Text: text, Selection: sel}
}

// Equal reports whether two states hold the same text and selection.
func (s State) Equal(other State) bool {
	return s.Text == other.Text && s.Selection == other.Selection
}
