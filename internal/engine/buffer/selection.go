package buffer

import (
	"errors"
	"fmt"
)

// ErrInvalidSelection is returned when a selection does not satisfy
// 0 <= Start <= End <= length.
var ErrInvalidSelection = errors.New("buffer: invalid selection")

// Selection is a range of rune offsets [Start, End).
// When Start == End the selection is a caret.
// Selection is an immutable value type.
type Selection struct {
	Start int
	End   int
}

// NewSelection creates a selection covering start and end in either order.
func NewSelection(start, end int) Selection {
	if end < start {
		start, end = end, start
	}
	return Selection{Start: start, End: end}
}

// Caret creates an empty selection at pos.
func Caret(pos int) Selection {
	return Selection{Start: pos, End: pos}
}

// IsEmpty returns true if the selection is a caret.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Len returns the number of runes covered.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Contains returns true if offset lies in [Start, End).
// A caret contains nothing.
func (s Selection) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// MoveTo returns a caret at offset.
func (s Selection) MoveTo(offset int) Selection {
	return Caret(offset)
}

// Shift returns the selection moved by delta runes.
func (s Selection) Shift(delta int) Selection {
	return Selection{Start: s.Start + delta, End: s.End + delta}
}

// Clamp returns the selection clamped to [0, limit] with Start <= End.
func (s Selection) Clamp(limit int) Selection {
	return NewSelection(clamp(s.Start, limit), clamp(s.End, limit))
}

// Validate reports whether the selection fits a text of length runes.
func (s Selection) Validate(length int) error {
	if s.Start < 0 || s.Start > s.End || s.End > length {
		return fmt.Errorf("%w: %s for length %d", ErrInvalidSelection, s, length)
	}
	return nil
}

// String returns a representation like "[2:5)" or "|3".
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("|%d", s.Start)
	}
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

func clamp(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
