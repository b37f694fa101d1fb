package buffer

import "unicode/utf8"

// Splice returns a new rune slice with runes[start:end] replaced by insert.
// The input slice is not modified. Offsets must satisfy
// 0 <= start <= end <= len(runes).
func Splice(runes []rune, start, end int, insert []rune) []rune {
	out := make([]rune, 0, len(runes)-(end-start)+len(insert))
	out = append(out, runes[:start]...)
	out = append(out, insert...)
	out = append(out, runes[end:]...)
	return out
}

// SpliceString is Splice for string input and output.
func SpliceString(runes []rune, start, end int, insert string) string {
	return string(Splice(runes, start, end, []rune(insert)))
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// RuneAt returns the rune at offset, or 0 and false when offset is out of range.
func RuneAt(runes []rune, offset int) (rune, bool) {
	if offset < 0 || offset >= len(runes) {
		return 0, false
	}
	return runes[offset], true
}

// HasAt reports whether runes contains token starting at offset.
func HasAt(runes []rune, offset int, token string) bool {
	if offset < 0 {
		return false
	}
	i := offset
	for _, r := range token {
		if i >= len(runes) || runes[i] != r {
			return false
		}
		i++
	}
	return true
}
