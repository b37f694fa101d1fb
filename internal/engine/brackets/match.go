package brackets

import "github.com/dshills/inkwell/internal/engine/buffer"

// Direction is the scan direction of a matching search.
type Direction uint8

const (
	// Forward scans toward the end of the buffer.
	Forward Direction = iota
	// Backward scans toward the start of the buffer.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// wikiAt returns the wiki-link token occupying [i, i+2), if any.
func (m Matcher) wikiAt(runes []rune, i int) string {
	if !m.WikiLinks {
		return ""
	}
	switch {
	case buffer.HasAt(runes, i, WikiOpen):
		return WikiOpen
	case buffer.HasAt(runes, i, WikiClose):
		return WikiClose
	}
	return ""
}

// FindMatch finds the partner of token, which starts at pos, scanning in
// dir. It returns the offset of the partner's first rune.
//
// Only tokens of the same kind change the depth. At every scan offset the
// two-rune wiki token is tested before single runes and is stepped over as
// one unit. Symmetric delimiters do not nest: their partner is the nearest
// equal rune on the same line.
//
// ok is false when the buffer is exhausted before depth reaches zero.
func (m Matcher) FindMatch(runes []rune, pos int, token string, dir Direction) (int, bool) {
	partner := Partner(token)
	if partner == "" || !buffer.HasAt(runes, pos, token) {
		return 0, false
	}
	if len(token) == 1 && IsSymmetric(rune(token[0])) {
		return findSymmetric(runes, pos, rune(token[0]), dir)
	}

	depth := 1
	if dir == Forward {
		for i := pos + len([]rune(token)); i < len(runes); {
			if w := m.wikiAt(runes, i); w != "" {
				if d := step(w, token, partner, &depth); d {
					return i, true
				}
				i += 2
				continue
			}
			if step(string(runes[i]), token, partner, &depth) {
				return i, true
			}
			i++
		}
		return 0, false
	}

	for i := pos - 1; i >= 0; {
		if w := m.wikiAt(runes, i-1); w != "" {
			if step(w, token, partner, &depth) {
				return i - 1, true
			}
			i -= 2
			continue
		}
		if step(string(runes[i]), token, partner, &depth) {
			return i, true
		}
		i--
	}
	return 0, false
}

// step applies seen to depth and reports whether depth reached zero.
func step(seen, token, partner string, depth *int) bool {
	switch seen {
	case token:
		*depth++
	case partner:
		*depth--
		return *depth == 0
	}
	return false
}

func findSymmetric(runes []rune, pos int, r rune, dir Direction) (int, bool) {
	if dir == Forward {
		for i := pos + 1; i < len(runes) && runes[i] != '\n'; i++ {
			if runes[i] == r {
				return i, true
			}
		}
		return 0, false
	}
	for i := pos - 1; i >= 0 && runes[i] != '\n'; i-- {
		if runes[i] == r {
			return i, true
		}
	}
	return 0, false
}

// SymmetricDirection reports which way the symmetric delimiter at pos
// looks for its partner: forward when an even number of the same rune
// precede it on its line, backward otherwise.
func SymmetricDirection(runes []rune, pos int) Direction {
	r := runes[pos]
	n := 0
	for i := pos - 1; i >= 0 && runes[i] != '\n'; i-- {
		if runes[i] == r {
			n++
		}
	}
	if n%2 == 0 {
		return Forward
	}
	return Backward
}

// TokenAt returns the delimiter token covering the rune at offset, with
// its start offset. A wiki token wins over a single rune. When two wiki
// tokens could cover offset, the one on the caret side of dir is chosen:
// for Backward the token ending at offset+1, for Forward the token
// starting at offset.
func (m Matcher) TokenAt(runes []rune, offset int, dir Direction) (start int, token string, ok bool) {
	if offset < 0 || offset >= len(runes) {
		return 0, "", false
	}

	candidates := [2]int{offset - 1, offset}
	if dir == Forward {
		candidates = [2]int{offset, offset - 1}
	}
	for _, c := range candidates {
		if w := m.wikiAt(runes, c); w != "" {
			return c, w, true
		}
	}

	if IsDelimiter(runes[offset]) {
		return offset, string(runes[offset]), true
	}
	return 0, "", false
}

// MatchDirection returns the direction in which the partner of the token
// at start is searched.
func MatchDirection(runes []rune, start int, token string) Direction {
	if len(token) == 1 && IsSymmetric(rune(token[0])) {
		return SymmetricDirection(runes, start)
	}
	if IsOpenToken(token) {
		return Forward
	}
	return Backward
}

// Pair finds the delimiter token covering offset and its partner.
// ok is false when offset is not on a delimiter or no partner exists.
func (m Matcher) Pair(runes []rune, offset int, dir Direction) (p Span, ok bool) {
	start, token, ok := m.TokenAt(runes, offset, dir)
	if !ok {
		return Span{}, false
	}
	mdir := MatchDirection(runes, start, token)
	other, ok := m.FindMatch(runes, start, token, mdir)
	if !ok {
		return Span{}, false
	}
	partner := Partner(token)
	if mdir == Forward {
		return Span{A: start, LenA: runeLen(token), B: other, LenB: runeLen(partner), TouchedA: true}, true
	}
	return Span{A: other, LenA: runeLen(partner), B: start, LenB: runeLen(token), TouchedA: false}, true
}

// Span locates a matched pair of tokens. A is the earlier token and B the
// later one. TouchedA is true when the token that was looked up is A.
type Span struct {
	A, LenA  int
	B, LenB  int
	TouchedA bool
}

// Remove returns runes with both tokens of the span removed, and the
// caret offset where the looked-up token used to be.
func (s Span) Remove(runes []rune) ([]rune, int) {
	out := buffer.Splice(runes, s.B, s.B+s.LenB, nil)
	out = buffer.Splice(out, s.A, s.A+s.LenA, nil)
	if s.TouchedA {
		return out, s.A
	}
	return out, s.B - s.LenA
}

// FindMatch uses the Default matcher.
func FindMatch(runes []rune, pos int, token string, dir Direction) (int, bool) {
	return Default.FindMatch(runes, pos, token, dir)
}

// TokenAt uses the Default matcher.
func TokenAt(runes []rune, offset int, dir Direction) (int, string, bool) {
	return Default.TokenAt(runes, offset, dir)
}

func runeLen(s string) int {
	return buffer.RuneLen(s)
}
