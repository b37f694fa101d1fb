package brackets

import "github.com/dshills/inkwell/internal/engine/buffer"

// Kind classifies a typed rune.
type Kind uint8

const (
	// KindPlain is a rune with no pair behavior.
	KindPlain Kind = iota
	// KindOpen is a rune that opens a pair, or completes "[[".
	KindOpen
	// KindClose is a rune that may skip over an existing close.
	KindClose
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	default:
		return "plain"
	}
}

// Token is the result of classifying a typed rune.
type Token struct {
	Kind Kind
	Text string
}

// IsWiki returns true if the token is a wiki-link token.
func (t Token) IsWiki() bool {
	return IsWiki(t.Text)
}

// Matcher recognizes delimiters in a rune buffer.
// WikiLinks enables the two-rune "[[" / "]]" token.
type Matcher struct {
	WikiLinks bool
}

// Default recognizes wiki-link tokens.
var Default = Matcher{WikiLinks: true}

// Classify classifies key typed over sel in runes.
//
// "[" typed right after "[" completes the wiki-link open token. Other
// table open runes are open. ) ] } are close. A symmetric delimiter is a
// close when the caret sits directly before the same rune, an open
// otherwise.
func (m Matcher) Classify(runes []rune, sel buffer.Selection, key rune) Token {
	if key == '[' && m.WikiLinks {
		if prev, ok := buffer.RuneAt(runes, sel.Start-1); ok && prev == '[' {
			return Token{Kind: KindOpen, Text: WikiOpen}
		}
	}

	if IsSymmetric(key) {
		if next, ok := buffer.RuneAt(runes, sel.End); ok && next == key && sel.IsEmpty() {
			return Token{Kind: KindClose, Text: string(key)}
		}
		return Token{Kind: KindOpen, Text: string(key)}
	}

	if IsOpen(key) {
		return Token{Kind: KindOpen, Text: string(key)}
	}
	if IsClose(key) {
		return Token{Kind: KindClose, Text: string(key)}
	}
	return Token{Kind: KindPlain, Text: string(key)}
}

// Classify classifies key using the Default matcher.
func Classify(runes []rune, sel buffer.Selection, key rune) Token {
	return Default.Classify(runes, sel, key)
}
