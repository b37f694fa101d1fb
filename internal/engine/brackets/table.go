package brackets

// Wiki-link tokens.
const (
	WikiOpen  = "[["
	WikiClose = "]]"
)

// closeOf maps each open rune to its close rune.
var closeOf = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'`':  '`',
	'"':  '"',
	'\'': '\'',
}

// openOf maps each asymmetric close rune to its open rune.
var openOf = map[rune]rune{
	')': '(',
	']': '[',
	'}': '{',
}

// Close returns the close rune for an open rune.
func Close(open rune) (rune, bool) {
	r, ok := closeOf[open]
	return r, ok
}

// Open returns the open rune for a close rune.
func Open(close rune) (rune, bool) {
	if IsSymmetric(close) {
		return close, true
	}
	r, ok := openOf[close]
	return r, ok
}

// IsOpen returns true if r opens a pair. Symmetric delimiters open and close.
func IsOpen(r rune) bool {
	_, ok := closeOf[r]
	return ok
}

// IsClose returns true if r closes a pair. Symmetric delimiters open and close.
func IsClose(r rune) bool {
	_, ok := openOf[r]
	return ok || IsSymmetric(r)
}

// IsSymmetric returns true for delimiters whose open and close runes are equal.
func IsSymmetric(r rune) bool {
	return r == '`' || r == '"' || r == '\''
}

// IsDelimiter returns true if r appears in the bracket table.
func IsDelimiter(r rune) bool {
	return IsOpen(r) || IsClose(r)
}

// IsWiki returns true for the two wiki-link tokens.
func IsWiki(token string) bool {
	return token == WikiOpen || token == WikiClose
}

// Partner returns the token that pairs with token: ")" for "(", "[[" for
// "]]", "`" for "`". It returns "" for anything that is not a delimiter.
func Partner(token string) string {
	switch token {
	case WikiOpen:
		return WikiClose
	case WikiClose:
		return WikiOpen
	}
	runes := []rune(token)
	if len(runes) != 1 {
		return ""
	}
	if r, ok := closeOf[runes[0]]; ok {
		return string(r)
	}
	if r, ok := openOf[runes[0]]; ok {
		return string(r)
	}
	return ""
}

// IsOpenToken returns true for tokens that are searched forward for
// their partner. Symmetric tokens report false; their direction depends
// on context (see SymmetricDirection).
func IsOpenToken(token string) bool {
	if token == WikiOpen {
		return true
	}
	runes := []rune(token)
	return len(runes) == 1 && IsOpen(runes[0]) && !IsSymmetric(runes[0])
}
