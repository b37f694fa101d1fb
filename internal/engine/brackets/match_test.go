package brackets

import "testing"

func TestFindMatch(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pos     int
		token   string
		dir     Direction
		wantPos int
		wantOK  bool
	}{
		{"open paren", "a(b)", 1, "(", Forward, 3, true},
		{"close paren", "a(b)", 3, ")", Backward, 1, true},
		{"nested outer", "((a))", 0, "(", Forward, 4, true},
		{"nested outer close", "(a(b)c)", 6, ")", Backward, 0, true},
		{"nested inner", "(a(b)c)", 2, "(", Forward, 4, true},
		{"unbalanced", "a(b", 1, "(", Forward, 0, false},
		{"lone close", "a)b", 1, ")", Backward, 0, false},
		{"token not at pos", "abc", 1, "(", Forward, 0, false},
		{"not a delimiter", "abc", 1, "b", Forward, 0, false},
		{"wiki open", "x[[abc]]y", 1, "[[", Forward, 6, true},
		{"wiki close", "x[[abc]]y", 6, "]]", Backward, 1, true},
		{"single bracket", "[a]", 0, "[", Forward, 2, true},
		{"single skips wiki", "[a[[b]]]", 0, "[", Forward, 7, true},
		{"single skips wiki backward", "[a[[b]]]", 7, "]", Backward, 0, true},
		{"nested wiki", "[[a[[b]]c]]", 0, "[[", Forward, 9, true},
		{"backtick", "`code` x", 0, "`", Forward, 5, true},
		{"backtick backward", "`code` x", 5, "`", Backward, 0, true},
		{"backtick stops at newline", "`a\n`", 0, "`", Forward, 0, false},
		{"unicode offsets", "é(ü)", 1, "(", Forward, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindMatch([]rune(tt.text), tt.pos, tt.token, tt.dir)
			if got != tt.wantPos || ok != tt.wantOK {
				t.Errorf("FindMatch(%q, %d, %q, %v) = %d, %v, want %d, %v",
					tt.text, tt.pos, tt.token, tt.dir, got, ok, tt.wantPos, tt.wantOK)
			}
		})
	}
}

func TestFindMatchWithoutWikiLinks(t *testing.T) {
	m := Matcher{}
	got, ok := m.FindMatch([]rune("[[a]]"), 0, "[", Forward)
	if !ok || got != 4 {
		t.Errorf("FindMatch() = %d, %v, want 4, true", got, ok)
	}
}

func TestTokenAt(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		offset    int
		dir       Direction
		wantStart int
		wantToken string
	}{
		{"wiki open backward", "x[[]]y", 2, Backward, 1, "[["},
		{"wiki close forward", "x[[]]y", 3, Forward, 3, "]]"},
		{"single close", "a)b", 1, Backward, 1, ")"},
		{"plain", "abc", 1, Backward, 0, ""},
		{"out of range", "ab", 5, Forward, 0, ""},
		{"triple backward", "[[[", 1, Backward, 0, "[["},
		{"triple forward", "[[[", 1, Forward, 1, "[["},
		{"quote", "a\"b", 1, Forward, 1, "\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, token, ok := TokenAt([]rune(tt.text), tt.offset, tt.dir)
			wantOK := tt.wantToken != ""
			if ok != wantOK || start != tt.wantStart || token != tt.wantToken {
				t.Errorf("TokenAt(%q, %d, %v) = %d, %q, %v, want %d, %q, %v",
					tt.text, tt.offset, tt.dir, start, token, ok, tt.wantStart, tt.wantToken, wantOK)
			}
		})
	}
}

func TestSymmetricDirection(t *testing.T) {
	runes := []rune("`a` `b`\n`c")
	tests := []struct {
		pos  int
		want Direction
	}{
		{0, Forward},
		{2, Backward},
		{4, Forward},
		{6, Backward},
		{8, Forward},
	}

	for _, tt := range tests {
		if got := SymmetricDirection(runes, tt.pos); got != tt.want {
			t.Errorf("SymmetricDirection(%d) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestPairRemove(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		offset    int
		dir       Direction
		wantText  string
		wantCaret int
		wantOK    bool
	}{
		{"outer close", "(a(b)c)", 6, Backward, "a(b)c", 5, true},
		{"outer open forward", "(a(b)c)", 0, Forward, "a(b)c", 0, true},
		{"wiki open", "x[[abc]]y", 2, Backward, "xabcy", 1, true},
		{"wiki close forward", "x[[abc]]y", 6, Forward, "xabcy", 4, true},
		{"quotes", "say \"hi\" now", 7, Backward, "say hi now", 6, true},
		{"unbalanced", "a)b", 1, Backward, "", 0, false},
		{"plain", "abc", 1, Backward, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runes := []rune(tt.text)
			span, ok := Default.Pair(runes, tt.offset, tt.dir)
			if ok != tt.wantOK {
				t.Fatalf("Pair() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			out, caret := span.Remove(runes)
			if string(out) != tt.wantText || caret != tt.wantCaret {
				t.Errorf("Remove() = %q, %d, want %q, %d", string(out), caret, tt.wantText, tt.wantCaret)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if Forward.String() != "forward" || Backward.String() != "backward" {
		t.Error("Direction.String() mismatch")
	}
}
