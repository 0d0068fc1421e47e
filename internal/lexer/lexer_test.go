package lexer

import (
	"testing"

	"github.com/funvibe/angelscript-front/internal/token"
)

func tokenTexts(t *testing.T, src string) []string {
	t.Helper()
	tokens := New(src, "test.as").Tokenize()
	var texts []string
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		texts = append(texts, tok.Text)
	}
	return texts
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"empty", "", nil},
		{"identifier", "foo", []string{"foo"}},
		{"keyword", "class Foo {}", []string{"class", "Foo", "{", "}"}},
		{"number", "123", []string{"123"}},
		{"hex number", "0xFF", []string{"0xFF"}},
		{"float", "3.14f", []string{"3.14f"}},
		{"string", `"hello"`, []string{`"hello"`}},
		{"string with escape", `"a\"b"`, []string{`"a\"b"`}},
		{"line comment skipped", "a // comment\nb", []string{"a", "b"}},
		{"block comment skipped", "a /* c */ b", []string{"a", "b"}},
		{"two-char math compound", "a ** b", []string{"a", "**", "b"}},
		{"two-char assign compound", "a **= b", []string{"a", "**=", "b"}},
		{"shift assign compound", "a <<= b", []string{"a", "<<=", "b"}},
		{"left shift left alone", "a << b", []string{"a", "<<", "b"}},
		{"right shift not combined", "a >> b", []string{"a", ">", ">", "b"}},
		{"scope operator", "A::B", []string{"A", "::", "B"}},
		{"increment", "a++", []string{"a", "++"}},
		{"logical and", "a && b", []string{"a", "&&", "b"}},
		{"logical xor keyword alias", "a ^^ b", []string{"a", "^^", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenTexts(t, tc.src)
			if len(got) != len(tc.want) {
				t.Fatalf("token count: got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("token %d: got %q, want %q (all: %v)", i, got[i], tc.want[i], got)
				}
			}
		})
	}
}

func TestTokenizeAlwaysEndsInEOF(t *testing.T) {
	tokens := New("int x = 1;", "test.as").Tokenize()
	if len(tokens) == 0 {
		t.Fatal("expected at least one token")
	}
	last := tokens[len(tokens)-1]
	if last.Kind != token.EOF {
		t.Fatalf("expected last token to be EOF, got %v", last.Kind)
	}
}

func TestAdjacentFlag(t *testing.T) {
	tokens := New("a>b", "test.as").Tokenize()
	// 'a', '>', 'b', EOF
	if len(tokens) < 3 {
		t.Fatalf("expected at least 3 tokens, got %d", len(tokens))
	}
	if tokens[1].Adjacent != true {
		t.Errorf("'>' immediately after 'a' should be Adjacent, got false")
	}

	spaced := New("a > b", "test.as").Tokenize()
	if spaced[1].Adjacent {
		t.Errorf("'>' separated by whitespace from 'a' should not be Adjacent")
	}
}

func TestReservedFlags(t *testing.T) {
	tokens := New("int", "test.as").Tokenize()
	if !tokens[0].Flags.Has(token.IsPrimeType) {
		t.Errorf("expected 'int' to carry IsPrimeType flag")
	}

	tokens = New("+=", "test.as").Tokenize()
	if !tokens[0].Flags.Has(token.IsAssignOp) {
		t.Errorf("expected '+=' to carry IsAssignOp flag")
	}
}

func TestIdentifierVsKeyword(t *testing.T) {
	tokens := New("classFoo class", "test.as").Tokenize()
	if tokens[0].Kind != token.Identifier {
		t.Errorf("expected 'classFoo' to lex as an identifier, got %v", tokens[0].Kind)
	}
	if tokens[1].Kind != token.Reserved {
		t.Errorf("expected 'class' to lex as reserved, got %v", tokens[1].Kind)
	}
}
