package lexer_test

import (
	"testing"

	"github.com/ledalang/leda/internal/lexer"
	"github.com/ledalang/leda/internal/token"
)

func kinds(input string) []token.Kind {
	l := lexer.New(input)
	var out []token.Kind
	for {
		tok := l.ReadToken()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"local assignment", "local x = 1", []token.Kind{
			token.LOCAL, token.NAME, token.ASSIGN, token.NUMBER, token.EOF,
		}},
		{"keywords are not names", "if then else end", []token.Kind{
			token.IF, token.THEN, token.ELSE, token.END, token.EOF,
		}},
		{"punctuation maximal munch", "a~=b", []token.Kind{
			token.NAME, token.NEQ, token.NAME, token.EOF,
		}},
		{"ellipsis over dotdot", "f(...)", []token.Kind{
			token.NAME, token.LPAREN, token.ELLIPSIS, token.RPAREN, token.EOF,
		}},
		{"concat operator", "a .. b", []token.Kind{
			token.NAME, token.DOTDOT, token.NAME, token.EOF,
		}},
		{"line comment skipped", "x -- comment\ny", []token.Kind{
			token.NAME, token.NAME, token.EOF,
		}},
		{"long bracket string", "[[hello]]", []token.Kind{
			token.LONG_STRING, token.EOF,
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := kinds(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("kinds(%q) = %v, want %v", tc.input, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("kinds(%q)[%d] = %v, want %v", tc.input, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLexerNumberValue(t *testing.T) {
	l := lexer.New("3.5")
	tok := l.ReadToken()
	if tok.Kind != token.NUMBER {
		t.Fatalf("kind = %v, want NUMBER", tok.Kind)
	}
	if tok.NumberValue != 3.5 {
		t.Errorf("NumberValue = %v, want 3.5", tok.NumberValue)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	l := lexer.New(`"a\nb"`)
	tok := l.ReadToken()
	if tok.Kind != token.STRING {
		t.Fatalf("kind = %v, want STRING", tok.Kind)
	}
	if tok.StringValue != "a\nb" {
		t.Errorf("StringValue = %q, want %q", tok.StringValue, "a\nb")
	}
}

func TestLexerUnfinishedLongStringDiagnostic(t *testing.T) {
	l := lexer.New("[[no closer")
	l.ReadToken()
	if len(l.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for an unclosed long string")
	}
}

// TestLexerTotality ensures ReadToken never panics and eventually reaches
// Eof on arbitrary malformed input, matching the totality property
// required of every lexer in the pipeline.
func TestLexerTotality(t *testing.T) {
	inputs := []string{
		"~", "[=", "[==[unterminated", `"unterminated`, "0x", "...", "..", ".",
	}
	for _, input := range inputs {
		l := lexer.New(input)
		count := 0
		for {
			tok := l.ReadToken()
			count++
			if tok.Kind == token.EOF {
				break
			}
			if count > 1000 {
				t.Fatalf("ReadToken did not reach Eof for input %q", input)
			}
		}
	}
}
