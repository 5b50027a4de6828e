package token_test

import (
	"testing"

	"github.com/ledalang/leda/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("local"); !ok || k != token.LOCAL {
		t.Errorf("LookupKeyword(local) = %v, %v, want LOCAL, true", k, ok)
	}
	if _, ok := token.LookupKeyword("notakeyword"); ok {
		t.Error("LookupKeyword(notakeyword) should report false")
	}
}

func TestLookupPunct(t *testing.T) {
	tests := []struct {
		spelling string
		want     token.Kind
	}{
		{"+", token.PLUS}, {"==", token.EQ}, {"~=", token.NEQ},
		{"...", token.ELLIPSIS}, {"..", token.DOTDOT},
	}
	for _, tc := range tests {
		k, ok := token.LookupPunct(tc.spelling)
		if !ok || k != tc.want {
			t.Errorf("LookupPunct(%q) = %v, %v, want %v, true", tc.spelling, k, ok, tc.want)
		}
	}
	if _, ok := token.LookupPunct("~"); ok {
		t.Error(`LookupPunct("~") should report false: "~" is prefix-only`)
	}
}

func TestIsPunctPrefix(t *testing.T) {
	if !token.IsPunctPrefix("~") {
		t.Error(`"~" must be a valid prefix (of "~=")`)
	}
	if !token.IsPunctPrefix(".") {
		t.Error(`"." must extend toward ".." and "..."`)
	}
	if token.IsPunctPrefix("+") {
		t.Error(`"+" does not extend into any longer token`)
	}
}

func TestOpInfoPrecedence(t *testing.T) {
	if token.Info(token.OR).Precedence >= token.Info(token.AND).Precedence {
		t.Error("or must bind looser than and")
	}
	if token.Info(token.STAR).Precedence <= token.Info(token.PLUS).Precedence {
		t.Error("* must bind tighter than +")
	}
	if !token.Info(token.CARET).RightAssociative {
		t.Error("^ must be right-associative")
	}
	if !token.Info(token.DOTDOT).RightAssociative {
		t.Error(".. must be right-associative")
	}
}

func TestKindName(t *testing.T) {
	if token.KindName(token.END) != "end" {
		t.Errorf("KindName(END) = %q, want %q", token.KindName(token.END), "end")
	}
	if token.KindName(token.Kind(9999)) != "<unknown>" {
		t.Error("KindName of an out-of-range Kind should fall back to <unknown>")
	}
}
