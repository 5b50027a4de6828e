package namefinder_test

import (
	"testing"

	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/namefinder"
	"github.com/ledalang/leda/internal/parser"
	"github.com/ledalang/leda/internal/source"
)

func TestFindAtLocatesNameUnderCursor(t *testing.T) {
	code := "local x = 1\nlocal y = x"
	block, diags := parser.Parse(code)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}

	// Second line, character 10 is inside the trailing "x" reference.
	node, ok := namefinder.FindAt(block, source.Position{Line: 1, Character: 10})
	if !ok {
		t.Fatal("expected to find a node at the reference position")
	}
	name, ok := node.(*ast.Name)
	if !ok {
		t.Fatalf("node is %T, want *ast.Name", node)
	}
	if name.Value != "x" {
		t.Errorf("name.Value = %q, want %q", name.Value, "x")
	}
}

func TestFindAtOutsideBlockRangeFails(t *testing.T) {
	block, _ := parser.Parse("local x = 1")
	_, ok := namefinder.FindAt(block, source.Position{Line: 50, Character: 0})
	if ok {
		t.Error("a position far outside the source should not resolve to any node")
	}
}

func TestFindAtOnFunctionParameter(t *testing.T) {
	code := "local function f(a) return a end"
	block, diags := parser.Parse(code)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	// Position of "a" inside "return a end".
	node, ok := namefinder.FindAt(block, source.Position{Line: 0, Character: 27})
	if !ok {
		t.Fatal("expected to find a node inside the function body")
	}
	if name, ok := node.(*ast.Name); !ok || name.Value != "a" {
		t.Errorf("node = %#v, want *ast.Name{Value: %q}", node, "a")
	}
}
