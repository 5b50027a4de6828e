package parser_test

import (
	"testing"

	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/parser"
)

func parseOK(t *testing.T, code string) *ast.Block {
	t.Helper()
	block, diags := parser.Parse(code)
	if len(diags) != 0 {
		t.Fatalf("parsing %q: unexpected diagnostics: %v", code, diags)
	}
	return block
}

func TestParserStatementShapes(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"local_decl", "local x = 1"},
		{"local_decl_annotated", "local x: number = 1"},
		{"global_decl", "global x = 1"},
		{"if_elseif_else", "if x then y = 1 elseif z then y = 2 else y = 3 end"},
		{"numeric_for", "for i = 1, 10 do end"},
		{"numeric_for_step", "for i = 1, 10, 2 do end"},
		{"iterator_for", "for k, v in pairs(t) do end"},
		{"while_loop", "while x do x = x - 1 end"},
		{"repeat_until", "repeat x = x - 1 until x == 0"},
		{"local_function", "local function f(a, b) return a + b end"},
		{"call_statement", "print(1, 2)"},
		{"method_call", "obj:method(1)"},
		{"table_constructor", "local t = { 1, 2, x = 3, [4] = 5 }"},
		{"type_alias", "type Point = { x: number, y: number }"},
		{"multi_assign", "x, y = 1, 2"},
		{"vararg_function", "local function f(...) return ... end"},
		{"binary_precedence", "local x = 1 + 2 * 3"},
		{"unary_ops", "local x = -1 local y = not true local z = #t"},
		{"function_with_return_type", "local function f(): number return 1 end"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			block := parseOK(t, tc.code)
			if len(block.Statements) == 0 {
				t.Fatalf("parsing %q produced no statements", tc.code)
			}
		})
	}
}

func TestParserRecoversWithErrorNode(t *testing.T) {
	block, diags := parser.Parse("local x = ")
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for a truncated declaration")
	}
	decl, ok := block.Statements[0].(*ast.LocalDeclaration)
	if !ok || len(decl.Values) == 0 {
		t.Fatalf("statement = %#v, want a LocalDeclaration with a value", block.Statements[0])
	}
	if _, ok := decl.Values[0].(*ast.Error); !ok {
		t.Errorf("value = %#v, want *ast.Error", decl.Values[0])
	}
}

func TestParserBinaryPrecedence(t *testing.T) {
	block := parseOK(t, "x = 1 + 2 * 3")
	assign, ok := block.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Assignment", block.Statements[0])
	}
	top, ok := assign.Values[0].(*ast.Binary)
	if !ok {
		t.Fatalf("value is %T, want *ast.Binary", assign.Values[0])
	}
	if top.Op != ast.Add {
		t.Fatalf("top operator = %v, want Add (* must bind tighter and nest on the right)", top.Op)
	}
	if _, ok := top.Right.(*ast.Binary); !ok {
		t.Fatalf("right operand is %T, want *ast.Binary (the 2 * 3 term)", top.Right)
	}
}

func TestParserRangesCoverWholeStatement(t *testing.T) {
	block := parseOK(t, "local x = 1")
	stmt := block.Statements[0]
	rng := stmt.TreeRange()
	if rng.Start.Line != 0 || rng.Start.Character != 0 {
		t.Errorf("statement should start at 0:0, got %v", rng.Start)
	}
	if rng.End.Character == 0 {
		t.Errorf("statement range must not be empty: %v", rng)
	}
}
