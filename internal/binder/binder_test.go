package binder_test

import (
	"testing"

	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/binder"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/parser"
	"github.com/ledalang/leda/internal/source"
)

func bind(t *testing.T, code string) (*source.Source, *ast.Block, []diagnostics.Diagnostic) {
	t.Helper()
	block, parseDiags := parser.Parse(code)
	if len(parseDiags) != 0 {
		t.Fatalf("parsing %q: unexpected diagnostics: %v", code, parseDiags)
	}
	src := source.New("<test>", code)
	diags := binder.Bind(src, block)
	return src, block, diags
}

func TestBindResolvesLocal(t *testing.T) {
	_, _, diags := bind(t, "local x = 1\nlocal y = x")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestBindNameNotFound(t *testing.T) {
	_, _, diags := bind(t, "local x = y")
	if len(diags) != 1 || diags[0].Code != diagnostics.CodeNameNotFound {
		t.Fatalf("diagnostics = %v, want exactly one NameNotFound", diags)
	}
}

func TestBindDuplicateLocalInSameScope(t *testing.T) {
	_, _, diags := bind(t, "local x = 1\nlocal x = 2")
	if len(diags) != 1 || diags[0].Code != diagnostics.CodeValueAlreadyDeclared {
		t.Fatalf("diagnostics = %v, want exactly one ValueAlreadyDeclared", diags)
	}
}

func TestBindShadowingInNestedScopeIsAllowed(t *testing.T) {
	_, _, diags := bind(t, "local x = 1\nif true then local x = 2 end")
	if len(diags) != 0 {
		t.Fatalf("shadowing in a nested block must not be an error: %v", diags)
	}
}

func TestBindLocalNotVisibleOutsideItsBlock(t *testing.T) {
	_, _, diags := bind(t, "if true then local x = 1 end\nlocal y = x")
	if len(diags) != 1 || diags[0].Code != diagnostics.CodeNameNotFound {
		t.Fatalf("diagnostics = %v, want x to be out of scope after the if-block ends", diags)
	}
}

func TestBindGlobalVisibleFromNestedScope(t *testing.T) {
	_, _, diags := bind(t, "global g = 1\nif true then local y = g end")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestBindTypeAliasRejectsSelfReference(t *testing.T) {
	_, _, diags := bind(t, "type T = T")
	if len(diags) != 1 || diags[0].Code != diagnostics.CodeNameNotFound {
		t.Fatalf("diagnostics = %v, want a NameNotFound for the self-referencing alias", diags)
	}
}

func TestBindLocalFunctionSeesItself(t *testing.T) {
	_, _, diags := bind(t, "local function fact(n) if n == 0 then return 1 end return n * fact(n - 1) end")
	if len(diags) != 0 {
		t.Fatalf("a local function must be able to call itself recursively: %v", diags)
	}
}

func TestBindAssignmentToUndeclaredNameRejectsImplicitGlobal(t *testing.T) {
	_, _, diags := bind(t, "x = 1")
	if len(diags) != 1 || diags[0].Code != diagnostics.CodeNoImplicitGlobalFunction {
		t.Fatalf("diagnostics = %v, want exactly one NoImplicitGlobalFunction", diags)
	}
}

func TestBindAssignmentToDeclaredLocalResolves(t *testing.T) {
	_, _, diags := bind(t, "local x = 1\nx = 2")
	if len(diags) != 0 {
		t.Fatalf("assigning to an already-declared local must not error: %v", diags)
	}
}

func TestBindAttachesSymbolToEveryName(t *testing.T) {
	src, block, diags := bind(t, "local x = 1")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decl := block.Statements[0].(*ast.LocalDeclaration).Declarations[0]
	if _, ok := src.TryGetSymbol(decl); !ok {
		t.Error("the declaration's own Declaration node should carry its defining symbol")
	}
}
