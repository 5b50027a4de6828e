package leda_test

import (
	"context"
	"testing"

	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/pipeline"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/typesystem"
	"github.com/ledalang/leda/pkg/leda"
)

func TestParseBindCheckCleanSource(t *testing.T) {
	_, diags := leda.ParseBindCheck("<test>", "local x: number = 1")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestParseBindCheckReportsAcrossStages(t *testing.T) {
	_, diags := leda.ParseBindCheck("<test>", "local x = undefinedName")
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for the undefined name")
	}
}

func TestNameAtAndSymbolAtRoundTrip(t *testing.T) {
	code := "local x = 1\nlocal y = x"
	src, diags := leda.ParseBindCheck("<test>", code)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	node, ok := leda.NameAt(src, source.Position{Line: 1, Character: 10})
	if !ok {
		t.Fatal("expected to find a name at the reference position")
	}
	name, ok := node.(*ast.Name)
	if !ok || name.Value != "x" {
		t.Fatalf("node = %#v, want *ast.Name{Value: x}", node)
	}

	sym, ok := leda.SymbolAt(src, node)
	if !ok {
		t.Fatal("expected the reference to resolve to a symbol")
	}
	if sym.Name != "x" {
		t.Errorf("sym.Name = %q, want %q", sym.Name, "x")
	}
}

func TestReferencesAcrossProject(t *testing.T) {
	proj := source.NewProject(pipeline.Standard())
	proj.Put("a.leda", "global shared = 1")
	proj.Put("b.leda", "local y = shared")

	report, _ := proj.CheckAll(context.Background())
	for path, diags := range report.Diagnostics {
		if len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics: %v", path, diags)
		}
	}

	aSrc, _ := proj.Get("a.leda")
	aBlock := aSrc.Root.(*ast.Block)
	declName := aBlock.Statements[0].(*ast.GlobalDeclaration).Declarations[0]
	sym, ok := leda.SymbolAt(aSrc, declName)
	if !ok {
		t.Fatal("expected the declaration to carry a symbol")
	}

	refs := leda.References(proj, sym, true)
	if len(refs) < 2 {
		t.Fatalf("References = %v, want at least the definition plus b.leda's use", refs)
	}
}

func TestFormatType(t *testing.T) {
	src, diags := leda.ParseBindCheck("<test>", "local x: number = 1")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	decl := src.Root.(*ast.Block).Statements[0].(*ast.LocalDeclaration).Declarations[0]
	sym, ok := leda.SymbolAt(src, decl)
	if !ok {
		t.Fatal("expected the declaration to carry a symbol")
	}
	typ, ok := src.TryGetSymbolType(sym)
	if !ok {
		t.Fatal("expected the checker to record x's type")
	}
	if got := leda.FormatType(typ.(typesystem.Type)); got != "number" {
		t.Errorf("FormatType = %q, want %q", got, "number")
	}
}
