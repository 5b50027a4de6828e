// Package leda is the external contract an editor-integration layer
// builds on: parse+bind+check a single source, resolve a position to a
// name, look up what a name resolves to, find every reference to a
// symbol across a project, and format a type for display. Nothing past
// this seam — no JSON-RPC, no stdio framing — lives in this module.
package leda

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/namefinder"
	"github.com/ledalang/leda/internal/pipeline"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/symbols"
	"github.com/ledalang/leda/internal/typesystem"
)

// ParseBindCheck runs the full lexer->parser->binder->checker pipeline
// over code in one call and returns the resulting Source (carrying its
// tree and per-source artifact tables) and every diagnostic raised.
func ParseBindCheck(path, code string) (*source.Source, []diagnostics.Diagnostic) {
	src := source.New(path, code)
	diags := pipeline.Standard().Run(src)
	src.Diagnostics = diags
	return src, diags
}

// NameAt resolves pos within src's tree to the most specific Name,
// Type.Name or Declaration node containing it, for a hover or
// go-to-definition request. When pos is inside a statement or expression
// but on no name, the innermost enclosing node is returned instead (see
// namefinder.FindAt); false means pos is on no statement.
func NameAt(src *source.Source, pos source.Position) (ast.Node, bool) {
	block, ok := src.Root.(*ast.Block)
	if !ok || block == nil {
		return nil, false
	}
	return namefinder.FindAt(block, pos)
}

// SymbolAt returns the Symbol a previously located Name/Type.Name node
// resolved to, if the binder attached one.
func SymbolAt(src *source.Source, name ast.Node) (*symbols.Symbol, bool) {
	tree, ok := name.(source.Tree)
	if !ok {
		return nil, false
	}
	sym, ok := src.TryGetSymbol(tree)
	if !ok {
		return nil, false
	}
	s, ok := sym.(*symbols.Symbol)
	return s, ok
}

// References returns every location across proj that refers to sym,
// optionally including its definition site.
func References(proj *source.Project, sym *symbols.Symbol, includeDefinition bool) []source.Location {
	return proj.SymbolReferences(sym, includeDefinition)
}

// FormatType renders t the way a hover or diagnostic display would: its
// alias name if it was introduced under a type alias, else its expanded
// structural form.
func FormatType(t typesystem.Type) string {
	return typesystem.Display(t)
}
