package source

import (
	"strings"

	"github.com/ledalang/leda/internal/diagnostics"
)

// Tree is implemented by every AST node so Source can key its per-tree
// maps on node identity without importing the ast package (which in turn
// imports source for Range/Location).
type Tree interface {
	TreeRange() Range
}

// Symbol is implemented by internal/symbols.Symbol. Source only needs
// identity and a definition Location from it, so the interface lives
// here to avoid an import cycle between source and symbols.
type Symbol interface {
	DefinitionLocation() Location
}

// Type is implemented by internal/typesystem.Type. Source only stores
// opaque Types against symbols; it never inspects them.
type Type interface {
	TypeString() string
}

// Source owns one file's immutable text and the artifacts the
// lexer/parser/binder/checker pipeline produces from it. Re-running the
// pipeline on new text replaces every artifact atomically (Invariant 5):
// callers reconstruct these maps from empty in UpdateCode, never mutate
// in place across a generation.
type Source struct {
	Path string
	Code string

	lineStarts []int // byte offset of the start of each line

	Root Tree // *ast.Block, opaque here

	symbols    map[Tree]Symbol
	types      map[Symbol]Type
	references map[Symbol][]Range

	Diagnostics []diagnostics.Diagnostic
}

// New creates a Source over path and code with artifacts uncomputed;
// callers run the pipeline (lexer -> parser -> binder -> checker)
// against it to populate Root/symbols/types/references.
func New(path, code string) *Source {
	s := &Source{Path: path}
	s.UpdateCode(code)
	return s
}

// UpdateCode replaces the source text wholesale and invalidates every
// artifact: line index, tree, and all three per-source maps.
func (s *Source) UpdateCode(code string) {
	s.Code = code
	s.lineStarts = computeLineStarts(code)
	s.Root = nil
	s.symbols = make(map[Tree]Symbol)
	s.types = make(map[Symbol]Type)
	s.references = make(map[Symbol][]Range)
	s.Diagnostics = nil
}

func computeLineStarts(code string) []int {
	starts := []int{0}
	for i := 0; i < len(code); i++ {
		if code[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// GetLine returns the text of zero-based line i, without its terminator,
// for diagnostic rendering. An out-of-range line returns "".
func (s *Source) GetLine(i int) string {
	if i < 0 || i >= len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[i]
	end := len(s.Code)
	if i+1 < len(s.lineStarts) {
		end = s.lineStarts[i+1]
	}
	line := s.Code[start:end]
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}

// AttachSymbol records that tree resolves to sym. When isDefinition is
// false the attachment also appends tree's range to sym's reference
// list in this source; definitions are never added to the reference
// list (§3 Per-source tables).
func (s *Source) AttachSymbol(tree Tree, sym Symbol, isDefinition bool) {
	s.symbols[tree] = sym
	if !isDefinition {
		s.references[sym] = append(s.references[sym], tree.TreeRange())
	}
}

// TryGetSymbol returns the symbol attached to tree, if any.
func (s *Source) TryGetSymbol(tree Tree) (Symbol, bool) {
	sym, ok := s.symbols[tree]
	return sym, ok
}

// SetSymbolType records sym's checked type.
func (s *Source) SetSymbolType(sym Symbol, t Type) {
	s.types[sym] = t
}

// TryGetSymbolType returns sym's checked type, if the checker has run
// and recorded one.
func (s *Source) TryGetSymbolType(sym Symbol) (Type, bool) {
	t, ok := s.types[sym]
	return t, ok
}

// ReferencesOf returns the ranges, within this source, that refer to
// sym. Definitions are never included (callers add them on demand via
// Project.SymbolReferences).
func (s *Source) ReferencesOf(sym Symbol) []Range {
	return s.references[sym]
}

// AllSymbols returns every (tree, symbol) pair the binder attached,
// for callers (namefinder, hover) that need to enumerate rather than
// look up by a specific tree.
func (s *Source) AllSymbols() map[Tree]Symbol {
	return s.symbols
}
