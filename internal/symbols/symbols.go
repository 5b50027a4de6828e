// Package symbols implements the declared-value/type identity model: a
// Symbol per declaration site, and the dual value/type scope stack the
// binder pushes and pops while walking the tree.
package symbols

import (
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/typesystem"
)

// Kind distinguishes what a Symbol was declared as.
type Kind int

const (
	LocalVariable Kind = iota
	Parameter
	Global
	TypeSymbol
	IntrinsicType
)

// Symbol is the identity of a declared value or type. Identity is by
// reference: two locals named x in sibling scopes are distinct Symbols
// even though Name is equal.
type Symbol struct {
	Name       string
	Kind       Kind
	Definition source.Location

	// Intrinsic, non-nil only for Kind == IntrinsicType, carries the
	// built-in Type the root scope's pre-populated type symbols (any,
	// boolean, number, string, function) wrap.
	Intrinsic typesystem.Type
}

// DefinitionLocation implements source.Symbol.
func (s *Symbol) DefinitionLocation() source.Location { return s.Definition }

// New creates a Symbol declared at def.
func New(name string, kind Kind, def source.Location) *Symbol {
	return &Symbol{Name: name, Kind: kind, Definition: def}
}

// NewIntrinsic creates a root-scope IntrinsicType symbol wrapping t; it
// has no declaring source, so its Definition is the zero Location.
func NewIntrinsic(name string, t typesystem.Type) *Symbol {
	return &Symbol{Name: name, Kind: IntrinsicType, Intrinsic: t}
}
