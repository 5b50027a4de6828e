// Package typesystem implements Leda's structural type lattice:
// primitives, literal types, Function and Table types, Union, and the
// TypeList shape that flows through multi-value positions (call
// arguments, returns, assignment). Assignability lives in assignable.go.
package typesystem

import "fmt"

// Type is the closed sum of type kinds. Every Type can format itself
// (String) and report a display name if it was introduced under a type
// alias (DisplayName).
type Type interface {
	TypeString() string
	fmt.Stringer
	displayName() string
	withDisplayName(name string) Type
}

// WithDisplayName returns t carrying name as its alias display name, for
// `type T = ...` bindings: hover and diagnostics show the alias instead
// of expanding it.
func WithDisplayName(t Type, name string) Type {
	return t.withDisplayName(name)
}

// DisplayName returns the alias name t was introduced under, or "" if
// none.
func DisplayName(t Type) string {
	return t.displayName()
}

// base is embedded by every concrete Type to carry its optional display
// name without repeating the field and accessor on each kind.
type base struct {
	alias string
}

func (b base) displayName() string { return b.alias }

// ---- Primitive singletons ----

// primitiveKind distinguishes the primitive singletons: one package-level
// var per kind. An alias of a primitive (withDisplayName) is a copy that
// keeps the kind, so primitives are compared by kind, not by pointer.
type primitiveKind int

const (
	kindAny primitiveKind = iota
	kindUnknown
	kindNil
	kindNumber
	kindTrue
	kindFalse
	kindBoolean
	kindString
	kindFunction
	kindTable
)

type Primitive struct {
	base
	kind primitiveKind
	name string
}

func (p *Primitive) TypeString() string { return p.name }
func (p *Primitive) String() string     { return p.name }
func (p *Primitive) withDisplayName(name string) Type {
	clone := *p
	clone.alias = name
	return &clone
}

var (
	Any      = &Primitive{kind: kindAny, name: "any"}
	Unknown  = &Primitive{kind: kindUnknown, name: "unknown"}
	Nil      = &Primitive{kind: kindNil, name: "nil"}
	Number   = &Primitive{kind: kindNumber, name: "number"}
	True     = &Primitive{kind: kindTrue, name: "true"}
	False    = &Primitive{kind: kindFalse, name: "false"}
	Boolean  = &Primitive{kind: kindBoolean, name: "boolean"}
	String   = &Primitive{kind: kindString, name: "string"}
	Function = &Primitive{kind: kindFunction, name: "function"}
	Table    = &Primitive{kind: kindTable, name: "table"}
)

// ---- Literal types ----

type StringLiteral struct {
	base
	Value string
}

func (t *StringLiteral) TypeString() string { return fmt.Sprintf("%q", t.Value) }
func (t *StringLiteral) String() string     { return t.TypeString() }
func (t *StringLiteral) withDisplayName(name string) Type {
	clone := *t
	clone.alias = name
	return &clone
}

func NewStringLiteral(value string) *StringLiteral { return &StringLiteral{Value: value} }

type NumberLiteral struct {
	base
	Value float64
}

func (t *NumberLiteral) TypeString() string { return fmt.Sprintf("%g", t.Value) }
func (t *NumberLiteral) String() string     { return t.TypeString() }
func (t *NumberLiteral) withDisplayName(name string) Type {
	clone := *t
	clone.alias = name
	return &clone
}

func NewNumberLiteral(value float64) *NumberLiteral { return &NumberLiteral{Value: value} }

// ---- Function ----

type FunctionType struct {
	base
	Params  *TypeList
	Returns *TypeList
}

func NewFunction(params, returns *TypeList) *FunctionType {
	return &FunctionType{Params: params, Returns: returns}
}

func (t *FunctionType) TypeString() string {
	return fmt.Sprintf("(%s) -> %s", t.Params.String(), t.Returns.String())
}
func (t *FunctionType) String() string { return t.TypeString() }
func (t *FunctionType) withDisplayName(name string) Type {
	clone := *t
	clone.alias = name
	return &clone
}

// ---- Table ----

// TablePair is one (key-type, value-type) entry. Keys are either literal
// types (named fields, e.g. StringLiteral("x")) or primitive types
// (general indexers, e.g. string for `[string]: T`).
type TablePair struct {
	Key   Type
	Value Type
}

type TableType struct {
	base
	Pairs []TablePair
}

func NewTable(pairs []TablePair) *TableType {
	return &TableType{Pairs: pairs}
}

func (t *TableType) TypeString() string {
	s := "{"
	for i, p := range t.Pairs {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("[%s]: %s", p.Key.String(), p.Value.String())
	}
	return s + "}"
}
func (t *TableType) String() string { return t.TypeString() }
func (t *TableType) withDisplayName(name string) Type {
	clone := *t
	clone.alias = name
	return &clone
}

// Lookup returns the value-type paired with a key assignable from
// keyType, and whether one was found. Used by the checker for `t[k]`.
func (t *TableType) Lookup(keyType Type, assignable func(target, source Type) bool) (Type, bool) {
	for _, p := range t.Pairs {
		if assignable(p.Key, keyType) {
			return p.Value, true
		}
	}
	return nil, false
}

// ---- Union ----

type UnionType struct {
	base
	Alternatives []Type
}

func NewUnion(alts []Type) *UnionType {
	return &UnionType{Alternatives: alts}
}

func (t *UnionType) TypeString() string {
	s := ""
	for i, a := range t.Alternatives {
		if i > 0 {
			s += " | "
		}
		s += a.String()
	}
	return s
}
func (t *UnionType) String() string { return t.TypeString() }
func (t *UnionType) withDisplayName(name string) Type {
	clone := *t
	clone.alias = name
	return &clone
}

// IsUnknown reports whether t is the unknown sentinel.
func IsUnknown(t Type) bool { return isUnknown(t) }

// IsAny reports whether t is the any top type.
func IsAny(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.kind == kindAny
}

// IsFunctionPrimitive reports whether t is the unparameterised `function`
// primitive (as opposed to a structural FunctionType).
func IsFunctionPrimitive(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.kind == kindFunction
}

// IsTablePrimitive reports whether t is the unparameterised `table`
// primitive (as opposed to a structural TableType).
func IsTablePrimitive(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.kind == kindTable
}

// IsStringish reports whether t is the string primitive or a
// StringLiteral, the set of types the length operator and `..` accept
// on the string side.
func IsStringish(t Type) bool {
	if p, ok := t.(*Primitive); ok && p.kind == kindString {
		return true
	}
	_, ok := t.(*StringLiteral)
	return ok
}

// IsNumberish reports whether t is the number primitive or a
// NumberLiteral.
func IsNumberish(t Type) bool {
	if p, ok := t.(*Primitive); ok && p.kind == kindNumber {
		return true
	}
	_, ok := t.(*NumberLiteral)
	return ok
}

// Display returns t's alias name if present, else its expanded string.
func Display(t Type) string {
	if t == nil {
		return "<unknown>"
	}
	if name := t.displayName(); name != "" {
		return name
	}
	return t.String()
}
