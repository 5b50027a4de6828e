package symbols

// NameContext selects which of a name's two namespaces a lookup walks:
// ordinary identifiers resolve in Value context, type-expression names
// resolve in Type context. A single Binding carries both slots so `local
// x` and `type x = ...` in the same scope do not collide.
type NameContext int

const (
	Value NameContext = iota
	Type
)

// Binding holds the value-symbol and type-symbol bound to one name
// within one scope; either half may be nil if only the other namespace
// was declared.
type Binding struct {
	ValueSymbol *Symbol
	TypeSymbol  *Symbol
}

// Scope is one entry of the binder's scope stack: a string-keyed map of
// Bindings, pushed on entering any block that introduces locals
// (do-end, function body, each if/elseif/else branch, each for body,
// each while/repeat body) and popped on exit.
type Scope struct {
	bindings map[string]*Binding
}

func newScope() *Scope {
	return &Scope{bindings: make(map[string]*Binding)}
}

// Declare records sym under name in ctx's slot of this scope, creating
// the Binding if name has no entry yet. It does not check for prior
// declarations in this scope; callers (the binder) check DeclaredInCurrent first
// to decide whether to emit ValueAlreadyDeclared/TypeAlreadyDeclared.
func (s *Scope) Declare(name string, ctx NameContext, sym *Symbol) {
	b, ok := s.bindings[name]
	if !ok {
		b = &Binding{}
		s.bindings[name] = b
	}
	switch ctx {
	case Value:
		b.ValueSymbol = sym
	case Type:
		b.TypeSymbol = sym
	}
}

// lookupLocal returns the symbol bound to name in ctx's slot of this
// scope alone (no walking outward).
func (s *Scope) lookupLocal(name string, ctx NameContext) (*Symbol, bool) {
	b, ok := s.bindings[name]
	if !ok {
		return nil, false
	}
	switch ctx {
	case Value:
		if b.ValueSymbol != nil {
			return b.ValueSymbol, true
		}
	case Type:
		if b.TypeSymbol != nil {
			return b.TypeSymbol, true
		}
	}
	return nil, false
}

// Stack is the binder's scope stack: a new Scope is pushed with Push and
// discarded with Pop; Resolve walks from the innermost scope outward.
type Stack struct {
	scopes []*Scope
}

// NewStack creates a Stack with a single root scope, ready for the
// binder to pre-populate with intrinsic type symbols.
func NewStack() *Stack {
	return &Stack{scopes: []*Scope{newScope()}}
}

// Push opens a new, innermost scope.
func (st *Stack) Push() {
	st.scopes = append(st.scopes, newScope())
}

// Pop discards the innermost scope.
func (st *Stack) Pop() {
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Current returns the innermost scope, for Declare calls.
func (st *Stack) Current() *Scope {
	return st.scopes[len(st.scopes)-1]
}

// Root returns the outermost scope, pre-populated with intrinsic types.
func (st *Stack) Root() *Scope {
	return st.scopes[0]
}

// Resolve walks from the innermost scope outward looking for name in
// ctx's namespace, returning the first match.
func (st *Stack) Resolve(name string, ctx NameContext) (*Symbol, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].lookupLocal(name, ctx); ok {
			return sym, true
		}
	}
	return nil, false
}

// DeclaredInCurrent reports whether name already has a binding in ctx's
// namespace within the current (innermost) scope only — used to decide
// ValueAlreadyDeclared / TypeAlreadyDeclared.
func (st *Stack) DeclaredInCurrent(name string, ctx NameContext) bool {
	_, ok := st.Current().lookupLocal(name, ctx)
	return ok
}

// DeclaredInRoot reports whether name already has a binding in ctx's
// namespace within the root scope alone — used for Global redeclaration
// checks, since `global` declarations always bind in the root scope
// regardless of how deeply nested the declaration syntactically is.
func (st *Stack) DeclaredInRoot(name string, ctx NameContext) bool {
	_, ok := st.Root().lookupLocal(name, ctx)
	return ok
}
