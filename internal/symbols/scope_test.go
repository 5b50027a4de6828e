package symbols_test

import (
	"testing"

	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/symbols"
)

func newSym(name string) *symbols.Symbol {
	return symbols.New(name, symbols.LocalVariable, source.Location{})
}

func TestStackResolveWalksOutward(t *testing.T) {
	st := symbols.NewStack()
	outer := newSym("x")
	st.Root().Declare("x", symbols.Value, outer)

	st.Push()
	got, ok := st.Resolve("x", symbols.Value)
	if !ok || got != outer {
		t.Fatalf("Resolve from a nested scope should find the outer binding: %v, %v", got, ok)
	}
	st.Pop()
}

func TestStackShadowingInInnerScope(t *testing.T) {
	st := symbols.NewStack()
	outer := newSym("x")
	st.Root().Declare("x", symbols.Value, outer)

	st.Push()
	inner := newSym("x")
	st.Current().Declare("x", symbols.Value, inner)

	got, ok := st.Resolve("x", symbols.Value)
	if !ok || got != inner {
		t.Fatalf("Resolve should prefer the innermost binding: got %v, want the shadowing symbol", got)
	}
	st.Pop()

	got, ok = st.Resolve("x", symbols.Value)
	if !ok || got != outer {
		t.Fatalf("after Pop, Resolve should see the outer binding again: got %v", got)
	}
}

func TestDeclaredInCurrentDoesNotSeeOuterScope(t *testing.T) {
	st := symbols.NewStack()
	st.Root().Declare("x", symbols.Value, newSym("x"))
	st.Push()
	if st.DeclaredInCurrent("x", symbols.Value) {
		t.Error("DeclaredInCurrent must not see a binding from an outer scope")
	}
	st.Pop()
}

func TestDeclaredInRootSeesGlobalsRegardlessOfDepth(t *testing.T) {
	st := symbols.NewStack()
	st.Push()
	st.Push()
	st.Root().Declare("g", symbols.Value, newSym("g"))
	if !st.DeclaredInRoot("g", symbols.Value) {
		t.Error("DeclaredInRoot must see the root scope from any depth")
	}
	st.Pop()
	st.Pop()
}

func TestValueAndTypeNamespacesAreIndependent(t *testing.T) {
	st := symbols.NewStack()
	valueSym := newSym("Foo")
	typeSym := symbols.New("Foo", symbols.TypeSymbol, source.Location{})
	st.Root().Declare("Foo", symbols.Value, valueSym)
	st.Root().Declare("Foo", symbols.Type, typeSym)

	gotValue, ok := st.Resolve("Foo", symbols.Value)
	if !ok || gotValue != valueSym {
		t.Error("value-namespace lookup should return the value symbol")
	}
	gotType, ok := st.Resolve("Foo", symbols.Type)
	if !ok || gotType != typeSym {
		t.Error("type-namespace lookup should return the type symbol, independent of the value namespace")
	}
}
