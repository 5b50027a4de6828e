package checker_test

import (
	"testing"

	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/pkg/leda"
)

func codes(t *testing.T, code string) []diagnostics.Code {
	t.Helper()
	_, diags := leda.ParseBindCheck("<test>", code)
	out := make([]diagnostics.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestCheckerAnnotatedLocalAcceptsAssignableLiteral(t *testing.T) {
	if got := codes(t, `local x: number = 1`); len(got) != 0 {
		t.Fatalf("diagnostics = %v, want none", got)
	}
}

// S1: an annotated declaration's literal RHS is checked in "explicit
// opt-in" constant mode, so a mismatched literal surfaces a precise
// TypeMismatch rather than being silently widened.
func TestCheckerAnnotatedLocalRejectsWrongLiteral(t *testing.T) {
	got := codes(t, `local x: string = 1`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeMismatch {
		t.Fatalf("diagnostics = %v, want exactly one TypeMismatch", got)
	}
}

func TestCheckerUnannotatedLocalInfersWidenedType(t *testing.T) {
	if got := codes(t, `local x = 1
local y: number = x`); len(got) != 0 {
		t.Fatalf("diagnostics = %v, want none (x's inferred type is the widened number)", got)
	}
}

func TestCheckerReassignmentMismatch(t *testing.T) {
	got := codes(t, `local x: number = 1
x = "oops"`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeMismatch {
		t.Fatalf("diagnostics = %v, want exactly one TypeMismatch", got)
	}
}

func TestCheckerCallArgumentTypeMismatch(t *testing.T) {
	got := codes(t, `local function f(a: number) return a end
f("not a number")`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeMismatch {
		t.Fatalf("diagnostics = %v, want exactly one TypeMismatch for the mismatched argument", got)
	}
}

func TestCheckerCallingNonFunction(t *testing.T) {
	got := codes(t, `local x = 1
x()`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeNotCallable {
		t.Fatalf("diagnostics = %v, want exactly one TypeNotCallable", got)
	}
}

func TestCheckerNumericForRequiresNumbers(t *testing.T) {
	got := codes(t, `for i = "a", 10 do end`)
	if len(got) != 1 || got[0] != diagnostics.CodeForLoopStartNotNumber {
		t.Fatalf("diagnostics = %v, want exactly one ForLoopStartNotNumber", got)
	}
}

func TestCheckerTableFieldAccess(t *testing.T) {
	got := codes(t, `local t = { x = 1 }
local y: number = t.x`)
	if len(got) != 0 {
		t.Fatalf("diagnostics = %v, want none", got)
	}
}

func TestCheckerTableFieldAccessMissingKey(t *testing.T) {
	got := codes(t, `local t = { x = 1 }
local y = t.missing`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeDoesntHaveKey {
		t.Fatalf("diagnostics = %v, want exactly one TypeDoesntHaveKey", got)
	}
}

func TestCheckerRecursiveLocalFunctionChecksReturn(t *testing.T) {
	got := codes(t, `local function fact(n: number): number
  if n == 0 then return 1 end
  return n * fact(n - 1)
end`)
	if len(got) != 0 {
		t.Fatalf("diagnostics = %v, want none", got)
	}
}

func TestCheckerReturnMismatchedToSignature(t *testing.T) {
	got := codes(t, `local function f(): number return "not a number" end`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeMismatch {
		t.Fatalf("diagnostics = %v, want exactly one TypeMismatch", got)
	}
}

func TestCheckerAndOrProduceUnionType(t *testing.T) {
	got := codes(t, `local x: number = 1 or 2`)
	if len(got) != 0 {
		t.Fatalf("diagnostics = %v, want none (both alternatives are number)", got)
	}
}

func TestCheckerUnaryNegateRequiresNumber(t *testing.T) {
	got := codes(t, `local x = -"a"`)
	if len(got) != 1 || got[0] != diagnostics.CodeCantNegate {
		t.Fatalf("diagnostics = %v, want exactly one CantNegate", got)
	}
}

func TestCheckerArithmeticRejectsNonNumberOperand(t *testing.T) {
	got := codes(t, `local x = 1 + "oops"`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeMismatch {
		t.Fatalf("diagnostics = %v, want exactly one TypeMismatch", got)
	}
}

func TestCheckerArithmeticRejectsTableOperand(t *testing.T) {
	got := codes(t, `local x = {} - 1`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeMismatch {
		t.Fatalf("diagnostics = %v, want exactly one TypeMismatch", got)
	}
}

func TestCheckerRelationalRejectsMixedOperands(t *testing.T) {
	got := codes(t, `local x = "a" < 5`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeMismatch {
		t.Fatalf("diagnostics = %v, want exactly one TypeMismatch", got)
	}
}

func TestCheckerConcatRejectsNonStringOperand(t *testing.T) {
	got := codes(t, `local x = "a" .. true`)
	if len(got) != 1 || got[0] != diagnostics.CodeTypeMismatch {
		t.Fatalf("diagnostics = %v, want exactly one TypeMismatch", got)
	}
}

func TestCheckerEqualityAcceptsAnyOperandTypes(t *testing.T) {
	got := codes(t, `local x = 1 == "a"`)
	if len(got) != 0 {
		t.Fatalf("diagnostics = %v, want none (== accepts any types)", got)
	}
}

func TestCheckerArithmeticAcceptsNumberOperands(t *testing.T) {
	got := codes(t, `local x = 1 + 2`)
	if len(got) != 0 {
		t.Fatalf("diagnostics = %v, want none", got)
	}
}
