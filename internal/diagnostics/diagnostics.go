// Package diagnostics holds diagnostics as data: a closed Code taxonomy,
// a Severity, and (for type mismatches) a structured reason tree that the
// editor-integration layer renders however it likes. Nothing in this
// package formats a final human string except Diagnostic.Render, which
// exists for the CLI smoke-test driver, not as the "console
// pretty-printer" the core deliberately leaves external.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/ledalang/leda/internal/source"
)

// Severity mirrors the LSP severity scale so the editor-integration layer
// can pass it straight through.
type Severity int

const (
	Error Severity = iota
	Warning_
	Information
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning_:
		return "warning"
	case Information:
		return "information"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code is the closed diagnostic taxonomy from the spec's error-handling
// design (§7): lexical, syntactic, semantic, and type codes.
type Code string

const (
	// Lexical
	CodeMalformedNumber              Code = "malformed-number"
	CodeHexNumbersNotSupported       Code = "hex-numbers-not-supported"
	CodeInvalidEscapeSequence        Code = "invalid-escape-sequence"
	CodeUnfinishedString             Code = "unfinished-string"
	CodeUnfinishedLongString         Code = "unfinished-long-string"
	CodeUnfinishedLongComment        Code = "unfinished-long-comment"
	CodeInvalidLongStringDelimiter   Code = "invalid-long-string-delimiter"
	CodeInvalidCharacter             Code = "invalid-character"

	// Syntactic
	CodeExpectedTokenButGotToken     Code = "expected-token-but-got-token"
	CodeExpectedExpressionButGotToken Code = "expected-expression-but-got-token"
	CodeDidNotExpectTokenHere        Code = "did-not-expect-token-here"
	CodeAmbiguousSyntax              Code = "ambiguous-syntax"
	CodeCannotAssignToThis           Code = "cannot-assign-to-this"

	// Semantic
	CodeNameNotFound            Code = "name-not-found"
	CodeValueAlreadyDeclared    Code = "value-already-declared"
	CodeTypeAlreadyDeclared     Code = "type-already-declared"
	CodeNoImplicitGlobalFunction Code = "no-implicit-global-function"

	// Type
	CodeTypeMismatch             Code = "type-mismatch"
	CodeTypeNotCallable          Code = "type-not-callable"
	CodeTypeNotIndexable         Code = "type-not-indexable"
	CodeTypeDoesntHaveKey        Code = "type-doesnt-have-key"
	CodeCantGetLength            Code = "cant-get-length"
	CodeCantNegate               Code = "cant-negate"
	CodeForLoopStartNotNumber    Code = "for-loop-start-not-number"
	CodeForLoopLimitNotNumber    Code = "for-loop-limit-not-number"
	CodeForLoopStepNotNumber     Code = "for-loop-step-not-number"
	CodeNotEnoughArguments       Code = "not-enough-arguments"

	// Internal — the "truly impossible state" halt case from §7.
	CodeInternalError Code = "internal-error"
)

// Warning returns code's default severity: Warning_ for
// HexNumbersNotSupported (§4.1), Error for every other code.
func Warning(code Code) Severity {
	if code == CodeHexNumbersNotSupported {
		return Warning_
	}
	return Error
}

// MismatchReason is the structured explanation attached to a TypeMismatch
// diagnostic (§4.4). It is kept as data, never pre-formatted, so an
// editor can lay it out however it wants; Render below is one such
// layout, used only by the CLI driver.
type MismatchReason struct {
	Kind     ReasonKind
	Target   string // formatted type, when applicable
	Source   string
	Key      string
	Index    int
	Expected int
	Got      int
	ListKind string // "Return", "Call", "Assignment", ...
	Children []MismatchReason
}

// ReasonKind tags which shape of MismatchReason this is.
type ReasonKind int

const (
	ReasonPrimitive ReasonKind = iota
	ReasonNotEnoughValues
	ReasonValueInListIncompatible
	ReasonParameterIncompatible
	ReasonSourceMissingKey
	ReasonTableKeyIncompatible
)

func (r MismatchReason) String() string {
	switch r.Kind {
	case ReasonPrimitive:
		return fmt.Sprintf("type %q is not assignable to type %q", r.Source, r.Target)
	case ReasonNotEnoughValues:
		return fmt.Sprintf("not enough values: expected %d, got %d (%s)", r.Expected, r.Got, r.ListKind)
	case ReasonValueInListIncompatible:
		return fmt.Sprintf("value %d incompatible (%s)", r.Index, r.ListKind)
	case ReasonParameterIncompatible:
		return fmt.Sprintf("parameter %q incompatible with %q", r.Target, r.Source)
	case ReasonSourceMissingKey:
		return fmt.Sprintf("type %q is missing key %q required by %q", r.Source, r.Key, r.Target)
	case ReasonTableKeyIncompatible:
		return fmt.Sprintf("key %q incompatible", r.Key)
	default:
		return "incompatible types"
	}
}

// Diagnostic is (source, range, severity, message) plus, for type
// mismatches, the structured Reason tree.
type Diagnostic struct {
	Source   *source.Source
	Range    source.Range
	Severity Severity
	Code     Code
	Message  string
	Reason   *MismatchReason
}

// New builds a plain diagnostic with no structured reason.
func New(code Code, severity Severity, rng source.Range, message string) Diagnostic {
	return Diagnostic{Range: rng, Severity: severity, Code: code, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(code Code, severity Severity, rng source.Range, format string, args ...interface{}) Diagnostic {
	return New(code, severity, rng, fmt.Sprintf(format, args...))
}

// NewMismatch builds a TypeMismatch diagnostic carrying reason as its
// structured explanation.
func NewMismatch(rng source.Range, message string, reason MismatchReason) Diagnostic {
	d := New(CodeTypeMismatch, Error, rng, message)
	d.Reason = &reason
	return d
}

// Render produces a human-readable single paragraph, with nested reasons
// indented two spaces per level, as required by §6. This is a minimal
// renderer for the CLI smoke-test driver — not the full console
// pretty-printer, which is out of scope for the core.
func (d Diagnostic) Render() string {
	var sb strings.Builder
	sb.WriteString(d.Message)
	if d.Reason != nil {
		renderReason(&sb, *d.Reason, 1)
	}
	return sb.String()
}

func renderReason(sb *strings.Builder, r MismatchReason, depth int) {
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("- ")
	sb.WriteString(r.String())
	for _, child := range r.Children {
		renderReason(sb, child, depth+1)
	}
}
