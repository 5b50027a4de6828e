// Package checker is the analysis core's second traversal: it computes
// a Type for every expression, records declaration types against their
// symbols, and emits diagnostics for assignability failures, arity
// mismatches, and operator misuse (§4.4).
package checker

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/symbols"
	"github.com/ledalang/leda/internal/typesystem"
)

type Checker struct {
	src         *source.Source
	Diagnostics []diagnostics.Diagnostic

	// currentReturns is the declared return TypeList of the innermost
	// function body being checked, consulted by Return statements; nil
	// at the top level, where `return` does not type-check its values
	// against any signature.
	currentReturns *typesystem.TypeList
}

// Check runs the checker over block, which must already have been
// bound (every Name/Type.Name resolved to a Symbol), and returns every
// diagnostic raised.
func Check(src *source.Source, block *ast.Block) []diagnostics.Diagnostic {
	c := &Checker{src: src}
	c.checkBlock(block)
	return c.Diagnostics
}

func (c *Checker) errorf(rng source.Range, code diagnostics.Code, format string, args ...interface{}) {
	c.Diagnostics = append(c.Diagnostics, diagnostics.Newf(code, diagnostics.Warning(code), rng, format, args...))
}

func (c *Checker) errorMismatch(rng source.Range, reason *diagnostics.MismatchReason) {
	if reason == nil {
		return
	}
	c.Diagnostics = append(c.Diagnostics, diagnostics.NewMismatch(rng, "type mismatch", *reason))
}

func (c *Checker) symbolType(sym *symbols.Symbol) typesystem.Type {
	if sym == nil {
		return typesystem.Unknown
	}
	if sym.Kind == symbols.IntrinsicType {
		return sym.Intrinsic
	}
	if t, ok := c.src.TryGetSymbolType(sym); ok {
		return t.(typesystem.Type)
	}
	return typesystem.Unknown
}

func (c *Checker) symbolOf(tree source.Tree) (*symbols.Symbol, bool) {
	sym, ok := c.src.TryGetSymbol(tree)
	if !ok {
		return nil, false
	}
	s, ok := sym.(*symbols.Symbol)
	return s, ok
}

func (c *Checker) setSymbolType(tree source.Tree, t typesystem.Type) {
	if sym, ok := c.symbolOf(tree); ok {
		c.src.SetSymbolType(sym, t)
	}
}

func (c *Checker) checkBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		c.checkStatement(stmt)
	}
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Do:
		c.checkBlock(s.Body)

	case *ast.If:
		c.checkIfClause(s.Primary)
		for _, clause := range s.ElseIfs {
			c.checkIfClause(clause)
		}
		if s.Else != nil {
			c.checkBlock(s.Else)
		}

	case *ast.NumericalFor:
		c.checkNumericalFor(s)

	case *ast.IteratorFor:
		c.typeOfExpr(s.Iterator, false)
		for _, decl := range s.Declarations {
			t := typesystem.Type(typesystem.Unknown)
			if decl.Annotation != nil {
				t = c.evalTypeExpr(decl.Annotation)
			}
			c.setSymbolType(decl, t)
		}
		c.checkBlock(s.Body)

	case *ast.While:
		c.typeOfExpr(s.Cond, false)
		c.checkBlock(s.Body)

	case *ast.RepeatUntil:
		c.checkBlock(s.Body)
		c.typeOfExpr(s.Cond, false)

	case *ast.LocalDeclaration:
		c.checkDeclarationList(s.Declarations, s.Values)

	case *ast.LocalFunctionDeclaration:
		sig := c.functionSignature(s.Function)
		c.setSymbolType(s.Name, sig)
		c.checkFunctionBody(s.Function, sig)

	case *ast.GlobalDeclaration:
		c.checkDeclarationList(s.Declarations, s.Values)

	case *ast.Return:
		list := c.typeListOfExprList(s.Values, false)
		if c.currentReturns != nil {
			if ok, reason := typesystem.AssignableTypeList(c.currentReturns, list, "Return"); !ok {
				c.errorMismatch(s.Range, reason)
			}
		}

	case *ast.Break:
		// nothing to check

	case *ast.Assignment:
		c.checkAssignment(s)

	case *ast.CallStatement:
		c.typeOfExpr(s.Call, false)

	case *ast.TypeAliasDeclaration:
		underlying := c.evalTypeExpr(s.Type)
		c.setSymbolType(s.Name, typesystem.WithDisplayName(underlying, s.Name.Name))

	case *ast.ErrorStatement:
		// nothing to check
	}
}

func (c *Checker) checkIfClause(clause ast.IfClause) {
	c.typeOfExpr(clause.Cond, false)
	c.checkBlock(clause.Body)
}

func (c *Checker) checkNumericalFor(s *ast.NumericalFor) {
	c.checkForNumber(s.Start, diagnostics.CodeForLoopStartNotNumber, "start")
	c.checkForNumber(s.Limit, diagnostics.CodeForLoopLimitNotNumber, "limit")
	if s.Step != nil {
		c.checkForNumber(s.Step, diagnostics.CodeForLoopStepNotNumber, "step")
	}
	c.setSymbolType(s.Counter, typesystem.Number)
	c.checkBlock(s.Body)
}

func (c *Checker) checkForNumber(e ast.Expression, code diagnostics.Code, part string) {
	t := c.typeOfExpr(e, false)
	if ok, _ := typesystem.Assignable(typesystem.Number, t); !ok {
		c.errorf(e.TreeRange(), code, "for-loop %s must be a number, got %s", part, typesystem.Display(t))
	}
}

// checkDeclarationList implements the local/global declaration typing
// rule (§4.4): with an annotation present, the annotation itself names
// the symbol's type and the RHS is checked against it in "explicit
// opt-in" constant mode (so a literal RHS surfaces in the mismatch
// reason, as S1 and S7 require); without an annotation, the symbol's
// type is simply the RHS's non-constant (widened) type.
func (c *Checker) checkDeclarationList(decls []*ast.Declaration, values []ast.Expression) {
	widened := c.typeListOfExprList(values, false)
	for i, decl := range decls {
		valueType, ok := widened.At(i)
		if !ok {
			valueType = typesystem.Nil
		}
		if decl.Annotation == nil {
			c.setSymbolType(decl, valueType)
			continue
		}
		target := c.evalTypeExpr(decl.Annotation)
		checkType := valueType
		if i < len(values) {
			if lit := literalTypeOf(values[i]); lit != nil {
				checkType = lit
			}
		}
		if ok, reason := typesystem.Assignable(target, checkType); !ok {
			c.errorMismatch(decl.Range, reason)
		}
		c.setSymbolType(decl, target)
	}
}

// literalTypeOf returns the literal type of e without re-evaluating or
// re-diagnosing it, for expressions simple enough to read directly off
// the node (used only to sharpen a mismatch message's displayed source
// type, per the "explicit opt-in" constant-position rule).
func literalTypeOf(e ast.Expression) typesystem.Type {
	switch v := e.(type) {
	case *ast.Number:
		return typesystem.NewNumberLiteral(v.Value)
	case *ast.String:
		return typesystem.NewStringLiteral(v.Value)
	case *ast.LongString:
		return typesystem.NewStringLiteral(v.Value)
	case *ast.True:
		return typesystem.True
	case *ast.False:
		return typesystem.False
	case *ast.Nil:
		return typesystem.Nil
	default:
		return nil
	}
}

func (c *Checker) checkAssignment(s *ast.Assignment) {
	values := c.typeListOfExprList(s.Values, false)
	for i, target := range s.Targets {
		valueType, ok := values.At(i)
		if !ok {
			valueType = typesystem.Nil
		}
		c.checkAssignTarget(target, valueType)
	}
}

func (c *Checker) checkAssignTarget(target ast.Expression, valueType typesystem.Type) {
	switch t := target.(type) {
	case *ast.Name:
		sym, ok := c.symbolOf(t)
		if !ok {
			return
		}
		targetType := c.symbolType(sym)
		if ok, reason := typesystem.Assignable(targetType, valueType); !ok {
			c.errorMismatch(t.Range, reason)
		}
	case *ast.Access:
		targetType := c.typeOfAccess(t)
		if ok, reason := typesystem.Assignable(targetType, valueType); !ok {
			c.errorMismatch(t.Range, reason)
		}
	case *ast.Error:
		// already diagnosed by the parser
	}
}
