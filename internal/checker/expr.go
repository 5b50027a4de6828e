package checker

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/typesystem"
)

// typeOfExpr computes expr's type. constantPosition selects the literal
// (narrow) typing used at table-constructor keys and access keys; every
// other position widens literals to their owning primitive
// (string/number/true/false) per §4.4. Declaration right-hand sides are
// typed widened here, and checkDeclarationList applies literalTypeOf
// separately.
func (c *Checker) typeOfExpr(expr ast.Expression, constantPosition bool) typesystem.Type {
	switch e := expr.(type) {
	case *ast.Nil:
		return typesystem.Nil
	case *ast.True:
		return typesystem.True
	case *ast.False:
		return typesystem.False
	case *ast.Number:
		if constantPosition {
			return typesystem.NewNumberLiteral(e.Value)
		}
		return typesystem.Number
	case *ast.String:
		if constantPosition {
			return typesystem.NewStringLiteral(e.Value)
		}
		return typesystem.String
	case *ast.LongString:
		if constantPosition {
			return typesystem.NewStringLiteral(e.Value)
		}
		return typesystem.String
	case *ast.Vararg:
		return typesystem.Unknown
	case *ast.Name:
		sym, ok := c.symbolOf(e)
		if !ok {
			return typesystem.Unknown
		}
		return c.symbolType(sym)
	case *ast.Access:
		return c.typeOfAccess(e)
	case *ast.Call:
		return firstOf(c.typeOfCallReturns(e))
	case *ast.MethodCall:
		return firstOf(c.typeOfMethodCallReturns(e))
	case *ast.Unary:
		return c.typeOfUnary(e)
	case *ast.Binary:
		return c.typeOfBinary(e)
	case *ast.Table:
		return c.typeOfTable(e)
	case *ast.FunctionExpr:
		sig := c.functionSignature(e)
		c.checkFunctionBody(e, sig)
		return sig
	case *ast.Error:
		return typesystem.Unknown
	}
	return typesystem.Unknown
}

func firstOf(list *typesystem.TypeList) typesystem.Type {
	if t, ok := list.At(0); ok {
		return t
	}
	return typesystem.Nil
}

// withPrefix returns a TypeList with values prepended before tail's own
// Values/Continued/Rest.
func withPrefix(values []typesystem.Type, tail *typesystem.TypeList) *typesystem.TypeList {
	if len(values) == 0 {
		return tail
	}
	return &typesystem.TypeList{
		Values:        append(append([]typesystem.Type{}, values...), tail.Values...),
		MinimumValues: len(values) + tail.MinimumValues,
		Continued:     tail.Continued,
		Rest:          tail.Rest,
	}
}

// typeListOfExprList builds the TypeList an expression list produces in
// a multi-value position (call args, return values, declaration RHS):
// every expression but the last contributes exactly one value; the last
// contributes its full TypeList (so a trailing call or vararg spreads).
func (c *Checker) typeListOfExprList(exprs []ast.Expression, constantPosition bool) *typesystem.TypeList {
	if len(exprs) == 0 {
		return typesystem.NewTypeList()
	}
	values := make([]typesystem.Type, 0, len(exprs)-1)
	for _, e := range exprs[:len(exprs)-1] {
		values = append(values, c.typeOfExpr(e, constantPosition))
	}
	last := exprs[len(exprs)-1]
	tail := c.expandedTypeOf(last, constantPosition)
	return withPrefix(values, tail)
}

// expandedTypeOf returns the full TypeList a trailing expression
// contributes: a call/method-call spreads its returns, a vararg spreads
// as Unknown..., everything else is a single-value list.
func (c *Checker) expandedTypeOf(expr ast.Expression, constantPosition bool) *typesystem.TypeList {
	switch e := expr.(type) {
	case *ast.Call:
		return c.typeOfCallReturns(e)
	case *ast.MethodCall:
		return c.typeOfMethodCallReturns(e)
	case *ast.Vararg:
		return (&typesystem.TypeList{}).WithRest(typesystem.Unknown)
	default:
		return typesystem.NewTypeList(c.typeOfExpr(expr, constantPosition))
	}
}

// typeOfCallReturns type-checks a call's target and arguments and
// returns the callee's declared return TypeList (Unknown-tailed if the
// target isn't a structural FunctionType).
func (c *Checker) typeOfCallReturns(call *ast.Call) *typesystem.TypeList {
	targetType := c.typeOfExpr(call.Target, false)
	argList := c.typeListOfExprList(call.Args, false)
	return c.checkCall(call.Range, targetType, argList)
}

func (c *Checker) checkCall(rng source.Range, targetType typesystem.Type, argList *typesystem.TypeList) *typesystem.TypeList {
	switch {
	case typesystem.IsUnknown(targetType), typesystem.IsAny(targetType), typesystem.IsFunctionPrimitive(targetType):
		return (&typesystem.TypeList{}).WithRest(typesystem.Unknown)
	}
	fn, ok := targetType.(*typesystem.FunctionType)
	if !ok {
		c.errorf(rng, diagnostics.CodeTypeNotCallable, "%s is not callable", typesystem.Display(targetType))
		return (&typesystem.TypeList{}).WithRest(typesystem.Unknown)
	}
	if ok, reason := typesystem.AssignableTypeList(fn.Params, argList, "Call"); !ok {
		c.errorMismatch(rng, reason)
	}
	return fn.Returns
}

// typeOfMethodCallReturns checks `target:name(args)`: it looks name up
// as a field of target's type, implicitly passing target as the first
// (self) argument, then checks the remaining args the same way a plain
// call does.
func (c *Checker) typeOfMethodCallReturns(call *ast.MethodCall) *typesystem.TypeList {
	targetType := c.typeOfExpr(call.Target, false)
	fieldType := c.lookupField(call.Range, targetType, call.Name)
	args := c.typeListOfExprList(call.Args, false)
	full := withPrefix([]typesystem.Type{targetType}, args)
	return c.checkCall(call.Range, fieldType, full)
}

// typeOfAccess checks `target.key` / `target[key]` and returns the
// indexed value's type.
func (c *Checker) typeOfAccess(a *ast.Access) typesystem.Type {
	targetType := c.typeOfExpr(a.Target, false)
	if name, ok := a.Key.(*ast.String); ok {
		return c.lookupField(a.Range, targetType, name.Value)
	}
	keyType := c.typeOfExpr(a.Key, true)
	return c.lookupKey(a.Range, targetType, keyType)
}

func (c *Checker) lookupField(rng source.Range, targetType typesystem.Type, name string) typesystem.Type {
	return c.lookupKey(rng, targetType, typesystem.NewStringLiteral(name))
}

func (c *Checker) lookupKey(rng source.Range, targetType typesystem.Type, keyType typesystem.Type) typesystem.Type {
	if typesystem.IsUnknown(targetType) || typesystem.IsAny(targetType) || typesystem.IsTablePrimitive(targetType) {
		return typesystem.Unknown
	}
	table, ok := targetType.(*typesystem.TableType)
	if !ok {
		c.errorf(rng, diagnostics.CodeTypeNotIndexable, "%s is not indexable", typesystem.Display(targetType))
		return typesystem.Unknown
	}
	value, found := table.Lookup(keyType, func(target, source typesystem.Type) bool {
		ok, _ := typesystem.Assignable(target, source)
		return ok
	})
	if !found {
		c.errorf(rng, diagnostics.CodeTypeDoesntHaveKey, "%s has no key %s", typesystem.Display(targetType), typesystem.Display(keyType))
		return typesystem.Unknown
	}
	return value
}

// typeOfTable builds a structural TableType from a constructor: a
// positional field gets a 1-based NumberLiteral key; a `[k] = v` or
// `name = v` field uses its own key. Values are always non-constant
// (widened) — only table KEYS are a constant position (§4.4); a value
// is read back out of the table later, at which point it has already
// lost its literal identity.
func (c *Checker) typeOfTable(t *ast.Table) typesystem.Type {
	var pairs []typesystem.TablePair
	nextIndex := float64(1)
	for _, f := range t.Fields {
		var keyType typesystem.Type
		if f.Key == nil {
			keyType = typesystem.NewNumberLiteral(nextIndex)
			nextIndex++
		} else {
			keyType = c.typeOfExpr(f.Key, true)
		}
		valueType := c.typeOfExpr(f.Value, false)
		pairs = append(pairs, typesystem.TablePair{Key: keyType, Value: valueType})
	}
	return typesystem.NewTable(pairs)
}

func (c *Checker) typeOfUnary(u *ast.Unary) typesystem.Type {
	operandType := c.typeOfExpr(u.Expr, false)
	switch u.Op {
	case ast.Negate:
		if typesystem.IsUnknown(operandType) || typesystem.IsNumberish(operandType) {
			return typesystem.Number
		}
		c.errorf(u.Range, diagnostics.CodeCantNegate, "cannot negate %s", typesystem.Display(operandType))
		return typesystem.Unknown
	case ast.Not:
		return typesystem.Boolean
	case ast.Length:
		if typesystem.IsUnknown(operandType) || typesystem.IsStringish(operandType) || typesystem.IsTablePrimitive(operandType) {
			return typesystem.Number
		}
		if _, ok := operandType.(*typesystem.TableType); ok {
			return typesystem.Number
		}
		c.errorf(u.Range, diagnostics.CodeCantGetLength, "cannot get the length of %s", typesystem.Display(operandType))
		return typesystem.Unknown
	}
	return typesystem.Unknown
}

func (c *Checker) typeOfBinary(b *ast.Binary) typesystem.Type {
	left := c.typeOfExpr(b.Left, false)
	right := c.typeOfExpr(b.Right, false)
	switch b.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod, ast.Pow:
		c.checkOperand(b.Left.TreeRange(), typesystem.Number, left)
		c.checkOperand(b.Right.TreeRange(), typesystem.Number, right)
		return typesystem.Number
	case ast.Concat:
		c.checkOperand(b.Left.TreeRange(), typesystem.String, left)
		c.checkOperand(b.Right.TreeRange(), typesystem.String, right)
		return typesystem.String
	case ast.Le, ast.Ge, ast.Lt, ast.Gt:
		c.checkOperand(b.Left.TreeRange(), typesystem.Number, left)
		c.checkOperand(b.Right.TreeRange(), typesystem.Number, right)
		return typesystem.Boolean
	case ast.Eq, ast.Ne:
		// Any pair of types may be compared for equality (§4.4).
		return typesystem.Boolean
	case ast.And, ast.Or:
		return typesystem.NewUnion([]typesystem.Type{left, right})
	}
	return typesystem.Unknown
}

// checkOperand reports a TypeMismatch when operand is not assignable to
// expected, the shared check behind arithmetic, concatenation, and
// relational operand validation.
func (c *Checker) checkOperand(rng source.Range, expected, operand typesystem.Type) {
	if ok, reason := typesystem.Assignable(expected, operand); !ok {
		c.errorMismatch(rng, reason)
	}
}
