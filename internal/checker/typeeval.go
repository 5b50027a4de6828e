package checker

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/typesystem"
)

// evalTypeExpr converts a bound type-expression into its typesystem.Type,
// resolving TypeName against the symbol the binder already attached.
func (c *Checker) evalTypeExpr(t ast.TypeExpr) typesystem.Type {
	switch te := t.(type) {
	case *ast.TypeName:
		sym, ok := c.symbolOf(te)
		if !ok {
			return typesystem.Unknown
		}
		return c.symbolType(sym)
	case *ast.TypeStringLiteral:
		return typesystem.NewStringLiteral(te.Value)
	case *ast.TypeNumberLiteral:
		return typesystem.NewNumberLiteral(te.Value)
	case *ast.TypeFunction:
		return c.evalTypeFunction(te)
	case *ast.TypeTable:
		return c.evalTypeTable(te)
	case *ast.TypeUnion:
		alts := make([]typesystem.Type, 0, len(te.Alternatives))
		for _, alt := range te.Alternatives {
			alts = append(alts, c.evalTypeExpr(alt))
		}
		return typesystem.NewUnion(alts)
	case *ast.TypeError:
		return typesystem.Unknown
	}
	return typesystem.Unknown
}

func (c *Checker) evalTypeFunction(te *ast.TypeFunction) typesystem.Type {
	params := make([]typesystem.Type, 0, len(te.Parameters))
	for _, p := range te.Parameters {
		params = append(params, c.evalTypeExpr(p))
	}
	paramList := &typesystem.TypeList{Values: params, Names: te.ParameterNames, MinimumValues: len(params)}
	if te.Rest != nil {
		paramList = paramList.WithRest(c.evalTypeExpr(te.Rest))
	}
	returns := make([]typesystem.Type, 0, len(te.Returns))
	for _, r := range te.Returns {
		returns = append(returns, c.evalTypeExpr(r))
	}
	returnList := &typesystem.TypeList{Values: returns, MinimumValues: len(returns)}
	if te.ReturnRest != nil {
		returnList = returnList.WithRest(c.evalTypeExpr(te.ReturnRest))
	} else if len(returns) == 0 {
		// An omitted return-type annotation defaults to an unknown tail
		// rather than `any` (see DESIGN.md's resolution of this Open
		// Question).
		returnList = returnList.WithRest(typesystem.Unknown)
	}
	return typesystem.NewFunction(paramList, returnList)
}

func (c *Checker) evalTypeTable(te *ast.TypeTable) typesystem.Type {
	pairs := make([]typesystem.TablePair, 0, len(te.Pairs))
	for _, p := range te.Pairs {
		pairs = append(pairs, typesystem.TablePair{
			Key:   c.evalTypeExpr(p.Key),
			Value: c.evalTypeExpr(p.Value),
		})
	}
	return typesystem.NewTable(pairs)
}

// functionSignature computes fn's FunctionType from its parameter and
// return-type annotations, without checking its body (used both to type
// a function expression in value position and to pre-declare a
// LocalFunctionDeclaration's own name before checking its body, so
// recursive calls resolve against a fully-formed signature).
func (c *Checker) functionSignature(fn *ast.FunctionExpr) *typesystem.FunctionType {
	names := make([]string, 0, len(fn.Parameters))
	params := make([]typesystem.Type, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		names = append(names, p.Name)
		if p.Annotation != nil {
			params = append(params, c.evalTypeExpr(p.Annotation))
		} else {
			params = append(params, typesystem.Unknown)
		}
	}
	paramList := &typesystem.TypeList{Values: params, Names: names, MinimumValues: len(params)}
	if fn.IsVararg {
		// A `...` parameter accepts anything (see DESIGN.md's resolution
		// of this Open Question).
		paramList = paramList.WithRest(typesystem.Any)
	}

	returns := make([]typesystem.Type, 0, len(fn.ReturnTypes))
	for _, r := range fn.ReturnTypes {
		returns = append(returns, c.evalTypeExpr(r))
	}
	returnList := &typesystem.TypeList{Values: returns, MinimumValues: len(returns)}
	if fn.ReturnRest != nil {
		returnList = returnList.WithRest(c.evalTypeExpr(fn.ReturnRest))
	} else if len(fn.ReturnTypes) == 0 {
		returnList = returnList.WithRest(typesystem.Unknown)
	}
	return typesystem.NewFunction(paramList, returnList)
}

// checkFunctionBody assigns each parameter its declared type and checks
// the body against sig's declared returns, saving/restoring the
// enclosing function's return signature so nested function expressions
// check their own Returns against their own signature.
func (c *Checker) checkFunctionBody(fn *ast.FunctionExpr, sig *typesystem.FunctionType) {
	for i, p := range fn.Parameters {
		t, ok := sig.Params.At(i)
		if !ok {
			t = typesystem.Unknown
		}
		c.setSymbolType(p, t)
	}
	saved := c.currentReturns
	c.currentReturns = sig.Returns
	c.checkBlock(fn.Body)
	c.currentReturns = saved
}
