// Package namefinder implements the tree descent behind the editor
// contract's NameAt: given a position, find the most specific node whose
// range contains it (a Name, TypeName or Declaration when the position is
// on one), so a hover/definition request can hand that node straight to
// Source's tree->symbol table.
package namefinder

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/source"
)

// FindAt walks block looking for the deepest Name, TypeName or
// Declaration node whose range contains pos, the node kinds the binder
// attaches symbols to. When pos lies inside a statement, expression,
// function or type node but on no name within it, FindAt returns that
// innermost enclosing node with true; it reports false only when pos is
// outside block or lies in a block but on none of its statements.
func FindAt(block *ast.Block, pos source.Position) (ast.Node, bool) {
	if !contains(block.Range, pos) {
		return nil, false
	}
	return findInBlock(block, pos)
}

func contains(rng source.Range, pos source.Position) bool {
	return rng.Contains(pos)
}

func findInBlock(block *ast.Block, pos source.Position) (ast.Node, bool) {
	for _, stmt := range block.Statements {
		if contains(stmt.TreeRange(), pos) {
			return findInStatement(stmt, pos)
		}
	}
	return nil, false
}

func descendDeclaration(decl *ast.Declaration, pos source.Position) (ast.Node, bool) {
	if decl.Annotation != nil && contains(decl.Annotation.TreeRange(), pos) {
		return findInTypeExpr(decl.Annotation, pos)
	}
	if contains(decl.Range, pos) {
		return decl, true
	}
	return nil, false
}

func findInIfClause(clause ast.IfClause, pos source.Position) (ast.Node, bool) {
	if contains(clause.Cond.TreeRange(), pos) {
		return findInExpr(clause.Cond, pos)
	}
	if contains(clause.Body.Range, pos) {
		return findInBlock(clause.Body, pos)
	}
	return nil, false
}

func findInStatement(stmt ast.Statement, pos source.Position) (ast.Node, bool) {
	switch s := stmt.(type) {
	case *ast.Do:
		if contains(s.Body.Range, pos) {
			return findInBlock(s.Body, pos)
		}
	case *ast.If:
		if contains(s.Primary.Cond.TreeRange(), pos) || contains(s.Primary.Body.Range, pos) {
			return findInIfClause(s.Primary, pos)
		}
		for _, clause := range s.ElseIfs {
			if contains(clause.Cond.TreeRange(), pos) || contains(clause.Body.Range, pos) {
				return findInIfClause(clause, pos)
			}
		}
		if s.Else != nil && contains(s.Else.Range, pos) {
			return findInBlock(s.Else, pos)
		}
	case *ast.NumericalFor:
		if contains(s.Counter.Range, pos) {
			return descendDeclaration(s.Counter, pos)
		}
		for _, e := range []ast.Expression{s.Start, s.Limit, s.Step} {
			if e != nil && contains(e.TreeRange(), pos) {
				return findInExpr(e, pos)
			}
		}
		if contains(s.Body.Range, pos) {
			return findInBlock(s.Body, pos)
		}
	case *ast.IteratorFor:
		for _, decl := range s.Declarations {
			if contains(decl.Range, pos) {
				return descendDeclaration(decl, pos)
			}
		}
		if contains(s.Iterator.TreeRange(), pos) {
			return findInExpr(s.Iterator, pos)
		}
		if contains(s.Body.Range, pos) {
			return findInBlock(s.Body, pos)
		}
	case *ast.While:
		if contains(s.Cond.TreeRange(), pos) {
			return findInExpr(s.Cond, pos)
		}
		if contains(s.Body.Range, pos) {
			return findInBlock(s.Body, pos)
		}
	case *ast.RepeatUntil:
		if contains(s.Body.Range, pos) {
			return findInBlock(s.Body, pos)
		}
		if contains(s.Cond.TreeRange(), pos) {
			return findInExpr(s.Cond, pos)
		}
	case *ast.LocalDeclaration:
		for _, decl := range s.Declarations {
			if contains(decl.Range, pos) {
				return descendDeclaration(decl, pos)
			}
		}
		for _, v := range s.Values {
			if contains(v.TreeRange(), pos) {
				return findInExpr(v, pos)
			}
		}
	case *ast.LocalFunctionDeclaration:
		if contains(s.Name.Range, pos) {
			return descendDeclaration(s.Name, pos)
		}
		if contains(s.Function.Range, pos) {
			return findInFunctionExpr(s.Function, pos)
		}
	case *ast.GlobalDeclaration:
		for _, decl := range s.Declarations {
			if contains(decl.Range, pos) {
				return descendDeclaration(decl, pos)
			}
		}
		for _, v := range s.Values {
			if contains(v.TreeRange(), pos) {
				return findInExpr(v, pos)
			}
		}
	case *ast.Return:
		for _, v := range s.Values {
			if contains(v.TreeRange(), pos) {
				return findInExpr(v, pos)
			}
		}
	case *ast.Assignment:
		for _, t := range s.Targets {
			if contains(t.TreeRange(), pos) {
				return findInExpr(t, pos)
			}
		}
		for _, v := range s.Values {
			if contains(v.TreeRange(), pos) {
				return findInExpr(v, pos)
			}
		}
	case *ast.CallStatement:
		if contains(s.Call.TreeRange(), pos) {
			return findInExpr(s.Call, pos)
		}
	case *ast.TypeAliasDeclaration:
		if contains(s.Name.Range, pos) {
			return descendDeclaration(s.Name, pos)
		}
		if contains(s.Type.TreeRange(), pos) {
			return findInTypeExpr(s.Type, pos)
		}
	}
	return stmt, true
}

func findInFunctionExpr(fn *ast.FunctionExpr, pos source.Position) (ast.Node, bool) {
	for _, p := range fn.Parameters {
		if contains(p.Range, pos) {
			return descendDeclaration(p, pos)
		}
	}
	for _, rt := range fn.ReturnTypes {
		if contains(rt.TreeRange(), pos) {
			return findInTypeExpr(rt, pos)
		}
	}
	if fn.ReturnRest != nil && contains(fn.ReturnRest.TreeRange(), pos) {
		return findInTypeExpr(fn.ReturnRest, pos)
	}
	if contains(fn.Body.Range, pos) {
		return findInBlock(fn.Body, pos)
	}
	return fn, true
}

func findInExpr(expr ast.Expression, pos source.Position) (ast.Node, bool) {
	switch e := expr.(type) {
	case *ast.Name:
		return e, true
	case *ast.Access:
		if contains(e.Target.TreeRange(), pos) {
			return findInExpr(e.Target, pos)
		}
		if contains(e.Key.TreeRange(), pos) {
			return findInExpr(e.Key, pos)
		}
	case *ast.Call:
		if contains(e.Target.TreeRange(), pos) {
			return findInExpr(e.Target, pos)
		}
		for _, a := range e.Args {
			if contains(a.TreeRange(), pos) {
				return findInExpr(a, pos)
			}
		}
	case *ast.MethodCall:
		if contains(e.Target.TreeRange(), pos) {
			return findInExpr(e.Target, pos)
		}
		for _, a := range e.Args {
			if contains(a.TreeRange(), pos) {
				return findInExpr(a, pos)
			}
		}
	case *ast.Unary:
		if contains(e.Expr.TreeRange(), pos) {
			return findInExpr(e.Expr, pos)
		}
	case *ast.Binary:
		if contains(e.Left.TreeRange(), pos) {
			return findInExpr(e.Left, pos)
		}
		if contains(e.Right.TreeRange(), pos) {
			return findInExpr(e.Right, pos)
		}
	case *ast.Table:
		for _, f := range e.Fields {
			if f.Key != nil && contains(f.Key.TreeRange(), pos) {
				return findInExpr(f.Key, pos)
			}
			if contains(f.Value.TreeRange(), pos) {
				return findInExpr(f.Value, pos)
			}
		}
	case *ast.FunctionExpr:
		return findInFunctionExpr(e, pos)
	}
	return expr, true
}

func findInTypeExpr(t ast.TypeExpr, pos source.Position) (ast.Node, bool) {
	switch te := t.(type) {
	case *ast.TypeName:
		return te, true
	case *ast.TypeFunction:
		for _, p := range te.Parameters {
			if contains(p.TreeRange(), pos) {
				return findInTypeExpr(p, pos)
			}
		}
		if te.Rest != nil && contains(te.Rest.TreeRange(), pos) {
			return findInTypeExpr(te.Rest, pos)
		}
		for _, r := range te.Returns {
			if contains(r.TreeRange(), pos) {
				return findInTypeExpr(r, pos)
			}
		}
		if te.ReturnRest != nil && contains(te.ReturnRest.TreeRange(), pos) {
			return findInTypeExpr(te.ReturnRest, pos)
		}
	case *ast.TypeTable:
		for _, pair := range te.Pairs {
			if contains(pair.Key.TreeRange(), pos) {
				return findInTypeExpr(pair.Key, pos)
			}
			if contains(pair.Value.TreeRange(), pos) {
				return findInTypeExpr(pair.Value, pos)
			}
		}
	case *ast.TypeUnion:
		for _, alt := range te.Alternatives {
			if contains(alt.TreeRange(), pos) {
				return findInTypeExpr(alt, pos)
			}
		}
	}
	return t, true
}
