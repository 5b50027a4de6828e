// Package binder resolves every name and type-name in a tree to a
// Symbol, creating a new Symbol at each declaration site. It traverses
// the tree exactly once (§4.3); the checker's separate traversal
// consumes the symbols this pass produces.
package binder

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/symbols"
	"github.com/ledalang/leda/internal/typesystem"
)

type Binder struct {
	src         *source.Source
	scopes      *symbols.Stack
	Diagnostics []diagnostics.Diagnostic
}

// Bind resolves every name in block against src's text, recording
// symbols and attachments into src, and returns the diagnostics raised
// along the way.
func Bind(src *source.Source, block *ast.Block) []diagnostics.Diagnostic {
	b := &Binder{src: src, scopes: symbols.NewStack()}
	b.populateIntrinsics()
	b.bindBlock(block)
	return b.Diagnostics
}

func (b *Binder) errorf(rng source.Range, code diagnostics.Code, format string, args ...interface{}) {
	b.Diagnostics = append(b.Diagnostics, diagnostics.Newf(code, diagnostics.Warning(code), rng, format, args...))
}

// populateIntrinsics pre-populates the root scope's type slot with the
// built-in type symbols every source starts with (§4.3).
func (b *Binder) populateIntrinsics() {
	root := b.scopes.Root()
	intrinsics := []struct {
		name string
		typ  typesystem.Type
	}{
		{"any", typesystem.Any},
		{"boolean", typesystem.Boolean},
		{"number", typesystem.Number},
		{"string", typesystem.String},
		{"function", typesystem.Function},
	}
	for _, in := range intrinsics {
		root.Declare(in.name, symbols.Type, symbols.NewIntrinsic(in.name, in.typ))
	}
}

func (b *Binder) loc(rng source.Range) source.Location {
	return source.Location{Source: b.src, Range: rng}
}

func (b *Binder) bindBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		b.bindStatement(stmt)
	}
}

func (b *Binder) bindStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Do:
		b.scopes.Push()
		b.bindBlock(s.Body)
		b.scopes.Pop()

	case *ast.If:
		b.bindIfClause(s.Primary)
		for _, clause := range s.ElseIfs {
			b.bindIfClause(clause)
		}
		if s.Else != nil {
			b.scopes.Push()
			b.bindBlock(s.Else)
			b.scopes.Pop()
		}

	case *ast.NumericalFor:
		b.bindExpr(s.Start)
		b.bindExpr(s.Limit)
		if s.Step != nil {
			b.bindExpr(s.Step)
		}
		b.scopes.Push()
		b.declareValue(s.Counter, symbols.LocalVariable)
		b.bindBlock(s.Body)
		b.scopes.Pop()

	case *ast.IteratorFor:
		b.bindExpr(s.Iterator)
		b.scopes.Push()
		for _, decl := range s.Declarations {
			b.declareValue(decl, symbols.LocalVariable)
		}
		b.bindBlock(s.Body)
		b.scopes.Pop()

	case *ast.While:
		b.bindExpr(s.Cond)
		b.scopes.Push()
		b.bindBlock(s.Body)
		b.scopes.Pop()

	case *ast.RepeatUntil:
		b.scopes.Push()
		b.bindBlock(s.Body)
		b.bindExpr(s.Cond)
		b.scopes.Pop()

	case *ast.LocalDeclaration:
		for _, v := range s.Values {
			b.bindExpr(v)
		}
		for _, decl := range s.Declarations {
			b.declareValue(decl, symbols.LocalVariable)
		}

	case *ast.LocalFunctionDeclaration:
		b.declareValue(s.Name, symbols.LocalVariable)
		b.bindFunctionExpr(s.Function)

	case *ast.GlobalDeclaration:
		for _, v := range s.Values {
			b.bindExpr(v)
		}
		for _, decl := range s.Declarations {
			b.declareGlobal(decl)
		}

	case *ast.Return:
		for _, v := range s.Values {
			b.bindExpr(v)
		}

	case *ast.Break:
		// no names

	case *ast.Assignment:
		for _, v := range s.Values {
			b.bindExpr(v)
		}
		for _, t := range s.Targets {
			b.bindAssignTarget(t)
		}

	case *ast.CallStatement:
		b.bindExpr(s.Call)

	case *ast.TypeAliasDeclaration:
		b.bindTypeExpr(s.Type)
		b.declareType(s.Name)

	case *ast.ErrorStatement:
		// no names
	}
}

func (b *Binder) bindIfClause(clause ast.IfClause) {
	b.bindExpr(clause.Cond)
	b.scopes.Push()
	b.bindBlock(clause.Body)
	b.scopes.Pop()
}

// bindAssignTarget resolves an assignment LHS. A bare Name with no
// existing binding is NoImplicitGlobalFunction, distinct from a read's
// NameNotFound: Lua lets a bare assignment silently create a global,
// which this dialect rejects outright (only `global` declarations
// introduce globals — see DESIGN.md's resolution of this Open Question).
func (b *Binder) bindAssignTarget(target ast.Expression) {
	switch t := target.(type) {
	case *ast.Name:
		if sym, ok := b.scopes.Resolve(t.Value, symbols.Value); ok {
			b.src.AttachSymbol(t, sym, false)
			return
		}
		b.errorf(t.Range, diagnostics.CodeNoImplicitGlobalFunction, "%q is not declared; use 'global %s = ...' to create one", t.Value, t.Value)
	case *ast.Access:
		b.bindExpr(t.Target)
		if _, isField := t.Key.(*ast.String); !isField {
			b.bindExpr(t.Key)
		}
	case *ast.Error:
		// already diagnosed by the parser (CannotAssignToThis)
	}
}

func (b *Binder) declareValue(decl *ast.Declaration, kind symbols.Kind) *symbols.Symbol {
	if decl.Annotation != nil {
		b.bindTypeExpr(decl.Annotation)
	}
	if b.scopes.DeclaredInCurrent(decl.Name, symbols.Value) {
		b.errorf(decl.Range, diagnostics.CodeValueAlreadyDeclared, "%q is already declared in this scope", decl.Name)
	}
	sym := symbols.New(decl.Name, kind, b.loc(decl.Range))
	b.scopes.Current().Declare(decl.Name, symbols.Value, sym)
	b.src.AttachSymbol(decl, sym, true)
	return sym
}

func (b *Binder) declareGlobal(decl *ast.Declaration) *symbols.Symbol {
	if decl.Annotation != nil {
		b.bindTypeExpr(decl.Annotation)
	}
	if b.scopes.DeclaredInRoot(decl.Name, symbols.Value) {
		b.errorf(decl.Range, diagnostics.CodeValueAlreadyDeclared, "%q is already declared", decl.Name)
	}
	sym := symbols.New(decl.Name, symbols.Global, b.loc(decl.Range))
	b.scopes.Root().Declare(decl.Name, symbols.Value, sym)
	b.src.AttachSymbol(decl, sym, true)
	return sym
}

// declareType binds decl's name as a type-symbol in the current scope.
// Its right-hand type expression must already have been bound (by the
// caller) against the scope as it existed BEFORE this declaration, so a
// type alias cannot refer to itself: self-reference surfaces as an
// ordinary NameNotFound (recursive aliases are rejected — see
// DESIGN.md's resolution of this Open Question).
func (b *Binder) declareType(decl *ast.Declaration) *symbols.Symbol {
	if b.scopes.DeclaredInCurrent(decl.Name, symbols.Type) {
		b.errorf(decl.Range, diagnostics.CodeTypeAlreadyDeclared, "type %q is already declared in this scope", decl.Name)
	}
	sym := symbols.New(decl.Name, symbols.TypeSymbol, b.loc(decl.Range))
	b.scopes.Current().Declare(decl.Name, symbols.Type, sym)
	b.src.AttachSymbol(decl, sym, true)
	return sym
}

func (b *Binder) resolveValueName(n *ast.Name) {
	sym, ok := b.scopes.Resolve(n.Value, symbols.Value)
	if !ok {
		b.errorf(n.Range, diagnostics.CodeNameNotFound, "%q is not defined", n.Value)
		return
	}
	b.src.AttachSymbol(n, sym, false)
}

func (b *Binder) resolveTypeName(n *ast.TypeName) {
	sym, ok := b.scopes.Resolve(n.Value, symbols.Type)
	if !ok {
		b.errorf(n.Range, diagnostics.CodeNameNotFound, "type %q is not defined", n.Value)
		return
	}
	b.src.AttachSymbol(n, sym, false)
}

func (b *Binder) bindFunctionExpr(fn *ast.FunctionExpr) {
	b.scopes.Push()
	for _, param := range fn.Parameters {
		b.declareValue(param, symbols.Parameter)
	}
	for _, rt := range fn.ReturnTypes {
		b.bindTypeExpr(rt)
	}
	if fn.ReturnRest != nil {
		b.bindTypeExpr(fn.ReturnRest)
	}
	b.bindBlock(fn.Body)
	b.scopes.Pop()
}

func (b *Binder) bindExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Name:
		b.resolveValueName(e)
	case *ast.Access:
		b.bindExpr(e.Target)
		if _, isField := e.Key.(*ast.String); !isField {
			b.bindExpr(e.Key)
		}
	case *ast.Call:
		b.bindExpr(e.Target)
		for _, a := range e.Args {
			b.bindExpr(a)
		}
	case *ast.MethodCall:
		b.bindExpr(e.Target)
		for _, a := range e.Args {
			b.bindExpr(a)
		}
	case *ast.Unary:
		b.bindExpr(e.Expr)
	case *ast.Binary:
		b.bindExpr(e.Left)
		b.bindExpr(e.Right)
	case *ast.Table:
		for _, f := range e.Fields {
			if f.Key != nil {
				b.bindExpr(f.Key)
			}
			b.bindExpr(f.Value)
		}
	case *ast.FunctionExpr:
		b.bindFunctionExpr(e)
	case *ast.Nil, *ast.True, *ast.False, *ast.Number, *ast.String, *ast.LongString, *ast.Vararg, *ast.Error:
		// no names
	}
}

func (b *Binder) bindTypeExpr(t ast.TypeExpr) {
	switch te := t.(type) {
	case *ast.TypeName:
		b.resolveTypeName(te)
	case *ast.TypeFunction:
		for _, p := range te.Parameters {
			b.bindTypeExpr(p)
		}
		if te.Rest != nil {
			b.bindTypeExpr(te.Rest)
		}
		for _, r := range te.Returns {
			b.bindTypeExpr(r)
		}
		if te.ReturnRest != nil {
			b.bindTypeExpr(te.ReturnRest)
		}
	case *ast.TypeTable:
		for _, pair := range te.Pairs {
			b.bindTypeExpr(pair.Key)
			b.bindTypeExpr(pair.Value)
		}
	case *ast.TypeUnion:
		for _, alt := range te.Alternatives {
			b.bindTypeExpr(alt)
		}
	case *ast.TypeStringLiteral, *ast.TypeNumberLiteral, *ast.TypeError:
		// no names
	}
}
