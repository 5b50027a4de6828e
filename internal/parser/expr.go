package parser

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/token"
)

func binaryOpForKind(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.OR:
		return ast.Or, true
	case token.AND:
		return ast.And, true
	case token.EQ:
		return ast.Eq, true
	case token.NEQ:
		return ast.Ne, true
	case token.LE:
		return ast.Le, true
	case token.GE:
		return ast.Ge, true
	case token.LT:
		return ast.Lt, true
	case token.GT:
		return ast.Gt, true
	case token.DOTDOT:
		return ast.Concat, true
	case token.PLUS:
		return ast.Add, true
	case token.MINUS:
		return ast.Sub, true
	case token.STAR:
		return ast.Mul, true
	case token.SLASH:
		return ast.Div, true
	case token.PERCENT:
		return ast.Mod, true
	case token.CARET:
		return ast.Pow, true
	}
	return 0, false
}

func unaryOpForKind(k token.Kind) (ast.UnaryOp, bool) {
	switch k {
	case token.MINUS:
		return ast.Negate, true
	case token.NOT:
		return ast.Not, true
	case token.HASH:
		return ast.Length, true
	}
	return 0, false
}

// parseExpression implements precedence climbing over the binary
// operators at precedence 0-5 (or, and, comparison, concat, add/sub,
// mul/div/mod). Unary operators and `^` bind tighter than every binary
// operator here and are fully resolved inside parsePow, which acts as
// this loop's atomic operand.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePow()
	for {
		op, ok := binaryOpForKind(p.peek().Kind)
		if !ok {
			break
		}
		prec := op.Precedence()
		if prec < minPrec {
			break
		}
		p.advance()
		nextMin := prec + 1
		if op.RightAssociative() {
			nextMin = prec
		}
		right := p.parseExpression(nextMin)
		left = &ast.Binary{Range: source.Range{Start: left.TreeRange().Start, End: right.TreeRange().End},
			Op: op, Left: left, Right: right}
	}
	return left
}

// parsePow resolves unary operators and `^`: unary is parsed first (so
// it binds tighter than `^`, per the grammar's explicit note), and `^`
// itself is right-associative by recursing back into parsePow.
func (p *Parser) parsePow() ast.Expression {
	left := p.parseUnary()
	if p.peek().Kind == token.CARET {
		p.advance()
		right := p.parsePow()
		return &ast.Binary{Range: source.Range{Start: left.TreeRange().Start, End: right.TreeRange().End},
			Op: ast.Pow, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if op, ok := unaryOpForKind(p.peek().Kind); ok {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.Unary{Range: source.Range{Start: tok.Range.Start, End: operand.TreeRange().End},
			Op: op, Expr: operand}
	}
	return p.parsePrimaryExpr()
}

func (p *Parser) parsePrimaryExpr() ast.Expression {
	tok := p.peek()
	switch tok.Kind {
	case token.NIL:
		p.advance()
		return &ast.Nil{Range: tok.Range}
	case token.TRUE:
		p.advance()
		return &ast.True{Range: tok.Range}
	case token.FALSE:
		p.advance()
		return &ast.False{Range: tok.Range}
	case token.NUMBER:
		p.advance()
		return &ast.Number{Range: tok.Range, Lexeme: tok.Lexeme, Value: tok.NumberValue}
	case token.STRING:
		p.advance()
		return &ast.String{Range: tok.Range, Value: tok.StringValue}
	case token.LONG_STRING:
		p.advance()
		return &ast.LongString{Range: tok.Range, Value: tok.StringValue, Level: tok.LongStringLevel}
	case token.ELLIPSIS:
		p.advance()
		return &ast.Vararg{Range: tok.Range}
	case token.LBRACE:
		return p.parseTableConstructor()
	case token.FUNCTION:
		return p.parseFunctionExpr()
	case token.NAME, token.LPAREN:
		return p.parsePrefixExpression()
	default:
		p.errorf(tok.Range, diagnostics.CodeExpectedExpressionButGotToken, "expected expression but got %s", tok.String())
		p.advance()
		return &ast.Error{Range: tok.Range}
	}
}

// parsePrefixExpression parses `(expr)` or a bare name, then any number
// of `.name`, `[expr]`, `:name(args)`, `(args)` continuations. A `(`
// beginning a new source line after one of these continuations is
// accepted as a call but flagged AmbiguousSyntax, since resolving it
// without that convention is not implementable (§4.2).
func (p *Parser) parsePrefixExpression() ast.Expression {
	start := p.peek().Range.Start
	var expr ast.Expression
	if p.peek().Kind == token.LPAREN {
		p.advance()
		expr = p.parseExpression(0)
		p.expect(token.RPAREN)
	} else {
		tok := p.expect(token.NAME)
		expr = &ast.Name{Range: tok.Range, Value: tok.Lexeme}
	}

	for {
		switch p.peek().Kind {
		case token.DOT:
			p.advance()
			field := p.expect(token.NAME)
			expr = &ast.Access{Range: source.Range{Start: start, End: field.Range.End},
				Target: expr, Key: &ast.String{Range: field.Range, Value: field.Lexeme}}
		case token.LBRACKET:
			p.advance()
			key := p.parseExpression(0)
			p.expect(token.RBRACKET)
			expr = &ast.Access{Range: source.Range{Start: start, End: p.prevEnd}, Target: expr, Key: key}
		case token.COLON:
			p.advance()
			name := p.expect(token.NAME)
			args := p.parseCallArgs()
			expr = &ast.MethodCall{Range: source.Range{Start: start, End: p.prevEnd},
				Target: expr, Name: name.Lexeme, Args: args}
		case token.LPAREN:
			if p.peek().Range.Start.Line > p.prevEnd.Line {
				p.errorf(p.peek().Range, diagnostics.CodeAmbiguousSyntax, "ambiguous syntax near '('")
			}
			args := p.parseCallArgs()
			expr = &ast.Call{Range: source.Range{Start: start, End: p.prevEnd}, Target: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	if p.peek().Kind != token.RPAREN {
		args = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseTableConstructor() ast.Expression {
	start := p.expect(token.LBRACE).Range.Start
	var fields []ast.TableField
	for p.peek().Kind != token.RBRACE && p.peek().Kind != token.EOF {
		fields = append(fields, p.parseTableField())
		if p.peek().Kind == token.COMMA || p.peek().Kind == token.SEMI {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return &ast.Table{Range: source.Range{Start: start, End: p.prevEnd}, Fields: fields}
}

func (p *Parser) parseTableField() ast.TableField {
	if p.peek().Kind == token.LBRACKET {
		p.advance()
		key := p.parseExpression(0)
		p.expect(token.RBRACKET)
		p.expect(token.ASSIGN)
		value := p.parseExpression(0)
		return ast.TableField{Key: key, Value: value}
	}
	if p.peek().Kind == token.NAME && p.lookahead(1).Kind == token.ASSIGN {
		nameTok := p.advance()
		p.advance() // consume '='
		value := p.parseExpression(0)
		return ast.TableField{Key: &ast.String{Range: nameTok.Range, Value: nameTok.Lexeme}, Value: value}
	}
	value := p.parseExpression(0)
	return ast.TableField{Value: value}
}

func (p *Parser) parseFunctionExpr() ast.Expression {
	start := p.peek().Range.Start
	p.advance() // FUNCTION
	return p.parseFunctionBody(start, false)
}

func (p *Parser) parseFunctionBody(start source.Position, isMethod bool) *ast.FunctionExpr {
	p.expect(token.LPAREN)
	var params []*ast.Declaration
	if isMethod {
		params = append(params, &ast.Declaration{Name: "self"})
	}
	isVararg := false
	if p.peek().Kind != token.RPAREN {
		for {
			if p.peek().Kind == token.ELLIPSIS {
				p.advance()
				isVararg = true
				break
			}
			params = append(params, p.parseDeclaration())
			if p.peek().Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN)

	var returns []ast.TypeExpr
	var returnRest ast.TypeExpr
	if p.peek().Kind == token.COLON {
		p.advance()
		returns, returnRest = p.parseReturnTypeList()
	}

	body := p.parseBlock(isBlockEnd)
	p.expect(token.END)
	return &ast.FunctionExpr{Range: source.Range{Start: start, End: p.prevEnd},
		Parameters: params, IsVararg: isVararg, ReturnTypes: returns, ReturnRest: returnRest,
		Body: body, IsMethod: isMethod}
}
