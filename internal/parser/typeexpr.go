package parser

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/token"
)

// parseTypeExpr parses one of Type.Name, Type.StringLiteral,
// Type.NumberLiteral, Type.Function, or Type.Table. Type.Union has no
// dedicated surface syntax in the accepted grammar (the lexer's
// punctuation table carries no disjunction operator) so it is only ever
// constructed internally by the checker; see DESIGN.md.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.peek()
	switch tok.Kind {
	case token.NAME:
		p.advance()
		return &ast.TypeName{Range: tok.Range, Value: tok.Lexeme}
	case token.STRING:
		p.advance()
		return &ast.TypeStringLiteral{Range: tok.Range, Value: tok.StringValue}
	case token.NUMBER:
		p.advance()
		return &ast.TypeNumberLiteral{Range: tok.Range, Value: tok.NumberValue}
	case token.LPAREN:
		return p.parseTypeFunction()
	case token.LBRACE:
		return p.parseTypeTable()
	default:
		p.errorf(tok.Range, diagnostics.CodeExpectedExpressionButGotToken, "expected type but got %s", tok.String())
		p.advance()
		return &ast.TypeError{Range: tok.Range}
	}
}

// parseReturnTypeList parses the return-type position after a
// function's `:`: either a single bare type, or a parenthesized,
// comma-separated list optionally ending in `...Rest`.
func (p *Parser) parseReturnTypeList() ([]ast.TypeExpr, ast.TypeExpr) {
	if p.peek().Kind != token.LPAREN {
		return []ast.TypeExpr{p.parseTypeExpr()}, nil
	}
	p.advance()
	var list []ast.TypeExpr
	var rest ast.TypeExpr
	if p.peek().Kind != token.RPAREN {
		for {
			if p.peek().Kind == token.ELLIPSIS {
				p.advance()
				rest = p.parseTypeExpr()
				break
			}
			list = append(list, p.parseTypeExpr())
			if p.peek().Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN)
	return list, rest
}

// parseTypeFunction parses `(name: T, ..., ...: Rest) : ReturnList`,
// reusing `:` as the parameter- and return-type separator since the
// accepted grammar has no arrow token.
func (p *Parser) parseTypeFunction() ast.TypeExpr {
	start := p.expect(token.LPAREN).Range.Start
	var names []string
	var params []ast.TypeExpr
	var rest ast.TypeExpr
	if p.peek().Kind != token.RPAREN {
		for {
			if p.peek().Kind == token.ELLIPSIS {
				p.advance()
				p.expect(token.COLON)
				rest = p.parseTypeExpr()
				break
			}
			nameTok := p.expect(token.NAME)
			p.expect(token.COLON)
			paramType := p.parseTypeExpr()
			names = append(names, nameTok.Lexeme)
			params = append(params, paramType)
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
	return &ast.TypeFunction{Range: source.Range{Start: start, End: p.prevEnd},
		ParameterNames: names, Parameters: params, Rest: rest, Returns: returns, ReturnRest: returnRest}
}

// parseTypeTable parses `{ [K]: V, name: V, ... }`.
func (p *Parser) parseTypeTable() ast.TypeExpr {
	start := p.expect(token.LBRACE).Range.Start
	var pairs []ast.TypeTablePair
	for p.peek().Kind != token.RBRACE && p.peek().Kind != token.EOF {
		var key ast.TypeExpr
		if p.peek().Kind == token.LBRACKET {
			p.advance()
			key = p.parseTypeExpr()
			p.expect(token.RBRACKET)
		} else {
			nameTok := p.expect(token.NAME)
			key = &ast.TypeStringLiteral{Range: nameTok.Range, Value: nameTok.Lexeme}
		}
		p.expect(token.COLON)
		value := p.parseTypeExpr()
		pairs = append(pairs, ast.TypeTablePair{Key: key, Value: value})
		if p.peek().Kind == token.COMMA || p.peek().Kind == token.SEMI {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return &ast.TypeTable{Range: source.Range{Start: start, End: p.prevEnd}, Pairs: pairs}
}
