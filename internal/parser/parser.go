// Package parser builds a Block tree from a token stream. It is a pull
// parser over the lexer with bounded lookahead; lookahead(i) buffers
// tokens on demand. Range tracking uses the start position saved before
// a node begins and the end position of the last token consumed while
// building it — the StartTree/EndTree bracketing the design calls for,
// expressed as ordinary local variables instead of an explicit stack.
package parser

import (
	"github.com/ledalang/leda/internal/ast"
	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/lexer"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/token"
)

type Parser struct {
	lex         *lexer.Lexer
	buf         []token.Token
	prevEnd     source.Position
	Diagnostics []diagnostics.Diagnostic
}

// New creates a Parser pulling tokens from lex.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse lexes and parses code in one call, returning the root Block and
// every diagnostic raised by either stage.
func Parse(code string) (*ast.Block, []diagnostics.Diagnostic) {
	lex := lexer.New(code)
	p := New(lex)
	block := p.parseBlock(isEOF)
	diags := append(append([]diagnostics.Diagnostic{}, lex.Diagnostics...), p.Diagnostics...)
	return block, diags
}

func isEOF(k token.Kind) bool { return k == token.EOF }

func (p *Parser) lookahead(i int) token.Token {
	for len(p.buf) <= i {
		p.buf = append(p.buf, p.lex.ReadToken())
	}
	return p.buf[i]
}

func (p *Parser) peek() token.Token { return p.lookahead(0) }

// advance consumes and returns the current token.
func (p *Parser) advance() token.Token {
	t := p.lookahead(0)
	p.buf = p.buf[1:]
	p.prevEnd = t.Range.End
	return t
}

func (p *Parser) errorf(rng source.Range, code diagnostics.Code, format string, args ...interface{}) {
	p.Diagnostics = append(p.Diagnostics, diagnostics.Newf(code, diagnostics.Warning(code), rng, format, args...))
}

// expect consumes a token of kind k, or emits ExpectedTokenButGotToken
// and returns a zero-width token at the current position, unmoved, so
// parsing can continue.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.peek().Kind == k {
		return p.advance()
	}
	cur := p.peek()
	p.errorf(cur.Range, diagnostics.CodeExpectedTokenButGotToken, "expected %s but got %s",
		token.KindName(k), cur.String())
	return token.Token{Kind: k, Range: source.Range{Start: cur.Range.Start, End: cur.Range.Start}}
}

// unexpected reports DidNotExpectTokenHere at the current token and
// skips it.
func (p *Parser) unexpected(format string, args ...interface{}) {
	cur := p.peek()
	p.errorf(cur.Range, diagnostics.CodeDidNotExpectTokenHere, format, args...)
	p.advance()
}

func isBlockEnd(k token.Kind) bool {
	switch k {
	case token.END, token.ELSE, token.ELSEIF, token.UNTIL, token.EOF:
		return true
	default:
		return false
	}
}

// parseBlock parses statements until isEnd(peek) or EOF. A return or
// break truncates the block: subsequent tokens up to isEnd are consumed
// without producing further statements.
func (p *Parser) parseBlock(isEnd func(token.Kind) bool) *ast.Block {
	start := p.peek().Range.Start
	block := &ast.Block{Range: source.Range{Start: start, End: start}}
	terminated := false
	for !isEnd(p.peek().Kind) {
		if p.peek().Kind == token.SEMI {
			p.advance()
			continue
		}
		if terminated {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			continue
		}
		block.Statements = append(block.Statements, stmt)
		if td, ok := stmt.(*ast.TypeAliasDeclaration); ok {
			block.TypeDeclarations = append(block.TypeDeclarations, td)
		}
		switch stmt.(type) {
		case *ast.Return, *ast.Break:
			terminated = true
		}
	}
	if len(block.Statements) > 0 {
		block.Range.End = p.prevEnd
	} else {
		block.Range.End = p.peek().Range.Start
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	start := p.peek().Range.Start
	switch p.peek().Kind {
	case token.RETURN:
		return p.parseReturn(start)
	case token.BREAK:
		p.advance()
		return &ast.Break{Range: source.Range{Start: start, End: p.prevEnd}}
	case token.DO:
		p.advance()
		body := p.parseBlock(isBlockEnd)
		p.expect(token.END)
		return &ast.Do{Range: source.Range{Start: start, End: p.prevEnd}, Body: body}
	case token.IF:
		return p.parseIf(start)
	case token.WHILE:
		p.advance()
		cond := p.parseExpression(0)
		p.expect(token.DO)
		body := p.parseBlock(isBlockEnd)
		p.expect(token.END)
		return &ast.While{Range: source.Range{Start: start, End: p.prevEnd}, Cond: cond, Body: body}
	case token.REPEAT:
		p.advance()
		body := p.parseBlock(isBlockEnd)
		p.expect(token.UNTIL)
		cond := p.parseExpression(0)
		return &ast.RepeatUntil{Range: source.Range{Start: start, End: p.prevEnd}, Body: body, Cond: cond}
	case token.FOR:
		return p.parseFor(start)
	case token.LOCAL:
		return p.parseLocal(start)
	case token.GLOBAL:
		return p.parseGlobal(start)
	case token.TYPE:
		return p.parseTypeAlias(start)
	case token.FUNCTION:
		return p.parseFunctionStatement(start)
	default:
		return p.parseExpressionOrAssignment(start)
	}
}

func (p *Parser) parseReturn(start source.Position) ast.Statement {
	p.advance()
	var values []ast.Expression
	if !isBlockEnd(p.peek().Kind) && p.peek().Kind != token.SEMI {
		values = p.parseExpressionList()
	}
	return &ast.Return{Range: source.Range{Start: start, End: p.prevEnd}, Values: values}
}

func (p *Parser) parseIf(start source.Position) ast.Statement {
	p.advance()
	primary := p.parseIfClause()
	node := &ast.If{Range: source.Range{Start: start}, Primary: primary}
	for p.peek().Kind == token.ELSEIF {
		p.advance()
		node.ElseIfs = append(node.ElseIfs, p.parseIfClause())
	}
	if p.peek().Kind == token.ELSE {
		p.advance()
		node.Else = p.parseBlock(isBlockEnd)
	}
	p.expect(token.END)
	node.Range.End = p.prevEnd
	return node
}

func (p *Parser) parseIfClause() ast.IfClause {
	cond := p.parseExpression(0)
	p.expect(token.THEN)
	body := p.parseBlock(isBlockEnd)
	return ast.IfClause{Cond: cond, Body: body}
}

func (p *Parser) parseFor(start source.Position) ast.Statement {
	p.advance()
	first := p.expect(token.NAME)
	firstDecl := &ast.Declaration{Range: first.Range, Name: first.Lexeme}
	if p.peek().Kind == token.COLON {
		p.advance()
		firstDecl.Annotation = p.parseTypeExpr()
		firstDecl.Range = source.Range{Start: first.Range.Start, End: p.prevEnd}
	}
	if p.peek().Kind == token.ASSIGN {
		p.advance()
		startExpr := p.parseExpression(0)
		p.expect(token.COMMA)
		limit := p.parseExpression(0)
		var step ast.Expression
		if p.peek().Kind == token.COMMA {
			p.advance()
			step = p.parseExpression(0)
		}
		p.expect(token.DO)
		body := p.parseBlock(isBlockEnd)
		p.expect(token.END)
		return &ast.NumericalFor{Range: source.Range{Start: start, End: p.prevEnd},
			Counter: firstDecl, Start: startExpr, Limit: limit, Step: step, Body: body}
	}
	decls := []*ast.Declaration{firstDecl}
	for p.peek().Kind == token.COMMA {
		p.advance()
		decls = append(decls, p.parseDeclaration())
	}
	p.expect(token.IN)
	iterator := p.parseExpression(0)
	p.expect(token.DO)
	body := p.parseBlock(isBlockEnd)
	p.expect(token.END)
	return &ast.IteratorFor{Range: source.Range{Start: start, End: p.prevEnd},
		Declarations: decls, Iterator: iterator, Body: body}
}

func (p *Parser) parseDeclaration() *ast.Declaration {
	tok := p.expect(token.NAME)
	decl := &ast.Declaration{Range: tok.Range, Name: tok.Lexeme}
	if p.peek().Kind == token.COLON {
		p.advance()
		decl.Annotation = p.parseTypeExpr()
		decl.Range = source.Range{Start: tok.Range.Start, End: p.prevEnd}
	}
	return decl
}

func (p *Parser) parseDeclarationList() []*ast.Declaration {
	decls := []*ast.Declaration{p.parseDeclaration()}
	for p.peek().Kind == token.COMMA {
		p.advance()
		decls = append(decls, p.parseDeclaration())
	}
	return decls
}

func (p *Parser) parseLocal(start source.Position) ast.Statement {
	p.advance()
	if p.peek().Kind == token.FUNCTION {
		p.advance()
		nameTok := p.expect(token.NAME)
		name := &ast.Declaration{Range: nameTok.Range, Name: nameTok.Lexeme}
		fn := p.parseFunctionBody(nameTok.Range.Start, false)
		return &ast.LocalFunctionDeclaration{Range: source.Range{Start: start, End: p.prevEnd},
			Name: name, Function: fn}
	}
	decls := p.parseDeclarationList()
	var values []ast.Expression
	if p.peek().Kind == token.ASSIGN {
		p.advance()
		values = p.parseExpressionList()
	}
	return &ast.LocalDeclaration{Range: source.Range{Start: start, End: p.prevEnd},
		Declarations: decls, Values: values}
}

func (p *Parser) parseGlobal(start source.Position) ast.Statement {
	p.advance()
	decls := p.parseDeclarationList()
	var values []ast.Expression
	if p.peek().Kind == token.ASSIGN {
		p.advance()
		values = p.parseExpressionList()
	}
	return &ast.GlobalDeclaration{Range: source.Range{Start: start, End: p.prevEnd},
		Declarations: decls, Values: values}
}

func (p *Parser) parseTypeAlias(start source.Position) ast.Statement {
	p.advance()
	nameTok := p.expect(token.NAME)
	name := &ast.Declaration{Range: nameTok.Range, Name: nameTok.Lexeme}
	p.expect(token.ASSIGN)
	typeExpr := p.parseTypeExpr()
	return &ast.TypeAliasDeclaration{Range: source.Range{Start: start, End: p.prevEnd},
		Name: name, Type: typeExpr}
}

// parseFunctionStatement parses `function name{.name}[:name] funcbody`
// and desugars it to an Assignment whose single target is the access
// chain and whose single value is the function expression; the colon
// form sets IsMethod and prepends a synthetic `self` parameter.
func (p *Parser) parseFunctionStatement(start source.Position) ast.Statement {
	p.advance()
	nameTok := p.expect(token.NAME)
	var target ast.Expression = &ast.Name{Range: nameTok.Range, Value: nameTok.Lexeme}
	isMethod := false
	for p.peek().Kind == token.DOT {
		p.advance()
		field := p.expect(token.NAME)
		target = &ast.Access{Range: source.Range{Start: target.TreeRange().Start, End: field.Range.End},
			Target: target, Key: &ast.String{Range: field.Range, Value: field.Lexeme}}
	}
	if p.peek().Kind == token.COLON {
		p.advance()
		field := p.expect(token.NAME)
		target = &ast.Access{Range: source.Range{Start: target.TreeRange().Start, End: field.Range.End},
			Target: target, Key: &ast.String{Range: field.Range, Value: field.Lexeme}}
		isMethod = true
	}
	fn := p.parseFunctionBody(start, isMethod)
	return &ast.Assignment{Range: source.Range{Start: start, End: p.prevEnd},
		Targets: []ast.Expression{target}, Values: []ast.Expression{fn}}
}

// parseExpressionOrAssignment handles the expression-statement rule:
// parse a prefix expression; accept it directly if it is a call; if it
// is assignable, continue into a (possibly multi-target) assignment;
// otherwise the LHS is invalid.
func (p *Parser) parseExpressionOrAssignment(start source.Position) ast.Statement {
	first := p.parsePrefixExpression()
	switch first.(type) {
	case *ast.Call, *ast.MethodCall:
		if p.peek().Kind != token.ASSIGN && p.peek().Kind != token.COMMA {
			return &ast.CallStatement{Range: first.TreeRange(), Call: first}
		}
	case *ast.Error:
		return &ast.ErrorStatement{Range: first.TreeRange()}
	}

	targets := []ast.Expression{first}
	for p.peek().Kind == token.COMMA {
		p.advance()
		targets = append(targets, p.parsePrefixExpression())
	}
	for i, t := range targets {
		switch t.(type) {
		case *ast.Name, *ast.Access:
		default:
			p.errorf(t.TreeRange(), diagnostics.CodeCannotAssignToThis, "cannot assign to this expression")
			targets[i] = &ast.Error{Range: t.TreeRange()}
		}
	}
	if p.peek().Kind != token.ASSIGN {
		p.unexpected("did not expect %s here", p.peek().String())
		return &ast.ErrorStatement{Range: source.Range{Start: start, End: p.prevEnd}}
	}
	p.advance()
	values := p.parseExpressionList()
	return &ast.Assignment{Range: source.Range{Start: start, End: p.prevEnd}, Targets: targets, Values: values}
}

func (p *Parser) parseExpressionList() []ast.Expression {
	list := []ast.Expression{p.parseExpression(0)}
	for p.peek().Kind == token.COMMA {
		p.advance()
		list = append(list, p.parseExpression(0))
	}
	return list
}
