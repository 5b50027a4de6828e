// Package token defines the lexical token kinds produced by the lexer,
// their textual lexemes, and static operator metadata (precedence,
// associativity, arity) per token kind, exposed through Info. The parser's
// precedence climbing reads precedence from ast.BinaryOp, not from Info.
package token

import "github.com/ledalang/leda/internal/source"

// Kind is a closed tag identifying what a Token is. Adding a kind means
// updating every switch over Kind in lexer, parser, and diagnostics.
type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	NAME
	NUMBER
	STRING       // single-line "..." or '...'
	LONG_STRING  // [=*[ ... ]=*]

	// Keywords
	AND
	BREAK
	DO
	ELSE
	ELSEIF
	END
	FALSE
	FOR
	FUNCTION
	GLOBAL
	IF
	IN
	LOCAL
	NIL
	NOT
	OR
	REPEAT
	RETURN
	THEN
	TRUE
	TYPE
	UNTIL
	WHILE

	// Punctuation
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	CARET
	HASH
	EQ
	NEQ
	LE
	GE
	LT
	GT
	ASSIGN
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMI
	COLON
	COMMA
	DOT
	DOTDOT
	ELLIPSIS
)

var keywords = map[string]Kind{
	"and": AND, "break": BREAK, "do": DO, "else": ELSE, "elseif": ELSEIF,
	"end": END, "false": FALSE, "for": FOR, "function": FUNCTION,
	"global": GLOBAL, "if": IF, "in": IN, "local": LOCAL, "nil": NIL,
	"not": NOT, "or": OR, "repeat": REPEAT, "return": RETURN, "then": THEN,
	"true": TRUE, "type": TYPE, "until": UNTIL, "while": WHILE,
}

// LookupKeyword returns the keyword Kind for lexeme and true, or (NAME,
// false) if lexeme is an ordinary identifier.
func LookupKeyword(lexeme string) (Kind, bool) {
	k, ok := keywords[lexeme]
	if !ok {
		return NAME, false
	}
	return k, true
}

// OpInfo is the static metadata every punctuation/keyword operator token
// carries: whether it can appear as a binary or unary operator, its
// precedence (0-6, higher binds tighter), and whether it is
// right-associative.
type OpInfo struct {
	IsBinary         bool
	IsUnary          bool
	Precedence       int
	RightAssociative bool
}

var opInfo = map[Kind]OpInfo{
	OR:     {IsBinary: true, Precedence: 0},
	AND:    {IsBinary: true, Precedence: 1},
	LT:     {IsBinary: true, Precedence: 2},
	GT:     {IsBinary: true, Precedence: 2},
	LE:     {IsBinary: true, Precedence: 2},
	GE:     {IsBinary: true, Precedence: 2},
	EQ:     {IsBinary: true, Precedence: 2},
	NEQ:    {IsBinary: true, Precedence: 2},
	DOTDOT: {IsBinary: true, Precedence: 3, RightAssociative: true},
	PLUS:   {IsBinary: true, Precedence: 4},
	MINUS:  {IsBinary: true, IsUnary: true, Precedence: 4},
	STAR:   {IsBinary: true, Precedence: 5},
	SLASH:  {IsBinary: true, Precedence: 5},
	PERCENT: {IsBinary: true, Precedence: 5},
	NOT:    {IsUnary: true, Precedence: 6},
	HASH:   {IsUnary: true, Precedence: 6},
	CARET:  {IsBinary: true, Precedence: 6, RightAssociative: true},
}

// Info returns the operator metadata for k, or the zero value if k is not
// an operator token.
func Info(k Kind) OpInfo {
	return opInfo[k]
}

// Token is a tagged variant with a Range, carrying the spelled lexeme and
// (for numbers) the parsed numeric value.
type Token struct {
	Kind   Kind
	Range  source.Range
	Lexeme string

	// NumberValue holds the parsed value of a NUMBER token; NaN marks a
	// malformed literal (see lexer.ReadToken).
	NumberValue float64

	// StringValue holds the decoded value of a STRING or LONG_STRING
	// token.
	StringValue string

	// LongStringLevel is the bracket level (count of '=') of a
	// LONG_STRING token.
	LongStringLevel int
}

func (t Token) String() string {
	if t.Lexeme != "" {
		return t.Lexeme
	}
	return KindName(t.Kind)
}

var kindNames = map[Kind]string{
	EOF: "<eof>", ILLEGAL: "<illegal>", NAME: "<name>", NUMBER: "<number>",
	STRING: "<string>", LONG_STRING: "<long string>",
	AND: "and", BREAK: "break", DO: "do", ELSE: "else", ELSEIF: "elseif",
	END: "end", FALSE: "false", FOR: "for", FUNCTION: "function",
	GLOBAL: "global", IF: "if", IN: "in", LOCAL: "local", NIL: "nil",
	NOT: "not", OR: "or", REPEAT: "repeat", RETURN: "return", THEN: "then",
	TRUE: "true", TYPE: "type", UNTIL: "until", WHILE: "while",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", CARET: "^",
	HASH: "#", EQ: "==", NEQ: "~=", LE: "<=", GE: ">=", LT: "<", GT: ">",
	ASSIGN: "=", LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", SEMI: ";", COLON: ":", COMMA: ",",
	DOT: ".", DOTDOT: "..", ELLIPSIS: "...",
}

// KindName returns the canonical spelling of k, used in diagnostic
// messages ("expected 'end' but got '}'").
func KindName(k Kind) string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "<unknown>"
}

// punctTable holds every COMPLETE punctuation token spelling. Note "~" is
// deliberately absent: it is only ever valid as a prefix of "~=".
var punctTable = map[string]Kind{
	"+": PLUS, "-": MINUS, "*": STAR, "/": SLASH, "%": PERCENT, "^": CARET,
	"#": HASH, "=": ASSIGN, "==": EQ, "~=": NEQ, "<": LT,
	"<=": LE, ">": GT, ">=": GE, "(": LPAREN, ")": RPAREN, "{": LBRACE,
	"}": RBRACE, "[": LBRACKET, "]": RBRACKET, ";": SEMI, ":": COLON,
	",": COMMA, ".": DOT, "..": DOTDOT, "...": ELLIPSIS,
}

// punctPrefixes holds every spelling that is a strict prefix of some
// complete token, including ones (like "~") that are never themselves
// complete. The lexer's maximal-munch scan keeps extending while the
// accumulated text is a member of this set or of punctTable.
var punctPrefixes = map[string]bool{
	"~": true, ".": true, "..": true, "=": true, "<": true, ">": true,
}

// LookupPunct returns the Kind for an exact, complete punctuation
// spelling, and whether one was found.
func LookupPunct(spelling string) (Kind, bool) {
	k, ok := punctTable[spelling]
	return k, ok
}

// IsPunctPrefix reports whether spelling could still extend into a
// longer valid punctuation token (it is a complete token that also
// extends further, like "." -> ".." -> "...", or a prefix-only spelling
// like "~").
func IsPunctPrefix(spelling string) bool {
	if punctPrefixes[spelling] {
		return true
	}
	_, isComplete := punctTable[spelling]
	return isComplete && couldExtend(spelling)
}

func couldExtend(spelling string) bool {
	switch spelling {
	case ".", "..":
		return true
	default:
		return false
	}
}
