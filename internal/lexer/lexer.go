// Package lexer turns Leda source text into a Token stream, one
// read_token() call at a time. It never buffers more than the character
// currently under examination plus one lookahead rune.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/token"
)

// Lexer scans a fixed input string linearly.
type Lexer struct {
	input        string
	position     int // start of ch
	readPosition int // just past ch
	ch           rune
	line         int
	char         int // zero-based character offset within the line

	prevCharLine int
	prevCharChar int

	reachedEnd  bool
	raw         string // scratch: body decoded by the last readLongBracketBody call
	Diagnostics []diagnostics.Diagnostic
}

// New creates a Lexer over input and reads the first character.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 0, char: -1}
	l.readChar()
	return l
}

// ReachedEnd becomes true once the final character has been consumed;
// subsequent calls to ReadToken all report Eof at the final position.
func (l *Lexer) ReachedEnd() bool {
	return l.reachedEnd
}

func (l *Lexer) pos() source.Position {
	return source.Position{Line: l.line, Character: l.char}
}

func (l *Lexer) prevCharPos() source.Position {
	return source.Position{Line: l.prevCharLine, Character: l.prevCharChar}
}

func (l *Lexer) readChar() {
	l.prevCharLine, l.prevCharChar = l.line, l.char
	if l.ch == '\n' {
		l.line++
		l.char = 0
	} else {
		l.char++
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.reachedEnd = true
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) errorf(rng source.Range, code diagnostics.Code, format string, args ...interface{}) {
	l.Diagnostics = append(l.Diagnostics, diagnostics.Newf(code, diagnostics.Warning(code), rng, format, args...))
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
			continue
		case '-':
			if l.peekChar() == '-' {
				l.readChar() // second -
				l.readChar() // first char of comment body
				l.skipComment()
				continue
			}
		}
		return
	}
}

func (l *Lexer) skipComment() {
	if level, ok := l.tryLongBracket(); ok {
		start := l.pos()
		if finished := l.readLongBracketBody(level); !finished {
			l.errorf(source.Range{Start: start, End: l.pos()}, diagnostics.CodeUnfinishedLongComment,
				"unfinished long comment")
		}
		return
	}
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// tryLongBracket consumes a `[=*[` opener if one is present at the
// current position and returns its level. If `[` is present but the
// delimiter is malformed, it emits InvalidLongStringDelimiter and leaves
// the cursor unmoved past the `[`.
func (l *Lexer) tryLongBracket() (int, bool) {
	if l.ch != '[' {
		return 0, false
	}
	savePos, saveRead, saveCh, saveLine, saveChar := l.position, l.readPosition, l.ch, l.line, l.char
	start := l.pos()
	l.readChar()
	level := 0
	for l.ch == '=' {
		level++
		l.readChar()
	}
	if l.ch == '[' {
		l.readChar()
		return level, true
	}
	if level > 0 {
		l.errorf(source.Range{Start: start, End: l.pos()}, diagnostics.CodeInvalidLongStringDelimiter,
			"invalid long bracket delimiter")
	}
	l.position, l.readPosition, l.ch, l.line, l.char = savePos, saveRead, saveCh, saveLine, saveChar
	return 0, false
}

func (l *Lexer) readLongBracketBody(level int) bool {
	var sb strings.Builder
	closer := "]" + strings.Repeat("=", level) + "]"
	// A leading newline immediately after the opening bracket is skipped.
	if l.ch == '\r' && l.peekChar() == '\n' {
		l.readChar()
		l.readChar()
	} else if l.ch == '\n' {
		l.readChar()
	}
	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == ']' {
			if l.matchesAt(closer) {
				for range closer {
					l.readChar()
				}
				l.raw = sb.String()
				return true
			}
		}
		if l.ch == '\r' && l.peekChar() == '\n' {
			sb.WriteByte('\n')
			l.readChar()
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
}

func (l *Lexer) matchesAt(s string) bool {
	if l.position+len(s) > len(l.input) {
		return false
	}
	return l.input[l.position:l.position+len(s)] == s
}

// ReadToken returns the next token in the stream.
func (l *Lexer) ReadToken() token.Token {
	l.skipWhitespaceAndComments()

	start := l.pos()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Range: source.Range{Start: start, End: start}}
	case l.ch == '[':
		if level, ok := l.tryLongBracket(); ok {
			ok2 := l.readLongBracketBody(level)
			end := l.pos()
			if !ok2 {
				l.errorf(source.Range{Start: start, End: end}, diagnostics.CodeUnfinishedLongString,
					"unfinished long string")
			}
			return token.Token{Kind: token.LONG_STRING, Range: source.Range{Start: start, End: end},
				StringValue: l.raw, LongStringLevel: level, Lexeme: "[" + strings.Repeat("=", level) + "[...]"}
		}
		l.readChar()
		return token.Token{Kind: token.LBRACKET, Range: source.Range{Start: start, End: l.pos()}, Lexeme: "["}
	case l.ch == '\'' || l.ch == '"':
		return l.readShortString(start)
	case isDigit(l.ch), l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber(start)
	case isLetter(l.ch):
		return l.readNameOrKeyword(start)
	default:
		return l.readPunct(start)
	}
}

func (l *Lexer) readNameOrKeyword(start source.Position) token.Token {
	var sb strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	lexeme := sb.String()
	end := l.pos()
	rng := source.Range{Start: start, End: end}
	if kw, ok := token.LookupKeyword(lexeme); ok {
		return token.Token{Kind: kw, Range: rng, Lexeme: lexeme}
	}
	return token.Token{Kind: token.NAME, Range: rng, Lexeme: lexeme}
}

func (l *Lexer) readPunct(start source.Position) token.Token {
	spelling := string(l.ch)
	l.readChar()
	for token.IsPunctPrefix(spelling) {
		next := spelling + string(l.ch)
		if !token.IsPunctPrefix(next) {
			if _, ok := token.LookupPunct(next); !ok {
				break
			}
		}
		spelling = next
		l.readChar()
	}
	end := l.pos()
	rng := source.Range{Start: start, End: end}
	if kind, ok := token.LookupPunct(spelling); ok {
		return token.Token{Kind: kind, Range: rng, Lexeme: spelling}
	}
	l.errorf(rng, diagnostics.CodeInvalidCharacter, "invalid character %q", spelling)
	return token.Token{Kind: token.ILLEGAL, Range: rng, Lexeme: spelling}
}

func (l *Lexer) readNumber(start source.Position) token.Token {
	var sb strings.Builder
	malformed := false
	isHex := false

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		isHex = true
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		hasFraction := false
		hasExponent := false
		for isHexDigit(l.ch) || l.ch == '.' || l.ch == 'p' || l.ch == 'P' ||
			((l.ch == '+' || l.ch == '-') && len(sb.String()) > 0 && (sb.String()[len(sb.String())-1] == 'p' || sb.String()[len(sb.String())-1] == 'P')) {
			if l.ch == '.' {
				if hasFraction {
					malformed = true
				}
				hasFraction = true
			}
			if l.ch == 'p' || l.ch == 'P' {
				if hasExponent {
					malformed = true
				}
				hasExponent = true
			}
			sb.WriteRune(l.ch)
			l.readChar()
		}
		lexeme := sb.String()
		end := l.pos()
		rng := source.Range{Start: start, End: end}
		if hasFraction || hasExponent {
			l.errorf(rng, diagnostics.CodeHexNumbersNotSupported, "hexadecimal floats are not supported")
			return token.Token{Kind: token.NUMBER, Range: rng, Lexeme: lexeme, NumberValue: nan()}
		}
		if malformed {
			l.errorf(rng, diagnostics.CodeMalformedNumber, "malformed number %q", lexeme)
			return token.Token{Kind: token.NUMBER, Range: rng, Lexeme: lexeme, NumberValue: nan()}
		}
		val, err := strconv.ParseInt(lexeme[2:], 16, 64)
		if err != nil {
			return token.Token{Kind: token.NUMBER, Range: rng, Lexeme: lexeme, NumberValue: nan()}
		}
		return token.Token{Kind: token.NUMBER, Range: rng, Lexeme: lexeme, NumberValue: float64(val)}
	}

	hasDot := false
	hasExp := false
	for {
		switch {
		case isDigit(l.ch):
			sb.WriteRune(l.ch)
			l.readChar()
		case l.ch == '.':
			if hasDot {
				malformed = true
			}
			hasDot = true
			sb.WriteRune(l.ch)
			l.readChar()
		case l.ch == 'e' || l.ch == 'E':
			if hasExp {
				malformed = true
			}
			hasExp = true
			sb.WriteRune(l.ch)
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				sb.WriteRune(l.ch)
				l.readChar()
			}
		default:
			goto done
		}
	}
done:
	_ = isHex
	lexeme := sb.String()
	end := l.pos()
	rng := source.Range{Start: start, End: end}
	if malformed {
		l.errorf(rng, diagnostics.CodeMalformedNumber, "malformed number %q", lexeme)
		return token.Token{Kind: token.NUMBER, Range: rng, Lexeme: lexeme, NumberValue: nan()}
	}
	val, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		val = nan()
	}
	return token.Token{Kind: token.NUMBER, Range: rng, Lexeme: lexeme, NumberValue: val}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func (l *Lexer) readShortString(start source.Position) token.Token {
	quote := l.ch
	l.readChar()
	var sb strings.Builder
	for {
		switch {
		case l.ch == quote:
			l.readChar()
			end := l.pos()
			return token.Token{Kind: token.STRING, Range: source.Range{Start: start, End: end},
				StringValue: sb.String(), Lexeme: sb.String()}
		case l.ch == 0 || l.ch == '\n':
			end := l.pos()
			l.errorf(source.Range{Start: start, End: end}, diagnostics.CodeUnfinishedString, "unfinished string")
			return token.Token{Kind: token.STRING, Range: source.Range{Start: start, End: end},
				StringValue: sb.String(), Lexeme: sb.String()}
		case l.ch == '\\':
			l.readChar()
			l.readEscape(&sb)
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readEscape(sb *strings.Builder) {
	switch l.ch {
	case 'a':
		sb.WriteByte(7)
		l.readChar()
	case 'b':
		sb.WriteByte(8)
		l.readChar()
	case 'f':
		sb.WriteByte(12)
		l.readChar()
	case 'n':
		sb.WriteByte('\n')
		l.readChar()
	case 'r':
		sb.WriteByte('\r')
		l.readChar()
	case 't':
		sb.WriteByte('\t')
		l.readChar()
	case 'v':
		sb.WriteByte(11)
		l.readChar()
	case '\\', '"', '\'':
		sb.WriteRune(l.ch)
		l.readChar()
	case '\n':
		sb.WriteByte('\n')
		l.readChar()
	case '\r':
		sb.WriteByte('\n')
		l.readChar()
		if l.ch == '\n' {
			l.readChar()
		}
	default:
		if isDigit(l.ch) {
			start := l.pos()
			var digits strings.Builder
			for i := 0; i < 3 && isDigit(l.ch); i++ {
				digits.WriteRune(l.ch)
				l.readChar()
			}
			n, _ := strconv.Atoi(digits.String())
			sb.WriteByte(byte(n))
			_ = start
			return
		}
		start := l.pos()
		bad := l.ch
		sb.WriteRune(l.ch)
		l.readChar()
		l.errorf(source.Range{Start: start, End: l.pos()}, diagnostics.CodeInvalidEscapeSequence,
			"invalid escape sequence '\\%c'", bad)
	}
}
