package gradle

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIdent
	tokString
	tokInt
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokComma
	tokDot
	tokAssign
	tokSemicolon
	tokStar
)

var tokenNames = map[tokenKind]string{
	tokEOF:       "EOF",
	tokNewline:   "newline",
	tokIdent:     "identifier",
	tokString:    "string",
	tokInt:       "integer",
	tokLBrace:    "'{'",
	tokRBrace:    "'}'",
	tokLParen:    "'('",
	tokRParen:    "')'",
	tokComma:     "','",
	tokDot:       "'.'",
	tokAssign:    "'='",
	tokSemicolon: "';'",
	tokStar:      "'*'",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

var (
	punctuation = map[byte]tokenKind{
		'{': tokLBrace,
		'}': tokRBrace,
		'(': tokLParen,
		')': tokRParen,
		',': tokComma,
		'.': tokDot,
		'=': tokAssign,
		';': tokSemicolon,
		'*': tokStar,
	}
	escapes = map[byte]string{
		'"':  `"`,
		'\\': `\`,
		'$':  "$",
		'\'': "'",
		'n':  "\n",
		't':  "\t",
		'r':  "\r",
		'b':  "\b",
	}
)

type token struct {
	kind tokenKind
	text string
	pos  Position
}

// SyntaxError is a malformed or unsupported construct in a build script.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

type lexer struct {
	src    string
	off    int
	line   int
	col    int
	nest   []tokenKind
	tokens []token
}

// lex splits src into tokens. Newlines are only
// significant outside of parentheses.
func lex(src string) ([]token, error) {
	l := &lexer{src: src, line: 1, col: 1}

	for {
		if err := l.skipSpaceAndComments(); err != nil {
			return nil, err
		}

		if l.off >= len(l.src) {
			l.emit(tokEOF, "", l.pos())
			return l.tokens, nil
		}

		var (
			pos = l.pos()
			c   = l.src[l.off]
		)

		switch {
		case c == '\n':
			l.advance(1)
			if len(l.nest) == 0 || l.nest[len(l.nest)-1] != tokLParen {
				l.emit(tokNewline, "\n", pos)
			}
		case c == '"':
			s, err := l.lexString()
			if err != nil {
				return nil, err
			}
			l.emit(tokString, s, pos)
		case c == '`':
			end := strings.IndexAny(l.src[l.off+1:], "`\n")
			if end < 0 || l.src[l.off+1+end] != '`' {
				return nil, &SyntaxError{Pos: pos, Msg: "unterminated quoted identifier"}
			}
			name := l.src[l.off+1 : l.off+1+end]
			l.advance(end + 2)
			l.emit(tokIdent, name, pos)
		case isDigit(c) || (c == '-' && l.off+1 < len(l.src) && isDigit(l.src[l.off+1])):
			start := l.off
			l.advance(1)
			for l.off < len(l.src) && (isDigit(l.src[l.off]) || l.src[l.off] == '_') {
				l.advance(1)
			}
			l.emit(tokInt, strings.ReplaceAll(l.src[start:l.off], "_", ""), pos)
		case isLetter(c):
			start := l.off
			for l.off < len(l.src) && (isLetter(l.src[l.off]) || isDigit(l.src[l.off])) {
				l.advance(1)
			}
			l.emit(tokIdent, l.src[start:l.off], pos)
		default:
			kind, ok := punctuation[c]
			if !ok || (c == '=' && l.off+1 < len(l.src) && l.src[l.off+1] == '=') {
				r, _ := utf8.DecodeRuneInString(l.src[l.off:])
				return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unsupported character %q", r)}
			}

			switch kind {
			case tokLBrace, tokLParen:
				l.nest = append(l.nest, kind)
			case tokRBrace, tokRParen:
				open := tokLBrace
				if kind == tokRParen {
					open = tokLParen
				}
				if len(l.nest) == 0 || l.nest[len(l.nest)-1] != open {
					return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unexpected %s", kind)}
				}
				l.nest = l.nest[:len(l.nest)-1]
			}

			l.advance(1)
			l.emit(kind, string(c), pos)
		}
	}
}

func (l *lexer) pos() Position {
	return Position{Line: l.line, Col: l.col}
}

func (l *lexer) emit(kind tokenKind, text string, pos Position) {
	l.tokens = append(l.tokens, token{kind: kind, text: text, pos: pos})
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.off < len(l.src); i++ {
		if l.src[l.off] == '\n' {
			l.line++
			l.col = 1
		} else if utf8.RuneStart(l.src[l.off]) {
			l.col++
		}
		l.off++
	}
}

func (l *lexer) skipSpaceAndComments() error {
	for l.off < len(l.src) {
		switch {
		case l.src[l.off] == ' ' || l.src[l.off] == '\t' || l.src[l.off] == '\r':
			l.advance(1)
		case strings.HasPrefix(l.src[l.off:], "//"):
			end := strings.IndexByte(l.src[l.off:], '\n')
			if end < 0 {
				end = len(l.src) - l.off
			}
			l.advance(end)
		case strings.HasPrefix(l.src[l.off:], "/*"):
			pos := l.pos()
			end := strings.Index(l.src[l.off+2:], "*/")
			if end < 0 {
				return &SyntaxError{Pos: pos, Msg: "unterminated comment"}
			}
			l.advance(end + 4)
		default:
			return nil
		}
	}

	return nil
}

func (l *lexer) lexString() (string, error) {
	var (
		pos = l.pos()
		b   = new(strings.Builder)
	)

	if strings.HasPrefix(l.src[l.off:], `"""`) {
		end := strings.Index(l.src[l.off+3:], `"""`)
		if end < 0 {
			return "", &SyntaxError{Pos: pos, Msg: "unterminated string"}
		}
		s := l.src[l.off+3 : l.off+3+end]
		l.advance(end + 6)
		return s, nil
	}

	l.advance(1)

	for {
		if l.off >= len(l.src) || l.src[l.off] == '\n' {
			return "", &SyntaxError{Pos: pos, Msg: "unterminated string"}
		}

		c := l.src[l.off]
		switch c {
		case '"':
			l.advance(1)
			return b.String(), nil
		case '\\':
			if l.off+1 >= len(l.src) {
				return "", &SyntaxError{Pos: pos, Msg: "unterminated string"}
			}
			esc, ok := escapes[l.src[l.off+1]]
			if !ok {
				return "", &SyntaxError{Pos: l.pos(), Msg: fmt.Sprintf("unsupported escape \\%c", l.src[l.off+1])}
			}
			b.WriteString(esc)
			l.advance(2)
		default:
			b.WriteByte(c)
			l.advance(1)
		}
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
