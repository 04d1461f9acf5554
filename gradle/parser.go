package gradle

import (
	"fmt"
	"io"
	"strings"

	xslice "github.com/frantjc/x/slice"
)

// infixCalls are the infix functions allowed after an expression statement,
// e.g. `id("com.android.application") version "8.1.0" apply false`.
var infixCalls = []string{"version", "apply"}

type parser struct {
	tokens []token
	off    int
}

// Parse reads a Kotlin DSL build script from r.
func Parse(r io.Reader) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return ParseString(string(b))
}

// ParseString parses the Kotlin DSL build script src.
func ParseString(src string) (*File, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	stmts, err := p.parseStmts(tokEOF)
	if err != nil {
		return nil, err
	}

	return &File{Stmts: stmts}, nil
}

func (p *parser) peek() token {
	return p.tokens[p.off]
}

func (p *parser) next() token {
	tok := p.tokens[p.off]
	if tok.kind != tokEOF {
		p.off++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, p.errorf(tok, "expected %s, found %s", kind, describe(tok))
	}
	return tok, nil
}

func (p *parser) errorf(tok token, format string, a ...any) error {
	return &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf(format, a...)}
}

func (p *parser) skipSeparators() {
	for k := p.peek().kind; k == tokNewline || k == tokSemicolon; k = p.peek().kind {
		p.next()
	}
}

func (p *parser) skipNewlines() {
	for p.peek().kind == tokNewline {
		p.next()
	}
}

// parseStmts parses statements until end, which it consumes.
func (p *parser) parseStmts(end tokenKind) ([]Stmt, error) {
	stmts := []Stmt{}

	for {
		p.skipSeparators()

		if tok := p.peek(); tok.kind == end {
			p.next()
			return stmts, nil
		} else if tok.kind == tokEOF {
			return nil, p.errorf(tok, "expected %s, found EOF", end)
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		switch tok := p.peek(); tok.kind {
		case tokNewline, tokSemicolon, end:
		default:
			return nil, p.errorf(tok, "unexpected %s after statement", describe(tok))
		}
	}
}

func (p *parser) parseStmt() (Stmt, error) {
	tok := p.peek()

	if tok.kind == tokIdent {
		switch tok.text {
		case "import":
			return p.parseImport()
		case "val", "var":
			return p.parseDecl()
		case "if", "when", "for", "while", "fun", "class", "object", "return":
			return nil, p.errorf(tok, "unsupported construct %s", tok.text)
		}
	}

	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	switch p.peek().kind {
	case tokAssign:
		if Path(x) == "" {
			return nil, p.errorf(p.peek(), "cannot assign to %s", String(x))
		}

		p.next()
		p.skipNewlines()

		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &AssignStmt{LHS: x, RHS: rhs}, nil
	case tokLBrace:
		p.next()

		body, err := p.parseStmts(tokRBrace)
		if err != nil {
			return nil, err
		}

		return &BlockStmt{Head: x, Body: body}, nil
	}

	for tok := p.peek(); tok.kind == tokIdent && xslice.Includes(infixCalls, tok.text); tok = p.peek() {
		p.next()

		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		x = &CallExpr{
			Fun:  &SelectorExpr{X: x, Sel: &Ident{NamePos: tok.pos, Name: tok.text}},
			Args: []Expr{arg},
		}
	}

	return &ExprStmt{X: x}, nil
}

func (p *parser) parseImport() (Stmt, error) {
	var (
		tok   = p.next()
		parts = []string{}
	)

	for {
		switch next := p.next(); next.kind {
		case tokIdent, tokStar:
			parts = append(parts, next.text)
		default:
			return nil, p.errorf(next, "expected import path, found %s", describe(next))
		}

		if p.peek().kind != tokDot {
			break
		}
		p.next()
	}

	return &ImportStmt{ImportPos: tok.pos, Path: strings.Join(parts, ".")}, nil
}

func (p *parser) parseDecl() (Stmt, error) {
	tok := p.next()

	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}

	decl := &DeclStmt{
		DeclPos: tok.pos,
		Mutable: tok.text == "var",
		Name:    &Ident{NamePos: name.pos, Name: name.text},
	}

	if p.peek().kind == tokAssign {
		p.next()
		p.skipNewlines()

		if decl.Value, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	return decl, nil
}

func (p *parser) parseExpr() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().kind {
		case tokDot:
			p.next()

			sel, err := p.expect(tokIdent)
			if err != nil {
				return nil, err
			}

			x = &SelectorExpr{X: x, Sel: &Ident{NamePos: sel.pos, Name: sel.text}}
		case tokLParen:
			p.next()

			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			x = &CallExpr{Fun: x, Args: args}
		default:
			return x, nil
		}
	}
}

func (p *parser) parseArgs() ([]Expr, error) {
	args := []Expr{}

	for {
		if p.peek().kind == tokRParen {
			p.next()
			return args, nil
		}

		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch tok := p.next(); tok.kind {
		case tokComma:
		case tokRParen:
			return args, nil
		default:
			return nil, p.errorf(tok, "expected ',' or ')', found %s", describe(tok))
		}
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.next()

	switch tok.kind {
	case tokIdent:
		switch tok.text {
		case "true", "false":
			return &BasicLit{ValuePos: tok.pos, Kind: LitBool, Value: tok.text}, nil
		}

		return &Ident{NamePos: tok.pos, Name: tok.text}, nil
	case tokString:
		return &BasicLit{ValuePos: tok.pos, Kind: LitString, Value: tok.text}, nil
	case tokInt:
		return &BasicLit{ValuePos: tok.pos, Kind: LitInt, Value: tok.text}, nil
	case tokLParen:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}

		return x, nil
	}

	return nil, p.errorf(tok, "expected expression, found %s", describe(tok))
}

func describe(tok token) string {
	switch tok.kind {
	case tokIdent, tokInt:
		return fmt.Sprintf("%s %s", tok.kind, tok.text)
	case tokString:
		return fmt.Sprintf("%s %q", tok.kind, tok.text)
	}

	return tok.kind.String()
}
