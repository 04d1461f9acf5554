package gradle

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a line and column in a build script, both starting at 1.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type Node interface {
	Pos() Position
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// File is a parsed build script.
type File struct {
	Stmts []Stmt
}

type LitKind int

const (
	LitString LitKind = iota
	LitInt
	LitBool
)

type (
	Ident struct {
		NamePos Position
		Name    string
	}

	// BasicLit is a literal. Value of a string literal is unquoted.
	BasicLit struct {
		ValuePos Position
		Kind     LitKind
		Value    string
	}

	SelectorExpr struct {
		X   Expr
		Sel *Ident
	}

	CallExpr struct {
		Fun  Expr
		Args []Expr
	}
)

func (x *Ident) Pos() Position        { return x.NamePos }
func (x *BasicLit) Pos() Position     { return x.ValuePos }
func (x *SelectorExpr) Pos() Position { return x.X.Pos() }
func (x *CallExpr) Pos() Position     { return x.Fun.Pos() }

func (*Ident) exprNode()        {}
func (*BasicLit) exprNode()     {}
func (*SelectorExpr) exprNode() {}
func (*CallExpr) exprNode()     {}

type (
	ImportStmt struct {
		ImportPos Position
		Path      string
	}

	// DeclStmt is a `val` or `var` declaration.
	DeclStmt struct {
		DeclPos Position
		Mutable bool
		Name    *Ident
		Value   Expr
	}

	AssignStmt struct {
		LHS Expr
		RHS Expr
	}

	ExprStmt struct {
		X Expr
	}

	// BlockStmt is a call followed by a trailing lambda,
	// e.g. `android { ... }` or `getByName("release") { ... }`.
	BlockStmt struct {
		Head Expr
		Body []Stmt
	}
)

func (s *ImportStmt) Pos() Position { return s.ImportPos }
func (s *DeclStmt) Pos() Position   { return s.DeclPos }
func (s *AssignStmt) Pos() Position { return s.LHS.Pos() }
func (s *ExprStmt) Pos() Position   { return s.X.Pos() }
func (s *BlockStmt) Pos() Position  { return s.Head.Pos() }

func (*ImportStmt) stmtNode() {}
func (*DeclStmt) stmtNode()   {}
func (*AssignStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*BlockStmt) stmtNode()  {}

// Path returns the dotted path of an identifier or selector chain,
// e.g. "flutter.versionCode", or "" if e is anything else.
func Path(e Expr) string {
	switch x := e.(type) {
	case *Ident:
		return x.Name
	case *SelectorExpr:
		if p := Path(x.X); p != "" {
			return p + "." + x.Sel.Name
		}
	}

	return ""
}

// Name returns the name a statement or expression is addressed by:
// the path of an identifier or selector, or the path of a call's function.
func Name(e Expr) string {
	if call, ok := e.(*CallExpr); ok {
		return Path(call.Fun)
	}

	return Path(e)
}

// String renders e back into Kotlin source.
func String(e Expr) string {
	switch x := e.(type) {
	case *Ident:
		return x.Name
	case *BasicLit:
		if x.Kind == LitString {
			return Quote(x.Value)
		}

		return x.Value
	case *SelectorExpr:
		return String(x.X) + "." + x.Sel.Name
	case *CallExpr:
		args := make([]string, len(x.Args))
		for i, arg := range x.Args {
			args[i] = String(arg)
		}

		return String(x.Fun) + "(" + strings.Join(args, ", ") + ")"
	}

	return ""
}

// Quote returns s as a Kotlin string literal.
func Quote(s string) string {
	return strings.ReplaceAll(strconv.Quote(s), "$", `\$`)
}
