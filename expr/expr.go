// Package expr is the small expression tree that derived method bodies are
// built from. It is closed: the only nodes are the ones declared here, and
// every consumer (the evaluator, the Go renderer, the debug printer) switches
// over all of them.
package expr

import (
	"fmt"

	"github.com/amp-labs/amp-derive/compare"
)

// Span locates the source construct an expression was derived from.
// The zero Span means the expression was built at run time.
type Span struct {
	File   string
	Line   int
	Column int
}

func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) String() string {
	if s.IsZero() {
		return "<runtime>"
	}

	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}

	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Expr is implemented only by the node types in this package.
type Expr interface {
	Pos() Span
	expr()
}

// Ident refers to a local binding such as self, other or a variant tag.
type Ident struct {
	Span Span
	Name string
}

// Path is a package-qualified name: a function or a constant.
type Path struct {
	Span    Span
	Package string
	Name    string
}

// Field selects a struct field. Index is the field's declaration index in its
// struct, which lets the evaluator skip name lookups.
type Field struct {
	Span  Span
	Base  Expr
	Name  string
	Index int
}

// AddrOf takes a reference to its target.
type AddrOf struct {
	Span   Span
	Target Expr
}

// Call invokes a package-level function.
type Call struct {
	Span Span
	Func Path
	Args []Expr
}

// Match evaluates Scrutinee and yields OnEqual when it is compare.Equal.
// Otherwise the scrutinee's value, bound to Binding, is the result.
// OnEqual must not be evaluated unless the scrutinee is Equal.
type Match struct {
	Span      Span
	Scrutinee Expr
	OnEqual   Expr
	Binding   string
}

// Const is an ordering constant.
type Const struct {
	Span  Span
	Value compare.Ordering
}

func (e *Ident) Pos() Span  { return e.Span }
func (e *Path) Pos() Span   { return e.Span }
func (e *Field) Pos() Span  { return e.Span }
func (e *AddrOf) Pos() Span { return e.Span }
func (e *Call) Pos() Span   { return e.Span }
func (e *Match) Pos() Span  { return e.Span }
func (e *Const) Pos() Span  { return e.Span }

func (*Ident) expr()  {}
func (*Path) expr()   {}
func (*Field) expr()  {}
func (*AddrOf) expr() {}
func (*Call) expr()   {}
func (*Match) expr()  {}
func (*Const) expr()  {}

func NewIdent(span Span, name string) *Ident {
	return &Ident{Span: span, Name: name}
}

func NewPath(span Span, pkg, name string) *Path {
	return &Path{Span: span, Package: pkg, Name: name}
}

func NewField(span Span, base Expr, name string, index int) *Field {
	return &Field{Span: span, Base: base, Name: name, Index: index}
}

func NewAddrOf(span Span, target Expr) *AddrOf {
	return &AddrOf{Span: span, Target: target}
}

func NewCall(span Span, fn Path, args ...Expr) *Call {
	return &Call{Span: span, Func: fn, Args: args}
}

func NewMatch(span Span, scrutinee, onEqual Expr, binding string) *Match {
	return &Match{Span: span, Scrutinee: scrutinee, OnEqual: onEqual, Binding: binding}
}

func NewConst(span Span, value compare.Ordering) *Const {
	return &Const{Span: span, Value: value}
}
