// Package fold combines the per-field results of a derived comparison into a
// single expression.
//
// Fold works right to left, so the first field ends up outermost and the last
// innermost:
//
//	Combine(f1, Combine(f2, Combine(f3, f4)))
//
// What Single, Combine, Fieldless and CrossVariant mean is up to the
// Callback; for three-way comparison Combine is "use the first result unless
// it is Equal", which makes later fields unreachable once an earlier field
// decides. Short-circuiting is a property of the tree, not of a loop.
package fold

import (
	"fmt"

	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/expr"
	"github.com/amp-labs/amp-derive/shape"
)

// Step is one translation request handed to a Callback. The set of steps is
// closed: Single, Combine, Fieldless and CrossVariant.
type Step interface {
	translate(cb Callback) (expr.Expr, error)
}

// Single asks for the comparison of one field pair.
type Single struct {
	Field shape.FieldRef
}

// Combine asks for an expression that consults First and, depending on its
// value, Second. Second is a complete subtree and must stay lazy.
type Combine struct {
	Span   expr.Span
	First  expr.Expr
	Second expr.Expr
}

// Fieldless asks for the result of comparing two values that carry no data.
type Fieldless struct {
	Span expr.Span
}

// CrossVariant asks for the result of comparing two values of a sum type that
// hold different variants. Tags holds the self and other tag expressions.
type CrossVariant struct {
	Span expr.Span
	Tags []expr.Expr
}

func (s Single) translate(cb Callback) (expr.Expr, error)       { return cb.Single(s) }
func (s Combine) translate(cb Callback) (expr.Expr, error)      { return cb.Combine(s) }
func (s Fieldless) translate(cb Callback) (expr.Expr, error)    { return cb.Fieldless(s) }
func (s CrossVariant) translate(cb Callback) (expr.Expr, error) { return cb.CrossVariant(s) }

// Callback supplies the translation of every Step kind. Adding a kind adds a
// method here, so no implementation can silently miss one.
type Callback interface {
	Single(step Single) (expr.Expr, error)
	Combine(step Combine) (expr.Expr, error)
	Fieldless(step Fieldless) (expr.Expr, error)
	CrossVariant(step CrossVariant) (expr.Expr, error)
}

// Translate hands one step to cb.
func Translate(cb Callback, step Step) (expr.Expr, error) {
	return step.translate(cb)
}

// Fold turns one shape into one expression.
func Fold(cb Callback, sh shape.Shape) (expr.Expr, error) {
	switch sh.Kind {
	case shape.Product, shape.SumVariant:
		return Fields(cb, sh.Span, sh.Fields)
	case shape.SumFieldless:
		return Translate(cb, Fieldless{Span: sh.Span})
	case shape.SumCrossVariant:
		return Translate(cb, CrossVariant{Span: sh.Span, Tags: sh.TagExprs})
	default:
		return nil, fmt.Errorf("%w: cannot fold shape kind %s of %s", errors.ErrInternalConsistency, sh.Kind, sh.Type)
	}
}

// Fields folds an ordered list of field pairs. An empty list is Fieldless.
func Fields(cb Callback, span expr.Span, fields []shape.FieldRef) (expr.Expr, error) {
	if len(fields) == 0 {
		return Translate(cb, Fieldless{Span: span})
	}

	acc, err := Translate(cb, Single{Field: fields[len(fields)-1]})
	if err != nil {
		return nil, err
	}

	for i := len(fields) - 2; i >= 0; i-- {
		first, err := Translate(cb, Single{Field: fields[i]})
		if err != nil {
			return nil, err
		}

		acc, err = Translate(cb, Combine{Span: fields[i].Span, First: first, Second: acc})
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}
