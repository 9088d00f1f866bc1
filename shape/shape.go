package shape

import (
	"github.com/amp-labs/amp-derive/expr"
)

// Binding names shared by the enumerator and every backend that consumes its
// shapes. The renderer declares them; the evaluator binds them.
const (
	SelfName     = "self"
	OtherName    = "other"
	SelfTagName  = "selfTag"
	OtherTagName = "otherTag"
)

// Kind identifies which comparison case a Shape describes.
type Kind int

const (
	// Product is a struct compared field by field.
	Product Kind = iota
	// SumVariant is two values holding the same variant.
	SumVariant
	// SumFieldless stands for every fieldless variant at once: two values
	// holding the same fieldless variant are always Equal.
	SumFieldless
	// SumCrossVariant is two values holding different variants.
	SumCrossVariant
)

func (k Kind) String() string {
	switch k {
	case Product:
		return "Product"
	case SumVariant:
		return "SumVariant"
	case SumFieldless:
		return "SumFieldless"
	case SumCrossVariant:
		return "SumCrossVariant"
	default:
		return "Unknown"
	}
}

// FieldRef pairs the expression reading a field from self with the
// expressions reading the same field from the other operands. A well-formed
// two-operand derivation always has exactly one other expression.
type FieldRef struct {
	Span   expr.Span
	Name   string
	Self   expr.Expr
	Others []expr.Expr
}

// Shape is one case of a derived method body. Shapes are built per
// expansion and consumed exactly once.
type Shape struct {
	Kind Kind
	Span expr.Span
	Type string

	// Variant and Tag identify the variant of a SumVariant shape.
	Variant string
	Tag     int

	// Tags lists the variants a SumFieldless shape stands for.
	Tags []int

	// Fields holds the field pairs of Product and SumVariant shapes, in
	// declaration order.
	Fields []FieldRef

	// TagExprs holds the self and other tag expressions of a
	// SumCrossVariant shape.
	TagExprs []expr.Expr
}
