package derive

import (
	"fmt"

	"github.com/amp-labs/amp-derive/compare"
	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/expr"
	"github.com/amp-labs/amp-derive/fold"
	"github.com/amp-labs/amp-derive/shape"
)

const (
	// OrdTraitName is the name of the total-order trait.
	OrdTraitName = "Ord"
	// CmpMethod is the name of the single method of Ord.
	CmpMethod = "Cmp"
	// ComparePackage is the package qualifier of the comparator and its
	// ordering constants in derived expressions.
	ComparePackage = "compare"
	// CmpBinding names the non-Equal result in a Combine step.
	CmpBinding = "cmp"
)

// OrdCallback translates fold steps into three-way comparisons:
//
//	Single:       compare.Cmp(&self.f, &other.f)
//	Combine:      match first { Equal => second, cmp => cmp }
//	Fieldless:    compare.Equal
//	CrossVariant: compare.Cmp(&selfTag, &otherTag)
type OrdCallback struct{}

var _ fold.Callback = OrdCallback{}

func cmpPath(span expr.Span) expr.Path {
	return *expr.NewPath(span, ComparePackage, CmpMethod)
}

func (OrdCallback) Single(step fold.Single) (expr.Expr, error) {
	field := step.Field
	if len(field.Others) != 1 {
		return nil, fmt.Errorf("%w: not exactly 2 arguments in derive(Ord) for field %s at %s",
			errors.ErrInternalConsistency, field.Name, field.Span)
	}

	return expr.NewCall(field.Span, cmpPath(field.Span),
		expr.NewAddrOf(field.Span, field.Self),
		expr.NewAddrOf(field.Span, field.Others[0]),
	), nil
}

func (OrdCallback) Combine(step fold.Combine) (expr.Expr, error) {
	return expr.NewMatch(step.Span, step.First, step.Second, CmpBinding), nil
}

func (OrdCallback) Fieldless(step fold.Fieldless) (expr.Expr, error) {
	return expr.NewConst(step.Span, compare.Equal), nil
}

func (OrdCallback) CrossVariant(step fold.CrossVariant) (expr.Expr, error) {
	if len(step.Tags) != 2 {
		return nil, fmt.Errorf("%w: not exactly 2 arguments in derive(Ord) at %s",
			errors.ErrInternalConsistency, step.Span)
	}

	return expr.NewCall(step.Span, cmpPath(step.Span),
		expr.NewAddrOf(step.Span, step.Tags[0]),
		expr.NewAddrOf(step.Span, step.Tags[1]),
	), nil
}

// OrdTrait declares the total-order trait: one method, Cmp, taking self and
// other by reference and returning compare.Ordering.
func OrdTrait(span expr.Span) TraitDef {
	return TraitDef{
		Name: OrdTraitName,
		Path: *expr.NewPath(span, ComparePackage, "Ordered"),
		Methods: []MethodDef{{
			Name:           CmpMethod,
			Self:           Param{Name: shape.SelfName, ByRef: true},
			Params:         []Param{{Name: shape.OtherName, ByRef: true}},
			Return:         *expr.NewPath(span, ComparePackage, "Ordering"),
			Attributes:     []string{AttrInline},
			UnifyFieldless: true,
			Callback:       OrdCallback{},
		}},
	}
}

// Ord derives a total order for desc.
func Ord(desc *shape.TypeDescriptor) (*Impl, error) {
	var span expr.Span
	if desc != nil {
		span = desc.Span
	}

	return Expand(OrdTrait(span), desc)
}
