package shape

import (
	"github.com/amp-labs/amp-derive/expr"
)

// EnumerateOptions controls how sum types are split into shapes.
type EnumerateOptions struct {
	// UnifyFieldless collapses all fieldless variants into one SumFieldless
	// shape instead of one SumVariant shape each.
	UnifyFieldless bool
}

// Enumerate yields the shapes of desc, in the order a derived method body
// checks them: variant shapes in declaration order, then the unified
// fieldless shape, then the cross-variant shape. A sum type with a single
// variant has no cross-variant shape.
func Enumerate(desc *TypeDescriptor, opts EnumerateOptions) []Shape {
	if desc.Kind == ProductType {
		variant := &desc.Variants[0]

		return []Shape{{
			Kind:   Product,
			Span:   desc.Span,
			Type:   desc.Name,
			Fields: fieldRefs(variant),
		}}
	}

	shapes := make([]Shape, 0, len(desc.Variants)+2)

	var fieldless []int

	for i := range desc.Variants {
		variant := &desc.Variants[i]

		if opts.UnifyFieldless && variant.IsFieldless() {
			fieldless = append(fieldless, variant.Tag)

			continue
		}

		shapes = append(shapes, Shape{
			Kind:    SumVariant,
			Span:    variant.Span,
			Type:    desc.Name,
			Variant: variant.Name,
			Tag:     variant.Tag,
			Fields:  fieldRefs(variant),
		})
	}

	if len(fieldless) > 0 {
		shapes = append(shapes, Shape{
			Kind: SumFieldless,
			Span: desc.Span,
			Type: desc.Name,
			Tags: fieldless,
		})
	}

	if len(desc.Variants) > 1 {
		shapes = append(shapes, Shape{
			Kind: SumCrossVariant,
			Span: desc.Span,
			Type: desc.Name,
			TagExprs: []expr.Expr{
				expr.NewIdent(desc.Span, SelfTagName),
				expr.NewIdent(desc.Span, OtherTagName),
			},
		})
	}

	return shapes
}

func fieldRefs(variant *VariantDescriptor) []FieldRef {
	refs := make([]FieldRef, 0, len(variant.Fields))

	for _, field := range variant.Fields {
		span := field.Span
		if span.IsZero() {
			span = variant.Span
		}

		refs = append(refs, FieldRef{
			Span: span,
			Name: field.Name,
			Self: expr.NewField(span, expr.NewIdent(span, SelfName), field.Name, field.Index),
			Others: []expr.Expr{
				expr.NewField(span, expr.NewIdent(span, OtherName), field.Name, field.Index),
			},
		})
	}

	return refs
}
