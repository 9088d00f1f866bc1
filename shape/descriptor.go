// Package shape describes the types a comparison is derived for and turns
// them into Shapes: the individual cases a derived method body has to handle.
//
// Descriptors are computed once, when a type is registered in an Arena, and
// never change afterwards. Everything downstream works from descriptors; no
// code in this module inspects a live type declaration twice.
package shape

import (
	"github.com/amp-labs/amp-derive/expr"
)

// TypeKind distinguishes product types (structs) from sum types (a closed set
// of variants).
type TypeKind int

const (
	ProductType TypeKind = iota
	SumType
)

func (k TypeKind) String() string {
	switch k {
	case ProductType:
		return "product"
	case SumType:
		return "sum"
	default:
		return "unknown"
	}
}

// FieldDescriptor is one field of a struct or of a sum variant.
// Index is the field's position among all of its struct's fields, including
// any that are skipped (blank fields are never described).
type FieldDescriptor struct {
	Name  string
	Index int
	Type  string
	Span  expr.Span
}

// VariantDescriptor is one variant of a sum type. Tag is its declaration
// position and is assigned by the Arena. TypeExpr is how the variant is
// spelled in a type switch (for example "*Circle").
type VariantDescriptor struct {
	Name     string
	TypeExpr string
	Tag      int
	Fields   []FieldDescriptor
	Span     expr.Span
}

// IsFieldless reports whether the variant carries no data.
func (v *VariantDescriptor) IsFieldless() bool {
	return len(v.Fields) == 0
}

// TypeDescriptor is the registered description of one derived type. A product
// type has exactly one variant whose name is the type's own name.
type TypeDescriptor struct {
	Name     string
	Package  string
	Kind     TypeKind
	Variants []VariantDescriptor
	Span     expr.Span
}

// Fields returns the fields of a product type.
func (d *TypeDescriptor) Fields() []FieldDescriptor {
	if d.Kind != ProductType || len(d.Variants) == 0 {
		return nil
	}

	return d.Variants[0].Fields
}

// HasFields reports whether any variant carries data.
func (d *TypeDescriptor) HasFields() bool {
	for i := range d.Variants {
		if !d.Variants[i].IsFieldless() {
			return true
		}
	}

	return false
}

// NewField describes a field at the given struct index.
func NewField(name string, index int, typ string) FieldDescriptor {
	return FieldDescriptor{Name: name, Index: index, Type: typ}
}

// NewProduct describes a struct type.
func NewProduct(name string, fields ...FieldDescriptor) TypeDescriptor {
	return TypeDescriptor{
		Name: name,
		Kind: ProductType,
		Variants: []VariantDescriptor{{
			Name:     name,
			TypeExpr: name,
			Fields:   fields,
		}},
	}
}

// NewVariant describes one variant of a sum type.
func NewVariant(name string, fields ...FieldDescriptor) VariantDescriptor {
	return VariantDescriptor{Name: name, TypeExpr: name, Fields: fields}
}

// NewSum describes a sum type whose variants are given in declaration order.
func NewSum(name string, variants ...VariantDescriptor) TypeDescriptor {
	return TypeDescriptor{Name: name, Kind: SumType, Variants: variants}
}
