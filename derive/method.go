package derive

import (
	"github.com/amp-labs/amp-derive/expr"
	"github.com/amp-labs/amp-derive/fold"
	"github.com/amp-labs/amp-derive/shape"
)

// AttrInline asks the optimizer to inline the generated method. It has no
// semantic effect, and the Go renderer emits nothing for it because the Go
// compiler makes its own inlining decisions.
const AttrInline = "inline"

// Param is one parameter of a generated method. An empty Type means "the
// type being derived for".
type Param struct {
	Name  string
	Type  string
	ByRef bool
}

// MethodDef declares one generated method and how its body is produced.
type MethodDef struct {
	Name       string
	Self       Param
	Params     []Param
	Return     expr.Path
	Attributes []string

	// UnifyFieldless compares all fieldless variants of a sum type through
	// one shared body instead of one body per variant.
	UnifyFieldless bool

	Callback fold.Callback
}

// HasAttribute reports whether attr was declared on the method.
func (m *MethodDef) HasAttribute(attr string) bool {
	for _, a := range m.Attributes {
		if a == attr {
			return true
		}
	}

	return false
}

// TraitDef is a derivable capability: a named set of methods.
type TraitDef struct {
	Name             string
	Path             expr.Path
	AdditionalBounds []string
	Methods          []MethodDef
}

// Body is the derived expression for one shape.
type Body struct {
	Shape shape.Shape
	Expr  expr.Expr
}

// MethodImpl is a method definition together with one body per shape.
type MethodImpl struct {
	Def    MethodDef
	Bodies []Body
}

// Product returns the body of a product type's method.
func (m *MethodImpl) Product() (*Body, bool) {
	return m.find(func(s *shape.Shape) bool { return s.Kind == shape.Product })
}

// Variant returns the body that handles two values holding the variant with
// the given tag: its own SumVariant body or the unified fieldless body.
func (m *MethodImpl) Variant(tag int) (*Body, bool) {
	return m.find(func(s *shape.Shape) bool {
		switch s.Kind {
		case shape.SumVariant:
			return s.Tag == tag
		case shape.SumFieldless:
			for _, t := range s.Tags {
				if t == tag {
					return true
				}
			}

			return false
		default:
			return false
		}
	})
}

// CrossVariant returns the body used when the two values hold different variants.
func (m *MethodImpl) CrossVariant() (*Body, bool) {
	return m.find(func(s *shape.Shape) bool { return s.Kind == shape.SumCrossVariant })
}

func (m *MethodImpl) find(match func(*shape.Shape) bool) (*Body, bool) {
	for i := range m.Bodies {
		if match(&m.Bodies[i].Shape) {
			return &m.Bodies[i], true
		}
	}

	return nil, false
}

// Impl is the complete derived implementation of one trait for one type.
type Impl struct {
	Trait   TraitDef
	Type    *shape.TypeDescriptor
	Methods []MethodImpl
}

// Method returns the implementation of the named method.
func (i *Impl) Method(name string) (*MethodImpl, bool) {
	for idx := range i.Methods {
		if i.Methods[idx].Def.Name == name {
			return &i.Methods[idx], true
		}
	}

	return nil, false
}
