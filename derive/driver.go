// Package derive expands derivable traits into method implementations.
//
// A trait is described by a TraitDef: its methods, their signatures and a
// fold.Callback per method. The Driver enumerates the shapes of a type,
// folds every shape with the method's callback and collects the results in an
// Impl. Backends (the Go renderer, the evaluator) consume Impls.
package derive

import (
	"fmt"

	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/fold"
	"github.com/amp-labs/amp-derive/shape"
)

// Enumerator produces the shapes of a type.
type Enumerator func(desc *shape.TypeDescriptor, opts shape.EnumerateOptions) []shape.Shape

// Driver expands traits for registered types. The zero Driver uses
// shape.Enumerate. A Driver holds no state between expansions.
type Driver struct {
	Enumerate Enumerator
}

// Expand derives trait for desc with the default Driver.
func Expand(trait TraitDef, desc *shape.TypeDescriptor) (*Impl, error) {
	return Driver{}.Expand(trait, desc)
}

// Expand derives trait for desc. Any failure aborts the whole type and is
// returned as a *Fault naming the derive site.
func (d Driver) Expand(trait TraitDef, desc *shape.TypeDescriptor) (*Impl, error) {
	if desc == nil {
		return nil, &Fault{
			Site: Site{Trait: trait.Name},
			Err:  fmt.Errorf("%w: no type descriptor", errors.ErrInternalConsistency),
		}
	}

	site := Site{Span: desc.Span, Trait: trait.Name, Type: desc.Name}

	enumerate := d.Enumerate
	if enumerate == nil {
		enumerate = shape.Enumerate
	}

	impl := &Impl{
		Trait:   trait,
		Type:    desc,
		Methods: make([]MethodImpl, 0, len(trait.Methods)),
	}

	for _, method := range trait.Methods {
		if method.Callback == nil {
			return nil, &Fault{
				Site: site,
				Err:  fmt.Errorf("%w: method %s has no callback", errors.ErrInternalConsistency, method.Name),
			}
		}

		shapes := enumerate(desc, shape.EnumerateOptions{UnifyFieldless: method.UnifyFieldless})
		bodies := make([]Body, 0, len(shapes))

		for _, sh := range shapes {
			body, err := fold.Fold(method.Callback, sh)
			if err != nil {
				return nil, &Fault{Site: site, Err: err}
			}

			bodies = append(bodies, Body{Shape: sh, Expr: body})
		}

		impl.Methods = append(impl.Methods, MethodImpl{Def: method, Bodies: bodies})
	}

	return impl, nil
}
