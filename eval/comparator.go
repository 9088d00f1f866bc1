package eval

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/amp-labs/amp-derive/compare"
	"github.com/amp-labs/amp-derive/derive"
	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/shape"
)

// Registry registers Go types, derives their total order once and hands out
// comparators. Struct-typed leaves met while comparing are derived on first
// use, and interface-typed leaves use the sums registered here, so nested
// types order the same way generated code orders them. It is safe for
// concurrent use.
type Registry struct {
	arena  *shape.Arena
	interp *Interpreter

	mu          sync.Mutex
	orders      map[reflect.Type]*order
	comparators map[reflect.Type]any
}

// order is the derived total order of one registered type.
type order struct {
	desc   *shape.TypeDescriptor
	method *derive.MethodImpl
	tags   map[reflect.Type]int
}

// NewRegistry returns an empty registry whose comparators evaluate with an
// interpreter built from opts. Binding compare.Cmp through opts replaces the
// registry's own resolution of nested struct and interface leaves.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		arena:       shape.NewArena(),
		orders:      make(map[reflect.Type]*order),
		comparators: make(map[reflect.Type]any),
	}

	r.interp = NewInterpreter(append([]Option{WithFunc("compare", "Cmp", cmpWith(r.resolve))}, opts...)...)

	return r
}

var defaultRegistry = NewRegistry() //nolint:gochecknoglobals

// For returns the derived comparator of struct type T from the default registry.
func For[T any]() (*Comparator[T], error) {
	return Register[T](defaultRegistry)
}

// ForSum returns the derived comparator of interface type T from the default
// registry. variants holds one sample of every variant, in declaration order.
func ForSum[T any](variants ...T) (*Comparator[T], error) {
	return RegisterSum[T](defaultRegistry, variants...)
}

// Comparator compares values of T by their derived total order.
type Comparator[T any] struct {
	*order

	interp *Interpreter
}

// Register derives the total order of struct type T. Registering the same
// type again returns the comparator built the first time.
func Register[T any](r *Registry) (*Comparator[T], error) {
	typ := reflect.TypeFor[T]()

	return cached[T](r, typ, func() (*order, error) {
		return r.product(typ)
	})
}

// RegisterSum derives the total order of interface type T whose variants are
// the dynamic types of the given samples, in order.
func RegisterSum[T any](r *Registry, variants ...T) (*Comparator[T], error) {
	typ := reflect.TypeFor[T]()

	return cached[T](r, typ, func() (*order, error) {
		if typ.Kind() != reflect.Interface {
			return nil, fmt.Errorf("%w: %s is not an interface", errors.ErrUnsupported, typ)
		}

		tags := make(map[reflect.Type]int, len(variants))
		descs := make([]shape.VariantDescriptor, 0, len(variants))

		for i, sample := range variants {
			vt := reflect.TypeOf(sample)
			if vt == nil {
				return nil, fmt.Errorf("%w: variant %d of %s is nil", errors.ErrInvalidDirective, i, typ)
			}

			st := vt
			if st.Kind() == reflect.Pointer {
				st = st.Elem()
			}

			if st.Kind() != reflect.Struct {
				return nil, fmt.Errorf("%w: variant %s of %s is not a struct", errors.ErrUnsupported, vt, typ)
			}

			if _, dup := tags[vt]; dup {
				return nil, fmt.Errorf("%w: variant %s of %s is listed twice", errors.ErrInvalidDirective, vt, typ)
			}

			tags[vt] = i

			variant := shape.NewVariant(typeName(st), describeFields(st)...)
			variant.TypeExpr = vt.String()
			descs = append(descs, variant)
		}

		desc := shape.NewSum(typeName(typ), descs...)
		desc.Package = typ.PkgPath()

		return r.build(desc, tags)
	})
}

func cached[T any](r *Registry, typ reflect.Type, create func() (*order, error)) (*Comparator[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.comparators[typ]; ok {
		return c.(*Comparator[T]), nil //nolint:forcetypeassert
	}

	o, ok := r.orders[typ]
	if !ok {
		var err error

		if o, err = create(); err != nil {
			return nil, err
		}

		r.orders[typ] = o
	}

	c := &Comparator[T]{order: o, interp: r.interp}
	r.comparators[typ] = c

	return c, nil
}

// product derives the order of a struct type. The caller holds r.mu.
func (r *Registry) product(typ reflect.Type) (*order, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", errors.ErrUnsupported, typ)
	}

	desc := shape.NewProduct(typeName(typ), describeFields(typ)...)
	desc.Package = typ.PkgPath()

	return r.build(desc, nil)
}

// resolve orders a leaf that compare.ReflectValues has no rule for: a struct
// is derived on first use, an interface must have been registered as a sum.
func (r *Registry) resolve(typ reflect.Type) (func(a, b reflect.Value) compare.Ordering, bool) {
	o, ok := r.lookup(typ)
	if !ok {
		return nil, false
	}

	return func(a, b reflect.Value) compare.Ordering {
		ord, err := o.compare(r.interp, a, b)
		if err != nil {
			panic(nestedError{err: err})
		}

		return ord
	}, true
}

func (r *Registry) lookup(typ reflect.Type) (*order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o, ok := r.orders[typ]; ok {
		return o, true
	}

	if typ.Kind() != reflect.Struct {
		return nil, false
	}

	o, err := r.product(typ)
	if err != nil {
		return nil, false
	}

	r.orders[typ] = o

	return o, true
}

func (r *Registry) build(desc shape.TypeDescriptor, tags map[reflect.Type]int) (*order, error) {
	id, err := r.arena.Register(desc)
	if err != nil {
		return nil, err
	}

	impl, err := derive.Ord(r.arena.Get(id))
	if err != nil {
		return nil, err
	}

	method, ok := impl.Method(derive.CmpMethod)
	if !ok {
		return nil, fmt.Errorf("%w: derived Ord has no %s method", errors.ErrInternalConsistency, derive.CmpMethod)
	}

	return &order{
		desc:   impl.Type,
		method: method,
		tags:   tags,
	}, nil
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}

func describeFields(t reflect.Type) []shape.FieldDescriptor {
	fields := make([]shape.FieldDescriptor, 0, t.NumField())

	for i := range t.NumField() {
		f := t.Field(i)
		if f.Name == "_" {
			continue
		}

		fields = append(fields, shape.NewField(f.Name, i, f.Type.String()))
	}

	return fields
}

// Descriptor returns the registered descriptor of T.
func (c *Comparator[T]) Descriptor() *shape.TypeDescriptor {
	return c.desc
}

// Compare returns the derived ordering of a relative to b. It panics where
// CompareErr would return an error, the same way compare.Cmp does for
// unordered leaves.
func (c *Comparator[T]) Compare(a, b T) compare.Ordering {
	ord, err := c.CompareErr(a, b)
	if err != nil {
		panic(err)
	}

	return ord
}

// Func adapts the comparator to slices.SortFunc and friends.
func (c *Comparator[T]) Func() func(a, b T) int {
	return func(a, b T) int {
		return c.Compare(a, b).Int()
	}
}

// CompareErr returns the derived ordering of a relative to b.
func (c *Comparator[T]) CompareErr(a, b T) (compare.Ordering, error) {
	return c.compare(c.interp, reflect.ValueOf(a), reflect.ValueOf(b))
}

func (o *order) compare(interp *Interpreter, self, other reflect.Value) (compare.Ordering, error) {
	if o.desc.Kind == shape.ProductType {
		body, ok := o.method.Product()
		if !ok {
			return compare.Equal, fmt.Errorf("%w: %s has no product body", errors.ErrInternalConsistency, o.desc.Name)
		}

		return interp.Ordering(body.Expr, Env{shape.SelfName: self, shape.OtherName: other})
	}

	if self.Kind() == reflect.Interface {
		self, other = self.Elem(), other.Elem()
	}

	selfTag, err := o.tagOf(self)
	if err != nil {
		return compare.Equal, err
	}

	otherTag, err := o.tagOf(other)
	if err != nil {
		return compare.Equal, err
	}

	if selfTag != otherTag {
		body, ok := o.method.CrossVariant()
		if !ok {
			return compare.Equal, fmt.Errorf("%w: %s has no cross-variant body", errors.ErrInternalConsistency, o.desc.Name)
		}

		return interp.Ordering(body.Expr, Env{
			shape.SelfTagName:  reflect.ValueOf(selfTag),
			shape.OtherTagName: reflect.ValueOf(otherTag),
		})
	}

	body, ok := o.method.Variant(selfTag)
	if !ok {
		return compare.Equal, fmt.Errorf("%w: %s has no body for tag %d",
			errors.ErrInternalConsistency, o.desc.Name, selfTag)
	}

	return interp.Ordering(body.Expr, Env{shape.SelfName: self, shape.OtherName: other})
}

func (o *order) tagOf(v reflect.Value) (int, error) {
	if !v.IsValid() {
		return -1, fmt.Errorf("%w: nil %s", errors.ErrUnsupported, o.desc.Name)
	}

	tag, ok := o.tags[v.Type()]
	if !ok {
		return -1, fmt.Errorf("%w: %s is not a registered variant of %s", errors.ErrUnsupported, v.Type(), o.desc.Name)
	}

	return tag, nil
}
