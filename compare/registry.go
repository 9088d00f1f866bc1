package compare

import (
	"reflect"
	"sync"
)

// reflectFunc compares two reflected values of one registered type.
type reflectFunc func(a, b reflect.Value) Ordering

// registered maps a reflect.Type to its reflectFunc.
var registered sync.Map //nolint:gochecknoglobals

// RegisterSum makes fn the order of the interface type T wherever Cmp meets a
// T: as a field, a slice element or a pointer target. Generated code calls it
// from init for every derived sum type, since Go cannot attach a Cmp method
// to an interface.
func RegisterSum[T any](fn func(self, other T) Ordering) {
	Register(fn)
}

// Register makes fn the order of T for Cmp, Values and ReflectValues. A later
// registration for the same type replaces the earlier one. An Ordered
// implementation or a registered function both take precedence over the
// builtin rules.
func Register[T any](fn func(self, other T) Ordering) {
	registered.Store(reflect.TypeFor[T](), reflectFunc(func(a, b reflect.Value) Ordering {
		self, _ := a.Interface().(T)
		other, _ := b.Interface().(T)

		return fn(self, other)
	}))
}

// Registered reports whether an order was registered for t.
func Registered(t reflect.Type) bool {
	_, ok := registered.Load(t)

	return ok
}

func lookup(t reflect.Type) (reflectFunc, bool) {
	fn, ok := registered.Load(t)
	if !ok {
		return nil, false
	}

	return fn.(reflectFunc), true //nolint:forcetypeassert
}
