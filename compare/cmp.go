package compare

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
)

// ErrNotOrdered is the panic value (wrapped) raised when two values have no
// total order that Cmp knows about.
var ErrNotOrdered = errors.New("type is not ordered")

var (
	orderingType = reflect.TypeFor[Ordering]()
	intType      = reflect.TypeFor[int]()
)

// Cmp is the recursive three-way comparator used by derived code. It takes
// references so that large fields are not copied.
//
// Resolution order:
//   - T implements Ordered[T] (value or pointer receiver): its Cmp method.
//   - An order registered for T with Register or RegisterSum.
//   - T has a Compare(T) int method (time.Time, for example): its sign.
//   - Builtin kinds: integers, floats, strings and bools by value; pointers
//     with nil first, then by referent; arrays and slices lexicographically.
//
// Anything else panics with ErrNotOrdered, the same way a comparator for an
// unordered type could never have been written by hand.
func Cmp[T any](a, b *T) Ordering {
	if o, ok := any(*a).(Ordered[T]); ok {
		return o.Cmp(*b)
	}

	if o, ok := any(a).(Ordered[T]); ok {
		return o.Cmp(*b)
	}

	return ReflectValues(reflect.ValueOf(a).Elem(), reflect.ValueOf(b).Elem())
}

// Values compares two values of the same dynamic type with the same rules as Cmp.
func Values(a, b any) Ordering {
	return ReflectValues(reflect.ValueOf(a), reflect.ValueOf(b))
}

// Resolver supplies an order for a type that none of the Cmp rules cover.
type Resolver func(t reflect.Type) (func(a, b reflect.Value) Ordering, bool)

// ReflectValues compares two reflected values of the same type with the same rules
// as Cmp. Values obtained through unexported struct fields can only be compared by
// kind, since their methods cannot be called.
func ReflectValues(a, b reflect.Value) Ordering {
	return ReflectValuesWith(a, b, nil)
}

// ReflectValuesWith is ReflectValues with a fallback: a type that would otherwise
// panic with ErrNotOrdered is handed to resolve first. The resolver is consulted
// at every depth, so it also reaches elements of slices and pointer targets.
func ReflectValuesWith(a, b reflect.Value, resolve Resolver) Ordering { //nolint:cyclop
	if !a.IsValid() || !b.IsValid() {
		panic(fmt.Errorf("%w: invalid value", ErrNotOrdered))
	}

	if a.Type() != b.Type() {
		panic(fmt.Errorf("%w: mismatched types %s and %s", ErrNotOrdered, a.Type(), b.Type()))
	}

	if a.CanInterface() {
		if fn, ok := lookup(a.Type()); ok {
			return fn(a, b)
		}
	}

	if ord, ok := byMethod(a, b); ok {
		return ord
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(cmp.Compare(a.Int(), b.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return FromInt(cmp.Compare(a.Uint(), b.Uint()))
	case reflect.Float32, reflect.Float64:
		return FromInt(cmp.Compare(a.Float(), b.Float()))
	case reflect.String:
		return FromInt(cmp.Compare(a.String(), b.String()))
	case reflect.Bool:
		return compareBools(a.Bool(), b.Bool())
	case reflect.Pointer:
		return comparePointers(a, b, resolve)
	case reflect.Array, reflect.Slice:
		return compareSequences(a, b, resolve)
	default:
		if resolve != nil {
			if fn, ok := resolve(a.Type()); ok {
				return fn(a, b)
			}
		}

		panic(fmt.Errorf("%w: %s", ErrNotOrdered, a.Type()))
	}
}

// byMethod calls Cmp(T) Ordering or Compare(T) int when the value or a pointer
// to it exposes one.
func byMethod(a, b reflect.Value) (Ordering, bool) {
	if !a.CanInterface() || (a.Kind() == reflect.Interface && a.IsNil()) {
		return Equal, false
	}

	recv := receiver(a)

	if m := recv.MethodByName("Cmp"); m.IsValid() && isBinary(m.Type(), a.Type(), orderingType) {
		return m.Call([]reflect.Value{b})[0].Interface().(Ordering), true //nolint:forcetypeassert
	}

	if m := recv.MethodByName("Compare"); m.IsValid() && isBinary(m.Type(), a.Type(), intType) {
		return FromInt(int(m.Call([]reflect.Value{b})[0].Int())), true
	}

	return Equal, false
}

// receiver returns a value whose method set includes the pointer-receiver
// methods of a. A value that is not addressable is copied.
func receiver(a reflect.Value) reflect.Value {
	switch {
	case a.Kind() == reflect.Pointer, a.Kind() == reflect.Interface:
		return a
	case a.CanAddr():
		return a.Addr()
	case reflect.PointerTo(a.Type()).NumMethod() == a.NumMethod():
		return a
	}

	p := reflect.New(a.Type())
	p.Elem().Set(a)

	return p
}

func isBinary(fn, arg, out reflect.Type) bool {
	return fn.NumIn() == 1 && fn.In(0) == arg && fn.NumOut() == 1 && fn.Out(0) == out
}

func compareBools(a, b bool) Ordering {
	switch {
	case a == b:
		return Equal
	case !a:
		return Less
	default:
		return Greater
	}
}

func comparePointers(a, b reflect.Value, resolve Resolver) Ordering {
	switch {
	case a.IsNil() && b.IsNil():
		return Equal
	case a.IsNil():
		return Less
	case b.IsNil():
		return Greater
	default:
		return ReflectValuesWith(a.Elem(), b.Elem(), resolve)
	}
}

func compareSequences(a, b reflect.Value, resolve Resolver) Ordering {
	n := min(a.Len(), b.Len())

	for i := range n {
		if ord := ReflectValuesWith(a.Index(i), b.Index(i), resolve); ord != Equal {
			return ord
		}
	}

	return FromInt(cmp.Compare(a.Len(), b.Len()))
}
