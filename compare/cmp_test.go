package compare

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type celsius float64

type unordered struct {
	m map[string]int
}

func TestCmp_Builtins(t *testing.T) {
	t.Parallel()

	t.Run("integers", func(t *testing.T) {
		t.Parallel()

		a, b := 1, 2
		assert.Equal(t, Less, Cmp(&a, &b))
		assert.Equal(t, Greater, Cmp(&b, &a))
		assert.Equal(t, Equal, Cmp(&a, &a))
	})

	t.Run("unsigned", func(t *testing.T) {
		t.Parallel()

		a, b := uint8(200), uint8(3)
		assert.Equal(t, Greater, Cmp(&a, &b))
	})

	t.Run("named float", func(t *testing.T) {
		t.Parallel()

		a, b := celsius(-4.5), celsius(12)
		assert.Equal(t, Less, Cmp(&a, &b))
	})

	t.Run("strings", func(t *testing.T) {
		t.Parallel()

		a, b := "apple", "banana"
		assert.Equal(t, Less, Cmp(&a, &b))
	})

	t.Run("bools order false first", func(t *testing.T) {
		t.Parallel()

		a, b := false, true
		assert.Equal(t, Less, Cmp(&a, &b))
		assert.Equal(t, Greater, Cmp(&b, &a))
		assert.Equal(t, Equal, Cmp(&b, &b))
	})
}

func TestCmp_Composites(t *testing.T) {
	t.Parallel()

	t.Run("nil pointers sort first", func(t *testing.T) {
		t.Parallel()

		one := 1
		var none *int

		some := &one
		assert.Equal(t, Less, Cmp(&none, &some))
		assert.Equal(t, Greater, Cmp(&some, &none))
		assert.Equal(t, Equal, Cmp(&none, &none))
	})

	t.Run("pointers compare referents", func(t *testing.T) {
		t.Parallel()

		x, y := 3, 3
		px, py := &x, &y
		assert.Equal(t, Equal, Cmp(&px, &py))
	})

	t.Run("slices are lexicographic", func(t *testing.T) {
		t.Parallel()

		a := []int{1, 2, 3}
		b := []int{1, 2, 4}
		c := []int{1, 2}
		assert.Equal(t, Less, Cmp(&a, &b))
		assert.Equal(t, Greater, Cmp(&a, &c))
		assert.Equal(t, Less, Cmp(&c, &a))
	})

	t.Run("arrays are lexicographic", func(t *testing.T) {
		t.Parallel()

		a := [2]string{"a", "z"}
		b := [2]string{"b", "a"}
		assert.Equal(t, Less, Cmp(&a, &b))
	})
}

func TestCmp_Methods(t *testing.T) {
	t.Parallel()

	t.Run("Ordered value receiver", func(t *testing.T) {
		t.Parallel()

		a, b := TestVersion{1, 9}, TestVersion{2, 0}
		assert.Equal(t, Less, Cmp(&a, &b))
	})

	t.Run("Ordered pointer receiver", func(t *testing.T) {
		t.Parallel()

		a, b := TestLabel("b"), TestLabel("a")
		assert.Equal(t, Greater, Cmp(&a, &b))
	})

	t.Run("Compare method", func(t *testing.T) {
		t.Parallel()

		a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		b := a.Add(time.Hour)
		assert.Equal(t, Less, Cmp(&a, &b))
	})

	t.Run("Ordered slice elements", func(t *testing.T) {
		t.Parallel()

		a := []TestVersion{{1, 0}, {1, 1}}
		b := []TestVersion{{1, 0}, {1, 0}}
		assert.Equal(t, Greater, Cmp(&a, &b))
	})
}

func TestCmp_Unordered(t *testing.T) {
	t.Parallel()

	a := unordered{m: map[string]int{}}
	b := unordered{m: map[string]int{}}

	defer func() {
		r := recover()
		require.NotNil(t, r)

		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, ErrNotOrdered)
	}()

	Cmp(&a, &b)
}

func TestValues_MismatchedTypes(t *testing.T) {
	t.Parallel()

	assert.PanicsWithError(t, "type is not ordered: mismatched types int and string", func() {
		Values(1, "1")
	})
}

// descending orders through a pointer receiver in reverse, so dispatch to the
// method is observable against the kind rules.
type descending string

func (d *descending) Cmp(other descending) Ordering {
	return Values(string(other), string(*d))
}

type row struct {
	Key descending
}

func (r row) Cmp(other row) Ordering {
	return Cmp(&r.Key, &other.Key)
}

func TestValues_PointerReceiverMethods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     any
		expected Ordering
	}{
		{name: "label", a: TestLabel("b"), b: TestLabel("a"), expected: Greater},
		{name: "descending", a: descending("a"), b: descending("b"), expected: Greater},
		{name: "descending slice", a: []descending{"a"}, b: []descending{"b"}, expected: Greater},
		{name: "descending array", a: [1]descending{"b"}, b: [1]descending{"a"}, expected: Less},
		{name: "field of struct", a: row{Key: "a"}, b: row{Key: "b"}, expected: Greater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Values(tt.a, tt.b))
		})
	}
}

func TestReflectValues_AgreesWithCmp(t *testing.T) {
	t.Parallel()

	a, b := descending("x"), descending("y")

	assert.Equal(t, Cmp(&a, &b), ReflectValues(reflect.ValueOf(a), reflect.ValueOf(b)))
	assert.Equal(t, Cmp(&a, &b), ReflectValues(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem()))
}

type testShape interface {
	isTestShape()
}

type testCircle struct {
	R int
}

type testSquare struct {
	S int
}

func (testCircle) isTestShape() {}
func (testSquare) isTestShape() {}

func cmpTestShape(self, other testShape) Ordering {
	switch s := self.(type) {
	case testCircle:
		if o, ok := other.(testCircle); ok {
			return Values(s.R, o.R)
		}

		return Less
	case testSquare:
		if o, ok := other.(testSquare); ok {
			return Values(s.S, o.S)
		}

		return Greater
	}

	return Equal
}

func init() {
	RegisterSum(cmpTestShape)
}

type testHolder struct {
	Name string
	S    testShape
}

func (h testHolder) Cmp(other testHolder) Ordering {
	if ord := Cmp(&h.Name, &other.Name); ord != Equal {
		return ord
	}

	return Cmp(&h.S, &other.S)
}

func TestRegisterSum_Nested(t *testing.T) {
	t.Parallel()

	circle, square := testShape(testCircle{R: 100}), testShape(testSquare{S: 1})

	t.Run("direct", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, Less, Cmp(&circle, &square))
		assert.True(t, Registered(reflect.TypeFor[testShape]()))
	})

	t.Run("field of product", func(t *testing.T) {
		t.Parallel()

		a := testHolder{Name: "x", S: circle}
		b := testHolder{Name: "x", S: square}
		assert.Equal(t, Less, a.Cmp(b))
		assert.Equal(t, Greater, b.Cmp(a))
		assert.Equal(t, Equal, a.Cmp(a))
	})

	t.Run("slice elements", func(t *testing.T) {
		t.Parallel()

		a := []testShape{testCircle{R: 1}, testSquare{S: 5}}
		b := []testShape{testCircle{R: 1}, testCircle{R: 9}}
		assert.Equal(t, Greater, Cmp(&a, &b))
	})

	t.Run("pointer target", func(t *testing.T) {
		t.Parallel()

		var none *testShape

		some := &square
		assert.Equal(t, Less, Cmp(&none, &some))
		assert.Equal(t, Less, Values(&circle, &square))
	})

	t.Run("same variant", func(t *testing.T) {
		t.Parallel()

		a, b := testShape(testSquare{S: 2}), testShape(testSquare{S: 1})
		assert.Equal(t, Greater, Cmp(&a, &b))
	})
}

type plain struct {
	N int
}

func TestReflectValuesWith_Resolver(t *testing.T) {
	t.Parallel()

	var asked []reflect.Type

	resolve := func(typ reflect.Type) (func(a, b reflect.Value) Ordering, bool) {
		asked = append(asked, typ)
		if typ != reflect.TypeFor[plain]() {
			return nil, false
		}

		return func(a, b reflect.Value) Ordering {
			return ReflectValues(a.Field(0), b.Field(0))
		}, true
	}

	a := []plain{{N: 1}, {N: 2}}
	b := []plain{{N: 1}, {N: 3}}
	assert.Equal(t, Less, ReflectValuesWith(reflect.ValueOf(a), reflect.ValueOf(b), resolve))
	assert.Equal(t, []reflect.Type{reflect.TypeFor[plain](), reflect.TypeFor[plain]()}, asked)

	x, y := &plain{N: 4}, &plain{N: 4}
	assert.Equal(t, Equal, ReflectValuesWith(reflect.ValueOf(x), reflect.ValueOf(y), resolve))

	assert.Panics(t, func() {
		ReflectValuesWith(reflect.ValueOf(unordered{}), reflect.ValueOf(unordered{}), resolve)
	})
	assert.Panics(t, func() {
		ReflectValues(reflect.ValueOf(plain{}), reflect.ValueOf(plain{}))
	})
}
