package gogen

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/amp-labs/amp-derive/compare"
	"github.com/amp-labs/amp-derive/derive"
	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/expr"
	"github.com/amp-labs/amp-derive/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derived(t *testing.T, descs ...shape.TypeDescriptor) []*derive.Impl {
	t.Helper()

	arena := shape.NewArena()
	impls := make([]*derive.Impl, 0, len(descs))

	for _, desc := range descs {
		id, err := arena.Register(desc)
		require.NoError(t, err)

		impl, err := derive.Ord(arena.Get(id))
		require.NoError(t, err)

		impls = append(impls, impl)
	}

	return impls
}

func render(t *testing.T, descs ...shape.TypeDescriptor) string {
	t.Helper()

	out, err := Render(Options{Package: "geo", Source: "/src/geo/types.go"}, derived(t, descs...))
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "types_ord.go", out, parser.AllErrors)
	require.NoError(t, err, "generated code must parse:\n%s", out)

	return string(out)
}

func TestRender_Header(t *testing.T) {
	t.Parallel()

	out := render(t)

	assert.Contains(t, out, "// Code generated by derive-ord from types.go. DO NOT EDIT.\n")
	assert.Contains(t, out, "package geo\n")
	assert.Contains(t, out, `import "github.com/amp-labs/amp-derive/compare"`)
}

func TestRender_CompareImportAlias(t *testing.T) {
	t.Parallel()

	out, err := Render(Options{Package: "geo", CompareImport: "example.com/ordering"}, nil)
	require.NoError(t, err)

	assert.Contains(t, string(out), `import compare "example.com/ordering"`)
}

func TestRender_Product(t *testing.T) {
	t.Parallel()

	out := render(t, shape.NewProduct("Point", shape.NewField("X", 0, "int"), shape.NewField("Y", 1, "int")))

	assert.Contains(t, out, `// Cmp returns the total order of self relative to other,
// comparing fields in declaration order.
func (self Point) Cmp(other Point) compare.Ordering {
	if cmp := compare.Cmp(&self.X, &other.X); cmp != compare.Equal {
		return cmp
	}
	return compare.Cmp(&self.Y, &other.Y)
}`)
}

func TestRender_FieldlessProduct(t *testing.T) {
	t.Parallel()

	out := render(t, shape.NewProduct("Unit"))

	assert.Contains(t, out, `func (self Unit) Cmp(other Unit) compare.Ordering {
	return compare.Equal
}`)
}

func TestRender_Sum(t *testing.T) {
	t.Parallel()

	circle := shape.NewVariant("Circle", shape.NewField("R", 0, "int32"))
	circle.TypeExpr = "*Circle"

	out := render(t, shape.NewSum("Shape",
		circle,
		shape.NewVariant("Square", shape.NewField("Side", 0, "int32")),
		shape.NewVariant("Empty"),
	))

	assert.Contains(t, out, `func CmpShape(self, other Shape) compare.Ordering {
	selfTag, otherTag := shapeOrdTag(self), shapeOrdTag(other)
	if selfTag != otherTag {
		return compare.Cmp(&selfTag, &otherTag)
	}
	switch self := self.(type) {
	case *Circle:
		other := other.(*Circle)
		return compare.Cmp(&self.R, &other.R)
	case Square:
		other := other.(Square)
		return compare.Cmp(&self.Side, &other.Side)
	}
	return compare.Equal
}`)

	assert.Contains(t, out, `func shapeOrdTag(v Shape) int {
	switch v.(type) {
	case *Circle:
		return 0
	case Square:
		return 1
	case Empty:
		return 2
	}
	panic("derive: unknown Shape variant")
}`)
}

func TestRender_SumRegistersComparator(t *testing.T) {
	t.Parallel()

	out := render(t,
		shape.NewProduct("Holder", shape.NewField("Name", 0, "string"), shape.NewField("S", 1, "Shape")),
		shape.NewSum("Shape", shape.NewVariant("Circle", shape.NewField("R", 0, "int")), shape.NewVariant("Square")),
		shape.NewSum("Only", shape.NewVariant("One")),
	)

	assert.Contains(t, out, `panic("derive: unknown Shape variant")
}

func init() {
	compare.RegisterSum(CmpShape)
}`)
	assert.Contains(t, out, `func init() {
	compare.RegisterSum(CmpOnly)
}`)
	assert.Equal(t, 2, strings.Count(out, "func init()"), "products are reached through their Cmp method")
	assert.Less(t, strings.Index(out, "func shapeOrdTag"), strings.Index(out, "compare.RegisterSum(CmpShape)"))
}

func TestRender_AllFieldlessSum(t *testing.T) {
	t.Parallel()

	out := render(t, shape.NewSum("Color", shape.NewVariant("Red"), shape.NewVariant("Green")))

	assert.Contains(t, out, `func CmpColor(self, other Color) compare.Ordering {
	selfTag, otherTag := colorOrdTag(self), colorOrdTag(other)
	if selfTag != otherTag {
		return compare.Cmp(&selfTag, &otherTag)
	}
	return compare.Equal
}`)
}

func TestRender_SumWithoutUnification(t *testing.T) {
	t.Parallel()

	arena := shape.NewArena()
	id, err := arena.Register(shape.NewSum("Value",
		shape.NewVariant("A"),
		shape.NewVariant("B", shape.NewField("N", 0, "int32")),
	))
	require.NoError(t, err)

	trait := derive.OrdTrait(expr.Span{})
	trait.Methods[0].UnifyFieldless = false

	impl, err := derive.Expand(trait, arena.Get(id))
	require.NoError(t, err)

	out, err := Render(Options{Package: "geo"}, []*derive.Impl{impl})
	require.NoError(t, err)

	assert.Contains(t, string(out), `	switch self := self.(type) {
	case A:
		return compare.Equal
	case B:
		other := other.(B)
		return compare.Cmp(&self.N, &other.N)
	}
	panic("derive: unreachable Value variant")`)
}

func TestRender_SingleVariantSum(t *testing.T) {
	t.Parallel()

	out := render(t, shape.NewSum("Only", shape.NewVariant("One", shape.NewField("N", 0, "int"))))

	assert.NotContains(t, out, "onlyOrdTag")
	assert.Contains(t, out, "case One:")
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing package", func(t *testing.T) {
		t.Parallel()

		_, err := Render(Options{}, nil)
		require.ErrorIs(t, err, errors.ErrInvalidDirective)
	})

	t.Run("bad variant type", func(t *testing.T) {
		t.Parallel()

		bad := shape.NewVariant("Bad", shape.NewField("N", 0, "int"))
		bad.TypeExpr = "Bad["

		impls := derived(t, shape.NewSum("Broken", bad, shape.NewVariant("Fine")))

		_, err := Render(Options{Package: "geo"}, impls)
		require.ErrorIs(t, err, errors.ErrInvalidDirective)
	})
}

func TestConverter_MatchInExpressionPosition(t *testing.T) {
	t.Parallel()

	span := expr.Span{}
	inner := expr.NewMatch(span, expr.NewIdent(span, "a"), expr.NewIdent(span, "b"), "cmp")
	outer := expr.NewMatch(span, inner, expr.NewConst(span, compare.Less), "cmp")

	impl := &derive.Impl{
		Type: &shape.TypeDescriptor{Name: "Nested", Kind: shape.ProductType},
		Methods: []derive.MethodImpl{{
			Def:    derive.OrdTrait(span).Methods[0],
			Bodies: []derive.Body{{Shape: shape.Shape{Kind: shape.Product}, Expr: outer}},
		}},
	}

	out, err := Render(Options{Package: "geo"}, []*derive.Impl{impl})
	require.NoError(t, err)

	assert.Contains(t, string(out), `	if cmp := func() compare.Ordering {
		if cmp := a; cmp != compare.Equal {
			return cmp
		}
		return b
	}(); cmp != compare.Equal {
		return cmp
	}
	return compare.Less`)
}
