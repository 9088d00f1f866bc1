package fold

import (
	"errors"
	"testing"

	"github.com/amp-labs/amp-derive/compare"
	commonerrors "github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/expr"
	"github.com/amp-labs/amp-derive/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Callback that renders every step as a readable expression and
// remembers the order in which Single steps were requested.
type recorder struct {
	singles []string
	failOn  string
}

var errBoom = errors.New("boom")

func (r *recorder) Single(step Single) (expr.Expr, error) {
	r.singles = append(r.singles, step.Field.Name)

	if step.Field.Name == r.failOn {
		return nil, errBoom
	}

	return expr.NewIdent(step.Field.Span, step.Field.Name), nil
}

func (r *recorder) Combine(step Combine) (expr.Expr, error) {
	return expr.NewMatch(step.Span, step.First, step.Second, "c"), nil
}

func (r *recorder) Fieldless(step Fieldless) (expr.Expr, error) {
	return expr.NewConst(step.Span, compare.Equal), nil
}

func (r *recorder) CrossVariant(step CrossVariant) (expr.Expr, error) {
	return expr.NewCall(step.Span, *expr.NewPath(step.Span, "", "tags"), step.Tags...), nil
}

func fields(names ...string) []shape.FieldRef {
	refs := make([]shape.FieldRef, 0, len(names))
	for _, n := range names {
		refs = append(refs, shape.FieldRef{Name: n})
	}

	return refs
}

func TestFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fields   []shape.FieldRef
		expected string
	}{
		{
			name:     "empty is fieldless",
			expected: "compare.Equal",
		},
		{
			name:     "single field",
			fields:   fields("a"),
			expected: "a",
		},
		{
			name:     "first field is outermost",
			fields:   fields("a", "b", "c"),
			expected: "match a { Equal => match b { Equal => c, c => c }, c => c }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Fields(&recorder{}, expr.Span{}, tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr.String(got))
		})
	}
}

func TestFields_PreservesOrder(t *testing.T) {
	t.Parallel()

	names := []string{"f1", "f2", "f3", "f4", "f5"}
	rec := &recorder{}

	got, err := Fields(rec, expr.Span{}, fields(names...))
	require.NoError(t, err)

	// The tree nests in declaration order regardless of translation order.
	var order []string

	for e := got; ; {
		m, ok := e.(*expr.Match)
		if !ok {
			order = append(order, expr.String(e))

			break
		}

		order = append(order, expr.String(m.Scrutinee))
		e = m.OnEqual
	}

	assert.Equal(t, names, order)
	assert.Equal(t, len(names)-1, expr.Depth(got))
	assert.ElementsMatch(t, names, rec.singles)
}

func TestFields_PropagatesErrors(t *testing.T) {
	t.Parallel()

	_, err := Fields(&recorder{failOn: "b"}, expr.Span{}, fields("a", "b", "c"))
	require.ErrorIs(t, err, errBoom)
}

func TestFold_Shapes(t *testing.T) {
	t.Parallel()

	tags := []expr.Expr{expr.NewIdent(expr.Span{}, "selfTag"), expr.NewIdent(expr.Span{}, "otherTag")}

	tests := []struct {
		name     string
		shape    shape.Shape
		expected string
	}{
		{
			name:     "product",
			shape:    shape.Shape{Kind: shape.Product, Fields: fields("x", "y")},
			expected: "match x { Equal => y, c => c }",
		},
		{
			name:     "fieldless product",
			shape:    shape.Shape{Kind: shape.Product},
			expected: "compare.Equal",
		},
		{
			name:     "sum variant",
			shape:    shape.Shape{Kind: shape.SumVariant, Variant: "Circle", Fields: fields("r")},
			expected: "r",
		},
		{
			name:     "unified fieldless variants",
			shape:    shape.Shape{Kind: shape.SumFieldless, Tags: []int{0, 2}},
			expected: "compare.Equal",
		},
		{
			name:     "cross variant",
			shape:    shape.Shape{Kind: shape.SumCrossVariant, TagExprs: tags},
			expected: "tags(selfTag, otherTag)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Fold(&recorder{}, tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr.String(got))
		})
	}
}

func TestFold_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := Fold(&recorder{}, shape.Shape{Kind: shape.Kind(42), Type: "Mystery"})
	require.ErrorIs(t, err, commonerrors.ErrInternalConsistency)
	assert.Contains(t, err.Error(), "Mystery")
}
