package sortable

import (
	"testing"

	"github.com/amp-labs/amp-derive/compare"
	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, compare.Less, Int(-3).Cmp(Int(2)))
	assert.Equal(t, compare.Equal, Int(2).Cmp(Int(2)))
	assert.True(t, Int(1).LessThan(Int(2)))
	assert.True(t, Int(5).Equals(Int(5)))
}

func TestByte(t *testing.T) {
	t.Parallel()

	assert.Equal(t, compare.Greater, Byte('z').Cmp(Byte('a')))
	assert.False(t, Byte('z').LessThan(Byte('a')))
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, compare.Less, String("alpha").Cmp(String("beta")))
	assert.Equal(t, compare.Equal, String("").Cmp(String("")))
}

func TestCmpDelegatesToSortable(t *testing.T) {
	t.Parallel()

	a, b := String("b"), String("c")
	assert.Equal(t, compare.Less, compare.Cmp(&a, &b))
}

func TestCmpAgreesWithLessThan(t *testing.T) {
	t.Parallel()

	values := []Int{-2, 0, 0, 7}

	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, a.LessThan(b), a.Cmp(b) == compare.Less)
			assert.Equal(t, a.Equals(b), a.Cmp(b) == compare.Equal)
		}
	}
}
