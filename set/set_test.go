package set

import (
	"hash"
	"testing"

	"github.com/amp-labs/amp-derive/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constantHash sends every element to the same bucket.
func constantHash(hashing.Hashable) (string, error) {
	return "bucket", nil
}

type failingElement struct{}

func (failingElement) UpdateHash(hash.Hash) error { return assert.AnError }

func (failingElement) Equals(failingElement) bool { return true }

func TestStringSet(t *testing.T) {
	t.Parallel()

	s := NewStringSet(hashing.XXH3)

	for _, p := range []string{"dir/file10.go", "dir/file2.go", "dir/file1.go", "dir/file2.go"} {
		require.NoError(t, s.Add(p))
	}

	assert.Equal(t, 3, s.Size())
	assert.Equal(t, []string{"dir/file1.go", "dir/file2.go", "dir/file10.go"}, s.NaturalSortedEntries())

	found, err := s.Contains("dir/file2.go")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Contains("dir/file3.go")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSet_Collision(t *testing.T) {
	t.Parallel()

	s := NewSet[hashing.String](constantHash)

	require.NoError(t, s.AddAll("a", "a"))
	require.ErrorIs(t, s.Add("b"), ErrHashCollision)

	found, err := s.Contains("b")
	require.ErrorIs(t, err, ErrHashCollision)
	assert.True(t, found)
	assert.Equal(t, []hashing.String{"a"}, s.Entries())
}

func TestSet_HashError(t *testing.T) {
	t.Parallel()

	s := NewSet[failingElement](hashing.XXH3)

	require.ErrorIs(t, s.Add(failingElement{}), assert.AnError)

	_, err := s.Contains(failingElement{})
	require.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, s.Size())
}
