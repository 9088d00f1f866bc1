//go:build !assertions_disabled

package assert_test

import (
	"testing"

	"github.com/amp-labs/amp-derive/assert"
	"github.com/stretchr/testify/require"
)

func TestTrue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   bool
		args    []any
		message string
	}{
		{name: "no message", value: false, message: "assertion failed"},
		{name: "format string", value: false, args: []any{"variant %q has tag %d", "Circle", 3}, message: `variant "Circle" has tag 3`},
		{name: "non-string first arg", value: false, args: []any{42, "x"}, message: "assertion failed: [42 x]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.PanicsWithValue(t, tt.message, func() {
				assert.True(tt.value, tt.args...)
			})
		})
	}

	require.NotPanics(t, func() { assert.True(true, "never shown") })
}

func TestFalse(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { assert.False(false) })
	require.PanicsWithValue(t, "was true", func() { assert.False(true, "was true") })
}

func TestNotNil(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { assert.NotNil(1) })
	require.PanicsWithValue(t, "missing impl", func() { assert.NotNil(nil, "missing impl") })
}
