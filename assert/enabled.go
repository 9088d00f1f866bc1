//go:build !assertions_disabled

package assert

// True asserts that the given value is true.
// If the assertion fails, it panics with a message.
// The optional args can be used to provide a formatted panic message:
// - If the first arg is a string, it's used as a format string with remaining args.
// - Otherwise, all args are included in the panic message.
func True(value bool, args ...any) {
	if value {
		return
	}

	panic(failure(args))
}

// False asserts that the given value is false.
func False(value bool, args ...any) {
	True(!value, args...)
}

// NotNil asserts that the given value is not nil.
// The optional args are passed to True and follow the same formatting rules.
func NotNil(value any, args ...any) {
	True(value != nil, args...)
}
