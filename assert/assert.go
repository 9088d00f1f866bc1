// Package assert provides panicking invariant checks for conditions that can
// only fail because of a bug in this module. Build with the assertions_disabled
// tag to compile them out.
package assert

import "fmt"

func failure(args []any) string {
	if len(args) == 0 {
		return "assertion failed"
	}

	if format, ok := args[0].(string); ok {
		return fmt.Sprintf(format, args[1:]...)
	}

	return fmt.Sprintf("assertion failed: %v", args)
}
