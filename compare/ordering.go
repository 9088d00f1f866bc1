package compare

import "fmt"

// Ordering is the result of a three-way comparison.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// FromInt maps the sign of an int (as returned by cmp.Compare or strings.Compare)
// onto an Ordering.
func FromInt(n int) Ordering {
	switch {
	case n < 0:
		return Less
	case n > 0:
		return Greater
	default:
		return Equal
	}
}

// Int returns -1, 0 or 1, which is what slices.SortFunc and friends expect.
func (o Ordering) Int() int {
	return int(o)
}

// Reverse swaps Less and Greater. Equal is left alone.
func (o Ordering) Reverse() Ordering {
	return -o
}

// Then returns o unless it is Equal, in which case it returns next.
// Note that next is already evaluated by the time Then is called; generated
// comparators nest their comparisons instead so later fields are skipped.
func (o Ordering) Then(next Ordering) Ordering {
	if o != Equal {
		return o
	}

	return next
}

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	default:
		return fmt.Sprintf("Ordering(%d)", int8(o))
	}
}
