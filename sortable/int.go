package sortable

import (
	"cmp"

	"github.com/amp-labs/amp-derive/compare"
)

// Int is a sortable wrapper type for the built-in int type.
// It implements the Sortable[Int] interface, so derived comparators
// delegate to its Cmp method instead of reflecting on the kind.
//
// To convert back to a regular int, use a type conversion:
//
//	var s sortable.Int = 42
//	regularInt := int(s)
type Int int

// Compile-time check that Int implements Sortable[Int].
var _ Sortable[Int] = (*Int)(nil)

// Equals returns true if this Int has the same value as the other Int.
func (i Int) Equals(other Int) bool {
	return int(i) == int(other)
}

// LessThan returns true if this Int is numerically less than the other Int.
func (i Int) LessThan(other Int) bool {
	return int(i) < int(other)
}

// Cmp orders Ints numerically.
func (i Int) Cmp(other Int) compare.Ordering {
	return compare.FromInt(cmp.Compare(int(i), int(other)))
}
