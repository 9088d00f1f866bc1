// Package sortable provides sortable wrapper types for primitive types to implement comparison interfaces.
package sortable

import (
	"github.com/amp-labs/amp-derive/compare"
)

type Sortable[T any] interface {
	compare.Comparable[T]
	compare.Ordered[T]

	LessThan(other T) bool
}
