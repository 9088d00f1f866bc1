// Package sortable provides wrapper types for primitive types that implement
// the Sortable interface, enabling their use as fields of types whose ordering
// is derived with `//derive:ord`.
//
// # Overview
//
// The sortable package defines the [Sortable] interface and provides ready-to-use
// implementations for common primitive types: [Int], [Byte], and [String].
//
// The Sortable interface extends [github.com/amp-labs/amp-derive/compare.Comparable]
// with [github.com/amp-labs/amp-derive/compare.Ordered] and a LessThan method,
// providing equality, three-way comparison and a strict less-than.
//
// # Usage
//
// Derived comparators call compare.Cmp on every field, and compare.Cmp prefers a
// field's own Cmp method over the builtin order of its kind:
//
//	//derive:ord
//	type Job struct {
//	    Priority sortable.Int
//	    Name     sortable.String
//	}
//
// # Creating Custom Sortable Types
//
// To create a custom sortable type, implement the Sortable interface:
//
//	type Version struct {
//	    Major int
//	    Minor int
//	}
//
//	func (v Version) Equals(other Version) bool {
//	    return v.Major == other.Major && v.Minor == other.Minor
//	}
//
//	func (v Version) Cmp(other Version) compare.Ordering {
//	    if v.Major != other.Major {
//	        return compare.FromInt(cmp.Compare(v.Major, other.Major))
//	    }
//	    return compare.FromInt(cmp.Compare(v.Minor, other.Minor))
//	}
//
//	func (v Version) LessThan(other Version) bool {
//	    return v.Cmp(other) == compare.Less
//	}
//
// # Thread Safety
//
// The wrapper types in this package are value types and are inherently thread-safe.
package sortable
