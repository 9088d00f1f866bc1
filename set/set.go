// Package set holds collections of unique elements keyed by a hash function.
package set

import (
	"errors"

	"facette.io/natsort"
	"github.com/amp-labs/amp-derive/compare"
	"github.com/amp-labs/amp-derive/hashing"
)

// ErrHashCollision is returned when two different elements hash identically.
var ErrHashCollision = errors.New("hashing collision")

// Collectable elements hash themselves and resolve collisions by equality.
type Collectable[T any] interface {
	hashing.Hashable
	compare.Comparable[T]
}

// Set is a collection of unique elements. Uniqueness is decided by the
// HashFunc the Set was created with; a collision between unequal elements is
// an error.
type Set[T Collectable[T]] interface {
	AddAll(elements ...T) error
	// Add inserts element. Adding an element already present is a no-op.
	Add(element T) error
	Contains(element T) (bool, error)
	Size() int
	// Entries returns the elements in no particular order.
	Entries() []T
}

type setImpl[T Collectable[T]] struct {
	hash     hashing.HashFunc
	elements map[string]T
}

func NewSet[T Collectable[T]](hash hashing.HashFunc) Set[T] { //nolint:ireturn
	return &setImpl[T]{
		hash:     hash,
		elements: make(map[string]T),
	}
}

func (s *setImpl[T]) AddAll(elements ...T) error {
	for _, elem := range elements {
		if err := s.Add(elem); err != nil {
			return err
		}
	}

	return nil
}

func (s *setImpl[T]) Add(element T) error {
	hashVal, err := s.hash(element)
	if err != nil {
		return err
	}

	if prev, ok := s.elements[hashVal]; ok {
		if compare.Equals(prev, element) {
			return nil
		}

		return ErrHashCollision
	}

	s.elements[hashVal] = element

	return nil
}

func (s *setImpl[T]) Contains(element T) (bool, error) {
	hashVal, err := s.hash(element)
	if err != nil {
		return false, err
	}

	prev, ok := s.elements[hashVal]
	if !ok {
		return false, nil
	}

	if !compare.Equals(prev, element) {
		return true, ErrHashCollision
	}

	return true, nil
}

func (s *setImpl[T]) Size() int {
	return len(s.elements)
}

func (s *setImpl[T]) Entries() []T {
	items := make([]T, 0, len(s.elements))
	for _, item := range s.elements {
		items = append(items, item)
	}

	return items
}

// StringSet is a Set of strings, such as file paths, with natural ordering.
type StringSet struct {
	set Set[hashing.String]
}

func NewStringSet(hash hashing.HashFunc) *StringSet {
	return &StringSet{set: NewSet[hashing.String](hash)}
}

func (s *StringSet) Add(element string) error {
	return s.set.Add(hashing.String(element))
}

func (s *StringSet) Contains(element string) (bool, error) {
	return s.set.Contains(hashing.String(element))
}

func (s *StringSet) Size() int {
	return s.set.Size()
}

// NaturalSortedEntries returns the elements in natural order, where numbers
// inside strings compare numerically ("file2" before "file10").
func (s *StringSet) NaturalSortedEntries() []string {
	items := make([]string, 0, s.Size())

	for _, item := range s.set.Entries() {
		items = append(items, string(item))
	}

	natsort.Sort(items)

	return items
}
