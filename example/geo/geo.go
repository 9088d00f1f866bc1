// Package geo holds annotated types together with the comparisons derive-ord
// generated for them. Its tests run that generated code.
package geo

import "github.com/amp-labs/amp-derive/compare"

//go:generate go run ../../cmd/derive-ord geo.go

//derive:ord
type Point struct {
	X, Y int
}

//derive:ord
type Unit struct{}

// Shape orders every Circle before every Square.
//
//derive:ord Circle, Square
type Shape interface{ isShape() }

type Circle struct{ Radius int32 }

type Square struct{ Side int32 }

func (Circle) isShape() {}
func (Square) isShape() {}

//derive:ord A, B
type Value interface{ isValue() }

type A struct{}

type B struct{ N int32 }

func (A) isValue() {}
func (B) isValue() {}

// Holder nests a sum inside a product.
//
//derive:ord
type Holder struct {
	Name  string
	Shape Shape
}

// Tree nests a sum inside one of its own variants.
//
//derive:ord Leaf, Branch
type Tree interface{ isTree() }

type Leaf struct{ Value int }

type Branch struct{ Children []Tree }

func (Leaf) isTree()   {}
func (Branch) isTree() {}

// Guarded is ordered by Key alone whenever the keys differ.
//
//derive:ord
type Guarded struct {
	Key  int
	Rest Tripwire
}

// Tripwire panics when compared.
type Tripwire struct{}

func (Tripwire) Cmp(Tripwire) compare.Ordering {
	panic("tripwire compared")
}
