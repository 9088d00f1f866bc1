package shape

import (
	"fmt"
	"iter"
	"sync"

	"github.com/amp-labs/amp-derive/errors"
)

// ID addresses a descriptor inside an Arena.
type ID int

// Arena owns registered type descriptors, indexed in registration order.
// Registration validates and freezes a descriptor; lookups are safe for
// concurrent use.
type Arena struct {
	mu     sync.RWMutex
	types  []*TypeDescriptor
	byName map[string]ID
}

func NewArena() *Arena {
	return &Arena{byName: make(map[string]ID)}
}

// Register validates desc, assigns variant tags in declaration order and
// stores it. The caller must not modify desc's slices afterwards.
func (a *Arena) Register(desc TypeDescriptor) (ID, error) {
	if err := validate(&desc); err != nil {
		return -1, err
	}

	for i := range desc.Variants {
		desc.Variants[i].Tag = i
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := qualified(desc.Package, desc.Name)
	if _, found := a.byName[key]; found {
		return -1, fmt.Errorf("%w: type %s is already registered", errors.ErrInvalidDirective, key)
	}

	id := ID(len(a.types))
	a.types = append(a.types, &desc)
	a.byName[key] = id

	return id, nil
}

// Get returns the descriptor for id, or nil if id was never issued.
func (a *Arena) Get(id ID) *TypeDescriptor {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if id < 0 || int(id) >= len(a.types) {
		return nil
	}

	return a.types[id]
}

// Lookup finds a descriptor by package and type name.
func (a *Arena) Lookup(pkg, name string) (ID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	id, ok := a.byName[qualified(pkg, name)]

	return id, ok
}

func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.types)
}

// All yields every descriptor in registration order.
func (a *Arena) All() iter.Seq2[ID, *TypeDescriptor] {
	a.mu.RLock()
	snapshot := append([]*TypeDescriptor(nil), a.types...)
	a.mu.RUnlock()

	return func(yield func(ID, *TypeDescriptor) bool) {
		for i, desc := range snapshot {
			if !yield(ID(i), desc) {
				return
			}
		}
	}
}

func qualified(pkg, name string) string {
	if pkg == "" {
		return name
	}

	return pkg + "." + name
}

func validate(desc *TypeDescriptor) error {
	if desc.Name == "" {
		return fmt.Errorf("%w: type has no name", errors.ErrInvalidDirective)
	}

	switch desc.Kind {
	case ProductType:
		if len(desc.Variants) != 1 {
			return fmt.Errorf("%w: product type %s must have exactly one variant, has %d",
				errors.ErrInvalidDirective, desc.Name, len(desc.Variants))
		}
	case SumType:
		if len(desc.Variants) == 0 {
			return fmt.Errorf("%w: sum type %s lists no variants", errors.ErrInvalidDirective, desc.Name)
		}
	default:
		return fmt.Errorf("%w: type %s has unknown kind %d", errors.ErrInvalidDirective, desc.Name, desc.Kind)
	}

	seen := make(map[string]bool, len(desc.Variants))

	for i := range desc.Variants {
		variant := &desc.Variants[i]
		if seen[variant.Name] {
			return fmt.Errorf("%w: %s lists variant %s twice", errors.ErrInvalidDirective, desc.Name, variant.Name)
		}

		seen[variant.Name] = true

		if variant.TypeExpr == "" {
			variant.TypeExpr = variant.Name
		}

		if err := validateFields(desc.Name, variant); err != nil {
			return err
		}
	}

	return nil
}

func validateFields(typeName string, variant *VariantDescriptor) error {
	last := -1

	for _, field := range variant.Fields {
		if field.Name == "" || field.Name == "_" {
			return fmt.Errorf("%w: %s.%s has an unnamed field at index %d",
				errors.ErrInvalidDirective, typeName, variant.Name, field.Index)
		}

		if field.Index <= last {
			return fmt.Errorf("%w: fields of %s.%s are not in declaration order at %s",
				errors.ErrInvalidDirective, typeName, variant.Name, field.Name)
		}

		last = field.Index
	}

	return nil
}
