// Package hashing fingerprints generated output so unchanged files can be
// left alone.
package hashing

import (
	"encoding/hex"
	"hash"

	"github.com/zeebo/xxh3"
)

// HashFunc takes a Hashable and returns a string form of its hash.
// XXH3 is a HashFunc.
type HashFunc func(hashable Hashable) (string, error)

// Hashable is anything that can write its contents to a hash.Hash.
type Hashable interface {
	UpdateHash(h hash.Hash) error
}

// XXH3 returns the 64-bit xxh3 hash of the given Hashable, hex-encoded.
func XXH3(hashable Hashable) (string, error) {
	h := xxh3.New()

	if err := hashable.UpdateHash(h); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Bytes is file content that can be hashed.
type Bytes []byte

func (b Bytes) UpdateHash(h hash.Hash) error {
	_, err := h.Write(b)

	return err
}

// Same reports whether a and b hash identically under f.
func Same(f HashFunc, a, b Hashable) (bool, error) {
	ha, err := f(a)
	if err != nil {
		return false, err
	}

	hb, err := f(b)
	if err != nil {
		return false, err
	}

	return ha == hb, nil
}

// String is a string that can be hashed and compared.
type String string

func (s String) UpdateHash(h hash.Hash) error {
	_, err := h.Write([]byte(s))

	return err
}

func (s String) Equals(other String) bool {
	return s == other
}
