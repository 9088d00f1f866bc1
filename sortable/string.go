package sortable

import (
	"strings"

	"github.com/amp-labs/amp-derive/compare"
)

type String string

var _ Sortable[String] = (*String)(nil)

func (s String) Equals(other String) bool {
	return string(s) == string(other)
}

func (s String) LessThan(other String) bool {
	return string(s) < string(other)
}

func (s String) Cmp(other String) compare.Ordering {
	return compare.FromInt(strings.Compare(string(s), string(other)))
}
