package derive

import (
	"fmt"

	"github.com/amp-labs/amp-derive/expr"
)

// Site names the place a derivation was requested.
type Site struct {
	Span  expr.Span
	Trait string
	Type  string
}

func (s Site) String() string {
	return fmt.Sprintf("derive(%s) for %s at %s", s.Trait, s.Type, s.Span)
}

// Fault aborts the derivation of one type. It wraps the underlying cause,
// which is always errors.ErrInternalConsistency for a well-behaved caller
// handing the driver malformed shapes.
type Fault struct {
	Site Site
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %v", f.Site, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
