// Package eval runs derived expressions directly, without generating code.
//
// The Interpreter walks an expr tree over reflected values. Comparator wraps
// it for one registered Go type: reflection is used once, when the type is
// registered, to build its descriptor; comparisons only evaluate the derived
// bodies.
package eval

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/amp-labs/amp-derive/compare"
	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/expr"
)

// Env binds identifiers to values.
type Env map[string]reflect.Value

// Func is a package-level function callable from a derived expression.
type Func func(args []reflect.Value) (compare.Ordering, error)

// Interpreter evaluates expressions. It is immutable after construction and
// safe for concurrent use.
type Interpreter struct {
	funcs map[string]Func
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithFunc makes fn callable as pkg.name, replacing any existing binding.
func WithFunc(pkg, name string, fn Func) Option {
	return func(in *Interpreter) {
		in.funcs[funcKey(pkg, name)] = fn
	}
}

// NewInterpreter returns an interpreter that knows compare.Cmp.
func NewInterpreter(opts ...Option) *Interpreter {
	in := &Interpreter{funcs: map[string]Func{
		funcKey("compare", "Cmp"): builtinCmp,
	}}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

func funcKey(pkg, name string) string {
	return pkg + "." + name
}

// builtinCmp turns compare.ErrNotOrdered panics into errors. Any other panic,
// such as one raised by a field's own Cmp method, propagates.
func builtinCmp(args []reflect.Value) (compare.Ordering, error) {
	return cmpWith(nil)(args)
}

// nestedError carries the error of a nested derived comparison out through
// compare.ReflectValuesWith, which can only panic.
type nestedError struct {
	err error
}

// cmpWith is builtinCmp with resolve consulted for leaves that compare has no
// rule for.
func cmpWith(resolve compare.Resolver) Func {
	return func(args []reflect.Value) (ord compare.Ordering, err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			if nested, ok := r.(nestedError); ok {
				ord, err = compare.Equal, nested.err

				return
			}

			if rerr, ok := r.(error); ok && stderrors.Is(rerr, compare.ErrNotOrdered) {
				ord, err = compare.Equal, rerr

				return
			}

			panic(r)
		}()

		if len(args) != 2 {
			return compare.Equal, fmt.Errorf("%w: compare.Cmp takes 2 arguments, got %d",
				errors.ErrInternalConsistency, len(args))
		}

		return compare.ReflectValuesWith(args[0], args[1], resolve), nil
	}
}

var orderingType = reflect.TypeFor[compare.Ordering]()

// Ordering evaluates e, which must produce a compare.Ordering.
func (in *Interpreter) Ordering(e expr.Expr, env Env) (compare.Ordering, error) {
	val, err := in.Eval(e, env)
	if err != nil {
		return compare.Equal, err
	}

	if val.Type() != orderingType {
		return compare.Equal, fmt.Errorf("%w: %s evaluated to %s, not an ordering",
			errors.ErrInternalConsistency, expr.String(e), val.Type())
	}

	return compare.Ordering(val.Int()), nil
}

// Eval evaluates e. References evaluate to their referent, since reflected
// values are never copied by the interpreter.
func (in *Interpreter) Eval(e expr.Expr, env Env) (reflect.Value, error) { //nolint:cyclop
	switch e := e.(type) {
	case *expr.Ident:
		val, ok := env[e.Name]
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: unbound identifier %s at %s",
				errors.ErrInternalConsistency, e.Name, e.Span)
		}

		return val, nil
	case *expr.Field:
		base, err := in.Eval(e.Base, env)
		if err != nil {
			return reflect.Value{}, err
		}

		return field(base, e)
	case *expr.AddrOf:
		return in.Eval(e.Target, env)
	case *expr.Call:
		return in.call(e, env)
	case *expr.Match:
		scrutinee, err := in.Ordering(e.Scrutinee, env)
		if err != nil {
			return reflect.Value{}, err
		}

		if scrutinee == compare.Equal {
			return in.Eval(e.OnEqual, env)
		}

		return reflect.ValueOf(scrutinee), nil
	case *expr.Const:
		return reflect.ValueOf(e.Value), nil
	case *expr.Path:
		return reflect.Value{}, fmt.Errorf("%w: bare path %s is not a value",
			errors.ErrInternalConsistency, expr.String(e))
	default:
		return reflect.Value{}, fmt.Errorf("%w: unknown expression %T", errors.ErrInternalConsistency, e)
	}
}

func (in *Interpreter) call(e *expr.Call, env Env) (reflect.Value, error) {
	fn, ok := in.funcs[funcKey(e.Func.Package, e.Func.Name)]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: unknown function %s at %s",
			errors.ErrInternalConsistency, expr.String(&e.Func), e.Span)
	}

	args := make([]reflect.Value, 0, len(e.Args))

	for _, arg := range e.Args {
		val, err := in.Eval(arg, env)
		if err != nil {
			return reflect.Value{}, err
		}

		args = append(args, val)
	}

	ord, err := fn(args)
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(ord), nil
}

func field(base reflect.Value, e *expr.Field) (reflect.Value, error) {
	for base.Kind() == reflect.Pointer || base.Kind() == reflect.Interface {
		if base.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil value reading field %s at %s",
				errors.ErrUnsupported, e.Name, e.Span)
		}

		base = base.Elem()
	}

	if base.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: field %s of non-struct %s at %s",
			errors.ErrInternalConsistency, e.Name, base.Type(), e.Span)
	}

	if e.Index >= 0 && e.Index < base.NumField() && base.Type().Field(e.Index).Name == e.Name {
		return base.Field(e.Index), nil
	}

	val := base.FieldByName(e.Name)
	if !val.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %s has no field %s at %s",
			errors.ErrInternalConsistency, base.Type(), e.Name, e.Span)
	}

	return val, nil
}
