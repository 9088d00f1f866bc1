// Package source finds types annotated for derivation in Go files and
// registers their descriptors.
//
// A struct is derived as a product type:
//
//	//derive:ord
//	type Point struct{ X, Y int }
//
// An interface is derived as a sum type whose variants are the listed struct
// types, in the listed order:
//
//	//derive:ord Circle, *Square
//	type Shape interface{ isShape() }
//
// Variants are looked up in the file first, then in the other non-test files
// of the same package in the file's directory.
package source

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/expr"
	"github.com/amp-labs/amp-derive/shape"
)

// Directive marks a type for derivation.
const Directive = "//derive:ord"

// File is the result of reading one Go file.
type File struct {
	Path    string
	Package string
	// Types holds the annotated types in declaration order.
	Types []*shape.TypeDescriptor
}

type annotated struct {
	spec *ast.TypeSpec
	args []string
}

type reader struct {
	fset    *token.FileSet
	path    string
	pkg     string
	structs map[string]*ast.TypeSpec
	types   map[string]*ast.TypeSpec

	siblingsLoaded bool
}

// ParseFile reads filename (or src, when non-nil, as go/parser does) and
// registers every annotated type in arena.
func ParseFile(arena *shape.Arena, filename string, src any) (*File, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	r := &reader{
		fset:    fset,
		path:    filename,
		pkg:     file.Name.Name,
		structs: make(map[string]*ast.TypeSpec),
		types:   make(map[string]*ast.TypeSpec),
	}

	var found []annotated

	r.declare(file, func(gen *ast.GenDecl, ts *ast.TypeSpec) {
		doc := ts.Doc
		if doc == nil && len(gen.Specs) == 1 {
			doc = gen.Doc
		}

		if args, ok := directive(doc); ok {
			found = append(found, annotated{spec: ts, args: args})
		}
	})

	out := &File{Path: filename, Package: file.Name.Name}

	for _, a := range found {
		desc, err := r.describe(a)
		if err != nil {
			return nil, err
		}

		desc.Package = file.Name.Name

		id, err := arena.Register(desc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.span(a.spec.Name.Pos()), err)
		}

		out.Types = append(out.Types, arena.Get(id))
	}

	return out, nil
}

// declare records the type declarations of file. A name already declared
// keeps its first declaration.
func (r *reader) declare(file *ast.File, visit func(*ast.GenDecl, *ast.TypeSpec)) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			if _, seen := r.types[ts.Name.Name]; !seen {
				r.types[ts.Name.Name] = ts
				if _, isStruct := ts.Type.(*ast.StructType); isStruct {
					r.structs[ts.Name.Name] = ts
				}
			}

			if visit != nil {
				visit(gen, ts)
			}
		}
	}
}

// loadSiblings declares the types of the other files of the package, once.
// Files that do not parse, test files and files of another package are
// ignored.
func (r *reader) loadSiblings() {
	if r.siblingsLoaded {
		return
	}

	r.siblingsLoaded = true

	dir := filepath.Dir(r.path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	self, _ := filepath.Abs(r.path)

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		path := filepath.Join(dir, name)
		if abs, _ := filepath.Abs(path); abs == self {
			continue
		}

		file, err := parser.ParseFile(r.fset, path, nil, parser.SkipObjectResolution)
		if err != nil || file.Name.Name != r.pkg {
			continue
		}

		r.declare(file, nil)
	}
}

// variant finds the declaration of a variant, looking beyond the file when
// it does not declare the name.
func (r *reader) variant(name string) (*ast.TypeSpec, bool) {
	if _, ok := r.types[name]; !ok {
		r.loadSiblings()
	}

	vs, ok := r.structs[name]

	return vs, ok
}

// directive returns the comma-separated arguments of a derive directive.
func directive(doc *ast.CommentGroup) ([]string, bool) {
	if doc == nil {
		return nil, false
	}

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Directive)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}

		var args []string

		for _, arg := range strings.Split(rest, ",") {
			if arg = strings.TrimSpace(arg); arg != "" {
				args = append(args, arg)
			}
		}

		return args, true
	}

	return nil, false
}

func (r *reader) span(pos token.Pos) expr.Span {
	p := r.fset.Position(pos)

	return expr.Span{File: p.Filename, Line: p.Line, Column: p.Column}
}

func (r *reader) fail(pos token.Pos, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", r.span(pos), errors.ErrInvalidDirective, fmt.Sprintf(format, args...))
}

func (r *reader) describe(a annotated) (shape.TypeDescriptor, error) {
	spec := a.spec
	name := spec.Name.Name

	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return shape.TypeDescriptor{}, r.fail(spec.Name.Pos(), "generic type %s cannot be derived", name)
	}

	switch typ := spec.Type.(type) {
	case *ast.StructType:
		if len(a.args) > 0 {
			return shape.TypeDescriptor{}, r.fail(spec.Name.Pos(),
				"struct %s takes no variants, got %s", name, strings.Join(a.args, ", "))
		}

		desc := shape.NewProduct(name, r.fields(typ)...)
		desc.Span = r.span(spec.Name.Pos())
		desc.Variants[0].Span = desc.Span

		return desc, nil
	case *ast.InterfaceType:
		return r.describeSum(spec, a.args)
	default:
		return shape.TypeDescriptor{}, r.fail(spec.Name.Pos(),
			"%s must be a struct or an interface to be derived", name)
	}
}

func (r *reader) describeSum(spec *ast.TypeSpec, args []string) (shape.TypeDescriptor, error) {
	name := spec.Name.Name

	if len(args) == 0 {
		return shape.TypeDescriptor{}, r.fail(spec.Name.Pos(), "interface %s lists no variants", name)
	}

	variants := make([]shape.VariantDescriptor, 0, len(args))

	for _, arg := range args {
		variantName := strings.TrimPrefix(arg, "*")

		vs, ok := r.variant(variantName)
		if !ok {
			if _, declared := r.types[variantName]; declared {
				return shape.TypeDescriptor{}, r.fail(spec.Name.Pos(), "variant %s of %s is not a struct", arg, name)
			}

			return shape.TypeDescriptor{}, r.fail(spec.Name.Pos(), "unknown variant %s of %s", arg, name)
		}

		if vs.TypeParams != nil && len(vs.TypeParams.List) > 0 {
			return shape.TypeDescriptor{}, r.fail(vs.Name.Pos(), "generic variant %s cannot be derived", arg)
		}

		variant := shape.NewVariant(variantName, r.fields(vs.Type.(*ast.StructType))...) //nolint:forcetypeassert
		variant.TypeExpr = arg
		variant.Span = r.span(vs.Name.Pos())
		variants = append(variants, variant)
	}

	desc := shape.NewSum(name, variants...)
	desc.Span = r.span(spec.Name.Pos())

	return desc, nil
}

// fields describes struct fields in declaration order. Blank fields keep
// their index but are not compared.
func (r *reader) fields(st *ast.StructType) []shape.FieldDescriptor {
	var (
		out   []shape.FieldDescriptor
		index int
	)

	for _, f := range st.Fields.List {
		typ := types.ExprString(f.Type)

		if len(f.Names) == 0 {
			field := shape.NewField(embeddedName(f.Type), index, typ)
			field.Span = r.span(f.Type.Pos())
			out = append(out, field)
			index++

			continue
		}

		for _, n := range f.Names {
			if n.Name != "_" {
				field := shape.NewField(n.Name, index, typ)
				field.Span = r.span(n.Pos())
				out = append(out, field)
			}

			index++
		}
	}

	return out
}

func embeddedName(typ ast.Expr) string {
	switch t := typ.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return types.ExprString(typ)
	}
}
