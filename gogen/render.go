// Package gogen renders derived implementations as Go source.
//
// Products get a method, sums get a function (Go cannot attach methods to
// interfaces) plus a helper mapping each variant to its tag. Every sum
// function is registered with the compare package from init, so sums nest
// inside other derived types:
//
//	func (self Point) Cmp(other Point) compare.Ordering
//	func CmpShape(self, other Shape) compare.Ordering
//	func init() { compare.RegisterSum(CmpShape) }
package gogen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"strconv"
	"strings"
	"unicode"

	"github.com/amp-labs/amp-derive/assert"
	"github.com/amp-labs/amp-derive/derive"
	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/shape"
)

const orderingPackage = derive.ComparePackage

// DefaultCompareImport is the import path of the compare package that
// generated code calls into.
const DefaultCompareImport = "github.com/amp-labs/amp-derive/compare"

// Options describes the file being generated.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Source is the file the types were declared in, for the header.
	Source string
	// Generator names the tool in the header. Defaults to "derive-ord".
	Generator string
	// CompareImport is the import path of the compare package.
	CompareImport string
}

type renderer struct {
	opts Options
	fset *token.FileSet
	conv *converter
	buf  bytes.Buffer
}

// Render produces one gofmt-ed Go file holding every impl.
func Render(opts Options, impls []*derive.Impl) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("%w: no package name", errors.ErrInvalidDirective)
	}

	if opts.Generator == "" {
		opts.Generator = "derive-ord"
	}

	if opts.CompareImport == "" {
		opts.CompareImport = DefaultCompareImport
	}

	r := &renderer{
		opts: opts,
		fset: token.NewFileSet(),
		conv: &converter{ordering: &ast.SelectorExpr{
			X:   ast.NewIdent(orderingPackage),
			Sel: ast.NewIdent("Ordering"),
		}},
	}

	r.header()

	for _, impl := range impls {
		assert.NotNil(impl, "nil impl handed to gogen")
		assert.NotNil(impl.Type, "impl without a type descriptor")

		for i := range impl.Methods {
			if err := r.method(impl.Type, &impl.Methods[i]); err != nil {
				return nil, err
			}
		}
	}

	out, err := format.Source(r.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: generated code does not format: %w", errors.ErrInternalConsistency, err)
	}

	return out, nil
}

func (r *renderer) printf(format string, args ...any) {
	fmt.Fprintf(&r.buf, format, args...)
}

func (r *renderer) header() {
	source := ""
	if r.opts.Source != "" {
		source = " from " + path.Base(r.opts.Source)
	}

	r.printf("// Code generated by %s%s. DO NOT EDIT.\n\n", r.opts.Generator, source)
	r.printf("package %s\n\n", r.opts.Package)

	if path.Base(r.opts.CompareImport) == orderingPackage {
		r.printf("import %s\n\n", strconv.Quote(r.opts.CompareImport))
	} else {
		r.printf("import %s %s\n\n", orderingPackage, strconv.Quote(r.opts.CompareImport))
	}
}

func (r *renderer) decl(doc string, decl ast.Decl) error {
	if doc != "" {
		for _, line := range strings.Split(doc, "\n") {
			r.printf("// %s\n", line)
		}
	}

	if err := format.Node(&r.buf, r.fset, decl); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInternalConsistency, err)
	}

	r.printf("\n\n")

	return nil
}

func (r *renderer) method(desc *shape.TypeDescriptor, method *derive.MethodImpl) error {
	if desc.Kind == shape.ProductType {
		return r.productMethod(desc, method)
	}

	return r.sumFunc(desc, method)
}

func selfName(def *derive.MethodDef) string {
	if def.Self.Name != "" {
		return def.Self.Name
	}

	return shape.SelfName
}

func otherName(def *derive.MethodDef) string {
	if len(def.Params) > 0 && def.Params[0].Name != "" {
		return def.Params[0].Name
	}

	return shape.OtherName
}

func (r *renderer) productMethod(desc *shape.TypeDescriptor, method *derive.MethodImpl) error {
	body, ok := method.Product()
	if !ok {
		return fmt.Errorf("%w: %s has no product body", errors.ErrInternalConsistency, desc.Name)
	}

	stmts, err := r.conv.returns(body.Expr)
	if err != nil {
		return err
	}

	typ := ast.NewIdent(desc.Name)
	def := &method.Def

	doc := fmt.Sprintf("%s returns the total order of %s relative to %s,\ncomparing fields in declaration order.",
		def.Name, selfName(def), otherName(def))

	return r.decl(doc, &ast.FuncDecl{
		Recv: params(typ, selfName(def)),
		Name: ast.NewIdent(def.Name),
		Type: &ast.FuncType{
			Params:  params(ast.NewIdent(desc.Name), otherName(def)),
			Results: results(r.conv.path(&def.Return)),
		},
		Body: &ast.BlockStmt{List: stmts},
	})
}

func lowerFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}

	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

func tagFuncName(desc *shape.TypeDescriptor) string {
	return lowerFirst(desc.Name) + "OrdTag"
}

func variantType(v *shape.VariantDescriptor) (ast.Expr, error) {
	typ, err := parser.ParseExpr(v.TypeExpr)
	if err != nil {
		return nil, fmt.Errorf("%w: variant type %q: %w", errors.ErrInvalidDirective, v.TypeExpr, err)
	}

	return typ, nil
}

func (r *renderer) sumFunc(desc *shape.TypeDescriptor, method *derive.MethodImpl) error { //nolint:funlen,cyclop
	def := &method.Def
	self, other := selfName(def), otherName(def)

	var (
		stmts     []ast.Stmt
		clauses   []ast.Stmt
		fieldless []ast.Stmt
		bindSelf  bool
	)

	for i := range method.Bodies {
		body := &method.Bodies[i]

		switch body.Shape.Kind {
		case shape.SumCrossVariant:
			cross, err := r.conv.returns(body.Expr)
			if err != nil {
				return err
			}

			tagFn := ast.NewIdent(tagFuncName(desc))
			stmts = append(stmts,
				&ast.AssignStmt{
					Lhs: []ast.Expr{ast.NewIdent(shape.SelfTagName), ast.NewIdent(shape.OtherTagName)},
					Tok: token.DEFINE,
					Rhs: []ast.Expr{
						&ast.CallExpr{Fun: tagFn, Args: []ast.Expr{ast.NewIdent(self)}},
						&ast.CallExpr{Fun: tagFn, Args: []ast.Expr{ast.NewIdent(other)}},
					},
				},
				&ast.IfStmt{
					Cond: &ast.BinaryExpr{
						X:  ast.NewIdent(shape.SelfTagName),
						Op: token.NEQ,
						Y:  ast.NewIdent(shape.OtherTagName),
					},
					Body: &ast.BlockStmt{List: cross},
				})
		case shape.SumVariant:
			variant := &desc.Variants[body.Shape.Tag]

			typ, err := variantType(variant)
			if err != nil {
				return err
			}

			caseBody, err := r.conv.returns(body.Expr)
			if err != nil {
				return err
			}

			if len(body.Shape.Fields) > 0 {
				bindSelf = true
				caseBody = append([]ast.Stmt{
					define(ast.NewIdent(other), &ast.TypeAssertExpr{X: ast.NewIdent(other), Type: typ}),
				}, caseBody...)
			}

			clauses = append(clauses, &ast.CaseClause{List: []ast.Expr{typ}, Body: caseBody})
		case shape.SumFieldless:
			var err error

			fieldless, err = r.conv.returns(body.Expr)
			if err != nil {
				return err
			}
		case shape.Product:
			return fmt.Errorf("%w: product body in sum type %s", errors.ErrInternalConsistency, desc.Name)
		}
	}

	if len(clauses) > 0 {
		var assign ast.Stmt = &ast.ExprStmt{X: &ast.TypeAssertExpr{X: ast.NewIdent(self)}}
		if bindSelf {
			assign = define(ast.NewIdent(self), &ast.TypeAssertExpr{X: ast.NewIdent(self)})
		}

		stmts = append(stmts, &ast.TypeSwitchStmt{Assign: assign, Body: &ast.BlockStmt{List: clauses}})
	}

	if fieldless != nil {
		stmts = append(stmts, fieldless...)
	} else {
		stmts = append(stmts, unreachable(fmt.Sprintf("derive: unreachable %s variant", desc.Name)))
	}

	doc := fmt.Sprintf("%s%s returns the total order of %s relative to %s. Values holding\n"+
		"different variants are ordered by variant declaration order.", def.Name, desc.Name, self, other)

	err := r.decl(doc, &ast.FuncDecl{
		Name: ast.NewIdent(def.Name + desc.Name),
		Type: &ast.FuncType{
			Params:  params(ast.NewIdent(desc.Name), self, other),
			Results: results(r.conv.path(&def.Return)),
		},
		Body: &ast.BlockStmt{List: stmts},
	})
	if err != nil {
		return err
	}

	if _, hasCross := method.CrossVariant(); hasCross {
		if err := r.tagFunc(desc); err != nil {
			return err
		}
	}

	return r.register(def.Name + desc.Name)
}

// register hands a sum comparator to compare.RegisterSum from an init func,
// so that Cmp finds it wherever the sum is nested.
func (r *renderer) register(fn string) error {
	return r.decl("", &ast.FuncDecl{
		Name: ast.NewIdent("init"),
		Type: &ast.FuncType{Params: &ast.FieldList{}},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ExprStmt{X: &ast.CallExpr{
				Fun: &ast.SelectorExpr{
					X:   ast.NewIdent(orderingPackage),
					Sel: ast.NewIdent("RegisterSum"),
				},
				Args: []ast.Expr{ast.NewIdent(fn)},
			}},
		}},
	})
}

func unreachable(msg string) ast.Stmt {
	return &ast.ExprStmt{X: &ast.CallExpr{
		Fun:  ast.NewIdent("panic"),
		Args: []ast.Expr{&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(msg)}},
	}}
}

func (r *renderer) tagFunc(desc *shape.TypeDescriptor) error {
	clauses := make([]ast.Stmt, 0, len(desc.Variants))

	for i := range desc.Variants {
		variant := &desc.Variants[i]

		typ, err := variantType(variant)
		if err != nil {
			return err
		}

		clauses = append(clauses, &ast.CaseClause{
			List: []ast.Expr{typ},
			Body: []ast.Stmt{&ast.ReturnStmt{Results: []ast.Expr{
				&ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(variant.Tag)},
			}}},
		})
	}

	doc := fmt.Sprintf("%s maps each %s variant to its declaration index.", tagFuncName(desc), desc.Name)

	return r.decl(doc, &ast.FuncDecl{
		Name: ast.NewIdent(tagFuncName(desc)),
		Type: &ast.FuncType{
			Params:  params(ast.NewIdent(desc.Name), "v"),
			Results: results(ast.NewIdent("int")),
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.TypeSwitchStmt{
				Assign: &ast.ExprStmt{X: &ast.TypeAssertExpr{X: ast.NewIdent("v")}},
				Body:   &ast.BlockStmt{List: clauses},
			},
			unreachable(fmt.Sprintf("derive: unknown %s variant", desc.Name)),
		}},
	})
}
