package gogen

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/expr"
)

// converter turns derived expressions into Go syntax.
type converter struct {
	// ordering is the Go type every Match yields.
	ordering ast.Expr
}

func (c *converter) path(p *expr.Path) ast.Expr {
	if p.Package == "" {
		return ast.NewIdent(p.Name)
	}

	return &ast.SelectorExpr{X: ast.NewIdent(p.Package), Sel: ast.NewIdent(p.Name)}
}

// expr converts e for use in expression position. A Match becomes an
// immediately invoked function literal so its Equal arm stays lazy.
func (c *converter) expr(e expr.Expr) (ast.Expr, error) {
	switch e := e.(type) {
	case *expr.Ident:
		return ast.NewIdent(e.Name), nil
	case *expr.Path:
		return c.path(e), nil
	case *expr.Field:
		base, err := c.expr(e.Base)
		if err != nil {
			return nil, err
		}

		return &ast.SelectorExpr{X: base, Sel: ast.NewIdent(e.Name)}, nil
	case *expr.AddrOf:
		target, err := c.expr(e.Target)
		if err != nil {
			return nil, err
		}

		return &ast.UnaryExpr{Op: token.AND, X: target}, nil
	case *expr.Call:
		args := make([]ast.Expr, 0, len(e.Args))

		for _, arg := range e.Args {
			converted, err := c.expr(arg)
			if err != nil {
				return nil, err
			}

			args = append(args, converted)
		}

		return &ast.CallExpr{Fun: c.path(&e.Func), Args: args}, nil
	case *expr.Const:
		return c.path(expr.NewPath(e.Span, orderingPackage, e.Value.String())), nil
	case *expr.Match:
		body, err := c.returns(e)
		if err != nil {
			return nil, err
		}

		return &ast.CallExpr{Fun: &ast.FuncLit{
			Type: &ast.FuncType{Params: &ast.FieldList{}, Results: results(c.ordering)},
			Body: &ast.BlockStmt{List: body},
		}}, nil
	default:
		return nil, fmt.Errorf("%w: cannot render %T", errors.ErrInternalConsistency, e)
	}
}

// returns converts e into statements that return its value. A Match in this
// position becomes an if statement that returns early on a non-Equal result.
func (c *converter) returns(e expr.Expr) ([]ast.Stmt, error) {
	var stmts []ast.Stmt

	for {
		match, ok := e.(*expr.Match)
		if !ok {
			break
		}

		scrutinee, err := c.expr(match.Scrutinee)
		if err != nil {
			return nil, err
		}

		equal := c.path(expr.NewPath(match.Span, orderingPackage, "Equal"))

		stmts = append(stmts, &ast.IfStmt{
			Init: define(ast.NewIdent(match.Binding), scrutinee),
			Cond: &ast.BinaryExpr{X: ast.NewIdent(match.Binding), Op: token.NEQ, Y: equal},
			Body: &ast.BlockStmt{List: []ast.Stmt{
				&ast.ReturnStmt{Results: []ast.Expr{ast.NewIdent(match.Binding)}},
			}},
		})

		e = match.OnEqual
	}

	last, err := c.expr(e)
	if err != nil {
		return nil, err
	}

	return append(stmts, &ast.ReturnStmt{Results: []ast.Expr{last}}), nil
}

func define(lhs, rhs ast.Expr) *ast.AssignStmt {
	return &ast.AssignStmt{Lhs: []ast.Expr{lhs}, Tok: token.DEFINE, Rhs: []ast.Expr{rhs}}
}

func results(typ ast.Expr) *ast.FieldList {
	return &ast.FieldList{List: []*ast.Field{{Type: typ}}}
}

func params(typ ast.Expr, names ...string) *ast.FieldList {
	idents := make([]*ast.Ident, 0, len(names))
	for _, n := range names {
		idents = append(idents, ast.NewIdent(n))
	}

	return &ast.FieldList{List: []*ast.Field{{Names: idents, Type: typ}}}
}
