package expr

import (
	"fmt"
	"strings"
)

// String renders e in a compact, single-line notation intended for logs and
// test failures. Match prints as `match x { Equal => y, cmp => cmp }`.
func String(e Expr) string {
	var sb strings.Builder

	write(&sb, e)

	return sb.String()
}

func write(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Ident:
		sb.WriteString(e.Name)
	case *Path:
		writePath(sb, e)
	case *Field:
		write(sb, e.Base)
		sb.WriteByte('.')
		sb.WriteString(e.Name)
	case *AddrOf:
		sb.WriteByte('&')
		write(sb, e.Target)
	case *Call:
		writePath(sb, &e.Func)
		sb.WriteByte('(')

		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			write(sb, arg)
		}

		sb.WriteByte(')')
	case *Match:
		sb.WriteString("match ")
		write(sb, e.Scrutinee)
		sb.WriteString(" { Equal => ")
		write(sb, e.OnEqual)
		fmt.Fprintf(sb, ", %s => %s }", e.Binding, e.Binding)
	case *Const:
		sb.WriteString("compare.")
		sb.WriteString(e.Value.String())
	case nil:
		sb.WriteString("<nil>")
	default:
		panic(fmt.Sprintf("expr: unknown node %T", e))
	}
}

func writePath(sb *strings.Builder, p *Path) {
	if p.Package != "" {
		sb.WriteString(p.Package)
		sb.WriteByte('.')
	}

	sb.WriteString(p.Name)
}

// Depth returns the number of nested Match nodes along the OnEqual chain,
// which is the number of fields a comparison may have to look at minus one.
func Depth(e Expr) int {
	depth := 0

	for {
		m, ok := e.(*Match)
		if !ok {
			return depth
		}

		depth++
		e = m.OnEqual
	}
}
