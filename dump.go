package sqlast

import (
	"fmt"
	"strings"

	"github.com/oarkflow/sqlast/ast"
)

// Dump renders a node as an indented tree for debugging. It visits every
// node and every optional field, and never mutates the tree. The rendering
// is a single visitor over the variant set rather than a per-node method.
func Dump(node ast.Node) string {
	var b strings.Builder
	dumpNode(&b, node, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, node ast.Node, depth int) {
	if node == nil {
		line(b, depth, "<nil>")
		return
	}
	switch n := node.(type) {
	case *ast.Script:
		line(b, depth, "Script (%d statements)", len(n.Statements))
		for _, s := range n.Statements {
			dumpNode(b, s, depth+1)
		}

	case *ast.UseStmt:
		line(b, depth, "Use database=%s", n.Database)

	case *ast.SelectStmt:
		line(b, depth, "Select distinct=%v", n.Distinct)
		line(b, depth+1, "columns:")
		for _, c := range n.Columns {
			dumpNode(b, c, depth+2)
		}
		line(b, depth+1, "from:")
		for _, f := range n.From {
			dumpNode(b, f, depth+2)
		}
		if n.Where != nil {
			line(b, depth+1, "where:")
			dumpNode(b, n.Where, depth+2)
		}
		if len(n.GroupBy) > 0 {
			line(b, depth+1, "group by:")
			for _, g := range n.GroupBy {
				dumpNode(b, g, depth+2)
			}
		}
		if n.Having != nil {
			line(b, depth+1, "having:")
			dumpNode(b, n.Having, depth+2)
		}
		if len(n.OrderBy) > 0 {
			line(b, depth+1, "order by:")
			for _, o := range n.OrderBy {
				dumpNode(b, o, depth+2)
			}
		}
		if n.Limit != nil {
			line(b, depth+1, "limit:")
			dumpNode(b, n.Limit, depth+2)
		}

	case *ast.InsertStmt:
		line(b, depth, "Insert table=%s", n.Table.Name)
		if len(n.Columns) > 0 {
			line(b, depth+1, "columns:")
			for _, c := range n.Columns {
				dumpNode(b, c, depth+2)
			}
		}
		if len(n.Values) > 0 {
			line(b, depth+1, "values:")
			for _, v := range n.Values {
				dumpNode(b, v, depth+2)
			}
		}

	case *ast.DeleteStmt:
		line(b, depth, "Delete table=%s", n.Table.Name)
		if n.Where != nil {
			line(b, depth+1, "where:")
			dumpNode(b, n.Where, depth+2)
		}

	case *ast.UpdateStmt:
		line(b, depth, "Update (unsupported placeholder)")

	case *ast.BinaryExpr:
		if n.IsUnary() {
			line(b, depth, "Unary op=%s", n.Op)
			dumpNode(b, n.Left, depth+1)
		} else {
			line(b, depth, "Binary op=%s", n.Op)
			dumpNode(b, n.Left, depth+1)
			dumpNode(b, n.Right, depth+1)
		}

	case *ast.FuncCall:
		line(b, depth, "Call name=%s", n.Name)
		for _, a := range n.Args {
			dumpNode(b, a, depth+1)
		}

	case *ast.Ident:
		line(b, depth, "Ident %s", n.Name)

	case *ast.Literal:
		switch n.Kind {
		case ast.LitInt:
			line(b, depth, "Literal int %d", n.Int)
		case ast.LitFloat:
			line(b, depth, "Literal float %g", n.Float)
		case ast.LitString:
			line(b, depth, "Literal string %q", n.Str)
		case ast.LitBool:
			line(b, depth, "Literal bool %v", n.Bool)
		case ast.LitNull:
			line(b, depth, "Literal null")
		}

	default:
		line(b, depth, "<unknown node %T>", n)
	}
}

func line(b *strings.Builder, depth int, format string, args ...any) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}
