package sqlast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oarkflow/sqlast/ast"
)

// Render re-serializes an AST back to SQL text. Rendering an already-built
// tree never mutates it; the output re-parses to an equivalent tree.
func Render(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.Script:
		var b strings.Builder
		for i, s := range n.Statements {
			if i > 0 {
				b.WriteByte(' ')
			}
			out, err := Render(s)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}
		return b.String(), nil
	case ast.Statement:
		return renderStatement(n)
	case ast.Expr:
		return renderExpr(n)
	default:
		return "", fmt.Errorf("cannot render node %T", n)
	}
}

func renderStatement(stmt ast.Statement) (string, error) {
	switch s := stmt.(type) {
	case *ast.UseStmt:
		return "USE " + s.Database + ";", nil
	case *ast.SelectStmt:
		return renderSelect(s)
	case *ast.InsertStmt:
		return renderInsert(s)
	case *ast.DeleteStmt:
		return renderDelete(s)
	case *ast.UpdateStmt:
		return "UPDATE;", nil
	default:
		return "", fmt.Errorf("unsupported statement type %T", s)
	}
}

func renderSelect(s *ast.SelectStmt) (string, error) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if s.Distinct {
		b.WriteString("DISTINCT ")
	}
	if err := renderExprList(&b, s.Columns); err != nil {
		return "", err
	}
	b.WriteString(" FROM ")
	for i, f := range s.From {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
	}
	if s.Where != nil {
		out, err := renderExpr(s.Where)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(out)
	}
	if len(s.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		if err := renderExprList(&b, s.GroupBy); err != nil {
			return "", err
		}
	}
	if s.Having != nil {
		out, err := renderExpr(s.Having)
		if err != nil {
			return "", err
		}
		b.WriteString(" HAVING ")
		b.WriteString(out)
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		if err := renderExprList(&b, s.OrderBy); err != nil {
			return "", err
		}
	}
	b.WriteByte(';')
	return b.String(), nil
}

func renderInsert(s *ast.InsertStmt) (string, error) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.Table.Name)
	if len(s.Columns) > 0 {
		b.WriteString(" (")
		if err := renderExprList(&b, s.Columns); err != nil {
			return "", err
		}
		b.WriteByte(')')
	}
	if len(s.Values) > 0 {
		b.WriteString(" VALUES (")
		if err := renderExprList(&b, s.Values); err != nil {
			return "", err
		}
		b.WriteByte(')')
	}
	b.WriteByte(';')
	return b.String(), nil
}

func renderDelete(s *ast.DeleteStmt) (string, error) {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(s.Table.Name)
	if s.Where != nil {
		out, err := renderExpr(s.Where)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(out)
	}
	b.WriteByte(';')
	return b.String(), nil
}

func renderExprList(b *strings.Builder, exprs []ast.Expr) error {
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		out, err := renderExpr(e)
		if err != nil {
			return err
		}
		b.WriteString(out)
	}
	return nil
}

func renderExpr(e ast.Expr) (string, error) {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name, nil

	case *ast.Literal:
		switch x.Kind {
		case ast.LitInt:
			return strconv.FormatInt(x.Int, 10), nil
		case ast.LitFloat:
			return strconv.FormatFloat(x.Float, 'g', -1, 64), nil
		case ast.LitString:
			// quote-doubling keeps embedded quotes lossless
			return "'" + strings.ReplaceAll(x.Str, "'", "''") + "'", nil
		case ast.LitBool:
			if x.Bool {
				return "TRUE", nil
			}
			return "FALSE", nil
		case ast.LitNull:
			return "NULL", nil
		}
		return "", fmt.Errorf("unknown literal kind %d", x.Kind)

	case *ast.FuncCall:
		var b strings.Builder
		b.WriteString(x.Name)
		b.WriteByte('(')
		if err := renderExprList(&b, x.Args); err != nil {
			return "", err
		}
		b.WriteByte(')')
		return b.String(), nil

	case *ast.BinaryExpr:
		left, err := renderExpr(x.Left)
		if err != nil {
			return "", err
		}
		if x.IsUnary() {
			switch {
			case x.Op == "+" || x.Op == "-":
				return x.Op + left, nil
			case strings.EqualFold(x.Op, "asc") || strings.EqualFold(x.Op, "desc"):
				// order-by direction renders postfix
				return left + " " + x.Op, nil
			default:
				return x.Op + " " + left, nil
			}
		}
		right, err := renderExpr(x.Right)
		if err != nil {
			return "", err
		}
		if needsParens(x.Left, x.Op, false) {
			left = "(" + left + ")"
		}
		if needsParens(x.Right, x.Op, true) {
			right = "(" + right + ")"
		}
		return left + " " + x.Op + " " + right, nil

	default:
		return "", fmt.Errorf("unsupported expression type %T", x)
	}
}

// needsParens parenthesizes a binary child that binds looser than its
// parent so the rendered text re-parses with the same shape. The grammar
// is left-associative, so a right operand at equal precedence also needs
// parens or it would regroup to the left on re-parse.
func needsParens(child ast.Expr, parentOp string, right bool) bool {
	bin, ok := child.(*ast.BinaryExpr)
	if !ok || bin.IsUnary() {
		return false
	}
	cp, ok1 := opPrec(bin.Op)
	pp, ok2 := opPrec(parentOp)
	if !ok1 || !ok2 {
		return false
	}
	if right {
		return cp <= pp
	}
	return cp < pp
}

var renderPrec = map[string]int{
	"as": 1, "or": 2, "between": 3, "and": 3,
	"=": 4, "==": 4, "!=": 4, "<>": 4, "<": 4, ">": 4, "<=": 4, ">=": 4,
	"is": 4, "is not": 4, "in": 4, "like": 4, "glob": 4, "match": 4, "regexp": 4,
	"<<": 6, ">>": 6, "&": 6, "|": 6,
	"+": 7, "-": 7,
	"*": 8, "/": 8, "%": 8,
	"||": 9,
}

func opPrec(op string) (int, bool) {
	p, ok := renderPrec[strings.ToLower(op)]
	return p, ok
}
