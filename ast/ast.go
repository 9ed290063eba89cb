// Package ast defines the SQL abstract syntax tree built by the parser.
// Nodes are immutable once constructed and exclusively owned by their
// parent; the Script root is owned by the caller after a parse returns.
package ast

// Node is implemented by every AST node.
type Node interface {
	node()
	// Pos returns the byte offset of the node's first token.
	Pos() int32
}

// Statement is a top-level SQL statement.
type Statement interface {
	Node
	stmtNode()
}

// Expr is a SQL expression.
type Expr interface {
	Node
	exprNode()
}

// Script is the root node: the ordered sequence of parsed statements.
type Script struct {
	Statements []Statement
}

func (n *Script) node() {}
func (n *Script) Pos() int32 {
	if len(n.Statements) > 0 {
		return n.Statements[0].Pos()
	}
	return 0
}

// ---- Expressions ----

// Ident is a raw name. It may carry embedded dots for qualified names
// ("t.col") or a trailing ".*" table wildcard, exactly as tokenized.
type Ident struct {
	Name   string
	TokPos int32
}

func (n *Ident) node()      {}
func (n *Ident) exprNode()  {}
func (n *Ident) Pos() int32 { return n.TokPos }

// LiteralKind discriminates the Literal union. The variant itself encodes
// the type; there is no separate tag string.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
	LitNull
)

var literalKindNames = [...]string{
	LitInt:    "int",
	LitFloat:  "float",
	LitString: "string",
	LitBool:   "bool",
	LitNull:   "null",
}

func (k LiteralKind) String() string {
	if int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return "unknown"
}

// Literal is a tagged constant value. Only the field selected by Kind
// is meaningful.
type Literal struct {
	Kind   LiteralKind
	Int    int64
	Float  float64
	Str    string
	Bool   bool
	TokPos int32
}

func (n *Literal) node()      {}
func (n *Literal) exprNode()  {}
func (n *Literal) Pos() int32 { return n.TokPos }

// BinaryExpr is a binary operation, or a prefix unary operation when
// Right is nil (Op then applies to Left).
type BinaryExpr struct {
	Left   Expr
	Right  Expr // nil for unary
	Op     string
	TokPos int32
}

func (n *BinaryExpr) node()      {}
func (n *BinaryExpr) exprNode()  {}
func (n *BinaryExpr) Pos() int32 { return n.TokPos }

// IsUnary reports whether the node is a prefix unary operation.
func (n *BinaryExpr) IsUnary() bool { return n.Right == nil }

// FuncCall is a function invocation.
type FuncCall struct {
	Name   string
	Args   []Expr
	TokPos int32
}

func (n *FuncCall) node()      {}
func (n *FuncCall) exprNode()  {}
func (n *FuncCall) Pos() int32 { return n.TokPos }

// ---- Statements ----

// UseStmt selects a database.
type UseStmt struct {
	Database string
	TokPos   int32
}

func (n *UseStmt) node()      {}
func (n *UseStmt) stmtNode()  {}
func (n *UseStmt) Pos() int32 { return n.TokPos }

// SelectStmt is a SELECT with its six optional clauses. From is never
// empty: a SELECT without FROM is a parse error. Limit is a placeholder
// the current grammar never populates.
type SelectStmt struct {
	Distinct bool
	Columns  []Expr
	From     []*Ident
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []Expr
	Limit    Expr
	TokPos   int32
}

func (n *SelectStmt) node()      {}
func (n *SelectStmt) stmtNode()  {}
func (n *SelectStmt) Pos() int32 { return n.TokPos }

// InsertStmt is INSERT INTO with independently optional column and value
// lists.
type InsertStmt struct {
	Table   *Ident
	Columns []Expr
	Values  []Expr
	TokPos  int32
}

func (n *InsertStmt) node()      {}
func (n *InsertStmt) stmtNode()  {}
func (n *InsertStmt) Pos() int32 { return n.TokPos }

// DeleteStmt is DELETE FROM with an optional condition.
type DeleteStmt struct {
	Table  *Ident
	Where  Expr
	TokPos int32
}

func (n *DeleteStmt) node()      {}
func (n *DeleteStmt) stmtNode()  {}
func (n *DeleteStmt) Pos() int32 { return n.TokPos }

// UpdateStmt is an explicit placeholder: the grammar recognizes the UPDATE
// keyword and its terminator but carries no fields.
type UpdateStmt struct {
	TokPos int32
}

func (n *UpdateStmt) node()      {}
func (n *UpdateStmt) stmtNode()  {}
func (n *UpdateStmt) Pos() int32 { return n.TokPos }
