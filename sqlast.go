// Package sqlast is a SQL front end: it tokenizes and parses a textual
// statement sequence into an abstract syntax tree. It recognizes syntax
// only, with no execution and no schema validation, and is meant for
// downstream tools that need a structured view of SQL text (linters,
// translators, query analyzers).
//
// Usage:
//
//	script, err := sqlast.Parse("SELECT * FROM t WHERE x = 1;")
//	fmt.Print(sqlast.Dump(script))
package sqlast

import (
	"github.com/oarkflow/sqlast/ast"
	"github.com/oarkflow/sqlast/lexer"
	"github.com/oarkflow/sqlast/parser"
)

// Re-export core types so callers only import this package.
type (
	Script      = ast.Script
	Statement   = ast.Statement
	Expr        = ast.Expr
	SelectStmt  = ast.SelectStmt
	InsertStmt  = ast.InsertStmt
	DeleteStmt  = ast.DeleteStmt
	UpdateStmt  = ast.UpdateStmt
	UseStmt     = ast.UseStmt
	Ident       = ast.Ident
	Literal     = ast.Literal
	BinaryExpr  = ast.BinaryExpr
	FuncCall    = ast.FuncCall
	Token       = lexer.Token
	Kind        = lexer.Kind
	LexError    = lexer.LexError
	SyntaxError = parser.SyntaxError
)

// Parse parses a whole SQL script and returns the root node.
func Parse(src string) (*Script, error) {
	return parser.Parse(src)
}

// ParseStatement parses a single SQL statement.
func ParseStatement(src string) (Statement, error) {
	return parser.ParseStatement(src)
}

// ParseExpr parses a single bare expression.
func ParseExpr(src string) (Expr, error) {
	return parser.ParseExpr(src)
}

// Tokenize scans src into the provided buffer, reusing it to avoid
// allocation. The EOF token is appended last.
func Tokenize(src []byte, buf []Token) ([]Token, error) {
	return lexer.Tokenize(src, buf)
}
