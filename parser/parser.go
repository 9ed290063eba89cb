// Package parser builds the AST from the token stream: a hand-rolled
// recursive descent parser with single-token lookahead for statements and
// precedence climbing for expressions.
package parser

import (
	"fmt"
	"strconv"

	"github.com/oarkflow/sqlast/ast"
	"github.com/oarkflow/sqlast/lexer"
)

// SyntaxError records a grammar violation with the byte offset of the
// offending token. It is unrecoverable for the current parse.
type SyntaxError struct {
	Msg string
	Pos int32
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// precTable maps operator text (lowercased) to binding strength. Higher
// binds tighter. AS sits below AND on purpose; the asymmetry is part of
// the grammar.
var precTable = map[string]int{
	"as":      1,
	"or":      2,
	"between": 3,
	"and":     3,
	"=":       4,
	"==":      4,
	"!=":      4,
	"<>":      4,
	"<":       4,
	">":       4,
	"<=":      4,
	">=":      4,
	"is":      4,
	"is not":  4,
	"in":      4,
	"like":    4,
	"glob":    4,
	"match":   4,
	"regexp":  4,
	"<<":      6,
	">>":      6,
	"&":       6,
	"|":       6,
	"+":       7,
	"-":       7,
	"*":       8,
	"/":       8,
	"%":       8,
	"||":      9,
}

// operatorPrec returns the binding strength for a token usable as a binary
// operator. Word operators arrive as Operator tokens; bare IS stays a
// Keyword, so both kinds are considered.
func operatorPrec(t lexer.Token) (int, bool) {
	if t.Kind != lexer.Operator && t.Kind != lexer.Keyword {
		return 0, false
	}
	p, ok := precTable[lowerText(t.Text)]
	return p, ok
}

func lowerText(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 32
				}
			}
			return string(b)
		}
	}
	return s
}

// Parser consumes the token stream and produces a Script. A Parser must
// not be shared across concurrent parses.
type Parser struct {
	lex *lexer.Lexer
	tok lexer.Token // current token, one ahead of what was consumed
}

// New creates a Parser over the given SQL bytes.
func New(src []byte) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// NewString creates a Parser over a SQL string.
func NewString(src string) *Parser {
	return &Parser{lex: lexer.NewString(src)}
}

// Reset reuses the parser with new input.
func (p *Parser) Reset(src []byte) {
	p.lex = lexer.New(src)
	p.tok = lexer.Token{}
}

// Parse parses the whole input as a statement sequence and returns the
// root node. The caller owns the tree; any lexical or syntax error aborts
// the parse with no partial result.
func Parse(src string) (*ast.Script, error) {
	return NewString(src).Parse()
}

// ParseStatement parses a single statement.
func ParseStatement(src string) (ast.Statement, error) {
	p := NewString(src)
	if err := p.prime(); err != nil {
		return nil, err
	}
	if p.tok.IsEOF() {
		return nil, p.errorf("empty input")
	}
	return p.parseStatement()
}

// ParseExpr parses a single bare expression, tolerating one trailing ';'.
func ParseExpr(src string) (ast.Expr, error) {
	p := NewString(src)
	if err := p.prime(); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.tok.Is(lexer.Punct, ";") {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	if !p.tok.IsEOF() {
		return nil, p.errorf("unexpected trailing token %q", p.tok.Text)
	}
	return e, nil
}

// Parse parses all statements in the input.
func (p *Parser) Parse() (*ast.Script, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	script := &ast.Script{}
	for !p.tok.IsEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		script.Statements = append(script.Statements, stmt)
	}
	return script, nil
}

// ---- internal helpers ----

// prime pulls the first token so p.tok is always valid during descent.
func (p *Parser) prime() error {
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// advance consumes the current token and returns it.
func (p *Parser) advance() (lexer.Token, error) {
	prev := p.tok
	t, err := p.lex.Next()
	if err != nil {
		return prev, err
	}
	p.tok = t
	return prev, nil
}

// expectPunct consumes the given punctuation or fails.
func (p *Parser) expectPunct(text string) error {
	if !p.tok.Is(lexer.Punct, text) {
		return p.errorf("expected %q, got %q", text, p.tok.Text)
	}
	_, err := p.advance()
	return err
}

// expectKeyword consumes the given keyword or fails.
func (p *Parser) expectKeyword(text string) error {
	if !p.tok.Is(lexer.Keyword, text) {
		return p.errorf("expected %s, got %q", text, p.tok.Text)
	}
	_, err := p.advance()
	return err
}

// expectIdent consumes an identifier or fails.
func (p *Parser) expectIdent() (*ast.Ident, error) {
	if p.tok.Kind != lexer.Identifier {
		return nil, p.errorf("expected identifier, got %q", p.tok.Text)
	}
	t, err := p.advance()
	if err != nil {
		return nil, err
	}
	return &ast.Ident{Name: t.Text, TokPos: t.Pos}, nil
}

// tryKeyword consumes the keyword when present.
func (p *Parser) tryKeyword(text string) (bool, error) {
	if p.tok.Is(lexer.Keyword, text) {
		_, err := p.advance()
		return true, err
	}
	return false, nil
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: p.tok.Pos}
}

// ---- statement dispatch ----

func (p *Parser) parseStatement() (ast.Statement, error) {
	if p.tok.Kind != lexer.Keyword {
		return nil, p.errorf("expected statement keyword, got %q", p.tok.Text)
	}
	switch lowerText(p.tok.Text) {
	case "select":
		return p.parseSelect()
	case "insert":
		return p.parseInsert()
	case "delete":
		return p.parseDelete()
	case "update":
		return p.parseUpdate()
	case "use":
		return p.parseUse()
	default:
		return nil, p.errorf("unexpected keyword %q at start of statement", p.tok.Text)
	}
}

// ---- USE ----

func (p *Parser) parseUse() (*ast.UseStmt, error) {
	kw, err := p.advance()
	if err != nil {
		return nil, err
	}
	db, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ast.UseStmt{Database: db.Name, TokPos: kw.Pos}, nil
}

// ---- INSERT ----

func (p *Parser) parseInsert() (*ast.InsertStmt, error) {
	kw, err := p.advance()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("into"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	stmt := &ast.InsertStmt{Table: table, TokPos: kw.Pos}

	// column list and VALUES list are independently optional
	if p.tok.Is(lexer.Punct, "(") {
		cols, err := p.parseParenExprList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
	}
	ok, err := p.tryKeyword("values")
	if err != nil {
		return nil, err
	}
	if ok {
		vals, err := p.parseParenExprList()
		if err != nil {
			return nil, err
		}
		stmt.Values = vals
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ---- DELETE ----

func (p *Parser) parseDelete() (*ast.DeleteStmt, error) {
	kw, err := p.advance()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	stmt := &ast.DeleteStmt{Table: table, TokPos: kw.Pos}
	ok, err := p.tryKeyword("where")
	if err != nil {
		return nil, err
	}
	if ok {
		cond, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		stmt.Where = cond
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ---- UPDATE ----

// parseUpdate recognizes only the keyword and the terminator. The grammar
// is an explicit unsupported placeholder.
func (p *Parser) parseUpdate() (*ast.UpdateStmt, error) {
	kw, err := p.advance()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ast.UpdateStmt{TokPos: kw.Pos}, nil
}

// ---- SELECT ----

func (p *Parser) parseSelect() (*ast.SelectStmt, error) {
	kw, err := p.advance()
	if err != nil {
		return nil, err
	}
	stmt := &ast.SelectStmt{TokPos: kw.Pos}
	stmt.Distinct, err = p.tryKeyword("distinct")
	if err != nil {
		return nil, err
	}

	cols, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}
	stmt.Columns = cols

	// FROM is mandatory; a SELECT without it is a parse error.
	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	from, err := p.parseFromList()
	if err != nil {
		return nil, err
	}
	stmt.From = from

	// Optional clauses are gated on the statement not having ended: a ';'
	// seen early skips everything that remains.
	if !p.statementEnded() {
		ok, err := p.tryKeyword("where")
		if err != nil {
			return nil, err
		}
		if ok {
			stmt.Where, err = p.parseExpr(0)
			if err != nil {
				return nil, err
			}
		}
	}
	if !p.statementEnded() {
		ok, err := p.tryKeyword("group")
		if err != nil {
			return nil, err
		}
		if ok {
			if !p.tok.Is(lexer.Keyword, "by") {
				return nil, p.errorf("expected BY after GROUP, got %q", p.tok.Text)
			}
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			stmt.GroupBy, err = p.parseExprList()
			if err != nil {
				return nil, err
			}
		}
	}
	if !p.statementEnded() {
		ok, err := p.tryKeyword("having")
		if err != nil {
			return nil, err
		}
		if ok {
			stmt.Having, err = p.parseExpr(0)
			if err != nil {
				return nil, err
			}
		}
	}
	if !p.statementEnded() {
		ok, err := p.tryKeyword("order")
		if err != nil {
			return nil, err
		}
		if ok {
			if !p.tok.Is(lexer.Keyword, "by") {
				return nil, p.errorf("expected BY after ORDER, got %q", p.tok.Text)
			}
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			stmt.OrderBy, err = p.parseOrderItems()
			if err != nil {
				return nil, err
			}
		}
	}

	// trailing ';' is consumed when present; its absence is tolerated only
	// at end of input
	if p.tok.Is(lexer.Punct, ";") {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	} else if !p.tok.IsEOF() {
		return nil, p.errorf("expected \";\", got %q", p.tok.Text)
	}
	return stmt, nil
}

func (p *Parser) statementEnded() bool {
	return p.tok.Is(lexer.Punct, ";") || p.tok.IsEOF()
}

// parseSelectList handles the three select-list shapes: a bare '*', the
// fixed COUNT forms, or a general expression list terminated by FROM.
func (p *Parser) parseSelectList() ([]ast.Expr, error) {
	if p.tok.Is(lexer.Operator, "*") {
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		return []ast.Expr{&ast.Ident{Name: t.Text, TokPos: t.Pos}}, nil
	}
	if p.tok.Kind == lexer.Identifier && p.tok.IsText("count") {
		call, err := p.parseCount()
		if err != nil {
			return nil, err
		}
		return []ast.Expr{call}, nil
	}
	var cols []ast.Expr
	for {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		cols = append(cols, e)
		if !p.tok.Is(lexer.Punct, ",") {
			break
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	return cols, nil
}

// parseCount accepts the fixed shapes COUNT(*), COUNT(ALL|DISTINCT col),
// and COUNT(col). An ALL or DISTINCT qualifier is kept as a unary wrapper
// around the column.
func (p *Parser) parseCount() (*ast.FuncCall, error) {
	name, err := p.advance()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var arg ast.Expr
	switch {
	case p.tok.Is(lexer.Operator, "*"):
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		arg = &ast.Ident{Name: t.Text, TokPos: t.Pos}
	case p.tok.Is(lexer.Keyword, "distinct") || (p.tok.Kind == lexer.Identifier && p.tok.IsText("all")):
		qual, err := p.advance()
		if err != nil {
			return nil, err
		}
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		arg = &ast.BinaryExpr{Left: col, Op: qual.Text, TokPos: qual.Pos}
	default:
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		arg = col
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.FuncCall{Name: name.Text, Args: []ast.Expr{arg}, TokPos: name.Pos}, nil
}

// parseFromList reads the comma-separated table identifiers. The list
// stops at the first clause keyword or ';' without consuming it.
func (p *Parser) parseFromList() ([]*ast.Ident, error) {
	var from []*ast.Ident
	for {
		id, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		from = append(from, id)
		if !p.tok.Is(lexer.Punct, ",") {
			break
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	return from, nil
}

// parseOrderItems reads ORDER BY keys: identifiers with an optional
// ASC/DESC suffix, kept as a unary wrapper around the identifier.
func (p *Parser) parseOrderItems() ([]ast.Expr, error) {
	var items []ast.Expr
	for {
		id, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		var item ast.Expr = id
		if p.tok.Is(lexer.Keyword, "asc") || p.tok.Is(lexer.Keyword, "desc") {
			dir, err := p.advance()
			if err != nil {
				return nil, err
			}
			item = &ast.BinaryExpr{Left: id, Op: dir.Text, TokPos: dir.Pos}
		}
		items = append(items, item)
		if !p.tok.Is(lexer.Punct, ",") {
			break
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// ---- expressions ----

// parseExpr parses one expression with precedence climbing above the
// given floor. Equal-precedence chains associate left.
func (p *Parser) parseExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return p.climb(left, minPrec)
}

func (p *Parser) climb(left ast.Expr, minPrec int) (ast.Expr, error) {
	for {
		prec, ok := operatorPrec(p.tok)
		if !ok || prec <= minPrec {
			return left, nil
		}
		op, err := p.advance()
		if err != nil {
			return nil, err
		}
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		right, err = p.climb(right, prec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Right: right, Op: op.Text, TokPos: op.Pos}
	}
}

// parseAtom reads one primary: an optional +/- prefix, then a
// parenthesized sub-expression, an identifier, or a literal. An atom
// immediately followed by '(' is reinterpreted as a function call; the
// call target must be an identifier.
func (p *Parser) parseAtom() (ast.Expr, error) {
	var prefix *lexer.Token
	if p.tok.Is(lexer.Operator, "+") || p.tok.Is(lexer.Operator, "-") {
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		prefix = &t
	}

	atom, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.tok.Is(lexer.Punct, "(") {
		id, ok := atom.(*ast.Ident)
		if !ok {
			return nil, p.errorf("function call target must be an identifier")
		}
		atom, err = p.parseCallArgs(id)
		if err != nil {
			return nil, err
		}
	}

	if prefix != nil {
		atom = &ast.BinaryExpr{Left: atom, Op: prefix.Text, TokPos: prefix.Pos}
	}
	return atom, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.tok.Kind {
	case lexer.Punct:
		if p.tok.Text == "(" {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return e, nil
		}

	case lexer.Identifier:
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &ast.Ident{Name: t.Text, TokPos: t.Pos}, nil

	case lexer.Integer:
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		v, perr := strconv.ParseInt(t.Text, 10, 64)
		if perr != nil {
			return nil, &SyntaxError{Msg: fmt.Sprintf("invalid integer literal %q", t.Text), Pos: t.Pos}
		}
		return &ast.Literal{Kind: ast.LitInt, Int: v, TokPos: t.Pos}, nil

	case lexer.Float:
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		v, perr := strconv.ParseFloat(normalizeFloat(t.Text), 64)
		if perr != nil {
			return nil, &SyntaxError{Msg: fmt.Sprintf("invalid float literal %q", t.Text), Pos: t.Pos}
		}
		return &ast.Literal{Kind: ast.LitFloat, Float: v, TokPos: t.Pos}, nil

	case lexer.String:
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Kind: ast.LitString, Str: t.Text, TokPos: t.Pos}, nil

	case lexer.Boolean:
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Kind: ast.LitBool, Bool: t.IsText("true"), TokPos: t.Pos}, nil

	case lexer.Keyword:
		if p.tok.IsText("null") {
			t, err := p.advance()
			if err != nil {
				return nil, err
			}
			return &ast.Literal{Kind: ast.LitNull, TokPos: t.Pos}, nil
		}
		return nil, p.errorf("unexpected keyword %q in expression", p.tok.Text)
	}
	return nil, p.errorf("unexpected token %q in expression", p.tok.Text)
}

// normalizeFloat trims a dangling exponent marker left by the tokenizer's
// permitted-terminator lookahead (e.g. "1.5e" before ')').
func normalizeFloat(s string) string {
	for len(s) > 0 {
		switch s[len(s)-1] {
		case '+', '-', 'e', 'E':
			s = s[:len(s)-1]
		case '.':
			// "123." is a valid float token; ParseFloat accepts it
			return s
		default:
			return s
		}
	}
	return s
}

func (p *Parser) parseCallArgs(name *ast.Ident) (*ast.FuncCall, error) {
	if _, err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	call := &ast.FuncCall{Name: name.Name, TokPos: name.TokPos}
	if p.tok.Is(lexer.Punct, ")") {
		_, err := p.advance()
		return call, err
	}
	args, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	call.Args = args
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) parseExprList() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.tok.Is(lexer.Punct, ",") {
			break
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	return exprs, nil
}

func (p *Parser) parseParenExprList() ([]ast.Expr, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	exprs, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return exprs, nil
}
