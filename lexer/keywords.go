package lexer

// Process-wide lexical tables. All are populated once at init and read-only
// afterwards, so they are safe to share across any number of parses.

// keywords is the fixed keyword set. Lookup is on the lowercased text.
var keywords = map[string]struct{}{
	"use":      {},
	"select":   {},
	"where":    {},
	"is":       {},
	"not":      {},
	"null":     {},
	"group":    {},
	"order":    {},
	"by":       {},
	"having":   {},
	"insert":   {},
	"values":   {},
	"update":   {},
	"delete":   {},
	"from":     {},
	"into":     {},
	"case":     {},
	"when":     {},
	"like":     {},
	"between":  {},
	"and":      {},
	"as":       {},
	"distinct": {},
	"true":     {},
	"false":    {},
	"asc":      {},
	"desc":     {},
}

// wordOperators are words that act as binary operators in expressions and
// are therefore emitted with the Operator kind. Bare IS is not listed: the
// merge path in scanWord owns it, and an unmerged IS stays a Keyword so
// that IS NULL keeps its two-token shape.
var wordOperators = map[string]struct{}{
	"is not":  {},
	"in":      {},
	"like":    {},
	"glob":    {},
	"match":   {},
	"regexp":  {},
	"between": {},
	"and":     {},
	"or":      {},
	"as":      {},
}

// escapes maps the character after a backslash inside a string literal to
// its replacement. Characters absent from the table pass through literally.
var escapes = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'0':  0,
	'\'': '\'',
	'"':  '"',
}

// singleOps are bytes that always form a one-character operator.
var singleOps = [256]bool{'+': true, '-': true, '*': true, '/': true, '%': true, '&': true}

// compoundStart are bytes that may begin a two-character operator.
var compoundStart = [256]bool{'<': true, '=': true, '>': true, '!': true, '|': true}

// puncts are the punctuation bytes.
var puncts = [256]bool{'.': true, ',': true, '(': true, ')': true, ';': true}

func isKeyword(text string) bool {
	_, ok := keywords[lowerASCII(text)]
	return ok
}

func isWordOperator(text string) bool {
	_, ok := wordOperators[lowerASCII(text)]
	return ok
}

func isDigit(c int) bool  { return c >= '0' && c <= '9' }
func isLetter(c int) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentStart(c int) bool {
	return isLetter(c) || c == '_'
}
func isIdentCont(c int) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '.'
}
func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
