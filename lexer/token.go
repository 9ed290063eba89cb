// Package lexer provides the SQL tokenizer: a single-pass, byte-oriented
// scanner with one token of lookahead. Tokens carry their lexical class,
// their text, and the byte offset where they started.
package lexer

// Kind classifies a token.
type Kind uint8

const (
	// EOF marks the end of the token stream.
	EOF Kind = iota
	// Invalid is emitted for a byte no lexical rule matches.
	Invalid
	Keyword
	Identifier
	Operator
	Punct
	Integer
	Float
	Boolean
	String
)

var kindNames = [...]string{
	EOF:        "EOF",
	Invalid:    "Invalid",
	Keyword:    "Keyword",
	Identifier: "Identifier",
	Operator:   "Operator",
	Punct:      "Punct",
	Integer:    "Integer",
	Float:      "Float",
	Boolean:    "Boolean",
	String:     "String",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Token is a classified lexeme. Text preserves the original casing;
// string literals hold the decoded value, escapes resolved.
type Token struct {
	Text string
	Kind Kind
	// Pos is the byte offset of the first character in the source.
	Pos int32
}

// Is reports whether the token has the given kind and text.
// The text comparison is ASCII case-insensitive; the kind is exact.
// The parser matches sentinel tokens (FROM, ";", ",") this way.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && equalFold(t.Text, text)
}

// IsText reports whether the token's text matches case-insensitively,
// regardless of kind.
func (t Token) IsText(text string) bool {
	return equalFold(t.Text, text)
}

// IsEOF reports whether the token is the end marker.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// equalFold is an allocation-free, ASCII-only strings.EqualFold.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca == cb {
			continue
		}
		if 'A' <= ca && ca <= 'Z' {
			ca += 32
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 32
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// lowerASCII returns s lowercased, allocating only when s has upper bytes.
func lowerASCII(s string) string {
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
