package lexer

import "fmt"

// LexError records a lexical failure with the byte offset where the
// scanner stopped.
type LexError struct {
	Msg string
	Pos int32
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Pos, e.Msg)
}

// Lexer turns raw bytes into a lazy token sequence. Exactly one token of
// lookahead is buffered; Peek is idempotent. A Lexer must not be shared
// across concurrent parses.
type Lexer struct {
	s      *stream
	buf    Token
	hasBuf bool
}

// New creates a Lexer over the given bytes.
func New(src []byte) *Lexer {
	return &Lexer{s: newStream(src)}
}

// NewString creates a Lexer over a string.
func NewString(src string) *Lexer {
	return New([]byte(src))
}

// Next consumes and returns the next token. At end of input it returns
// the EOF token; calling Next again keeps returning it.
func (l *Lexer) Next() (Token, error) {
	if l.hasBuf {
		l.hasBuf = false
		return l.buf, nil
	}
	return l.scan()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if !l.hasBuf {
		tok, err := l.scan()
		if err != nil {
			return tok, err
		}
		l.buf = tok
		l.hasBuf = true
	}
	return l.buf, nil
}

// Skip consumes the next token and returns the one after it.
func (l *Lexer) Skip() (Token, error) {
	if _, err := l.Next(); err != nil {
		return Token{}, err
	}
	return l.Next()
}

// SkipAndPeek consumes the next token and peeks the one after it.
func (l *Lexer) SkipAndPeek() (Token, error) {
	if _, err := l.Next(); err != nil {
		return Token{}, err
	}
	return l.Peek()
}

// Pos returns the current byte offset into the source.
func (l *Lexer) Pos() int32 {
	if l.hasBuf {
		return l.buf.Pos
	}
	return int32(l.s.offset())
}

// AtEnd reports whether the token stream is exhausted.
func (l *Lexer) AtEnd() bool {
	tok, err := l.Peek()
	return err != nil || tok.IsEOF()
}

func (l *Lexer) errorf(pos int, format string, args ...any) *LexError {
	return &LexError{Msg: fmt.Sprintf(format, args...), Pos: int32(pos)}
}

// scan produces the next token from the character stream.
func (l *Lexer) scan() (Token, error) {
	l.skipSpaceAndComments()

	pos := l.s.offset()
	c := l.s.peek()
	switch {
	case c == eof:
		return Token{Kind: EOF, Pos: int32(pos)}, nil

	case c == '"' || c == '\'':
		return l.scanString(pos)

	case isDigit(c):
		return l.scanNumber(pos)

	case singleOps[byte(c)] || compoundStart[byte(c)]:
		return l.scanOperator(pos)

	case puncts[byte(c)]:
		l.s.next()
		return Token{Kind: Punct, Text: string(byte(c)), Pos: int32(pos)}, nil

	case isIdentStart(c):
		return l.scanWord(pos)

	default:
		l.s.next()
		return Token{Kind: Invalid, Text: string(byte(c)), Pos: int32(pos)}, nil
	}
}

// skipSpaceAndComments alternates between whitespace runs and -- line
// comments until neither applies. A lone '-' is pushed back for the
// operator rule.
func (l *Lexer) skipSpaceAndComments() {
	for {
		c := l.s.peek()
		if isSpace(c) {
			l.s.next()
			continue
		}
		if c == '-' {
			l.s.next()
			if l.s.peek() == '-' {
				for {
					c = l.s.next()
					if c == eof || c == '\n' {
						break
					}
				}
				continue
			}
			l.s.pushBack(1)
		}
		return
	}
}

// scanString reads a quoted literal. The opening quote character is the
// closing delimiter. Escapes from the escape table are decoded, unknown
// escapes pass through, and a doubled delimiter inside the string is one
// literal quote character.
func (l *Lexer) scanString(pos int) (Token, error) {
	delim := byte(l.s.next())
	var out []byte
	for {
		c := l.s.next()
		if c == eof {
			return Token{}, l.errorf(pos, "unterminated string literal")
		}
		if byte(c) == delim {
			if l.s.peek() == int(delim) {
				l.s.next()
				out = append(out, delim)
				continue
			}
			break
		}
		if c == '\\' {
			e := l.s.next()
			if e == eof {
				return Token{}, l.errorf(pos, "unterminated string literal")
			}
			if rep, ok := escapes[byte(e)]; ok {
				out = append(out, rep)
			} else {
				out = append(out, byte(e))
			}
			continue
		}
		out = append(out, byte(c))
	}
	return Token{Kind: String, Text: string(out), Pos: int32(pos)}, nil
}

// scanNumber reads an integer, or a float once a '.' follows the integer
// part. The exponent marker demands a digit run unless a punctuation
// terminator immediately follows it.
func (l *Lexer) scanNumber(pos int) (Token, error) {
	var out []byte
	for isDigit(l.s.peek()) {
		out = append(out, byte(l.s.next()))
	}
	if l.s.peek() != '.' {
		return Token{Kind: Integer, Text: string(out), Pos: int32(pos)}, nil
	}
	out = append(out, byte(l.s.next()))
	if isDigit(l.s.peek()) {
		for isDigit(l.s.peek()) {
			out = append(out, byte(l.s.next()))
		}
		if c := l.s.peek(); c == 'e' || c == 'E' {
			out = append(out, byte(l.s.next()))
			if c := l.s.peek(); c == '+' || c == '-' {
				out = append(out, byte(l.s.next()))
			}
			if !isDigit(l.s.peek()) {
				if c := l.s.peek(); c == eof || !puncts[byte(c)] {
					return Token{}, l.errorf(l.s.offset(), "Invalid floating-point exponent")
				}
			}
			for isDigit(l.s.peek()) {
				out = append(out, byte(l.s.next()))
			}
		}
	}
	// a bare trailing '.' still yields a float token ("123.")
	return Token{Kind: Float, Text: string(out), Pos: int32(pos)}, nil
}

// scanOperator reads a one- or two-character operator. A second character
// that does not complete a known pair is left unconsumed.
func (l *Lexer) scanOperator(pos int) (Token, error) {
	c := byte(l.s.next())
	if singleOps[c] {
		return Token{Kind: Operator, Text: string(c), Pos: int32(pos)}, nil
	}
	p := l.s.peek()
	switch c {
	case '<':
		if p == '<' || p == '=' || p == '>' {
			l.s.next()
			return Token{Kind: Operator, Text: string([]byte{c, byte(p)}), Pos: int32(pos)}, nil
		}
	case '>':
		if p == '>' || p == '=' {
			l.s.next()
			return Token{Kind: Operator, Text: string([]byte{c, byte(p)}), Pos: int32(pos)}, nil
		}
	case '=':
		if p == '=' {
			l.s.next()
			return Token{Kind: Operator, Text: "==", Pos: int32(pos)}, nil
		}
	case '!':
		if p == '=' {
			l.s.next()
			return Token{Kind: Operator, Text: "!=", Pos: int32(pos)}, nil
		}
		return Token{}, l.errorf(pos, "Invalid operator !")
	case '|':
		if p == '|' {
			l.s.next()
			return Token{Kind: Operator, Text: "||", Pos: int32(pos)}, nil
		}
	}
	return Token{Kind: Operator, Text: string(c), Pos: int32(pos)}, nil
}

// scanWord reads an identifier or keyword: a maximal run of letters,
// digits, underscores, and dots. It handles the IS NOT merge, the
// table.* wildcard suffix, and keyword classification.
func (l *Lexer) scanWord(pos int) (Token, error) {
	var out []byte
	out = append(out, byte(l.s.next()))
	for isIdentCont(l.s.peek()) {
		out = append(out, byte(l.s.next()))
	}
	text := string(out)

	// IS followed by NOT merges into one operator token so the precedence
	// table sees a single "IS NOT". IS NULL must not merge, so the lookahead
	// word is re-read speculatively and the cursor restored on mismatch.
	if equalFold(text, "is") {
		for isSpace(l.s.peek()) {
			l.s.next()
		}
		if c := l.s.peek(); c == 'N' || c == 'n' {
			cp := l.s.mark()
			var ahead []byte
			for isIdentCont(l.s.peek()) {
				ahead = append(ahead, byte(l.s.next()))
			}
			if equalFold(string(ahead), "not") {
				return Token{Kind: Operator, Text: text + " " + string(ahead), Pos: int32(pos)}, nil
			}
			l.s.resetTo(cp)
		}
		return Token{Kind: Keyword, Text: text, Pos: int32(pos)}, nil
	}

	// qualified wildcard: "table." followed by '*' becomes "table.*"
	if out[len(out)-1] == '.' && l.s.peek() == '*' {
		l.s.next()
		text += "*"
		return Token{Kind: Identifier, Text: text, Pos: int32(pos)}, nil
	}

	switch {
	case isWordOperator(text):
		return Token{Kind: Operator, Text: text, Pos: int32(pos)}, nil
	case equalFold(text, "true") || equalFold(text, "false"):
		return Token{Kind: Boolean, Text: text, Pos: int32(pos)}, nil
	case isKeyword(text):
		return Token{Kind: Keyword, Text: text, Pos: int32(pos)}, nil
	default:
		return Token{Kind: Identifier, Text: text, Pos: int32(pos)}, nil
	}
}

// Tokenize scans all of src into the provided buffer, which is reused to
// avoid allocation. The EOF token is appended last. It stops early on a
// lexical error and returns what was scanned along with the error.
func Tokenize(src []byte, buf []Token) ([]Token, error) {
	buf = buf[:0]
	l := New(src)
	for {
		t, err := l.Next()
		if err != nil {
			return buf, err
		}
		buf = append(buf, t)
		if t.IsEOF() {
			return buf, nil
		}
	}
}
