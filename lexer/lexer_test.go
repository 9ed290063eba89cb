package lexer_test

import (
	"testing"

	"github.com/oarkflow/sqlast/lexer"
)

// ---- helpers ----

func mustTokens(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(src), nil)
	if err != nil {
		t.Fatalf("tokenize error: %v\nSQL: %s", err, src)
	}
	// drop the EOF marker for easier comparisons
	return toks[:len(toks)-1]
}

func wantToken(t *testing.T, got lexer.Token, kind lexer.Kind, text string) {
	t.Helper()
	if got.Kind != kind || got.Text != text {
		t.Fatalf("got token %s %q, want %s %q", got.Kind, got.Text, kind, text)
	}
}

// ---- keywords, identifiers, word operators ----

func TestWordClassification(t *testing.T) {
	cases := []struct {
		src  string
		kind lexer.Kind
	}{
		{"SELECT", lexer.Keyword},
		{"from", lexer.Keyword},
		{"Null", lexer.Keyword},
		{"UPDATE", lexer.Keyword},
		{"having", lexer.Keyword},
		{"AND", lexer.Operator},
		{"or", lexer.Operator},
		{"like", lexer.Operator},
		{"BETWEEN", lexer.Operator},
		{"as", lexer.Operator},
		{"in", lexer.Operator},
		{"glob", lexer.Operator},
		{"TRUE", lexer.Boolean},
		{"false", lexer.Boolean},
		{"users", lexer.Identifier},
		{"_tmp1", lexer.Identifier},
		{"t.col", lexer.Identifier},
	}
	for _, c := range cases {
		toks := mustTokens(t, c.src)
		if len(toks) != 1 {
			t.Fatalf("%q: expected 1 token, got %d", c.src, len(toks))
		}
		wantToken(t, toks[0], c.kind, c.src)
	}
}

func TestIdentifierCasingPreserved(t *testing.T) {
	toks := mustTokens(t, "MyTable")
	wantToken(t, toks[0], lexer.Identifier, "MyTable")
	if !toks[0].Is(lexer.Identifier, "mytable") {
		t.Fatal("token equality should be case-insensitive on text")
	}
}

func TestQualifiedWildcard(t *testing.T) {
	toks := mustTokens(t, "t.*")
	if len(toks) != 1 {
		t.Fatalf("expected 1 token, got %d", len(toks))
	}
	wantToken(t, toks[0], lexer.Identifier, "t.*")
}

// ---- IS NOT merge ----

func TestIsNotMerges(t *testing.T) {
	toks := mustTokens(t, "a IS NOT NULL")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}
	wantToken(t, toks[0], lexer.Identifier, "a")
	wantToken(t, toks[1], lexer.Operator, "IS NOT")
	wantToken(t, toks[2], lexer.Keyword, "NULL")
}

func TestIsNullDoesNotMerge(t *testing.T) {
	toks := mustTokens(t, "a IS NULL")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}
	wantToken(t, toks[0], lexer.Identifier, "a")
	wantToken(t, toks[1], lexer.Keyword, "IS")
	wantToken(t, toks[2], lexer.Keyword, "NULL")
}

func TestIsNotNullRewindKeepsFollowingToken(t *testing.T) {
	// NULLS does not merge: the lookahead word must be fully restored
	toks := mustTokens(t, "a IS NULLS")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}
	wantToken(t, toks[1], lexer.Keyword, "IS")
	wantToken(t, toks[2], lexer.Identifier, "NULLS")
}

// ---- strings ----

func TestStringQuoteDoubling(t *testing.T) {
	toks := mustTokens(t, "'it''s'")
	if len(toks) != 1 {
		t.Fatalf("expected 1 token, got %d", len(toks))
	}
	wantToken(t, toks[0], lexer.String, "it's")
}

func TestStringEscapes(t *testing.T) {
	cases := []struct{ src, want string }{
		{`'a\nb'`, "a\nb"},
		{`'a\tb'`, "a\tb"},
		{`'a\rb'`, "a\rb"},
		{`'a\0b'`, "a\x00b"},
		{`'a\'b'`, "a'b"},
		{`"a\"b"`, `a"b`},
		{`'a\qb'`, "aqb"}, // unknown escape passes through
	}
	for _, c := range cases {
		toks := mustTokens(t, c.src)
		wantToken(t, toks[0], lexer.String, c.want)
	}
}

func TestStringDelimiters(t *testing.T) {
	toks := mustTokens(t, `"double" 'single'`)
	wantToken(t, toks[0], lexer.String, "double")
	wantToken(t, toks[1], lexer.String, "single")
}

func TestUnterminatedString(t *testing.T) {
	_, err := lexer.Tokenize([]byte("'abc"), nil)
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

// ---- numbers ----

func TestNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind lexer.Kind
	}{
		{"0", lexer.Integer},
		{"42", lexer.Integer},
		{"3.14", lexer.Float},
		{"123.", lexer.Float},
		{"1.5e10", lexer.Float},
		{"1.5e+10", lexer.Float},
		{"2.5E-3", lexer.Float},
	}
	for _, c := range cases {
		toks := mustTokens(t, c.src)
		if len(toks) != 1 {
			t.Fatalf("%q: expected 1 token, got %d", c.src, len(toks))
		}
		wantToken(t, toks[0], c.kind, c.src)
	}
}

func TestExponentOnlyAfterFraction(t *testing.T) {
	// without a dot the 'e' starts a new identifier
	toks := mustTokens(t, "1e5")
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %v", len(toks), toks)
	}
	wantToken(t, toks[0], lexer.Integer, "1")
	wantToken(t, toks[1], lexer.Identifier, "e5")
}

func TestInvalidExponent(t *testing.T) {
	for _, src := range []string{"1.5e", "1.5e+", "1.5ex", "1.5e-x"} {
		if _, err := lexer.Tokenize([]byte(src), nil); err == nil {
			t.Fatalf("%q: expected invalid exponent error", src)
		}
	}
}

func TestExponentPunctuationTerminator(t *testing.T) {
	// a punctuation terminator after the marker is a permitted lookahead
	toks := mustTokens(t, "1.5e;")
	wantToken(t, toks[0], lexer.Float, "1.5e")
	wantToken(t, toks[1], lexer.Punct, ";")
}

// ---- operators and punctuation ----

func TestOperators(t *testing.T) {
	toks := mustTokens(t, "+ - * / % & << <= <> >> >= == != || < > = |")
	want := []string{"+", "-", "*", "/", "%", "&", "<<", "<=", "<>", ">>", ">=", "==", "!=", "||", "<", ">", "=", "|"}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i, w := range want {
		wantToken(t, toks[i], lexer.Operator, w)
	}
}

func TestSecondCharNotConsumed(t *testing.T) {
	toks := mustTokens(t, "<5")
	wantToken(t, toks[0], lexer.Operator, "<")
	wantToken(t, toks[1], lexer.Integer, "5")
}

func TestBareBangIsError(t *testing.T) {
	if _, err := lexer.Tokenize([]byte("a ! b"), nil); err == nil {
		t.Fatal("expected error for bare !")
	}
	toks := mustTokens(t, "a != b")
	wantToken(t, toks[1], lexer.Operator, "!=")
}

func TestPunctuation(t *testing.T) {
	toks := mustTokens(t, ". , ( ) ;")
	want := []string{".", ",", "(", ")", ";"}
	for i, w := range want {
		wantToken(t, toks[i], lexer.Punct, w)
	}
}

func TestInvalidByte(t *testing.T) {
	toks := mustTokens(t, "@")
	wantToken(t, toks[0], lexer.Invalid, "@")
}

// ---- whitespace and comments ----

func TestLineComment(t *testing.T) {
	toks := mustTokens(t, "a -- a comment\nb")
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %v", len(toks), toks)
	}
	wantToken(t, toks[0], lexer.Identifier, "a")
	wantToken(t, toks[1], lexer.Identifier, "b")
}

func TestCommentAtEndOfInput(t *testing.T) {
	toks := mustTokens(t, "a -- trailing")
	if len(toks) != 1 {
		t.Fatalf("expected 1 token, got %d", len(toks))
	}
}

func TestLoneMinusIsOperator(t *testing.T) {
	toks := mustTokens(t, "a - b")
	wantToken(t, toks[1], lexer.Operator, "-")
}

// ---- lookahead discipline ----

func TestPeekIsIdempotent(t *testing.T) {
	l := lexer.NewString("SELECT 1")
	p1, err := l.Peek()
	if err != nil {
		t.Fatal(err)
	}
	p2, err := l.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Fatalf("peek not idempotent: %v vs %v", p1, p2)
	}
	n, err := l.Next()
	if err != nil {
		t.Fatal(err)
	}
	if n != p1 {
		t.Fatalf("next returned %v, peeked %v", n, p1)
	}
}

func TestSkipAndSkipAndPeek(t *testing.T) {
	l := lexer.NewString("a b c")
	tok, err := l.Skip() // consume a, return b
	if err != nil {
		t.Fatal(err)
	}
	if tok.Text != "b" {
		t.Fatalf("Skip returned %q, want b", tok.Text)
	}
	tok, err = l.SkipAndPeek() // consume c, peek the end marker
	if err != nil {
		t.Fatal(err)
	}
	if !tok.IsEOF() {
		t.Fatalf("SkipAndPeek returned %q, want EOF", tok.Text)
	}
	if !l.AtEnd() {
		t.Fatal("lexer should be at end")
	}
}

func TestEOFSticky(t *testing.T) {
	l := lexer.NewString("")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !tok.IsEOF() {
			t.Fatalf("call %d: expected EOF, got %v", i, tok)
		}
	}
}

// ---- benchmark ----

var benchSQL = []byte(`SELECT DISTINCT id, name, t.* FROM users, orders
WHERE age >= 18 AND name LIKE 'A%' OR note IS NOT NULL -- filter
GROUP BY dept ORDER BY name DESC;`)

func BenchmarkTokenize(b *testing.B) {
	buf := make([]lexer.Token, 0, 64)
	b.SetBytes(int64(len(benchSQL)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var err error
		buf, err = lexer.Tokenize(benchSQL, buf)
		if err != nil {
			b.Fatal(err)
		}
	}
}
