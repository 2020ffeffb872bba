package lexer

import "testing"

func TestNextTokenBasic(t *testing.T) {
	input := `int x = 5;
	x = x + 10;`

	tests := []struct {
		literal string
		typ     TokenType
	}{
		{"int", INT32KW},
		{"x", IDENT},
		{"=", EQ},
		{"5", INT},
		{";", SEMICOLON},
		{"x", IDENT},
		{"=", EQ},
		{"x", IDENT},
		{"+", PLUS},
		{"10", INT},
		{";", SEMICOLON},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("tests[%d] - type wrong. expected=%v, got=%v (literal=%q)", i, tt.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `class interface enum funcdef namespace if else while for do
		switch case default break continue return const virtual override
		final explicit true false null this super cast in out inout void`

	tests := []struct {
		literal string
		typ     TokenType
	}{
		{"class", CLASS}, {"interface", INTERFACE}, {"enum", ENUM},
		{"funcdef", FUNCDEF}, {"namespace", NAMESPACE}, {"if", IF}, {"else", ELSE},
		{"while", WHILE}, {"for", FOR}, {"do", DO}, {"switch", SWITCH},
		{"case", CASE}, {"default", DEFAULT}, {"break", BREAK}, {"continue", CONTINUE},
		{"return", RETURN}, {"const", CONST}, {"virtual", VIRTUAL}, {"override", OVERRIDE},
		{"final", FINAL}, {"explicit", EXPLICIT}, {"true", TRUE}, {"false", FALSE},
		{"null", NULLKW}, {"this", THIS}, {"super", SUPER}, {"cast", CAST},
		{"in", IN}, {"out", OUT}, {"inout", INOUT}, {"void", VOID},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - got (%v,%q), want (%v,%q)", i, tok.Type, tok.Literal, tt.typ, tt.literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % ** == != <= >= << >> >>> && || ^^ @ :: -> ++ -- += -= *= /= %=`

	tests := []TokenType{
		PLUS, MINUS, ASTERISK, SLASH, PERCENT, POWER, EQEQ, BANGEQ, LESSEQ, GREATEREQ,
		SHL, SHR, USHR, AMPAMP, PIPEPIPE, XORXOR, AT, COLONCOLON, ARROW, INC, DEC,
		PLUSASSIGN, MINUSASSIGN, TIMESASSIGN, DIVASSIGN, MODASSIGN, EOF,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected=%v, got=%v (literal=%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	input := `"hello" 'world'`
	l := New(input)

	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != `"hello"` {
		t.Fatalf("got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != `'world'` {
		t.Fatalf("got %v %q", tok.Type, tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatalf("expected an unterminated string error")
	}
}

func TestFloatLiterals(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"1.5", FLOAT},
		{"1.5f", FLOAT},
		{"1e10", FLOAT},
		{"42", INT},
		{"0x2A", INT},
		{"0b101", INT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.input {
			t.Fatalf("input %q: got (%v,%q)", tt.input, tok.Type, tok.Literal)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("int x;")
	first := l.Peek(0)
	if first.Type != INT32KW {
		t.Fatalf("expected peek to see int, got %v", first.Type)
	}
	tok := l.NextToken()
	if tok.Type != INT32KW {
		t.Fatalf("expected NextToken to return the peeked token, got %v", tok.Type)
	}
}

func TestCommentsSkipped(t *testing.T) {
	input := `// line comment
	int /* block */ x;`
	l := New(input)
	tok := l.NextToken()
	if tok.Type != INT32KW {
		t.Fatalf("expected comments to be skipped, got %v %q", tok.Type, tok.Literal)
	}
}

func TestHandleAndReferenceModifiers(t *testing.T) {
	input := `string@ s; void f(int &in a, int &out b);`
	l := New(input)
	want := []TokenType{STRINGKW, AT, IDENT, SEMICOLON, VOID, IDENT, LPAREN, INT32KW, AMP, IN, IDENT, COMMA, INT32KW, AMP, OUT, IDENT, RPAREN, SEMICOLON, EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("tests[%d] - expected=%v, got=%v (literal=%q)", i, w, tok.Type, tok.Literal)
		}
	}
}
