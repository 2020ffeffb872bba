package lexer

import "github.com/cwbudde/ascript/internal/diag"

// TokenType identifies the lexical category of a Token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	COMMENT

	IDENT
	INT
	FLOAT
	STRING
	BOOL

	literalEnd

	// Keywords - declarations
	CLASS
	INTERFACE
	ENUM
	FUNCDEF
	NAMESPACE
	MIXIN
	TYPEDEF
	IMPORT
	FROM
	FUNCTION

	// Keywords - control flow
	IF
	ELSE
	WHILE
	DO
	FOR
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	RETURN

	// Keywords - modifiers
	CONST
	PRIVATE
	PROTECTED
	PUBLIC
	VIRTUAL
	OVERRIDE
	FINAL
	EXPLICIT
	PROPERTY
	SHARED
	EXTERNAL
	ABSTRACT

	// Keywords - values and expressions
	TRUE
	FALSE
	NULLKW
	THIS
	SUPER
	CAST
	IN
	OUT
	INOUT
	VOID

	// Keywords - primitive type names
	BOOLTYPE
	INT8
	INT16
	INT32KW
	INT64KW
	UINT8
	UINT16
	UINT32KW
	UINT64KW
	FLOATKW
	DOUBLEKW
	STRINGKW

	keywordEnd

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACK
	RBRACK
	SEMICOLON
	COMMA
	DOT
	COLON
	COLONCOLON
	QUESTION
	AT

	// Operators
	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	POWER
	AMP
	PIPE
	CARET
	TILDE
	SHL
	SHR
	USHR
	BANG
	AMPAMP
	PIPEPIPE
	XORXOR

	EQ
	EQEQ
	BANGEQ
	LESS
	LESSEQ
	GREATER
	GREATEREQ

	ASSIGN
	PLUSASSIGN
	MINUSASSIGN
	TIMESASSIGN
	DIVASSIGN
	MODASSIGN
	POWASSIGN
	ANDASSIGN
	ORASSIGN
	XORASSIGN
	SHLASSIGN
	SHRASSIGN
	USHRASSIGN

	INC
	DEC
	ARROW
	HANDLE // @ used postfix as a type suffix is the same AT token; HANDLE is reserved for future use
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING", BOOL: "BOOL",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACK: "[", RBRACK: "]",
	SEMICOLON: ";", COMMA: ",", DOT: ".", COLON: ":", COLONCOLON: "::",
	QUESTION: "?", AT: "@",
}

func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	if n, ok := keywords[t]; ok {
		return n
	}
	return "tok"
}

// keywords maps a TokenType back to its literal spelling, built from the
// reverse of the keyword lookup table below.
var keywords map[TokenType]string

// keywordLookup maps a lowercase identifier spelling to its keyword
// TokenType. Identifiers are compared case-sensitively against this
// table: the grammar's keywords are fixed ASCII spellings.
var keywordLookup = map[string]TokenType{
	"class": CLASS, "interface": INTERFACE, "enum": ENUM, "funcdef": FUNCDEF,
	"namespace": NAMESPACE, "mixin": MIXIN, "typedef": TYPEDEF,
	"import": IMPORT, "from": FROM, "function": FUNCTION,
	"if": IF, "else": ELSE, "while": WHILE, "do": DO, "for": FOR,
	"switch": SWITCH, "case": CASE, "default": DEFAULT,
	"break": BREAK, "continue": CONTINUE, "return": RETURN,
	"const": CONST, "private": PRIVATE, "protected": PROTECTED, "public": PUBLIC,
	"virtual": VIRTUAL, "override": OVERRIDE, "final": FINAL, "explicit": EXPLICIT,
	"property": PROPERTY, "shared": SHARED, "external": EXTERNAL, "abstract": ABSTRACT,
	"true": TRUE, "false": FALSE, "null": NULLKW, "this": THIS, "super": SUPER,
	"cast": CAST, "in": IN, "out": OUT, "inout": INOUT, "void": VOID,
	"bool": BOOLTYPE, "int8": INT8, "int16": INT16, "int": INT32KW, "int64": INT64KW,
	"uint8": UINT8, "uint16": UINT16, "uint": UINT32KW, "uint64": UINT64KW,
	"float": FLOATKW, "double": DOUBLEKW, "string": STRINGKW,
}

func init() {
	keywords = make(map[TokenType]string, len(keywordLookup))
	for spelling, tt := range keywordLookup {
		keywords[tt] = spelling
	}
}

// LookupIdent classifies an identifier-shaped lexeme as a keyword
// TokenType or, if it names no keyword, as IDENT.
func LookupIdent(lit string) TokenType {
	if tt, ok := keywordLookup[lit]; ok {
		return tt
	}
	return IDENT
}

// Token is one lexical unit: its type, the exact source text it
// covers, and its starting position.
type Token struct {
	Type    TokenType
	Literal string
	Span    diag.Span
}

func NewToken(tt TokenType, literal string, sp diag.Span) Token {
	return Token{Type: tt, Literal: literal, Span: sp}
}

func (t Token) String() string {
	if t.Literal != "" {
		return t.Literal
	}
	return t.Type.String()
}
