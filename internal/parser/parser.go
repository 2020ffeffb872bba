// Package parser builds an internal/ast tree from a internal/lexer
// token stream. Like the lexer, it never stops at the first syntax
// error: it accumulates diagnostics in a diag.Bag and resynchronizes
// at the next statement or item boundary so later items still parse.
package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/lexer"
)

// Precedence levels, lowest to highest. Assignment, the ternary
// operator and '**' are right-associative; everything else climbs left
// to right.
const (
	_ int = iota
	LOWEST
	ASSIGN
	TERNARY
	LOGOR
	LOGXOR
	LOGAND
	BITOR
	BITXOR
	BITAND
	EQUALITY
	COMPARE
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	POWER
	UNARY
	POSTFIX
)

var precedences = map[lexer.TokenType]int{
	lexer.EQ: ASSIGN, lexer.PLUSASSIGN: ASSIGN, lexer.MINUSASSIGN: ASSIGN,
	lexer.TIMESASSIGN: ASSIGN, lexer.DIVASSIGN: ASSIGN, lexer.MODASSIGN: ASSIGN,
	lexer.POWASSIGN: ASSIGN, lexer.ANDASSIGN: ASSIGN, lexer.ORASSIGN: ASSIGN,
	lexer.XORASSIGN: ASSIGN, lexer.SHLASSIGN: ASSIGN, lexer.SHRASSIGN: ASSIGN,
	lexer.USHRASSIGN: ASSIGN,

	lexer.QUESTION: TERNARY,
	lexer.PIPEPIPE: LOGOR,
	lexer.XORXOR:   LOGXOR,
	lexer.AMPAMP:   LOGAND,
	lexer.PIPE:     BITOR,
	lexer.CARET:    BITXOR,
	lexer.AMP:      BITAND,

	lexer.EQEQ: EQUALITY, lexer.BANGEQ: EQUALITY,
	lexer.LESS: COMPARE, lexer.LESSEQ: COMPARE, lexer.GREATER: COMPARE, lexer.GREATEREQ: COMPARE,
	lexer.SHL: SHIFT, lexer.SHR: SHIFT, lexer.USHR: SHIFT,
	lexer.PLUS: ADDITIVE, lexer.MINUS: ADDITIVE,
	lexer.ASTERISK: MULTIPLICATIVE, lexer.SLASH: MULTIPLICATIVE, lexer.PERCENT: MULTIPLICATIVE,
	lexer.POWER: POWER,
	lexer.DOT:   POSTFIX, lexer.LBRACK: POSTFIX, lexer.LPAREN: POSTFIX,
	lexer.INC: POSTFIX, lexer.DEC: POSTFIX,
}

var assignOps = map[lexer.TokenType]string{
	lexer.EQ: "=", lexer.PLUSASSIGN: "+=", lexer.MINUSASSIGN: "-=", lexer.TIMESASSIGN: "*=",
	lexer.DIVASSIGN: "/=", lexer.MODASSIGN: "%=", lexer.POWASSIGN: "**=",
	lexer.ANDASSIGN: "&=", lexer.ORASSIGN: "|=", lexer.XORASSIGN: "^=",
	lexer.SHLASSIGN: "<<=", lexer.SHRASSIGN: ">>=", lexer.USHRASSIGN: ">>>=",
}

type prefixFn func() ast.Expr
type infixFn func(ast.Expr) ast.Expr

// Parser is a recursive-descent/Pratt hybrid producing an ast.Script.
type Parser struct {
	l   *lexer.Lexer
	bag diag.Bag
	cur lexer.Token

	prefixFns map[lexer.TokenType]prefixFn
	infixFns  map[lexer.TokenType]infixFn
}

func New(src string) *Parser {
	p := &Parser{l: lexer.New(src)}
	p.cur = p.l.NextToken()

	p.prefixFns = map[lexer.TokenType]prefixFn{
		lexer.IDENT:  p.parseIdentifier,
		lexer.INT:    p.parseIntLiteral,
		lexer.FLOAT:  p.parseFloatLiteral,
		lexer.STRING: p.parseStringLiteral,
		lexer.TRUE:   p.parseBoolLiteral,
		lexer.FALSE:  p.parseBoolLiteral,
		lexer.NULLKW: p.parseNullLiteral,
		lexer.THIS:   p.parseThis,
		lexer.SUPER:  p.parseSuper,
		lexer.LPAREN: p.parseGroupedExpr,
		lexer.MINUS:  p.parseUnaryExpr,
		lexer.BANG:   p.parseUnaryExpr,
		lexer.TILDE:  p.parseUnaryExpr,
		lexer.INC:    p.parseUnaryExpr,
		lexer.DEC:    p.parseUnaryExpr,
		lexer.AT:     p.parseUnaryExpr,
		lexer.CAST:     p.parseCastExpr,
		lexer.FUNCTION: p.parseLambdaExpr,

		lexer.BOOLTYPE: p.parseTypeConv, lexer.INT8: p.parseTypeConv, lexer.INT16: p.parseTypeConv,
		lexer.INT32KW: p.parseTypeConv, lexer.INT64KW: p.parseTypeConv, lexer.UINT8: p.parseTypeConv,
		lexer.UINT16: p.parseTypeConv, lexer.UINT32KW: p.parseTypeConv, lexer.UINT64KW: p.parseTypeConv,
		lexer.FLOATKW: p.parseTypeConv, lexer.DOUBLEKW: p.parseTypeConv, lexer.STRINGKW: p.parseTypeConv,
	}

	p.infixFns = map[lexer.TokenType]infixFn{
		lexer.PLUS: p.parseBinaryExpr, lexer.MINUS: p.parseBinaryExpr,
		lexer.ASTERISK: p.parseBinaryExpr, lexer.SLASH: p.parseBinaryExpr, lexer.PERCENT: p.parseBinaryExpr,
		lexer.POWER: p.parseBinaryExpr,
		lexer.EQEQ: p.parseBinaryExpr, lexer.BANGEQ: p.parseBinaryExpr,
		lexer.LESS: p.parseBinaryExpr, lexer.LESSEQ: p.parseBinaryExpr,
		lexer.GREATER: p.parseBinaryExpr, lexer.GREATEREQ: p.parseBinaryExpr,
		lexer.AMPAMP: p.parseBinaryExpr, lexer.PIPEPIPE: p.parseBinaryExpr, lexer.XORXOR: p.parseBinaryExpr,
		lexer.AMP: p.parseBinaryExpr, lexer.PIPE: p.parseBinaryExpr, lexer.CARET: p.parseBinaryExpr,
		lexer.SHL: p.parseBinaryExpr, lexer.SHR: p.parseBinaryExpr, lexer.USHR: p.parseBinaryExpr,
		lexer.DOT:    p.parseMemberExpr,
		lexer.LBRACK: p.parseIndexExpr,
		lexer.LPAREN: p.parseCallExpr,
		lexer.QUESTION: p.parseTernaryExpr,
		lexer.INC: p.parsePostfixExpr, lexer.DEC: p.parsePostfixExpr,
		lexer.EQ: p.parseAssignExpr, lexer.PLUSASSIGN: p.parseAssignExpr, lexer.MINUSASSIGN: p.parseAssignExpr,
		lexer.TIMESASSIGN: p.parseAssignExpr, lexer.DIVASSIGN: p.parseAssignExpr, lexer.MODASSIGN: p.parseAssignExpr,
		lexer.POWASSIGN: p.parseAssignExpr, lexer.ANDASSIGN: p.parseAssignExpr, lexer.ORASSIGN: p.parseAssignExpr,
		lexer.XORASSIGN: p.parseAssignExpr, lexer.SHLASSIGN: p.parseAssignExpr, lexer.SHRASSIGN: p.parseAssignExpr,
		lexer.USHRASSIGN: p.parseAssignExpr,
	}
	return p
}

// Errors returns the accumulated diagnostics.
func (p *Parser) Errors() *diag.Bag { return &p.bag }

func (p *Parser) next() { p.cur = p.l.NextToken() }

func (p *Parser) peek(n int) lexer.Token { return p.l.Peek(n) }

func (p *Parser) errf(sp diag.Span, format string, args ...any) {
	p.bag.Add(diag.New(diag.Internal, sp, format, args...))
}

func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.cur.Type == tt {
		p.next()
		return true
	}
	p.errf(p.cur.Span, "expected %v, got %v (%q)", tt, p.cur.Type, p.cur.Literal)
	return false
}

// curPrecedence reports the binding power of the token the parser is
// currently sitting on. Every parselet below follows a consume-then-
// advance discipline: by the time control returns to parseExpr, p.cur
// already holds the next unconsumed token — the candidate infix
// operator, not a token still to be examined by prefix()'s caller.
func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

// Parse runs the full parser over the token stream and returns the
// resulting script along with whatever diagnostics were collected.
func Parse(src string) (*ast.Script, *diag.Bag) {
	p := New(src)
	script := p.parseScript()
	return script, &p.bag
}

func (p *Parser) parseScript() *ast.Script {
	start := p.cur.Span
	items := make([]ast.Item, 0, 16)
	for p.cur.Type != lexer.EOF {
		before := p.cur
		item := p.parseItem()
		if item != nil {
			items = append(items, item)
		}
		if p.cur == before {
			// no progress made; avoid an infinite loop on unrecognized input
			p.next()
		}
	}
	return &ast.Script{Items: items, Sp: start}
}

func (p *Parser) parseItem() ast.Item {
	switch p.cur.Type {
	case lexer.CLASS:
		return p.parseClassDecl()
	case lexer.INTERFACE:
		return p.parseInterfaceDecl()
	case lexer.ENUM:
		return p.parseEnumDecl()
	case lexer.FUNCDEF:
		return p.parseFuncdefDecl()
	case lexer.NAMESPACE:
		return p.parseNamespaceDecl()
	case lexer.TYPEDEF:
		return p.parseTypedefDecl()
	case lexer.IMPORT:
		return p.parseImportDecl()
	case lexer.MIXIN:
		return p.parseMixinDecl()
	case lexer.SEMICOLON:
		p.next()
		return nil
	default:
		return p.parseFunctionOrGlobalVar("")
	}
}

func (p *Parser) skipModifiers(a *ast.FuncAttrs) {
	for {
		switch p.cur.Type {
		case lexer.PRIVATE:
			if a != nil {
				a.IsPrivate = true
			}
			p.next()
		case lexer.PROTECTED:
			if a != nil {
				a.IsProtected = true
			}
			p.next()
		case lexer.VIRTUAL:
			if a != nil {
				a.IsVirtual = true
			}
			p.next()
		case lexer.OVERRIDE:
			if a != nil {
				a.IsOverride = true
			}
			p.next()
		case lexer.FINAL:
			if a != nil {
				a.IsFinal = true
			}
			p.next()
		case lexer.EXPLICIT:
			if a != nil {
				a.IsExplicit = true
			}
			p.next()
		case lexer.SHARED, lexer.EXTERNAL, lexer.ABSTRACT:
			p.next()
		default:
			return
		}
	}
}

// parseFunctionOrGlobalVar handles a top-level or namespace-level
// declaration that starts with a type: either `Type name(...) {...}`
// (a free function) or `Type name [= init];` (a global variable).
// owner is the enclosing class name when parsing a method body, "" at
// script scope.
func (p *Parser) parseFunctionOrGlobalVar(owner string) ast.Item {
	start := p.cur.Span
	var attrs ast.FuncAttrs
	p.skipModifiers(&attrs)

	if p.cur.Type == lexer.CONST && owner == "" {
		// `const T name = init;` at script scope
		p.next()
		return p.parseGlobalVarTail(start, true)
	}

	retType := p.parseTypeExpr()
	if retType == nil {
		p.errf(start, "expected a type or declaration")
		p.next()
		return nil
	}

	if p.cur.Type != lexer.IDENT {
		p.errf(p.cur.Span, "expected a name after type %q", retType.String())
		return nil
	}
	name := p.cur.Literal
	p.next()

	if p.cur.Type == lexer.LPAREN {
		params := p.parseParamList()
		p.skipModifiers(&attrs)
		var body *ast.BlockStmt
		if p.cur.Type == lexer.LBRACE {
			body = p.parseBlockStmt()
		} else {
			p.expect(lexer.SEMICOLON)
		}
		return &ast.FunctionDecl{Name: name, Owner: owner, Return: retType, Params: params, Body: body, Attrs: attrs, Sp: start}
	}

	return p.parseGlobalVarTailNamed(start, retType, name, false)
}

func (p *Parser) parseGlobalVarTail(start diag.Span, isConst bool) ast.Item {
	typ := p.parseTypeExpr()
	if typ == nil || p.cur.Type != lexer.IDENT {
		p.errf(p.cur.Span, "expected variable name")
		return nil
	}
	name := p.cur.Literal
	p.next()
	return p.parseGlobalVarTailNamed(start, typ, name, isConst)
}

func (p *Parser) parseGlobalVarTailNamed(start diag.Span, typ *ast.TypeExpr, name string, isConst bool) ast.Item {
	var init ast.Expr
	if p.cur.Type == lexer.EQ {
		p.next()
		init = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMICOLON)
	return &ast.GlobalVarDecl{Type: typ, Name: name, Init: init, IsConst: isConst, Sp: start}
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(lexer.LPAREN)
	var params []ast.Param
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		typ := p.parseTypeExpr()
		name := ""
		if p.cur.Type == lexer.IDENT {
			name = p.cur.Literal
			p.next()
		}
		var def ast.Expr
		if p.cur.Type == lexer.EQ {
			p.next()
			def = p.parseExpr(LOWEST)
		}
		params = append(params, ast.Param{Name: name, Type: typ, Default: def})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

// parseTypeExpr parses a type expression: optional leading const,
// optional scope chain, base name, optional template args, ordered
// array/handle suffixes, and a trailing &in/&out/&inout.
func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	start := p.cur.Span
	t := &ast.TypeExpr{Sp: start}

	if p.cur.Type == lexer.CONST {
		t.Const = true
		p.next()
	}

	if !p.isTypeNameStart(p.cur.Type) {
		return nil
	}
	t.Base = p.cur.Literal
	p.next()

	for p.cur.Type == lexer.COLONCOLON {
		p.next()
		t.Scope = append(t.Scope, t.Base)
		if p.cur.Type != lexer.IDENT {
			p.errf(p.cur.Span, "expected identifier after '::'")
			break
		}
		t.Base = p.cur.Literal
		p.next()
	}

	if p.cur.Type == lexer.LESS {
		p.next()
		for p.cur.Type != lexer.GREATER && p.cur.Type != lexer.EOF {
			arg := p.parseTypeExpr()
			if arg != nil {
				t.TemplateArgs = append(t.TemplateArgs, arg)
			}
			if p.cur.Type == lexer.COMMA {
				p.next()
			}
		}
		p.expect(lexer.GREATER)
	}

	for {
		switch p.cur.Type {
		case lexer.LBRACK:
			p.next()
			p.expect(lexer.RBRACK)
			t.Suffixes = append(t.Suffixes, ast.TypeSuffix{Kind: ast.SuffixArray})
		case lexer.AT:
			p.next()
			suf := ast.TypeSuffix{Kind: ast.SuffixHandle}
			if p.cur.Type == lexer.CONST {
				suf.IsConst = true
				p.next()
			}
			t.Suffixes = append(t.Suffixes, suf)
		default:
			goto suffixesDone
		}
	}
suffixesDone:

	if p.cur.Type == lexer.AMP {
		p.next()
		switch p.cur.Type {
		case lexer.IN:
			t.RefModeText = "in"
			p.next()
		case lexer.OUT:
			t.RefModeText = "out"
			p.next()
		case lexer.INOUT:
			t.RefModeText = "inout"
			p.next()
		default:
			t.RefModeText = "in"
		}
	}

	return t
}

func (p *Parser) isTypeNameStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.VOID, lexer.BOOLTYPE, lexer.INT8, lexer.INT16, lexer.INT32KW, lexer.INT64KW,
		lexer.UINT8, lexer.UINT16, lexer.UINT32KW, lexer.UINT64KW, lexer.FLOATKW, lexer.DOUBLEKW, lexer.STRINGKW:
		return true
	default:
		return false
	}
}

// parseExpr is the Pratt-parsing core: a prefix parselet
// produces the left operand, then infix parselets fold in operators
// whose precedence exceeds the caller's minimum.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.errf(p.cur.Span, "unexpected token %v (%q) in expression", p.cur.Type, p.cur.Literal)
		return nil
	}
	left := prefix()

	for minPrec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok {
			break
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	tok := p.cur
	p.next()
	return &ast.Identifier{Name: tok.Literal, Sp: tok.Span}
}

func (p *Parser) parseThis() ast.Expr {
	tok := p.cur
	p.next()
	return &ast.ThisExpr{Sp: tok.Span}
}

func (p *Parser) parseSuper() ast.Expr {
	tok := p.cur
	p.next()
	var args []ast.Expr
	if p.cur.Type == lexer.LPAREN {
		args = p.parseArgList()
	}
	return &ast.SuperExpr{Args: args, Sp: tok.Span}
}

func (p *Parser) parseIntLiteral() ast.Expr {
	tok := p.cur
	p.next()
	lit := strings.ReplaceAll(tok.Literal, "_", "")
	var v int64
	var err error
	switch {
	case strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X"):
		v, err = strconv.ParseInt(lit[2:], 16, 64)
	case strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B"):
		v, err = strconv.ParseInt(lit[2:], 2, 64)
	default:
		v, err = strconv.ParseInt(lit, 10, 64)
	}
	if err != nil {
		p.errf(tok.Span, "invalid integer literal %q", tok.Literal)
	}
	return &ast.IntLiteral{Value: v, Sp: tok.Span}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	tok := p.cur
	p.next()
	lit := strings.TrimSuffix(strings.TrimSuffix(tok.Literal, "f"), "F")
	isSingle := lit != tok.Literal
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.errf(tok.Span, "invalid float literal %q", tok.Literal)
	}
	return &ast.FloatLiteral{Value: v, IsSingle: isSingle, Sp: tok.Span}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.cur
	p.next()
	raw := tok.Literal
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	return &ast.StringLiteral{Value: raw, Sp: tok.Span}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.cur
	p.next()
	return &ast.BoolLiteral{Value: tok.Type == lexer.TRUE, Sp: tok.Span}
}

func (p *Parser) parseNullLiteral() ast.Expr {
	tok := p.cur
	p.next()
	return &ast.NullLiteral{Sp: tok.Span}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.next() // (
	exp := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	return exp
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	tok := p.cur
	p.next()
	operand := p.parseExpr(UNARY)
	return &ast.UnaryExpr{Operand: operand, Op: tok.Literal, Sp: tok.Span}
}

func (p *Parser) parsePostfixExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	p.next()
	return &ast.PostfixExpr{Operand: left, Op: tok.Literal, Sp: tok.Span}
}

func (p *Parser) parseCastExpr() ast.Expr {
	tok := p.cur
	p.next() // cast
	p.expect(lexer.LESS)
	typ := p.parseTypeExpr()
	p.expect(lexer.GREATER)
	p.expect(lexer.LPAREN)
	operand := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	return &ast.CastExpr{Type: typ, Operand: operand, Sp: tok.Span}
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	prec := precedences[tok.Type]
	p.next()
	// '**' (POWER) is right-associative; everything else is left-associative.
	right := p.parseExpr(prec - boolToInt(tok.Type == lexer.POWER))
	return &ast.BinaryExpr{Left: left, Right: right, Op: tok.Literal, Sp: tok.Span}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (p *Parser) parseAssignExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	p.next()
	value := p.parseExpr(ASSIGN - 1) // right-associative
	return &ast.AssignExpr{Target: left, Value: value, Op: assignOps[tok.Type], Sp: tok.Span}
}

func (p *Parser) parseTernaryExpr(cond ast.Expr) ast.Expr {
	tok := p.cur
	p.next() // ?
	then := p.parseExpr(LOWEST)
	p.expect(lexer.COLON)
	els := p.parseExpr(TERNARY - 1)
	return &ast.TernaryExpr{Cond: cond, Then: then, Else: els, Sp: tok.Span}
}

func (p *Parser) parseMemberExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	p.next() // .
	if p.cur.Type != lexer.IDENT {
		p.errf(p.cur.Span, "expected member name after '.'")
		return left
	}
	name := p.cur.Literal
	p.next()
	return &ast.MemberExpr{Receiver: left, Name: name, Sp: tok.Span}
}

func (p *Parser) parseIndexExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	p.next() // [
	idx := p.parseExpr(LOWEST)
	p.expect(lexer.RBRACK)
	return &ast.IndexExpr{Receiver: left, Index: idx, Sp: tok.Span}
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		args = append(args, p.parseExpr(LOWEST))
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parseCallExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	args := p.parseArgList()
	return &ast.CallExpr{Callee: left, Args: args, Sp: tok.Span}
}

// parseTypeConv handles `T(expr)` value-conversion syntax for a
// primitive type name used as a prefix parselet. ConvExpr is distinct
// from a constructor call, which targets a class/struct identifier and
// is parsed as an ordinary CallExpr until the resolver disambiguates it.
func (p *Parser) parseTypeConv() ast.Expr {
	start := p.cur.Span
	typ := p.parseTypeExpr()
	if typ == nil {
		p.errf(start, "expected a type")
		return nil
	}
	if p.cur.Type != lexer.LPAREN {
		p.errf(p.cur.Span, "expected '(' after type %q", typ.String())
		return nil
	}
	args := p.parseArgList()
	if len(args) != 1 {
		p.errf(start, "type conversion %q takes exactly one argument", typ.String())
	}
	var operand ast.Expr
	if len(args) > 0 {
		operand = args[0]
	}
	return &ast.ConvExpr{Type: typ, Operand: operand, Sp: start}
}

// parseLambdaExpr parses `function(params) { body }`. Parameter types
// may be omitted and inferred from context; the body compiles under a
// fresh isolated scope and captures nothing from the enclosing scope.
func (p *Parser) parseLambdaExpr() ast.Expr {
	tok := p.cur
	p.next() // function
	p.expect(lexer.LPAREN)

	var params []ast.LambdaParam
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		typ := p.parseTypeExpr()
		if typ == nil {
			p.errf(p.cur.Span, "expected a lambda parameter")
			break
		}
		if p.cur.Type == lexer.IDENT {
			name := p.cur.Literal
			p.next()
			params = append(params, ast.LambdaParam{Name: name, Type: typ})
		} else {
			// The parsed "type" was in fact a bare parameter name with
			// its type left to be inferred from the expected funcdef.
			params = append(params, ast.LambdaParam{Name: typ.Base})
		}
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	body := p.parseBlockStmt()
	return &ast.LambdaExpr{Params: params, Body: body, Sp: tok.Span}
}
