package parser

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/lexer"
)

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.cur.Span
	p.expect(lexer.LBRACE)
	var stmts []ast.Stmt
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		before := p.cur
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
		if p.cur == before {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.BlockStmt{Stmts: stmts, Sp: start}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Type {
	case lexer.LBRACE:
		return p.parseBlockStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.DO:
		return p.parseDoWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.SWITCH:
		return p.parseSwitchStmt()
	case lexer.BREAK:
		tok := p.cur
		p.next()
		p.expect(lexer.SEMICOLON)
		return &ast.BreakStmt{Sp: tok.Span}
	case lexer.CONTINUE:
		tok := p.cur
		p.next()
		p.expect(lexer.SEMICOLON)
		return &ast.ContinueStmt{Sp: tok.Span}
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.SEMICOLON:
		p.next()
		return nil
	default:
		return p.parseVarDeclOrExprStmt()
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.cur.Span
	p.next() // if
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	then := p.parseStmt()
	var els ast.Stmt
	if p.cur.Type == lexer.ELSE {
		p.next()
		els = p.parseStmt()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Sp: start}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.cur.Span
	p.next() // while
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	body := p.parseStmt()
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: start}
}

func (p *Parser) parseDoWhileStmt() ast.Stmt {
	start := p.cur.Span
	p.next() // do
	body := p.parseStmt()
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	p.expect(lexer.SEMICOLON)
	return &ast.DoWhileStmt{Body: body, Cond: cond, Sp: start}
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.cur.Span
	p.next() // for
	p.expect(lexer.LPAREN)

	var init ast.Stmt
	if p.cur.Type != lexer.SEMICOLON {
		init = p.parseVarDeclOrExprStmt()
	} else {
		p.next()
	}

	var cond ast.Expr
	if p.cur.Type != lexer.SEMICOLON {
		cond = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMICOLON)

	var update []ast.Expr
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		update = append(update, p.parseExpr(LOWEST))
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	body := p.parseStmt()
	return &ast.ForStmt{Init: init, Cond: cond, Update: update, Body: body, Sp: start}
}

func (p *Parser) parseSwitchStmt() ast.Stmt {
	start := p.cur.Span
	p.next() // switch
	p.expect(lexer.LPAREN)
	subject := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)

	var cases []ast.SwitchCase
	for p.cur.Type == lexer.CASE || p.cur.Type == lexer.DEFAULT {
		isDefault := p.cur.Type == lexer.DEFAULT
		p.next()
		var caseExpr ast.Expr
		if !isDefault {
			caseExpr = p.parseExpr(LOWEST)
		}
		p.expect(lexer.COLON)
		var stmts []ast.Stmt
		for p.cur.Type != lexer.CASE && p.cur.Type != lexer.DEFAULT && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
			if s := p.parseStmt(); s != nil {
				stmts = append(stmts, s)
			}
		}
		cases = append(cases, ast.SwitchCase{Expr: caseExpr, IsDefault: isDefault, Stmts: stmts})
	}
	p.expect(lexer.RBRACE)
	return &ast.SwitchStmt{Subject: subject, Cases: cases, Sp: start}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.cur.Span
	p.next() // return
	var value ast.Expr
	if p.cur.Type != lexer.SEMICOLON {
		value = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMICOLON)
	return &ast.ReturnStmt{Value: value, Sp: start}
}

// tokAt returns the token i positions ahead of the current one without
// consuming anything: tokAt(0) is p.cur, tokAt(1) is the next token,
// and so on. Used by lookingAtVarDecl to scan a tentative type
// expression purely through the lexer's lookahead buffer.
func (p *Parser) tokAt(i int) lexer.Token {
	if i == 0 {
		return p.cur
	}
	return p.peek(i - 1)
}

// lookingAtVarDecl reports whether the tokens starting at the current
// position form `TypeExpr IDENT` followed by `=`, `;`, or `,` — the
// shape that distinguishes a local declaration from a bare expression
// statement beginning with a type name. It performs no mutation;
// Peek only grows the lexer's internal lookahead buffer.
func (p *Parser) lookingAtVarDecl() bool {
	j := 0
	if p.tokAt(j).Type == lexer.CONST {
		j++
	}
	if !p.isTypeNameStart(p.tokAt(j).Type) {
		return false
	}
	j++
	for p.tokAt(j).Type == lexer.COLONCOLON {
		j++
		if p.tokAt(j).Type != lexer.IDENT {
			return false
		}
		j++
	}
	if p.tokAt(j).Type == lexer.LESS {
		j++
		depth := 1
		for depth > 0 {
			switch p.tokAt(j).Type {
			case lexer.EOF:
				return false
			case lexer.LESS:
				depth++
			case lexer.GREATER:
				depth--
			}
			j++
		}
	}
	for {
		if p.tokAt(j).Type == lexer.LBRACK && p.tokAt(j+1).Type == lexer.RBRACK {
			j += 2
			continue
		}
		if p.tokAt(j).Type == lexer.AT {
			j++
			if p.tokAt(j).Type == lexer.CONST {
				j++
			}
			continue
		}
		break
	}
	if p.tokAt(j).Type == lexer.AMP {
		j++
		switch p.tokAt(j).Type {
		case lexer.IN, lexer.OUT, lexer.INOUT:
			j++
		}
	}
	if p.tokAt(j).Type != lexer.IDENT {
		return false
	}
	switch p.tokAt(j + 1).Type {
	case lexer.EQ, lexer.SEMICOLON, lexer.COMMA:
		return true
	default:
		return false
	}
}

// parseVarDeclOrExprStmt disambiguates a local declaration (`Type
// name [= init] [, name2 ...];`) from a bare expression statement.
func (p *Parser) parseVarDeclOrExprStmt() ast.Stmt {
	start := p.cur.Span

	if p.lookingAtVarDecl() {
		typ := p.parseTypeExpr()
		return p.parseVarDeclTail(start, typ, typ.Const)
	}

	expr := p.parseExpr(LOWEST)
	p.expect(lexer.SEMICOLON)
	return &ast.ExprStmt{X: expr, Sp: start}
}

func (p *Parser) parseVarDeclTail(start diag.Span, typ *ast.TypeExpr, isConst bool) ast.Stmt {
	var names []string
	var inits []ast.Expr
	for {
		name := p.cur.Literal
		p.next()
		names = append(names, name)
		var init ast.Expr
		if p.cur.Type == lexer.EQ {
			p.next()
			init = p.parseExpr(LOWEST)
		}
		inits = append(inits, init)
		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(lexer.SEMICOLON)
	return &ast.VarDeclStmt{Type: typ, Names: names, Inits: inits, IsConst: isConst, Sp: start}
}
