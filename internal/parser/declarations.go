package parser

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/lexer"
)

func (p *Parser) parseClassDecl() ast.Item {
	start := p.cur.Span
	p.next() // class
	name := p.cur.Literal
	p.expect(lexer.IDENT)

	decl := &ast.ClassDecl{Name: name, Sp: start}

	if p.cur.Type == lexer.COLON {
		p.next()
		decl.Base = p.cur.Literal
		p.expect(lexer.IDENT)
		for p.cur.Type == lexer.COMMA {
			p.next()
			decl.Interfaces = append(decl.Interfaces, p.cur.Literal)
			p.expect(lexer.IDENT)
		}
	}
	if p.cur.Type == lexer.FINAL {
		decl.IsFinal = true
		p.next()
	}

	p.expect(lexer.LBRACE)
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		before := p.cur
		p.parseClassMember(decl)
		if p.cur == before {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return decl
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	if p.cur.Type == lexer.SEMICOLON {
		p.next()
		return
	}

	start := p.cur.Span
	var attrs ast.FuncAttrs
	p.skipModifiers(&attrs)

	isConstField := false
	if p.cur.Type == lexer.CONST {
		isConstField = true
		p.next()
	}

	// Constructor: `ClassName(params) { body }`
	if p.cur.Type == lexer.IDENT && p.cur.Literal == decl.Name && p.peek(0).Type == lexer.LPAREN {
		p.next()
		params := p.parseParamList()
		var body *ast.BlockStmt
		if p.cur.Type == lexer.LBRACE {
			body = p.parseBlockStmt()
		} else {
			p.expect(lexer.SEMICOLON)
		}
		decl.Methods = append(decl.Methods, &ast.FunctionDecl{
			Name: decl.Name, Owner: decl.Name, IsConstructor: true, Params: params, Body: body, Attrs: attrs, Sp: start,
		})
		return
	}

	typ := p.parseTypeExpr()
	if typ == nil {
		p.errf(p.cur.Span, "expected a member declaration")
		return
	}
	if p.cur.Type != lexer.IDENT {
		p.errf(p.cur.Span, "expected a field or method name")
		return
	}
	name := p.cur.Literal
	p.next()

	if p.cur.Type == lexer.LPAREN {
		params := p.parseParamList()
		if p.cur.Type == lexer.CONST {
			attrs.IsConst = true
			p.next()
		}
		p.skipModifiers(&attrs)
		var body *ast.BlockStmt
		if p.cur.Type == lexer.LBRACE {
			body = p.parseBlockStmt()
		} else {
			p.expect(lexer.SEMICOLON)
		}
		decl.Methods = append(decl.Methods, &ast.FunctionDecl{
			Name: name, Owner: decl.Name, Return: typ, Params: params, Body: body, Attrs: attrs, Sp: start,
		})
		return
	}

	var init ast.Expr
	if p.cur.Type == lexer.EQ {
		p.next()
		init = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMICOLON)
	decl.Fields = append(decl.Fields, &ast.FieldDecl{
		Name: name, Type: typ, Init: init, Private: attrs.IsPrivate, IsConst: isConstField, Sp: start,
	})
}

func (p *Parser) parseInterfaceDecl() ast.Item {
	start := p.cur.Span
	p.next() // interface
	name := p.cur.Literal
	p.expect(lexer.IDENT)

	decl := &ast.InterfaceDecl{Name: name, Sp: start}
	if p.cur.Type == lexer.COLON {
		p.next()
		decl.Extends = append(decl.Extends, p.cur.Literal)
		p.expect(lexer.IDENT)
		for p.cur.Type == lexer.COMMA {
			p.next()
			decl.Extends = append(decl.Extends, p.cur.Literal)
			p.expect(lexer.IDENT)
		}
	}

	p.expect(lexer.LBRACE)
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		mstart := p.cur.Span
		ret := p.parseTypeExpr()
		if ret == nil {
			p.next()
			continue
		}
		mname := p.cur.Literal
		p.expect(lexer.IDENT)
		params := p.parseParamList()
		p.expect(lexer.SEMICOLON)
		decl.Methods = append(decl.Methods, ast.InterfaceMethod{Name: mname, Return: ret, Params: params, Sp: mstart})
	}
	p.expect(lexer.RBRACE)
	return decl
}

func (p *Parser) parseEnumDecl() ast.Item {
	start := p.cur.Span
	p.next() // enum
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.LBRACE)

	decl := &ast.EnumDecl{Name: name, Sp: start}
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		memberName := p.cur.Literal
		p.expect(lexer.IDENT)
		var val *int64
		if p.cur.Type == lexer.EQ {
			p.next()
			if lit, ok := p.parseExpr(LOWEST).(*ast.IntLiteral); ok {
				v := lit.Value
				val = &v
			} else {
				p.errf(p.cur.Span, "enum value must be a constant integer")
			}
		}
		decl.Members = append(decl.Members, ast.EnumMember{Name: memberName, Value: val})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return decl
}

func (p *Parser) parseFuncdefDecl() ast.Item {
	start := p.cur.Span
	p.next() // funcdef
	ret := p.parseTypeExpr()
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	params := p.parseParamList()
	p.expect(lexer.SEMICOLON)
	return &ast.FuncdefDecl{Name: name, Return: ret, Params: params, Sp: start}
}

func (p *Parser) parseNamespaceDecl() ast.Item {
	start := p.cur.Span
	p.next() // namespace
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.LBRACE)
	var items []ast.Item
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		before := p.cur
		if item := p.parseItem(); item != nil {
			items = append(items, item)
		}
		if p.cur == before {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.NamespaceDecl{Name: name, Items: items, Sp: start}
}

func (p *Parser) parseTypedefDecl() ast.Item {
	start := p.cur.Span
	p.next() // typedef
	typ := p.parseTypeExpr()
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.SEMICOLON)
	return &ast.TypedefDecl{Name: name, Type: typ, Sp: start}
}

func (p *Parser) parseImportDecl() ast.Item {
	start := p.cur.Span
	p.next() // import
	ret := p.parseTypeExpr()
	_ = ret
	symbol := p.cur.Literal
	p.expect(lexer.IDENT)
	params := p.parseParamList()
	_ = params
	var from string
	if p.cur.Type == lexer.FROM {
		p.next()
		if p.cur.Type == lexer.STRING {
			from = p.cur.Literal
			p.next()
		}
	}
	p.expect(lexer.SEMICOLON)
	return &ast.ImportDecl{Symbol: symbol, FromModule: from, Sp: start}
}

func (p *Parser) parseMixinDecl() ast.Item {
	start := p.cur.Span
	p.next() // mixin
	p.expect(lexer.CLASS)
	name := p.cur.Literal
	p.expect(lexer.IDENT)

	decl := &ast.MixinDecl{Name: name, Sp: start}
	tmp := &ast.ClassDecl{Name: name}
	p.expect(lexer.LBRACE)
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		before := p.cur
		p.parseClassMember(tmp)
		if p.cur == before {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	decl.Fields = tmp.Fields
	decl.Methods = tmp.Methods
	return decl
}
