package parser

import (
	"testing"

	"github.com/cwbudde/ascript/internal/ast"
)

func parseOK(t *testing.T, src string) *ast.Script {
	t.Helper()
	script, bag := Parse(src)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", bag.String())
	}
	return script
}

func TestParseGlobalVarDecl(t *testing.T) {
	script := parseOK(t, `int x = 5;`)
	if len(script.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(script.Items))
	}
	gv, ok := script.Items[0].(*ast.GlobalVarDecl)
	if !ok {
		t.Fatalf("expected GlobalVarDecl, got %T", script.Items[0])
	}
	if gv.Name != "x" || gv.Type.Base != "int" {
		t.Fatalf("unexpected decl: %+v", gv)
	}
}

func TestParseFreeFunction(t *testing.T) {
	script := parseOK(t, `int add(int a, int b) { return a + b; }`)
	fn, ok := script.Items[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", script.Items[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt, got %T", fn.Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected a + binary expression, got %#v", ret.Value)
	}
}

func TestParseClassWithConstructorAndMethod(t *testing.T) {
	script := parseOK(t, `
	class Point {
		float x;
		float y;
		Point(float x, float y) {
			this.x = x;
			this.y = y;
		}
		float length() const {
			return x;
		}
	}`)
	cls, ok := script.Items[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected ClassDecl, got %T", script.Items[0])
	}
	if len(cls.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(cls.Fields))
	}
	if len(cls.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(cls.Methods))
	}
	ctor := cls.Methods[0]
	if !ctor.IsConstructor || len(ctor.Params) != 2 {
		t.Fatalf("unexpected constructor: %+v", ctor)
	}
	method := cls.Methods[1]
	if !method.Attrs.IsConst {
		t.Fatalf("expected length() to be parsed as const")
	}
}

func TestParseInheritanceAndInterfaces(t *testing.T) {
	script := parseOK(t, `class Shape : Base, Drawable { }`)
	cls := script.Items[0].(*ast.ClassDecl)
	if cls.Base != "Base" {
		t.Fatalf("expected base 'Base', got %q", cls.Base)
	}
	if len(cls.Interfaces) != 1 || cls.Interfaces[0] != "Drawable" {
		t.Fatalf("unexpected interfaces: %v", cls.Interfaces)
	}
}

func TestParseEnumDecl(t *testing.T) {
	script := parseOK(t, `enum Color { Red, Green = 5, Blue }`)
	e, ok := script.Items[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected EnumDecl, got %T", script.Items[0])
	}
	if len(e.Members) != 3 || e.Members[1].Value == nil || *e.Members[1].Value != 5 {
		t.Fatalf("unexpected members: %+v", e.Members)
	}
}

func TestParseHandleTypeAndNullAssignment(t *testing.T) {
	script := parseOK(t, `Obj@ o = null;`)
	gv := script.Items[0].(*ast.GlobalVarDecl)
	if len(gv.Type.Suffixes) != 1 || gv.Type.Suffixes[0].Kind != ast.SuffixHandle {
		t.Fatalf("expected a handle suffix, got %+v", gv.Type.Suffixes)
	}
	if _, ok := gv.Init.(*ast.NullLiteral); !ok {
		t.Fatalf("expected null literal init, got %#v", gv.Init)
	}
}

func TestParseCastExpr(t *testing.T) {
	script := parseOK(t, `void f() { Derived@ d = cast<Derived>(base); }`)
	fn := script.Items[0].(*ast.FunctionDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	cast, ok := decl.Inits[0].(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected CastExpr, got %#v", decl.Inits[0])
	}
	if cast.Type.Base != "Derived" {
		t.Fatalf("unexpected cast target: %+v", cast.Type)
	}
}

func TestParseIfWhileForSwitch(t *testing.T) {
	script := parseOK(t, `
	void f() {
		if (x > 0) {
			x = x - 1;
		} else {
			x = 0;
		}
		while (x < 10) { x++; }
		for (int i = 0; i < 10; i++) { x += i; }
		switch (x) {
			case 1:
				x = 1;
				break;
			default:
				x = 0;
		}
	}`)
	fn := script.Items[0].(*ast.FunctionDecl)
	if len(fn.Body.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[0].(*ast.IfStmt); !ok {
		t.Fatalf("expected IfStmt, got %T", fn.Body.Stmts[0])
	}
	if _, ok := fn.Body.Stmts[1].(*ast.WhileStmt); !ok {
		t.Fatalf("expected WhileStmt, got %T", fn.Body.Stmts[1])
	}
	forStmt, ok := fn.Body.Stmts[2].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", fn.Body.Stmts[2])
	}
	if _, ok := forStmt.Init.(*ast.VarDeclStmt); !ok {
		t.Fatalf("expected for-init to be a VarDeclStmt, got %T", forStmt.Init)
	}
	sw, ok := fn.Body.Stmts[3].(*ast.SwitchStmt)
	if !ok || len(sw.Cases) != 2 {
		t.Fatalf("expected a 2-case SwitchStmt, got %#v", fn.Body.Stmts[3])
	}
}

func TestParseLambdaExpr(t *testing.T) {
	script := parseOK(t, `void f() { callback = function(int x, int y) { return x + y; }; }`)
	fn := script.Items[0].(*ast.FunctionDecl)
	es := fn.Body.Stmts[0].(*ast.ExprStmt)
	assign := es.X.(*ast.AssignExpr)
	lambda, ok := assign.Value.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("expected LambdaExpr, got %#v", assign.Value)
	}
	if len(lambda.Params) != 2 {
		t.Fatalf("expected 2 lambda params, got %d", len(lambda.Params))
	}
}

func TestParseTernaryAndPrecedence(t *testing.T) {
	script := parseOK(t, `int r = a + b * c > 0 ? 1 : 2;`)
	gv := script.Items[0].(*ast.GlobalVarDecl)
	tern, ok := gv.Init.(*ast.TernaryExpr)
	if !ok {
		t.Fatalf("expected TernaryExpr, got %#v", gv.Init)
	}
	cmp, ok := tern.Cond.(*ast.BinaryExpr)
	if !ok || cmp.Op != ">" {
		t.Fatalf("expected top-level comparison, got %#v", tern.Cond)
	}
	add, ok := cmp.Left.(*ast.BinaryExpr)
	if !ok || add.Op != "+" {
		t.Fatalf("expected addition on the left of comparison, got %#v", cmp.Left)
	}
	if _, ok := add.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected b*c to bind tighter than +, got %#v", add.Right)
	}
}

func TestParseFuncdefAndImport(t *testing.T) {
	script := parseOK(t, `
	funcdef void Callback(int x);
	import void Log(string msg) from "logging";`)
	if _, ok := script.Items[0].(*ast.FuncdefDecl); !ok {
		t.Fatalf("expected FuncdefDecl, got %T", script.Items[0])
	}
	imp, ok := script.Items[1].(*ast.ImportDecl)
	if !ok {
		t.Fatalf("expected ImportDecl, got %T", script.Items[1])
	}
	if imp.FromModule != `"logging"` {
		t.Fatalf("unexpected from-module: %q", imp.FromModule)
	}
}

func TestParseErrorRecoveryContinuesToNextItem(t *testing.T) {
	_, bag := Parse(`int x = ; int y = 5;`)
	if !bag.HasErrors() {
		t.Fatalf("expected at least one diagnostic")
	}
}
