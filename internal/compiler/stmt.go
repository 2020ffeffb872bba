package compiler

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/convert"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/operators"
	"github.com/cwbudde/ascript/internal/resolve"
	"github.com/cwbudde/ascript/internal/typesys"
)

// compileBlock compiles every statement of b in its own lexical scope.
func (c *Compiler) compileBlock(b *ast.BlockStmt) error {
	c.beginScope()
	for _, s := range b.Stmts {
		if err := c.compileStmt(s); err != nil {
			return err
		}
	}
	c.endScope()
	return nil
}

func (c *Compiler) compileStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.BlockStmt:
		return c.compileBlock(n)
	case *ast.VarDeclStmt:
		return c.compileVarDecl(n)
	case *ast.ExprStmt:
		t, err := c.compileExpr(n.X)
		if err != nil {
			return err
		}
		if !t.IsVoid() {
			c.emitter.SetLine(n.Sp.Line)
			c.emitter.EmitSimple(bytecode.OpPop)
		}
		return nil
	case *ast.IfStmt:
		return c.compileIf(n)
	case *ast.WhileStmt:
		return c.compileWhile(n)
	case *ast.DoWhileStmt:
		return c.compileDoWhile(n)
	case *ast.ForStmt:
		return c.compileFor(n)
	case *ast.SwitchStmt:
		return c.compileSwitch(n)
	case *ast.BreakStmt:
		if !c.emitter.InLoopOrSwitch() {
			return diag.New(diag.BreakOutsideLoop, n.Sp, "break outside a loop or switch")
		}
		c.emitter.SetLine(n.Sp.Line)
		label := c.emitter.EmitJump(bytecode.OpJump)
		c.emitter.RecordBreak(label)
		return nil
	case *ast.ContinueStmt:
		if !c.emitter.InLoop() {
			return diag.New(diag.ContinueOutsideLoop, n.Sp, "continue outside a loop")
		}
		c.emitter.SetLine(n.Sp.Line)
		label := c.emitter.EmitJump(bytecode.OpJump)
		c.emitter.RecordContinue(label)
		return nil
	case *ast.ReturnStmt:
		return c.compileReturn(n)
	default:
		return diag.New(diag.Internal, spanOf(s), "unhandled statement node %T", s)
	}
}

// compileVarDecl declares each name of n in the current scope,
// compiling and converting its initializer when present, or pushing
// the type's zero representation otherwise — every primitive, handle,
// and null share one zero-valued register encoding, so OpPushZero
// covers every uninitialized case uniformly.
func (c *Compiler) compileVarDecl(n *ast.VarDeclStmt) error {
	typ, err := c.resolveType(n.Type, resolve.PosLocal)
	if err != nil {
		return err
	}
	for i, name := range n.Names {
		slot, err := c.declareLocal(name, typ, n)
		if err != nil {
			return err
		}
		c.emitter.SetLine(n.Sp.Line)
		if init := n.Inits[i]; init != nil {
			at, err := c.compileExpr(init)
			if err != nil {
				return err
			}
			conv, ok := convert.Classify(c.Registry, at, typ)
			if !ok || !conv.Implicit {
				return diag.New(diag.TypeMismatch, spanOf(init), "cannot initialize %s from %s", typ, at)
			}
			c.emitConversion(conv, at, typ)
		} else {
			c.emitter.EmitSimple(bytecode.OpPushZero)
		}
		c.emitter.Emit(bytecode.OpSetLocal, 0, slot)
	}
	return nil
}

func (c *Compiler) compileIf(n *ast.IfStmt) error {
	ct, err := c.compileExpr(n.Cond)
	if err != nil {
		return err
	}
	if ct.Hash != typesys.Bool.Hash {
		return diag.New(diag.TypeMismatch, spanOf(n.Cond), "if condition must be bool, got %s", ct)
	}
	c.emitter.SetLine(n.Sp.Line)
	toElse := c.emitter.EmitJump(bytecode.OpJumpIfFalse)

	if err := c.compileStmt(n.Then); err != nil {
		return err
	}

	if n.Else == nil {
		c.emitter.PatchJump(toElse)
		return nil
	}

	toEnd := c.emitter.EmitJump(bytecode.OpJump)
	c.emitter.PatchJump(toElse)
	if err := c.compileStmt(n.Else); err != nil {
		return err
	}
	c.emitter.PatchJump(toEnd)
	return nil
}

func (c *Compiler) compileWhile(n *ast.WhileStmt) error {
	start := c.emitter.CurrentOffset()
	c.emitter.EnterLoop(start)

	ct, err := c.compileExpr(n.Cond)
	if err != nil {
		return err
	}
	if ct.Hash != typesys.Bool.Hash {
		return diag.New(diag.TypeMismatch, spanOf(n.Cond), "while condition must be bool, got %s", ct)
	}
	c.emitter.SetLine(n.Sp.Line)
	exit := c.emitter.EmitJump(bytecode.OpJumpIfFalse)
	c.emitter.RecordBreak(exit)

	if err := c.compileStmt(n.Body); err != nil {
		return err
	}
	c.emitBackwardJump(bytecode.OpJump, start)

	c.emitter.ExitLoop()
	return nil
}

func (c *Compiler) compileDoWhile(n *ast.DoWhileStmt) error {
	start := c.emitter.CurrentOffset()
	c.emitter.EnterLoop(start)

	if err := c.compileStmt(n.Body); err != nil {
		return err
	}

	c.emitter.SetContinueTarget(c.emitter.CurrentOffset())
	ct, err := c.compileExpr(n.Cond)
	if err != nil {
		return err
	}
	if ct.Hash != typesys.Bool.Hash {
		return diag.New(diag.TypeMismatch, spanOf(n.Cond), "do...while condition must be bool, got %s", ct)
	}
	c.emitter.SetLine(n.Sp.Line)
	c.emitBackwardJump(bytecode.OpJumpIfTrue, start)

	c.emitter.ExitLoop()
	return nil
}

func (c *Compiler) compileFor(n *ast.ForStmt) error {
	c.beginScope()
	defer c.endScope()

	if n.Init != nil {
		if err := c.compileStmt(n.Init); err != nil {
			return err
		}
	}

	start := c.emitter.CurrentOffset()
	c.emitter.EnterLoop(start)

	if n.Cond != nil {
		ct, err := c.compileExpr(n.Cond)
		if err != nil {
			return err
		}
		if ct.Hash != typesys.Bool.Hash {
			return diag.New(diag.TypeMismatch, spanOf(n.Cond), "for condition must be bool, got %s", ct)
		}
		c.emitter.SetLine(n.Sp.Line)
		exit := c.emitter.EmitJump(bytecode.OpJumpIfFalse)
		c.emitter.RecordBreak(exit)
	}

	if err := c.compileStmt(n.Body); err != nil {
		return err
	}

	update := c.emitter.CurrentOffset()
	c.emitter.SetContinueTarget(update)
	for _, u := range n.Update {
		ut, err := c.compileExpr(u)
		if err != nil {
			return err
		}
		if !ut.IsVoid() {
			c.emitter.EmitSimple(bytecode.OpPop)
		}
	}
	c.emitBackwardJump(bytecode.OpJump, start)

	c.emitter.ExitLoop()
	return nil
}

// compileSwitch lowers to a flat test-and-branch chain: every case's
// subject comparison runs up front, each jumping into its body on a
// match; bodies then follow in declaration order so a case with no
// break falls straight into the next one's statements.
func (c *Compiler) compileSwitch(n *ast.SwitchStmt) error {
	defaultCount := 0
	for _, cs := range n.Cases {
		if cs.IsDefault {
			defaultCount++
		}
	}
	if defaultCount > 1 {
		return diag.New(diag.DuplicateDefault, n.Sp, "switch has more than one default case")
	}

	c.beginScope()
	defer c.endScope()

	st, err := c.compileExpr(n.Subject)
	if err != nil {
		return err
	}
	if !typesys.IsPrimitive(st.Hash) && len(c.Registry.FindMethods(st.Hash, "opEquals")) == 0 {
		return diag.New(diag.TypeMismatch, n.Subject.Span(),
			"switch subject type %s needs opEquals to be usable in a switch", st)
	}
	subjSlot, err := c.declareLocal("$switch", st, n)
	if err != nil {
		return err
	}
	c.emitter.Emit(bytecode.OpSetLocal, 0, subjSlot)

	c.emitter.EnterSwitch()

	bodyLabels := make([]bytecode.Label, len(n.Cases))
	defaultIdx := -1
	for i, cs := range n.Cases {
		if cs.IsDefault {
			defaultIdx = i
			continue
		}
		c.emitter.Emit(bytecode.OpGetLocal, 0, subjSlot)
		et, err := c.typeOf(cs.Expr)
		if err != nil {
			return err
		}
		res, err := operators.ResolveBinary(c.Registry, operators.Equal, st, et)
		if err != nil {
			return err
		}
		if res.LeftConv != nil {
			c.emitter.EmitSimple(*res.LeftConv)
		}
		if _, err := c.compileExpr(cs.Expr); err != nil {
			return err
		}
		if res.RightConv != nil {
			c.emitter.EmitSimple(*res.RightConv)
		}
		c.emitter.SetLine(cs.Expr.Span().Line)
		switch res.Kind {
		case operators.Primitive, operators.HandleIdentity:
			c.emitter.EmitSimple(res.Opcode)
		case operators.MethodOnLeft, operators.MethodOnRight:
			c.emitter.EmitCall(bytecode.OpCall, uint64(res.Method), 1)
			if res.PostCompare != nil {
				c.emitter.Emit(bytecode.OpPushZero, 0, 0)
				c.emitter.EmitSimple(*res.PostCompare)
			}
		}
		if res.Negate {
			c.emitter.EmitSimple(bytecode.OpLogNot)
		}
		bodyLabels[i] = c.emitter.EmitJump(bytecode.OpJumpIfTrue)
	}

	missLabel := c.emitter.EmitJump(bytecode.OpJump)
	if defaultIdx < 0 {
		c.emitter.RecordBreak(missLabel)
	}

	for i, cs := range n.Cases {
		if cs.IsDefault {
			c.emitter.PatchJump(missLabel)
		} else {
			c.emitter.PatchJump(bodyLabels[i])
		}
		for _, s := range cs.Stmts {
			if err := c.compileStmt(s); err != nil {
				return err
			}
		}
	}

	c.emitter.ExitSwitch()
	return nil
}

func (c *Compiler) compileReturn(n *ast.ReturnStmt) error {
	if n.Value == nil {
		if !c.returnType.IsVoid() {
			return diag.New(diag.TypeMismatch, n.Sp, "missing return value, function returns %s", c.returnType)
		}
		c.emitter.SetLine(n.Sp.Line)
		c.emitter.EmitSimple(bytecode.OpReturnVoid)
		return nil
	}
	if c.returnType.IsVoid() {
		return diag.New(diag.TypeMismatch, spanOf(n.Value), "void function cannot return a value")
	}
	vt, err := c.compileExpr(n.Value)
	if err != nil {
		return err
	}
	conv, ok := convert.Classify(c.Registry, vt, c.returnType)
	if !ok || !conv.Implicit {
		return diag.New(diag.TypeMismatch, spanOf(n.Value), "cannot return %s as %s", vt, c.returnType)
	}
	c.emitConversion(conv, vt, c.returnType)
	c.emitter.SetLine(n.Sp.Line)
	c.emitter.EmitSimple(bytecode.OpReturn)
	return nil
}

// emitBackwardJump emits op targeting an offset already passed,
// computing the same signed relative encoding Emitter's own PatchJump
// uses. Emitter only exposes forward patching (EmitJump now, PatchJump
// to "here" later); loop back-edges need the opposite, so this walks
// the Chunk/Instruction API Emitter itself is built on.
func (c *Compiler) emitBackwardJump(op bytecode.OpCode, target int) {
	idx := c.emitter.Emit(op, 0, 0)
	chunk := c.emitter.Chunk()
	offset := target - (idx + 1)
	chunk.Code[idx] = chunk.Code[idx].WithB(uint16(int16(offset)))
}
