package bytecode

import "testing"

func TestEmitJumpPatchForward(t *testing.T) {
	e := NewEmitter("f")
	label := e.EmitJump(OpJumpIfFalse)
	e.EmitSimple(OpPushZero)
	e.EmitSimple(OpReturn)
	e.PatchJump(label)

	inst := e.Chunk().Code[label]
	target := int(label) + 1 + int(inst.SignedB())
	if target != e.CurrentOffset() {
		t.Errorf("patched jump targets %d, want current offset %d", target, e.CurrentOffset())
	}
}

func TestEmitCallInternsHash(t *testing.T) {
	e := NewEmitter("f")
	e.EmitCall(OpCall, 0xABCD, 2)
	e.EmitCall(OpCall, 0xABCD, 1)

	if len(e.Chunk().Hashes) != 1 {
		t.Fatalf("expected hash pool to dedup, got %d entries", len(e.Chunk().Hashes))
	}
	first := e.Chunk().Code[0]
	if first.A() != 2 {
		t.Errorf("argc encoded in A = %d, want 2", first.A())
	}
}

func TestLoopBreakContinue(t *testing.T) {
	e := NewEmitter("f")
	loopStart := e.CurrentOffset()
	e.EnterLoop(loopStart)

	brk := e.EmitJump(OpJumpIfFalse)
	cont := e.EmitJump(OpJump)
	e.RecordBreak(brk)
	e.RecordContinue(cont)
	e.EmitSimple(OpLoop)
	e.ExitLoop()

	end := e.CurrentOffset()

	brkInst := e.Chunk().Code[brk]
	if target := int(brk) + 1 + int(brkInst.SignedB()); target != end {
		t.Errorf("break jump targets %d, want loop end %d", target, end)
	}
	contInst := e.Chunk().Code[cont]
	if target := int(cont) + 1 + int(contInst.SignedB()); target != loopStart {
		t.Errorf("continue jump targets %d, want loop start %d", target, loopStart)
	}
}

func TestContinueSkipsSwitchScope(t *testing.T) {
	e := NewEmitter("f")
	loopStart := e.CurrentOffset()
	e.EnterLoop(loopStart)
	e.EnterSwitch()

	cont := e.EmitJump(OpJump)
	e.RecordContinue(cont)
	e.ExitSwitch()
	e.EmitSimple(OpLoop)
	e.ExitLoop()

	contInst := e.Chunk().Code[cont]
	if target := int(cont) + 1 + int(contInst.SignedB()); target != loopStart {
		t.Errorf("continue inside switch should resolve to enclosing loop start %d, got %d", loopStart, target)
	}
}

func TestSetContinueTargetOverridesForLoopUpdate(t *testing.T) {
	e := NewEmitter("f")
	e.EnterLoop(0)
	updateOffset := 42
	e.SetContinueTarget(updateOffset)

	cont := e.EmitJump(OpJump)
	e.RecordContinue(cont)
	e.ExitLoop()

	contInst := e.Chunk().Code[cont]
	if target := int(cont) + 1 + int(contInst.SignedB()); target != updateOffset {
		t.Errorf("continue should target the overridden update offset %d, got %d", updateOffset, target)
	}
}

func TestInLoopOrSwitchAndInLoop(t *testing.T) {
	e := NewEmitter("f")
	if e.InLoopOrSwitch() || e.InLoop() {
		t.Fatalf("fresh emitter should report no active loop or switch")
	}
	e.EnterSwitch()
	if !e.InLoopOrSwitch() {
		t.Errorf("InLoopOrSwitch should be true inside a switch")
	}
	if e.InLoop() {
		t.Errorf("InLoop should be false inside a bare switch")
	}
	e.EnterLoop(0)
	if !e.InLoop() {
		t.Errorf("InLoop should be true once a loop scope is pushed")
	}
	e.ExitLoop()
	e.ExitSwitch()
}
