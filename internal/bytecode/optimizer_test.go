package bytecode

import "testing"

func TestOptimizeRemovesPushPopPair(t *testing.T) {
	c := NewChunk("f")
	c.Write(MakeSimple(OpGetLocal), 1)
	c.Write(MakeSimple(OpPop), 1)
	c.Write(MakeSimple(OpReturnVoid), 1)

	Optimize(c)

	if len(c.Code) != 1 {
		t.Fatalf("expected push/pop pair removed, got %d instructions", len(c.Code))
	}
	if c.Code[0].OpCode() != OpReturnVoid {
		t.Errorf("remaining instruction = %v, want OpReturnVoid", c.Code[0].OpCode())
	}
}

func TestOptimizeLeavesImpureSequenceAlone(t *testing.T) {
	c := NewChunk("f")
	c.Write(MakeSimple(OpCall), 1)
	c.Write(MakeSimple(OpPop), 1)

	Optimize(c)

	if len(c.Code) != 2 {
		t.Errorf("a Call followed by Pop must not be treated as a dead pair, got %d instructions", len(c.Code))
	}
}

func TestOptimizeRetargetsJumpsAcrossRemoval(t *testing.T) {
	e := NewEmitter("f")
	e.EmitSimple(OpGetLocal) // 0: removed
	e.EmitSimple(OpPop)      // 1: removed
	jump := e.EmitJump(OpJump) // 2
	e.EmitSimple(OpReturnVoid) // 3
	e.PatchJump(jump)          // targets offset 4 (post-optimize: offset 2)

	c := e.Chunk()
	Optimize(c)

	if len(c.Code) != 2 {
		t.Fatalf("expected 2 instructions after removing the dead pair, got %d", len(c.Code))
	}
	jumpInst := c.Code[0]
	if jumpInst.OpCode() != OpJump {
		t.Fatalf("expected the jump to survive at index 0, got %v", jumpInst.OpCode())
	}
	target := 0 + 1 + int(jumpInst.SignedB())
	if target != len(c.Code) {
		t.Errorf("jump should retarget to the new end-of-chunk offset %d, got %d", len(c.Code), target)
	}
}

func TestOptimizeNoOpOnCleanChunk(t *testing.T) {
	c := NewChunk("f")
	c.Write(MakeSimple(OpGetLocal), 1)
	c.Write(MakeSimple(OpReturnVoid), 1)
	before := append([]Instruction(nil), c.Code...)

	Optimize(c)

	if len(c.Code) != len(before) {
		t.Fatalf("Optimize should be a no-op when there is nothing to remove")
	}
	for i := range before {
		if c.Code[i] != before[i] {
			t.Errorf("instruction %d changed on a no-op pass", i)
		}
	}
}
