package bytecode

import (
	"strings"
	"testing"
)

func TestDisassembleInstructionFormats(t *testing.T) {
	c := NewChunk("add")
	idx := c.AddConstI32(7)
	c.Write(Make(OpPushI32, 0, uint16(idx)), 1)
	c.Write(MakeSimple(OpReturn), 1)

	var sb strings.Builder
	d := NewDisassembler(c, &sb)
	d.Disassemble()

	out := sb.String()
	if !strings.Contains(out, "== add ==") {
		t.Errorf("expected chunk header in output, got %q", out)
	}
	if !strings.Contains(out, "PushI32") || !strings.Contains(out, "7") {
		t.Errorf("expected resolved PushI32 operand in output, got %q", out)
	}
	if !strings.Contains(out, "Return") {
		t.Errorf("expected Return instruction in output, got %q", out)
	}
}

func TestDisassembleJumpShowsTarget(t *testing.T) {
	e := NewEmitter("f")
	label := e.EmitJump(OpJump)
	e.EmitSimple(OpReturnVoid)
	e.PatchJump(label)

	var sb strings.Builder
	NewDisassembler(e.Chunk(), &sb).Disassemble()

	out := sb.String()
	if !strings.Contains(out, "-> 0002") {
		t.Errorf("expected jump to display its resolved target, got %q", out)
	}
}

func TestDisassembleCallShowsHash(t *testing.T) {
	e := NewEmitter("f")
	e.EmitCall(OpCall, 0xABCD, 1)

	var sb strings.Builder
	NewDisassembler(e.Chunk(), &sb).Disassemble()

	out := sb.String()
	if !strings.Contains(out, "argc=1") || !strings.Contains(out, "0xabcd") {
		t.Errorf("expected call operand details in output, got %q", out)
	}
}
