package bytecode

import "testing"

func TestMakeEncoding(t *testing.T) {
	tests := []struct {
		name     string
		op       OpCode
		a        byte
		b        uint16
		expected Instruction
	}{
		{"no operands", OpReturnVoid, 0, 0, Instruction(OpReturnVoid)},
		{"local slot 5", OpGetLocal, 0, 5, Instruction(uint32(OpGetLocal) | 5<<16)},
		{"jump offset 100", OpJump, 0, 100, Instruction(uint32(OpJump) | 100<<16)},
		{"call with 3 args, hash index 10", OpCall, 3, 10, Instruction(uint32(OpCall) | 3<<8 | 10<<16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := Make(tt.op, tt.a, tt.b)
			if inst != tt.expected {
				t.Errorf("Make() = 0x%08X, want 0x%08X", inst, tt.expected)
			}
		})
	}
}

func TestMakeSimple(t *testing.T) {
	inst := MakeSimple(OpPop)
	if inst.OpCode() != OpPop {
		t.Errorf("OpCode() = %v, want OpPop", inst.OpCode())
	}
	if inst.A() != 0 || inst.B() != 0 {
		t.Errorf("MakeSimple should zero both operands, got a=%d b=%d", inst.A(), inst.B())
	}
}

func TestAccessors(t *testing.T) {
	inst := Make(OpCallMethod, 2, 40000)
	if got := inst.OpCode(); got != OpCallMethod {
		t.Errorf("OpCode() = %v, want OpCallMethod", got)
	}
	if got := inst.A(); got != 2 {
		t.Errorf("A() = %d, want 2", got)
	}
	if got := inst.B(); got != 40000 {
		t.Errorf("B() = %d, want 40000", got)
	}
}

func TestSignedB(t *testing.T) {
	tests := []struct {
		name string
		b    uint16
		want int16
	}{
		{"positive offset", 5, 5},
		{"negative offset", uint16(int16(-5)), -5},
		{"max negative", 0x8000, -32768},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := Make(OpJump, 0, tt.b)
			if got := inst.SignedB(); got != tt.want {
				t.Errorf("SignedB() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWithB(t *testing.T) {
	inst := Make(OpJumpIfFalse, 7, 1)
	patched := inst.WithB(200)
	if patched.OpCode() != OpJumpIfFalse || patched.A() != 7 {
		t.Errorf("WithB must preserve opcode and A, got op=%v a=%d", patched.OpCode(), patched.A())
	}
	if patched.B() != 200 {
		t.Errorf("WithB() B = %d, want 200", patched.B())
	}
}
