package bytecode

import (
	"fmt"
	"io"
)

// Disassembler renders a Chunk as a human-readable instruction
// listing, for compiler debugging and golden-output tests.
type Disassembler struct {
	w     io.Writer
	chunk *Chunk
}

// NewDisassembler creates a disassembler writing to w.
func NewDisassembler(chunk *Chunk, w io.Writer) *Disassembler {
	return &Disassembler{w: w, chunk: chunk}
}

// Disassemble prints the chunk's name, pool sizes, and every
// instruction in order.
func (d *Disassembler) Disassemble() {
	fmt.Fprintf(d.w, "== %s ==\n", d.chunk.Name)
	fmt.Fprintf(d.w, "instructions=%d i32=%d i64=%d f32=%d f64=%d str=%d hashes=%d\n\n",
		len(d.chunk.Code), len(d.chunk.ConstI32), len(d.chunk.ConstI64),
		len(d.chunk.ConstF32), len(d.chunk.ConstF64), len(d.chunk.ConstStr), len(d.chunk.Hashes))

	for offset := range d.chunk.Code {
		d.DisassembleInstruction(offset)
	}
}

// DisassembleInstruction prints one instruction, annotated with its
// resolved operand where that adds information beyond the raw number.
func (d *Disassembler) DisassembleInstruction(offset int) {
	inst := d.chunk.Code[offset]
	op := inst.OpCode()
	line := d.chunk.LineAt(offset)

	fmt.Fprintf(d.w, "%04d %4d  %-12s", offset, line, op.String())

	switch {
	case IsJump(op):
		fmt.Fprintf(d.w, " -> %04d\n", offset+1+int(inst.SignedB()))
	case op == OpPushConst:
		fmt.Fprintf(d.w, " str[%d]\n", inst.B())
	case op == OpPushI32:
		fmt.Fprintf(d.w, " %d\n", d.chunk.ConstI32[inst.B()])
	case op == OpPushI64:
		fmt.Fprintf(d.w, " %d\n", d.chunk.ConstI64[inst.B()])
	case op == OpPushF32:
		fmt.Fprintf(d.w, " %g\n", d.chunk.ConstF32[inst.B()])
	case op == OpPushF64:
		fmt.Fprintf(d.w, " %g\n", d.chunk.ConstF64[inst.B()])
	case op == OpCall || op == OpCallMethod || op == OpCallVirtual || op == OpNew || op == OpNewFactory:
		fmt.Fprintf(d.w, " argc=%d hash=%#x\n", inst.A(), d.chunk.Hashes[inst.B()])
	case op == OpGetLocal || op == OpSetLocal || op == OpGetGlobal || op == OpSetGlobal:
		fmt.Fprintf(d.w, " slot=%d\n", inst.B())
	case op == OpPreIncI32 || op == OpPreDecI32 || op == OpPostIncI32 || op == OpPostDecI32 ||
		op == OpPreIncI64 || op == OpPreDecI64 || op == OpPostIncI64 || op == OpPostDecI64:
		fmt.Fprintf(d.w, " slot=%d\n", inst.B())
	case op == OpGetField || op == OpSetField:
		fmt.Fprintf(d.w, " field=%d\n", inst.B())
	default:
		fmt.Fprintln(d.w)
	}
}
