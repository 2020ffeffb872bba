package bytecode

// Optimize runs one bounded, local peephole pass over chunk in place:
// it removes every adjacent (push, Pop) pair, which the expression
// compiler produces whenever a checked conversion turns out to be an
// identity and whenever a statement discards an expression's value.
// Removing instructions shifts every later offset, so jump targets are
// retargeted in the same pass. There is no constant folding, dead-code
// elimination, or inlining here — those would need a data-flow model
// this package has no reason to carry.
func Optimize(chunk *Chunk) {
	n := len(chunk.Code)
	remove := make([]bool, n)
	any := false
	for i := 0; i+1 < n; i++ {
		if remove[i] {
			continue
		}
		if isPurePush(chunk.Code[i].OpCode()) && chunk.Code[i+1].OpCode() == OpPop {
			remove[i] = true
			remove[i+1] = true
			any = true
		}
	}
	if !any {
		return
	}

	oldToNew := make([]int, n+1)
	newCode := make([]Instruction, 0, n)
	newLines := make([]LineInfo, 0, len(chunk.Lines))
	for i := 0; i < n; i++ {
		oldToNew[i] = len(newCode)
		if remove[i] {
			continue
		}
		newCode = append(newCode, chunk.Code[i])
		line := chunk.LineAt(i)
		if len(newLines) == 0 || newLines[len(newLines)-1].Line != line {
			newLines = append(newLines, LineInfo{InstructionOffset: len(newCode) - 1, Line: line})
		}
	}
	oldToNew[n] = len(newCode)

	newIdx := 0
	for i := 0; i < n; i++ {
		if remove[i] {
			continue
		}
		inst := newCode[newIdx]
		if IsJump(inst.OpCode()) {
			oldTarget := i + 1 + int(inst.SignedB())
			if oldTarget < 0 {
				oldTarget = 0
			} else if oldTarget > n {
				oldTarget = n
			}
			newTarget := oldToNew[oldTarget]
			newCode[newIdx] = inst.WithB(uint16(int16(newTarget - (newIdx + 1))))
		}
		newIdx++
	}

	chunk.Code = newCode
	chunk.Lines = newLines
}

// isPurePush reports whether op only pushes a value with no other
// observable effect, making a following Pop a safe no-op pair.
func isPurePush(op OpCode) bool {
	switch op {
	case OpPushZero, OpPushTrue, OpPushFalse, OpPushI32, OpPushI64,
		OpPushF32, OpPushF64, OpPushConst, OpGetLocal, OpGetGlobal,
		OpGetThis, OpDup:
		return true
	default:
		return false
	}
}
