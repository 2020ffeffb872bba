package bytecode

// Label identifies a jump instruction awaiting a target; it is the
// instruction's offset in the chunk at the moment it was emitted.
type Label int

type scopeKind byte

const (
	scopeLoop scopeKind = iota
	scopeSwitch
)

type controlScope struct {
	kind           scopeKind
	continueTarget int
	breakJumps     []Label
	continueJumps  []Label
}

// Emitter is the only component that knows opcode encodings; the
// expression/statement/class compilers emit through it exclusively.
// It owns one Chunk and a stack of loop/switch scopes for break and
// continue bookkeeping.
type Emitter struct {
	chunk  *Chunk
	line   int
	scopes []controlScope
}

// NewEmitter creates an emitter over a fresh chunk for the named
// function.
func NewEmitter(name string) *Emitter {
	return &Emitter{chunk: NewChunk(name)}
}

// Chunk returns the chunk under construction. Callers should treat it
// as read-only until emission for this function is complete.
func (e *Emitter) Chunk() *Chunk { return e.chunk }

// SetLine records the source line attributed to subsequent emissions.
func (e *Emitter) SetLine(line int) { e.line = line }

// CurrentOffset returns the offset the next emitted instruction will
// occupy.
func (e *Emitter) CurrentOffset() int { return len(e.chunk.Code) }

// EmitSimple emits an operand-less instruction.
func (e *Emitter) EmitSimple(op OpCode) int {
	return e.chunk.Write(MakeSimple(op), e.line)
}

// Emit emits an instruction with an A and B operand.
func (e *Emitter) Emit(op OpCode, a byte, b uint16) int {
	return e.chunk.Write(Make(op, a, b), e.line)
}

// EmitCall emits a Call-family or New-family instruction: argc in A,
// the target hash interned into the chunk's hash pool and indexed by
// B.
func (e *Emitter) EmitCall(op OpCode, hash uint64, argc int) int {
	return e.Emit(op, byte(argc), uint16(e.chunk.AddHash(hash)))
}

// EmitJump emits a jump-family opcode with a placeholder offset and
// returns a Label to pass to PatchJump once the target is known.
func (e *Emitter) EmitJump(op OpCode) Label {
	idx := e.chunk.Write(Make(op, 0, 0), e.line)
	return Label(idx)
}

// PatchJump rewrites the jump at label to target the current offset.
func (e *Emitter) PatchJump(label Label) {
	e.patchTo(label, e.CurrentOffset())
}

func (e *Emitter) patchTo(label Label, target int) {
	idx := int(label)
	offset := target - (idx + 1)
	e.chunk.Code[idx] = e.chunk.Code[idx].WithB(uint16(int16(offset)))
}

// EnterLoop pushes a new loop scope whose continue target defaults to
// start (the condition test of a while loop); for and do-while loops
// move it with SetContinueTarget.
func (e *Emitter) EnterLoop(start int) {
	e.scopes = append(e.scopes, controlScope{kind: scopeLoop, continueTarget: start})
}

// EnterSwitch pushes a new switch scope. Switch has no continue
// target of its own; continue inside a switch resolves against the
// nearest enclosing loop scope, which the statement compiler locates
// by walking past switch scopes before calling RecordContinue.
func (e *Emitter) EnterSwitch() {
	e.scopes = append(e.scopes, controlScope{kind: scopeSwitch})
}

// SetContinueTarget overrides the innermost loop scope's continue
// target — used by for-loops, where continue must jump to the update
// clause rather than back to the condition test, and by do-while loops,
// where it must jump to the trailing condition test.
func (e *Emitter) SetContinueTarget(offset int) {
	e.scopes[len(e.scopes)-1].continueTarget = offset
}

// RecordBreak registers an unresolved break jump against the
// innermost scope; it is patched to the loop/switch end when that
// scope exits.
func (e *Emitter) RecordBreak(label Label) {
	n := len(e.scopes) - 1
	e.scopes[n].breakJumps = append(e.scopes[n].breakJumps, label)
}

// RecordContinue registers an unresolved continue jump against the
// nearest loop scope, skipping over any intervening switch scopes.
func (e *Emitter) RecordContinue(label Label) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if e.scopes[i].kind == scopeLoop {
			e.scopes[i].continueJumps = append(e.scopes[i].continueJumps, label)
			return
		}
	}
}

// ExitLoop pops the current loop scope, patching every recorded break
// jump to the current offset and every recorded continue jump to the
// scope's continue target.
func (e *Emitter) ExitLoop() {
	e.exitScope()
}

// ExitSwitch pops the current switch scope, patching every recorded
// break jump to the current offset (switch has no continue target).
func (e *Emitter) ExitSwitch() {
	e.exitScope()
}

func (e *Emitter) exitScope() {
	n := len(e.scopes) - 1
	scope := e.scopes[n]
	end := e.CurrentOffset()
	for _, l := range scope.breakJumps {
		e.patchTo(l, end)
	}
	for _, l := range scope.continueJumps {
		e.patchTo(l, scope.continueTarget)
	}
	e.scopes = e.scopes[:n]
}

// InLoopOrSwitch reports whether a break is currently legal.
func (e *Emitter) InLoopOrSwitch() bool { return len(e.scopes) > 0 }

// InLoop reports whether a continue is currently legal.
func (e *Emitter) InLoop() bool {
	for _, s := range e.scopes {
		if s.kind == scopeLoop {
			return true
		}
	}
	return false
}
