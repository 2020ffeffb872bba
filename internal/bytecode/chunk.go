package bytecode

// LineInfo run-length encodes instruction offset to source line,
// recording a new entry only when the line changes.
type LineInfo struct {
	InstructionOffset int
	Line              int
}

// LocalSlot describes one entry of a function's local variable table,
// exposed on the module artifact alongside the chunk.
type LocalSlot struct {
	Name string
	Hash uint64 // the local's DataType.Hash; typesys isn't imported here to keep this package dependency-free
}

// Chunk is the append-only-during-emission, read-only-afterward unit of
// compiled bytecode for one function. Constant pools are deduplicated
// per kind; a chunk owns no references to other chunks.
type Chunk struct {
	Name  string
	Code  []Instruction
	Lines []LineInfo

	ConstI32 []int32
	ConstI64 []int64
	ConstF32 []float32
	ConstF64 []float64
	ConstStr []string

	// Hashes is the function/type-hash pool that Call-family and
	// New-family operands index into (64-bit hashes don't fit the
	// 16-bit B operand directly).
	Hashes []uint64

	Locals    []LocalSlot
	FrameSize int
}

// NewChunk creates an empty chunk for the named function.
func NewChunk(name string) *Chunk {
	return &Chunk{Name: name}
}

// Write appends an instruction, recording line info, and returns its
// offset.
func (c *Chunk) Write(inst Instruction, line int) int {
	idx := len(c.Code)
	c.Code = append(c.Code, inst)
	if len(c.Lines) == 0 || c.Lines[len(c.Lines)-1].Line != line {
		c.Lines = append(c.Lines, LineInfo{InstructionOffset: idx, Line: line})
	}
	return idx
}

// LineAt returns the source line recorded for instruction index idx,
// or 0 if no line info is available.
func (c *Chunk) LineAt(idx int) int {
	if len(c.Lines) == 0 {
		return 0
	}
	lo, hi, result := 0, len(c.Lines)-1, 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if c.Lines[mid].InstructionOffset <= idx {
			result = c.Lines[mid].Line
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return result
}

// AddConstI32 interns v, returning its pool index.
func (c *Chunk) AddConstI32(v int32) int {
	for i, e := range c.ConstI32 {
		if e == v {
			return i
		}
	}
	c.ConstI32 = append(c.ConstI32, v)
	return len(c.ConstI32) - 1
}

// AddConstI64 interns v, returning its pool index.
func (c *Chunk) AddConstI64(v int64) int {
	for i, e := range c.ConstI64 {
		if e == v {
			return i
		}
	}
	c.ConstI64 = append(c.ConstI64, v)
	return len(c.ConstI64) - 1
}

// AddConstF32 interns v, returning its pool index.
func (c *Chunk) AddConstF32(v float32) int {
	for i, e := range c.ConstF32 {
		if e == v {
			return i
		}
	}
	c.ConstF32 = append(c.ConstF32, v)
	return len(c.ConstF32) - 1
}

// AddConstF64 interns v, returning its pool index.
func (c *Chunk) AddConstF64(v float64) int {
	for i, e := range c.ConstF64 {
		if e == v {
			return i
		}
	}
	c.ConstF64 = append(c.ConstF64, v)
	return len(c.ConstF64) - 1
}

// AddConstStr interns s, returning its pool index. String literals are
// deduplicated; their factory is invoked at construction time by the
// expression compiler, not by this pool.
func (c *Chunk) AddConstStr(s string) int {
	for i, e := range c.ConstStr {
		if e == s {
			return i
		}
	}
	c.ConstStr = append(c.ConstStr, s)
	return len(c.ConstStr) - 1
}

// AddHash interns h into the function/type-hash pool that Call-family
// and New-family operands reference, returning its pool index.
func (c *Chunk) AddHash(h uint64) int {
	for i, e := range c.Hashes {
		if e == h {
			return i
		}
	}
	c.Hashes = append(c.Hashes, h)
	return len(c.Hashes) - 1
}
