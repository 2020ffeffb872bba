package bytecode

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// DebugJSON projects a chunk into a JSON document for tooling that
// wants structured access to a compiled function's bytecode rather
// than the text disassembly — e.g. a `disasm --json` CLI mode or a
// snapshot test keyed on gjson paths instead of a printed listing.
// sjson builds the document incrementally because a chunk's arrays
// are independently length-varying pools, not a single fixed struct.
func (c *Chunk) DebugJSON() (string, error) {
	doc := "{}"
	var err error
	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("name", c.Name)
	set("frameSize", c.FrameSize)

	for i, inst := range c.Code {
		base := fmt.Sprintf("code.%d", i)
		set(base+".op", inst.OpCode().String())
		set(base+".a", inst.A())
		set(base+".b", inst.B())
		set(base+".line", c.LineAt(i))
	}
	for i, v := range c.ConstI32 {
		set(fmt.Sprintf("constants.i32.%d", i), v)
	}
	for i, v := range c.ConstI64 {
		set(fmt.Sprintf("constants.i64.%d", i), v)
	}
	for i, v := range c.ConstF32 {
		set(fmt.Sprintf("constants.f32.%d", i), v)
	}
	for i, v := range c.ConstF64 {
		set(fmt.Sprintf("constants.f64.%d", i), v)
	}
	for i, v := range c.ConstStr {
		set(fmt.Sprintf("constants.str.%d", i), v)
	}
	for i, v := range c.Hashes {
		set(fmt.Sprintf("hashes.%d", i), fmt.Sprintf("%#x", v))
	}
	for i, l := range c.Locals {
		set(fmt.Sprintf("locals.%d.name", i), l.Name)
		set(fmt.Sprintf("locals.%d.hash", i), fmt.Sprintf("%#x", l.Hash))
	}

	return doc, err
}
