package bytecode

import "testing"

func TestChunkWriteAndLineAt(t *testing.T) {
	c := NewChunk("f")
	c.Write(MakeSimple(OpPushZero), 1)
	c.Write(MakeSimple(OpPushZero), 1)
	c.Write(MakeSimple(OpAddI32), 2)
	c.Write(MakeSimple(OpReturn), 2)

	tests := []struct {
		idx  int
		want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 2},
	}
	for _, tt := range tests {
		if got := c.LineAt(tt.idx); got != tt.want {
			t.Errorf("LineAt(%d) = %d, want %d", tt.idx, got, tt.want)
		}
	}
	if len(c.Lines) != 2 {
		t.Errorf("expected line table to collapse runs, got %d entries", len(c.Lines))
	}
}

func TestLineAtEmptyChunk(t *testing.T) {
	c := NewChunk("empty")
	if got := c.LineAt(0); got != 0 {
		t.Errorf("LineAt on empty chunk = %d, want 0", got)
	}
}

func TestAddConstDeduplicates(t *testing.T) {
	c := NewChunk("f")
	i1 := c.AddConstI32(7)
	i2 := c.AddConstI32(9)
	i3 := c.AddConstI32(7)
	if i1 != i3 {
		t.Errorf("AddConstI32 should dedup equal values: got %d and %d", i1, i3)
	}
	if i1 == i2 {
		t.Errorf("AddConstI32 should not merge distinct values")
	}
	if len(c.ConstI32) != 2 {
		t.Errorf("expected 2 distinct i32 constants, got %d", len(c.ConstI32))
	}
}

func TestAddConstStrDeduplicates(t *testing.T) {
	c := NewChunk("f")
	a := c.AddConstStr("hello")
	b := c.AddConstStr("world")
	d := c.AddConstStr("hello")
	if a != d || a == b {
		t.Errorf("AddConstStr dedup broken: a=%d b=%d d=%d", a, b, d)
	}
}

func TestAddHashDeduplicates(t *testing.T) {
	c := NewChunk("f")
	a := c.AddHash(0xDEADBEEF)
	b := c.AddHash(0xCAFEF00D)
	d := c.AddHash(0xDEADBEEF)
	if a != d || a == b {
		t.Errorf("AddHash dedup broken: a=%d b=%d d=%d", a, b, d)
	}
}

func TestAddConstEachKindIndependent(t *testing.T) {
	c := NewChunk("f")
	c.AddConstI64(1)
	c.AddConstF32(1)
	c.AddConstF64(1)
	if len(c.ConstI64) != 1 || len(c.ConstF32) != 1 || len(c.ConstF64) != 1 {
		t.Errorf("expected one entry per pool, got i64=%d f32=%d f64=%d",
			len(c.ConstI64), len(c.ConstF32), len(c.ConstF64))
	}
}
