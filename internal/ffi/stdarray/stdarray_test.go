package stdarray

import (
	"testing"

	"github.com/cwbudde/ascript/internal/ffi"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

func TestRegisterDeclaresTemplate(t *testing.T) {
	reg := ffi.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	hashes := reg.Underlying().ResolveType(nil, "array")
	if len(hashes) != 1 {
		t.Fatalf("expected array to resolve to exactly one type, got %d", len(hashes))
	}
}

func TestInstantiateIntArray(t *testing.T) {
	reg := ffi.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	base := reg.Underlying().ResolveType(nil, "array")[0]

	unitReg := registry.New()
	inst := reg.Templates().Bind(unitReg)
	hash, err := inst.Instantiate(base, []typesys.DataType{typesys.Int32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := unitReg.GetType(hash).(*registry.ClassEntry)
	if !ok {
		t.Fatalf("expected array<int> to register as a ClassEntry")
	}
	if entry.Name != "array<int>" {
		t.Fatalf("expected name array<int>, got %q", entry.Name)
	}
	for _, name := range []string{"length", "isEmpty", "clear", "insertLast", "removeLast", "removeAt", "opIndex"} {
		if len(unitReg.FindMethods(hash, name)) == 0 {
			t.Fatalf("expected method %q on the instantiated array", name)
		}
	}
}

func TestInsertLastAndOpIndex(t *testing.T) {
	var data []any
	g := registry.NewScriptGeneric(&data, []any{int32(7)})
	if err := insertLast(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g2 := registry.NewScriptGeneric(&data, []any{uint32(0)})
	if err := opIndex(g2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g2.Return() != int32(7) {
		t.Fatalf("expected 7, got %v", g2.Return())
	}
}

func TestOpIndexOutOfRangeFails(t *testing.T) {
	var data []any
	g := registry.NewScriptGeneric(&data, []any{uint32(0)})
	if err := opIndex(g); err == nil {
		t.Fatalf("expected an out-of-range error on an empty array")
	}
}

func TestRemoveAtShiftsElements(t *testing.T) {
	data := []any{int32(1), int32(2), int32(3)}
	g := registry.NewScriptGeneric(&data, []any{uint32(1)})
	if err := removeAt(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 2 || data[0] != int32(1) || data[1] != int32(3) {
		t.Fatalf("expected [1 3], got %v", data)
	}
}

func TestInstantiateIsSharedAcrossUnits(t *testing.T) {
	reg := ffi.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	base := reg.Underlying().ResolveType(nil, "array")[0]

	regA := registry.New()
	hashA, err := reg.Templates().Bind(regA).Instantiate(base, []typesys.DataType{typesys.Int32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	regB := registry.New()
	hashB, err := reg.Templates().Bind(regB).Instantiate(base, []typesys.DataType{typesys.Int32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashA != hashB {
		t.Fatalf("expected array<int> to hash the same across independently bound registries")
	}
}
