package overload

import (
	"testing"

	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

func classHash(name string) ident.TypeHash { return ident.HashType(name) }

func register(t *testing.T, reg *registry.Registry, def *registry.FunctionDef) {
	t.Helper()
	if err := reg.RegisterFunction(def); err != nil {
		t.Fatal(err)
	}
}

func fn(name string, hashSeed string, params ...registry.ParamEntry) *registry.FunctionDef {
	paramHashes := make([]ident.TypeHash, len(params))
	for i, p := range params {
		paramHashes[i] = p.Type.Hash
	}
	return &registry.FunctionDef{
		Hash:   ident.HashFunction(ident.KindFreeFunction, hashSeed, 0, paramHashes, false, ""),
		Name:   name,
		Params: params,
	}
}

func TestResolveSingleCandidateExactMatch(t *testing.T) {
	reg := registry.New()
	f := fn("f", "f#1", registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)})
	register(t, reg, f)

	res, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Function != f.Hash || res.TotalCost != 0 {
		t.Errorf("expected an exact-match resolution at cost 0, got %+v", res)
	}
}

func TestResolveArityFilterDropsTooManyArgs(t *testing.T) {
	reg := registry.New()
	f := fn("f", "f#2", registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)})
	register(t, reg, f)

	_, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32), typesys.New(ident.Int32)},
	})
	if err == nil {
		t.Fatalf("expected too many arguments to fail")
	}
	if derr, ok := err.(*diag.Error); !ok || derr.Kind != diag.ArgumentCountMismatch {
		t.Errorf("expected ArgumentCountMismatch, got %v", err)
	}
}

func TestResolveDefaultParameterFillsMissingSlot(t *testing.T) {
	reg := registry.New()
	f := fn("f", "f#3",
		registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)},
		registry.ParamEntry{Name: "b", Type: typesys.New(ident.Int32), HasDefault: true},
	)
	register(t, reg, f)

	res, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Function != f.Hash {
		t.Errorf("expected the default-backed overload to resolve")
	}
}

func TestResolveMissingRequiredParamFails(t *testing.T) {
	reg := registry.New()
	f := fn("f", "f#4",
		registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)},
		registry.ParamEntry{Name: "b", Type: typesys.New(ident.Int32)},
	)
	register(t, reg, f)

	_, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32)},
	})
	if err == nil {
		t.Fatalf("expected a missing required parameter to fail")
	}
}

func TestResolveNamedArgumentReordering(t *testing.T) {
	reg := registry.New()
	f := fn("f", "f#5",
		registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)},
		registry.ParamEntry{Name: "b", Type: typesys.New(ident.StringType)},
	)
	register(t, reg, f)

	res, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.StringType), typesys.New(ident.Int32)},
		Names:      []string{"b", "a"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Function != f.Hash || res.TotalCost != 0 {
		t.Errorf("expected named-argument reordering to resolve at cost 0, got %+v", res)
	}
}

func TestResolveNamedArgumentUnknownNameFails(t *testing.T) {
	reg := registry.New()
	f := fn("f", "f#6", registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)})
	register(t, reg, f)

	_, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32)},
		Names:      []string{"nope"},
	})
	if err == nil {
		t.Fatalf("expected an unknown named argument to fail")
	}
}

func TestResolveNamedArgumentDuplicateSlotFails(t *testing.T) {
	reg := registry.New()
	f := fn("f", "f#7",
		registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)},
		registry.ParamEntry{Name: "b", Type: typesys.New(ident.Int32), HasDefault: true},
	)
	register(t, reg, f)

	_, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32), typesys.New(ident.Int32)},
		Names:      []string{"a", "a"},
	})
	if err == nil {
		t.Fatalf("expected a duplicate named-argument slot to fail")
	}
}

func TestResolveRankPicksCheaperOverload(t *testing.T) {
	reg := registry.New()
	exact := fn("f", "f#8a", registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)})
	widening := fn("f", "f#8b", registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int64)})
	register(t, reg, exact)
	register(t, reg, widening)

	res, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{widening.Hash, exact.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Function != exact.Hash {
		t.Errorf("expected the exact-match overload to win over widening, got %+v", res)
	}
}

func TestResolveNoViableCandidateWrongTypes(t *testing.T) {
	reg := registry.New()
	str := &registry.ClassEntry{Hash: classHash("Str"), Name: "Str", Qualified: "Str"}
	if err := reg.RegisterType(str); err != nil {
		t.Fatal(err)
	}
	f := fn("f", "f#9", registry.ParamEntry{Name: "a", Type: typesys.New(str.Hash)})
	register(t, reg, f)

	_, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32)},
	})
	if err == nil {
		t.Fatalf("expected incompatible argument types to fail")
	}
	if derr, ok := err.(*diag.Error); !ok || derr.Kind != diag.NoViableCandidate {
		t.Errorf("expected NoViableCandidate, got %v", err)
	}
}

func TestResolveTieBreakNonTemplateWinsOverTemplate(t *testing.T) {
	reg := registry.New()
	generic := fn("f", "f#10a", registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)})
	generic.Traits.IsTemplate = true
	concrete := fn("f", "f#10b", registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)})
	register(t, reg, generic)
	register(t, reg, concrete)

	res, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{generic.Hash, concrete.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Function != concrete.Hash {
		t.Errorf("expected the non-template overload to win an exact tie, got %+v", res)
	}
}

func TestResolveAmbiguousWhenNoDominance(t *testing.T) {
	reg := registry.New()
	base := &registry.ClassEntry{Hash: classHash("Base"), Name: "Base", Qualified: "Base"}
	derived := &registry.ClassEntry{Hash: classHash("Derived"), Name: "Derived", Qualified: "Derived", Base: base.Hash}
	if err := reg.RegisterType(base); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterType(derived); err != nil {
		t.Fatal(err)
	}

	f := fn("f", "f#11a",
		registry.ParamEntry{Name: "a", Type: typesys.New(base.Hash).Handle()},
		registry.ParamEntry{Name: "b", Type: typesys.New(derived.Hash).Handle()},
	)
	g := fn("f", "f#11b",
		registry.ParamEntry{Name: "a", Type: typesys.New(derived.Hash).Handle()},
		registry.ParamEntry{Name: "b", Type: typesys.New(base.Hash).Handle()},
	)
	register(t, reg, f)
	register(t, reg, g)

	args := []typesys.DataType{typesys.New(derived.Hash).Handle(), typesys.New(derived.Hash).Handle()}
	_, err := Resolve(reg, Call{Candidates: []ident.FunctionHash{f.Hash, g.Hash}, Args: args})
	if err == nil {
		t.Fatalf("expected a call with no pairwise-dominant candidate to be ambiguous")
	}
	derr, ok := err.(*diag.Error)
	if !ok || derr.Kind != diag.AmbiguousOverload {
		t.Fatalf("expected AmbiguousOverload, got %v", err)
	}
	if len(derr.Candidates) != 2 {
		t.Errorf("expected both tied candidates listed, got %v", derr.Candidates)
	}
}

func TestResolveUnregisteredHashIsSkipped(t *testing.T) {
	reg := registry.New()
	f := fn("f", "f#12", registry.ParamEntry{Name: "a", Type: typesys.New(ident.Int32)})
	register(t, reg, f)

	res, err := Resolve(reg, Call{
		Candidates: []ident.FunctionHash{ident.FunctionHash(0xDEAD), f.Hash},
		Args:       []typesys.DataType{typesys.New(ident.Int32)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Function != f.Hash {
		t.Errorf("expected the real candidate to resolve despite a dangling hash, got %+v", res)
	}
}
