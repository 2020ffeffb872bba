package stdstring

import (
	"testing"

	"github.com/cwbudde/ascript/internal/ffi"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
)

func TestRegisterInstallsStringType(t *testing.T) {
	reg := ffi.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	entry, ok := reg.Underlying().GetType(ident.StringType).(*registry.ClassEntry)
	if !ok {
		t.Fatalf("expected string to register as a ClassEntry under ident.StringType")
	}
	if len(entry.Behaviors.Constructors) != 2 {
		t.Fatalf("expected 2 constructors, got %d", len(entry.Behaviors.Constructors))
	}
	for _, name := range []string{"length", "opAdd", "opEquals", "opCmp", "opImplConv"} {
		if len(reg.Underlying().FindMethods(ident.StringType, name)) == 0 {
			t.Fatalf("expected method %q to be registered", name)
		}
	}
}

func TestOpAddConcatenates(t *testing.T) {
	s := "foo"
	g := registry.NewScriptGeneric(&s, []any{"bar"})
	if err := opAdd(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Return() != "foobar" {
		t.Fatalf("expected foobar, got %v", g.Return())
	}
}

func TestOpEqualsComparesValue(t *testing.T) {
	s := "same"
	g := registry.NewScriptGeneric(&s, []any{"same"})
	if err := opEquals(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Return() != true {
		t.Fatalf("expected equal strings to compare equal")
	}
}

func TestOpCmpOrdering(t *testing.T) {
	s := "abc"
	g := registry.NewScriptGeneric(&s, []any{"abd"})
	if err := opCmp(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Return().(int32) >= 0 {
		t.Fatalf("expected abc < abd, got %v", g.Return())
	}
}

func TestLengthCountsBytes(t *testing.T) {
	s := "hello"
	g := registry.NewScriptGeneric(&s, nil)
	if err := length(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Return() != uint32(5) {
		t.Fatalf("expected length 5, got %v", g.Return())
	}
}

func TestOpImplConvParsesInt(t *testing.T) {
	s := " 42 "
	g := registry.NewScriptGeneric(&s, nil)
	if err := opImplConvInt(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Return() != int32(42) {
		t.Fatalf("expected 42, got %v", g.Return())
	}
}

func TestOpImplConvRejectsNonNumeric(t *testing.T) {
	s := "not a number"
	g := registry.NewScriptGeneric(&s, nil)
	if err := opImplConvInt(g); err == nil {
		t.Fatalf("expected an error converting a non-numeric string")
	}
}
