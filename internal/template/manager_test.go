package template

import (
	"testing"

	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

func arrayValidator(calls *int) Validator {
	return func(args []typesys.DataType) (*Blueprint, error) {
		*calls++
		name := "array<" + args[0].String() + ">"
		return &Blueprint{
			Name: name,
			Kind: registry.ClassReference,
			Methods: []MethodFactory{
				func(classHash ident.TypeHash) *registry.FunctionDef {
					hash := ident.HashFunction(ident.KindMethod, "length", classHash, nil, true, "")
					return &registry.FunctionDef{Hash: hash, Name: "length", OwnerClass: classHash, Return: typesys.New(ident.Int32), Traits: registry.FunctionTraits{IsConst: true}}
				},
			},
		}, nil
	}
}

func TestInstantiateRegistersIntoBoundRegistry(t *testing.T) {
	m := NewManager()
	base := ident.HashType("array")
	calls := 0
	m.RegisterTemplate(base, arrayValidator(&calls))

	reg := registry.New()
	inst := m.Bind(reg)
	hash, err := inst.Instantiate(base, []typesys.DataType{typesys.New(ident.Int32)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := reg.GetType(hash)
	if entry == nil {
		t.Fatalf("expected the instantiated class to be registered in the bound registry")
	}
	if entry.TypeName() != "array<int>" {
		t.Fatalf("expected name array<int>, got %q", entry.TypeName())
	}
}

func TestInstantiateIsIdempotentWithinOneRegistry(t *testing.T) {
	m := NewManager()
	base := ident.HashType("array")
	calls := 0
	m.RegisterTemplate(base, arrayValidator(&calls))

	reg := registry.New()
	inst := m.Bind(reg)
	args := []typesys.DataType{typesys.New(ident.Int32)}
	first, err := inst.Instantiate(base, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := inst.Instantiate(base, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same instantiation to return the same hash twice")
	}
	if reg.GetFunction(reg.GetType(first).(*registry.ClassEntry).Methods[0]) == nil {
		t.Fatalf("expected the length() method to be registered exactly once")
	}
}

func TestInstantiateSharesCacheButRegistersPerRegistry(t *testing.T) {
	m := NewManager()
	base := ident.HashType("array")
	calls := 0
	m.RegisterTemplate(base, arrayValidator(&calls))

	args := []typesys.DataType{typesys.New(ident.Int32)}

	regA := registry.New()
	hashA, err := m.Bind(regA).Instantiate(base, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	regB := registry.New()
	hashB, err := m.Bind(regB).Instantiate(base, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashA != hashB {
		t.Fatalf("expected two registries instantiating the same template args to agree on the hash")
	}
	if regA.GetType(hashA) == nil || regB.GetType(hashB) == nil {
		t.Fatalf("expected both registries to carry their own registered copy")
	}
}

func TestInstantiateUnknownTemplateFails(t *testing.T) {
	m := NewManager()
	reg := registry.New()
	_, err := m.Bind(reg).Instantiate(ident.HashType("notATemplate"), nil)
	if err == nil {
		t.Fatalf("expected an error instantiating an unregistered template")
	}
}
