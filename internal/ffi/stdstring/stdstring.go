// Package stdstring registers AngelScript's built-in string type: a
// value type, despite being FFI-backed, with a default and copy
// constructor, length(), opAdd, opEquals, opCmp, and an opImplConv to
// int. The method set and signatures are grounded on
// original_source/src/string.rs's with_string_module registration list;
// the Go bodies below replace its raw-pointer generic-calling-convention
// plumbing with direct Go string operations, since this module's
// ScriptGeneric has no C ABI to cross.
package stdstring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/ascript/internal/ffi"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

// Register installs the string type and its methods into reg. string's
// identity is the reserved ident.StringType hash, not a derived
// name-hash, since internal/resolve treats "string" as a primitive
// keyword rather than a registry lookup.
func Register(reg *ffi.Registry) error {
	hash, err := ffi.NewTypeBuilder(reg, "string", registry.ClassValue).
		OverrideHash(ident.StringType).
		Register()
	if err != nil {
		return err
	}

	strIn := typesys.String.Const().WithRef(typesys.RefIn)

	if _, err := ffi.NewFunctionBuilder(reg, "string").Constructor(hash).
		Native(construct).Register(); err != nil {
		return err
	}
	if _, err := ffi.NewFunctionBuilder(reg, "string").Constructor(hash).
		Param("other", strIn).Native(copyConstruct).Register(); err != nil {
		return err
	}
	if _, err := ffi.NewFunctionBuilder(reg, "length").Method(hash).Const().
		Return(typesys.UInt32).Native(length).Register(); err != nil {
		return err
	}
	if _, err := ffi.NewFunctionBuilder(reg, "opAdd").Method(hash).Const().
		Param("other", strIn).Return(typesys.String).Native(opAdd).Register(); err != nil {
		return err
	}
	if _, err := ffi.NewFunctionBuilder(reg, "opEquals").Method(hash).Const().
		Param("other", strIn).Return(typesys.Bool).Native(opEquals).Register(); err != nil {
		return err
	}
	if _, err := ffi.NewFunctionBuilder(reg, "opCmp").Method(hash).Const().
		Param("other", strIn).Return(typesys.Int32).Native(opCmp).Register(); err != nil {
		return err
	}
	if _, err := ffi.NewFunctionBuilder(reg, "opImplConv").Method(hash).Const().
		Return(typesys.Int32).Native(opImplConvInt).Register(); err != nil {
		return err
	}
	return nil
}

func construct(g *registry.ScriptGeneric) error {
	*receiver(g) = ""
	return nil
}

func copyConstruct(g *registry.ScriptGeneric) error {
	*receiver(g) = g.Arg(0).(string)
	return nil
}

func length(g *registry.ScriptGeneric) error {
	g.SetReturn(uint32(len(*receiver(g))))
	return nil
}

func opAdd(g *registry.ScriptGeneric) error {
	g.SetReturn(*receiver(g) + g.Arg(0).(string))
	return nil
}

func opEquals(g *registry.ScriptGeneric) error {
	g.SetReturn(*receiver(g) == g.Arg(0).(string))
	return nil
}

func opCmp(g *registry.ScriptGeneric) error {
	g.SetReturn(int32(strings.Compare(*receiver(g), g.Arg(0).(string))))
	return nil
}

func opImplConvInt(g *registry.ScriptGeneric) error {
	s := strings.TrimSpace(*receiver(g))
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fmt.Errorf("stdstring: %q does not convert to int", *receiver(g))
	}
	g.SetReturn(int32(n))
	return nil
}

// receiver recovers the *string slot a call's receiver handle points at.
// The VM is expected to pass every value-type receiver as a pointer to
// its in-place storage, mirroring how string.rs's generic calling
// convention hands native code a raw object pointer rather than a copy.
func receiver(g *registry.ScriptGeneric) *string {
	return g.ReceiverHandle().(*string)
}
