package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/unit"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var (
	disasmFunc string
	disasmJSON bool
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Compile an AngelScript file and disassemble one function",
	Long: `disasm compiles file and prints the instruction listing for a
single function named by --func. Without --func, it lists every
compiled function's disassembly; unlike compile --disassemble, it does
not list the module initializer.

With --json, the function table (and, per function, its instructions
and constant pool) is printed as a single JSON document instead of the
text listing, for editor tooling that wants structured access.`,
	Args: cobra.ExactArgs(1),
	RunE: disasmScript,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().StringVar(&disasmFunc, "func", "", "only disassemble the named function")
	disasmCmd.Flags().BoolVar(&disasmJSON, "json", false, "emit the function table as JSON instead of a text listing")
}

func disasmScript(_ *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}

	sess, color, err := newSession()
	if err != nil {
		return fmt.Errorf("failed to build session: %w", err)
	}

	res := sess.Compile(src)
	if res.HasErrors() {
		fmt.Fprintln(os.Stderr, res.FormatDiagnosticsColor(color))
		return fmt.Errorf("compilation failed with %d error(s)", len(res.Diagnostics))
	}

	if disasmJSON {
		return disasmJSONOutput(res.Module.Functions)
	}

	printed := 0
	for _, fn := range res.Module.Functions {
		if disasmFunc != "" && fn.Name != disasmFunc {
			continue
		}
		if fn.Chunk == nil {
			continue
		}
		fmt.Printf("== %s ==\n", fn.Name)
		bytecode.NewDisassembler(fn.Chunk, os.Stdout).Disassemble()
		fmt.Println()
		printed++
	}

	if disasmFunc != "" && printed == 0 {
		return fmt.Errorf("no compiled function named %q", disasmFunc)
	}
	return nil
}

// disasmJSONOutput builds one JSON document out of every matching
// function's Chunk.DebugJSON() projection, appending each under
// "functions" so editor tooling can walk the whole table at once
// instead of parsing one listing per function.
func disasmJSONOutput(functions []unit.ModuleFunction) error {
	doc := "{}"
	printed := 0
	for _, fn := range functions {
		if disasmFunc != "" && fn.Name != disasmFunc {
			continue
		}
		if fn.Chunk == nil {
			continue
		}
		fnDoc, err := fn.Chunk.DebugJSON()
		if err != nil {
			return fmt.Errorf("failed to render %s as JSON: %w", fn.Name, err)
		}
		doc, err = sjson.SetRaw(doc, "functions.-1", fnDoc)
		if err != nil {
			return fmt.Errorf("failed to append %s to the function table: %w", fn.Name, err)
		}
		printed++
	}

	if disasmFunc != "" && printed == 0 {
		return fmt.Errorf("no compiled function named %q", disasmFunc)
	}

	fmt.Println(doc)
	return nil
}
