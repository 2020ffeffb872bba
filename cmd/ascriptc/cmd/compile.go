package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/spf13/cobra"
)

var (
	compileDisassemble bool
	compileVerbose     bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile an AngelScript file and report the result",
	Long: `Compile an AngelScript program against the default standard
library and report every compiled function, or the diagnostics that
prevented compilation.

Examples:
  # Compile a script and summarize its functions
  ascriptc compile script.as

  # Compile and show disassembled bytecode for every function
  ascriptc compile script.as --disassemble`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().BoolVar(&compileDisassemble, "disassemble", false, "show disassembled bytecode for every compiled function")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileScript(_ *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}

	sess, color, err := newSession()
	if err != nil {
		return fmt.Errorf("failed to build session: %w", err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", src.Name)
	}

	res := sess.Compile(src)
	if res.HasErrors() {
		fmt.Fprintln(os.Stderr, res.FormatDiagnosticsColor(color))
		return fmt.Errorf("compilation failed with %d error(s)", len(res.Diagnostics))
	}

	fmt.Printf("Compiled %s: %d function(s), %d global(s)\n", src.Name, len(res.Module.Functions), res.Module.GlobalCount)

	if compileDisassemble {
		for _, fn := range res.Module.Functions {
			if fn.Chunk == nil {
				continue
			}
			fmt.Printf("\n== %s ==\n", fn.Name)
			bytecode.NewDisassembler(fn.Chunk, os.Stdout).Disassemble()
		}
		if res.Module.Init != nil && len(res.Module.Init.Code) > 0 {
			fmt.Printf("\n== %s ==\n", res.Module.Init.Name)
			bytecode.NewDisassembler(res.Module.Init, os.Stdout).Disassemble()
		}
	}

	return nil
}
