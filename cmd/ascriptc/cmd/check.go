package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report diagnostics for an AngelScript file without compiling bytecode",
	Long: `Check parses and compiles an AngelScript program against the
default standard library and reports every diagnostic, exiting
nonzero if any were found. Unlike compile, it never prints bytecode.`,
	Args: cobra.ExactArgs(1),
	RunE: checkScript,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkScript(_ *cobra.Command, args []string) error {
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
		return fmt.Errorf("%d diagnostic(s)", len(res.Diagnostics))
	}

	fmt.Printf("%s: no diagnostics\n", src.Name)
	return nil
}
