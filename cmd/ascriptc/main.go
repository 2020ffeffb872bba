// Command ascriptc drives the compilation pipeline from the command
// line: parse an AngelScript source file, compile it against the
// default standard-library FFI registry, and either report
// diagnostics or print the resulting bytecode.
package main

import (
	"os"

	"github.com/cwbudde/ascript/cmd/ascriptc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
