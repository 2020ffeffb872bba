package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ascript/pkg/ascript"
)

// readSource loads filename's contents as a Source, using filename
// itself as the diagnostic-facing name.
func readSource(filename string) (ascript.Source, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return ascript.Source{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ascript.Source{Name: filename, Text: string(content)}, nil
}

// newSession builds the Session every subcommand compiles against: the
// standard string/array<T> modules, tuned by .ascriptc.yaml when one is
// present in the working directory (namespace search path, template
// instantiation cache limit). The project config's diagnosticColor
// setting is returned alongside it, since it governs how a subcommand
// formats a Result rather than anything Session itself does.
func newSession() (*ascript.Session, bool, error) {
	cfg, err := loadProjectConfig()
	if err != nil {
		return nil, false, err
	}

	sess, err := ascript.New(
		ascript.WithNamespaceSearchPath(cfg.NamespaceSearchPath...),
		ascript.WithTemplateCacheLimit(cfg.TemplateCacheLimit),
	)
	if err != nil {
		return nil, false, err
	}
	return sess, cfg.diagnosticColor(), nil
}
