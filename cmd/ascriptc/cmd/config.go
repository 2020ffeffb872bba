package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// projectConfigFile is the optional per-project config file ascriptc
// looks for in the current working directory.
const projectConfigFile = ".ascriptc.yaml"

// projectConfig is the shape of .ascriptc.yaml: project-wide defaults
// a host would otherwise have to repeat as flags on every invocation.
type projectConfig struct {
	// NamespaceSearchPath lists "::"-separated namespaces consulted,
	// after a script's own lexical nesting, when resolving a bare type
	// or function name — a project-wide default `using namespace` list.
	NamespaceSearchPath []string `yaml:"namespaceSearchPath"`

	// TemplateCacheLimit bounds the number of memoized template
	// instantiations kept in memory at once; 0 (or omitted) means
	// unbounded. See internal/template.Manager.SetCacheLimit.
	TemplateCacheLimit int `yaml:"templateCacheLimit"`

	// DiagnosticColor controls whether reported diagnostics carry ANSI
	// color. Defaults to true when the key is absent.
	DiagnosticColor *bool `yaml:"diagnosticColor"`
}

func defaultProjectConfig() projectConfig {
	return projectConfig{}
}

// diagnosticColor reports whether diagnostics should render with ANSI
// color, honoring the config's explicit choice or defaulting to true.
func (c projectConfig) diagnosticColor() bool {
	if c.DiagnosticColor == nil {
		return true
	}
	return *c.DiagnosticColor
}

// loadProjectConfig reads projectConfigFile from the current working
// directory. A missing file is not an error — it just means every
// default applies — but a present, malformed file is.
func loadProjectConfig() (projectConfig, error) {
	data, err := os.ReadFile(projectConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultProjectConfig(), nil
		}
		return projectConfig{}, fmt.Errorf("failed to read %s: %w", projectConfigFile, err)
	}

	cfg := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return projectConfig{}, fmt.Errorf("failed to parse %s: %w", projectConfigFile, err)
	}
	return cfg, nil
}
