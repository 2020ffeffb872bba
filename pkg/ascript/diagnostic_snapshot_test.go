package ascript

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestDiagnosticSnapshots renders FormatDiagnosticsColor(false) for a
// handful of representative failures, so a change to a message's
// wording or the caret-annotated snippet layout shows up as a diff
// against committed output instead of a scattered strings.Contains
// check per message.
func TestDiagnosticSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unknown type", `UndeclaredThing x;`},
		{"argument count mismatch", `
			void F(int a, int b) {}
			void Caller() { F(1); }
		`},
		{"switch subject without opEquals", `
			class NoEquals {}
			void F(NoEquals n) {
				switch (n) {
					case 1:
						break;
				}
			}
		`},
	}

	for _, tc := range cases {
		sess, err := New()
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		res := sess.Compile(Source{Name: "diag.as", Text: tc.src})
		if !res.HasErrors() {
			t.Fatalf("%s: expected diagnostics, got none", tc.name)
		}

		snaps.MatchSnapshot(t, tc.name, res.FormatDiagnosticsColor(false))
	}
}
