package leda_test

import (
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/ledalang/leda/pkg/leda"
)

// goldenScenarios bundles the worked diagnostic examples S1-S3 and S5-S7
// (S5 in an adapted form; there is no S4 fixture) as a
// single txtar archive, one {code,want} file pair per scenario, so adding a
// scenario is a matter of appending two files rather than touching Go code.
const goldenScenarios = `
-- s1/code.leda --
local x: number = "hi"
-- s1/want --
type-mismatch
-- s2/code.leda --
local t = {a = 1}
print(t.b)
-- s2/want --
name-not-found
type-doesnt-have-key
-- s3/code.leda --
local function f(x: number): string return x end
-- s3/want --
type-mismatch
-- s5/code.leda --
local b = 1
local c = 2
local a = b
(c)(1)
-- s5/want --
ambiguous-syntax
-- s6/code.leda --
local x = 1
x = "two"
-- s6/want --
type-mismatch
-- s7/code.leda --
type T = number
local x: T = ""
-- s7/want --
type-mismatch
`

func TestGoldenScenariosFromSpec(t *testing.T) {
	archive := txtar.Parse([]byte(goldenScenarios))
	scenarios := map[string]struct{ code, want string }{}
	for _, f := range archive.Files {
		scenario, kind, ok := splitScenarioFile(f.Name)
		if !ok {
			t.Fatalf("unexpected file in archive: %s", f.Name)
		}
		entry := scenarios[scenario]
		switch kind {
		case "code.leda":
			entry.code = string(f.Data)
		case "want":
			entry.want = string(f.Data)
		}
		scenarios[scenario] = entry
	}

	for name, sc := range scenarios {
		t.Run(name, func(t *testing.T) {
			_, diags := leda.ParseBindCheck(name, sc.code)
			var gotCodes []string
			for _, d := range diags {
				gotCodes = append(gotCodes, string(d.Code))
			}
			// want lists the codes the scenario exists to demonstrate; it is
			// a lower bound, not an exhaustive set, since S5's ambiguous
			// parse legitimately cascades into a checker diagnostic too.
			wantCodes := strings.Fields(sc.want)
			if !containsAll(gotCodes, wantCodes) {
				t.Errorf("diagnostic codes = %v, want at least %v (diagnostics: %v)", gotCodes, wantCodes, diags)
			}
		})
	}
}

func splitScenarioFile(name string) (scenario, kind string, ok bool) {
	idx := strings.IndexByte(name, '/')
	if idx < 0 {
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}

func containsAll(got, want []string) bool {
	seen := make(map[string]int)
	for _, c := range got {
		seen[c]++
	}
	for _, c := range want {
		if seen[c] == 0 {
			return false
		}
		seen[c]--
	}
	return true
}
