// Command leda is a thin smoke-test harness: it reads the files named on
// the command line, runs them through pkg/leda.ParseBindCheck, and prints
// one header line per diagnostic, followed for a type mismatch by its
// indented reason lines. Disk I/O and os.Exit status live here, never in
// the core packages. Not the console pretty-printer an editor integration
// would use — just enough to drive the pipeline from a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/pkg/leda"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <file> [file2...]\n", os.Args[0])
		os.Exit(1)
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	runID := uuid.New()

	hasErrors := false
	for _, path := range os.Args[1:] {
		code, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
			hasErrors = true
			continue
		}

		_, diags := leda.ParseBindCheck(path, string(code))
		for _, d := range diags {
			printDiagnostic(path, d, color)
			if d.Severity == diagnostics.Error {
				hasErrors = true
			}
		}
	}

	if os.Getenv("LEDA_DEBUG") == "1" {
		fmt.Fprintf(os.Stderr, "run %s\n", runID)
	}

	if hasErrors {
		os.Exit(1)
	}
}

func printDiagnostic(path string, d diagnostics.Diagnostic, color bool) {
	line := fmt.Sprintf("%s:%d:%d: %s: %s",
		path, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Render())
	if color {
		line = colorFor(d.Severity) + line + "\x1b[0m"
	}
	fmt.Println(line)
}

func colorFor(sev diagnostics.Severity) string {
	switch sev {
	case diagnostics.Error:
		return "\x1b[31m"
	case diagnostics.Warning_:
		return "\x1b[33m"
	default:
		return "\x1b[36m"
	}
}
