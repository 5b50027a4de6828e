package pipeline_test

import (
	"testing"

	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/pipeline"
	"github.com/ledalang/leda/internal/source"
)

func TestStandardPipelineRunsAllStages(t *testing.T) {
	src := source.New("<test>", "local x: number = 1\nlocal y = x + 1")
	diags := pipeline.Standard().Run(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestStandardPipelineKeepsRunningAfterParseFailure(t *testing.T) {
	// Malformed source still produces a parse diagnostic and a non-nil
	// tree (via the parser's error-recovery), so later stages still run
	// rather than being skipped outright.
	src := source.New("<test>", "local x = ")
	diags := pipeline.Standard().Run(src)
	if len(diags) == 0 {
		t.Fatal("expected at least the parser's diagnostic")
	}
	if src.Root == nil {
		t.Error("expected the parser's error recovery to leave a non-nil tree")
	}
}

func TestStandardPipelineContinuesThroughAllStages(t *testing.T) {
	// A name-resolution failure (binder) must not suppress a later
	// checker-stage diagnostic from a different, independent statement.
	src := source.New("<test>", "local a = undefinedName\nlocal b: string = 1")
	diags := pipeline.Standard().Run(src)

	var sawNameNotFound, sawTypeMismatch bool
	for _, d := range diags {
		switch d.Code {
		case diagnostics.CodeNameNotFound:
			sawNameNotFound = true
		case diagnostics.CodeTypeMismatch:
			sawTypeMismatch = true
		}
	}
	if !sawNameNotFound {
		t.Error("expected a NameNotFound diagnostic from the first statement")
	}
	if !sawTypeMismatch {
		t.Error("expected a TypeMismatch diagnostic from the second statement, even though the first failed to bind")
	}
}
