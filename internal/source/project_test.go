package source_test

import (
	"context"
	"testing"

	"github.com/ledalang/leda/internal/diagnostics"
	"github.com/ledalang/leda/internal/source"
	"github.com/ledalang/leda/internal/symbols"
)

// countingPipeline records every source it was run over, in order, and
// returns one diagnostic per run so CheckAll's aggregation is observable
// without depending on the real lexer/parser/binder/checker stages.
type countingPipeline struct {
	ran []string
}

func (p *countingPipeline) Run(s *source.Source) []diagnostics.Diagnostic {
	p.ran = append(p.ran, s.Path)
	return []diagnostics.Diagnostic{
		diagnostics.New(diagnostics.CodeNameNotFound, diagnostics.Error, source.Range{}, "stub diagnostic for "+s.Path),
	}
}

func TestProjectPutGetRemove(t *testing.T) {
	proj := source.NewProject(&countingPipeline{})
	proj.Put("a.leda", "local x = 1")
	if _, ok := proj.Get("a.leda"); !ok {
		t.Fatal("Get should find a path just Put")
	}
	proj.Remove("a.leda")
	if _, ok := proj.Get("a.leda"); ok {
		t.Error("Get should not find a path after Remove")
	}
}

func TestProjectPutIsIdempotentByPath(t *testing.T) {
	proj := source.NewProject(&countingPipeline{})
	first := proj.Put("a.leda", "local x = 1")
	second := proj.Put("a.leda", "local x = 2")
	if first != second {
		t.Error("Put on an existing path must update and return the same *Source, not a new one")
	}
	if second.Code != "local x = 2" {
		t.Errorf("Code = %q, want the updated text", second.Code)
	}
}

func TestProjectPathsPreservesInsertionOrder(t *testing.T) {
	proj := source.NewProject(&countingPipeline{})
	proj.Put("b.leda", "")
	proj.Put("a.leda", "")
	proj.Put("c.leda", "")
	want := []string{"b.leda", "a.leda", "c.leda"}
	got := proj.Paths()
	if len(got) != len(want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProjectCheckAllRunsEverySourceAndAggregates(t *testing.T) {
	pipe := &countingPipeline{}
	proj := source.NewProject(pipe)
	proj.Put("a.leda", "")
	proj.Put("b.leda", "")

	report, _ := proj.CheckAll(context.Background())
	if report.Cancelled {
		t.Fatal("an uncancelled context must not mark the report Cancelled")
	}
	if len(report.Checked) != 2 {
		t.Fatalf("Checked = %v, want both paths", report.Checked)
	}
	if len(report.Diagnostics["a.leda"]) != 1 || len(report.Diagnostics["b.leda"]) != 1 {
		t.Errorf("Diagnostics = %v, want one stub diagnostic per source", report.Diagnostics)
	}
	if len(pipe.ran) != 2 {
		t.Errorf("pipeline should have run once per source, ran %v", pipe.ran)
	}
}

func TestProjectCheckAllHonoursCancellationBetweenSources(t *testing.T) {
	pipe := &countingPipeline{}
	proj := source.NewProject(pipe)
	proj.Put("a.leda", "")
	proj.Put("b.leda", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, _ := proj.CheckAll(ctx)
	if !report.Cancelled {
		t.Error("CheckAll should report Cancelled when ctx is already done")
	}
	if len(report.Checked) != 0 {
		t.Errorf("a pre-cancelled context should stop before the first source, Checked = %v", report.Checked)
	}
}

func TestProjectEnsureUniquePath(t *testing.T) {
	proj := source.NewProject(&countingPipeline{})
	proj.Put("a.leda", "")
	if err := proj.EnsureUniquePath("a.leda"); err == nil {
		t.Error("EnsureUniquePath should error for a path already registered")
	}
	if err := proj.EnsureUniquePath("b.leda"); err != nil {
		t.Errorf("EnsureUniquePath should not error for an unregistered path: %v", err)
	}
}

func TestProjectSymbolReferencesUnionsAcrossSources(t *testing.T) {
	proj := source.NewProject(&countingPipeline{})
	aSrc := proj.Put("a.leda", "global shared = 1")
	bSrc := proj.Put("b.leda", "local y = shared")

	sym := symbols.New("shared", symbols.Global, source.Location{Source: aSrc})

	type fakeTree struct{ r source.Range }
	refA := fakeTree{r: source.Range{Start: source.Position{Line: 0, Character: 7}, End: source.Position{Line: 0, Character: 13}}}
	refB := fakeTree{r: source.Range{Start: source.Position{Line: 0, Character: 10}, End: source.Position{Line: 0, Character: 16}}}

	aSrc.AttachSymbol(treeRangeOnly{refA.r}, sym, false)
	bSrc.AttachSymbol(treeRangeOnly{refB.r}, sym, false)

	refs := proj.SymbolReferences(sym, true)
	if len(refs) != 3 {
		t.Fatalf("SymbolReferences (with definition) = %d locations, want 3 (definition + 2 refs)", len(refs))
	}
	if refs[0].Source != aSrc {
		t.Error("the definition location should be first when includeDefinition is true")
	}
}

type treeRangeOnly struct{ r source.Range }

func (t treeRangeOnly) TreeRange() source.Range { return t.r }

func TestProjectApplySeverityOverridesViaLoadManifest(t *testing.T) {
	pipe := &countingPipeline{}
	proj := source.NewProject(pipe)
	if _, err := proj.LoadManifest([]byte("severity:\n  name-not-found: warning\n")); err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	proj.Put("a.leda", "")

	report, _ := proj.CheckAll(context.Background())
	diags := report.Diagnostics["a.leda"]
	if len(diags) != 1 || diags[0].Severity != diagnostics.Warning_ {
		t.Errorf("manifest severity override should have downgraded the stub diagnostic to warning, got %+v", diags)
	}
}
