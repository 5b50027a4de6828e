package source

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledalang/leda/internal/config"
	"github.com/ledalang/leda/internal/diagnostics"
)

// Report is the result of a Project.CheckAll run: every source's
// diagnostics, keyed by path, plus the set of paths actually checked
// before cancellation (if any) cut the run short.
type Report struct {
	Diagnostics map[string][]diagnostics.Diagnostic
	Checked     []string
	Cancelled   bool
}

// Pipeline is implemented by the stage driver (internal/pipeline via
// pkg/leda) that knows how to run lex/parse/bind/check over a Source.
// Project depends on this interface, not on the concrete pipeline
// package, to avoid an import cycle (pipeline depends on source).
type Pipeline interface {
	Run(s *Source) []diagnostics.Diagnostic
}

// Project holds a collection of sources keyed by path. It never performs
// cross-file type flow (v1): CheckAll runs each source's pipeline
// independently, in insertion order, and only aggregates symbol references
// across files afterward.
type Project struct {
	sources  map[string]*Source
	order    []string // insertion order, for deterministic CheckAll iteration
	pipeline Pipeline
	manifest config.Manifest
}

// NewProject creates an empty project driven by pipeline.
func NewProject(pipeline Pipeline) *Project {
	return &Project{sources: make(map[string]*Source), pipeline: pipeline}
}

// LoadManifest parses the optional project manifest (`leda.yaml`) from
// data and, on success, installs its diagnostic-severity overrides so
// every subsequent CheckAll rewrites matching diagnostics' Severity
// before they're reported. Source roots are parsed but not consumed here
// or anywhere else in this module.
func (p *Project) LoadManifest(data []byte) (config.Manifest, error) {
	m, err := config.ParseManifest(data, "leda.yaml")
	if err != nil {
		return config.Manifest{}, err
	}
	p.manifest = m
	return m, nil
}

// Put inserts or replaces the source at path with code, invalidating any
// prior artifacts for that path. Returns the Source so callers can run
// an individual pipeline pass without a full CheckAll.
func (p *Project) Put(path, code string) *Source {
	if existing, ok := p.sources[path]; ok {
		existing.UpdateCode(code)
		return existing
	}
	s := New(path, code)
	p.sources[path] = s
	p.order = append(p.order, path)
	return s
}

// Get returns the source at path, if present.
func (p *Project) Get(path string) (*Source, bool) {
	s, ok := p.sources[path]
	return s, ok
}

// Remove deletes the source at path from the project.
func (p *Project) Remove(path string) {
	if _, ok := p.sources[path]; !ok {
		return
	}
	delete(p.sources, path)
	for i, existing := range p.order {
		if existing == path {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Paths returns every source path currently held, in insertion order.
func (p *Project) Paths() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// CheckAll parses, binds, and checks every source in insertion order.
// Cancellation (via ctx) is honoured only at the boundary between
// sources (§5): a source already underway always finishes. The returned
// uuid is a run id for log correlation only; it has no bearing on the
// Report's contents.
func (p *Project) CheckAll(ctx context.Context) (Report, uuid.UUID) {
	runID := uuid.New()
	report := Report{Diagnostics: make(map[string][]diagnostics.Diagnostic)}
	for _, path := range p.order {
		select {
		case <-ctx.Done():
			report.Cancelled = true
			return report, runID
		default:
		}
		s := p.sources[path]
		diags := p.applySeverityOverrides(p.pipeline.Run(s))
		s.Diagnostics = diags
		report.Diagnostics[path] = diags
		report.Checked = append(report.Checked, path)
	}
	return report, runID
}

// SymbolReferences unions every source's per-symbol reference list for
// sym into one project-wide list, optionally prepending the definition
// location.
func (p *Project) SymbolReferences(sym Symbol, includeDefinition bool) []Location {
	var out []Location
	if includeDefinition {
		out = append(out, sym.DefinitionLocation())
	}
	for _, path := range p.order {
		s := p.sources[path]
		for _, rng := range s.ReferencesOf(sym) {
			out = append(out, Location{Source: s, Range: rng})
		}
	}
	return out
}

// applySeverityOverrides rewrites the Severity of every diagnostic whose
// Code has a manifest override, in place, and returns diags for
// convenient chaining.
func (p *Project) applySeverityOverrides(diags []diagnostics.Diagnostic) []diagnostics.Diagnostic {
	if len(p.manifest.Severity) == 0 {
		return diags
	}
	for i := range diags {
		level, ok := p.manifest.Severity[string(diags[i].Code)]
		if !ok {
			continue
		}
		switch level {
		case "error":
			diags[i].Severity = diagnostics.Error
		case "warning":
			diags[i].Severity = diagnostics.Warning_
		case "information":
			diags[i].Severity = diagnostics.Information
		case "hint":
			diags[i].Severity = diagnostics.Hint
		}
	}
	return diags
}

// EnsureUniquePath reports an error if path is already registered in the
// project. Project.Put replaces by path, so this is an explicit
// uniqueness check for callers that want one before inserting.
func (p *Project) EnsureUniquePath(path string) error {
	if _, ok := p.sources[path]; ok {
		return fmt.Errorf("path already registered: %s", path)
	}
	return nil
}
