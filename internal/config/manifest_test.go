package config_test

import (
	"testing"

	"github.com/ledalang/leda/internal/config"
)

func TestParseManifestDefaults(t *testing.T) {
	m, err := config.ParseManifest([]byte(``), "leda.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.SourceRoots) != 0 || len(m.Severity) != 0 {
		t.Errorf("empty manifest should parse to zero values, got %+v", m)
	}
}

func TestParseManifestSourceRootsAndSeverity(t *testing.T) {
	data := []byte(`
source_roots:
  - src
  - lib
severity:
  name-not-found: warning
  type-mismatch: error
`)
	m, err := config.ParseManifest(data, "leda.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.SourceRoots) != 2 || m.SourceRoots[0] != "src" || m.SourceRoots[1] != "lib" {
		t.Errorf("SourceRoots = %v, want [src lib]", m.SourceRoots)
	}
	if m.Severity["name-not-found"] != "warning" {
		t.Errorf("Severity[name-not-found] = %q, want warning", m.Severity["name-not-found"])
	}
}

func TestParseManifestRejectsUnknownSeverityLevel(t *testing.T) {
	data := []byte(`
severity:
  type-mismatch: catastrophic
`)
	_, err := config.ParseManifest(data, "leda.yaml")
	if err == nil {
		t.Fatal("expected an error for an unrecognized severity level")
	}
}

func TestParseManifestRejectsMalformedYAML(t *testing.T) {
	_, err := config.ParseManifest([]byte("not: valid: yaml: at: all:"), "leda.yaml")
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestTrimSourceExt(t *testing.T) {
	if got := config.TrimSourceExt("foo.leda"); got != "foo" {
		t.Errorf("TrimSourceExt(foo.leda) = %q, want foo", got)
	}
	if got := config.TrimSourceExt("foo.lda"); got != "foo" {
		t.Errorf("TrimSourceExt(foo.lda) = %q, want foo", got)
	}
	if got := config.TrimSourceExt("foo.txt"); got != "foo.txt" {
		t.Errorf("TrimSourceExt(foo.txt) = %q, want unchanged", got)
	}
}

func TestHasSourceExt(t *testing.T) {
	if !config.HasSourceExt("main.leda") {
		t.Error("main.leda should be recognized as a source file")
	}
	if config.HasSourceExt("main.go") {
		t.Error("main.go should not be recognized as a source file")
	}
}
