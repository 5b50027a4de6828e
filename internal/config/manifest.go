package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional project manifest (`leda.yaml`). SourceRoots is
// parsed but nothing in this module reads it (the CLI driver checks only
// the files named on its command line). Severity holds diagnostic-severity overrides
// (code -> "error"|"warning"|"information"|"hint"), which the core DOES
// consume, since they change the Severity a Diagnostic carries; kept as
// plain strings here so this package stays independent of diagnostics.
type Manifest struct {
	SourceRoots []string          `yaml:"source_roots,omitempty"`
	Severity    map[string]string `yaml:"severity,omitempty"`
}

var validSeverityLevels = map[string]bool{
	"error": true, "warning": true, "information": true, "hint": true,
}

// LoadManifest reads and parses path's manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses manifest content already read from disk. path is
// used only to make error messages actionable.
func ParseManifest(data []byte, path string) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	for code, level := range m.Severity {
		if !validSeverityLevels[level] {
			return Manifest{}, fmt.Errorf("%s: severity[%s]: unrecognized level %q", path, code, level)
		}
	}
	return m, nil
}
