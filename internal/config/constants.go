// Package config holds ambient, build-wide constants: the current
// version, recognized source file extensions, and the project-manifest
// shape read by source.Project.LoadManifest (its diagnostic-severity
// overrides are applied by Project.CheckAll after each source's pipeline
// run). The CLI driver does not read a manifest.
package config

// Version is the current Leda version, set at build time by a release
// script via -ldflags, or left at this default for local builds.
var Version = "0.1.0"

const SourceFileExt = ".leda"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".leda", ".lda"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt reports whether path ends with any recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates the program is running under `leda test`-style
// invocation. Nothing in this module sets or reads it; it stays false.
var IsTestMode = false
