// Package source owns source text, line indices, and the per-file analysis
// artifacts (tree, tree->symbol map, symbol->type map, symbol->references
// map) produced by the lexer/parser/binder/checker pipeline.
package source

import "fmt"

// Position is a zero-based (line, character) pair, totally ordered
// lexicographically.
type Position struct {
	Line      int
	Character int
}

// Less reports whether p sorts strictly before o.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

// LessEqual reports whether p sorts before or equal to o.
func (p Position) LessEqual(o Position) bool {
	return p == o || p.Less(o)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Range is a half-open [Start, End) span of positions.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether p lies in [r.Start, r.End).
func (r Range) Contains(p Position) bool {
	return r.Start.LessEqual(p) && p.Less(r.End)
}

// Union returns the smallest range containing both r and o.
func (r Range) Union(o Range) Range {
	start, end := r.Start, r.End
	if o.Start.Less(start) {
		start = o.Start
	}
	if end.Less(o.End) {
		end = o.End
	}
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Location ties a Range to the Source it came from. A symbol's definition
// is a Location; its references are locations whose Source is the
// referring file.
type Location struct {
	Source *Source
	Range  Range
}

func (l Location) String() string {
	path := "<unknown>"
	if l.Source != nil {
		path = l.Source.Path
	}
	return fmt.Sprintf("%s:%s", path, l.Range)
}
