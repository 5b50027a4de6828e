package typesystem

import "strings"

// TypeList is an ordered sequence of types with an optional tail: either
// a finite list, a list followed by another TypeList (Continued — a call
// expression's full return list flowing into the slot after it), or a
// list followed by a repeating Rest type (varargs/any). MinimumValues is
// the count of non-nillable prefix entries; Names parallels Values for a
// named-parameter list (empty otherwise).
type TypeList struct {
	Values        []Type
	Names         []string // parallel to Values, when this list names parameters; nil otherwise
	MinimumValues int
	Continued     *TypeList // non-nil: after Values, this list's values follow
	Rest          Type      // non-nil: after Values (and Continued), Rest repeats forever
}

// NewTypeList builds a finite TypeList whose every value is required.
func NewTypeList(values ...Type) *TypeList {
	return &TypeList{Values: values, MinimumValues: len(values)}
}

// NewTypeListMin builds a finite TypeList with an explicit minimum
// (trailing entries beyond it are optional/nillable).
func NewTypeListMin(min int, values ...Type) *TypeList {
	return &TypeList{Values: values, MinimumValues: min}
}

// WithRest returns a copy of l with Rest set to t.
func (l *TypeList) WithRest(t Type) *TypeList {
	clone := *l
	clone.Rest = t
	return &clone
}

// WithContinuation returns a copy of l with Continued set to cont.
func (l *TypeList) WithContinuation(cont *TypeList) *TypeList {
	clone := *l
	clone.Continued = cont
	return &clone
}

// At returns the type occupying zero-based slot i of the flattened list,
// folding Continued and Rest into the indexing (a Rest T supplies
// infinitely many T's past the end), and whether that slot exists at
// all (false only past a list with neither Continued nor Rest).
func (l *TypeList) At(i int) (Type, bool) {
	if i < len(l.Values) {
		return l.Values[i], true
	}
	i -= len(l.Values)
	if l.Continued != nil {
		return l.Continued.At(i)
	}
	if l.Rest != nil {
		return l.Rest, true
	}
	return nil, false
}

// Len returns the number of concrete (non-Rest) entries reachable by
// walking Values then Continued; a trailing Rest does not add to this.
func (l *TypeList) Len() int {
	n := len(l.Values)
	if l.Continued != nil {
		n += l.Continued.Len()
	}
	return n
}

// Min returns the total minimum count of required values across Values
// and any Continued tail.
func (l *TypeList) Min() int {
	n := l.MinimumValues
	if l.Continued != nil {
		n += l.Continued.Min()
	}
	return n
}

// HasTail reports whether l can supply values beyond its concrete Len()
// (via Continued or Rest).
func (l *TypeList) HasTail() bool {
	if l.Continued != nil {
		return l.Continued.HasTail()
	}
	return l.Rest != nil
}

func (l *TypeList) String() string {
	var parts []string
	for i, v := range l.Values {
		if l.Names != nil && i < len(l.Names) && l.Names[i] != "" {
			parts = append(parts, l.Names[i]+": "+v.String())
		} else {
			parts = append(parts, v.String())
		}
	}
	s := strings.Join(parts, ", ")
	if l.Continued != nil {
		if s != "" {
			s += ", "
		}
		s += l.Continued.String()
	} else if l.Rest != nil {
		if s != "" {
			s += ", "
		}
		s += "..." + l.Rest.String()
	}
	return s
}
