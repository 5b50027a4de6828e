package typesystem

import "github.com/ledalang/leda/internal/diagnostics"

// Assignable reports whether target <= source ("target accepts source")
// and, when it does not, the structured reason tree explaining why.
func Assignable(target, source Type) (bool, *diagnostics.MismatchReason) {
	if target == nil || source == nil {
		return true, nil
	}
	if isUnknown(target) || isUnknown(source) {
		return true, nil
	}
	if target == source {
		return true, nil
	}

	switch t := target.(type) {
	case *Primitive:
		return assignablePrimitiveTarget(t, source)
	case *StringLiteral:
		if s, ok := source.(*StringLiteral); ok && s.Value == t.Value {
			return true, nil
		}
		return false, mismatch(t, source)
	case *NumberLiteral:
		if s, ok := source.(*NumberLiteral); ok && s.Value == t.Value {
			return true, nil
		}
		return false, mismatch(t, source)
	case *FunctionType:
		return assignableFunction(t, source)
	case *TableType:
		return assignableTable(t, source)
	case *UnionType:
		return assignableUnionTarget(t, source)
	}
	return false, mismatch(target, source)
}

func isUnknown(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.kind == kindUnknown
}

func mismatch(target, source Type) *diagnostics.MismatchReason {
	return &diagnostics.MismatchReason{
		Kind:   diagnostics.ReasonPrimitive,
		Target: Display(target),
		Source: Display(source),
	}
}

func assignablePrimitiveTarget(t *Primitive, source Type) (bool, *diagnostics.MismatchReason) {
	switch t.kind {
	case kindAny:
		return true, nil
	case kindNumber:
		if _, ok := source.(*NumberLiteral); ok {
			return true, nil
		}
	case kindString:
		if _, ok := source.(*StringLiteral); ok {
			return true, nil
		}
	case kindBoolean:
		if sp, ok := source.(*Primitive); ok && (sp.kind == kindTrue || sp.kind == kindFalse) {
			return true, nil
		}
	case kindFunction:
		if _, ok := source.(*FunctionType); ok {
			return true, nil
		}
	case kindTable:
		if _, ok := source.(*TableType); ok {
			return true, nil
		}
	}
	if sp, ok := source.(*Primitive); ok && sp.kind == t.kind {
		return true, nil
	}
	// A union source is accepted if every alternative is accepted.
	if su, ok := source.(*UnionType); ok {
		return assignableUnionSource(t, su)
	}
	return false, mismatch(t, source)
}

func assignableUnionSource(target Type, source *UnionType) (bool, *diagnostics.MismatchReason) {
	for _, alt := range source.Alternatives {
		ok, reason := Assignable(target, alt)
		if !ok {
			return false, reason
		}
	}
	return true, nil
}

func assignableUnionTarget(target *UnionType, source Type) (bool, *diagnostics.MismatchReason) {
	if su, ok := source.(*UnionType); ok {
		return assignableUnionSource(target, su)
	}
	var last *diagnostics.MismatchReason
	for _, alt := range target.Alternatives {
		ok, reason := Assignable(alt, source)
		if ok {
			return true, nil
		}
		last = reason
	}
	return false, last
}

func assignableFunction(target *FunctionType, source Type) (bool, *diagnostics.MismatchReason) {
	sf, ok := source.(*FunctionType)
	if !ok {
		if sp, ok := source.(*Primitive); ok && sp.kind == kindFunction {
			return false, mismatch(target, source)
		}
		return false, mismatch(target, source)
	}
	// Contravariant parameters: the source function must accept
	// everything the target's callers will pass, so source's declared
	// parameter list must accept target's.
	if ok, reason := AssignableTypeList(sf.Params, target.Params, "Parameter"); !ok {
		return false, &diagnostics.MismatchReason{
			Kind:     diagnostics.ReasonParameterIncompatible,
			Target:   Display(target),
			Source:   Display(source),
			Children: []diagnostics.MismatchReason{*reason},
		}
	}
	// Covariant returns.
	if ok, reason := AssignableTypeList(target.Returns, sf.Returns, "Return"); !ok {
		return false, reason
	}
	return true, nil
}

func assignableTable(target *TableType, source Type) (bool, *diagnostics.MismatchReason) {
	st, ok := source.(*TableType)
	if !ok {
		return false, mismatch(target, source)
	}
	for _, tp := range target.Pairs {
		found := false
		for _, sp := range st.Pairs {
			if ok, _ := Assignable(tp.Key, sp.Key); !ok {
				continue
			}
			if ok, valueReason := Assignable(tp.Value, sp.Value); ok {
				found = true
				break
			} else {
				return false, &diagnostics.MismatchReason{
					Kind:     diagnostics.ReasonTableKeyIncompatible,
					Key:      Display(tp.Key),
					Children: []diagnostics.MismatchReason{*valueReason},
				}
			}
		}
		if !found {
			return false, &diagnostics.MismatchReason{
				Kind:   diagnostics.ReasonSourceMissingKey,
				Target: Display(target),
				Source: Display(source),
				Key:    Display(tp.Key),
			}
		}
	}
	return true, nil
}

// AssignableTypeList checks target <= source across a multi-value
// position (call arguments, returns, assignment). kind labels the
// position for the reason tree ("Call", "Return", "Assignment", ...).
// The caller (source) must supply at least the callee's (target)
// minimum; slots beyond the caller's concrete length are filled with
// Nil, and Continued/Rest tails are folded in by TypeList.At.
func AssignableTypeList(target, source *TypeList, kind string) (bool, *diagnostics.MismatchReason) {
	need := target.Min()
	have := source.Len()
	if source.HasTail() {
		have = need // a tail can always supply enough; only check concrete prefix below
	}
	if have < need && !source.HasTail() {
		return false, &diagnostics.MismatchReason{
			Kind:     diagnostics.ReasonNotEnoughValues,
			Expected: need,
			Got:      have,
			ListKind: kind,
		}
	}

	n := target.Len()
	if tailLen := source.Len(); tailLen > n {
		n = tailLen
	}
	for i := 0; i < n; i++ {
		targetType, hasTarget := target.At(i)
		if !hasTarget {
			break
		}
		sourceType, hasSource := source.At(i)
		if !hasSource {
			sourceType = Nil
		}
		if ok, reason := Assignable(targetType, sourceType); !ok {
			return false, &diagnostics.MismatchReason{
				Kind:     diagnostics.ReasonValueInListIncompatible,
				Index:    i,
				ListKind: kind,
				Children: []diagnostics.MismatchReason{*reason},
			}
		}
	}
	return true, nil
}
