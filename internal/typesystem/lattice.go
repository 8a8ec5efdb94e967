package typesystem

// Unify returns a single type representing the join of a collection:
//   - empty input -> Unknown
//   - all equal -> that type
//   - exactly two, one NoneType and the other not -> Maybe(other)
//   - any Unknown present -> Unknown (conservative join)
//   - otherwise -> Union of the flattened, deduplicated non-Unknown alternatives
func Unify(types []Type) Type {
	known := nonNilTypes(types)
	if len(known) == 0 {
		return Unknown{}
	}
	allEqual := true
	for _, t := range known[1:] {
		if !Equal(t, known[0]) {
			allEqual = false
			break
		}
	}
	if allEqual {
		return known[0]
	}
	if len(known) == 2 {
		aIsNone, bIsNone := isNoneType(known[0]), isNoneType(known[1])
		if aIsNone != bIsNone {
			other := known[0]
			if aIsNone {
				other = known[1]
			}
			return NewMaybe(other)
		}
	}
	for _, t := range known {
		if _, ok := t.(Unknown); ok {
			return Unknown{}
		}
	}
	return NewUnion(known)
}

func nonNilTypes(types []Type) []Type {
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func isNoneType(t Type) bool {
	_, ok := t.(NoneType)
	return ok
}

// Subset reports whether any value of type a is acceptable where b is
// expected. Unknown is a subset of everything and
// everything is a subset of Unknown; T is a subset of Maybe(T) and of
// any NoneType-augmented union; Union is a subset of X iff every
// alternative is.
func Subset(a, b Type) bool {
	if _, ok := a.(Unknown); ok {
		return true
	}
	if _, ok := b.(Unknown); ok {
		return true
	}
	if ua, ok := a.(Union); ok {
		for _, alt := range ua.Alternatives {
			if !Subset(alt, b) {
				return false
			}
		}
		return true
	}
	if Equal(a, b) {
		return true
	}
	switch bt := b.(type) {
	case Maybe:
		if _, isNone := a.(NoneType); isNone {
			return true
		}
		return Subset(a, bt.Inner)
	case Union:
		for _, alt := range bt.Alternatives {
			if Subset(a, alt) {
				return true
			}
		}
		return false
	case BaseTuple:
		if _, ok := a.(Tuple); ok {
			return true
		}
		if _, ok := a.(BaseTuple); ok {
			return true
		}
	}
	switch at := a.(type) {
	case List:
		if bt, ok := b.(List); ok {
			return Subset(at.Item, bt.Item)
		}
	case Set:
		if bt, ok := b.(Set); ok {
			return Subset(at.Item, bt.Item)
		}
	case Dict:
		if bt, ok := b.(Dict); ok {
			return Subset(at.Key, bt.Key) && Subset(at.Value, bt.Value)
		}
	case Tuple:
		if bt, ok := b.(Tuple); ok {
			if len(at.Elements) != len(bt.Elements) {
				return false
			}
			for i := range at.Elements {
				if !Subset(at.Elements[i], bt.Elements[i]) {
					return false
				}
			}
			return true
		}
	case Maybe:
		if bm, ok := b.(Maybe); ok {
			return Subset(at.Inner, bm.Inner)
		}
	}
	return false
}

// Intersection returns the narrowest type consistent with both a and b —
// used to fold multiple constraints on the same name. A disjoint
// intersection yields Unknown.
func Intersection(a, b Type) Type {
	if _, ok := a.(Unknown); ok {
		return b
	}
	if _, ok := b.(Unknown); ok {
		return a
	}
	if Equal(a, b) {
		return a
	}
	if ma, ok := a.(Maybe); ok {
		if _, bNone := b.(NoneType); bNone {
			return NoneType{}
		}
		inner := Intersection(ma.Inner, b)
		if _, unk := inner.(Unknown); unk {
			if Subset(b, ma.Inner) {
				return b
			}
			return Unknown{}
		}
		return inner
	}
	if mb, ok := b.(Maybe); ok {
		return Intersection(mb, a)
	}
	if ua, ok := a.(Union); ok {
		for _, alt := range ua.Alternatives {
			if Equal(alt, b) {
				return b
			}
		}
		return Unknown{}
	}
	if ub, ok := b.(Union); ok {
		return Intersection(ub, a)
	}
	return Unknown{}
}

// Comparable reports whether equality/ordering between a and b is
// semantically meaningful: Num x Num, Str x Str, any T x Maybe(T), and
// anything versus Unknown.
func Comparable(a, b Type) bool {
	if _, ok := a.(Unknown); ok {
		return true
	}
	if _, ok := b.(Unknown); ok {
		return true
	}
	if _, okA := a.(Num); okA {
		if _, okB := b.(Num); okB {
			return true
		}
	}
	if _, okA := a.(Str); okA {
		if _, okB := b.(Str); okB {
			return true
		}
	}
	if mb, ok := b.(Maybe); ok {
		return Equal(a, mb.Inner) || Comparable(a, mb.Inner)
	}
	if ma, ok := a.(Maybe); ok {
		return Equal(b, ma.Inner) || Comparable(ma.Inner, b)
	}
	return Equal(a, b)
}

// Unifiable reports whether Unify([a, b]) would return something other
// than Unknown.
func Unifiable(a, b Type) bool {
	_, isUnknown := Unify([]Type{a, b}).(Unknown)
	return !isUnknown
}

// Known filters types to those that are not Unknown.
func Known(types []Type) []Type {
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if _, ok := t.(Unknown); !ok {
			out = append(out, t)
		}
	}
	return out
}

// TypePatterns reports whether some tuple in patterns is pointwise a
// subset-match to actual.
func TypePatterns(actual []Type, patterns [][]Type) bool {
	for _, pattern := range patterns {
		if len(pattern) != len(actual) {
			continue
		}
		ok := true
		for i := range actual {
			if !Subset(actual[i], pattern[i]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
