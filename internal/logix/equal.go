package logix

import "bytes"

// Equal reports whether a and b have the same type and value, recursively.
// Names compare case-insensitively; atomics compare by AtomicEqual.
func Equal(a, b LogixType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Class() != b.Class() {
		return false
	}
	switch x := a.(type) {
	case Atomic:
		return AtomicEqual(x, b.(Atomic))
	case String:
		y := b.(String)
		return equalFold(x.name, y.name) && bytes.Equal(x.data, y.data)
	case Array:
		y := b.(Array)
		if x.dims != y.dims {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}
		return true
	case Structure:
		y := b.(Structure)
		if !equalFold(x.name, y.name) || len(x.members) != len(y.members) {
			return false
		}
		for i := range x.members {
			if !equalFold(x.members[i].Name, y.members[i].Name) || !Equal(x.members[i].Type, y.members[i].Type) {
				return false
			}
		}
		return true
	}
	return equalFold(a.Name(), b.Name())
}

// SameShape reports whether a and b have the same type structure: names,
// classes, member names, atomic kinds and array dimensions, ignoring values.
func SameShape(a, b LogixType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Class() != b.Class() || !equalFold(a.Name(), b.Name()) {
		return false
	}
	switch x := a.(type) {
	case Atomic:
		return x.kind == b.(Atomic).kind
	case String:
		return x.capacity == b.(String).capacity
	case Array:
		y := b.(Array)
		return x.dims == y.dims && SameShape(x.elems[0], y.elems[0])
	case Structure:
		y := b.(Structure)
		if len(x.members) != len(y.members) {
			return false
		}
		for i := range x.members {
			if !equalFold(x.members[i].Name, y.members[i].Name) || !SameShape(x.members[i].Type, y.members[i].Type) {
				return false
			}
		}
	}
	return true
}
