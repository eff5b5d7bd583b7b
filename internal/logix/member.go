package logix

import (
	"strconv"
	"strings"
)

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }

// sameSlotType reports whether b may occupy a slot typed like a.
func sameSlotType(a, b LogixType) bool {
	if a.Class() != b.Class() {
		return false
	}
	if arr, ok := a.(Array); ok {
		other := b.(Array)
		return arr.dims == other.dims && equalFold(arr.Name(), other.Name())
	}
	return equalFold(a.Name(), b.Name())
}

// assign returns the value to store in a slot currently holding slot when v
// is written to it. Atomics convert to the slot kind and keep the slot radix;
// strings are re-fitted to the slot's string type; other values must match
// the slot's type exactly. Undefined slots accept anything.
func assign(slot, v LogixType) (LogixType, error) {
	if v == nil {
		return nil, argumentError("value is required")
	}
	switch s := slot.(type) {
	case Undefined:
		return v, nil
	case Atomic:
		a, ok := v.(Atomic)
		if !ok {
			return nil, memberError(slot.Name(), v.Name(), "cannot assign "+v.Class().String()+" to atomic")
		}
		c, err := Convert(a, s.kind)
		if err != nil {
			return nil, err
		}
		c.radix = s.radix
		return c, nil
	case String:
		str, ok := v.(String)
		if !ok {
			return nil, memberError(slot.Name(), v.Name(), "cannot assign "+v.Class().String()+" to string")
		}
		return s.WithBytes(str.data), nil
	}
	if !sameSlotType(slot, v) {
		return nil, memberError(slot.Name(), v.Name(), "type mismatch")
	}
	return v, nil
}

// Child returns the named member of t: a structure member, a bracketed array
// index, a bit number of an integer, or LEN/DATA of a string.
func Child(t LogixType, name string) (LogixType, error) {
	switch v := t.(type) {
	case Structure:
		if m, ok := v.Member(name); ok {
			return m.Type, nil
		}
	case Array:
		coords, err := ParseIndex(name)
		if err != nil {
			return nil, err
		}
		return v.At(coords...)
	case Atomic:
		i, err := strconv.Atoi(name)
		if err != nil {
			return nil, memberError(v.Name(), name, "bit member must be numeric")
		}
		b, err := v.Bit(i)
		if err != nil {
			return nil, err
		}
		return NewBool(b), nil
	default:
		for _, m := range t.Members() {
			if equalFold(m.Name, name) {
				return m.Type, nil
			}
		}
	}
	return nil, memberError(t.Name(), name, "no such member")
}

// WithMember returns a copy of t with the named member replaced by v.
// Writing a bit of an atomic yields a new atomic with the masked value.
func WithMember(t LogixType, name string, v LogixType) (LogixType, error) {
	switch s := t.(type) {
	case Structure:
		return s.With(name, v)
	case Array:
		coords, err := ParseIndex(name)
		if err != nil {
			return t, err
		}
		return s.With(v, coords...)
	case String:
		return s.withMember(name, v)
	case Atomic:
		i, err := strconv.Atoi(name)
		if err != nil {
			return t, memberError(s.Name(), name, "bit member must be numeric")
		}
		bit, ok := v.(Atomic)
		if !ok {
			return t, memberError(s.Name(), name, "bit requires an atomic value")
		}
		on, err := To[bool](bit)
		if err != nil {
			return t, err
		}
		return s.WithBit(i, on)
	}
	return t, memberError(t.Name(), name, "type has no writable members")
}

// MemberAs returns the named member of t as the concrete type T.
func MemberAs[T LogixType](t LogixType, name string) (T, error) {
	var zero T
	child, err := Child(t, name)
	if err != nil {
		return zero, err
	}
	v, ok := child.(T)
	if !ok {
		return zero, memberError(t.Name(), name, "member is "+child.Class().String())
	}
	return v, nil
}
