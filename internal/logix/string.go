package logix

import (
	"bytes"
	"strconv"
)

const (
	// StringTypeName is the predefined string type.
	StringTypeName = "STRING"

	// DefaultStringCapacity is the DATA length of the predefined STRING type.
	DefaultStringCapacity = 82

	// Member names of every string type.
	StringLenMember  = "LEN"
	StringDataMember = "DATA"
)

// String is a string type: a DINT LEN and a SINT DATA array of fixed
// capacity. LEN is never stored; it is always the populated length of DATA.
type String struct {
	name     string
	capacity int
	data     []byte
}

// NewString creates a STRING holding text, truncated to the default capacity.
func NewString(text string) String {
	return NewStringType(StringTypeName, DefaultStringCapacity).WithText(text)
}

// NewStringType creates an empty string of a named string type. A
// non-positive capacity uses the default.
func NewStringType(name string, capacity int) String {
	if capacity <= 0 {
		capacity = DefaultStringCapacity
	}
	return String{name: name, capacity: capacity}
}

// ParseString creates a STRING from a quoted, escaped literal.
func ParseString(literal string) (String, error) {
	return NewStringType(StringTypeName, DefaultStringCapacity).WithLiteral(literal)
}

func (String) logixType() {}

// Name returns the string type name.
func (s String) Name() string { return s.name }

// Class returns ClassString.
func (String) Class() Class { return ClassString }

// Capacity returns the DATA length.
func (s String) Capacity() int { return s.capacity }

// Len returns the populated length of DATA.
func (s String) Len() int { return len(s.data) }

// Text returns the populated bytes as a Go string.
func (s String) Text() string { return string(s.data) }

// Bytes returns a copy of the populated bytes.
func (s String) Bytes() []byte { return append([]byte(nil), s.data...) }

// Literal returns the quoted, escaped form: 'Hello$l'.
func (s String) Literal() string { return FormatLiteral(s.data) }

// WithText returns a copy holding text. Text beyond capacity is dropped.
func (s String) WithText(text string) String { return s.WithBytes([]byte(text)) }

// WithBytes returns a copy holding b. Bytes beyond capacity are dropped.
func (s String) WithBytes(b []byte) String {
	if len(b) > s.capacity {
		b = b[:s.capacity]
	}
	s.data = append([]byte(nil), b...)
	return s
}

// WithLiteral returns a copy holding the decoded literal.
func (s String) WithLiteral(literal string) (String, error) {
	b, err := ParseLiteral(literal)
	if err != nil {
		return s, err
	}
	return s.WithBytes(b), nil
}

// Members returns LEN and DATA.
func (s String) Members() []Member {
	return []Member{
		{Name: StringLenMember, Type: NewDint(int32(len(s.data)))},
		{Name: StringDataMember, Type: s.dataArray()},
	}
}

func (s String) dataArray() Array {
	elems := make([]LogixType, s.capacity)
	for i := range elems {
		var c byte
		if i < len(s.data) {
			c = s.data[i]
		}
		elems[i] = withRadix(NewSint(int8(c)), RadixASCII)
	}
	return Array{dims: Dim(s.capacity), elems: elems}
}

// withMember writes LEN or DATA. A LEN write is accepted and has no effect.
func (s String) withMember(name string, v LogixType) (String, error) {
	switch {
	case equalFold(name, StringLenMember):
		return s, nil
	case equalFold(name, StringDataMember):
		arr, ok := v.(Array)
		if !ok {
			return s, memberError(s.name, name, "DATA requires an array of SINT")
		}
		return s.WithBytes(populated(arr)), nil
	}
	if coords, err := ParseIndex(name); err == nil && len(coords) == 1 {
		return s.withByte(coords[0], v)
	}
	return s, memberError(s.name, name, "no such member")
}

func (s String) withByte(i int, v LogixType) (String, error) {
	a, ok := v.(Atomic)
	if !ok {
		return s, memberError(s.name, strconv.Itoa(i), "string element requires an atomic value")
	}
	c, err := Convert(a, KindSint)
	if err != nil {
		return s, err
	}
	arr := s.dataArray()
	arr, err = arr.WithAt(i, c)
	if err != nil {
		return s, err
	}
	return s.WithBytes(populated(arr)), nil
}

// populated returns the bytes of a SINT array up to its last non-zero byte.
func populated(arr Array) []byte {
	b := make([]byte, 0, arr.Len())
	for _, e := range arr.elems {
		a, ok := e.(Atomic)
		if !ok {
			b = append(b, 0)
			continue
		}
		b = append(b, byte(a.bits))
	}
	return bytes.TrimRight(b, "\x00")
}

func withRadix(a Atomic, r Radix) Atomic {
	if out, err := a.WithRadix(r); err == nil {
		return out
	}
	return a
}
