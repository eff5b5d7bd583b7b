package logix

import (
	"fmt"
	"iter"
)

// Array is a fixed-size, row-major collection of values of one data type.
// Its dimensions never change after construction.
type Array struct {
	dims  Dimensions
	elems []LogixType
}

// NewArray creates an array with every element set to proto.
func NewArray(proto LogixType, dims Dimensions) (Array, error) {
	if dims.IsEmpty() {
		return Array{}, argumentError("array dimensions are required")
	}
	if proto == nil {
		return Array{}, argumentError("array element type is required")
	}
	if _, nested := proto.(Array); nested {
		return Array{}, argumentError("arrays of arrays are not supported")
	}
	elems := make([]LogixType, dims.Len())
	for i := range elems {
		elems[i] = proto
	}
	return Array{dims: dims, elems: elems}, nil
}

// NewArrayOf creates an array from explicit elements, which must all share
// the same data type name and class, and fill dims exactly.
func NewArrayOf(dims Dimensions, elems ...LogixType) (Array, error) {
	if dims.IsEmpty() {
		return Array{}, argumentError("array dimensions are required")
	}
	if len(elems) != dims.Len() {
		return Array{}, argumentError(fmt.Sprintf("dimensions %s need %d elements, got %d", dims, dims.Len(), len(elems)))
	}
	for i, e := range elems {
		if e == nil {
			return Array{}, argumentError(fmt.Sprintf("element %s is nil", dims.Index(i)))
		}
		if !sameSlotType(elems[0], e) {
			return Array{}, memberError(elems[0].Name(), dims.Index(i), "element type "+e.Name()+" does not match")
		}
	}
	return Array{dims: dims, elems: append([]LogixType(nil), elems...)}, nil
}

func (Array) logixType() {}

// Name returns the element data type name.
func (a Array) Name() string {
	if len(a.elems) == 0 {
		return ""
	}
	return a.elems[0].Name()
}

// Class returns ClassArray.
func (Array) Class() Class { return ClassArray }

// Dimensions returns the fixed dimensions.
func (a Array) Dimensions() Dimensions { return a.dims }

// Len returns the element count.
func (a Array) Len() int { return len(a.elems) }

// Members returns one member per element named by its bracketed index.
func (a Array) Members() []Member {
	members := make([]Member, len(a.elems))
	for i, e := range a.elems {
		members[i] = Member{Name: a.dims.Index(i), Type: e}
	}
	return members
}

// Elements returns the elements in ascending row-major order.
func (a Array) Elements() []LogixType { return append([]LogixType(nil), a.elems...) }

// All yields each bracketed index and element in ascending order.
func (a Array) All() iter.Seq2[string, LogixType] {
	return func(yield func(string, LogixType) bool) {
		for i, e := range a.elems {
			if !yield(a.dims.Index(i), e) {
				return
			}
		}
	}
}

// At returns the element at the given coordinate.
func (a Array) At(coords ...int) (LogixType, error) {
	pos, err := a.dims.Linear(coords...)
	if err != nil {
		return nil, err
	}
	return a.elems[pos], nil
}

// Get returns the element at a row-major position.
func (a Array) Get(pos int) (LogixType, error) {
	if pos < 0 || pos >= len(a.elems) {
		return nil, &Error{Code: ErrCodeRange, Message: fmt.Sprintf("position %d out of range [0,%d)", pos, len(a.elems))}
	}
	return a.elems[pos], nil
}

// With returns a copy with the element at coords replaced by v. Atomic
// values are converted to the element kind.
func (a Array) With(v LogixType, coords ...int) (Array, error) {
	pos, err := a.dims.Linear(coords...)
	if err != nil {
		return a, err
	}
	return a.WithAt(pos, v)
}

// WithAt returns a copy with the element at a row-major position replaced.
func (a Array) WithAt(pos int, v LogixType) (Array, error) {
	old, err := a.Get(pos)
	if err != nil {
		return a, err
	}
	nv, err := assign(old, v)
	if err != nil {
		return a, err
	}
	elems := append([]LogixType(nil), a.elems...)
	elems[pos] = nv
	return Array{dims: a.dims, elems: elems}, nil
}
