package logix

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Atomic is a fixed-width scalar value with an associated radix.
// The raw bits are stored masked to the kind's width; signed kinds are
// two's complement and floats are IEEE 754.
type Atomic struct {
	kind  AtomicKind
	bits  uint64
	radix Radix
}

func newAtomic(kind AtomicKind, bits uint64) Atomic {
	return Atomic{kind: kind, bits: bits & mask(kind.Bits()), radix: kind.DefaultRadix()}
}

// Zero creates the zero value of kind with its default radix.
func Zero(kind AtomicKind) Atomic { return newAtomic(kind, 0) }

// NewBool creates a BOOL.
func NewBool(v bool) Atomic {
	if v {
		return newAtomic(KindBool, 1)
	}
	return newAtomic(KindBool, 0)
}

// NewSint creates a SINT.
func NewSint(v int8) Atomic { return newAtomic(KindSint, uint64(v)) }

// NewInt creates an INT.
func NewInt(v int16) Atomic { return newAtomic(KindInt, uint64(v)) }

// NewDint creates a DINT.
func NewDint(v int32) Atomic { return newAtomic(KindDint, uint64(v)) }

// NewLint creates a LINT.
func NewLint(v int64) Atomic { return newAtomic(KindLint, uint64(v)) }

// NewUsint creates a USINT.
func NewUsint(v uint8) Atomic { return newAtomic(KindUsint, uint64(v)) }

// NewUint creates a UINT.
func NewUint(v uint16) Atomic { return newAtomic(KindUint, uint64(v)) }

// NewUdint creates a UDINT.
func NewUdint(v uint32) Atomic { return newAtomic(KindUdint, uint64(v)) }

// NewUlint creates a ULINT.
func NewUlint(v uint64) Atomic { return newAtomic(KindUlint, v) }

// NewReal creates a REAL.
func NewReal(v float32) Atomic { return newAtomic(KindReal, uint64(math.Float32bits(v))) }

// NewLreal creates an LREAL.
func NewLreal(v float64) Atomic { return newAtomic(KindLreal, math.Float64bits(v)) }

// NewAtomicWithRadix creates the zero value of kind rendered in radix r.
func NewAtomicWithRadix(kind AtomicKind, r Radix) (Atomic, error) {
	return Zero(kind).WithRadix(r)
}

func (Atomic) logixType() {}

// Name returns the data type name.
func (a Atomic) Name() string { return a.kind.String() }

// Class returns ClassAtomic.
func (Atomic) Class() Class { return ClassAtomic }

// Kind returns the atomic kind.
func (a Atomic) Kind() AtomicKind { return a.kind }

// Radix returns the radix used to render the value.
func (a Atomic) Radix() Radix { return a.radix }

// WithRadix returns a copy rendered in radix r.
func (a Atomic) WithRadix(r Radix) (Atomic, error) {
	if !r.Supports(a.kind) {
		return a, unsupportedRadix(r, a.kind)
	}
	a.radix = r
	return a, nil
}

// Members exposes each bit of an integer kind as a BOOL member named by its
// bit number. BOOL, REAL and LREAL have no members.
func (a Atomic) Members() []Member {
	if !a.kind.IsInteger() {
		return nil
	}
	n := a.kind.Bits()
	members := make([]Member, n)
	for i := 0; i < n; i++ {
		members[i] = Member{Name: strconv.Itoa(i), Type: NewBool(a.bits&(1<<i) != 0)}
	}
	return members
}

// Bit returns bit i.
func (a Atomic) Bit(i int) (bool, error) {
	if err := a.checkBit(i); err != nil {
		return false, err
	}
	return a.bits&(1<<i) != 0, nil
}

// WithBit returns a copy with bit i set or cleared.
func (a Atomic) WithBit(i int, on bool) (Atomic, error) {
	if err := a.checkBit(i); err != nil {
		return a, err
	}
	if on {
		a.bits |= 1 << i
	} else {
		a.bits &^= 1 << i
	}
	return a, nil
}

func (a Atomic) checkBit(i int) error {
	if !a.kind.IsInteger() {
		return memberError(a.Name(), strconv.Itoa(i), "type has no bit members")
	}
	if i < 0 || i >= a.kind.Bits() {
		return memberError(a.Name(), strconv.Itoa(i), "bit index out of range")
	}
	return nil
}

// Int64 returns the value sign-extended for signed kinds. Floats are truncated.
func (a Atomic) Int64() int64 {
	switch {
	case a.kind.IsFloat():
		return int64(a.Float64())
	case a.kind.Signed():
		shift := 64 - a.kind.Bits()
		return int64(a.bits<<shift) >> shift
	default:
		return int64(a.bits)
	}
}

// Uint64 returns the raw bit pattern.
func (a Atomic) Uint64() uint64 { return a.bits }

// Float64 returns the value as a float64.
func (a Atomic) Float64() float64 {
	switch {
	case a.kind == KindReal:
		return float64(math.Float32frombits(uint32(a.bits)))
	case a.kind == KindLreal:
		return math.Float64frombits(a.bits)
	case a.kind.Signed():
		return float64(a.Int64())
	default:
		return float64(a.bits)
	}
}

// Bool reports whether the value is non-zero.
func (a Atomic) Bool() bool {
	if a.kind.IsFloat() {
		return a.Float64() != 0
	}
	return a.bits != 0
}

// Bytes returns the value big-endian in the kind's byte width.
func (a Atomic) Bytes() []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], a.bits)
	return buf[8-a.kind.Bytes():]
}

// String renders the value in its radix.
func (a Atomic) String() string {
	s, err := a.radix.Format(a)
	if err != nil {
		s, _ = a.kind.DefaultRadix().Format(a)
	}
	return s
}

// GoString supports %#v.
func (a Atomic) GoString() string {
	return fmt.Sprintf("%s(%s)", a.kind, a.String())
}

// ParseAtomic parses text into kind. The radix is inferred from the text and
// kept on the result when the kind supports it.
func ParseAtomic(kind AtomicKind, text string) (Atomic, error) {
	r, err := InferRadix(text)
	if err != nil {
		return Atomic{}, err
	}
	if r == RadixDecimal && kind.IsFloat() {
		r = RadixFloat
	}
	return r.ParseAs(text, kind)
}
