package logix

// AtomicKind identifies one fixed-width scalar type.
type AtomicKind uint8

const (
	KindInvalid AtomicKind = iota
	KindBool
	KindSint
	KindInt
	KindDint
	KindLint
	KindUsint
	KindUint
	KindUdint
	KindUlint
	KindReal
	KindLreal
)

type kindInfo struct {
	name   string
	bits   int
	signed bool
	float  bool
	radix  Radix
}

var kindTable = [...]kindInfo{
	KindInvalid: {name: "", radix: RadixNull},
	KindBool:    {name: "BOOL", bits: 1, radix: RadixDecimal},
	KindSint:    {name: "SINT", bits: 8, signed: true, radix: RadixDecimal},
	KindInt:     {name: "INT", bits: 16, signed: true, radix: RadixDecimal},
	KindDint:    {name: "DINT", bits: 32, signed: true, radix: RadixDecimal},
	KindLint:    {name: "LINT", bits: 64, signed: true, radix: RadixDecimal},
	KindUsint:   {name: "USINT", bits: 8, radix: RadixDecimal},
	KindUint:    {name: "UINT", bits: 16, radix: RadixDecimal},
	KindUdint:   {name: "UDINT", bits: 32, radix: RadixDecimal},
	KindUlint:   {name: "ULINT", bits: 64, radix: RadixDecimal},
	KindReal:    {name: "REAL", bits: 32, signed: true, float: true, radix: RadixFloat},
	KindLreal:   {name: "LREAL", bits: 64, signed: true, float: true, radix: RadixFloat},
}

// AtomicKinds lists every valid kind in declaration order.
var AtomicKinds = []AtomicKind{
	KindBool, KindSint, KindInt, KindDint, KindLint,
	KindUsint, KindUint, KindUdint, KindUlint, KindReal, KindLreal,
}

func (k AtomicKind) info() kindInfo {
	if int(k) < len(kindTable) {
		return kindTable[k]
	}
	return kindTable[KindInvalid]
}

// String returns the L5X data type name.
func (k AtomicKind) String() string { return k.info().name }

// Bits returns the bit width.
func (k AtomicKind) Bits() int { return k.info().bits }

// Bytes returns the byte width; BOOL occupies one byte.
func (k AtomicKind) Bytes() int { return (k.info().bits + 7) / 8 }

// Signed reports whether the kind holds negative values.
func (k AtomicKind) Signed() bool { return k.info().signed }

// IsFloat reports whether the kind is REAL or LREAL.
func (k AtomicKind) IsFloat() bool { return k.info().float }

// IsInteger reports whether the kind is an integer kind (BOOL excluded).
func (k AtomicKind) IsInteger() bool { return k.Valid() && k != KindBool && !k.IsFloat() }

// Valid reports whether k is a known kind.
func (k AtomicKind) Valid() bool { return k > KindInvalid && int(k) < len(kindTable) }

// DefaultRadix is the radix a value of this kind gets when none is given.
func (k AtomicKind) DefaultRadix() Radix { return k.info().radix }

// LookupKind finds the kind for an exact data type name.
func LookupKind(name string) (AtomicKind, bool) {
	for _, k := range AtomicKinds {
		if kindTable[k].name == name {
			return k, true
		}
	}
	return KindInvalid, false
}

func mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<bits - 1
}

func minSigned(bits int) int64 { return -1 << (bits - 1) }

func maxSigned(bits int) int64 { return 1<<(bits-1) - 1 }
