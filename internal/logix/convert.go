package logix

import (
	"math"
	"strconv"
)

// domain groups kinds that share a conversion rule.
type domain uint8

const (
	domainBool domain = iota
	domainSigned
	domainUnsigned
	domainFloat
)

func domainOf(k AtomicKind) domain {
	switch {
	case k == KindBool:
		return domainBool
	case k.IsFloat():
		return domainFloat
	case k.Signed():
		return domainSigned
	default:
		return domainUnsigned
	}
}

type conversion func(src Atomic, dst AtomicKind) (Atomic, error)

// conversions is the complete (source domain, destination domain) table.
// Every atomic kind converts to every other through exactly one entry.
var conversions = map[[2]domain]conversion{
	{domainBool, domainBool}:     fromUnsigned,
	{domainBool, domainSigned}:   fromUnsigned,
	{domainBool, domainUnsigned}: fromUnsigned,
	{domainBool, domainFloat}:    toFloat,

	{domainSigned, domainBool}:     fromSigned,
	{domainSigned, domainSigned}:   fromSigned,
	{domainSigned, domainUnsigned}: fromSigned,
	{domainSigned, domainFloat}:    toFloat,

	{domainUnsigned, domainBool}:     fromUnsigned,
	{domainUnsigned, domainSigned}:   fromUnsigned,
	{domainUnsigned, domainUnsigned}: fromUnsigned,
	{domainUnsigned, domainFloat}:    toFloat,

	{domainFloat, domainBool}:     fromFloat,
	{domainFloat, domainSigned}:   fromFloat,
	{domainFloat, domainUnsigned}: fromFloat,
	{domainFloat, domainFloat}:    floatToFloat,
}

// Convert converts a to kind, keeping the source radix when the destination
// supports it. Values that do not fit the destination return a range error.
func Convert(a Atomic, kind AtomicKind) (Atomic, error) {
	if !kind.Valid() || !a.kind.Valid() {
		return Atomic{}, argumentError("invalid atomic kind")
	}
	if a.kind == kind {
		return a, nil
	}
	conv := conversions[[2]domain{domainOf(a.kind), domainOf(kind)}]
	out, err := conv(a, kind)
	if err != nil {
		return Atomic{}, err
	}
	if a.radix.Supports(kind) {
		out.radix = a.radix
	}
	return out, nil
}

func fromSigned(src Atomic, dst AtomicKind) (Atomic, error) {
	v := src.Int64()
	switch domainOf(dst) {
	case domainBool:
		if v != 0 && v != 1 {
			return Atomic{}, rangeError(strconv.FormatInt(v, 10), dst)
		}
	case domainSigned:
		if v < minSigned(dst.Bits()) || v > maxSigned(dst.Bits()) {
			return Atomic{}, rangeError(strconv.FormatInt(v, 10), dst)
		}
	case domainUnsigned:
		if v < 0 || uint64(v) > mask(dst.Bits()) {
			return Atomic{}, rangeError(strconv.FormatInt(v, 10), dst)
		}
	}
	return newAtomic(dst, uint64(v)), nil
}

func fromUnsigned(src Atomic, dst AtomicKind) (Atomic, error) {
	v := src.Uint64()
	limit := mask(dst.Bits())
	if domainOf(dst) == domainSigned {
		limit = uint64(maxSigned(dst.Bits()))
	}
	if v > limit {
		return Atomic{}, rangeError(strconv.FormatUint(v, 10), dst)
	}
	return newAtomic(dst, v), nil
}

func toFloat(src Atomic, dst AtomicKind) (Atomic, error) {
	if dst == KindReal {
		return NewReal(float32(src.Float64())), nil
	}
	if domainOf(src.kind) == domainUnsigned || src.kind == KindBool {
		return NewLreal(float64(src.Uint64())), nil
	}
	return NewLreal(float64(src.Int64())), nil
}

// fromFloat rounds half to even, as the controller does for REAL to integer moves.
func fromFloat(src Atomic, dst AtomicKind) (Atomic, error) {
	f := src.Float64()
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Atomic{}, rangeError(text, dst)
	}
	r := math.RoundToEven(f)
	switch domainOf(dst) {
	case domainBool:
		if r != 0 && r != 1 {
			return Atomic{}, rangeError(text, dst)
		}
		return newAtomic(dst, uint64(r)), nil
	case domainSigned:
		// float64(maxSigned(64)) rounds up to 2^63, so the upper bound is exclusive.
		if r < float64(minSigned(dst.Bits())) || r >= float64(maxSigned(dst.Bits()))+1 {
			return Atomic{}, rangeError(text, dst)
		}
		return newAtomic(dst, uint64(int64(r))), nil
	default:
		if r < 0 || r >= float64(mask(dst.Bits()))+1 {
			return Atomic{}, rangeError(text, dst)
		}
		return newAtomic(dst, uint64(r)), nil
	}
}

func floatToFloat(src Atomic, dst AtomicKind) (Atomic, error) {
	f := src.Float64()
	if dst == KindLreal {
		return NewLreal(f), nil
	}
	if !math.IsInf(f, 0) && math.IsInf(float64(float32(f)), 0) {
		return Atomic{}, rangeError(strconv.FormatFloat(f, 'g', -1, 64), dst)
	}
	return NewReal(float32(f)), nil
}

// Native is the set of Go scalar types with a matching atomic kind.
type Native interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// Of wraps a native Go value in the matching atomic kind.
func Of[T Native](v T) Atomic {
	switch x := any(v).(type) {
	case bool:
		return NewBool(x)
	case int8:
		return NewSint(x)
	case int16:
		return NewInt(x)
	case int32:
		return NewDint(x)
	case int64:
		return NewLint(x)
	case uint8:
		return NewUsint(x)
	case uint16:
		return NewUint(x)
	case uint32:
		return NewUdint(x)
	case uint64:
		return NewUlint(x)
	case float32:
		return NewReal(x)
	case float64:
		return NewLreal(x)
	}
	return Atomic{}
}

// KindOf returns the atomic kind matching the native type T.
func KindOf[T Native]() AtomicKind {
	var zero T
	return Of(zero).kind
}

// To converts a to the native type T, returning a range error when the value
// does not fit.
func To[T Native](a Atomic) (T, error) {
	var out T
	c, err := Convert(a, KindOf[T]())
	if err != nil {
		return out, err
	}
	switch p := any(&out).(type) {
	case *bool:
		*p = c.bits != 0
	case *int8:
		*p = int8(c.bits)
	case *int16:
		*p = int16(c.bits)
	case *int32:
		*p = int32(c.bits)
	case *int64:
		*p = int64(c.bits)
	case *uint8:
		*p = uint8(c.bits)
	case *uint16:
		*p = uint16(c.bits)
	case *uint32:
		*p = uint32(c.bits)
	case *uint64:
		*p = c.bits
	case *float32:
		*p = math.Float32frombits(uint32(c.bits))
	case *float64:
		*p = math.Float64frombits(c.bits)
	}
	return out, nil
}

// AtomicEqual compares two atomics by value. Integers compare numerically
// across widths; floats of different widths compare at REAL precision; NaN
// equals NaN. The radix is not part of the value.
func AtomicEqual(a, b Atomic) bool {
	da, db := domainOf(a.kind), domainOf(b.kind)
	if da == domainFloat || db == domainFloat {
		fa, fb := a.Float64(), b.Float64()
		if a.kind == KindReal || b.kind == KindReal {
			fa, fb = float64(float32(fa)), float64(float32(fb))
		}
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}
	negA := da == domainSigned && a.Int64() < 0
	negB := db == domainSigned && b.Int64() < 0
	if negA != negB {
		return false
	}
	if negA {
		return a.Int64() == b.Int64()
	}
	return normalize(a) == normalize(b)
}

// normalize returns the magnitude of a non-negative integer or BOOL.
func normalize(a Atomic) uint64 {
	if domainOf(a.kind) == domainSigned {
		return uint64(a.Int64())
	}
	return a.bits
}
