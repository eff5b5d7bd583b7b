package logix

import (
	"errors"
	"strconv"
	"strings"
)

// decimalCodec renders plain signed or unsigned numerals.
type decimalCodec struct{}

func (decimalCodec) supports(k AtomicKind) bool { return !k.IsFloat() }

func (decimalCodec) format(a Atomic) (string, error) {
	if a.kind.Signed() {
		return strconv.FormatInt(a.Int64(), 10), nil
	}
	return strconv.FormatUint(a.bits, 10), nil
}

func (decimalCodec) parse(text string) (Atomic, error) {
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		for _, k := range inferOrder {
			if v >= minSigned(k.Bits()) && v <= maxSigned(k.Bits()) {
				return newAtomic(k, uint64(v)), nil
			}
		}
	} else if !errors.Is(err, strconv.ErrRange) {
		return Atomic{}, formatError(text, "invalid decimal numeral")
	}
	if strings.HasPrefix(text, "-") {
		return Atomic{}, rangeError(text, KindLint)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, 64)
	if err != nil {
		return Atomic{}, rangeError(text, KindUlint)
	}
	return newAtomic(KindUlint, v), nil
}

func (decimalCodec) parseAs(text string, kind AtomicKind) (Atomic, error) {
	bits := kind.Bits()
	if kind.Signed() {
		v, err := strconv.ParseInt(text, 10, bits)
		if err != nil {
			return Atomic{}, numeralError(text, kind, err)
		}
		return newAtomic(kind, uint64(v)), nil
	}
	if strings.HasPrefix(text, "-") {
		if _, err := strconv.ParseInt(text, 10, 64); err != nil && !errors.Is(err, strconv.ErrRange) {
			return Atomic{}, formatError(text, "invalid decimal numeral")
		}
		if text == "-0" {
			return newAtomic(kind, 0), nil
		}
		return Atomic{}, rangeError(text, kind)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, bits)
	if err != nil {
		return Atomic{}, numeralError(text, kind, err)
	}
	return newAtomic(kind, v), nil
}

func numeralError(text string, kind AtomicKind, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return rangeError(text, kind)
	}
	return formatError(text, "invalid decimal numeral")
}
