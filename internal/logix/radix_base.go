package logix

import (
	"errors"
	"strconv"
	"strings"
)

// baseCodec renders binary, octal and hex: the raw bit pattern zero-padded to
// the kind's width and grouped from the right with '_'.
type baseCodec struct {
	radix     Radix
	prefix    string
	base      int
	digitBits int
	group     int
}

// inferOrder is the order kinds are tried when the destination is not given.
var inferOrder = []AtomicKind{KindSint, KindInt, KindDint, KindLint}

func (c baseCodec) supports(k AtomicKind) bool { return !k.IsFloat() }

// digits is the fixed digit count for kind k.
func (c baseCodec) digits(k AtomicKind) int {
	return (k.Bits() + c.digitBits - 1) / c.digitBits
}

func (c baseCodec) format(a Atomic) (string, error) {
	s := strings.ToUpper(strconv.FormatUint(a.bits, c.base))
	if n := c.digits(a.kind); len(s) < n {
		s = strings.Repeat("0", n-len(s)) + s
	}
	return c.prefix + group(s, c.group), nil
}

// group inserts '_' every n characters counting from the right.
func group(s string, n int) string {
	if len(s) <= n {
		return s
	}
	var b strings.Builder
	head := len(s) % n
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += n {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		b.WriteString(s[i : i+n])
	}
	return b.String()
}

func (c baseCodec) digitsOf(text string) (string, error) {
	if !strings.HasPrefix(text, c.prefix) {
		return "", formatError(text, "missing %s specifier", c.prefix)
	}
	s := strings.ReplaceAll(text[len(c.prefix):], "_", "")
	if s == "" {
		return "", formatError(text, "no digits after specifier")
	}
	return s, nil
}

func (c baseCodec) parseUint(text, digits string, kind AtomicKind) (uint64, error) {
	v, err := strconv.ParseUint(digits, c.base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, rangeError(text, kind)
		}
		return 0, formatError(text, "invalid %s digits", c.radix)
	}
	return v, nil
}

func (c baseCodec) parse(text string) (Atomic, error) {
	digits, err := c.digitsOf(text)
	if err != nil {
		return Atomic{}, err
	}
	v, err := c.parseUint(text, digits, KindLint)
	if err != nil {
		return Atomic{}, err
	}
	if len(digits) == 1 && v <= 1 {
		return newAtomic(KindBool, v), nil
	}
	for _, k := range inferOrder {
		if len(digits) <= c.digits(k) && v <= mask(k.Bits()) {
			return newAtomic(k, v), nil
		}
	}
	// More digits than a LINT renders, but leading zeros keep it in range.
	return newAtomic(KindLint, v), nil
}

func (c baseCodec) parseAs(text string, kind AtomicKind) (Atomic, error) {
	digits, err := c.digitsOf(text)
	if err != nil {
		return Atomic{}, err
	}
	v, err := c.parseUint(text, digits, kind)
	if err != nil {
		return Atomic{}, err
	}
	if v > mask(kind.Bits()) {
		return Atomic{}, rangeError(text, kind)
	}
	return newAtomic(kind, v), nil
}
