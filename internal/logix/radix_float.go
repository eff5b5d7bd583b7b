package logix

import (
	"math"
	"strconv"
	"strings"
)

// Non-finite values use the controller's spelling.
const (
	textNaN    = "1.#QNAN"
	textPosInf = "1.#INF"
	textNegInf = "-1.#INF"
)

func isSpecialFloat(s string) bool {
	switch strings.ToUpper(s) {
	case textNaN, textPosInf, textNegInf, "-" + textNaN:
		return true
	}
	return false
}

func specialText(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return textNaN, true
	case math.IsInf(f, 1):
		return textPosInf, true
	case math.IsInf(f, -1):
		return textNegInf, true
	}
	return "", false
}

func parseSpecial(s string) (float64, bool) {
	switch strings.ToUpper(s) {
	case textNaN, "-" + textNaN:
		return math.NaN(), true
	case textPosInf:
		return math.Inf(1), true
	case textNegInf:
		return math.Inf(-1), true
	}
	return 0, false
}

func floatBits(k AtomicKind) int { return k.Bits() }

// floatCodec renders fixed-point text with at least one fractional digit and
// the shortest digits that round-trip at the kind's precision.
type floatCodec struct{}

func (floatCodec) supports(k AtomicKind) bool { return k.IsFloat() }

func (floatCodec) format(a Atomic) (string, error) {
	f := a.Float64()
	if s, ok := specialText(f); ok {
		return s, nil
	}
	s := strconv.FormatFloat(f, 'f', -1, floatBits(a.kind))
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}

func (c floatCodec) parse(text string) (Atomic, error) {
	f, err := parseFloatText(text, KindLreal)
	if err != nil {
		return Atomic{}, err
	}
	return narrowest(f), nil
}

func (floatCodec) parseAs(text string, kind AtomicKind) (Atomic, error) {
	f, err := parseFloatText(text, kind)
	if err != nil {
		return Atomic{}, err
	}
	return Convert(NewLreal(f), kind)
}

// narrowest returns a REAL when f renders identically at REAL precision.
func narrowest(f float64) Atomic {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NewReal(float32(f))
	}
	if !math.IsInf(float64(float32(f)), 0) &&
		strconv.FormatFloat(float64(float32(f)), 'g', -1, 32) == strconv.FormatFloat(f, 'g', -1, 64) {
		return NewReal(float32(f))
	}
	return NewLreal(f)
}

func parseFloatText(text string, kind AtomicKind) (float64, error) {
	if f, ok := parseSpecial(text); ok {
		return f, nil
	}
	if !isNumeral(text) {
		return 0, formatError(text, "invalid floating point numeral")
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, rangeError(text, kind)
	}
	return f, nil
}

// exponentialCodec renders d.dddddddde+xxx with 8 fractional digits for REAL
// and 16 for LREAL, and a three digit exponent.
type exponentialCodec struct{}

func exponentDigits(k AtomicKind) int {
	if k == KindReal {
		return 8
	}
	return 16
}

func (exponentialCodec) supports(k AtomicKind) bool { return k.IsFloat() }

func (exponentialCodec) format(a Atomic) (string, error) {
	f := a.Float64()
	if s, ok := specialText(f); ok {
		return s, nil
	}
	s := strconv.FormatFloat(f, 'e', exponentDigits(a.kind), floatBits(a.kind))
	i := strings.LastIndexAny(s, "+-")
	exp := s[i+1:]
	if len(exp) < 3 {
		exp = strings.Repeat("0", 3-len(exp)) + exp
	}
	return s[:i+1] + exp, nil
}

func (exponentialCodec) parse(text string) (Atomic, error) {
	f, err := parseFloatText(text, KindLreal)
	if err != nil {
		return Atomic{}, err
	}
	mantissa := strings.ToLower(text)
	if i := strings.IndexByte(mantissa, 'e'); i >= 0 {
		mantissa = mantissa[:i]
	}
	frac := 0
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		frac = len(mantissa) - i - 1
	}
	if frac <= exponentDigits(KindReal) && (math.IsInf(f, 0) || !math.IsInf(float64(float32(f)), 0)) {
		return NewReal(float32(f)), nil
	}
	return NewLreal(f), nil
}

func (exponentialCodec) parseAs(text string, kind AtomicKind) (Atomic, error) {
	return floatCodec{}.parseAs(text, kind)
}
