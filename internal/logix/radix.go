package logix

import (
	"strings"
)

// Radix is the numeral system or encoding used to render an atomic value.
type Radix uint8

const (
	RadixNull Radix = iota
	RadixGeneral
	RadixBinary
	RadixOctal
	RadixDecimal
	RadixHex
	RadixExponential
	RadixFloat
	RadixASCII
	RadixUnicode
	RadixDateTime
	RadixDateTimeNs
	RadixUseTypeStyle
)

// radixNames are the Radix attribute values used in L5X.
var radixNames = [...]string{
	RadixNull:         "NullType",
	RadixGeneral:      "General",
	RadixBinary:       "Binary",
	RadixOctal:        "Octal",
	RadixDecimal:      "Decimal",
	RadixHex:          "Hex",
	RadixExponential:  "Exponential",
	RadixFloat:        "Float",
	RadixASCII:        "ASCII",
	RadixUnicode:      "Unicode",
	RadixDateTime:     "Date/Time",
	RadixDateTimeNs:   "Date/Time (ns)",
	RadixUseTypeStyle: "UseTypeStyle",
}

// String returns the L5X attribute text.
func (r Radix) String() string {
	if int(r) < len(radixNames) {
		return radixNames[r]
	}
	return radixNames[RadixNull]
}

// ParseRadix maps an L5X Radix attribute value to a Radix. Matching is
// case-insensitive; an empty name maps to RadixNull.
func ParseRadix(name string) (Radix, error) {
	if name == "" {
		return RadixNull, nil
	}
	for i, n := range radixNames {
		if strings.EqualFold(n, name) {
			return Radix(i), nil
		}
	}
	return RadixNull, formatError(name, "unknown radix")
}

// DefaultRadix returns the radix a value of the named data type gets when
// none is specified: the kind default for atomics, RadixNull otherwise.
func DefaultRadix(dataType string) Radix {
	if k, ok := LookupKind(dataType); ok {
		return k.DefaultRadix()
	}
	return RadixNull
}

// codec implements format/parse rules for one radix.
type codec interface {
	supports(k AtomicKind) bool
	format(a Atomic) (string, error)
	// parse infers the destination kind from the text.
	parse(text string) (Atomic, error)
	parseAs(text string, k AtomicKind) (Atomic, error)
}

var codecs = map[Radix]codec{
	RadixBinary:      baseCodec{radix: RadixBinary, prefix: "2#", base: 2, digitBits: 1, group: 4},
	RadixOctal:       baseCodec{radix: RadixOctal, prefix: "8#", base: 8, digitBits: 3, group: 3},
	RadixHex:         baseCodec{radix: RadixHex, prefix: "16#", base: 16, digitBits: 4, group: 4},
	RadixDecimal:     decimalCodec{},
	RadixFloat:       floatCodec{},
	RadixExponential: exponentialCodec{},
	RadixASCII:       asciiCodec{},
	RadixDateTime:    dateTimeCodec{radix: RadixDateTime, specifier: "DT#", digits: 6},
	RadixDateTimeNs:  dateTimeCodec{radix: RadixDateTimeNs, specifier: "LDT#", digits: 9},
}

// Specifier returns the prefix r writes before its digits, such as "16#" or
// "LDT#", or "" when r has none.
func (r Radix) Specifier() string {
	switch c := codecs[r].(type) {
	case baseCodec:
		return c.prefix
	case dateTimeCodec:
		return c.specifier
	}
	return ""
}

// Supports reports whether r can format and parse values of kind k.
func (r Radix) Supports(k AtomicKind) bool {
	c, ok := codecs[r]
	return ok && k.Valid() && c.supports(k)
}

// SupportsType reports whether r can format and parse a.
func (r Radix) SupportsType(a Atomic) bool { return r.Supports(a.kind) }

// Format renders a in radix r.
func (r Radix) Format(a Atomic) (string, error) {
	if !r.SupportsType(a) {
		return "", unsupportedRadix(r, a.kind)
	}
	return codecs[r].format(a)
}

// Parse parses text formatted in radix r. The atomic kind is inferred from
// the text: the digit count for binary, octal and hex, the smallest fitting
// signed kind for decimal, the byte count for ASCII.
func (r Radix) Parse(text string) (Atomic, error) {
	c, ok := codecs[r]
	if !ok {
		return Atomic{}, &Error{Code: ErrCodeUnsupportedRadix, Message: "radix " + r.String() + " has no text form", Input: text}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Atomic{}, argumentError("empty value text")
	}
	a, err := c.parse(text)
	if err != nil {
		return Atomic{}, err
	}
	a.radix = r
	return a, nil
}

// ParseAs parses text formatted in radix r into kind.
func (r Radix) ParseAs(text string, kind AtomicKind) (Atomic, error) {
	if !r.Supports(kind) {
		return Atomic{}, unsupportedRadix(r, kind)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Atomic{}, argumentError("empty value text")
	}
	a, err := codecs[r].parseAs(text, kind)
	if err != nil {
		return Atomic{}, err
	}
	a.radix = r
	return a, nil
}

// InferRadix determines the radix of formatted text from its specifier.
func InferRadix(text string) (Radix, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return RadixNull, argumentError("empty value text")
	}
	switch {
	case strings.HasPrefix(text, "2#"):
		return RadixBinary, nil
	case strings.HasPrefix(text, "8#"):
		return RadixOctal, nil
	case strings.HasPrefix(text, "16#"):
		return RadixHex, nil
	case strings.HasPrefix(text, "LDT#"):
		return RadixDateTimeNs, nil
	case strings.HasPrefix(text, "DT#"):
		return RadixDateTime, nil
	case strings.HasPrefix(text, "'"):
		return RadixASCII, nil
	case isSpecialFloat(text):
		return RadixFloat, nil
	}
	if !isNumeral(text) {
		return RadixNull, formatError(text, "no radix specifier matches")
	}
	if strings.ContainsAny(text, "eE") {
		return RadixExponential, nil
	}
	if strings.Contains(text, ".") {
		return RadixFloat, nil
	}
	return RadixDecimal, nil
}

// isNumeral accepts decimal integers, fixed-point and exponent forms.
func isNumeral(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, dot, exp := 0, false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot && !exp:
			dot = true
		case (c == 'e' || c == 'E') && !exp && digits > 0:
			exp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
			if i+1 >= len(s) {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}
