package logix

import (
	"fmt"
	"strings"
)

// asciiCodec renders each byte of the value, most significant first, as a
// quoted literal. Non-printable bytes use '$' escapes.
type asciiCodec struct{}

func (asciiCodec) supports(k AtomicKind) bool { return k.IsInteger() }

func (asciiCodec) format(a Atomic) (string, error) {
	return FormatLiteral(a.Bytes()), nil
}

func (asciiCodec) parse(text string) (Atomic, error) {
	b, err := ParseLiteral(text)
	if err != nil {
		return Atomic{}, err
	}
	var kind AtomicKind
	switch {
	case len(b) <= 1:
		kind = KindSint
	case len(b) <= 2:
		kind = KindInt
	case len(b) <= 4:
		kind = KindDint
	case len(b) <= 8:
		kind = KindLint
	default:
		return Atomic{}, rangeError(text, KindLint)
	}
	return newAtomic(kind, packBytes(b)), nil
}

func (asciiCodec) parseAs(text string, kind AtomicKind) (Atomic, error) {
	b, err := ParseLiteral(text)
	if err != nil {
		return Atomic{}, err
	}
	if len(b) > kind.Bytes() {
		return Atomic{}, rangeError(text, kind)
	}
	return newAtomic(kind, packBytes(b)), nil
}

func packBytes(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// escapes maps bytes with a letter escape. Other non-printable bytes use $hh.
var escapes = map[byte]string{
	'$':  "$$",
	'\'': "$'",
	'\n': "$l",
	'\r': "$r",
	'\t': "$t",
	'\f': "$p",
}

// EscapeBytes renders b with '$' escapes, without surrounding quotes.
func EscapeBytes(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if e, ok := escapes[c]; ok {
			sb.WriteString(e)
			continue
		}
		if c < 0x20 || c > 0x7E {
			fmt.Fprintf(&sb, "$%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// FormatLiteral renders b as a quoted, escaped literal: 'ab$l'.
func FormatLiteral(b []byte) string {
	return "'" + EscapeBytes(b) + "'"
}

// ParseLiteral decodes a quoted literal produced by FormatLiteral. Letter
// escapes are case-insensitive and $N is accepted as a line feed.
func ParseLiteral(text string) ([]byte, error) {
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return nil, formatError(text, "literal must be enclosed in single quotes")
	}
	return UnescapeBytes(text[1 : len(text)-1])
}

// UnescapeBytes decodes '$' escapes in s.
func UnescapeBytes(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(s) {
			return nil, formatError(s, "dangling escape")
		}
		next := s[i+1]
		switch next {
		case '$', '\'', '"':
			out = append(out, next)
			i++
			continue
		case 'l', 'L', 'n', 'N':
			out = append(out, '\n')
			i++
			continue
		case 'r', 'R':
			out = append(out, '\r')
			i++
			continue
		case 't', 'T':
			out = append(out, '\t')
			i++
			continue
		case 'p', 'P':
			out = append(out, '\f')
			i++
			continue
		}
		if i+2 >= len(s) {
			return nil, formatError(s, "incomplete hex escape")
		}
		hi, ok1 := hexValue(s[i+1])
		lo, ok2 := hexValue(s[i+2])
		if !ok1 || !ok2 {
			return nil, formatError(s, "invalid escape %q", s[i:i+3])
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	return out, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
