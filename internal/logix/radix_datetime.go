package logix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	dateTimeLayout = "2006-01-02-15:04:05"

	// nsResolution is the finest step LDT text keeps when parsed; any
	// remainder below it is truncated.
	nsResolution = 100
)

// The LDT range is bounded by int64 nanoseconds.
var (
	minNsTime = time.Unix(0, math.MinInt64).Add(time.Second)
	maxNsTime = time.Unix(0, math.MaxInt64).Add(-time.Second)
)

// dateTimeCodec renders a LINT offset from the Unix epoch, in microseconds
// (DT#) or nanoseconds (LDT#), as an ISO-like timestamp with a UTC offset:
//
//	DT#2022-01-01-06:00:00.000001(UTC+00:00)
//	LDT#2022-01-01-06:00:00.000001_001(UTC+00:00)
type dateTimeCodec struct {
	radix     Radix
	specifier string
	digits    int // fractional digits: 6 for DT, 9 for LDT
}

func (c dateTimeCodec) supports(k AtomicKind) bool { return k == KindLint }

func (c dateTimeCodec) toTime(v int64) time.Time {
	if c.digits == 6 {
		return time.UnixMicro(v).UTC()
	}
	return time.Unix(0, v).UTC()
}

func (c dateTimeCodec) format(a Atomic) (string, error) {
	t := c.toTime(a.Int64())
	if t.Year() < 1 || t.Year() > 9999 {
		return "", rangeError(strconv.FormatInt(a.Int64(), 10), a.kind)
	}
	var b strings.Builder
	b.WriteString(c.specifier)
	b.WriteString(t.Format(dateTimeLayout))
	fmt.Fprintf(&b, ".%06d", t.Nanosecond()/1000)
	if c.digits == 9 {
		fmt.Fprintf(&b, "_%03d", t.Nanosecond()%1000)
	}
	b.WriteString("(UTC+00:00)")
	return b.String(), nil
}

func (c dateTimeCodec) parse(text string) (Atomic, error) {
	return c.parseAs(text, KindLint)
}

func (c dateTimeCodec) parseAs(text string, kind AtomicKind) (Atomic, error) {
	if !strings.HasPrefix(text, c.specifier) {
		return Atomic{}, formatError(text, "missing %s specifier", c.specifier)
	}
	body := text[len(c.specifier):]

	loc := time.UTC
	if i := strings.IndexByte(body, '('); i >= 0 {
		zone, err := parseZone(body[i:])
		if err != nil {
			return Atomic{}, formatError(text, "%v", err)
		}
		loc = zone
		body = body[:i]
	}

	stamp, frac, _ := strings.Cut(body, ".")
	t, err := time.ParseInLocation(dateTimeLayout, stamp, loc)
	if err != nil {
		return Atomic{}, formatError(text, "invalid timestamp")
	}

	frac = strings.ReplaceAll(frac, "_", "")
	for _, r := range frac {
		if r < '0' || r > '9' {
			return Atomic{}, formatError(text, "invalid fractional seconds")
		}
	}
	if len(frac) > 9 {
		frac = frac[:9]
	}
	ns := 0
	if frac != "" {
		ns, _ = strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
	}

	if c.digits == 6 {
		v := t.Unix()*1_000_000 + int64(ns/1000)
		return newAtomic(kind, uint64(v)), nil
	}
	if t.Before(minNsTime) || t.After(maxNsTime) {
		return Atomic{}, rangeError(text, kind)
	}
	// Truncate the fraction before adding it: % keeps the sign, so doing it
	// on a pre-1970 total would move toward the epoch.
	ns -= ns % nsResolution
	nanos := t.Unix()*int64(time.Second) + int64(ns)
	return newAtomic(kind, uint64(nanos)), nil
}

// parseZone reads "(UTC+hh:mm)".
func parseZone(s string) (*time.Location, error) {
	if !strings.HasPrefix(s, "(UTC") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("invalid zone %q", s)
	}
	z := s[4 : len(s)-1]
	if z == "" || z == "Z" {
		return time.UTC, nil
	}
	if len(z) != 6 || (z[0] != '+' && z[0] != '-') || z[3] != ':' {
		return nil, fmt.Errorf("invalid zone %q", s)
	}
	h, err1 := strconv.Atoi(z[1:3])
	m, err2 := strconv.Atoi(z[4:6])
	if err1 != nil || err2 != nil || h > 23 || m > 59 {
		return nil, fmt.Errorf("invalid zone %q", s)
	}
	offset := h*3600 + m*60
	if z[0] == '-' {
		offset = -offset
	}
	return time.FixedZone("UTC"+z, offset), nil
}
