package logix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexFixedWidth(t *testing.T) {
	tests := []struct {
		name string
		in   Atomic
		want string
	}{
		{"bool", NewBool(true), "16#1"},
		{"sint", NewSint(20), "16#14"},
		{"int", NewInt(20), "16#0014"},
		{"dint", NewDint(20), "16#0000_0014"},
		{"lint", NewLint(20), "16#0000_0000_0000_0014"},
		{"negative dint", NewDint(-1), "16#FFFF_FFFF"},
		{"udint", NewUdint(0xDEADBEEF), "16#DEAD_BEEF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RadixHex.Format(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinaryAndOctalFormat(t *testing.T) {
	tests := []struct {
		radix Radix
		in    Atomic
		want  string
	}{
		{RadixBinary, NewBool(false), "2#0"},
		{RadixBinary, NewSint(5), "2#0000_0101"},
		{RadixBinary, NewInt(-1), "2#1111_1111_1111_1111"},
		{RadixOctal, NewSint(-1), "8#377"},
		{RadixOctal, NewInt(-1), "8#177_777"},
		{RadixOctal, NewDint(20), "8#00_000_000_024"},
		{RadixOctal, NewLint(8), "8#0_000_000_000_000_000_000_010"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := tt.radix.Format(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseParseInfersWidth(t *testing.T) {
	tests := []struct {
		text string
		kind AtomicKind
		want int64
	}{
		{"2#1", KindBool, 1},
		{"16#0000_0014", KindDint, 20},
		{"16#FF", KindSint, -1},
		{"16#FFFF", KindInt, -1},
		{"8#377", KindSint, -1},
		{"16#0000_0000_0000_0014", KindLint, 20},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r, err := InferRadix(tt.text)
			require.NoError(t, err)
			a, err := r.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, a.Kind())
			assert.Equal(t, tt.want, a.Int64())
			assert.Equal(t, r, a.Radix())
		})
	}
}

func TestDecimalRange(t *testing.T) {
	tests := []struct {
		text    string
		kind    AtomicKind
		wantErr bool
	}{
		{"255", KindUsint, false},
		{"256", KindUsint, true},
		{"-1", KindUsint, true},
		{"127", KindSint, false},
		{"128", KindSint, true},
		{"-128", KindSint, false},
		{"-129", KindSint, true},
		{"2147483647", KindDint, false},
		{"2147483648", KindDint, true},
		{"18446744073709551615", KindUlint, false},
		{"18446744073709551616", KindUlint, true},
		{"1", KindBool, false},
		{"2", KindBool, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.text, func(t *testing.T) {
			_, err := RadixDecimal.ParseAs(tt.text, tt.kind)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsRangeError(err), "expected range error, got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDecimalParseErrors(t *testing.T) {
	_, err := RadixDecimal.ParseAs("12a", KindDint)
	assert.True(t, IsFormatError(err))

	_, err = RadixDecimal.ParseAs("   ", KindDint)
	assert.True(t, IsArgumentError(err))

	_, err = RadixHex.ParseAs("0014", KindDint)
	assert.True(t, IsFormatError(err))

	_, err = RadixHex.ParseAs("16#1_0000", KindInt)
	assert.True(t, IsRangeError(err))
}

func TestDecimalParseInfersSmallestSigned(t *testing.T) {
	a, err := RadixDecimal.Parse("255")
	require.NoError(t, err)
	assert.Equal(t, KindInt, a.Kind())

	a, err = RadixDecimal.Parse("-5")
	require.NoError(t, err)
	assert.Equal(t, KindSint, a.Kind())

	a, err = RadixDecimal.Parse("18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, KindUlint, a.Kind())

	_, err = RadixDecimal.Parse("-9223372036854775809")
	assert.True(t, IsRangeError(err))
}

func TestFloatFormat(t *testing.T) {
	tests := []struct {
		radix Radix
		in    Atomic
		want  string
	}{
		{RadixFloat, NewReal(1), "1.0"},
		{RadixFloat, NewReal(0.1), "0.1"},
		{RadixFloat, NewReal(-2.5), "-2.5"},
		{RadixFloat, NewLreal(3.14159), "3.14159"},
		{RadixFloat, NewReal(float32(math.NaN())), "1.#QNAN"},
		{RadixFloat, NewLreal(math.Inf(-1)), "-1.#INF"},
		{RadixExponential, NewReal(1.5), "1.50000000e+000"},
		{RadixExponential, NewReal(1234.5), "1.23450000e+003"},
		{RadixExponential, NewLreal(0.5), "5.0000000000000000e-001"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := tt.radix.Format(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestASCIIFormat(t *testing.T) {
	tests := []struct {
		in   Atomic
		want string
	}{
		{NewSint(65), "'A'"},
		{NewDint(0x41424344), "'ABCD'"},
		{NewSint(10), "'$l'"},
		{NewSint(0), "'$00'"},
		{NewSint('$'), "'$$'"},
		{NewSint('\''), "'$''"},
		{NewInt(0x0141), "'$01A'"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := RadixASCII.Format(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateTime(t *testing.T) {
	t.Run("epoch", func(t *testing.T) {
		got, err := RadixDateTime.Format(NewLint(0))
		require.NoError(t, err)
		assert.Equal(t, "DT#1970-01-01-00:00:00.000000(UTC+00:00)", got)
	})

	t.Run("nanoseconds truncate on parse", func(t *testing.T) {
		text, err := RadixDateTimeNs.Format(NewLint(1641016800000001001))
		require.NoError(t, err)
		assert.Equal(t, "LDT#2022-01-01-06:00:00.000001_001(UTC+00:00)", text)

		a, err := RadixDateTimeNs.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, int64(1641016800000001000), a.Int64())
	})

	t.Run("nanoseconds before 1970 truncate toward the past", func(t *testing.T) {
		text, err := RadixDateTimeNs.Format(NewLint(-1001))
		require.NoError(t, err)
		assert.Equal(t, "LDT#1969-12-31-23:59:59.999998_999(UTC+00:00)", text)

		a, err := RadixDateTimeNs.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, int64(-1100), a.Int64())
	})

	t.Run("microseconds drop extra digits", func(t *testing.T) {
		a, err := RadixDateTime.Parse("DT#2022-01-01-06:00:00.000001_999(UTC+00:00)")
		require.NoError(t, err)
		assert.Equal(t, int64(1641016800000001), a.Int64())
	})

	t.Run("offset converts to UTC", func(t *testing.T) {
		a, err := RadixDateTime.Parse("DT#2022-01-01-01:00:00.000000(UTC-05:00)")
		require.NoError(t, err)
		assert.Equal(t, int64(1641016800000000), a.Int64())
	})

	t.Run("missing specifier", func(t *testing.T) {
		_, err := RadixDateTime.Parse("2022-01-01-06:00:00.000000(UTC+00:00)")
		assert.True(t, IsFormatError(err))
	})

	t.Run("only LINT", func(t *testing.T) {
		_, err := RadixDateTime.Format(NewDint(0))
		assert.True(t, IsUnsupportedRadix(err))
	})
}

func TestSupportsType(t *testing.T) {
	assert.True(t, RadixHex.SupportsType(NewBool(true)))
	assert.False(t, RadixHex.SupportsType(NewReal(1)))
	assert.True(t, RadixFloat.SupportsType(NewLreal(1)))
	assert.False(t, RadixFloat.SupportsType(NewDint(1)))
	assert.False(t, RadixASCII.SupportsType(NewBool(true)))
	assert.True(t, RadixASCII.SupportsType(NewUlint(1)))
	assert.False(t, RadixNull.SupportsType(NewDint(1)))
	assert.False(t, RadixGeneral.SupportsType(NewDint(1)))

	_, err := RadixFloat.Format(NewDint(1))
	assert.True(t, IsUnsupportedRadix(err))

	_, err = NewDint(1).WithRadix(RadixExponential)
	assert.True(t, IsUnsupportedRadix(err))
}

func TestInferRadix(t *testing.T) {
	tests := []struct {
		text string
		want Radix
	}{
		{"2#0101", RadixBinary},
		{"8#17", RadixOctal},
		{"16#FF", RadixHex},
		{"'A'", RadixASCII},
		{"DT#1970-01-01-00:00:00.000000(UTC+00:00)", RadixDateTime},
		{"LDT#1970-01-01-00:00:00.000000_000(UTC+00:00)", RadixDateTimeNs},
		{"1.5", RadixFloat},
		{"1.#QNAN", RadixFloat},
		{"1.50000000e+000", RadixExponential},
		{"-42", RadixDecimal},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := InferRadix(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := InferRadix("hello")
	assert.True(t, IsFormatError(err))

	_, err = InferRadix("")
	assert.True(t, IsArgumentError(err))
}

func TestParseRadixNames(t *testing.T) {
	for r := RadixNull; r <= RadixUseTypeStyle; r++ {
		got, err := ParseRadix(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	got, err := ParseRadix("hex")
	require.NoError(t, err)
	assert.Equal(t, RadixHex, got)

	_, err = ParseRadix("Roman")
	assert.Error(t, err)

	assert.Equal(t, "16#", RadixHex.Specifier())
	assert.Equal(t, "LDT#", RadixDateTimeNs.Specifier())
	assert.Equal(t, "", RadixDecimal.Specifier())

	assert.Equal(t, RadixFloat, DefaultRadix("REAL"))
	assert.Equal(t, RadixDecimal, DefaultRadix("BOOL"))
	assert.Equal(t, RadixNull, DefaultRadix("TIMER"))
}

// samples returns representative values of kind, including both extremes.
func samples(kind AtomicKind) []Atomic {
	switch kind {
	case KindBool:
		return []Atomic{NewBool(false), NewBool(true)}
	case KindReal:
		return []Atomic{NewReal(0), NewReal(1.5), NewReal(-0.1), NewReal(math.MaxFloat32), NewReal(math.SmallestNonzeroFloat32), NewReal(float32(math.Inf(1)))}
	case KindLreal:
		return []Atomic{NewLreal(0), NewLreal(0.1), NewLreal(-123456.789012345), NewLreal(math.MaxFloat64), NewLreal(math.NaN())}
	}
	bits := kind.Bits()
	out := []Atomic{Zero(kind), newAtomic(kind, 1), newAtomic(kind, mask(bits)), newAtomic(kind, 0x5A5A5A5A5A5A5A5A)}
	if kind.Signed() {
		out = append(out, newAtomic(kind, uint64(minSigned(bits))), newAtomic(kind, uint64(maxSigned(bits))))
	}
	return out
}

func TestRoundTripEveryKindAndRadix(t *testing.T) {
	radices := []Radix{RadixBinary, RadixOctal, RadixDecimal, RadixHex, RadixFloat, RadixExponential, RadixASCII}
	for _, kind := range AtomicKinds {
		for _, r := range radices {
			if !r.Supports(kind) {
				continue
			}
			for _, v := range samples(kind) {
				text, err := r.Format(v)
				require.NoError(t, err, "%s %s", kind, r)

				got, err := r.ParseAs(text, kind)
				require.NoError(t, err, "%s %s %q", kind, r, text)
				assert.True(t, AtomicEqual(v, got), "%s %s: %q parsed to %#v", kind, r, text, got)
				assert.Equal(t, kind, got.Kind())

				if kind.Signed() || kind == KindBool || r == RadixDecimal {
					inferred, err := r.Parse(text)
					require.NoError(t, err, "%s %s %q", kind, r, text)
					assert.True(t, AtomicEqual(v, inferred), "%s %s: %q inferred %#v", kind, r, text, inferred)
				}
			}
		}
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1641016800000001, -1000000, 253402300799999999} {
		text, err := RadixDateTime.Format(NewLint(v))
		require.NoError(t, err)
		got, err := RadixDateTime.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, v, got.Int64(), text)
	}
	for _, v := range []int64{0, 1641016800000001000, -100, 1641016800123456700} {
		text, err := RadixDateTimeNs.Format(NewLint(v))
		require.NoError(t, err)
		got, err := RadixDateTimeNs.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, v, got.Int64(), text)
	}
}

func TestParseAtomic(t *testing.T) {
	a, err := ParseAtomic(KindDint, "16#0000_0014")
	require.NoError(t, err)
	assert.Equal(t, int64(20), a.Int64())
	assert.Equal(t, RadixHex, a.Radix())

	a, err = ParseAtomic(KindReal, "5")
	require.NoError(t, err)
	assert.Equal(t, 5.0, a.Float64())
	assert.Equal(t, RadixFloat, a.Radix())

	_, err = ParseAtomic(KindDint, "1.5")
	assert.True(t, IsUnsupportedRadix(err))
}
