package logix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicConstruction(t *testing.T) {
	a := NewDint(-5)
	assert.Equal(t, "DINT", a.Name())
	assert.Equal(t, ClassAtomic, a.Class())
	assert.Equal(t, RadixDecimal, a.Radix())
	assert.Equal(t, int64(-5), a.Int64())
	assert.Equal(t, "-5", a.String())

	r := NewReal(2.5)
	assert.Equal(t, RadixFloat, r.Radix())
	assert.Equal(t, "2.5", r.String())

	h, err := NewAtomicWithRadix(KindInt, RadixHex)
	require.NoError(t, err)
	assert.Equal(t, "16#0000", h.String())

	_, err = NewAtomicWithRadix(KindBool, RadixFloat)
	assert.True(t, IsUnsupportedRadix(err))
}

func TestAtomicBits(t *testing.T) {
	a := NewDint(0)
	assert.Len(t, a.Members(), 32)
	assert.Nil(t, NewBool(true).Members())
	assert.Nil(t, NewReal(1).Members())

	b, err := a.WithBit(3, true)
	require.NoError(t, err)
	assert.Equal(t, int64(8), b.Int64())
	assert.Equal(t, int64(0), a.Int64(), "original is unchanged")

	on, err := b.Bit(3)
	require.NoError(t, err)
	assert.True(t, on)

	s, err := NewSint(0).WithBit(7, true)
	require.NoError(t, err)
	assert.Equal(t, int64(-128), s.Int64())

	_, err = a.WithBit(32, true)
	assert.True(t, IsMemberError(err))

	_, err = NewReal(1).Bit(0)
	assert.True(t, IsMemberError(err))
}

func TestConvertMatrix(t *testing.T) {
	for _, src := range AtomicKinds {
		for _, dst := range AtomicKinds {
			got, err := Convert(Zero(src), dst)
			require.NoError(t, err, "%s -> %s", src, dst)
			assert.Equal(t, dst, got.Kind())
			assert.True(t, AtomicEqual(Zero(src), got), "%s -> %s", src, dst)

			one, err := Convert(NewBool(true), src)
			require.NoError(t, err)
			got, err = Convert(one, dst)
			require.NoError(t, err, "%s -> %s", src, dst)
			assert.True(t, got.Bool(), "%s -> %s", src, dst)
		}
	}
}

func TestConvertRange(t *testing.T) {
	tests := []struct {
		name    string
		in      Atomic
		to      AtomicKind
		want    Atomic
		wantErr bool
	}{
		{"dint to sint overflow", NewDint(300), KindSint, Atomic{}, true},
		{"dint to sint fits", NewDint(-128), KindSint, NewSint(-128), false},
		{"negative to unsigned", NewDint(-1), KindUdint, Atomic{}, true},
		{"udint max to dint", NewUdint(math.MaxUint32), KindDint, Atomic{}, true},
		{"udint max to lint", NewUdint(math.MaxUint32), KindLint, NewLint(math.MaxUint32), false},
		{"ulint max to lint", NewUlint(math.MaxUint64), KindLint, Atomic{}, true},
		{"lint to bool", NewLint(2), KindBool, Atomic{}, true},
		{"dint one to bool", NewDint(1), KindBool, NewBool(true), false},
		{"real rounds half even", NewReal(2.5), KindDint, NewDint(2), false},
		{"real rounds up", NewReal(1.5), KindDint, NewDint(2), false},
		{"real nan", NewReal(float32(math.NaN())), KindDint, Atomic{}, true},
		{"lreal too big for real", NewLreal(1e40), KindReal, Atomic{}, true},
		{"lreal to lint limit", NewLreal(9.3e18), KindLint, Atomic{}, true},
		{"sint to lreal", NewSint(-5), KindLreal, NewLreal(-5), false},
		{"bool to real", NewBool(true), KindReal, NewReal(1), false},
		{"ulint to real", NewUlint(math.MaxUint64), KindReal, NewReal(math.MaxUint64), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.in, tt.to)
			if tt.wantErr {
				assert.True(t, IsRangeError(err), "expected range error, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Kind())
			assert.True(t, AtomicEqual(tt.want, got), "got %#v", got)
		})
	}
}

func TestConvertKeepsRadix(t *testing.T) {
	h, err := NewDint(20).WithRadix(RadixHex)
	require.NoError(t, err)

	l, err := Convert(h, KindLint)
	require.NoError(t, err)
	assert.Equal(t, RadixHex, l.Radix())
	assert.Equal(t, "16#0000_0000_0000_0014", l.String())

	r, err := Convert(h, KindReal)
	require.NoError(t, err)
	assert.Equal(t, RadixFloat, r.Radix())
}

func TestNativeBridge(t *testing.T) {
	assert.Equal(t, KindInt, Of(int16(5)).Kind())
	assert.Equal(t, KindLreal, Of(1.5).Kind())
	assert.Equal(t, KindBool, KindOf[bool]())

	v, err := To[int8](NewDint(127))
	require.NoError(t, err)
	assert.Equal(t, int8(127), v)

	_, err = To[int8](NewDint(128))
	assert.True(t, IsRangeError(err))

	u, err := To[uint16](NewSint(100))
	require.NoError(t, err)
	assert.Equal(t, uint16(100), u)

	f, err := To[float32](NewDint(3))
	require.NoError(t, err)
	assert.Equal(t, float32(3), f)

	b, err := To[bool](NewUsint(1))
	require.NoError(t, err)
	assert.True(t, b)
}

func TestAtomicEqual(t *testing.T) {
	assert.True(t, AtomicEqual(NewSint(20), NewLint(20)))
	assert.True(t, AtomicEqual(NewUsint(255), NewInt(255)))
	assert.False(t, AtomicEqual(NewSint(-1), NewUsint(255)))
	assert.True(t, AtomicEqual(NewReal(1.1), NewLreal(1.1)))
	assert.True(t, AtomicEqual(NewDint(2), NewReal(2)))
	assert.True(t, AtomicEqual(NewLint(-3), NewDint(-3)))
	assert.False(t, AtomicEqual(NewUlint(math.MaxUint64), NewLint(-1)))
}

func TestLookupKind(t *testing.T) {
	k, ok := LookupKind("UDINT")
	require.True(t, ok)
	assert.Equal(t, KindUdint, k)
	assert.Equal(t, 4, k.Bytes())
	assert.False(t, k.Signed())

	_, ok = LookupKind("dint")
	assert.False(t, ok, "lookup is exact")
}
