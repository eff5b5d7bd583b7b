package logix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringDefaults(t *testing.T) {
	s := NewString("Hello")
	assert.Equal(t, "STRING", s.Name())
	assert.Equal(t, ClassString, s.Class())
	assert.Equal(t, DefaultStringCapacity, s.Capacity())
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, "Hello", s.Text())
	assert.Equal(t, "'Hello'", s.Literal())

	members := s.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "LEN", members[0].Name)
	assert.True(t, AtomicEqual(NewDint(5), members[0].Type.(Atomic)))
	assert.Equal(t, "DATA", members[1].Name)
	data := members[1].Type.(Array)
	assert.Equal(t, 82, data.Len())
	assert.Equal(t, "SINT", data.Name())
}

func TestStringTruncatesToCapacity(t *testing.T) {
	s := NewStringType("STRING_10", 10).WithText(strings.Repeat("x", 25))
	assert.Equal(t, 10, s.Len())

	n, err := MemberAs[Atomic](s, "LEN")
	require.NoError(t, err)
	assert.Equal(t, int64(10), n.Int64())
}

func TestStringLenIsDerived(t *testing.T) {
	s := NewString("abc")

	out, err := WithMember(s, "LEN", NewDint(50))
	require.NoError(t, err, "LEN writes are accepted")
	n, err := Lookup(out, "LEN")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.(Atomic).Int64())

	out, err = Set(s, "DATA[3]", NewSint('d'))
	require.NoError(t, err)
	assert.Equal(t, "abcd", out.(String).Text())
	n, err = Lookup(out, "LEN")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n.(Atomic).Int64())
}

func TestStringLiteral(t *testing.T) {
	s, err := ParseString("'Line$lTab$tQuote$'Dollar$$Hex$7F'")
	require.NoError(t, err)
	assert.Equal(t, "Line\nTab\tQuote'Dollar$Hex\x7f", s.Text())
	assert.Equal(t, "'Line$lTab$tQuote$'Dollar$$Hex$7F'", s.Literal())

	again, err := ParseString(s.Literal())
	require.NoError(t, err)
	assert.True(t, Equal(s, again))

	n, err := ParseString("'$N$R$P'")
	require.NoError(t, err)
	assert.Equal(t, "\n\r\f", n.Text())

	_, err = ParseString("no quotes")
	assert.True(t, IsFormatError(err))

	_, err = ParseString("'bad $G1'")
	assert.True(t, IsFormatError(err))

	_, err = ParseString("'dangling $'")
	assert.True(t, IsFormatError(err))
}

func TestStringAssignRefits(t *testing.T) {
	slot := NewStringType("SHORT", 4)
	st := NewStructure("Msg", DataTypeClassUser, Member{Name: "Text", Type: slot})

	out, err := st.With("Text", NewString("overflowing"))
	require.NoError(t, err)
	m, _ := out.Member("Text")
	assert.Equal(t, "SHORT", m.Type.Name())
	assert.Equal(t, "over", m.Type.(String).Text())
}
