package dsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringEncodesKnownVector(t *testing.T) {
	b := []byte{0xC4, 0x6D, 0x49, 0x83, 0x26, 0xC4, 0x77, 0xE3,
		0x3E, 0x65, 0x83, 0xAF, 0x0F, 0xA5, 0x0E, 0x27}

	s, err := String(b)
	require.NoError(t, err)
	assert.Equal(t, "50285-18819-09924-30691-15973-33711-04005-03623", s)
}

func TestParseDecodesKnownVector(t *testing.T) {
	b, err := Parse("50285-18819-09924-30691-15973-33711-04005-03623")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC4, 0x6D, 0x49, 0x83, 0x26, 0xC4, 0x77, 0xE3,
		0x3E, 0x65, 0x83, 0xAF, 0x0F, 0xA5, 0x0E, 0x27}, b)
}

func TestRoundTrip(t *testing.T) {
	original := []byte{0x00, 0x01, 0xFF, 0xFF, 0x12, 0x34, 0x56, 0x78,
		0x9A, 0xBC, 0xDE, 0xF0, 0x11, 0x22, 0x33, 0x44}
	s, err := String(original)
	require.NoError(t, err)
	back, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, original, back)
}

func TestEmptyRoundTrip(t *testing.T) {
	s, err := String(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	b, err := Parse("")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestParseBadFormat(t *testing.T) {
	_, err := Parse("not-a-dsk")
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestStringBadLength(t *testing.T) {
	_, err := String([]byte{0x01, 0x02})
	assert.Error(t, err)
}
