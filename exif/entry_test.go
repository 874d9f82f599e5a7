package exif

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryAsStringTrimsTrailingNUL(t *testing.T) {
	e := NewEntry(TagMake, TypeAscii, 6, []byte("Canon\x00"), binary.BigEndian)
	s, err := e.TryAsString()
	require.NoError(t, err)
	assert.Equal(t, "Canon", s)
}

func TestEntryTypeMismatchReturnsSentinel(t *testing.T) {
	e := NewEntry(TagOrientation, TypeShort, 1, []byte{0x00, 0x01}, binary.BigEndian)
	_, err := e.TryAsString()
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, "", e.AsString())
}

func TestEntryUShortsOrderAware(t *testing.T) {
	be := NewEntry(0, TypeShort, 2, []byte{0x00, 0x01, 0x00, 0x02}, binary.BigEndian)
	vs, err := be.TryAsUShorts()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2}, vs)

	le := NewEntry(0, TypeShort, 2, []byte{0x01, 0x00, 0x02, 0x00}, binary.LittleEndian)
	vs, err = le.TryAsUShorts()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2}, vs)
}

func TestEntryURationalDecodesPair(t *testing.T) {
	e := NewEntry(TagApertureValue, TypeRational, 1,
		[]byte{0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x01}, binary.BigEndian)
	r, err := e.TryAsURational()
	require.NoError(t, err)
	assert.Equal(t, URational{Numerator: 4, Denominator: 1}, r)
	v, ok := r.ToDouble()
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestEntryFloatAndDouble(t *testing.T) {
	fb := make([]byte, 4)
	binary.BigEndian.PutUint32(fb, 0x3F800000) // 1.0f
	f := NewEntry(0, TypeFloat, 1, fb, binary.BigEndian)
	assert.Equal(t, float32(1.0), f.AsFloat())

	db := make([]byte, 8)
	binary.BigEndian.PutUint64(db, 0x3FF0000000000000) // 1.0
	d := NewEntry(0, TypeDouble, 1, db, binary.BigEndian)
	assert.Equal(t, 1.0, d.AsDouble())
}
