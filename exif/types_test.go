package exif

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeSize(t *testing.T) {
	cases := []struct {
		typ  Type
		size int
	}{
		{TypeByte, 1}, {TypeAscii, 1}, {TypeSByte, 1}, {TypeUndefined, 1},
		{TypeShort, 2}, {TypeSShort, 2},
		{TypeLong, 4}, {TypeSLong, 4}, {TypeFloat, 4},
		{TypeRational, 8}, {TypeSRational, 8}, {TypeDouble, 8},
	}
	for _, c := range cases {
		size, ok := c.typ.Size()
		assert.True(t, ok, c.typ.String())
		assert.Equal(t, c.size, size, c.typ.String())
	}

	_, ok := Type(99).Size()
	assert.False(t, ok)
}

func TestURationalZeroDenominatorIsSentinel(t *testing.T) {
	r := URational{Numerator: 4, Denominator: 0}
	_, ok := r.ToDouble()
	assert.False(t, ok)
	_, ok = r.ToInt32()
	assert.False(t, ok)
}

func TestURationalToDouble(t *testing.T) {
	r := URational{Numerator: 4, Denominator: 1}
	v, ok := r.ToDouble()
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestRationalZeroDenominatorIsSentinel(t *testing.T) {
	r := Rational{Numerator: -3, Denominator: 0}
	_, ok := r.ToDouble()
	assert.False(t, ok)
}
