package exif

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"
)

// Entry is a fully-resolved Exif tag: its physical type and the owned
// bytes backing its value(s), already copied out of the file - the
// underlying file handle is released before the caller ever sees an
// Entry.
//
// Rather than twelve sibling value types each with their own accessor
// and format methods, this is one tagged value carrying (Tag, Type,
// bytes), with accessors that pattern-match on Type instead of
// dispatching through an interface - this package only ever reads a
// value, never writes one back out, so the simpler shape is enough.
type Entry struct {
	Tag   uint16
	Type  Type
	Count uint32
	bytes []byte // len(bytes) == Count * sizeOf(Type), as built by the resolver; NewEntry does not check it
	order binary.ByteOrder
}

// NewEntry builds an Entry from already-resolved value bytes. It is the
// only constructor; it is used by the resolver (resolve.go) once bytes
// have been fetched inline or from an offset.
func NewEntry(tag uint16, typ Type, count uint32, data []byte, order binary.ByteOrder) Entry {
	return Entry{Tag: tag, Type: typ, Count: count, bytes: data, order: order}
}

// Bytes returns the raw value bytes in their on-wire byte order.
func (e Entry) Bytes() []byte { return e.bytes }

// AsBytes returns the raw bytes regardless of declared type - useful for
// Undefined and for callers that want to handle decoding themselves.
func (e Entry) AsBytes() []byte { return e.bytes }

// AsString decodes an Ascii entry, trimming a single trailing NUL if
// present (TIFF ASCII strings are NUL-terminated by convention but the
// count includes the terminator). Wrong-type calls return "".
func (e Entry) AsString() string {
	s, _ := e.TryAsString()
	return s
}

func (e Entry) TryAsString() (string, error) {
	if e.Type != TypeAscii {
		return "", ErrTypeMismatch
	}
	s := string(e.bytes)
	return strings.TrimSuffix(s, "\x00"), nil
}

// AsUShort returns the first Short value, or 0 on type mismatch.
func (e Entry) AsUShort() uint16 {
	v, _ := e.TryAsUShort()
	return v
}

func (e Entry) TryAsUShort() (uint16, error) {
	vs, err := e.TryAsUShorts()
	if err != nil || len(vs) == 0 {
		return 0, err
	}
	return vs[0], nil
}

func (e Entry) AsUShorts() []uint16 {
	vs, _ := e.TryAsUShorts()
	return vs
}

func (e Entry) TryAsUShorts() ([]uint16, error) {
	if e.Type != TypeShort {
		return nil, ErrTypeMismatch
	}
	out := make([]uint16, e.Count)
	for i := range out {
		out[i] = e.order.Uint16(e.bytes[i*2:])
	}
	return out, nil
}

func (e Entry) AsSShort() int16 {
	v, _ := e.TryAsSShort()
	return v
}

func (e Entry) TryAsSShort() (int16, error) {
	if e.Type != TypeSShort {
		return 0, ErrTypeMismatch
	}
	if e.Count == 0 {
		return 0, nil
	}
	return int16(e.order.Uint16(e.bytes)), nil
}

func (e Entry) AsULong() uint32 {
	v, _ := e.TryAsULong()
	return v
}

func (e Entry) TryAsULong() (uint32, error) {
	vs, err := e.TryAsULongs()
	if err != nil || len(vs) == 0 {
		return 0, err
	}
	return vs[0], nil
}

func (e Entry) AsULongs() []uint32 {
	vs, _ := e.TryAsULongs()
	return vs
}

func (e Entry) TryAsULongs() ([]uint32, error) {
	if e.Type != TypeLong {
		return nil, ErrTypeMismatch
	}
	out := make([]uint32, e.Count)
	for i := range out {
		out[i] = e.order.Uint32(e.bytes[i*4:])
	}
	return out, nil
}

func (e Entry) AsSLong() int32 {
	v, _ := e.TryAsSLong()
	return v
}

func (e Entry) TryAsSLong() (int32, error) {
	if e.Type != TypeSLong {
		return 0, ErrTypeMismatch
	}
	if e.Count == 0 {
		return 0, nil
	}
	return int32(e.order.Uint32(e.bytes)), nil
}

func (e Entry) AsByte() byte {
	v, _ := e.TryAsByte()
	return v
}

func (e Entry) TryAsByte() (byte, error) {
	if e.Type != TypeByte {
		return 0, ErrTypeMismatch
	}
	if e.Count == 0 {
		return 0, nil
	}
	return e.bytes[0], nil
}

func (e Entry) AsSByte() int8 {
	v, _ := e.TryAsSByte()
	return v
}

func (e Entry) TryAsSByte() (int8, error) {
	if e.Type != TypeSByte {
		return 0, ErrTypeMismatch
	}
	if e.Count == 0 {
		return 0, nil
	}
	return int8(e.bytes[0]), nil
}

// AsURational returns the first unsigned rational, or the zero value
// (0/0, the representable-but-sentinel state) on mismatch.
func (e Entry) AsURational() URational {
	v, _ := e.TryAsURational()
	return v
}

func (e Entry) TryAsURational() (URational, error) {
	vs, err := e.TryAsURationals()
	if err != nil || len(vs) == 0 {
		return URational{}, err
	}
	return vs[0], nil
}

func (e Entry) AsURationals() []URational {
	vs, _ := e.TryAsURationals()
	return vs
}

func (e Entry) TryAsURationals() ([]URational, error) {
	if e.Type != TypeRational {
		return nil, ErrTypeMismatch
	}
	out := make([]URational, e.Count)
	for i := range out {
		b := e.bytes[i*8:]
		out[i] = URational{
			Numerator:   e.order.Uint32(b),
			Denominator: e.order.Uint32(b[4:]),
		}
	}
	return out, nil
}

func (e Entry) AsRational() Rational {
	v, _ := e.TryAsRational()
	return v
}

func (e Entry) TryAsRational() (Rational, error) {
	vs, err := e.TryAsRationals()
	if err != nil || len(vs) == 0 {
		return Rational{}, err
	}
	return vs[0], nil
}

func (e Entry) AsRationals() []Rational {
	vs, _ := e.TryAsRationals()
	return vs
}

func (e Entry) TryAsRationals() ([]Rational, error) {
	if e.Type != TypeSRational {
		return nil, ErrTypeMismatch
	}
	out := make([]Rational, e.Count)
	for i := range out {
		b := e.bytes[i*8:]
		out[i] = Rational{
			Numerator:   int32(e.order.Uint32(b)),
			Denominator: int32(e.order.Uint32(b[4:])),
		}
	}
	return out, nil
}

func (e Entry) AsFloat() float32 {
	v, _ := e.TryAsFloat()
	return v
}

func (e Entry) TryAsFloat() (float32, error) {
	if e.Type != TypeFloat {
		return 0, ErrTypeMismatch
	}
	if e.Count == 0 {
		return 0, nil
	}
	bits := e.order.Uint32(e.bytes)
	return math.Float32frombits(bits), nil
}

func (e Entry) AsDouble() float64 {
	v, _ := e.TryAsDouble()
	return v
}

func (e Entry) TryAsDouble() (float64, error) {
	if e.Type != TypeDouble {
		return 0, ErrTypeMismatch
	}
	if e.Count == 0 {
		return 0, nil
	}
	bits := e.order.Uint64(e.bytes)
	return math.Float64frombits(bits), nil
}

// MarshalJSON renders an Entry as its tag, type name, count, and decoded
// value(s), rather than the zero-value JSON an unexported bytes field
// would otherwise produce - CLI/JSON consumers (cmd/jpegmeta) want the
// scalar, not the wire encoding. Short, Long and the rational types
// render every value when Count > 1; Byte, SByte, SShort, SLong, Float
// and Double render only their first value.
func (e Entry) MarshalJSON() ([]byte, error) {
	type wire struct {
		Tag   uint16 `json:"tag"`
		Type  string `json:"type"`
		Count uint32 `json:"count"`
		Value any    `json:"value"`
	}
	return json.Marshal(wire{Tag: e.Tag, Type: e.Type.String(), Count: e.Count, Value: e.decodedValue()})
}

func (e Entry) decodedValue() any {
	switch e.Type {
	case TypeAscii:
		return e.AsString()
	case TypeShort:
		if e.Count == 1 {
			return e.AsUShort()
		}
		return e.AsUShorts()
	case TypeLong:
		if e.Count == 1 {
			return e.AsULong()
		}
		return e.AsULongs()
	case TypeByte:
		return e.AsByte()
	case TypeSByte:
		return e.AsSByte()
	case TypeSShort:
		return e.AsSShort()
	case TypeSLong:
		return e.AsSLong()
	case TypeRational:
		if e.Count == 1 {
			return e.AsURational()
		}
		return e.AsURationals()
	case TypeSRational:
		if e.Count == 1 {
			return e.AsRational()
		}
		return e.AsRationals()
	case TypeFloat:
		return e.AsFloat()
	case TypeDouble:
		return e.AsDouble()
	default:
		return e.bytes
	}
}
