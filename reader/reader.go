// Package reader provides a bounded, seekable byte-window over an
// in-memory buffer, with endianness-aware multi-byte reads.
//
// It plays the role a buffered forward scanner with a handful of
// lookahead bytes usually plays in segment-structured binary formats,
// except every read is bounds-checked against the window rather than
// relying on io.ReadFull returning io.ErrUnexpectedEOF: a short read is a
// parse error, not an I/O error, and the caller wants to distinguish the
// two.
package reader

import (
	"encoding/binary"
	"fmt"
)

// Order selects the byte order used to decode multi-byte fields.
type Order int

const (
	BigEndian Order = iota
	LittleEndian
)

// ByteOrder returns the stdlib binary.ByteOrder corresponding to o, for
// callers (such as the exif package's Entry accessors) that need to
// decode bytes already extracted from a Window.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (o Order) byteOrder() binary.ByteOrder { return o.ByteOrder() }

// ErrUnexpectedEnd is returned whenever a read would run past the end of
// the window.
type ErrUnexpectedEnd struct {
	Pos, Want, Have int
}

func (e ErrUnexpectedEnd) Error() string {
	return fmt.Sprintf("unexpected end of data at offset %d: wanted %d bytes, have %d",
		e.Pos, e.Want, e.Have)
}

// Window is a bounded cursor over a byte slice. It never copies the
// underlying buffer; all returned slices alias it. Callers that need an
// owned copy (e.g. to outlive the source file) must copy explicitly -
// see Bytes.
type Window struct {
	data []byte
	pos  int
}

// New wraps data in a Window positioned at offset 0.
func New(data []byte) *Window {
	return &Window{data: data}
}

// Len returns the total size of the window.
func (w *Window) Len() int { return len(w.data) }

// Position returns the current absolute offset.
func (w *Window) Position() int { return w.pos }

// Remaining returns the number of bytes left to read.
func (w *Window) Remaining() int { return len(w.data) - w.pos }

func (w *Window) require(n int) error {
	if n < 0 || w.Remaining() < n {
		return ErrUnexpectedEnd{Pos: w.pos, Want: n, Have: w.Remaining()}
	}
	return nil
}

// SeekAbsolute repositions the cursor to an absolute offset within the
// window. It is an error to seek outside [0, Len()].
func (w *Window) SeekAbsolute(pos int) error {
	if pos < 0 || pos > len(w.data) {
		return fmt.Errorf("reader: seek to %d out of range [0,%d]", pos, len(w.data))
	}
	w.pos = pos
	return nil
}

// Skip advances the cursor by n bytes without returning them.
func (w *Window) Skip(n int) error {
	if err := w.require(n); err != nil {
		return err
	}
	w.pos += n
	return nil
}

// ReadU8 reads and consumes a single byte.
func (w *Window) ReadU8() (byte, error) {
	if err := w.require(1); err != nil {
		return 0, err
	}
	b := w.data[w.pos]
	w.pos++
	return b, nil
}

// PeekU8 returns the next byte without consuming it.
func (w *Window) PeekU8() (byte, error) {
	if err := w.require(1); err != nil {
		return 0, err
	}
	return w.data[w.pos], nil
}

// PeekBytes returns the next n bytes without consuming them. The returned
// slice aliases the window's buffer.
func (w *Window) PeekBytes(n int) ([]byte, error) {
	if err := w.require(n); err != nil {
		return nil, err
	}
	return w.data[w.pos : w.pos+n], nil
}

// ReadBytes consumes and returns the next n bytes. The returned slice
// aliases the window's buffer; use Bytes for an owned copy.
func (w *Window) ReadBytes(n int) ([]byte, error) {
	if err := w.require(n); err != nil {
		return nil, err
	}
	b := w.data[w.pos : w.pos+n]
	w.pos += n
	return b, nil
}

// Bytes is like ReadBytes but returns an owned copy, for values that must
// outlive the backing file (RawMetadata invariant: owned byte sequences).
func (w *Window) Bytes(n int) ([]byte, error) {
	b, err := w.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	owned := make([]byte, len(b))
	copy(owned, b)
	return owned, nil
}

// ReadAsciiExact reads n bytes and returns them verbatim as a string
// (no NUL trimming - callers decide whether trailing NULs matter).
func (w *Window) ReadAsciiExact(n int) (string, error) {
	b, err := w.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadU16 reads a 2-byte unsigned integer in the given order.
func (w *Window) ReadU16(order Order) (uint16, error) {
	b, err := w.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return order.byteOrder().Uint16(b), nil
}

// ReadI16 reads a 2-byte signed integer in the given order.
func (w *Window) ReadI16(order Order) (int16, error) {
	v, err := w.ReadU16(order)
	return int16(v), err
}

// ReadU32 reads a 4-byte unsigned integer in the given order.
func (w *Window) ReadU32(order Order) (uint32, error) {
	b, err := w.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return order.byteOrder().Uint32(b), nil
}

// ReadI32 reads a 4-byte signed integer in the given order.
func (w *Window) ReadI32(order Order) (int32, error) {
	v, err := w.ReadU32(order)
	return int32(v), err
}

// At returns a new Window sharing the same buffer, positioned at pos.
// Used by the APP1 dispatcher to hand the Exif parser its own cursor
// without disturbing the caller's.
func (w *Window) At(pos int) (*Window, error) {
	if pos < 0 || pos > len(w.data) {
		return nil, fmt.Errorf("reader: At(%d) out of range [0,%d]", pos, len(w.data))
	}
	return &Window{data: w.data, pos: pos}, nil
}
