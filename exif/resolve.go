package exif

import (
	"fmt"

	"github.com/jmreyes/jpegexif/reader"
)

// Resolve materialises each TiffEntry into an Entry by fetching its value
// bytes - inline from the 4-byte valueOrOffset slot when they fit, or from
// an external offset otherwise. appPayloadEnd is the absolute offset, in
// the same coordinate space as hdr.TiffBase, one past the last byte of
// the Exif APP1 payload; it bounds every offset-based read.
//
// A malformed individual entry (unknown type, count overflow,
// out-of-range offset) is dropped with a warning rather than aborting
// the whole parse: JPEG files from real cameras frequently contain
// non-fatal malformed entries. Duplicate tags within the same IFD: last
// occurrence wins.
func Resolve(w *reader.Window, hdr Header, entries []TiffEntry, appPayloadEnd int) (map[uint16]Entry, []string) {
	out := make(map[uint16]Entry, len(entries))
	var warnings []string

	for _, te := range entries {
		entry, warning, ok := resolveOne(w, hdr, te, appPayloadEnd)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		if ok {
			out[te.Tag] = entry
		}
	}
	return out, warnings
}

func resolveOne(w *reader.Window, hdr Header, te TiffEntry, appPayloadEnd int) (Entry, string, bool) {
	typ := Type(te.RawType)
	elemSize, known := typ.Size()
	if !known {
		return Entry{}, fmt.Sprintf(
			"tag 0x%04X: unknown type code %d, entry dropped", te.Tag, te.RawType), false
	}

	size64 := uint64(te.Count) * uint64(elemSize)
	if size64 > uint64(^uint32(0)) {
		return Entry{}, fmt.Sprintf(
			"tag 0x%04X: count*size overflow, entry dropped (%v)", te.Tag, ErrCountOverflow), false
	}
	size := int(size64)

	var data []byte
	var err error
	if size <= 4 {
		data = inlineBytes(te.ValueOrOffset, size, hdr.Order)
	} else {
		start := hdr.TiffBase + int(te.ValueOrOffset)
		if start < hdr.TiffBase || start+size > appPayloadEnd {
			return Entry{}, fmt.Sprintf(
				"tag 0x%04X: value offset %d (size %d) lies outside the Exif payload, entry dropped",
				te.Tag, te.ValueOrOffset, size), false
		}
		if err = w.SeekAbsolute(start); err != nil {
			return Entry{}, fmt.Sprintf("tag 0x%04X: %v, entry dropped", te.Tag, err), false
		}
		data, err = w.Bytes(size)
		if err != nil {
			return Entry{}, fmt.Sprintf("tag 0x%04X: %v, entry dropped", te.Tag, err), false
		}
	}

	return NewEntry(te.Tag, typ, te.Count, data, hdr.Order.ByteOrder()), "", true
}

// inlineBytes extracts the first `size` bytes, in on-wire order, of the
// 4-byte valueOrOffset slot (for big-endian TIFF these are the high-order
// bytes of the uint32), preserving the TIFF byte order so Entry's order-aware accessors
// decode it exactly like an offset-fetched value.
func inlineBytes(valueOrOffset uint32, size int, order reader.Order) []byte {
	raw := make([]byte, 4)
	order.ByteOrder().PutUint32(raw, valueOrOffset)
	return raw[:size]
}
