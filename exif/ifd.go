package exif

import (
	"fmt"

	"github.com/jmreyes/jpegexif/reader"
)

// TiffEntry is the raw, unresolved form of an IFD entry, exactly as it
// sits on the wire: 12 bytes of tag/type/count/value-or-offset. It only
// lives between the IFD walk (this file) and the entry resolver
// (resolve.go).
type TiffEntry struct {
	Tag           uint16
	RawType       uint16
	Count         uint32
	ValueOrOffset uint32
}

const entrySize = 12 // tag(2) + type(2) + count(4) + valueOrOffset(4)

// DefaultMaxIFDDepth bounds the Exif Sub-IFD recursion (ExifSubIFD, GPS,
// Interop) to defeat a self-referential or cyclic pointer, which
// otherwise recurses forever against a malformed or hostile file.
const DefaultMaxIFDDepth = 4

// Header is the parsed Exif/TIFF preamble: byte order and the base offset
// (tiffBase) that every subsequent IFD/value offset is relative to.
type Header struct {
	Order    reader.Order
	TiffBase int // absolute offset, within the data passed to Walk, of the TIFF header
}

// ParseHeader consumes the 6-byte "Exif\0\0" marker plus the TIFF header
// (byte order, magic 42, first IFD offset) from w, which must be
// positioned at the start of the APP1 payload (immediately after the
// segment marker and length).
func ParseHeader(w *reader.Window) (hdr Header, firstIFDOffset uint32, err error) {
	magic, err := w.ReadAsciiExact(4)
	if err != nil {
		return Header{}, 0, fmt.Errorf("%w: %v", ErrBadExifHeader, err)
	}
	pad, err := w.ReadBytes(2)
	if err != nil {
		return Header{}, 0, fmt.Errorf("%w: %v", ErrBadExifHeader, err)
	}
	if magic != "Exif" || pad[0] != 0 || pad[1] != 0 {
		return Header{}, 0, ErrBadExifHeader
	}

	tiffBase := w.Position()

	orderMark, err := w.ReadU16(reader.BigEndian)
	if err != nil {
		return Header{}, 0, fmt.Errorf("%w: %v", ErrBadByteOrder, err)
	}
	var order reader.Order
	switch orderMark {
	case 0x4949:
		order = reader.LittleEndian
	case 0x4D4D:
		order = reader.BigEndian
	default:
		return Header{}, 0, ErrBadByteOrder
	}

	magicNumber, err := w.ReadU16(order)
	if err != nil {
		return Header{}, 0, fmt.Errorf("%w: %v", ErrBadTiffMagic, err)
	}
	if magicNumber != 42 {
		return Header{}, 0, ErrBadTiffMagic
	}

	offset, err := w.ReadU32(order)
	if err != nil {
		return Header{}, 0, fmt.Errorf("%w: %v", ErrBadTiffMagic, err)
	}

	return Header{Order: order, TiffBase: tiffBase}, offset, nil
}

// pointerTags are Sub-IFD pointers that get flattened into the enclosing
// IFD's entry list: the Exif Sub-IFD, GPS IFD, and Interop IFD are all
// modelled as first-class IFD namespaces and flattened the same way.
var pointerTags = map[uint16]bool{
	0x8769: true, // Exif Sub-IFD
	0x8825: true, // GPS IFD
	0xA005: true, // Interop IFD
}

// ParseIFD walks one IFD chain starting at offset (relative to
// hdr.TiffBase), flattening any Sub-IFD pointers it finds into the
// returned list, and returns the offset of the next IFD in the chain
// (0 if none). depth is the current recursion depth against maxDepth
// (a depth above maxDepth yields ErrCycleOrDepth); callers start at depth 0.
func ParseIFD(w *reader.Window, hdr Header, offset uint32, depth int, maxDepth int) (entries []TiffEntry, next uint32, warnings []string, err error) {
	if depth > maxDepth {
		return nil, 0, nil, ErrCycleOrDepth
	}

	if err := w.SeekAbsolute(hdr.TiffBase + int(offset)); err != nil {
		return nil, 0, nil, fmt.Errorf("%w: %v", ErrOutOfRangeOffset, err)
	}

	count, err := w.ReadU16(hdr.Order)
	if err != nil {
		return nil, 0, nil, err
	}

	entries = make([]TiffEntry, 0, count)
	for i := uint16(0); i < count; i++ {
		te, err := readTiffEntry(w, hdr.Order)
		if err != nil {
			return entries, 0, warnings, err
		}
		entries = append(entries, te)

		if pointerTags[te.Tag] {
			savedPos := w.Position()
			sub, _, subWarnings, err := ParseIFD(w, hdr, te.ValueOrOffset, depth+1, maxDepth)
			warnings = append(warnings, subWarnings...)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"sub-IFD at tag 0x%04X, offset %d: %v", te.Tag, te.ValueOrOffset, err))
			} else {
				entries = append(entries, sub...)
			}
			if err := w.SeekAbsolute(savedPos); err != nil {
				return entries, 0, warnings, err
			}
		}
	}

	next, err = w.ReadU32(hdr.Order)
	if err != nil {
		return entries, 0, warnings, err
	}
	return entries, next, warnings, nil
}

func readTiffEntry(w *reader.Window, order reader.Order) (TiffEntry, error) {
	tag, err := w.ReadU16(order)
	if err != nil {
		return TiffEntry{}, err
	}
	rawType, err := w.ReadU16(order)
	if err != nil {
		return TiffEntry{}, err
	}
	count, err := w.ReadU32(order)
	if err != nil {
		return TiffEntry{}, err
	}
	valueOrOffset, err := w.ReadU32(order)
	if err != nil {
		return TiffEntry{}, err
	}
	return TiffEntry{Tag: tag, RawType: rawType, Count: count, ValueOrOffset: valueOrOffset}, nil
}

// WalkResult is the product of walking both the primary (IFD0, with its
// Exif/GPS/Interop Sub-IFDs flattened in) and thumbnail (IFD1) chains.
type WalkResult struct {
	Header           Header
	ImageEntries     []TiffEntry
	ThumbnailEntries []TiffEntry
	Warnings         []string
}

// Walk performs the full IFD walk: Exif header, TIFF header, IFD0
// (+ Sub-IFDs), and - if present - IFD1 (the thumbnail IFD).
func Walk(w *reader.Window, maxDepth int) (WalkResult, error) {
	hdr, firstIFDOffset, err := ParseHeader(w)
	if err != nil {
		return WalkResult{}, err
	}

	imageEntries, thumbOffset, warnings, err := ParseIFD(w, hdr, firstIFDOffset, 0, maxDepth)
	if err != nil {
		return WalkResult{Header: hdr, Warnings: warnings}, err
	}

	result := WalkResult{Header: hdr, ImageEntries: imageEntries, Warnings: warnings}
	if thumbOffset != 0 {
		thumbEntries, _, thumbWarnings, err := ParseIFD(w, hdr, thumbOffset, 0, maxDepth)
		result.Warnings = append(result.Warnings, thumbWarnings...)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("thumbnail IFD at offset %d: %v", thumbOffset, err))
		} else {
			result.ThumbnailEntries = thumbEntries
		}
	}
	return result, nil
}

// ParseResult is the output of a full Exif-APP1-payload parse: header,
// resolved image/thumbnail tag maps, the extracted thumbnail (if any), and
// every warning collected along the way.
type ParseResult struct {
	Header             Header
	ImageEntries       map[uint16]Entry
	ThumbnailEntries   map[uint16]Entry
	Thumbnail          []byte
	ThumbnailHeuristic bool
	Warnings           []string
}

// Parse runs the full IFD walk, entry resolution, and thumbnail
// extraction over one Exif APP1 payload. w must be positioned at the
// start of the payload (immediately after the segment marker and
// length); payloadEnd bounds every offset-based value read.
func Parse(w *reader.Window, payloadEnd int, maxDepth int) (ParseResult, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxIFDDepth
	}

	walked, err := Walk(w, maxDepth)
	if err != nil {
		return ParseResult{Header: walked.Header, Warnings: walked.Warnings}, err
	}

	imageEntries, imgWarnings := Resolve(w, walked.Header, walked.ImageEntries, payloadEnd)
	thumbEntries, thumbWarnings := Resolve(w, walked.Header, walked.ThumbnailEntries, payloadEnd)

	warnings := append(walked.Warnings, imgWarnings...)
	warnings = append(warnings, thumbWarnings...)

	result := ParseResult{
		Header:           walked.Header,
		ImageEntries:     imageEntries,
		ThumbnailEntries: thumbEntries,
		Warnings:         warnings,
	}

	if len(thumbEntries) > 0 {
		thumb, warning := ExtractThumbnail(w, walked.Header, thumbEntries, payloadEnd)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Thumbnail = thumb.Bytes
		result.ThumbnailHeuristic = thumb.Heuristic
	}

	return result, nil
}
