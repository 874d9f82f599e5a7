package exif

import (
	"fmt"

	"github.com/jmreyes/jpegexif/reader"
)

// ThumbnailResult is the product of slicing the embedded JPEG thumbnail
// out of the thumbnail IFD (IFD1) once its tags have been resolved.
type ThumbnailResult struct {
	Bytes     []byte
	Heuristic bool // Compression tag (0x0103) was absent or != 6
}

// ExtractThumbnail: if thumbEntries carries both JPEGInterchangeFormat
// (0x0201) and JPEGInterchangeFormatLength (0x0202), slice that many
// bytes starting at tiffBase+offset. appPayloadEnd bounds the read the
// same way it bounds every offset-based entry value in resolveOne - a
// malformed offset/length pair must not be able to read past the end of
// the Exif payload into whatever segment bytes follow it. Best-effort:
// any failure returns a zero ThumbnailResult plus a warning string
// rather than an error - this step never fails the whole parse.
func ExtractThumbnail(w *reader.Window, hdr Header, thumbEntries map[uint16]Entry, appPayloadEnd int) (ThumbnailResult, string) {
	offsetEntry, ok := thumbEntries[TagJPEGInterchangeFormat]
	if !ok {
		return ThumbnailResult{}, ""
	}
	lengthEntry, ok := thumbEntries[TagJPEGInterchangeFormatLength]
	if !ok {
		return ThumbnailResult{}, ""
	}

	offset, err := offsetEntry.TryAsULong()
	if err != nil {
		return ThumbnailResult{}, fmt.Sprintf("thumbnail: JPEGInterchangeFormat has the wrong type: %v", err)
	}
	length, err := lengthEntry.TryAsULong()
	if err != nil {
		return ThumbnailResult{}, fmt.Sprintf("thumbnail: JPEGInterchangeFormatLength has the wrong type: %v", err)
	}

	start := hdr.TiffBase + int(offset)
	if start < hdr.TiffBase || start+int(length) > appPayloadEnd {
		return ThumbnailResult{}, fmt.Sprintf(
			"thumbnail: offset %d (length %d) lies outside the Exif payload, thumbnail dropped", offset, length)
	}
	if err := w.SeekAbsolute(start); err != nil {
		return ThumbnailResult{}, fmt.Sprintf("thumbnail: offset out of range: %v", err)
	}
	data, err := w.Bytes(int(length))
	if err != nil {
		return ThumbnailResult{}, fmt.Sprintf("thumbnail: %v", err)
	}

	heuristic := true
	if comp, ok := thumbEntries[TagCompression]; ok {
		if v, err := comp.TryAsUShort(); err == nil && v == 6 {
			heuristic = false
		}
	}

	return ThumbnailResult{Bytes: data, Heuristic: heuristic}, ""
}
