package jpegexif

import "errors"

// Segment-level error kinds. These abort the parse - unlike
// per-entry Exif failures (exif.ErrTypeMismatch and friends), which are
// collected as warnings instead, a malformed JPEG segment structure means
// there is nothing reliable left to walk.
var (
	ErrIoFailure     = errors.New("jpegexif: underlying read failed")
	ErrUnexpectedEnd = errors.New("jpegexif: short read before completing a required field")
	ErrNotAJpeg      = errors.New("jpegexif: missing SOI marker")
	ErrBadMarker     = errors.New("jpegexif: expected 0xFF marker preamble")
)
