package exif

import "errors"

// Error kinds specific to the TIFF/IFD walk and entry resolution.
// JPEG-segment-level kinds (NotAJpeg, BadMarker, IoFailure, UnexpectedEnd)
// live in the root package, which is the layer that owns the byte stream.
var (
	ErrBadExifHeader    = errors.New("exif: missing or malformed \"Exif\\0\\0\" header")
	ErrBadByteOrder     = errors.New("exif: unrecognised TIFF byte order marker")
	ErrBadTiffMagic     = errors.New("exif: TIFF magic number is not 42")
	ErrTypeMismatch     = errors.New("exif: entry accessed with the wrong physical type")
	ErrTruncated        = errors.New("exif: value offset runs past the end of the Exif payload")
	ErrOutOfRangeOffset = errors.New("exif: value offset lies outside the Exif payload")
	ErrCycleOrDepth     = errors.New("exif: IFD recursion exceeded the depth cap")
	ErrCountOverflow    = errors.New("exif: entry count * type size overflows")
)
