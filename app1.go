package jpegexif

import (
	"fmt"

	"github.com/jmreyes/jpegexif/exif"
	"github.com/jmreyes/jpegexif/reader"
)

const xmpMagicPrefix = "http"
const exifMagic = "Exif"

// app1Result carries everything an APP1 dispatch may produce: either an
// Exif payload (image + thumbnail entries, plus whatever the Exif
// thumbnail step extracted) or an XMP payload, never both.
type app1Result struct {
	ImageEntries       map[uint16]exif.Entry
	ThumbnailEntries   map[uint16]exif.Entry
	Thumbnail          []byte
	ThumbnailHeuristic bool
	XMP                []byte
	Warnings           []string
}

// readAPP1 handles the APP1 segment: peek the next 4 bytes and dispatch
// to the Exif walker ("Exif") or retain the payload verbatim as XMP
// ("http", the lead-in of "http://ns.adobe.com/xap/1.0/\0"); any other
// prefix is skipped.
func readAPP1(w *reader.Window, cfg Config) (app1Result, error) {
	l, err := w.ReadU16(reader.BigEndian)
	if err != nil {
		return app1Result{}, fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
	}
	bodyLen := int(l) - 2
	if bodyLen < 0 {
		return app1Result{}, ErrBadMarker
	}
	bodyStart := w.Position()
	bodyEnd := bodyStart + bodyLen

	if bodyLen < 4 {
		return app1Result{}, w.SeekAbsolute(bodyEnd)
	}

	peek, err := w.PeekBytes(4)
	if err != nil {
		return app1Result{}, err
	}

	var res app1Result
	switch string(peek) {
	case exifMagic:
		sub, err := w.At(bodyStart)
		if err != nil {
			return app1Result{}, err
		}
		parsed, perr := exif.Parse(sub, bodyEnd, cfg.MaxIFDDepth)
		if perr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("APP1 Exif segment: %v", perr))
		} else {
			res.ImageEntries = parsed.ImageEntries
			res.ThumbnailEntries = parsed.ThumbnailEntries
			res.Thumbnail = parsed.Thumbnail
			res.ThumbnailHeuristic = parsed.ThumbnailHeuristic
			res.Warnings = append(res.Warnings, parsed.Warnings...)
		}
	case xmpMagicPrefix:
		xmp, berr := w.Bytes(bodyLen)
		if berr != nil {
			return app1Result{}, berr
		}
		res.XMP = xmp
	}

	if err := w.SeekAbsolute(bodyEnd); err != nil {
		return app1Result{}, err
	}
	return res, nil
}
