// Package jpegexif walks the segment structure of a JPEG File Interchange
// Format stream, locates the APP1 Exif payload, and returns a typed,
// queryable set of Exif tags plus basic frame information and the
// embedded thumbnail, alongside the raw bytes of sidecar payloads (JFIF
// APP0, Adobe XMP, a bounded snapshot of the entropy-coded scan).
//
// ParseRaw and Read are the two entry points; a marker-driven scanner
// is the outer control loop, but it only identifies and dispatches
// segments - it never decodes pixels.
package jpegexif

import (
	"fmt"

	"github.com/jmreyes/jpegexif/exif"
	"github.com/jmreyes/jpegexif/reader"
)

const (
	markerSOI  = 0xFFD8
	markerEOI  = 0xFFD9
	markerSOS  = 0xFFDA
	markerDRI  = 0xFFDD
	markerAPP0 = 0xFFE0
	markerAPP1 = 0xFFE1
)

// ParseRaw runs the full segment scan over an in-memory JPEG byte buffer
// and returns the aggregate RawMetadata.
func ParseRaw(data []byte, cfg Config) (*RawMetadata, error) {
	cfg = cfg.normalized()
	w := reader.New(data)
	rm := &RawMetadata{
		ImageEntries:     map[uint16]exif.Entry{},
		ThumbnailEntries: map[uint16]exif.Entry{},
	}
	if err := scanSegments(w, cfg, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func warn(rm *RawMetadata, cfg Config, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	rm.Warnings = append(rm.Warnings, msg)
	cfg.Logger.Warnf(format, args...)
}

// scanSegments is the control loop: SOI, then a marker-by-marker
// dispatch until EOI, a SOS with ParseImageData disabled, or end of
// stream.
func scanSegments(w *reader.Window, cfg Config, rm *RawMetadata) error {
	soi, err := w.ReadBytes(2)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
	}
	if uint16(soi[0])<<8|uint16(soi[1]) != markerSOI {
		return ErrNotAJpeg
	}

	restartAllowed := false
	scanSnapshotTaken := false

	for {
		m, err := w.ReadU8()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
		}
		if m != 0xFF {
			return ErrBadMarker
		}

		t, err := w.ReadU8()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
		}
		for t == 0xFF {
			// run of fill bytes before the real marker code.
			t, err = w.ReadU8()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
			}
		}
		if t == 0x00 {
			// stray stuffed byte outside a scan; resynchronise.
			continue
		}

		switch {
		case t == byte(markerEOI&0xFF):
			return nil

		case t == byte(markerSOS&0xFF):
			if err := skipLengthPrefixed(w); err != nil {
				return err
			}
			if !scanSnapshotTaken {
				rm.ScanSnapshot = snapshotScan(w, scanSnapshotLimit)
				scanSnapshotTaken = true
			}
			if !cfg.ParseImageData {
				return nil
			}
			if err := walkScan(w, restartAllowed, func(msg string) { warn(rm, cfg, "%s", msg) }); err != nil {
				return err
			}

		case t == byte(markerDRI&0xFF):
			if err := skipLengthPrefixed(w); err != nil {
				return err
			}
			restartAllowed = true

		case isSOFMarker(t):
			frame, ferr := readFrameSegment(w, t)
			if ferr != nil {
				return ferr
			}
			rm.Frame = frame

		case t == byte(markerAPP0&0xFF):
			jfif, warning, aerr := readAPP0(w)
			if aerr != nil {
				return aerr
			}
			if jfif != nil {
				rm.JFIF = jfif
			}
			if warning != "" {
				warn(rm, cfg, "%s", warning)
			}

		case t == byte(markerAPP1&0xFF):
			res, aerr := readAPP1(w, cfg)
			if aerr != nil {
				return aerr
			}
			if res.ImageEntries != nil {
				rm.ImageEntries = res.ImageEntries
			}
			if res.ThumbnailEntries != nil {
				rm.ThumbnailEntries = res.ThumbnailEntries
			}
			if res.Thumbnail != nil {
				rm.Thumbnail = res.Thumbnail
				rm.ThumbnailHeuristic = res.ThumbnailHeuristic
			}
			if res.XMP != nil {
				rm.XMP = res.XMP
			}
			for _, w := range res.Warnings {
				warn(rm, cfg, "%s", w)
			}

		default:
			if err := skipLengthPrefixed(w); err != nil {
				return err
			}
		}
	}
}
