package jpegexif

import (
	"fmt"

	"github.com/jmreyes/jpegexif/reader"
)

const jfifMagic = "JFIF\x00"

// jfifFixedFieldsLen is the size, in bytes, of JFIF's fixed fields after
// the "JFIF\0" tag: version(2) + units(1) + Xdensity(2) + Ydensity(2) +
// Xthumbnail(1) + Ythumbnail(1).
const jfifFixedFieldsLen = 9

// readAPP0 handles the APP0 segment: if it starts with "JFIF\0" the full
// payload is retained verbatim as jfif; otherwise it is skipped. A
// retained JFIF payload is additionally checked for internal consistency
// between its declared thumbnail dimensions and the segment's declared
// length; a mismatch is reported as a warning, never a hard failure.
func readAPP0(w *reader.Window) (jfif []byte, warning string, err error) {
	l, rerr := w.ReadU16(reader.BigEndian)
	if rerr != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnexpectedEnd, rerr)
	}
	bodyLen := int(l) - 2
	if bodyLen < 0 {
		return nil, "", ErrBadMarker
	}
	bodyStart := w.Position()

	if bodyLen < len(jfifMagic) {
		return nil, "", w.SeekAbsolute(bodyStart + bodyLen)
	}

	tag, perr := w.PeekBytes(len(jfifMagic))
	if perr != nil {
		return nil, "", perr
	}
	if string(tag) != jfifMagic {
		return nil, "", w.SeekAbsolute(bodyStart + bodyLen)
	}

	payload, berr := w.Bytes(bodyLen)
	if berr != nil {
		return nil, "", berr
	}

	if bodyLen >= len(jfifMagic)+jfifFixedFieldsLen {
		xThumb := int(payload[len(jfifMagic)+7])
		yThumb := int(payload[len(jfifMagic)+8])
		expected := len(jfifMagic) + jfifFixedFieldsLen + 3*xThumb*yThumb
		if expected != bodyLen {
			warning = fmt.Sprintf(
				"APP0 JFIF: declared length %d is inconsistent with thumbnail dimensions %dx%d (expected %d)",
				bodyLen, xThumb, yThumb, expected)
		}
	}

	return payload, warning, nil
}
