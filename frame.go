package jpegexif

import (
	"fmt"

	"github.com/jmreyes/jpegexif/reader"
)

// FrameInfo is the Start-of-Frame record: the four fields carried
// directly in the SOFn payload, plus two derived fields (IsColor,
// Encoding) that any consumer of SimpleMetadata wants without having to
// know the marker table by heart.
type FrameInfo struct {
	Marker        uint16 // 0xFFC0..0xFFCF, the specific SOFn marker seen
	BitsPerSample byte
	Width         uint16
	Height        uint16
	Components    byte
	IsColor       bool
	Encoding      string
}

// sofEncodingNames maps each of the thirteen SOFn marker low bytes to a
// human-readable encoding name. 0xC4 (DHT), 0xC8 (JPG, reserved) and
// 0xCC (DAC) are not SOFn markers and are intentionally absent.
var sofEncodingNames = map[byte]string{
	0xC0: "Baseline",
	0xC1: "Extended Sequential",
	0xC2: "Progressive",
	0xC3: "Lossless",
	0xC5: "Differential Sequential",
	0xC6: "Differential Progressive",
	0xC7: "Differential Lossless",
	0xC9: "Extended Sequential, Arithmetic",
	0xCA: "Progressive, Arithmetic",
	0xCB: "Lossless, Arithmetic",
	0xCD: "Differential Sequential, Arithmetic",
	0xCE: "Differential Progressive, Arithmetic",
	0xCF: "Differential Lossless, Arithmetic",
}

func isSOFMarker(t byte) bool {
	_, ok := sofEncodingNames[t]
	return ok
}

// readFrameSegment parses one SOFn payload: bitsPerSample(1) |
// height(2, BE) | width(2, BE) | components(1) | ... The trailing
// per-component selector bytes are not needed for metadata purposes and
// are skipped along with the rest of the declared segment length.
func readFrameSegment(w *reader.Window, t byte) (FrameInfo, error) {
	l, err := w.ReadU16(reader.BigEndian)
	if err != nil {
		return FrameInfo{}, fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
	}
	bodyLen := int(l) - 2
	if bodyLen < 0 {
		return FrameInfo{}, ErrBadMarker
	}
	bodyStart := w.Position()
	if bodyLen < 6 {
		_ = w.SeekAbsolute(bodyStart + bodyLen)
		return FrameInfo{}, fmt.Errorf("%w: SOFn segment shorter than its fixed fields", ErrUnexpectedEnd)
	}

	bits, err := w.ReadU8()
	if err != nil {
		return FrameInfo{}, err
	}
	height, err := w.ReadU16(reader.BigEndian)
	if err != nil {
		return FrameInfo{}, err
	}
	width, err := w.ReadU16(reader.BigEndian)
	if err != nil {
		return FrameInfo{}, err
	}
	components, err := w.ReadU8()
	if err != nil {
		return FrameInfo{}, err
	}

	if err := w.SeekAbsolute(bodyStart + bodyLen); err != nil {
		return FrameInfo{}, err
	}

	return FrameInfo{
		Marker:        0xFF00 | uint16(t),
		BitsPerSample: bits,
		Height:        height,
		Width:         width,
		Components:    components,
		IsColor:       components == 3,
		Encoding:      sofEncodingNames[t],
	}, nil
}
