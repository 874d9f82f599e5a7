package jpegexif

import (
	"fmt"

	"github.com/jmreyes/jpegexif/reader"
)

// skipLengthPrefixed consumes a standard declared-length segment body: a
// 2-byte big-endian length L (which counts itself), then L-2 body bytes.
// On return the cursor sits exactly at the byte after the segment.
func skipLengthPrefixed(w *reader.Window) error {
	l, err := w.ReadU16(reader.BigEndian)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
	}
	if l < 2 {
		return ErrBadMarker
	}
	return w.Skip(int(l) - 2)
}

// scanSnapshotLimit bounds the retained snapshot of compressed scan
// data. 64 KiB is enough for downstream consumers (format sniffers,
// thumbnail-style previews) to look at without holding the whole
// entropy-coded scan in RawMetadata.
const scanSnapshotLimit = 64 * 1024

// snapshotScan copies up to scanSnapshotLimit bytes starting at the
// window's current position, without disturbing the cursor.
func snapshotScan(w *reader.Window, limit int) []byte {
	n := limit
	if r := w.Remaining(); n > r {
		n = r
	}
	if n <= 0 {
		return nil
	}
	b, err := w.PeekBytes(n)
	if err != nil {
		return nil
	}
	owned := make([]byte, len(b))
	copy(owned, b)
	return owned
}

// restartMarkerLow, restartMarkerHigh bound the restart-marker set
// 0xFFD0..0xFFD7.
const (
	restartMarkerLow  = 0xD0
	restartMarkerHigh = 0xD7
)

// walkScan advances byte-by-byte through entropy-coded data until it
// finds a real marker - one that is
// neither a stuffed 0x00 following 0xFF nor (when restartAllowed) a
// restart marker - then repositions the cursor at that marker's leading
// 0xFF so the outer segment loop reads it next.
//
// Along the way it tracks the embedded restart markers (0xFFD0-0xFFD7)
// the same way the teacher's processScan does: each RST's low 3 bits
// should advance from the previous one by exactly 1 mod 8, and a
// trailing RST with no entropy-coded bytes between it and the next
// marker is "useless". Both conditions are reported through warn
// rather than failing the scan.
func walkScan(w *reader.Window, restartAllowed bool, warn func(msg string)) error {
	lastRST := -1
	lastRSTEndPos := -1
	for {
		pos := w.Position()
		b, err := w.ReadU8()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
		}
		if b != 0xFF {
			lastRSTEndPos = -1
			continue
		}

		t, err := w.PeekU8()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
		}
		if t == 0x00 {
			// stuffed byte: consume the 0x00 and keep scanning.
			_ = w.Skip(1)
			lastRSTEndPos = -1
			continue
		}
		if t == 0xFF {
			// run of fill bytes before the real marker; loop back and
			// consume it as the next candidate 0xFF.
			continue
		}
		if restartAllowed && t >= restartMarkerLow && t <= restartMarkerHigh {
			rst := int(t - restartMarkerLow)
			if lastRST >= 0 && (lastRST+1)%8 != rst {
				warn(fmt.Sprintf("invalid RST sequence (%d, expected %d)", rst, (lastRST+1)%8))
			}
			lastRST = rst
			_ = w.Skip(1)
			lastRSTEndPos = w.Position()
			continue
		}

		if lastRSTEndPos == pos {
			warn("ending RST is useless")
		}

		// Real marker: back up over the 0xFF we already consumed.
		return w.SeekAbsolute(pos)
	}
}
