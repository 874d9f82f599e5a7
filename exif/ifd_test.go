package exif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmreyes/jpegexif/reader"
)

// buildMotorolaTiff assembles a minimal "Exif\0\0" + TIFF payload with one
// IFD0 entry and no thumbnail IFD.
func buildMotorolaTiff(entries []byte, entryCount uint16) []byte {
	buf := []byte("Exif\x00\x00")
	buf = append(buf, 0x4D, 0x4D)       // Motorola byte order
	buf = append(buf, 0x00, 0x2A)       // magic 42
	buf = append(buf, 0x00, 0x00, 0x00, 0x08) // first IFD offset, relative to tiffBase
	buf = append(buf, byte(entryCount>>8), byte(entryCount))
	buf = append(buf, entries...)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00) // next IFD offset: none
	return buf
}

func TestParseHeaderRejectsMissingExifMagic(t *testing.T) {
	w := reader.New([]byte("Xxif\x00\x00"))
	_, _, err := ParseHeader(w)
	require.ErrorIs(t, err, ErrBadExifHeader)
}

func TestParseHeaderRejectsBadMagicNumber(t *testing.T) {
	data := append([]byte("Exif\x00\x00"), 0x4D, 0x4D, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08)
	w := reader.New(data)
	_, _, err := ParseHeader(w)
	require.ErrorIs(t, err, ErrBadTiffMagic)
}

func TestWalkFlattensInlineEntry(t *testing.T) {
	// one entry: tag 0x010F (Make), type Ascii(2), count 4, inline "AB\0\0"
	entry := []byte{0x01, 0x0F, 0x00, 0x02, 0x00, 0x00, 0x00, 0x04, 'A', 'B', 0x00, 0x00}
	data := buildMotorolaTiff(entry, 1)

	w := reader.New(data)
	result, err := Walk(w, DefaultMaxIFDDepth)
	require.NoError(t, err)
	require.Len(t, result.ImageEntries, 1)
	assert.Equal(t, uint16(0x010F), result.ImageEntries[0].Tag)
	assert.Empty(t, result.ThumbnailEntries)
}

func TestParseIFDDepthCapStopsCycles(t *testing.T) {
	// A Sub-IFD entry (tag 0x8769) pointing back at offset 8 (IFD0 itself),
	// which recurses forever without the depth cap.
	entry := []byte{0x87, 0x69, 0x00, 0x04, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x08}
	data := buildMotorolaTiff(entry, 1)

	w := reader.New(data)
	hdr, firstOffset, err := ParseHeader(w)
	require.NoError(t, err)

	_, _, warnings, err := ParseIFD(w, hdr, firstOffset, 0, 2)
	require.NoError(t, err) // the cycle is caught and reported as a warning, not a hard error
	require.NotEmpty(t, warnings)
}

func TestResolveInlineShortEntry(t *testing.T) {
	// tag 0x0112 (Orientation), type Short(3), count 1: size 2 <= 4, so the
	// value lives directly in the valueOrOffset slot (0x0005 in the high
	// two bytes of a big-endian uint32).
	entry := []byte{0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x05, 0x00, 0x00}
	data := buildMotorolaTiff(entry, 1)

	w := reader.New(data)
	result, err := Walk(w, DefaultMaxIFDDepth)
	require.NoError(t, err)

	entries, warnings := Resolve(w, result.Header, result.ImageEntries, len(data))
	require.Empty(t, warnings)
	assert.Equal(t, uint16(5), entries[0x0112].AsUShort())
}

func TestResolveOffsetEntryReadsExternalBytes(t *testing.T) {
	// tag 0x0102 (BitsPerSample), type Short(3), count 3: size 6 > 4, so
	// valueOrOffset is a tiffBase-relative offset to the actual bytes.
	entry := []byte{0x01, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x1A}
	data := buildMotorolaTiff(entry, 1)
	// Offset 0x1A (26), relative to tiffBase, lands exactly at the byte
	// after the fixed IFD structure (header 8 + count 2 + entry 12 +
	// next-offset 4 = 26), so the value bytes appended below sit right
	// there with no padding needed.
	for len(data) < 6+0x1A {
		data = append(data, 0x00)
	}
	data = append(data, 0x00, 0x08, 0x00, 0x08, 0x00, 0x08) // three Shorts, value 8 each

	w := reader.New(data)
	result, err := Walk(w, DefaultMaxIFDDepth)
	require.NoError(t, err)

	entries, warnings := Resolve(w, result.Header, result.ImageEntries, len(data))
	require.Empty(t, warnings)
	assert.Equal(t, []uint16{8, 8, 8}, entries[0x0102].AsUShorts())
}

func TestResolveRejectsCountSizeOverflow(t *testing.T) {
	entries := []TiffEntry{
		{Tag: 0x1234, RawType: uint16(TypeLong), Count: 0xFFFFFFFF, ValueOrOffset: 0},
	}
	w := reader.New([]byte{})
	hdr := Header{Order: reader.BigEndian, TiffBase: 0}

	out, warnings := Resolve(w, hdr, entries, 0)
	assert.Empty(t, out)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "overflow")
}
