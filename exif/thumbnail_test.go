package exif

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmreyes/jpegexif/reader"
)

func TestExtractThumbnailReadsWithinBounds(t *testing.T) {
	data := make([]byte, 40)
	copy(data[32:], []byte{0xFF, 0xD8, 0xFF, 0xD9})
	w := reader.New(data)
	hdr := Header{Order: reader.BigEndian, TiffBase: 0}

	offsetBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(offsetBytes, 32)
	lengthBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(lengthBytes, 4)

	thumbEntries := map[uint16]Entry{
		TagJPEGInterchangeFormat:       NewEntry(TagJPEGInterchangeFormat, TypeLong, 1, offsetBytes, binary.BigEndian),
		TagJPEGInterchangeFormatLength: NewEntry(TagJPEGInterchangeFormatLength, TypeLong, 1, lengthBytes, binary.BigEndian),
	}

	result, warning := ExtractThumbnail(w, hdr, thumbEntries, len(data))
	require.Empty(t, warning)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xD9}, result.Bytes)
	assert.True(t, result.Heuristic)
}

func TestExtractThumbnailRejectsOffsetPastPayloadEnd(t *testing.T) {
	// appPayloadEnd is 40, but offset(32)+length(16) reaches 48: past the
	// end of the Exif payload, into whatever segment bytes follow it.
	data := make([]byte, 48)
	w := reader.New(data)
	hdr := Header{Order: reader.BigEndian, TiffBase: 0}

	offsetBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(offsetBytes, 32)
	lengthBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(lengthBytes, 16)

	thumbEntries := map[uint16]Entry{
		TagJPEGInterchangeFormat:       NewEntry(TagJPEGInterchangeFormat, TypeLong, 1, offsetBytes, binary.BigEndian),
		TagJPEGInterchangeFormatLength: NewEntry(TagJPEGInterchangeFormatLength, TypeLong, 1, lengthBytes, binary.BigEndian),
	}

	result, warning := ExtractThumbnail(w, hdr, thumbEntries, 40)
	assert.Empty(t, result.Bytes)
	assert.NotEmpty(t, warning)
	assert.Contains(t, warning, "outside the Exif payload")
}
