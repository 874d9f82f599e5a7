package jpegexif

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/jmreyes/jpegexif/exif"
)

// RawMetadata is the aggregate produced per file. All contained byte
// sequences are owned copies: the file handle backing a Read call is
// released before the caller sees this value.
type RawMetadata struct {
	ImageEntries       map[uint16]exif.Entry
	ThumbnailEntries   map[uint16]exif.Entry
	Thumbnail          []byte
	ThumbnailHeuristic bool
	Frame              FrameInfo
	JFIF               []byte
	XMP                []byte
	ScanSnapshot       []byte
	Warnings           []string
}

// Read opens path, runs the full segment scan, and returns the resulting
// RawMetadata.
func Read(path string, cfg Config) (*RawMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return ParseRaw(data, cfg)
}

// GetSimple projects path's Exif + SOF fields into a SimpleMetadata.
func GetSimple(path string, cfg Config) (SimpleMetadata, error) {
	rm, err := Read(path, cfg)
	if err != nil {
		return SimpleMetadata{}, err
	}
	return rm.Simple(filepath.Base(path)), nil
}

// TryGetTag looks up a single image-Exif tag. The second return value is
// false if the tag is absent - callers that want "present but wrong
// type" distinguished from "absent" use Entry's own TryAsXxx accessors
// on the returned value.
func TryGetTag(path string, tag uint16, cfg Config) (exif.Entry, bool, error) {
	rm, err := Read(path, cfg)
	if err != nil {
		return exif.Entry{}, false, err
	}
	e, ok := rm.ImageEntries[tag]
	return e, ok, nil
}

// GetTags returns every image-Exif tag, including the flattened Exif
// Sub-IFD.
func GetTags(path string, cfg Config) (map[uint16]exif.Entry, error) {
	rm, err := Read(path, cfg)
	if err != nil {
		return nil, err
	}
	return rm.ImageEntries, nil
}

// GetThumbnail returns the same bytes as Read(path, cfg).Thumbnail.
func GetThumbnail(path string, cfg Config) ([]byte, error) {
	rm, err := Read(path, cfg)
	if err != nil {
		return nil, err
	}
	return rm.Thumbnail, nil
}

// OrientationTag is the 8-value enum derived from Exif tag 0x0112.
type OrientationTag int

const (
	OrientationUnknown OrientationTag = iota
	OrientationNormal
	OrientationMirrorHorizontal
	OrientationRotate180
	OrientationMirrorVertical
	OrientationTranspose
	OrientationRotate90CW
	OrientationTransverse
	OrientationRotate270CW
)

func orientationFromTag(v uint16) OrientationTag {
	switch v {
	case 1:
		return OrientationNormal
	case 2:
		return OrientationMirrorHorizontal
	case 3:
		return OrientationRotate180
	case 4:
		return OrientationMirrorVertical
	case 5:
		return OrientationTranspose
	case 6:
		return OrientationRotate90CW
	case 7:
		return OrientationTransverse
	case 8:
		return OrientationRotate270CW
	default:
		return OrientationUnknown
	}
}

// ExposureProgramTag is the 9-value enum derived from Exif tag 0x8822. Its
// members already mirror the raw wire values 0-8, so decoding is a direct
// cast (see Simple).
type ExposureProgramTag int

const (
	ExposureProgramNotDefined ExposureProgramTag = iota
	ExposureProgramManual
	ExposureProgramNormal
	ExposureProgramAperturePriority
	ExposureProgramShutterPriority
	ExposureProgramCreative
	ExposureProgramAction
	ExposureProgramPortrait
	ExposureProgramLandscape
)

// SimpleMetadata is the flattened, consumer-friendly projection over
// RawMetadata's raw Exif entries and frame info.
type SimpleMetadata struct {
	Name            string
	Width           uint16
	Height          uint16
	BitsPerSample   byte
	Encoding        string
	ColorComponents byte
	IsColor         bool

	Software string
	Make     string
	Model    string

	Orientation OrientationTag

	ISO          uint32
	ExposureTime exif.URational

	ApertureValue   float64
	ApertureValueOK bool
	MaxAperture     float64
	MaxApertureOK   bool

	FocalLengthIn35mm uint16
	ExposureProgram   ExposureProgramTag
	LensModel         string

	OriginalCreateDate string
	ModifyDate         string
	Copyright          string
	Artist             string
}

// Simple projects rm's image entries and frame info into a
// SimpleMetadata, naming the file as name.
func (rm *RawMetadata) Simple(name string) SimpleMetadata {
	sm := SimpleMetadata{
		Name:            name,
		Width:           rm.Frame.Width,
		Height:          rm.Frame.Height,
		BitsPerSample:   rm.Frame.BitsPerSample,
		Encoding:        rm.Frame.Encoding,
		ColorComponents: rm.Frame.Components,
		IsColor:         rm.Frame.IsColor,
	}

	entries := rm.ImageEntries

	if e, ok := entries[exif.TagSoftware]; ok {
		sm.Software = e.AsString()
	}
	if e, ok := entries[exif.TagMake]; ok {
		sm.Make = e.AsString()
	}
	if e, ok := entries[exif.TagModel]; ok {
		sm.Model = e.AsString()
	}
	if e, ok := entries[exif.TagOrientation]; ok {
		sm.Orientation = orientationFromTag(e.AsUShort())
	}
	if e, ok := entries[exif.TagISOSpeedRatings]; ok {
		sm.ISO = isoFromEntry(e)
	}
	if e, ok := entries[exif.TagExposureTime]; ok {
		sm.ExposureTime = e.AsURational()
	}
	if e, ok := entries[exif.TagApertureValue]; ok {
		sm.ApertureValue, sm.ApertureValueOK = apexToFNumber(e)
	}
	if e, ok := entries[exif.TagMaxApertureValue]; ok {
		sm.MaxAperture, sm.MaxApertureOK = apexToFNumber(e)
	}
	if e, ok := entries[exif.TagFocalLengthIn35mm]; ok {
		sm.FocalLengthIn35mm = e.AsUShort()
	}
	if e, ok := entries[exif.TagExposureProgram]; ok {
		sm.ExposureProgram = ExposureProgramTag(e.AsUShort())
	}
	if e, ok := entries[exif.TagLensModel]; ok {
		sm.LensModel = e.AsString()
	}
	if e, ok := entries[exif.TagOriginalCreateDate]; ok {
		sm.OriginalCreateDate = e.AsString()
	}
	if e, ok := entries[exif.TagModifyDate]; ok {
		sm.ModifyDate = e.AsString()
	}
	if e, ok := entries[exif.TagCopyright]; ok {
		sm.Copyright = e.AsString()
	}
	if e, ok := entries[exif.TagArtist]; ok {
		sm.Artist = e.AsString()
	}

	return sm
}

// isoFromEntry decodes ISOSpeedRatings via its declared physical type
// rather than assuming Short: real-world files encode it as either,
// depending on camera make.
func isoFromEntry(e exif.Entry) uint32 {
	if v, err := e.TryAsUShort(); err == nil {
		return uint32(v)
	}
	if v, err := e.TryAsULong(); err == nil {
		return v
	}
	return 0
}

// apexToFNumber converts an APEX aperture value (ApertureValue 0x9202 or
// MaxApertureValue 0x9205, both stored as an unsigned rational) to an
// f-number via f = exp(apex * ln2 / 2).
func apexToFNumber(e exif.Entry) (float64, bool) {
	r, err := e.TryAsURational()
	if err != nil {
		return 0, false
	}
	apex, ok := r.ToDouble()
	if !ok {
		return 0, false
	}
	return math.Exp(apex * math.Ln2 / 2), true
}
