package exif

// Well-known tag numbers, exported since Entry and RawMetadata are a
// public surface.
const (
	TagImageWidth    uint16 = 0x0100
	TagImageHeight   uint16 = 0x0101
	TagBitsPerSample uint16 = 0x0102
	TagCompression   uint16 = 0x0103

	TagMake        uint16 = 0x010F
	TagModel       uint16 = 0x0110
	TagOrientation uint16 = 0x0112
	TagSoftware    uint16 = 0x0131
	TagModifyDate  uint16 = 0x0132
	TagArtist      uint16 = 0x013B
	TagCopyright   uint16 = 0x8298

	TagExifSubIFD uint16 = 0x8769
	TagGPSIFD     uint16 = 0x8825
	TagInteropIFD uint16 = 0xA005

	TagExposureTime       uint16 = 0x829A
	TagFNumber            uint16 = 0x829D
	TagExposureProgram    uint16 = 0x8822
	TagISOSpeedRatings    uint16 = 0x8827
	TagOriginalCreateDate uint16 = 0x9003
	TagShutterSpeedValue  uint16 = 0x9201
	TagApertureValue      uint16 = 0x9202
	TagMaxApertureValue   uint16 = 0x9205
	TagFocalLength        uint16 = 0x920A
	TagLensModel          uint16 = 0xA434
	TagFocalLengthIn35mm  uint16 = 0xA405

	TagJPEGInterchangeFormat       uint16 = 0x0201
	TagJPEGInterchangeFormatLength uint16 = 0x0202
)
