package jpegexif

import "github.com/jmreyes/jpegexif/exif"

// Config is the read-only, parse-call-scoped configuration surface: no
// package-level mutable state and no global defaults object - a host
// that wants process-wide defaults builds one Config at startup and
// threads it through every call.
type Config struct {
	// ParseImageData, if true, walks the entropy-coded scan data instead of
	// stopping at the first SOS. Default false.
	ParseImageData bool

	// Logger receives non-fatal diagnostics as they're collected. Defaults
	// to NopLogger.
	Logger Logger

	// MaxIFDDepth bounds Exif Sub-IFD recursion. Defaults to
	// exif.DefaultMaxIFDDepth.
	MaxIFDDepth int
}

func (c Config) normalized() Config {
	if c.Logger == nil {
		c.Logger = NopLogger
	}
	if c.MaxIFDDepth <= 0 {
		c.MaxIFDDepth = exif.DefaultMaxIFDDepth
	}
	return c
}
