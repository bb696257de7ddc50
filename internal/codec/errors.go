package codec

import "errors"

var (
	// ErrUnsupportedFormat is returned for a file extension or format the codecs cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrMalformedPPM is returned when a PPM stream does not follow the P3 layout.
	ErrMalformedPPM = errors.New("malformed PPM data")
)
