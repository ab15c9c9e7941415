package images

import "github.com/pkg/errors"

// Pipeline error categories. Each fallible stage wraps its underlying cause
// onto one of these sentinels, so callers can match the category with
// errors.Is while the message still names the stage and the cause.
var (
	// ErrDecoderMissing is returned when a legacy-container input arrives
	// but no Decoder capability was provided to the pipeline.
	ErrDecoderMissing = errors.New("legacy image decoder not available")

	// ErrConversionFailed is returned when the legacy decoder ran but
	// produced no usable output or failed outright.
	ErrConversionFailed = errors.New("legacy image conversion failed")

	// ErrReadFailure is returned when a blob's payload could not be read.
	ErrReadFailure = errors.New("unable to read image payload")

	// ErrDecodeFailure is returned when the image data could not be decoded.
	ErrDecodeFailure = errors.New("unable to decode image data")

	// ErrInvalidInput is returned when the source is neither a blob nor a
	// data URI.
	ErrInvalidInput = errors.New("input is not a blob or data URI")
)
