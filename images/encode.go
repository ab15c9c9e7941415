package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"
	"math"
)

// MediaTypeJpeg is the media type stamped on every pipeline output.
const MediaTypeJpeg = "image/jpeg"

type EncodeConfig struct {
	// Quality is a fraction in [0,1], mapped onto the codec's 1-100 scale.
	Quality float64
}

func Encode(w io.Writer, img image.Image, config EncodeConfig) error {
	// Currently a wrapper for renderJpeg, but this function is useful if
	// multiple render formats are needed
	return renderJpeg(w, img, config)
}

func renderJpeg(w io.Writer, m image.Image, config EncodeConfig) error {
	o := new(jpeg.Options)
	o.Quality = jpegQuality(config.Quality)

	return jpeg.Encode(w, m, o)
}

// EncodeToDataURI renders img as JPEG at the given quality and wraps it in a
// self-describing data URI.
func EncodeToDataURI(img image.Image, config EncodeConfig) (DataURI, error) {
	bb := bytes.NewBuffer([]byte{})
	if err := Encode(bb, img, config); err != nil {
		return "", err
	}
	return NewDataURI(MediaTypeJpeg, bb.Bytes()), nil
}

func jpegQuality(q float64) int {
	n := int(math.Round(q * 100))
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}
