package images

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/pkg/errors"
	"golang.org/x/image/webp"
)

// Decode parses the data URI and decodes its payload into a raster image.
func Decode(uri DataURI) (image.Image, error) {
	buf, err := uri.Payload()
	if err != nil {
		return nil, err
	}
	return decodeImageData(buf)
}

func decodeImageData(buf []byte) (image.Image, error) {
	r := bytes.NewReader(buf)
	switch GetFileType(buf) {
	case JPEG:
		return jpeg.Decode(r)
	case PNG:
		return png.Decode(r)
	case GIF:
		return gif.Decode(r)
	case WEBP:
		return webp.Decode(r)
	default:
		return nil, errors.New("unsupported file type")
	}
}
