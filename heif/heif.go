// Package heif implements the legacy-container decode capability on top of
// goheif. Wiring heif.NewDecoder() into a pipeline with images.WithDecoder
// is the Go analog of the environment providing an external HEIF decoder;
// pipelines built without it reject legacy inputs.
package heif

import (
	"bytes"
	"context"
	"io"

	"github.com/jdeng/goheif"
	"github.com/pkg/errors"

	"github.com/imagenorm/imagenorm/images"
)

// Decoder decodes HEIC/HEIF blobs and re-encodes them as JPEG.
type Decoder struct{}

var _ images.Decoder = (*Decoder)(nil)

func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeToJPEG decodes the container's primary image and returns it as a
// single JPEG blob encoded at the requested quality fraction.
func (d *Decoder) DecodeToJPEG(ctx context.Context, blob *images.Blob, quality float64) ([]*images.Blob, error) {
	if blob == nil || blob.Content == nil {
		return nil, errors.New("no payload")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(blob.Content)
	if err != nil {
		return nil, errors.Wrap(err, "read container payload")
	}

	img, err := goheif.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "decode container")
	}

	bb := bytes.NewBuffer([]byte{})
	if err := images.Encode(bb, img, images.EncodeConfig{Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}

	return []*images.Blob{images.NewBlob(blob.Name, images.MediaTypeJpeg, bb.Bytes())}, nil
}
