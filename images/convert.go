package images

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Decoder is the environment-provided capability able to decode the legacy
// camera container into standard JPEG blobs. Implementations may return one
// or more results; only the first is used.
type Decoder interface {
	DecodeToJPEG(ctx context.Context, blob *Blob, quality float64) ([]*Blob, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, blob *Blob, quality float64) ([]*Blob, error)

func (f DecoderFunc) DecodeToJPEG(ctx context.Context, blob *Blob, quality float64) ([]*Blob, error) {
	return f(ctx, blob, quality)
}

// Converter turns legacy-container blobs into standard JPEG blobs using an
// injected Decoder.
type Converter struct {
	dec    Decoder
	logger *zap.Logger
}

func NewConverter(dec Decoder, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{dec: dec, logger: logger}
}

// Convert decodes blob at maximal quality and returns a fresh JPEG blob
// named after the original, with the legacy extension replaced by ".jpg" and
// a new modification time. The input blob is left unmodified. A single
// attempt is made, there are no retries.
func (c *Converter) Convert(ctx context.Context, blob *Blob) (*Blob, error) {
	if c.dec == nil {
		return nil, errors.WithMessage(ErrDecoderMissing, "convert legacy image")
	}

	results, err := c.dec.DecodeToJPEG(ctx, blob, 1.0)
	if err != nil {
		return nil, errors.WithMessagef(ErrConversionFailed, "convert legacy image: %v", err)
	}
	if len(results) == 0 || results[0] == nil {
		return nil, errors.WithMessage(ErrConversionFailed, "convert legacy image: decoder returned no result")
	}

	converted := &Blob{
		Name:      jpegName(blob.Name),
		MediaType: MediaTypeJpeg,
		ModTime:   time.Now(),
		Content:   results[0].Content,
	}

	c.logger.Debug("converted legacy image",
		zap.String("from", blob.Name),
		zap.String("to", converted.Name),
	)

	return converted, nil
}

// jpegName replaces a trailing .heic/.heif extension with .jpg, case
// insensitively. Other names are returned unchanged.
func jpegName(name string) string {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range legacyExtensions {
		if ext == e {
			return name[:len(name)-len(ext)] + ".jpg"
		}
	}
	return name
}
