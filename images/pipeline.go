package images

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	validator "gopkg.in/go-playground/validator.v9"
)

const (
	// DefaultMaxSize bounds the larger output dimension in pixels.
	DefaultMaxSize = 512

	// DefaultQuality is the JPEG quality fraction used by the convenience
	// entry point.
	DefaultQuality = 0.9
)

// Config bounds the output raster and sets the JPEG quality.
type Config struct {
	MaxSize int     `json:"maxSize" validate:"gt=0"`
	Quality float64 `json:"quality" validate:"gte=0,lte=1"`
}

func DefaultConfig() Config {
	return Config{
		MaxSize: DefaultMaxSize,
		Quality: DefaultQuality,
	}
}

// Validate checks the validity of the Config.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDecoder provides the legacy-container decode capability. Pipelines
// built without one reject legacy inputs with ErrDecoderMissing.
func WithDecoder(dec Decoder) Option {
	return func(p *Pipeline) { p.dec = dec }
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// Pipeline normalizes a single image per Process call: legacy conversion
// when needed, decode, bounded downscale, JPEG re-encode. Calls are
// independent and share no state, so a Pipeline may be used concurrently.
type Pipeline struct {
	cfg       Config
	dec       Decoder
	logger    *zap.Logger
	converter *Converter
}

func NewPipeline(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pipeline config")
	}

	p := &Pipeline{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.converter = NewConverter(p.dec, p.logger)

	return p, nil
}

// Process runs the full normalization chain on src and returns the result as
// a data:image/jpeg URI. Every stage fails fast; a failed call yields a
// single error and no partial output.
func (p *Pipeline) Process(ctx context.Context, src Source) (DataURI, error) {
	uri, err := p.represent(ctx, src)
	if err != nil {
		return "", err
	}

	img, err := Decode(uri)
	if err != nil {
		return "", errors.WithMessagef(ErrDecodeFailure, "process image: %v", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	newWidth, newHeight := ShrinkToFit(width, height, p.cfg.MaxSize)
	if newWidth != width || newHeight != height {
		img = Resize(newWidth, newHeight, img)
	}

	out, err := EncodeToDataURI(img, EncodeConfig{Quality: p.cfg.Quality})
	if err != nil {
		return "", errors.Wrap(err, "encode jpeg")
	}

	p.logger.Debug("normalized image",
		zap.Int("width", newWidth),
		zap.Int("height", newHeight),
		zap.Float64("quality", p.cfg.Quality),
	)

	return out, nil
}

// represent resolves src into a self-describing data URI, converting the
// legacy container first when needed. Conversion completes fully before any
// later stage observes the blob.
func (p *Pipeline) represent(ctx context.Context, src Source) (DataURI, error) {
	switch s := src.(type) {
	case *Blob:
		if IsLegacyContainer(s) {
			converted, err := p.converter.Convert(ctx, s)
			if err != nil {
				return "", err
			}
			s = converted
		}
		return readBlob(s)
	case DataURI:
		return s, nil
	default:
		return "", errors.WithMessage(ErrInvalidInput, "process image")
	}
}

// readBlob drains the blob into a data URI describing its payload. The media
// type comes from the payload's magic bytes, falling back to the declared
// type for payloads the sniffer does not recognize.
func readBlob(b *Blob) (DataURI, error) {
	if b == nil || b.Content == nil {
		return "", errors.WithMessage(ErrReadFailure, "read image payload: no content")
	}

	buf, err := io.ReadAll(b.Content)
	if err != nil {
		return "", errors.WithMessagef(ErrReadFailure, "read %q: %v", b.Name, err)
	}

	mediaType := DetectMediaType(buf)
	if mediaType == "" {
		mediaType = b.MediaType
	}

	return NewDataURI(mediaType, buf), nil
}

// ResizeAndConvertToJpeg normalizes input with the default bounds. It is the
// convenience entry point; construct a Pipeline directly to reuse a config
// across calls.
func ResizeAndConvertToJpeg(ctx context.Context, input Source, opts ...Option) (DataURI, error) {
	p, err := NewPipeline(DefaultConfig(), opts...)
	if err != nil {
		return "", err
	}
	return p.Process(ctx, input)
}
