package images

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func outputBounds(t *testing.T, uri DataURI) (int, int) {
	t.Helper()

	mt, err := uri.MediaType()
	require.NoError(t, err)
	require.Equal(t, MediaTypeJpeg, mt)

	img, err := Decode(uri)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcessDownscalesLandscape(t *testing.T) {
	p, err := NewPipeline(DefaultConfig())
	require.NoError(t, err)

	out, err := p.Process(context.Background(), NewBlob("big.jpg", "image/jpeg", jpegBytes(t, 1024, 768)))
	require.NoError(t, err)

	w, h := outputBounds(t, out)
	require.Equal(t, 512, w)
	require.Equal(t, 384, h)
}

func TestProcessDownscalesPortrait(t *testing.T) {
	p, err := NewPipeline(Config{MaxSize: 256, Quality: 0.8})
	require.NoError(t, err)

	out, err := p.Process(context.Background(), NewBlob("tall.png", "image/png", pngBytes(t, 300, 600)))
	require.NoError(t, err)

	w, h := outputBounds(t, out)
	require.Equal(t, 128, w)
	require.Equal(t, 256, h)
}

func TestProcessKeepsSmallDimensions(t *testing.T) {
	out, err := ResizeAndConvertToJpeg(context.Background(), NewDataURI("image/png", pngBytes(t, 300, 200)))
	require.NoError(t, err)

	w, h := outputBounds(t, out)
	require.Equal(t, 300, w)
	require.Equal(t, 200, h)
}

func TestProcessLegacyWithoutDecoder(t *testing.T) {
	_, err := ResizeAndConvertToJpeg(context.Background(), NewBlob("photo.heic", "image/heic", []byte("container")))
	require.ErrorIs(t, err, ErrDecoderMissing)
}

func TestProcessLegacyConversion(t *testing.T) {
	dec := DecoderFunc(func(ctx context.Context, blob *Blob, quality float64) ([]*Blob, error) {
		require.Equal(t, 1.0, quality)
		return []*Blob{NewBlob(blob.Name, MediaTypeJpeg, jpegBytes(t, 1024, 768))}, nil
	})

	out, err := ResizeAndConvertToJpeg(
		context.Background(),
		NewBlob("photo.heic", "image/heic", []byte("container")),
		WithDecoder(dec),
	)
	require.NoError(t, err)

	w, h := outputBounds(t, out)
	require.Equal(t, 512, w)
	require.Equal(t, 384, h)
}

func TestProcessConversionFailure(t *testing.T) {
	dec := DecoderFunc(func(context.Context, *Blob, float64) ([]*Blob, error) {
		return nil, errors.New("no primary image")
	})

	_, err := ResizeAndConvertToJpeg(context.Background(), NewBlob("photo.heic", "", nil), WithDecoder(dec))
	require.ErrorIs(t, err, ErrConversionFailed)
	require.Contains(t, err.Error(), "no primary image")
}

func TestProcessReadFailure(t *testing.T) {
	src := &Blob{Name: "broken.jpg", MediaType: "image/jpeg", Content: errReader{}}

	_, err := ResizeAndConvertToJpeg(context.Background(), src)
	require.ErrorIs(t, err, ErrReadFailure)
	require.Contains(t, err.Error(), "disk on fire")
}

func TestProcessDecodeFailure(t *testing.T) {
	_, err := ResizeAndConvertToJpeg(context.Background(), NewBlob("corrupt.jpg", "image/jpeg", []byte{0xFF, 0xD8, 0xFF, 0x00, 0x01}))
	require.ErrorIs(t, err, ErrDecodeFailure)
}

func TestProcessInvalidInput(t *testing.T) {
	_, err := ResizeAndConvertToJpeg(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestProcessDimensionsStable(t *testing.T) {
	first, err := ResizeAndConvertToJpeg(context.Background(), NewBlob("big.jpg", "image/jpeg", jpegBytes(t, 1024, 768)))
	require.NoError(t, err)

	// bytes may shift across lossy re-encodes, dimensions must not
	second, err := ResizeAndConvertToJpeg(context.Background(), first)
	require.NoError(t, err)

	w, h := outputBounds(t, second)
	require.Equal(t, 512, w)
	require.Equal(t, 384, h)
}

func TestConfigValidate(t *testing.T) {
	cs := []struct {
		Config Config
		Error  bool
	}{
		{DefaultConfig(), false},
		{Config{MaxSize: 1, Quality: 0}, false},
		{Config{MaxSize: 1, Quality: 1}, false},
		{Config{MaxSize: 0, Quality: 0.9}, true},
		{Config{MaxSize: -5, Quality: 0.9}, true},
		{Config{MaxSize: 512, Quality: 1.5}, true},
		{Config{MaxSize: 512, Quality: -0.1}, true},
	}

	for _, c := range cs {
		err := c.Config.Validate()
		if c.Error {
			require.Error(t, err, "%+v", c.Config)
		} else {
			require.NoError(t, err, "%+v", c.Config)
		}
	}
}

func TestNewPipelineRejectsInvalidConfig(t *testing.T) {
	_, err := NewPipeline(Config{MaxSize: 0, Quality: 0.9})
	require.Error(t, err)
}
