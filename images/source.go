package images

import (
	"bytes"
	"encoding/base64"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Source is an input to the pipeline, either a *Blob or a DataURI.
type Source interface {
	isSource()
}

// Blob is an opaque binary payload plus the metadata the uploader declared
// for it. The payload is consumed when the blob is processed or converted;
// the handle itself is never modified.
type Blob struct {
	Name      string
	MediaType string
	ModTime   time.Time
	Content   io.Reader
}

func (*Blob) isSource() {}

// NewBlob wraps an in-memory payload in a Blob stamped with the current time.
func NewBlob(name, mediaType string, payload []byte) *Blob {
	return &Blob{
		Name:      name,
		MediaType: mediaType,
		ModTime:   time.Now(),
		Content:   bytes.NewReader(payload),
	}
}

const (
	dataURIPrefix = "data:"
	dataURIMarker = ";base64,"
)

// DataURI is a self-describing base64 encoded image,
// e.g. "data:image/jpeg;base64,/9j/4...".
type DataURI string

func (DataURI) isSource() {}

// NewDataURI encodes payload into a data URI declaring the given media type.
func NewDataURI(mediaType string, payload []byte) DataURI {
	b64 := base64.StdEncoding.EncodeToString(payload)
	return DataURI(dataURIPrefix + mediaType + dataURIMarker + b64)
}

// MediaType returns the media type the URI declares.
func (d DataURI) MediaType() (string, error) {
	s := string(d)
	if !strings.HasPrefix(s, dataURIPrefix) {
		return "", errors.New("missing data URI prefix")
	}
	i := strings.Index(s, dataURIMarker)
	if i < 0 {
		return "", errors.New("missing base64 marker")
	}
	return s[len(dataURIPrefix):i], nil
}

// Payload returns the decoded binary payload of the URI.
func (d DataURI) Payload() ([]byte, error) {
	s := string(d)
	i := strings.Index(s, dataURIMarker)
	if !strings.HasPrefix(s, dataURIPrefix) || i < 0 {
		return nil, errors.New("malformed data URI")
	}
	return base64.StdEncoding.DecodeString(s[i+len(dataURIMarker):])
}

func (d DataURI) String() string {
	return string(d)
}
