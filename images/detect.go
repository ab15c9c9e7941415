package images

import (
	"path"
	"strings"
)

type FileType uint

const (
	UNKNOWN FileType = iota
	JPEG
	PNG
	GIF
	WEBP
)

var (
	legacyExtensions = []string{".heic", ".heif"}
	legacyMediaTypes = []string{"image/heic", "image/heif"}
)

// IsLegacyContainer reports whether src is a blob holding the legacy camera
// container, judged by filename extension or declared media type only. Data
// URIs are assumed already standard. Content is deliberately never sniffed,
// so the decision is identical across environments.
func IsLegacyContainer(src Source) bool {
	b, ok := src.(*Blob)
	if !ok || b == nil {
		return false
	}

	ext := strings.ToLower(path.Ext(b.Name))
	for _, e := range legacyExtensions {
		if ext == e {
			return true
		}
	}
	for _, mt := range legacyMediaTypes {
		if strings.EqualFold(b.MediaType, mt) {
			return true
		}
	}
	return false
}

// GetFileType identifies a standard image payload by its magic bytes.
func GetFileType(buf []byte) FileType {
	switch {
	case isJpeg(buf):
		return JPEG
	case isPng(buf):
		return PNG
	case isGif(buf):
		return GIF
	case isWebp(buf):
		return WEBP
	default:
		return UNKNOWN
	}
}

// DetectMediaType returns the media type implied by the payload's magic
// bytes, or "" when the payload is not a recognized standard image.
func DetectMediaType(buf []byte) string {
	switch GetFileType(buf) {
	case JPEG:
		return "image/jpeg"
	case PNG:
		return "image/png"
	case GIF:
		return "image/gif"
	case WEBP:
		return "image/webp"
	}
	return ""
}

func isJpeg(buf []byte) bool {
	return len(buf) > 2 &&
		buf[0] == 0xFF &&
		buf[1] == 0xD8 &&
		buf[2] == 0xFF
}

func isPng(buf []byte) bool {
	return len(buf) > 3 &&
		buf[0] == 0x89 && buf[1] == 0x50 &&
		buf[2] == 0x4E && buf[3] == 0x47
}

func isGif(buf []byte) bool {
	return len(buf) > 2 &&
		buf[0] == 0x47 && buf[1] == 0x49 && buf[2] == 0x46
}

func isWebp(buf []byte) bool {
	return len(buf) > 11 &&
		buf[8] == 0x57 && buf[9] == 0x45 &&
		buf[10] == 0x42 && buf[11] == 0x50
}
