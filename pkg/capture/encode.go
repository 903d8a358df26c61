package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image/gif"
	"image/png"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for image extensions that cannot be produced.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output image format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WebP Format = "webp"
	BMP  Format = "bmp"
	GIF  Format = "gif"
	TIFF Format = "tiff"
)

var extensions = map[string]Format{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"webp": WebP,
	"bmp":  BMP,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
}

// FormatFor maps a file extension, with or without the leading dot, to a Format.
func FormatFor(ext string) (Format, error) {
	f, ok := extensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// Native returns the format to request from the browser. Browsers only emit
// png, jpeg and webp; everything else is transcoded from png.
func (f Format) Native() Format {
	switch f {
	case PNG, JPEG, WebP:
		return f
	default:
		return PNG
	}
}

// Encode converts a screenshot taken in f.Native() into f.
func Encode(raw []byte, f Format) ([]byte, error) {
	if f.Native() == f {
		return raw, nil
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}

	var buf bytes.Buffer
	switch f {
	case BMP:
		err = bmp.Encode(&buf, img)
	case TIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	case GIF:
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", f, err)
	}

	return buf.Bytes(), nil
}

