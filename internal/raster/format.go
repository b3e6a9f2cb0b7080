package raster

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedFormat marks input whose container is not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names a container format the way the status output reports it.
type Format string

const (
	FormatPNG  Format = "PNG"
	FormatJPEG Format = "JPEG"
	FormatGIF  Format = "GIF"
	FormatBMP  Format = "BMP"
	FormatTIFF Format = "TIFF"
	FormatWEBP Format = "WEBP"
)

var mimeFormats = map[string]Format{
	"image/png":  FormatPNG,
	"image/jpeg": FormatJPEG,
	"image/gif":  FormatGIF,
	"image/bmp":  FormatBMP,
	"image/tiff": FormatTIFF,
	"image/webp": FormatWEBP,
}

// Sniff identifies the container format from the leading bytes of data.
// Specialisations such as APNG resolve to their parent format.
func Sniff(data []byte) (Format, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}
	detected := mimetype.Detect(data)
	for mt := detected; mt != nil; mt = mt.Parent() {
		if format, ok := mimeFormats[mt.String()]; ok {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: detected %s", ErrUnsupportedFormat, detected.String())
}
