package raster

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source is a decoded input image together with what was detected about it.
type Source struct {
	Image  image.Image
	Format Format
	Mode   Mode
	// Header is set for PNG input only.
	Header *PNGHeader
	Size   int64
}

// Width returns the pixel width of the decoded image.
func (s *Source) Width() int { return s.Image.Bounds().Dx() }

// Height returns the pixel height of the decoded image.
func (s *Source) Height() int { return s.Image.Bounds().Dy() }

// Load reads and decodes the image at path.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Decode(data)
}

// Decode sniffs the container format and decodes data in full.
func Decode(data []byte) (*Source, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	var header *PNGHeader
	if format == FormatPNG {
		header, err = ParsePNGHeader(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", format, err)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	mode := modeOf(img)
	if header != nil {
		mode = header.Mode()
	}

	return &Source{
		Image:  img,
		Format: format,
		Mode:   mode,
		Header: header,
		Size:   int64(len(data)),
	}, nil
}
