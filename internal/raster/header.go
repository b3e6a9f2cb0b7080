package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNG colour types as stored in IHDR.
const (
	ColorTypeGray      uint8 = 0
	ColorTypeRGB       uint8 = 2
	ColorTypePalette   uint8 = 3
	ColorTypeGrayAlpha uint8 = 4
	ColorTypeRGBA      uint8 = 6
)

// PNGHeader is the IHDR chunk plus whether a tRNS chunk precedes the image data.
type PNGHeader struct {
	Width        int
	Height       int
	BitDepth     uint8
	ColorType    uint8
	Interlaced   bool
	Transparency bool
}

// ParsePNGHeader reads the IHDR chunk and scans ancillary chunks up to the
// first IDAT. Pixel data is not touched.
func ParsePNGHeader(data []byte) (*PNGHeader, error) {
	return ReadPNGHeader(bytes.NewReader(data))
}

// ReadPNGHeader is ParsePNGHeader over a stream. It stops reading at the
// first IDAT chunk header and skips ancillary chunk bodies.
func ReadPNGHeader(r io.Reader) (*PNGHeader, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil || !bytes.Equal(sig[:], pngSignature) {
		return nil, errors.New("png: missing signature")
	}

	var hdr *PNGHeader
	var frame [8]byte
	for {
		if _, err := io.ReadFull(r, frame[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("png: read chunk: %w", err)
		}
		length := binary.BigEndian.Uint32(frame[:4])
		kind := string(frame[4:8])

		switch kind {
		case "IHDR":
			if length != 13 {
				return nil, fmt.Errorf("png: bad IHDR length %d", length)
			}
			var body [13]byte
			if _, err := io.ReadFull(r, body[:]); err != nil {
				return nil, fmt.Errorf("png: truncated %s chunk", kind)
			}
			hdr = &PNGHeader{
				Width:      int(binary.BigEndian.Uint32(body[0:4])),
				Height:     int(binary.BigEndian.Uint32(body[4:8])),
				BitDepth:   body[8],
				ColorType:  body[9],
				Interlaced: body[12] == 1,
			}
			length = 0
		case "IDAT", "IEND":
			if hdr == nil {
				return nil, errors.New("png: IHDR missing")
			}
			return hdr, nil
		case "tRNS":
			if hdr != nil {
				hdr.Transparency = true
			}
		}
		if hdr == nil {
			return nil, errors.New("png: first chunk is not IHDR")
		}
		// Remaining body plus CRC.
		if _, err := io.CopyN(io.Discard, r, int64(length)+4); err != nil {
			return nil, fmt.Errorf("png: truncated %s chunk", kind)
		}
	}
	if hdr == nil {
		return nil, errors.New("png: IHDR missing")
	}
	return hdr, nil
}

// Mode maps the header to its channel-layout mode.
func (h *PNGHeader) Mode() Mode {
	switch h.ColorType {
	case ColorTypeGray:
		switch h.BitDepth {
		case 1:
			return ModeBilevel
		case 16:
			return ModeGray16
		default:
			return ModeGray
		}
	case ColorTypeRGB:
		return ModeRGB
	case ColorTypePalette:
		return ModePalette
	case ColorTypeGrayAlpha:
		return ModeGrayAlpha
	case ColorTypeRGBA:
		return ModeRGBA
	default:
		return ModeUnknown
	}
}
