package pngenc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Compression selects the zlib level for the IDAT stream.
type Compression int

const (
	// CompressionNone stores deflate blocks verbatim.
	CompressionNone Compression = iota
	CompressionSpeed
	CompressionDefault
	CompressionBest
)

// ParseCompression maps the config spelling to a Compression.
func ParseCompression(value string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return CompressionNone, nil
	case "speed":
		return CompressionSpeed, nil
	case "default":
		return CompressionDefault, nil
	case "best":
		return CompressionBest, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", value)
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionSpeed:
		return "speed"
	case CompressionDefault:
		return "default"
	case CompressionBest:
		return "best"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

func (c Compression) zlibLevel() int {
	switch c {
	case CompressionSpeed:
		return zlib.BestSpeed
	case CompressionDefault:
		return zlib.DefaultCompression
	case CompressionBest:
		return zlib.BestCompression
	default:
		return zlib.NoCompression
	}
}

// idatChunkSize bounds each IDAT chunk.
const idatChunkSize = 1 << 15

// Encoder writes 8-bit RGBA PNGs. Unlike image/png it never downgrades an
// opaque image to colour type 2, so the file always carries 4 channels.
// Every row uses filter type None.
type Encoder struct {
	Compression Compression
}

// Encode writes img to w as a colour type 6, bit depth 8, non-interlaced PNG.
func (e *Encoder) Encode(w io.Writer, img *image.NRGBA) error {
	if img == nil {
		return errors.New("png: nil image")
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("png: invalid dimensions %dx%d", width, height)
	}
	if int64(width) > math.MaxInt32 || int64(height) > math.MaxInt32 {
		return fmt.Errorf("png: dimensions %dx%d exceed format limits", width, height)
	}

	cw := &chunkWriter{w: w}
	if _, err := w.Write(signature); err != nil {
		return err
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8  // bit depth
	ihdr[9] = 6  // colour type RGBA
	ihdr[10] = 0 // deflate
	ihdr[11] = 0 // adaptive filtering
	ihdr[12] = 0 // no interlace
	if err := cw.writeChunk("IHDR", ihdr[:]); err != nil {
		return err
	}

	if err := e.writeIDAT(cw, img, width, height); err != nil {
		return err
	}

	return cw.writeChunk("IEND", nil)
}

func (e *Encoder) writeIDAT(cw *chunkWriter, img *image.NRGBA, width, height int) error {
	idat := bufio.NewWriterSize(idatWriter{cw}, idatChunkSize)
	zw, err := zlib.NewWriterLevel(idat, e.Compression.zlibLevel())
	if err != nil {
		return fmt.Errorf("png: zlib writer: %w", err)
	}

	rowLen := width * 4
	filter := []byte{0}
	b := img.Bounds()
	for y := 0; y < height; y++ {
		if _, err := zw.Write(filter); err != nil {
			return err
		}
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		if _, err := zw.Write(img.Pix[start : start+rowLen]); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return idat.Flush()
}

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type chunkWriter struct {
	w   io.Writer
	hdr [8]byte
	crc [4]byte
}

func (c *chunkWriter) writeChunk(kind string, data []byte) error {
	if len(data) > math.MaxInt32 {
		return fmt.Errorf("png: %s chunk too large", kind)
	}
	binary.BigEndian.PutUint32(c.hdr[:4], uint32(len(data)))
	copy(c.hdr[4:], kind)

	sum := crc32.NewIEEE()
	_, _ = sum.Write(c.hdr[4:8])
	_, _ = sum.Write(data)
	binary.BigEndian.PutUint32(c.crc[:], sum.Sum32())

	if _, err := c.w.Write(c.hdr[:]); err != nil {
		return err
	}
	if len(data) > 0 {
		if _, err := c.w.Write(data); err != nil {
			return err
		}
	}
	_, err := c.w.Write(c.crc[:])
	return err
}

// idatWriter emits each Write as its own IDAT chunk; the bufio.Writer in
// front of it sets the chunk size.
type idatWriter struct {
	cw *chunkWriter
}

func (i idatWriter) Write(p []byte) (int, error) {
	if err := i.cw.writeChunk("IDAT", p); err != nil {
		return 0, err
	}
	return len(p), nil
}
