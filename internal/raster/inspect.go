package raster

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// Info describes an image without decoding its pixels.
type Info struct {
	Path      string     `json:"path"`
	Format    Format     `json:"format"`
	Mode      Mode       `json:"mode"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	BitDepth  int        `json:"bit_depth,omitempty"`
	Interlace bool       `json:"interlaced"`
	Size      int64      `json:"size"`
	Header    *PNGHeader `json:"-"`
}

// Pixels returns Width*Height.
func (i *Info) Pixels() int64 {
	return int64(i.Width) * int64(i.Height)
}

// sniffLimit matches the prefix mimetype inspects by default.
const sniffLimit = 3072

// Inspect sniffs path and reads only its header. Pixel data is never read,
// so a file truncated inside its image data still inspects cleanly.
func Inspect(path string) (*Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read source: %w", err)
	}
	format, err := Sniff(head[:n])
	if err != nil {
		return nil, err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("decode %s header: %w", format, err)
	}

	info := &Info{
		Path:   path,
		Format: format,
		Mode:   modeOfModel(cfg.ColorModel),
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   stat.Size(),
	}
	if format == FormatPNG {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		header, err := ReadPNGHeader(bufio.NewReader(file))
		if err != nil {
			return nil, fmt.Errorf("decode %s header: %w", format, err)
		}
		info.Header = header
		info.Mode = header.Mode()
		info.BitDepth = int(header.BitDepth)
		info.Interlace = header.Interlaced
	}
	return info, nil
}

// modeOfModel is the header-only counterpart of modeOf. Without pixels it
// cannot tell opaque RGBA from RGB, so 4-channel models report RGBA.
func modeOfModel(model color.Model) Mode {
	if _, ok := model.(color.Palette); ok {
		return ModePalette
	}
	switch model {
	case color.GrayModel:
		return ModeGray
	case color.Gray16Model:
		return ModeGray16
	case color.YCbCrModel:
		return ModeRGB
	case color.CMYKModel:
		return ModeCMYK
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return ModeRGBA
	}
	return ModeUnknown
}
