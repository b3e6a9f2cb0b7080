package raster

import "image"

// Mode names a channel layout using the conventional short codes
// (L, LA, P, RGB, RGBA, ...).
type Mode string

const (
	ModeBilevel   Mode = "1"
	ModeGray      Mode = "L"
	ModeGray16    Mode = "I;16"
	ModeGrayAlpha Mode = "LA"
	ModePalette   Mode = "P"
	ModeRGB       Mode = "RGB"
	ModeRGBA      Mode = "RGBA"
	ModeCMYK      Mode = "CMYK"
	ModeUnknown   Mode = "?"
)

// Channels returns the number of stored channels per pixel for the mode.
func (m Mode) Channels() int {
	switch m {
	case ModeBilevel, ModeGray, ModeGray16, ModePalette:
		return 1
	case ModeGrayAlpha:
		return 2
	case ModeRGB:
		return 3
	case ModeRGBA, ModeCMYK:
		return 4
	default:
		return 0
	}
}

// HasAlpha reports whether the layout carries its own alpha channel.
func (m Mode) HasAlpha() bool {
	return m == ModeGrayAlpha || m == ModeRGBA
}

// modeOf infers the layout from a decoded image when no container header
// describes it. JPEG YCbCr reports as RGB since that is what it decodes to.
func modeOf(img image.Image) Mode {
	switch m := img.(type) {
	case *image.Gray:
		return ModeGray
	case *image.Gray16:
		return ModeGray16
	case *image.Paletted:
		return ModePalette
	case *image.YCbCr:
		return ModeRGB
	case *image.CMYK:
		return ModeCMYK
	case *image.RGBA:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.RGBA64:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA:
		return ModeRGBA
	default:
		return ModeUnknown
	}
}
