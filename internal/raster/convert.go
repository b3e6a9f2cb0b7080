package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToNRGBA returns an 8-bit non-premultiplied RGBA copy of img whose bounds
// start at the origin. Layouts without alpha come out fully opaque. Pixels of
// an *image.NRGBA source are copied byte for byte.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if b.Empty() {
		return dst
	}

	switch src := img.(type) {
	case *image.NRGBA:
		rowLen := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], src.Pix[si:si+rowLen])
		}
	case *image.RGBA:
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := y * dst.Stride
			for x := 0; x < b.Dx(); x++ {
				s := src.Pix[si+x*4 : si+x*4+4 : si+x*4+4]
				d := dst.Pix[di+x*4 : di+x*4+4 : di+x*4+4]
				switch s[3] {
				case 0xff:
					copy(d, s)
				case 0:
					// fully transparent; colour is unrecoverable from premultiplied data
				default:
					c := color.NRGBAModel.Convert(color.RGBA{R: s[0], G: s[1], B: s[2], A: s[3]}).(color.NRGBA)
					d[0], d[1], d[2], d[3] = c.R, c.G, c.B, c.A
				}
			}
		}
	case *image.Gray:
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := y * dst.Stride
			for x := 0; x < b.Dx(); x++ {
				v := src.Pix[si+x]
				d := dst.Pix[di+x*4 : di+x*4+4 : di+x*4+4]
				d[0], d[1], d[2], d[3] = v, v, v, 0xff
			}
		}
	case *image.Paletted:
		lut := paletteLUT(src.Palette)
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := y * dst.Stride
			for x := 0; x < b.Dx(); x++ {
				idx := int(src.Pix[si+x])
				if idx >= len(lut) {
					continue
				}
				c := lut[idx]
				d := dst.Pix[di+x*4 : di+x*4+4 : di+x*4+4]
				d[0], d[1], d[2], d[3] = c.R, c.G, c.B, c.A
			}
		}
	default:
		draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	}
	return dst
}

// paletteLUT resolves palette entries to straight-alpha colours once so the
// per-pixel loop is a table lookup. tRNS entries arrive as color.NRGBA and
// pass through unchanged.
func paletteLUT(p color.Palette) []color.NRGBA {
	lut := make([]color.NRGBA, len(p))
	for i, c := range p {
		lut[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return lut
}
