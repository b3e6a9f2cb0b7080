package raster_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"pngsafe/internal/raster"
)

func assertOpaque(t *testing.T, img *image.NRGBA) {
	t.Helper()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("pixel %d alpha = %d, want 255", i/4, img.Pix[i])
		}
	}
}

func TestToNRGBAGraySynthesizesOpaqueAlpha(t *testing.T) {
	src := grayImage()
	out := raster.ToNRGBA(src)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v -> %v", src.Bounds(), out.Bounds())
	}
	assertOpaque(t, out)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v := src.GrayAt(x, y).Y
			got := out.NRGBAAt(x, y)
			if got.R != v || got.G != v || got.B != v {
				t.Fatalf("(%d,%d): got %v want gray %d", x, y, got, v)
			}
		}
	}
}

func TestToNRGBAOpaqueRGB(t *testing.T) {
	src := opaqueRGBA()
	out := raster.ToNRGBA(src)
	assertOpaque(t, out)
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Fatalf("unexpected pixel %v", got)
	}
}

func TestToNRGBAKeepsRGBAPixelsUnchanged(t *testing.T) {
	src := translucentNRGBA()
	out := raster.ToNRGBA(src)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatalf("pixels changed: %v -> %v", src.Pix, out.Pix)
	}
	if out == src {
		t.Fatal("expected a copy, got the source buffer")
	}
}

func TestToNRGBAPaletteResolvesTransparency(t *testing.T) {
	out := raster.ToNRGBA(palettedWithAlpha())
	want := []color.NRGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 64},
		{12, 34, 56, 255},
	}
	for x, w := range want {
		if got := out.NRGBAAt(x, 0); got != w {
			t.Errorf("x=%d: got %v want %v", x, got, w)
		}
	}
}

func TestToNRGBARebasesSubImage(t *testing.T) {
	full := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	full.SetNRGBA(2, 3, color.NRGBA{9, 8, 7, 6})
	sub := full.SubImage(image.Rect(2, 2, 4, 4))

	out := raster.ToNRGBA(sub)
	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("expected rebased bounds, got %v", out.Bounds())
	}
	if got := out.NRGBAAt(0, 1); got != (color.NRGBA{9, 8, 7, 6}) {
		t.Fatalf("unexpected pixel %v", got)
	}
}

func TestToNRGBAGenericFallback(t *testing.T) {
	gray16 := image.NewGray16(image.Rect(0, 0, 1, 1))
	gray16.SetGray16(0, 0, color.Gray16{Y: 0xabcd})
	out := raster.ToNRGBA(gray16)
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{0xab, 0xab, 0xab, 0xff}) {
		t.Fatalf("gray16: got %v", got)
	}

	ycc := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	for i := range ycc.Y {
		ycc.Y[i] = 100
		ycc.Cb[i] = 128
		ycc.Cr[i] = 128
	}
	out = raster.ToNRGBA(ycc)
	assertOpaque(t, out)
	if got := out.NRGBAAt(1, 1); got.R != 100 || got.G != 100 || got.B != 100 {
		t.Fatalf("ycbcr: got %v", got)
	}
}

func TestToNRGBAEmpty(t *testing.T) {
	out := raster.ToNRGBA(image.NewGray(image.Rect(0, 0, 0, 0)))
	if !out.Bounds().Empty() {
		t.Fatalf("expected empty output, got %v", out.Bounds())
	}
}
