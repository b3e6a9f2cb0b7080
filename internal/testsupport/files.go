package testsupport

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes raw bytes to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePNG encodes img with image/png at path.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// WriteJPEG encodes img as a baseline JPEG at path.
func WriteJPEG(t testing.TB, path string, img image.Image) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// ReadPNG decodes the PNG at path.
func ReadPNG(t testing.TB, path string) image.Image {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

// GrayImage is a 3x2 8-bit grayscale gradient.
func GrayImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 40)
	}
	return img
}

// RGBImage is a 3x2 fully opaque image; image/png stores it as colour type 2.
func RGBImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 80), uint8(y * 120), 33, 255})
		}
	}
	return img
}

// RGBAImage is a 3x2 image with varied alpha.
func RGBAImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i*9 + 1)
	}
	return img
}

// PalettedImage is a 3x1 indexed image whose palette has one translucent entry.
func PalettedImage() *image.Paletted {
	pal := color.Palette{
		color.NRGBA{0, 0, 0, 255},
		color.NRGBA{255, 255, 255, 64},
		color.NRGBA{12, 34, 56, 255},
	}
	img := image.NewPaletted(image.Rect(0, 0, 3, 1), pal)
	img.Pix = []uint8{0, 1, 2}
	return img
}
