package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

type chunk struct {
	kind string
	data []byte
}

func readChunks(t *testing.T, data []byte) []chunk {
	t.Helper()
	if !bytes.HasPrefix(data, signature) {
		t.Fatal("missing png signature")
	}
	rest := data[len(signature):]
	var out []chunk
	for len(rest) > 0 {
		if len(rest) < 12 {
			t.Fatalf("trailing %d bytes", len(rest))
		}
		n := int(binary.BigEndian.Uint32(rest[:4]))
		out = append(out, chunk{kind: string(rest[4:8]), data: rest[8 : 8+n]})
		rest = rest[12+n:]
	}
	return out
}

func idatBytes(chunks []chunk) []byte {
	var buf []byte
	for _, c := range chunks {
		if c.kind == "IDAT" {
			buf = append(buf, c.data...)
		}
	}
	return buf
}

func TestEncodeOpaqueKeepsColorTypeRGBA(t *testing.T) {
	img := solid(4, 3, color.NRGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := (&Encoder{}).Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	chunks := readChunks(t, buf.Bytes())
	if chunks[0].kind != "IHDR" || chunks[len(chunks)-1].kind != "IEND" {
		t.Fatalf("unexpected chunk order: first %s last %s", chunks[0].kind, chunks[len(chunks)-1].kind)
	}
	ihdr := chunks[0].data
	if depth, ct := ihdr[8], ihdr[9]; depth != 8 || ct != 6 {
		t.Fatalf("expected depth 8 colour type 6, got depth %d colour type %d", depth, ct)
	}
	if ihdr[12] != 0 {
		t.Fatalf("expected no interlace, got %d", ihdr[12])
	}

	decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	nrgba, ok := decoded.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected *image.NRGBA from decoder, got %T", decoded)
	}
	if !bytes.Equal(nrgba.Pix, img.Pix) {
		t.Fatal("decoded pixels differ from input")
	}
}

func TestEncodeRoundTripTranslucent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 11)
	}
	var buf bytes.Buffer
	if err := (&Encoder{Compression: CompressionDefault}).Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if got := decoded.(*image.NRGBA).Pix; !bytes.Equal(got, img.Pix) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", got, img.Pix)
	}
}

func TestEncodeNoCompressionStoresRawRows(t *testing.T) {
	const w, h = 64, 64
	img := solid(w, h, color.NRGBA{0, 0, 0, 255})

	var stored, packed bytes.Buffer
	if err := (&Encoder{Compression: CompressionNone}).Encode(&stored, img); err != nil {
		t.Fatalf("Encode none: %v", err)
	}
	if err := (&Encoder{Compression: CompressionBest}).Encode(&packed, img); err != nil {
		t.Fatalf("Encode best: %v", err)
	}

	raw := h * (1 + w*4)
	idat := idatBytes(readChunks(t, stored.Bytes()))
	if len(idat) < raw {
		t.Fatalf("stored IDAT %d bytes is smaller than raw scanlines %d", len(idat), raw)
	}
	if flevel := idat[1] >> 6; flevel != 0 {
		t.Fatalf("expected zlib FLEVEL 0 for stored data, got %d", flevel)
	}
	if packed.Len() >= stored.Len() {
		t.Fatalf("expected best compression (%d) to beat none (%d)", packed.Len(), stored.Len())
	}
}

func TestEncodeSplitsLargeIDAT(t *testing.T) {
	img := solid(128, 128, color.NRGBA{1, 2, 3, 4})
	var buf bytes.Buffer
	if err := (&Encoder{}).Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	count := 0
	for _, c := range readChunks(t, buf.Bytes()) {
		if c.kind == "IDAT" {
			count++
		}
	}
	if count < 2 {
		t.Fatalf("expected multiple IDAT chunks, got %d", count)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
}

func TestEncodeSubImage(t *testing.T) {
	full := solid(4, 4, color.NRGBA{5, 5, 5, 255})
	full.SetNRGBA(3, 3, color.NRGBA{9, 9, 9, 9})
	sub := full.SubImage(image.Rect(2, 2, 4, 4)).(*image.NRGBA)

	var buf bytes.Buffer
	if err := (&Encoder{}).Encode(&buf, sub); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if got := decoded.(*image.NRGBA).NRGBAAt(1, 1); got != (color.NRGBA{9, 9, 9, 9}) {
		t.Fatalf("unexpected pixel %v", got)
	}
}

func TestEncodeRejectsEmptyImage(t *testing.T) {
	if err := (&Encoder{}).Encode(&bytes.Buffer{}, image.NewNRGBA(image.Rect(0, 0, 0, 5))); err == nil {
		t.Fatal("expected error for zero width")
	}
	if err := (&Encoder{}).Encode(&bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected error for nil image")
	}
}

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errors.New("disk full")
	}
	f.after--
	return len(p), nil
}

func TestEncodePropagatesWriteErrors(t *testing.T) {
	img := solid(8, 8, color.NRGBA{1, 1, 1, 255})
	for after := 0; after < 4; after++ {
		if err := (&Encoder{}).Encode(&failingWriter{after: after}, img); err == nil {
			t.Fatalf("after=%d: expected write error", after)
		}
	}
}

func TestParseCompression(t *testing.T) {
	cases := map[string]Compression{
		"":        CompressionNone,
		"none":    CompressionNone,
		" Speed ": CompressionSpeed,
		"default": CompressionDefault,
		"best":    CompressionBest,
	}
	for in, want := range cases {
		got, err := ParseCompression(in)
		if err != nil {
			t.Fatalf("ParseCompression(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseCompression(%q) = %s want %s", in, got, want)
		}
	}
	if _, err := ParseCompression("max"); err == nil {
		t.Fatal("expected error for unknown compression")
	}
}
