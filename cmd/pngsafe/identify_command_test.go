package main

import (
	"encoding/json"
	"image"
	"path/filepath"
	"testing"

	"pngsafe/internal/testsupport"
)

func TestIdentifyTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	testsupport.WritePNG(t, path, image.NewGray(image.Rect(0, 0, 1200, 2)))

	out, _, err := runCLI(t, []string{"identify", path}, "")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	for _, fragment := range []string{"icon.png", "PNG", "1200x2", "2,400"} {
		requireContains(t, out, fragment)
	}
}

func TestIdentifyJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.png")
	testsupport.WritePNG(t, path, testsupport.PalettedImage())

	out, _, err := runCLI(t, []string{"identify", "--json", path}, "")
	if err != nil {
		t.Fatalf("identify --json: %v", err)
	}
	var views []identifyView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	v := views[0]
	if v.Format != "PNG" || v.Mode != "P" || v.Channels != 1 || !v.Alpha || v.Pixels != 3 {
		t.Fatalf("unexpected view %#v", v)
	}
}

func TestIdentifyMissingFile(t *testing.T) {
	if _, _, err := runCLI(t, []string{"identify", filepath.Join(t.TempDir(), "nope.png")}, ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
