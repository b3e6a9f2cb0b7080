package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"pngsafe/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Source", statusError, "missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Source:", "[ERROR] missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Source", statusOK, "readable", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestPreflightLines(t *testing.T) {
	lines := preflightLines([]preflight.Result{
		{Name: "Source", Passed: true, Detail: "ok"},
		{Name: "Destination", Detail: "denied"},
	}, false)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] ok") || !strings.Contains(lines[1], "[ERROR] denied") {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers must not be colourized")
	}
}

func TestFormatters(t *testing.T) {
	if got := formatCount(1234567); got != "1,234,567" {
		t.Fatalf("formatCount = %q", got)
	}
	if got := formatBytes(2048); got != "2.0 KiB" {
		t.Fatalf("formatBytes = %q", got)
	}
	if got := formatBytes(0); got != "-" {
		t.Fatalf("formatBytes(0) = %q", got)
	}
	if got := formatStatusLabel("succeeded"); got != "Succeeded" {
		t.Fatalf("formatStatusLabel = %q", got)
	}
	if got := formatDimensions(3, 2); got != "3x2" {
		t.Fatalf("formatDimensions = %q", got)
	}
	if got := formatDuration(1500 * time.Millisecond); got != "1.5s" {
		t.Fatalf("formatDuration = %q", got)
	}
	if got := shortChecksum("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("shortChecksum = %q", got)
	}
}
