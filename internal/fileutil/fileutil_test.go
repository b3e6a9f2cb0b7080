package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.png")

	err := WriteAtomic(dst, 0o640, func(w io.Writer) error {
		_, err := io.WriteString(w, "payload")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Fatalf("content mismatch: got %q", got)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("expected mode 0640, got %o", info.Mode().Perm())
	}
	assertNoTempFiles(t, dir)
}

func TestWriteAtomicReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.png")
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteAtomic(dst, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Fatalf("expected replaced content, got %q", got)
	}
}

func TestWriteAtomicFailureLeavesDestinationUntouched(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.png")
	if err := os.WriteFile(dst, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("encode failed")
	err := WriteAtomic(dst, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected encode error, got %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "keep" {
		t.Fatalf("destination modified: %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteAtomicMissingDirectory(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "out.png")
	err := WriteAtomic(dst, 0o644, func(io.Writer) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Fatalf("expected no destination file, stat err %v", statErr)
	}
}

func TestSHA256File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bin")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	sum, size, err := SHA256File(path)
	if err != nil {
		t.Fatal(err)
	}
	if size != 3 {
		t.Fatalf("expected size 3, got %d", size)
	}
	if sum != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatalf("unexpected digest %s", sum)
	}
	if _, _, err := SHA256File(path + ".missing"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLockDestination(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")
	target := filepath.Join(t.TempDir(), "out.png")

	first, err := LockDestination(lockDir, target)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	if !strings.HasPrefix(first.Path(), lockDir) {
		t.Fatalf("lock file %s outside %s", first.Path(), lockDir)
	}

	if _, err := LockDestination(lockDir, target); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	other, err := LockDestination(lockDir, target+".other")
	if err != nil {
		t.Fatalf("unrelated target should lock: %v", err)
	}
	_ = other.Unlock()

	if err := first.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	again, err := LockDestination(lockDir, target)
	if err != nil {
		t.Fatalf("relock after unlock: %v", err)
	}
	_ = again.Unlock()

	var nilLock *Lock
	if err := nilLock.Unlock(); err != nil {
		t.Fatalf("nil unlock: %v", err)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temporary file left behind: %s", e.Name())
		}
	}
}
