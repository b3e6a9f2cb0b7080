package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteAtomic writes dst through a temporary sibling file that is renamed
// into place only after write succeeds and the data is synced. On any
// failure the temporary file is removed and dst is left untouched.
func WriteAtomic(dst string, mode os.FileMode, write func(io.Writer) error) (err error) {
	if write == nil {
		return errors.New("write function required")
	}
	dir := filepath.Dir(dst)
	tmpPath := filepath.Join(dir, "."+filepath.Base(dst)+"."+uuid.NewString()+".tmp")

	out, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = write(out); err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err = out.Chmod(mode.Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err = out.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, dst); err != nil {
		return err
	}
	return nil
}

// SHA256File returns the hex digest and size of path.
func SHA256File(path string) (string, int64, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer in.Close()

	hasher := sha256.New()
	n, err := io.Copy(hasher, in)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}
