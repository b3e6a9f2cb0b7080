package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another process holds the lock for a destination.
var ErrLocked = errors.New("destination locked by another run")

// Lock is an advisory lock held for one destination path.
type Lock struct {
	path string
	lock *flock.Flock
}

// LockDestination takes a non-blocking lock for target. Lock files live in
// lockDir, named by a digest of the absolute target path, so nothing is
// created next to the output.
func LockDestination(lockDir, target string) (*Lock, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", target, err)
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	lockPath := filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")

	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, abs)
	}
	return &Lock{path: lockPath, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Unlock releases the lock. It is safe to call on a nil Lock.
func (l *Lock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
