package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// CheckSourceFile verifies that path is a readable regular file.
func CheckSourceFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a regular file)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s, readable)", path, humanize.IBytes(uint64(info.Size())))}
}

// CheckDestination verifies that the parent directory of path accepts new
// files and that an existing path is a writable regular file.
func CheckDestination(name, path string) Result {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
		}
		if err := unix.Access(path, unix.W_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
		}
	}
	dir := filepath.Dir(path)
	check := checkDirectory(dir, unix.W_OK|unix.X_OK)
	if !check.Passed {
		return Result{Name: name, Detail: check.Detail}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (directory writable)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	check := checkDirectory(path, unix.R_OK|unix.W_OK|unix.X_OK)
	check.Name = name
	if check.Passed {
		check.Detail = fmt.Sprintf("%s (read/write ok)", path)
	}
	return check
}

// CheckStateDirectory passes when the state directory is usable or can be
// created on first run.
func CheckStateDirectory(name, path string) Result {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		parent := nearestExisting(path)
		if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	}
	return CheckDirectoryAccess(name, path)
}

func checkDirectory(path string, mode uint32) Result {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Passed: true}
}

func nearestExisting(path string) string {
	current := filepath.Clean(path)
	for {
		if _, err := os.Stat(current); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return current
		}
		current = parent
	}
}
