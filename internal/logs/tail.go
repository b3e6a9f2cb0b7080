package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// TailOptions selects which lines Tail returns.
type TailOptions struct {
	// Limit caps the number of lines; values <= 0 return no lines.
	Limit int
	// Match keeps only lines containing this substring, e.g. "run_id=<id>".
	Match string
}

// TailResult holds the selected lines and the file size they were read up to.
type TailResult struct {
	Lines  []string
	Offset int64
}

const maxLineLength = 1024 * 1024

// Tail returns the last matching lines of the log at path. A missing file
// yields an empty result.
func Tail(path string, opts TailOptions) (TailResult, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TailResult{}, nil
		}
		return TailResult{}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return TailResult{}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return TailResult{}, fmt.Errorf("log path %q is a directory", path)
	}
	if opts.Limit <= 0 {
		return TailResult{Offset: info.Size()}, nil
	}

	ring := make([]string, opts.Limit)
	count, idx := 0, 0
	offset, err := scanLines(file, func(line string) {
		if opts.Match != "" && !strings.Contains(line, opts.Match) {
			return
		}
		ring[idx] = line
		idx = (idx + 1) % opts.Limit
		if count < opts.Limit {
			count++
		}
	})
	if err != nil {
		return TailResult{}, err
	}

	lines := make([]string, count)
	if count == opts.Limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%opts.Limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return TailResult{Lines: lines, Offset: offset}, nil
}

// Follow polls path from offset and passes each new matching line to emit
// until ctx is done. A truncated file is re-read from the start.
func Follow(ctx context.Context, path string, offset int64, match string, interval time.Duration, emit func(string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		next, err := readFrom(path, offset, func(line string) {
			if match == "" || strings.Contains(line, match) {
				emit(line)
			}
		})
		if err != nil {
			return err
		}
		offset = next

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func readFrom(path string, offset int64, fn func(string)) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return offset, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek log file: %w", err)
	}
	next, err := scanLines(file, fn)
	if err != nil {
		return offset, err
	}
	return next, nil
}

// scanLines feeds every complete line of file to fn and returns the offset just
// past the last complete line, so a line still being written is re-read later.
func scanLines(file *os.File, fn func(string)) (int64, error) {
	start, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("determine log offset: %w", err)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	consumed := start
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return consumed, nil
		}
		if err != nil {
			return consumed, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(line))
		if len(line) > maxLineLength {
			line = line[:maxLineLength]
		}
		fn(strings.TrimRight(line, "\r\n"))
	}
}
