package normalize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pngsafe/internal/fileutil"
	"pngsafe/internal/journal"
	"pngsafe/internal/logging"
	"pngsafe/internal/pngenc"
	"pngsafe/internal/preflight"
	"pngsafe/internal/raster"
)

// Request names the file to read and the file to write.
type Request struct {
	Source      string
	Destination string
}

// Result describes a completed run.
type Result struct {
	RunID       string             `json:"run_id"`
	Source      string             `json:"source"`
	Destination string             `json:"destination"`
	Format      raster.Format      `json:"format"`
	Mode        raster.Mode        `json:"mode"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Bytes       int64              `json:"bytes"`
	Checksum    string             `json:"sha256"`
	Compression pngenc.Compression `json:"-"`
	Duration    time.Duration      `json:"duration"`
}

// Normalizer converts one image per Run into an 8-bit RGBA PNG.
type Normalizer struct {
	opts     Options
	logger   *slog.Logger
	reporter Reporter
	journal  Recorder
}

// New constructs a Normalizer.
func New(opts Options, options ...Option) *Normalizer {
	n := &Normalizer{
		opts:     opts,
		logger:   logging.NewNop(),
		reporter: nopReporter{},
	}
	for _, opt := range options {
		opt(n)
	}
	n.logger = logging.NewComponentLogger(n.logger, "normalize")
	return n
}

// Run loads req.Source, reports its format and mode, converts it to RGBA and
// writes req.Destination. Any failure is reported as a "Failed:" status line
// and returned; the destination is never left partially written.
func (n *Normalizer) Run(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, n.logger)
	started := time.Now()

	res := &Result{
		RunID:       runID,
		Source:      req.Source,
		Destination: req.Destination,
		Compression: n.opts.Compression,
	}

	err := n.run(ctx, logger, req, res)
	res.Duration = time.Since(started)

	if err != nil {
		n.reporter.Status("Failed: " + err.Error())
		logger.Error("normalize failed",
			logging.String(logging.FieldEventType, "normalize_failed"),
			logging.String(logging.FieldErrorKind, Kind(err)),
			logging.Error(err),
		)
	} else {
		logger.Info("normalize completed",
			logging.String(logging.FieldEventType, "normalize_completed"),
			logging.String("destination", res.Destination),
			logging.Int64("bytes", res.Bytes),
			logging.Duration("duration", res.Duration),
		)
	}
	n.record(ctx, logger, res, err)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (n *Normalizer) run(ctx context.Context, logger *slog.Logger, req Request, res *Result) error {
	if strings.TrimSpace(req.Source) == "" {
		return Wrap(ErrSourceMissing, "load", "source path is empty", nil)
	}
	if strings.TrimSpace(req.Destination) == "" {
		return Wrap(ErrDestination, "save", "destination path is empty", nil)
	}

	n.reporter.Status(fmt.Sprintf("Reading %s...", req.Source))
	src, err := raster.Load(req.Source)
	if err != nil {
		return classifyLoadError(err)
	}
	res.Format = src.Format
	res.Mode = src.Mode
	res.Width = src.Width()
	res.Height = src.Height()
	n.reporter.Status(fmt.Sprintf("Format: %s, Mode: %s", src.Format, src.Mode))
	logger.Debug("source decoded",
		logging.String("format", string(src.Format)),
		logging.String("mode", string(src.Mode)),
		logging.Int("width", res.Width),
		logging.Int("height", res.Height),
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	rgba := raster.ToNRGBA(src.Image)

	if err := ctx.Err(); err != nil {
		return err
	}

	if check := preflight.CheckDestination("Destination", req.Destination); !check.Passed {
		return Wrap(ErrDestination, "save", check.Detail, nil)
	}

	if n.opts.LockDir != "" {
		lock, err := fileutil.LockDestination(n.opts.LockDir, req.Destination)
		if err != nil {
			if errors.Is(err, fileutil.ErrLocked) {
				return Wrap(ErrLocked, "save", "", err)
			}
			return Wrap(ErrDestination, "lock", "", err)
		}
		logger.Debug("destination locked", logging.String("lock_path", lock.Path()))
		defer func() {
			if unlockErr := lock.Unlock(); unlockErr != nil {
				logger.Warn("release destination lock failed", logging.Error(unlockErr))
			}
		}()
	}

	encoder := &pngenc.Encoder{Compression: n.opts.Compression}
	var encodeErr error
	writeErr := fileutil.WriteAtomic(req.Destination, n.opts.FileMode, func(w io.Writer) error {
		encodeErr = encoder.Encode(w, rgba)
		return encodeErr
	})
	if writeErr != nil {
		if encodeErr != nil {
			return Wrap(ErrEncode, "save", "", encodeErr)
		}
		return Wrap(ErrDestination, "save", "", writeErr)
	}

	sum, size, err := fileutil.SHA256File(req.Destination)
	if err != nil {
		logger.Warn("checksum output failed", logging.Error(err))
	}
	res.Checksum = sum
	res.Bytes = size

	n.reporter.Status(fmt.Sprintf("Saved to %s", req.Destination))
	return nil
}

func classifyLoadError(err error) error {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, raster.ErrUnsupportedFormat):
		return Wrap(ErrUnsupportedFormat, "load", "", err)
	case errors.Is(err, fs.ErrNotExist), errors.As(err, &pathErr):
		return Wrap(ErrSourceMissing, "load", "", err)
	default:
		return Wrap(ErrDecode, "load", "", err)
	}
}

func (n *Normalizer) record(ctx context.Context, logger *slog.Logger, res *Result, runErr error) {
	if n.journal == nil {
		return
	}
	entry := journal.Entry{
		RunID:       res.RunID,
		Source:      absPath(res.Source),
		Destination: absPath(res.Destination),
		Format:      string(res.Format),
		Mode:        string(res.Mode),
		Width:       res.Width,
		Height:      res.Height,
		Bytes:       res.Bytes,
		Checksum:    res.Checksum,
		Status:      journal.StatusSucceeded,
		Duration:    res.Duration,
	}
	if runErr != nil {
		entry.Status = journal.StatusFailed
		entry.ErrorKind = Kind(runErr)
		entry.Error = runErr.Error()
	}
	if _, err := n.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("journal record failed", logging.Error(err))
	}
}

// absPath keeps journal rows comparable across working directories.
func absPath(path string) string {
	if path == "" {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
