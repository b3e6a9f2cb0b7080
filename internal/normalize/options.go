package normalize

import (
	"context"
	"log/slog"
	"os"

	"pngsafe/internal/config"
	"pngsafe/internal/journal"
	"pngsafe/internal/pngenc"
)

// Recorder persists run history. *journal.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, entry journal.Entry) (int64, error)
}

// Options controls how output is written.
type Options struct {
	Compression pngenc.Compression
	FileMode    os.FileMode
	// LockDir holds per-destination lock files. Empty disables locking.
	LockDir string
}

// DefaultOptions writes stored (uncompressed) data with mode 0644 and no lock.
func DefaultOptions() Options {
	return Options{
		Compression: pngenc.CompressionNone,
		FileMode:    0o644,
	}
}

// OptionsFromConfig derives Options from the [normalize] and [paths] sections.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}
	compression, err := pngenc.ParseCompression(cfg.Normalize.Compression)
	if err != nil {
		return Options{}, err
	}
	opts.Compression = compression
	opts.FileMode = cfg.OutputFileMode()
	opts.LockDir = cfg.LockDir()
	return opts, nil
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithReporter sets where status lines go.
func WithReporter(r Reporter) Option {
	return func(n *Normalizer) {
		if r != nil {
			n.reporter = r
		}
	}
}

// WithJournal records every run, successful or not, in rec.
func WithJournal(rec Recorder) Option {
	return func(n *Normalizer) {
		n.journal = rec
	}
}
